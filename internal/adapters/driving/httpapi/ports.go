package httpapi

import (
	"github.com/sssmarthaat/haat/internal/core/ports/driving"
)

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	Catalog      driving.CatalogService
	Checkout     driving.CheckoutService
	Chat         driving.ChatService
	Orders       driving.OrderAdminService
	Invoices     driving.InvoiceService
	SiteSettings driving.SiteSettingsService
	Gate         driving.AdminGate
	Stats        driving.StatsService

	// Analyzer and Stylist are optional; their routes answer 503 when nil.
	Analyzer driving.ProductAnalyzer
	Stylist  driving.StyleAssistant
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	if p.Gate == nil {
		return ErrMissingAdminGate
	}
	return nil
}
