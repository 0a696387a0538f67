// Package tui provides an interactive terminal storefront for haat.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/sssmarthaat/haat/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Catalog lists products for the shop view.
	Catalog driving.CatalogService

	// Checkout places orders from the order form.
	Checkout driving.CheckoutService

	// Chat sends and watches the shopper's thread.
	Chat driving.ChatService

	// Orders drives the admin orders view. Optional.
	Orders driving.OrderAdminService

	// Gate unlocks the admin orders view. Optional.
	Gate driving.AdminGate

	// SiteSettings feeds the broadcast line and delivery defaults. Optional.
	SiteSettings driving.SiteSettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	if p.Checkout == nil {
		return ErrMissingCheckoutService
	}
	if p.Chat == nil {
		return ErrMissingChatService
	}
	return nil
}

// AdminEnabled reports whether the admin orders view can be offered.
func (p *Ports) AdminEnabled() bool {
	return p.Orders != nil && p.Gate != nil
}
