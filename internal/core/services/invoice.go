package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
	"github.com/sssmarthaat/haat/internal/core/ports/driving"
	"github.com/sssmarthaat/haat/internal/logger"
)

// Ensure InvoiceService implements the interface.
var _ driving.InvoiceService = (*InvoiceService)(nil)

// invoiceNumberLength is the number of order id characters in an invoice number.
const invoiceNumberLength = 8

// InvoiceService builds and renders order invoices.
type InvoiceService struct {
	orders   driven.OrderStore
	renderer driven.InvoiceRenderer
	cfg      domain.InvoiceSettings
	now      func() time.Time
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(
	orders driven.OrderStore,
	renderer driven.InvoiceRenderer,
	cfg domain.InvoiceSettings,
) *InvoiceService {
	defaults := domain.DefaultAppSettings().Invoice
	if cfg.BrandName == "" {
		cfg.BrandName = defaults.BrandName
	}
	if cfg.CurrencyPrefix == "" {
		cfg.CurrencyPrefix = defaults.CurrencyPrefix
	}
	return &InvoiceService{
		orders:   orders,
		renderer: renderer,
		cfg:      cfg,
		now:      time.Now,
	}
}

// InvoiceNumber returns the upper-cased first eight characters of an order id.
func InvoiceNumber(orderID string) string {
	n := orderID
	if len(n) > invoiceNumberLength {
		n = n[:invoiceNumberLength]
	}
	return strings.ToUpper(n)
}

// InvoiceFileName returns the download name for an invoice.
func InvoiceFileName(customer, number string) string {
	name := strings.Join(strings.Fields(customer), "_")
	if name == "" {
		name = "Customer"
	}
	return fmt.Sprintf("Invoice_%s_%s.pdf", name, number)
}

// FormatMoney renders an amount with thousands separators and two decimals.
func FormatMoney(prefix string, amount decimal.Decimal) string {
	amount = amount.Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	whole := amount.Truncate(0)
	cents := amount.Sub(whole).Mul(decimal.NewFromInt(100)).IntPart()
	return fmt.Sprintf("%s %s%s.%02d", prefix, sign, humanize.Comma(whole.IntPart()), cents)
}

// Build returns the invoice layout for an order.
// Missing numeric fields count as zero.
func (s *InvoiceService) Build(order *domain.Order) *domain.Invoice {
	price := decimal.NewFromFloat(order.ProductPrice)
	qty := decimal.NewFromInt(int64(order.Quantity))
	delivery := decimal.Zero
	if order.DeliveryCharge != nil {
		delivery = decimal.NewFromFloat(*order.DeliveryCharge)
	}
	subtotal := price.Mul(qty)
	grand := subtotal.Add(delivery)

	date := order.CreatedAt
	if date.IsZero() {
		date = s.now()
	}

	number := InvoiceNumber(order.ID)
	inv := &domain.Invoice{
		BrandName:     s.cfg.BrandName,
		BrandSubtitle: s.cfg.BrandSubtitle,
		Number:        number,
		Date:          date,
		Customer: domain.InvoiceCustomer{
			Name:    order.CustomerName,
			Phone:   order.Phone,
			Address: order.Address,
		},
		Item: domain.InvoiceLine{
			Description: order.ProductName,
			Size:        order.SelectedSize,
			UnitPrice:   FormatMoney(s.cfg.CurrencyPrefix, price),
			Quantity:    fmt.Sprintf("%02d", order.Quantity),
			Total:       FormatMoney(s.cfg.CurrencyPrefix, subtotal),
		},
		Subtotal:   FormatMoney(s.cfg.CurrencyPrefix, subtotal),
		Delivery:   FormatMoney(s.cfg.CurrencyPrefix, delivery),
		GrandTotal: FormatMoney(s.cfg.CurrencyPrefix, grand),
		FileName:   InvoiceFileName(order.CustomerName, number),
	}

	if order.ProductImage != "" {
		img, err := domain.ParseDataURI(order.ProductImage)
		if err != nil {
			logger.Warn("invoice %s: thumbnail skipped: %v", number, err)
		} else {
			inv.Thumbnail = img
		}
	}

	return inv
}

// Write renders the invoice for an order to w and returns its layout.
func (s *InvoiceService) Write(ctx context.Context, orderID string, w io.Writer) (*domain.Invoice, error) {
	if s.renderer == nil {
		return nil, fmt.Errorf("invoice renderer: %w", domain.ErrNotImplemented)
	}
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	inv := s.Build(order)
	if err := s.renderer.Render(ctx, inv, w); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", inv.Number, err)
	}
	return inv, nil
}

// ContentType returns the MIME type written by Write.
func (s *InvoiceService) ContentType() string {
	if s.renderer == nil {
		return "application/octet-stream"
	}
	return s.renderer.ContentType()
}
