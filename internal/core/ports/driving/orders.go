package driving

import (
	"context"
	"io"

	"github.com/sssmarthaat/haat/internal/core/domain"
)

// CheckoutService turns a submitted order form into an order.
type CheckoutService interface {
	// PlaceOrder appends a PENDING order with a product snapshot, then
	// decrements stock. The two writes are not atomic: if the stock update
	// fails the stored order is returned with an error wrapping
	// domain.ErrStockNotUpdated.
	PlaceOrder(ctx context.Context, productID string, draft domain.OrderDraft) (*domain.Order, error)
}

// ChatService manages order chat threads.
type ChatService interface {
	// Send appends a message to a thread. Empty text is rejected.
	Send(ctx context.Context, correlationID string, sender domain.Sender, text string) (*domain.Message, error)

	// Thread returns a thread, oldest first.
	Thread(ctx context.Context, correlationID string) ([]domain.Message, error)

	// Watch streams thread snapshots until ctx is cancelled.
	Watch(ctx context.Context, correlationID string) (<-chan []domain.Message, error)

	// Threads summarises every thread, most recent activity first.
	Threads(ctx context.Context) ([]domain.ThreadSummary, error)
}

// OrderAdminService is the admin view of orders.
type OrderAdminService interface {
	// List returns all orders, newest first.
	List(ctx context.Context) ([]domain.Order, error)

	// Get retrieves an order.
	Get(ctx context.Context, id string) (*domain.Order, error)

	// Watch streams order list snapshots until ctx is cancelled.
	Watch(ctx context.Context) (<-chan []domain.Order, error)

	// Confirm moves a PENDING order to CONFIRMED with a delivery charge.
	// The charge must parse as a non-negative number.
	Confirm(ctx context.Context, id, deliveryCharge string) (*domain.Order, error)

	// Cancel moves a PENDING or CONFIRMED order to CANCELLED.
	Cancel(ctx context.Context, id string) (*domain.Order, error)

	// MarkDelivered moves a CONFIRMED order to DELIVERED.
	MarkDelivered(ctx context.Context, id string) (*domain.Order, error)

	// Delete removes an order permanently.
	Delete(ctx context.Context, id string) error
}

// InvoiceService produces order invoices.
type InvoiceService interface {
	// Build returns the invoice layout for an order.
	Build(order *domain.Order) *domain.Invoice

	// Write renders the invoice for an order to w and returns its layout.
	Write(ctx context.Context, orderID string, w io.Writer) (*domain.Invoice, error)

	// ContentType returns the MIME type written by Write.
	ContentType() string
}
