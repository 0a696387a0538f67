// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/sssmarthaat/haat/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewCatalog lists products.
	ViewCatalog
	// ViewOrder is the order form with its chat.
	ViewOrder
	// ViewAdminOrders is the admin order management view.
	ViewAdminOrders
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewCatalog:
		return "catalog"
	case ViewOrder:
		return "order"
	case ViewAdminOrders:
		return "admin_orders"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ProductsLoaded carries the catalog listing.
type ProductsLoaded struct {
	Products []domain.Product
	Err      error
}

// ProductSelected opens the order view for a product.
type ProductSelected struct {
	Product domain.Product
}

// OrderPlaced reports the result of a checkout.
// Order may be set together with domain.ErrStockNotUpdated.
type OrderPlaced struct {
	Order *domain.Order
	Err   error
}

// OrderDismissed fires when the success confirmation should close.
// Seq identifies the order view opening it belongs to.
type OrderDismissed struct {
	Seq int
}

// OrderFormReset fires a short delay after the order view closes.
type OrderFormReset struct{}

// ThreadUpdated carries a fresh snapshot of a chat thread.
type ThreadUpdated struct {
	SessionID string
	Messages  []domain.Message
}

// MessageSent reports the result of sending a chat message.
type MessageSent struct {
	Err error
}

// OrdersLoaded carries the admin order listing.
type OrdersLoaded struct {
	Orders []domain.Order
	Err    error
}

// OrderUpdated reports the result of an admin action on one order.
// Order is nil after a delete.
type OrderUpdated struct {
	ID    string
	Order *domain.Order
	Err   error
}

// AdminUnlocked reports the result of an admin login attempt.
type AdminUnlocked struct {
	Err error
}

// SiteSettingsChanged carries a new site settings snapshot.
type SiteSettingsChanged struct {
	Settings domain.SiteSettings
}
