package driven

import (
	"context"

	"github.com/sssmarthaat/haat/internal/core/domain"
)

// Collection names shared by every document store backend.
const (
	CollectionProducts   = "products"
	CollectionCategories = "categories"
	CollectionOrders     = "orders"
	CollectionMessages   = "messages"
	CollectionBanners    = "featured_banners"
	CollectionSettings   = "settings"
	CollectionLoginStats = "loginStats"
)

// ProductStore persists products.
//
// Watch streams full snapshots: the current list first, then a new list after
// every change. The channel closes when ctx is cancelled.
type ProductStore interface {
	// Save inserts or replaces a product.
	Save(ctx context.Context, p *domain.Product) error

	// Get retrieves a product by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Product, error)

	// List returns products matching the filter, newest first.
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)

	// Delete removes a product. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// DecrementStock applies a floor-at-zero stock reduction atomically
	// for the single product document.
	DecrementStock(ctx context.Context, id string, dec domain.StockDecrement) (*domain.Product, error)

	// Watch subscribes to the product list.
	Watch(ctx context.Context, filter domain.ProductFilter) (<-chan []domain.Product, error)
}

// CategoryStore persists categories.
type CategoryStore interface {
	Save(ctx context.Context, c *domain.Category) error
	Get(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Delete(ctx context.Context, id string) error
}

// BannerStore persists featured banners.
type BannerStore interface {
	Save(ctx context.Context, b *domain.Banner) error
	List(ctx context.Context) ([]domain.Banner, error)
	Delete(ctx context.Context, id string) error
}

// OrderStore persists orders.
type OrderStore interface {
	// Create appends a new order.
	Create(ctx context.Context, o *domain.Order) error

	// Get retrieves an order by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Order, error)

	// List returns all orders, newest first.
	List(ctx context.Context) ([]domain.Order, error)

	// Update replaces an order. Last writer wins.
	Update(ctx context.Context, o *domain.Order) error

	// Delete removes an order. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// Watch subscribes to the order list, newest first.
	Watch(ctx context.Context) (<-chan []domain.Order, error)
}

// MessageStore persists chat messages.
type MessageStore interface {
	// Append adds a message.
	Append(ctx context.Context, m *domain.Message) error

	// Thread returns messages for a correlation id, oldest first.
	Thread(ctx context.Context, correlationID string) ([]domain.Message, error)

	// All returns every message, oldest first.
	All(ctx context.Context) ([]domain.Message, error)

	// WatchThread subscribes to a single thread.
	WatchThread(ctx context.Context, correlationID string) (<-chan []domain.Message, error)
}

// SettingsStore persists the single site settings document.
type SettingsStore interface {
	// Get returns the settings, or domain.DefaultSiteSettings when none are stored.
	Get(ctx context.Context) (*domain.SiteSettings, error)

	// Merge applies a patch and returns the merged document.
	Merge(ctx context.Context, patch domain.SiteSettingsPatch) (*domain.SiteSettings, error)

	// Watch subscribes to the settings document.
	Watch(ctx context.Context) (<-chan domain.SiteSettings, error)
}

// LoginStatStore counts admin logins per day.
type LoginStatStore interface {
	// Increment adds one login to the given day.
	Increment(ctx context.Context, date string) (*domain.LoginStat, error)

	// List returns stats, most recent day first.
	List(ctx context.Context) ([]domain.LoginStat, error)
}

// Stores bundles every catalog store for one backend.
type Stores struct {
	Products   ProductStore
	Categories CategoryStore
	Banners    BannerStore
	Orders     OrderStore
	Messages   MessageStore
	Settings   SettingsStore
	LoginStats LoginStatStore

	// Close releases the backend.
	Close func() error
}
