package driving

import (
	"context"
	"io"

	"github.com/sssmarthaat/haat/internal/core/domain"
)

// CatalogService manages products, categories and featured banners.
type CatalogService interface {
	// CreateProduct validates and stores a new product. ID and timestamps are
	// assigned; the name is display-cased and stock invariants are restored.
	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)

	// UpdateProduct replaces an existing product's editable fields.
	UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)

	// SetStock sets the aggregate or per-size stock of a product.
	// A non-empty sizeStock replaces the per-size counters and the aggregate
	// is recomputed from it.
	SetStock(ctx context.Context, id string, stock int, sizeStock map[string]int) (*domain.Product, error)

	// GetProduct retrieves a product by ID.
	GetProduct(ctx context.Context, id string) (*domain.Product, error)

	// ListProducts returns products matching the filter.
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)

	// DeleteProduct removes a product.
	DeleteProduct(ctx context.Context, id string) error

	// WatchProducts streams product list snapshots until ctx is cancelled.
	WatchProducts(ctx context.Context, filter domain.ProductFilter) (<-chan []domain.Product, error)

	// NormalizePhoto resizes a product photo to the configured bounds.
	NormalizePhoto(ctx context.Context, r io.Reader) (*domain.InlineImage, error)

	// CreateCategory stores a category. photo may be nil.
	CreateCategory(ctx context.Context, name string, photo io.Reader) (*domain.Category, error)

	// ListCategories returns all categories by name.
	ListCategories(ctx context.Context) ([]domain.Category, error)

	// DeleteCategory removes a category. Products keep their category name.
	DeleteCategory(ctx context.Context, id string) error

	// CreateBanner stores a banner with an image fitted to banner bounds.
	CreateBanner(ctx context.Context, title, link string, photo io.Reader) (*domain.Banner, error)

	// ListBanners returns all banners, newest first.
	ListBanners(ctx context.Context) ([]domain.Banner, error)

	// DeleteBanner removes a banner.
	DeleteBanner(ctx context.Context, id string) error
}
