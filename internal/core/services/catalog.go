package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
	"github.com/sssmarthaat/haat/internal/core/ports/driving"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogStores groups the stores the catalog service writes to.
type CatalogStores struct {
	Products   driven.ProductStore
	Categories driven.CategoryStore
	Banners    driven.BannerStore
}

// CatalogService manages products, categories and banners.
type CatalogService struct {
	products   driven.ProductStore
	categories driven.CategoryStore
	banners    driven.BannerStore
	normalizer driven.ImageNormalizer
	images     domain.ImageSettings
	now        func() time.Time
}

// NewCatalogService creates a new catalog service.
// normalizer may be nil, in which case photo uploads are rejected.
func NewCatalogService(
	stores CatalogStores,
	normalizer driven.ImageNormalizer,
	images domain.ImageSettings,
) *CatalogService {
	if images.MaxWidth <= 0 || images.MaxHeight <= 0 {
		images.MaxWidth = domain.ProductImageBounds.MaxWidth
		images.MaxHeight = domain.ProductImageBounds.MaxHeight
	}
	if images.Quality <= 0 {
		images.Quality = domain.DefaultJPEGQuality
	}
	return &CatalogService{
		products:   stores.Products,
		categories: stores.Categories,
		banners:    stores.Banners,
		normalizer: normalizer,
		images:     images,
		now:        time.Now,
	}
}

// DisplayName title-cases a product name for display.
func DisplayName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	return cases.Title(language.English).String(name)
}

// CreateProduct validates and stores a new product.
func (s *CatalogService) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	created := *p
	created.ID = uuid.NewString()
	created.Name = DisplayName(p.Name)
	created.SizeStock = copySizeStock(p.SizeStock)
	created.Normalize()
	created.CreatedAt = s.now()
	created.UpdatedAt = created.CreatedAt

	if err := s.products.Save(ctx, &created); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	return &created, nil
}

// UpdateProduct replaces an existing product's editable fields.
func (s *CatalogService) UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("%w: product id is required", domain.ErrInvalidInput)
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	existing, err := s.products.Get(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	updated := *p
	updated.Name = DisplayName(p.Name)
	updated.SizeStock = copySizeStock(p.SizeStock)
	updated.Normalize()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = s.now()

	if err := s.products.Save(ctx, &updated); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	return &updated, nil
}

// SetStock sets the aggregate or per-size stock of a product.
func (s *CatalogService) SetStock(
	ctx context.Context,
	id string,
	stock int,
	sizeStock map[string]int,
) (*domain.Product, error) {
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", domain.ErrInvalidInput)
	}
	if err := validateSizeStock(sizeStock); err != nil {
		return nil, err
	}

	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(sizeStock) > 0 {
		p.SizeStock = copySizeStock(sizeStock)
		for size := range sizeStock {
			if !p.HasSize(size) {
				p.Sizes = append(p.Sizes, size)
			}
		}
	} else {
		p.SizeStock = nil
		p.StockQuantity = stock
	}
	p.Normalize()
	p.UpdatedAt = s.now()

	if err := s.products.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	return p, nil
}

// GetProduct retrieves a product by ID.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.Get(ctx, id)
}

// ListProducts returns products matching the filter.
func (s *CatalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.products.List(ctx, filter)
}

// DeleteProduct removes a product.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

// WatchProducts streams product list snapshots until ctx is cancelled.
func (s *CatalogService) WatchProducts(
	ctx context.Context,
	filter domain.ProductFilter,
) (<-chan []domain.Product, error) {
	return s.products.Watch(ctx, filter)
}

// NormalizePhoto resizes a product photo to the configured bounds.
func (s *CatalogService) NormalizePhoto(ctx context.Context, r io.Reader) (*domain.InlineImage, error) {
	return s.normalize(ctx, r, domain.ImageBounds{MaxWidth: s.images.MaxWidth, MaxHeight: s.images.MaxHeight})
}

func (s *CatalogService) normalize(
	ctx context.Context,
	r io.Reader,
	bounds domain.ImageBounds,
) (*domain.InlineImage, error) {
	if s.normalizer == nil {
		return nil, fmt.Errorf("image normalizer: %w", domain.ErrNotImplemented)
	}
	return s.normalizer.Normalize(ctx, r, domain.NormalizeOptions{
		ImageBounds: bounds,
		Quality:     s.images.Quality,
	})
}

// CreateCategory stores a category. photo may be nil.
func (s *CatalogService) CreateCategory(ctx context.Context, name string, photo io.Reader) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrInvalidInput)
	}

	c := &domain.Category{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: s.now(),
	}
	if photo != nil {
		img, err := s.NormalizePhoto(ctx, photo)
		if err != nil {
			return nil, err
		}
		c.ImageURL = img.DataURI()
	}

	if err := s.categories.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save category: %w", err)
	}
	return c, nil
}

// ListCategories returns all categories by name.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(cats, func(i, j int) bool {
		return strings.ToLower(cats[i].Name) < strings.ToLower(cats[j].Name)
	})
	return cats, nil
}

// DeleteCategory removes a category. Products keep their category name.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}

// CreateBanner stores a banner with an image fitted to banner bounds.
func (s *CatalogService) CreateBanner(
	ctx context.Context,
	title, link string,
	photo io.Reader,
) (*domain.Banner, error) {
	if photo == nil {
		return nil, fmt.Errorf("%w: banner image is required", domain.ErrInvalidInput)
	}
	img, err := s.normalize(ctx, photo, domain.BannerImageBounds)
	if err != nil {
		return nil, err
	}

	b := &domain.Banner{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		ImageURL:  img.DataURI(),
		Link:      strings.TrimSpace(link),
		CreatedAt: s.now(),
	}
	if err := s.banners.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("save banner: %w", err)
	}
	return b, nil
}

// ListBanners returns all banners, newest first.
func (s *CatalogService) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	return s.banners.List(ctx)
}

// DeleteBanner removes a banner.
func (s *CatalogService) DeleteBanner(ctx context.Context, id string) error {
	return s.banners.Delete(ctx, id)
}

func validateProduct(p *domain.Product) error {
	if p == nil {
		return fmt.Errorf("%w: product is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", domain.ErrInvalidInput)
	}
	if p.Price < 0 || p.OriginalPrice < 0 {
		return fmt.Errorf("%w: prices cannot be negative", domain.ErrInvalidInput)
	}
	for _, size := range p.Sizes {
		if !domain.ValidSizeLabel(size) {
			return fmt.Errorf("%w: invalid size %q", domain.ErrInvalidInput, size)
		}
	}
	return validateSizeStock(p.SizeStock)
}

func validateSizeStock(sizeStock map[string]int) error {
	for size, qty := range sizeStock {
		if !domain.ValidSizeLabel(size) {
			return fmt.Errorf("%w: invalid size %q", domain.ErrInvalidInput, size)
		}
		if qty < 0 {
			return fmt.Errorf("%w: stock for size %s cannot be negative", domain.ErrInvalidInput, size)
		}
	}
	return nil
}

func copySizeStock(in map[string]int) map[string]int {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
