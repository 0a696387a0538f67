package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/sssmarthaat/haat/internal/adapters/driven/storage/watch"
	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
)

// Ensure the catalog stores implement their interfaces.
var (
	_ driven.ProductStore  = (*ProductStore)(nil)
	_ driven.CategoryStore = (*CategoryStore)(nil)
	_ driven.BannerStore   = (*BannerStore)(nil)
)

// ProductStore is an in-memory implementation of driven.ProductStore.
type ProductStore struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	hub      *watch.Hub
}

// NewProductStore creates a new in-memory product store.
func NewProductStore() *ProductStore {
	return &ProductStore{
		products: make(map[string]domain.Product),
		hub:      watch.NewHub(),
	}
}

// cloneProduct copies the slice and map fields so callers cannot alias stored state.
func cloneProduct(p domain.Product) domain.Product {
	if p.Sizes != nil {
		p.Sizes = append([]string(nil), p.Sizes...)
	}
	if p.SizeStock != nil {
		m := make(map[string]int, len(p.SizeStock))
		for k, v := range p.SizeStock {
			m[k] = v
		}
		p.SizeStock = m
	}
	return p
}

// Save inserts or replaces a product.
func (s *ProductStore) Save(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	s.products[p.ID] = cloneProduct(*p)
	s.mu.Unlock()
	s.hub.Publish()
	return nil
}

// Get retrieves a product by ID.
func (s *ProductStore) Get(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p = cloneProduct(p)
	return &p, nil
}

// List returns products matching the filter, newest first.
func (s *ProductStore) List(_ context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if filter.Matches(&p) {
			result = append(result, cloneProduct(p))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Delete removes a product.
func (s *ProductStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.products[id]; !ok {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	delete(s.products, id)
	s.mu.Unlock()
	s.hub.Publish()
	return nil
}

// DecrementStock applies a floor-at-zero stock reduction under the store lock.
func (s *ProductStore) DecrementStock(
	_ context.Context,
	id string,
	dec domain.StockDecrement,
) (*domain.Product, error) {
	s.mu.Lock()
	p, ok := s.products[id]
	if !ok {
		s.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	p.StockQuantity, p.SizeStock = dec.Apply(p)
	s.products[id] = p
	out := cloneProduct(p)
	s.mu.Unlock()

	s.hub.Publish()
	return &out, nil
}

// Watch subscribes to the filtered product list.
func (s *ProductStore) Watch(ctx context.Context, filter domain.ProductFilter) (<-chan []domain.Product, error) {
	return watch.Stream(ctx, s.hub, func(ctx context.Context) ([]domain.Product, error) {
		return s.List(ctx, filter)
	})
}

// CategoryStore is an in-memory implementation of driven.CategoryStore.
type CategoryStore struct {
	mu         sync.RWMutex
	categories map[string]domain.Category
}

// NewCategoryStore creates a new in-memory category store.
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{categories: make(map[string]domain.Category)}
}

// Save inserts or replaces a category.
func (s *CategoryStore) Save(_ context.Context, c *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = *c
	return nil
}

// Get retrieves a category by ID.
func (s *CategoryStore) Get(_ context.Context, id string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

// List returns all categories in creation order.
func (s *CategoryStore) List(_ context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

// Delete removes a category.
func (s *CategoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

// BannerStore is an in-memory implementation of driven.BannerStore.
type BannerStore struct {
	mu      sync.RWMutex
	banners map[string]domain.Banner
}

// NewBannerStore creates a new in-memory banner store.
func NewBannerStore() *BannerStore {
	return &BannerStore{banners: make(map[string]domain.Banner)}
}

// Save inserts or replaces a banner.
func (s *BannerStore) Save(_ context.Context, b *domain.Banner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.banners[b.ID] = *b
	return nil
}

// List returns all banners, newest first.
func (s *BannerStore) List(_ context.Context) ([]domain.Banner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Banner, 0, len(s.banners))
	for _, b := range s.banners {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

// Delete removes a banner.
func (s *BannerStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.banners[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.banners, id)
	return nil
}
