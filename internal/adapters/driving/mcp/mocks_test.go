package mcp

import (
	"context"
	"io"

	"github.com/sssmarthaat/haat/internal/core/domain"
)

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	products   []domain.Product
	product    *domain.Product
	categories []domain.Category
	err        error

	lastFilter domain.ProductFilter
}

func (m *mockCatalogService) CreateProduct(_ context.Context, p *domain.Product) (*domain.Product, error) {
	return p, m.err
}

func (m *mockCatalogService) UpdateProduct(_ context.Context, p *domain.Product) (*domain.Product, error) {
	return p, m.err
}

func (m *mockCatalogService) SetStock(_ context.Context, _ string, _ int, _ map[string]int) (*domain.Product, error) {
	return m.product, m.err
}

func (m *mockCatalogService) GetProduct(_ context.Context, _ string) (*domain.Product, error) {
	return m.product, m.err
}

func (m *mockCatalogService) ListProducts(_ context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	m.lastFilter = f
	return m.products, m.err
}

func (m *mockCatalogService) DeleteProduct(_ context.Context, _ string) error {
	return m.err
}

func (m *mockCatalogService) WatchProducts(_ context.Context, _ domain.ProductFilter) (<-chan []domain.Product, error) {
	return nil, m.err
}

func (m *mockCatalogService) NormalizePhoto(_ context.Context, _ io.Reader) (*domain.InlineImage, error) {
	return nil, m.err
}

func (m *mockCatalogService) CreateCategory(_ context.Context, _ string, _ io.Reader) (*domain.Category, error) {
	return nil, m.err
}

func (m *mockCatalogService) ListCategories(_ context.Context) ([]domain.Category, error) {
	return m.categories, m.err
}

func (m *mockCatalogService) DeleteCategory(_ context.Context, _ string) error {
	return m.err
}

func (m *mockCatalogService) CreateBanner(_ context.Context, _, _ string, _ io.Reader) (*domain.Banner, error) {
	return nil, m.err
}

func (m *mockCatalogService) ListBanners(_ context.Context) ([]domain.Banner, error) {
	return nil, m.err
}

func (m *mockCatalogService) DeleteBanner(_ context.Context, _ string) error {
	return m.err
}

// mockStyleAssistant is a mock implementation of driving.StyleAssistant.
type mockStyleAssistant struct {
	advice *domain.StyleAdvice
	err    error

	lastQuery, lastContext string
}

func (m *mockStyleAssistant) Advise(_ context.Context, query, extra string) (*domain.StyleAdvice, error) {
	m.lastQuery, m.lastContext = query, extra
	return m.advice, m.err
}

func (m *mockStyleAssistant) Available() bool {
	return true
}
