package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sssmarthaat/haat/internal/adapters/driven/storage/watch"
	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
)

// Ensure the catalog stores implement their interfaces.
var (
	_ driven.ProductStore  = (*productStore)(nil)
	_ driven.CategoryStore = (*categoryStore)(nil)
	_ driven.BannerStore   = (*bannerStore)(nil)
)

type productStore struct {
	store *Store
}

func (s *productStore) Save(ctx context.Context, p *domain.Product) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling product: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO products (id, category, show_in_slider, show_in_flash_offer, created_at, body)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			category = excluded.category,
			show_in_slider = excluded.show_in_slider,
			show_in_flash_offer = excluded.show_in_flash_offer,
			created_at = excluded.created_at,
			body = excluded.body
	`, p.ID, p.Category, boolInt(p.ShowInSlider), boolInt(p.ShowInFlashOffer),
		p.CreatedAt.UnixNano(), string(body))
	if err != nil {
		return fmt.Errorf("saving product: %w", err)
	}

	s.store.productsHub.Publish()
	return nil
}

func (s *productStore) Get(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := getBody(ctx, s.store.db, driven.CollectionProducts, "id", id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *productStore) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var (
		where []string
		args  []any
	)
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.SliderOnly {
		where = append(where, "show_in_slider = 1")
	}
	if filter.FlashOfferOnly {
		where = append(where, "show_in_flash_offer = 1")
	}

	query := "SELECT body FROM products"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id ASC"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return scanBodies[domain.Product](rows)
}

func (s *productStore) Delete(ctx context.Context, id string) error {
	if err := s.store.deleteByID(ctx, driven.CollectionProducts, id); err != nil {
		return err
	}
	s.store.productsHub.Publish()
	return nil
}

// DecrementStock reads and rewrites the product inside one immediate
// transaction, so concurrent checkouts serialise on the write lock.
func (s *productStore) DecrementStock(
	ctx context.Context,
	id string,
	dec domain.StockDecrement,
) (*domain.Product, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var p domain.Product
	if err := getBody(ctx, tx, driven.CollectionProducts, "id", id, &p); err != nil {
		return nil, err
	}

	p.StockQuantity, p.SizeStock = dec.Apply(p)

	body, err := json.Marshal(&p)
	if err != nil {
		return nil, fmt.Errorf("marshaling product: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "UPDATE products SET body = ? WHERE id = ?", string(body), id); err != nil {
		return nil, fmt.Errorf("updating stock: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing stock update: %w", err)
	}

	s.store.productsHub.Publish()
	return &p, nil
}

func (s *productStore) Watch(ctx context.Context, filter domain.ProductFilter) (<-chan []domain.Product, error) {
	return watch.StreamEvery(ctx, s.store.productsHub, s.store.poll,
		func(ctx context.Context) ([]domain.Product, error) {
			return s.List(ctx, filter)
		})
}

type categoryStore struct {
	store *Store
}

func (s *categoryStore) Save(ctx context.Context, c *domain.Category) error {
	body, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling category: %w", err)
	}
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, created_at, body) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			created_at = excluded.created_at,
			body = excluded.body
	`, c.ID, c.Name, c.CreatedAt.UnixNano(), string(body))
	if err != nil {
		return fmt.Errorf("saving category: %w", err)
	}
	return nil
}

func (s *categoryStore) Get(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	if err := getBody(ctx, s.store.db, driven.CollectionCategories, "id", id, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *categoryStore) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT body FROM categories ORDER BY created_at ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return scanBodies[domain.Category](rows)
}

func (s *categoryStore) Delete(ctx context.Context, id string) error {
	return s.store.deleteByID(ctx, driven.CollectionCategories, id)
}

type bannerStore struct {
	store *Store
}

func (s *bannerStore) Save(ctx context.Context, b *domain.Banner) error {
	body, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshaling banner: %w", err)
	}
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO featured_banners (id, created_at, body) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET created_at = excluded.created_at, body = excluded.body
	`, b.ID, b.CreatedAt.UnixNano(), string(body))
	if err != nil {
		return fmt.Errorf("saving banner: %w", err)
	}
	return nil
}

func (s *bannerStore) List(ctx context.Context) ([]domain.Banner, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT body FROM featured_banners ORDER BY created_at DESC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("listing banners: %w", err)
	}
	return scanBodies[domain.Banner](rows)
}

func (s *bannerStore) Delete(ctx context.Context, id string) error {
	return s.store.deleteByID(ctx, driven.CollectionBanners, id)
}
