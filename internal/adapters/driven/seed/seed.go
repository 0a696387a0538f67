// Package seed imports catalog fixtures from YAML files.
//
// A fixture lists categories, banners and products, plus an optional site
// settings patch. Image paths are resolved relative to the fixture file and
// go through the catalog's image normalizer like any upload.
package seed

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/logger"
)

// Catalog is a parsed fixture file.
type Catalog struct {
	Settings   *domain.SiteSettingsPatch `yaml:"settings"`
	Categories []Category                `yaml:"categories"`
	Banners    []Banner                  `yaml:"banners"`
	Products   []Product                 `yaml:"products"`
}

// Category is a fixture category.
type Category struct {
	Name  string `yaml:"name"`
	Image string `yaml:"image"`
}

// Banner is a fixture banner. Image is required.
type Banner struct {
	Title string `yaml:"title"`
	Link  string `yaml:"link"`
	Image string `yaml:"image"`
}

// Product is a fixture product.
type Product struct {
	Name          string         `yaml:"name"`
	Description   string         `yaml:"description"`
	Price         float64        `yaml:"price"`
	OriginalPrice float64        `yaml:"originalPrice"`
	Category      string         `yaml:"category"`
	Stock         int            `yaml:"stock"`
	Sizes         []string       `yaml:"sizes"`
	SizeStock     map[string]int `yaml:"sizeStock"`
	Image         string         `yaml:"image"`
	Slider        bool           `yaml:"slider"`
	FlashOffer    bool           `yaml:"flashOffer"`
}

// LoadFile loads and parses a fixture from the given path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses YAML fixture data.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: parse fixture: %w", domain.ErrInvalidInput, err)
	}
	for i, p := range c.Products {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("%w: product %d has no name", domain.ErrInvalidInput, i+1)
		}
	}
	for i, b := range c.Banners {
		if b.Image == "" {
			return nil, fmt.Errorf("%w: banner %d has no image", domain.ErrInvalidInput, i+1)
		}
	}
	return &c, nil
}

// toDomain converts a fixture product. ImageURL is filled by the importer.
func (p Product) toDomain() *domain.Product {
	return &domain.Product{
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		OriginalPrice:    p.OriginalPrice,
		Category:         p.Category,
		StockQuantity:    p.Stock,
		Sizes:            p.Sizes,
		SizeStock:        p.SizeStock,
		ShowInSlider:     p.Slider,
		ShowInFlashOffer: p.FlashOffer,
	}
}

// CatalogWriter is the part of the catalog service the importer needs.
type CatalogWriter interface {
	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	NormalizePhoto(ctx context.Context, r io.Reader) (*domain.InlineImage, error)
	CreateCategory(ctx context.Context, name string, photo io.Reader) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateBanner(ctx context.Context, title, link string, photo io.Reader) (*domain.Banner, error)
}

// SettingsWriter merges site settings.
type SettingsWriter interface {
	Update(ctx context.Context, patch domain.SiteSettingsPatch) (*domain.SiteSettings, error)
}

// Result counts what an import wrote.
type Result struct {
	Categories        int
	SkippedCategories int
	Banners           int
	Products          int
	SettingsUpdated   bool
}

// Importer writes fixtures through the catalog services.
type Importer struct {
	catalog  CatalogWriter
	settings SettingsWriter
}

// NewImporter creates an importer. settings may be nil, in which case a
// fixture's settings block is ignored.
func NewImporter(catalog CatalogWriter, settings SettingsWriter) *Importer {
	return &Importer{catalog: catalog, settings: settings}
}

// Import writes c. baseDir resolves relative image paths. Categories whose
// name already exists are skipped; products and banners are always created.
// The first failure stops the import and the partial Result is returned.
func (im *Importer) Import(ctx context.Context, c *Catalog, baseDir string) (Result, error) {
	var res Result

	if c.Settings != nil && !c.Settings.IsEmpty() && im.settings != nil {
		if _, err := im.settings.Update(ctx, *c.Settings); err != nil {
			return res, fmt.Errorf("seed settings: %w", err)
		}
		res.SettingsUpdated = true
	}

	existing, err := im.catalog.ListCategories(ctx)
	if err != nil {
		return res, fmt.Errorf("list categories: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, cat := range existing {
		known[strings.ToLower(cat.Name)] = true
	}

	for _, cat := range c.Categories {
		if known[strings.ToLower(strings.TrimSpace(cat.Name))] {
			logger.Debug("seed: category %q exists, skipping", cat.Name)
			res.SkippedCategories++
			continue
		}
		err := withImage(baseDir, cat.Image, func(r io.Reader) error {
			_, err := im.catalog.CreateCategory(ctx, cat.Name, r)
			return err
		})
		if err != nil {
			return res, fmt.Errorf("seed category %q: %w", cat.Name, err)
		}
		known[strings.ToLower(strings.TrimSpace(cat.Name))] = true
		res.Categories++
	}

	for _, b := range c.Banners {
		err := withImage(baseDir, b.Image, func(r io.Reader) error {
			_, err := im.catalog.CreateBanner(ctx, b.Title, b.Link, r)
			return err
		})
		if err != nil {
			return res, fmt.Errorf("seed banner %q: %w", b.Title, err)
		}
		res.Banners++
	}

	for _, p := range c.Products {
		product := p.toDomain()
		err := withImage(baseDir, p.Image, func(r io.Reader) error {
			if r == nil {
				return nil
			}
			img, err := im.catalog.NormalizePhoto(ctx, r)
			if err != nil {
				return err
			}
			product.ImageURL = img.DataURI()
			return nil
		})
		if err != nil {
			return res, fmt.Errorf("seed product %q: %w", p.Name, err)
		}
		if _, err := im.catalog.CreateProduct(ctx, product); err != nil {
			return res, fmt.Errorf("seed product %q: %w", p.Name, err)
		}
		res.Products++
	}

	logger.Info("seed: %d categories, %d banners, %d products", res.Categories, res.Banners, res.Products)
	return res, nil
}

// withImage opens path relative to baseDir and passes it to fn. An empty
// path passes a nil reader.
func withImage(baseDir, path string, fn func(io.Reader) error) error {
	if path == "" {
		return fn(nil)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrImageUnreadable, err)
	}
	defer f.Close()
	return fn(f)
}
