package domain

import (
	"strings"
	"time"
)

// Product is a sellable catalog item.
type Product struct {
	ID            string  `json:"id" bson:"_id"`
	Name          string  `json:"name" bson:"name"`
	Description   string  `json:"description" bson:"description"`
	Price         float64 `json:"price" bson:"price"`
	OriginalPrice float64 `json:"originalPrice" bson:"originalPrice"`

	// Category references Category.Name; no referential integrity is enforced.
	Category string `json:"category" bson:"category"`

	// StockQuantity is the aggregate stock. When SizeStock is present it
	// equals the sum of SizeStock; otherwise it is a manual counter.
	StockQuantity int `json:"stockQuantity" bson:"stockQuantity"`

	// Sizes lists size labels in display order.
	Sizes []string `json:"sizes,omitempty" bson:"sizes,omitempty"`

	// SizeStock maps size label to quantity. Nil when stock is not size-indexed.
	SizeStock map[string]int `json:"sizeStock,omitempty" bson:"sizeStock,omitempty"`

	// ImageURL is an inline data URI produced by the image normalizer.
	ImageURL string `json:"imageUrl" bson:"imageUrl"`

	ShowInSlider     bool `json:"showInSlider" bson:"showInSlider"`
	ShowInFlashOffer bool `json:"showInFlashOffer" bson:"showInFlashOffer"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// HasSizeStock reports whether stock is tracked per size.
func (p *Product) HasSizeStock() bool {
	return len(p.SizeStock) > 0
}

// DefaultSize returns the first declared size, or "" if the product has none.
func (p *Product) DefaultSize() string {
	if len(p.Sizes) == 0 {
		return ""
	}
	return p.Sizes[0]
}

// ValidSizeLabel reports whether size can key per-size stock in every store.
// Labels are document field names, so they must be non-blank and free of
// '.' and '$'.
func ValidSizeLabel(size string) bool {
	return strings.TrimSpace(size) != "" && !strings.ContainsAny(size, ".$")
}

// HasSize reports whether size is one of the declared sizes.
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// Normalize restores the stock invariants after an admin edit: negative
// counters become zero and, with size-indexed stock, the aggregate is
// recomputed from the per-size counters.
func (p *Product) Normalize() {
	if p.StockQuantity < 0 {
		p.StockQuantity = 0
	}
	if !p.HasSizeStock() {
		p.SizeStock = nil
		return
	}
	total := 0
	for size, qty := range p.SizeStock {
		if qty < 0 {
			qty = 0
			p.SizeStock[size] = 0
		}
		total += qty
	}
	p.StockQuantity = total
}

// InStock reports whether at least one unit is available, per size when
// size-indexed stock is tracked for that size.
func (p *Product) InStock(size string) bool {
	if p.HasSizeStock() {
		if qty, ok := p.SizeStock[size]; ok {
			return qty > 0
		}
	}
	return p.StockQuantity > 0
}

// DiscountPercent returns the whole-number discount from OriginalPrice, or 0.
func (p *Product) DiscountPercent() int {
	if p.OriginalPrice <= 0 || p.Price >= p.OriginalPrice {
		return 0
	}
	return int((p.OriginalPrice - p.Price) / p.OriginalPrice * 100)
}

// StockDecrement describes a floor-at-zero stock reduction.
type StockDecrement struct {
	// Size is the selected size; empty when the product has no sizes.
	Size string

	// Quantity is the number of units ordered (>= 1).
	Quantity int
}

// Apply returns the product's stock after the decrement without mutating p.
// When size-indexed stock exists for Size, that counter and the aggregate are
// both reduced; otherwise only the aggregate is. Counters never go below zero.
func (d StockDecrement) Apply(p Product) (stock int, sizeStock map[string]int) {
	stock = floorSub(p.StockQuantity, d.Quantity)
	if !p.HasSizeStock() {
		return stock, nil
	}
	sizeStock = make(map[string]int, len(p.SizeStock))
	for k, v := range p.SizeStock {
		sizeStock[k] = v
	}
	if prev, ok := sizeStock[d.Size]; ok {
		sizeStock[d.Size] = floorSub(prev, d.Quantity)
	}
	return stock, sizeStock
}

// TracksSize reports whether the decrement touches a per-size counter of p.
func (d StockDecrement) TracksSize(p Product) bool {
	if !p.HasSizeStock() {
		return false
	}
	_, ok := p.SizeStock[d.Size]
	return ok
}

func floorSub(a, b int) int {
	if a-b < 0 {
		return 0
	}
	return a - b
}

// ProductFilter narrows catalog listings. Zero values match everything.
type ProductFilter struct {
	Category       string
	SliderOnly     bool
	FlashOfferOnly bool
}

// Matches reports whether p passes the filter.
func (f ProductFilter) Matches(p *Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.SliderOnly && !p.ShowInSlider {
		return false
	}
	if f.FlashOfferOnly && !p.ShowInFlashOffer {
		return false
	}
	return true
}

// ProductDraft is the editable admin form for a product.
// Analyzer suggestions are applied to a draft, never to a stored product.
type ProductDraft struct {
	Name        string
	Description string
	Category    string
}

// ApplySuggestion overwrites draft fields with the non-empty suggestion fields.
// A nil suggestion leaves the draft untouched.
func (d ProductDraft) ApplySuggestion(s *ProductSuggestion) ProductDraft {
	if s == nil {
		return d
	}
	if s.Name != "" {
		d.Name = s.Name
	}
	if s.Description != "" {
		d.Description = s.Description
	}
	if s.Category != "" {
		d.Category = s.Category
	}
	return d
}
