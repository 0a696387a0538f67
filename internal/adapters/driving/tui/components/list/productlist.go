// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sssmarthaat/haat/internal/adapters/driving/tui/styles"
	"github.com/sssmarthaat/haat/internal/core/domain"
)

// ProductList displays catalog products in a navigable list.
type ProductList struct {
	products []domain.Product
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewProductList creates a new product list component.
func NewProductList(s *styles.Styles) *ProductList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ProductList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the product list.
func (l *ProductList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *ProductList) Update(msg tea.Msg) (*ProductList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the product list.
func (l *ProductList) View() string {
	if len(l.products) == 0 {
		return l.styles.Muted.Render("No products")
	}

	lines := make([]string, 0, len(l.products)*2+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Products (%d)", len(l.products))), "")

	// Each product takes two lines.
	visibleCount := (l.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := min(start+visibleCount, len(l.products))

	for i := start; i < end; i++ {
		lines = append(lines, l.renderProduct(i, &l.products[i]))
	}

	return strings.Join(lines, "\n")
}

func (l *ProductList) renderProduct(index int, p *domain.Product) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	maxNameLen := l.width - 24
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	name := truncate(p.Name, maxNameLen)
	price := FormatPrice(p.Price)

	var nameLine string
	if index == l.selected {
		nameLine = l.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxNameLen, name, price))
	} else {
		nameLine = l.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxNameLen, name)) +
			l.styles.Price.Render(price)
	}

	detail := p.Category
	switch {
	case p.StockQuantity <= 0:
		detail += " · " + l.styles.Error.Render("out of stock")
	case len(p.Sizes) > 0:
		detail += fmt.Sprintf(" · %d left · %s", p.StockQuantity, strings.Join(p.Sizes, "/"))
	default:
		detail += fmt.Sprintf(" · %d left", p.StockQuantity)
	}
	if p.OriginalPrice > p.Price {
		detail += " · was " + FormatPrice(p.OriginalPrice)
	}
	return nameLine + "\n" + l.styles.Muted.Render("    "+detail)
}

// FormatPrice renders an amount with the storefront currency prefix.
func FormatPrice(v float64) string {
	return domain.DefaultCurrencyPrefix + " " + humanize.FormatFloat("#,###.##", v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// SetProducts replaces the list contents and resets the selection.
func (l *ProductList) SetProducts(products []domain.Product) {
	l.products = products
	l.selected = 0
}

// Products returns the current products.
func (l *ProductList) Products() []domain.Product {
	return l.products
}

// Selected returns the index of the selected product.
func (l *ProductList) Selected() int {
	return l.selected
}

// SelectedProduct returns the currently selected product, or nil if none.
func (l *ProductList) SelectedProduct() *domain.Product {
	if len(l.products) == 0 || l.selected < 0 || l.selected >= len(l.products) {
		return nil
	}
	return &l.products[l.selected]
}

// MoveUp moves selection up.
func (l *ProductList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *ProductList) MoveDown() {
	if l.selected < len(l.products)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *ProductList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of products.
func (l *ProductList) Count() int {
	return len(l.products)
}
