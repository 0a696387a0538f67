// Package catalog provides the product listing view for the TUI.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sssmarthaat/haat/internal/adapters/driving/tui/components/list"
	"github.com/sssmarthaat/haat/internal/adapters/driving/tui/messages"
	"github.com/sssmarthaat/haat/internal/adapters/driving/tui/styles"
	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driving"
)

// View lists catalog products and opens the order form for one.
type View struct {
	styles  *styles.Styles
	catalog driving.CatalogService
	list    *list.ProductList

	flashOnly bool
	loading   bool
	err       error
	width     int
	height    int
}

// NewView creates a new catalog view.
func NewView(s *styles.Styles, catalog driving.CatalogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		catalog: catalog,
		list:    list.NewProductList(s),
		width:   80,
		height:  24,
	}
}

// Init loads the products.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadProducts()
}

func (v *View) loadProducts() tea.Cmd {
	filter := domain.ProductFilter{FlashOfferOnly: v.flashOnly}
	return func() tea.Msg {
		if v.catalog == nil {
			return messages.ProductsLoaded{Err: errors.New("catalog service not available")}
		}
		products, err := v.catalog.ListProducts(context.Background(), filter)
		return messages.ProductsLoaded{Products: products, Err: err}
	}
}

// Update handles messages for the catalog view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ProductsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.list.SetProducts(msg.Products)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case "enter":
		if p := v.list.SelectedProduct(); p != nil {
			product := *p
			return v, func() tea.Msg { return messages.ProductSelected{Product: product} }
		}
	case "f":
		v.flashOnly = !v.flashOnly
		v.loading = true
		return v, v.loadProducts()
	case "r":
		v.loading = true
		return v, v.loadProducts()
	default:
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

// View renders the catalog.
func (v *View) View() string {
	var b strings.Builder

	title := "Shop"
	if v.flashOnly {
		title += " · flash offers"
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading products..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	default:
		b.WriteString(v.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[enter] order  [f] flash offers  [r] reload  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	// Leave room for the title, help and status bar.
	v.list.SetDimensions(width, height-6)
}

// Products returns the listed products.
func (v *View) Products() []domain.Product {
	return v.list.Products()
}

// FlashOnly reports whether only flash offers are listed.
func (v *View) FlashOnly() bool {
	return v.flashOnly
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
