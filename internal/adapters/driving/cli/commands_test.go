package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sssmarthaat/haat/internal/adapters/driven/invoice/pdf"
	"github.com/sssmarthaat/haat/internal/adapters/driven/storage/memory"
	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
	"github.com/sssmarthaat/haat/internal/core/services"
)

// resetFlags restores every flag to its default so runs do not leak into
// each other through the package-level flag variables.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// wire points the commands at fresh in-memory services.
func wire(t *testing.T) driven.Stores {
	t.Helper()
	stores := memory.NewStores()
	SetServices(Services{
		Catalog: services.NewCatalogService(services.CatalogStores{
			Products:   stores.Products,
			Categories: stores.Categories,
			Banners:    stores.Banners,
		}, nil, domain.ImageSettings{}),
		Checkout:     services.NewCheckoutService(stores.Products, stores.Orders),
		Chat:         services.NewChatService(stores.Messages),
		Orders:       services.NewOrderAdminService(stores.Orders),
		Invoices:     services.NewInvoiceService(stores.Orders, pdf.NewRenderer(), domain.InvoiceSettings{}),
		SiteSettings: services.NewSiteSettingsService(stores.Settings),
		Gate:         services.NewAdminGate(stores.Settings, memory.NewSessionStore(), stores.LoginStats),
		Stats:        services.NewStatsService(stores.LoginStats, nil),
	})
	t.Cleanup(func() { SetServices(Services{}) })
	return stores
}

// run executes the root command with args and stdin, returning the output.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func login(t *testing.T) {
	t.Helper()
	out, err := run(t, domain.DefaultAdminPassword+"\n", "admin", "login")
	require.NoError(t, err)
	require.Contains(t, out, "Logged in.")
}

func seedProduct(t *testing.T, stores driven.Stores) {
	t.Helper()
	require.NoError(t, stores.Products.Save(context.Background(), &domain.Product{
		ID:            "p1",
		Name:          "Cotton Panjabi",
		Category:      "Panjabi",
		Price:         1060,
		Sizes:         []string{"M", "XL"},
		SizeStock:     map[string]int{"M": 3, "XL": 5},
		StockQuantity: 8,
		CreatedAt:     time.Now(),
	}))
}

func seedOrder(t *testing.T, stores driven.Stores) {
	t.Helper()
	require.NoError(t, stores.Orders.Create(context.Background(), &domain.Order{
		ID: "abcdef123456", CustomerName: "Rahim Uddin", Phone: "01711", Address: "Mirpur, Dhaka",
		ProductID: "p1", ProductName: "Cotton Panjabi", ProductPrice: 1060, Quantity: 1,
		Status: domain.OrderStatusPending, CreatedAt: time.Now(),
	}))
}

func TestProductList(t *testing.T) {
	stores := wire(t)

	out, err := run(t, "", "product", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No products found.")

	seedProduct(t, stores)
	out, err = run(t, "", "product", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Cotton Panjabi")
	assert.Contains(t, out, "Tk. 1,060.00")
	assert.Contains(t, out, "8 (M:3 XL:5)")
	assert.Contains(t, out, "Total: 1 products")
}

func TestProductList_CategoryFlagDoesNotLeak(t *testing.T) {
	stores := wire(t)
	seedProduct(t, stores)

	out, err := run(t, "", "product", "list", "--category", "Saree")
	require.NoError(t, err)
	assert.Contains(t, out, "No products found.")

	out, err = run(t, "", "product", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Cotton Panjabi")
}

func TestProductAdd_RequiresAdmin(t *testing.T) {
	wire(t)

	_, err := run(t, "", "product", "add", "--name", "Saree", "--category", "Saree", "--price", "900")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
	assert.Contains(t, err.Error(), "haat admin login")
}

func TestOrderPlace(t *testing.T) {
	stores := wire(t)
	seedProduct(t, stores)

	out, err := run(t, "", "order", "place", "p1",
		"--name", "Rahim", "--phone", "01711", "--address", "Dhaka", "--size", "XL", "-q", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Order placed:")
	assert.Contains(t, out, "Cotton Panjabi x2 (XL)  Tk. 2,120.00")

	p, err := stores.Products.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, p.SizeStock["XL"])
	assert.Equal(t, 6, p.StockQuantity)
}

func TestOrderPlace_MissingFields(t *testing.T) {
	stores := wire(t)
	seedProduct(t, stores)

	_, err := run(t, "", "order", "place", "p1", "--name", "Rahim", "--phone", "  ")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingFields)

	orders, err := stores.Orders.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestAdminLogin(t *testing.T) {
	wire(t)

	_, err := run(t, "wrong\n", "admin", "login")
	assert.EqualError(t, err, "access denied")

	_, err = run(t, "", "order", "list")
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	login(t)
	out, err := run(t, "", "order", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No orders found.")

	out, err = run(t, "", "admin", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Admin logins")

	out, err = run(t, "", "admin", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out.")
	_, err = run(t, "", "order", "list")
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestOrderConfirm(t *testing.T) {
	stores := wire(t)
	seedOrder(t, stores)
	login(t)

	out, err := run(t, "", "order", "confirm", "abcdef123456", "80")
	require.NoError(t, err)
	assert.Contains(t, out, "confirmed with delivery charge Tk. 80.00")

	out, err = run(t, "", "order", "show", "abcdef123456")
	require.NoError(t, err)
	assert.Contains(t, out, "CONFIRMED")
	assert.Contains(t, out, "Total:     Tk. 1,140.00")

	_, err = run(t, "", "order", "confirm", "abcdef123456", "80")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestOrderConfirm_PromptDefaultsToSiteCharge(t *testing.T) {
	stores := wire(t)
	seedOrder(t, stores)
	login(t)

	out, err := run(t, "\n", "order", "confirm", "abcdef123456")
	require.NoError(t, err)
	assert.Contains(t, out, "Delivery charge [60]: ")
	assert.Contains(t, out, "Tk. 60.00")
}

func TestOrderConfirm_RejectsBadCharge(t *testing.T) {
	stores := wire(t)
	seedOrder(t, stores)
	login(t)

	_, err := run(t, "", "order", "confirm", "abcdef123456", "free")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderDelete_AsksFirst(t *testing.T) {
	stores := wire(t)
	seedOrder(t, stores)
	login(t)

	out, err := run(t, "n\n", "order", "delete", "abcdef123456")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")

	out, err = run(t, "", "order", "delete", "abcdef123456", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted order abcdef123456")

	_, err = stores.Orders.Get(context.Background(), "abcdef123456")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderInvoice(t *testing.T) {
	stores := wire(t)
	seedOrder(t, stores)
	login(t)
	path := filepath.Join(t.TempDir(), "out", "invoice.pdf")

	out, err := run(t, "", "order", "invoice", "abcdef123456", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Invoice ABCDEF12 written to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestAdminSiteSet(t *testing.T) {
	stores := wire(t)
	login(t)

	_, err := run(t, "", "admin", "site", "set")
	assert.EqualError(t, err, "nothing to update: pass at least one flag")

	out, err := run(t, "", "admin", "site", "set", "--delivery-inside", "70", "--broadcast", "Eid sale")
	require.NoError(t, err)
	assert.Contains(t, out, "Site settings updated.")

	s, err := stores.Settings.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 70.0, s.DeliveryChargeInside)
	assert.Equal(t, 120.0, s.DeliveryChargeOutside)
	assert.Equal(t, "Eid sale", s.BroadcastText)

	out, err = run(t, "", "admin", "site", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Inside city:  Tk. 70.00")
	assert.Contains(t, out, "Eid sale")
}

func TestChatSendAndShow(t *testing.T) {
	wire(t)

	out, err := run(t, "", "chat", "send", "sess-1", "is", "XL", "available?")
	require.NoError(t, err)
	assert.Contains(t, out, "Sent to sess-1")

	_, err = run(t, "", "chat", "reply", "sess-1", "yes")
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	login(t)
	_, err = run(t, "", "chat", "reply", "sess-1", "yes,", "in", "stock")
	require.NoError(t, err)

	out, err = run(t, "", "chat", "show", "sess-1")
	require.NoError(t, err)
	assert.Contains(t, out, "is XL available?")
	assert.Contains(t, out, "yes, in stock")
}

func TestCommands_NotConfigured(t *testing.T) {
	SetServices(Services{})

	tests := [][]string{
		{"product", "list"},
		{"order", "place", "p1"},
		{"order", "list"},
		{"chat", "show", "s1"},
		{"admin", "login"},
		{"admin", "site", "show"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := run(t, "", args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "not configured")
		})
	}
}

func TestParseSizeStock(t *testing.T) {
	got, err := parseSizeStock([]string{"M=3", " XL = 5"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"M": 3, "XL": 5}, got)

	got, err = parseSizeStock(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseSizeStock([]string{"M"})
	assert.Error(t, err)
	_, err = parseSizeStock([]string{"=3"})
	assert.Error(t, err)
	_, err = parseSizeStock([]string{"M=three"})
	assert.Error(t, err)
}

func TestStockLabel(t *testing.T) {
	assert.Equal(t, "4", stockLabel(&domain.Product{StockQuantity: 4}))
	assert.Equal(t, "8 (L:5 M:3)", stockLabel(&domain.Product{
		StockQuantity: 8,
		SizeStock:     map[string]int{"M": 3, "L": 5},
	}))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "Tk. 1,060.00", formatPrice(1060))
	assert.Equal(t, "Tk. 0.00", formatPrice(0))
	assert.Equal(t, "one size", sizeLabel(""))
	assert.Equal(t, "XL", sizeLabel("XL"))
	assert.Equal(t, "(none)", photoLabel(""))
	assert.Equal(t, "hello", truncate("hello", 10))
	assert.Equal(t, "hel…", truncate("hello", 4))
}
