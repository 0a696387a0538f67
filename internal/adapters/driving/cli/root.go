// Package cli provides the haat command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driving"
	"github.com/sssmarthaat/haat/internal/logger"
)

// version is set at build time.
var version = "dev"

var verbose bool

// Services wired by main.
var (
	catalogService      driving.CatalogService
	checkoutService     driving.CheckoutService
	chatService         driving.ChatService
	orderService        driving.OrderAdminService
	invoiceService      driving.InvoiceService
	siteSettingsService driving.SiteSettingsService
	adminGate           driving.AdminGate
	statsService        driving.StatsService
	productAnalyzer     driving.ProductAnalyzer
	styleAssistant      driving.StyleAssistant
	settingsService     driving.SettingsService
)

// Services holds the driving ports the commands use.
// Analyzer and Stylist are nil when no LLM is configured.
type Services struct {
	Catalog      driving.CatalogService
	Checkout     driving.CheckoutService
	Chat         driving.ChatService
	Orders       driving.OrderAdminService
	Invoices     driving.InvoiceService
	SiteSettings driving.SiteSettingsService
	Gate         driving.AdminGate
	Stats        driving.StatsService
	Analyzer     driving.ProductAnalyzer
	Stylist      driving.StyleAssistant
	Settings     driving.SettingsService
}

var rootCmd = &cobra.Command{
	Use:   "haat",
	Short: "SS SMART HAAT storefront and admin console",
	Long: `haat runs the SS SMART HAAT storefront: a product catalog with
per-size stock, customer orders and chat, and an admin console for
confirming orders and printing invoices.

Start the interactive storefront with 'haat tui' or the REST API with
'haat serve'. Admin commands require 'haat admin login' first.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetVersion sets the version reported by 'haat version'.
func SetVersion(v string) {
	version = v
}

// SetServices wires the driving ports into the commands.
func SetServices(s Services) {
	catalogService = s.Catalog
	checkoutService = s.Checkout
	chatService = s.Chat
	orderService = s.Orders
	invoiceService = s.Invoices
	siteSettingsService = s.SiteSettings
	adminGate = s.Gate
	statsService = s.Stats
	settingsService = s.Settings
	productAnalyzer = s.Analyzer
	styleAssistant = s.Stylist
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// requireAdmin checks the stored admin session.
func requireAdmin(ctx context.Context) error {
	if adminGate == nil {
		return errors.New("admin gate not configured")
	}
	if err := adminGate.Require(ctx); err != nil {
		if errors.Is(err, domain.ErrAccessDenied) {
			return fmt.Errorf("%w: run 'haat admin login' first", err)
		}
		return err
	}
	return nil
}
