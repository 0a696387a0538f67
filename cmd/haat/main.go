// Package main is the haat entrypoint: it wires the stores, services and
// adapters, then hands control to the cobra commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sssmarthaat/haat/internal/adapters/driven/ai"
	"github.com/sssmarthaat/haat/internal/adapters/driven/config/file"
	"github.com/sssmarthaat/haat/internal/adapters/driven/imaging"
	"github.com/sssmarthaat/haat/internal/adapters/driven/invoice/pdf"
	"github.com/sssmarthaat/haat/internal/adapters/driven/metrics"
	"github.com/sssmarthaat/haat/internal/adapters/driven/storage/memory"
	"github.com/sssmarthaat/haat/internal/adapters/driven/storage/mongo"
	"github.com/sssmarthaat/haat/internal/adapters/driven/storage/sqlite"
	"github.com/sssmarthaat/haat/internal/adapters/driving/cli"
	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
	"github.com/sssmarthaat/haat/internal/core/services"
	"github.com/sssmarthaat/haat/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cli.SetVersion(version)

	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	configDir := filepath.Join(home, ".haat")

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("settings unreadable, using defaults: %v", err)
		defaults := settingsService.GetDefaults()
		settings = &defaults
	}

	recorder := metrics.NewLatencyRecorder()

	stores, err := openStores(ctx, settings)
	if err != nil {
		// Settings commands still work so the backend can be fixed.
		logger.Warn("store unavailable (%v); falling back to memory", err)
		stores = memory.NewStores()
	}
	defer func() {
		if stores.Close != nil {
			if err := stores.Close(); err != nil {
				logger.Warn("closing store: %v", err)
			}
		}
	}()
	stores = metrics.InstrumentStores(stores, recorder)

	catalog := services.NewCatalogService(services.CatalogStores{
		Products:   stores.Products,
		Categories: stores.Categories,
		Banners:    stores.Banners,
	}, imaging.NewNormalizer(imaging.Config{}), settings.Images)

	sessions, err := file.NewSessionStore(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	svc := cli.Services{
		Catalog:      catalog,
		Checkout:     services.NewCheckoutService(stores.Products, stores.Orders),
		Chat:         services.NewChatService(stores.Messages),
		Orders:       services.NewOrderAdminService(stores.Orders),
		Invoices:     services.NewInvoiceService(stores.Orders, pdf.NewRenderer(), settings.Invoice),
		SiteSettings: services.NewSiteSettingsService(stores.Settings),
		Gate:         services.NewAdminGate(stores.Settings, sessions, stores.LoginStats),
		Stats:        services.NewStatsService(stores.LoginStats, recorder),
		Settings:     settingsService,
	}

	llm, err := ai.CreateAndValidateLLMService(&settings.LLM, ai.Options{
		Limits:   settings.AI,
		Recorder: recorder,
	})
	if err != nil {
		logger.Warn("AI features disabled: %v", err)
	}
	if llm != nil {
		defer llm.Close()

		cfg := services.AIConfig{Timeout: time.Duration(settings.AI.TimeoutSeconds) * time.Second}
		analyzer := services.NewProductAnalyzer(llm, cfg)
		stylist := services.NewStyleAssistant(llm, cfg)
		if prompts, err := file.NewPromptStore(filepath.Join(configDir, "prompts")); err != nil {
			logger.Warn("custom prompts unavailable: %v", err)
		} else {
			analyzer.SetPromptStore(prompts)
			stylist.SetPromptStore(prompts)
		}
		svc.Analyzer = analyzer
		svc.Stylist = stylist
	}

	cli.SetServices(svc)
	cli.SetTUIConfig(&cli.TUIConfig{
		Gate: services.NewAdminGate(stores.Settings, memory.NewSessionStore(), stores.LoginStats),
	})

	return cli.Execute(ctx)
}

func openStores(ctx context.Context, settings *domain.AppSettings) (driven.Stores, error) {
	switch settings.Store.Backend {
	case domain.StoreBackendMemory:
		return memory.NewStores(), nil
	case domain.StoreBackendMongo:
		timeout := time.Duration(settings.Mongo.TimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = domain.DefaultMongoTimeoutSeconds * time.Second
		}
		connectCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		store, err := mongo.NewStore(connectCtx, settings.Mongo)
		if err != nil {
			return driven.Stores{}, fmt.Errorf("mongo: %w", err)
		}
		return store.Stores(), nil
	default:
		store, err := sqlite.NewStore(settings.Store.DataDir)
		if err != nil {
			return driven.Stores{}, fmt.Errorf("sqlite: %w", err)
		}
		return store.Stores(), nil
	}
}
