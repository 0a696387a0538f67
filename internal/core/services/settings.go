package services

import (
	"fmt"

	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
	"github.com/sssmarthaat/haat/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyStoreBackend      = "store.backend"
	keyStoreDataDir      = "store.data_dir"
	keyMongoURI          = "mongo.uri"
	keyMongoDatabase     = "mongo.database"
	keyMongoTimeout      = "mongo.timeout_seconds"
	keyLLMProvider       = "llm.provider"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMAPIKey         = "llm.api_key"
	keyAIRequestsPerSec  = "ai.requests_per_second"
	keyAIBurst           = "ai.burst"
	keyAITimeout         = "ai.timeout_seconds"
	keyImagesMaxWidth    = "images.max_width"
	keyImagesMaxHeight   = "images.max_height"
	keyImagesQuality     = "images.quality"
	keyInvoiceBrand      = "invoice.brand_name"
	keyInvoiceSubtitle   = "invoice.brand_subtitle"
	keyInvoiceCurrency   = "invoice.currency_prefix"
	keyHTTPAddr          = "http.addr"
	defaultOllamaBaseURL = "http://localhost:11434"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Store: domain.StoreSettings{
			Backend: s.getBackend(defaults.Store.Backend),
			DataDir: s.configStore.GetString(keyStoreDataDir),
		},
		Mongo: domain.MongoSettings{
			URI:            s.configStore.GetString(keyMongoURI),
			Database:       s.getString(keyMongoDatabase, defaults.Mongo.Database),
			TimeoutSeconds: s.getInt(keyMongoTimeout, defaults.Mongo.TimeoutSeconds),
		},
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		AI: domain.AISettings{
			RequestsPerSecond: s.getFloat(keyAIRequestsPerSec, defaults.AI.RequestsPerSecond),
			Burst:             s.getInt(keyAIBurst, defaults.AI.Burst),
			TimeoutSeconds:    s.getInt(keyAITimeout, defaults.AI.TimeoutSeconds),
		},
		Images: domain.ImageSettings{
			MaxWidth:  s.getInt(keyImagesMaxWidth, defaults.Images.MaxWidth),
			MaxHeight: s.getInt(keyImagesMaxHeight, defaults.Images.MaxHeight),
			Quality:   s.getInt(keyImagesQuality, defaults.Images.Quality),
		},
		Invoice: domain.InvoiceSettings{
			BrandName:      s.getString(keyInvoiceBrand, defaults.Invoice.BrandName),
			BrandSubtitle:  s.getString(keyInvoiceSubtitle, defaults.Invoice.BrandSubtitle),
			CurrencyPrefix: s.getString(keyInvoiceCurrency, defaults.Invoice.CurrencyPrefix),
		},
		HTTP: domain.HTTPSettings{
			Addr: s.getString(keyHTTPAddr, defaults.HTTP.Addr),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyStoreBackend, settings.Store.Backend.String()},
		{keyStoreDataDir, settings.Store.DataDir},
		{keyMongoURI, settings.Mongo.URI},
		{keyMongoDatabase, settings.Mongo.Database},
		{keyMongoTimeout, settings.Mongo.TimeoutSeconds},
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyAIRequestsPerSec, settings.AI.RequestsPerSecond},
		{keyAIBurst, settings.AI.Burst},
		{keyAITimeout, settings.AI.TimeoutSeconds},
		{keyImagesMaxWidth, settings.Images.MaxWidth},
		{keyImagesMaxHeight, settings.Images.MaxHeight},
		{keyImagesQuality, settings.Images.Quality},
		{keyInvoiceBrand, settings.Invoice.BrandName},
		{keyInvoiceSubtitle, settings.Invoice.BrandSubtitle},
		{keyInvoiceCurrency, settings.Invoice.CurrencyPrefix},
		{keyHTTPAddr, settings.HTTP.Addr},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	return s.configStore.Save()
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else if defaultModel, ok := domain.DefaultLLMModels()[provider]; ok {
		settings.LLM.Model = defaultModel
	}

	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = defaultOllamaBaseURL
		}
	} else {
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetStoreBackend selects the catalog store backend.
func (s *SettingsService) SetStoreBackend(backend domain.StoreBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("invalid store backend: %s", backend)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Store.Backend = backend
	return s.Save(settings)
}

// Validate checks that the current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.Store.Backend == domain.StoreBackendMongo && settings.Mongo.URI == "" {
		return fmt.Errorf("store backend %q requires mongo.uri", settings.Store.Backend.Description())
	}
	if settings.LLM.Provider != "" && !settings.LLM.IsConfigured() {
		return fmt.Errorf("LLM provider %q is missing an API key", settings.LLM.Provider.Description())
	}
	if settings.Images.Quality < 1 || settings.Images.Quality > 100 {
		return fmt.Errorf("images.quality must be between 1 and 100, got %d", settings.Images.Quality)
	}
	if settings.Images.MaxWidth <= 0 || settings.Images.MaxHeight <= 0 {
		return fmt.Errorf("image bounds must be positive, got %dx%d",
			settings.Images.MaxWidth, settings.Images.MaxHeight)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBackend(defaultVal domain.StoreBackend) domain.StoreBackend {
	backend := domain.StoreBackend(s.configStore.GetString(keyStoreBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
