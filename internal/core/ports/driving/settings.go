package driving

import (
	"context"

	"github.com/sssmarthaat/haat/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// SetStoreBackend selects the catalog store backend.
	SetStoreBackend(backend domain.StoreBackend) error

	// Validate checks that the current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
	ValidateLLMConfig() error
}

// SiteSettingsService reads and merges the storefront settings document.
type SiteSettingsService interface {
	// Get returns the current site settings.
	Get(ctx context.Context) (*domain.SiteSettings, error)

	// Update merges a patch into the settings document.
	Update(ctx context.Context, patch domain.SiteSettingsPatch) (*domain.SiteSettings, error)

	// Watch streams settings changes until ctx is cancelled.
	Watch(ctx context.Context) (<-chan domain.SiteSettings, error)
}
