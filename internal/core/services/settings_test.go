package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sssmarthaat/haat/internal/adapters/driven/storage/memory"
	"github.com/sssmarthaat/haat/internal/core/domain"
)

type stubValidator struct {
	err    error
	called *domain.LLMSettings
}

func (v *stubValidator) ValidateLLM(cfg *domain.LLMSettings) error {
	v.called = cfg
	return v.err
}

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)
	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	settings, err := service.Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults, *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("store.backend", "mongo")
	_ = store.Set("mongo.uri", "mongodb://localhost:27017")
	_ = store.Set("llm.provider", "openai")
	_ = store.Set("llm.model", "gpt-4o")
	_ = store.Set("ai.requests_per_second", 0.5)
	_ = store.Set("images.quality", 60)
	_ = store.Set("invoice.currency_prefix", "BDT")

	settings, err := NewSettingsService(store, nil).Get()
	require.NoError(t, err)

	assert.Equal(t, domain.StoreBackendMongo, settings.Store.Backend)
	assert.Equal(t, "mongodb://localhost:27017", settings.Mongo.URI)
	assert.Equal(t, domain.DefaultMongoDatabase, settings.Mongo.Database)
	assert.Equal(t, domain.AIProviderOpenAI, settings.LLM.Provider)
	assert.Equal(t, "gpt-4o", settings.LLM.Model)
	assert.Equal(t, 0.5, settings.AI.RequestsPerSecond)
	assert.Equal(t, 60, settings.Images.Quality)
	assert.Equal(t, "BDT", settings.Invoice.CurrencyPrefix)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("store.backend", "firestore")
	_ = store.Set("llm.provider", "gemini")

	settings, err := NewSettingsService(store, nil).Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Store.Backend, settings.Store.Backend)
	assert.Equal(t, defaults.LLM.Provider, settings.LLM.Provider)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	settings := domain.DefaultAppSettings()
	settings.Store.Backend = domain.StoreBackendMemory
	settings.LLM = domain.LLMSettings{
		Provider: domain.AIProviderAnthropic,
		Model:    "claude-3-5-sonnet-latest",
		APIKey:   "sk-ant-test",
	}
	settings.HTTP.Addr = ":9090"

	require.NoError(t, service.Save(&settings))

	retrieved, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *retrieved)
}

func TestSettingsService_Save_KeepsAPIKeyWhenEmpty(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("llm.api_key", "sk-existing")
	service := NewSettingsService(store, nil)

	settings := domain.DefaultAppSettings()
	require.NoError(t, service.Save(&settings))

	assert.Equal(t, "sk-existing", store.GetString("llm.api_key"))
}

func TestSettingsService_SetLLMProvider(t *testing.T) {
	tests := []struct {
		name      string
		provider  domain.AIProvider
		model     string
		apiKey    string
		wantModel string
		wantURL   string
		wantErr   bool
	}{
		{"ollama default model", domain.AIProviderOllama, "", "", "llava", defaultOllamaBaseURL, false},
		{"openai custom model", domain.AIProviderOpenAI, "gpt-4o", "sk", "gpt-4o", "", false},
		{"anthropic default model", domain.AIProviderAnthropic, "", "sk", "claude-3-5-sonnet-latest", "", false},
		{"openai without key", domain.AIProviderOpenAI, "", "", "", "", true},
		{"invalid provider", domain.AIProvider("gemini"), "", "sk", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore(), nil)

			err := service.SetLLMProvider(tt.provider, tt.model, tt.apiKey)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			settings, err := service.Get()
			require.NoError(t, err)
			assert.Equal(t, tt.provider, settings.LLM.Provider)
			assert.Equal(t, tt.wantModel, settings.LLM.Model)
			assert.Equal(t, tt.wantURL, settings.LLM.BaseURL)
			assert.Equal(t, tt.apiKey, settings.LLM.APIKey)
		})
	}
}

func TestSettingsService_SetStoreBackend(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	require.NoError(t, service.SetStoreBackend(domain.StoreBackendMemory))
	settings, _ := service.Get()
	assert.Equal(t, domain.StoreBackendMemory, settings.Store.Backend)

	assert.Error(t, service.SetStoreBackend("firestore"))
}

func TestSettingsService_Validate(t *testing.T) {
	tests := []struct {
		name    string
		setup   map[string]any
		wantErr string
	}{
		{"defaults are valid", nil, ""},
		{"mongo without uri", map[string]any{"store.backend": "mongo"}, "mongo.uri"},
		{"mongo with uri", map[string]any{"store.backend": "mongo", "mongo.uri": "mongodb://x"}, ""},
		{"openai without key", map[string]any{"llm.provider": "openai"}, "API key"},
		{"quality too high", map[string]any{"images.quality": 101}, "images.quality"},
		{"negative bounds", map[string]any{"images.max_width": -5}, "image bounds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			for k, v := range tt.setup {
				_ = store.Set(k, v)
			}
			err := NewSettingsService(store, nil).Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

func TestSettingsService_ValidateLLMConfig(t *testing.T) {
	t.Run("no validator", func(t *testing.T) {
		assert.NoError(t, NewSettingsService(memory.NewConfigStore(), nil).ValidateLLMConfig())
	})

	t.Run("passes current settings", func(t *testing.T) {
		store := memory.NewConfigStore()
		_ = store.Set("llm.provider", "ollama")
		v := &stubValidator{}

		require.NoError(t, NewSettingsService(store, v).ValidateLLMConfig())
		require.NotNil(t, v.called)
		assert.Equal(t, domain.AIProviderOllama, v.called.Provider)
	})

	t.Run("returns validator error", func(t *testing.T) {
		v := &stubValidator{err: errors.New("unreachable")}
		err := NewSettingsService(memory.NewConfigStore(), v).ValidateLLMConfig()
		assert.EqualError(t, err, "unreachable")
	})
}
