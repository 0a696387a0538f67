package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreBackend_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		backend  StoreBackend
		expected bool
	}{
		{"memory is valid", StoreBackendMemory, true},
		{"sqlite is valid", StoreBackendSQLite, true},
		{"mongo is valid", StoreBackendMongo, true},
		{"empty string is invalid", StoreBackend(""), false},
		{"unknown backend is invalid", StoreBackend("firestore"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.backend.IsValid())
		})
	}
}

func TestStoreBackend_IsPersistent(t *testing.T) {
	assert.False(t, StoreBackendMemory.IsPersistent())
	assert.True(t, StoreBackendSQLite.IsPersistent())
	assert.True(t, StoreBackendMongo.IsPersistent())
}

func TestStoreBackend_Description(t *testing.T) {
	for _, b := range AllStoreBackends() {
		assert.NotEqual(t, unknownDescription, b.Description(), b.String())
	}
	assert.Equal(t, unknownDescription, StoreBackend("x").Description())
}

// TestAIProvider_IsValid tests all valid and invalid AI providers
func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		provider AIProvider
		expected bool
	}{
		{"ollama is valid", AIProviderOllama, true},
		{"openai is valid", AIProviderOpenAI, true},
		{"anthropic is valid", AIProviderAnthropic, true},
		{"empty string is invalid", AIProvider(""), false},
		{"unknown provider is invalid", AIProvider("gemini"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.IsValid())
		})
	}
}

func TestAIProvider_RequiresAPIKey(t *testing.T) {
	assert.False(t, AIProviderOllama.RequiresAPIKey())
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.True(t, AIProviderAnthropic.RequiresAPIKey())
	assert.True(t, AIProviderOllama.IsLocal())
	assert.False(t, AIProviderOpenAI.IsLocal())
}

func TestAIProvider_Description(t *testing.T) {
	assert.Equal(t, "Ollama (local)", AIProviderOllama.Description())
	assert.Equal(t, "OpenAI (cloud)", AIProviderOpenAI.Description())
	assert.Equal(t, "Anthropic (cloud)", AIProviderAnthropic.Description())
	assert.Equal(t, unknownDescription, AIProvider("x").Description())
}

func TestLLMSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings LLMSettings
		expected bool
	}{
		{"empty", LLMSettings{}, false},
		{"ollama without key", LLMSettings{Provider: AIProviderOllama, Model: "llava"}, true},
		{"openai without key", LLMSettings{Provider: AIProviderOpenAI}, false},
		{"openai with key", LLMSettings{Provider: AIProviderOpenAI, APIKey: "sk"}, true},
		{"anthropic with key", LLMSettings{Provider: AIProviderAnthropic, APIKey: "sk"}, true},
		{"invalid provider", LLMSettings{Provider: "x", APIKey: "sk"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.IsConfigured())
		})
	}
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, StoreBackendSQLite, s.Store.Backend)
	assert.Equal(t, "haat", s.Mongo.Database)
	assert.False(t, s.LLM.IsConfigured())
	assert.Equal(t, 800, s.Images.MaxWidth)
	assert.Equal(t, 800, s.Images.MaxHeight)
	assert.Equal(t, 35, s.Images.Quality)
	assert.Equal(t, "Tk.", s.Invoice.CurrencyPrefix)
	assert.Equal(t, 60, s.AI.TimeoutSeconds)
	assert.NotEmpty(t, s.HTTP.Addr)
}

func TestDefaultLLMModels(t *testing.T) {
	models := DefaultLLMModels()
	for _, p := range AllLLMProviders() {
		assert.NotEmpty(t, models[p], p.String())
	}
}
