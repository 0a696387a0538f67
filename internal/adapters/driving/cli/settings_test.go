package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sssmarthaat/haat/internal/adapters/driven/storage/memory"
	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/services"
)

// wireSettings points the settings commands at an in-memory config store.
func wireSettings(t *testing.T) *services.SettingsService {
	t.Helper()
	svc := services.NewSettingsService(memory.NewConfigStore(), nil)
	SetServices(Services{Settings: svc})
	t.Cleanup(func() { SetServices(Services{}) })
	return svc
}

func TestSettingsStore(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		backend  domain.StoreBackend
		uri      string
		database string
		output   string
	}{
		{
			name:     "default choice keeps sqlite",
			stdin:    "\n",
			backend:  domain.StoreBackendSQLite,
			database: domain.DefaultMongoDatabase,
			output:   "Store backend set to: SQLite (embedded file)",
		},
		{
			name:     "memory",
			stdin:    "1\n",
			backend:  domain.StoreBackendMemory,
			database: domain.DefaultMongoDatabase,
			output:   "Store backend set to: Memory (ephemeral)",
		},
		{
			name:     "out of range falls back to default",
			stdin:    "9\n",
			backend:  domain.StoreBackendSQLite,
			database: domain.DefaultMongoDatabase,
			output:   "Store backend set to: SQLite (embedded file)",
		},
		{
			name:     "mongo with default database",
			stdin:    "3\nmongodb://localhost:27017\n\n",
			backend:  domain.StoreBackendMongo,
			uri:      "mongodb://localhost:27017",
			database: domain.DefaultMongoDatabase,
			output:   "Store backend set to: MongoDB (document database) (haat)",
		},
		{
			name:     "mongo with named database",
			stdin:    "3\nmongodb://db:27017\nshop\n",
			backend:  domain.StoreBackendMongo,
			uri:      "mongodb://db:27017",
			database: "shop",
			output:   "(shop)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := wireSettings(t)

			out, err := run(t, tt.stdin, "settings", "store")
			require.NoError(t, err)
			assert.Contains(t, out, "Enter choice [2]: ")
			assert.Contains(t, out, tt.output)

			settings, err := svc.Get()
			require.NoError(t, err)
			assert.Equal(t, tt.backend, settings.Store.Backend)
			assert.Equal(t, tt.uri, settings.Mongo.URI)
			assert.Equal(t, tt.database, settings.Mongo.Database)
		})
	}
}

func TestSettingsStore_MongoRequiresURI(t *testing.T) {
	svc := wireSettings(t)

	_, err := run(t, "3\n\n", "settings", "store")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MongoDB URI is required")

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StoreBackendSQLite, settings.Store.Backend)
}

func TestSettingsLLM(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		provider domain.AIProvider
		model    string
		apiKey   string
		baseURL  string
	}{
		{
			name:     "ollama defaults",
			stdin:    "\n\n",
			provider: domain.AIProviderOllama,
			model:    "llava",
			baseURL:  "http://localhost:11434",
		},
		{
			name:     "openai with custom model",
			stdin:    "2\ngpt-4o\nsk-test-1234567890\n",
			provider: domain.AIProviderOpenAI,
			model:    "gpt-4o",
			apiKey:   "sk-test-1234567890",
		},
		{
			name:     "anthropic default model",
			stdin:    "3\n\nsk-ant-1234567890\n",
			provider: domain.AIProviderAnthropic,
			model:    "claude-3-5-sonnet-latest",
			apiKey:   "sk-ant-1234567890",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := wireSettings(t)

			out, err := run(t, tt.stdin, "settings", "llm")
			require.NoError(t, err)
			assert.Contains(t, out, "Validating configuration... OK")

			settings, err := svc.Get()
			require.NoError(t, err)
			assert.Equal(t, tt.provider, settings.LLM.Provider)
			assert.Equal(t, tt.model, settings.LLM.Model)
			assert.Equal(t, tt.apiKey, settings.LLM.APIKey)
			assert.Equal(t, tt.baseURL, settings.LLM.BaseURL)
		})
	}
}

func TestSettingsLLM_MissingAPIKey(t *testing.T) {
	svc := wireSettings(t)

	_, err := run(t, "2\n\n\n", "settings", "llm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Empty(t, settings.LLM.Provider)
}

func TestSettingsWizard(t *testing.T) {
	t.Run("skips LLM", func(t *testing.T) {
		svc := wireSettings(t)

		out, err := run(t, "1\nn\n", "settings", "wizard")
		require.NoError(t, err)
		assert.Contains(t, out, "Skipped. AI features stay disabled")
		assert.Contains(t, out, "All settings are valid and saved.")

		settings, err := svc.Get()
		require.NoError(t, err)
		assert.Equal(t, domain.StoreBackendMemory, settings.Store.Backend)
		assert.Empty(t, settings.LLM.Provider)
	})

	t.Run("configures both steps", func(t *testing.T) {
		svc := wireSettings(t)

		out, err := run(t, "2\nyes\n1\nllava:13b\n", "settings", "wizard")
		require.NoError(t, err)
		assert.Contains(t, out, "LLM provider configured: ")
		assert.Contains(t, out, "(llava:13b)")

		settings, err := svc.Get()
		require.NoError(t, err)
		assert.Equal(t, domain.StoreBackendSQLite, settings.Store.Backend)
		assert.Equal(t, domain.AIProviderOllama, settings.LLM.Provider)
		assert.Equal(t, "llava:13b", settings.LLM.Model)
	})
}

func TestSettingsShow(t *testing.T) {
	svc := wireSettings(t)
	require.NoError(t, svc.SetLLMProvider(domain.AIProviderOpenAI, "", "sk-proj-1234567890abcdef"))

	out, err := run(t, "", "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Backend: SQLite (embedded file)")
	assert.Contains(t, out, "Model: gpt-4o-mini")
	assert.Contains(t, out, "API Key: sk-p...cdef")
	assert.NotContains(t, out, "sk-proj-1234567890abcdef")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsShow_WarnsOnMongoWithoutURI(t *testing.T) {
	svc := wireSettings(t)
	settings, err := svc.Get()
	require.NoError(t, err)
	settings.Store.Backend = domain.StoreBackendMongo
	require.NoError(t, svc.Save(settings))

	out, err := run(t, "", "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "Warning: ")
	assert.Contains(t, out, "requires mongo.uri")
}

func TestSettings_NotConfigured(t *testing.T) {
	SetServices(Services{})

	for _, args := range [][]string{
		{"settings", "show"},
		{"settings", "store"},
		{"settings", "llm"},
		{"settings", "wizard"},
	} {
		_, err := run(t, "", args...)
		require.Error(t, err, strings.Join(args, " "))
		assert.Contains(t, err.Error(), "settings service not configured")
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{answer: "y\n", want: true},
		{answer: "YES\n", want: true},
		{answer: "  yes  \n", want: true},
		{answer: "n\n", want: false},
		{answer: "\n", want: false},
		{answer: "", want: false},
		{answer: "sure\n", want: false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.answer), func(t *testing.T) {
			var out strings.Builder
			cmd := &cobra.Command{}
			cmd.SetOut(&out)
			cmd.SetErr(&out)

			got := confirm(cmd, strings.NewReader(tt.answer), "Delete order abc?")

			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Delete order abc? [y/N]: ", out.String())
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: "****"},
		{name: "eight characters or fewer", input: "12345678", want: "****"},
		{name: "openai key", input: "sk-proj-1234567890abcdef", want: "sk-p...cdef"},
		{name: "anthropic key", input: "sk-ant-api03-abcdefghijkl", want: "sk-a...ijkl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maskAPIKey(tt.input))
		})
	}
}

func TestParseChoice(t *testing.T) {
	backends := len(domain.AllStoreBackends())

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty keeps default", input: "", want: 2},
		{name: "first backend", input: "1", want: 1},
		{name: "last backend", input: "3", want: 3},
		{name: "zero", input: "0", want: 2},
		{name: "past the list", input: "4", want: 2},
		{name: "not a number", input: "mongo", want: 2},
		{name: "negative", input: "-1", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseChoice(tt.input, backends, 2))
		})
	}
}
