package domain

const unknownDescription = "Unknown"

// StoreBackend selects the catalog document store implementation.
type StoreBackend string

// Available store backends.
const (
	// StoreBackendMemory keeps all collections in process memory.
	StoreBackendMemory StoreBackend = "memory"

	// StoreBackendSQLite stores collections in an embedded SQLite file.
	StoreBackendSQLite StoreBackend = "sqlite"

	// StoreBackendMongo stores collections in a MongoDB database.
	StoreBackendMongo StoreBackend = "mongo"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendMemory, StoreBackendSQLite, StoreBackendMongo:
		return true
	default:
		return false
	}
}

// IsPersistent returns true if data survives a process restart.
func (b StoreBackend) IsPersistent() bool {
	return b == StoreBackendSQLite || b == StoreBackendMongo
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StoreBackend) Description() string {
	switch b {
	case StoreBackendMemory:
		return "Memory (ephemeral)"
	case StoreBackendSQLite:
		return "SQLite (embedded file)"
	case StoreBackendMongo:
		return "MongoDB (document database)"
	default:
		return unknownDescription
	}
}

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// StoreSettings holds catalog store configuration.
type StoreSettings struct {
	// Backend selects the store implementation.
	Backend StoreBackend

	// DataDir holds the SQLite file and the photo inbox. Empty means ~/.haat.
	DataDir string
}

// MongoSettings holds MongoDB connection configuration.
type MongoSettings struct {
	URI            string
	Database       string
	TimeoutSeconds int
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name. It must accept image input for the analyzer.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// AISettings throttles and bounds AI calls.
type AISettings struct {
	RequestsPerSecond float64
	Burst             int
	TimeoutSeconds    int
}

// ImageSettings holds product photo normalisation bounds.
// Banner bounds are fixed at 1200x600.
type ImageSettings struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// InvoiceSettings holds the invoice header and currency.
type InvoiceSettings struct {
	BrandName      string
	BrandSubtitle  string
	CurrencyPrefix string
}

// HTTPSettings holds the REST API listener configuration.
type HTTPSettings struct {
	Addr string
}

// AppSettings holds all application settings.
// The storefront's site settings document is separate; see SiteSettings.
type AppSettings struct {
	Store   StoreSettings
	Mongo   MongoSettings
	LLM     LLMSettings
	AI      AISettings
	Images  ImageSettings
	Invoice InvoiceSettings
	HTTP    HTTPSettings
}

// Default setting values.
const (
	DefaultMongoDatabase       = "haat"
	DefaultMongoTimeoutSeconds = 10
	DefaultAIRequestsPerSecond = 1
	DefaultAIBurst             = 2
	DefaultAITimeoutSeconds    = 60
	DefaultHTTPAddr            = "127.0.0.1:8080"
	DefaultCurrencyPrefix      = "Tk."
	DefaultBrandName           = "SS SMART HAAT"
	DefaultBrandSubtitle       = "Smart shopping, delivered"
)

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured; AI features report ErrLLMUnavailable until set.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Store: StoreSettings{Backend: StoreBackendSQLite},
		Mongo: MongoSettings{
			Database:       DefaultMongoDatabase,
			TimeoutSeconds: DefaultMongoTimeoutSeconds,
		},
		LLM: LLMSettings{},
		AI: AISettings{
			RequestsPerSecond: DefaultAIRequestsPerSecond,
			Burst:             DefaultAIBurst,
			TimeoutSeconds:    DefaultAITimeoutSeconds,
		},
		Images: ImageSettings{
			MaxWidth:  ProductImageBounds.MaxWidth,
			MaxHeight: ProductImageBounds.MaxHeight,
			Quality:   DefaultJPEGQuality,
		},
		Invoice: InvoiceSettings{
			BrandName:      DefaultBrandName,
			BrandSubtitle:  DefaultBrandSubtitle,
			CurrencyPrefix: DefaultCurrencyPrefix,
		},
		HTTP: HTTPSettings{Addr: DefaultHTTPAddr},
	}
}

// AllStoreBackends returns all available store backends.
func AllStoreBackends() []StoreBackend {
	return []StoreBackend{
		StoreBackendMemory,
		StoreBackendSQLite,
		StoreBackendMongo,
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultLLMModels returns default vision-capable models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llava",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}
