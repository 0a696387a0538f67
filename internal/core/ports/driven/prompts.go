package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Unknown names return an error.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptProductAnalyze asks a vision model for a product name, description
	// and category as JSON. It has no format placeholders; the photo is attached.
	// The category vocabulary lives in the template.
	PromptProductAnalyze = "product_analyze"

	// PromptStyleAdvice asks for styling advice as JSON.
	// The template expects %s (query) and %s (context) placeholders.
	PromptStyleAdvice = "style_advice"
)

// PromptStoreAware is an optional interface for services that can use custom prompts.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service uses its built-in default prompt.
	SetPromptStore(store PromptStore)
}
