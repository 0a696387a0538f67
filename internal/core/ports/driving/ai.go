package driving

import (
	"context"

	"github.com/sssmarthaat/haat/internal/core/domain"
)

// ProductAnalyzer suggests listing fields from a product photo.
type ProductAnalyzer interface {
	// Analyze returns a suggestion or an error. Callers apply the suggestion
	// to a draft only on success.
	Analyze(ctx context.Context, photo *domain.InlineImage) (*domain.ProductSuggestion, error)

	// Available reports whether an LLM is configured.
	Available() bool
}

// StyleAssistant answers shopper styling questions.
type StyleAssistant interface {
	// Advise answers query, optionally grounded by context (e.g. a product).
	Advise(ctx context.Context, query, context string) (*domain.StyleAdvice, error)

	// Available reports whether an LLM is configured.
	Available() bool
}
