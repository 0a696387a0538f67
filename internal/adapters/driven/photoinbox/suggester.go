package photoinbox

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/logger"
)

// PhotoNormalizer resizes a product photo.
type PhotoNormalizer interface {
	NormalizePhoto(ctx context.Context, r io.Reader) (*domain.InlineImage, error)
}

// Analyzer suggests listing fields for a photo.
type Analyzer interface {
	Analyze(ctx context.Context, photo *domain.InlineImage) (*domain.ProductSuggestion, error)
	Available() bool
}

// Suggestion is the outcome for one inbox photo.
type Suggestion struct {
	Path  string
	Image *domain.InlineImage

	// Draft holds the suggested fields. It stays empty when analysis failed
	// or no LLM is configured.
	Draft domain.ProductDraft

	// AnalyzeErr is the analyzer failure, if any. The normalized image is
	// still usable for manual entry.
	AnalyzeErr error
}

// Suggester normalizes and analyzes inbox photos.
type Suggester struct {
	normalizer PhotoNormalizer
	analyzer   Analyzer
}

// NewSuggester creates a suggester. analyzer may be nil.
func NewSuggester(normalizer PhotoNormalizer, analyzer Analyzer) *Suggester {
	return &Suggester{normalizer: normalizer, analyzer: analyzer}
}

// Suggest reads the photo at path. Normalization failures are returned as
// errors; analysis failures are carried in the Suggestion.
func (s *Suggester) Suggest(ctx context.Context, path string) (*Suggestion, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrImageUnreadable, err)
	}
	defer f.Close()

	img, err := s.normalizer.NormalizePhoto(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", path, err)
	}

	out := &Suggestion{Path: path, Image: img}
	if s.analyzer == nil || !s.analyzer.Available() {
		out.AnalyzeErr = domain.ErrLLMUnavailable
		return out, nil
	}

	suggestion, err := s.analyzer.Analyze(ctx, img)
	if err != nil {
		logger.Warn("photo inbox: analyze %s: %v", path, err)
		out.AnalyzeErr = err
		return out, nil
	}
	out.Draft = out.Draft.ApplySuggestion(suggestion)
	return out, nil
}

// Handler returns a watcher handler that passes each suggestion to report.
// Photos that cannot be normalized are logged and skipped.
func (s *Suggester) Handler(report func(*Suggestion)) Handler {
	return func(ctx context.Context, path string) {
		suggestion, err := s.Suggest(ctx, path)
		if err != nil {
			logger.Warn("photo inbox: %v", err)
			return
		}
		report(suggestion)
	}
}
