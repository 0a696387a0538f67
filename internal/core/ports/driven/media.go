package driven

import (
	"context"
	"io"
	"time"

	"github.com/sssmarthaat/haat/internal/core/domain"
)

// ImageNormalizer downsizes and re-encodes images for inline storage.
type ImageNormalizer interface {
	// Normalize decodes r, scales it to fit opts without upscaling and
	// re-encodes it as JPEG. Failures wrap domain.ErrImageUnreadable,
	// domain.ErrImageDecode or domain.ErrRasterUnavailable.
	Normalize(ctx context.Context, r io.Reader, opts domain.NormalizeOptions) (*domain.InlineImage, error)
}

// InvoiceRenderer writes an invoice document.
type InvoiceRenderer interface {
	// Render writes inv to w.
	Render(ctx context.Context, inv *domain.Invoice, w io.Writer) error

	// ContentType returns the MIME type of rendered output.
	ContentType() string
}

// LatencyRecorder records operation latencies.
type LatencyRecorder interface {
	// Record adds one observation for the named operation.
	Record(op string, d time.Duration)

	// Snapshot returns a summary per operation.
	Snapshot() []domain.LatencySummary
}
