// Package imaging downsizes uploaded photos and re-encodes them as JPEG for
// inline storage in catalog documents.
package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"

	// Registered decoders.
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
)

// Ensure Normalizer implements the interface.
var _ driven.ImageNormalizer = (*Normalizer)(nil)

// Limits on accepted input.
const (
	// DefaultMaxInputBytes bounds how much of the reader is consumed.
	DefaultMaxInputBytes = 20 << 20

	// DefaultMaxPixels bounds the destination raster size.
	DefaultMaxPixels = 4096 * 4096

	// DefaultMaxSourcePixels bounds the decoded source; 50 MP covers phone cameras.
	DefaultMaxSourcePixels = 50_000_000
)

// Config holds normalizer limits.
type Config struct {
	// MaxInputBytes is the largest accepted upload (default 20 MiB).
	MaxInputBytes int64

	// MaxPixels is the largest destination raster (default 4096x4096).
	MaxPixels int

	// MaxSourcePixels is the largest decoded source (default 50 MP).
	MaxSourcePixels int
}

// Normalizer scales images to fit within bounds without upscaling.
type Normalizer struct {
	maxInput     int64
	maxPixels    int
	maxSrcPixels int
}

// NewNormalizer creates a normalizer.
func NewNormalizer(cfg Config) *Normalizer {
	if cfg.MaxInputBytes <= 0 {
		cfg.MaxInputBytes = DefaultMaxInputBytes
	}
	if cfg.MaxPixels <= 0 {
		cfg.MaxPixels = DefaultMaxPixels
	}
	if cfg.MaxSourcePixels <= 0 {
		cfg.MaxSourcePixels = DefaultMaxSourcePixels
	}
	return &Normalizer{
		maxInput:     cfg.MaxInputBytes,
		maxPixels:    cfg.MaxPixels,
		maxSrcPixels: cfg.MaxSourcePixels,
	}
}

// Normalize decodes r, scales it to fit opts and re-encodes it as JPEG.
func (n *Normalizer) Normalize(
	ctx context.Context,
	r io.Reader,
	opts domain.NormalizeOptions,
) (*domain.InlineImage, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: no image source", domain.ErrImageUnreadable)
	}

	raw, err := io.ReadAll(io.LimitReader(r, n.maxInput+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrImageUnreadable, err)
	}
	if int64(len(raw)) > n.maxInput {
		return nil, fmt.Errorf("%w: image larger than %d bytes", domain.ErrImageUnreadable, n.maxInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Header dimensions are checked before the full decode allocates.
	header, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrImageDecode, err)
	}
	if header.Width <= 0 || header.Height <= 0 ||
		int64(header.Width)*int64(header.Height) > int64(n.maxSrcPixels) {
		return nil, fmt.Errorf("%w: source %dx%d is too large",
			domain.ErrRasterUnavailable, header.Width, header.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrImageDecode, err)
	}

	b := src.Bounds()
	w, h := opts.Fit(b.Dx(), b.Dy())
	if w <= 0 || h <= 0 || w*h > n.maxPixels {
		return nil, fmt.Errorf("%w: cannot allocate %dx%d raster", domain.ErrRasterUnavailable, w, h)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// JPEG has no alpha; transparent regions become white.
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	quality := opts.Quality
	if quality <= 0 || quality > 100 {
		quality = domain.DefaultJPEGQuality
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return &domain.InlineImage{MediaType: "image/jpeg", Data: buf.Bytes()}, nil
}
