package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// InlineImage is an encoded image carried inline in documents.
type InlineImage struct {
	// MediaType is the MIME type, e.g. "image/jpeg".
	MediaType string

	// Data is the encoded image bytes.
	Data []byte
}

// DataURI returns the base64 data URI for the image.
func (i *InlineImage) DataURI() string {
	return "data:" + i.MediaType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// Base64 returns the base64 image payload without the data URI prefix.
func (i *InlineImage) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// ParseDataURI decodes a base64 data URI.
func ParseDataURI(uri string) (*InlineImage, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, fmt.Errorf("%w: not a data URI", ErrInvalidInput)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("%w: data URI has no payload", ErrInvalidInput)
	}
	mediaType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, fmt.Errorf("%w: data URI is not base64", ErrInvalidInput)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: decode data URI: %w", ErrInvalidInput, err)
	}
	return &InlineImage{MediaType: mediaType, Data: data}, nil
}

// DefaultJPEGQuality is the re-encode quality for normalized images.
const DefaultJPEGQuality = 35

// ImageBounds is a maximum width and height in pixels.
type ImageBounds struct {
	MaxWidth  int
	MaxHeight int
}

// Standard bounds for catalog images.
var (
	ProductImageBounds = ImageBounds{MaxWidth: 800, MaxHeight: 800}
	BannerImageBounds  = ImageBounds{MaxWidth: 1200, MaxHeight: 600}
)

// NormalizeOptions control image normalisation.
type NormalizeOptions struct {
	ImageBounds

	// Quality is the JPEG quality, 1-100. Zero means DefaultJPEGQuality.
	Quality int
}

// ScaleFactor returns the proportional scale that fits w x h within the
// bounds. It never exceeds 1.
func (b ImageBounds) ScaleFactor(w, h int) float64 {
	scale := 1.0
	if b.MaxWidth > 0 && w > b.MaxWidth {
		scale = float64(b.MaxWidth) / float64(w)
	}
	if b.MaxHeight > 0 && h > b.MaxHeight {
		if s := float64(b.MaxHeight) / float64(h); s < scale {
			scale = s
		}
	}
	return scale
}

// Fit returns the target dimensions for a w x h image. Each side is at least 1.
func (b ImageBounds) Fit(w, h int) (int, int) {
	scale := b.ScaleFactor(w, h)
	if scale == 1 {
		return w, h
	}
	tw := int(float64(w) * scale)
	th := int(float64(h) * scale)
	return max(tw, 1), max(th, 1)
}
