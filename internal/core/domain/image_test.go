package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineImage_DataURI(t *testing.T) {
	img := &InlineImage{MediaType: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff}}

	uri := img.DataURI()
	assert.Equal(t, "data:image/jpeg;base64,/9j/", uri)

	parsed, err := ParseDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, img, parsed)
}

func TestParseDataURI_Invalid(t *testing.T) {
	tests := []string{
		"",
		"https://example.com/a.jpg",
		"data:image/png;base64",
		"data:image/png,plain",
		"data:image/png;base64,***",
	}
	for _, uri := range tests {
		t.Run(uri, func(t *testing.T) {
			_, err := ParseDataURI(uri)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestImageBounds_Fit(t *testing.T) {
	tests := []struct {
		name   string
		bounds ImageBounds
		w, h   int
		wantW  int
		wantH  int
	}{
		{"landscape product", ProductImageBounds, 1600, 1200, 800, 600},
		{"portrait product", ProductImageBounds, 1000, 2000, 400, 800},
		{"small image never upscaled", ProductImageBounds, 300, 200, 300, 200},
		{"exact bounds", ProductImageBounds, 800, 800, 800, 800},
		{"banner width limited", BannerImageBounds, 2400, 800, 1200, 400},
		{"banner height limited", BannerImageBounds, 1300, 1200, 650, 600},
		{"extreme aspect keeps one pixel", ProductImageBounds, 10000, 5, 800, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.bounds.Fit(tt.w, tt.h)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
			assert.LessOrEqual(t, w, tt.bounds.MaxWidth)
			assert.LessOrEqual(t, h, tt.bounds.MaxHeight)
		})
	}
}

func TestImageBounds_ScaleFactor(t *testing.T) {
	assert.Equal(t, 1.0, ProductImageBounds.ScaleFactor(100, 100))
	assert.Equal(t, 0.5, ProductImageBounds.ScaleFactor(1600, 400))
}
