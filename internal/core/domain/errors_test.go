package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrMissingFields", ErrMissingFields},
		{"ErrInvalidTransition", ErrInvalidTransition},
		{"ErrStockNotUpdated", ErrStockNotUpdated},
		{"ErrAccessDenied", ErrAccessDenied},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrUnparsableSuggestion", ErrUnparsableSuggestion},
		{"ErrImageUnreadable", ErrImageUnreadable},
		{"ErrImageDecode", ErrImageDecode},
		{"ErrRasterUnavailable", ErrRasterUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	imageErrs := []error{ErrImageUnreadable, ErrImageDecode, ErrRasterUnavailable}
	for i, a := range imageErrs {
		for j, b := range imageErrs {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}

func TestErrors_Wrapped(t *testing.T) {
	err := fmt.Errorf("decrement stock p-1: %w", ErrNotFound)
	composite := fmt.Errorf("%w: %w", ErrStockNotUpdated, err)

	assert.True(t, errors.Is(composite, ErrStockNotUpdated))
	assert.True(t, errors.Is(composite, ErrNotFound))
	assert.False(t, errors.Is(composite, ErrAccessDenied))
}
