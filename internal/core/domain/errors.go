package domain

import "errors"

// Domain errors represent business logic failures.
// Adapters wrap them with context; callers match with errors.Is.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates a required collaborator was not wired.
	ErrNotImplemented = errors.New("not implemented")

	// Order Flow Errors.

	// ErrMissingFields indicates an order form was submitted without name, phone or address.
	ErrMissingFields = errors.New("name, phone and address are required")

	// ErrInvalidTransition indicates an order status change that the lifecycle forbids.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrStockNotUpdated indicates an order was written but its stock decrement failed.
	// The order and the stock update are not atomic.
	ErrStockNotUpdated = errors.New("order saved but stock not updated")

	// ErrAccessDenied is the generic denial for a wrong or stale admin password.
	ErrAccessDenied = errors.New("access denied")

	// AI Errors.

	// ErrLLMUnavailable indicates no language model is configured or reachable.
	// Suggestion features are disabled; manual entry keeps working.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrUnparsableSuggestion indicates the model answered without the requested JSON shape.
	ErrUnparsableSuggestion = errors.New("could not parse model response")

	// Image Errors.

	// ErrImageUnreadable indicates the image source could not be read.
	ErrImageUnreadable = errors.New("image unreadable")

	// ErrImageDecode indicates the bytes are not a supported image.
	ErrImageDecode = errors.New("image decode failed")

	// ErrRasterUnavailable indicates the off-screen raster for resizing could not be allocated.
	ErrRasterUnavailable = errors.New("raster unavailable")
)
