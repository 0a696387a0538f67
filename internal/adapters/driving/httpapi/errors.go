// Package httpapi exposes the storefront and admin console as a JSON REST
// API on gin. Admin routes require the current admin password in the
// X-Admin-Password header; the gate is a UX lock, not authentication.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/logger"
)

// Configuration errors.
var (
	// ErrMissingCatalogService is returned when the catalog service is not provided.
	ErrMissingCatalogService = errors.New("http: catalog service is required")

	// ErrMissingAdminGate is returned when the admin gate is not provided.
	ErrMissingAdminGate = errors.New("http: admin gate is required")
)

// statusFor maps a service error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrImageUnreadable),
		errors.Is(err, domain.ErrImageDecode),
		errors.Is(err, domain.ErrRasterUnavailable):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAccessDenied):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrLLMUnavailable),
		errors.Is(err, domain.ErrUnparsableSuggestion),
		errors.Is(err, domain.ErrNotImplemented):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes the error body and stops the handler chain.
func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
