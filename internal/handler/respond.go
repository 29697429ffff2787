// Package handler implements the HTTP handlers for the intake API.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobfolio/profile-intake/internal/domain"
)

const unsupportedContentTypeMessage = "Unsupported content type. Use JSON or form data."

// respondDomainError maps the shared error kinds to their HTTP shape.
// Handlers call this after their endpoint-specific cases are exhausted.
func respondDomainError(c *gin.Context, err error) {
	var cfgErr *domain.ConfigurationError
	if errors.As(err, &cfgErr) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "message": cfgErr.Message})
		return
	}

	var authErr *domain.AuthorizationError
	if errors.As(err, &authErr) {
		status := http.StatusUnauthorized
		if authErr.Forbidden {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"ok": false, "message": authErr.Message})
		return
	}

	var storageErr *domain.StorageError
	if errors.As(err, &storageErr) {
		message := "Submission could not be persisted. Please try again."
		if storageErr.PolicyViolation {
			message = "Storage policy blocked the write. Configure an elevated database credential."
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": message})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Internal error."})
}
