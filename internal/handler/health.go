package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobfolio/profile-intake/internal/domain"
	"github.com/jobfolio/profile-intake/internal/storage"
)

// HealthHandler reports liveness and which storage tier the service is
// running on, so a probe can tell a degraded deployment from a healthy one.
type HealthHandler struct {
	version string
	store   *storage.Store
}

// NewHealthHandler creates a HealthHandler reporting the given version.
func NewHealthHandler(version string, store *storage.Store) *HealthHandler {
	return &HealthHandler{version: version, store: store}
}

// HealthCheck returns service health, version, and storage mode.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	storageMode := domain.StoragePostgres
	if !h.store.Configured() {
		storageMode = domain.StorageLocalFallback
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"version":    h.version,
		"storage":    storageMode,
		"moderation": h.store.AdminConfigured(),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
