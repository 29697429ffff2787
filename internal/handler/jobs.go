package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobfolio/profile-intake/internal/domain"
	"github.com/jobfolio/profile-intake/internal/storage"
)

// JobsHandler serves the public approved-profile catalog.
type JobsHandler struct {
	store *storage.Store
}

// NewJobsHandler builds the catalog endpoints.
func NewJobsHandler(store *storage.Store) *JobsHandler {
	return &JobsHandler{store: store}
}

// List processes GET /api/jobs.
func (h *JobsHandler) List(c *gin.Context) {
	profiles := h.store.ListApproved(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"jobs": profiles,
	})
}

// GetBySlug processes GET /api/jobs/:slug.
func (h *JobsHandler) GetBySlug(c *gin.Context) {
	profile, err := h.store.GetApprovedBySlug(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, domain.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "Profile not found."})
		return
	}
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":  true,
		"job": profile,
	})
}
