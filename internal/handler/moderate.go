package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jobfolio/profile-intake/internal/domain"
	"github.com/jobfolio/profile-intake/internal/logger"
	"github.com/jobfolio/profile-intake/internal/moderation"
	"github.com/jobfolio/profile-intake/internal/storage"
	"github.com/jobfolio/profile-intake/internal/telemetry"
	"github.com/jobfolio/profile-intake/internal/validate"
)

// ModerateHandler serves the moderation queue and decision endpoints.
type ModerateHandler struct {
	store   *storage.Store
	guard   *moderation.Guard
	metrics *telemetry.Metrics
	log     logger.Logger
}

// NewModerateHandler builds the moderation endpoints.
func NewModerateHandler(
	store *storage.Store,
	guard *moderation.Guard,
	metrics *telemetry.Metrics,
	log logger.Logger,
) *ModerateHandler {
	return &ModerateHandler{store: store, guard: guard, metrics: metrics, log: log}
}

// List processes GET /api/moderate.
func (h *ModerateHandler) List(c *gin.Context) {
	if _, err := h.guard.RequireModerator(c.Request.Context(), c.GetHeader("Authorization")); err != nil {
		respondDomainError(c, err)
		return
	}

	opts := pendingListOptions(c)
	result, err := h.store.ListPending(c.Request.Context(), opts)
	if err != nil {
		h.log.Error("pending list failed", logger.Error(err))
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"pending": result,
	})
}

type moderationRequest struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	ReviewNotes string `json:"reviewNotes"`
}

// Decide processes POST /api/moderate.
func (h *ModerateHandler) Decide(c *gin.Context) {
	user, err := h.guard.RequireModerator(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	if !strings.Contains(c.ContentType(), "application/json") {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"ok": false, "message": "Use application/json."})
		return
	}

	var req moderationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Invalid moderation payload."})
		return
	}

	fieldErrs := domain.FieldErrors{}
	if uuid.Validate(req.ID) != nil {
		fieldErrs.Add("id", "must be a valid uuid")
	}
	if req.Status != domain.StatusApproved && req.Status != domain.StatusRejected {
		fieldErrs.Add("status", "must be approved or rejected")
	}
	req.ReviewNotes = strings.TrimSpace(req.ReviewNotes)
	if err := validate.ReviewNotes(req.ReviewNotes); err != nil {
		fieldErrs.Add("reviewNotes", err.Error())
	}
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"message": "Invalid moderation payload.",
			"errors":  fieldErrs,
		})
		return
	}

	result, err := h.store.UpdateModeration(
		c.Request.Context(), req.ID, req.Status, user.ID, req.ReviewNotes)
	if errors.Is(err, domain.ErrSubmissionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "Submission not found."})
		return
	}
	if errors.Is(err, domain.ErrAlreadyModerated) {
		c.JSON(http.StatusConflict, gin.H{"ok": false, "message": "Submission has already been moderated."})
		return
	}
	if err != nil {
		h.log.Error("moderation update failed",
			logger.String("submission_id", req.ID), logger.Error(err))
		respondDomainError(c, err)
		return
	}

	action := "reject"
	if req.Status == domain.StatusApproved {
		action = "approve"
	}
	h.metrics.ModerationDecisions.WithLabelValues(action).Inc()
	h.log.Info("moderation decision applied",
		logger.String("submission_id", result.ID),
		logger.String("status", result.Status),
		logger.Bool("audit_logged", result.AuditLogged))

	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"result": result,
	})
}

func pendingListOptions(c *gin.Context) domain.PendingListOptions {
	opts := domain.PendingListOptions{
		Sort:          c.Query("sort"),
		Industry:      c.Query("industry"),
		SubmitterType: c.Query("submitterType"),
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		opts.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		opts.Offset = offset
	}
	return opts
}
