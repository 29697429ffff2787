package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jobfolio/profile-intake/internal/domain"
	"github.com/jobfolio/profile-intake/internal/duplicate"
	"github.com/jobfolio/profile-intake/internal/logger"
	"github.com/jobfolio/profile-intake/internal/screen"
	"github.com/jobfolio/profile-intake/internal/storage"
	"github.com/jobfolio/profile-intake/internal/telemetry"
	"github.com/jobfolio/profile-intake/internal/textnorm"
	"github.com/jobfolio/profile-intake/internal/validate"
)

// honeypotField is the hidden form input. Humans never fill it.
const honeypotField = "website"

const submissionReceivedMessage = "Submission received. It is now pending manual moderation."

const maxMultipartMemory = 1 << 20

// ShareHandler runs the intake pipeline: honeypot, validation,
// normalization, screening, duplicate detection, persistence.
type ShareHandler struct {
	store    *storage.Store
	screener *screen.Screener
	detector *duplicate.Detector
	metrics  *telemetry.Metrics
	log      logger.Logger
}

// NewShareHandler wires the pipeline stages together.
func NewShareHandler(
	store *storage.Store,
	screener *screen.Screener,
	detector *duplicate.Detector,
	metrics *telemetry.Metrics,
	log logger.Logger,
) *ShareHandler {
	return &ShareHandler{
		store:    store,
		screener: screener,
		detector: detector,
		metrics:  metrics,
		log:      log,
	}
}

// Handle processes POST /api/share.
func (h *ShareHandler) Handle(c *gin.Context) {
	payload, ok := extractSubmissionPayload(c)
	if !ok {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{
			"ok":      false,
			"message": unsupportedContentTypeMessage,
		})
		return
	}

	// A filled honeypot means a bot. Answer success-shaped so the bot
	// moves on, and touch nothing else.
	if trap, _ := payload[honeypotField].(string); trap != "" {
		h.metrics.Submissions.WithLabelValues(telemetry.OutcomeHoneypot).Inc()
		h.log.Info("honeypot submission dropped")
		c.JSON(http.StatusAccepted, gin.H{
			"ok":      true,
			"message": submissionReceivedMessage,
			"status":  domain.StatusPending,
		})
		return
	}

	sub, fieldErrs := validate.ShareSubmission(payload)
	if fieldErrs != nil {
		h.metrics.Submissions.WithLabelValues(telemetry.OutcomeRejectedInput).Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"message": "Please fix the highlighted fields and submit again.",
			"errors":  fieldErrs,
		})
		return
	}

	normalized := textnorm.NormalizeSubmission(*sub)
	moderation := h.screener.Assess(normalized)

	var advisory *domain.DuplicateMatch
	if match := h.detector.Find(c.Request.Context(), normalized); match != nil {
		h.metrics.DuplicateMatches.Inc()
		if match.Similarity >= duplicate.HardRejectThreshold {
			h.metrics.Submissions.WithLabelValues(telemetry.OutcomeDuplicate).Inc()
			c.JSON(http.StatusConflict, gin.H{
				"ok":        false,
				"message":   "A very similar profile already exists.",
				"duplicate": match,
			})
			return
		}
		advisory = match
	}

	result, err := h.store.CreatePendingSubmission(c.Request.Context(), normalized, moderation, advisory)
	if err != nil {
		h.metrics.Submissions.WithLabelValues(telemetry.OutcomeStorageError).Inc()
		h.log.Error("submission persistence failed", logger.Error(err))
		respondDomainError(c, err)
		return
	}

	h.metrics.Submissions.WithLabelValues(telemetry.OutcomeAccepted).Inc()
	h.log.Info("submission accepted",
		logger.String("slug", result.Slug),
		logger.String("storage", result.Storage),
		logger.Int("flags", len(moderation.Flags)))

	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"message":      submissionReceivedMessage,
		"status":       moderation.Status,
		"submissionId": result.ID,
		"slug":         result.Slug,
		"storage":      result.Storage,
		"moderation":   moderation,
	})
}

// extractSubmissionPayload decodes a JSON object or flattens form values
// into the common map shape the validator accepts.
func extractSubmissionPayload(c *gin.Context) (map[string]any, bool) {
	contentType := c.ContentType()

	if strings.Contains(contentType, "application/json") {
		var payload map[string]any
		if err := json.NewDecoder(c.Request.Body).Decode(&payload); err != nil {
			return map[string]any{}, true
		}
		return payload, true
	}

	if strings.Contains(contentType, "application/x-www-form-urlencoded") {
		if err := c.Request.ParseForm(); err != nil {
			return map[string]any{}, true
		}
		return flattenFormValues(c.Request.PostForm), true
	}

	if strings.Contains(contentType, "multipart/form-data") {
		if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
			return map[string]any{}, true
		}
		return flattenFormValues(c.Request.MultipartForm.Value), true
	}

	return nil, false
}

func flattenFormValues(values map[string][]string) map[string]any {
	payload := make(map[string]any, len(values))
	for key, entry := range values {
		if len(entry) > 0 {
			payload[key] = entry[0]
		}
	}
	return payload
}
