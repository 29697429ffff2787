package handler

import (
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/jobfolio/profile-intake/internal/logger"
	"github.com/jobfolio/profile-intake/internal/middleware"
	"github.com/jobfolio/profile-intake/internal/storage"
	"github.com/jobfolio/profile-intake/internal/telemetry"
)

// eventNames is the closed set of accepted analytics events.
var eventNames = map[string]bool{
	"page_home":          true,
	"page_jobs":          true,
	"page_job_detail":    true,
	"page_share_start":   true,
	"page_share_success": true,
}

// Field caps for stored event attributes.
const (
	eventPathMax        = 240
	eventSessionMax     = 120
	eventFingerprintMax = 220
)

// EventsHandler records page-view analytics events.
type EventsHandler struct {
	store   *storage.Store
	metrics *telemetry.Metrics
	log     logger.Logger
}

type eventRequest struct {
	Event     string         `json:"event"`
	Path      string         `json:"path"`
	SessionID string         `json:"sessionId"`
	Metadata  map[string]any `json:"metadata"`
}

// NewEventsHandler builds the analytics endpoint.
func NewEventsHandler(store *storage.Store, metrics *telemetry.Metrics, log logger.Logger) *EventsHandler {
	return &EventsHandler{store: store, metrics: metrics, log: log}
}

// Handle processes POST /api/events.
func (h *EventsHandler) Handle(c *gin.Context) {
	if !strings.Contains(c.ContentType(), "application/json") {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"ok": false, "message": "Use application/json."})
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Path == "" || !eventNames[req.Event] {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Invalid event payload."})
		return
	}

	event := storage.AnalyticsEvent{
		EventName:         req.Event,
		Path:              truncate(req.Path, eventPathMax),
		SessionID:         truncate(req.SessionID, eventSessionMax),
		Metadata:          req.Metadata,
		ClientFingerprint: truncate(middleware.ClientFingerprint(c.Request), eventFingerprintMax),
		CreatedAt:         time.Now().UTC(),
	}

	storageLabel, err := h.store.RecordAnalyticsEvent(c.Request.Context(), event)
	if err != nil {
		h.log.Error("analytics event write failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"ok":      false,
			"message": "Event could not be persisted.",
		})
		return
	}

	h.metrics.AnalyticsEvents.WithLabelValues(storageLabel).Inc()

	status := http.StatusOK
	if storageLabel != storage.EventStorageDatabase {
		status = http.StatusAccepted
	}
	c.JSON(status, gin.H{"ok": true, "storage": storageLabel})
}

// truncate cuts at a rune boundary so a clipped value is still valid UTF-8.
func truncate(value string, max int) string {
	if utf8.RuneCountInString(value) <= max {
		return value
	}
	return string([]rune(value)[:max])
}
