package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jobfolio/profile-intake/internal/domain"
	"github.com/jobfolio/profile-intake/internal/logger"
)

// Analytics event storage labels reported back to the caller.
const (
	EventStorageDatabase    = "postgres"
	EventStorageLog         = "log"
	EventStorageLogFallback = "log-fallback"
)

// AnalyticsEvent is one page-view or funnel event from the site.
type AnalyticsEvent struct {
	EventName         string
	Path              string
	SessionID         string
	Metadata          map[string]any
	ClientFingerprint string
	CreatedAt         time.Time
}

// RecordAnalyticsEvent persists an event through the admin connection.
// Without that connection, or when the table is missing, the event is
// logged instead and the returned label says so.
func (s *Store) RecordAnalyticsEvent(ctx context.Context, event AnalyticsEvent) (string, error) {
	if !s.AdminConfigured() {
		s.log.Info("analytics event",
			logger.String("event", event.EventName),
			logger.String("path", event.Path),
			logger.String("session_id", event.SessionID))
		return EventStorageLog, nil
	}

	var metadata []byte
	if len(event.Metadata) > 0 {
		encoded, err := json.Marshal(event.Metadata)
		if err != nil {
			return "", fmt.Errorf("encode event metadata: %w", err)
		}
		metadata = encoded
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		INSERT INTO %s (event_name, path, session_id, metadata, client_fingerprint, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`, analyticsEventsTable)

	_, err := s.admin.ExecContext(ctx, query,
		event.EventName, event.Path, nullable(event.SessionID), metadata,
		event.ClientFingerprint, event.CreatedAt)
	if err == nil {
		return EventStorageDatabase, nil
	}

	if isMissingTable(err) {
		s.log.Warn("analytics table missing", logger.Error(err))
		return EventStorageLogFallback, nil
	}
	return "", &domain.StorageError{Op: "record analytics event", Err: err}
}
