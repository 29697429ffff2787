package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/lib/pq"

	"github.com/jobfolio/profile-intake/internal/domain"
	"github.com/jobfolio/profile-intake/internal/logger"
	"github.com/jobfolio/profile-intake/internal/textnorm"
)

// Pending list pagination bounds.
const (
	pendingLimitDefault = 50
	pendingLimitMin     = 1
	pendingLimitMax     = 200
)

type pendingRow struct {
	ID                       string         `db:"id"`
	Slug                     string         `db:"slug"`
	RoleTitle                string         `db:"role_title"`
	Industry                 string         `db:"industry"`
	Seniority                string         `db:"seniority"`
	Location                 string         `db:"location"`
	WorkMode                 string         `db:"work_mode"`
	SalaryRange              sql.NullString `db:"salary_range"`
	EducationPath            sql.NullString `db:"education_path"`
	DayToDay                 string         `db:"day_to_day"`
	ToolsUsed                pq.StringArray `db:"tools_used"`
	BestParts                string         `db:"best_parts"`
	HardestParts             string         `db:"hardest_parts"`
	RecommendationToStudents string         `db:"recommendation_to_students"`
	YearsExperience          int            `db:"years_experience"`
	SubmitterType            string         `db:"submitter_type"`
	ContactEmail             sql.NullString `db:"contact_email"`
	CreatedAt                string         `db:"created_at"`
	ReviewNotes              sql.NullString `db:"review_notes"`
}

func (r *pendingRow) toPreview() domain.PendingSubmissionPreview {
	return domain.PendingSubmissionPreview{
		ID:                       r.ID,
		Slug:                     r.Slug,
		RoleTitle:                r.RoleTitle,
		Industry:                 r.Industry,
		Seniority:                r.Seniority,
		Location:                 r.Location,
		WorkMode:                 r.WorkMode,
		SalaryRange:              r.SalaryRange.String,
		EducationPath:            r.EducationPath.String,
		DayToDay:                 r.DayToDay,
		ToolsUsed:                []string(r.ToolsUsed),
		BestParts:                r.BestParts,
		HardestParts:             r.HardestParts,
		RecommendationToStudents: r.RecommendationToStudents,
		YearsExperience:          r.YearsExperience,
		SubmitterType:            r.SubmitterType,
		ContactEmail:             r.ContactEmail.String,
		CreatedAt:                textnorm.NormalizeDBTimestamp(r.CreatedAt),
		ReviewNotes:              r.ReviewNotes.String,
		HasFlags:                 hasRiskFlag(r.ReviewNotes.String),
	}
}

// ListPending returns a filtered, sorted, paginated page of the moderation
// queue with aggregate metrics over the filtered (not paginated) set. It
// requires the admin connection.
func (s *Store) ListPending(
	ctx context.Context, opts domain.PendingListOptions,
) (*domain.PendingSubmissionsResult, error) {
	if !s.AdminConfigured() {
		return nil, &domain.ConfigurationError{
			Message: "admin database credential is missing; set POSTGRES_ADMIN_USER to list pending submissions",
		}
	}

	limit := opts.Limit
	if limit == 0 {
		limit = pendingLimitDefault
	}
	if limit < pendingLimitMin {
		limit = pendingLimitMin
	}
	if limit > pendingLimitMax {
		limit = pendingLimitMax
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	sortOrder := opts.Sort
	if sortOrder == "" {
		sortOrder = domain.SortNewest
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT id, slug, role_title, industry, seniority, location, work_mode,
		       salary_range, education_path, day_to_day, tools_used, best_parts,
		       hardest_parts, recommendation_to_students, years_experience,
		       submitter_type, contact_email, created_at::text AS created_at, review_notes
		FROM %s
		WHERE status = $1
		LIMIT $2`, jobProfilesTable)

	var rows []pendingRow
	if err := s.admin.SelectContext(ctx, &rows, query, domain.StatusPending, pendingQueueScanLimit); err != nil {
		return nil, &domain.StorageError{Op: "list pending submissions", Err: err}
	}

	filtered := make([]domain.PendingSubmissionPreview, 0, len(rows))
	for i := range rows {
		item := rows[i].toPreview()
		if opts.Industry != "" && item.Industry != opts.Industry {
			continue
		}
		if opts.SubmitterType != "" && item.SubmitterType != opts.SubmitterType {
			continue
		}
		filtered = append(filtered, item)
	}

	sortPending(filtered, sortOrder)

	metrics := domain.PendingSubmissionMetrics{Total: len(filtered)}
	now := s.now()
	for _, item := range filtered {
		if item.HasFlags {
			metrics.Flagged++
		}
		age := now.Sub(parseTimestamp(item.CreatedAt))
		if age >= domain.PendingAge24h {
			metrics.OlderThan24h++
		}
		if age >= domain.PendingAge72h {
			metrics.OlderThan72h++
		}
	}

	start := offset
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}

	return &domain.PendingSubmissionsResult{
		Items:   filtered[start:end],
		Total:   len(filtered),
		Metrics: metrics,
	}, nil
}

// sortPending orders the queue in place. Flagged ordering surfaces flagged
// items first, oldest first within each group, so risky backlog is seen
// before fresh clean submissions.
func sortPending(items []domain.PendingSubmissionPreview, order string) {
	switch order {
	case domain.SortOldest:
		sort.SliceStable(items, func(i, j int) bool {
			return parseTimestamp(items[i].CreatedAt).Before(parseTimestamp(items[j].CreatedAt))
		})
	case domain.SortFlagged:
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].HasFlags != items[j].HasFlags {
				return items[i].HasFlags
			}
			return parseTimestamp(items[i].CreatedAt).Before(parseTimestamp(items[j].CreatedAt))
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return parseTimestamp(items[j].CreatedAt).Before(parseTimestamp(items[i].CreatedAt))
		})
	}
}

func parseTimestamp(value string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// UpdateModeration applies an approve or reject decision and writes a
// best-effort audit event. It requires the admin connection.
func (s *Store) UpdateModeration(
	ctx context.Context, id, status, moderatorID, reviewNotes string,
) (*domain.ModerationUpdate, error) {
	if !s.AdminConfigured() {
		return nil, &domain.ConfigurationError{
			Message: "admin database credential is missing; set POSTGRES_ADMIN_USER to moderate submissions",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var oldStatus string
	readQuery := fmt.Sprintf("SELECT status FROM %s WHERE id = $1", jobProfilesTable)
	err := s.admin.GetContext(ctx, &oldStatus, readQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "load submission before moderation", Err: err}
	}
	if oldStatus != domain.StatusPending {
		return nil, domain.ErrAlreadyModerated
	}

	approved := status == domain.StatusApproved
	now := s.now().UTC()

	var approvedAt sql.NullTime
	var approvedBy sql.NullString
	if approved {
		approvedAt = sql.NullTime{Time: now, Valid: true}
		approvedBy = nullable(moderatorID)
	}

	updateQuery := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, review_notes = $2, approved_at = $3, approved_by = $4
		WHERE id = $5
		RETURNING id, status`, jobProfilesTable)

	var updated struct {
		ID     string `db:"id"`
		Status string `db:"status"`
	}
	err = s.admin.QueryRowxContext(ctx, updateQuery,
		status, nullable(reviewNotes), approvedAt, approvedBy, id,
	).StructScan(&updated)
	if err != nil {
		return nil, &domain.StorageError{Op: "update moderation status", Err: err}
	}

	action := "reject"
	if approved {
		action = "approve"
	}
	auditLogged := s.recordModerationEvent(ctx, moderationEvent{
		JobProfileID: id,
		ActorUserID:  moderatorID,
		Action:       action,
		OldStatus:    oldStatus,
		NewStatus:    updated.Status,
		Note:         reviewNotes,
		CreatedAt:    now,
	})

	return &domain.ModerationUpdate{
		ID:          updated.ID,
		Status:      updated.Status,
		AuditLogged: auditLogged,
	}, nil
}

type moderationEvent struct {
	JobProfileID string
	ActorUserID  string
	Action       string
	OldStatus    string
	NewStatus    string
	Note         string
	CreatedAt    time.Time
}

// recordModerationEvent appends to the audit trail. A missing audit table
// is tolerated so moderation keeps working on partial schemas; any other
// failure is logged and the decision stands unaudited.
func (s *Store) recordModerationEvent(ctx context.Context, event moderationEvent) bool {
	query := fmt.Sprintf(`
		INSERT INTO %s (job_profile_id, actor_user_id, action, old_status, new_status, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`, moderationEventsTable)

	_, err := s.admin.ExecContext(ctx, query,
		event.JobProfileID, event.ActorUserID, event.Action,
		event.OldStatus, event.NewStatus, nullable(event.Note), event.CreatedAt)
	if err == nil {
		return true
	}

	if isMissingTable(err) {
		s.log.Warn("moderation audit table missing", logger.Error(err))
	} else {
		s.log.Error("moderation audit write failed", logger.Error(err))
	}
	return false
}
