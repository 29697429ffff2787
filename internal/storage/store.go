// Package storage persists job profiles in PostgreSQL with a two-tier
// credential model. The public connection is used first; writes that a row
// policy rejects are retried on the admin connection. When no database is
// configured, reads degrade to the seed dataset and writes either use the
// local fallback or fail with a configuration error.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jobfolio/profile-intake/internal/domain"
	"github.com/jobfolio/profile-intake/internal/logger"
	"github.com/jobfolio/profile-intake/internal/seed"
	"github.com/jobfolio/profile-intake/internal/textnorm"
)

const (
	jobProfilesTable      = "job_profiles"
	moderationEventsTable = "moderation_events"
	analyticsEventsTable  = "analytics_events"

	// pendingQueueScanLimit caps how many pending rows a queue listing loads
	// before in-memory filtering and pagination.
	pendingQueueScanLimit = 500

	queryTimeout = 5 * time.Second
)

// PostgreSQL error codes the store handles specially.
const (
	pgCodePolicyViolation = "42501"
	pgCodeUndefinedTable  = "42P01"
)

// Credential tiers, in the order writes attempt them.
const (
	tierPublic = "public"
	tierAdmin  = "admin"
)

// Store reads and writes job profiles through up to two database
// connections. Either connection may be nil.
type Store struct {
	db    *sqlx.DB
	admin *sqlx.DB
	log   logger.Logger

	allowLocalFallback bool
	localProfiles      func() []domain.JobProfile
	now                func() time.Time
}

// Option adjusts store construction, mainly for tests.
type Option func(*Store)

// WithClock overrides the store's time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLocalProfiles overrides the fallback dataset.
func WithLocalProfiles(fn func() []domain.JobProfile) Option {
	return func(s *Store) { s.localProfiles = fn }
}

// New builds a store. db is the public-tier connection and admin the
// elevated one; pass nil for either when not configured.
func New(db, admin *sqlx.DB, allowLocalFallback bool, log logger.Logger, opts ...Option) *Store {
	s := &Store{
		db:                 db,
		admin:              admin,
		log:                log,
		allowLocalFallback: allowLocalFallback,
		localProfiles:      seed.Profiles,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configured reports whether the public-tier connection exists.
func (s *Store) Configured() bool { return s.db != nil }

// AdminConfigured reports whether the admin-tier connection exists.
func (s *Store) AdminConfigured() bool { return s.admin != nil }

// profileRow mirrors the job_profiles columns used by profile reads.
// Timestamps are selected as text so malformed driver output can be
// repaired before leaving the storage layer.
type profileRow struct {
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
	CreatedAt                string         `db:"created_at"`
	ApprovedAt               sql.NullString `db:"approved_at"`
	Status                   string         `db:"status"`
}

const profileColumns = `id, slug, role_title, industry, seniority, location, work_mode,
	salary_range, education_path, day_to_day, tools_used, best_parts, hardest_parts,
	recommendation_to_students, years_experience, submitter_type,
	created_at::text AS created_at, approved_at::text AS approved_at, status`

// validate rejects rows that would produce unusable profiles. Rows from a
// partially migrated or hand-edited table are skipped rather than served.
func (r *profileRow) validate() error {
	if r.ID == "" || r.Slug == "" || r.RoleTitle == "" {
		return fmt.Errorf("row %q missing identity columns", r.ID)
	}
	switch r.Status {
	case domain.StatusPending, domain.StatusApproved, domain.StatusRejected:
	default:
		return fmt.Errorf("row %q has unknown status %q", r.ID, r.Status)
	}
	if r.YearsExperience < 0 {
		return fmt.Errorf("row %q has negative years_experience", r.ID)
	}
	return nil
}

func (r *profileRow) toProfile() domain.JobProfile {
	return domain.JobProfile{
		ID:                       r.ID,
		Slug:                     r.Slug,
		Locale:                   "en",
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
		CreatedAt:                textnorm.NormalizeDBTimestamp(r.CreatedAt),
		ApprovedAt:               textnorm.NormalizeDBTimestamp(r.ApprovedAt.String),
		Status:                   r.Status,
	}
}

var riskFlagPattern = regexp.MustCompile(`(?i)(flagged phrase|contains external link|possible duplicate)`)

// hasRiskFlag reports whether review notes carry a screening or duplicate
// marker a moderator should look at first.
func hasRiskFlag(reviewNotes string) bool {
	return reviewNotes != "" && riskFlagPattern.MatchString(reviewNotes)
}

// FoldReviewNotes flattens a screening assessment and an optional advisory
// duplicate match into the single review_notes column, e.g.
// "Contains external link | Flagged phrase: casino".
func FoldReviewNotes(moderation domain.ModerationAssessment, advisory *domain.DuplicateMatch) string {
	var parts []string
	if moderation.ContainsLink {
		parts = append(parts, "Contains external link")
	}
	for _, flag := range moderation.Flags {
		parts = append(parts, "Flagged phrase: "+flag)
	}
	if advisory != nil {
		parts = append(parts, fmt.Sprintf(
			"Possible duplicate of %s (similarity %.2f)", advisory.Slug, advisory.Similarity))
	}
	return strings.Join(parts, " | ")
}

func nullable(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

// isPolicyViolation reports whether err is a row-level security rejection.
func isPolicyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgCodePolicyViolation {
		return true
	}
	return strings.Contains(strings.ToLower(errString(err)), "row-level security")
}

// isMissingTable reports whether err means the target table does not exist.
func isMissingTable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgCodeUndefinedTable {
		return true
	}
	return strings.Contains(strings.ToLower(errString(err)), "does not exist")
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
