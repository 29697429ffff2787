package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jobfolio/profile-intake/internal/domain"
	"github.com/jobfolio/profile-intake/internal/logger"
)

const insertProfileQuery = `
	INSERT INTO job_profiles (slug, role_title, industry, seniority, location, work_mode,
		salary_range, education_path, day_to_day, tools_used, best_parts, hardest_parts,
		recommendation_to_students, years_experience, submitter_type, contact_email,
		status, review_notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	RETURNING id, slug
`

// storageAttempt pairs a connection with the credential tier it represents.
// Attempts run in order; a policy rejection falls through to the next tier.
type storageAttempt struct {
	tier string
	db   *sqlx.DB
}

// CreatePendingSubmission persists a validated submission in pending
// status, folding the screening assessment and any advisory duplicate match
// into its review notes. Without a configured database it either refuses
// (ConfigurationError) or, when the local fallback is allowed, acknowledges
// without persisting.
func (s *Store) CreatePendingSubmission(
	ctx context.Context,
	sub domain.ShareSubmission,
	moderation domain.ModerationAssessment,
	advisory *domain.DuplicateMatch,
) (*domain.CreateSubmissionResult, error) {
	slug := UniqueRoleSlug(sub.RoleTitle)

	if !s.Configured() {
		if !s.allowLocalFallback {
			return nil, &domain.ConfigurationError{
				Message: "submission storage is required; set POSTGRES_HOST and POSTGRES_USER",
			}
		}
		return &domain.CreateSubmissionResult{
			ID:      uuid.NewString(),
			Slug:    slug,
			Storage: domain.StorageLocalFallback,
		}, nil
	}

	reviewNotes := FoldReviewNotes(moderation, advisory)

	attempts := []storageAttempt{{tier: tierPublic, db: s.db}}
	if s.AdminConfigured() {
		attempts = append(attempts, storageAttempt{tier: tierAdmin, db: s.admin})
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var lastErr error
	for i, attempt := range attempts {
		var inserted struct {
			ID   string `db:"id"`
			Slug string `db:"slug"`
		}

		err := attempt.db.QueryRowxContext(ctx, insertProfileQuery,
			slug, sub.RoleTitle, sub.Industry, sub.Seniority, sub.Location, sub.WorkMode,
			nullable(sub.SalaryRange), nullable(sub.EducationPath), sub.DayToDay,
			pq.Array(sub.ToolsUsed), sub.BestParts, sub.HardestParts,
			sub.RecommendationToStudents, sub.YearsExperience, sub.SubmitterType,
			nullable(sub.ContactEmail), domain.StatusPending, nullable(reviewNotes),
		).StructScan(&inserted)

		if err == nil {
			return &domain.CreateSubmissionResult{
				ID:      inserted.ID,
				Slug:    inserted.Slug,
				Storage: domain.StoragePostgres,
			}, nil
		}

		lastErr = err
		if isPolicyViolation(err) && i+1 < len(attempts) {
			s.log.Warn("submission insert blocked by row policy, retrying with elevated credential",
				logger.String("tier", attempt.tier))
			continue
		}
		break
	}

	return nil, &domain.StorageError{
		Op:              "create pending submission",
		PolicyViolation: isPolicyViolation(lastErr),
		Err:             lastErr,
	}
}
