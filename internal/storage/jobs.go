package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jobfolio/profile-intake/internal/domain"
	"github.com/jobfolio/profile-intake/internal/duplicate"
	"github.com/jobfolio/profile-intake/internal/logger"
)

// ListApproved returns approved profiles, newest first. Query failures
// degrade to the seed dataset so the public catalog never goes dark.
func (s *Store) ListApproved(ctx context.Context) []domain.JobProfile {
	if !s.Configured() {
		return s.localProfiles()
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE status = $1 ORDER BY created_at DESC",
		profileColumns, jobProfilesTable)

	var rows []profileRow
	if err := s.db.SelectContext(ctx, &rows, query, domain.StatusApproved); err != nil {
		s.log.Error("approved profiles query failed, serving seed data", logger.Error(err))
		return s.localProfiles()
	}

	profiles := make([]domain.JobProfile, 0, len(rows))
	for i := range rows {
		if err := rows[i].validate(); err != nil {
			s.log.Warn("skipping malformed profile row", logger.Error(err))
			continue
		}
		profiles = append(profiles, rows[i].toProfile())
	}
	return profiles
}

// GetApprovedBySlug returns one approved profile. A missing row is
// ErrProfileNotFound; a failing query degrades to the seed dataset.
func (s *Store) GetApprovedBySlug(ctx context.Context, slug string) (*domain.JobProfile, error) {
	if !s.Configured() {
		return s.seedBySlug(slug)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE status = $1 AND slug = $2",
		profileColumns, jobProfilesTable)

	var row profileRow
	err := s.db.GetContext(ctx, &row, query, domain.StatusApproved, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		s.log.Error("profile-by-slug query failed, checking seed data",
			logger.String("slug", slug), logger.Error(err))
		return s.seedBySlug(slug)
	}

	if err := row.validate(); err != nil {
		s.log.Warn("skipping malformed profile row", logger.Error(err))
		return nil, domain.ErrProfileNotFound
	}

	profile := row.toProfile()
	return &profile, nil
}

func (s *Store) seedBySlug(slug string) (*domain.JobProfile, error) {
	for _, p := range s.localProfiles() {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

// DuplicateCandidates returns approved and pending profiles whose role
// title matches, for duplicate scoring. Without a configured database it
// returns nothing; the detector already covers the seed dataset.
func (s *Store) DuplicateCandidates(
	ctx context.Context, roleTitle string, limit int,
) ([]duplicate.Candidate, error) {
	if !s.Configured() {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT slug, role_title, status, day_to_day, best_parts, hardest_parts,
		       recommendation_to_students
		FROM %s
		WHERE status IN ($1, $2) AND LOWER(role_title) = LOWER($3)
		LIMIT $4`, jobProfilesTable)

	type candidateRow struct {
		Slug                     string `db:"slug"`
		RoleTitle                string `db:"role_title"`
		Status                   string `db:"status"`
		DayToDay                 string `db:"day_to_day"`
		BestParts                string `db:"best_parts"`
		HardestParts             string `db:"hardest_parts"`
		RecommendationToStudents string `db:"recommendation_to_students"`
	}

	var rows []candidateRow
	err := s.db.SelectContext(ctx, &rows, query,
		domain.StatusApproved, domain.StatusPending, roleTitle, limit)
	if err != nil {
		return nil, fmt.Errorf("duplicate candidates query: %w", err)
	}

	candidates := make([]duplicate.Candidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, duplicate.Candidate{
			Slug:                     row.Slug,
			RoleTitle:                row.RoleTitle,
			Status:                   row.Status,
			DayToDay:                 row.DayToDay,
			BestParts:                row.BestParts,
			HardestParts:             row.HardestParts,
			RecommendationToStudents: row.RecommendationToStudents,
		})
	}
	return candidates, nil
}
