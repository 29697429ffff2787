// Package duplicate scores incoming submissions against existing profiles
// and surfaces the closest match for advisory or blocking use.
package duplicate

import (
	"context"
	"strings"

	"github.com/jobfolio/profile-intake/internal/domain"
	"github.com/jobfolio/profile-intake/internal/logger"
	"github.com/jobfolio/profile-intake/internal/similarity"
)

// Similarity thresholds. A match at or above AdvisoryThreshold is surfaced
// to moderators; at or above HardRejectThreshold the submission is refused.
const (
	AdvisoryThreshold   = 0.72
	HardRejectThreshold = 0.78

	// exactTitleFloor is the minimum score assigned when role titles match
	// exactly, regardless of narrative overlap.
	exactTitleFloor = 0.8

	// ScanLimit caps how many stored candidates a single check may compare.
	ScanLimit = 80
)

// Candidate is the narrative projection of a stored profile used for
// comparison.
type Candidate struct {
	Slug                     string
	RoleTitle                string
	Status                   string
	DayToDay                 string
	BestParts                string
	HardestParts             string
	RecommendationToStudents string
}

// CandidateSource fetches stored candidates whose role title matches the
// submission's, case-insensitively, up to the given limit.
type CandidateSource interface {
	DuplicateCandidates(ctx context.Context, roleTitle string, limit int) ([]Candidate, error)
}

// Detector compares a submission against a static local set and an
// optional remote source.
type Detector struct {
	remote CandidateSource
	local  func() []domain.JobProfile
	log    logger.Logger
}

// New builds a detector. remote may be nil when no primary store is
// configured; localProfiles supplies the always-available candidate set.
func New(remote CandidateSource, localProfiles func() []domain.JobProfile, log logger.Logger) *Detector {
	return &Detector{
		remote: remote,
		local:  localProfiles,
		log:    log,
	}
}

// Find returns the highest-scoring candidate at or above the advisory
// threshold, or nil when nothing comes close. Remote fetch failures are
// absorbed: detection proceeds on local candidates alone.
func (d *Detector) Find(ctx context.Context, sub domain.ShareSubmission) *domain.DuplicateMatch {
	type remoteResult struct {
		candidates []Candidate
		err        error
	}

	remoteCh := make(chan remoteResult, 1)
	go func() {
		if d.remote == nil {
			remoteCh <- remoteResult{}
			return
		}
		candidates, err := d.remote.DuplicateCandidates(ctx, sub.RoleTitle, ScanLimit)
		remoteCh <- remoteResult{candidates: candidates, err: err}
	}()

	candidates := d.localCandidates(sub.RoleTitle)

	res := <-remoteCh
	if res.err != nil {
		d.log.Warn("duplicate detection query failed", logger.Error(res.err))
	} else {
		candidates = append(candidates, res.candidates...)
	}

	var best *domain.DuplicateMatch
	for _, candidate := range candidates {
		match := score(sub, candidate)
		if best == nil || match.Similarity > best.Similarity {
			best = &match
		}
	}

	if best == nil || best.Similarity < AdvisoryThreshold {
		return nil
	}
	return best
}

func (d *Detector) localCandidates(roleTitle string) []Candidate {
	wanted := strings.ToLower(roleTitle)

	var out []Candidate
	for _, job := range d.local() {
		if strings.ToLower(job.RoleTitle) != wanted {
			continue
		}
		out = append(out, Candidate{
			Slug:                     job.Slug,
			RoleTitle:                job.RoleTitle,
			Status:                   job.Status,
			DayToDay:                 job.DayToDay,
			BestParts:                job.BestParts,
			HardestParts:             job.HardestParts,
			RecommendationToStudents: job.RecommendationToStudents,
		})
	}
	return out
}

func score(sub domain.ShareSubmission, candidate Candidate) domain.DuplicateMatch {
	submissionText := narrativeText(
		sub.DayToDay, sub.BestParts, sub.HardestParts, sub.RecommendationToStudents)
	candidateText := narrativeText(
		candidate.DayToDay, candidate.BestParts, candidate.HardestParts,
		candidate.RecommendationToStudents)

	sim := similarity.Jaccard(submissionText, candidateText)

	titlesMatch := strings.EqualFold(
		strings.TrimSpace(candidate.RoleTitle), strings.TrimSpace(sub.RoleTitle))
	if titlesMatch && sim < exactTitleFloor {
		sim = exactTitleFloor
	}

	return domain.DuplicateMatch{
		Slug:       candidate.Slug,
		RoleTitle:  candidate.RoleTitle,
		Status:     candidate.Status,
		Similarity: sim,
	}
}

func narrativeText(parts ...string) string {
	return strings.Join(parts, " ")
}
