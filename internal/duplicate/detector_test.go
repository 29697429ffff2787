package duplicate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jobfolio/profile-intake/internal/domain"
	"github.com/jobfolio/profile-intake/internal/duplicate"
	"github.com/jobfolio/profile-intake/internal/logger"
)

type stubSource struct {
	candidates []duplicate.Candidate
	err        error
	gotTitle   string
	gotLimit   int
}

func (s *stubSource) DuplicateCandidates(
	_ context.Context, roleTitle string, limit int,
) ([]duplicate.Candidate, error) {
	s.gotTitle = roleTitle
	s.gotLimit = limit
	return s.candidates, s.err
}

func noLocal() []domain.JobProfile { return nil }

func submission() domain.ShareSubmission {
	return domain.ShareSubmission{
		RoleTitle: "Data Analyst",
		DayToDay: "I pull reporting data, build dashboards for the sales team, and " +
			"answer ad hoc questions from leadership every week.",
		BestParts:                "Finding the number that changes a decision is satisfying.",
		HardestParts:             "Stakeholders often disagree about which metric matters most.",
		RecommendationToStudents: "Learn SQL deeply before touching any visualization tool.",
	}
}

func TestFind_NoCandidates(t *testing.T) {
	d := duplicate.New(&stubSource{}, noLocal, logger.NewNop())

	if match := d.Find(context.Background(), submission()); match != nil {
		t.Fatalf("expected no match, got %+v", match)
	}
}

func TestFind_ExactTitleFloorsScore(t *testing.T) {
	src := &stubSource{candidates: []duplicate.Candidate{{
		Slug:                     "data-analyst-q1w2e3",
		RoleTitle:                "Data Analyst",
		Status:                   domain.StatusApproved,
		DayToDay:                 "Completely different responsibilities described here in full.",
		BestParts:                "Nothing in common with the submission narrative.",
		HardestParts:             "Unrelated challenges and frustrations entirely.",
		RecommendationToStudents: "Different advice about different skills.",
	}}}
	d := duplicate.New(src, noLocal, logger.NewNop())

	match := d.Find(context.Background(), submission())
	if match == nil {
		t.Fatal("expected a match on exact title")
	}
	if match.Similarity < 0.8 {
		t.Errorf("similarity: got %.2f, want >= 0.80 for exact title", match.Similarity)
	}
	if src.gotLimit != duplicate.ScanLimit {
		t.Errorf("scan limit: got %d, want %d", src.gotLimit, duplicate.ScanLimit)
	}
}

func TestFind_BelowAdvisoryThresholdIgnored(t *testing.T) {
	src := &stubSource{candidates: []duplicate.Candidate{{
		Slug:                     "business-analyst-z8x7c6",
		RoleTitle:                "Business Analyst",
		Status:                   domain.StatusApproved,
		DayToDay:                 "Requirements workshops and process mapping sessions.",
		BestParts:                "Seeing a redesigned process actually stick.",
		HardestParts:             "Alignment between departments takes months.",
		RecommendationToStudents: "Practice interviewing stakeholders.",
	}}}
	d := duplicate.New(src, noLocal, logger.NewNop())

	if match := d.Find(context.Background(), submission()); match != nil {
		t.Fatalf("expected no match below threshold, got %+v", match)
	}
}

func TestFind_RemoteFailureFallsBackToLocal(t *testing.T) {
	src := &stubSource{err: errors.New("connection refused")}
	local := func() []domain.JobProfile {
		sub := submission()
		return []domain.JobProfile{{
			Slug:                     "data-analyst-local1",
			RoleTitle:                sub.RoleTitle,
			Status:                   domain.StatusApproved,
			DayToDay:                 sub.DayToDay,
			BestParts:                sub.BestParts,
			HardestParts:             sub.HardestParts,
			RecommendationToStudents: sub.RecommendationToStudents,
		}}
	}
	d := duplicate.New(src, local, logger.NewNop())

	match := d.Find(context.Background(), submission())
	if match == nil {
		t.Fatal("expected local match despite remote failure")
	}
	if match.Slug != "data-analyst-local1" {
		t.Errorf("slug: got %q", match.Slug)
	}
	if match.Similarity < duplicate.HardRejectThreshold {
		t.Errorf("similarity for identical text: got %.2f", match.Similarity)
	}
}

func TestFind_PicksHighestScore(t *testing.T) {
	sub := submission()
	src := &stubSource{candidates: []duplicate.Candidate{
		{
			Slug:      "data-analyst-weak01",
			RoleTitle: "Data Analyst",
			Status:    domain.StatusPending,
			DayToDay:  "Different work entirely, no shared vocabulary at all.",
		},
		{
			Slug:                     "data-analyst-strong1",
			RoleTitle:                "Data Analyst",
			Status:                   domain.StatusApproved,
			DayToDay:                 sub.DayToDay,
			BestParts:                sub.BestParts,
			HardestParts:             sub.HardestParts,
			RecommendationToStudents: sub.RecommendationToStudents,
		},
	}}
	d := duplicate.New(src, noLocal, logger.NewNop())

	match := d.Find(context.Background(), sub)
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.Slug != "data-analyst-strong1" {
		t.Errorf("slug: got %q, want the higher-scoring candidate", match.Slug)
	}
}
