// Package screen applies heuristic content moderation to submissions. The
// screener is advisory only: it annotates a submission for the moderation
// queue and never blocks it.
package screen

import (
	"regexp"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"github.com/jobfolio/profile-intake/internal/domain"
)

// DefaultRiskPhrases are flagged as risk signals wherever they appear as
// case-insensitive substrings. Extend the list without touching the
// matching algorithm.
var DefaultRiskPhrases = []string{
	"guaranteed income",
	"easy money",
	"casino",
	"crypto pump",
}

var linkPattern = regexp.MustCompile(`(?i)(https?://|www\.)`)

// Screener flags risk phrases and embedded links in submission text.
type Screener struct {
	phrases []string
	matcher *ahocorasick.Matcher
}

// New builds a screener over the given risk phrases. Matching is a single
// pass through the text regardless of phrase count.
func New(phrases []string) *Screener {
	lowered := make([]string, len(phrases))
	for i, phrase := range phrases {
		lowered[i] = strings.ToLower(phrase)
	}
	return &Screener{
		phrases: lowered,
		matcher: ahocorasick.NewStringMatcher(lowered),
	}
}

// Assess concatenates the submission's title, narrative fields, education
// path, and tools, then reports the triggered risk phrases (in configured
// order) and whether the text embeds a link.
func (s *Screener) Assess(sub domain.ShareSubmission) domain.ModerationAssessment {
	aggregate := strings.Join([]string{
		sub.RoleTitle,
		sub.DayToDay,
		sub.BestParts,
		sub.HardestParts,
		sub.RecommendationToStudents,
		sub.EducationPath,
		strings.Join(sub.ToolsUsed, " "),
	}, " ")

	hits := s.matcher.Match([]byte(strings.ToLower(aggregate)))
	matched := make(map[int]bool, len(hits))
	for _, idx := range hits {
		matched[idx] = true
	}

	// Emit flags in configured phrase order so identical input always
	// yields identical output.
	flags := make([]string, 0, len(matched))
	for i, phrase := range s.phrases {
		if matched[i] {
			flags = append(flags, phrase)
		}
	}

	return domain.ModerationAssessment{
		Status:       domain.StatusPending,
		Flags:        flags,
		ContainsLink: linkPattern.MatchString(aggregate),
	}
}
