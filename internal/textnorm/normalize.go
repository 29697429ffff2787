// Package textnorm canonicalizes free-text fields: comparison tokenization
// for similarity scoring, display-field cleanup, and repair of database
// timestamp formats.
package textnorm

import (
	"strings"

	"github.com/jobfolio/profile-intake/internal/domain"
)

// minTokenLength is the shortest token kept for similarity comparison.
const minTokenLength = 3

// TokenizeForComparison lowercases the text, treats every non-alphanumeric
// rune as whitespace, and returns the tokens of at least three characters.
// The output is used only for similarity scoring, never for display.
func TokenizeForComparison(text string) []string {
	lowered := strings.ToLower(text)

	var sb strings.Builder
	sb.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		} else {
			sb.WriteByte(' ')
		}
	}

	fields := strings.Fields(sb.String())
	tokens := make([]string, 0, len(fields))
	for _, token := range fields {
		if len(token) >= minTokenLength {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// CollapseWhitespace trims the value and folds internal whitespace runs into
// single spaces.
func CollapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// NormalizeSubmission returns a normalized copy of the submission: display
// fields trimmed and whitespace-collapsed, the contact email lowercased,
// optional fields that are empty after trimming dropped entirely, and the
// tool list deduplicated in order.
func NormalizeSubmission(s domain.ShareSubmission) domain.ShareSubmission {
	out := s
	out.RoleTitle = CollapseWhitespace(s.RoleTitle)
	out.Location = CollapseWhitespace(s.Location)
	out.DayToDay = CollapseWhitespace(s.DayToDay)
	out.BestParts = CollapseWhitespace(s.BestParts)
	out.HardestParts = CollapseWhitespace(s.HardestParts)
	out.RecommendationToStudents = CollapseWhitespace(s.RecommendationToStudents)
	out.SalaryRange = CollapseWhitespace(s.SalaryRange)
	out.EducationPath = CollapseWhitespace(s.EducationPath)
	out.ContactEmail = strings.ToLower(strings.TrimSpace(s.ContactEmail))
	out.ToolsUsed = dedupeTools(s.ToolsUsed)
	return out
}

func dedupeTools(tools []string) []string {
	seen := make(map[string]struct{}, len(tools))
	out := make([]string, 0, len(tools))
	for _, tool := range tools {
		cleaned := CollapseWhitespace(tool)
		if cleaned == "" {
			continue
		}
		if _, ok := seen[cleaned]; ok {
			continue
		}
		seen[cleaned] = struct{}{}
		out = append(out, cleaned)
	}
	return out
}

// NormalizeDBTimestamp converts a persisted timestamp into a fully
// offset-qualified string that downstream date parsing accepts
// unambiguously: a missing time separator becomes "T", a 4-digit numeric
// offset gains a colon, a 2-digit offset gains ":00", and a value with no
// zone indicator at all gains "Z". Returns "" for empty input.
func NormalizeDBTimestamp(value string) string {
	normalized := strings.TrimSpace(value)
	if normalized == "" {
		return ""
	}

	if !strings.Contains(normalized, "T") {
		normalized = strings.Replace(normalized, " ", "T", 1)
	}

	if tail, ok := splitNumericOffset(normalized, 5); ok {
		// +0000 -> +00:00
		normalized = normalized[:len(normalized)-2] + ":" + tail[3:]
	} else if _, ok := splitNumericOffset(normalized, 3); ok {
		// +00 -> +00:00
		normalized += ":00"
	}

	if !hasZoneIndicator(normalized) {
		normalized += "Z"
	}

	return normalized
}

// splitNumericOffset reports whether the value ends in a sign followed by
// width-1 digits, returning that suffix.
func splitNumericOffset(value string, width int) (string, bool) {
	if len(value) < width {
		return "", false
	}
	tail := value[len(value)-width:]
	if tail[0] != '+' && tail[0] != '-' {
		return "", false
	}
	for _, r := range tail[1:] {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	// Guard against the date itself ending in digits (e.g. "...11.123456"):
	// an offset sign is always preceded by a digit or 'T' here, which holds
	// for every postgres timestamp rendering.
	return tail, true
}

func hasZoneIndicator(value string) bool {
	if strings.HasSuffix(value, "Z") || strings.HasSuffix(value, "z") {
		return true
	}
	if len(value) < 6 {
		return false
	}
	tail := value[len(value)-6:]
	if tail[0] != '+' && tail[0] != '-' {
		return false
	}
	if tail[3] != ':' {
		return false
	}
	return isDigit(tail[1]) && isDigit(tail[2]) && isDigit(tail[4]) && isDigit(tail[5])
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
