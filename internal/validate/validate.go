// Package validate checks untyped submission payloads against the profile
// schema, producing either a typed value or a field-level error map. It
// never panics on malformed input.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jobfolio/profile-intake/internal/domain"
)

// Field bounds for a share submission.
const (
	roleTitleMin      = 3
	roleTitleMax      = 120
	locationMin       = 2
	locationMax       = 120
	salaryRangeMax    = 80
	educationPathMax  = 240
	dayToDayMin       = 30
	dayToDayMax       = 1400
	narrativeMin      = 20
	narrativeMax      = 900
	toolMax           = 64
	toolsMaxItems     = 20
	toolsStringMax    = 300
	yearsMin          = 0
	yearsMax          = 50
	contactEmailMax   = 200
	reviewNotesMax    = 600
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SlugPattern is the shape every stored profile slug must match.
var SlugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ShareSubmission validates an untyped payload (decoded JSON object or
// flattened form values) and returns the typed submission, or a non-empty
// error map describing every failing field.
func ShareSubmission(payload map[string]any) (*domain.ShareSubmission, domain.FieldErrors) {
	errs := domain.FieldErrors{}
	sub := &domain.ShareSubmission{}

	sub.RoleTitle = requireString(payload, errs, "roleTitle", roleTitleMin, roleTitleMax)
	sub.Industry = requireEnum(payload, errs, "industry", domain.Industries)
	sub.Seniority = requireEnum(payload, errs, "seniority", domain.SeniorityLevels)
	sub.Location = requireString(payload, errs, "location", locationMin, locationMax)
	sub.WorkMode = requireEnum(payload, errs, "workMode", domain.WorkModes)
	sub.SalaryRange = optionalString(payload, errs, "salaryRange", salaryRangeMax)
	sub.EducationPath = optionalString(payload, errs, "educationPath", educationPathMax)
	sub.DayToDay = requireString(payload, errs, "dayToDay", dayToDayMin, dayToDayMax)
	sub.BestParts = requireString(payload, errs, "bestParts", narrativeMin, narrativeMax)
	sub.HardestParts = requireString(payload, errs, "hardestParts", narrativeMin, narrativeMax)
	sub.RecommendationToStudents = requireString(
		payload, errs, "recommendationToStudents", narrativeMin, narrativeMax)
	sub.ToolsUsed = toolsUsed(payload, errs)
	sub.YearsExperience = requireInt(payload, errs, "yearsExperience", yearsMin, yearsMax)
	sub.SubmitterType = requireEnum(payload, errs, "submitterType", domain.SubmitterTypes)
	sub.ContactEmail = contactEmail(payload, errs)

	if len(errs) > 0 {
		return nil, errs
	}
	return sub, nil
}

// ReviewNotes validates an optional moderation note.
func ReviewNotes(value string) error {
	if utf8.RuneCountInString(value) > reviewNotesMax {
		return fmt.Errorf("reviewNotes must be at most %d characters", reviewNotesMax)
	}
	return nil
}

func requireString(payload map[string]any, errs domain.FieldErrors, field string, min, max int) string {
	raw, ok := payload[field]
	if !ok || raw == nil {
		errs.Add(field, "is required")
		return ""
	}

	value, ok := raw.(string)
	if !ok {
		errs.Add(field, "must be a string")
		return ""
	}

	length := utf8.RuneCountInString(value)
	if length < min {
		errs.Add(field, fmt.Sprintf("must be at least %d characters", min))
	}
	if length > max {
		errs.Add(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return value
}

func optionalString(payload map[string]any, errs domain.FieldErrors, field string, max int) string {
	raw, ok := payload[field]
	if !ok || raw == nil {
		return ""
	}

	value, ok := raw.(string)
	if !ok {
		errs.Add(field, "must be a string")
		return ""
	}

	if utf8.RuneCountInString(value) > max {
		errs.Add(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return value
}

func requireEnum(payload map[string]any, errs domain.FieldErrors, field string, allowed []string) string {
	raw, ok := payload[field]
	if !ok || raw == nil {
		errs.Add(field, "is required")
		return ""
	}

	value, ok := raw.(string)
	if !ok {
		errs.Add(field, "must be a string")
		return ""
	}

	for _, candidate := range allowed {
		if value == candidate {
			return value
		}
	}

	errs.Add(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	return ""
}

// requireInt accepts JSON numbers and decimal strings (form encoding).
func requireInt(payload map[string]any, errs domain.FieldErrors, field string, min, max int) int {
	raw, ok := payload[field]
	if !ok || raw == nil {
		errs.Add(field, "is required")
		return 0
	}

	var value int
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			errs.Add(field, "must be an integer")
			return 0
		}
		value = int(v)
	case int:
		value = v
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs.Add(field, "must be an integer")
			return 0
		}
		value = parsed
	default:
		errs.Add(field, "must be an integer")
		return 0
	}

	if value < min || value > max {
		errs.Add(field, fmt.Sprintf("must be between %d and %d", min, max))
	}
	return value
}

// toolsUsed accepts either an array of tool names or a single
// comma-separated string, and normalizes both to a trimmed array. The array
// form is strict: too many items or an empty entry is a field error. The
// string form is lenient: blanks drop out and the list is cut at the cap.
func toolsUsed(payload map[string]any, errs domain.FieldErrors) []string {
	const field = "toolsUsed"

	raw, ok := payload[field]
	if !ok || raw == nil {
		errs.Add(field, "is required")
		return nil
	}

	switch v := raw.(type) {
	case string:
		if utf8.RuneCountInString(v) > toolsStringMax {
			errs.Add(field, fmt.Sprintf("must be at most %d characters", toolsStringMax))
			return nil
		}
		tools := make([]string, 0, toolsMaxItems)
		for _, item := range strings.Split(v, ",") {
			tool := strings.TrimSpace(item)
			if tool == "" {
				continue
			}
			tools = append(tools, tool)
			if len(tools) == toolsMaxItems {
				break
			}
		}
		return tools
	case []string:
		return toolsFromList(v, errs)
	case []any:
		items := make([]string, 0, len(v))
		for _, entry := range v {
			s, ok := entry.(string)
			if !ok {
				errs.Add(field, "must contain only strings")
				return nil
			}
			items = append(items, s)
		}
		return toolsFromList(items, errs)
	default:
		errs.Add(field, "must be an array of tools or a comma-separated string")
		return nil
	}
}

func toolsFromList(items []string, errs domain.FieldErrors) []string {
	const field = "toolsUsed"

	if len(items) > toolsMaxItems {
		errs.Add(field, fmt.Sprintf("must have at most %d tools", toolsMaxItems))
		return nil
	}

	tools := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" {
			errs.Add(field, "must not contain empty tools")
			return nil
		}
		if utf8.RuneCountInString(item) > toolMax {
			errs.Add(field, fmt.Sprintf("each tool must be at most %d characters", toolMax))
			return nil
		}
		tool := strings.TrimSpace(item)
		if tool == "" {
			continue
		}
		tools = append(tools, tool)
	}
	return tools
}

func contactEmail(payload map[string]any, errs domain.FieldErrors) string {
	const field = "contactEmail"

	raw, ok := payload[field]
	if !ok || raw == nil {
		return ""
	}

	value, ok := raw.(string)
	if !ok {
		errs.Add(field, "must be a string")
		return ""
	}
	if value == "" {
		return ""
	}

	if utf8.RuneCountInString(value) > contactEmailMax {
		errs.Add(field, fmt.Sprintf("must be at most %d characters", contactEmailMax))
		return value
	}
	if !emailPattern.MatchString(strings.TrimSpace(value)) {
		errs.Add(field, "must be a valid email address")
	}
	return value
}
