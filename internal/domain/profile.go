// Package domain defines the job-profile types shared across the service.
package domain

import "time"

// Industry values accepted for a profile.
var Industries = []string{
	"Healthcare",
	"Software",
	"Education",
	"Finance",
	"Manufacturing",
	"Media",
	"Government",
	"Retail",
	"Logistics",
	"Energy",
}

// SeniorityLevels accepted for a profile.
var SeniorityLevels = []string{"Entry", "Mid", "Senior", "Lead"}

// WorkModes accepted for a profile.
var WorkModes = []string{"onsite", "hybrid", "remote"}

// SubmitterTypes accepted for a profile.
var SubmitterTypes = []string{"anonymous", "public"}

// Profile moderation statuses. Transitions are one-way:
// pending -> approved or pending -> rejected.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Storage tiers reported by create operations.
const (
	StoragePostgres      = "postgres"
	StorageLocalFallback = "local-fallback"
)

// JobProfile is an approved or pending first-person narrative record.
type JobProfile struct {
	ID                       string   `json:"id"`
	Slug                     string   `json:"slug"`
	Locale                   string   `json:"locale"`
	RoleTitle                string   `json:"roleTitle"`
	Industry                 string   `json:"industry"`
	Seniority                string   `json:"seniority"`
	Location                 string   `json:"location"`
	WorkMode                 string   `json:"workMode"`
	SalaryRange              string   `json:"salaryRange,omitempty"`
	EducationPath            string   `json:"educationPath,omitempty"`
	DayToDay                 string   `json:"dayToDay"`
	ToolsUsed                []string `json:"toolsUsed"`
	BestParts                string   `json:"bestParts"`
	HardestParts             string   `json:"hardestParts"`
	RecommendationToStudents string   `json:"recommendationToStudents"`
	YearsExperience          int      `json:"yearsExperience"`
	SubmitterType            string   `json:"submitterType"`
	CreatedAt                string   `json:"createdAt"`
	ApprovedAt               string   `json:"approvedAt,omitempty"`
	Status                   string   `json:"status"`
}

// ShareSubmission is the validated, user-supplied submission payload.
// Values are never mutated after creation; normalization produces a copy.
type ShareSubmission struct {
	RoleTitle                string   `json:"roleTitle"`
	Industry                 string   `json:"industry"`
	Seniority                string   `json:"seniority"`
	Location                 string   `json:"location"`
	WorkMode                 string   `json:"workMode"`
	SalaryRange              string   `json:"salaryRange,omitempty"`
	EducationPath            string   `json:"educationPath,omitempty"`
	DayToDay                 string   `json:"dayToDay"`
	ToolsUsed                []string `json:"toolsUsed"`
	BestParts                string   `json:"bestParts"`
	HardestParts             string   `json:"hardestParts"`
	RecommendationToStudents string   `json:"recommendationToStudents"`
	YearsExperience          int      `json:"yearsExperience"`
	SubmitterType            string   `json:"submitterType"`
	ContactEmail             string   `json:"contactEmail,omitempty"`
}

// ModerationAssessment annotates a submission for the moderation queue.
// It is advisory only and never blocks a submission.
type ModerationAssessment struct {
	Status       string   `json:"status"`
	Flags        []string `json:"flags"`
	ContainsLink bool     `json:"containsLink"`
}

// DuplicateMatch is the best-scoring existing profile for a submission.
type DuplicateMatch struct {
	Slug       string  `json:"slug"`
	RoleTitle  string  `json:"roleTitle"`
	Status     string  `json:"status"`
	Similarity float64 `json:"similarity"`
}

// CreateSubmissionResult reports where and under what identifier a pending
// submission was persisted.
type CreateSubmissionResult struct {
	ID      string `json:"id"`
	Slug    string `json:"slug"`
	Storage string `json:"storage"`
}

// PendingSubmissionPreview is a read-only projection of a stored pending
// record for the moderation queue.
type PendingSubmissionPreview struct {
	ID                       string   `json:"id"`
	Slug                     string   `json:"slug"`
	RoleTitle                string   `json:"roleTitle"`
	Industry                 string   `json:"industry"`
	Seniority                string   `json:"seniority"`
	Location                 string   `json:"location"`
	WorkMode                 string   `json:"workMode"`
	SalaryRange              string   `json:"salaryRange,omitempty"`
	EducationPath            string   `json:"educationPath,omitempty"`
	DayToDay                 string   `json:"dayToDay"`
	ToolsUsed                []string `json:"toolsUsed"`
	BestParts                string   `json:"bestParts"`
	HardestParts             string   `json:"hardestParts"`
	RecommendationToStudents string   `json:"recommendationToStudents"`
	YearsExperience          int      `json:"yearsExperience"`
	SubmitterType            string   `json:"submitterType"`
	ContactEmail             string   `json:"contactEmail,omitempty"`
	CreatedAt                string   `json:"createdAt"`
	ReviewNotes              string   `json:"reviewNotes,omitempty"`
	HasFlags                 bool     `json:"hasFlags"`
}

// Pending list sort orders.
const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortFlagged = "flagged"
)

// PendingListOptions filters, sorts, and paginates the moderation queue.
type PendingListOptions struct {
	Sort          string
	Industry      string
	SubmitterType string
	Limit         int
	Offset        int
}

// PendingSubmissionMetrics are aggregates over the filtered (not paginated)
// pending set, computed against the current time on every call.
type PendingSubmissionMetrics struct {
	Total        int `json:"total"`
	Flagged      int `json:"flagged"`
	OlderThan24h int `json:"olderThan24h"`
	OlderThan72h int `json:"olderThan72h"`
}

// PendingSubmissionsResult is a page of the moderation queue with metrics.
type PendingSubmissionsResult struct {
	Items   []PendingSubmissionPreview `json:"items"`
	Total   int                        `json:"total"`
	Metrics PendingSubmissionMetrics   `json:"metrics"`
}

// ModerationUpdate is the outcome of an approve/reject decision.
type ModerationUpdate struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	AuditLogged bool   `json:"auditLogged"`
}

// Age buckets for pending-queue metrics.
const (
	PendingAge24h = 24 * time.Hour
	PendingAge72h = 72 * time.Hour
)
