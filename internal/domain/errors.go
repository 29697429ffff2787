package domain

import (
	"errors"
	"fmt"
)

// ErrSubmissionNotFound is returned when a moderation target does not exist.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrProfileNotFound is returned when no approved profile has the requested slug.
var ErrProfileNotFound = errors.New("profile not found")

// ErrAlreadyModerated is returned when a decision targets a submission that
// has left the pending state. Transitions are one-way.
var ErrAlreadyModerated = errors.New("submission already moderated")

// FieldErrors maps a payload field name to its validation messages.
type FieldErrors map[string][]string

// Add appends a message for a field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// ValidationError reports malformed or out-of-bounds input. The caller can
// fix the listed fields and resubmit.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// ConfigurationError reports absent credentials or environment. It is
// operator-fixable and never retried automatically.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// AuthorizationError reports a bad, missing, or non-allow-listed credential.
type AuthorizationError struct {
	Message string
	// Forbidden distinguishes a valid identity that is not allow-listed
	// (403) from a failed authentication (401).
	Forbidden bool
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// RateLimitedError tells the caller to retry after the indicated delay.
type RateLimitedError struct {
	RetryAfterSeconds int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %ds", e.RetryAfterSeconds)
}

// ConflictError reports a near-duplicate submission above the hard
// rejection threshold.
type ConflictError struct {
	Match DuplicateMatch
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("submission duplicates %s (similarity %.2f)", e.Match.Slug, e.Match.Similarity)
}

// StorageError reports a failure writing to or reading from the primary
// store after all fallback attempts were exhausted.
type StorageError struct {
	Op string
	// PolicyViolation marks writes rejected by a row policy; the user-facing
	// message for these instructs credential configuration.
	PolicyViolation bool
	Err             error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
