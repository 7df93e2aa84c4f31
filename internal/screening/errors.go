package screening

import "errors"

// Precondition failures returned before any remote call is made.
var (
	ErrNoJobDescription     = errors.New("no job description loaded")
	ErrNoResumes            = errors.New("no resume loaded")
	ErrConversationTooShort = errors.New("conversation too short for analysis")
)

// ErrAnalysis wraps failures from the language-model call so callers can
// distinguish remote failures from precondition failures.
var ErrAnalysis = errors.New("analysis failed")

// Error codes used in HTTP error bodies.
const (
	CodeValidation   = "validation_error"
	CodePrecondition = "precondition_failed"
	CodeFileRead     = "file_read_error"
	CodeAnalysis     = "analysis_error"
	CodeNotFound     = "not_found"
	CodeInternal     = "internal"
)

// IsPrecondition reports whether err is one of the analyze/suggest gate
// failures.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrNoJobDescription) ||
		errors.Is(err, ErrNoResumes) ||
		errors.Is(err, ErrConversationTooShort)
}
