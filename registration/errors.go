package registration

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is returned when the form is not ready for submission.
	ErrValidation = errors.New("invalid registration")

	// ErrPhotoNotImage is returned when the uploaded file is not an image.
	ErrPhotoNotImage = errors.New("profile photo is not an image")

	// ErrPhotoTooLarge is returned when the photo exceeds MaxPhotoBytes.
	ErrPhotoTooLarge = errors.New("profile photo too large")

	// ErrSubmissionInProgress is returned when the same student's form is
	// already being submitted.
	ErrSubmissionInProgress = errors.New("submission already in progress")

	// ErrReceiptNotFound is returned when an archived receipt doesn't exist.
	ErrReceiptNotFound = errors.New("receipt not found")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ValidationError names the first field that blocks submission.
type ValidationError struct {
	Field   string
	Message string
	Err     error // optional cause, e.g. ErrPhotoTooLarge
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrValidation, e.Err}
	}
	return []error{ErrValidation}
}

// IsClientError returns true if the error is due to invalid form input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrSubmissionInProgress)
}
