package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrRejected is returned when the backend answers 2xx with success=false.
	ErrRejected = errors.New("registration rejected by backend")

	// ErrHTMLResponse is returned when an HTML page comes back instead of JSON,
	// which almost always means the base URL or route is wrong.
	ErrHTMLResponse = errors.New("backend returned HTML instead of JSON")

	// ErrUnavailable is returned when no response was received at all.
	ErrUnavailable = errors.New("backend unavailable")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend error (%d)", e.Status)
	}
	return fmt.Sprintf("backend error (%d): %s", e.Status, e.Message)
}

// RejectedError carries the backend's message for a success=false answer.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string { return "registration rejected: " + e.Message }
func (e *RejectedError) Unwrap() error { return ErrRejected }

// UnavailableError wraps the transport failure behind ErrUnavailable.
type UnavailableError struct {
	Timeout bool
	Err     error
}

func (e *UnavailableError) Error() string {
	if e.Timeout {
		return "backend request timed out: " + e.Err.Error()
	}
	return "backend unreachable: " + e.Err.Error()
}

func (e *UnavailableError) Unwrap() []error { return []error{ErrUnavailable, e.Err} }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsRetryable returns true if resubmitting later might succeed.
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, ErrUnavailable) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status >= 500
}

// IsEmailConflict reports an "email already registered" rejection.
func IsEmailConflict(err error) bool {
	msg := strings.ToLower(messageOf(err))
	return strings.Contains(msg, "email") &&
		(strings.Contains(msg, "already exists") || strings.Contains(msg, "already submitted"))
}

// IsEmailFormat reports an "invalid email" rejection.
func IsEmailFormat(err error) bool {
	msg := strings.ToLower(messageOf(err))
	return strings.Contains(msg, "email") &&
		(strings.Contains(msg, "invalid email") || strings.Contains(msg, "email format"))
}

// IsNotFound reports a 404 or an HTML page, both meaning the route is wrong.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrHTMLResponse) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsClientError returns true for 4xx answers and success=false rejections.
func IsClientError(err error) bool {
	if errors.Is(err, ErrRejected) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500
}

func messageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Message
	}
	return ""
}

// UserMessage turns a submission error into text for the student.
func UserMessage(err error, baseURL string) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	var unavailable *UnavailableError
	switch {
	case IsNotFound(err):
		status := http.StatusNotFound
		if errors.As(err, &apiErr) {
			status = apiErr.Status
		}
		return fmt.Sprintf("Server not found (%d). Please check if the backend server is running at %s", status, baseURL)

	case IsEmailConflict(err):
		return "Email Error: " + messageOf(err) +
			"\n\nThis email is already registered. Please use a different email address or contact admin if you believe this is an error."

	case IsEmailFormat(err):
		return "Email Format Error: " + messageOf(err) + "\n\nPlease check your email address and try again."

	case errors.As(err, &apiErr):
		switch {
		case apiErr.Status == http.StatusBadRequest:
			if apiErr.Message != "" {
				return apiErr.Message
			}
			return "Invalid data. Please check all fields and try again."
		case apiErr.Status == http.StatusInternalServerError:
			return "Server error (500). Please try again later or contact support."
		case apiErr.Status >= 400 && apiErr.Status < 500:
			msg := apiErr.Message
			if msg == "" {
				msg = "Please check your input and try again."
			}
			return fmt.Sprintf("Client error (%d): %s", apiErr.Status, msg)
		default:
			return fmt.Sprintf("Server error (%d): %s", apiErr.Status, orDefault(apiErr.Message, "Unknown error"))
		}

	case errors.Is(err, ErrRejected):
		return orDefault(messageOf(err), "Registration failed. Please try again.")

	case errors.Is(err, context.Canceled):
		return "Request was cancelled. Please try again."

	case errors.As(err, &unavailable):
		if unavailable.Timeout {
			return "Request timeout. The server took too long to respond. Please try again."
		}
		return fmt.Sprintf("Network Error\n\nCannot connect to server.\n\nAPI URL: %s", baseURL)
	}

	return "Error: " + err.Error()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
