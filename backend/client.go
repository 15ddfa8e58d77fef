package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the hosted hostel backend.
const DefaultBaseURL = "https://hostel-management-backend-new-1.onrender.com/api"

// DefaultTimeout bounds a single submission.
const DefaultTimeout = 30 * time.Second

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 1 << 20

// NormalizeBaseURL returns the API root for a configured URL. The URL gets an
// /api suffix unless it already has one; an empty URL means DefaultBaseURL.
func NormalizeBaseURL(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	if u == "" {
		return DefaultBaseURL
	}
	if strings.HasSuffix(u, "/api") {
		return u
	}
	return u + "/api"
}

// Client submits registrations to the backend.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the given base URL and timeout.
// A zero timeout means DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL:    NormalizeBaseURL(baseURL),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Submit posts a registration and returns the backend's answer.
func (c *Client) Submit(ctx context.Context, reg Registration) (*Result, error) {
	body, err := json.Marshal(reg)
	if err != nil {
		return nil, fmt.Errorf("encode registration: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/student-registration", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, &UnavailableError{Timeout: isTimeout(err), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &UnavailableError{Timeout: isTimeout(err), Err: err}
	}

	if looksLikeHTML(raw) {
		return nil, fmt.Errorf("%w (status %d)", ErrHTMLResponse, resp.StatusCode)
	}

	var env response
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		if msg == "" && decodeErr != nil {
			msg = truncate(strings.TrimSpace(string(raw)), 200)
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		if msg == "" {
			msg = fmt.Sprintf("Registration failed. Server returned status %d", resp.StatusCode)
		}
		return nil, &RejectedError{Message: msg}
	}

	res := &Result{Message: env.Message}
	if res.Message == "" {
		res.Message = "Registration submitted successfully! Your request is pending admin approval."
	}
	if env.Data != nil {
		res.StudentID = env.Data.StudentID
		res.RegistrationID = env.Data.ID
		res.QRCode = env.Data.QRCode
	}
	return res, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func looksLikeHTML(b []byte) bool {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	return strings.HasPrefix(s, "<!doctype html") || strings.HasPrefix(s, "<html")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
