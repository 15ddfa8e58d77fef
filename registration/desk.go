package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/youstel/registration-desk/backend"
)

// DefaultMaxAttempts is how many times a pending receipt is submitted before
// it is marked failed.
const DefaultMaxAttempts = 5

// Submitter sends a registration to the hostel backend.
// *backend.Client implements it.
type Submitter interface {
	Submit(ctx context.Context, reg backend.Registration) (*backend.Result, error)
}

// Desk validates, submits and archives registrations.
type Desk struct {
	Backend     Submitter
	Archive     Archive
	MaxAttempts int
	Now         func() time.Time
	Logger      *slog.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewDesk creates a desk with default settings.
func NewDesk(b Submitter, a Archive) *Desk {
	return &Desk{
		Backend:     b,
		Archive:     a,
		MaxAttempts: DefaultMaxAttempts,
		Now:         time.Now,
		Logger:      slog.Default(),
		inFlight:    make(map[string]bool),
	}
}

// Submit validates the form, posts it and archives the receipt.
//
// RESULTS:
//   - invalid form:        nil receipt, *ValidationError
//   - backend accepted:    receipt with StatusSubmitted, nil error
//   - backend unreachable: receipt with StatusPending, nil error (the outbox retries it)
//   - backend rejected:    receipt with StatusFailed, the backend error
func (d *Desk) Submit(ctx context.Context, s State) (*Receipt, error) {
	if err := Validate(s); err != nil {
		return nil, err
	}

	key := strings.ToLower(strings.TrimSpace(s.Email))
	if !d.begin(key) {
		return nil, ErrSubmissionInProgress
	}
	defer d.end(key)

	now := d.Now()
	payload := BuildSubmission(s, now)
	receipt := Receipt{
		ID:                uuid.NewString(),
		Email:             payload.Email,
		RoomType:          payload.PreferredRoomType,
		Months:            payload.AdmissionMonths,
		AdmissionDate:     payload.AdmissionDate,
		AdmissionUpToDate: payload.AdmissionUpToDate,
		Breakdown:         payload.Breakdown,
		Payload:           payload,
		CreatedAt:         now,
	}

	submitErr := d.attempt(ctx, &receipt)
	// The receipt is archived even when the caller gave up mid-request.
	if err := d.Archive.SaveReceipt(context.WithoutCancel(ctx), receipt); err != nil {
		return nil, fmt.Errorf("archive receipt: %w", err)
	}

	d.Logger.Info("registration submitted",
		"receipt_id", receipt.ID,
		"status", receipt.Status,
		"room_type", receipt.RoomType,
		"months", receipt.Months,
		"total", int64(receipt.Breakdown.Total),
	)

	if receipt.Status == StatusFailed {
		return &receipt, submitErr
	}
	return &receipt, nil
}

// Resubmit retries a pending receipt and stores the outcome.
func (d *Desk) Resubmit(ctx context.Context, r Receipt) (*Receipt, error) {
	if r.Status != StatusPending {
		return &r, nil
	}

	submitErr := d.attempt(ctx, &r)
	if r.Status == StatusPending && r.Attempts >= d.maxAttempts() {
		r.Status = StatusFailed
		r.Message = fmt.Sprintf("gave up after %d attempts: %s", r.Attempts, r.Message)
	}
	if err := d.Archive.UpdateReceipt(context.WithoutCancel(ctx), r); err != nil {
		return nil, fmt.Errorf("update receipt %s: %w", r.ID, err)
	}
	if r.Status == StatusFailed {
		return &r, submitErr
	}
	return &r, nil
}

// RetryPending resubmits every pending receipt and returns how many the
// backend accepted.
func (d *Desk) RetryPending(ctx context.Context) (int, error) {
	pending, err := d.Archive.ListPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("list pending receipts: %w", err)
	}

	accepted := 0
	for _, r := range pending {
		if ctx.Err() != nil {
			return accepted, ctx.Err()
		}
		updated, err := d.Resubmit(ctx, r)
		if err != nil && updated == nil {
			return accepted, err
		}
		if err != nil {
			d.Logger.Warn("pending registration failed", "receipt_id", r.ID, "error", err)
			continue
		}
		if updated.Status == StatusSubmitted {
			accepted++
		}
	}
	return accepted, nil
}

// attempt submits r.Payload once and records the outcome on r.
func (d *Desk) attempt(ctx context.Context, r *Receipt) error {
	r.Attempts++
	r.UpdatedAt = d.Now()

	res, err := d.Backend.Submit(ctx, r.Payload)
	switch {
	case err == nil:
		r.Status = StatusSubmitted
		r.StudentID = res.ID()
		r.QRCode = res.QRCode
		r.Message = res.Message
	case backend.IsRetryable(err), errors.Is(err, context.Canceled):
		r.Status = StatusPending
		r.Message = err.Error()
	default:
		r.Status = StatusFailed
		r.Message = err.Error()
	}
	return err
}

func (d *Desk) maxAttempts() int {
	if d.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return d.MaxAttempts
}

func (d *Desk) begin(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inFlight == nil {
		d.inFlight = make(map[string]bool)
	}
	if d.inFlight[key] {
		return false
	}
	d.inFlight[key] = true
	return true
}

func (d *Desk) end(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.inFlight, key)
}
