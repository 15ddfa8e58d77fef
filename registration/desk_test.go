package registration_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/youstel/registration-desk/backend"
	"github.com/youstel/registration-desk/registration"
	"github.com/youstel/registration-desk/store/memory"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// fakeBackend answers with queued outcomes; once the queue is empty it accepts.
type fakeBackend struct {
	mu       sync.Mutex
	outcomes []error
	received []backend.Registration
	started  chan struct{}
	block    chan struct{}
}

func (f *fakeBackend) Submit(ctx context.Context, reg backend.Registration) (*backend.Result, error) {
	if f.block != nil {
		f.started <- struct{}{}
		<-f.block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.received = append(f.received, reg)

	if len(f.outcomes) > 0 {
		err := f.outcomes[0]
		f.outcomes = f.outcomes[1:]
		if err != nil {
			return nil, err
		}
	}
	return &backend.Result{
		Message:   "Registration submitted successfully!",
		StudentID: "YST-42",
		QRCode:    "data:image/png;base64,QR",
	}, nil
}

func (f *fakeBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.received)
}

func unreachable() error {
	return &backend.UnavailableError{Err: errors.New("connection refused")}
}

func newTestDesk(b registration.Submitter) (*registration.Desk, *memory.Memory) {
	archive := memory.NewMemory()
	desk := registration.NewDesk(b, archive)
	desk.Now = func() time.Time { return today }
	desk.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return desk, archive
}

// =============================================================================
// SUBMIT
// =============================================================================

func TestDesk_SubmitAccepted(t *testing.T) {
	// GIVEN: A complete form and a backend that accepts it
	fake := &fakeBackend{}
	desk, archive := newTestDesk(fake)

	// WHEN: Submitting
	receipt, err := desk.Submit(context.Background(), completeForm())

	// THEN: The receipt is submitted, carries the student ID and is archived
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, registration.StatusSubmitted, receipt.Status)
	assert.Equal(t, "YST-42", receipt.StudentID)
	assert.Equal(t, 1, receipt.Attempts)
	assert.NotEmpty(t, receipt.ID)

	stored, err := archive.GetReceipt(context.Background(), receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, registration.StatusSubmitted, stored.Status)
	assert.Equal(t, "asha.jain@example.com", stored.Email)
	assert.Equal(t, fake.received[0], stored.Payload)
}

func TestDesk_SubmitInvalidFormNeverReachesBackend(t *testing.T) {
	fake := &fakeBackend{}
	desk, archive := newTestDesk(fake)

	receipt, err := desk.Submit(context.Background(), registration.NewState())

	assert.Nil(t, receipt)
	assert.ErrorIs(t, err, registration.ErrValidation)
	assert.Zero(t, fake.calls())

	all, _ := archive.ListReceipts(context.Background())
	assert.Empty(t, all)
}

func TestDesk_SubmitUnreachableQueuesReceipt(t *testing.T) {
	fake := &fakeBackend{outcomes: []error{unreachable()}}
	desk, archive := newTestDesk(fake)

	receipt, err := desk.Submit(context.Background(), completeForm())

	require.NoError(t, err)
	assert.Equal(t, registration.StatusPending, receipt.Status)
	assert.Contains(t, receipt.Message, "connection refused")

	pending, err := archive.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, receipt.ID, pending[0].ID)
}

func TestDesk_SubmitRejected(t *testing.T) {
	rejection := &backend.APIError{Status: 400, Message: "Email already exists"}
	fake := &fakeBackend{outcomes: []error{rejection}}
	desk, archive := newTestDesk(fake)

	receipt, err := desk.Submit(context.Background(), completeForm())

	require.Error(t, err)
	assert.True(t, backend.IsEmailConflict(err))
	require.NotNil(t, receipt)
	assert.Equal(t, registration.StatusFailed, receipt.Status)

	pending, _ := archive.ListPending(context.Background())
	assert.Empty(t, pending)
}

func TestDesk_SubmitServerErrorIsRetried(t *testing.T) {
	fake := &fakeBackend{outcomes: []error{&backend.APIError{Status: 503}}}
	desk, _ := newTestDesk(fake)

	receipt, err := desk.Submit(context.Background(), completeForm())
	require.NoError(t, err)
	assert.Equal(t, registration.StatusPending, receipt.Status)
}

func TestDesk_OneSubmissionPerStudentAtATime(t *testing.T) {
	// GIVEN: A backend that holds the first request open
	fake := &fakeBackend{started: make(chan struct{}, 1), block: make(chan struct{})}
	desk, _ := newTestDesk(fake)

	first := make(chan error, 1)
	go func() {
		_, err := desk.Submit(context.Background(), completeForm())
		first <- err
	}()
	<-fake.started

	// WHEN: The same student submits again while it is in flight
	receipt, err := desk.Submit(context.Background(), completeForm())

	// THEN: The second submission is refused
	assert.Nil(t, receipt)
	assert.ErrorIs(t, err, registration.ErrSubmissionInProgress)
	assert.True(t, registration.IsClientError(err))

	close(fake.block)
	require.NoError(t, <-first)
	assert.Equal(t, 1, fake.calls())
}

// =============================================================================
// OUTBOX RETRIES
// =============================================================================

func TestDesk_RetryPending(t *testing.T) {
	// GIVEN: One submission queued while the backend was down
	fake := &fakeBackend{outcomes: []error{unreachable()}}
	desk, archive := newTestDesk(fake)
	queued, err := desk.Submit(context.Background(), completeForm())
	require.NoError(t, err)
	require.Equal(t, registration.StatusPending, queued.Status)

	// WHEN: The backend comes back and the outbox runs
	accepted, err := desk.RetryPending(context.Background())

	// THEN: The receipt is submitted on its second attempt
	require.NoError(t, err)
	assert.Equal(t, 1, accepted)

	stored, err := archive.GetReceipt(context.Background(), queued.ID)
	require.NoError(t, err)
	assert.Equal(t, registration.StatusSubmitted, stored.Status)
	assert.Equal(t, 2, stored.Attempts)
	assert.Equal(t, "YST-42", stored.StudentID)

	accepted, err = desk.RetryPending(context.Background())
	require.NoError(t, err)
	assert.Zero(t, accepted)
	assert.Equal(t, 2, fake.calls())
}

func TestDesk_RetryPendingGivesUp(t *testing.T) {
	fake := &fakeBackend{outcomes: []error{unreachable(), unreachable(), unreachable()}}
	desk, archive := newTestDesk(fake)
	desk.MaxAttempts = 3

	queued, err := desk.Submit(context.Background(), completeForm())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		accepted, err := desk.RetryPending(context.Background())
		require.NoError(t, err)
		assert.Zero(t, accepted)
	}

	stored, err := archive.GetReceipt(context.Background(), queued.ID)
	require.NoError(t, err)
	assert.Equal(t, registration.StatusFailed, stored.Status)
	assert.Equal(t, 3, stored.Attempts)
	assert.Contains(t, stored.Message, "gave up after 3 attempts")

	pending, _ := archive.ListPending(context.Background())
	assert.Empty(t, pending)
}

func TestDesk_ResubmitIgnoresSettledReceipts(t *testing.T) {
	fake := &fakeBackend{}
	desk, _ := newTestDesk(fake)

	r := registration.Receipt{ID: "done", Status: registration.StatusSubmitted}
	got, err := desk.Resubmit(context.Background(), r)

	require.NoError(t, err)
	assert.Equal(t, registration.StatusSubmitted, got.Status)
	assert.Zero(t, fake.calls())
}

func TestDesk_CanceledRequestStaysPending(t *testing.T) {
	fake := &fakeBackend{outcomes: []error{context.Canceled}}
	desk, archive := newTestDesk(fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	receipt, err := desk.Submit(ctx, completeForm())
	require.NoError(t, err)
	assert.Equal(t, registration.StatusPending, receipt.Status)

	_, err = archive.GetReceipt(context.Background(), receipt.ID)
	assert.NoError(t, err, "receipt is archived despite the canceled request")
}
