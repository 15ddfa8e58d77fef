package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/youstel/registration-desk/backend"
	"github.com/youstel/registration-desk/pricing"
	"github.com/youstel/registration-desk/registration"
	"github.com/youstel/registration-desk/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func receipt(id string, status registration.ReceiptStatus, created time.Time) registration.Receipt {
	b := pricing.ComputeBreakdown("4-sharing", 2, 10000, true)
	return registration.Receipt{
		ID:                id,
		Status:            status,
		Email:             id + "@example.com",
		RoomType:          "4-sharing",
		Months:            2,
		AdmissionDate:     "2024-07-10",
		AdmissionUpToDate: "2024-08-31",
		Breakdown:         b,
		Payload: backend.Registration{
			FirstName:         "Meera",
			Email:             id + "@example.com",
			PreferredRoomType: "4-sharing",
			AdmissionMonths:   2,
			Address:           backend.Address{Country: "India"},
			Breakdown:         b,
		},
		Attempts:  1,
		CreatedAt: created,
	}
}

// =============================================================================
// RECEIPT TESTS
// =============================================================================

func TestReceipt_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created := time.Date(2024, 7, 10, 9, 30, 0, 0, time.UTC)
	r := receipt("r-1", registration.StatusSubmitted, created)
	r.StudentID = "YST-1"
	r.QRCode = "data:image/png;base64,AAA"
	require.NoError(t, store.SaveReceipt(ctx, r))

	got, err := store.GetReceipt(ctx, "r-1")
	require.NoError(t, err)

	assert.Equal(t, registration.StatusSubmitted, got.Status)
	assert.Equal(t, "YST-1", got.StudentID)
	assert.Equal(t, r.QRCode, got.QRCode)
	assert.Equal(t, "2024-08-31", got.AdmissionUpToDate)
	assert.Equal(t, r.Breakdown, got.Breakdown)
	assert.Equal(t, "Meera", got.Payload.FirstName)
	assert.Equal(t, pricing.Amount(44000), got.Payload.Breakdown.Total)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.True(t, created.Equal(got.UpdatedAt), "updated_at defaults to created_at")
}

func TestGetReceipt_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetReceipt(context.Background(), "missing")
	assert.ErrorIs(t, err, registration.ErrReceiptNotFound)
}

func TestSaveReceipt_DuplicateIDRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	r := receipt("dup", registration.StatusPending, time.Now())
	require.NoError(t, store.SaveReceipt(ctx, r))
	assert.Error(t, store.SaveReceipt(ctx, r))
}

func TestUpdateReceipt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	r := receipt("r-2", registration.StatusPending, time.Now().Add(-time.Hour))
	require.NoError(t, store.SaveReceipt(ctx, r))

	r.Status = registration.StatusSubmitted
	r.StudentID = "YST-2"
	r.Attempts = 2
	r.UpdatedAt = time.Now()
	require.NoError(t, store.UpdateReceipt(ctx, r))

	got, err := store.GetReceipt(ctx, "r-2")
	require.NoError(t, err)
	assert.Equal(t, registration.StatusSubmitted, got.Status)
	assert.Equal(t, "YST-2", got.StudentID)
	assert.Equal(t, 2, got.Attempts)

	missing := receipt("nope", registration.StatusPending, time.Now())
	assert.ErrorIs(t, store.UpdateReceipt(ctx, missing), registration.ErrReceiptNotFound)
}

func TestListReceipts_Ordering(t *testing.T) {
	// GIVEN: Three receipts, one submitted and two pending
	// WHEN: Listing all and listing pending
	// THEN: All comes back newest first, pending oldest first

	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveReceipt(ctx, receipt("a", registration.StatusPending, base)))
	require.NoError(t, store.SaveReceipt(ctx, receipt("b", registration.StatusSubmitted, base.Add(time.Minute))))
	require.NoError(t, store.SaveReceipt(ctx, receipt("c", registration.StatusPending, base.Add(2*time.Minute))))

	all, err := store.ListReceipts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].ID, all[1].ID, all[2].ID})

	pending, err := store.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "a", pending[0].ID)
	assert.Equal(t, "c", pending[1].ID)
}
