package registration

import (
	"context"
	"time"

	"github.com/youstel/registration-desk/backend"
	"github.com/youstel/registration-desk/pricing"
)

// =============================================================================
// RECEIPT - What was submitted, kept for reprinting
// =============================================================================

type ReceiptStatus string

const (
	StatusSubmitted ReceiptStatus = "submitted" // accepted by the backend
	StatusPending   ReceiptStatus = "pending"   // backend unreachable, queued for retry
	StatusFailed    ReceiptStatus = "failed"    // rejected, or retries exhausted
)

// Receipt is the archived record of one submission attempt chain.
type Receipt struct {
	ID                string
	Status            ReceiptStatus
	StudentID         string
	QRCode            string
	Email             string
	RoomType          string
	Months            int
	AdmissionDate     string
	AdmissionUpToDate string
	Breakdown         pricing.FeeBreakdown
	Payload           backend.Registration
	Message           string
	Attempts          int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// =============================================================================
// ARCHIVE - Receipt persistence
// =============================================================================

// Archive stores receipts.
//
// IMPLEMENTATIONS:
//   - store/sqlite: SQLite-backed, used by the server
//   - store/memory: In-memory, for tests and the CLI
type Archive interface {
	// SaveReceipt inserts a new receipt.
	SaveReceipt(ctx context.Context, r Receipt) error

	// UpdateReceipt replaces an existing receipt. Returns ErrReceiptNotFound
	// if it doesn't exist.
	UpdateReceipt(ctx context.Context, r Receipt) error

	// GetReceipt returns ErrReceiptNotFound if the receipt doesn't exist.
	GetReceipt(ctx context.Context, id string) (*Receipt, error)

	// ListReceipts returns all receipts, newest first.
	ListReceipts(ctx context.Context) ([]Receipt, error)

	// ListPending returns receipts waiting for resubmission, oldest first.
	ListPending(ctx context.Context) ([]Receipt, error)
}
