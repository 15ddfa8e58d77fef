/*
Package sqlite provides a SQLite-backed receipt archive.

PURPOSE:
  Implements registration.Archive using SQLite. Every submission attempt
  chain produces one receipt row, which the desk updates as the outbox
  retries it.

KEY TABLES:
  receipts: One row per submitted registration. The full backend payload and
            fee breakdown are stored as JSON so a receipt can be reprinted
            exactly as it was quoted.

INDEXES:
  - idx_receipts_status_created: Outbox scan for pending receipts (hot path)
  - idx_receipts_email:          Lookup by student email

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of SQLite's own locking.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers don't block the
  outbox writer.

USAGE:
  store, err := sqlite.New("./data/desk.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  desk := registration.NewDesk(client, store)

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - registration/archive.go: Interface definition
  - store/memory: In-memory implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/youstel/registration-desk/registration"
)

// timeLayout is fixed-width so timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store implements registration.Archive using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ registration.Archive = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS receipts (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		student_id TEXT,
		qr_code TEXT,
		email TEXT NOT NULL,
		room_type TEXT NOT NULL,
		months INTEGER NOT NULL,
		admission_date TEXT,
		admission_up_to_date TEXT,
		total INTEGER NOT NULL,
		breakdown_json TEXT NOT NULL,
		payload_json TEXT NOT NULL,
		message TEXT,
		attempts INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Outbox scan: pending receipts, oldest first
	CREATE INDEX IF NOT EXISTS idx_receipts_status_created
		ON receipts(status, created_at);

	CREATE INDEX IF NOT EXISTS idx_receipts_email
		ON receipts(email);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RECEIPT OPERATIONS
// =============================================================================

const receiptColumns = `id, status, student_id, qr_code, email, room_type, months,
	admission_date, admission_up_to_date, breakdown_json, payload_json,
	message, attempts, created_at, updated_at`

// SaveReceipt inserts a new receipt.
func (s *Store) SaveReceipt(ctx context.Context, r registration.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	breakdown, payload, err := encodeReceipt(r)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO receipts (id, status, student_id, qr_code, email, room_type, months,
			admission_date, admission_up_to_date, total, breakdown_json, payload_json,
			message, attempts, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		r.ID, string(r.Status), nullString(r.StudentID), nullString(r.QRCode),
		r.Email, r.RoomType, r.Months,
		nullString(r.AdmissionDate), nullString(r.AdmissionUpToDate),
		int64(r.Breakdown.Total), breakdown, payload,
		nullString(r.Message), r.Attempts,
		formatTime(r.CreatedAt), formatTime(updatedAt(r)),
	)
	if err != nil {
		return fmt.Errorf("insert receipt %s: %w", r.ID, err)
	}
	return nil
}

// UpdateReceipt replaces the mutable fields of an existing receipt.
func (s *Store) UpdateReceipt(ctx context.Context, r registration.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	breakdown, payload, err := encodeReceipt(r)
	if err != nil {
		return err
	}

	query := `
		UPDATE receipts SET
			status = ?, student_id = ?, qr_code = ?, total = ?,
			breakdown_json = ?, payload_json = ?, message = ?,
			attempts = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		string(r.Status), nullString(r.StudentID), nullString(r.QRCode),
		int64(r.Breakdown.Total), breakdown, payload, nullString(r.Message),
		r.Attempts, formatTime(updatedAt(r)),
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("update receipt %s: %w", r.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return registration.ErrReceiptNotFound
	}
	return nil
}

// GetReceipt returns a receipt by ID.
func (s *Store) GetReceipt(ctx context.Context, id string) (*registration.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, "SELECT "+receiptColumns+" FROM receipts WHERE id = ?", id)
	r, err := scanReceipt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, registration.ErrReceiptNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListReceipts returns all receipts, newest first.
func (s *Store) ListReceipts(ctx context.Context) ([]registration.Receipt, error) {
	return s.queryReceipts(ctx,
		"SELECT "+receiptColumns+" FROM receipts ORDER BY created_at DESC, id",
	)
}

// ListPending returns receipts waiting for resubmission, oldest first.
func (s *Store) ListPending(ctx context.Context) ([]registration.Receipt, error) {
	return s.queryReceipts(ctx,
		"SELECT "+receiptColumns+" FROM receipts WHERE status = ? ORDER BY created_at, id",
		string(registration.StatusPending),
	)
}

func (s *Store) queryReceipts(ctx context.Context, query string, args ...any) ([]registration.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []registration.Receipt
	for rows.Next() {
		r, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, r)
	}
	return receipts, rows.Err()
}

// =============================================================================
// HELPERS
// =============================================================================

type scanner interface {
	Scan(dest ...any) error
}

func scanReceipt(row scanner) (registration.Receipt, error) {
	var r registration.Receipt
	var status, breakdown, payload, createdAt, updatedAt string
	var studentID, qrCode, admissionDate, upTo, message sql.NullString

	err := row.Scan(
		&r.ID, &status, &studentID, &qrCode, &r.Email, &r.RoomType, &r.Months,
		&admissionDate, &upTo, &breakdown, &payload,
		&message, &r.Attempts, &createdAt, &updatedAt,
	)
	if err != nil {
		return r, err
	}

	r.Status = registration.ReceiptStatus(status)
	r.StudentID = studentID.String
	r.QRCode = qrCode.String
	r.AdmissionDate = admissionDate.String
	r.AdmissionUpToDate = upTo.String
	r.Message = message.String
	r.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	r.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)

	if err := json.Unmarshal([]byte(breakdown), &r.Breakdown); err != nil {
		return r, fmt.Errorf("decode breakdown of receipt %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(payload), &r.Payload); err != nil {
		return r, fmt.Errorf("decode payload of receipt %s: %w", r.ID, err)
	}
	return r, nil
}

func encodeReceipt(r registration.Receipt) (breakdown, payload string, err error) {
	b, err := json.Marshal(r.Breakdown)
	if err != nil {
		return "", "", fmt.Errorf("encode breakdown: %w", err)
	}
	p, err := json.Marshal(r.Payload)
	if err != nil {
		return "", "", fmt.Errorf("encode payload: %w", err)
	}
	return string(b), string(p), nil
}

func updatedAt(r registration.Receipt) time.Time {
	if r.UpdatedAt.IsZero() {
		return r.CreatedAt
	}
	return r.UpdatedAt
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timeLayout)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
