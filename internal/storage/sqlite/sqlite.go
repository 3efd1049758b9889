// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/splitbill/internal/models"
	"github.com/mmynk/splitbill/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// execer and querier are satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas in the DSN apply to every pooled connection, not just the first.
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// withTx runs fn inside a transaction, committing only if fn succeeds.
func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CreateBill persists a new bill to the database.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	// Generate IDs if not set
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if bill.CreatedAt == 0 {
		bill.CreatedAt = now
	}
	bill.UpdatedAt = now
	if bill.Name == "" {
		bill.Name = generateTitle(bill.Participants)
	}
	if bill.TipKind == "" {
		bill.TipKind = models.TipPercentage
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO bills (id, owner_id, name, tip_type, tip_value, tax_amount, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			bill.ID, bill.OwnerID, bill.Name, string(bill.TipKind), bill.TipValue, bill.TaxAmount,
			bill.CreatedAt, bill.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bill: %w", err)
		}

		for i := range bill.Participants {
			if err := insertParticipant(ctx, tx, bill.ID, &bill.Participants[i]); err != nil {
				return err
			}
		}
		for i := range bill.Items {
			if err := insertItem(ctx, tx, bill.ID, &bill.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetBill retrieves a bill by ID, including all participants, items and splits.
// The reads share one transaction so the aggregate is a consistent snapshot.
func (s *SQLiteStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	var bill *models.Bill
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		bill, err = getBill(ctx, tx, billID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

func getBill(ctx context.Context, q querier, billID string) (*models.Bill, error) {
	bill := &models.Bill{}
	var tipType string
	err := q.QueryRowContext(ctx,
		`SELECT id, owner_id, name, tip_type, tip_value, tax_amount, created_at, updated_at
		 FROM bills WHERE id = ?`,
		billID,
	).Scan(&bill.ID, &bill.OwnerID, &bill.Name, &tipType, &bill.TipValue, &bill.TaxAmount,
		&bill.CreatedAt, &bill.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	bill.TipKind = models.TipKind(tipType)

	if bill.Participants, err = listParticipants(ctx, q, billID); err != nil {
		return nil, err
	}
	if bill.Items, err = listItems(ctx, q, billID); err != nil {
		return nil, err
	}
	return bill, nil
}

// ListBills returns a page of the owner's bills, newest first.
func (s *SQLiteStore) ListBills(ctx context.Context, ownerID string, limit, offset int) ([]*models.Bill, int, error) {
	if limit <= 0 {
		limit = -1 // no limit
	}

	var bills []*models.Bill
	var count int
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM bills WHERE owner_id = ?", ownerID,
		).Scan(&count); err != nil {
			return fmt.Errorf("failed to count bills: %w", err)
		}

		rows, err := tx.QueryContext(ctx,
			`SELECT id FROM bills WHERE owner_id = ?
			 ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`,
			ownerID, limit, offset,
		)
		if err != nil {
			return fmt.Errorf("failed to list bills: %w", err)
		}
		var ids []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan bill id: %w", err)
			}
			ids = append(ids, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to iterate bills: %w", err)
		}

		bills = make([]*models.Bill, 0, len(ids))
		for _, id := range ids {
			bill, err := getBill(ctx, tx, id)
			if err != nil {
				return err
			}
			bills = append(bills, bill)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return bills, count, nil
}

// UpdateBill updates the bill header: name, tip policy and tax amount.
func (s *SQLiteStore) UpdateBill(ctx context.Context, bill *models.Bill) error {
	bill.UpdatedAt = time.Now().Unix()
	res, err := s.db.ExecContext(ctx,
		`UPDATE bills SET name = ?, tip_type = ?, tip_value = ?, tax_amount = ?, updated_at = ?
		 WHERE id = ?`,
		bill.Name, string(bill.TipKind), bill.TipValue, bill.TaxAmount, bill.UpdatedAt, bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	return requireAffected(res, "bill", bill.ID)
}

// DeleteBill removes a bill; participants, items and splits cascade.
func (s *SQLiteStore) DeleteBill(ctx context.Context, billID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", billID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	return requireAffected(res, "bill", billID)
}

// ResetBill empties a bill but keeps its identity and name.
func (s *SQLiteStore) ResetBill(ctx context.Context, billID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"UPDATE bills SET tip_type = ?, tip_value = ?, tax_amount = ?, updated_at = ? WHERE id = ?",
			string(models.TipPercentage), decimal.Zero, decimal.Zero, time.Now().Unix(), billID,
		)
		if err != nil {
			return fmt.Errorf("failed to reset bill: %w", err)
		}
		if err := requireAffected(res, "bill", billID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE bill_id = ?", billID); err != nil {
			return fmt.Errorf("failed to delete items: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM participants WHERE bill_id = ?", billID); err != nil {
			return fmt.Errorf("failed to delete participants: %w", err)
		}
		return nil
	})
}

// touch bumps a bill's updated_at after a change to something it owns.
func touch(ctx context.Context, ex execer, billID string) error {
	res, err := ex.ExecContext(ctx, "UPDATE bills SET updated_at = ? WHERE id = ?", time.Now().Unix(), billID)
	if err != nil {
		return fmt.Errorf("failed to touch bill: %w", err)
	}
	return requireAffected(res, "bill", billID)
}

func requireAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}

// generateTitle creates an auto-generated title from participants.
func generateTitle(participants []models.Participant) string {
	if len(participants) == 0 {
		return fmt.Sprintf("Bill - %s", time.Now().Format("Jan 2, 2006"))
	}
	names := make([]string, len(participants))
	for i, p := range participants {
		names[i] = p.Name
	}
	if len(names) <= 3 {
		return fmt.Sprintf("Split with %s", strings.Join(names, ", "))
	}
	return fmt.Sprintf("Split with %s and %d others",
		strings.Join(names[:2], ", "),
		len(names)-2,
	)
}
