// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitbill/internal/models"
)

// ErrNotFound is returned (wrapped) when a bill, participant, item or user
// does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for bill storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Every method that writes more than one row does so atomically, so a reader
// never observes a half-applied mutation.
type Store interface {
	// CreateBill persists a new bill together with any participants, items
	// and splits it already carries. Missing IDs and timestamps are filled in.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves the complete bill aggregate.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// ListBills returns one page of the owner's bills, newest first, and the
	// owner's total bill count.
	ListBills(ctx context.Context, ownerID string, limit, offset int) ([]*models.Bill, int, error)

	// UpdateBill updates the bill's name, tip policy and tax amount.
	UpdateBill(ctx context.Context, bill *models.Bill) error

	// DeleteBill removes a bill and everything it owns.
	DeleteBill(ctx context.Context, billID string) error

	// ResetBill removes every participant, item and split and zeroes the tip and tax.
	ResetBill(ctx context.Context, billID string) error

	// AddParticipants appends participants to a bill.
	AddParticipants(ctx context.Context, billID string, participants []*models.Participant) error

	// UpdateParticipant updates a participant's name and color.
	UpdateParticipant(ctx context.Context, participant *models.Participant) error

	// DeleteParticipant removes a participant and all of their splits.
	DeleteParticipant(ctx context.Context, billID, participantID string) error

	// DeleteAllParticipants removes every participant of a bill and reports how many there were.
	DeleteAllParticipants(ctx context.Context, billID string) (int, error)

	// AddItems appends items (and any splits they carry) to a bill.
	AddItems(ctx context.Context, billID string, items []*models.Item) error

	// UpdateItem updates an item's name, price and quantity. Splits are untouched.
	UpdateItem(ctx context.Context, item *models.Item) error

	// DeleteItem removes an item and its splits.
	DeleteItem(ctx context.Context, billID, itemID string) error

	// DeleteAllItems removes every item of a bill and reports how many there were.
	DeleteAllItems(ctx context.Context, billID string) (int, error)

	// ReplaceSplits replaces every split of one item with item.Splits.
	ReplaceSplits(ctx context.Context, item models.Item) error

	// ReplaceBillSplits replaces the splits of every item in the bill.
	ReplaceBillSplits(ctx context.Context, bill *models.Bill) error

	// Close releases any resources held by the store.
	Close() error
}
