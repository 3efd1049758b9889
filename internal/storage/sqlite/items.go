package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitbill/internal/models"
)

// AddItems appends items, with any splits they carry, in one transaction.
func (s *SQLiteStore) AddItems(ctx context.Context, billID string, items []*models.Item) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := touch(ctx, tx, billID); err != nil {
			return err
		}
		for _, item := range items {
			if err := insertItem(ctx, tx, billID, item); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateItem updates an item's name, price and quantity.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item *models.Item) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"UPDATE items SET name = ?, price = ?, quantity = ? WHERE id = ? AND bill_id = ?",
			item.Name, item.Price, item.Quantity, item.ID, item.BillID,
		)
		if err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}
		if err := requireAffected(res, "item", item.ID); err != nil {
			return err
		}
		return touch(ctx, tx, item.BillID)
	})
}

// DeleteItem removes an item and its splits.
func (s *SQLiteStore) DeleteItem(ctx context.Context, billID, itemID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM items WHERE id = ? AND bill_id = ?", itemID, billID)
		if err != nil {
			return fmt.Errorf("failed to delete item: %w", err)
		}
		if err := requireAffected(res, "item", itemID); err != nil {
			return err
		}
		return touch(ctx, tx, billID)
	})
}

// DeleteAllItems removes every item of a bill.
func (s *SQLiteStore) DeleteAllItems(ctx context.Context, billID string) (int, error) {
	var deleted int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := touch(ctx, tx, billID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM items WHERE bill_id = ?", billID)
		if err != nil {
			return fmt.Errorf("failed to delete items: %w", err)
		}
		deleted, err = res.RowsAffected()
		return err
	})
	return int(deleted), err
}

// ReplaceSplits swaps an item's splits for item.Splits.
func (s *SQLiteStore) ReplaceSplits(ctx context.Context, item models.Item) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := replaceSplits(ctx, tx, item); err != nil {
			return err
		}
		return touch(ctx, tx, item.BillID)
	})
}

// ReplaceBillSplits swaps the splits of every item in the bill at once.
func (s *SQLiteStore) ReplaceBillSplits(ctx context.Context, bill *models.Bill) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, item := range bill.Items {
			if err := replaceSplits(ctx, tx, item); err != nil {
				return err
			}
		}
		return touch(ctx, tx, bill.ID)
	})
}

func replaceSplits(ctx context.Context, ex execer, item models.Item) error {
	if _, err := ex.ExecContext(ctx, "DELETE FROM item_splits WHERE item_id = ?", item.ID); err != nil {
		return fmt.Errorf("failed to clear splits: %w", err)
	}
	return insertSplits(ctx, ex, item.ID, item.Splits)
}

func insertItem(ctx context.Context, ex execer, billID string, item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = time.Now().Unix()
	}
	item.BillID = billID

	_, err := ex.ExecContext(ctx,
		"INSERT INTO items (id, bill_id, name, price, quantity, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		item.ID, billID, item.Name, item.Price, item.Quantity, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return insertSplits(ctx, ex, item.ID, item.Splits)
}

func insertSplits(ctx context.Context, ex execer, itemID string, splits []models.Split) error {
	for _, sp := range splits {
		_, err := ex.ExecContext(ctx,
			"INSERT INTO item_splits (item_id, participant_id, share) VALUES (?, ?, ?)",
			itemID, sp.ParticipantID, sp.Share,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}
	return nil
}

// listItems loads a bill's items and attaches their splits.
func listItems(ctx context.Context, q querier, billID string) ([]models.Item, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, bill_id, name, price, quantity, created_at FROM items
		 WHERE bill_id = ? ORDER BY created_at, rowid`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}

	var items []models.Item
	index := make(map[string]int)
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.BillID, &item.Name, &item.Price, &item.Quantity, &item.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		index[item.ID] = len(items)
		items = append(items, item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	splitRows, err := q.QueryContext(ctx,
		`SELECT s.item_id, s.participant_id, s.share
		 FROM item_splits s JOIN items i ON i.id = s.item_id
		 WHERE i.bill_id = ? ORDER BY s.rowid`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var itemID string
		var sp models.Split
		if err := splitRows.Scan(&itemID, &sp.ParticipantID, &sp.Share); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if i, ok := index[itemID]; ok {
			items[i].Splits = append(items[i].Splits, sp)
		}
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return items, nil
}
