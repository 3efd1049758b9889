package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitbill/internal/models"
)

// AddParticipants appends participants to a bill in one transaction.
func (s *SQLiteStore) AddParticipants(ctx context.Context, billID string, participants []*models.Participant) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := touch(ctx, tx, billID); err != nil {
			return err
		}
		for _, p := range participants {
			if err := insertParticipant(ctx, tx, billID, p); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateParticipant updates a participant's name and color.
func (s *SQLiteStore) UpdateParticipant(ctx context.Context, p *models.Participant) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"UPDATE participants SET name = ?, color = ? WHERE id = ? AND bill_id = ?",
			p.Name, p.Color, p.ID, p.BillID,
		)
		if err != nil {
			return fmt.Errorf("failed to update participant: %w", err)
		}
		if err := requireAffected(res, "participant", p.ID); err != nil {
			return err
		}
		return touch(ctx, tx, p.BillID)
	})
}

// DeleteParticipant removes a participant. Their splits cascade; nobody
// else's shares change.
func (s *SQLiteStore) DeleteParticipant(ctx context.Context, billID, participantID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"DELETE FROM participants WHERE id = ? AND bill_id = ?",
			participantID, billID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete participant: %w", err)
		}
		if err := requireAffected(res, "participant", participantID); err != nil {
			return err
		}
		return touch(ctx, tx, billID)
	})
}

// DeleteAllParticipants removes every participant of a bill.
func (s *SQLiteStore) DeleteAllParticipants(ctx context.Context, billID string) (int, error) {
	var deleted int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := touch(ctx, tx, billID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM participants WHERE bill_id = ?", billID)
		if err != nil {
			return fmt.Errorf("failed to delete participants: %w", err)
		}
		deleted, err = res.RowsAffected()
		return err
	})
	return int(deleted), err
}

func insertParticipant(ctx context.Context, ex execer, billID string, p *models.Participant) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().Unix()
	}
	p.BillID = billID

	_, err := ex.ExecContext(ctx,
		"INSERT INTO participants (id, bill_id, name, color, created_at) VALUES (?, ?, ?, ?, ?)",
		p.ID, billID, p.Name, p.Color, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

func listParticipants(ctx context.Context, q querier, billID string) ([]models.Participant, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, bill_id, name, color, created_at FROM participants
		 WHERE bill_id = ? ORDER BY created_at, rowid`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.BillID, &p.Name, &p.Color, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}
