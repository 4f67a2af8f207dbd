package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/rigbudget/internal/models"
	"github.com/mmynk/rigbudget/internal/storage"
)

// GetChecklist retrieves the checklist record for a user.
func (s *SQLiteStore) GetChecklist(ctx context.Context, userID string) (*models.ChecklistRecord, error) {
	var (
		cols      storage.Columns
		budget    int64
		currency  string
		updatedAt int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT checklist_data, prices_data, part_names_data, other_components_data,
		       total_budget, currency, updated_at
		FROM pc_checklist
		WHERE user_id = ?
	`, userID).Scan(
		&cols.Checklist,
		&cols.Prices,
		&cols.PartNames,
		&cols.OtherComponents,
		&budget,
		&currency,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checklist: %w", err)
	}

	rec := models.NewChecklistRecord(userID)
	if err := cols.DecodeInto(&rec); err != nil {
		return nil, err
	}
	rec.TotalBudget = budget
	rec.Currency = currency
	rec.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &rec, nil
}

// UpsertChecklist inserts or replaces the record for rec.UserID.
func (s *SQLiteStore) UpsertChecklist(ctx context.Context, rec *models.ChecklistRecord) error {
	cols, err := storage.EncodeColumns(rec)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pc_checklist (user_id, checklist_data, prices_data, part_names_data,
		                          other_components_data, total_budget, currency, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			checklist_data = excluded.checklist_data,
			prices_data = excluded.prices_data,
			part_names_data = excluded.part_names_data,
			other_components_data = excluded.other_components_data,
			total_budget = excluded.total_budget,
			currency = excluded.currency,
			updated_at = excluded.updated_at
	`,
		rec.UserID,
		cols.Checklist,
		cols.Prices,
		cols.PartNames,
		cols.OtherComponents,
		rec.TotalBudget,
		rec.Currency,
		rec.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert checklist: %w", err)
	}
	return nil
}

// UpsertBudget writes only the budget and timestamp for a user.
func (s *SQLiteStore) UpsertBudget(ctx context.Context, userID string, budget int64, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pc_checklist (user_id, total_budget, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			total_budget = excluded.total_budget,
			updated_at = excluded.updated_at
	`, userID, budget, at.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}
	return nil
}
