package postgres

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
func (s *PostgresStore) GetChecklist(ctx context.Context, userID string) (*models.ChecklistRecord, error) {
	var (
		cols      storage.Columns
		budget    int64
		currency  string
		updatedAt time.Time
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT checklist_data, prices_data, part_names_data, other_components_data,
		       total_budget, currency, updated_at
		FROM pc_checklist
		WHERE user_id = $1`,
		userID,
	).Scan(&cols.Checklist, &cols.Prices, &cols.PartNames, &cols.OtherComponents, &budget, &currency, &updatedAt)
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
	rec.UpdatedAt = updatedAt.UTC()
	return &rec, nil
}

// UpsertChecklist inserts or replaces the record for rec.UserID.
func (s *PostgresStore) UpsertChecklist(ctx context.Context, rec *models.ChecklistRecord) error {
	cols, err := storage.EncodeColumns(rec)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pc_checklist (user_id, checklist_data, prices_data, part_names_data,
		                          other_components_data, total_budget, currency, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			checklist_data = EXCLUDED.checklist_data,
			prices_data = EXCLUDED.prices_data,
			part_names_data = EXCLUDED.part_names_data,
			other_components_data = EXCLUDED.other_components_data,
			total_budget = EXCLUDED.total_budget,
			currency = EXCLUDED.currency,
			updated_at = EXCLUDED.updated_at`,
		rec.UserID, cols.Checklist, cols.Prices, cols.PartNames, cols.OtherComponents,
		rec.TotalBudget, rec.Currency, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert checklist: %w", err)
	}
	return nil
}

// UpsertBudget writes only the budget and timestamp for a user.
func (s *PostgresStore) UpsertBudget(ctx context.Context, userID string, budget int64, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pc_checklist (user_id, total_budget, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			total_budget = EXCLUDED.total_budget,
			updated_at = EXCLUDED.updated_at`,
		userID, budget, at,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}
	return nil
}
