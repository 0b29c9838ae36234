package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/theshadowable/iws-sh/internal/domain/tip"
	"github.com/theshadowable/iws-sh/internal/pkg/errors"
)

type TipRepository struct {
	db *sql.DB
}

func NewTipRepository(db *sql.DB) tip.Repository {
	return &TipRepository{db: db}
}

func (r *TipRepository) Create(ctx context.Context, t *tip.Tip) error {
	query := `INSERT INTO water_saving_tips
		(id, customer_id, tip_category, title, description, potential_savings_percentage, priority, generated_at, viewed, applied)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.CustomerID, t.Category, t.Title, t.Description,
		t.PotentialSavingsPct, t.Priority, t.GeneratedAt.UTC().Format(time.RFC3339),
		t.Viewed, t.Applied,
	)
	if err != nil {
		return errors.DatabaseError("Failed to create tip", err)
	}

	return nil
}

func (r *TipRepository) ListRecentCategories(ctx context.Context, customerID string, since time.Time) (map[string]bool, error) {
	query := `SELECT DISTINCT tip_category FROM water_saving_tips WHERE customer_id = ? AND generated_at >= ?`

	rows, err := r.db.QueryContext(ctx, query, customerID, since.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, errors.DatabaseError("Failed to list tip categories", err)
	}
	defer rows.Close()

	categories := make(map[string]bool)
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, errors.DatabaseError("Failed to scan tip category", err)
		}
		categories[category] = true
	}

	return categories, rows.Err()
}

func (r *TipRepository) ListByCustomer(ctx context.Context, customerID string) ([]*tip.Tip, error) {
	query := `SELECT id, customer_id, tip_category, title, description, potential_savings_percentage,
		priority, generated_at, viewed, viewed_at, applied, applied_at
		FROM water_saving_tips WHERE customer_id = ? ORDER BY generated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list tips", err)
	}
	defer rows.Close()

	tips := make([]*tip.Tip, 0, 10)
	for rows.Next() {
		var t tip.Tip
		var generatedAt string
		var viewedAt, appliedAt sql.NullString

		err := rows.Scan(&t.ID, &t.CustomerID, &t.Category, &t.Title, &t.Description,
			&t.PotentialSavingsPct, &t.Priority, &generatedAt, &t.Viewed, &viewedAt, &t.Applied, &appliedAt)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan tip", err)
		}

		t.GeneratedAt, _ = time.Parse(time.RFC3339, generatedAt)
		if viewedAt.Valid {
			ts, _ := time.Parse(time.RFC3339, viewedAt.String)
			t.ViewedAt = &ts
		}
		if appliedAt.Valid {
			ts, _ := time.Parse(time.RFC3339, appliedAt.String)
			t.AppliedAt = &ts
		}
		tips = append(tips, &t)
	}

	return tips, rows.Err()
}

func (r *TipRepository) MarkViewed(ctx context.Context, id string) error {
	query := `UPDATE water_saving_tips SET viewed = ?, viewed_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, true, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return errors.DatabaseError("Failed to mark tip viewed", err)
	}

	rows, err := result.RowsAffected()
	if err != nil || rows == 0 {
		return errors.NotFound("Tip")
	}

	return nil
}
