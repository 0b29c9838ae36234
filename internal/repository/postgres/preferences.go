package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/theshadowable/iws-sh/internal/domain/preferences"
	"github.com/theshadowable/iws-sh/internal/pkg/errors"
)

type PreferencesRepository struct {
	db *sql.DB
}

func NewPreferencesRepository(db *sql.DB) preferences.Repository {
	return &PreferencesRepository{db: db}
}

const preferencesColumns = `id, customer_id, low_balance_enabled, low_balance_threshold, leak_detection_enabled, updated_at`

func (r *PreferencesRepository) GetByCustomer(ctx context.Context, customerID string) (*preferences.Preferences, error) {
	query := `SELECT ` + preferencesColumns + ` FROM alert_preferences WHERE customer_id = ?`

	p, err := scanPreferences(r.db.QueryRowContext(ctx, query, customerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get alert preferences", err)
	}

	return p, nil
}

func (r *PreferencesRepository) Upsert(ctx context.Context, p *preferences.Preferences) error {
	p.UpdatedAt = time.Now().UTC()

	query := `INSERT INTO alert_preferences (` + preferencesColumns + `) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (customer_id) DO UPDATE SET
			low_balance_enabled = excluded.low_balance_enabled,
			low_balance_threshold = excluded.low_balance_threshold,
			leak_detection_enabled = excluded.leak_detection_enabled,
			updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.CustomerID, p.LowBalanceEnabled, p.LowBalanceThreshold,
		p.LeakDetectionEnabled, p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return errors.DatabaseError("Failed to upsert alert preferences", err)
	}

	return nil
}

func (r *PreferencesRepository) ListLowBalanceEnabled(ctx context.Context) ([]*preferences.Preferences, error) {
	query := `SELECT ` + preferencesColumns + ` FROM alert_preferences WHERE low_balance_enabled = ?`

	rows, err := r.db.QueryContext(ctx, query, true)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list alert preferences", err)
	}
	defer rows.Close()

	var prefs []*preferences.Preferences
	for rows.Next() {
		p, err := scanPreferences(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan alert preferences", err)
		}
		prefs = append(prefs, p)
	}

	return prefs, rows.Err()
}

func scanPreferences(row rowScanner) (*preferences.Preferences, error) {
	var p preferences.Preferences
	var updatedAt string

	err := row.Scan(&p.ID, &p.CustomerID, &p.LowBalanceEnabled, &p.LowBalanceThreshold,
		&p.LeakDetectionEnabled, &updatedAt)
	if err != nil {
		return nil, err
	}

	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &p, nil
}
