package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/theshadowable/iws-sh/internal/domain/alert"
	"github.com/theshadowable/iws-sh/internal/pkg/errors"
)

type AlertRepository struct {
	db *sql.DB
}

func NewAlertRepository(db *sql.DB) alert.Repository {
	return &AlertRepository{db: db}
}

const alertColumns = `id, customer_id, alert_type, severity, title, message, status, metadata, created_at, read_at, resolved_at`

func (r *AlertRepository) Create(ctx context.Context, a *alert.Alert) error {
	metadata, err := json.Marshal(a.Metadata)
	if err != nil {
		return errors.DatabaseError("Failed to encode alert metadata", err)
	}

	query := `INSERT INTO alerts (` + alertColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		a.ID, a.CustomerID, a.Type, a.Severity, a.Title, a.Message, a.Status,
		string(metadata), a.CreatedAt.UTC().Format(time.RFC3339),
		nullableTime(a.ReadAt), nullableTime(a.ResolvedAt),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create alert", err)
	}

	return nil
}

func (r *AlertRepository) GetByID(ctx context.Context, id string) (*alert.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = ?`

	a, err := scanAlert(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Alert")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get alert", err)
	}

	return a, nil
}

func (r *AlertRepository) FindRecentByType(ctx context.Context, customerID, alertType string, since time.Time) (*alert.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts
		WHERE customer_id = ? AND alert_type = ? AND created_at >= ?
		ORDER BY created_at DESC LIMIT 1`

	a, err := scanAlert(r.db.QueryRowContext(ctx, query, customerID, alertType, since.UTC().Format(time.RFC3339)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to find recent alert", err)
	}

	return a, nil
}

func (r *AlertRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	now := time.Now().UTC().Format(time.RFC3339)

	var query string
	var args []interface{}
	switch status {
	case alert.StatusRead:
		query = `UPDATE alerts SET status = ?, read_at = ? WHERE id = ?`
		args = []interface{}{status, now, id}
	case alert.StatusResolved:
		query = `UPDATE alerts SET status = ?, resolved_at = ? WHERE id = ?`
		args = []interface{}{status, now, id}
	default:
		query = `UPDATE alerts SET status = ? WHERE id = ?`
		args = []interface{}{status, id}
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.DatabaseError("Failed to update alert status", err)
	}

	rows, err := result.RowsAffected()
	if err != nil || rows == 0 {
		return errors.NotFound("Alert")
	}

	return nil
}

func (r *AlertRepository) ListWithPagination(ctx context.Context, filter alert.Filter, limit, offset int) ([]*alert.Alert, int64, error) {
	where := []string{"1 = 1"}
	args := []interface{}{}

	if filter.CustomerID != "" {
		where = append(where, "customer_id = ?")
		args = append(args, filter.CustomerID)
	}
	if filter.Type != "" {
		where = append(where, "alert_type = ?")
		args = append(args, filter.Type)
	}
	if filter.Severity != "" {
		where = append(where, "severity = ?")
		args = append(args, filter.Severity)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	err := r.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM alerts WHERE %s", whereClause), args...).Scan(&total)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to count alerts", err)
	}

	query := fmt.Sprintf(`SELECT `+alertColumns+` FROM alerts WHERE %s ORDER BY created_at DESC LIMIT ? OFFSET ?`, whereClause)

	args = append(args, limit, offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list alerts", err)
	}
	defer rows.Close()

	alerts := make([]*alert.Alert, 0, limit)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan alert", err)
		}
		alerts = append(alerts, a)
	}

	return alerts, total, rows.Err()
}

func (r *AlertRepository) CountByStatus(ctx context.Context, customerID string) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM alerts WHERE customer_id = ? GROUP BY status`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count alerts by status", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, errors.DatabaseError("Failed to scan count", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

func scanAlert(row rowScanner) (*alert.Alert, error) {
	var a alert.Alert
	var metadata sql.NullString
	var createdAt string
	var readAt, resolvedAt sql.NullString

	err := row.Scan(&a.ID, &a.CustomerID, &a.Type, &a.Severity, &a.Title, &a.Message,
		&a.Status, &metadata, &createdAt, &readAt, &resolvedAt)
	if err != nil {
		return nil, err
	}

	if metadata.Valid && metadata.String != "" {
		_ = json.Unmarshal([]byte(metadata.String), &a.Metadata)
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if readAt.Valid {
		t, _ := time.Parse(time.RFC3339, readAt.String)
		a.ReadAt = &t
	}
	if resolvedAt.Valid {
		t, _ := time.Parse(time.RFC3339, resolvedAt.String)
		a.ResolvedAt = &t
	}

	return &a, nil
}
