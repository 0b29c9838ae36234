package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/theshadowable/iws-sh/internal/domain/leak"
	"github.com/theshadowable/iws-sh/internal/pkg/errors"
)

type LeakRepository struct {
	db *sql.DB
}

func NewLeakRepository(db *sql.DB) leak.Repository {
	return &LeakRepository{db: db}
}

const leakColumns = `id, device_id, customer_id, detected_at, consumption_rate, normal_rate,
	severity, duration_minutes, estimated_loss_m3, estimated_cost_idr, resolved, resolved_at, notes`

func (r *LeakRepository) Create(ctx context.Context, e *leak.Event) error {
	query := `INSERT INTO leak_detection_events (` + leakColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.DeviceID, e.CustomerID, e.DetectedAt.UTC().Format(time.RFC3339),
		e.ConsumptionRate, e.NormalRate, e.Severity, e.DurationMinutes,
		e.EstimatedLossM3, e.EstimatedCostIDR, e.Resolved, nullableTime(e.ResolvedAt), e.Notes,
	)
	if err != nil {
		return errors.DatabaseError("Failed to create leak event", err)
	}

	return nil
}

func (r *LeakRepository) GetByID(ctx context.Context, id string) (*leak.Event, error) {
	query := `SELECT ` + leakColumns + ` FROM leak_detection_events WHERE id = ?`

	e, err := scanLeakEvent(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Leak event")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get leak event", err)
	}

	return e, nil
}

func (r *LeakRepository) FindUnresolved(ctx context.Context, deviceID string, since time.Time) (*leak.Event, error) {
	query := `SELECT ` + leakColumns + ` FROM leak_detection_events
		WHERE device_id = ? AND resolved = ? AND detected_at >= ?
		ORDER BY detected_at DESC LIMIT 1`

	e, err := scanLeakEvent(r.db.QueryRowContext(ctx, query, deviceID, false, since.UTC().Format(time.RFC3339)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to find unresolved leak event", err)
	}

	return e, nil
}

func (r *LeakRepository) UpdateMetrics(ctx context.Context, e *leak.Event) error {
	query := `UPDATE leak_detection_events SET consumption_rate = ?, severity = ?,
		duration_minutes = ?, estimated_loss_m3 = ?, estimated_cost_idr = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		e.ConsumptionRate, e.Severity, e.DurationMinutes, e.EstimatedLossM3, e.EstimatedCostIDR, e.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update leak event", err)
	}

	rows, err := result.RowsAffected()
	if err != nil || rows == 0 {
		return errors.NotFound("Leak event")
	}

	return nil
}

func (r *LeakRepository) Resolve(ctx context.Context, id string, notes string) error {
	query := `UPDATE leak_detection_events SET resolved = ?, resolved_at = ?, notes = ? WHERE id = ? AND resolved = ?`

	result, err := r.db.ExecContext(ctx, query, true, time.Now().UTC().Format(time.RFC3339), notes, id, false)
	if err != nil {
		return errors.DatabaseError("Failed to resolve leak event", err)
	}

	rows, err := result.RowsAffected()
	if err != nil || rows == 0 {
		return errors.NotFound("Leak event")
	}

	return nil
}

func (r *LeakRepository) ListWithPagination(ctx context.Context, filter leak.Filter, limit, offset int) ([]*leak.Event, int64, error) {
	where := []string{"1 = 1"}
	args := []interface{}{}

	if filter.DeviceID != "" {
		where = append(where, "device_id = ?")
		args = append(args, filter.DeviceID)
	}
	if filter.CustomerID != "" {
		where = append(where, "customer_id = ?")
		args = append(args, filter.CustomerID)
	}
	if filter.Severity != "" {
		where = append(where, "severity = ?")
		args = append(args, filter.Severity)
	}
	if filter.Resolved != nil {
		where = append(where, "resolved = ?")
		args = append(args, *filter.Resolved)
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	err := r.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM leak_detection_events WHERE %s", whereClause), args...).Scan(&total)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to count leak events", err)
	}

	query := fmt.Sprintf(`SELECT `+leakColumns+` FROM leak_detection_events
		WHERE %s ORDER BY detected_at DESC LIMIT ? OFFSET ?`, whereClause)

	args = append(args, limit, offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list leak events", err)
	}
	defer rows.Close()

	events := make([]*leak.Event, 0, limit)
	for rows.Next() {
		e, err := scanLeakEvent(rows)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan leak event", err)
		}
		events = append(events, e)
	}

	return events, total, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLeakEvent(row rowScanner) (*leak.Event, error) {
	var e leak.Event
	var detectedAt string
	var resolvedAt sql.NullString
	var notes sql.NullString

	err := row.Scan(&e.ID, &e.DeviceID, &e.CustomerID, &detectedAt, &e.ConsumptionRate,
		&e.NormalRate, &e.Severity, &e.DurationMinutes, &e.EstimatedLossM3,
		&e.EstimatedCostIDR, &e.Resolved, &resolvedAt, &notes)
	if err != nil {
		return nil, err
	}

	e.DetectedAt, _ = time.Parse(time.RFC3339, detectedAt)
	if resolvedAt.Valid {
		t, _ := time.Parse(time.RFC3339, resolvedAt.String)
		e.ResolvedAt = &t
	}
	e.Notes = notes.String

	return &e, nil
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
