package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/theshadowable/iws-sh/internal/domain/reading"
	"github.com/theshadowable/iws-sh/internal/pkg/errors"
)

type ReadingRepository struct {
	db *sql.DB
}

func NewReadingRepository(db *sql.DB) reading.Repository {
	return &ReadingRepository{db: db}
}

func (r *ReadingRepository) ListByDevice(ctx context.Context, deviceID string, since, until time.Time) ([]*reading.ConsumptionReading, error) {
	query := `SELECT id, device_id, customer_id, timestamp, consumption FROM water_usage
		WHERE device_id = ? AND timestamp >= ? AND timestamp < ? ORDER BY timestamp ASC`

	rows, err := r.db.QueryContext(ctx, query, deviceID, since.UTC().Format(time.RFC3339), until.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, errors.DatabaseError("Failed to list readings", err)
	}
	defer rows.Close()

	return scanReadings(rows)
}

func (r *ReadingRepository) ListByCustomer(ctx context.Context, customerID string, since, until time.Time) ([]*reading.ConsumptionReading, error) {
	query := `SELECT id, device_id, customer_id, timestamp, consumption FROM water_usage
		WHERE customer_id = ? AND timestamp >= ? AND timestamp < ? ORDER BY timestamp ASC`

	rows, err := r.db.QueryContext(ctx, query, customerID, since.UTC().Format(time.RFC3339), until.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, errors.DatabaseError("Failed to list readings", err)
	}
	defer rows.Close()

	return scanReadings(rows)
}

func (r *ReadingRepository) ListDevices(ctx context.Context) ([]reading.DeviceRef, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT device_id, customer_id FROM water_usage`)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list devices", err)
	}
	defer rows.Close()

	var devices []reading.DeviceRef
	for rows.Next() {
		var d reading.DeviceRef
		if err := rows.Scan(&d.DeviceID, &d.CustomerID); err != nil {
			return nil, errors.DatabaseError("Failed to scan device", err)
		}
		devices = append(devices, d)
	}

	return devices, rows.Err()
}

func scanReadings(rows *sql.Rows) ([]*reading.ConsumptionReading, error) {
	readings := make([]*reading.ConsumptionReading, 0, 100)
	for rows.Next() {
		var cr reading.ConsumptionReading
		var ts string
		if err := rows.Scan(&cr.ID, &cr.DeviceID, &cr.CustomerID, &ts, &cr.Consumption); err != nil {
			return nil, errors.DatabaseError("Failed to scan reading", err)
		}
		cr.Timestamp, _ = time.Parse(time.RFC3339, ts)
		readings = append(readings, &cr)
	}

	return readings, rows.Err()
}
