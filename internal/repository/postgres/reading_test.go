package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/theshadowable/iws-sh/internal/repository/postgres"
	"github.com/theshadowable/iws-sh/internal/testutil"
)

func insertReading(t *testing.T, db *sql.DB, deviceID, customerID string, ts time.Time, consumption float64) {
	t.Helper()

	id := fmt.Sprintf("%s-%d", deviceID, ts.Unix())
	_, err := db.Exec(
		`INSERT INTO water_usage (id, device_id, customer_id, timestamp, consumption) VALUES (?, ?, ?, ?, ?)`,
		id, deviceID, customerID, ts.UTC().Format(time.RFC3339), consumption,
	)
	if err != nil {
		t.Fatalf("failed to insert reading: %v", err)
	}
}

func TestReadingRepository_ListByDevice(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)
	repo := postgres.NewReadingRepository(db)
	ctx := context.Background()

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	since := now.Add(-24 * time.Hour)

	insertReading(t, db, "DEV-1", "CUST-1", since.Add(-time.Hour), 99.0) // before window
	insertReading(t, db, "DEV-1", "CUST-1", since, 100.0)                // window start, inclusive
	insertReading(t, db, "DEV-1", "CUST-1", now.Add(-time.Hour), 100.5)
	insertReading(t, db, "DEV-1", "CUST-1", now, 101.0) // window end, exclusive
	insertReading(t, db, "DEV-2", "CUST-1", now.Add(-time.Hour), 200.0)

	readings, err := repo.ListByDevice(ctx, "DEV-1", since, now)
	if err != nil {
		t.Fatalf("ListByDevice() error = %v", err)
	}

	if len(readings) != 2 {
		t.Fatalf("readings = %d, want 2", len(readings))
	}
	if !readings[0].Timestamp.Equal(since) {
		t.Errorf("first timestamp = %v, want %v (ascending order)", readings[0].Timestamp, since)
	}
	if readings[1].Consumption != 100.5 {
		t.Errorf("second consumption = %v, want 100.5", readings[1].Consumption)
	}
}

func TestReadingRepository_ListByCustomer(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)
	repo := postgres.NewReadingRepository(db)
	ctx := context.Background()

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	since := now.Add(-24 * time.Hour)

	insertReading(t, db, "DEV-1", "CUST-1", now.Add(-2*time.Hour), 100.0)
	insertReading(t, db, "DEV-2", "CUST-1", now.Add(-time.Hour), 200.0)
	insertReading(t, db, "DEV-3", "CUST-2", now.Add(-time.Hour), 300.0)

	readings, err := repo.ListByCustomer(ctx, "CUST-1", since, now)
	if err != nil {
		t.Fatalf("ListByCustomer() error = %v", err)
	}
	if len(readings) != 2 {
		t.Errorf("readings = %d, want 2 across both devices", len(readings))
	}
}

func TestReadingRepository_ListDevices(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)
	repo := postgres.NewReadingRepository(db)
	ctx := context.Background()

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	insertReading(t, db, "DEV-1", "CUST-1", now.Add(-2*time.Hour), 100.0)
	insertReading(t, db, "DEV-1", "CUST-1", now.Add(-time.Hour), 100.5)
	insertReading(t, db, "DEV-2", "CUST-2", now.Add(-time.Hour), 200.0)

	devices, err := repo.ListDevices(ctx)
	if err != nil {
		t.Fatalf("ListDevices() error = %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("devices = %d, want 2 distinct", len(devices))
	}

	owners := make(map[string]string)
	for _, d := range devices {
		owners[d.DeviceID] = d.CustomerID
	}
	if owners["DEV-1"] != "CUST-1" || owners["DEV-2"] != "CUST-2" {
		t.Errorf("owners = %v, want DEV-1->CUST-1 and DEV-2->CUST-2", owners)
	}
}
