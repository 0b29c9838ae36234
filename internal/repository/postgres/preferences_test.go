package postgres_test

import (
	"context"
	"testing"

	"github.com/theshadowable/iws-sh/internal/domain/preferences"
	"github.com/theshadowable/iws-sh/internal/repository/postgres"
	"github.com/theshadowable/iws-sh/internal/testutil"
)

func TestPreferencesRepository_Upsert(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)
	repo := postgres.NewPreferencesRepository(db)
	ctx := context.Background()

	got, err := repo.GetByCustomer(ctx, "CUST-1")
	if err != nil {
		t.Fatalf("GetByCustomer() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetByCustomer() = %+v, want nil for unconfigured customer", got)
	}

	p := &preferences.Preferences{
		ID:                   "p-1",
		CustomerID:           "CUST-1",
		LowBalanceEnabled:    true,
		LowBalanceThreshold:  50000,
		LeakDetectionEnabled: true,
	}
	if err := repo.Upsert(ctx, p); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err = repo.GetByCustomer(ctx, "CUST-1")
	if err != nil {
		t.Fatalf("GetByCustomer() error = %v", err)
	}
	if got == nil || got.LowBalanceThreshold != 50000 {
		t.Fatalf("GetByCustomer() = %+v, want threshold 50000", got)
	}

	// A second upsert for the same customer replaces, not duplicates.
	p.LowBalanceThreshold = 75000
	p.LowBalanceEnabled = false
	if err := repo.Upsert(ctx, p); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	got, err = repo.GetByCustomer(ctx, "CUST-1")
	if err != nil {
		t.Fatalf("GetByCustomer() error = %v", err)
	}
	if got.LowBalanceThreshold != 75000 || got.LowBalanceEnabled {
		t.Errorf("GetByCustomer() = %+v, want updated threshold 75000, disabled", got)
	}
}

func TestPreferencesRepository_ListLowBalanceEnabled(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)
	repo := postgres.NewPreferencesRepository(db)
	ctx := context.Background()

	prefs := []*preferences.Preferences{
		{ID: "p-1", CustomerID: "CUST-1", LowBalanceEnabled: true, LowBalanceThreshold: 50000, LeakDetectionEnabled: true},
		{ID: "p-2", CustomerID: "CUST-2", LowBalanceEnabled: false, LowBalanceThreshold: 50000, LeakDetectionEnabled: true},
		{ID: "p-3", CustomerID: "CUST-3", LowBalanceEnabled: true, LowBalanceThreshold: 30000, LeakDetectionEnabled: false},
	}
	for _, p := range prefs {
		if err := repo.Upsert(ctx, p); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	enabled, err := repo.ListLowBalanceEnabled(ctx)
	if err != nil {
		t.Fatalf("ListLowBalanceEnabled() error = %v", err)
	}
	if len(enabled) != 2 {
		t.Fatalf("enabled = %d, want 2", len(enabled))
	}
	for _, p := range enabled {
		if p.CustomerID == "CUST-2" {
			t.Error("opted-out customer included")
		}
	}
}
