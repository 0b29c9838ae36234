package services

import (
	"context"
	"testing"
	"time"

	"github.com/theshadowable/iws-sh/internal/domain/tip"
	"github.com/theshadowable/iws-sh/internal/pkg/logger"
	"github.com/theshadowable/iws-sh/internal/testutil"
)

func newTestTipService(t *testing.T, now time.Time) (*TipService, *testutil.MockReadingRepository, *testutil.MockTipRepository) {
	t.Helper()

	readings := testutil.NewMockReadingRepository()
	tips := testutil.NewMockTipRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	svc := NewTipService(readings, tips, log).(*TipService)
	svc.now = func() time.Time { return now }

	return svc, readings, tips
}

func categories(tips []*tip.Tip) map[string]bool {
	out := make(map[string]bool)
	for _, t := range tips {
		out[t.Category] = true
	}
	return out
}

func TestTipService_GenerateForCustomer_NoReadings(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	svc, _, tips := newTestTipService(t, now)

	generated, err := svc.GenerateForCustomer(context.Background(), "CUST-1")
	if err != nil {
		t.Fatalf("GenerateForCustomer() error = %v", err)
	}
	if generated != nil {
		t.Errorf("generated = %v, want nil without readings", generated)
	}
	if len(tips.Tips) != 0 {
		t.Errorf("tips stored = %d, want 0", len(tips.Tips))
	}
}

func TestTipService_GenerateForCustomer_HighUsage(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	svc, readings, tips := newTestTipService(t, now)

	// 30 m³ consumed over the 30 day window: 1.0 m³/day.
	readings.Add("DEV-1", "CUST-1", now.Add(-29*24*time.Hour), 100.0)
	readings.Add("DEV-1", "CUST-1", now.Add(-time.Hour), 130.0)

	generated, err := svc.GenerateForCustomer(context.Background(), "CUST-1")
	if err != nil {
		t.Fatalf("GenerateForCustomer() error = %v", err)
	}

	got := categories(generated)
	for _, want := range []string{tip.CategoryUsageOptimization, tip.CategoryLeakPrevention, tip.CategoryBehaviorChange} {
		if !got[want] {
			t.Errorf("missing category %q", want)
		}
	}
	if len(generated) != 3 {
		t.Errorf("generated = %d tips, want 3", len(generated))
	}
	if len(tips.Tips) != 3 {
		t.Errorf("tips stored = %d, want 3", len(tips.Tips))
	}

	for _, tp := range generated {
		if tp.ID == "" {
			t.Error("tip saved without ID")
		}
		if !tp.GeneratedAt.Equal(now) {
			t.Errorf("GeneratedAt = %v, want %v", tp.GeneratedAt, now)
		}
	}
}

func TestTipService_GenerateForCustomer_LowUsageSkipsOptimization(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	svc, readings, _ := newTestTipService(t, now)

	// 3 m³ over 30 days: 0.1 m³/day, below the optimization gate.
	readings.Add("DEV-1", "CUST-1", now.Add(-29*24*time.Hour), 100.0)
	readings.Add("DEV-1", "CUST-1", now.Add(-time.Hour), 103.0)

	generated, err := svc.GenerateForCustomer(context.Background(), "CUST-1")
	if err != nil {
		t.Fatalf("GenerateForCustomer() error = %v", err)
	}

	got := categories(generated)
	if got[tip.CategoryUsageOptimization] {
		t.Error("usage optimization tip generated for low usage")
	}
	if !got[tip.CategoryLeakPrevention] || !got[tip.CategoryBehaviorChange] {
		t.Errorf("generated categories = %v, want leak_prevention and behavior_change", got)
	}
}

func TestTipService_GenerateForCustomer_NoveltyWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("recent category suppressed", func(t *testing.T) {
		svc, readings, tips := newTestTipService(t, now)
		readings.Add("DEV-1", "CUST-1", now.Add(-29*24*time.Hour), 100.0)
		readings.Add("DEV-1", "CUST-1", now.Add(-time.Hour), 103.0)

		tips.Tips["old-1"] = &tip.Tip{
			ID:          "old-1",
			CustomerID:  "CUST-1",
			Category:    tip.CategoryLeakPrevention,
			GeneratedAt: now.Add(-3 * 24 * time.Hour),
		}

		generated, err := svc.GenerateForCustomer(context.Background(), "CUST-1")
		if err != nil {
			t.Fatalf("GenerateForCustomer() error = %v", err)
		}
		if categories(generated)[tip.CategoryLeakPrevention] {
			t.Error("leak prevention tip repeated within 7 days")
		}
	})

	t.Run("stale category generated again", func(t *testing.T) {
		svc, readings, tips := newTestTipService(t, now)
		readings.Add("DEV-1", "CUST-1", now.Add(-29*24*time.Hour), 100.0)
		readings.Add("DEV-1", "CUST-1", now.Add(-time.Hour), 103.0)

		tips.Tips["old-1"] = &tip.Tip{
			ID:          "old-1",
			CustomerID:  "CUST-1",
			Category:    tip.CategoryLeakPrevention,
			GeneratedAt: now.Add(-8 * 24 * time.Hour),
		}

		generated, err := svc.GenerateForCustomer(context.Background(), "CUST-1")
		if err != nil {
			t.Fatalf("GenerateForCustomer() error = %v", err)
		}
		if !categories(generated)[tip.CategoryLeakPrevention] {
			t.Error("leak prevention tip not regenerated after 7 days")
		}
	})
}

func TestTipService_GenerateForCustomer_MultipleDevices(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	svc, readings, _ := newTestTipService(t, now)

	// Two devices at 0.3 m³/day each cross the 0.5 m³/day gate together.
	readings.Add("DEV-1", "CUST-1", now.Add(-29*24*time.Hour), 100.0)
	readings.Add("DEV-1", "CUST-1", now.Add(-time.Hour), 109.0)
	readings.Add("DEV-2", "CUST-1", now.Add(-29*24*time.Hour), 200.0)
	readings.Add("DEV-2", "CUST-1", now.Add(-time.Hour), 209.0)

	generated, err := svc.GenerateForCustomer(context.Background(), "CUST-1")
	if err != nil {
		t.Fatalf("GenerateForCustomer() error = %v", err)
	}

	if !categories(generated)[tip.CategoryUsageOptimization] {
		t.Error("usage across devices not aggregated for the optimization gate")
	}
}

func TestTipService_MarkViewed(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	svc, _, tips := newTestTipService(t, now)

	tips.Tips["t-1"] = &tip.Tip{ID: "t-1", CustomerID: "CUST-1", Category: tip.CategoryBehaviorChange}

	if err := svc.MarkViewed(context.Background(), "t-1"); err != nil {
		t.Fatalf("MarkViewed() error = %v", err)
	}

	if !tips.Tips["t-1"].Viewed {
		t.Error("tip not marked viewed")
	}
	if tips.Tips["t-1"].ViewedAt == nil {
		t.Error("ViewedAt not set")
	}
}
