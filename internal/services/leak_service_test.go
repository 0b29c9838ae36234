package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/theshadowable/iws-sh/internal/domain/alert"
	"github.com/theshadowable/iws-sh/internal/domain/leak"
	"github.com/theshadowable/iws-sh/internal/pkg/logger"
	"github.com/theshadowable/iws-sh/internal/testutil"
)

func newTestLeakService(t *testing.T, now time.Time) (*LeakService, *testutil.MockReadingRepository, *testutil.MockLeakRepository, *testutil.MockAlertRepository) {
	t.Helper()

	readings := testutil.NewMockReadingRepository()
	events := testutil.NewMockLeakRepository()
	alerts := testutil.NewMockAlertRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	svc := NewLeakService(readings, events, NewAlertService(alerts, log), log).(*LeakService)
	svc.now = func() time.Time { return now }

	return svc, readings, events, alerts
}

// addHourlyReadings seeds cumulative hourly readings in [end-count*1h, end).
func addHourlyReadings(repo *testutil.MockReadingRepository, deviceID string, end time.Time, count int, start, perHour float64) {
	for i := 0; i < count; i++ {
		offset := time.Duration(count-i) * time.Hour
		repo.Add(deviceID, "CUST-1", end.Add(-offset), start+float64(i)*perHour)
	}
}

func TestLeakService_DetectForDevice_InsufficientData(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	svc, readings, events, alerts := newTestLeakService(t, now)

	addHourlyReadings(readings, "DEV-1", now, 5, 100.0, 0.5)

	analysis, err := svc.DetectForDevice(context.Background(), "CUST-1", "DEV-1")
	if err != nil {
		t.Fatalf("DetectForDevice() error = %v", err)
	}
	if analysis != nil {
		t.Errorf("analysis = %+v, want nil for insufficient data", analysis)
	}
	if len(events.Events) != 0 {
		t.Errorf("events created = %d, want 0", len(events.Events))
	}
	if len(alerts.Alerts) != 0 {
		t.Errorf("alerts created = %d, want 0", len(alerts.Alerts))
	}
}

func TestLeakService_DetectForDevice_NoLeak(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	svc, readings, events, alerts := newTestLeakService(t, now)

	// Typical household rate around the default baseline.
	addHourlyReadings(readings, "DEV-1", now, 24, 100.0, 0.05)

	analysis, err := svc.DetectForDevice(context.Background(), "CUST-1", "DEV-1")
	if err != nil {
		t.Fatalf("DetectForDevice() error = %v", err)
	}
	if analysis == nil {
		t.Fatal("analysis = nil, want non-nil")
	}
	if analysis.LeakDetected {
		t.Errorf("LeakDetected = true, want false")
	}
	if len(events.Events) != 0 {
		t.Errorf("events created = %d, want 0", len(events.Events))
	}
	if len(alerts.Alerts) != 0 {
		t.Errorf("alerts created = %d, want 0", len(alerts.Alerts))
	}
}

func TestLeakService_DetectForDevice_SevereLeak(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	svc, readings, events, alerts := newTestLeakService(t, now)

	// Constant 0.5 m³/h with no history: ten times the default baseline.
	addHourlyReadings(readings, "DEV-1", now, 24, 100.0, 0.5)

	analysis, err := svc.DetectForDevice(context.Background(), "CUST-1", "DEV-1")
	if err != nil {
		t.Fatalf("DetectForDevice() error = %v", err)
	}
	if analysis == nil {
		t.Fatal("analysis = nil, want non-nil")
	}
	if !analysis.LeakDetected {
		t.Fatal("LeakDetected = false, want true")
	}
	if analysis.Severity != leak.SeveritySevere {
		t.Errorf("Severity = %q, want %q", analysis.Severity, leak.SeveritySevere)
	}
	if !approxEqual(analysis.EstimatedLossM3, 10.8) {
		t.Errorf("EstimatedLossM3 = %v, want 10.8", analysis.EstimatedLossM3)
	}
	if !approxEqual(analysis.EstimatedCostIDR, 108000) {
		t.Errorf("EstimatedCostIDR = %v, want 108000", analysis.EstimatedCostIDR)
	}

	if len(events.Events) != 1 {
		t.Fatalf("events created = %d, want 1", len(events.Events))
	}
	for _, e := range events.Events {
		if e.CustomerID != "CUST-1" || e.DeviceID != "DEV-1" {
			t.Errorf("event owner = %s/%s, want CUST-1/DEV-1", e.CustomerID, e.DeviceID)
		}
		if e.Severity != leak.SeveritySevere {
			t.Errorf("event severity = %q, want severe", e.Severity)
		}
		if e.Resolved {
			t.Error("event created as resolved")
		}
	}

	if len(alerts.Alerts) != 1 {
		t.Fatalf("alerts created = %d, want 1", len(alerts.Alerts))
	}
	for _, a := range alerts.Alerts {
		if a.Type != alert.TypeLeakDetected {
			t.Errorf("alert type = %q, want %q", a.Type, alert.TypeLeakDetected)
		}
		if a.Severity != alert.SeverityCritical {
			t.Errorf("alert severity = %q, want critical for severe leak", a.Severity)
		}
		if a.Status != alert.StatusUnread {
			t.Errorf("alert status = %q, want unread", a.Status)
		}
	}
}

func TestLeakService_DetectForDevice_ModerateLeakWarningAlert(t *testing.T) {
	// Daytime-only readings keep the night rule out of play.
	now := time.Date(2024, 3, 15, 22, 0, 0, 0, time.UTC)
	svc, readings, _, alerts := newTestLeakService(t, now)

	// History at 0.06 m³/h puts the current 0.15 m³/h between 2x and 4x
	// of baseline.
	addHourlyReadings(readings, "DEV-1", now.Add(-analysisWindow), 48, 50.0, 0.06)
	addHourlyReadings(readings, "DEV-1", now, 16, 100.0, 0.15)

	analysis, err := svc.DetectForDevice(context.Background(), "CUST-1", "DEV-1")
	if err != nil {
		t.Fatalf("DetectForDevice() error = %v", err)
	}
	if analysis == nil || !analysis.LeakDetected {
		t.Fatalf("analysis = %+v, want detected leak", analysis)
	}
	if analysis.Severity != leak.SeverityModerate {
		t.Errorf("Severity = %q, want moderate", analysis.Severity)
	}

	for _, a := range alerts.Alerts {
		if a.Severity != alert.SeverityWarning {
			t.Errorf("alert severity = %q, want warning for moderate leak", a.Severity)
		}
	}
}

func TestLeakService_DetectForDevice_DeduplicatesWithinWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	svc, readings, events, alerts := newTestLeakService(t, now)

	addHourlyReadings(readings, "DEV-1", now, 24, 100.0, 0.5)

	if _, err := svc.DetectForDevice(context.Background(), "CUST-1", "DEV-1"); err != nil {
		t.Fatalf("first DetectForDevice() error = %v", err)
	}

	// One hour later the leak is still running and slightly worse.
	later := now.Add(time.Hour)
	svc.now = func() time.Time { return later }
	readings.Add("DEV-1", "CUST-1", now, 111.5+0.6)

	if _, err := svc.DetectForDevice(context.Background(), "CUST-1", "DEV-1"); err != nil {
		t.Fatalf("second DetectForDevice() error = %v", err)
	}

	if len(events.Events) != 1 {
		t.Fatalf("events = %d, want 1 (second run must update in place)", len(events.Events))
	}
	if len(alerts.Alerts) != 1 {
		t.Fatalf("alerts = %d, want 1 (no duplicate alert)", len(alerts.Alerts))
	}

	for _, e := range events.Events {
		// DetectedAt keeps the original detection time.
		if !e.DetectedAt.Equal(now) {
			t.Errorf("DetectedAt = %v, want original %v", e.DetectedAt, now)
		}
	}
}

func TestLeakService_DetectForDevice_NewEventAfterResolution(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	svc, readings, events, alerts := newTestLeakService(t, now)

	addHourlyReadings(readings, "DEV-1", now, 24, 100.0, 0.5)

	if _, err := svc.DetectForDevice(context.Background(), "CUST-1", "DEV-1"); err != nil {
		t.Fatalf("first DetectForDevice() error = %v", err)
	}

	var firstID string
	for id := range events.Events {
		firstID = id
	}
	if err := svc.Resolve(context.Background(), firstID, "valve replaced"); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	later := now.Add(time.Hour)
	svc.now = func() time.Time { return later }
	readings.Add("DEV-1", "CUST-1", now, 112.1)

	if _, err := svc.DetectForDevice(context.Background(), "CUST-1", "DEV-1"); err != nil {
		t.Fatalf("second DetectForDevice() error = %v", err)
	}

	if len(events.Events) != 2 {
		t.Errorf("events = %d, want 2 after resolution", len(events.Events))
	}
	if len(alerts.Alerts) != 2 {
		t.Errorf("alerts = %d, want 2 after resolution", len(alerts.Alerts))
	}
}

func TestLeakService_DetectForDevice_ConcurrentRunsCreateOneEvent(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	svc, readings, events, alerts := newTestLeakService(t, now)

	addHourlyReadings(readings, "DEV-1", now, 24, 100.0, 0.5)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.DetectForDevice(context.Background(), "CUST-1", "DEV-1"); err != nil {
				t.Errorf("DetectForDevice() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if len(events.Events) != 1 {
		t.Errorf("events = %d, want 1 under concurrency", len(events.Events))
	}
	if len(alerts.Alerts) != 1 {
		t.Errorf("alerts = %d, want 1 under concurrency", len(alerts.Alerts))
	}
}

func TestLeakService_Resolve(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	svc, _, events, _ := newTestLeakService(t, now)

	events.Events["ev-1"] = &leak.Event{
		ID:         "ev-1",
		DeviceID:   "DEV-1",
		CustomerID: "CUST-1",
		DetectedAt: now.Add(-time.Hour),
		Severity:   leak.SeverityModerate,
	}

	if err := svc.Resolve(context.Background(), "ev-1", "pipe fixed"); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	e := events.Events["ev-1"]
	if !e.Resolved {
		t.Error("event not marked resolved")
	}
	if e.ResolvedAt == nil {
		t.Error("ResolvedAt not set")
	}
	if e.Notes != "pipe fixed" {
		t.Errorf("Notes = %q, want %q", e.Notes, "pipe fixed")
	}
}
