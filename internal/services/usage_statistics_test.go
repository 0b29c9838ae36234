package services

import (
	"math"
	"testing"
	"time"

	"github.com/theshadowable/iws-sh/internal/domain/reading"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// hourlyReadings builds cumulative readings at fixed hourly intervals
// ending one hour before end.
func hourlyReadings(deviceID string, end time.Time, count int, start, perHour float64) []*reading.ConsumptionReading {
	readings := make([]*reading.ConsumptionReading, 0, count)
	for i := 0; i < count; i++ {
		offset := time.Duration(count-i) * time.Hour
		readings = append(readings, &reading.ConsumptionReading{
			ID:          "r",
			DeviceID:    deviceID,
			CustomerID:  "CUST-1",
			Timestamp:   end.Add(-offset),
			Consumption: start + float64(i)*perHour,
		})
	}
	return readings
}

func TestComputeUsageStats_InsufficientReadings(t *testing.T) {
	end := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		count int
		want  bool
	}{
		{"no readings", 0, false},
		{"nine readings", 9, false},
		{"ten readings", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readings := hourlyReadings("DEV-1", end, tt.count, 100.0, 0.5)
			_, ok := ComputeUsageStats(readings, nil)
			if ok != tt.want {
				t.Errorf("ComputeUsageStats() ok = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestComputeUsageStats_ConstantRate(t *testing.T) {
	end := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	readings := hourlyReadings("DEV-1", end, 24, 100.0, 0.5)

	stats, ok := ComputeUsageStats(readings, nil)
	if !ok {
		t.Fatal("ComputeUsageStats() ok = false, want true")
	}

	if len(stats.HourlyRates) != 23 {
		t.Errorf("HourlyRates count = %d, want 23", len(stats.HourlyRates))
	}
	if stats.AvgRate != 0.5 {
		t.Errorf("AvgRate = %v, want 0.5", stats.AvgRate)
	}
	if stats.Baseline != defaultBaselineRate {
		t.Errorf("Baseline = %v, want default %v", stats.Baseline, defaultBaselineRate)
	}
}

func TestPairwiseRates_SkipsNonPositiveDelta(t *testing.T) {
	ts := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	readings := []*reading.ConsumptionReading{
		{Timestamp: ts, Consumption: 100.0},
		{Timestamp: ts.Add(time.Hour), Consumption: 100.5},
		// Duplicate timestamp: this pair must be skipped, not divided by zero.
		{Timestamp: ts.Add(time.Hour), Consumption: 100.6},
		{Timestamp: ts.Add(2 * time.Hour), Consumption: 101.1},
		// Out-of-order reading makes a negative delta with its predecessor.
		{Timestamp: ts.Add(time.Hour + 30*time.Minute), Consumption: 100.8},
	}

	hourly, _ := pairwiseRates(readings)
	if len(hourly) != 2 {
		t.Fatalf("pairwiseRates() returned %d rates, want 2", len(hourly))
	}
	if !approxEqual(hourly[0], 0.5) {
		t.Errorf("rate[0] = %v, want 0.5", hourly[0])
	}
	if !approxEqual(hourly[1], 0.5) {
		t.Errorf("rate[1] = %v, want 0.5", hourly[1])
	}
}

func TestPairwiseRates_NightWindow(t *testing.T) {
	// The night window is [23:00, 06:00) UTC, keyed on the hour of the
	// later reading of each pair.
	tests := []struct {
		hour  int
		night bool
	}{
		{23, true},
		{0, true},
		{3, true},
		{5, true},
		{6, false},
		{12, false},
		{22, false},
	}

	for _, tt := range tests {
		base := time.Date(2024, 3, 15, tt.hour, 0, 0, 0, time.UTC)
		readings := []*reading.ConsumptionReading{
			{Timestamp: base.Add(-time.Hour), Consumption: 100.0},
			{Timestamp: base, Consumption: 100.2},
		}

		_, night := pairwiseRates(readings)
		got := len(night) == 1
		if got != tt.night {
			t.Errorf("hour %02d: night = %v, want %v", tt.hour, got, tt.night)
		}
	}
}

func TestBaselineRate(t *testing.T) {
	end := time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)

	t.Run("no history uses default", func(t *testing.T) {
		if got := baselineRate(nil); got != defaultBaselineRate {
			t.Errorf("baselineRate(nil) = %v, want %v", got, defaultBaselineRate)
		}
	})

	t.Run("only non-positive rates use default", func(t *testing.T) {
		// Meter reset: cumulative value goes down, producing negative rates.
		readings := hourlyReadings("DEV-1", end, 5, 100.0, -1.0)
		if got := baselineRate(readings); got != defaultBaselineRate {
			t.Errorf("baselineRate() = %v, want %v", got, defaultBaselineRate)
		}
	})

	t.Run("mean of positive rates only", func(t *testing.T) {
		ts := end.Add(-4 * time.Hour)
		readings := []*reading.ConsumptionReading{
			{Timestamp: ts, Consumption: 100.0},
			{Timestamp: ts.Add(time.Hour), Consumption: 100.2}, // +0.2
			{Timestamp: ts.Add(2 * time.Hour), Consumption: 100.2}, // 0, excluded
			{Timestamp: ts.Add(3 * time.Hour), Consumption: 100.6}, // +0.4
		}
		got := baselineRate(readings)
		if !approxEqual(got, 0.3) {
			t.Errorf("baselineRate() = %v, want 0.3", got)
		}
	})
}

func TestMean(t *testing.T) {
	if got := mean(nil); got != 0 {
		t.Errorf("mean(nil) = %v, want 0", got)
	}
	if got := mean([]float64{1, 2, 3}); !approxEqual(got, 2) {
		t.Errorf("mean() = %v, want 2", got)
	}
}
