package services

import (
	"testing"

	"github.com/theshadowable/iws-sh/internal/domain/leak"
)

func TestClassifyUsage(t *testing.T) {
	tests := []struct {
		name         string
		stats        UsageStats
		wantDetected bool
		wantSeverity string
	}{
		{
			name: "normal usage at baseline",
			stats: UsageStats{
				AvgRate:  0.05,
				Baseline: 0.05,
			},
			wantDetected: false,
		},
		{
			name: "elevated usage below absolute floor",
			stats: UsageStats{
				AvgRate:  0.09,
				Baseline: 0.02,
			},
			wantDetected: false,
		},
		{
			name: "moderate leak above twice baseline",
			stats: UsageStats{
				AvgRate:  0.15,
				Baseline: 0.05,
			},
			wantDetected: true,
			wantSeverity: leak.SeverityModerate,
		},
		{
			name: "severe leak above four times baseline",
			stats: UsageStats{
				AvgRate:  0.5,
				Baseline: 0.05,
			},
			wantDetected: true,
			wantSeverity: leak.SeveritySevere,
		},
		{
			name: "night consumption escalates to severe",
			stats: UsageStats{
				AvgRate:    0.08,
				Baseline:   0.02,
				NightRates: []float64{0.06, 0.07, 0.08},
			},
			wantDetected: true,
			wantSeverity: leak.SeveritySevere,
		},
		{
			name: "too few night samples stay moderate",
			stats: UsageStats{
				AvgRate:    0.15,
				Baseline:   0.05,
				NightRates: []float64{0.2, 0.2},
			},
			wantDetected: true,
			wantSeverity: leak.SeverityModerate,
		},
		{
			name: "night rate below baseline multiple is not a leak",
			stats: UsageStats{
				AvgRate:    0.15,
				Baseline:   0.1,
				NightRates: []float64{0.12, 0.12, 0.12},
			},
			wantDetected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := ClassifyUsage(&tt.stats)

			if analysis.LeakDetected != tt.wantDetected {
				t.Fatalf("LeakDetected = %v, want %v", analysis.LeakDetected, tt.wantDetected)
			}
			if tt.wantDetected && analysis.Severity != tt.wantSeverity {
				t.Errorf("Severity = %q, want %q", analysis.Severity, tt.wantSeverity)
			}
			if !tt.wantDetected && analysis.EstimatedLossM3 != 0 {
				t.Errorf("EstimatedLossM3 = %v, want 0 when no leak", analysis.EstimatedLossM3)
			}
		})
	}
}

func TestClassifyUsage_LossEstimate(t *testing.T) {
	analysis := ClassifyUsage(&UsageStats{
		AvgRate:  0.5,
		Baseline: 0.05,
	})

	if !analysis.LeakDetected {
		t.Fatal("LeakDetected = false, want true")
	}

	// (0.5 - 0.05) m³/h over 24 hours at Rp 10,000 per m³.
	if !approxEqual(analysis.EstimatedLossM3, 10.8) {
		t.Errorf("EstimatedLossM3 = %v, want 10.8", analysis.EstimatedLossM3)
	}
	if !approxEqual(analysis.EstimatedCostIDR, 108000) {
		t.Errorf("EstimatedCostIDR = %v, want 108000", analysis.EstimatedCostIDR)
	}
}

func TestClassifyUsage_LossUsesDailyAverage(t *testing.T) {
	// When only the night rule fires, the loss estimate still comes from
	// the 24h average rate, not the night rates.
	analysis := ClassifyUsage(&UsageStats{
		AvgRate:    0.08,
		Baseline:   0.02,
		NightRates: []float64{0.06, 0.07, 0.08},
	})

	if !analysis.LeakDetected {
		t.Fatal("LeakDetected = false, want true")
	}
	if !approxEqual(analysis.EstimatedLossM3, (0.08-0.02)*24) {
		t.Errorf("EstimatedLossM3 = %v, want %v", analysis.EstimatedLossM3, (0.08-0.02)*24)
	}
}

func TestClassifyUsage_Deterministic(t *testing.T) {
	stats := &UsageStats{
		AvgRate:    0.3,
		Baseline:   0.05,
		NightRates: []float64{0.2, 0.25, 0.3},
	}

	first := ClassifyUsage(stats)
	second := ClassifyUsage(stats)

	if first.LeakDetected != second.LeakDetected || first.Severity != second.Severity {
		t.Errorf("repeated classification differs: (%v, %s) vs (%v, %s)",
			first.LeakDetected, first.Severity, second.LeakDetected, second.Severity)
	}
}
