package services

import (
	"github.com/theshadowable/iws-sh/internal/domain/leak"
)

// Classifier thresholds, all rates in m³/hour.
const (
	moderateBaselineFactor = 2
	moderateRateFloor      = 0.1

	nightMinSamples     = 3
	nightRateFloor      = 0.05
	nightBaselineFactor = 1.5

	severeBaselineFactor = 4
	severeRateFloor      = 0.2

	// leakDurationHours is the assumed duration of an ongoing leak when
	// estimating loss, fixed at the analysis window length.
	leakDurationHours = 24

	// waterCostPerM3IDR is the tariff used for loss cost estimates.
	waterCostPerM3IDR = 10000
)

// ClassifyUsage applies the leak rule ladder to derived usage statistics.
//
// The rules are evaluated in a fixed order and a later rule overwrites
// the severity set by an earlier one (last rule wins, not max wins).
func ClassifyUsage(stats *UsageStats) leak.Analysis {
	detected := false
	severity := leak.SeverityMinor

	// Rule 1: current rate significantly above baseline (>200%).
	if stats.AvgRate > stats.Baseline*moderateBaselineFactor && stats.AvgRate > moderateRateFloor {
		detected = true
		severity = leak.SeverityModerate
	}

	// Rule 2: continuous night consumption, the signature of a constant leak.
	if len(stats.NightRates) >= nightMinSamples {
		nightAvg := mean(stats.NightRates)
		if nightAvg > nightRateFloor && nightAvg > stats.Baseline*nightBaselineFactor {
			detected = true
			severity = leak.SeveritySevere
		}
	}

	// Rule 3: very high spike (>400% of baseline).
	if stats.AvgRate > stats.Baseline*severeBaselineFactor && stats.AvgRate > severeRateFloor {
		detected = true
		severity = leak.SeveritySevere
	}

	analysis := leak.Analysis{
		LeakDetected: detected,
		AvgRate:      stats.AvgRate,
		Baseline:     stats.Baseline,
	}

	if detected {
		analysis.Severity = severity
		// Loss is always estimated from the 24h average rate, even when
		// the night rule was the one that fired.
		analysis.EstimatedLossM3 = (stats.AvgRate - stats.Baseline) * leakDurationHours
		analysis.EstimatedCostIDR = analysis.EstimatedLossM3 * waterCostPerM3IDR
	}

	return analysis
}
