package services

import (
	"github.com/theshadowable/iws-sh/internal/domain/reading"
)

const (
	// minReadings is the minimum number of readings in the analysis window
	// required before any classification is attempted.
	minReadings = 10

	// defaultBaselineRate is the fallback baseline when a device has no
	// historical readings (m³/hour).
	defaultBaselineRate = 0.05

	// Night window: [23:00, 24:00) and [00:00, 06:00) UTC.
	nightStartHour = 23
	nightEndHour   = 6
)

// UsageStats holds the derived statistics for one analysis window.
type UsageStats struct {
	HourlyRates []float64
	NightRates  []float64
	AvgRate     float64
	Baseline    float64
}

// ComputeUsageStats derives hourly consumption rates, night-window rates
// and the historical baseline from raw cumulative readings. The second
// return value is false when there is not enough data to classify; this
// is a normal outcome, not an error.
func ComputeUsageStats(recent, historical []*reading.ConsumptionReading) (*UsageStats, bool) {
	if len(recent) < minReadings {
		return nil, false
	}

	hourlyRates, nightRates := pairwiseRates(recent)
	if len(hourlyRates) == 0 {
		return nil, false
	}

	return &UsageStats{
		HourlyRates: hourlyRates,
		NightRates:  nightRates,
		AvgRate:     mean(hourlyRates),
		Baseline:    baselineRate(historical),
	}, true
}

// pairwiseRates computes the consumption rate for each consecutive pair
// of readings. Pairs with a zero or negative time delta (out-of-order or
// duplicate timestamps) are skipped rather than treated as zero rate.
func pairwiseRates(readings []*reading.ConsumptionReading) (hourly, night []float64) {
	for i := 1; i < len(readings); i++ {
		prev := readings[i-1]
		cur := readings[i]

		hours := cur.Timestamp.Sub(prev.Timestamp).Hours()
		if hours <= 0 {
			continue
		}

		rate := (cur.Consumption - prev.Consumption) / hours
		hourly = append(hourly, rate)

		hour := cur.Timestamp.UTC().Hour()
		if hour >= nightStartHour || hour < nightEndHour {
			night = append(night, rate)
		}
	}
	return hourly, night
}

// baselineRate computes the historical baseline as the unweighted
// arithmetic mean of positive pairwise rates, regardless of gap
// duration.
func baselineRate(historical []*reading.ConsumptionReading) float64 {
	rates, _ := pairwiseRates(historical)

	var positive []float64
	for _, r := range rates {
		if r > 0 {
			positive = append(positive, r)
		}
	}

	if len(positive) == 0 {
		return defaultBaselineRate
	}
	return mean(positive)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
