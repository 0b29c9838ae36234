package leak

import "time"

// Event represents a detected leak incident for a device. A device has
// at most one unresolved event at any time.
type Event struct {
	ID              string     `json:"id"`
	DeviceID        string     `json:"device_id"`
	CustomerID      string     `json:"customer_id"`
	DetectedAt      time.Time  `json:"detected_at"`
	ConsumptionRate float64    `json:"consumption_rate"` // abnormal rate (m³/hour)
	NormalRate      float64    `json:"normal_rate"`      // baseline rate (m³/hour)
	Severity        string     `json:"severity"`
	DurationMinutes int        `json:"duration_minutes"`
	EstimatedLossM3 float64    `json:"estimated_loss_m3"`
	EstimatedCostIDR float64   `json:"estimated_cost_idr"`
	Resolved        bool       `json:"resolved"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

// Severity levels. "minor" is part of the declared domain but no
// classifier rule currently produces it; kept for forward compatibility.
const (
	SeverityMinor    = "minor"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

// Analysis is the outcome of one classification run for a device.
type Analysis struct {
	LeakDetected     bool    `json:"leak_detected"`
	Severity         string  `json:"severity,omitempty"`
	AvgRate          float64 `json:"avg_rate"`
	Baseline         float64 `json:"baseline"`
	EstimatedLossM3  float64 `json:"estimated_loss_m3"`
	EstimatedCostIDR float64 `json:"estimated_cost_idr"`
}

// Filter contains leak event filtering options
type Filter struct {
	DeviceID   string
	CustomerID string
	Severity   string
	Resolved   *bool
}
