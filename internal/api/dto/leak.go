package dto

import "time"

// LeakEventDTO is the API representation of a leak event
type LeakEventDTO struct {
	ID               string     `json:"id"`
	DeviceID         string     `json:"device_id"`
	CustomerID       string     `json:"customer_id"`
	DetectedAt       time.Time  `json:"detected_at"`
	ConsumptionRate  float64    `json:"consumption_rate"`
	NormalRate       float64    `json:"normal_rate"`
	Severity         string     `json:"severity"`
	DurationMinutes  int        `json:"duration_minutes"`
	EstimatedLossM3  float64    `json:"estimated_loss_m3"`
	EstimatedCostIDR float64    `json:"estimated_cost_idr"`
	Resolved         bool       `json:"resolved"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`
	Notes            string     `json:"notes,omitempty"`
}

// DetectLeakRequest triggers leak detection for a device
type DetectLeakRequest struct {
	DeviceID string `json:"device_id" validate:"required"`
}

// ResolveLeakRequest resolves a leak event with optional notes
type ResolveLeakRequest struct {
	Notes string `json:"notes"`
}

// LeakAnalysisDTO is the outcome of one detection run
type LeakAnalysisDTO struct {
	LeakDetected     bool    `json:"leak_detected"`
	Severity         string  `json:"severity,omitempty"`
	AvgRate          float64 `json:"avg_rate"`
	Baseline         float64 `json:"baseline"`
	EstimatedLossM3  float64 `json:"estimated_loss_m3"`
	EstimatedCostIDR float64 `json:"estimated_cost_idr"`
	InsufficientData bool    `json:"insufficient_data,omitempty"`
}
