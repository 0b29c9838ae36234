package client

import "time"

// Alert represents a customer notification
type Alert struct {
	ID         string                 `json:"id"`
	CustomerID string                 `json:"customer_id"`
	Type       string                 `json:"alert_type"` // low_balance, leak_detected, ...
	Severity   string                 `json:"severity"`   // info, warning, critical
	Title      string                 `json:"title"`
	Message    string                 `json:"message"`
	Status     string                 `json:"status"` // unread, read, dismissed, resolved
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// LeakEvent represents a detected leak on a device
type LeakEvent struct {
	ID               string     `json:"id"`
	DeviceID         string     `json:"device_id"`
	CustomerID       string     `json:"customer_id"`
	DetectedAt       time.Time  `json:"detected_at"`
	ConsumptionRate  float64    `json:"consumption_rate"`
	NormalRate       float64    `json:"normal_rate"`
	Severity         string     `json:"severity"` // minor, moderate, severe
	DurationMinutes  int        `json:"duration_minutes"`
	EstimatedLossM3  float64    `json:"estimated_loss_m3"`
	EstimatedCostIDR float64    `json:"estimated_cost_idr"`
	Resolved         bool       `json:"resolved"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`
	Notes            string     `json:"notes,omitempty"`
}

// LeakAnalysis is the outcome of a single detection run
type LeakAnalysis struct {
	LeakDetected     bool    `json:"leak_detected"`
	Severity         string  `json:"severity,omitempty"`
	AvgRate          float64 `json:"avg_rate"`
	Baseline         float64 `json:"baseline"`
	EstimatedLossM3  float64 `json:"estimated_loss_m3"`
	EstimatedCostIDR float64 `json:"estimated_cost_idr"`
	InsufficientData bool    `json:"insufficient_data,omitempty"`
}

// Tip represents a personalized water saving tip
type Tip struct {
	ID                  string    `json:"id"`
	CustomerID          string    `json:"customer_id"`
	Category            string    `json:"tip_category"` // usage_optimization, leak_prevention, behavior_change
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	PotentialSavingsPct float64   `json:"potential_savings_percentage"`
	Priority            int       `json:"priority"`
	GeneratedAt         time.Time `json:"generated_at"`
	Viewed              bool      `json:"viewed"`
	Applied             bool      `json:"applied"`
}

// Preferences holds a customer's alert preferences
type Preferences struct {
	CustomerID           string  `json:"customer_id,omitempty"`
	LowBalanceEnabled    bool    `json:"low_balance_enabled"`
	LowBalanceThreshold  float64 `json:"low_balance_threshold"` // IDR
	LeakDetectionEnabled bool    `json:"leak_detection_enabled"`
}

// ListOptions contains common pagination options
type ListOptions struct {
	Page     int
	PageSize int
}

// PaginatedAlerts is a page of alerts
type PaginatedAlerts struct {
	Data       []Alert `json:"data"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalItems int64   `json:"total_items"`
	TotalPages int     `json:"total_pages"`
}

// PaginatedLeakEvents is a page of leak events
type PaginatedLeakEvents struct {
	Data       []LeakEvent `json:"data"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalItems int64       `json:"total_items"`
	TotalPages int         `json:"total_pages"`
}
