package preferences

import "time"

// Preferences holds a customer's alerting preferences. Balance checks
// read the low balance threshold from here, falling back to the
// configured default for customers without a row.
type Preferences struct {
	ID                   string    `json:"id"`
	CustomerID           string    `json:"customer_id"`
	LowBalanceEnabled    bool      `json:"low_balance_enabled"`
	LowBalanceThreshold  float64   `json:"low_balance_threshold"` // IDR
	LeakDetectionEnabled bool      `json:"leak_detection_enabled"`
	UpdatedAt            time.Time `json:"updated_at"`
}
