package reading

import "time"

// ConsumptionReading is one cumulative meter measurement. Readings are
// immutable once written; the monitoring engine only reads them.
type ConsumptionReading struct {
	ID          string    `json:"id"`
	DeviceID    string    `json:"device_id"`
	CustomerID  string    `json:"customer_id"`
	Timestamp   time.Time `json:"timestamp"`
	Consumption float64   `json:"consumption"` // cumulative m³, non-decreasing under normal operation
}
