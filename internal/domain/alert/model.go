package alert

import "time"

// Alert represents a customer-facing notification envelope
type Alert struct {
	ID         string                 `json:"id"`
	CustomerID string                 `json:"customer_id"`
	Type       string                 `json:"alert_type"`
	Severity   string                 `json:"severity"`
	Title      string                 `json:"title"`
	Message    string                 `json:"message"`
	Status     string                 `json:"status"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	ReadAt     *time.Time             `json:"read_at,omitempty"`
	ResolvedAt *time.Time             `json:"resolved_at,omitempty"`
}

// Alert types
const (
	TypeLowBalance         = "low_balance"
	TypeLeakDetected       = "leak_detected"
	TypeDeviceTampering    = "device_tampering"
	TypeMaintenanceDue     = "maintenance_due"
	TypePaymentSuccess     = "payment_success"
	TypePaymentFailed      = "payment_failed"
	TypeSystemNotification = "system_notification"
)

// Severity levels
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Status values
const (
	StatusUnread    = "unread"
	StatusRead      = "read"
	StatusDismissed = "dismissed"
	StatusResolved  = "resolved"
)

// Filter contains alert filtering options
type Filter struct {
	CustomerID string
	Type       string
	Severity   string
	Status     string
}
