package dto

import "time"

// AlertDTO is the API representation of an alert
type AlertDTO struct {
	ID         string                 `json:"id"`
	CustomerID string                 `json:"customer_id"`
	Type       string                 `json:"alert_type"`
	Severity   string                 `json:"severity"`
	Title      string                 `json:"title"`
	Message    string                 `json:"message"`
	Status     string                 `json:"status"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// UpdateAlertStatusRequest updates an alert's status
type UpdateAlertStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=unread read dismissed resolved"`
}
