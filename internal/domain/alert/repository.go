package alert

import (
	"context"
	"time"
)

// Repository defines the interface for alert data access
type Repository interface {
	// Create creates a new alert
	Create(ctx context.Context, alert *Alert) error

	// GetByID retrieves an alert by ID
	GetByID(ctx context.Context, id string) (*Alert, error)

	// FindRecentByType returns the most recent alert of the given type for
	// a customer created at or after since, or nil when none exists.
	FindRecentByType(ctx context.Context, customerID, alertType string, since time.Time) (*Alert, error)

	// UpdateStatus updates the status of an alert
	UpdateStatus(ctx context.Context, id string, status string) error

	// ListWithPagination retrieves alerts with filters and pagination
	ListWithPagination(ctx context.Context, filter Filter, limit, offset int) ([]*Alert, int64, error)

	// CountByStatus counts a customer's alerts by status
	CountByStatus(ctx context.Context, customerID string) (map[string]int, error)
}
