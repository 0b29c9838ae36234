package alert

import "context"

// Service defines the interface for alert business logic
type Service interface {
	// Emit creates a new alert notification for a customer.
	Emit(ctx context.Context, a *Alert) error

	// GetByID retrieves an alert by ID
	GetByID(ctx context.Context, id string) (*Alert, error)

	// List retrieves alerts with filters and pagination
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Alert, int64, error)

	// UpdateStatus updates alert status
	UpdateStatus(ctx context.Context, id string, status string) error

	// GetSummary gets a customer's alert summary by status
	GetSummary(ctx context.Context, customerID string) (map[string]int, error)
}
