package leak

import "context"

// Service defines the interface for leak detection business logic
type Service interface {
	// DetectForDevice analyzes recent usage for a device, classifies it and
	// records or updates a leak event when a leak is detected. The returned
	// analysis is nil when there was not enough data to classify.
	DetectForDevice(ctx context.Context, customerID, deviceID string) (*Analysis, error)

	// GetByID retrieves a leak event by ID
	GetByID(ctx context.Context, id string) (*Event, error)

	// Resolve marks a leak event resolved after a technician action.
	Resolve(ctx context.Context, id string, notes string) error

	// List retrieves leak events with filters and pagination
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Event, int64, error)
}
