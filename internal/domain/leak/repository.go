package leak

import (
	"context"
	"time"
)

// Repository defines the interface for leak event data access
type Repository interface {
	// Create creates a new leak event
	Create(ctx context.Context, event *Event) error

	// GetByID retrieves a leak event by ID
	GetByID(ctx context.Context, id string) (*Event, error)

	// FindUnresolved returns the unresolved event for a device detected at
	// or after since, or nil when none exists.
	FindUnresolved(ctx context.Context, deviceID string, since time.Time) (*Event, error)

	// UpdateMetrics updates the measured fields of an open event in place.
	UpdateMetrics(ctx context.Context, event *Event) error

	// Resolve marks an event resolved with optional technician notes.
	Resolve(ctx context.Context, id string, notes string) error

	// ListWithPagination retrieves leak events with filters and pagination
	ListWithPagination(ctx context.Context, filter Filter, limit, offset int) ([]*Event, int64, error)
}
