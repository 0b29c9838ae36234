package tip

import (
	"context"
	"time"
)

// Repository defines the interface for water saving tip data access
type Repository interface {
	// Create creates a new tip
	Create(ctx context.Context, t *Tip) error

	// ListRecentCategories returns the categories of tips generated for a
	// customer at or after since.
	ListRecentCategories(ctx context.Context, customerID string, since time.Time) (map[string]bool, error)

	// ListByCustomer retrieves a customer's tips, newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]*Tip, error)

	// MarkViewed marks a tip as viewed
	MarkViewed(ctx context.Context, id string) error
}
