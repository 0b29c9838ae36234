package tip

import "context"

// Service defines the interface for tip generation business logic
type Service interface {
	// GenerateForCustomer analyzes 30 days of usage across a customer's
	// devices and persists any newly applicable tips.
	GenerateForCustomer(ctx context.Context, customerID string) ([]*Tip, error)

	// List retrieves a customer's tips
	List(ctx context.Context, customerID string) ([]*Tip, error)

	// MarkViewed marks a tip as viewed
	MarkViewed(ctx context.Context, id string) error
}
