package preferences

import "context"

// Repository defines the interface for alert preferences data access
type Repository interface {
	// GetByCustomer retrieves a customer's preferences, or nil when the
	// customer has never configured any.
	GetByCustomer(ctx context.Context, customerID string) (*Preferences, error)

	// Upsert creates or replaces a customer's preferences
	Upsert(ctx context.Context, p *Preferences) error

	// ListLowBalanceEnabled returns preferences of all customers with low
	// balance alerts enabled.
	ListLowBalanceEnabled(ctx context.Context) ([]*Preferences, error)
}
