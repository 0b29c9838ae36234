package customer

import "context"

// Repository defines the interface for customer account data access
type Repository interface {
	// GetByID retrieves a customer by ID
	GetByID(ctx context.Context, id string) (*Customer, error)
}
