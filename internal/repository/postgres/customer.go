package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/theshadowable/iws-sh/internal/domain/customer"
	"github.com/theshadowable/iws-sh/internal/pkg/errors"
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) customer.Repository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	query := `SELECT id, name, balance, updated_at FROM customers WHERE id = ?`

	var c customer.Customer
	var updatedAt string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Balance, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Customer")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get customer", err)
	}

	c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &c, nil
}
