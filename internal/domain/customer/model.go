package customer

import "time"

// Customer carries the prepaid account state the monitoring core reads.
// Customer CRUD itself lives in the back-office service.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Balance   float64   `json:"balance"` // IDR
	UpdatedAt time.Time `json:"updated_at"`
}
