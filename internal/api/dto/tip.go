package dto

import "time"

// TipDTO is the API representation of a water saving tip
type TipDTO struct {
	ID                  string    `json:"id"`
	CustomerID          string    `json:"customer_id"`
	Category            string    `json:"tip_category"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	PotentialSavingsPct float64   `json:"potential_savings_percentage"`
	Priority            int       `json:"priority"`
	GeneratedAt         time.Time `json:"generated_at"`
	Viewed              bool      `json:"viewed"`
	Applied             bool      `json:"applied"`
}
