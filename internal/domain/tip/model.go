package tip

import "time"

// Tip is a personalized water saving recommendation
type Tip struct {
	ID                   string     `json:"id"`
	CustomerID           string     `json:"customer_id"`
	Category             string     `json:"tip_category"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	PotentialSavingsPct  float64    `json:"potential_savings_percentage"`
	Priority             int        `json:"priority"` // 1=high, 2=medium, 3=low
	GeneratedAt          time.Time  `json:"generated_at"`
	Viewed               bool       `json:"viewed"`
	ViewedAt             *time.Time `json:"viewed_at,omitempty"`
	Applied              bool       `json:"applied"`
	AppliedAt            *time.Time `json:"applied_at,omitempty"`
}

// Tip categories
const (
	CategoryUsageOptimization = "usage_optimization"
	CategoryLeakPrevention    = "leak_prevention"
	CategoryBehaviorChange    = "behavior_change"
)
