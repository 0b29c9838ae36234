package dto

// PreferencesDTO is the API representation of alert preferences
type PreferencesDTO struct {
	CustomerID           string  `json:"customer_id"`
	LowBalanceEnabled    bool    `json:"low_balance_enabled"`
	LowBalanceThreshold  float64 `json:"low_balance_threshold"`
	LeakDetectionEnabled bool    `json:"leak_detection_enabled"`
}

// UpdatePreferencesRequest replaces a customer's alert preferences
type UpdatePreferencesRequest struct {
	LowBalanceEnabled    bool    `json:"low_balance_enabled"`
	LowBalanceThreshold  float64 `json:"low_balance_threshold" validate:"gte=0"`
	LeakDetectionEnabled bool    `json:"leak_detection_enabled"`
}
