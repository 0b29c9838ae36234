package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/theshadowable/iws-sh/internal/domain/reading"
	"github.com/theshadowable/iws-sh/internal/domain/tip"
	"github.com/theshadowable/iws-sh/internal/pkg/logger"
)

const (
	// tipUsageWindow is the usage window tips are derived from.
	tipUsageWindow = 30 * 24 * time.Hour
	// tipNoveltyWindow suppresses repeat tips of the same category.
	tipNoveltyWindow = 7 * 24 * time.Hour
	// highDailyUsageM3 gates the usage optimization tip (m³/day).
	highDailyUsageM3 = 0.5
)

// TipService implements tip.Service
type TipService struct {
	readings reading.Repository
	tips     tip.Repository
	logger   *logger.Logger

	now func() time.Time
}

// NewTipService creates a new tip generation service
func NewTipService(readings reading.Repository, tips tip.Repository, log *logger.Logger) tip.Service {
	return &TipService{
		readings: readings,
		tips:     tips,
		logger:   log,
		now:      time.Now,
	}
}

// GenerateForCustomer analyzes 30 days of usage across a customer's
// devices and persists any newly applicable tips. A category is
// generated at most once per trailing 7 days.
func (s *TipService) GenerateForCustomer(ctx context.Context, customerID string) ([]*tip.Tip, error) {
	now := s.now().UTC()

	readings, err := s.readings.ListByCustomer(ctx, customerID, now.Add(-tipUsageWindow), now)
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return nil, nil
	}

	dailyAvg := dailyAverageConsumption(readings, tipUsageWindow)

	recent, err := s.tips.ListRecentCategories(ctx, customerID, now.Add(-tipNoveltyWindow))
	if err != nil {
		return nil, err
	}

	var generated []*tip.Tip

	if dailyAvg > highDailyUsageM3 && !recent[tip.CategoryUsageOptimization] {
		generated = append(generated, &tip.Tip{
			CustomerID: customerID,
			Category:   tip.CategoryUsageOptimization,
			Title:      "Optimize Your Water Usage",
			Description: fmt.Sprintf(
				"Your daily average is %.2f m³. Consider shorter showers and turning off taps when not in use. This could save you up to 20%% on water costs.",
				dailyAvg,
			),
			PotentialSavingsPct: 20,
			Priority:            1,
		})
	}

	if !recent[tip.CategoryLeakPrevention] {
		generated = append(generated, &tip.Tip{
			CustomerID:          customerID,
			Category:            tip.CategoryLeakPrevention,
			Title:               "Regular Leak Checks",
			Description:         "Check your faucets, pipes, and toilet for leaks regularly. A small drip can waste up to 20 liters per day.",
			PotentialSavingsPct: 15,
			Priority:            2,
		})
	}

	if !recent[tip.CategoryBehaviorChange] {
		generated = append(generated, &tip.Tip{
			CustomerID:          customerID,
			Category:            tip.CategoryBehaviorChange,
			Title:               "Smart Water Habits",
			Description:         "Use a bucket to catch water while waiting for it to heat up. Reuse water from washing vegetables for plants. Small changes make a big difference!",
			PotentialSavingsPct: 10,
			Priority:            3,
		})
	}

	for _, t := range generated {
		t.ID = uuid.New().String()
		t.GeneratedAt = now
		if err := s.tips.Create(ctx, t); err != nil {
			s.logger.ErrorWithErr(err, "Failed to save tip")
			return nil, err
		}
	}

	if len(generated) > 0 {
		s.logger.WithFields(map[string]interface{}{
			"customer_id": customerID,
			"tips":        len(generated),
			"daily_avg":   dailyAvg,
		}).Info("Water saving tips generated")
	}

	return generated, nil
}

// dailyAverageConsumption sums each device's consumed volume over the
// window (last cumulative value minus first) and divides by the window
// length in days.
func dailyAverageConsumption(readings []*reading.ConsumptionReading, window time.Duration) float64 {
	first := make(map[string]float64)
	last := make(map[string]float64)

	for _, r := range readings {
		if _, ok := first[r.DeviceID]; !ok {
			first[r.DeviceID] = r.Consumption
		}
		last[r.DeviceID] = r.Consumption
	}

	var total float64
	for deviceID, end := range last {
		if consumed := end - first[deviceID]; consumed > 0 {
			total += consumed
		}
	}

	days := window.Hours() / 24
	if days <= 0 {
		return 0
	}
	return total / days
}

// List retrieves a customer's tips
func (s *TipService) List(ctx context.Context, customerID string) ([]*tip.Tip, error) {
	return s.tips.ListByCustomer(ctx, customerID)
}

// MarkViewed marks a tip as viewed
func (s *TipService) MarkViewed(ctx context.Context, id string) error {
	return s.tips.MarkViewed(ctx, id)
}
