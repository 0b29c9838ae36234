package worker

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/theshadowable/iws-sh/internal/pkg/logger"
	"github.com/theshadowable/iws-sh/internal/services"
)

// BalanceChecker runs scheduled low-balance checks for all opted-in customers
type BalanceChecker struct {
	service  *services.BalanceService
	schedule string
	cron     *cron.Cron
	logger   *logger.Logger
}

// NewBalanceChecker creates a new balance checker worker. The schedule is a
// standard five-field cron spec.
func NewBalanceChecker(service *services.BalanceService, schedule string, log *logger.Logger) *BalanceChecker {
	return &BalanceChecker{
		service:  service,
		schedule: schedule,
		cron:     cron.New(),
		logger:   log,
	}
}

// Start registers the schedule and begins running checks until ctx is done.
func (c *BalanceChecker) Start(ctx context.Context) error {
	_, err := c.cron.AddFunc(c.schedule, func() {
		if err := c.service.CheckAll(ctx); err != nil {
			c.logger.ErrorWithErr(err, "Balance check run failed")
		}
	})
	if err != nil {
		return err
	}

	c.logger.With("schedule", c.schedule).Info("Starting balance checker worker")
	c.cron.Start()

	go func() {
		<-ctx.Done()
		stopCtx := c.cron.Stop()
		<-stopCtx.Done()
		c.logger.Info("Balance checker worker stopped")
	}()

	return nil
}
