package services

import (
	"context"
	"fmt"
	"time"

	"github.com/theshadowable/iws-sh/internal/domain/alert"
	"github.com/theshadowable/iws-sh/internal/domain/customer"
	"github.com/theshadowable/iws-sh/internal/domain/preferences"
	"github.com/theshadowable/iws-sh/internal/pkg/logger"
)

// BalanceService evaluates prepaid balances against per-customer alert
// thresholds.
type BalanceService struct {
	customers customer.Repository
	prefs     preferences.Repository
	alertRepo alert.Repository
	alerts    alert.Service
	logger    *logger.Logger

	now func() time.Time
}

// NewBalanceService creates a new balance evaluation service
func NewBalanceService(
	customers customer.Repository,
	prefs preferences.Repository,
	alertRepo alert.Repository,
	alerts alert.Service,
	log *logger.Logger,
) *BalanceService {
	return &BalanceService{
		customers: customers,
		prefs:     prefs,
		alertRepo: alertRepo,
		alerts:    alerts,
		logger:    log,
		now:       time.Now,
	}
}

// Evaluate checks a balance against a threshold and emits a low balance
// alert when it triggers. At most one low balance alert is emitted per
// customer per calendar UTC day. The returned alert is nil when
// nothing was emitted.
func (s *BalanceService) Evaluate(ctx context.Context, customerID string, balance, threshold float64) (*alert.Alert, error) {
	if balance <= 0 || balance >= threshold {
		return nil, nil
	}

	startOfDay := s.now().UTC().Truncate(24 * time.Hour)
	existing, err := s.alertRepo.FindRecentByType(ctx, customerID, alert.TypeLowBalance, startOfDay)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, nil
	}

	severity := alert.SeverityCritical
	if balance > threshold*0.5 {
		severity = alert.SeverityWarning
	}

	a := &alert.Alert{
		CustomerID: customerID,
		Type:       alert.TypeLowBalance,
		Severity:   severity,
		Title:      "Low Balance Alert",
		Message: fmt.Sprintf(
			"Your balance is running low. Current balance: IDR %.0f. Please top up to avoid service interruption.",
			balance,
		),
		Metadata: map[string]interface{}{
			"balance":   balance,
			"threshold": threshold,
		},
	}

	if err := s.alerts.Emit(ctx, a); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"customer_id": customerID,
		"balance":     balance,
		"threshold":   threshold,
		"severity":    severity,
	}).Info("Low balance alert emitted")

	return a, nil
}

// CheckAll evaluates every customer with low balance alerts enabled,
// using each customer's configured threshold.
func (s *BalanceService) CheckAll(ctx context.Context) error {
	prefsList, err := s.prefs.ListLowBalanceEnabled(ctx)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to list alert preferences")
		return err
	}

	for _, pref := range prefsList {
		c, err := s.customers.GetByID(ctx, pref.CustomerID)
		if err != nil {
			s.logger.WithFields(map[string]interface{}{
				"customer_id": pref.CustomerID,
			}).ErrorWithErr(err, "Failed to load customer for balance check")
			continue
		}

		if _, err := s.Evaluate(ctx, c.ID, c.Balance, pref.LowBalanceThreshold); err != nil {
			s.logger.WithFields(map[string]interface{}{
				"customer_id": c.ID,
			}).ErrorWithErr(err, "Failed to evaluate balance")
		}
	}

	return nil
}
