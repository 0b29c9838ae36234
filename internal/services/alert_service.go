package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/theshadowable/iws-sh/internal/domain/alert"
	"github.com/theshadowable/iws-sh/internal/pkg/logger"
	"github.com/theshadowable/iws-sh/internal/pkg/metrics"
)

// AlertService implements alert.Service
type AlertService struct {
	repo   alert.Repository
	logger *logger.Logger

	now func() time.Time
}

// NewAlertService creates a new alert service
func NewAlertService(repo alert.Repository, log *logger.Logger) alert.Service {
	return &AlertService{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

// Emit creates a new alert notification for a customer
func (s *AlertService) Emit(ctx context.Context, a *alert.Alert) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Status == "" {
		a.Status = alert.StatusUnread
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now().UTC()
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create alert")
		return err
	}

	metrics.RecordAlertEmitted(a.Type, a.Severity)

	s.logger.WithFields(map[string]interface{}{
		"alert_id":    a.ID,
		"customer_id": a.CustomerID,
		"alert_type":  a.Type,
		"severity":    a.Severity,
	}).Info("Alert created")

	return nil
}

// GetByID retrieves an alert by ID
func (s *AlertService) GetByID(ctx context.Context, id string) (*alert.Alert, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves alerts with filters and pagination
func (s *AlertService) List(ctx context.Context, filter alert.Filter, limit, offset int) ([]*alert.Alert, int64, error) {
	return s.repo.ListWithPagination(ctx, filter, limit, offset)
}

// UpdateStatus updates alert status
func (s *AlertService) UpdateStatus(ctx context.Context, id string, status string) error {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update alert status")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"alert_id": id,
		"status":   status,
	}).Info("Alert status updated")

	return nil
}

// GetSummary gets a customer's alert summary by status
func (s *AlertService) GetSummary(ctx context.Context, customerID string) (map[string]int, error) {
	return s.repo.CountByStatus(ctx, customerID)
}
