package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/theshadowable/iws-sh/internal/domain/alert"
	"github.com/theshadowable/iws-sh/internal/domain/leak"
	"github.com/theshadowable/iws-sh/internal/domain/reading"
	"github.com/theshadowable/iws-sh/internal/pkg/logger"
	"github.com/theshadowable/iws-sh/internal/pkg/metrics"
)

const (
	// analysisWindow is the trailing window classified on each run.
	analysisWindow = 24 * time.Hour
	// historyWindow is the trailing window the baseline is derived from,
	// ending where the analysis window begins.
	historyWindow = 30 * 24 * time.Hour
)

// LeakService implements leak.Service
type LeakService struct {
	readings reading.Repository
	events   leak.Repository
	alerts   alert.Service
	logger   *logger.Logger

	// Evaluations for the same device are serialized so that concurrent
	// runs cannot race on the unresolved-event lookup and insert a
	// duplicate incident.
	locks deviceLocks

	now func() time.Time
}

// NewLeakService creates a new leak detection service
func NewLeakService(readings reading.Repository, events leak.Repository, alerts alert.Service, log *logger.Logger) leak.Service {
	return &LeakService{
		readings: readings,
		events:   events,
		alerts:   alerts,
		logger:   log,
		now:      time.Now,
	}
}

// DetectForDevice analyzes the trailing 24 hours of usage for a device,
// classifies it, and records or updates a leak event when a leak is
// detected. A nil analysis means there was not enough data to classify.
func (s *LeakService) DetectForDevice(ctx context.Context, customerID, deviceID string) (*leak.Analysis, error) {
	unlock := s.locks.lock(deviceID)
	defer unlock()

	now := s.now().UTC()
	windowStart := now.Add(-analysisWindow)

	recent, err := s.readings.ListByDevice(ctx, deviceID, windowStart, now)
	if err != nil {
		return nil, err
	}

	historical, err := s.readings.ListByDevice(ctx, deviceID, now.Add(-historyWindow), windowStart)
	if err != nil {
		return nil, err
	}

	stats, ok := ComputeUsageStats(recent, historical)
	if !ok {
		s.logger.WithFields(map[string]interface{}{
			"device_id": deviceID,
			"readings":  len(recent),
		}).Debug("Insufficient data for leak analysis")
		return nil, nil
	}

	analysis := ClassifyUsage(stats)
	metrics.RecordLeakScan(analysis.LeakDetected)

	if !analysis.LeakDetected {
		return &analysis, nil
	}

	if err := s.recordEvent(ctx, customerID, deviceID, now, windowStart, analysis); err != nil {
		return nil, err
	}

	return &analysis, nil
}

// recordEvent applies the at-most-one-unresolved-event-per-device rule:
// an open incident inside the window is updated in place without a new
// alert, otherwise a fresh incident and exactly one alert are created.
func (s *LeakService) recordEvent(ctx context.Context, customerID, deviceID string, now, windowStart time.Time, analysis leak.Analysis) error {
	existing, err := s.events.FindUnresolved(ctx, deviceID, windowStart)
	if err != nil {
		return err
	}

	if existing != nil {
		existing.ConsumptionRate = analysis.AvgRate
		existing.Severity = analysis.Severity
		existing.DurationMinutes = leakDurationHours * 60
		existing.EstimatedLossM3 = analysis.EstimatedLossM3
		existing.EstimatedCostIDR = analysis.EstimatedCostIDR

		if err := s.events.UpdateMetrics(ctx, existing); err != nil {
			return err
		}

		s.logger.WithFields(map[string]interface{}{
			"event_id":  existing.ID,
			"device_id": deviceID,
			"severity":  analysis.Severity,
		}).Info("Leak event updated")
		return nil
	}

	event := &leak.Event{
		ID:               uuid.New().String(),
		DeviceID:         deviceID,
		CustomerID:       customerID,
		DetectedAt:       now,
		ConsumptionRate:  analysis.AvgRate,
		NormalRate:       analysis.Baseline,
		Severity:         analysis.Severity,
		DurationMinutes:  leakDurationHours * 60,
		EstimatedLossM3:  analysis.EstimatedLossM3,
		EstimatedCostIDR: analysis.EstimatedCostIDR,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return err
	}

	alertSeverity := alert.SeverityWarning
	if analysis.Severity == leak.SeveritySevere {
		alertSeverity = alert.SeverityCritical
	}

	err = s.alerts.Emit(ctx, &alert.Alert{
		CustomerID: customerID,
		Type:       alert.TypeLeakDetected,
		Severity:   alertSeverity,
		Title:      "Potential Water Leak Detected",
		Message: fmt.Sprintf(
			"Unusual water consumption detected. Estimated loss: %.2f m³ (IDR %.0f). Please check your water system for leaks.",
			analysis.EstimatedLossM3, analysis.EstimatedCostIDR,
		),
		Metadata: map[string]interface{}{
			"device_id":          deviceID,
			"leak_event_id":      event.ID,
			"severity":           analysis.Severity,
			"estimated_loss_m3":  analysis.EstimatedLossM3,
			"estimated_cost_idr": analysis.EstimatedCostIDR,
		},
	})
	if err != nil {
		return err
	}

	metrics.RecordLeakEvent(analysis.Severity)

	s.logger.WithFields(map[string]interface{}{
		"event_id":    event.ID,
		"device_id":   deviceID,
		"customer_id": customerID,
		"severity":    analysis.Severity,
		"avg_rate":    analysis.AvgRate,
		"baseline":    analysis.Baseline,
	}).Info("Leak event created")

	return nil
}

// GetByID retrieves a leak event by ID
func (s *LeakService) GetByID(ctx context.Context, id string) (*leak.Event, error) {
	return s.events.GetByID(ctx, id)
}

// Resolve marks a leak event resolved after a technician action
func (s *LeakService) Resolve(ctx context.Context, id string, notes string) error {
	if err := s.events.Resolve(ctx, id, notes); err != nil {
		s.logger.ErrorWithErr(err, "Failed to resolve leak event")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"event_id": id,
	}).Info("Leak event resolved")
	return nil
}

// List retrieves leak events with filters and pagination
func (s *LeakService) List(ctx context.Context, filter leak.Filter, limit, offset int) ([]*leak.Event, int64, error) {
	return s.events.ListWithPagination(ctx, filter, limit, offset)
}

// deviceLocks provides one mutex per device id.
type deviceLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (d *deviceLocks) lock(deviceID string) func() {
	d.mu.Lock()
	if d.locks == nil {
		d.locks = make(map[string]*sync.Mutex)
	}
	m, ok := d.locks[deviceID]
	if !ok {
		m = &sync.Mutex{}
		d.locks[deviceID] = m
	}
	d.mu.Unlock()

	m.Lock()
	return m.Unlock
}
