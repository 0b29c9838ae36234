package worker

import (
	"context"
	"time"

	"github.com/theshadowable/iws-sh/internal/domain/leak"
	"github.com/theshadowable/iws-sh/internal/domain/reading"
	"github.com/theshadowable/iws-sh/internal/pkg/logger"
)

// LeakScanner handles periodic leak detection sweeps across all devices
type LeakScanner struct {
	leakService leak.Service
	readings    reading.Repository
	interval    time.Duration
	logger      *logger.Logger
}

// NewLeakScanner creates a new leak scanner worker
func NewLeakScanner(
	leakService leak.Service,
	readings reading.Repository,
	interval time.Duration,
	log *logger.Logger,
) *LeakScanner {
	return &LeakScanner{
		leakService: leakService,
		readings:    readings,
		interval:    interval,
		logger:      log,
	}
}

// Start begins the periodic leak scanning process
func (s *LeakScanner) Start(ctx context.Context) {
	s.logger.Info("Starting leak scanner worker")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run initial scan
	s.scanAllDevices(ctx)

	for {
		select {
		case <-ticker.C:
			s.scanAllDevices(ctx)
		case <-ctx.Done():
			s.logger.Info("Leak scanner worker stopped")
			return
		}
	}
}

func (s *LeakScanner) scanAllDevices(ctx context.Context) {
	devices, err := s.readings.ListDevices(ctx)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to list devices for leak scan")
		return
	}

	s.logger.WithFields(map[string]interface{}{
		"device_count": len(devices),
	}).Debug("Running leak detection sweep")

	var detected int
	for _, d := range devices {
		analysis, err := s.leakService.DetectForDevice(ctx, d.CustomerID, d.DeviceID)
		if err != nil {
			s.logger.WithFields(map[string]interface{}{
				"device_id": d.DeviceID,
			}).ErrorWithErr(err, "Leak detection failed for device")
			continue
		}
		if analysis != nil && analysis.LeakDetected {
			detected++
		}
	}

	if detected > 0 {
		s.logger.WithFields(map[string]interface{}{
			"devices_scanned": len(devices),
			"leaks_detected":  detected,
		}).Info("Leak detection sweep completed")
	}
}
