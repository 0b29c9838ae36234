package testutil

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/theshadowable/iws-sh/internal/domain/alert"
	"github.com/theshadowable/iws-sh/internal/domain/customer"
	"github.com/theshadowable/iws-sh/internal/domain/leak"
	"github.com/theshadowable/iws-sh/internal/domain/preferences"
	"github.com/theshadowable/iws-sh/internal/domain/reading"
	"github.com/theshadowable/iws-sh/internal/domain/tip"
	"github.com/theshadowable/iws-sh/internal/pkg/errors"
)

// MockReadingRepository is a mock implementation of reading.Repository
type MockReadingRepository struct {
	Readings  []*reading.ConsumptionReading
	ListError error
}

func NewMockReadingRepository() *MockReadingRepository {
	return &MockReadingRepository{}
}

// Add appends a reading for a device.
func (m *MockReadingRepository) Add(deviceID, customerID string, ts time.Time, consumption float64) {
	m.Readings = append(m.Readings, &reading.ConsumptionReading{
		ID:          fmt.Sprintf("r-%d", len(m.Readings)+1),
		DeviceID:    deviceID,
		CustomerID:  customerID,
		Timestamp:   ts,
		Consumption: consumption,
	})
}

func (m *MockReadingRepository) ListByDevice(ctx context.Context, deviceID string, since, until time.Time) ([]*reading.ConsumptionReading, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var result []*reading.ConsumptionReading
	for _, r := range m.Readings {
		if r.DeviceID == deviceID && !r.Timestamp.Before(since) && r.Timestamp.Before(until) {
			result = append(result, r)
		}
	}
	sortReadings(result)
	return result, nil
}

func (m *MockReadingRepository) ListByCustomer(ctx context.Context, customerID string, since, until time.Time) ([]*reading.ConsumptionReading, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var result []*reading.ConsumptionReading
	for _, r := range m.Readings {
		if r.CustomerID == customerID && !r.Timestamp.Before(since) && r.Timestamp.Before(until) {
			result = append(result, r)
		}
	}
	sortReadings(result)
	return result, nil
}

func (m *MockReadingRepository) ListDevices(ctx context.Context) ([]reading.DeviceRef, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	seen := make(map[string]bool)
	var result []reading.DeviceRef
	for _, r := range m.Readings {
		if !seen[r.DeviceID] {
			seen[r.DeviceID] = true
			result = append(result, reading.DeviceRef{DeviceID: r.DeviceID, CustomerID: r.CustomerID})
		}
	}
	return result, nil
}

func sortReadings(rs []*reading.ConsumptionReading) {
	sort.Slice(rs, func(i, j int) bool {
		return rs[i].Timestamp.Before(rs[j].Timestamp)
	})
}

// MockLeakRepository is a mock implementation of leak.Repository
type MockLeakRepository struct {
	Events      map[string]*leak.Event
	CreateError error
	GetError    error
	FindError   error
	UpdateError error
}

func NewMockLeakRepository() *MockLeakRepository {
	return &MockLeakRepository{Events: make(map[string]*leak.Event)}
}

func (m *MockLeakRepository) Create(ctx context.Context, event *leak.Event) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Events[event.ID] = event
	return nil
}

func (m *MockLeakRepository) GetByID(ctx context.Context, id string) (*leak.Event, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	e, ok := m.Events[id]
	if !ok {
		return nil, errors.NotFound("Leak event")
	}
	return e, nil
}

func (m *MockLeakRepository) FindUnresolved(ctx context.Context, deviceID string, since time.Time) (*leak.Event, error) {
	if m.FindError != nil {
		return nil, m.FindError
	}
	var latest *leak.Event
	for _, e := range m.Events {
		if e.DeviceID != deviceID || e.Resolved || e.DetectedAt.Before(since) {
			continue
		}
		if latest == nil || e.DetectedAt.After(latest.DetectedAt) {
			latest = e
		}
	}
	return latest, nil
}

func (m *MockLeakRepository) UpdateMetrics(ctx context.Context, event *leak.Event) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Events[event.ID]; !ok {
		return errors.NotFound("Leak event")
	}
	m.Events[event.ID] = event
	return nil
}

func (m *MockLeakRepository) Resolve(ctx context.Context, id string, notes string) error {
	e, ok := m.Events[id]
	if !ok {
		return errors.NotFound("Leak event")
	}
	now := time.Now().UTC()
	e.Resolved = true
	e.ResolvedAt = &now
	e.Notes = notes
	return nil
}

func (m *MockLeakRepository) ListWithPagination(ctx context.Context, filter leak.Filter, limit, offset int) ([]*leak.Event, int64, error) {
	var result []*leak.Event
	for _, e := range m.Events {
		if filter.DeviceID != "" && e.DeviceID != filter.DeviceID {
			continue
		}
		if filter.CustomerID != "" && e.CustomerID != filter.CustomerID {
			continue
		}
		if filter.Severity != "" && e.Severity != filter.Severity {
			continue
		}
		if filter.Resolved != nil && e.Resolved != *filter.Resolved {
			continue
		}
		result = append(result, e)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

// MockAlertRepository is a mock implementation of alert.Repository
type MockAlertRepository struct {
	Alerts      map[string]*alert.Alert
	CreateError error
	GetError    error
	FindError   error
}

func NewMockAlertRepository() *MockAlertRepository {
	return &MockAlertRepository{Alerts: make(map[string]*alert.Alert)}
}

func (m *MockAlertRepository) Create(ctx context.Context, a *alert.Alert) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Alerts[a.ID] = a
	return nil
}

func (m *MockAlertRepository) GetByID(ctx context.Context, id string) (*alert.Alert, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	a, ok := m.Alerts[id]
	if !ok {
		return nil, errors.NotFound("Alert")
	}
	return a, nil
}

func (m *MockAlertRepository) FindRecentByType(ctx context.Context, customerID, alertType string, since time.Time) (*alert.Alert, error) {
	if m.FindError != nil {
		return nil, m.FindError
	}
	var latest *alert.Alert
	for _, a := range m.Alerts {
		if a.CustomerID != customerID || a.Type != alertType || a.CreatedAt.Before(since) {
			continue
		}
		if latest == nil || a.CreatedAt.After(latest.CreatedAt) {
			latest = a
		}
	}
	return latest, nil
}

func (m *MockAlertRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	a, ok := m.Alerts[id]
	if !ok {
		return errors.NotFound("Alert")
	}
	a.Status = status
	return nil
}

func (m *MockAlertRepository) ListWithPagination(ctx context.Context, filter alert.Filter, limit, offset int) ([]*alert.Alert, int64, error) {
	var result []*alert.Alert
	for _, a := range m.Alerts {
		if filter.CustomerID != "" && a.CustomerID != filter.CustomerID {
			continue
		}
		if filter.Type != "" && a.Type != filter.Type {
			continue
		}
		if filter.Severity != "" && a.Severity != filter.Severity {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		result = append(result, a)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *MockAlertRepository) CountByStatus(ctx context.Context, customerID string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, a := range m.Alerts {
		if a.CustomerID == customerID {
			counts[a.Status]++
		}
	}
	return counts, nil
}

// MockTipRepository is a mock implementation of tip.Repository
type MockTipRepository struct {
	Tips        map[string]*tip.Tip
	CreateError error
}

func NewMockTipRepository() *MockTipRepository {
	return &MockTipRepository{Tips: make(map[string]*tip.Tip)}
}

func (m *MockTipRepository) Create(ctx context.Context, t *tip.Tip) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Tips[t.ID] = t
	return nil
}

func (m *MockTipRepository) ListRecentCategories(ctx context.Context, customerID string, since time.Time) (map[string]bool, error) {
	categories := make(map[string]bool)
	for _, t := range m.Tips {
		if t.CustomerID == customerID && !t.GeneratedAt.Before(since) {
			categories[t.Category] = true
		}
	}
	return categories, nil
}

func (m *MockTipRepository) ListByCustomer(ctx context.Context, customerID string) ([]*tip.Tip, error) {
	var result []*tip.Tip
	for _, t := range m.Tips {
		if t.CustomerID == customerID {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].GeneratedAt.After(result[j].GeneratedAt)
	})
	return result, nil
}

func (m *MockTipRepository) MarkViewed(ctx context.Context, id string) error {
	t, ok := m.Tips[id]
	if !ok {
		return errors.NotFound("Tip")
	}
	now := time.Now().UTC()
	t.Viewed = true
	t.ViewedAt = &now
	return nil
}

// MockPreferencesRepository is a mock implementation of preferences.Repository
type MockPreferencesRepository struct {
	Prefs     map[string]*preferences.Preferences
	ListError error
}

func NewMockPreferencesRepository() *MockPreferencesRepository {
	return &MockPreferencesRepository{Prefs: make(map[string]*preferences.Preferences)}
}

func (m *MockPreferencesRepository) GetByCustomer(ctx context.Context, customerID string) (*preferences.Preferences, error) {
	return m.Prefs[customerID], nil
}

func (m *MockPreferencesRepository) Upsert(ctx context.Context, p *preferences.Preferences) error {
	m.Prefs[p.CustomerID] = p
	return nil
}

func (m *MockPreferencesRepository) ListLowBalanceEnabled(ctx context.Context) ([]*preferences.Preferences, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var result []*preferences.Preferences
	for _, p := range m.Prefs {
		if p.LowBalanceEnabled {
			result = append(result, p)
		}
	}
	return result, nil
}

// MockCustomerRepository is a mock implementation of customer.Repository
type MockCustomerRepository struct {
	Customers map[string]*customer.Customer
	GetError  error
}

func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{Customers: make(map[string]*customer.Customer)}
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	c, ok := m.Customers[id]
	if !ok {
		return nil, errors.NotFound("Customer")
	}
	return c, nil
}
