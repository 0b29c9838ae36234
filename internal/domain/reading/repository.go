package reading

import (
	"context"
	"time"
)

// DeviceRef identifies a metered device and its owning customer.
type DeviceRef struct {
	DeviceID   string `json:"device_id"`
	CustomerID string `json:"customer_id"`
}

// Repository defines the interface for meter reading data access
type Repository interface {
	// ListByDevice retrieves readings for a device within [since, until),
	// ordered by ascending timestamp.
	ListByDevice(ctx context.Context, deviceID string, since, until time.Time) ([]*ConsumptionReading, error)

	// ListByCustomer retrieves readings across all of a customer's devices
	// within [since, until), ordered by ascending timestamp.
	ListByCustomer(ctx context.Context, customerID string, since, until time.Time) ([]*ConsumptionReading, error)

	// ListDevices returns the distinct devices that have readings.
	ListDevices(ctx context.Context) ([]DeviceRef, error)
}
