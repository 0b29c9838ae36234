package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// LeakService handles leak detection API calls
type LeakService struct {
	client *Client
}

// LeakListOptions contains options for listing leak events
type LeakListOptions struct {
	ListOptions
	DeviceID string
	Severity string
	Resolved *bool
}

// List retrieves a page of the customer's leak events
func (s *LeakService) List(ctx context.Context, opts *LeakListOptions) (*PaginatedLeakEvents, error) {
	query := url.Values{}

	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.DeviceID != "" {
			query.Set("device_id", opts.DeviceID)
		}
		if opts.Severity != "" {
			query.Set("severity", opts.Severity)
		}
		if opts.Resolved != nil {
			query.Set("resolved", strconv.FormatBool(*opts.Resolved))
		}
	}

	path := "/api/v1/leaks"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page PaginatedLeakEvents
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// Get retrieves a single leak event by ID
func (s *LeakService) Get(ctx context.Context, id string) (*LeakEvent, error) {
	path := fmt.Sprintf("/api/v1/leaks/%s", id)

	var e LeakEvent
	if err := s.client.doRequest(ctx, "GET", path, nil, &e); err != nil {
		return nil, err
	}

	return &e, nil
}

// Detect runs leak detection for a device
func (s *LeakService) Detect(ctx context.Context, deviceID string) (*LeakAnalysis, error) {
	body := map[string]string{"device_id": deviceID}

	var analysis LeakAnalysis
	if err := s.client.doRequest(ctx, "POST", "/api/v1/leaks/detect", body, &analysis); err != nil {
		return nil, err
	}

	return &analysis, nil
}

// Resolve marks a leak event as resolved. Requires a technician or admin token.
func (s *LeakService) Resolve(ctx context.Context, id, notes string) error {
	path := fmt.Sprintf("/api/v1/leaks/%s/resolve", id)
	body := map[string]string{"notes": notes}
	return s.client.doRequest(ctx, "POST", path, body, nil)
}
