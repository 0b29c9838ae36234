package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// AlertService handles alert-related API calls
type AlertService struct {
	client *Client
}

// AlertListOptions contains options for listing alerts
type AlertListOptions struct {
	ListOptions
	Type     string
	Severity string
	Status   string
}

// List retrieves a page of the customer's alerts
func (s *AlertService) List(ctx context.Context, opts *AlertListOptions) (*PaginatedAlerts, error) {
	query := url.Values{}

	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.Type != "" {
			query.Set("type", opts.Type)
		}
		if opts.Severity != "" {
			query.Set("severity", opts.Severity)
		}
		if opts.Status != "" {
			query.Set("status", opts.Status)
		}
	}

	path := "/api/v1/alerts"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page PaginatedAlerts
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// Get retrieves a single alert by ID
func (s *AlertService) Get(ctx context.Context, id string) (*Alert, error) {
	path := fmt.Sprintf("/api/v1/alerts/%s", id)

	var a Alert
	if err := s.client.doRequest(ctx, "GET", path, nil, &a); err != nil {
		return nil, err
	}

	return &a, nil
}

// UpdateStatus updates an alert's status
func (s *AlertService) UpdateStatus(ctx context.Context, id, status string) error {
	path := fmt.Sprintf("/api/v1/alerts/%s/status", id)
	body := map[string]string{"status": status}
	return s.client.doRequest(ctx, "PATCH", path, body, nil)
}

// MarkRead marks an alert as read
func (s *AlertService) MarkRead(ctx context.Context, id string) error {
	return s.UpdateStatus(ctx, id, "read")
}

// Dismiss dismisses an alert
func (s *AlertService) Dismiss(ctx context.Context, id string) error {
	return s.UpdateStatus(ctx, id, "dismissed")
}

// Summary retrieves the customer's alert counts by status
func (s *AlertService) Summary(ctx context.Context) (map[string]int, error) {
	var summary map[string]int
	if err := s.client.doRequest(ctx, "GET", "/api/v1/alerts/summary", nil, &summary); err != nil {
		return nil, err
	}
	return summary, nil
}
