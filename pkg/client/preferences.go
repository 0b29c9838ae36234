package client

import (
	"context"
	"net/http"
)

// PreferencesService handles alert preference API operations
type PreferencesService struct {
	client *Client
}

// Get retrieves the authenticated customer's alert preferences
func (s *PreferencesService) Get(ctx context.Context) (*Preferences, error) {
	var p Preferences
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/preferences", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update replaces the authenticated customer's alert preferences
func (s *PreferencesService) Update(ctx context.Context, p Preferences) (*Preferences, error) {
	var updated Preferences
	if err := s.client.doRequest(ctx, http.MethodPut, "/api/v1/preferences", p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
