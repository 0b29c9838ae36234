package client

import (
	"context"
	"fmt"
)

// TipService handles water saving tip API calls
type TipService struct {
	client *Client
}

// List retrieves the customer's tips
func (s *TipService) List(ctx context.Context) ([]Tip, error) {
	var tips []Tip
	if err := s.client.doRequest(ctx, "GET", "/api/v1/tips", nil, &tips); err != nil {
		return nil, err
	}
	return tips, nil
}

// Generate runs tip generation against the customer's recent usage and
// returns any newly created tips.
func (s *TipService) Generate(ctx context.Context) ([]Tip, error) {
	var tips []Tip
	if err := s.client.doRequest(ctx, "POST", "/api/v1/tips/generate", nil, &tips); err != nil {
		return nil, err
	}
	return tips, nil
}

// MarkViewed marks a tip as viewed
func (s *TipService) MarkViewed(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/v1/tips/%s/viewed", id)
	return s.client.doRequest(ctx, "POST", path, nil, nil)
}
