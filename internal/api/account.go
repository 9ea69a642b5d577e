package api

import (
	"context"
	"net/http"

	"github.com/alexanderramin/followup/internal/domain"
)

// HealthStatus is the liveness probe response.
type HealthStatus struct {
	Status string `json:"status"`
}

func (c *Client) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	var out domain.Dashboard
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the profile of the current identity.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodGet, "/usuarios/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMe(ctx context.Context, in domain.UserUpdate) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodPut, "/usuarios/me", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
