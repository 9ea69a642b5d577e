package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/alexanderramin/followup/internal/domain"
)

const projectsPath = "/proyectos"

// ListProjects returns projects, filtered by status when it is non-empty.
func (c *Client) ListProjects(ctx context.Context, status domain.ProjectStatus) ([]domain.Project, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"estado": {string(status)}}
	}
	var out []domain.Project
	if err := c.do(ctx, http.MethodGet, projectsPath, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	var out domain.Project
	if err := c.do(ctx, http.MethodGet, itemPath(projectsPath, id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProject(ctx context.Context, in domain.ProjectInput) (*domain.Project, error) {
	var out domain.Project
	if err := c.do(ctx, http.MethodPost, projectsPath, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProject(ctx context.Context, id int64, in domain.ProjectInput) (*domain.Project, error) {
	var out domain.Project
	if err := c.do(ctx, http.MethodPut, itemPath(projectsPath, id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath(projectsPath, id), nil, nil, nil)
}
