package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/alexanderramin/followup/internal/domain"
)

const templatesPath = "/plantillas"

// ListTemplates returns templates, filtered by type when it is non-empty.
func (c *Client) ListTemplates(ctx context.Context, typ domain.TemplateType) ([]domain.Template, error) {
	var q url.Values
	if typ != "" {
		q = url.Values{"tipo": {string(typ)}}
	}
	var out []domain.Template
	if err := c.do(ctx, http.MethodGet, templatesPath, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTemplate(ctx context.Context, id int64) (*domain.Template, error) {
	var out domain.Template
	if err := c.do(ctx, http.MethodGet, itemPath(templatesPath, id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTemplate(ctx context.Context, in domain.TemplateInput) (*domain.Template, error) {
	var out domain.Template
	if err := c.do(ctx, http.MethodPost, templatesPath, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTemplate(ctx context.Context, id int64, in domain.TemplateInput) (*domain.Template, error) {
	var out domain.Template
	if err := c.do(ctx, http.MethodPut, itemPath(templatesPath, id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTemplate(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath(templatesPath, id), nil, nil, nil)
}

// PreviewTemplate renders template id with vars. With no vars the backend
// fills in sample values.
func (c *Client) PreviewTemplate(ctx context.Context, id int64, vars map[string]string) (*domain.TemplatePreview, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	var out domain.TemplatePreview
	if err := c.do(ctx, http.MethodPost, itemPath(templatesPath, id)+"/preview", nil, vars, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
