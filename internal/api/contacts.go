package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/alexanderramin/followup/internal/domain"
)

const contactsPath = "/contactos"

// ListContacts returns contacts, filtered by search when it is non-empty.
func (c *Client) ListContacts(ctx context.Context, search string) ([]domain.Contact, error) {
	var q url.Values
	if s := strings.TrimSpace(search); s != "" {
		q = url.Values{"search": {s}}
	}
	var out []domain.Contact
	if err := c.do(ctx, http.MethodGet, contactsPath, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetContact(ctx context.Context, id int64) (*domain.Contact, error) {
	var out domain.Contact
	if err := c.do(ctx, http.MethodGet, itemPath(contactsPath, id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateContact(ctx context.Context, in domain.ContactInput) (*domain.Contact, error) {
	var out domain.Contact
	if err := c.do(ctx, http.MethodPost, contactsPath, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateContact(ctx context.Context, id int64, in domain.ContactInput) (*domain.Contact, error) {
	var out domain.Contact
	if err := c.do(ctx, http.MethodPut, itemPath(contactsPath, id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteContact(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath(contactsPath, id), nil, nil, nil)
}
