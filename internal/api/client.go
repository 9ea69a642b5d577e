// Package api is the HTTP client for the follow-up CRM backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Header names sent with every request.
const (
	HeaderIdentity  = "X-Telegram-ID"
	HeaderRequestID = "X-Request-ID"
)

// IdentitySource supplies the identity sent with each request.
// *session.Session satisfies it.
type IdentitySource interface {
	Identity() string
}

// Config configures a Client.
type Config struct {
	// BaseURL includes the /api prefix, e.g. http://localhost:8000/api.
	BaseURL string
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
}

// Client issues backend requests on behalf of the current identity.
// It never retries.
type Client struct {
	cfg      Config
	http     *http.Client
	identity IdentitySource
	observer Observer
	newID    func() string
}

// NewClient creates a Client. A nil observer discards events.
func NewClient(cfg Config, identity IdentitySource, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		cfg: Config{BaseURL: strings.TrimRight(cfg.BaseURL, "/"), Timeout: cfg.Timeout},
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		identity: identity,
		observer: observer,
		newID:    uuid.NewString,
	}
}

// WithObserver returns a copy of c that reports to observer. The copy
// shares the transport and identity source.
func (c *Client) WithObserver(observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	cp := *c
	cp.observer = observer
	return &cp
}

// BaseURL returns the configured API base.
func (c *Client) BaseURL() string { return c.cfg.BaseURL }

// do sends one request. body is JSON-encoded when non-nil; out receives
// the decoded response when non-nil and the response has a body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	start := time.Now()
	requestID := c.newID()

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	status, err := c.send(ctx, method, path, query, body, out, requestID)
	c.observer.OnCallComplete(ctx, CallEvent{
		Method:    method,
		Path:      path,
		Status:    status,
		Duration:  time.Since(start),
		RequestID: requestID,
		Err:       err,
	})
	return err
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body, out any, requestID string) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	target := c.cfg.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if c.identity != nil {
		req.Header.Set(HeaderIdentity, c.identity.Identity())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return 0, ErrTimeout
		}
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: reading response: %v", ErrConnection, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &Error{
			Status:    resp.StatusCode,
			Message:   errorMessage(resp.StatusCode, respBody),
			Method:    method,
			Path:      path,
			RequestID: requestID,
		}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return resp.StatusCode, nil
}

// errorMessage extracts the backend's reason from an error body. The
// backend uses {"detail": "..."}; validation failures carry a list of
// {"msg": "..."} under detail instead.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return genericMessage(status)
	}
	if len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil && s != "" {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(payload.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if it.Msg != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}
	if payload.Message != "" {
		return payload.Message
	}
	return genericMessage(status)
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrConnection) {
		return true
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	var apiErr *Error
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case isConnectionError(err):
		return "UNAVAILABLE"
	case errors.As(err, &apiErr):
		return fmt.Sprintf("HTTP_%d", apiErr.Status)
	default:
		return "UNKNOWN"
	}
}

func itemPath(collection string, id int64) string {
	return fmt.Sprintf("%s/%d", collection, id)
}
