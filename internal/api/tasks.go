package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/alexanderramin/followup/internal/domain"
)

const tasksPath = "/tareas"

// TaskFilter narrows ListTasks. Zero-valued fields are not sent.
type TaskFilter struct {
	Status    domain.TaskStatus
	Priority  domain.Priority
	ContactID int64
	ProjectID int64
	// From and To bound the due date, as YYYY-MM-DD.
	From string
	To   string
}

// Query encodes the non-empty filter fields.
func (f TaskFilter) Query() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("estado", string(f.Status))
	set("prioridad", string(f.Priority))
	if f.ContactID > 0 {
		q.Set("contacto_id", strconv.FormatInt(f.ContactID, 10))
	}
	if f.ProjectID > 0 {
		q.Set("proyecto_id", strconv.FormatInt(f.ProjectID, 10))
	}
	set("fecha_desde", f.From)
	set("fecha_hasta", f.To)
	return q
}

// IsZero reports whether the filter selects everything.
func (f TaskFilter) IsZero() bool {
	return f == TaskFilter{}
}

func (c *Client) ListTasks(ctx context.Context, filter TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	if err := c.do(ctx, http.MethodGet, tasksPath, filter.Query(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TaskKanban returns the board snapshot grouped by status.
func (c *Client) TaskKanban(ctx context.Context) (domain.KanbanSnapshot, error) {
	var out domain.KanbanSnapshot
	if err := c.do(ctx, http.MethodGet, tasksPath+"/kanban", nil, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = domain.KanbanSnapshot{}
	}
	return out, nil
}

// TasksToday returns tasks due today.
func (c *Client) TasksToday(ctx context.Context) ([]domain.Task, error) {
	var out []domain.Task
	if err := c.do(ctx, http.MethodGet, tasksPath+"/hoy", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	var out domain.Task
	if err := c.do(ctx, http.MethodGet, itemPath(tasksPath, id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTask(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	var out domain.Task
	if err := c.do(ctx, http.MethodPost, tasksPath, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTask(ctx context.Context, id int64, in domain.TaskInput) (*domain.Task, error) {
	var out domain.Task
	if err := c.do(ctx, http.MethodPut, itemPath(tasksPath, id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath(tasksPath, id), nil, nil, nil)
}

// ChangeTaskStatus moves a task to status. The status travels as a query
// parameter, not in the body.
func (c *Client) ChangeTaskStatus(ctx context.Context, id int64, status domain.TaskStatus) error {
	q := url.Values{"estado": {string(status)}}
	return c.do(ctx, http.MethodPatch, itemPath(tasksPath, id)+"/estado", q, nil, nil)
}
