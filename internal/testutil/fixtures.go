package testutil

import (
	"sync/atomic"
	"time"

	"github.com/alexanderramin/followup/internal/domain"
)

var fixtureID atomic.Int64

func nextID() int64 { return fixtureID.Add(1) }

// Task options
type TaskOption func(*domain.Task)

func WithStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) { t.Status = s }
}

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) { t.Priority = p }
}

func WithDue(d time.Time) TaskOption {
	return func(t *domain.Task) { t.DueAt = &domain.Timestamp{Time: d} }
}

func WithContact(id int64, name string) TaskOption {
	return func(t *domain.Task) {
		t.ContactID = &id
		t.Contact = &domain.ContactRef{Name: name}
	}
}

func WithTaskID(id int64) TaskOption {
	return func(t *domain.Task) { t.ID = id }
}

// NewTestTask returns a pending, medium-priority Telegram task.
func NewTestTask(title string, opts ...TaskOption) domain.Task {
	t := domain.Task{
		ID:       nextID(),
		Title:    title,
		Priority: domain.PriorityMedium,
		Status:   domain.StatusPending,
		Channel:  domain.ChannelTelegram,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Contact options
type ContactOption func(*domain.Contact)

func WithEmail(email string) ContactOption {
	return func(c *domain.Contact) { c.Email = &email }
}

func WithCompany(company string) ContactOption {
	return func(c *domain.Contact) { c.Company = &company }
}

func NewTestContact(name string, opts ...ContactOption) domain.Contact {
	c := domain.Contact{ID: nextID(), Name: name}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func NewTestProject(name string, status domain.ProjectStatus) domain.Project {
	return domain.Project{ID: nextID(), Name: name, Status: status}
}

func NewTestTemplate(name string, typ domain.TemplateType, body string) domain.Template {
	return domain.Template{ID: nextID(), Name: name, Type: typ, Body: body}
}
