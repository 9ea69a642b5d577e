package domain

// TaskStatus is a task's follow-up state. The four values double as the
// kanban board columns.
type TaskStatus string

const (
	StatusPending          TaskStatus = "pendiente"
	StatusFollowingUp      TaskStatus = "en_seguimiento"
	StatusAwaitingResponse TaskStatus = "esperando_respuesta"
	StatusCompleted        TaskStatus = "completado"
)

// KanbanColumns lists the board columns in display order.
var KanbanColumns = []TaskStatus{
	StatusPending,
	StatusFollowingUp,
	StatusAwaitingResponse,
	StatusCompleted,
}

// Valid reports whether s is one of the four kanban columns.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusFollowingUp, StatusAwaitingResponse, StatusCompleted:
		return true
	}
	return false
}

// Label returns the column heading for s.
func (s TaskStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusFollowingUp:
		return "Following up"
	case StatusAwaitingResponse:
		return "Awaiting response"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

type Priority string

const (
	PriorityLow    Priority = "baja"
	PriorityMedium Priority = "media"
	PriorityHigh   Priority = "alta"
	PriorityUrgent Priority = "urgente"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	default:
		return string(p)
	}
}

// Channel is where a task's reminders are delivered.
type Channel string

const (
	ChannelTelegram Channel = "telegram"
	ChannelEmail    Channel = "email"
	ChannelBoth     Channel = "ambos"
)

var Channels = []Channel{ChannelTelegram, ChannelEmail, ChannelBoth}

func (c Channel) Valid() bool {
	switch c {
	case ChannelTelegram, ChannelEmail, ChannelBoth:
		return true
	}
	return false
}

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "activo"
	ProjectPaused    ProjectStatus = "pausado"
	ProjectCompleted ProjectStatus = "completado"
	ProjectCancelled ProjectStatus = "cancelado"
)

var ProjectStatuses = []ProjectStatus{ProjectActive, ProjectPaused, ProjectCompleted, ProjectCancelled}

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectPaused, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

func (s ProjectStatus) Label() string {
	switch s {
	case ProjectActive:
		return "Active"
	case ProjectPaused:
		return "Paused"
	case ProjectCompleted:
		return "Completed"
	case ProjectCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// TemplateType is the delivery channel a template is written for.
type TemplateType string

const (
	TemplateTelegram TemplateType = "telegram"
	TemplateEmail    TemplateType = "email"
)

func (t TemplateType) Valid() bool {
	return t == TemplateTelegram || t == TemplateEmail
}
