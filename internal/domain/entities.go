package domain

// Contact is a CRM contact.
type Contact struct {
	ID         int64   `json:"id"`
	Name       string  `json:"nombre"`
	Email      *string `json:"email"`
	Phone      *string `json:"telefono"`
	Company    *string `json:"empresa"`
	Notes      *string `json:"notas"`
	TelegramID *string `json:"telegram_id,omitempty"`
}

// ContactRef is the denormalized contact summary the backend embeds in
// tasks and projects.
type ContactRef struct {
	Name    string  `json:"nombre"`
	Email   *string `json:"email,omitempty"`
	Company *string `json:"empresa,omitempty"`
}

type Task struct {
	ID          int64       `json:"id"`
	Title       string      `json:"titulo"`
	Description *string     `json:"descripcion"`
	ContactID   *int64      `json:"contacto_id"`
	ProjectID   *int64      `json:"proyecto_id"`
	DueAt       *Timestamp  `json:"fecha_vencimiento"`
	Priority    Priority    `json:"prioridad"`
	Status      TaskStatus  `json:"estado"`
	Channel     Channel     `json:"canal_notificacion"`
	Contact     *ContactRef `json:"contactos,omitempty"`
}

// ContactName returns the embedded contact's name or "".
func (t Task) ContactName() string {
	if t.Contact == nil {
		return ""
	}
	return t.Contact.Name
}

type Project struct {
	ID          int64         `json:"id"`
	Name        string        `json:"nombre"`
	Description *string       `json:"descripcion"`
	ContactID   *int64        `json:"contacto_id"`
	Status      ProjectStatus `json:"estado"`
	Contact     *ContactRef   `json:"contactos,omitempty"`
}

func (p Project) ContactName() string {
	if p.Contact == nil {
		return ""
	}
	return p.Contact.Name
}

// Template is a reusable reminder message with {placeholder} fields.
type Template struct {
	ID        int64        `json:"id"`
	Name      string       `json:"nombre"`
	Type      TemplateType `json:"tipo"`
	Subject   *string      `json:"asunto"`
	Body      string       `json:"mensaje"`
	IsDefault bool         `json:"es_default"`
}

// TemplatePlaceholders are the variables the backend substitutes.
var TemplatePlaceholders = []string{
	"titulo",
	"descripcion",
	"fecha_vencimiento",
	"contacto_nombre",
	"contacto_email",
	"contacto_empresa",
	"prioridad",
	"estado",
	"proyecto_nombre",
}

// TemplatePreview is a template rendered with sample or supplied values.
type TemplatePreview struct {
	Subject *string `json:"asunto,omitempty"`
	Body    string  `json:"mensaje"`
}

// Dashboard is the summary shown on the dashboard page.
type Dashboard struct {
	TotalContacts       int                `json:"total_contactos"`
	TotalPendingTasks   int                `json:"total_tareas_pendientes"`
	TotalTasksToday     int                `json:"total_tareas_hoy"`
	TotalActiveProjects int                `json:"total_proyectos_activos"`
	TasksByStatus       map[TaskStatus]int `json:"tareas_por_estado"`
	Upcoming            []Task             `json:"proximos_vencimientos"`
}

// KanbanSnapshot maps each column to its tasks in backend order. It is
// replaced wholesale on every load.
type KanbanSnapshot map[TaskStatus][]Task

// Tasks returns the column's tasks, or nil for an unknown column.
func (k KanbanSnapshot) Tasks(s TaskStatus) []Task {
	if k == nil {
		return nil
	}
	return k[s]
}

// Place builds a snapshot from a flat list. Tasks whose status is not a
// board column are left off the board.
func Place(tasks []Task) KanbanSnapshot {
	snap := make(KanbanSnapshot, len(KanbanColumns))
	for _, col := range KanbanColumns {
		snap[col] = []Task{}
	}
	for _, t := range tasks {
		if !t.Status.Valid() {
			continue
		}
		snap[t.Status] = append(snap[t.Status], t)
	}
	return snap
}

// User is the profile returned by /usuarios/me.
type User struct {
	TelegramID string  `json:"telegram_id"`
	Name       string  `json:"nombre"`
	Email      *string `json:"email"`
	Timezone   string  `json:"timezone"`
}

// UserUpdate carries the editable profile fields. Nil fields are omitted.
type UserUpdate struct {
	Name     *string `json:"nombre,omitempty"`
	Email    *string `json:"email,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
}
