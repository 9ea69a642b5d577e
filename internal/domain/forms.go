package domain

import (
	"strconv"
	"strings"
	"time"
)

// FormDateTimeLayout is the layout date-time form fields are edited in.
const FormDateTimeLayout = "2006-01-02T15:04"

// ContactForm is the editable state of a contact. All fields are plain
// strings so an empty form needs no special casing.
type ContactForm struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Notes   string
}

// ContactInput is the create/update payload for a contact.
type ContactInput struct {
	Name    string `json:"nombre"`
	Email   string `json:"email"`
	Phone   string `json:"telefono"`
	Company string `json:"empresa"`
	Notes   string `json:"notas"`
}

func NewContactForm() ContactForm { return ContactForm{} }

// ContactFormFrom pre-fills a form from an existing contact.
func ContactFormFrom(c *Contact) ContactForm {
	if c == nil {
		return NewContactForm()
	}
	return ContactForm{
		Name:    c.Name,
		Email:   deref(c.Email),
		Phone:   deref(c.Phone),
		Company: deref(c.Company),
		Notes:   deref(c.Notes),
	}
}

func (f ContactForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return invalid("nombre", "name is required")
	}
	return nil
}

func (f ContactForm) Input() (ContactInput, error) {
	if err := f.Validate(); err != nil {
		return ContactInput{}, err
	}
	return ContactInput{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Phone:   strings.TrimSpace(f.Phone),
		Company: strings.TrimSpace(f.Company),
		Notes:   f.Notes,
	}, nil
}

// TaskForm is the editable state of a task. ContactID and ProjectID hold
// decimal IDs or "" for none; DueAt uses FormDateTimeLayout.
type TaskForm struct {
	Title       string
	Description string
	ContactID   string
	ProjectID   string
	DueAt       string
	Priority    string
	Status      string
	Channel     string
}

type TaskInput struct {
	Title       string     `json:"titulo"`
	Description string     `json:"descripcion"`
	ContactID   *int64     `json:"contacto_id"`
	ProjectID   *int64     `json:"proyecto_id"`
	DueAt       *string    `json:"fecha_vencimiento"`
	Priority    Priority   `json:"prioridad"`
	Status      TaskStatus `json:"estado"`
	Channel     Channel    `json:"canal_notificacion"`
}

// NewTaskForm returns a blank task form with the documented defaults:
// medium priority, pending, Telegram delivery.
func NewTaskForm() TaskForm {
	return TaskForm{
		Priority: string(PriorityMedium),
		Status:   string(StatusPending),
		Channel:  string(ChannelTelegram),
	}
}

func TaskFormFrom(t *Task) TaskForm {
	if t == nil {
		return NewTaskForm()
	}
	f := TaskForm{
		Title:       t.Title,
		Description: deref(t.Description),
		ContactID:   formatID(t.ContactID),
		ProjectID:   formatID(t.ProjectID),
		DueAt:       t.DueAt.InputValue(),
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Channel:     string(t.Channel),
	}
	defaults := NewTaskForm()
	if f.Priority == "" {
		f.Priority = defaults.Priority
	}
	if f.Status == "" {
		f.Status = defaults.Status
	}
	if f.Channel == "" {
		f.Channel = defaults.Channel
	}
	return f
}

func (f TaskForm) Validate() error {
	_, err := f.Input()
	return err
}

func (f TaskForm) Input() (TaskInput, error) {
	if strings.TrimSpace(f.Title) == "" {
		return TaskInput{}, invalid("titulo", "title is required")
	}
	contactID, err := parseOptionalID("contacto_id", f.ContactID)
	if err != nil {
		return TaskInput{}, err
	}
	projectID, err := parseOptionalID("proyecto_id", f.ProjectID)
	if err != nil {
		return TaskInput{}, err
	}
	due, err := parseOptionalDateTime("fecha_vencimiento", f.DueAt)
	if err != nil {
		return TaskInput{}, err
	}
	in := TaskInput{
		Title:       strings.TrimSpace(f.Title),
		Description: f.Description,
		ContactID:   contactID,
		ProjectID:   projectID,
		DueAt:       due,
		Priority:    Priority(f.Priority),
		Status:      TaskStatus(f.Status),
		Channel:     Channel(f.Channel),
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if in.Status == "" {
		in.Status = StatusPending
	}
	if in.Channel == "" {
		in.Channel = ChannelTelegram
	}
	if !in.Priority.Valid() {
		return TaskInput{}, invalid("prioridad", "unknown priority "+f.Priority)
	}
	if !in.Status.Valid() {
		return TaskInput{}, invalid("estado", "unknown status "+f.Status)
	}
	if !in.Channel.Valid() {
		return TaskInput{}, invalid("canal_notificacion", "unknown channel "+f.Channel)
	}
	return in, nil
}

type ProjectForm struct {
	Name        string
	Description string
	ContactID   string
	Status      string
}

type ProjectInput struct {
	Name        string        `json:"nombre"`
	Description string        `json:"descripcion"`
	ContactID   *int64        `json:"contacto_id"`
	Status      ProjectStatus `json:"estado"`
}

func NewProjectForm() ProjectForm {
	return ProjectForm{Status: string(ProjectActive)}
}

func ProjectFormFrom(p *Project) ProjectForm {
	if p == nil {
		return NewProjectForm()
	}
	f := ProjectForm{
		Name:        p.Name,
		Description: deref(p.Description),
		ContactID:   formatID(p.ContactID),
		Status:      string(p.Status),
	}
	if f.Status == "" {
		f.Status = string(ProjectActive)
	}
	return f
}

func (f ProjectForm) Validate() error {
	_, err := f.Input()
	return err
}

func (f ProjectForm) Input() (ProjectInput, error) {
	if strings.TrimSpace(f.Name) == "" {
		return ProjectInput{}, invalid("nombre", "name is required")
	}
	contactID, err := parseOptionalID("contacto_id", f.ContactID)
	if err != nil {
		return ProjectInput{}, err
	}
	status := ProjectStatus(f.Status)
	if status == "" {
		status = ProjectActive
	}
	if !status.Valid() {
		return ProjectInput{}, invalid("estado", "unknown status "+f.Status)
	}
	return ProjectInput{
		Name:        strings.TrimSpace(f.Name),
		Description: f.Description,
		ContactID:   contactID,
		Status:      status,
	}, nil
}

type TemplateForm struct {
	Name      string
	Type      string
	Subject   string
	Body      string
	IsDefault bool
}

type TemplateInput struct {
	Name      string       `json:"nombre"`
	Type      TemplateType `json:"tipo"`
	Subject   *string      `json:"asunto"`
	Body      string       `json:"mensaje"`
	IsDefault bool         `json:"es_default"`
}

func NewTemplateForm() TemplateForm {
	return TemplateForm{Type: string(TemplateTelegram)}
}

func TemplateFormFrom(t *Template) TemplateForm {
	if t == nil {
		return NewTemplateForm()
	}
	f := TemplateForm{
		Name:      t.Name,
		Type:      string(t.Type),
		Subject:   deref(t.Subject),
		Body:      t.Body,
		IsDefault: t.IsDefault,
	}
	if f.Type == "" {
		f.Type = string(TemplateTelegram)
	}
	return f
}

func (f TemplateForm) Validate() error {
	_, err := f.Input()
	return err
}

// Input builds the payload. The subject is only sent for email templates.
func (f TemplateForm) Input() (TemplateInput, error) {
	if strings.TrimSpace(f.Name) == "" {
		return TemplateInput{}, invalid("nombre", "name is required")
	}
	if strings.TrimSpace(f.Body) == "" {
		return TemplateInput{}, invalid("mensaje", "message is required")
	}
	typ := TemplateType(f.Type)
	if typ == "" {
		typ = TemplateTelegram
	}
	if !typ.Valid() {
		return TemplateInput{}, invalid("tipo", "unknown template type "+f.Type)
	}
	in := TemplateInput{
		Name:      strings.TrimSpace(f.Name),
		Type:      typ,
		Body:      f.Body,
		IsDefault: f.IsDefault,
	}
	if typ == TemplateEmail && strings.TrimSpace(f.Subject) != "" {
		subject := strings.TrimSpace(f.Subject)
		in.Subject = &subject
	}
	return in, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func parseOptionalID(field, s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return nil, invalid(field, "must be a positive number")
	}
	return &n, nil
}

// parseOptionalDateTime accepts a date or date-time and returns it in the
// backend's naive ISO layout.
func parseOptionalDateTime(field, s string) (*string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{FormDateTimeLayout, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			out := t.Format("2006-01-02T15:04:05")
			return &out, nil
		}
	}
	return nil, invalid(field, "expected YYYY-MM-DD or YYYY-MM-DDTHH:MM")
}
