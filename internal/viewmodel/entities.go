package viewmodel

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/followup/internal/api"
	"github.com/alexanderramin/followup/internal/domain"
)

// ContactLister is the one call the contact picker needs.
type ContactLister interface {
	ListContacts(ctx context.Context, search string) ([]domain.Contact, error)
}

// ContactChoices holds the contacts offered by a form's contact picker.
// They load together with the page's list.
type ContactChoices struct {
	contacts filterBox[[]domain.Contact]
}

// Contacts returns the contacts from the last successful load.
func (c *ContactChoices) Contacts() []domain.Contact {
	return append([]domain.Contact(nil), c.contacts.get()...)
}

// withContacts wraps fetch so that every load also fetches all contacts in
// parallel. Both must succeed; the choices change only then.
func withContacts[T any](choices *ContactChoices, client ContactLister, fetch func(ctx context.Context) ([]T, error)) func(ctx context.Context) ([]T, error) {
	return func(ctx context.Context) ([]T, error) {
		var (
			items    []T
			contacts []domain.Contact
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			items, err = fetch(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			contacts, err = client.ListContacts(gctx, "")
			if err != nil {
				return fmt.Errorf("loading contacts: %w", err)
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		choices.contacts.set(contacts)
		return items, nil
	}
}

type ContactsAPI interface {
	ListContacts(ctx context.Context, search string) ([]domain.Contact, error)
	CreateContact(ctx context.Context, in domain.ContactInput) (*domain.Contact, error)
	UpdateContact(ctx context.Context, id int64, in domain.ContactInput) (*domain.Contact, error)
	DeleteContact(ctx context.Context, id int64) error
}

// Contacts is the contacts page state. The search term is sent with
// every load.
type Contacts struct {
	*CRUD[domain.Contact, domain.ContactForm]
	search filterBox[string]
}

func NewContacts(client ContactsAPI) *Contacts {
	c := &Contacts{}
	c.CRUD = NewCRUD(CRUDOps[domain.Contact, domain.ContactForm]{
		List: func(ctx context.Context) ([]domain.Contact, error) {
			return client.ListContacts(ctx, c.search.get())
		},
		Create: func(ctx context.Context, f domain.ContactForm) error {
			in, err := f.Input()
			if err != nil {
				return err
			}
			_, err = client.CreateContact(ctx, in)
			return err
		},
		Update: func(ctx context.Context, id int64, f domain.ContactForm) error {
			in, err := f.Input()
			if err != nil {
				return err
			}
			_, err = client.UpdateContact(ctx, id, in)
			return err
		},
		Delete:   client.DeleteContact,
		ID:       func(c domain.Contact) int64 { return c.ID },
		NewForm:  domain.NewContactForm,
		FormFrom: domain.ContactFormFrom,
		Validate: domain.ContactForm.Validate,
	})
	return c
}

func (c *Contacts) SetSearch(s string) { c.search.set(s) }
func (c *Contacts) Search() string     { return c.search.get() }

type TasksAPI interface {
	ListTasks(ctx context.Context, filter api.TaskFilter) ([]domain.Task, error)
	CreateTask(ctx context.Context, in domain.TaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, id int64, in domain.TaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// Tasks is the task list state with its filter.
type Tasks struct {
	*CRUD[domain.Task, domain.TaskForm]
	ContactChoices
	filter filterBox[api.TaskFilter]
}

func NewTasks(client TasksAPI) *Tasks {
	t := &Tasks{}
	t.CRUD = NewCRUD(CRUDOps[domain.Task, domain.TaskForm]{
		List: func(ctx context.Context) ([]domain.Task, error) {
			return client.ListTasks(ctx, t.filter.get())
		},
		Create: func(ctx context.Context, f domain.TaskForm) error {
			in, err := f.Input()
			if err != nil {
				return err
			}
			_, err = client.CreateTask(ctx, in)
			return err
		},
		Update: func(ctx context.Context, id int64, f domain.TaskForm) error {
			in, err := f.Input()
			if err != nil {
				return err
			}
			_, err = client.UpdateTask(ctx, id, in)
			return err
		},
		Delete:   client.DeleteTask,
		ID:       func(t domain.Task) int64 { return t.ID },
		NewForm:  domain.NewTaskForm,
		FormFrom: domain.TaskFormFrom,
		Validate: domain.TaskForm.Validate,
	})
	return t
}

// WithContacts makes every load also fetch the contact picker choices.
// Call it before the first load.
func (t *Tasks) WithContacts(client ContactLister) *Tasks {
	t.fetch = withContacts(&t.ContactChoices, client, t.fetch)
	return t
}

func (t *Tasks) SetFilter(f api.TaskFilter) { t.filter.set(f) }
func (t *Tasks) Filter() api.TaskFilter     { return t.filter.get() }

type ProjectsAPI interface {
	ListProjects(ctx context.Context, status domain.ProjectStatus) ([]domain.Project, error)
	CreateProject(ctx context.Context, in domain.ProjectInput) (*domain.Project, error)
	UpdateProject(ctx context.Context, id int64, in domain.ProjectInput) (*domain.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

type Projects struct {
	*CRUD[domain.Project, domain.ProjectForm]
	ContactChoices
	status filterBox[domain.ProjectStatus]
}

func NewProjects(client ProjectsAPI) *Projects {
	p := &Projects{}
	p.CRUD = NewCRUD(CRUDOps[domain.Project, domain.ProjectForm]{
		List: func(ctx context.Context) ([]domain.Project, error) {
			return client.ListProjects(ctx, p.status.get())
		},
		Create: func(ctx context.Context, f domain.ProjectForm) error {
			in, err := f.Input()
			if err != nil {
				return err
			}
			_, err = client.CreateProject(ctx, in)
			return err
		},
		Update: func(ctx context.Context, id int64, f domain.ProjectForm) error {
			in, err := f.Input()
			if err != nil {
				return err
			}
			_, err = client.UpdateProject(ctx, id, in)
			return err
		},
		Delete:   client.DeleteProject,
		ID:       func(p domain.Project) int64 { return p.ID },
		NewForm:  domain.NewProjectForm,
		FormFrom: domain.ProjectFormFrom,
		Validate: domain.ProjectForm.Validate,
	})
	return p
}

// WithContacts makes every load also fetch the contact picker choices.
// Call it before the first load.
func (p *Projects) WithContacts(client ContactLister) *Projects {
	p.fetch = withContacts(&p.ContactChoices, client, p.fetch)
	return p
}

func (p *Projects) SetStatus(s domain.ProjectStatus) { p.status.set(s) }
func (p *Projects) Status() domain.ProjectStatus     { return p.status.get() }

type TemplatesAPI interface {
	ListTemplates(ctx context.Context, typ domain.TemplateType) ([]domain.Template, error)
	CreateTemplate(ctx context.Context, in domain.TemplateInput) (*domain.Template, error)
	UpdateTemplate(ctx context.Context, id int64, in domain.TemplateInput) (*domain.Template, error)
	DeleteTemplate(ctx context.Context, id int64) error
}

type Templates struct {
	*CRUD[domain.Template, domain.TemplateForm]
	typ filterBox[domain.TemplateType]
}

func NewTemplates(client TemplatesAPI) *Templates {
	t := &Templates{}
	t.CRUD = NewCRUD(CRUDOps[domain.Template, domain.TemplateForm]{
		List: func(ctx context.Context) ([]domain.Template, error) {
			return client.ListTemplates(ctx, t.typ.get())
		},
		Create: func(ctx context.Context, f domain.TemplateForm) error {
			in, err := f.Input()
			if err != nil {
				return err
			}
			_, err = client.CreateTemplate(ctx, in)
			return err
		},
		Update: func(ctx context.Context, id int64, f domain.TemplateForm) error {
			in, err := f.Input()
			if err != nil {
				return err
			}
			_, err = client.UpdateTemplate(ctx, id, in)
			return err
		},
		Delete:   client.DeleteTemplate,
		ID:       func(t domain.Template) int64 { return t.ID },
		NewForm:  domain.NewTemplateForm,
		FormFrom: domain.TemplateFormFrom,
		Validate: domain.TemplateForm.Validate,
	})
	return t
}

func (t *Templates) SetType(typ domain.TemplateType) { t.typ.set(typ) }
func (t *Templates) Type() domain.TemplateType       { return t.typ.get() }

type PreviewAPI interface {
	PreviewTemplate(ctx context.Context, id int64, vars map[string]string) (*domain.TemplatePreview, error)
}

// Previewer renders templates. It holds no list state, so previewing never
// reloads or alters the template list.
type Previewer struct {
	client PreviewAPI
}

func NewPreviewer(client PreviewAPI) *Previewer {
	return &Previewer{client: client}
}

func (p *Previewer) Preview(ctx context.Context, id int64, vars map[string]string) (*domain.TemplatePreview, error) {
	return p.client.PreviewTemplate(ctx, id, vars)
}
