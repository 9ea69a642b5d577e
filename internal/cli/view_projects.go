package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/followup/internal/cli/formatter"
	"github.com/alexanderramin/followup/internal/domain"
	"github.com/alexanderramin/followup/internal/viewmodel"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

type projectsView struct {
	state    *SharedState
	projects *viewmodel.Projects
	form     entityForm[domain.Project, domain.ProjectForm]
	cursor   listCursor
}

func newProjectsView(state *SharedState) *projectsView {
	v := &projectsView{
		state:    state,
		projects: viewmodel.NewProjects(state.App.API).WithContacts(state.App.API),
	}
	v.form = entityForm[domain.Project, domain.ProjectForm]{
		state: state,
		crud:  v.projects.CRUD,
		build: func(f *domain.ProjectForm, err error) *huh.Form {
			return projectForm(f, v.projects.Contacts(), err)
		},
		noun: "project",
	}
	return v
}

func (v *projectsView) Init() tea.Cmd {
	return loadCmd(v.projects)
}

// nextStatus cycles the filter: all, then each status in order.
func nextStatus(s domain.ProjectStatus) domain.ProjectStatus {
	if s == "" {
		return domain.ProjectStatuses[0]
	}
	for i, st := range domain.ProjectStatuses {
		if st == s && i+1 < len(domain.ProjectStatuses) {
			return domain.ProjectStatuses[i+1]
		}
	}
	return ""
}

func (v *projectsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		return v, v.Init()
	case loadedMsg:
		if msg.src != v.projects {
			return v, nil
		}
		v.cursor.clamp(len(v.projects.Items()))
		return v, loadFailed(msg.err)
	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *projectsView) handleKey(msg tea.KeyMsg) tea.Cmd {
	items := v.projects.Items()
	if v.cursor.move(msg, len(items)) {
		return nil
	}

	switch msg.String() {
	case "s":
		v.projects.SetStatus(nextStatus(v.projects.Status()))
		v.cursor.pos = 0
		return loadCmd(v.projects)
	case "r":
		return loadCmd(v.projects)
	case "a":
		v.projects.OpenCreate()
		return v.form.open(nil)
	}

	if v.cursor.pos >= len(items) {
		return nil
	}
	p := items[v.cursor.pos]
	switch msg.String() {
	case "e":
		v.projects.OpenEdit(p)
		return v.form.open(nil)
	case "x":
		id := p.ID
		return confirmDelete(v.state, fmt.Sprintf("Delete project %q?", p.Name), p.Name,
			func(ctx context.Context, confirm viewmodel.Confirm) (bool, error) {
				return v.projects.Delete(ctx, id, confirm)
			})
	case "enter":
		return outputCmd(formatter.FormatProjectShow(&p))
	}
	return nil
}

func (v *projectsView) View() string {
	head := formatter.Header("Projects") + "\n" + formatter.Dim("status: ")
	if s := v.projects.Status(); s != "" {
		head += formatter.ProjectStatusPill(s)
	} else {
		head += formatter.Dim("all")
	}

	status, ok := listStatus(v.projects.Loaded(), v.projects.Err())
	if !ok {
		return head + "\n\n" + status
	}
	items := v.projects.Items()
	if len(items) == 0 {
		return head + "\n\n" + status + formatter.Dim("No projects found.")
	}

	rows := make([]string, len(items))
	for i, p := range items {
		rows[i] = formatter.Bold(padRight(p.Name, 28)) + "  " +
			formatter.ProjectStatusPill(p.Status) + "  " +
			formatter.Dim(p.ContactName())
	}
	return head + "\n\n" + status + renderList(rows, v.cursor.pos, v.state.ContentHeight()-3)
}

func (v *projectsView) ID() ViewID    { return ViewProjects }
func (v *projectsView) Title() string { return "" }
func (v *projectsView) ShortHelp() []key.Binding {
	return append(crudHelp(), key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status filter")))
}
