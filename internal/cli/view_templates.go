package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/followup/internal/cli/formatter"
	"github.com/alexanderramin/followup/internal/domain"
	"github.com/alexanderramin/followup/internal/viewmodel"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type templatesView struct {
	state     *SharedState
	templates *viewmodel.Templates
	previewer *viewmodel.Previewer
	form      entityForm[domain.Template, domain.TemplateForm]
	cursor    listCursor
}

func newTemplatesView(state *SharedState) *templatesView {
	v := &templatesView{
		state:     state,
		templates: viewmodel.NewTemplates(state.App.API),
		previewer: viewmodel.NewPreviewer(state.App.API),
	}
	v.form = entityForm[domain.Template, domain.TemplateForm]{
		state: state,
		crud:  v.templates.CRUD,
		build: templateForm,
		noun:  "template",
	}
	return v
}

func (v *templatesView) Init() tea.Cmd {
	return loadCmd(v.templates)
}

// nextType cycles the filter: all, telegram, email.
func nextType(t domain.TemplateType) domain.TemplateType {
	switch t {
	case "":
		return domain.TemplateTelegram
	case domain.TemplateTelegram:
		return domain.TemplateEmail
	default:
		return ""
	}
}

func (v *templatesView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		return v, v.Init()
	case loadedMsg:
		if msg.src != v.templates {
			return v, nil
		}
		v.cursor.clamp(len(v.templates.Items()))
		return v, loadFailed(msg.err)
	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *templatesView) handleKey(msg tea.KeyMsg) tea.Cmd {
	items := v.templates.Items()
	if v.cursor.move(msg, len(items)) {
		return nil
	}

	switch msg.String() {
	case "t":
		v.templates.SetType(nextType(v.templates.Type()))
		v.cursor.pos = 0
		return loadCmd(v.templates)
	case "r":
		return loadCmd(v.templates)
	case "a":
		v.templates.OpenCreate()
		return v.form.open(nil)
	}

	if v.cursor.pos >= len(items) {
		return nil
	}
	t := items[v.cursor.pos]
	width := min(v.state.ContentWidth(), templateRenderWidth)
	switch msg.String() {
	case "e":
		v.templates.OpenEdit(t)
		return v.form.open(nil)
	case "x":
		id := t.ID
		return confirmDelete(v.state, fmt.Sprintf("Delete template %q?", t.Name), t.Name,
			func(ctx context.Context, confirm viewmodel.Confirm) (bool, error) {
				return v.templates.Delete(ctx, id, confirm)
			})
	case "p":
		previewer, id := v.previewer, t.ID
		return tea.Sequence(loadingCmd("Rendering preview..."), func() tea.Msg {
			p, err := previewer.Preview(context.Background(), id, nil)
			if err != nil {
				return cmdOutputMsg{output: formatter.Error(err)}
			}
			return cmdOutputMsg{output: formatter.FormatTemplatePreview(p, width)}
		})
	case "enter":
		return outputCmd(formatter.FormatTemplateShow(&t, width))
	}
	return nil
}

func (v *templatesView) View() string {
	head := formatter.Header("Templates") + "\n" + formatter.Dim("type: ")
	if t := v.templates.Type(); t != "" {
		head += formatter.TypeBadge(t)
	} else {
		head += formatter.Dim("all")
	}

	status, ok := listStatus(v.templates.Loaded(), v.templates.Err())
	if !ok {
		return head + "\n\n" + status
	}
	items := v.templates.Items()
	if len(items) == 0 {
		return head + "\n\n" + status + formatter.Dim("No templates yet.")
	}

	rows := make([]string, len(items))
	for i, t := range items {
		row := formatter.Bold(padRight(t.Name, 28)) + "  " + formatter.TypeBadge(t.Type)
		if t.IsDefault {
			row += "  " + formatter.StyleHeader.Render("default")
		}
		rows[i] = row
	}
	return head + "\n\n" + status + renderList(rows, v.cursor.pos, v.state.ContentHeight()-3)
}

func (v *templatesView) ID() ViewID    { return ViewTemplates }
func (v *templatesView) Title() string { return "" }
func (v *templatesView) ShortHelp() []key.Binding {
	return append(crudHelp(),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "type filter")),
	)
}
