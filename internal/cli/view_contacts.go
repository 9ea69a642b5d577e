package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/followup/internal/cli/formatter"
	"github.com/alexanderramin/followup/internal/domain"
	"github.com/alexanderramin/followup/internal/viewmodel"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type contactsView struct {
	state     *SharedState
	contacts  *viewmodel.Contacts
	form      entityForm[domain.Contact, domain.ContactForm]
	cursor    listCursor
	search    textinput.Model
	searching bool
}

func newContactsView(state *SharedState) *contactsView {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "name, email or company"
	ti.CharLimit = 100

	v := &contactsView{
		state:    state,
		contacts: viewmodel.NewContacts(state.App.API),
		search:   ti,
	}
	v.form = entityForm[domain.Contact, domain.ContactForm]{
		state: state,
		crud:  v.contacts.CRUD,
		build: contactForm,
		noun:  "contact",
	}
	return v
}

func (v *contactsView) Init() tea.Cmd {
	return loadCmd(v.contacts)
}

func (v *contactsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		return v, v.Init()
	case loadedMsg:
		if msg.src != v.contacts {
			return v, nil
		}
		v.cursor.clamp(len(v.contacts.Items()))
		return v, loadFailed(msg.err)
	case tea.KeyMsg:
		if v.searching {
			return v, v.searchKey(msg)
		}
		return v, v.listKey(msg)
	}

	if v.searching {
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}
	return v, nil
}

// searchKey edits the search term; enter applies it and reloads.
func (v *contactsView) searchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		v.searching = false
		v.search.Blur()
		v.contacts.SetSearch(strings.TrimSpace(v.search.Value()))
		v.cursor.pos = 0
		return loadCmd(v.contacts)
	case tea.KeyEsc:
		v.searching = false
		v.search.Blur()
		v.search.SetValue(v.contacts.Search())
		return nil
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	return cmd
}

func (v *contactsView) listKey(msg tea.KeyMsg) tea.Cmd {
	items := v.contacts.Items()
	if v.cursor.move(msg, len(items)) {
		return nil
	}

	switch msg.String() {
	case "/":
		v.searching = true
		return v.search.Focus()
	case "r":
		return loadCmd(v.contacts)
	case "a":
		v.contacts.OpenCreate()
		return v.form.open(nil)
	}

	if v.cursor.pos >= len(items) {
		return nil
	}
	c := items[v.cursor.pos]
	switch msg.String() {
	case "e":
		v.contacts.OpenEdit(c)
		return v.form.open(nil)
	case "x":
		id := c.ID
		return confirmDelete(v.state, fmt.Sprintf("Delete contact %q?", c.Name), c.Name,
			func(ctx context.Context, confirm viewmodel.Confirm) (bool, error) {
				return v.contacts.Delete(ctx, id, confirm)
			})
	case "enter":
		return outputCmd(formatter.FormatContactShow(&c))
	}
	return nil
}

func (v *contactsView) View() string {
	head := formatter.Header("Contacts")
	if s := v.contacts.Search(); s != "" {
		head += "\n" + formatter.Dim(fmt.Sprintf("matching %q", s))
	}
	if v.searching {
		head += "\n" + v.search.View()
	}

	status, ok := listStatus(v.contacts.Loaded(), v.contacts.Err())
	if !ok {
		return head + "\n\n" + status
	}
	items := v.contacts.Items()
	if len(items) == 0 {
		return head + "\n\n" + status + formatter.Dim("No contacts found.")
	}

	rows := make([]string, len(items))
	for i, c := range items {
		rows[i] = formatter.Bold(padRight(c.Name, 24)) + "  " +
			padRight(formatter.Or(c.Email), 28) + "  " +
			formatter.Dim(formatter.Or(c.Company))
	}
	return head + "\n\n" + status + renderList(rows, v.cursor.pos, v.state.ContentHeight()-4)
}

func (v *contactsView) capturesInput() bool { return v.searching }

func (v *contactsView) ID() ViewID    { return ViewContacts }
func (v *contactsView) Title() string { return "" }
func (v *contactsView) ShortHelp() []key.Binding {
	if v.searching {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return append(crudHelp(), key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")))
}
