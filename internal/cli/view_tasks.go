package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/followup/internal/api"
	"github.com/alexanderramin/followup/internal/cli/formatter"
	"github.com/alexanderramin/followup/internal/domain"
	"github.com/alexanderramin/followup/internal/viewmodel"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// tasksView is the task page: a kanban board, or a filterable list.
type tasksView struct {
	state  *SharedState
	tasks  *viewmodel.Tasks
	board  *viewmodel.Board
	pane   *kanbanPane
	form   entityForm[domain.Task, domain.TaskForm]
	list   bool
	cursor listCursor
}

func newTasksView(state *SharedState) *tasksView {
	tasks := viewmodel.NewTasks(state.App.API).WithContacts(state.App.API)
	v := &tasksView{
		state: state,
		tasks: tasks,
		board: viewmodel.NewBoard(state.App.API, tasks, state.App.logger()),
	}
	v.pane = newKanbanPane(v.board)
	v.form = entityForm[domain.Task, domain.TaskForm]{
		state: state,
		crud:  v.tasks.CRUD,
		build: func(f *domain.TaskForm, err error) *huh.Form {
			return taskForm(f, v.tasks.Contacts(), err)
		},
		noun:    "task",
		onSaved: v.reloadBoard,
	}
	return v
}

func (v *tasksView) reloadBoard(ctx context.Context) {
	if err := v.board.Load(ctx); err != nil {
		v.state.App.logger().Warn("reloading board", "error", err)
	}
}

func (v *tasksView) Init() tea.Cmd {
	return v.pane.load()
}

func (v *tasksView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		return v, v.Init()
	case droppedMsg:
		if msg.board == v.board {
			v.cursor.clamp(len(v.tasks.Items()))
		}
	case loadedMsg:
		// Board loads reload the list as well.
		if msg.src == v.board {
			v.cursor.clamp(len(v.tasks.Items()))
		}
	case tea.KeyMsg:
		if v.list {
			return v, v.listKey(msg)
		}
	}

	if cmd, handled := v.pane.update(msg); handled {
		return v, cmd
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return v, v.commonKey(keyMsg)
	}
	return v, nil
}

func (v *tasksView) listKey(msg tea.KeyMsg) tea.Cmd {
	if v.cursor.move(msg, len(v.tasks.Items())) {
		return nil
	}
	return v.commonKey(msg)
}

// commonKey handles the keys shared by both modes.
func (v *tasksView) commonKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "v":
		v.list = !v.list
		return nil
	case "r":
		return v.Init()
	case "f":
		return v.openFilter()
	case "a":
		v.tasks.OpenCreate()
		return v.form.open(nil)
	}

	t, ok := v.selected()
	if !ok {
		return nil
	}
	switch msg.String() {
	case "e":
		v.tasks.OpenEdit(t)
		return v.form.open(nil)
	case "x":
		id := t.ID
		return confirmDelete(v.state, fmt.Sprintf("Delete task %q?", t.Title), t.Title,
			func(ctx context.Context, confirm viewmodel.Confirm) (bool, error) {
				deleted, err := v.tasks.Delete(ctx, id, confirm)
				if deleted {
					v.reloadBoard(ctx)
				}
				return deleted, err
			})
	case "enter":
		return outputCmd(formatter.FormatTaskShow(&t, v.state.App.now()))
	}
	return nil
}

// openFilter edits the list filter and switches to the list, which is
// where the filter applies.
func (v *tasksView) openFilter() tea.Cmd {
	fields := taskFilterFieldsFrom(v.tasks.Filter())
	return pushView(newWizardView(v.state, "Filter tasks", taskFilterForm(fields), func() tea.Cmd {
		v.tasks.SetFilter(fields.filter())
		v.list = true
		v.cursor.pos = 0
		return func() tea.Msg {
			if err := v.tasks.Load(context.Background()); err != nil {
				return wizardCompleteError(err)
			}
			return wizardCompleteMsg{reloaded: true}
		}
	}))
}

func (v *tasksView) selected() (domain.Task, bool) {
	if !v.list {
		return v.pane.selected()
	}
	items := v.tasks.Items()
	if v.cursor.pos >= len(items) {
		return domain.Task{}, false
	}
	return items[v.cursor.pos], true
}

func (v *tasksView) View() string {
	now := v.state.App.now()
	if !v.list {
		return formatter.Header("Board") + "\n\n" + v.pane.view(v.state.ContentWidth(), now)
	}

	head := formatter.Header("Tasks")
	if f := v.tasks.Filter(); f != (api.TaskFilter{}) {
		head += "\n" + formatter.Dim("filtered")
	}
	status, ok := listStatus(v.tasks.Loaded(), v.tasks.Err())
	if !ok {
		return head + "\n\n" + status
	}

	items := v.tasks.Items()
	if len(items) == 0 {
		return head + "\n\n" + status + formatter.Dim("No tasks match.")
	}
	rows := make([]string, len(items))
	for i, t := range items {
		rows[i] = fmt.Sprintf("%s  %s  %s  %s",
			formatter.Bold(padRight(t.Title, 32)),
			formatter.StatusStyle(t.Status).Render(padRight(t.Status.Label(), 12)),
			formatter.PriorityStyle(t.Priority).Render(padRight(t.Priority.Label(), 8)),
			formatter.DueLabel(t, now),
		)
	}
	return head + "\n\n" + status + renderList(rows, v.cursor.pos, v.state.ContentHeight()-3)
}

func (v *tasksView) handlesEsc() bool { return !v.list && v.pane.carrying() }

func (v *tasksView) ID() ViewID    { return ViewTasks }
func (v *tasksView) Title() string { return "" }
func (v *tasksView) ShortHelp() []key.Binding {
	var hints []key.Binding
	if !v.list {
		hints = v.pane.help()
		if v.pane.carrying() {
			return hints
		}
	}
	hints = append(hints, crudHelp()...)
	return append(hints,
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "board/list")),
	)
}
