package cli

import (
	"github.com/alexanderramin/followup/internal/cli/formatter"
	"github.com/alexanderramin/followup/internal/viewmodel"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// dashboardView shows the summary tiles above the task board.
type dashboardView struct {
	state *SharedState
	board *viewmodel.Board
	pane  *kanbanPane
}

func newDashboardView(state *SharedState) *dashboardView {
	board := viewmodel.NewDashboard(state.App.API, state.App.logger())
	return &dashboardView{
		state: state,
		board: board,
		pane:  newKanbanPane(board),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.pane.load()
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(refreshViewMsg); ok {
		return v, v.pane.load()
	}
	if cmd, handled := v.pane.update(msg); handled {
		return v, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "r":
			return v, v.pane.load()
		case "enter":
			if t, ok := v.pane.selected(); ok {
				return v, outputCmd(formatter.FormatTaskShow(&t, v.state.App.now()))
			}
		}
	}
	return v, nil
}

func (v *dashboardView) View() string {
	now := v.state.App.now()
	board := v.pane.view(v.state.ContentWidth(), now)
	summary := v.board.Summary()
	if summary == nil {
		return board
	}
	return formatter.FormatDashboardStats(summary) + "\n\n" +
		board + "\n\n" +
		formatter.FormatUpcoming(summary.Upcoming, now)
}

func (v *dashboardView) handlesEsc() bool { return v.pane.carrying() }

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "" }
func (v *dashboardView) ShortHelp() []key.Binding {
	return append(v.pane.help(),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	)
}
