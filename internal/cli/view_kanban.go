package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/followup/internal/cli/formatter"
	"github.com/alexanderramin/followup/internal/domain"
	"github.com/alexanderramin/followup/internal/viewmodel"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// droppedMsg reports a finished drop on board.
type droppedMsg struct {
	board  *viewmodel.Board
	taskID int64
	err    error
}

// kanbanPane is the keyboard version of drag and drop: space picks a
// card up, left/right choose the column, space or enter drops it.
type kanbanPane struct {
	board   *viewmodel.Board
	cur     formatter.KanbanCursor
	payload viewmodel.DragPayload
}

func newKanbanPane(board *viewmodel.Board) *kanbanPane {
	return &kanbanPane{board: board}
}

func (k *kanbanPane) load() tea.Cmd {
	return loadCmd(k.board)
}

func (k *kanbanPane) carrying() bool { return k.cur.Carrying }

func (k *kanbanPane) column(i int) []domain.Task {
	return k.board.Snapshot().Tasks(domain.KanbanColumns[i])
}

// selected returns the task under the cursor.
func (k *kanbanPane) selected() (domain.Task, bool) {
	tasks := k.column(k.cur.Column)
	if k.cur.Row < 0 || k.cur.Row >= len(tasks) {
		return domain.Task{}, false
	}
	return tasks[k.cur.Row], true
}

func (k *kanbanPane) clamp() {
	n := len(k.column(k.cur.Column))
	if k.cur.Row >= n {
		k.cur.Row = n - 1
	}
	if k.cur.Row < 0 {
		k.cur.Row = 0
	}
}

// selectTask moves the cursor to id if it is on the board.
func (k *kanbanPane) selectTask(id int64) {
	snap := k.board.Snapshot()
	for ci, col := range domain.KanbanColumns {
		for ri, t := range snap.Tasks(col) {
			if t.ID == id {
				k.cur.Column, k.cur.Row = ci, ri
				return
			}
		}
	}
	k.clamp()
}

// update handles board messages and keys. handled is false for keys the
// pane does not use.
func (k *kanbanPane) update(msg tea.Msg) (cmd tea.Cmd, handled bool) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.src != k.board {
			return nil, false
		}
		k.clamp()
		return loadFailed(msg.err), true

	case droppedMsg:
		if msg.board != k.board {
			return nil, false
		}
		k.selectTask(msg.taskID)
		return loadFailed(msg.err), true

	case tea.KeyMsg:
		if k.cur.Carrying {
			return k.carryKey(msg), true
		}
		return k.moveKey(msg)
	}
	return nil, false
}

func (k *kanbanPane) moveKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	last := len(domain.KanbanColumns) - 1
	switch msg.String() {
	case "left", "h":
		if k.cur.Column > 0 {
			k.cur.Column--
			k.clamp()
		}
	case "right", "l":
		if k.cur.Column < last {
			k.cur.Column++
			k.clamp()
		}
	case "up", "k":
		if k.cur.Row > 0 {
			k.cur.Row--
		}
	case "down", "j":
		if k.cur.Row < len(k.column(k.cur.Column))-1 {
			k.cur.Row++
		}
	case " ":
		task, ok := k.selected()
		if !ok {
			return nil, true
		}
		k.payload = k.board.DragStart(task, domain.KanbanColumns[k.cur.Column])
		k.cur.Carrying = true
		k.cur.Target = k.cur.Column
	default:
		return nil, false
	}
	return nil, true
}

func (k *kanbanPane) carryKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "left", "h":
		if k.cur.Target > 0 {
			k.cur.Target--
		}
	case "right", "l":
		if k.cur.Target < len(domain.KanbanColumns)-1 {
			k.cur.Target++
		}
	case "esc":
		k.cur.Carrying = false
	case " ", "enter":
		k.cur.Carrying = false
		board, p := k.board, k.payload
		to := domain.KanbanColumns[k.cur.Target]
		if to == p.From {
			return nil
		}
		return func() tea.Msg {
			err := board.Drop(context.Background(), p, to)
			return droppedMsg{board: board, taskID: p.TaskID, err: err}
		}
	}
	return nil
}

func (k *kanbanPane) view(width int, now time.Time) string {
	status, ok := listStatus(k.board.Loaded(), k.board.Err())
	if !ok {
		return status
	}
	return status + formatter.FormatKanban(k.board.Snapshot(), width, &k.cur, now)
}

func (k *kanbanPane) help() []key.Binding {
	if k.cur.Carrying {
		return []key.Binding{
			key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "column")),
			key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "drop")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("left", "right", "up", "down"), key.WithHelp("←↑↓→", "select")),
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pick up")),
	}
}
