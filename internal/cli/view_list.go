package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/alexanderramin/followup/internal/cli/formatter"
	"github.com/alexanderramin/followup/internal/viewmodel"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// loader is a view-model that fetches from the backend.
type loader interface {
	Load(ctx context.Context) error
}

// loadedMsg reports a finished load of src.
type loadedMsg struct {
	src loader
	err error
}

func loadCmd(src loader) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{src: src, err: src.Load(context.Background())}
	}
}

// loadFailed reports err unless a newer load superseded it.
func loadFailed(err error) tea.Cmd {
	if err == nil || errors.Is(err, viewmodel.ErrStale) {
		return nil
	}
	return outputCmd(formatter.Error(err))
}

// listCursor tracks the selected row of a list page.
type listCursor struct {
	pos int
}

// move handles up/down keys and reports whether the key was used.
func (c *listCursor) move(msg tea.KeyMsg, n int) bool {
	switch msg.String() {
	case "up", "k":
		if c.pos > 0 {
			c.pos--
		}
		return true
	case "down", "j":
		if c.pos < n-1 {
			c.pos++
		}
		return true
	case "home", "g":
		c.pos = 0
		return true
	case "end", "G":
		c.pos = max(n-1, 0)
		return true
	}
	return false
}

func (c *listCursor) clamp(n int) {
	if c.pos >= n {
		c.pos = n - 1
	}
	if c.pos < 0 {
		c.pos = 0
	}
}

// renderList renders rows with a cursor, scrolled so the cursor stays
// inside height lines.
func renderList(rows []string, cursor, height int) string {
	if height < 1 {
		height = 1
	}
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	end := min(start+height, len(rows))

	var b strings.Builder
	for i := start; i < end; i++ {
		if i == cursor {
			b.WriteString(formatter.StyleGreen.Render("▸ ") + rows[i])
		} else {
			b.WriteString("  " + rows[i])
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// listStatus renders the loading and error states every list page shares.
// ok is false when there is nothing else to show.
func listStatus(loaded bool, err error) (string, bool) {
	if err != nil && !loaded {
		return formatter.StyleRed.Render("Error: " + err.Error()), false
	}
	if !loaded {
		return formatter.Dim("Loading..."), false
	}
	if err != nil {
		return formatter.StyleRed.Render("Error: "+err.Error()) + "\n", true
	}
	return "", true
}

// padRight pads plain text to width before styling.
func padRight(s string, width int) string {
	s = formatter.Truncate(s, width)
	if n := len([]rune(s)); n < width {
		s += strings.Repeat(" ", width-n)
	}
	return s
}

func crudHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	}
}
