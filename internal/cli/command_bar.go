package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/followup/internal/cli/formatter"
	"github.com/alexanderramin/followup/internal/router"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// commandBar is the persistent text input at the bottom of the TUI.
// It handles command entry, autocomplete suggestions, and history navigation.
type commandBar struct {
	input   textinput.Model
	state   *SharedState
	focused bool

	history    []string
	historyIdx int
}

func newCommandBar(state *SharedState) commandBar {
	ti := textinput.New()
	ti.Prompt = ""
	ti.ShowSuggestions = true
	ti.CharLimit = 200
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	return commandBar{input: ti, state: state}
}

func (c *commandBar) Focus() {
	c.focused = true
	c.input.Focus()
}

func (c *commandBar) Blur() {
	c.focused = false
	c.input.Blur()
}

func (c *commandBar) Focused() bool {
	return c.focused
}

// SetWidth updates the input width for terminal resizing.
func (c *commandBar) SetWidth(w int) {
	c.input.Width = w - len("followup > ") - 1
}

// Update handles key messages when the command bar is focused.
func (c *commandBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(c.input.Value())
		c.input.Reset()
		c.input.SetSuggestions(nil)
		c.Blur()
		if input == "" {
			return nil
		}
		c.addHistory(input)
		return c.executeCommand(input)

	case tea.KeyUp:
		c.historyUp()
		return nil

	case tea.KeyDown:
		c.historyDown()
		return nil

	case tea.KeyEsc:
		c.Blur()
		return nil

	default:
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		c.updateSuggestions()
		return cmd
	}
}

// UpdateNonKey handles non-key messages (e.g., cursor blink).
func (c *commandBar) UpdateNonKey(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *commandBar) View() string {
	prompt := formatter.StylePurple.Render("followup") + " " + formatter.Dim("❯") + " "
	if !c.focused {
		return prompt + formatter.Dim("press : to type a command")
	}
	return prompt + c.input.View()
}

func (c *commandBar) addHistory(line string) {
	c.history = append(c.history, line)
	c.historyIdx = len(c.history)
}

func (c *commandBar) historyUp() {
	if c.historyIdx > 0 {
		c.historyIdx--
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	}
}

func (c *commandBar) historyDown() {
	if c.historyIdx < len(c.history)-1 {
		c.historyIdx++
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	} else {
		c.historyIdx = len(c.history)
		c.input.SetValue("")
	}
}

func (c *commandBar) updateSuggestions() {
	text := c.input.Value()
	parts := strings.Fields(text)
	if len(parts) != 1 || strings.HasSuffix(text, " ") {
		if len(parts) >= 1 && (parts[0] == "go" || parts[0] == "open") {
			c.input.SetSuggestions(pathSuggestions(parts[0]))
			return
		}
		c.input.SetSuggestions(nil)
		return
	}
	var out []string
	for _, name := range commandNames() {
		if strings.HasPrefix(name, strings.ToLower(parts[0])) {
			out = append(out, name)
		}
	}
	c.input.SetSuggestions(out)
}

func pathSuggestions(verb string) []string {
	var out []string
	for _, r := range append(append([]router.Route{}, router.Public...), router.Gated...) {
		out = append(out, verb+" "+string(r))
	}
	return out
}

// pageCommands maps command-bar words to pages. Both the English names
// and the backend's path segments work.
var pageCommands = map[string]router.Route{
	"home":       router.Landing,
	"pricing":    router.Pricing,
	"precios":    router.Pricing,
	"register":   router.Registration,
	"registro":   router.Registration,
	"dashboard":  router.Dashboard,
	"contacts":   router.Contacts,
	"contactos":  router.Contacts,
	"tasks":      router.Tasks,
	"tareas":     router.Tasks,
	"projects":   router.Projects,
	"proyectos":  router.Projects,
	"templates":  router.Templates,
	"plantillas": router.Templates,
}

func commandNames() []string {
	names := []string{"go", "open", "login", "logout", "whoami", "help", "quit", "exit"}
	for name := range pageCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// executeCommand parses one command-bar line.
func (c *commandBar) executeCommand(input string) tea.Cmd {
	parts := strings.Fields(input)
	name := strings.ToLower(parts[0])
	args := parts[1:]

	if r, ok := pageCommands[name]; ok {
		return navigate(string(r))
	}

	switch name {
	case "go", "open":
		if len(args) != 1 {
			return outputCmd(formatter.Error(fmt.Errorf("usage: %s <path>", name)))
		}
		return navigate(args[0])

	case "login":
		if len(args) == 0 {
			return navigate(string(router.Login))
		}
		return c.loginCmd(args[0])

	case "logout":
		sess := c.state.App.Session
		return func() tea.Msg {
			if err := sess.Clear(context.Background()); err != nil {
				return cmdOutputMsg{output: formatter.Error(err)}
			}
			return cmdOutputMsg{output: formatter.Success("Logged out")}
		}

	case "whoami":
		if id := c.state.App.Session.Identity(); id != "" {
			return outputCmd("Logged in as " + formatter.Bold(id))
		}
		return outputCmd(formatter.Dim("Not logged in."))

	case "help", "?":
		return outputCmd(commandHelp())

	case "quit", "exit":
		return func() tea.Msg { return quitMsg{} }
	}

	return outputCmd(formatter.Error(fmt.Errorf("unknown command %q, try :help", name)))
}

func (c *commandBar) loginCmd(id string) tea.Cmd {
	app := c.state.App
	return func() tea.Msg {
		if err := applyLogin(context.Background(), app, id); err != nil {
			return cmdOutputMsg{output: formatter.Error(err)}
		}
		return cmdOutputMsg{output: formatter.Success("Logged in as " + app.Session.Identity())}
	}
}

func commandHelp() string {
	rows := [][]string{
		{"go <path>", "open a page, e.g. go /tareas"},
		{"dashboard, contacts, tasks, projects, templates", "open a workspace page"},
		{"home, pricing, register", "open a public page"},
		{"login [id]", "log in, or open the login page"},
		{"logout", "forget the stored identity"},
		{"whoami", "show the current identity"},
		{"quit", "exit"},
	}
	return formatter.RenderBox("Commands", formatter.RenderTable([]string{"COMMAND", "DESCRIPTION"}, rows))
}
