package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/followup/internal/cli/formatter"
	"github.com/alexanderramin/followup/internal/router"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// appModel is the root bubbletea Model for the TUI.
// The router picks the page at the bottom of the view stack; forms and
// confirmations are pushed on top of it.
type appModel struct {
	state     *SharedState
	viewStack []View
	cmdBar    commandBar
	quitting  bool

	unsubscribe func()

	// Transient output from the command bar, displayed in content area.
	lastOutput string

	// Scrollable viewport for command output that exceeds terminal height.
	outputVP     viewport.Model
	outputActive bool
}

func newAppModel(app *App, path string) appModel {
	state := &SharedState{App: app}

	vp := viewport.New(0, 0)
	vp.KeyMap = outputViewportKeyMap()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	m := appModel{
		state:    state,
		cmdBar:   newCommandBar(state),
		outputVP: vp,
	}
	m.unsubscribe = app.Session.Subscribe(state.noteIdentity)
	m.route(path)
	return m
}

// runTUI starts the full-screen client at path.
func runTUI(app *App, path string) error {
	m := newAppModel(app.forTUI(), path)
	defer m.unsubscribe()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// route resolves path against the login gate and makes the resulting
// page the only view on the stack.
func (m *appModel) route(path string) View {
	res := router.Resolve(path, m.state.App.Session.IsLoggedIn())
	if res.Redirected {
		m.state.App.logger().Debug("route redirected", "from", path, "to", string(res.Route))
	}
	m.state.Route = res.Route
	m.state.Shell = res.Shell

	v := newPageView(m.state, res.Route)
	m.viewStack = []View{v}
	m.cmdBar.Blur()
	m.clearOutput()
	return v
}

// newPageView builds the view for a resolved route.
func newPageView(state *SharedState, r router.Route) View {
	switch r {
	case router.Pricing:
		return newPricingView(state)
	case router.Registration:
		return newRegisterView(state)
	case router.Login:
		return newLoginView(state)
	case router.Dashboard:
		return newDashboardView(state)
	case router.Contacts:
		return newContactsView(state)
	case router.Tasks:
		return newTasksView(state)
	case router.Projects:
		return newProjectsView(state)
	case router.Templates:
		return newTemplatesView(state)
	default:
		return newLandingView(state)
	}
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// A login or logout anywhere re-runs the gate for the current page.
	// Shell pages are rebuilt too since their data belongs to the identity.
	if m.state.takeIdentityChange() {
		res := router.Resolve(string(m.state.Route), m.state.App.Session.IsLoggedIn())
		if res.Route != m.state.Route || res.Shell {
			v := m.route(string(m.state.Route))
			next, cmd := m.update(msg)
			return next, tea.Batch(v.Init(), cmd)
		}
	}
	return m.update(msg)
}

func (m appModel) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.cmdBar.SetWidth(msg.Width)
		if m.outputActive {
			m.outputVP.Width = m.state.ContentWidth()
			m.outputVP.Height = m.state.ContentHeight()
		}
		if v := m.activeView(); v != nil {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.outputActive {
			var cmd tea.Cmd
			m.outputVP, cmd = m.outputVP.Update(msg)
			return m, cmd
		}

	case navigateMsg:
		v := m.route(msg.path)
		return m, v.Init()

	case pushViewMsg:
		m.cmdBar.Blur()
		m.clearOutput()
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case refreshViewMsg:
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case cmdOutputMsg:
		m.showOutput(msg.output)
		return m, nil

	case cmdLoadingMsg:
		m.showOutput("\n  " + formatter.Dim(msg.message))
		return m, nil

	case wizardCompleteMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		m.clearOutput()
		if msg.reloaded {
			return m, msg.nextCmd
		}
		return m, tea.Batch(msg.nextCmd, func() tea.Msg { return refreshViewMsg{} })

	case quitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	// Data messages go to every view; each ignores what it did not ask for.
	var cmds []tea.Cmd
	if m.cmdBar.Focused() {
		cmds = append(cmds, m.cmdBar.UpdateNonKey(msg))
	}
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.cmdBar.Focused() {
		if msg.Type == tea.KeyEnter {
			m.clearOutput()
		}
		return m, m.cmdBar.Update(msg)
	}

	// When output is displayed, scroll keys move the viewport and any
	// other key dismisses it.
	if m.outputActive {
		if isOutputScrollKey(msg) {
			var cmd tea.Cmd
			m.outputVP, cmd = m.outputVP.Update(msg)
			return m, cmd
		}
		m.clearOutput()
		if msg.Type == tea.KeyEsc {
			return m, nil
		}
	}

	v := m.activeView()
	if v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch {
	case msg.String() == ":":
		m.cmdBar.Focus()
		return m, nil

	case msg.String() == "q":
		m.quitting = true
		return m, tea.Quit

	case msg.Type == tea.KeyEsc:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
			return m, nil
		}
		if h, ok := v.(escHandler); !ok || !h.handlesEsc() {
			return m, nil
		}

	case m.state.Shell && len(m.viewStack) == 1:
		if r, ok := shellShortcut(msg.String()); ok {
			next := m.route(string(r))
			return m, next.Init()
		}
	}

	if v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

// shellShortcut maps the number keys to the sidebar pages.
func shellShortcut(k string) (router.Route, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '9' {
		return "", false
	}
	i := int(k[0] - '1')
	if i >= len(router.Gated) {
		return "", false
	}
	return router.Gated[i], true
}

// viewCapturesInput returns true if the view owns all key input.
func viewCapturesInput(v View) bool {
	if v.ID() == ViewForm {
		return true
	}
	if c, ok := v.(inputCapturer); ok {
		return c.capturesInput()
	}
	return false
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var content string
	if m.lastOutput != "" {
		if m.outputActive && m.state.Height > 0 {
			content = m.outputVP.View()
		} else {
			content = m.lastOutput
		}
	} else if v := m.activeView(); v != nil {
		content = v.View()
	}
	if m.state.Shell {
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), content)
	}

	sections := []string{
		m.renderHeader(),
		content,
		m.renderStatusBar(),
		m.cmdBar.View(),
	}
	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("followup")

	crumbs := []string{m.state.Route.Label()}
	for _, v := range m.viewStack[1:] {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	header := title + " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))

	if id := m.state.App.Session.Identity(); id != "" {
		header += "  " + formatter.Dim("[") + formatter.StyleGreen.Render(id) + formatter.Dim("]")
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

// renderSidebar lists the gated pages with their shortcut keys.
func (m *appModel) renderSidebar() string {
	lines := []string{formatter.Header("Menu"), ""}
	for i, r := range router.Gated {
		label := fmt.Sprintf("%d %s", i+1, r.Label())
		if r == m.state.Route {
			lines = append(lines, formatter.StyleGreen.Render("▸ "+label))
		} else {
			lines = append(lines, "  "+formatter.Dim(label))
		}
	}
	lines = append(lines, "", formatter.Dim(":logout"))

	return lipgloss.NewStyle().
		Width(sidebarWidth-2).
		MarginRight(2).
		Height(m.state.ContentHeight()).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(formatter.ColorDim).
		Render(strings.Join(lines, "\n"))
}

func (m *appModel) renderStatusBar() string {
	var hints []string

	if m.outputActive && m.outputVP.TotalLineCount() > m.outputVP.Height {
		hints = append(hints, scrollIndicator(m.outputVP))
		hints = append(hints, formatter.Dim("↑↓ pgup/pgdn: scroll"))
		hints = append(hints, formatter.Dim("esc: dismiss"))
	} else if v := m.activeView(); v != nil && !m.outputActive {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}

	if !m.cmdBar.Focused() && !m.outputActive {
		if len(m.viewStack) > 1 {
			hints = append(hints, formatter.Dim("esc: back"))
		}
		if m.state.Shell {
			hints = append(hints, formatter.Dim("1-5: pages"))
		}
		hints = append(hints, formatter.Dim(": command"))
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}

func (m *appModel) showOutput(s string) {
	m.lastOutput = s
	m.outputActive = true
	m.outputVP.SetContent(s)
	m.outputVP.Width = m.state.ContentWidth()
	m.outputVP.Height = m.state.ContentHeight()
	m.outputVP.GotoTop()
}

// clearOutput dismisses the transient command output and deactivates the viewport.
func (m *appModel) clearOutput() {
	m.lastOutput = ""
	m.outputActive = false
}

// outputViewportKeyMap returns a restricted keymap for the output viewport.
// Only arrow and page keys scroll; letters stay free to dismiss the output.
func outputViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}

// isOutputScrollKey returns true if the key should scroll the output viewport
// rather than dismissing the output.
func isOutputScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU, tea.KeyCtrlD:
		return true
	}
	return false
}

func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
}
