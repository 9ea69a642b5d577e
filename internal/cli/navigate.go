package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// navigateMsg routes to a page path. The router may redirect it.
type navigateMsg struct {
	path string
}

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// refreshViewMsg asks every view on the stack to reload its data.
type refreshViewMsg struct{}

// cmdOutputMsg carries text shown in the content area until dismissed.
type cmdOutputMsg struct {
	output string
}

// cmdLoadingMsg shows a dim progress line while a request runs.
type cmdLoadingMsg struct {
	message string
}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel pops the wizard, then runs nextCmd. Views reload unless
// reloaded reports the view-model already did.
type wizardCompleteMsg struct {
	nextCmd  tea.Cmd
	reloaded bool
}

type quitMsg struct{}

func navigate(path string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{path: path} }
}

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func outputCmd(s string) tea.Cmd {
	if s == "" {
		return nil
	}
	return func() tea.Msg { return cmdOutputMsg{output: s} }
}

func loadingCmd(message string) tea.Cmd {
	return func() tea.Msg { return cmdLoadingMsg{message: message} }
}
