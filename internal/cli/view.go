package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewLanding ViewID = iota
	ViewPricing
	ViewRegister
	ViewLogin
	ViewDashboard
	ViewContacts
	ViewTasks
	ViewProjects
	ViewTemplates
	ViewForm
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// inputCapturer is implemented by views that sometimes own the keyboard,
// such as a list while its search prompt is open.
type inputCapturer interface {
	capturesInput() bool
}

// escHandler is implemented by page views that use Esc themselves when
// nothing is stacked above them.
type escHandler interface {
	handlesEsc() bool
}
