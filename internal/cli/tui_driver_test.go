package cli

import (
	"testing"

	"github.com/alexanderramin/followup/internal/router"
	"github.com/alexanderramin/followup/internal/teatest"
)

// TestDriver wraps teatest.Driver with followup-specific helpers for
// driving the full appModel through key presses.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates an appModel opened at path, sizes it to 120x40
// and drains Init.
func NewTestDriver(t *testing.T, app *App, path string) *TestDriver {
	t.Helper()
	m := newAppModel(app, path)
	t.Cleanup(m.unsubscribe)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()
	return &TestDriver{Driver: d}
}

func (d *TestDriver) model() appModel {
	return d.Model.(appModel)
}

// Command focuses the command bar, types input and submits it.
func (d *TestDriver) Command(input string) {
	d.T.Helper()
	d.PressKey(':')
	d.Type(input)
	d.PressEnter()
	if d.CmdBarFocused() {
		d.PressEsc()
	}
}

func (d *TestDriver) ActiveViewID() ViewID {
	m := d.model()
	if v := m.activeView(); v != nil {
		return v.ID()
	}
	return -1
}

func (d *TestDriver) ActiveView() View {
	m := d.model()
	return m.activeView()
}

func (d *TestDriver) ViewStackLen() int {
	return len(d.model().viewStack)
}

func (d *TestDriver) Route() router.Route {
	return d.model().state.Route
}

func (d *TestDriver) State() *SharedState {
	return d.model().state
}

func (d *TestDriver) IsQuitting() bool {
	return d.model().quitting || d.Quitting
}

func (d *TestDriver) CmdBarFocused() bool {
	m := d.model()
	return m.cmdBar.Focused()
}

func (d *TestDriver) LastOutput() string {
	return d.model().lastOutput
}
