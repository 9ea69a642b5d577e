package cli

import (
	"context"

	"github.com/alexanderramin/followup/internal/cli/formatter"
	"github.com/alexanderramin/followup/internal/domain"
	"github.com/alexanderramin/followup/internal/router"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// ── landing ──────────────────────────────────────────────────────────────────

type landingView struct {
	state *SharedState
}

func newLandingView(state *SharedState) *landingView {
	return &landingView{state: state}
}

func (v *landingView) Init() tea.Cmd { return nil }

func (v *landingView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	switch keyMsg.String() {
	case "p":
		return v, navigate(string(router.Pricing))
	case "r":
		return v, navigate(string(router.Registration))
	case "l":
		return v, navigate(string(router.Login))
	case "enter":
		return v, navigate(string(router.Dashboard))
	}
	return v, nil
}

func (v *landingView) View() string {
	return formatter.FormatLanding(v.state.ContentWidth())
}

func (v *landingView) ID() ViewID    { return ViewLanding }
func (v *landingView) Title() string { return "" }
func (v *landingView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pricing")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "sign up")),
		key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log in")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "workspace")),
	}
}

// ── pricing ──────────────────────────────────────────────────────────────────

type pricingView struct {
	state    *SharedState
	annual   bool
	selected int
}

func newPricingView(state *SharedState) *pricingView {
	v := &pricingView{state: state}
	for i, p := range domain.Plans {
		if p.Highlighted {
			v.selected = i
		}
	}
	return v
}

func (v *pricingView) Init() tea.Cmd { return nil }

func (v *pricingView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	switch keyMsg.String() {
	case "a":
		v.annual = !v.annual
	case "left", "h":
		if v.selected > 0 {
			v.selected--
		}
	case "right", "l":
		if v.selected < len(domain.Plans)-1 {
			v.selected++
		}
	case "enter":
		v.state.PendingPlan = domain.Plans[v.selected].ID
		return v, navigate(string(router.Registration))
	case "esc":
		return v, navigate(string(router.Landing))
	}
	return v, nil
}

func (v *pricingView) View() string {
	plan := domain.Plans[v.selected]
	return formatter.FormatPricing(v.annual) + "\n\n" +
		formatter.Dim("Selected: ") + formatter.StyleHeader.Render(plan.Name)
}

func (v *pricingView) handlesEsc() bool { return true }

func (v *pricingView) ID() ViewID    { return ViewPricing }
func (v *pricingView) Title() string { return "" }
func (v *pricingView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "plan")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "monthly/annual")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "sign up")),
	}
}

// ── login ────────────────────────────────────────────────────────────────────

type loginResultMsg struct {
	err error
}

type loginView struct {
	state *SharedState
	id    string
	form  *huh.Form
	err   error
}

func newLoginView(state *SharedState) *loginView {
	v := &loginView{state: state}
	v.form = loginForm(&v.id)
	return v
}

func (v *loginView) Init() tea.Cmd { return v.form.Init() }

func (v *loginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		// Success reroutes through the session listener.
		if msg.err != nil {
			v.err = msg.err
			v.form = loginForm(&v.id)
			return v, v.form.Init()
		}
		return v, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return v, navigate(string(router.Landing))
		}
	}

	if v.form.State != huh.StateNormal {
		return v, nil
	}
	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State == huh.StateCompleted {
		app, id := v.state.App, v.id
		return v, tea.Batch(cmd, func() tea.Msg {
			return loginResultMsg{err: applyLogin(context.Background(), app, id)}
		})
	}
	return v, cmd
}

func (v *loginView) View() string {
	s := formatter.Header("Log in") + "\n\n"
	if v.err != nil {
		s += formatter.Error(v.err) + "\n\n"
	}
	return s + v.form.View() + "\n" + formatter.Dim("No account yet? Press esc and choose sign up.")
}

func (v *loginView) capturesInput() bool { return v.form.State == huh.StateNormal }

func (v *loginView) ID() ViewID    { return ViewLogin }
func (v *loginView) Title() string { return "" }
func (v *loginView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "log in")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "home")),
	}
}

// ── registration ─────────────────────────────────────────────────────────────

type registerStep int

const (
	stepInfo registerStep = iota
	stepIdentity
	stepDone
)

type registeredMsg struct {
	err error
}

// registerView walks through the sign-up steps. Completing the last step
// stores the registration locally and logs the user in.
type registerView struct {
	state  *SharedState
	fields *registrationFields
	step   registerStep
	form   *huh.Form
	err    error
}

func newRegisterView(state *SharedState) *registerView {
	v := &registerView{
		state:  state,
		fields: newRegistrationFields(state.PendingPlan),
	}
	v.form = registrationInfoForm(v.fields)
	return v
}

func (v *registerView) Init() tea.Cmd { return v.form.Init() }

func (v *registerView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case registeredMsg:
		if msg.err != nil {
			v.err = msg.err
			return v, v.toStep(stepIdentity)
		}
		v.err = nil
		v.step = stepDone
		return v, nil
	case tea.KeyMsg:
		if cmd, handled := v.handleKey(msg); handled {
			return v, cmd
		}
	}

	if v.step == stepDone || v.form.State != huh.StateNormal {
		return v, nil
	}
	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State != huh.StateCompleted {
		return v, cmd
	}

	if v.step == stepInfo {
		return v, tea.Batch(cmd, v.toStep(stepIdentity))
	}
	sess, reg := v.state.App.Session, v.fields.registration()
	return v, tea.Batch(cmd, func() tea.Msg {
		return registeredMsg{err: sess.SaveRegistration(context.Background(), reg)}
	})
}

func (v *registerView) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case v.step == stepDone && msg.Type == tea.KeyEnter:
		return navigate(string(router.Dashboard)), true
	case msg.Type == tea.KeyEsc && v.step == stepIdentity:
		return v.toStep(stepInfo), true
	case msg.Type == tea.KeyEsc:
		return navigate(string(router.Landing)), true
	}
	return nil, false
}

func (v *registerView) toStep(step registerStep) tea.Cmd {
	v.step = step
	if step == stepInfo {
		v.form = registrationInfoForm(v.fields)
	} else {
		v.form = registrationIdentityForm(v.fields)
	}
	return v.form.Init()
}

func (v *registerView) View() string {
	s := formatter.Header("Create your account") + "\n"
	if v.step == stepDone {
		reg := v.fields.registration()
		plan, _ := domain.FindPlan(reg.Plan)
		return s + "\n" + formatter.Success("Welcome, "+reg.Name) + "\n\n" +
			formatter.Dim("Plan: ") + plan.Name + "\n" +
			formatter.Dim("Reminders go to Telegram ID ") + formatter.Bold(reg.TelegramID) + "\n\n" +
			formatter.Dim("Press enter to open your dashboard.")
	}

	s += formatter.Dim(map[registerStep]string{
		stepInfo:     "Step 1 of 2: your details",
		stepIdentity: "Step 2 of 2: connect Telegram",
	}[v.step]) + "\n\n"
	if v.err != nil {
		s += formatter.Error(v.err) + "\n\n"
	}
	return s + v.form.View()
}

func (v *registerView) capturesInput() bool { return v.step != stepDone }

func (v *registerView) handlesEsc() bool { return true }

func (v *registerView) ID() ViewID    { return ViewRegister }
func (v *registerView) Title() string { return "" }
func (v *registerView) ShortHelp() []key.Binding {
	if v.step == stepDone {
		return []key.Binding{key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "dashboard"))}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}
