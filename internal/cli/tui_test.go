package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/followup/internal/domain"
	"github.com/alexanderramin/followup/internal/router"
	"github.com/alexanderramin/followup/internal/testutil"
	"github.com/alexanderramin/followup/internal/viewmodel"
)

// replyBoard serves the task page endpoints from tasks, with no contacts.
func replyBoard(fb *testutil.FakeBackend, tasks ...domain.Task) {
	fb.Reply(http.MethodGet, "/api/tareas/kanban", http.StatusOK, domain.Place(tasks))
	fb.Reply(http.MethodGet, "/api/tareas", http.StatusOK, tasks)
	fb.Reply(http.MethodGet, "/api/contactos", http.StatusOK, []domain.Contact{})
}

func TestTUI_GatedPathRedirectsToLogin(t *testing.T) {
	app, fb := newTestApp(t, "")
	d := NewTestDriver(t, app, "/tareas")

	assert.Equal(t, router.Login, d.Route())
	assert.Equal(t, ViewLogin, d.ActiveViewID())
	assert.False(t, d.State().Shell)
	assert.Empty(t, fb.Requests())
}

func TestTUI_LoginPathRedirectsWhenLoggedIn(t *testing.T) {
	app, fb := newTestApp(t, "42")
	fb.Reply(http.MethodGet, "/api/dashboard", http.StatusOK, domain.Dashboard{TotalContacts: 3})
	replyBoard(fb)

	d := NewTestDriver(t, app, "/login")

	assert.Equal(t, router.Dashboard, d.Route())
	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.True(t, d.State().Shell)
	assert.Len(t, fb.RequestsTo(http.MethodGet, "/api/dashboard"), 1)
	assert.Contains(t, plain(d.View()), "MENU")
}

func TestTUI_UnknownPathShowsLanding(t *testing.T) {
	app, _ := newTestApp(t, "")
	d := NewTestDriver(t, app, "/nope")

	assert.Equal(t, router.Landing, d.Route())
	assert.Equal(t, ViewLanding, d.ActiveViewID())
}

func TestTUI_LogoutRedirectsGatedPage(t *testing.T) {
	app, fb := newTestApp(t, "42")
	fb.Reply(http.MethodGet, "/api/contactos", http.StatusOK, []domain.Contact{testutil.NewTestContact("Ana")})

	d := NewTestDriver(t, app, "/contactos")
	require.Equal(t, ViewContacts, d.ActiveViewID())

	d.Command("logout")

	assert.False(t, app.Session.IsLoggedIn())
	assert.Equal(t, router.Login, d.Route())
	assert.Equal(t, ViewLogin, d.ActiveViewID())
}

func TestTUI_LoginCommandThenWorkspace(t *testing.T) {
	app, fb := newTestApp(t, "")
	fb.Reply(http.MethodGet, "/api/health", http.StatusOK, map[string]string{"status": "ok"})
	fb.Reply(http.MethodGet, "/api/contactos", http.StatusOK, []domain.Contact{})

	d := NewTestDriver(t, app, "/")
	d.Command("login 555")
	assert.Equal(t, "555", app.Session.Identity())
	assert.Contains(t, plain(d.LastOutput()), "Logged in as 555")

	d.Command("go /contactos")
	assert.Equal(t, router.Contacts, d.Route())
	assert.Equal(t, ViewContacts, d.ActiveViewID())
}

func TestTUI_ShellNumberKeysSwitchPages(t *testing.T) {
	app, fb := newTestApp(t, "42")
	fb.Reply(http.MethodGet, "/api/contactos", http.StatusOK, []domain.Contact{})
	fb.Reply(http.MethodGet, "/api/proyectos", http.StatusOK, []domain.Project{})
	replyBoard(fb)

	d := NewTestDriver(t, app, "/contactos")

	d.PressKey('3')
	assert.Equal(t, router.Tasks, d.Route())
	assert.Equal(t, ViewTasks, d.ActiveViewID())

	d.PressKey('4')
	assert.Equal(t, router.Projects, d.Route())
	assert.Equal(t, 1, d.ViewStackLen())
}

func TestTUI_PublicPagesHaveNoShortcuts(t *testing.T) {
	app, _ := newTestApp(t, "")
	d := NewTestDriver(t, app, "/")

	d.PressKey('2')
	assert.Equal(t, router.Landing, d.Route())
}

func TestTUI_KanbanDragMovesTaskOnce(t *testing.T) {
	app, fb := newTestApp(t, "42")
	task := testutil.NewTestTask("Send quote", testutil.WithStatus(domain.StatusPending))
	replyBoard(fb, task)
	fb.Reply(http.MethodPatch, idPath("/api/tareas", task.ID)+"/estado", http.StatusOK, nil)

	d := NewTestDriver(t, app, "/tareas")
	require.Contains(t, plain(d.View()), "Send quote")
	fb.ResetRequests()

	d.PressSpace()
	d.PressRight()
	assert.Contains(t, plain(d.View()), "drop: Send quote")
	d.PressSpace()

	patches := fb.RequestsTo(http.MethodPatch, idPath("/api/tareas", task.ID)+"/estado")
	require.Len(t, patches, 1)
	assert.Equal(t, "en_seguimiento", patches[0].Query.Get("estado"))
	assert.Equal(t, 1, fb.CountWrites())
	assert.Len(t, fb.RequestsTo(http.MethodGet, "/api/tareas/kanban"), 1, "board reloads after the drop")
}

// statefulBoard serves the task page from one task whose status follows
// the PATCH requests it receives.
func statefulBoard(fb *testutil.FakeBackend, task domain.Task) {
	var mu sync.Mutex
	current := func() []domain.Task {
		mu.Lock()
		defer mu.Unlock()
		return []domain.Task{task}
	}
	fb.Handle(http.MethodGet, "/api/tareas/kanban", func(w http.ResponseWriter, _ *http.Request) {
		testutil.WriteJSON(w, http.StatusOK, domain.Place(current()))
	})
	fb.Handle(http.MethodGet, "/api/tareas", func(w http.ResponseWriter, _ *http.Request) {
		testutil.WriteJSON(w, http.StatusOK, current())
	})
	fb.Reply(http.MethodGet, "/api/contactos", http.StatusOK, []domain.Contact{})
	fb.Handle(http.MethodPatch, idPath("/api/tareas", task.ID)+"/estado", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		task.Status = domain.TaskStatus(r.URL.Query().Get("estado"))
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestTUI_KanbanDropReloadsTaskList(t *testing.T) {
	app, fb := newTestApp(t, "42")
	statefulBoard(fb, testutil.NewTestTask("Send quote", testutil.WithStatus(domain.StatusPending)))

	d := NewTestDriver(t, app, "/tareas")
	fb.ResetRequests()

	d.PressSpace()
	d.PressRight()
	d.PressSpace()
	assert.Len(t, fb.RequestsTo(http.MethodGet, "/api/tareas"), 1, "list reloads after the drop")

	d.PressKey('v')
	var row string
	for _, line := range strings.Split(plain(d.View()), "\n") {
		if strings.Contains(line, "Send quote") {
			row = line
		}
	}
	require.NotEmpty(t, row)
	assert.Contains(t, row, domain.StatusFollowingUp.Label())
	assert.NotContains(t, row, domain.StatusPending.Label())
}

func TestTUI_FailedDropLogsOffScreen(t *testing.T) {
	app, fb := newTestApp(t, "42")
	var stderr bytes.Buffer
	app.Logger = slog.New(slog.NewTextHandler(&stderr, nil))

	task := testutil.NewTestTask("Send quote", testutil.WithStatus(domain.StatusPending))
	replyBoard(fb, task)
	fb.Reply(http.MethodPatch, idPath("/api/tareas", task.ID)+"/estado", http.StatusInternalServerError, map[string]string{"detail": "boom"})

	d := NewTestDriver(t, app.forTUI(), "/tareas")
	d.PressSpace()
	d.PressRight()
	d.PressSpace()

	require.Len(t, fb.RequestsTo(http.MethodPatch, idPath("/api/tareas", task.ID)+"/estado"), 1)
	assert.Contains(t, plain(d.LastOutput()), "boom")
	assert.Empty(t, stderr.String())
}

func TestApp_ForTUIWritesToLogFile(t *testing.T) {
	app, fb := newTestApp(t, "42")
	var logFile bytes.Buffer
	app.TUILog = &logFile

	task := testutil.NewTestTask("Send quote", testutil.WithStatus(domain.StatusPending))
	replyBoard(fb, task)
	fb.Reply(http.MethodPatch, idPath("/api/tareas", task.ID)+"/estado", http.StatusInternalServerError, map[string]string{"detail": "boom"})

	d := NewTestDriver(t, app.forTUI(), "/tareas")
	d.PressSpace()
	d.PressRight()
	d.PressSpace()

	assert.Contains(t, logFile.String(), "kanban_drop")
	assert.Contains(t, logFile.String(), "api_call")
	assert.Same(t, app.Session, app.forTUI().Session)
}

func TestTUI_KanbanDropOnOriginIsNoop(t *testing.T) {
	app, fb := newTestApp(t, "42")
	replyBoard(fb, testutil.NewTestTask("Send quote"))

	d := NewTestDriver(t, app, "/tareas")
	fb.ResetRequests()

	d.PressSpace()
	d.PressSpace()

	assert.Empty(t, fb.Requests())
}

func TestTUI_KanbanEscCancelsCarry(t *testing.T) {
	app, fb := newTestApp(t, "42")
	replyBoard(fb, testutil.NewTestTask("Send quote"))

	d := NewTestDriver(t, app, "/tareas")
	fb.ResetRequests()

	d.PressSpace()
	d.PressRight()
	d.PressEsc()
	assert.NotContains(t, plain(d.View()), "drop: Send quote")

	d.PressEnter()
	assert.Zero(t, fb.CountWrites())
	assert.Equal(t, ViewTasks, d.ActiveViewID())
}

func TestTUI_ContactsSearchReloadsWithTerm(t *testing.T) {
	app, fb := newTestApp(t, "42")
	fb.Reply(http.MethodGet, "/api/contactos", http.StatusOK, []domain.Contact{testutil.NewTestContact("Ana")})

	d := NewTestDriver(t, app, "/contactos")
	fb.ResetRequests()

	d.PressKey('/')
	d.Type("ana q")
	assert.False(t, d.IsQuitting(), "search owns the keyboard")
	d.PressEnter()

	reqs := fb.RequestsTo(http.MethodGet, "/api/contactos")
	require.Len(t, reqs, 1)
	assert.Equal(t, "ana q", reqs[0].Query.Get("search"))
	assert.Contains(t, plain(d.View()), `matching "ana q"`)
}

func TestTUI_DeleteOpensConfirmAndEscIssuesNothing(t *testing.T) {
	app, fb := newTestApp(t, "42")
	fb.Reply(http.MethodGet, "/api/contactos", http.StatusOK, []domain.Contact{testutil.NewTestContact("Ana")})

	d := NewTestDriver(t, app, "/contactos")

	d.PressKey('x')
	require.Equal(t, ViewForm, d.ActiveViewID())
	assert.Equal(t, 2, d.ViewStackLen())

	d.PressEsc()
	assert.Equal(t, 1, d.ViewStackLen())
	assert.Contains(t, plain(d.LastOutput()), "Cancelled.")
	assert.Zero(t, fb.CountWrites())
}

func TestApplyDelete(t *testing.T) {
	app, fb := newTestApp(t, "42")
	c := testutil.NewTestContact("Ana")
	fb.Reply(http.MethodGet, "/api/contactos", http.StatusOK, []domain.Contact{})
	fb.Reply(http.MethodDelete, idPath("/api/contactos", c.ID), http.StatusNoContent, nil)

	vm := viewmodel.NewContacts(app.API)
	del := func(ctx context.Context, confirm viewmodel.Confirm) (bool, error) {
		return vm.Delete(ctx, c.ID, confirm)
	}

	msg := applyDelete(context.Background(), del, false, c.Name)
	assert.True(t, msg.(wizardCompleteMsg).reloaded)
	assert.Zero(t, fb.CountWrites())

	msg = applyDelete(context.Background(), del, true, c.Name)
	assert.True(t, msg.(wizardCompleteMsg).reloaded)
	assert.Len(t, fb.RequestsTo(http.MethodDelete, idPath("/api/contactos", c.ID)), 1)
}

func TestApplyDelete_BackendError(t *testing.T) {
	app, fb := newTestApp(t, "42")
	fb.Reply(http.MethodDelete, "/api/contactos/9", http.StatusNotFound, map[string]string{"detail": "Contacto no encontrado"})

	vm := viewmodel.NewContacts(app.API)
	msg := applyDelete(context.Background(), func(ctx context.Context, confirm viewmodel.Confirm) (bool, error) {
		return vm.Delete(ctx, 9, confirm)
	}, true, "Ana")

	done, ok := msg.(wizardCompleteMsg)
	require.True(t, ok)
	require.NotNil(t, done.nextCmd)
	out, ok := done.nextCmd().(cmdOutputMsg)
	require.True(t, ok)
	assert.Contains(t, plain(out.output), "Contacto no encontrado")
}

func TestEntityForm_InvalidSubmitReopensForm(t *testing.T) {
	app, fb := newTestApp(t, "42")
	vm := viewmodel.NewContacts(app.API)
	form := entityForm[domain.Contact, domain.ContactForm]{
		state: &SharedState{App: app},
		crud:  vm.CRUD,
		build: contactForm,
		noun:  "contact",
	}

	values := vm.OpenCreate()
	msg := form.submit(context.Background(), values)

	done, ok := msg.(wizardCompleteMsg)
	require.True(t, ok)
	assert.True(t, vm.IsOpen(), "form stays open on a validation error")
	require.NotNil(t, done.nextCmd)
	_, reopened := done.nextCmd().(pushViewMsg)
	assert.True(t, reopened)
	assert.Zero(t, fb.CountWrites())
}

func TestEntityForm_SubmitSavesAndCloses(t *testing.T) {
	app, fb := newTestApp(t, "42")
	created := testutil.NewTestContact("Ana")
	fb.Reply(http.MethodPost, "/api/contactos", http.StatusCreated, created)
	fb.Reply(http.MethodGet, "/api/contactos", http.StatusOK, []domain.Contact{created})

	vm := viewmodel.NewContacts(app.API)
	var saved bool
	form := entityForm[domain.Contact, domain.ContactForm]{
		state:   &SharedState{App: app},
		crud:    vm.CRUD,
		build:   contactForm,
		noun:    "contact",
		onSaved: func(context.Context) { saved = true },
	}

	values := vm.OpenCreate()
	values.Name = "Ana"
	msg := form.submit(context.Background(), values)

	done := msg.(wizardCompleteMsg)
	assert.True(t, done.reloaded)
	assert.True(t, saved)
	assert.False(t, vm.IsOpen())
	assert.Len(t, fb.RequestsTo(http.MethodPost, "/api/contactos"), 1)
	assert.Len(t, vm.Items(), 1)
}

func TestTUI_PricingSelectsPlanForRegistration(t *testing.T) {
	app, _ := newTestApp(t, "")
	d := NewTestDriver(t, app, "/precios")

	d.PressKey('a')
	assert.Contains(t, plain(d.View()), "Annual billing")

	d.PressRight()
	d.PressEnter()

	assert.Equal(t, router.Registration, d.Route())
	assert.Equal(t, "business", d.State().PendingPlan)
	reg, ok := d.ActiveView().(*registerView)
	require.True(t, ok)
	assert.Equal(t, "business", reg.fields.plan)
}

func TestRegisterView_SaveErrorReturnsToIdentityStep(t *testing.T) {
	app, _ := newTestApp(t, "")
	v := newRegisterView(&SharedState{App: app})
	v.step = stepIdentity

	_, _ = v.Update(registeredMsg{err: errors.New("disk full")})
	assert.Equal(t, stepIdentity, v.step)
	assert.Contains(t, v.View(), "disk full")

	_, _ = v.Update(registeredMsg{})
	assert.Equal(t, stepDone, v.step)
	assert.False(t, v.capturesInput())
}

func TestTUI_TemplatePreview(t *testing.T) {
	app, fb := newTestApp(t, "42")
	tpl := testutil.NewTestTemplate("Reminder", domain.TemplateTelegram, "Hola {contacto_nombre}")
	fb.Reply(http.MethodGet, "/api/plantillas", http.StatusOK, []domain.Template{tpl})
	fb.Reply(http.MethodPost, idPath("/api/plantillas", tpl.ID)+"/preview", http.StatusOK,
		domain.TemplatePreview{Body: "Hola Juan Pérez"})

	d := NewTestDriver(t, app, "/plantillas")
	d.PressKey('p')

	assert.Len(t, fb.RequestsTo(http.MethodPost, idPath("/api/plantillas", tpl.ID)+"/preview"), 1)
	assert.Contains(t, plain(d.LastOutput()), "Hola Juan Pérez")
}

func TestTUI_TemplateTypeFilterCycles(t *testing.T) {
	app, fb := newTestApp(t, "42")
	fb.Reply(http.MethodGet, "/api/plantillas", http.StatusOK, []domain.Template{})

	d := NewTestDriver(t, app, "/plantillas")
	fb.ResetRequests()

	d.PressKey('t')
	d.PressKey('t')

	reqs := fb.RequestsTo(http.MethodGet, "/api/plantillas")
	require.Len(t, reqs, 2)
	assert.Equal(t, "telegram", reqs[0].Query.Get("tipo"))
	assert.Equal(t, "email", reqs[1].Query.Get("tipo"))
}

func TestTUI_BackendErrorShowsInOutput(t *testing.T) {
	app, fb := newTestApp(t, "42")
	fb.Reply(http.MethodGet, "/api/proyectos", http.StatusUnauthorized, map[string]string{"detail": "Usuario no registrado"})
	fb.Reply(http.MethodGet, "/api/contactos", http.StatusOK, []domain.Contact{})

	d := NewTestDriver(t, app, "/proyectos")

	assert.Contains(t, plain(d.LastOutput()), "Usuario no registrado")
	assert.Equal(t, ViewProjects, d.ActiveViewID())
}

func TestTUI_ProjectFormOffersLoadedContacts(t *testing.T) {
	app, fb := newTestApp(t, "42")
	ana := testutil.NewTestContact("Ana", testutil.WithCompany("Acme"))
	fb.Reply(http.MethodGet, "/api/proyectos", http.StatusOK, []domain.Project{})
	fb.Reply(http.MethodGet, "/api/contactos", http.StatusOK, []domain.Contact{ana})

	d := NewTestDriver(t, app, "/proyectos")
	pv, ok := d.ActiveView().(*projectsView)
	require.True(t, ok)
	assert.Equal(t, []domain.Contact{ana}, pv.projects.Contacts())
	assert.Len(t, fb.RequestsTo(http.MethodGet, "/api/contactos"), 1)

	d.PressKey('a')
	require.Equal(t, ViewForm, d.ActiveViewID())
	assert.Contains(t, plain(d.View()), "Ana (Acme)")
}

func TestContactOptions(t *testing.T) {
	ana := testutil.NewTestContact("Ana", testutil.WithCompany("Acme"))
	luis := testutil.NewTestContact("Luis")

	opts := contactOptions([]domain.Contact{ana, luis}, "")
	require.Len(t, opts, 3)
	assert.Equal(t, "None", opts[0].Key)
	assert.Equal(t, "", opts[0].Value)
	assert.Equal(t, "Ana (Acme)", opts[1].Key)
	assert.Equal(t, idString(ana.ID), opts[1].Value)
	assert.Equal(t, "Luis", opts[2].Key)

	kept := contactOptions([]domain.Contact{ana}, "999")
	require.Len(t, kept, 3)
	assert.Equal(t, "Contact #999", kept[2].Key)
	assert.Equal(t, "999", kept[2].Value)

	assert.Len(t, contactOptions(nil, idString(ana.ID)), 2)
}

func TestTUI_QuitKey(t *testing.T) {
	app, _ := newTestApp(t, "")
	d := NewTestDriver(t, app, "/")

	d.PressKey('q')
	assert.True(t, d.IsQuitting())
}
