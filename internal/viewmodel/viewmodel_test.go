package viewmodel

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/followup/internal/api"
	"github.com/alexanderramin/followup/internal/domain"
	"github.com/alexanderramin/followup/internal/testutil"
)

type identity string

func (i identity) Identity() string { return string(i) }

func newClient(t *testing.T) (*api.Client, *testutil.FakeBackend) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	return api.NewClient(api.Config{BaseURL: fb.BaseURL()}, identity("42"), nil), fb
}

func TestContacts_SubmitCreateClosesAndReloads(t *testing.T) {
	ctx := context.Background()
	client, fb := newClient(t)
	fb.Reply(http.MethodGet, "/api/contactos", http.StatusOK, []domain.Contact{testutil.NewTestContact("Ana")})
	fb.Reply(http.MethodPost, "/api/contactos", http.StatusCreated, testutil.NewTestContact("Ana"))

	vm := NewContacts(client)
	form := vm.OpenCreate()
	form.Name = "Ana"
	vm.SetForm(form)

	require.NoError(t, vm.Submit(ctx))
	assert.False(t, vm.IsOpen())

	reqs := fb.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, http.MethodGet, reqs[1].Method)
	assert.Len(t, vm.Items(), 1)
}

func TestContacts_SubmitEditUsesPut(t *testing.T) {
	ctx := context.Background()
	client, fb := newClient(t)
	existing := testutil.NewTestContact("Ana")
	fb.Reply(http.MethodGet, "/api/contactos", http.StatusOK, []domain.Contact{existing})
	fb.Reply(http.MethodPut, "/api/contactos/"+fmtInt(existing.ID), http.StatusOK, existing)

	vm := NewContacts(client)
	form := vm.OpenEdit(existing)
	assert.Equal(t, "Ana", form.Name)
	form.Company = "Acme"
	vm.SetForm(form)

	require.NoError(t, vm.Submit(ctx))
	puts := fb.RequestsTo(http.MethodPut, "/api/contactos/"+fmtInt(existing.ID))
	require.Len(t, puts, 1)
	var body domain.ContactInput
	puts[0].DecodeBody(t, &body)
	assert.Equal(t, "Acme", body.Company)
}

func TestContacts_SubmitFailureKeepsFormOpen(t *testing.T) {
	ctx := context.Background()
	client, fb := newClient(t)
	fb.Reply(http.MethodPost, "/api/contactos", http.StatusBadRequest, map[string]string{"detail": "Email duplicado"})

	vm := NewContacts(client)
	form := vm.OpenCreate()
	form.Name = "Ana"
	vm.SetForm(form)

	err := vm.Submit(ctx)
	require.Error(t, err)
	assert.Equal(t, "Email duplicado", err.Error())
	assert.True(t, vm.IsOpen())
	assert.Equal(t, "Ana", vm.Form().Name)
	assert.Empty(t, fb.RequestsTo(http.MethodGet, "/api/contactos"))
}

func TestContacts_SubmitInvalidMakesNoCall(t *testing.T) {
	client, fb := newClient(t)
	vm := NewContacts(client)
	vm.OpenCreate()

	err := vm.Submit(context.Background())
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, vm.IsOpen())
	assert.Empty(t, fb.Requests())
}

func TestContacts_SubmitWithoutFormFails(t *testing.T) {
	client, _ := newClient(t)
	assert.ErrorIs(t, NewContacts(client).Submit(context.Background()), ErrFormClosed)
}

func TestContacts_SearchSentOnLoad(t *testing.T) {
	client, fb := newClient(t)
	fb.Reply(http.MethodGet, "/api/contactos", http.StatusOK, []domain.Contact{})

	vm := NewContacts(client)
	vm.SetSearch("maria")
	require.NoError(t, vm.Load(context.Background()))
	assert.Equal(t, "maria", fb.Requests()[0].Query.Get("search"))
}

func TestCRUD_DeleteRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	client, fb := newClient(t)
	fb.Reply(http.MethodDelete, "/api/tareas/8", http.StatusOK, map[string]string{"message": "deleted"})
	fb.Reply(http.MethodGet, "/api/tareas", http.StatusOK, []domain.Task{})

	vm := NewTasks(client)

	deleted, err := vm.Delete(ctx, 8, func() bool { return false })
	require.NoError(t, err)
	assert.False(t, deleted)
	deleted, err = vm.Delete(ctx, 8, nil)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Empty(t, fb.Requests())

	deleted, err = vm.Delete(ctx, 8, func() bool { return true })
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Len(t, fb.RequestsTo(http.MethodDelete, "/api/tareas/8"), 1)
	assert.Len(t, fb.RequestsTo(http.MethodGet, "/api/tareas"), 1)
}

func TestTasks_FilterSentOnLoad(t *testing.T) {
	client, fb := newClient(t)
	fb.Reply(http.MethodGet, "/api/tareas", http.StatusOK, []domain.Task{})

	vm := NewTasks(client)
	vm.SetFilter(api.TaskFilter{Priority: domain.PriorityHigh})
	require.NoError(t, vm.Load(context.Background()))

	q := fb.Requests()[0].Query
	assert.Equal(t, "alta", q.Get("prioridad"))
	assert.Len(t, q, 1)
}

func TestPreviewer_LeavesTemplateListUntouched(t *testing.T) {
	ctx := context.Background()
	client, fb := newClient(t)
	tpl := testutil.NewTestTemplate("Recordatorio", domain.TemplateTelegram, "Hola {contacto_nombre}")
	fb.Reply(http.MethodGet, "/api/plantillas", http.StatusOK, []domain.Template{tpl})
	fb.Reply(http.MethodPost, "/api/plantillas/"+fmtInt(tpl.ID)+"/preview", http.StatusOK, domain.TemplatePreview{Body: "Hola Juan Pérez"})

	templates := NewTemplates(client)
	require.NoError(t, templates.Load(ctx))
	before := templates.Items()
	fb.ResetRequests()

	preview, err := NewPreviewer(client).Preview(ctx, tpl.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hola Juan Pérez", preview.Body)

	assert.Equal(t, before, templates.Items())
	reqs := fb.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
}

func TestList_StaleLoadDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	calls := 0
	list := NewList(func(ctx context.Context) ([]string, error) {
		calls++
		if calls == 1 {
			close(started)
			<-release
			return []string{"old"}, nil
		}
		return []string{"new"}, nil
	})

	done := make(chan error)
	go func() { done <- list.Load(context.Background()) }()
	<-started

	require.NoError(t, list.Load(context.Background()))
	close(release)

	assert.ErrorIs(t, <-done, ErrStale)
	assert.Equal(t, []string{"new"}, list.Items())
}

func TestList_FailedLoadKeepsItems(t *testing.T) {
	fail := false
	list := NewList(func(ctx context.Context) ([]int, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return []int{1, 2}, nil
	})
	require.NoError(t, list.Load(context.Background()))
	fail = true
	require.Error(t, list.Load(context.Background()))
	assert.Equal(t, []int{1, 2}, list.Items())
	assert.EqualError(t, list.Err(), "boom")
	assert.True(t, list.Loaded())
}

func TestProjects_WithContactsLoadsPickerChoices(t *testing.T) {
	client, fb := newClient(t)
	ana := testutil.NewTestContact("Ana")
	fb.Reply(http.MethodGet, "/api/proyectos", http.StatusOK, []domain.Project{})
	fb.Reply(http.MethodGet, "/api/contactos", http.StatusOK, []domain.Contact{ana})

	vm := NewProjects(client).WithContacts(client)
	require.NoError(t, vm.Load(context.Background()))

	assert.Equal(t, []domain.Contact{ana}, vm.Contacts())
	contactReqs := fb.RequestsTo(http.MethodGet, "/api/contactos")
	require.Len(t, contactReqs, 1)
	assert.Empty(t, contactReqs[0].Query.Get("search"))
}

func TestTasks_WithContactsFailsWhenContactsFail(t *testing.T) {
	client, fb := newClient(t)
	fb.Reply(http.MethodGet, "/api/tareas", http.StatusOK, []domain.Task{testutil.NewTestTask("Call Ana")})
	fb.Reply(http.MethodGet, "/api/contactos", http.StatusInternalServerError, map[string]string{"detail": "boom"})

	vm := NewTasks(client).WithContacts(client)
	err := vm.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading contacts")
	assert.False(t, vm.Loaded())
	assert.Empty(t, vm.Items())
	assert.Empty(t, vm.Contacts())
}
