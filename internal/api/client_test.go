package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/followup/internal/domain"
	"github.com/alexanderramin/followup/internal/testutil"
)

type staticIdentity string

func (s staticIdentity) Identity() string { return string(s) }

func newTestClient(t *testing.T) (*Client, *testutil.FakeBackend) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	return NewClient(Config{BaseURL: fb.BaseURL()}, staticIdentity("123456"), NoopObserver{}), fb
}

func TestClient_SendsIdentityHeaders(t *testing.T) {
	client, fb := newTestClient(t)
	fb.Reply(http.MethodGet, "/api/contactos", http.StatusOK, []domain.Contact{})

	_, err := client.ListContacts(context.Background(), "")
	require.NoError(t, err)

	reqs := fb.RequestsTo(http.MethodGet, "/api/contactos")
	require.Len(t, reqs, 1)
	assert.Equal(t, "123456", reqs[0].Header.Get(HeaderIdentity))
	assert.Equal(t, "application/json", reqs[0].Header.Get("Content-Type"))
	assert.NotEmpty(t, reqs[0].Header.Get(HeaderRequestID))
	assert.Empty(t, reqs[0].Query)
}

func TestClient_ListContactsSearch(t *testing.T) {
	client, fb := newTestClient(t)
	fb.Reply(http.MethodGet, "/api/contactos", http.StatusOK, []domain.Contact{
		testutil.NewTestContact("María López"),
	})

	contacts, err := client.ListContacts(context.Background(), "maria")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "María López", contacts[0].Name)

	reqs := fb.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "maria", reqs[0].Query.Get("search"))
}

func TestClient_ListTasksOmitsEmptyFilterKeys(t *testing.T) {
	client, fb := newTestClient(t)
	fb.Reply(http.MethodGet, "/api/tareas", http.StatusOK, []domain.Task{})

	_, err := client.ListTasks(context.Background(), TaskFilter{Priority: domain.PriorityHigh})
	require.NoError(t, err)

	reqs := fb.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "alta", reqs[0].Query.Get("prioridad"))
	assert.Len(t, reqs[0].Query, 1)
	for _, k := range []string{"estado", "contacto_id", "proyecto_id", "fecha_desde", "fecha_hasta"} {
		assert.False(t, reqs[0].Query.Has(k), k)
	}
}

func TestTaskFilter_Query(t *testing.T) {
	q := TaskFilter{
		Status:    domain.StatusPending,
		ContactID: 3,
		ProjectID: 0,
		From:      "2025-01-01",
		To:        "2025-01-31",
	}.Query()
	assert.Equal(t, "contacto_id=3&estado=pendiente&fecha_desde=2025-01-01&fecha_hasta=2025-01-31", q.Encode())
	assert.True(t, TaskFilter{}.IsZero())
	assert.Empty(t, TaskFilter{}.Query())
}

func TestClient_ChangeTaskStatus(t *testing.T) {
	client, fb := newTestClient(t)
	fb.Reply(http.MethodPatch, "/api/tareas/5/estado", http.StatusOK, map[string]string{"message": "ok"})

	err := client.ChangeTaskStatus(context.Background(), 5, domain.StatusCompleted)
	require.NoError(t, err)

	reqs := fb.RequestsTo(http.MethodPatch, "/api/tareas/5/estado")
	require.Len(t, reqs, 1)
	assert.Equal(t, "completado", reqs[0].Query.Get("estado"))
	assert.Empty(t, reqs[0].Body)
}

func TestClient_CreateTaskBody(t *testing.T) {
	client, fb := newTestClient(t)
	fb.Reply(http.MethodPost, "/api/tareas", http.StatusCreated, testutil.NewTestTask("Call", testutil.WithTaskID(77)))

	form := domain.NewTaskForm()
	form.Title = "Call"
	in, err := form.Input()
	require.NoError(t, err)

	task, err := client.CreateTask(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(77), task.ID)

	var sent map[string]any
	fb.Requests()[0].DecodeBody(t, &sent)
	assert.Equal(t, "Call", sent["titulo"])
	assert.Equal(t, "media", sent["prioridad"])
	assert.Nil(t, sent["contacto_id"])
	assert.Contains(t, sent, "contacto_id")
}

func TestClient_ErrorDetail(t *testing.T) {
	client, fb := newTestClient(t)
	fb.Reply(http.MethodDelete, "/api/contactos/9", http.StatusBadRequest, map[string]string{"detail": "Contacto tiene tareas"})

	err := client.DeleteContact(context.Background(), 9)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Contacto tiene tareas", err.Error())
	assert.True(t, IsStatus(err, http.StatusBadRequest))
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"detail string", `{"detail":"Not found"}`, "Not found"},
		{"detail list", `{"detail":[{"msg":"field required"},{"msg":"bad value"}]}`, "field required; bad value"},
		{"message", `{"message":"nope"}`, "nope"},
		{"html", `<html>oops</html>`, "request failed (HTTP 500)"},
		{"empty", ``, "request failed (HTTP 500)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage(500, []byte(tt.body)))
		})
	}
}

func TestClient_ConnectionError(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	base := fb.BaseURL()
	fb.Server.Close()

	client := NewClient(Config{BaseURL: base}, staticIdentity("1"), nil)
	_, err := client.Health(context.Background())
	assert.ErrorIs(t, err, ErrConnection)
}

func TestClient_Timeout(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.Handle(http.MethodGet, "/api/health", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	client := NewClient(Config{BaseURL: fb.BaseURL(), Timeout: 50 * time.Millisecond}, staticIdentity("1"), nil)
	_, err := client.Health(context.Background())
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestClient_PreviewTemplateSendsVars(t *testing.T) {
	client, fb := newTestClient(t)
	subject := "Recordatorio"
	fb.Reply(http.MethodPost, "/api/plantillas/3/preview", http.StatusOK, domain.TemplatePreview{Subject: &subject, Body: "Hola Juan"})

	preview, err := client.PreviewTemplate(context.Background(), 3, map[string]string{"contacto_nombre": "Juan"})
	require.NoError(t, err)
	assert.Equal(t, "Hola Juan", preview.Body)
	assert.Equal(t, "Recordatorio", *preview.Subject)

	var sent map[string]string
	fb.Requests()[0].DecodeBody(t, &sent)
	assert.Equal(t, "Juan", sent["contacto_nombre"])
}

func TestClient_TaskKanban(t *testing.T) {
	client, fb := newTestClient(t)
	fb.Reply(http.MethodGet, "/api/tareas/kanban", http.StatusOK, map[string][]domain.Task{
		"pendiente":  {testutil.NewTestTask("a")},
		"completado": {},
	})

	snap, err := client.TaskKanban(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Tasks(domain.StatusPending), 1)
	assert.Empty(t, snap.Tasks(domain.StatusFollowingUp))
}

func TestLogObserver_WritesSlogRecord(t *testing.T) {
	var buf bytes.Buffer
	client, fb := newTestClient(t)
	client.observer = NewLogObserver(&buf)
	client.newID = func() string { return "req-1" }
	fb.Reply(http.MethodGet, "/api/health", http.StatusOK, HealthStatus{Status: "healthy"})
	fb.Reply(http.MethodGet, "/api/dashboard", http.StatusInternalServerError, map[string]string{"detail": "boom"})

	_, err := client.Health(context.Background())
	require.NoError(t, err)
	_, err = client.Dashboard(context.Background())
	require.Error(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "msg=api_call")
	assert.Contains(t, lines[0], "path=/health")
	assert.Contains(t, lines[0], "status=200")
	assert.Contains(t, lines[0], "request_id=req-1")
	assert.Contains(t, lines[1], "level=ERROR")
	assert.Contains(t, lines[1], "error_code=HTTP_500")
}
