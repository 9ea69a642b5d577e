package viewmodel

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/followup/internal/domain"
	"github.com/alexanderramin/followup/internal/testutil"
)

func fmtInt(n int64) string { return strconv.FormatInt(n, 10) }

func seedBoard(fb *testutil.FakeBackend, task domain.Task) {
	fb.Reply(http.MethodGet, "/api/tareas/kanban", http.StatusOK, domain.Place([]domain.Task{task}))
	fb.Reply(http.MethodGet, "/api/tareas", http.StatusOK, []domain.Task{task})
}

func TestBoard_LoadFetchesBothParts(t *testing.T) {
	client, fb := newClient(t)
	task := testutil.NewTestTask("Call Ana")
	seedBoard(fb, task)

	tasks := NewTasks(client)
	board := NewBoard(client, tasks, nil)
	require.NoError(t, board.Load(context.Background()))

	assert.True(t, board.Loaded())
	assert.Len(t, board.Snapshot().Tasks(domain.StatusPending), 1)
	assert.True(t, tasks.Loaded())
	assert.Len(t, tasks.Items(), 1)
	assert.Nil(t, board.Summary())
	assert.Equal(t, domain.KanbanColumns, board.Columns())
}

func TestBoard_SameColumnDropIsNoop(t *testing.T) {
	client, fb := newClient(t)
	task := testutil.NewTestTask("Call Ana", testutil.WithStatus(domain.StatusFollowingUp))

	board := NewBoard(client, nil, nil)
	p := board.DragStart(task, domain.StatusFollowingUp)
	assert.Equal(t, DragPayload{TaskID: task.ID, From: domain.StatusFollowingUp}, p)

	require.NoError(t, board.Drop(context.Background(), p, domain.StatusFollowingUp))
	assert.Empty(t, fb.Requests())
}

func TestBoard_UnknownColumnIsRejected(t *testing.T) {
	client, fb := newClient(t)
	board := NewBoard(client, nil, nil)
	p := board.DragStart(testutil.NewTestTask("x"), domain.StatusPending)

	err := board.Drop(context.Background(), p, "archivada")
	assert.ErrorIs(t, err, ErrUnknownColumn)
	assert.Empty(t, fb.Requests())
}

func TestBoard_CrossColumnDropPatchesOnceThenReloads(t *testing.T) {
	ctx := context.Background()
	client, fb := newClient(t)
	task := testutil.NewTestTask("Send quote")
	seedBoard(fb, task)
	patchPath := "/api/tareas/" + fmtInt(task.ID) + "/estado"
	fb.Reply(http.MethodPatch, patchPath, http.StatusOK, nil)

	tasks := NewTasks(client)
	board := NewBoard(client, tasks, nil)
	p := board.DragStart(task, domain.StatusPending)
	require.NoError(t, board.Drop(ctx, p, domain.StatusCompleted))

	reqs := fb.Requests()
	require.Len(t, reqs, 3)
	assert.Equal(t, http.MethodPatch, reqs[0].Method)
	assert.Equal(t, patchPath, reqs[0].Path)
	assert.Equal(t, "completado", reqs[0].Query.Get("estado"))
	assert.Equal(t, 1, fb.CountWrites())
	assert.Len(t, fb.RequestsTo(http.MethodGet, "/api/tareas/kanban"), 1)
	assert.Len(t, fb.RequestsTo(http.MethodGet, "/api/tareas"), 1)
}

func TestBoard_FailedDropStillReloads(t *testing.T) {
	ctx := context.Background()
	client, fb := newClient(t)
	task := testutil.NewTestTask("Send quote")
	seedBoard(fb, task)
	fb.Reply(http.MethodPatch, "/api/tareas/"+fmtInt(task.ID)+"/estado", http.StatusNotFound, map[string]string{"detail": "Tarea no encontrada"})

	board := NewBoard(client, nil, nil)
	err := board.Drop(ctx, board.DragStart(task, domain.StatusPending), domain.StatusCompleted)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Tarea no encontrada")
	assert.Len(t, fb.RequestsTo(http.MethodGet, "/api/tareas/kanban"), 1)
	assert.Len(t, board.Snapshot().Tasks(domain.StatusPending), 1)
}

func TestBoard_FailedReloadKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	client, fb := newClient(t)
	task := testutil.NewTestTask("Send quote")
	seedBoard(fb, task)

	board := NewBoard(client, NewTasks(client), nil)
	require.NoError(t, board.Load(ctx))

	fb.Reply(http.MethodGet, "/api/tareas", http.StatusInternalServerError, map[string]string{"detail": "db down"})
	err := board.Load(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	assert.Len(t, board.Snapshot().Tasks(domain.StatusPending), 1)
	assert.Error(t, board.Err())
}

func TestDashboard_LoadsSummaryAndSnapshot(t *testing.T) {
	ctx := context.Background()
	client, fb := newClient(t)
	fb.Reply(http.MethodGet, "/api/dashboard", http.StatusOK, domain.Dashboard{
		TotalContacts:     3,
		TotalPendingTasks: 2,
		TasksByStatus:     map[domain.TaskStatus]int{domain.StatusPending: 2},
	})
	fb.Reply(http.MethodGet, "/api/tareas/kanban", http.StatusOK, domain.Place(nil))

	board := NewDashboard(client, nil)
	require.NoError(t, board.Load(ctx))
	require.NotNil(t, board.Summary())
	assert.Equal(t, 3, board.Summary().TotalContacts)
}

func TestDashboard_PartialFailureAppliesNothing(t *testing.T) {
	ctx := context.Background()
	client, fb := newClient(t)
	fb.Reply(http.MethodGet, "/api/dashboard", http.StatusOK, domain.Dashboard{TotalContacts: 3})

	board := NewDashboard(client, nil)
	err := board.Load(ctx)
	require.Error(t, err)
	assert.False(t, board.Loaded())
	assert.Nil(t, board.Summary())
}

type gatedBoardAPI struct {
	release chan struct{}
	started chan struct{}
	calls   int
}

func (g *gatedBoardAPI) ChangeTaskStatus(context.Context, int64, domain.TaskStatus) error {
	return errors.New("unused")
}

func (g *gatedBoardAPI) TaskKanban(context.Context) (domain.KanbanSnapshot, error) {
	return domain.Place(nil), nil
}

func (g *gatedBoardAPI) Dashboard(context.Context) (*domain.Dashboard, error) {
	g.calls++
	if g.calls == 1 {
		close(g.started)
		<-g.release
		return &domain.Dashboard{TotalContacts: 1}, nil
	}
	return &domain.Dashboard{TotalContacts: 2}, nil
}

func TestDashboard_StaleLoadDiscarded(t *testing.T) {
	gated := &gatedBoardAPI{release: make(chan struct{}), started: make(chan struct{})}
	board := NewDashboard(gated, nil)

	done := make(chan error)
	go func() { done <- board.Load(context.Background()) }()
	<-gated.started

	require.NoError(t, board.Load(context.Background()))
	close(gated.release)

	assert.ErrorIs(t, <-done, ErrStale)
	assert.Equal(t, 2, board.Summary().TotalContacts)
}
