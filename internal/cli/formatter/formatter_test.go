package formatter

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/followup/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

func TestFormatContactList(t *testing.T) {
	out := plain(FormatContactList([]domain.Contact{
		{ID: 3, Name: "Ana Pérez", Email: ptr("ana@x.com"), Company: ptr("Acme")},
	}, "ana"))
	assert.Contains(t, out, `matching "ana"`)
	assert.Contains(t, out, "Ana Pérez")
	assert.Contains(t, out, "ana@x.com")
	assert.Contains(t, out, "Acme")

	assert.Contains(t, plain(FormatContactList(nil, "")), "No contacts found.")
}

func TestFormatTaskList(t *testing.T) {
	out := plain(FormatTaskList("Tasks", []domain.Task{{
		ID:       7,
		Title:    "Send proposal",
		Status:   domain.StatusAwaitingResponse,
		Priority: domain.PriorityUrgent,
		DueAt:    &domain.Timestamp{Time: now.Add(24 * time.Hour)},
		Contact:  &domain.ContactRef{Name: "Ana"},
	}}, now))
	assert.Contains(t, out, "Send proposal")
	assert.Contains(t, out, domain.StatusAwaitingResponse.Label())
	assert.Contains(t, out, domain.PriorityUrgent.Label())
	assert.Contains(t, out, "Tomorrow")
	assert.Contains(t, out, "Ana")
}

func TestFormatKanban_ShowsAllColumns(t *testing.T) {
	snap := domain.Place([]domain.Task{
		{ID: 1, Title: "Call Ana", Status: domain.StatusPending},
		{ID: 2, Title: "Invoice", Status: domain.StatusCompleted},
	})
	out := plain(FormatKanban(snap, 160, nil, now))
	for _, col := range domain.KanbanColumns {
		assert.Contains(t, out, col.Label())
	}
	assert.Contains(t, out, "Call Ana")
	assert.Contains(t, out, "Invoice")
	assert.Contains(t, out, "no tasks")
}

func TestFormatKanban_CarriedCardGhost(t *testing.T) {
	snap := domain.Place([]domain.Task{{ID: 1, Title: "Call Ana", Status: domain.StatusPending}})
	out := plain(FormatKanban(snap, 160, &KanbanCursor{Column: 0, Row: 0, Carrying: true, Target: 2}, now))
	assert.Contains(t, out, "▼")
	assert.Contains(t, out, "drop:")
}

func TestFormatTemplatePreview(t *testing.T) {
	out := plain(FormatTemplatePreview(&domain.TemplatePreview{
		Subject: ptr("Reminder"),
		Body:    "Hola Ana, tu tarea vence mañana.",
	}, 60))
	assert.Contains(t, out, "Reminder")
	assert.Contains(t, out, "Hola Ana")
}

func TestFormatDashboard(t *testing.T) {
	out := plain(FormatDashboard(&domain.Dashboard{
		TotalContacts:       12,
		TotalPendingTasks:   5,
		TotalTasksToday:     2,
		TotalActiveProjects: 3,
		TasksByStatus:       map[domain.TaskStatus]int{domain.StatusPending: 4, domain.StatusCompleted: 1},
		Upcoming:            []domain.Task{{Title: "Renewal call", DueAt: &domain.Timestamp{Time: now.Add(48 * time.Hour)}}},
	}, now))
	assert.Contains(t, out, "12")
	assert.Contains(t, out, "Active projects")
	assert.Contains(t, out, "Renewal call")
	assert.Contains(t, out, "TASKS BY STATUS")
}

func TestFormatPricing(t *testing.T) {
	monthly := plain(FormatPricing(false))
	annual := plain(FormatPricing(true))
	assert.Contains(t, monthly, "$9")
	assert.Contains(t, monthly, "Monthly billing")
	assert.Contains(t, annual, "$7")
	assert.Contains(t, annual, "$84 billed yearly")
	assert.NotContains(t, monthly, "billed yearly")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]int{"a": 1}, false))
	assert.Equal(t, "{\"a\":1}\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, []int{1}, true))
	assert.Equal(t, "[\n  1\n]\n", buf.String())
}

func TestError(t *testing.T) {
	assert.Equal(t, "Error: boom", plain(Error(errors.New("boom"))))
}
