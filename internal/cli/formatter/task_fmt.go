package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/followup/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatTaskList renders tasks as a table inside a box.
func FormatTaskList(title string, tasks []domain.Task, now time.Time) string {
	if len(tasks) == 0 {
		return RenderBox(title, Dim("No tasks found."))
	}
	headers := []string{"ID", "TITLE", "STATUS", "PRIORITY", "DUE", "CONTACT"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		contact := Dim("--")
		if name := t.ContactName(); name != "" {
			contact = name
		}
		rows = append(rows, []string{
			Dim(strconv.FormatInt(t.ID, 10)),
			Bold(Truncate(t.Title, 40)),
			TaskStatusPill(t.Status),
			PriorityBadge(t.Priority),
			DueLabel(t, now),
			contact,
		})
	}
	return RenderBox(title, RenderTable(headers, rows))
}

// FormatTaskShow renders one task as a detail card.
func FormatTaskShow(t *domain.Task, now time.Time) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(t.Title) + "  " + Dim("#"+strconv.FormatInt(t.ID, 10)) + "\n\n")
	field(&b, "STATUS  ", TaskStatusPill(t.Status))
	field(&b, "PRIORITY", PriorityBadge(t.Priority))
	due := Dim("--")
	if t.DueAt != nil && !t.DueAt.IsZero() {
		due = HumanDateFrom(t.DueAt.Time, now) + "  " + DueLabel(*t, now)
	}
	field(&b, "DUE     ", due)
	field(&b, "CHANNEL ", string(t.Channel))
	if name := t.ContactName(); name != "" {
		field(&b, "CONTACT ", name)
	}
	if t.ProjectID != nil {
		field(&b, "PROJECT ", "#"+strconv.FormatInt(*t.ProjectID, 10))
	}
	if t.Description != nil && strings.TrimSpace(*t.Description) != "" {
		b.WriteString("\n" + Header("Description") + "\n")
		b.WriteString("  " + strings.ReplaceAll(WrapText(*t.Description, 70), "\n", "\n  ") + "\n")
	}
	return RenderBox("", b.String())
}

// KanbanCursor marks a card on the board: the selected card, and
// optionally a card being carried to another column.
type KanbanCursor struct {
	Column   int
	Row      int
	Carrying bool
	// Target is the column the carried card would be dropped on.
	Target int
}

// Card renders a compact kanban card.
func Card(t domain.Task, width int, now time.Time) string {
	var lines []string
	lines = append(lines, Bold(Truncate(t.Title, width)))
	meta := PriorityBadge(t.Priority)
	if t.DueAt != nil && !t.DueAt.IsZero() {
		meta += " " + DueLabel(t, now)
	}
	lines = append(lines, meta)
	if name := t.ContactName(); name != "" {
		lines = append(lines, Dim(Truncate(name, width)))
	}
	return strings.Join(lines, "\n")
}

// FormatKanban renders the board as side-by-side columns. When cur is
// non-nil the selected card is highlighted and a carried card is shown
// as a ghost in its target column.
func FormatKanban(snap domain.KanbanSnapshot, totalWidth int, cur *KanbanCursor, now time.Time) string {
	cols := domain.KanbanColumns
	colWidth := 28
	if totalWidth > 0 {
		colWidth = totalWidth/len(cols) - 3
		if colWidth < 16 {
			colWidth = 16
		}
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Width(colWidth).
		Padding(0, 1)
	selectedStyle := cardStyle.BorderForeground(ColorHeader)
	ghostStyle := cardStyle.BorderStyle(lipgloss.NormalBorder()).BorderForeground(ColorPurple)

	rendered := make([]string, 0, len(cols))
	for ci, col := range cols {
		tasks := snap.Tasks(col)
		var parts []string

		heading := StatusStyle(col).Bold(true).Render(fmt.Sprintf("%s (%d)", col.Label(), len(tasks)))
		if cur != nil && cur.Carrying && cur.Target == ci {
			heading = StyleHeader.Render("▼ ") + heading
		}
		parts = append(parts, heading)

		if len(tasks) == 0 {
			parts = append(parts, Dim("  no tasks"))
		}
		for ri, t := range tasks {
			style := cardStyle
			if cur != nil && cur.Column == ci && cur.Row == ri {
				style = selectedStyle
			}
			parts = append(parts, style.Render(Card(t, colWidth-2, now)))
		}
		if cur != nil && cur.Carrying && cur.Target == ci && cur.Target != cur.Column {
			if src := snap.Tasks(cols[cur.Column]); cur.Row < len(src) {
				parts = append(parts, ghostStyle.Render(Dim("drop: ")+Truncate(src[cur.Row].Title, colWidth-8)))
			}
		}

		rendered = append(rendered, lipgloss.NewStyle().Width(colWidth+3).Render(strings.Join(parts, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
