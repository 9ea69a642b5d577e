package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/followup/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatDashboardStats renders the four summary counters side by side.
func FormatDashboardStats(d *domain.Dashboard) string {
	tile := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 2).
		Width(22)

	stat := func(label string, n int, style lipgloss.Style) string {
		return tile.Render(style.Bold(true).Render(fmt.Sprintf("%d", n)) + "\n" + Dim(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		stat("Contacts", d.TotalContacts, StyleBlue),
		stat("Pending tasks", d.TotalPendingTasks, StyleYellow),
		stat("Due today", d.TotalTasksToday, StyleRed),
		stat("Active projects", d.TotalActiveProjects, StyleGreen),
	)
}

// FormatStatusDistribution renders one bar per kanban column.
func FormatStatusDistribution(byStatus map[domain.TaskStatus]int) string {
	total := 0
	for _, n := range byStatus {
		total += n
	}
	var b strings.Builder
	b.WriteString(Header("Tasks by status") + "\n")
	for _, col := range domain.KanbanColumns {
		label := fmt.Sprintf("%-18s", col.Label())
		b.WriteString("  " + StatusStyle(col).Render(label) + RenderBar(byStatus[col], total, 24, StatusStyle(col).Render) + "\n")
	}
	return b.String()
}

// FormatUpcoming lists tasks due in the coming days.
func FormatUpcoming(tasks []domain.Task, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Upcoming (7 days)") + "\n")
	if len(tasks) == 0 {
		b.WriteString("  " + Dim("Nothing due this week.") + "\n")
		return b.String()
	}
	for _, t := range tasks {
		line := fmt.Sprintf("  %s  %s", DueLabel(t, now), Bold(Truncate(t.Title, 40)))
		if name := t.ContactName(); name != "" {
			line += "  " + Dim(name)
		}
		b.WriteString(line + "  " + PriorityBadge(t.Priority) + "\n")
	}
	return b.String()
}

// FormatDashboard renders the full summary for the dashboard command.
func FormatDashboard(d *domain.Dashboard, now time.Time) string {
	var b strings.Builder
	b.WriteString(FormatDashboardStats(d) + "\n\n")
	b.WriteString(FormatStatusDistribution(d.TasksByStatus) + "\n")
	b.WriteString(FormatUpcoming(d.Upcoming, now))
	return RenderBox("Dashboard", b.String())
}
