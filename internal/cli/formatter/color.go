package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/followup/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PriorityStyle maps a task priority to its color.
func PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityUrgent:
		return StyleRed
	case domain.PriorityHigh:
		return StyleYellow
	case domain.PriorityMedium:
		return StyleBlue
	case domain.PriorityLow:
		return StyleDim
	default:
		return StyleFg
	}
}

// PriorityBadge renders a priority such as "▲ Urgent".
func PriorityBadge(p domain.Priority) string {
	icon := "●"
	switch p {
	case domain.PriorityUrgent:
		icon = "▲"
	case domain.PriorityLow:
		icon = "○"
	}
	return PriorityStyle(p).Render(icon + " " + p.Label())
}

// StatusStyle maps a task status to its column color.
func StatusStyle(s domain.TaskStatus) lipgloss.Style {
	switch s {
	case domain.StatusPending:
		return StyleBlue
	case domain.StatusFollowingUp:
		return StylePurple
	case domain.StatusAwaitingResponse:
		return StyleYellow
	case domain.StatusCompleted:
		return StyleGreen
	default:
		return StyleDim
	}
}

// TaskStatusPill renders a task status with its column color.
func TaskStatusPill(s domain.TaskStatus) string {
	icon := "○"
	switch s {
	case domain.StatusFollowingUp:
		icon = "◐"
	case domain.StatusAwaitingResponse:
		icon = "◷"
	case domain.StatusCompleted:
		icon = "✔"
	}
	return StatusStyle(s).Render(icon + " " + s.Label())
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Success renders a green check followed by msg.
func Success(msg string) string {
	return StyleGreen.Render("✔") + " " + msg
}

// Error renders err for terminal output.
func Error(err error) string {
	return StyleRed.Render("Error: " + err.Error())
}
