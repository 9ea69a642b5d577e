package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/followup/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatLanding renders the public landing page.
func FormatLanding(width int) string {
	if width <= 0 || width > 90 {
		width = 90
	}
	var b strings.Builder
	b.WriteString(StylePurple.Bold(true).Render("followup") + "\n")
	b.WriteString(StyleBold.Render("Never lose track of a client again.") + "\n\n")
	b.WriteString(WrapText("Keep contacts, follow-up tasks and projects in one place, and get "+
		"reminders on Telegram or by email before anything slips.", width-4) + "\n\n")

	b.WriteString(Header("Features") + "\n")
	for _, f := range []string{
		"Kanban board for every follow-up",
		"Telegram and email reminders",
		"Reusable message templates with placeholders",
		"Projects linked to your contacts",
		"Dashboard with what is due this week",
	} {
		b.WriteString("  " + StyleGreen.Render("✔") + " " + f + "\n")
	}
	return b.String()
}

// FormatPricing renders the plan cards for monthly or annual billing.
func FormatPricing(annual bool) string {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2).
		Width(30)
	highlighted := card.BorderForeground(ColorHeader)

	cards := make([]string, 0, len(domain.Plans))
	for _, p := range domain.Plans {
		var b strings.Builder
		b.WriteString(StyleBold.Render(p.Name))
		if p.Highlighted {
			b.WriteString("  " + StyleHeader.Render("popular"))
		}
		b.WriteString("\n\n")
		b.WriteString(StyleHeader.Render(fmt.Sprintf("$%d", p.Price(annual))) + Dim(" /month") + "\n")
		if annual && p.AnnualPerMo > 0 {
			b.WriteString(Dim(fmt.Sprintf("$%d billed yearly", p.AnnualTotal())) + "\n")
		} else {
			b.WriteString("\n")
		}
		b.WriteString("\n")
		for _, f := range p.Features {
			b.WriteString(StyleGreen.Render("✔") + " " + f + "\n")
		}
		style := card
		if p.Highlighted {
			style = highlighted
		}
		cards = append(cards, style.Render(strings.TrimRight(b.String(), "\n")))
	}

	period := "Monthly billing"
	if annual {
		period = "Annual billing"
	}
	return Header("Pricing") + "\n" + Dim(period) + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// FormatProfile renders the /usuarios/me profile.
func FormatProfile(u *domain.User) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(u.Name) + "\n\n")
	field(&b, "TELEGRAM", u.TelegramID)
	field(&b, "EMAIL   ", Or(u.Email))
	field(&b, "TIMEZONE", u.Timezone)
	return RenderBox("Profile", b.String())
}
