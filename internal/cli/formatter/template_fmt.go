package formatter

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/followup/internal/domain"
)

// TypeBadge renders a template type.
func TypeBadge(t domain.TemplateType) string {
	switch t {
	case domain.TemplateEmail:
		return StyleBlue.Render("✉ email")
	case domain.TemplateTelegram:
		return StylePurple.Render("➤ telegram")
	default:
		return Dim(string(t))
	}
}

// FormatTemplateList renders templates as a table inside a box.
func FormatTemplateList(templates []domain.Template) string {
	if len(templates) == 0 {
		return RenderBox("Templates", Dim("No templates found."))
	}
	headers := []string{"ID", "NAME", "TYPE", "DEFAULT", "MESSAGE"}
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		def := ""
		if t.IsDefault {
			def = StyleGreen.Render("★")
		}
		rows = append(rows, []string{
			Dim(strconv.FormatInt(t.ID, 10)),
			Bold(t.Name),
			TypeBadge(t.Type),
			def,
			Dim(Truncate(strings.ReplaceAll(t.Body, "\n", " "), 40)),
		})
	}
	return RenderBox("Templates", RenderTable(headers, rows))
}

// FormatTemplateShow renders a template with its placeholders highlighted.
func FormatTemplateShow(t *domain.Template, width int) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(t.Name) + "  " + TypeBadge(t.Type))
	if t.IsDefault {
		b.WriteString("  " + StyleGreen.Render("★ default"))
	}
	b.WriteString("\n\n")
	if t.Type == domain.TemplateEmail {
		field(&b, "SUBJECT", Or(t.Subject))
		b.WriteString("\n")
	}
	b.WriteString(Header("Message") + "\n")
	b.WriteString(RenderMarkdown(placeholderMarkdown(t.Body), width) + "\n")
	return RenderBox("", b.String())
}

// FormatTemplatePreview renders the backend's rendering of a template.
func FormatTemplatePreview(p *domain.TemplatePreview, width int) string {
	var b strings.Builder
	if p.Subject != nil && *p.Subject != "" {
		field(&b, "SUBJECT", Bold(*p.Subject))
		b.WriteString("\n")
	}
	b.WriteString(RenderMarkdown(p.Body, width) + "\n")
	return RenderBox("Preview", b.String())
}

// FormatPlaceholders lists the variables a template may use.
func FormatPlaceholders() string {
	parts := make([]string, len(domain.TemplatePlaceholders))
	for i, p := range domain.TemplatePlaceholders {
		parts[i] = StyleYellow.Render("{" + p + "}")
	}
	return Dim("Placeholders: ") + strings.Join(parts, " ")
}
