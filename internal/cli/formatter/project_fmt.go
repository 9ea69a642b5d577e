package formatter

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/followup/internal/domain"
)

// FormatProjectList renders projects as a table inside a box.
func FormatProjectList(projects []domain.Project) string {
	if len(projects) == 0 {
		return RenderBox("Projects", Dim("No projects found."))
	}
	headers := []string{"ID", "NAME", "STATUS", "CONTACT", "DESCRIPTION"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		contact := Dim("--")
		if name := p.ContactName(); name != "" {
			contact = name
		}
		desc := Dim("--")
		if p.Description != nil && *p.Description != "" {
			desc = Dim(Truncate(*p.Description, 40))
		}
		rows = append(rows, []string{
			Dim(strconv.FormatInt(p.ID, 10)),
			Bold(p.Name),
			ProjectStatusPill(p.Status),
			contact,
			desc,
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

func FormatProjectShow(p *domain.Project) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(p.Name) + "  " + Dim("#"+strconv.FormatInt(p.ID, 10)) + "\n\n")
	field(&b, "STATUS ", ProjectStatusPill(p.Status))
	if name := p.ContactName(); name != "" {
		field(&b, "CONTACT", name)
	} else if p.ContactID != nil {
		field(&b, "CONTACT", "#"+strconv.FormatInt(*p.ContactID, 10))
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) != "" {
		b.WriteString("\n" + Header("Description") + "\n")
		b.WriteString("  " + strings.ReplaceAll(WrapText(*p.Description, 70), "\n", "\n  ") + "\n")
	}
	return RenderBox("", b.String())
}
