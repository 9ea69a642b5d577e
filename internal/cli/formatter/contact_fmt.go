package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/followup/internal/domain"
)

// FormatContactList renders contacts as a table inside a box.
func FormatContactList(contacts []domain.Contact, search string) string {
	var sub string
	if search != "" {
		sub = Dim(fmt.Sprintf("matching %q", search)) + "\n\n"
	}
	if len(contacts) == 0 {
		return RenderBox("Contacts", sub+Dim("No contacts found."))
	}

	headers := []string{"ID", "NAME", "EMAIL", "PHONE", "COMPANY"}
	rows := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, []string{
			Dim(strconv.FormatInt(c.ID, 10)),
			Bold(c.Name),
			Or(c.Email),
			Or(c.Phone),
			Or(c.Company),
		})
	}
	return RenderBox("Contacts", sub+RenderTable(headers, rows))
}

// FormatContactShow renders one contact as a detail card.
func FormatContactShow(c *domain.Contact) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(c.Name) + "  " + Dim("#"+strconv.FormatInt(c.ID, 10)) + "\n\n")
	field(&b, "EMAIL  ", Or(c.Email))
	field(&b, "PHONE  ", Or(c.Phone))
	field(&b, "COMPANY", Or(c.Company))
	if c.TelegramID != nil && *c.TelegramID != "" {
		field(&b, "TELEGRAM", *c.TelegramID)
	}
	if c.Notes != nil && strings.TrimSpace(*c.Notes) != "" {
		b.WriteString("\n" + Header("Notes") + "\n")
		b.WriteString("  " + strings.ReplaceAll(WrapText(*c.Notes, 70), "\n", "\n  ") + "\n")
	}
	return RenderBox("", b.String())
}

func field(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s  %s\n", StyleDim.Render(label), value)
}
