package formatter

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	mdMu sync.Mutex
	// Renderers are cached per width. A fixed standard style avoids the
	// terminal background query WithAutoStyle performs.
	mdRenderers = map[int]*glamour.TermRenderer{}
)

// RenderMarkdown renders md for the terminal wrapped at width. On any
// renderer failure the input is returned unchanged.
func RenderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}

	mdMu.Lock()
	defer mdMu.Unlock()
	r := mdRenderers[width]
	if r == nil {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRenderers[width] = r
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// placeholderMarkdown makes {placeholder} fields stand out as inline code.
func placeholderMarkdown(body string) string {
	var b strings.Builder
	for {
		open := strings.IndexByte(body, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(body[open:], '}')
		if end < 0 {
			break
		}
		b.WriteString(body[:open])
		b.WriteString("`" + body[open:open+end+1] + "`")
		body = body[open+end+1:]
	}
	b.WriteString(body)
	return b.String()
}
