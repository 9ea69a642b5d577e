package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBar renders count out of total as a bar like ████░░░░ 4, in the
// given style. Used for the dashboard's per-status distribution.
func RenderBar(count, total, width int, style func(...string) string) string {
	if width < 2 {
		width = 2
	}
	filled := 0
	if total > 0 && count > 0 {
		filled = count * width / total
		if filled == 0 {
			filled = 1
		}
	}
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	if style != nil {
		bar = style(bar)
	}
	return fmt.Sprintf("%s %d", bar, count)
}
