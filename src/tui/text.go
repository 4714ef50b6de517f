package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// truncateCell caps text to a visual width, appending an ellipsis when it
// had to cut. Width accounting handles double-width characters.
func truncateCell(s string, width int) string {
	s = strings.TrimSpace(s)
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width-1, "") + "…"
}

// padCell truncates and right-pads text to an exact visual width, keeping
// table columns aligned.
func padCell(s string, width int) string {
	s = truncateCell(s, width)
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
