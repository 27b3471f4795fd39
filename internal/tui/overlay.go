package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// placeOverlay draws fg on top of bg with its top-left corner at cell (x, y).
// Parts of fg that fall outside bg are clipped; x and y may be negative.
func placeOverlay(bg, fg string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")

	bgWidth := 0
	for _, l := range bgLines {
		bgWidth = max(bgWidth, ansi.StringWidth(l))
	}

	for i, line := range fgLines {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}

		col := x
		if col < 0 {
			line = ansi.TruncateLeft(line, -col, "")
			col = 0
		}
		if col >= bgWidth {
			continue
		}
		line = ansi.Truncate(line, bgWidth-col, "")
		w := ansi.StringWidth(line)
		if w == 0 {
			continue
		}

		base := bgLines[row]
		left := ansi.Truncate(base, col, "")
		if lw := ansi.StringWidth(left); lw < col {
			left += strings.Repeat(" ", col-lw)
		}
		right := ""
		if ansi.StringWidth(base) > col+w {
			right = ansi.TruncateLeft(base, col+w, "")
		}

		bgLines[row] = left + ansi.ResetStyle + line + ansi.ResetStyle + right
	}

	return strings.Join(bgLines, "\n")
}
