package viewport

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/robinovitch61/thr/internal/util"
)

func clampValMinMax(v, minimum, maximum int) int {
	return max(minimum, min(maximum, v))
}

// floorDiv divides rounding toward negative infinity, so negative pixel offsets map to the row above
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// splitLines splits a rendered item into terminal rows. An empty render still takes one row
func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// fitLine cuts a rendered line to width, keeping ANSI sequences intact
func fitLine(line string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(line) <= width {
		return line
	}
	return truncate.String(line, uint(width))
}

// pad pads the given lines to the given width and height, cutting any lines past height.
// for example, pad(5, 4, []string{"a", "b", "c"}) will be padded to:
// "a    "
// "b    "
// "c    "
// "     "
// as a single string
func pad(width, height int, lines []string) string {
	lines = util.PadLines(lines, height)
	res := make([]string, len(lines))
	for i, line := range lines {
		res[i] = line
		if numSpaces := width - lipgloss.Width(line); numSpaces > 0 {
			res[i] += strings.Repeat(" ", numSpaces)
		}
	}
	return strings.Join(res, "\n")
}
