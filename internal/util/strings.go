package util

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
	"github.com/mattn/go-runewidth"
	"runtime"
	"strings"
	"testing"
)

// JoinWithEqualSpacing lays items out across width with the leftover space split evenly between them.
// If the items don't fit, they are truncated from the right
func JoinWithEqualSpacing(width int, items ...string) string {
	if len(items) == 0 {
		return ""
	}

	totalContentWidth := 0
	for _, item := range items {
		totalContentWidth += lipgloss.Width(item)
	}

	if width <= 0 {
		return ""
	}

	if totalContentWidth <= width {
		// if enough space, proceed with equal spacing
		if len(items) == 1 {
			return items[0]
		}

		totalSpacing := width - totalContentWidth
		baseSpacing := totalSpacing / (len(items) - 1)
		extraSpacing := totalSpacing % (len(items) - 1)

		var result strings.Builder

		for i, item := range items {
			result.WriteString(item)
			if i < len(items)-1 {
				spaces := baseSpacing
				if i < extraSpacing {
					spaces++
				}
				result.WriteString(strings.Repeat(" ", spaces))
			}
		}

		return result.String()
	}

	// if not enough space, truncate from the right
	var result strings.Builder
	remainingWidth := width
	for _, item := range items {
		itemWidth := lipgloss.Width(item)
		if remainingWidth <= 0 {
			break
		}
		if itemWidth > remainingWidth {
			result.WriteString(lipgloss.NewStyle().MaxWidth(remainingWidth).Render(item))
			break
		}
		result.WriteString(item)
		remainingWidth -= itemWidth
	}
	return result.String()
}

// TruncateToWidth shortens an unstyled string to at most width terminal cells, ending in tail if anything was cut
func TruncateToWidth(s string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if runewidth.StringWidth(tail) >= width {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, tail)
}

// PadLines pads or cuts lines so that there are exactly height of them
func PadLines(lines []string, height int) []string {
	if height <= 0 {
		return nil
	}
	if len(lines) >= height {
		return lines[:height]
	}
	res := make([]string, height)
	copy(res, lines)
	return res
}

// CmpStr compares two strings and fails the test if they are not equal
func CmpStr(t *testing.T, expected, actual string) {
	_, file, line, _ := runtime.Caller(1)
	testName := t.Name()
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("\nTest %q failed at %s:%d\nDiff (-expected +actual):\n%s", testName, file, line, diff)
	}
}

// Cmp is CmpStr for any comparable-by-cmp values
func Cmp[T any](t *testing.T, expected, actual T, opts ...cmp.Option) {
	_, file, line, _ := runtime.Caller(1)
	testName := t.Name()
	if diff := cmp.Diff(expected, actual, opts...); diff != "" {
		t.Errorf("\nTest %q failed at %s:%d\nDiff (-expected +actual):\n%s", testName, file, line, diff)
	}
}
