package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/robinovitch61/thr/internal/keymap"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestMakeHelp(t *testing.T) {
	km := keymap.DefaultKeyMap()
	for _, width := range []int{40, 200} {
		h := MakeHelp(km, lipgloss.NewStyle(), width)
		for _, b := range append(keymap.NavigationKeyBindings(km), keymap.DescriptiveKeyBindings(km)...) {
			if !strings.Contains(h, b.Help().Desc) {
				t.Errorf("width %d: help missing %q", width, b.Help().Desc)
			}
		}
	}
}

func TestMakeHelp_NarrowIsOneColumn(t *testing.T) {
	km := keymap.DefaultKeyMap()
	narrow := MakeHelp(km, lipgloss.NewStyle(), 40)
	wide := MakeHelp(km, lipgloss.NewStyle(), 200)
	if lipgloss.Width(narrow) >= lipgloss.Width(wide) {
		t.Errorf("expected narrow help (%d) to be thinner than wide help (%d)", lipgloss.Width(narrow), lipgloss.Width(wide))
	}
	if lipgloss.Height(narrow) <= lipgloss.Height(wide) {
		t.Errorf("expected narrow help (%d) to be taller than wide help (%d)", lipgloss.Height(narrow), lipgloss.Height(wide))
	}
}
