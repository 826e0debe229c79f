package threadview

import (
	"strings"

	"github.com/robinovitch61/thr/internal/constants"
)

type Mode int

const (
	ModeDesktop Mode = iota
	ModeMobile
)

func (m Mode) String() string {
	if m == ModeMobile {
		return "mobile"
	}
	return "desktop"
}

// ViewportModeChangedMsg is published once per mode transition
type ViewportModeChangedMsg struct {
	Mode Mode
}

// Responsiveness derives the viewport mode from the terminal. Phones and tablets are detected from the terminal
// program, and any narrow terminal is treated the same way
type Responsiveness struct {
	mode           Mode
	forced         bool
	mobileTerminal bool
}

// NewResponsiveness checks the environment once through getenv. forceCompact pins the mode to mobile
func NewResponsiveness(forceCompact bool, getenv func(string) string) Responsiveness {
	r := Responsiveness{forced: forceCompact}
	if getenv != nil {
		r.mobileTerminal = isMobileTerminal(getenv("TERM_PROGRAM")) || isMobileTerminal(getenv("LC_TERMINAL"))
	}
	return r
}

func isMobileTerminal(program string) bool {
	program = strings.TrimSpace(program)
	if program == "" {
		return false
	}
	for _, p := range constants.MobileTerminalPrograms {
		if strings.EqualFold(program, p) {
			return true
		}
	}
	return false
}

// Observe recomputes the mode for a terminal width. changed is true only if the mode differs from the last one
func (r *Responsiveness) Observe(width int) (mode Mode, changed bool) {
	next := ModeDesktop
	if r.forced || r.mobileTerminal || (width > 0 && width <= constants.MobileMaxColumns) {
		next = ModeMobile
	}
	changed = next != r.mode
	r.mode = next
	return next, changed
}

// SetForced pins or releases mobile mode. It takes effect on the next Observe
func (r *Responsiveness) SetForced(forced bool) {
	r.forced = forced
}

func (r Responsiveness) Forced() bool {
	return r.forced
}

func (r Responsiveness) Mode() Mode {
	return r.mode
}

func (r Responsiveness) IsMobile() bool {
	return r.mode == ModeMobile
}
