package threadview

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResponsiveness_Observe(t *testing.T) {
	r := NewResponsiveness(false, noEnv)
	require.Equal(t, ModeDesktop, r.Mode())

	steps := []struct {
		width   int
		mode    Mode
		changed bool
	}{
		{120, ModeDesktop, false},
		{81, ModeDesktop, false},
		{80, ModeMobile, true},
		{40, ModeMobile, false},
		{0, ModeDesktop, true},
		{100, ModeDesktop, false},
		{60, ModeMobile, true},
	}
	for _, s := range steps {
		mode, changed := r.Observe(s.width)
		require.Equal(t, s.mode, mode, "width %d", s.width)
		require.Equal(t, s.changed, changed, "width %d", s.width)
	}
}

func TestResponsiveness_MobileTerminal(t *testing.T) {
	env := map[string]string{"TERM_PROGRAM": "  blink "}
	r := NewResponsiveness(false, func(k string) string { return env[k] })
	mode, changed := r.Observe(200)
	require.Equal(t, ModeMobile, mode)
	require.True(t, changed)

	r = NewResponsiveness(false, func(k string) string {
		if k == "LC_TERMINAL" {
			return "Termius"
		}
		return "iTerm.app"
	})
	mode, _ = r.Observe(200)
	require.Equal(t, ModeMobile, mode)
}

func TestResponsiveness_Forced(t *testing.T) {
	r := NewResponsiveness(true, nil)
	mode, _ := r.Observe(300)
	require.Equal(t, ModeMobile, mode)

	r.SetForced(false)
	mode, changed := r.Observe(300)
	require.Equal(t, ModeDesktop, mode)
	require.True(t, changed)
	require.False(t, r.Forced())
}
