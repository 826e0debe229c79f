package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/robinovitch61/thr/internal/viewport"
)

type KeyMap struct {
	Copy             key.Binding
	Help             key.Binding
	JumpHighlighted  key.Binding
	JumpNewMessages  key.Binding
	Quit             key.Binding
	Reload           key.Binding
	Save             key.Binding
	Timestamps       key.Binding
	ClearFocus       key.Binding
	JumpLatest       key.Binding
	ToggleCompact    key.Binding
	ViewportBindings viewport.KeyMap
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy focused post"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "show/hide help"),
		),
		JumpHighlighted: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "jump to highlighted post"),
		),
		JumpNewMessages: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "jump to new messages"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload thread file"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save thread to file"),
		),
		Timestamps: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "relative/absolute timestamps"),
		),
		ClearFocus: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear focused post"),
		),
		JumpLatest: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "jump to latest reply"),
		),
		ToggleCompact: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle compact mode"),
		),
		ViewportBindings: viewport.DefaultKeyMap(),
	}
}

func NavigationKeyBindings(km KeyMap) []key.Binding {
	vp := km.ViewportBindings
	return []key.Binding{
		vp.Up,
		vp.Down,
		vp.HalfPageUp,
		vp.HalfPageDown,
		vp.PageUp,
		vp.PageDown,
		vp.Top,
		vp.Bottom,
	}
}

func DescriptiveKeyBindings(km KeyMap) []key.Binding {
	return []key.Binding{
		km.JumpNewMessages,
		km.JumpHighlighted,
		km.JumpLatest,
		km.Timestamps,
		km.ToggleCompact,
		WithDesc(km.ClearFocus, "clear focused post"),
		km.Copy,
		km.Save,
		km.Reload,
		km.Help,
		km.Quit,
	}
}

func WithKeys(k key.Binding, keys string) key.Binding {
	newK := k
	newK.SetHelp(keys, k.Help().Desc)
	return newK
}

func WithDesc(k key.Binding, d string) key.Binding {
	newK := k
	newK.SetHelp(newK.Help().Key, d)
	return newK
}
