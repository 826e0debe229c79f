package threadview

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/robinovitch61/thr/internal/constants"
	"github.com/robinovitch61/thr/internal/keymap"
	"github.com/robinovitch61/thr/internal/model"
	"github.com/robinovitch61/thr/internal/viewport"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
	constants.ScrollStopDelay = time.Millisecond
}

var (
	base     = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	fixedNow = func() time.Time { return base.Add(24 * time.Hour) }
	noEnv    = func(string) string { return "" }
)

type postMap map[string]model.Post

func (p postMap) Post(id string) (model.Post, bool) {
	post, ok := p[id]
	return post, ok
}

func testPost(i int) model.Post {
	return model.Post{
		ID:       fmt.Sprintf("p%d", i),
		UserID:   fmt.Sprintf("u%d", i%3),
		Username: fmt.Sprintf("user%d", i%3),
		RootID:   "p0",
		Message:  fmt.Sprintf("message %d", i),
		CreateAt: base.Add(time.Duration(i) * time.Minute),
	}
}

// testThread is n one-line posts a minute apart. p0 is the root
func testThread(n int) *model.Thread {
	posts := make([]model.Post, n)
	for i := range posts {
		posts[i] = testPost(i)
	}
	return model.NewThread("p0", model.Channel{DisplayName: "town-square"}, posts...)
}

func testConfig() Config {
	return Config{
		CurrentUserID:      "me",
		RelativeTimestamps: true,
		Location:           time.UTC,
		Getenv:             noEnv,
		Now:                fixedNow,
	}
}

func newTestModel(thread *model.Thread, list model.ReplyList, config Config, options Options) Model {
	return New(keymap.DefaultKeyMap(), Data{
		List:    list,
		Posts:   thread,
		Channel: thread.Channel,
		RootID:  thread.RootID,
	}, config, options)
}

func relativeList(thread *model.Thread) model.ReplyList {
	return model.BuildReplyList(thread, model.BuildOptions{Location: time.UTC})
}

// collectMsgs runs cmd and any batched cmds, returning every message produced
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collectMsgs(c)...)
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// feed delivers every message cmd produces back into the model, one round deep. Returned cmds are not run
func feed(m Model, cmd tea.Cmd) (Model, []tea.Cmd) {
	var cmds []tea.Cmd
	for _, msg := range collectMsgs(cmd) {
		var next tea.Cmd
		m, next = m.Update(msg)
		if next != nil {
			cmds = append(cmds, next)
		}
	}
	return m, cmds
}

func userScroll(offset int) viewport.ScrollMsg {
	return viewport.ScrollMsg{ScrollHeight: 1000, ScrollOffset: offset, ClientHeight: 160}
}

var (
	upKey      = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	topKey     = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}}
	newMsgKey  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}
	latestKey  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}}
	highlitKey = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}}
)
