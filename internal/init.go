package internal

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robinovitch61/thr/internal/command"
	"github.com/robinovitch61/thr/internal/dev"
	"github.com/robinovitch61/thr/internal/fileio"
	"github.com/robinovitch61/thr/internal/message"
	"github.com/robinovitch61/thr/internal/model"
	"github.com/robinovitch61/thr/internal/threadview"
	"github.com/robinovitch61/thr/internal/toast"
	"github.com/robinovitch61/thr/internal/viewport"
)

func (m Model) handleThreadLoadedMsg(msg command.ThreadLoadedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		if !m.initialized {
			return m, func() tea.Msg { return message.ErrMsg{Err: msg.Err} }
		}
		// keep showing what was last loaded
		return m.showToast(toast.NewError(fmt.Sprintf("Error reloading thread: %s", msg.Err.Error())))
	}
	if !m.initialized {
		return m.initializedModel(msg.File)
	}
	return m.syncThread(msg.File)
}

func (m Model) initializedModel(tf fileio.ThreadFile) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	m.thread = tf.Thread()
	m.lastViewedAt = tf.LastViewed()
	if !m.config.LastViewedAt.IsZero() {
		m.lastViewedAt = m.config.LastViewedAt
	}
	dev.DebugEvent().
		Str("root", m.thread.RootID).
		Int("posts", m.thread.Len()).
		Time("lastViewedAt", m.lastViewedAt).
		Msg("thread loaded")

	m.threadView = threadview.New(
		m.keyMap,
		threadview.Data{
			List:    m.buildReplyList(),
			Posts:   m.thread,
			Channel: m.thread.Channel,
			RootID:  m.thread.RootID,
		},
		threadview.Config{
			CurrentUserID:      m.config.CurrentUserID,
			HighlightedID:      m.config.HighlightedID,
			RelativeTimestamps: m.config.RelativeTimestamps,
			Location:           m.config.Location,
			ForceCompact:       m.forceCompact,
			CellHeight:         m.config.CellHeight,
			Overscan:           m.config.Overscan,
		},
		threadview.Options{
			OnCardClick: func(post model.Post) tea.Cmd {
				return func() tea.Msg { return postFocusedMsg{Post: post} }
			},
			OnItemsRendered: func(r viewport.ItemsRendered) tea.Cmd {
				return func() tea.Msg { return itemsRenderedMsg{ItemsRendered: r} }
			},
		},
	)
	m.initialized = true

	// the window size may have arrived before the thread did
	if m.width > 0 && m.height > 0 {
		cmds = append(cmds, m.threadView.SetSize(m.width, m.contentHeight()))
	}

	m.refreshStart = time.Now()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	if m.config.Watch && m.config.Demo == 0 && m.config.FilePath != "" {
		watcher, err := command.NewThreadWatcher(ctx, m.config.FilePath)
		if err != nil {
			var cmd tea.Cmd
			m, cmd = m.showToast(toast.NewError(fmt.Sprintf("Not watching for changes: %s", err.Error())))
			cmds = append(cmds, cmd, m.scheduleTimestampRefresh())
			return m, tea.Batch(cmds...)
		}
		m.watcher = watcher
		cmds = append(cmds, command.WatchThreadFileCmd(watcher))
	}

	cmds = append(cmds, m.scheduleTimestampRefresh())
	return m, tea.Batch(cmds...)
}

// syncThread applies a reloaded file to the thread in place, so the thread view's post lookup stays valid
func (m Model) syncThread(tf fileio.ThreadFile) (Model, tea.Cmd) {
	next := tf.Thread()
	for _, p := range m.thread.Posts() {
		if _, ok := next.Post(p.ID); !ok {
			m.thread.Remove(p.ID)
		}
	}
	for _, p := range next.Posts() {
		m.thread.Upsert(p)
	}
	m.thread.Channel = next.Channel
	if m.config.LastViewedAt.IsZero() {
		m.lastViewedAt = tf.LastViewed()
	}
	dev.DebugEvent().Int("posts", m.thread.Len()).Msg("thread reloaded")

	return m, tea.Batch(
		m.threadView.SetChannel(m.thread.Channel),
		m.threadView.SetReplies(m.buildReplyList()),
	)
}
