package internal

// NOTE: Searching for `// #` will walk you through the main flow of the application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/reflow/wrap"
	"github.com/robinovitch61/thr/internal/command"
	"github.com/robinovitch61/thr/internal/constants"
	"github.com/robinovitch61/thr/internal/dev"
	"github.com/robinovitch61/thr/internal/fileio"
	"github.com/robinovitch61/thr/internal/fixtures"
	"github.com/robinovitch61/thr/internal/help"
	"github.com/robinovitch61/thr/internal/keymap"
	"github.com/robinovitch61/thr/internal/message"
	"github.com/robinovitch61/thr/internal/model"
	"github.com/robinovitch61/thr/internal/style"
	"github.com/robinovitch61/thr/internal/threadview"
	"github.com/robinovitch61/thr/internal/toast"
	"github.com/robinovitch61/thr/internal/util"
	"github.com/robinovitch61/thr/internal/viewport"
)

// itemsRenderedMsg and postFocusedMsg carry the thread view's callbacks back into Update
type itemsRenderedMsg struct {
	viewport.ItemsRendered
}

type postFocusedMsg struct {
	Post model.Post
}

type Model struct {
	config        Config
	keyMap        keymap.KeyMap
	width, height int
	initialized   bool
	toast         toast.Model
	err           error
	helpText      string
	topBarHeight  int // assumed constant

	thread       *model.Thread
	lastViewedAt time.Time
	threadView   threadview.Model
	forceCompact bool

	watcher *command.ThreadWatcher
	cancel  context.CancelFunc

	// position is the range of posts in view, e.g. "12-20/40"
	position string

	// refreshID identifies the pending relative timestamp refresh tick. Older ticks are ignored
	refreshID    string
	refreshStart time.Time
}

func InitialModel(c Config) Model {
	if c.Location == nil {
		c.Location = time.Local
	}
	return Model{
		config:       c,
		keyMap:       keymap.DefaultKeyMap(),
		forceCompact: c.ForceCompact,
		topBarHeight: 1,
	}
}

// #1: Load the thread, either from a file or generated for a demo
func (m Model) Init() tea.Cmd {
	if m.config.Demo > 0 {
		tf := fixtures.DemoThread(m.config.Demo, m.config.DemoSeed, m.config.DemoEnd)
		return func() tea.Msg { return command.ThreadLoadedMsg{File: tf} }
	}
	return command.LoadThreadCmd(m.config.FilePath)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	dev.DebugUpdateMsg("App", msg)
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case message.CleanupCompleteMsg:
		return m, tea.Quit

	// #4: The user presses a key. Global keys are handled here, the rest go to the thread view
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case message.ErrMsg:
		m.err = msg.Err
		return m, nil

	// WindowSizeMsg arrives once on startup, then again every time the window is resized
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.initialized {
			cmd = m.threadView.SetSize(m.width, m.contentHeight())
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	// #2: The thread arrived. The first time, the thread view is created and mounts once the size is known. After
	// that, the thread is updated in place and the thread view decides whether to follow new replies
	case command.ThreadLoadedMsg:
		m, cmd = m.handleThreadLoadedMsg(msg)
		return m, cmd

	// #3: The thread file changed on disk. Reload it and keep watching
	case command.ThreadFileChangedMsg:
		if msg.Err != nil {
			// an error stops watching until restart
			dev.DebugEvent().Err(msg.Err).Msg("watch stopped")
			if m.watcher != nil {
				_ = m.watcher.Close()
				m.watcher = nil
			}
			return m.showToast(toast.NewError(fmt.Sprintf("Stopped watching for changes: %s", msg.Err.Error())))
		}
		cmds = append(cmds, command.LoadThreadCmd(msg.Path), command.WatchThreadFileCmd(m.watcher))
		return m, tea.Batch(cmds...)

	case message.RefreshTimestampsMsg:
		if msg.UUID != m.refreshID || !m.config.RelativeTimestamps {
			return m, nil
		}
		m.threadView, cmd = m.threadView.Update(msg)
		cmds = append(cmds, cmd, m.scheduleTimestampRefresh())
		return m, tea.Batch(cmds...)

	case itemsRenderedMsg:
		m.position = positionLabel(m.threadView.List(), msg.ItemsRendered)
		return m, nil

	case postFocusedMsg:
		m, cmd = m.showToast(toast.New(fmt.Sprintf("Focused post by %s. %s to copy",
			msg.Post.DisplayName(), m.keyMap.Copy.Help().Key)))
		return m, cmd

	case threadview.ViewportModeChangedMsg:
		dev.DebugEvent().Str("mode", msg.Mode.String()).Msg("viewport mode changed")
		return m, nil

	case fileio.SaveCompleteMsg:
		t := toast.New(msg.SuccessMessage)
		if msg.SuccessMessage == "" {
			t = toast.NewError(msg.ErrMessage)
		}
		m, cmd = m.showToast(t)
		return m, cmd

	case command.ContentCopiedToClipboardMsg:
		t := toast.New("Copied to clipboard")
		if msg.Err != nil {
			t = toast.NewError(fmt.Sprintf("Error copying to clipboard: %s", msg.Err.Error()))
		}
		m, cmd = m.showToast(t)
		return m, cmd

	case toast.TimeoutMsg:
		m.toast, cmd = m.toast.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if !m.initialized || m.helpText != "" {
			return m, nil
		}
		// the thread view is below the top bar
		msg.Y -= m.topBarHeight
		m.threadView, cmd = m.threadView.Update(msg)
		return m, cmd
	}

	if m.initialized {
		m.threadView, cmd = m.threadView.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.err != nil {
		errString := m.err.Error()
		if m.width > 0 {
			errString = wrap.String(errString, m.width)
		}
		return lipgloss.JoinVertical(
			lipgloss.Left,
			style.ErrStyle.Render("Error"),
			"",
			fmt.Sprintf("%s to quit", m.keyMap.Quit.Help().Key),
			"",
			errString,
		)
	}
	if !m.initialized {
		return ""
	}
	topBar := m.topBar()
	if m.helpText != "" {
		centeredHelp := lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, m.helpText)
		return lipgloss.JoinVertical(lipgloss.Left, topBar, centeredHelp)
	}
	viewLines := strings.Split(topBar, "\n")
	viewLines = append(viewLines, strings.Split(m.threadView.View(), "\n")...)
	if toastHeight := m.toast.ViewHeight(m.width); m.toast.Visible && toastHeight > 0 && toastHeight < len(viewLines) {
		viewLines = viewLines[:len(viewLines)-toastHeight]
		viewLines = append(viewLines, strings.Split(m.toast.View(m.width), "\n")...)
	}
	return strings.Join(viewLines, "\n")
}

func (m Model) topBar() string {
	padding := "   "

	channel := "thread"
	if name := m.thread.Channel.DisplayName; name != "" {
		channel = "~" + name
	}
	numReplies := max(0, m.thread.Len()-1)
	replies := fmt.Sprintf("%d replies", numReplies)
	if numReplies == 1 {
		replies = "1 reply"
	}
	left := fmt.Sprintf("thr %s%s%s%s%s", m.config.Version, padding, channel, padding, replies)
	if m.position != "" {
		left += padding + m.position
	}
	if m.watcher != nil {
		left += padding + "[watching]"
	}
	if m.threadView.Mode() == threadview.ModeMobile {
		left += padding + "[compact]"
	}

	right := fmt.Sprintf("%s to quit / %s for help", m.keyMap.Quit.Help().Key, m.keyMap.Help.Help().Key)
	toJoin := []string{style.HeaderStyle.Render(left)}
	if lipgloss.Width(left)+len(padding)+len(right) < m.width {
		toJoin = append(toJoin, right)
	}
	return util.JoinWithEqualSpacing(m.width, toJoin...)
}

func (m Model) contentHeight() int {
	return max(0, m.height-m.topBarHeight)
}

func (m Model) cleanupCmd() tea.Cmd {
	return func() tea.Msg {
		if m.cancel != nil {
			m.cancel()
		}
		return message.CleanupCompleteMsg{}
	}
}

func (m Model) showToast(t toast.Model) (Model, tea.Cmd) {
	m.toast = t
	return m, t.TimeoutCmd()
}

// tea.KeyMsg handling
// ---

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	dev.Debug(fmt.Sprintf("App keyMsg: %v", msg))
	defer dev.Debug("App keyMsg complete")

	var cmd tea.Cmd

	// #5: The user exits. The thread view drops its timers and the file watcher is closed before quitting
	if key.Matches(msg, m.keyMap.Quit) {
		m.threadView.Unmount()
		return m, m.cleanupCmd()
	}

	// ignore key messages other than exit if an error is present or nothing is loaded yet
	if m.err != nil || !m.initialized {
		return m, nil
	}

	// if help text visible, pressing any key will dismiss it
	if m.helpText != "" {
		m.helpText = ""
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Help):
		m.helpText = help.MakeHelp(m.keyMap, style.KeyHelpStyle, m.width)
		return m, nil

	case key.Matches(msg, m.keyMap.Save):
		return m, fileio.GetSaveCommand("", fileio.TranscriptLines(m.thread, m.config.Location))

	case key.Matches(msg, m.keyMap.Copy):
		post, ok := m.threadView.FocusedPost()
		if !ok {
			return m.showToast(toast.New("Click a post to focus it first"))
		}
		return m, command.CopyContentToClipboardCmd(post.Message)

	case key.Matches(msg, m.keyMap.Reload):
		if m.config.Demo > 0 || m.config.FilePath == "" {
			return m.showToast(toast.New("Nothing to reload"))
		}
		return m, command.LoadThreadCmd(m.config.FilePath)

	case key.Matches(msg, m.keyMap.Timestamps):
		return m.toggleRelativeTimestamps()

	case key.Matches(msg, m.keyMap.ToggleCompact):
		m.forceCompact = !m.forceCompact
		return m, m.threadView.SetForceCompact(m.forceCompact)

	case key.Matches(msg, m.keyMap.ClearFocus):
		return m, m.threadView.ClearFocus()
	}

	m.threadView, cmd = m.threadView.Update(msg)
	return m, cmd
}

func (m Model) toggleRelativeTimestamps() (Model, tea.Cmd) {
	m.config.RelativeTimestamps = !m.config.RelativeTimestamps
	cmds := []tea.Cmd{
		m.threadView.SetRelativeTimestamps(m.config.RelativeTimestamps),
		// date separators come and go with absolute timestamps
		m.threadView.SetReplies(m.buildReplyList()),
	}
	if m.config.RelativeTimestamps {
		cmds = append(cmds, m.scheduleTimestampRefresh())
	} else {
		m.refreshID = ""
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) scheduleTimestampRefresh() tea.Cmd {
	if !m.config.RelativeTimestamps {
		return nil
	}
	id := uuid.NewString()
	m.refreshID = id
	return tea.Tick(
		util.DurationTilNext(m.refreshStart, time.Now(), constants.RelativeTimestampRefresh),
		func(time.Time) tea.Msg { return message.RefreshTimestampsMsg{UUID: id} },
	)
}

func (m Model) buildReplyList() model.ReplyList {
	return model.BuildReplyList(m.thread, model.BuildOptions{
		ShowDate:      !m.config.RelativeTimestamps,
		LastViewedAt:  m.lastViewedAt,
		CurrentUserID: m.config.CurrentUserID,
		Location:      m.config.Location,
	})
}

// positionLabel numbers the posts in view oldest first, out of all posts in the list
func positionLabel(list model.ReplyList, r viewport.ItemsRendered) string {
	total := list.NumPosts()
	if total == 0 || r.VisibleStartIndex < 0 {
		return ""
	}
	newer := 0
	for i := 0; i < r.VisibleStartIndex; i++ {
		if item, ok := list.At(i); ok && item.IsPost() {
			newer++
		}
	}
	inView := 0
	for i := r.VisibleStartIndex; i <= r.VisibleEndIndex; i++ {
		if item, ok := list.At(i); ok && item.IsPost() {
			inView++
		}
	}
	if inView == 0 {
		return ""
	}
	newest := total - newer
	return fmt.Sprintf("%d-%d/%d", newest-inView+1, newest, total)
}
