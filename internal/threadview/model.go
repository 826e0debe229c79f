package threadview

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robinovitch61/thr/internal/dev"
	"github.com/robinovitch61/thr/internal/keymap"
	"github.com/robinovitch61/thr/internal/message"
	"github.com/robinovitch61/thr/internal/model"
	"github.com/robinovitch61/thr/internal/style"
	"github.com/robinovitch61/thr/internal/viewport"
)

// Data is what the thread view shows. The list is newest first
type Data struct {
	List    model.ReplyList
	Posts   model.PostLookup
	Channel model.Channel
	RootID  string
}

type Config struct {
	CurrentUserID string
	HighlightedID string
	// RelativeTimestamps shows "5m ago" style times. Otherwise times are absolute and the list has date separators
	RelativeTimestamps bool
	Location           *time.Location
	ForceCompact       bool
	// CellHeight is the pixel height of a terminal row. Zero keeps the default
	CellHeight int
	// Overscan is the number of items materialized past each edge of the viewport. Zero keeps the default
	Overscan int
	// Getenv and Now default to os.Getenv and time.Now
	Getenv func(string) string
	Now    func() time.Time
}

// Options are the callbacks the thread view reports through
type Options struct {
	OnCardClick     func(model.Post) tea.Cmd
	OnItemsRendered func(viewport.ItemsRendered) tea.Cmd
}

type lifecycle int

const (
	mounting lifecycle = iota
	steady
	unmounting
)

func (l lifecycle) String() string {
	switch l {
	case mounting:
		return "mounting"
	case steady:
		return "steady"
	default:
		return "unmounting"
	}
}

// Model is the thread view: a windowed, scroll-anchored list of the replies in a thread
type Model struct {
	keyMap  keymap.KeyMap
	config  Config
	options Options
	state   lifecycle

	vp         viewport.Model[model.ReplyItem]
	rows       *rowRenderer
	posts      model.PostLookup
	rootID     string
	responsive Responsiveness

	width  int
	height int

	// shouldAutoFollow is decided once at mount: true if the thread opened at its newest item
	shouldAutoFollow     bool
	userScrolled         bool
	userScrolledToBottom bool
	isScrolling          bool
	scrollStop           delayedAction

	// topPostID is the post under the floating timestamp
	topPostID string
	// lastSeenLatestID is the newest post id the last time the newest post was in view
	lastSeenLatestID string
}

func New(keyMap keymap.KeyMap, data Data, config Config, options Options) Model {
	if config.Getenv == nil {
		config.Getenv = os.Getenv
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.Location == nil {
		config.Location = time.Local
	}

	rows := &rowRenderer{
		list:          data.List,
		lookup:        data.Posts,
		decorations:   NewDecorationCache(),
		opts:          DecorateOptions{TrailingBoundary: !config.RelativeTimestamps},
		composer:      composer{channel: data.Channel},
		relative:      config.RelativeTimestamps,
		now:           config.Now(),
		loc:           config.Location,
		highlightedID: config.HighlightedID,
	}

	m := Model{
		keyMap:     keyMap,
		config:     config,
		options:    options,
		state:      mounting,
		rows:       rows,
		posts:      data.Posts,
		rootID:     data.RootID,
		responsive: NewResponsiveness(config.ForceCompact, config.Getenv),
	}
	m.vp = viewport.New[model.ReplyItem](0, 0, keyMap.ViewportBindings, rows.render)
	if config.CellHeight > 0 {
		m.vp.SetCellHeight(config.CellHeight)
	}
	rows.composer.rootDeleted = m.rootDeleted()
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	dev.DebugUpdateMsg("ThreadView", msg)

	if m.state == unmounting {
		return m, nil
	}

	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case viewport.ScrollMsg:
		if m.state != steady {
			return m, nil
		}
		cmds = append(cmds, m.onScroll(msg))

	case viewport.ItemsRenderedMsg:
		if m.state != steady {
			return m, nil
		}
		cmds = append(cmds, m.onItemsRendered())

	case viewport.ItemClickedMsg:
		if m.state != steady {
			return m, nil
		}
		cmds = append(cmds, m.onItemClicked(msg))

	case message.ScrollStopMsg:
		if m.scrollStop.fired(msg) {
			m.isScrolling = false
		}

	case message.RefreshTimestampsMsg:
		m.rows.now = m.config.Now()
		if m.state == steady && m.rows.relative {
			cmds = append(cmds, m.vp.InvalidateRenders())
		}

	case tea.KeyMsg:
		if m.state != steady {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keyMap.JumpNewMessages):
			cmds = append(cmds, m.ScrollToNewMessages())

		case key.Matches(msg, m.keyMap.JumpHighlighted):
			cmds = append(cmds, m.ScrollToHighlighted())

		case key.Matches(msg, m.keyMap.JumpLatest):
			cmds = append(cmds, m.ScrollToItem(0, viewport.AlignEnd, 0))

		default:
			m.vp, cmd = m.vp.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		if m.state != steady {
			return m, nil
		}
		m.vp, cmd = m.vp.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.state != steady {
		return lipgloss.NewStyle().Width(m.width).Height(m.height).Render("")
	}
	lines := strings.Split(m.vp.View(), "\n")
	if len(lines) == 0 || m.width <= 0 {
		return m.vp.View()
	}

	var overlays []string
	if label := m.floatingTimestamp(); label != "" {
		overlays = append(overlays, style.FloatingTimestamp.Render(label))
	}
	if n := m.newMessagesCount(); n > 0 {
		overlays = append(overlays, style.NewMessagesToast.Render(fmt.Sprintf("%s since you last looked (%s)",
			plural(n, "new message"), m.keyMap.JumpNewMessages.Help().Key)))
	}
	for i, overlay := range overlays {
		if i >= len(lines) {
			break
		}
		lines[i] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, overlay)
	}

	if n := m.pendingReplies(); n > 0 && len(lines) > len(overlays) {
		indicator := style.PendingRepliesStyle.Render(fmt.Sprintf("↓ %s (%s)",
			plural(n, "new reply"), m.keyMap.JumpLatest.Help().Key))
		lines[len(lines)-1] = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, indicator)
	}
	return strings.Join(lines, "\n")
}

// SetSize sets the thread view size. The first positive size mounts the view: the initial anchor is resolved and
// applied before anything is shown
func (m *Model) SetSize(width, height int) tea.Cmd {
	if m.state == unmounting {
		return nil
	}
	m.width, m.height = max(0, width), max(0, height)

	var cmds []tea.Cmd
	mode, changed := m.responsive.Observe(m.width)
	if changed {
		cmds = append(cmds, m.applyMode(mode))
	}

	switch m.state {
	case mounting:
		if m.width > 0 && m.height > 0 {
			cmds = append(cmds, m.mount())
		}
	case steady:
		cmds = append(cmds, m.vp.SetSize(m.width, m.height))
		if changed {
			cmds = append(cmds, m.vp.InvalidateRenders())
		}
		m.markSeen()
	}
	return tea.Batch(cmds...)
}

// SetReplies replaces the reply list. If a new newest post arrived and it is the current user's, or the user was
// at the bottom, the view follows it down
func (m *Model) SetReplies(list model.ReplyList) tea.Cmd {
	if m.state == unmounting {
		return nil
	}
	prevLatest := m.rows.list.LatestPostID()
	m.rows.list = list
	m.rows.composer.rootDeleted = m.rootDeleted()
	if m.state == mounting {
		return nil
	}

	cmds := []tea.Cmd{m.vp.SetItems(list.Items())}
	latest := list.LatestPostID()
	if latest != "" && latest != prevLatest {
		if m.isOwnPost(latest) || m.userScrolledToBottom {
			cmds = append(cmds, m.ScrollToBottom())
		}
		dev.DebugEvent().
			Str("latest", latest).
			Bool("ownPost", m.isOwnPost(latest)).
			Bool("userScrolledToBottom", m.userScrolledToBottom).
			Bool("shouldAutoFollow", m.shouldAutoFollow).
			Msg("new latest post")
	}
	m.markSeen()
	return tea.Batch(cmds...)
}

func (m *Model) SetChannel(channel model.Channel) tea.Cmd {
	m.rows.composer.channel = channel
	if m.state != steady {
		return nil
	}
	return m.vp.InvalidateRenders()
}

// SetRelativeTimestamps switches timestamp mode. The caller rebuilds the list, since date separators are only shown
// with absolute timestamps
func (m *Model) SetRelativeTimestamps(relative bool) tea.Cmd {
	if m.rows.relative == relative {
		return nil
	}
	m.config.RelativeTimestamps = relative
	m.rows.relative = relative
	m.rows.opts.TrailingBoundary = !relative
	m.rows.now = m.config.Now()
	m.rows.decorations.Invalidate()
	if m.state != steady {
		return nil
	}
	return m.vp.InvalidateRenders()
}

// SetForceCompact pins the view to mobile mode, or releases it back to detection
func (m *Model) SetForceCompact(force bool) tea.Cmd {
	m.responsive.SetForced(force)
	mode, changed := m.responsive.Observe(m.width)
	if !changed {
		return nil
	}
	cmds := []tea.Cmd{m.applyMode(mode)}
	if m.state == steady {
		cmds = append(cmds, m.vp.InvalidateRenders())
	}
	return tea.Batch(cmds...)
}

// Unmount tears the view down. Pending timers are dropped and every later message is ignored
func (m *Model) Unmount() {
	m.state = unmounting
	m.scrollStop.cancel()
	m.isScrolling = false
}

func (m Model) Mounted() bool {
	return m.state == steady
}

func (m Model) Mode() Mode {
	return m.responsive.Mode()
}

func (m Model) IsScrolling() bool {
	return m.isScrolling
}

func (m Model) UserScrolled() bool {
	return m.userScrolled
}

func (m Model) UserScrolledToBottom() bool {
	return m.userScrolledToBottom
}

func (m Model) ShouldAutoFollow() bool {
	return m.shouldAutoFollow
}

func (m Model) Window() viewport.WindowState {
	return m.vp.Window()
}

func (m Model) Offset() int {
	return m.vp.Offset()
}

func (m Model) AtBottom() bool {
	return m.vp.AtBottom()
}

func (m Model) List() model.ReplyList {
	return m.rows.list
}

// FocusedPost is the last clicked post, if any
func (m Model) FocusedPost() (model.Post, bool) {
	if m.rows.focusedID == "" || m.posts == nil {
		return model.Post{}, false
	}
	return m.posts.Post(m.rows.focusedID)
}

func (m *Model) ClearFocus() tea.Cmd {
	if m.rows.focusedID == "" {
		return nil
	}
	m.rows.focusedID = ""
	if m.state != steady {
		return nil
	}
	return m.vp.InvalidateRenders()
}

func (m *Model) mount() tea.Cmd {
	list := m.rows.list
	anchor := ResolveInitialAnchor(list, m.config.HighlightedID)
	m.shouldAutoFollow = anchor.Index == 0
	// a thread opened at the bottom follows new replies before the first scroll event arrives
	m.userScrolledToBottom = m.shouldAutoFollow
	m.rows.composer.blockFocus = !m.shouldAutoFollow
	m.lastSeenLatestID = list.LatestPostID()

	start, end := InitialRange(anchor.Index, list.Len())
	var cmds []tea.Cmd
	if m.config.Overscan > 0 {
		cmds = append(cmds, m.vp.SetOverscan(viewport.Overscan{Forward: m.config.Overscan, Backward: m.config.Overscan}))
	}
	cmds = append(cmds,
		m.vp.SetSize(m.width, m.height),
		m.vp.SetItems(list.Items()),
		m.vp.MeasureRange(start, end),
		m.vp.ScrollToItem(anchor),
	)
	m.state = steady

	dev.DebugEvent().
		Str("anchor", anchor.String()).
		Int("rangeStart", start).
		Int("rangeEnd", end).
		Bool("shouldAutoFollow", m.shouldAutoFollow).
		Str("window", m.vp.Window().String()).
		Msg("thread mounted")
	return tea.Batch(cmds...)
}

func (m *Model) applyMode(mode Mode) tea.Cmd {
	m.rows.opts.Compact = mode == ModeMobile
	m.rows.decorations.Invalidate()
	if mode != ModeMobile {
		m.topPostID = ""
	}
	return func() tea.Msg { return ViewportModeChangedMsg{Mode: mode} }
}

func (m *Model) onItemsRendered() tea.Cmd {
	w := m.vp.Window()
	if m.responsive.IsMobile() {
		m.topPostID = m.topVisiblePostID(w)
	}
	m.markSeen()
	if m.options.OnItemsRendered != nil {
		return m.options.OnItemsRendered(w.ItemsRendered())
	}
	return nil
}

func (m *Model) onItemClicked(msg viewport.ItemClickedMsg) tea.Cmd {
	item, ok := m.rows.list.At(msg.Index)
	if !ok || !item.IsPost() || m.posts == nil {
		return nil
	}
	post, ok := m.posts.Post(item.PostID)
	if !ok {
		return nil
	}
	m.rows.focusedID = post.ID
	cmds := []tea.Cmd{m.vp.InvalidateRenders()}
	if m.options.OnCardClick != nil {
		cmds = append(cmds, m.options.OnCardClick(post))
	}
	return tea.Batch(cmds...)
}

// topVisiblePostID is the topmost post in view, i.e. the oldest visible
func (m Model) topVisiblePostID(w viewport.WindowState) string {
	if w.FirstVisible < 0 {
		return ""
	}
	for i := w.LastVisible; i >= w.FirstVisible; i-- {
		if item, ok := m.rows.list.At(i); ok && item.IsPost() {
			return item.PostID
		}
	}
	return ""
}

// floatingTimestamp shows the date of the topmost visible post while scrolling on mobile with absolute timestamps
func (m Model) floatingTimestamp() string {
	if !m.responsive.IsMobile() || m.rows.relative || !m.isScrolling || m.topPostID == "" || m.posts == nil {
		return ""
	}
	post, ok := m.posts.Post(m.topPostID)
	if !ok {
		return ""
	}
	return formatDate(post.CreateAt, m.rows.now, m.config.Location)
}

func (m Model) rootDeleted() bool {
	if m.posts == nil || m.rootID == "" {
		return false
	}
	root, ok := m.posts.Post(m.rootID)
	return ok && root.IsDeleted()
}

func (m Model) isOwnPost(id string) bool {
	if m.posts == nil || m.config.CurrentUserID == "" {
		return false
	}
	post, ok := m.posts.Post(id)
	return ok && post.UserID == m.config.CurrentUserID
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	if strings.HasSuffix(noun, "y") {
		return fmt.Sprintf("%d %sies", n, strings.TrimSuffix(noun, "y"))
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
