package threadview

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robinovitch61/thr/internal/constants"
	"github.com/robinovitch61/thr/internal/dev"
	"github.com/robinovitch61/thr/internal/viewport"
)

// ScrollToItem scrolls item index to the given alignment, offset by offset pixels. Does nothing until mounted
func (m *Model) ScrollToItem(index int, align viewport.Align, offset int) tea.Cmd {
	if m.state != steady {
		return nil
	}
	cmd := m.vp.ScrollToItem(viewport.Anchor{Index: index, Align: align, Offset: offset})
	m.markSeen()
	return cmd
}

// ScrollToBottom follows the thread down to its newest item. Threads opened away from the bottom never auto-follow
func (m *Model) ScrollToBottom() tea.Cmd {
	if !m.shouldAutoFollow {
		return nil
	}
	return m.ScrollToItem(0, viewport.AlignEnd, 0)
}

func (m *Model) ScrollToNewMessages() tea.Cmd {
	i := m.rows.list.NewMessagesIndex()
	if i < 0 {
		return nil
	}
	return m.ScrollToItem(i, viewport.AlignStart, constants.OffsetToShowToast)
}

func (m *Model) ScrollToHighlighted() tea.Cmd {
	if m.config.HighlightedID == "" {
		return nil
	}
	i := m.rows.list.IndexOfPost(m.config.HighlightedID)
	if i < 0 {
		return nil
	}
	return m.ScrollToItem(i, viewport.AlignCenter, 0)
}

// onScroll tracks user scrolling. Programmatic scrolls are ignored, as are events from an empty or unlaid-out
// container
func (m *Model) onScroll(msg viewport.ScrollMsg) tea.Cmd {
	if msg.Requested || msg.ScrollHeight <= 0 {
		return nil
	}
	m.userScrolled = true
	m.userScrolledToBottom = msg.AtBottom()
	m.isScrolling = true
	if m.responsive.IsMobile() {
		m.topPostID = m.topVisiblePostID(m.vp.Window())
	}
	m.markSeen()
	dev.DebugEvent().
		Int("scrollHeight", msg.ScrollHeight).
		Int("scrollOffset", msg.ScrollOffset).
		Int("clientHeight", msg.ClientHeight).
		Bool("atBottom", m.userScrolledToBottom).
		Msg("user scroll")
	return m.scrollStop.fireAfter(constants.ScrollStopDelay)
}

// markSeen records the newest post as seen while it is in view
func (m *Model) markSeen() {
	latest := m.rows.list.LatestPostIndex()
	if latest >= 0 && m.vp.IsVisible(latest) {
		m.lastSeenLatestID = m.rows.list.LatestPostID()
	}
}

// pendingReplies counts posts that arrived after the newest post the user has seen, while the newest is out of view
func (m Model) pendingReplies() int {
	list := m.rows.list
	latest := list.LatestPostIndex()
	if latest < 0 || m.lastSeenLatestID == "" || m.vp.IsVisible(latest) {
		return 0
	}
	seen := list.IndexOfPost(m.lastSeenLatestID)
	if seen <= 0 {
		return 0
	}
	return countPosts(m, 0, seen)
}

// newMessagesCount is the number of unread posts below the new messages separator, while the newest of them is out
// of view
func (m Model) newMessagesCount() int {
	list := m.rows.list
	sep := list.NewMessagesIndex()
	latest := list.LatestPostIndex()
	if sep <= 0 || latest < 0 || m.vp.IsVisible(latest) {
		return 0
	}
	return countPosts(m, 0, sep)
}

func countPosts(m Model, start, end int) int {
	n := 0
	for i := start; i < end; i++ {
		if item, ok := m.rows.list.At(i); ok && item.IsPost() {
			n++
		}
	}
	return n
}
