package viewport

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robinovitch61/thr/internal/constants"
	"github.com/robinovitch61/thr/internal/dev"
)

// Terminology:
// - item: one entry of the list, rendered to one or more lines
// - row: a line of terminal cells. Heights are tracked in pixels, a row being cellHeight pixels tall
// - offset: pixels scrolled down from the top of the content, which is the top of the OLDEST item
// - materialized: rendered and measured. Only items in the window are materialized
//
// items are ordered newest first and laid out bottom up:
//                          item index   row
// oldest reply line 1      2            0
// oldest reply line 2      2            1
// older reply              1            2
// newest reply             0            3

// Item is anything the viewport can lay out. Key identifies the item across list rebuilds
type Item interface {
	Key() string
}

// RenderFunc renders the item at index to lines no wider than width
type RenderFunc[T Item] func(index int, item T, width int) string

// ScrollMsg is emitted whenever the scroll offset changes. Requested is true if the change came from a programmatic
// request rather than from user input
type ScrollMsg struct {
	ScrollHeight int
	ScrollOffset int
	ClientHeight int
	Requested    bool
}

// AtBottom uses exact equality. The viewport never produces an offset past the bottom
func (m ScrollMsg) AtBottom() bool {
	return m.ScrollHeight-m.ScrollOffset == m.ClientHeight
}

// ItemsRenderedMsg is emitted whenever the window changes
type ItemsRenderedMsg struct {
	ItemsRendered
}

// ItemClickedMsg is emitted when an item is clicked
type ItemClickedMsg struct {
	Index int
	Key   string
}

// Model is a windowed list viewport. It is the only writer of its scroll offset
type Model[T Item] struct {
	keyMap KeyMap
	render RenderFunc[T]

	// items is newest first
	items      []T
	indexByKey map[string]int

	// width and height are in terminal cells
	width  int
	height int

	heights  Heights
	overscan Overscan

	// rendered holds lines for materialized items by key
	rendered map[string][]string

	layout Layout
	offset int
	window WindowState

	lastRendered     ItemsRendered
	reportedRendered bool
}

// New creates a new viewport model with reasonable defaults
func New[T Item](width, height int, keyMap KeyMap, render RenderFunc[T]) (m Model[T]) {
	m.keyMap = keyMap
	m.render = render
	m.indexByKey = make(map[string]int)
	m.heights = NewHeights(constants.DefaultCellHeight, constants.EstimatedRowLines)
	m.overscan = DefaultOverscan()
	m.rendered = make(map[string][]string)
	m.window = WindowState{FirstVisible: -1, LastVisible: -1, Overscan: m.overscan}
	m.width, m.height = max(0, width), max(0, height)
	m.heights.SetWidth(m.width)
	return m
}

// Update processes user input
func (m Model[T]) Update(msg tea.Msg) (Model[T], tea.Cmd) {
	dev.DebugUpdateMsg("Viewport", msg)

	var cmd tea.Cmd
	rowPx := m.heights.CellHeight()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Up):
			cmd = m.ScrollBy(-rowPx)

		case key.Matches(msg, m.keyMap.Down):
			cmd = m.ScrollBy(rowPx)

		case key.Matches(msg, m.keyMap.HalfPageUp):
			cmd = m.ScrollBy(-max(1, m.height/2) * rowPx)

		case key.Matches(msg, m.keyMap.HalfPageDown):
			cmd = m.ScrollBy(max(1, m.height/2) * rowPx)

		case key.Matches(msg, m.keyMap.PageUp):
			cmd = m.ScrollBy(-max(1, m.height) * rowPx)

		case key.Matches(msg, m.keyMap.PageDown):
			cmd = m.ScrollBy(max(1, m.height) * rowPx)

		case key.Matches(msg, m.keyMap.Top):
			cmd = m.scrollTo(0, false)

		case key.Matches(msg, m.keyMap.Bottom):
			cmd = m.scrollTo(m.layout.MaxOffset(m.ClientHeight()), false)
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			break
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			cmd = m.ScrollBy(-constants.WheelScrollRows * rowPx)
		case tea.MouseButtonWheelDown:
			cmd = m.ScrollBy(constants.WheelScrollRows * rowPx)
		case tea.MouseButtonLeft:
			if idx := m.ItemAtRow(msg.Y); idx >= 0 {
				clicked := ItemClickedMsg{Index: idx, Key: m.items[idx].Key()}
				cmd = func() tea.Msg { return clicked }
			}
		}
	}

	return m, cmd
}

// View renders the rows in view, oldest at the top
func (m Model[T]) View() string {
	rowPx := m.heights.CellHeight()
	firstRow := floorDiv(m.offset, rowPx)
	lines := make([]string, 0, m.height)
	if m.window.FirstVisible >= 0 {
		for i := m.window.LastVisible; i >= m.window.FirstVisible && len(lines) < m.height; i-- {
			itemRow := m.layout.Top(i) / rowPx
			itemLines := m.linesFor(i)
			numRows := m.layout.Height(i) / rowPx
			for j := 0; j < numRows; j++ {
				row := itemRow + j
				if row < firstRow {
					continue
				}
				if len(lines) >= m.height {
					break
				}
				line := ""
				if j < len(itemLines) {
					line = fitLine(itemLines[j], m.width)
				}
				lines = append(lines, line)
			}
		}
	}
	return pad(m.width, m.height, lines)
}

// SetCellHeight sets how many pixels tall a terminal row is. Drops all measurements
func (m *Model[T]) SetCellHeight(px int) tea.Cmd {
	if px <= 0 || px == m.heights.CellHeight() {
		return nil
	}
	prevOffset := m.offset
	keep := m.capturePosition(true)
	m.heights = NewHeights(px, constants.EstimatedRowLines)
	m.heights.SetWidth(m.width)
	m.rendered = make(map[string][]string)
	m.layoutPasses(keep)
	return m.notify(prevOffset, true)
}

func (m *Model[T]) SetOverscan(overscan Overscan) tea.Cmd {
	m.overscan = overscan
	prevOffset := m.offset
	m.layoutPasses(m.capturePosition(true))
	return m.notify(prevOffset, true)
}

// SetItems replaces the list. Items are newest first. The item at the top of the viewport keeps its place on
// screen if it is still in the list
func (m *Model[T]) SetItems(items []T) tea.Cmd {
	prevOffset := m.offset
	keep := m.capturePosition(false)

	prevIndexByKey := m.indexByKey
	m.items = items
	m.indexByKey = make(map[string]int, len(items))
	for i := range items {
		k := items[i].Key()
		if _, ok := m.indexByKey[k]; !ok {
			m.indexByKey[k] = i
		}
	}
	// removed items no longer count toward the estimate
	for k := range prevIndexByKey {
		if _, ok := m.indexByKey[k]; !ok {
			m.heights.Forget(k)
		}
	}
	// rows may render differently at a new index, so only heights carry over
	m.rendered = make(map[string][]string)
	m.window = m.window.Clamp(len(items))

	m.layoutPasses(keep)
	dev.DebugEvent().Int("items", len(items)).Int("measured", m.heights.NumMeasured()).Msg("set items")
	return m.notify(prevOffset, true)
}

// SetSize sets the viewport size in terminal cells. A width change drops all measured heights
func (m *Model[T]) SetSize(width, height int) tea.Cmd {
	width, height = max(0, width), max(0, height)
	if width == m.width && height == m.height {
		return nil
	}
	prevOffset := m.offset
	keep := m.capturePosition(true)
	if width != m.width {
		m.rendered = make(map[string][]string)
	}
	m.width, m.height = width, height
	m.heights.SetWidth(width)
	m.layoutPasses(keep)
	return m.notify(prevOffset, true)
}

// InvalidateRenders re-renders and re-measures materialized items, e.g. when their decoration changed
func (m *Model[T]) InvalidateRenders() tea.Cmd {
	prevOffset := m.offset
	keep := m.capturePosition(true)
	m.rendered = make(map[string][]string)
	m.layoutPasses(keep)
	return m.notify(prevOffset, true)
}

// MeasureRange materializes the items in [start, end) regardless of the scroll position, so an anchor resolved
// afterwards lands against real heights
func (m *Model[T]) MeasureRange(start, end int) tea.Cmd {
	start = clampValMinMax(start, 0, len(m.items))
	end = clampValMinMax(end, start, len(m.items))
	prevOffset := m.offset
	keep := m.capturePosition(false)
	m.measure(start, end)
	m.layoutPasses(keep)
	return m.notify(prevOffset, true)
}

// ScrollToItem resolves the anchor and scrolls there. The anchor is resolved a second time after the target's
// surroundings are laid out, since it may first be resolved against estimated heights
func (m *Model[T]) ScrollToItem(anchor Anchor) tea.Cmd {
	prevOffset := m.offset
	if len(m.items) == 0 {
		m.offset = 0
		m.layoutPasses(keepPosition{})
		return m.notify(prevOffset, true)
	}
	anchor.Index = clampValMinMax(anchor.Index, 0, len(m.items)-1)

	m.offset = Resolve(m.layout, anchor, m.ClientHeight())
	m.layoutPasses(m.anchorPosition(anchor.Index))

	m.offset = Resolve(m.layout, anchor, m.ClientHeight())
	m.layoutPasses(m.anchorPosition(anchor.Index))

	dev.DebugEvent().Str("anchor", anchor.String()).Int("offset", m.offset).Msg("scroll to item")
	return m.notify(prevOffset, true)
}

// ScrollToBottom is ScrollToItem({0, End})
func (m *Model[T]) ScrollToBottom() tea.Cmd {
	return m.ScrollToItem(BottomAnchor())
}

// ScrollBy scrolls by px pixels as if by user input. Positive is down, toward newer items
func (m *Model[T]) ScrollBy(px int) tea.Cmd {
	return m.scrollTo(m.offset+px, false)
}

func (m *Model[T]) scrollTo(offset int, requested bool) tea.Cmd {
	prevOffset := m.offset
	m.offset = clampValMinMax(offset, 0, m.layout.MaxOffset(m.ClientHeight()))
	m.layoutPasses(m.capturePosition(true))
	return m.notify(prevOffset, requested)
}

func (m Model[T]) Items() []T {
	return m.items
}

func (m Model[T]) Window() WindowState {
	return m.window
}

func (m Model[T]) Layout() Layout {
	return m.layout
}

// Offset is the scroll offset in pixels
func (m Model[T]) Offset() int {
	return m.offset
}

// ScrollHeight is the scrollable height in pixels, never less than the client height
func (m Model[T]) ScrollHeight() int {
	return max(m.layout.Total(), m.ClientHeight())
}

// ClientHeight is the viewport height in pixels
func (m Model[T]) ClientHeight() int {
	return m.height * m.heights.CellHeight()
}

func (m Model[T]) AtBottom() bool {
	return m.ScrollHeight()-m.offset == m.ClientHeight()
}

func (m Model[T]) CellHeight() int {
	return m.heights.CellHeight()
}

func (m Model[T]) Width() int {
	return m.width
}

func (m Model[T]) Height() int {
	return m.height
}

// IndexOfKey returns the index of the item with key, or -1
func (m Model[T]) IndexOfKey(k string) int {
	if i, ok := m.indexByKey[k]; ok {
		return i
	}
	return -1
}

// IsVisible reports whether any part of item i is in view
func (m Model[T]) IsVisible(i int) bool {
	return m.window.FirstVisible >= 0 && m.window.FirstVisible <= i && i <= m.window.LastVisible
}

// ItemAtRow returns the index of the item shown at viewport row y, or -1
func (m Model[T]) ItemAtRow(y int) int {
	if y < 0 || y >= m.height {
		return -1
	}
	rowPx := m.heights.CellHeight()
	return m.layout.ItemAt((floorDiv(m.offset, rowPx) + y) * rowPx)
}

func (m Model[T]) linesFor(i int) []string {
	if i < 0 || i >= len(m.items) || m.render == nil {
		return nil
	}
	if lines, ok := m.rendered[m.items[i].Key()]; ok {
		return lines
	}
	return splitLines(m.render(i, m.items[i], m.width))
}

// measure renders items in [start, end) that aren't rendered yet, returning true if any height changed
func (m *Model[T]) measure(start, end int) bool {
	if m.render == nil {
		return false
	}
	changed := false
	for i := max(0, start); i < min(end, len(m.items)); i++ {
		k := m.items[i].Key()
		lines, ok := m.rendered[k]
		if !ok {
			lines = splitLines(m.render(i, m.items[i], m.width))
			m.rendered[k] = lines
		}
		if m.heights.Set(k, len(lines)) {
			changed = true
		}
	}
	return changed
}

// layoutPasses measures the materialized items and rebuilds the layout once per pass until no height changes,
// keeping the given position on screen
func (m *Model[T]) layoutPasses(keep keepPosition) {
	changed := true
	for pass := 0; pass < constants.MaxLayoutPasses && changed; pass++ {
		prevWindow := m.window
		changed = m.measure(m.window.VisibleStart, m.window.VisibleEnd)
		m.layout = BuildLayout(len(m.items), func(i int) int {
			return m.heights.Height(m.items[i].Key())
		})
		m.restorePosition(keep)
		m.window = ComputeWindow(m.layout, m.offset, m.ClientHeight(), m.overscan)
		changed = changed || m.window != prevWindow
	}
	m.pruneRendered()
}

func (m *Model[T]) pruneRendered() {
	if len(m.rendered) <= m.window.Len() {
		return
	}
	keep := make(map[string][]string, m.window.Len())
	for i := m.window.VisibleStart; i < m.window.VisibleEnd; i++ {
		k := m.items[i].Key()
		if lines, ok := m.rendered[k]; ok {
			keep[k] = lines
		}
	}
	m.rendered = keep
}

// keepPosition is what should stay put on screen across a relayout
type keepPosition struct {
	atBottom bool
	key      string
	// screenY is the item's top edge relative to the top of the viewport, in pixels
	screenY int
}

// capturePosition records the item at the top of the viewport. If allowBottom is set and the viewport is at the
// bottom, it records that instead
func (m Model[T]) capturePosition(allowBottom bool) keepPosition {
	if allowBottom && m.layout.Total() > 0 && m.AtBottom() {
		return keepPosition{atBottom: true}
	}
	_, oldest := m.layout.VisibleRange(m.offset, m.ClientHeight())
	if oldest < 0 || oldest >= len(m.items) || oldest >= m.layout.Len() {
		return keepPosition{}
	}
	return m.anchorPosition(oldest)
}

func (m Model[T]) anchorPosition(i int) keepPosition {
	if i < 0 || i >= len(m.items) || i >= m.layout.Len() {
		return keepPosition{}
	}
	return keepPosition{key: m.items[i].Key(), screenY: m.layout.Top(i) - m.offset}
}

func (m *Model[T]) restorePosition(keep keepPosition) {
	maxOffset := m.layout.MaxOffset(m.ClientHeight())
	switch {
	case keep.atBottom:
		m.offset = maxOffset
	case keep.key != "":
		if i := m.IndexOfKey(keep.key); i >= 0 {
			m.offset = m.layout.Top(i) - keep.screenY
		}
	}
	m.offset = clampValMinMax(m.offset, 0, maxOffset)
}

// notify emits a ScrollMsg if the offset moved and an ItemsRenderedMsg if the window changed
func (m *Model[T]) notify(prevOffset int, requested bool) tea.Cmd {
	var cmds []tea.Cmd
	if m.offset != prevOffset {
		scrolled := ScrollMsg{
			ScrollHeight: m.ScrollHeight(),
			ScrollOffset: m.offset,
			ClientHeight: m.ClientHeight(),
			Requested:    requested,
		}
		cmds = append(cmds, func() tea.Msg { return scrolled })
	}
	if r := m.window.ItemsRendered(); !m.reportedRendered || r != m.lastRendered {
		m.lastRendered, m.reportedRendered = r, true
		cmds = append(cmds, func() tea.Msg { return ItemsRenderedMsg{ItemsRendered: r} })
	}
	return tea.Batch(cmds...)
}
