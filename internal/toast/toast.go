package toast

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robinovitch61/thr/internal/constants"
	"github.com/robinovitch61/thr/internal/dev"
	"github.com/robinovitch61/thr/internal/style"
)

var (
	lastID int
	idMtx  sync.Mutex
)

// Model is a one-line status message at the bottom of the screen, e.g. "Copied to clipboard"
type Model struct {
	ID           int
	message      string
	Visible      bool
	IsError      bool
	messageStyle lipgloss.Style
}

func New(message string) Model {
	return Model{
		ID:           nextID(),
		message:      message,
		Visible:      true,
		messageStyle: style.ToastStyle,
	}
}

func NewError(message string) Model {
	m := New(message)
	m.IsError = true
	m.messageStyle = style.ErrStyle
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	dev.DebugUpdateMsg("Toast", msg)
	switch msg := msg.(type) {
	case TimeoutMsg:
		if msg.ID > 0 && msg.ID != m.ID {
			return m, nil
		}
		m.Visible = false
	}
	return m, nil
}

// TimeoutCmd hides this toast after constants.ToastDuration. A newer toast is unaffected
func (m Model) TimeoutCmd() tea.Cmd {
	id := m.ID
	return tea.Tick(constants.ToastDuration, func(time.Time) tea.Msg { return TimeoutMsg{ID: id} })
}

func (m Model) View(width int) string {
	if !m.Visible {
		return ""
	}
	s := m.messageStyle
	if width > 0 {
		s = s.Width(width).MaxWidth(width)
	}
	return s.Render(m.message)
}

func (m Model) ViewHeight(width int) int {
	if !m.Visible {
		return 0
	}
	return lipgloss.Height(m.View(width))
}

type TimeoutMsg struct {
	ID int
}

func nextID() int {
	idMtx.Lock()
	defer idMtx.Unlock()
	lastID++
	return lastID
}
