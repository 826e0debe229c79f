package threadview

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/robinovitch61/thr/internal/message"
)

// delayedAction is a cancel-and-reschedule timer. Each fireAfter supersedes the previous one, so only the tick for
// the latest id is honored
type delayedAction struct {
	id string
}

func (a *delayedAction) fireAfter(d time.Duration) tea.Cmd {
	id := uuid.NewString()
	a.id = id
	return tea.Tick(d, func(time.Time) tea.Msg {
		return message.ScrollStopMsg{ID: id}
	})
}

// fired reports whether msg is the tick for the pending action, consuming it if so
func (a *delayedAction) fired(msg message.ScrollStopMsg) bool {
	if a.id == "" || msg.ID != a.id {
		return false
	}
	a.id = ""
	return true
}

func (a *delayedAction) cancel() {
	a.id = ""
}

func (a delayedAction) pending() bool {
	return a.id != ""
}
