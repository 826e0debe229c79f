package message

type ErrMsg struct{ Err error }

func (e ErrMsg) Error() string { return e.Err.Error() }

type CleanupCompleteMsg struct{}

// ScrollStopMsg fires after a quiet period with no user scrolling. Only the msg carrying the latest ID counts
type ScrollStopMsg struct {
	ID string
}

// RefreshTimestampsMsg re-renders relative timestamps
type RefreshTimestampsMsg struct {
	UUID string
}
