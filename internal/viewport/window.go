package viewport

import (
	"fmt"

	"github.com/robinovitch61/thr/internal/constants"
)

// Overscan is the number of extra items materialized on each side of the visible items. Backward extends toward
// newer items (lower indexes), Forward toward older items (higher indexes)
type Overscan struct {
	Forward  int
	Backward int
}

func DefaultOverscan() Overscan {
	return Overscan{
		Forward:  constants.OverscanCountForward,
		Backward: constants.OverscanCountBackward,
	}
}

// WindowState is the set of materialized items.
//
// VisibleStart and VisibleEnd are the half-open materialized range including overscan. FirstVisible and
// LastVisible are the inclusive range actually in the viewport, newest to oldest, or -1 when nothing is visible.
// 0 <= VisibleStart <= VisibleEnd <= number of items always holds
type WindowState struct {
	VisibleStart int
	VisibleEnd   int
	FirstVisible int
	LastVisible  int
	Overscan     Overscan
}

// ComputeWindow derives the WindowState from the scroll offset, viewport height, layout and overscan. It is pure
func ComputeWindow(layout Layout, offset, viewportHeight int, overscan Overscan) WindowState {
	n := layout.Len()
	w := WindowState{FirstVisible: -1, LastVisible: -1, Overscan: overscan}
	if n == 0 {
		return w
	}
	offset = clampValMinMax(offset, 0, layout.MaxOffset(viewportHeight))
	newest, oldest := layout.VisibleRange(offset, viewportHeight)
	if newest < 0 {
		// nothing in view, e.g. a zero height viewport. Materialize around the scroll position anyway
		anchor := max(0, layout.ItemAt(offset))
		newest, oldest = anchor, anchor
	} else {
		w.FirstVisible, w.LastVisible = newest, oldest
	}
	w.VisibleStart = max(0, newest-max(0, overscan.Backward))
	w.VisibleEnd = min(n, oldest+1+max(0, overscan.Forward))
	return w
}

// Clamp restricts the window to a list of n items
func (w WindowState) Clamp(n int) WindowState {
	n = max(0, n)
	w.VisibleEnd = clampValMinMax(w.VisibleEnd, 0, n)
	w.VisibleStart = clampValMinMax(w.VisibleStart, 0, w.VisibleEnd)
	w.LastVisible = min(w.LastVisible, n-1)
	if w.FirstVisible < 0 || w.FirstVisible > w.LastVisible {
		w.FirstVisible, w.LastVisible = -1, -1
	}
	return w
}

func (w WindowState) Contains(i int) bool {
	return w.VisibleStart <= i && i < w.VisibleEnd
}

func (w WindowState) Len() int {
	return w.VisibleEnd - w.VisibleStart
}

func (w WindowState) Valid(n int) bool {
	return 0 <= w.VisibleStart && w.VisibleStart <= w.VisibleEnd && w.VisibleEnd <= n
}

func (w WindowState) String() string {
	return fmt.Sprintf("[%d, %d) visible %d..%d", w.VisibleStart, w.VisibleEnd, w.FirstVisible, w.LastVisible)
}

// ItemsRendered reports which items the window holds. All indexes are inclusive, and -1 when there are none
type ItemsRendered struct {
	VisibleStartIndex  int
	VisibleEndIndex    int
	OverscanStartIndex int
	OverscanEndIndex   int
}

func (w WindowState) ItemsRendered() ItemsRendered {
	r := ItemsRendered{
		VisibleStartIndex:  w.FirstVisible,
		VisibleEndIndex:    w.LastVisible,
		OverscanStartIndex: -1,
		OverscanEndIndex:   -1,
	}
	if w.VisibleEnd > w.VisibleStart {
		r.OverscanStartIndex = w.VisibleStart
		r.OverscanEndIndex = w.VisibleEnd - 1
	}
	return r
}
