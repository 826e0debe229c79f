package threadview

import (
	"github.com/robinovitch61/thr/internal/constants"
	"github.com/robinovitch61/thr/internal/model"
	"github.com/robinovitch61/thr/internal/viewport"
)

// ResolveInitialAnchor picks where a freshly opened thread is scrolled to, by priority:
//  1. the highlighted post, centered
//  2. the new messages separator at the top, leaving room for the new messages toast above it
//  3. the bottom of the thread
//
// A highlighted id that isn't in the list falls through to 2
func ResolveInitialAnchor(list model.ReplyList, highlightedID string) viewport.Anchor {
	if highlightedID != "" {
		if i := list.IndexOfPost(highlightedID); i >= 0 {
			return viewport.Anchor{Index: i, Align: viewport.AlignCenter}
		}
	}
	if i := list.NewMessagesIndex(); i > 0 {
		return viewport.Anchor{Index: i, Align: viewport.AlignStart, Offset: constants.OffsetToShowToast}
	}
	return viewport.BottomAnchor()
}

// InitialRange is the half-open range of items materialized before the initial anchor is applied, so the anchor
// lands against measured heights on first paint
func InitialRange(index, n int) (start, end int) {
	if n <= 0 {
		return 0, 0
	}
	index = max(0, min(index, n-1))
	start = max(index-constants.InitialRangeOverscan, 0)
	last := max(index+constants.InitialRangeOverscan, min(n-1, constants.InitialRangeMinEnd))
	end = min(last+1, n)
	return start, end
}
