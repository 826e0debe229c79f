package constants

import (
	"time"
)

// *********************************************************************************************************************
// THESE ARE KEY TO SMOOTH SCROLLING IN LONG THREADS (EXACT VALUES DETERMINED BY FEEL)

// OverscanCountForward is the number of items materialized beyond the oldest visible item. Large enough that a
// page-up burst never reaches an unmeasured row
const OverscanCountForward = 30

// OverscanCountBackward is the number of items materialized beyond the newest visible item
const OverscanCountBackward = 30

// InitialRangeOverscan is the number of items on each side of the initial anchor materialized on first paint
const InitialRangeOverscan = 30

// InitialRangeMinEnd is the minimum end index of the initial materialized range, so short threads render fully on
// first paint
const InitialRangeMinEnd = 50

// ScrollStopDelay controls how long after the last user scroll the thread is considered to have stopped scrolling.
// Drives the floating timestamp only
var ScrollStopDelay = 2 * time.Second

// *********************************************************************************************************************

// OffsetToShowToast is the pixel offset applied when jumping to the new messages separator, so the toast shown at
// the top of the thread doesn't cover it
const OffsetToShowToast = -50

// DefaultCellHeight is the assumed pixel height of a terminal row
const DefaultCellHeight = 16

// EstimatedRowLines is the number of terminal rows assumed for a row that hasn't been measured yet, before any
// measurement exists to average over
const EstimatedRowLines = 3

// MaxLayoutPasses bounds the measure/relayout loop that runs after every driving event
const MaxLayoutPasses = 3

// MobileMaxColumns is the widest terminal treated as a mobile viewport
const MobileMaxColumns = 80

// MobileTerminalPrograms are TERM_PROGRAM/LC_TERMINAL values reported by terminal apps on phones and tablets
var MobileTerminalPrograms = []string{
	"Blink",
	"Termius",
	"a-Shell",
	"iSH",
	"Termux",
}

// ConsecutivePostWindow is the longest gap between two posts by the same author for the newer one to leave out its
// author line
const ConsecutivePostWindow = 5 * time.Minute

// WheelScrollRows controls how many rows one mouse wheel tick scrolls
const WheelScrollRows = 3

// WatchDebounce collapses the burst of write events a single save of the thread file produces
var WatchDebounce = 100 * time.Millisecond

// RelativeTimestampRefresh controls how often relative timestamps ("5m ago") are re-rendered
const RelativeTimestampRefresh = time.Minute

// ToastDuration controls how long status toasts are shown
var ToastDuration = 5 * time.Second
