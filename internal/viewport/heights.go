package viewport

// Heights is the item height model. Measured heights are stored by item key, so they survive list rebuilds. Items
// that were never measured get an estimate: the average measured height, or a default before anything is measured.
// All values are in pixels and multiples of the cell height
type Heights struct {
	cellHeight    int
	defaultHeight int
	width         int
	measured      map[string]int
	sum           int
}

func NewHeights(cellHeight, defaultLines int) Heights {
	cellHeight = max(1, cellHeight)
	return Heights{
		cellHeight:    cellHeight,
		defaultHeight: max(1, defaultLines) * cellHeight,
		measured:      make(map[string]int),
	}
}

// SetWidth records the width measurements were taken at. A different width drops every measurement, since wrapped
// rows change height. Returns true if measurements were dropped
func (h *Heights) SetWidth(width int) bool {
	if width == h.width {
		return false
	}
	h.width = width
	if len(h.measured) == 0 {
		return false
	}
	h.Reset()
	return true
}

func (h *Heights) Reset() {
	h.measured = make(map[string]int)
	h.sum = 0
}

// Set stores a measured height given in terminal rows, returning true if it differs from what was known
func (h *Heights) Set(key string, lines int) bool {
	if h.measured == nil {
		h.measured = make(map[string]int)
	}
	px := max(0, lines) * h.cellHeight
	prev, ok := h.measured[key]
	if ok && prev == px {
		return false
	}
	h.sum += px - prev
	h.measured[key] = px
	return true
}

func (h *Heights) Forget(key string) {
	if prev, ok := h.measured[key]; ok {
		h.sum -= prev
		delete(h.measured, key)
	}
}

func (h Heights) Measured(key string) (int, bool) {
	px, ok := h.measured[key]
	return px, ok
}

// Estimate is the height assumed for unmeasured items, rounded to whole rows
func (h Heights) Estimate() int {
	n := len(h.measured)
	if n == 0 {
		return h.defaultHeight
	}
	avgLines := (h.sum/h.cellHeight + n/2) / n
	return max(1, avgLines) * h.cellHeight
}

// Height returns the measured height for key, or the estimate
func (h Heights) Height(key string) int {
	if px, ok := h.measured[key]; ok {
		return px
	}
	return h.Estimate()
}

func (h Heights) NumMeasured() int {
	return len(h.measured)
}

func (h Heights) CellHeight() int {
	return h.cellHeight
}
