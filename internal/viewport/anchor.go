package viewport

import "fmt"

type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

func (a Align) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return fmt.Sprintf("Align(%d)", int(a))
	}
}

// Anchor is a logical scroll target: an item index, where that item should sit in the viewport, and a pixel offset
// added to the result. A negative offset moves the item further down in the viewport
type Anchor struct {
	Index  int
	Align  Align
	Offset int
}

func (a Anchor) String() string {
	if a.Offset != 0 {
		return fmt.Sprintf("{%d %s %+d}", a.Index, a.Align, a.Offset)
	}
	return fmt.Sprintf("{%d %s}", a.Index, a.Align)
}

// BottomAnchor puts the bottom of the newest item at the bottom of the viewport
func BottomAnchor() Anchor {
	return Anchor{Index: 0, Align: AlignEnd}
}

// Resolve turns an anchor into a scroll offset against the layout. Out of range indexes are clamped and the result
// is always a valid offset. The same anchor against the same layout gives the same offset
func Resolve(layout Layout, anchor Anchor, viewportHeight int) int {
	n := layout.Len()
	if n == 0 {
		return 0
	}
	i := clampValMinMax(anchor.Index, 0, n-1)
	top := layout.Top(i)
	h := layout.Height(i)

	var offset int
	switch anchor.Align {
	case AlignEnd:
		offset = top + h - viewportHeight
	case AlignCenter:
		offset = top + h/2 - viewportHeight/2
	default:
		offset = top
	}
	offset += anchor.Offset
	return clampValMinMax(offset, 0, layout.MaxOffset(viewportHeight))
}
