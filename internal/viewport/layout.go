package viewport

import "sort"

// Layout positions items in content space. Index 0 is the NEWEST item and sits at the BOTTOM of the content; the
// highest index sits at the top. Content y grows downward from 0 at the top of the oldest item.
//
//	y=0            +-------------+
//	               |  item n-1   |
//	               +-------------+
//	               |    ...      |
//	               +-------------+
//	               |   item 0    |
//	y=Total()      +-------------+
type Layout struct {
	// prefix[k] is the summed height of items 0..k-1, i.e. the distance from the bottom of the content to the bottom
	// of item k
	prefix []int
}

// BuildLayout lays out n items with the given heights in pixels
func BuildLayout(n int, height func(i int) int) Layout {
	prefix := make([]int, n+1)
	for i := 0; i < n; i++ {
		prefix[i+1] = prefix[i] + max(0, height(i))
	}
	return Layout{prefix: prefix}
}

func (l Layout) Len() int {
	if len(l.prefix) == 0 {
		return 0
	}
	return len(l.prefix) - 1
}

// Total is the content height in pixels
func (l Layout) Total() int {
	if len(l.prefix) == 0 {
		return 0
	}
	return l.prefix[len(l.prefix)-1]
}

func (l Layout) Height(i int) int {
	if i < 0 || i >= l.Len() {
		return 0
	}
	return l.prefix[i+1] - l.prefix[i]
}

// Top is the content y of the top edge of item i
func (l Layout) Top(i int) int {
	i = clampValMinMax(i, 0, max(0, l.Len()-1))
	if l.Len() == 0 {
		return 0
	}
	return l.Total() - l.prefix[i+1]
}

// Bottom is the content y of the bottom edge of item i
func (l Layout) Bottom(i int) int {
	return l.Top(i) + l.Height(i)
}

// MaxOffset is the largest scroll offset that still fills a viewport of the given height
func (l Layout) MaxOffset(viewportHeight int) int {
	return max(0, l.Total()-viewportHeight)
}

// VisibleRange returns the newest and oldest item indexes that intersect [offset, offset+viewportHeight), or -1, -1
// if none do
func (l Layout) VisibleRange(offset, viewportHeight int) (newest, oldest int) {
	n := l.Len()
	if n == 0 || viewportHeight <= 0 {
		return -1, -1
	}
	total := l.Total()
	// item i intersects iff Top(i) < offset+viewportHeight and Bottom(i) > offset
	newest = sort.Search(n, func(i int) bool {
		return l.prefix[i+1] > total-offset-viewportHeight
	})
	end := sort.Search(n, func(i int) bool {
		return l.prefix[i] >= total-offset
	})
	if newest >= end {
		return -1, -1
	}
	return newest, end - 1
}

// ItemAt returns the index of the item covering content y, or -1
func (l Layout) ItemAt(y int) int {
	n := l.Len()
	total := l.Total()
	if n == 0 || y < 0 || y >= total {
		return -1
	}
	target := total - y
	i := sort.Search(n, func(i int) bool {
		return l.prefix[i+1] >= target
	})
	if i >= n || l.prefix[i] >= target {
		return -1
	}
	return i
}
