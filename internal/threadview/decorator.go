package threadview

import (
	"github.com/robinovitch61/thr/internal/model"
)

// DecorateOptions are the display settings decorations depend on
type DecorateOptions struct {
	// TrailingBoundary is set when the oldest item in the list is a date separator rather than the root post
	TrailingBoundary bool
	// Compact is set in mobile mode
	Compact bool
}

// Decoration is the per-row presentation metadata derived from a row's position in the list
type Decoration struct {
	// IsLastPost marks the newest post, under which the reply composer sits
	IsLastPost bool
	// IsFirstPost marks the oldest post, the root of the thread
	IsFirstPost bool
	// PaddingTop is set when the older neighbor is a separator
	PaddingTop bool
	// PaddingBottom is set when the newer neighbor is a separator
	PaddingBottom bool
	// A11yIndex numbers posts from the newest, starting at 1. Zero for separators
	A11yIndex int
	Compact   bool
}

// Decorate derives the decoration of the item at index. Indexes outside the list get the zero Decoration
func Decorate(list model.ReplyList, index int, opts DecorateOptions) Decoration {
	item, ok := list.At(index)
	if !ok {
		return Decoration{}
	}
	a11y := 0
	if item.IsPost() {
		for i := 0; i <= index; i++ {
			if it, _ := list.At(i); it.IsPost() {
				a11y++
			}
		}
	}
	return decorate(list, index, item, opts, a11y)
}

func decorate(list model.ReplyList, index int, item model.ReplyItem, opts DecorateOptions, a11y int) Decoration {
	d := Decoration{
		IsLastPost: index == list.LatestPostIndex(),
		A11yIndex:  a11y,
		Compact:    opts.Compact,
	}

	firstPostIndex := list.Len() - 1
	if opts.TrailingBoundary {
		firstPostIndex--
	}
	d.IsFirstPost = item.IsPost() && index == firstPostIndex

	if older, ok := list.At(index + 1); ok && older.IsSeparator() {
		d.PaddingTop = true
	}
	if newer, ok := list.At(index - 1); ok && newer.IsSeparator() {
		d.PaddingBottom = true
	}
	return d
}

// DecorationCache memoizes decorations per (list version, index). A new list version or new options drop everything
type DecorationCache struct {
	version uint64
	opts    DecorateOptions
	byIndex map[int]Decoration
	// a11yPrefix[i] is the number of posts at indexes 0..i, built up lazily
	a11yPrefix []int
}

func NewDecorationCache() *DecorationCache {
	return &DecorationCache{byIndex: make(map[int]Decoration)}
}

func (c *DecorationCache) Get(list model.ReplyList, index int, opts DecorateOptions) Decoration {
	if c.byIndex == nil || c.version != list.Version() || c.opts != opts {
		c.byIndex = make(map[int]Decoration)
		c.a11yPrefix = c.a11yPrefix[:0]
		c.version = list.Version()
		c.opts = opts
	}
	if d, ok := c.byIndex[index]; ok {
		return d
	}
	item, ok := list.At(index)
	if !ok {
		return Decoration{}
	}
	a11y := 0
	if item.IsPost() {
		a11y = c.postsThrough(list, index)
	}
	d := decorate(list, index, item, opts, a11y)
	c.byIndex[index] = d
	return d
}

func (c *DecorationCache) Invalidate() {
	c.byIndex = nil
	c.a11yPrefix = c.a11yPrefix[:0]
}

func (c *DecorationCache) postsThrough(list model.ReplyList, index int) int {
	for i := len(c.a11yPrefix); i <= index; i++ {
		prev := 0
		if i > 0 {
			prev = c.a11yPrefix[i-1]
		}
		if it, _ := list.At(i); it.IsPost() {
			prev++
		}
		c.a11yPrefix = append(c.a11yPrefix, prev)
	}
	return c.a11yPrefix[index]
}
