package threadview

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/robinovitch61/thr/internal/model"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

func TestDecorate_Padding(t *testing.T) {
	list := model.NewReplyList([]model.ReplyItem{
		model.DateSeparator(day),
		model.PostItem("a"),
		model.PostItem("b"),
	})

	a := Decorate(list, 1, DecorateOptions{})
	require.True(t, a.PaddingBottom, "newer neighbor is a separator")
	require.False(t, a.PaddingTop, "older neighbor is a post")

	b := Decorate(list, 2, DecorateOptions{})
	require.False(t, b.PaddingBottom)
	require.False(t, b.PaddingTop, "nothing older")
}

func TestDecorate_BothPaddings(t *testing.T) {
	list := model.NewReplyList([]model.ReplyItem{
		model.PostItem("c"),
		model.NewMessagesSeparator(),
		model.PostItem("b"),
		model.DateSeparator(day),
		model.PostItem("a"),
	})
	d := Decorate(list, 2, DecorateOptions{})
	require.True(t, d.PaddingTop)
	require.True(t, d.PaddingBottom)
}

func TestDecorate_LastAndFirstPost(t *testing.T) {
	// oldest item is a date separator when dates are shown
	withDates := model.NewReplyList([]model.ReplyItem{
		model.NewMessagesSeparator(),
		model.PostItem("b"),
		model.PostItem("a"),
		model.DateSeparator(day),
	})
	opts := DecorateOptions{TrailingBoundary: true}

	require.False(t, Decorate(withDates, 0, opts).IsLastPost, "separator is never the last post")
	require.True(t, Decorate(withDates, 1, opts).IsLastPost)
	require.False(t, Decorate(withDates, 2, opts).IsLastPost)
	require.True(t, Decorate(withDates, 2, opts).IsFirstPost)
	require.False(t, Decorate(withDates, 3, opts).IsFirstPost)

	noDates := model.NewReplyList([]model.ReplyItem{
		model.PostItem("b"),
		model.PostItem("a"),
	})
	require.True(t, Decorate(noDates, 1, DecorateOptions{}).IsFirstPost)
	require.False(t, Decorate(noDates, 0, DecorateOptions{}).IsFirstPost)
}

func TestDecorate_A11yIndex(t *testing.T) {
	list := model.NewReplyList([]model.ReplyItem{
		model.PostItem("d"),
		model.NewMessagesSeparator(),
		model.PostItem("c"),
		model.PostItem("b"),
		model.DateSeparator(day),
		model.PostItem("a"),
		model.DateSeparator(day.AddDate(0, 0, -1)),
	})
	var got []int
	for i := 0; i < list.Len(); i++ {
		got = append(got, Decorate(list, i, DecorateOptions{}).A11yIndex)
	}
	if diff := cmp.Diff([]int{1, 0, 2, 3, 0, 4, 0}, got); diff != "" {
		t.Errorf("a11y index mismatch (-want +got):\n%s", diff)
	}
}

func TestDecorate_OutOfRange(t *testing.T) {
	list := model.NewReplyList([]model.ReplyItem{model.PostItem("a")})
	require.Equal(t, Decoration{}, Decorate(list, -1, DecorateOptions{}))
	require.Equal(t, Decoration{}, Decorate(list, 1, DecorateOptions{}))
	require.Equal(t, Decoration{}, Decorate(model.ReplyList{}, 0, DecorateOptions{}))
}

func TestDecorationCache_MatchesDecorate(t *testing.T) {
	list := model.BuildReplyList(testThread(40), model.BuildOptions{
		ShowDate:     true,
		LastViewedAt: base.Add(30 * time.Minute),
		Location:     time.UTC,
	})
	cache := NewDecorationCache()
	for _, opts := range []DecorateOptions{{TrailingBoundary: true}, {TrailingBoundary: true, Compact: true}} {
		// out of order access must not skew the lazily built a11y counts
		for _, i := range []int{30, 2, 41, 0, 17, 5, 42, 100} {
			require.Equal(t, Decorate(list, i, opts), cache.Get(list, i, opts), "index %d", i)
		}
	}
}

func TestDecorationCache_NewListVersion(t *testing.T) {
	cache := NewDecorationCache()
	first := model.NewReplyList([]model.ReplyItem{model.PostItem("a")})
	require.True(t, cache.Get(first, 0, DecorateOptions{}).IsLastPost)

	second := model.NewReplyList([]model.ReplyItem{model.PostItem("b"), model.PostItem("a")})
	require.False(t, cache.Get(second, 1, DecorateOptions{}).IsLastPost)
	require.Equal(t, 2, cache.Get(second, 1, DecorateOptions{}).A11yIndex)

	cache.Invalidate()
	require.Equal(t, Decorate(second, 0, DecorateOptions{}), cache.Get(second, 0, DecorateOptions{}))
}
