package fixtures

import (
	"testing"
	"time"

	"github.com/robinovitch61/thr/internal/model"
	"github.com/stretchr/testify/require"
)

var end = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestDemoThread_Deterministic(t *testing.T) {
	a := DemoThread(200, 7, end)
	b := DemoThread(200, 7, end)
	require.Equal(t, a, b)

	c := DemoThread(200, 8, end)
	require.NotEqual(t, a.Posts[1].ID, c.Posts[1].ID)
}

func TestDemoThread_Shape(t *testing.T) {
	tf := DemoThread(200, 7, end)
	require.Len(t, tf.Posts, 201)
	require.Equal(t, tf.Posts[0].ID, tf.RootID)
	require.Empty(t, tf.Posts[0].RootID)
	require.False(t, tf.Posts[0].IsDeleted())
	require.True(t, tf.Posts[200].CreateAt.Equal(end))

	seen := make(map[string]bool)
	for i, p := range tf.Posts {
		require.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
		if i > 0 {
			require.Equal(t, tf.RootID, p.RootID)
			require.True(t, p.CreateAt.After(tf.Posts[i-1].CreateAt))
		}
	}

	list := model.BuildReplyList(tf.Thread(), model.BuildOptions{
		ShowDate:     true,
		LastViewedAt: tf.LastViewed(),
		Location:     time.UTC,
	})
	require.Greater(t, list.NewMessagesIndex(), 0)
	require.Equal(t, 201, list.NumPosts())
}

func TestDemoThread_NoReplies(t *testing.T) {
	tf := DemoThread(0, 1, end)
	require.Len(t, tf.Posts, 1)
	require.Nil(t, tf.LastViewedAt)
	tf = DemoThread(-5, 1, end)
	require.Len(t, tf.Posts, 1)
}
