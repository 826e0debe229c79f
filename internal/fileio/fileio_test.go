package fileio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/robinovitch61/thr/internal/model"
	"github.com/robinovitch61/thr/internal/util"
	"github.com/stretchr/testify/require"
)

const threadJSON = `{
  "channel": {"id": "c1", "team_id": "t1", "type": "O", "delete_at": null, "display_name": "town-square"},
  "root_id": "p1",
  "last_viewed_at": "2024-01-02T15:04:05Z",
  "posts": [
    {"id": "p2", "user_id": "u2", "username": "bob", "root_id": "p1", "message": "hey\nthere",
     "create_at": "2024-01-02T15:10:00Z", "edit_at": "2024-01-02T15:11:00Z", "state": ""},
    {"id": "p1", "user_id": "u1", "username": "alice", "root_id": "", "message": "hi",
     "create_at": "2024-01-02T15:00:00Z", "edit_at": null, "state": ""},
    {"id": "p3", "user_id": "u1", "root_id": "p1", "message": "oops",
     "create_at": "2024-01-02T15:20:00Z", "state": "DELETED"}
  ]
}`

func TestParseThreadFile(t *testing.T) {
	tf, err := ParseThreadFile(strings.NewReader(threadJSON))
	require.NoError(t, err)
	require.Equal(t, "town-square", tf.Channel.DisplayName)
	require.False(t, tf.Channel.IsArchived())
	require.Equal(t, time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC), tf.LastViewed())

	thread := tf.Thread()
	require.Equal(t, "p1", thread.RootID)
	require.Equal(t, 3, thread.Len())
	p2, ok := thread.Post("p2")
	require.True(t, ok)
	require.True(t, p2.IsEdited())
	p3, _ := thread.Post("p3")
	require.True(t, p3.IsDeleted())
}

func TestParseThreadFile_Errors(t *testing.T) {
	_, err := ParseThreadFile(strings.NewReader(`{"posts": []}`))
	require.True(t, errors.Is(err, ErrNoPosts))

	_, err = ParseThreadFile(strings.NewReader(`{"posts": [`))
	require.Error(t, err)

	_, err = ParseThreadFile(strings.NewReader(`{"posts": [{"message": "no id"}]}`))
	require.Error(t, err)

	_, err = ReadThreadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestThreadFile_RootFallback(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tf := ThreadFile{Posts: []model.Post{
		{ID: "b", RootID: "x", CreateAt: base.Add(time.Minute)},
		{ID: "a", RootID: "x", CreateAt: base},
	}}
	require.Equal(t, "a", tf.Thread().RootID, "oldest post when none is a root")

	tf.Posts = append(tf.Posts, model.Post{ID: "r", CreateAt: base.Add(time.Hour)})
	require.Equal(t, "r", tf.Thread().RootID, "post without a root id")
}

func TestWriteThreadFile_RoundTrip(t *testing.T) {
	tf, err := ParseThreadFile(strings.NewReader(threadJSON))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "thread.json")
	require.NoError(t, WriteThreadFile(path, tf))

	read, err := ReadThreadFile(path)
	require.NoError(t, err)
	require.Equal(t, tf.RootID, read.RootID)
	require.Len(t, read.Posts, len(tf.Posts))
	require.True(t, read.Posts[0].CreateAt.Equal(tf.Posts[0].CreateAt))
}

func TestTranscriptLines(t *testing.T) {
	tf, err := ParseThreadFile(strings.NewReader(threadJSON))
	require.NoError(t, err)
	lines := TranscriptLines(tf.Thread(), time.UTC)
	util.CmpStr(t, strings.Join([]string{
		"[2024-01-02 15:00] alice",
		"    hi",
		"",
		"[2024-01-02 15:10] bob (edited)",
		"    hey",
		"    there",
		"",
		"[2024-01-02 15:20] u1",
		"    (message deleted)",
		"",
	}, "\n"), strings.Join(lines, "\n"))

	require.Nil(t, TranscriptLines(nil, time.UTC))
}

func TestGetSaveCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "out")

	msg := GetSaveCommand(path, []string{"a", "b"})().(SaveCompleteMsg)
	require.Empty(t, msg.ErrMessage)
	require.Equal(t, path+".txt", msg.FullPath)
	content, err := os.ReadFile(msg.FullPath)
	require.NoError(t, err)
	require.Equal(t, "a\nb\n", string(content))

	// saving again doesn't overwrite
	again := GetSaveCommand(path, []string{"c"})().(SaveCompleteMsg)
	require.NotEqual(t, msg.FullPath, again.FullPath)
	require.True(t, strings.HasSuffix(again.FullPath, ".txt"))
}
