package fileio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/robinovitch61/thr/internal/model"
)

var ErrNoPosts = errors.New("thread has no posts")

// ThreadFile is the on-disk form of a thread
type ThreadFile struct {
	Channel      model.Channel `json:"channel"`
	RootID       string        `json:"root_id"`
	LastViewedAt *time.Time    `json:"last_viewed_at,omitempty"`
	Posts        []model.Post  `json:"posts"`
}

func ReadThreadFile(path string) (ThreadFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return ThreadFile{}, fmt.Errorf("error opening thread file: %w", err)
	}
	defer f.Close()
	tf, err := ParseThreadFile(f)
	if err != nil {
		return ThreadFile{}, fmt.Errorf("error reading %s: %w", path, err)
	}
	return tf, nil
}

func ParseThreadFile(r io.Reader) (ThreadFile, error) {
	var tf ThreadFile
	if err := json.NewDecoder(r).Decode(&tf); err != nil {
		return ThreadFile{}, fmt.Errorf("error decoding thread: %w", err)
	}
	if len(tf.Posts) == 0 {
		return ThreadFile{}, ErrNoPosts
	}
	for i, p := range tf.Posts {
		if p.ID == "" {
			return ThreadFile{}, fmt.Errorf("post %d has no id", i)
		}
	}
	return tf, nil
}

func WriteThreadFile(path string, tf ThreadFile) error {
	b, err := json.MarshalIndent(tf, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding thread: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0644); err != nil {
		return fmt.Errorf("error writing thread file: %w", err)
	}
	return nil
}

// Thread builds the ordered thread. Without a root id, the post with no root of its own is the root, falling back to
// the oldest post
func (tf ThreadFile) Thread() *model.Thread {
	rootID := tf.RootID
	if rootID == "" {
		for _, p := range tf.Posts {
			if p.RootID == "" {
				rootID = p.ID
				break
			}
		}
	}
	t := model.NewThread(rootID, tf.Channel, tf.Posts...)
	if posts := t.PostsOldestFirst(); rootID == "" && len(posts) > 0 {
		t.RootID = posts[0].ID
	}
	return t
}

func (tf ThreadFile) LastViewed() time.Time {
	if tf.LastViewedAt == nil {
		return time.Time{}
	}
	return *tf.LastViewedAt
}

// TranscriptLines renders the thread oldest first as plain text, for saving
func TranscriptLines(thread *model.Thread, loc *time.Location) []string {
	if thread == nil {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}
	var lines []string
	for _, p := range thread.PostsOldestFirst() {
		header := fmt.Sprintf("[%s] %s", p.CreateAt.In(loc).Format("2006-01-02 15:04"), p.DisplayName())
		if p.IsEdited() {
			header += " (edited)"
		}
		lines = append(lines, header)
		if p.IsDeleted() {
			lines = append(lines, "    (message deleted)")
		} else {
			for _, line := range strings.Split(strings.TrimRight(p.Message, "\n"), "\n") {
				lines = append(lines, "    "+line)
			}
		}
		lines = append(lines, "")
	}
	return lines
}
