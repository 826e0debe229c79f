package model

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func postAt(id, user string, at time.Time) Post {
	return Post{ID: id, UserID: user, Username: user, RootID: "root", Message: "message " + id, CreateAt: at}
}

func postIDs(posts []Post) []string {
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

func TestThread_OrderedNewestFirst(t *testing.T) {
	base := time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)
	thread := NewThread("root", Channel{},
		postAt("b", "u1", base.Add(time.Minute)),
		postAt("root", "u1", base),
		postAt("d", "u2", base.Add(2*time.Minute)),
		// same time as d, ties broken by id descending
		postAt("c", "u2", base.Add(2*time.Minute)),
	)

	if diff := cmp.Diff([]string{"d", "c", "b", "root"}, postIDs(thread.Posts())); diff != "" {
		t.Errorf("Posts (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"root", "b", "c", "d"}, postIDs(thread.PostsOldestFirst())); diff != "" {
		t.Errorf("PostsOldestFirst (-want +got):\n%s", diff)
	}
	last, ok := thread.LastPost()
	if !ok || last.ID != "d" {
		t.Errorf("LastPost() = %v, %v", last.ID, ok)
	}
	root, ok := thread.Root()
	if !ok || root.ID != "root" {
		t.Errorf("Root() = %v, %v", root.ID, ok)
	}
}

func TestThread_UpsertReplaces(t *testing.T) {
	base := time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)
	thread := NewThread("root", Channel{}, postAt("root", "u1", base), postAt("a", "u1", base.Add(time.Minute)))

	edited := postAt("a", "u1", base.Add(time.Minute))
	edited.Message = "edited"
	thread.Upsert(edited)
	if thread.Len() != 2 {
		t.Fatalf("expected 2 posts, got %d", thread.Len())
	}
	got, ok := thread.Post("a")
	if !ok || got.Message != "edited" {
		t.Errorf("Post(a) = %q, %v", got.Message, ok)
	}

	// moving a post in time moves it in the order
	moved := postAt("root", "u1", base.Add(time.Hour))
	thread.Upsert(moved)
	if diff := cmp.Diff([]string{"root", "a"}, postIDs(thread.Posts())); diff != "" {
		t.Errorf("Posts (-want +got):\n%s", diff)
	}
}

func TestThread_Remove(t *testing.T) {
	base := time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)
	thread := NewThread("root", Channel{}, postAt("root", "u1", base), postAt("a", "u1", base.Add(time.Minute)))
	if !thread.Remove("a") {
		t.Errorf("expected Remove(a) to succeed")
	}
	if thread.Remove("a") {
		t.Errorf("expected second Remove(a) to fail")
	}
	if _, ok := thread.Post("a"); ok {
		t.Errorf("expected a to be gone")
	}
	last, _ := thread.LastPost()
	if last.ID != "root" {
		t.Errorf("LastPost() = %q", last.ID)
	}
}

func TestThread_Empty(t *testing.T) {
	thread := NewThread("root", Channel{})
	if _, ok := thread.LastPost(); ok {
		t.Errorf("empty thread has no last post")
	}
	if len(thread.Posts()) != 0 {
		t.Errorf("empty thread has no posts")
	}
}
