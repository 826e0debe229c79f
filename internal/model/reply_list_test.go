package model

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func keysOf(l ReplyList) []string {
	keys := make([]string, 0, l.Len())
	for _, item := range l.Items() {
		keys = append(keys, item.Key())
	}
	return keys
}

func TestNewReplyList_DropsDuplicateNewMessages(t *testing.T) {
	l := NewReplyList([]ReplyItem{
		PostItem("c"),
		NewMessagesSeparator(),
		PostItem("b"),
		NewMessagesSeparator(),
		PostItem("a"),
	})
	want := []string{"post:c", "new-messages", "post:b", "post:a"}
	if diff := cmp.Diff(want, keysOf(l)); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if l.NewMessagesIndex() != 1 {
		t.Errorf("expected new messages index 1, got %d", l.NewMessagesIndex())
	}
}

func TestNewReplyList_VersionIncreases(t *testing.T) {
	a := NewReplyList([]ReplyItem{PostItem("a")})
	b := NewReplyList([]ReplyItem{PostItem("a")})
	if b.Version() <= a.Version() {
		t.Errorf("expected version to increase, got %d then %d", a.Version(), b.Version())
	}
}

func TestReplyList_LatestPost(t *testing.T) {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		items   []ReplyItem
		wantIdx int
		wantID  string
	}{
		{"empty", nil, -1, ""},
		{"only separators", []ReplyItem{DateSeparator(day), NewMessagesSeparator()}, -1, ""},
		{"post first", []ReplyItem{PostItem("b"), PostItem("a")}, 0, "b"},
		{"leading separator", []ReplyItem{NewMessagesSeparator(), PostItem("b"), DateSeparator(day)}, 1, "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewReplyList(tt.items)
			if got := l.LatestPostIndex(); got != tt.wantIdx {
				t.Errorf("LatestPostIndex() = %d, want %d", got, tt.wantIdx)
			}
			if got := l.LatestPostID(); got != tt.wantID {
				t.Errorf("LatestPostID() = %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestReplyList_Lookups(t *testing.T) {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	l := NewReplyList([]ReplyItem{
		PostItem("c"),
		NewMessagesSeparator(),
		PostItem("b"),
		DateSeparator(day),
		PostItem("a"),
		DateSeparator(day.AddDate(0, 0, -1)),
	})

	if got := l.IndexOfPost("b"); got != 2 {
		t.Errorf("IndexOfPost(b) = %d", got)
	}
	if got := l.IndexOfPost("missing"); got != -1 {
		t.Errorf("IndexOfPost(missing) = %d", got)
	}
	if got := l.IndexOfPost(""); got != -1 {
		t.Errorf("IndexOfPost(\"\") = %d", got)
	}
	if got := l.IndexOfKey("date:2024-01-02"); got != 3 {
		t.Errorf("IndexOfKey(date) = %d", got)
	}
	if got := l.IndexOfKey("new-messages"); got != 1 {
		t.Errorf("IndexOfKey(new-messages) = %d", got)
	}
	if got := l.PreviousPostID(0); got != "b" {
		t.Errorf("PreviousPostID(0) = %q", got)
	}
	if got := l.PreviousPostID(2); got != "a" {
		t.Errorf("PreviousPostID(2) = %q", got)
	}
	if got := l.PreviousPostID(4); got != "" {
		t.Errorf("PreviousPostID(4) = %q", got)
	}
	if got := l.NumPosts(); got != 3 {
		t.Errorf("NumPosts() = %d", got)
	}
	if _, ok := l.At(6); ok {
		t.Errorf("At(6) should be out of range")
	}
	if _, ok := l.At(-1); ok {
		t.Errorf("At(-1) should be out of range")
	}
	if item, ok := l.At(5); !ok || item.Kind != KindDateSeparator {
		t.Errorf("At(5) = %v, %v", item, ok)
	}
}

func TestReplyList_ZeroValue(t *testing.T) {
	var l ReplyList
	if l.Len() != 0 || l.LatestPostIndex() != -1 || l.NewMessagesIndex() != -1 || l.IndexOfPost("a") != -1 {
		t.Errorf("zero value ReplyList should behave as empty")
	}
}
