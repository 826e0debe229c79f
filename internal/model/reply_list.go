package model

import (
	"sync/atomic"
)

var lastListVersion atomic.Uint64

// ReplyList is the full ordered sequence of items in a thread, MOST RECENT FIRST: index 0 is the newest item and
// the last index is the oldest. It is immutable; the data owner builds a new one whenever the thread changes
type ReplyList struct {
	items           []ReplyItem
	version         uint64
	latestPostIdx   int
	newMessagesIdx  int
	postIdxByPostID map[string]int
}

// NewReplyList copies items into a new list with a fresh version. Any new messages separator after the first one
// is dropped, so the list holds at most one
func NewReplyList(items []ReplyItem) ReplyList {
	l := ReplyList{
		items:           make([]ReplyItem, 0, len(items)),
		version:         lastListVersion.Add(1),
		latestPostIdx:   -1,
		newMessagesIdx:  -1,
		postIdxByPostID: make(map[string]int),
	}
	for _, item := range items {
		idx := len(l.items)
		switch item.Kind {
		case KindNewMessagesSeparator:
			if l.newMessagesIdx >= 0 {
				continue
			}
			l.newMessagesIdx = idx
		case KindPost:
			if l.latestPostIdx < 0 {
				l.latestPostIdx = idx
			}
			if _, ok := l.postIdxByPostID[item.PostID]; !ok {
				l.postIdxByPostID[item.PostID] = idx
			}
		}
		l.items = append(l.items, item)
	}
	return l
}

// Version increases every time a list is built. Two lists with the same version hold the same items
func (l ReplyList) Version() uint64 {
	return l.version
}

func (l ReplyList) Len() int {
	return len(l.items)
}

// At returns the item at index, or false if index is out of range
func (l ReplyList) At(index int) (ReplyItem, bool) {
	if index < 0 || index >= len(l.items) {
		return ReplyItem{}, false
	}
	return l.items[index], true
}

// Items returns the backing items. Callers must not modify them
func (l ReplyList) Items() []ReplyItem {
	return l.items
}

// IndexOfPost returns the index of the post with the given id, or -1
func (l ReplyList) IndexOfPost(id string) int {
	if id == "" || l.postIdxByPostID == nil {
		return -1
	}
	if idx, ok := l.postIdxByPostID[id]; ok {
		return idx
	}
	return -1
}

// IndexOfKey returns the index of the item with the given key, or -1
func (l ReplyList) IndexOfKey(key string) int {
	switch {
	case len(key) > len("post:") && key[:len("post:")] == "post:":
		return l.IndexOfPost(key[len("post:"):])
	case key == "new-messages":
		return l.newMessagesIdx
	}
	for i := range l.items {
		if l.items[i].Key() == key {
			return i
		}
	}
	return -1
}

// NewMessagesIndex returns the index of the new messages separator, or -1
func (l ReplyList) NewMessagesIndex() int {
	if l.items == nil {
		return -1
	}
	return l.newMessagesIdx
}

// LatestPostIndex returns the index of the newest post, skipping any leading separators, or -1
func (l ReplyList) LatestPostIndex() int {
	if l.items == nil {
		return -1
	}
	return l.latestPostIdx
}

// LatestPostID returns the id of the newest post, or ""
func (l ReplyList) LatestPostID() string {
	if idx := l.LatestPostIndex(); idx >= 0 {
		return l.items[idx].PostID
	}
	return ""
}

// LatestPostIDFrom returns the id of the newest post at or after index, i.e. index or older, or ""
func (l ReplyList) LatestPostIDFrom(index int) string {
	for i := max(0, index); i < len(l.items); i++ {
		if l.items[i].IsPost() {
			return l.items[i].PostID
		}
	}
	return ""
}

// PreviousPostID returns the id of the post immediately older than index, skipping separators, or ""
func (l ReplyList) PreviousPostID(index int) string {
	if index < 0 {
		return ""
	}
	return l.LatestPostIDFrom(index + 1)
}

// NumPosts returns the number of genuine posts in the list
func (l ReplyList) NumPosts() int {
	return len(l.postIdxByPostID)
}

