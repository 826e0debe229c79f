package model

import (
	"strings"

	"github.com/emirpasic/gods/trees/redblacktree"
)

type postKey struct {
	CreateAt int64
	ID       string
}

// newestFirst orders posts by creation time descending, breaking ties by id descending
func newestFirst(a, b interface{}) int {
	ka := a.(postKey)
	kb := b.(postKey)
	if ka.CreateAt != kb.CreateAt {
		if ka.CreateAt > kb.CreateAt {
			return -1
		}
		return 1
	}
	return -strings.Compare(ka.ID, kb.ID)
}

// Thread holds the root post and its replies, ordered newest first
type Thread struct {
	RootID  string
	Channel Channel
	posts   *redblacktree.Tree
	keyByID map[string]postKey
}

func NewThread(rootID string, channel Channel, posts ...Post) *Thread {
	t := &Thread{
		RootID:  rootID,
		Channel: channel,
		posts:   redblacktree.NewWith(newestFirst),
		keyByID: make(map[string]postKey),
	}
	for _, p := range posts {
		t.Upsert(p)
	}
	return t
}

// Upsert adds p, replacing any existing post with the same id
func (t *Thread) Upsert(p Post) {
	if old, ok := t.keyByID[p.ID]; ok {
		t.posts.Remove(old)
	}
	k := postKey{CreateAt: p.CreateAt.UnixNano(), ID: p.ID}
	t.posts.Put(k, p)
	t.keyByID[p.ID] = k
}

func (t *Thread) Remove(id string) bool {
	k, ok := t.keyByID[id]
	if !ok {
		return false
	}
	t.posts.Remove(k)
	delete(t.keyByID, id)
	return true
}

// Post implements PostLookup
func (t *Thread) Post(id string) (Post, bool) {
	k, ok := t.keyByID[id]
	if !ok {
		return Post{}, false
	}
	v, found := t.posts.Get(k)
	if !found {
		return Post{}, false
	}
	return v.(Post), true
}

func (t *Thread) Len() int {
	return t.posts.Size()
}

// Root returns the thread's root post if it is present
func (t *Thread) Root() (Post, bool) {
	return t.Post(t.RootID)
}

// LastPost returns the newest post in the thread
func (t *Thread) LastPost() (Post, bool) {
	n := t.posts.Left()
	if n == nil {
		return Post{}, false
	}
	return n.Value.(Post), true
}

// Posts returns every post, newest first
func (t *Thread) Posts() []Post {
	res := make([]Post, 0, t.posts.Size())
	it := t.posts.Iterator()
	for it.Next() {
		res = append(res, it.Value().(Post))
	}
	return res
}

// PostsOldestFirst returns every post, oldest first
func (t *Thread) PostsOldestFirst() []Post {
	res := make([]Post, 0, t.posts.Size())
	it := t.posts.Iterator()
	for it.End(); it.Prev(); {
		res = append(res, it.Value().(Post))
	}
	return res
}
