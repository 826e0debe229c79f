package model

import (
	"time"
)

type BuildOptions struct {
	// ShowDate inserts a date separator before the first post of each day
	ShowDate bool
	// LastViewedAt is when the current user last read the thread. Zero means nothing is unread
	LastViewedAt time.Time
	// CurrentUserID's own posts never count as new messages
	CurrentUserID string
	// Location is the time zone date separators are computed in. Nil means local time
	Location *time.Location
}

// BuildReplyList turns the thread's posts into a ReplyList, newest first.
//
// Posts are walked oldest to newest. A date separator goes before each post that starts a new day, and a single new
// messages separator goes before the first post created after LastViewedAt by someone other than CurrentUserID.
// The result is then reversed, so with dates shown the oldest item is always a date separator
func BuildReplyList(thread *Thread, opts BuildOptions) ReplyList {
	if thread == nil {
		return NewReplyList(nil)
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	posts := thread.PostsOldestFirst()
	items := make([]ReplyItem, 0, len(posts)+len(posts)/4+2)
	var lastDay time.Time
	addedNewMessages := false
	for _, p := range posts {
		if opts.ShowDate {
			day := DateSeparator(p.CreateAt.In(loc))
			if !day.Date.Equal(lastDay) {
				items = append(items, day)
				lastDay = day.Date
			}
		}
		if !addedNewMessages && isUnread(p, opts) {
			items = append(items, NewMessagesSeparator())
			addedNewMessages = true
		}
		items = append(items, PostItem(p.ID))
	}

	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return NewReplyList(items)
}

func isUnread(p Post, opts BuildOptions) bool {
	if opts.LastViewedAt.IsZero() {
		return false
	}
	if opts.CurrentUserID != "" && p.UserID == opts.CurrentUserID {
		return false
	}
	return p.CreateAt.After(opts.LastViewedAt)
}
