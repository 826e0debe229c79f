package model

import (
	"fmt"
	"time"
)

type ItemKind int

const (
	KindPost ItemKind = iota
	KindDateSeparator
	KindNewMessagesSeparator
)

func (k ItemKind) String() string {
	switch k {
	case KindPost:
		return "post"
	case KindDateSeparator:
		return "date"
	case KindNewMessagesSeparator:
		return "new-messages"
	default:
		return fmt.Sprintf("ItemKind(%d)", int(k))
	}
}

const dateKeyLayout = "2006-01-02"

// ReplyItem is one entry of a ReplyList: a post, a date separator or the new messages separator
type ReplyItem struct {
	Kind ItemKind
	// PostID is set for KindPost
	PostID string
	// Date is set for KindDateSeparator, truncated to the day in its location
	Date time.Time
}

func PostItem(id string) ReplyItem {
	return ReplyItem{Kind: KindPost, PostID: id}
}

func DateSeparator(date time.Time) ReplyItem {
	y, m, d := date.Date()
	return ReplyItem{Kind: KindDateSeparator, Date: time.Date(y, m, d, 0, 0, 0, 0, date.Location())}
}

func NewMessagesSeparator() ReplyItem {
	return ReplyItem{Kind: KindNewMessagesSeparator}
}

// Key identifies the item across ReplyList rebuilds. Heights and scroll anchors are tracked by key
func (i ReplyItem) Key() string {
	switch i.Kind {
	case KindPost:
		return "post:" + i.PostID
	case KindDateSeparator:
		return "date:" + i.Date.Format(dateKeyLayout)
	case KindNewMessagesSeparator:
		return "new-messages"
	default:
		return ""
	}
}

func (i ReplyItem) IsPost() bool {
	return i.Kind == KindPost
}

func (i ReplyItem) IsSeparator() bool {
	return i.Kind == KindDateSeparator || i.Kind == KindNewMessagesSeparator
}

func (i ReplyItem) String() string {
	return i.Key()
}
