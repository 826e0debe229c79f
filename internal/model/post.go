package model

import (
	"strings"
	"time"
)

const PostStateDeleted = "DELETED"

type Post struct {
	ID       string     `json:"id"`
	UserID   string     `json:"user_id"`
	Username string     `json:"username"`
	RootID   string     `json:"root_id"`
	Message  string     `json:"message"`
	CreateAt time.Time  `json:"create_at"`
	EditAt   *time.Time `json:"edit_at,omitempty"`
	State    string     `json:"state,omitempty"`
}

func (p Post) IsDeleted() bool {
	return p.State == PostStateDeleted
}

func (p Post) IsEdited() bool {
	return p.EditAt != nil && !p.EditAt.IsZero()
}

// DisplayName is the name shown in a post header
func (p Post) DisplayName() string {
	if name := strings.TrimSpace(p.Username); name != "" {
		return name
	}
	return p.UserID
}

// PostLookup resolves post ids found in a ReplyList
type PostLookup interface {
	Post(id string) (Post, bool)
}

// Channel is passed through to the reply composer. The thread viewer itself never interprets it
type Channel struct {
	ID          string     `json:"id"`
	TeamID      string     `json:"team_id"`
	Type        string     `json:"type"`
	DisplayName string     `json:"display_name"`
	DeleteAt    *time.Time `json:"delete_at,omitempty"`
}

func (c Channel) IsArchived() bool {
	return c.DeleteAt != nil && !c.DeleteAt.IsZero()
}
