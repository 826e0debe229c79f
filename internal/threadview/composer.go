package threadview

import (
	"strings"

	"github.com/robinovitch61/thr/internal/model"
	"github.com/robinovitch61/thr/internal/style"
	"github.com/robinovitch61/thr/internal/util"
)

// composer is the reply box shown under the newest post. Replying itself happens elsewhere; the thread view only
// shows whether a reply is possible
type composer struct {
	channel     model.Channel
	rootDeleted bool
	// blockFocus is set when the thread was opened away from the bottom, so the box doesn't claim focus
	blockFocus bool
}

func (c composer) placeholder() string {
	switch {
	case c.channel.IsArchived():
		return "You are viewing an archived channel. New messages cannot be posted."
	case c.rootDeleted:
		return "Cannot reply to a deleted message."
	case c.channel.Type == "D" && c.channel.DisplayName != "":
		return "Reply to " + c.channel.DisplayName
	case c.channel.DisplayName != "":
		return "Reply in ~" + c.channel.DisplayName
	default:
		return "Reply to thread"
	}
}

func (c composer) render(width int, compact bool) []string {
	if width <= 0 {
		return nil
	}
	text := c.placeholder()
	if compact || width < 6 {
		return []string{style.Faint.Render(util.TruncateToWidth("> "+text, width, "..."))}
	}
	boxStyle := style.ComposerStyle
	if c.blockFocus {
		boxStyle = style.ComposerBlocked
	}
	// border takes a column on each side
	box := boxStyle.Width(width - 2).Render(text)
	return strings.Split(box, "\n")
}
