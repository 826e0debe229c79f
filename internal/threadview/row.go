package threadview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/robinovitch61/thr/internal/color"
	"github.com/robinovitch61/thr/internal/constants"
	"github.com/robinovitch61/thr/internal/model"
	"github.com/robinovitch61/thr/internal/style"
	"github.com/robinovitch61/thr/internal/util"
)

const (
	bodyIndent    = "  "
	focusedGutter = "▌ "
	separatorFill = "─"
	timeLayout    = "3:04 PM"
)

// rowRenderer renders reply list items for the viewport. It is shared by pointer between copies of the thread
// Model, so the viewport's render func always sees the current list
type rowRenderer struct {
	list        model.ReplyList
	lookup      model.PostLookup
	decorations *DecorationCache
	opts        DecorateOptions
	composer    composer

	relative      bool
	now           time.Time
	loc           *time.Location
	highlightedID string
	focusedID     string
}

func (r *rowRenderer) render(index int, item model.ReplyItem, width int) string {
	d := r.decorations.Get(r.list, index, r.opts)

	var lines []string
	if d.PaddingTop {
		lines = append(lines, "")
	}
	switch item.Kind {
	case model.KindPost:
		lines = append(lines, r.renderPost(index, item.PostID, d, width)...)
	case model.KindDateSeparator:
		lines = append(lines, renderSeparator(formatDate(item.Date, r.now, r.loc), style.DateSeparatorStyle, width))
	case model.KindNewMessagesSeparator:
		lines = append(lines, renderSeparator("new messages", style.NewMessagesStyle, width))
	}
	if d.IsLastPost {
		lines = append(lines, r.composer.render(width, d.Compact)...)
	}
	if d.PaddingBottom {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (r *rowRenderer) renderPost(index int, id string, d Decoration, width int) []string {
	post, ok := r.lookup.Post(id)
	if !ok {
		return []string{style.PostDeletedStyle.Render(util.TruncateToWidth("message unavailable", width, "..."))}
	}

	gutter := ""
	if id == r.focusedID && id != "" {
		gutter = style.FocusedGutterStyle.Render(focusedGutter)
	}
	gutterWidth := lipgloss.Width(gutter)

	header := r.renderHeader(post, d, width-gutterWidth)
	if id == r.highlightedID {
		header = style.HighlightStyle.Render(header)
	}

	indent := bodyIndent
	if d.Compact {
		indent = ""
	}
	bodyWidth := max(1, width-gutterWidth-len(indent))

	var body []string
	if post.IsDeleted() {
		body = []string{style.PostDeletedStyle.Render("(message deleted)")}
	} else {
		body = wrapBody(post.Message, bodyWidth)
	}

	lines := make([]string, 0, len(body)+1)
	if !r.isConsecutive(index, post) {
		lines = append(lines, gutter+header)
	}
	for _, line := range body {
		lines = append(lines, gutter+indent+line)
	}
	return lines
}

func (r *rowRenderer) renderHeader(post model.Post, d Decoration, width int) string {
	author := style.PostAuthorStyle.Foreground(color.UsernameColor(post.UserID)).Render(post.DisplayName())
	parts := []string{author, style.PostTimestampStyle.Render(r.timeLabel(post.CreateAt))}
	if post.IsEdited() {
		parts = append(parts, style.PostEditedStyle.Render("(edited)"))
	}
	if d.IsFirstPost {
		parts = append(parts, style.PostRootLabelStyle.Render("started the thread"))
	}

	sep := "  "
	if d.Compact {
		sep = " · "
	}
	left := strings.Join(parts, sep)
	if d.Compact || d.A11yIndex == 0 {
		return util.JoinWithEqualSpacing(width, left)
	}
	return util.JoinWithEqualSpacing(width, left, style.PostOrdinalStyle.Render(fmt.Sprintf("#%d", d.A11yIndex)))
}

// isConsecutive reports whether post continues a run by the same author, in which case its author line is left out.
// The highlighted post always keeps it
func (r *rowRenderer) isConsecutive(index int, post model.Post) bool {
	if post.UserID == "" || post.ID == r.highlightedID {
		return false
	}
	prevID := r.list.PreviousPostID(index)
	if prevID == "" {
		return false
	}
	prev, ok := r.lookup.Post(prevID)
	if !ok || prev.UserID != post.UserID {
		return false
	}
	gap := post.CreateAt.Sub(prev.CreateAt)
	return gap >= 0 && gap <= constants.ConsecutivePostWindow
}

func (r *rowRenderer) timeLabel(t time.Time) string {
	if r.relative {
		return util.RelativeLabel(t, r.now)
	}
	return t.In(r.location()).Format(timeLayout)
}

func (r *rowRenderer) location() *time.Location {
	if r.loc == nil {
		return time.Local
	}
	return r.loc
}

// wrapBody word wraps a message to width, hard wrapping words that are too long to fit
func wrapBody(message string, width int) []string {
	message = strings.TrimRight(strings.ReplaceAll(message, "\r\n", "\n"), "\n")
	if message == "" {
		return []string{""}
	}
	wrapped := wrap.String(wordwrap.String(message, width), width)
	return strings.Split(wrapped, "\n")
}

func renderSeparator(label string, labelStyle lipgloss.Style, width int) string {
	if width <= 0 {
		return ""
	}
	label = util.TruncateToWidth(label, max(0, width-2), "...")
	if label == "" {
		return labelStyle.Render(strings.Repeat(separatorFill, width))
	}
	return labelStyle.Render(lipgloss.PlaceHorizontal(
		width,
		lipgloss.Center,
		" "+label+" ",
		lipgloss.WithWhitespaceChars(separatorFill),
	))
}

// formatDate labels a date separator relative to now
func formatDate(date, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	date, now = date.In(loc), now.In(loc)
	dy, dm, dd := date.Date()
	ny, nm, nd := now.Date()
	day := time.Date(dy, dm, dd, 0, 0, 0, 0, loc)
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, loc)
	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	case dy == ny:
		return date.Format("Mon, Jan 2")
	default:
		return date.Format("Mon, Jan 2, 2006")
	}
}
