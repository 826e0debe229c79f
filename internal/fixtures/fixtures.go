package fixtures

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/robinovitch61/thr/internal/fileio"
	"github.com/robinovitch61/thr/internal/model"
)

var users = []struct{ id, name string }{
	{"u-alice", "alice"},
	{"u-bob", "bob"},
	{"u-carol", "carol"},
	{"u-dmitri", "dmitri"},
	{"u-eve", "eve"},
}

var words = strings.Fields(`
	the deploy went out at noon but the canary is still red and nobody has looked at the dashboards since
	lunch so I am rolling back now please hold merges until we know whether the migration or the cache
	change is to blame also remember the retro is tomorrow and I still need your notes on the incident
`)

// DemoThread generates a deterministic thread of a root and replies posts, spread over several days and ending at
// end. The returned file marks roughly the newest fifth of the replies unread
func DemoThread(replies int, seed int64, end time.Time) fileio.ThreadFile {
	replies = max(0, replies)
	r := rand.New(rand.NewSource(seed))
	entropy := ulid.Monotonic(r, 0)

	// walk backwards from end so the newest post lands exactly on it
	times := make([]time.Time, replies+1)
	t := end
	for i := replies; i >= 0; i-- {
		times[i] = t
		t = t.Add(-time.Duration(1+r.Intn(240)) * time.Minute)
	}

	posts := make([]model.Post, 0, replies+1)
	var rootID string
	for i, createAt := range times {
		u := users[r.Intn(len(users))]
		id := strings.ToLower(ulid.MustNew(ulid.Timestamp(createAt), entropy).String())
		p := model.Post{
			ID:       id,
			UserID:   u.id,
			Username: u.name,
			Message:  message(r, i),
			CreateAt: createAt,
		}
		if i == 0 {
			rootID = id
		} else {
			p.RootID = rootID
		}
		switch n := r.Intn(20); {
		case n == 0 && i > 0:
			p.State = model.PostStateDeleted
		case n < 3:
			edited := createAt.Add(time.Duration(1+r.Intn(10)) * time.Minute)
			p.EditAt = &edited
		}
		posts = append(posts, p)
	}

	tf := fileio.ThreadFile{
		Channel: model.Channel{ID: "demo", TeamID: "demo", Type: "O", DisplayName: "town-square"},
		RootID:  rootID,
		Posts:   posts,
	}
	if unread := replies / 5; unread > 0 {
		lastViewed := times[replies-unread].Add(time.Second)
		tf.LastViewedAt = &lastViewed
	}
	return tf
}

func message(r *rand.Rand, i int) string {
	if i == 0 {
		return "Heads up: starting a thread for today's rollout. Reply here with anything odd you see."
	}
	lines := 1 + r.Intn(3)
	if r.Intn(10) == 0 {
		lines += 4
	}
	var b strings.Builder
	for l := 0; l < lines; l++ {
		if l > 0 {
			b.WriteString("\n")
		}
		n := 3 + r.Intn(18)
		start := r.Intn(len(words))
		for w := 0; w < n; w++ {
			if w > 0 {
				b.WriteString(" ")
			}
			b.WriteString(words[(start+w)%len(words)])
		}
	}
	if r.Intn(8) == 0 {
		fmt.Fprintf(&b, " (see #%d)", 1+r.Intn(i+1))
	}
	return b.String()
}
