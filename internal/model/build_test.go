package model

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func buildTestThread() *Thread {
	day1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	return NewThread("root", Channel{},
		postAt("root", "alice", day1),
		postAt("r1", "bob", day1.Add(time.Hour)),
		postAt("r2", "me", day2),
		postAt("r3", "bob", day2.Add(time.Minute)),
		postAt("r4", "alice", day2.Add(2*time.Minute)),
	)
}

func TestBuildReplyList(t *testing.T) {
	lastViewed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		opts BuildOptions
		want []string
	}{
		{
			name: "no dates nothing unread",
			opts: BuildOptions{Location: time.UTC},
			want: []string{"post:r4", "post:r3", "post:r2", "post:r1", "post:root"},
		},
		{
			name: "dates",
			opts: BuildOptions{ShowDate: true, Location: time.UTC},
			want: []string{
				"post:r4", "post:r3", "post:r2", "date:2024-01-02",
				"post:r1", "post:root", "date:2024-01-01",
			},
		},
		{
			name: "own posts are never new",
			opts: BuildOptions{LastViewedAt: lastViewed, CurrentUserID: "me", Location: time.UTC},
			want: []string{"post:r4", "post:r3", "new-messages", "post:r2", "post:r1", "post:root"},
		},
		{
			name: "new messages with dates",
			opts: BuildOptions{ShowDate: true, LastViewedAt: lastViewed, CurrentUserID: "bob", Location: time.UTC},
			want: []string{
				"post:r4", "post:r3", "post:r2", "new-messages", "date:2024-01-02",
				"post:r1", "post:root", "date:2024-01-01",
			},
		},
		{
			name: "everything read",
			opts: BuildOptions{LastViewedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Location: time.UTC},
			want: []string{"post:r4", "post:r3", "post:r2", "post:r1", "post:root"},
		},
		{
			name: "dates follow location",
			opts: BuildOptions{ShowDate: true, Location: time.FixedZone("minus12", -12*60*60)},
			want: []string{
				"post:r4", "post:r3", "post:r2", "date:2024-01-01",
				"post:r1", "post:root", "date:2023-12-31",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildReplyList(buildTestThread(), tt.opts)
			if diff := cmp.Diff(tt.want, keysOf(got)); diff != "" {
				t.Errorf("keys (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildReplyList_NilThread(t *testing.T) {
	if got := BuildReplyList(nil, BuildOptions{}); got.Len() != 0 {
		t.Errorf("expected empty list, got %d items", got.Len())
	}
}
