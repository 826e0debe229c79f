package viewport

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func uniformLayout(n, height int) Layout {
	return BuildLayout(n, func(int) int { return height })
}

func TestComputeWindow(t *testing.T) {
	overscan := Overscan{Forward: 3, Backward: 2}
	// 20 items of 10px, viewport of 30px
	l := uniformLayout(20, 10)
	tests := []struct {
		name   string
		offset int
		want   WindowState
	}{
		{
			name:   "top of content shows oldest",
			offset: 0,
			want:   WindowState{VisibleStart: 15, VisibleEnd: 20, FirstVisible: 17, LastVisible: 19, Overscan: overscan},
		},
		{
			name:   "bottom of content shows newest",
			offset: 170,
			want:   WindowState{VisibleStart: 0, VisibleEnd: 6, FirstVisible: 0, LastVisible: 2, Overscan: overscan},
		},
		{
			name:   "middle",
			offset: 100,
			want:   WindowState{VisibleStart: 5, VisibleEnd: 13, FirstVisible: 7, LastVisible: 9, Overscan: overscan},
		},
		{
			name:   "partial rows",
			offset: 95,
			want:   WindowState{VisibleStart: 5, VisibleEnd: 14, FirstVisible: 7, LastVisible: 10, Overscan: overscan},
		},
		{
			name:   "offset past bottom is clamped",
			offset: 1000,
			want:   WindowState{VisibleStart: 0, VisibleEnd: 6, FirstVisible: 0, LastVisible: 2, Overscan: overscan},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeWindow(l, tt.offset, 30, overscan)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("window (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeWindow_Empty(t *testing.T) {
	got := ComputeWindow(Layout{}, 0, 30, DefaultOverscan())
	if got.VisibleStart != 0 || got.VisibleEnd != 0 || got.FirstVisible != -1 || got.LastVisible != -1 {
		t.Errorf("unexpected window for empty layout: %v", got)
	}
}

func TestComputeWindow_ZeroHeightViewport(t *testing.T) {
	got := ComputeWindow(uniformLayout(100, 10), 0, 0, Overscan{Forward: 5, Backward: 5})
	if !got.Valid(100) {
		t.Fatalf("invalid window %v", got)
	}
	if got.FirstVisible != -1 {
		t.Errorf("expected nothing visible, got %v", got)
	}
	if got.Len() == 0 {
		t.Errorf("expected items materialized around the scroll position")
	}
}

func TestWindowState_ClampOnShrink(t *testing.T) {
	w := WindowState{VisibleStart: 10, VisibleEnd: 50, FirstVisible: 20, LastVisible: 30}
	tests := []struct {
		n    int
		want WindowState
	}{
		{60, w},
		{40, WindowState{VisibleStart: 10, VisibleEnd: 40, FirstVisible: 20, LastVisible: 30}},
		{25, WindowState{VisibleStart: 10, VisibleEnd: 25, FirstVisible: 20, LastVisible: 24}},
		{5, WindowState{VisibleStart: 5, VisibleEnd: 5, FirstVisible: -1, LastVisible: -1}},
		{0, WindowState{VisibleStart: 0, VisibleEnd: 0, FirstVisible: -1, LastVisible: -1}},
	}
	for _, tt := range tests {
		got := w.Clamp(tt.n)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Clamp(%d) (-want +got):\n%s", tt.n, diff)
		}
		if !got.Valid(tt.n) {
			t.Errorf("Clamp(%d) produced invalid window %v", tt.n, got)
		}
	}
}

func TestWindowState_ItemsRendered(t *testing.T) {
	w := WindowState{VisibleStart: 3, VisibleEnd: 10, FirstVisible: 5, LastVisible: 7}
	want := ItemsRendered{VisibleStartIndex: 5, VisibleEndIndex: 7, OverscanStartIndex: 3, OverscanEndIndex: 9}
	if diff := cmp.Diff(want, w.ItemsRendered()); diff != "" {
		t.Errorf("ItemsRendered (-want +got):\n%s", diff)
	}
	empty := WindowState{FirstVisible: -1, LastVisible: -1}.ItemsRendered()
	if empty.OverscanStartIndex != -1 || empty.VisibleStartIndex != -1 {
		t.Errorf("expected -1 indexes for empty window, got %+v", empty)
	}
}
