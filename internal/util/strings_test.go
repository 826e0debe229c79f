package util

import (
	"github.com/google/go-cmp/cmp"
	"testing"
)

func TestJoinWithEqualSpacing(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		items    []string
		expected string
	}{
		{
			name:     "no items",
			width:    10,
			items:    nil,
			expected: "",
		},
		{
			name:     "single item",
			width:    10,
			items:    []string{"abc"},
			expected: "abc",
		},
		{
			name:     "two items spread",
			width:    10,
			items:    []string{"ab", "cd"},
			expected: "ab      cd",
		},
		{
			name:     "three items with remainder",
			width:    10,
			items:    []string{"a", "b", "c"},
			expected: "a    b   c",
		},
		{
			name:     "overflow truncates from the right",
			width:    5,
			items:    []string{"abc", "def"},
			expected: "abcde",
		},
		{
			name:     "zero width",
			width:    0,
			items:    []string{"abc"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			CmpStr(t, tt.expected, JoinWithEqualSpacing(tt.width, tt.items...))
		})
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		width    int
		tail     string
		expected string
	}{
		{"fits", "hello", 10, "...", "hello"},
		{"exact", "hello", 5, "...", "hello"},
		{"cut with tail", "hello world", 8, "...", "hello..."},
		{"tail wider than width", "hello", 2, "...", "he"},
		{"zero width", "hello", 0, "...", ""},
		{"wide runes", "世界世界", 5, "...", "世..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			CmpStr(t, tt.expected, TruncateToWidth(tt.s, tt.width, tt.tail))
		})
	}
}

func TestPadLines(t *testing.T) {
	if diff := cmp.Diff([]string{"a", "", ""}, PadLines([]string{"a"}, 3)); diff != "" {
		t.Errorf("pad: %s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, PadLines([]string{"a", "b", "c"}, 2)); diff != "" {
		t.Errorf("cut: %s", diff)
	}
	if got := PadLines([]string{"a"}, 0); got != nil {
		t.Errorf("expected nil for zero height, got %v", got)
	}
}
