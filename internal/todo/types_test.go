package todo

import (
	"testing"
	"time"
)

func TestOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name string
		td   Todo
		want bool
	}{
		{"no due date", Todo{}, false},
		{"due in future", Todo{DueDate: &future}, false},
		{"due in past", Todo{DueDate: &past}, true},
		{"due in past but completed", Todo{DueDate: &past, Completed: true}, false},
	}
	for _, tc := range cases {
		if got := tc.td.Overdue(now); got != tc.want {
			t.Errorf("%s: Overdue=%v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 0m"},
		{65, "1h 5m"},
		{-3, "0m"},
	}
	for _, tc := range cases {
		if got := FormatMinutes(tc.minutes); got != tc.want {
			t.Errorf("FormatMinutes(%d)=%q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestPagePending(t *testing.T) {
	page := Page{Todos: []Todo{
		{Completed: true},
		{Completed: false},
		{Completed: false},
	}}
	if got := page.Pending(); got != 2 {
		t.Fatalf("Pending=%d, want 2", got)
	}
}

func TestEnumValidity(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Errorf("category %q should be valid", c)
		}
	}
	if Category("chores").Valid() {
		t.Error("unknown category should be invalid")
	}
	for _, p := range Priorities() {
		if !p.Valid() {
			t.Errorf("priority %q should be valid", p)
		}
	}
	if Priority("urgent").Valid() {
		t.Error("unknown priority should be invalid")
	}
}
