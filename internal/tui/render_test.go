package tui

import (
	"strings"
	"testing"
	"time"

	"todomaster/internal/todo"
)

func TestRenderMarkdown_Basic(t *testing.T) {
	input := "# Plan\n\nBuy **milk** and eggs."
	result := RenderMarkdown(input, 80)
	if result == "" {
		t.Fatal("RenderMarkdown returned empty")
	}
	if !strings.Contains(result, "Plan") {
		t.Fatalf("result should contain 'Plan': %q", result)
	}
}

func TestRenderMarkdown_Empty(t *testing.T) {
	if RenderMarkdown("", 80) != "" {
		t.Fatal("empty input should return empty")
	}
	if RenderMarkdown("  ", 80) != "" {
		t.Fatal("whitespace input should return empty")
	}
}

func TestRenderBar(t *testing.T) {
	if got := RenderBar(5, 10, 10); got != "█████░░░░░" {
		t.Fatalf("half bar=%q", got)
	}
	if got := RenderBar(0, 10, 8); got != strings.Repeat("░", 8) {
		t.Fatalf("zero bar=%q", got)
	}
	if got := RenderBar(10, 10, 8); got != strings.Repeat("█", 8) {
		t.Fatalf("full bar=%q", got)
	}
	// 非零计数至少占一格 / a non-zero count always shows one cell
	if got := RenderBar(1, 100, 10); !strings.HasPrefix(got, "█") {
		t.Fatalf("tiny count bar=%q", got)
	}
}

func TestRenderDueDate_Overdue(t *testing.T) {
	theme := DarkTheme()
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)

	item := todo.Todo{DueDate: &past}
	got := RenderDueDate(item, now, theme)
	if !strings.Contains(got, "!") {
		t.Fatalf("overdue label should carry a marker: %q", got)
	}

	item.Completed = true
	got = RenderDueDate(item, now, theme)
	if strings.Contains(got, "!") {
		t.Fatalf("completed item is never overdue: %q", got)
	}

	if RenderDueDate(todo.Todo{}, now, theme) != "" {
		t.Fatal("no due date renders nothing")
	}
}

func TestRenderTimeSpent(t *testing.T) {
	theme := DarkTheme()
	if RenderTimeSpent(0, false, theme) != "" {
		t.Fatal("zero minutes renders nothing when idle")
	}
	got := RenderTimeSpent(65, false, theme)
	if !strings.Contains(got, "1h 5m") {
		t.Fatalf("time column=%q, want 1h 5m", got)
	}
	running := RenderTimeSpent(0, true, theme)
	if !strings.Contains(running, "⏱") {
		t.Fatalf("running timer should show the clock: %q", running)
	}
}

func TestRenderPercent(t *testing.T) {
	if got := RenderPercent(66.6); got != "67%" {
		t.Fatalf("RenderPercent=%q, want 67%%", got)
	}
}

func TestPriorityBadges(t *testing.T) {
	theme := DarkTheme()
	for _, p := range todo.Priorities() {
		if RenderPriorityBadge(p, theme) == "" {
			t.Fatalf("no badge for priority %q", p)
		}
	}
}
