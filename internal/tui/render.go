package tui

import (
	"fmt"
	"strings"
	"time"

	"todomaster/internal/todo"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown 使用 Glamour 渲染 markdown 文本（待办描述）
// RenderMarkdown renders markdown text (todo descriptions) using Glamour
func RenderMarkdown(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}

	return strings.TrimRight(rendered, "\n")
}

// RenderBar 文本条形图：count 相对 max 的占比
// RenderBar draws a text bar for count relative to max
func RenderBar(count, max, width int) string {
	if width < 1 {
		width = 1
	}
	if max <= 0 || count <= 0 {
		return strings.Repeat("░", width)
	}
	filled := count * width / max
	if filled > width {
		filled = width
	}
	if filled < 1 {
		filled = 1
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// RenderDueDate 截止时间的短标签；逾期的未完成项标红
// RenderDueDate renders a short due label; overdue pending items are red
func RenderDueDate(t todo.Todo, now time.Time, theme Theme) string {
	if t.DueDate == nil {
		return ""
	}
	label := t.DueDate.Format("Jan 02")
	if t.Overdue(now) {
		return theme.OverdueStyle.Render(label + " !")
	}
	return theme.MutedStyle.Render(label)
}

// RenderPriorityBadge 优先级徽标 / RenderPriorityBadge renders the badge
func RenderPriorityBadge(p todo.Priority, theme Theme) string {
	marks := map[todo.Priority]string{
		todo.PriorityHigh:   "▲",
		todo.PriorityMedium: "■",
		todo.PriorityLow:    "▽",
	}
	mark, ok := marks[p]
	if !ok {
		mark = "·"
	}
	return theme.PriorityStyle(p).Render(mark)
}

// RenderCategoryBadge 分类徽标 / RenderCategoryBadge renders the badge
func RenderCategoryBadge(c todo.Category, theme Theme) string {
	name := string(c)
	if name == "" {
		name = "-"
	}
	return theme.CategoryStyle(c).Render("[" + name + "]")
}

// RenderTimeSpent 渲染耗时列；running 为计时中的实时分钟数
// RenderTimeSpent renders the time column; running carries the live
// minutes while a timer is active
func RenderTimeSpent(minutes int, running bool, theme Theme) string {
	if minutes <= 0 && !running {
		return ""
	}
	label := todo.FormatMinutes(minutes)
	if running {
		return theme.SuccessStyle.Render("⏱ " + label)
	}
	return theme.MutedStyle.Render(label)
}

// RenderStatCard 概览页的小卡片 / RenderStatCard renders a dashboard card
func RenderStatCard(label, value string, theme Theme) string {
	inner := theme.TitleStyle.Render(value) + "\n" + theme.MutedStyle.Render(label)
	return theme.ModalStyle.Render(inner)
}

// RenderPercent 完成率文本 / RenderPercent formats a completion rate
func RenderPercent(rate float64) string {
	return fmt.Sprintf("%.0f%%", rate)
}
