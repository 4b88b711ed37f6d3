package tui

import (
	"todomaster/internal/todo"

	"github.com/charmbracelet/lipgloss"
)

// Theme 定义 TUI 主题色彩和样式
// Theme defines TUI colors and styles
type Theme struct {
	// 基础色 / Base colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Danger    lipgloss.Color
	Warning   lipgloss.Color
	Success   lipgloss.Color
	Muted     lipgloss.Color
	Text      lipgloss.Color
	TextDim   lipgloss.Color
	Border    lipgloss.Color

	// 预构建样式 / Pre-built styles
	TitleStyle       lipgloss.Style
	ActiveTabStyle   lipgloss.Style
	InactiveTabStyle lipgloss.Style
	StatusBarStyle   lipgloss.Style
	PanelStyle       lipgloss.Style
	SelectedStyle    lipgloss.Style
	ErrorStyle       lipgloss.Style
	SuccessStyle     lipgloss.Style
	MutedStyle       lipgloss.Style
	DangerStyle      lipgloss.Style
	OverdueStyle     lipgloss.Style
	DoneStyle        lipgloss.Style
	ModalStyle       lipgloss.Style
	InputLabelStyle  lipgloss.Style

	// 徽标 / Badges
	priorityStyles map[todo.Priority]lipgloss.Style
	categoryStyles map[todo.Category]lipgloss.Style
}

// DarkTheme 暗色主题（默认）
// DarkTheme is the default dark theme
func DarkTheme() Theme {
	t := Theme{
		Primary:   lipgloss.Color("#7C3AED"),
		Secondary: lipgloss.Color("#06B6D4"),
		Accent:    lipgloss.Color("#F59E0B"),
		Danger:    lipgloss.Color("#EF4444"),
		Warning:   lipgloss.Color("#F59E0B"),
		Success:   lipgloss.Color("#10B981"),
		Muted:     lipgloss.Color("#6B7280"),
		Text:      lipgloss.Color("#E5E7EB"),
		TextDim:   lipgloss.Color("#9CA3AF"),
		Border:    lipgloss.Color("#374151"),
	}

	t.TitleStyle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	t.ActiveTabStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Primary).
		Padding(0, 2).
		Bold(true)

	t.InactiveTabStyle = lipgloss.NewStyle().
		Foreground(t.TextDim).
		Padding(0, 2)

	t.StatusBarStyle = lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(lipgloss.Color("#111827"))

	t.PanelStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	t.SelectedStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(lipgloss.Color("#312E81")).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(t.Danger).
		Bold(true)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	t.MutedStyle = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.DangerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(t.Danger).
		Bold(true).
		Padding(0, 1)

	t.OverdueStyle = lipgloss.NewStyle().
		Foreground(t.Danger)

	t.DoneStyle = lipgloss.NewStyle().
		Foreground(t.Muted).
		Strikethrough(true)

	t.ModalStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2)

	t.InputLabelStyle = lipgloss.NewStyle().
		Foreground(t.Secondary).
		Bold(true)

	t.priorityStyles = map[todo.Priority]lipgloss.Style{
		todo.PriorityHigh:   lipgloss.NewStyle().Foreground(t.Danger).Bold(true),
		todo.PriorityMedium: lipgloss.NewStyle().Foreground(t.Warning),
		todo.PriorityLow:    lipgloss.NewStyle().Foreground(t.Success),
	}

	t.categoryStyles = map[todo.Category]lipgloss.Style{
		todo.CategoryWork:      lipgloss.NewStyle().Foreground(t.Secondary),
		todo.CategoryPersonal:  lipgloss.NewStyle().Foreground(t.Primary),
		todo.CategoryShopping:  lipgloss.NewStyle().Foreground(t.Accent),
		todo.CategoryHealth:    lipgloss.NewStyle().Foreground(t.Success),
		todo.CategoryEducation: lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")),
		todo.CategoryOther:     lipgloss.NewStyle().Foreground(t.TextDim),
	}

	return t
}

// PriorityStyle 优先级对应的样式 / PriorityStyle is the style for a priority
func (t Theme) PriorityStyle(p todo.Priority) lipgloss.Style {
	if s, ok := t.priorityStyles[p]; ok {
		return s
	}
	return t.MutedStyle
}

// CategoryStyle 分类对应的样式 / CategoryStyle is the style for a category
func (t Theme) CategoryStyle(c todo.Category) lipgloss.Style {
	if s, ok := t.categoryStyles[c]; ok {
		return s
	}
	return t.MutedStyle
}
