package todo

import (
	"fmt"
	"time"
)

// Category 待办分类
// Category is a todo category
type Category string

const (
	CategoryWork      Category = "work"
	CategoryPersonal  Category = "personal"
	CategoryShopping  Category = "shopping"
	CategoryHealth    Category = "health"
	CategoryEducation Category = "education"
	CategoryOther     Category = "other"
)

// Categories 返回全部分类（固定顺序，供表单选择）
// Categories returns all categories in a fixed order for form selection
func Categories() []Category {
	return []Category{
		CategoryWork,
		CategoryPersonal,
		CategoryShopping,
		CategoryHealth,
		CategoryEducation,
		CategoryOther,
	}
}

// Valid 判断分类是否合法 / Valid reports whether the category is known
func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryShopping,
		CategoryHealth, CategoryEducation, CategoryOther:
		return true
	}
	return false
}

// Priority 优先级 / Priority is a todo priority
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities 返回全部优先级 / Priorities returns all priorities
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// Valid 判断优先级是否合法 / Valid reports whether the priority is known
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Todo 服务端的待办记录；客户端只持有查询副本，不拥有权威状态
// Todo is the server-owned task record; the client only holds fetched copies
type Todo struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    Category   `json:"category"`
	Priority    Priority   `json:"priority"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	// TimeSpent 累计耗时（分钟） / TimeSpent is accumulated minutes
	TimeSpent int `json:"timeSpent"`
}

// Overdue 截止时间已过且未完成
// Overdue reports whether the due date has passed without completion
func (t Todo) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && !t.Completed
}

// Page 一页过滤后的待办集合 / Page is one filtered page of todos
type Page struct {
	Todos      []Todo `json:"todos"`
	Total      int    `json:"total"`
	TotalPages int    `json:"totalPages"`
}

// Pending 当前页中未完成的数量 / Pending counts incomplete todos on the page
func (p Page) Pending() int {
	n := 0
	for _, t := range p.Todos {
		if !t.Completed {
			n++
		}
	}
	return n
}

// Draft 新建待办的提交字段 / Draft holds the fields submitted to create a todo
type Draft struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    Category   `json:"category"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// Patch 部分字段更新；nil 字段不发送
// Patch is a partial update; nil fields are omitted from the request body
type Patch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Category    *Category  `json:"category,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	TimeSpent   *int       `json:"timeSpent,omitempty"`
}

// User 已认证用户 / User is the authenticated user
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CategoryCount 服务端按分类聚合的计数；_id 沿用后端聚合管道的字段名
// CategoryCount is a per-category aggregate; _id matches the backend pipeline
type CategoryCount struct {
	Category string `json:"_id"`
	Count    int    `json:"count"`
}

// PriorityCount 按优先级聚合的计数 / PriorityCount is a per-priority aggregate
type PriorityCount struct {
	Priority string `json:"_id"`
	Count    int    `json:"count"`
}

// TrendPoint 一天的完成数 / TrendPoint is completions for one day
type TrendPoint struct {
	Date  string `json:"_id"`
	Count int    `json:"count"`
}

// Analytics 服务端计算的聚合快照，客户端按原样消费
// Analytics is the server-computed aggregate snapshot, consumed as-is
type Analytics struct {
	TotalTodos             int             `json:"totalTodos"`
	CompletedTodos         int             `json:"completedTodos"`
	PendingTodos           int             `json:"pendingTodos"`
	CompletionRate         float64         `json:"completionRate"`
	AverageTimeSpent       float64         `json:"averageTimeSpent"`
	MostProductiveCategory string          `json:"mostProductiveCategory"`
	CategoryStats          []CategoryCount `json:"categoryStats"`
	PriorityStats          []PriorityCount `json:"priorityStats"`
	WeeklyTrend            []TrendPoint    `json:"weeklyTrend"`
}

// MonthlyAnalytics 当月聚合 / MonthlyAnalytics is the current-month aggregate
type MonthlyAnalytics struct {
	TotalCreated   int `json:"totalCreated"`
	TotalCompleted int `json:"totalCompleted"`
}

// FormatMinutes 渲染分钟为 "1h 5m" / "45m"
// FormatMinutes renders minutes as "1h 5m" or "45m"
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
