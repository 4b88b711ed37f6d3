package tui

import (
	"context"
	"time"

	"todomaster/internal/filter"
	"todomaster/internal/query"
	"todomaster/internal/session"
	"todomaster/internal/todo"

	tea "github.com/charmbracelet/bubbletea"
)

// --- Tea Messages ---

// todosMsg 一页待办的拉取结果；key 用于丢弃过期响应
// todosMsg is a fetched todo page; key lets the app drop outdated
// responses
type todosMsg struct {
	key  string
	page todo.Page
	err  error
}

// recentMsg 最近待办 / recentMsg carries recent todos
type recentMsg struct {
	todos []todo.Todo
	err   error
}

// analyticsMsg 聚合快照 / analyticsMsg carries the aggregate snapshot
type analyticsMsg struct {
	data todo.Analytics
	err  error
}

// monthlyMsg 当月聚合 / monthlyMsg carries the current-month aggregate
type monthlyMsg struct {
	data todo.MonthlyAnalytics
	err  error
}

// sessionMsg 认证操作的结果 / sessionMsg is the outcome of an auth action
type sessionMsg struct {
	state session.State
	err   error
}

// mutationMsg 变更结果；notice 为成功后的状态栏提示键
// mutationMsg is a mutation outcome; notice is the i18n key shown on
// success
type mutationMsg struct {
	notice string
	args   []any
	err    error
}

// invalidatedMsg 某个视图的数据已失效，需要重新拉取
// invalidatedMsg signals that a view's data is stale and must be
// refetched
type invalidatedMsg struct{ view query.View }

// timerTickMsg 计时器界面刷新 / timerTickMsg refreshes running timer rows
type timerTickMsg struct{}

// --- Commands ---

const requestTimeout = 30 * time.Second

func fetchTodosCmd(q *query.Client, f filter.Set, page int) tea.Cmd {
	key := q.Key(f, page)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		result, err := q.Todos(ctx, f, page)
		return todosMsg{key: key, page: result, err: err}
	}
}

func fetchRecentCmd(q *query.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		todos, err := q.Recent(ctx)
		return recentMsg{todos: todos, err: err}
	}
}

func fetchAnalyticsCmd(q *query.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		data, err := q.Analytics(ctx)
		return analyticsMsg{data: data, err: err}
	}
}

func fetchMonthlyCmd(q *query.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		data, err := q.Monthly(ctx)
		return monthlyMsg{data: data, err: err}
	}
}

func bootstrapCmd(s *session.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := s.Bootstrap(ctx)
		return sessionMsg{state: s.State(), err: err}
	}
}

func loginCmd(s *session.Store, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := s.Login(ctx, email, password)
		return sessionMsg{state: s.State(), err: err}
	}
}

func registerCmd(s *session.Store, name, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := s.Register(ctx, name, email, password)
		return sessionMsg{state: s.State(), err: err}
	}
}

func createCmd(q *query.Client, draft todo.Draft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := q.Create(ctx, draft)
		return mutationMsg{err: err}
	}
}

func updateCmd(q *query.Client, id string, patch todo.Patch, notice string, args ...any) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := q.Update(ctx, id, patch)
		return mutationMsg{notice: notice, args: args, err: err}
	}
}

func deleteCmd(q *query.Client, id string, confirmed bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := q.Delete(ctx, id, confirmed)
		return mutationMsg{err: err}
	}
}

// waitInvalidationCmd 阻塞等待下一个失效事件；处理后重新挂起
// waitInvalidationCmd blocks on the next invalidation event and is
// re-armed after each one is handled
func waitInvalidationCmd(ch <-chan query.View) tea.Cmd {
	return func() tea.Msg {
		view, ok := <-ch
		if !ok {
			return nil
		}
		return invalidatedMsg{view: view}
	}
}

func timerTickCmd() tea.Cmd {
	return tea.Tick(15*time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{}
	})
}
