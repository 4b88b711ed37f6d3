// Package tui 是 TodoMaster 的终端界面：登录/注册、待办列表（筛选、
// 翻页、编辑、删除确认、计时）、概览页和统计页。
// Package tui is the TodoMaster terminal interface: sign-in/sign-up,
// the todo list (filters, paging, editing, delete confirmation,
// timers), the dashboard, and the analytics view.
package tui

import (
	"fmt"
	"strings"
	"time"

	"todomaster/internal/api"
	"todomaster/internal/filter"
	"todomaster/internal/i18n"
	"todomaster/internal/query"
	"todomaster/internal/session"
	"todomaster/internal/timer"
	"todomaster/internal/todo"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// viewID 标识主视图 / viewID identifies a main view
type viewID int

const (
	viewList viewID = iota
	viewDashboard
	viewAnalytics
)

// uiMode 界面模式；modeList 下由 view 决定渲染哪个标签页
// uiMode is the interaction mode; under modeList the view field picks
// the visible tab
type uiMode int

const (
	modeAuth uiMode = iota
	modeList
	modeForm
	modeConfirm
	modeDetail
)

// App Bubble Tea 主 Model
// App is the main Bubble Tea model
type App struct {
	session *session.Store
	queries *query.Client
	tracker *timer.Tracker
	logger  *zap.Logger

	// 布局 / Layout
	width  int
	height int

	mode uiMode
	view viewID

	// 列表状态 / List state
	filters filter.Set
	page    int
	current todo.Page
	cursor  int
	loading bool

	// 搜索输入 / Search input
	searching bool
	search    textinput.Model

	// 表单与弹窗 / Form and modals
	form         todoForm
	auth         authForm
	confirmID    string
	confirmTitle string
	detail       todo.Todo

	// 概览与统计数据 / Dashboard and analytics data
	recent        []todo.Todo
	analytics     todo.Analytics
	monthly       todo.MonthlyAnalytics
	haveAnalytics bool

	// 状态栏 / Status line
	status    string
	lastError string

	// 运行中的计时器个数，用于决定是否续订刷新 tick
	// activeTimers re-arms the refresh tick while timers run
	activeTimers int

	invalidations chan query.View
	spin          spinner.Model

	theme  Theme
	keys   KeyMap
	locale *i18n.I18n
}

// NewApp 创建 TUI 应用并桥接失效事件总线
// NewApp creates the TUI application and bridges the invalidation bus
func NewApp(sess *session.Store, queries *query.Client, tracker *timer.Tracker, logger *zap.Logger) App {
	if logger == nil {
		logger = zap.NewNop()
	}
	theme := DarkTheme()
	locale := i18n.Global()

	search := textinput.New()
	search.Placeholder = locale.T("list.searching", "")
	search.CharLimit = 100

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	invalidations := make(chan query.View, 32)
	for _, v := range query.AllViews() {
		queries.Bus().Subscribe(v, func(view query.View) {
			invalidations <- view
		})
	}

	return App{
		session:       sess,
		queries:       queries,
		tracker:       tracker,
		logger:        logger,
		mode:          modeAuth,
		page:          1,
		search:        search,
		auth:          newAuthForm(theme, locale),
		invalidations: invalidations,
		spin:          spin,
		theme:         theme,
		keys:          DefaultKeyMap(),
		locale:        locale,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		a.spin.Tick,
		bootstrapCmd(a.session),
		waitInvalidationCmd(a.invalidations),
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case sessionMsg:
		return a.onSession(msg)

	case todosMsg:
		return a.onTodos(msg)

	case recentMsg:
		if msg.err != nil {
			return a.noteError(msg.err), nil
		}
		a.recent = msg.todos
		return a, nil

	case analyticsMsg:
		if msg.err != nil {
			return a.noteError(msg.err), nil
		}
		a.analytics = msg.data
		a.haveAnalytics = true
		return a, nil

	case monthlyMsg:
		if msg.err != nil {
			return a.noteError(msg.err), nil
		}
		a.monthly = msg.data
		return a, nil

	case mutationMsg:
		return a.onMutation(msg)

	case invalidatedMsg:
		return a.onInvalidated(msg)

	case timerTickMsg:
		if a.activeTimers > 0 {
			return a, timerTickCmd()
		}
		return a, nil

	case tea.KeyMsg:
		return a.onKey(msg)
	}

	return a, nil
}

// --- Message handlers ---

func (a App) onSession(msg sessionMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.logger.Warn("auth action failed", zap.Error(msg.err))
		a.mode = modeAuth
		a.status = ""
		a.lastError = a.errorText(msg.err)
		return a, nil
	}

	if msg.state == session.StateAuthenticated {
		a.mode = modeList
		a.lastError = ""
		if user, ok := a.session.User(); ok {
			a.status = a.locale.T("dashboard.welcome", user.Name)
		}
		a.loading = true
		return a, tea.Batch(
			fetchTodosCmd(a.queries, a.filters, a.page),
			fetchRecentCmd(a.queries),
			fetchAnalyticsCmd(a.queries),
			fetchMonthlyCmd(a.queries),
		)
	}

	a.mode = modeAuth
	return a, nil
}

func (a App) onTodos(msg todosMsg) (tea.Model, tea.Cmd) {
	// 过滤条件或页码已经变了，丢弃过期响应
	// Drop responses for a (filters, page) tuple no longer displayed
	if msg.key != a.queries.Key(a.filters, a.page) {
		return a, nil
	}
	a.loading = false
	if msg.err != nil {
		return a.noteError(msg.err), nil
	}
	a.current = msg.page
	a.lastError = ""
	if a.cursor >= len(a.current.Todos) {
		a.cursor = len(a.current.Todos) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
	return a, nil
}

func (a App) onMutation(msg mutationMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return a.noteError(msg.err), nil
	}
	a.lastError = ""
	if msg.notice != "" {
		a.status = a.locale.T(msg.notice, msg.args...)
	}
	return a, nil
}

// onInvalidated 收到失效事件后重新拉取对应视图的数据并重新挂起等待
// onInvalidated refetches the invalidated view's data and re-arms the
// bridge
func (a App) onInvalidated(msg invalidatedMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{waitInvalidationCmd(a.invalidations)}
	switch msg.view {
	case query.ViewTodos:
		a.loading = true
		cmds = append(cmds, fetchTodosCmd(a.queries, a.filters, a.page))
	case query.ViewRecent:
		cmds = append(cmds, fetchRecentCmd(a.queries))
	case query.ViewAnalytics:
		cmds = append(cmds, fetchAnalyticsCmd(a.queries), fetchMonthlyCmd(a.queries))
	}
	return a, tea.Batch(cmds...)
}

// --- Key handling ---

func (a App) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		a.tracker.StopAll()
		return a, tea.Quit
	}

	switch a.mode {
	case modeAuth:
		return a.onAuthKey(msg)
	case modeForm:
		return a.onFormKey(msg)
	case modeConfirm:
		return a.onConfirmKey(msg)
	case modeDetail:
		if key.Matches(msg, a.keys.Cancel) || key.Matches(msg, a.keys.Detail) || key.Matches(msg, a.keys.Quit) {
			a.mode = modeList
		}
		return a, nil
	}

	if a.searching {
		return a.onSearchKey(msg)
	}
	return a.onListKey(msg)
}

func (a App) onAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+t":
		a.auth.toggleMode()
		return a, nil
	case "enter":
		if !a.auth.validate() {
			return a, nil
		}
		a.status = a.locale.T("status.working")
		a.lastError = ""
		email := strings.TrimSpace(a.auth.email.Value())
		password := a.auth.password.Value()
		if a.auth.registering {
			name := strings.TrimSpace(a.auth.name.Value())
			return a, registerCmd(a.session, name, email, password)
		}
		return a, loginCmd(a.session, email, password)
	}
	cmd := a.auth.update(msg)
	return a, cmd
}

func (a App) onFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Cancel) {
		a.mode = modeList
		return a, nil
	}
	if msg.String() == "enter" {
		if !a.form.validate() {
			return a, nil
		}
		a.mode = modeList
		a.status = a.locale.T("status.working")
		if a.form.editing() {
			return a, updateCmd(a.queries, a.form.editID, a.form.patch(), "")
		}
		return a, createCmd(a.queries, a.form.draft())
	}
	cmd := a.form.update(msg)
	return a, cmd
}

func (a App) onConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Confirm) {
		a.mode = modeList
		a.status = a.locale.T("status.working")
		return a, deleteCmd(a.queries, a.confirmID, true)
	}
	if key.Matches(msg, a.keys.Cancel) || msg.String() == "n" {
		a.mode = modeList
		a.status = a.locale.T("confirm.cancelled")
	}
	return a, nil
}

func (a App) onSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.searching = false
		a.search.Blur()
		return a, nil
	case "enter":
		a.searching = false
		a.search.Blur()
		term := strings.TrimSpace(a.search.Value())
		return a.applyFilter(filter.Patch{Search: &term})
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	return a, cmd
}

func (a App) onListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.tracker.StopAll()
		return a, tea.Quit

	case key.Matches(msg, a.keys.SwitchView):
		a.view = (a.view + 1) % 3
		switch a.view {
		case viewDashboard:
			return a, tea.Batch(fetchRecentCmd(a.queries), fetchAnalyticsCmd(a.queries))
		case viewAnalytics:
			return a, tea.Batch(fetchAnalyticsCmd(a.queries), fetchMonthlyCmd(a.queries))
		}
		return a, nil

	case key.Matches(msg, a.keys.Logout):
		a.tracker.StopAll()
		a.activeTimers = 0
		a.session.Logout()
		a.mode = modeAuth
		a.auth = newAuthForm(a.theme, a.locale)
		a.status = a.locale.T("auth.logged_out")
		return a, nil
	}

	if a.view != viewList {
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.current.Todos)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.PrevPage):
		if a.page > 1 {
			a.page--
			a.cursor = 0
			a.loading = true
			return a, fetchTodosCmd(a.queries, a.filters, a.page)
		}

	case key.Matches(msg, a.keys.NextPage):
		if a.page < a.current.TotalPages {
			a.page++
			a.cursor = 0
			a.loading = true
			return a, fetchTodosCmd(a.queries, a.filters, a.page)
		}

	case key.Matches(msg, a.keys.NewTodo):
		a.form = newTodoForm(a.theme, a.locale)
		a.mode = modeForm

	case key.Matches(msg, a.keys.Edit):
		if item, ok := a.selected(); ok {
			a.form = newTodoForm(a.theme, a.locale)
			a.form.loadTodo(item)
			a.mode = modeForm
		}

	case key.Matches(msg, a.keys.Toggle):
		if item, ok := a.selected(); ok {
			completed := !item.Completed
			a.status = a.locale.T("status.working")
			return a, updateCmd(a.queries, item.ID, todo.Patch{Completed: &completed}, "")
		}

	case key.Matches(msg, a.keys.Delete):
		if item, ok := a.selected(); ok {
			a.confirmID = item.ID
			a.confirmTitle = item.Title
			a.mode = modeConfirm
		}

	case key.Matches(msg, a.keys.Timer):
		return a.toggleTimer()

	case key.Matches(msg, a.keys.Detail):
		if item, ok := a.selected(); ok {
			a.detail = item
			a.mode = modeDetail
		}

	case key.Matches(msg, a.keys.Search):
		a.searching = true
		a.search.SetValue(a.filters.Search)
		a.search.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.CycleCategory):
		next := cycleCategory(a.filters.Category)
		return a.applyFilter(filter.Patch{Category: &next})

	case key.Matches(msg, a.keys.CyclePriority):
		next := cyclePriority(a.filters.Priority)
		return a.applyFilter(filter.Patch{Priority: &next})

	case key.Matches(msg, a.keys.CycleCompleted):
		next := cycleCompleted(a.filters.Completed)
		return a.applyFilter(filter.Patch{Completed: &next})

	case key.Matches(msg, a.keys.ClearFilters):
		a.filters = filter.Set{}
		a.page = 1
		a.cursor = 0
		a.loading = true
		return a, fetchTodosCmd(a.queries, a.filters, a.page)
	}

	return a, nil
}

// toggleTimer 对选中项启动或停止计时；停止时把累计分钟上报为
// timeSpent 更新
// toggleTimer starts or stops the timer on the selected todo; stopping
// reports the accumulated minutes as a timeSpent update
func (a App) toggleTimer() (tea.Model, tea.Cmd) {
	item, ok := a.selected()
	if !ok {
		return a, nil
	}
	if a.tracker.Running(item.ID) {
		minutes, _ := a.tracker.Stop(item.ID)
		if a.activeTimers > 0 {
			a.activeTimers--
		}
		a.status = a.locale.T("status.working")
		return a, updateCmd(a.queries, item.ID, todo.Patch{TimeSpent: &minutes},
			"timer.stopped", todo.FormatMinutes(minutes))
	}
	if err := a.tracker.Start(item.ID, item.TimeSpent); err != nil {
		a.status = a.locale.T("timer.busy")
		return a, nil
	}
	a.activeTimers++
	a.status = a.locale.T("timer.started")
	return a, timerTickCmd()
}

// applyFilter 应用过滤变更；任何变化都回到第一页
// applyFilter applies a filter patch; any change resets to page one
func (a App) applyFilter(p filter.Patch) (tea.Model, tea.Cmd) {
	a.filters = a.filters.Compose(p)
	a.page = 1
	a.cursor = 0
	a.loading = true
	return a, fetchTodosCmd(a.queries, a.filters, a.page)
}

func (a App) selected() (todo.Todo, bool) {
	if a.cursor < 0 || a.cursor >= len(a.current.Todos) {
		return todo.Todo{}, false
	}
	return a.current.Todos[a.cursor], true
}

// noteError 记录错误并在状态栏提示；认证过期回到登录页
// noteError records the error for the status line; auth expiry falls
// back to the sign-in view
func (a App) noteError(err error) App {
	a.loading = false
	a.logger.Warn("request failed", zap.Error(err))
	if api.IsKind(err, api.KindAuth) {
		a.mode = modeAuth
		a.auth = newAuthForm(a.theme, a.locale)
		a.lastError = a.locale.T("auth.session_ended")
		return a
	}
	a.lastError = a.errorText(err)
	return a
}

func (a App) errorText(err error) string {
	apiErr, ok := api.AsError(err)
	if !ok {
		return err.Error()
	}
	switch apiErr.Kind {
	case api.KindNetwork:
		return a.locale.T("error.network", apiErr.Message)
	case api.KindValidation:
		return a.locale.T("error.validation", apiErr.Message)
	case api.KindNotFound:
		return a.locale.T("error.not_found", apiErr.Message)
	default:
		return a.locale.T("error.server", apiErr.Message)
	}
}

func cycleCategory(current string) string {
	order := []string{""}
	for _, c := range todo.Categories() {
		order = append(order, string(c))
	}
	return cycleNext(order, current)
}

func cyclePriority(current string) string {
	order := []string{""}
	for _, p := range todo.Priorities() {
		order = append(order, string(p))
	}
	return cycleNext(order, current)
}

func cycleCompleted(current string) string {
	return cycleNext([]string{"", "false", "true"}, current)
}

func cycleNext(order []string, current string) string {
	for i, v := range order {
		if v == current {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}

// --- View ---

func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Initializing..."
	}

	if a.mode == modeAuth {
		body := a.auth.view(a.width)
		return lipgloss.JoinVertical(lipgloss.Left, body, a.renderStatusBar())
	}

	var body string
	switch a.mode {
	case modeForm:
		body = a.form.view(a.width)
	case modeConfirm:
		body = a.renderConfirm()
	case modeDetail:
		body = a.renderDetail()
	default:
		switch a.view {
		case viewDashboard:
			body = a.renderDashboard()
		case viewAnalytics:
			body = a.renderAnalytics()
		default:
			body = a.renderList()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderTabs(),
		body,
		a.renderHelp(),
		a.renderStatusBar(),
	)
}

func (a App) renderTabs() string {
	tabs := []struct {
		id   viewID
		name string
	}{
		{viewList, a.locale.T("view.todos")},
		{viewDashboard, a.locale.T("view.dashboard")},
		{viewAnalytics, a.locale.T("view.analytics")},
	}

	var parts []string
	for _, tab := range tabs {
		style := a.theme.InactiveTabStyle
		if tab.id == a.view {
			style = a.theme.ActiveTabStyle
		}
		parts = append(parts, style.Render(tab.name))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if user, ok := a.session.User(); ok {
		right := a.theme.MutedStyle.Render(user.Email + " ")
		gap := a.width - lipgloss.Width(row) - lipgloss.Width(right)
		if gap > 0 {
			row += strings.Repeat(" ", gap) + right
		}
	}
	return row
}

func (a App) renderList() string {
	t := a.locale.T
	var b strings.Builder

	// 过滤条摘要 / Filter summary line
	var facets []string
	if a.searching {
		facets = append(facets, a.search.View())
	} else if a.filters.Search != "" {
		facets = append(facets, t("list.searching", a.filters.Search))
	}
	if a.filters.Category != "" {
		facets = append(facets, t("todo.category")+": "+a.filters.Category)
	}
	if a.filters.Priority != "" {
		facets = append(facets, t("todo.priority")+": "+a.filters.Priority)
	}
	switch a.filters.Completed {
	case "true":
		facets = append(facets, t("filter.completed"))
	case "false":
		facets = append(facets, t("filter.active"))
	}
	if len(facets) > 0 {
		b.WriteString(a.theme.MutedStyle.Render(strings.Join(facets, " · ")) + "\n")
	}

	if a.loading && len(a.current.Todos) == 0 {
		b.WriteString(a.spin.View() + " " + t("list.loading") + "\n")
		return a.theme.PanelStyle.Height(a.bodyHeight()).Render(b.String())
	}
	if len(a.current.Todos) == 0 {
		b.WriteString(a.theme.MutedStyle.Render(t("list.empty")) + "\n")
		return a.theme.PanelStyle.Height(a.bodyHeight()).Render(b.String())
	}

	now := time.Now()
	for i, item := range a.current.Todos {
		b.WriteString(a.renderRow(i, item, now) + "\n")
	}

	pages := a.current.TotalPages
	if pages < 1 {
		pages = 1
	}
	b.WriteString("\n" + a.theme.MutedStyle.Render(
		t("list.page", a.page, pages, a.current.Total)+
			"  ·  "+t("todo.pending")+": "+fmt.Sprint(a.current.Pending())))

	return a.theme.PanelStyle.Height(a.bodyHeight()).Render(b.String())
}

func (a App) renderRow(i int, item todo.Todo, now time.Time) string {
	marker := "  "
	if i == a.cursor {
		marker = "❯ "
	}

	check := "[ ]"
	if item.Completed {
		check = "[✓]"
	}

	title := item.Title
	switch {
	case item.Completed:
		title = a.theme.DoneStyle.Render(title)
	case item.Overdue(now):
		title = a.theme.OverdueStyle.Render(title)
	}

	cols := []string{
		check,
		RenderPriorityBadge(item.Priority, a.theme),
		title,
		RenderCategoryBadge(item.Category, a.theme),
	}
	if due := RenderDueDate(item, now, a.theme); due != "" {
		cols = append(cols, due)
	}
	running := a.tracker.Running(item.ID)
	minutes := item.TimeSpent
	if running {
		if m, ok := a.tracker.Elapsed(item.ID); ok {
			minutes = m
		}
	}
	if spent := RenderTimeSpent(minutes, running, a.theme); spent != "" {
		cols = append(cols, spent)
	}

	row := marker + strings.Join(cols, " ")
	if i == a.cursor {
		return a.theme.SelectedStyle.Render(row)
	}
	return row
}

func (a App) renderDashboard() string {
	t := a.locale.T
	var b strings.Builder

	if user, ok := a.session.User(); ok {
		b.WriteString(a.theme.TitleStyle.Render(t("dashboard.welcome", user.Name)) + "\n\n")
	}

	if a.haveAnalytics {
		cards := lipgloss.JoinHorizontal(lipgloss.Top,
			RenderStatCard(t("dashboard.total"), fmt.Sprint(a.analytics.TotalTodos), a.theme),
			RenderStatCard(t("dashboard.completed"), fmt.Sprint(a.analytics.CompletedTodos), a.theme),
			RenderStatCard(t("dashboard.pending"), fmt.Sprint(a.analytics.PendingTodos), a.theme),
			RenderStatCard(t("dashboard.rate"), RenderPercent(a.analytics.CompletionRate), a.theme),
		)
		b.WriteString(cards + "\n\n")
	}

	b.WriteString(a.theme.TitleStyle.Render(t("dashboard.recent")) + "\n")
	if len(a.recent) == 0 {
		b.WriteString(a.theme.MutedStyle.Render("  " + t("dashboard.recent_none")))
	} else {
		now := time.Now()
		for _, item := range a.recent {
			check := "[ ]"
			if item.Completed {
				check = "[✓]"
			}
			line := "  " + check + " " + RenderPriorityBadge(item.Priority, a.theme) + " " + item.Title
			if due := RenderDueDate(item, now, a.theme); due != "" {
				line += " " + due
			}
			b.WriteString(line + "\n")
		}
	}

	return a.theme.PanelStyle.Height(a.bodyHeight()).Render(b.String())
}

func (a App) renderAnalytics() string {
	t := a.locale.T
	if !a.haveAnalytics {
		body := a.theme.MutedStyle.Render(t("analytics.empty"))
		if a.loading {
			body = a.spin.View() + " " + t("list.loading")
		}
		return a.theme.PanelStyle.Height(a.bodyHeight()).Render(body)
	}

	var b strings.Builder
	b.WriteString(t("analytics.month", a.monthly.TotalCreated, a.monthly.TotalCompleted) + "\n")
	totalMinutes := int(a.analytics.AverageTimeSpent * float64(a.analytics.TotalTodos))
	b.WriteString(a.theme.MutedStyle.Render(t("analytics.time", todo.FormatMinutes(totalMinutes))) + "\n\n")

	barWidth := 24

	b.WriteString(a.theme.TitleStyle.Render(t("analytics.by_category")) + "\n")
	maxCount := 0
	for _, c := range a.analytics.CategoryStats {
		if c.Count > maxCount {
			maxCount = c.Count
		}
	}
	for _, c := range a.analytics.CategoryStats {
		b.WriteString(fmt.Sprintf("  %-10s %s %d\n", c.Category, RenderBar(c.Count, maxCount, barWidth), c.Count))
	}

	b.WriteString("\n" + a.theme.TitleStyle.Render(t("analytics.by_priority")) + "\n")
	maxCount = 0
	for _, p := range a.analytics.PriorityStats {
		if p.Count > maxCount {
			maxCount = p.Count
		}
	}
	for _, p := range a.analytics.PriorityStats {
		b.WriteString(fmt.Sprintf("  %-10s %s %d\n", p.Priority, RenderBar(p.Count, maxCount, barWidth), p.Count))
	}

	if len(a.analytics.WeeklyTrend) > 0 {
		b.WriteString("\n" + a.theme.TitleStyle.Render(t("analytics.trend")) + "\n")
		maxCount = 0
		for _, d := range a.analytics.WeeklyTrend {
			if d.Count > maxCount {
				maxCount = d.Count
			}
		}
		for _, d := range a.analytics.WeeklyTrend {
			b.WriteString(fmt.Sprintf("  %-10s %s %d\n", d.Date, RenderBar(d.Count, maxCount, barWidth), d.Count))
		}
	}

	return a.theme.PanelStyle.Height(a.bodyHeight()).Render(b.String())
}

func (a App) renderConfirm() string {
	t := a.locale.T
	body := a.theme.DangerStyle.Render(" ! ") + " " + t("confirm.delete", a.confirmTitle) + "\n\n" +
		a.theme.MutedStyle.Render("y "+t("confirm.yes")+" · n "+t("confirm.no"))
	box := a.theme.ModalStyle.BorderForeground(a.theme.Danger).Width(min(a.width-4, 60)).Render(body)
	return lipgloss.Place(a.width, a.bodyHeight(), lipgloss.Center, lipgloss.Center, box)
}

func (a App) renderDetail() string {
	t := a.locale.T
	item := a.detail
	now := time.Now()

	var b strings.Builder
	b.WriteString(a.theme.TitleStyle.Render(item.Title) + "\n\n")
	b.WriteString(RenderCategoryBadge(item.Category, a.theme) + " " +
		RenderPriorityBadge(item.Priority, a.theme) + " " + string(item.Priority) + "\n")
	if item.DueDate != nil {
		b.WriteString(t("todo.due") + ": " + RenderDueDate(item, now, a.theme) + "\n")
	}
	if item.TimeSpent > 0 {
		b.WriteString(t("todo.time_spent") + ": " + todo.FormatMinutes(item.TimeSpent) + "\n")
	}
	state := t("todo.pending")
	if item.Completed {
		state = t("todo.completed")
	}
	b.WriteString(state + "\n")

	if item.Description != "" {
		b.WriteString("\n" + RenderMarkdown(item.Description, min(a.width-8, 76)) + "\n")
	}

	box := a.theme.ModalStyle.Width(min(a.width-4, 80)).Render(b.String())
	return lipgloss.Place(a.width, a.bodyHeight(), lipgloss.Center, lipgloss.Center, box)
}

func (a App) renderHelp() string {
	t := a.locale.T
	hints := []string{
		t("keys.views"), t("keys.new"), t("keys.toggle"), t("keys.edit"),
		t("keys.delete"), t("keys.timer"), t("keys.search"), t("keys.pages"),
		t("keys.quit"),
	}
	return a.theme.MutedStyle.Render(" " + strings.Join(hints, "  "))
}

func (a App) renderStatusBar() string {
	t := a.locale.T

	left := " " + t("status.ready")
	switch {
	case a.lastError != "":
		left = " " + a.theme.ErrorStyle.Render(a.lastError)
	case a.loading:
		left = " " + a.spin.View() + t("status.working")
	case a.status != "":
		left = " " + a.status
	}

	right := ""
	if a.filters.Active() {
		right = t("filter.clear") + ": x  "
	}

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return a.theme.StatusBarStyle.Width(a.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (a App) bodyHeight() int {
	h := a.height - 3
	if h < 3 {
		h = 3
	}
	return h
}

// Run 启动 Bubble Tea TUI
// Run starts the Bubble Tea TUI application
func Run(sess *session.Store, queries *query.Client, tracker *timer.Tracker, logger *zap.Logger) error {
	app := NewApp(sess, queries, tracker, logger)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
