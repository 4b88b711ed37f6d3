// Package query 是客户端的行为核心：按过滤条件拉取待办分页、发起
// create/update/delete 变更，并在变更成功后让 todo 分页、analytics、
// recent 三个视图整体失效。
// Package query is the client's behavioral core: it fetches filtered todo
// pages, issues create/update/delete mutations, and invalidates the todo
// page, analytics, and recent views together after a successful mutation.
package query

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"todomaster/internal/api"
	"todomaster/internal/filter"
	"todomaster/internal/todo"

	"github.com/google/uuid"
)

// ErrConfirmationRequired 删除是破坏性操作，必须携带显式确认信号
// ErrConfirmationRequired guards delete: a destructive action needs an
// explicit confirm signal before any request is sent
var ErrConfirmationRequired = errors.New("delete requires an explicit confirmation")

// Options 查询层配置 / Options configures the query layer
type Options struct {
	// PageLimit 每页条数，默认 10 / PageLimit is the page size, default 10
	PageLimit int
	// RetryOnce 网络失败时对只读查询重试一次
	// RetryOnce retries read-only queries once on network failure
	RetryOnce bool
	// NewIntentID 生成变更的幂等键；默认 uuid，测试可注入
	// NewIntentID generates mutation idempotency keys; defaults to uuid,
	// injectable for tests
	NewIntentID func() string
}

type pageEntry struct {
	page  todo.Page
	stale bool
}

type inflightPage struct {
	done chan struct{}
	page todo.Page
	err  error
}

type Client struct {
	api  *api.Client
	bus  *Bus
	opts Options

	mu         sync.Mutex
	todosEpoch uint64
	pages      map[string]*pageEntry
	inflight   map[string]*inflightPage
}

func New(client *api.Client, bus *Bus, opts Options) *Client {
	if opts.PageLimit <= 0 {
		opts.PageLimit = 10
	}
	if opts.NewIntentID == nil {
		opts.NewIntentID = uuid.NewString
	}
	if bus == nil {
		bus = NewBus()
	}
	return &Client{
		api:      client,
		bus:      bus,
		opts:     opts,
		pages:    make(map[string]*pageEntry),
		inflight: make(map[string]*inflightPage),
	}
}

// Bus 失效事件总线 / Bus returns the invalidation bus
func (c *Client) Bus() *Bus { return c.bus }

// Key 过滤条件与页码的规范缓存键（即查询串）
// Key is the canonical cache key (the query string) for filters + page
func (c *Client) Key(f filter.Set, page int) string {
	return f.Encode(page, c.opts.PageLimit)
}

// Todos 拉取一页待办。相同 (filters, page) 命中缓存或合并进行中的请求；
// 请求期间发生过失效的结果不会回填缓存，避免旧数据覆盖新状态。
// Todos fetches one page. Identical (filters, page) tuples hit the cache
// or join the in-flight call; a result that raced an invalidation is not
// written back, so stale data never overwrites newer state.
func (c *Client) Todos(ctx context.Context, f filter.Set, page int) (todo.Page, error) {
	key := c.Key(f, page)

	c.mu.Lock()
	if entry, ok := c.pages[key]; ok && !entry.stale {
		page := entry.page
		c.mu.Unlock()
		return page, nil
	}
	if call, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		select {
		case <-call.done:
			return call.page, call.err
		case <-ctx.Done():
			return todo.Page{}, ctx.Err()
		}
	}
	call := &inflightPage{done: make(chan struct{})}
	c.inflight[key] = call
	epoch := c.todosEpoch
	c.mu.Unlock()

	var result todo.Page
	err := c.get(ctx, "/todos?"+key, &result)
	if err == nil && result.Todos == nil {
		result.Todos = []todo.Todo{}
	}
	call.page, call.err = result, err

	c.mu.Lock()
	delete(c.inflight, key)
	if err == nil && epoch == c.todosEpoch {
		c.pages[key] = &pageEntry{page: result}
	}
	c.mu.Unlock()
	close(call.done)

	return result, err
}

// Recent 最近待办；非数组响应在 API 边界被矫正为空列表
// Recent fetches recent todos; non-array responses are coerced to an
// empty list at the API boundary
func (c *Client) Recent(ctx context.Context) ([]todo.Todo, error) {
	var out []todo.Todo
	err := c.getList(ctx, "/todos/recent", &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []todo.Todo{}
	}
	return out, nil
}

// Analytics 服务端聚合快照 / Analytics fetches the aggregate snapshot
func (c *Client) Analytics(ctx context.Context) (todo.Analytics, error) {
	var out todo.Analytics
	err := c.get(ctx, "/analytics", &out)
	return out, err
}

// Monthly 当月聚合 / Monthly fetches the current-month aggregate
func (c *Client) Monthly(ctx context.Context) (todo.MonthlyAnalytics, error) {
	var out todo.MonthlyAnalytics
	err := c.get(ctx, "/analytics/monthly", &out)
	return out, err
}

// Create 新建待办；成功后三视图整体失效，失败不触碰任何状态
// Create submits a new todo; success invalidates all three views,
// failure leaves every state untouched
func (c *Client) Create(ctx context.Context, draft todo.Draft) error {
	req := api.Request{
		Method:   http.MethodPost,
		Path:     "/todos",
		Body:     draft,
		IntentID: c.opts.NewIntentID(),
	}
	if err := c.api.Do(ctx, req, nil); err != nil {
		return err
	}
	c.invalidateAll()
	return nil
}

// Update 部分字段更新（完成切换、编辑、计时上报共用此路径）。
// 不做乐观更新：重新拉取完成前 UI 视待办为未变。
// Update is a partial-field update (toggle, edits, and time-tracking all
// go through here). No optimistic mutation: the UI treats the todo as
// unchanged until the invalidation-triggered refetch lands.
func (c *Client) Update(ctx context.Context, id string, patch todo.Patch) error {
	if id == "" {
		return fmt.Errorf("todo id is empty")
	}
	req := api.Request{
		Method:   http.MethodPut,
		Path:     "/todos/" + id,
		Body:     patch,
		IntentID: c.opts.NewIntentID(),
	}
	if err := c.api.Do(ctx, req, nil); err != nil {
		return err
	}
	c.invalidateAll()
	return nil
}

// Delete 删除待办；confirmed 为 false 时不发出任何请求
// Delete removes a todo; without confirmed no request is sent at all
func (c *Client) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if id == "" {
		return fmt.Errorf("todo id is empty")
	}
	req := api.Request{
		Method:   http.MethodDelete,
		Path:     "/todos/" + id,
		IntentID: c.opts.NewIntentID(),
	}
	if err := c.api.Do(ctx, req, nil); err != nil {
		return err
	}
	c.invalidateAll()
	return nil
}

// invalidateAll 标记所有缓存页过期并发布三视图的失效事件。
// 通知先于变更返回，调用方的 loading 状态以此为界；各视图的
// 重新拉取彼此独立完成。
// invalidateAll marks every cached page stale and publishes the three
// view invalidations. Notifications go out before the mutation returns;
// each view's refetch completes independently.
func (c *Client) invalidateAll() {
	c.mu.Lock()
	c.todosEpoch++
	for _, entry := range c.pages {
		entry.stale = true
	}
	c.mu.Unlock()

	c.bus.Publish(AllViews()...)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	err := c.api.Get(ctx, path, out)
	if err != nil && c.opts.RetryOnce && api.IsKind(err, api.KindNetwork) && ctx.Err() == nil {
		err = c.api.Get(ctx, path, out)
	}
	return err
}

func (c *Client) getList(ctx context.Context, path string, out any) error {
	req := api.Request{Method: http.MethodGet, Path: path}
	err := c.api.DoList(ctx, req, out)
	if err != nil && c.opts.RetryOnce && api.IsKind(err, api.KindNetwork) && ctx.Err() == nil {
		err = c.api.DoList(ctx, req, out)
	}
	return err
}
