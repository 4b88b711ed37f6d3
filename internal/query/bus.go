package query

import "sync"

// View 可被失效的缓存视图 / View is an invalidatable cached view
type View int

const (
	ViewTodos View = iota
	ViewAnalytics
	ViewRecent
)

func (v View) String() string {
	switch v {
	case ViewTodos:
		return "todos"
	case ViewAnalytics:
		return "analytics"
	case ViewRecent:
		return "recent"
	}
	return "unknown"
}

// AllViews 变更成功后整体失效的三个视图
// AllViews are the three views invalidated together after a mutation
func AllViews() []View {
	return []View{ViewTodos, ViewAnalytics, ViewRecent}
}

// Bus 失效事件总线；每个视图的订阅方独立接收通知，便于单独测试。
// Publish 同步调用订阅回调，因此变更操作返回前通知必已发出。
// Bus is the invalidation event bus; each view's subscribers are notified
// independently so they can be tested in isolation. Publish invokes
// callbacks synchronously, so notifications are out before a mutation
// returns.
type Bus struct {
	mu   sync.RWMutex
	subs map[View][]func(View)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[View][]func(View))}
}

// Subscribe 注册回调；回调在 Publish 的调用栈上执行，必须保持轻量
// Subscribe registers a callback; it runs on Publish's stack and must be
// lightweight
func (b *Bus) Subscribe(view View, fn func(View)) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	b.subs[view] = append(b.subs[view], fn)
	b.mu.Unlock()
}

// Publish 按参数顺序通知各视图的订阅方
// Publish notifies each view's subscribers in argument order
func (b *Bus) Publish(views ...View) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, view := range views {
		for _, fn := range b.subs[view] {
			fn(view)
		}
	}
}
