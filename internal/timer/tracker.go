// Package timer 按待办 id 维护本地计时：运行中的计时器每满一分钟累计
// 一次，Stop 返回累计分钟数供 timeSpent 更新上报。
// Package timer tracks local elapsed time per todo id: a running timer
// accrues one unit per full minute, and Stop yields the accumulated
// minutes for a timeSpent update.
package timer

import (
	"errors"
	"sync"
	"time"
)

// ErrAlreadyRunning 同一待办同时只允许一个计时器；先 Stop 再 Start
// ErrAlreadyRunning enforces one timer per todo; Stop before Start again
var ErrAlreadyRunning = errors.New("timer already running for this todo")

type running struct {
	startedAt time.Time
	// base 启动时已累计的分钟数 / base is the minutes accrued before start
	base int
}

type Tracker struct {
	mu      sync.Mutex
	now     func() time.Time
	running map[string]running
}

func New() *Tracker {
	return &Tracker{
		now:     time.Now,
		running: make(map[string]running),
	}
}

// Start 为待办启动计时；baseMinutes 是该待办已有的 timeSpent
// Start begins timing a todo; baseMinutes is its existing timeSpent
func (t *Tracker) Start(id string, baseMinutes int) error {
	if baseMinutes < 0 {
		baseMinutes = 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.running[id]; ok {
		return ErrAlreadyRunning
	}
	t.running[id] = running{startedAt: t.now(), base: baseMinutes}
	return nil
}

// Running 是否在计时 / Running reports whether a timer is active
func (t *Tracker) Running(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.running[id]
	return ok
}

// Elapsed 当前累计分钟数；未计时返回 false
// Elapsed is the accumulated minutes so far; false when not running
func (t *Tracker) Elapsed(id string) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.running[id]
	if !ok {
		return 0, false
	}
	return r.minutes(t.now()), true
}

// Stop 停止计时并返回累计分钟数；未计时返回 false
// Stop ends the timer and returns accumulated minutes; false when not
// running
func (t *Tracker) Stop(id string) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.running[id]
	if !ok {
		return 0, false
	}
	delete(t.running, id)
	return r.minutes(t.now()), true
}

// StopAll 取消全部计时（退出界面时调用），不上报
// StopAll cancels every timer (on leaving the view) without reporting
func (t *Tracker) StopAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = make(map[string]running)
}

func (r running) minutes(now time.Time) int {
	elapsed := int(now.Sub(r.startedAt) / time.Minute)
	if elapsed < 0 {
		elapsed = 0
	}
	return r.base + elapsed
}
