package timer

import (
	"testing"
	"time"
)

func newTestTracker(start time.Time) (*Tracker, *time.Time) {
	current := start
	tr := New()
	tr.now = func() time.Time { return current }
	return tr, &current
}

func TestStartStop_AccruesMinutes(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tr, clock := newTestTracker(base)

	if err := tr.Start("t1", 5); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !tr.Running("t1") {
		t.Fatal("timer should be running")
	}

	*clock = base.Add(3*time.Minute + 30*time.Second)
	got, ok := tr.Elapsed("t1")
	if !ok || got != 8 {
		t.Fatalf("Elapsed=%d ok=%v, want 8 (5 base + 3 full minutes)", got, ok)
	}

	minutes, ok := tr.Stop("t1")
	if !ok || minutes != 8 {
		t.Fatalf("Stop=%d ok=%v, want 8", minutes, ok)
	}
	if tr.Running("t1") {
		t.Fatal("timer should be stopped")
	}
}

func TestStart_SecondTimerRejected(t *testing.T) {
	tr, _ := newTestTracker(time.Now())
	if err := tr.Start("t1", 0); err != nil {
		t.Fatal(err)
	}
	if err := tr.Start("t1", 0); err != ErrAlreadyRunning {
		t.Fatalf("err=%v, want ErrAlreadyRunning", err)
	}
	// other ids are unaffected
	if err := tr.Start("t2", 0); err != nil {
		t.Fatalf("Start(t2): %v", err)
	}
}

func TestStop_NotRunning(t *testing.T) {
	tr, _ := newTestTracker(time.Now())
	if _, ok := tr.Stop("missing"); ok {
		t.Fatal("Stop on idle id should report false")
	}
	if _, ok := tr.Elapsed("missing"); ok {
		t.Fatal("Elapsed on idle id should report false")
	}
}

func TestStopAll(t *testing.T) {
	tr, _ := newTestTracker(time.Now())
	_ = tr.Start("t1", 0)
	_ = tr.Start("t2", 0)
	tr.StopAll()
	if tr.Running("t1") || tr.Running("t2") {
		t.Fatal("all timers should be cancelled")
	}
}

func TestStart_NegativeBaseClamped(t *testing.T) {
	base := time.Now()
	tr, _ := newTestTracker(base)
	if err := tr.Start("t1", -10); err != nil {
		t.Fatal(err)
	}
	got, _ := tr.Elapsed("t1")
	if got != 0 {
		t.Fatalf("Elapsed=%d, want 0", got)
	}
}
