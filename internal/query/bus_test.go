package query

import "testing"

func TestBus_SubscribersAreIndependent(t *testing.T) {
	bus := NewBus()
	var todos, analytics, recent int
	bus.Subscribe(ViewTodos, func(View) { todos++ })
	bus.Subscribe(ViewAnalytics, func(View) { analytics++ })
	bus.Subscribe(ViewRecent, func(View) { recent++ })

	bus.Publish(ViewTodos)
	if todos != 1 || analytics != 0 || recent != 0 {
		t.Fatalf("counts=%d/%d/%d after single publish", todos, analytics, recent)
	}

	bus.Publish(AllViews()...)
	if todos != 2 || analytics != 1 || recent != 1 {
		t.Fatalf("counts=%d/%d/%d after fan-out", todos, analytics, recent)
	}
}

func TestBus_MultipleSubscribersPerView(t *testing.T) {
	bus := NewBus()
	calls := 0
	bus.Subscribe(ViewTodos, func(View) { calls++ })
	bus.Subscribe(ViewTodos, func(View) { calls++ })

	bus.Publish(ViewTodos)
	if calls != 2 {
		t.Fatalf("calls=%d, want 2", calls)
	}
}

func TestBus_NilSubscriberIgnored(t *testing.T) {
	bus := NewBus()
	bus.Subscribe(ViewTodos, nil)
	bus.Publish(ViewTodos) // must not panic
}

func TestViewString(t *testing.T) {
	if ViewTodos.String() != "todos" || ViewAnalytics.String() != "analytics" || ViewRecent.String() != "recent" {
		t.Fatal("unexpected view names")
	}
}
