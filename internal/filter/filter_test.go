package filter

import "testing"

func strPtr(s string) *string { return &s }

func TestCompose_MergesFields(t *testing.T) {
	var s Set

	s = s.Compose(Patch{Category: strPtr("work")})
	s = s.Compose(Patch{Priority: strPtr("high")})

	if s.Category != "work" || s.Priority != "high" {
		t.Fatalf("composed set = %+v, want category=work priority=high", s)
	}
	if s.Search != "" || s.Completed != "" {
		t.Fatalf("untouched fields should stay empty: %+v", s)
	}
}

func TestCompose_EmptyStringClears(t *testing.T) {
	s := Set{Category: "work", Search: "milk"}
	s = s.Compose(Patch{Category: strPtr("")})
	if s.Category != "" {
		t.Fatalf("Category=%q, want cleared", s.Category)
	}
	if s.Search != "milk" {
		t.Fatalf("Search=%q, want untouched", s.Search)
	}
}

func TestCompose_CoercesCompleted(t *testing.T) {
	var s Set
	s = s.Compose(Patch{Completed: strPtr("true")})
	if s.Completed != "true" {
		t.Fatalf("Completed=%q, want %q", s.Completed, "true")
	}
	s = s.Compose(Patch{Completed: strPtr("yes")})
	if s.Completed != "" {
		t.Fatalf("Completed=%q, want cleared for invalid value", s.Completed)
	}
}

func TestEncode_OmitsEmptyAlwaysIncludesPaging(t *testing.T) {
	var s Set
	if got := s.Encode(1, 10); got != "page=1&limit=10" {
		t.Fatalf("Encode=%q, want %q", got, "page=1&limit=10")
	}

	s = Set{Search: "buy milk", Priority: "low"}
	want := "search=buy+milk&priority=low&page=2&limit=10"
	if got := s.Encode(2, 10); got != want {
		t.Fatalf("Encode=%q, want %q", got, want)
	}
}

func TestEncode_FixedOrder(t *testing.T) {
	s := Set{Search: "a", Category: "work", Priority: "high", Completed: "false"}
	want := "search=a&category=work&priority=high&completed=false&page=1&limit=10"
	if got := s.Encode(1, 10); got != want {
		t.Fatalf("Encode=%q, want %q", got, want)
	}
}

func TestEncode_ClampsPageAndLimit(t *testing.T) {
	var s Set
	if got := s.Encode(0, 0); got != "page=1&limit=10" {
		t.Fatalf("Encode=%q, want clamped %q", got, "page=1&limit=10")
	}
}

func TestActive(t *testing.T) {
	if (Set{}).Active() {
		t.Fatal("empty set should not be active")
	}
	if !(Set{Completed: "true"}).Active() {
		t.Fatal("set with completed should be active")
	}
}
