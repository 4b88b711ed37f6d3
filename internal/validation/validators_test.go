package validation

import "testing"

func TestTodoInput_Valid(t *testing.T) {
	in := TodoInput{
		Title:    "Buy groceries",
		Category: "shopping",
		Priority: "high",
		DueDate:  "2026-09-01",
	}
	if err := Validate.Struct(in); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
}

func TestTodoInput_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		in    TodoInput
		field string
	}{
		{"missing title", TodoInput{}, "Title"},
		{"bad category", TodoInput{Title: "x", Category: "chores"}, "Category"},
		{"bad priority", TodoInput{Title: "x", Priority: "urgent"}, "Priority"},
		{"bad date", TodoInput{Title: "x", DueDate: "01/09/2026"}, "DueDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate.Struct(tt.in)
			if err == nil {
				t.Fatal("expected validation error")
			}
			fields := FieldErrors(err)
			if _, ok := fields[tt.field]; !ok {
				t.Fatalf("FieldErrors=%v, want key %q", fields, tt.field)
			}
		})
	}
}

func TestTodoInput_EmptyEnumsAllowed(t *testing.T) {
	// 表单留空表示不改动；omitempty 放行
	in := TodoInput{Title: "x"}
	if err := Validate.Struct(in); err != nil {
		t.Fatalf("empty optional fields rejected: %v", err)
	}
}

func TestCredentials(t *testing.T) {
	ok := Credentials{Email: "a@b.co", Password: "secret1"}
	if err := Validate.Struct(ok); err != nil {
		t.Fatalf("valid credentials rejected: %v", err)
	}
	bad := Credentials{Email: "not-an-email", Password: "short"}
	fields := FieldErrors(Validate.Struct(bad))
	if fields["Email"] != "email" {
		t.Fatalf("Email tag=%q, want email", fields["Email"])
	}
	if fields["Password"] != "min" {
		t.Fatalf("Password tag=%q, want min", fields["Password"])
	}
}

func TestSanitizeText(t *testing.T) {
	got := SanitizeText("  hello\x00 world\n\t ok  ")
	want := "hello world\n\t ok"
	if got != want {
		t.Fatalf("SanitizeText=%q, want %q", got, want)
	}
}

func TestFieldErrors_Nil(t *testing.T) {
	if FieldErrors(nil) != nil {
		t.Fatal("nil error should map to nil")
	}
}
