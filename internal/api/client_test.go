package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"todomaster/internal/config"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(config.ServerConfig{BaseURL: srv.URL, TimeoutMS: 2000}, nil)
	return client, srv
}

func TestDo_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok":true}`))
	}))
	client.SetTokenSource(func() string { return "tok123" })

	var out struct {
		OK bool `json:"ok"`
	}
	if err := client.Get(context.Background(), "/auth/me", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Fatalf("Authorization=%q, want %q", gotAuth, "Bearer tok123")
	}
	if !out.OK {
		t.Fatal("response not decoded")
	}
}

func TestDo_NoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	client.SetTokenSource(func() string { return "" })

	if err := client.Get(context.Background(), "/todos", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization=%q, want empty", gotAuth)
	}
}

func TestDo_ClassifiesServerMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"title is required"}`))
	}))

	err := client.Do(context.Background(), Request{Method: http.MethodPost, Path: "/todos"}, nil)
	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Kind != KindValidation {
		t.Fatalf("Kind=%v, want KindValidation", apiErr.Kind)
	}
	if apiErr.Message != "title is required" {
		t.Fatalf("Message=%q", apiErr.Message)
	}
}

func TestDo_FallbackMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`oops`))
	}))

	err := client.Get(context.Background(), "/analytics", nil)
	apiErr, ok := AsError(err)
	if !ok || apiErr.Kind != KindServer {
		t.Fatalf("expected server error, got %v", err)
	}
	if apiErr.Message != "request failed with status 500" {
		t.Fatalf("Message=%q", apiErr.Message)
	}
}

func TestDo_AuthExpiredFiresOncePerResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	}))

	fired := 0
	client.OnAuthExpired(func() { fired++ })

	err := client.Get(context.Background(), "/todos", nil)
	if !IsKind(err, KindAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if fired != 1 {
		t.Fatalf("auth-expired fired %d times, want 1", fired)
	}

	_ = client.Get(context.Background(), "/todos", nil)
	if fired != 2 {
		t.Fatalf("auth-expired fired %d times after second 401, want 2", fired)
	}
}

func TestDo_NetworkErrorKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // connection refused from here on

	client := NewClient(config.ServerConfig{BaseURL: url, TimeoutMS: 500}, nil)
	err := client.Get(context.Background(), "/todos", nil)
	if !IsKind(err, KindNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestDoList_CoercesNonArray(t *testing.T) {
	cases := []string{`null`, `{"message":"nope"}`, ``}
	for _, body := range cases {
		payload := body
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(payload))
		}))

		var out []map[string]any
		err := client.DoList(context.Background(), Request{Method: http.MethodGet, Path: "/todos/recent"}, &out)
		if err != nil {
			t.Fatalf("payload %q: DoList: %v", payload, err)
		}
		if len(out) != 0 {
			t.Fatalf("payload %q: got %d items, want 0", payload, len(out))
		}
	}
}

func TestDoList_KeepsArray(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"title":"a"},{"title":"b"}]`))
	}))

	var out []map[string]any
	if err := client.DoList(context.Background(), Request{Method: http.MethodGet, Path: "/todos/recent"}, &out); err != nil {
		t.Fatalf("DoList: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d items, want 2", len(out))
	}
}

func TestDo_SendsIdempotencyKey(t *testing.T) {
	var gotKey string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		w.Write([]byte(`{}`))
	}))

	req := Request{Method: http.MethodPost, Path: "/todos", Body: map[string]string{"title": "x"}, IntentID: "intent-1"}
	if err := client.Do(context.Background(), req, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotKey != "intent-1" {
		t.Fatalf("Idempotency-Key=%q, want %q", gotKey, "intent-1")
	}
}
