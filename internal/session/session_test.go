package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"todomaster/internal/api"
	"todomaster/internal/config"
	"todomaster/internal/storage"
)

const testServer = "http://todo.test/api"

func newTestCreds(t *testing.T) *storage.CredentialStore {
	t.Helper()
	creds, err := storage.NewCredentialStore(filepath.Join(t.TempDir(), "credentials.db"))
	if err != nil {
		t.Fatalf("NewCredentialStore: %v", err)
	}
	t.Cleanup(func() { _ = creds.Close() })
	return creds
}

func newTestStore(t *testing.T, handler http.Handler) (*Store, *storage.CredentialStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := api.NewClient(config.ServerConfig{BaseURL: srv.URL, TimeoutMS: 2000}, nil)
	creds := newTestCreds(t)
	return New(client, creds, testServer, nil), creds
}

func TestBootstrap_NoToken(t *testing.T) {
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without a token")
	}))

	if store.State() != StateUnknown {
		t.Fatalf("initial state=%v, want unknown", store.State())
	}
	if err := store.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if store.State() != StateAnonymous {
		t.Fatalf("state=%v, want anonymous", store.State())
	}
}

func TestBootstrap_ValidToken(t *testing.T) {
	store, creds := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/me" {
			t.Errorf("path=%q, want /auth/me", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer saved-token" {
			t.Errorf("Authorization=%q", r.Header.Get("Authorization"))
		}
		w.Write([]byte(`{"user":{"id":"u1","name":"Ada","email":"ada@example.com"}}`))
	}))
	if err := creds.SaveToken(testServer, "saved-token"); err != nil {
		t.Fatal(err)
	}

	if err := store.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if store.State() != StateAuthenticated {
		t.Fatalf("state=%v, want authenticated", store.State())
	}
	user, ok := store.User()
	if !ok || user.Email != "ada@example.com" {
		t.Fatalf("User=%+v ok=%v", user, ok)
	}
}

func TestBootstrap_InvalidTokenDiscarded(t *testing.T) {
	store, creds := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid token"}`))
	}))
	if err := creds.SaveToken(testServer, "stale-token"); err != nil {
		t.Fatal(err)
	}

	if err := store.Bootstrap(context.Background()); err == nil {
		t.Fatal("expected error from invalid token")
	}
	if store.State() != StateAnonymous {
		t.Fatalf("state=%v, want anonymous", store.State())
	}
	tok, _ := creds.Token(testServer)
	if tok != "" {
		t.Fatalf("token=%q, want discarded", tok)
	}
}

func TestLogin_Success(t *testing.T) {
	store, creds := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"token":"fresh","user":{"id":"u1","name":"Ada","email":"ada@example.com"}}`))
	}))

	if err := store.Login(context.Background(), "ada@example.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if store.State() != StateAuthenticated {
		t.Fatalf("state=%v, want authenticated", store.State())
	}
	tok, _ := creds.Token(testServer)
	if tok != "fresh" {
		t.Fatalf("persisted token=%q, want fresh", tok)
	}
}

func TestLogin_FailureSurfacesServerMessage(t *testing.T) {
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	}))

	err := store.Login(context.Background(), "ada@example.com", "wrong")
	apiErr, ok := api.AsError(err)
	if !ok {
		t.Fatalf("expected api error, got %v", err)
	}
	if apiErr.Message != "invalid credentials" {
		t.Fatalf("Message=%q", apiErr.Message)
	}
	if store.State() == StateAuthenticated {
		t.Fatal("state should not become authenticated on failure")
	}
}

func TestRegister_Success(t *testing.T) {
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("path=%q", r.URL.Path)
		}
		w.Write([]byte(`{"token":"t","user":{"id":"u2","name":"Bo","email":"bo@example.com"}}`))
	}))

	if err := store.Register(context.Background(), "Bo", "bo@example.com", "pw"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if store.State() != StateAuthenticated {
		t.Fatalf("state=%v", store.State())
	}
}

func TestLogout_Idempotent(t *testing.T) {
	store, creds := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"t","user":{}}`))
	}))
	if err := store.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatal(err)
	}

	store.Logout()
	store.Logout()
	if store.State() != StateAnonymous {
		t.Fatalf("state=%v, want anonymous", store.State())
	}
	tok, _ := creds.Token(testServer)
	if tok != "" {
		t.Fatalf("token=%q after logout, want empty", tok)
	}
	if store.Token() != "" {
		t.Fatal("in-memory token should be cleared")
	}
}

func TestServer401ForcesAnonymous(t *testing.T) {
	calls := 0
	store, creds := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path == "/auth/login" {
			w.Write([]byte(`{"token":"t","user":{}}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"expired"}`))
	}))
	if err := store.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatal(err)
	}

	// any protected call answering 401 flips the session to anonymous
	err := store.api.Get(context.Background(), "/todos", nil)
	if !api.IsKind(err, api.KindAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if store.State() != StateAnonymous {
		t.Fatalf("state=%v, want anonymous after 401", store.State())
	}
	tok, _ := creds.Token(testServer)
	if tok != "" {
		t.Fatalf("token=%q after 401, want cleared", tok)
	}
}
