package storage

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *CredentialStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "credentials.db")
	store, err := NewCredentialStore(dbPath)
	if err != nil {
		t.Fatalf("NewCredentialStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCredentialStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	server := "http://localhost:5000/api"

	tok, err := store.Token(server)
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if tok != "" {
		t.Fatalf("Token=%q before save, want empty", tok)
	}

	if err := store.SaveToken(server, "abc123"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	tok, err = store.Token(server)
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if tok != "abc123" {
		t.Fatalf("Token=%q, want %q", tok, "abc123")
	}

	// overwrite
	if err := store.SaveToken(server, "def456"); err != nil {
		t.Fatalf("SaveToken overwrite: %v", err)
	}
	tok, _ = store.Token(server)
	if tok != "def456" {
		t.Fatalf("Token=%q after overwrite, want %q", tok, "def456")
	}
}

func TestCredentialStore_ClearIdempotent(t *testing.T) {
	store := newTestStore(t)
	server := "http://localhost:5000/api"

	if err := store.SaveToken(server, "abc"); err != nil {
		t.Fatal(err)
	}
	if err := store.ClearToken(server); err != nil {
		t.Fatalf("ClearToken: %v", err)
	}
	if err := store.ClearToken(server); err != nil {
		t.Fatalf("second ClearToken should also succeed: %v", err)
	}
	tok, _ := store.Token(server)
	if tok != "" {
		t.Fatalf("Token=%q after clear, want empty", tok)
	}
}

func TestCredentialStore_PerServerIsolation(t *testing.T) {
	store := newTestStore(t)
	if err := store.SaveToken("http://a/api", "tok-a"); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveToken("http://b/api", "tok-b"); err != nil {
		t.Fatal(err)
	}
	tok, _ := store.Token("http://a/api")
	if tok != "tok-a" {
		t.Fatalf("Token(a)=%q, want tok-a", tok)
	}
}

func TestManager_CreatesDirs(t *testing.T) {
	base := filepath.Join(t.TempDir(), "home", ".todomaster")
	m, err := NewManager(base)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if m.LogPath() == "" || m.CredentialsPath() == "" {
		t.Fatal("paths should not be empty")
	}
}
