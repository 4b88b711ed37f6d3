package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultNormalized(t *testing.T) {
	cfg := Default()
	if cfg.Server.BaseURL == "" {
		t.Fatal("default base url is empty")
	}
	if cfg.Server.PageLimit != 10 {
		t.Fatalf("PageLimit=%d, want 10", cfg.Server.PageLimit)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		// server override
		"server": {"base_url": "https://todo.example.com/api/", "timeout_ms": 3000},
		"ui": {"debug": true}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// trailing slash is trimmed in normalize
	if cfg.Server.BaseURL != "https://todo.example.com/api" {
		t.Fatalf("BaseURL=%q", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutMS != 3000 {
		t.Fatalf("TimeoutMS=%d, want 3000", cfg.Server.TimeoutMS)
	}
	if !cfg.UI.Debug {
		t.Fatal("UI.Debug should be true")
	}
	// untouched fields keep defaults
	if cfg.Server.PageLimit != 10 {
		t.Fatalf("PageLimit=%d, want default 10", cfg.Server.PageLimit)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TODO_SERVER_URL", "http://127.0.0.1:9000/api")
	t.Setenv("TODO_TIMEOUT_MS", "500")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BaseURL != "http://127.0.0.1:9000/api" {
		t.Fatalf("BaseURL=%q", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutMS != 500 {
		t.Fatalf("TimeoutMS=%d, want 500", cfg.Server.TimeoutMS)
	}
}

func TestLoadRejectsBadEnvTimeout(t *testing.T) {
	t.Setenv("TODO_TIMEOUT_MS", "soon")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid TODO_TIMEOUT_MS")
	}
}

func TestStripJSONComments(t *testing.T) {
	in := []byte(`{"a": "http://x//y", /* block */ "b": 1} // tail`)
	out := stripJSONComments(in)
	want := `{"a": "http://x//y",  "b": 1} `
	if string(out) != want {
		t.Fatalf("stripJSONComments=%q, want %q", out, want)
	}
}
