package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// CredentialStore 基于 SQLite (WAL 模式) 的 token 持久化。
// 按服务器地址存一行，支持同一台机器指向多个后端。
// CredentialStore persists bearer tokens in SQLite with WAL mode.
// One row per server URL, so one machine can target several backends.
type CredentialStore struct {
	db   *sql.DB
	path string
}

// NewCredentialStore 创建并初始化凭证数据库
// NewCredentialStore creates and initializes the credential database
func NewCredentialStore(dbPath string) (*CredentialStore, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("credential db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// 启用 WAL 模式和优化 PRAGMA / Enable WAL and performance PRAGMAs
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	store := &CredentialStore{db: db, path: dbPath}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return store, nil
}

func (s *CredentialStore) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS credentials (
		server     TEXT PRIMARY KEY,
		token      TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close 关闭数据库连接 / Close the database connection
func (s *CredentialStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Token 返回指定服务器的 token，无记录时返回空串
// Token returns the token for a server, "" when none is stored
func (s *CredentialStore) Token(server string) (string, error) {
	var token string
	err := s.db.QueryRow(
		`SELECT token FROM credentials WHERE server = ?`, server,
	).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query token: %w", err)
	}
	return token, nil
}

// SaveToken 写入或覆盖 token / SaveToken inserts or replaces the token
func (s *CredentialStore) SaveToken(server, token string) error {
	if strings.TrimSpace(server) == "" {
		return fmt.Errorf("server is empty")
	}
	_, err := s.db.Exec(`
		INSERT INTO credentials (server, token, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(server) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at`,
		server, token, nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// ClearToken 删除 token；不存在时也成功（幂等）
// ClearToken removes the token; succeeds when absent (idempotent)
func (s *CredentialStore) ClearToken(server string) error {
	if _, err := s.db.Exec(`DELETE FROM credentials WHERE server = ?`, server); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
