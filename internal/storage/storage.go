// Package storage 管理 ~/.todomaster 下的本地目录与凭证库。
// 按产品约定，除认证 token 外不落盘任何业务数据。
// Package storage manages local directories under ~/.todomaster and the
// credential store. By design nothing but the auth token is persisted.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Manager struct {
	baseDir string
	logsDir string
}

func NewManager(baseDir string) (*Manager, error) {
	baseDir = strings.TrimSpace(baseDir)
	if baseDir == "" {
		return nil, fmt.Errorf("storage base dir is empty")
	}
	m := &Manager{
		baseDir: baseDir,
		logsDir: filepath.Join(baseDir, "logs"),
	}
	for _, dir := range []string{m.baseDir, m.logsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
		}
	}
	return m, nil
}

func (m *Manager) BaseDir() string { return m.baseDir }

// LogPath 日志文件路径 / LogPath is the log file path
func (m *Manager) LogPath() string {
	return filepath.Join(m.logsDir, "todomaster.log")
}

// CredentialsPath 凭证数据库路径 / CredentialsPath is the credential db path
func (m *Manager) CredentialsPath() string {
	return filepath.Join(m.baseDir, "credentials.db")
}
