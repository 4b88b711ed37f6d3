package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ServerConfig 后端 REST API 的连接配置
// ServerConfig describes how to reach the backend REST API
type ServerConfig struct {
	BaseURL   string `json:"base_url"`
	TimeoutMS int    `json:"timeout_ms"`
	// RetryOnce 网络失败时对只读查询重试一次
	// RetryOnce retries read-only queries once on network failure
	RetryOnce bool `json:"retry_once"`
	PageLimit int  `json:"page_limit"`
}

type StorageConfig struct {
	BaseDir  string `json:"base_dir"`
	LogMaxMB int    `json:"log_max_mb"`
}

type UIConfig struct {
	Locale string `json:"locale"`
	// Debug 将 API 请求细节写入日志文件
	// Debug writes API request details to the log file
	Debug bool `json:"debug"`
}

type Config struct {
	Server  ServerConfig  `json:"server"`
	Storage StorageConfig `json:"storage"`
	UI      UIConfig      `json:"ui"`
}

type fileServerConfig struct {
	BaseURL   *string `json:"base_url"`
	TimeoutMS *int    `json:"timeout_ms"`
	RetryOnce *bool   `json:"retry_once"`
	PageLimit *int    `json:"page_limit"`
}

type fileStorageConfig struct {
	BaseDir  *string `json:"base_dir"`
	LogMaxMB *int    `json:"log_max_mb"`
}

type fileUIConfig struct {
	Locale *string `json:"locale"`
	Debug  *bool   `json:"debug"`
}

type fileConfig struct {
	Server  *fileServerConfig  `json:"server"`
	Storage *fileStorageConfig `json:"storage"`
	UI      *fileUIConfig      `json:"ui"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			BaseURL:   "http://localhost:5000/api",
			TimeoutMS: 15000,
			RetryOnce: true,
			PageLimit: 10,
		},
		Storage: StorageConfig{
			BaseDir:  "~/.todomaster",
			LogMaxMB: 20,
		},
		UI: UIConfig{
			Locale: "",
		},
	}
}

// Load 依次合并默认值、全局配置（~/.todomaster/config.json）、显式路径与环境变量
// Load merges defaults, the global config (~/.todomaster/config.json),
// an explicit path, and environment variables, in that order
func Load(path string) (Config, error) {
	cfg := Default()

	for _, globalPath := range globalConfigPaths() {
		if err := mergeFromFile(&cfg, globalPath); err != nil {
			return Config{}, err
		}
	}

	resolvedPath := strings.TrimSpace(path)
	if envPath := strings.TrimSpace(os.Getenv("TODO_CONFIG_PATH")); envPath != "" {
		resolvedPath = envPath
	}
	if err := mergeFromFile(&cfg, resolvedPath); err != nil {
		return Config{}, err
	}

	if err := normalize(&cfg); err != nil {
		return Config{}, err
	}
	return applyEnv(cfg)
}

func globalConfigPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(home, ".todomaster", "config.json")}
}

func mergeFromFile(cfg *Config, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	resolved, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("expand config path %q: %w", path, err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %q: %w", resolved, err)
	}

	cleaned := stripJSONComments(data)
	var fileCfg fileConfig
	if err := json.Unmarshal(cleaned, &fileCfg); err != nil {
		return fmt.Errorf("parse config %q: %w", resolved, err)
	}
	applyFileConfig(cfg, fileCfg)
	return nil
}

func applyFileConfig(cfg *Config, fc fileConfig) {
	if fc.Server != nil {
		if fc.Server.BaseURL != nil && strings.TrimSpace(*fc.Server.BaseURL) != "" {
			cfg.Server.BaseURL = strings.TrimSpace(*fc.Server.BaseURL)
		}
		if fc.Server.TimeoutMS != nil && *fc.Server.TimeoutMS > 0 {
			cfg.Server.TimeoutMS = *fc.Server.TimeoutMS
		}
		if fc.Server.RetryOnce != nil {
			cfg.Server.RetryOnce = *fc.Server.RetryOnce
		}
		if fc.Server.PageLimit != nil && *fc.Server.PageLimit > 0 {
			cfg.Server.PageLimit = *fc.Server.PageLimit
		}
	}
	if fc.Storage != nil {
		if fc.Storage.BaseDir != nil && strings.TrimSpace(*fc.Storage.BaseDir) != "" {
			cfg.Storage.BaseDir = strings.TrimSpace(*fc.Storage.BaseDir)
		}
		if fc.Storage.LogMaxMB != nil && *fc.Storage.LogMaxMB > 0 {
			cfg.Storage.LogMaxMB = *fc.Storage.LogMaxMB
		}
	}
	if fc.UI != nil {
		if fc.UI.Locale != nil {
			cfg.UI.Locale = strings.TrimSpace(*fc.UI.Locale)
		}
		if fc.UI.Debug != nil {
			cfg.UI.Debug = *fc.UI.Debug
		}
	}
}

func normalize(cfg *Config) error {
	if strings.TrimSpace(cfg.Server.BaseURL) == "" {
		cfg.Server.BaseURL = Default().Server.BaseURL
	}
	cfg.Server.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Server.BaseURL), "/")
	if cfg.Server.TimeoutMS <= 0 {
		cfg.Server.TimeoutMS = Default().Server.TimeoutMS
	}
	if cfg.Server.PageLimit <= 0 {
		cfg.Server.PageLimit = Default().Server.PageLimit
	}

	storageDir, err := expandPath(cfg.Storage.BaseDir)
	if err != nil {
		return err
	}
	cfg.Storage.BaseDir = storageDir
	if cfg.Storage.LogMaxMB <= 0 {
		cfg.Storage.LogMaxMB = Default().Storage.LogMaxMB
	}
	return nil
}

func applyEnv(cfg Config) (Config, error) {
	if v := strings.TrimSpace(os.Getenv("TODO_SERVER_URL")); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("TODO_TIMEOUT_MS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid TODO_TIMEOUT_MS: %q", v)
		}
		cfg.Server.TimeoutMS = n
	}
	if v := strings.TrimSpace(os.Getenv("TODO_STORAGE_DIR")); v != "" {
		cfg.Storage.BaseDir = v
	}
	if v := strings.TrimSpace(os.Getenv("TODO_LOCALE")); v != "" {
		cfg.UI.Locale = v
	}

	return cfg, normalize(&cfg)
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		if path == "~" {
			path = home
		} else {
			path = filepath.Join(home, strings.TrimPrefix(path, "~/"))
		}
	}
	return filepath.Abs(path)
}

// stripJSONComments 允许配置文件携带 // 与 /* */ 注释
// stripJSONComments lets config files carry // and /* */ comments
func stripJSONComments(data []byte) []byte {
	const (
		stateNormal = iota
		stateString
		stateLineComment
		stateBlockComment
	)

	state := stateNormal
	escaped := false
	out := bytes.Buffer{}

	for i := 0; i < len(data); i++ {
		c := data[i]
		next := byte(0)
		if i+1 < len(data) {
			next = data[i+1]
		}

		switch state {
		case stateNormal:
			if c == '"' {
				state = stateString
				out.WriteByte(c)
				continue
			}
			if c == '/' && next == '/' {
				state = stateLineComment
				i++
				continue
			}
			if c == '/' && next == '*' {
				state = stateBlockComment
				i++
				continue
			}
			out.WriteByte(c)
		case stateString:
			out.WriteByte(c)
			if escaped {
				escaped = false
				continue
			}
			if c == '\\' {
				escaped = true
				continue
			}
			if c == '"' {
				state = stateNormal
			}
		case stateLineComment:
			if c == '\n' {
				state = stateNormal
				out.WriteByte(c)
			}
		case stateBlockComment:
			if c == '*' && next == '/' {
				state = stateNormal
				i++
			}
		}
	}

	return out.Bytes()
}
