package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"todomaster/internal/api"
	"todomaster/internal/config"
	"todomaster/internal/i18n"
	"todomaster/internal/logging"
	"todomaster/internal/query"
	"todomaster/internal/session"
	"todomaster/internal/storage"
	"todomaster/internal/timer"
	"todomaster/internal/tui"
)

func main() {
	var (
		configPath string
		serverURL  string
		loginOnly  bool
	)
	flag.StringVar(&configPath, "config", "", "Path to config JSON/JSONC")
	flag.StringVar(&serverURL, "server", "", "Server base URL override")
	flag.BoolVar(&loginOnly, "login", false, "Sign in from the terminal and exit")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	cfg.Server.BaseURL = resolveServerURL(serverURL, cfg)

	i18n.Init(cfg.UI.Locale)

	store, err := storage.NewManager(cfg.Storage.BaseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init storage failed: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(store.LogPath(), cfg.UI.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logging failed: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync(logger)

	creds, err := storage.NewCredentialStore(store.CredentialsPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "open credential store failed: %v\n", err)
		os.Exit(1)
	}
	defer creds.Close()

	client := api.NewClient(cfg.Server, logger)
	sess := session.New(client, creds, cfg.Server.BaseURL, logger)

	if loginOnly {
		historyPath := filepath.Join(store.BaseDir(), "login.history")
		if err := runLoginPrompt(sess, historyPath); err != nil {
			fmt.Fprintf(os.Stderr, "sign in failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	queries := query.New(client, query.NewBus(), query.Options{
		PageLimit: cfg.Server.PageLimit,
		RetryOnce: cfg.Server.RetryOnce,
	})

	if err := tui.Run(sess, queries, timer.New(), logger); err != nil {
		fmt.Fprintf(os.Stderr, "todomaster exited with error: %v\n", err)
		os.Exit(1)
	}
}

// resolveServerURL 命令行覆盖优先于配置文件
// resolveServerURL prefers the command-line override over the config
func resolveServerURL(override string, cfg config.Config) string {
	if v := strings.TrimSpace(override); v != "" {
		return strings.TrimRight(v, "/")
	}
	return cfg.Server.BaseURL
}
