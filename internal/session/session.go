// Package session 维护认证状态机：Unknown → Authenticated / Anonymous。
// token 的唯一写入方：login/register/logout 与 401 处理。
// Package session holds the auth state machine: Unknown → Authenticated /
// Anonymous. Only login/register/logout and the 401 handler write the token.
package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"todomaster/internal/api"
	"todomaster/internal/storage"
	"todomaster/internal/todo"

	"go.uber.org/zap"
)

// State 会话状态 / State is the session state
type State int

const (
	// StateUnknown 启动中，持久化 token 尚未验证
	// StateUnknown means the persisted token has not been validated yet
	StateUnknown State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return "invalid"
}

type Store struct {
	api    *api.Client
	creds  *storage.CredentialStore
	server string
	logger *zap.Logger

	mu    sync.RWMutex
	state State
	user  todo.User
	token string
}

// New 创建会话存储并接管 api 客户端的 token 来源与 401 回调
// New creates the session store and wires the api client's token source
// and 401 callback to it
func New(client *api.Client, creds *storage.CredentialStore, server string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		api:    client,
		creds:  creds,
		server: server,
		logger: logger,
		state:  StateUnknown,
	}
	client.SetTokenSource(s.Token)
	client.OnAuthExpired(s.expire)
	return s
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User 当前用户；未认证时 ok 为 false
// User returns the current user; ok is false when not authenticated
func (s *Store) User() (todo.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.state == StateAuthenticated
}

// Token 当前内存中的 token（api 客户端的 TokenSource）
// Token returns the in-memory token (the api client's TokenSource)
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Bootstrap 启动时验证持久化 token：成功 → Authenticated，
// 失败 → Anonymous 且丢弃 token。无 token 时直接 Anonymous。
// Bootstrap validates the persisted token at startup: success →
// Authenticated, failure → Anonymous with the token discarded.
func (s *Store) Bootstrap(ctx context.Context) error {
	token, err := s.creds.Token(s.server)
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		s.setAnonymous()
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	var resp struct {
		User todo.User `json:"user"`
	}
	if err := s.api.Get(ctx, "/auth/me", &resp); err != nil {
		// 验证失败即丢弃 token；401 路径下 expire 已经清理过，重复清理无害
		// Any validation failure discards the token; on the 401 path expire
		// already cleaned up and the repeat is harmless
		s.discardToken()
		s.setAnonymous()
		return err
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = resp.User
	s.mu.Unlock()
	s.logger.Info("session restored", zap.String("email", resp.User.Email))
	return nil
}

// Login Anonymous → Authenticated；失败保持 Anonymous 并返回服务端信息
// Login transitions Anonymous → Authenticated; on failure the state stays
// Anonymous and the server's message is surfaced
func (s *Store) Login(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Register 同 Login，走注册端点 / Register is Login via the register endpoint
func (s *Store) Register(ctx context.Context, name, email, password string) error {
	return s.authenticate(ctx, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

func (s *Store) authenticate(ctx context.Context, path string, body map[string]string) error {
	var resp struct {
		Token string    `json:"token"`
		User  todo.User `json:"user"`
	}
	req := api.Request{Method: http.MethodPost, Path: path, Body: body}
	if err := s.api.Do(ctx, req, &resp); err != nil {
		return err
	}
	if resp.Token == "" {
		return fmt.Errorf("auth response missing token")
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = resp.User
	s.token = resp.Token
	s.mu.Unlock()

	if err := s.creds.SaveToken(s.server, resp.Token); err != nil {
		// 登录已成功，仅持久化失败；记录但不回滚会话
		// Auth succeeded, only persistence failed; log without rolling back
		s.logger.Warn("persist token failed", zap.Error(err))
	}
	s.logger.Info("authenticated", zap.String("email", resp.User.Email))
	return nil
}

// Logout 任意状态 → Anonymous，丢弃 token，幂等
// Logout moves any state to Anonymous, discards the token, idempotent
func (s *Store) Logout() {
	s.discardToken()
	s.setAnonymous()
	s.logger.Info("logged out")
}

// expire 401 处理；与显式 Logout 竞争时双方都收敛到 Anonymous
// expire handles 401; racing with an explicit Logout both converge to
// Anonymous
func (s *Store) expire() {
	s.discardToken()
	s.setAnonymous()
	s.logger.Info("session expired")
}

func (s *Store) discardToken() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	if err := s.creds.ClearToken(s.server); err != nil {
		s.logger.Warn("clear token failed", zap.Error(err))
	}
}

func (s *Store) setAnonymous() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.user = todo.User{}
	s.mu.Unlock()
}
