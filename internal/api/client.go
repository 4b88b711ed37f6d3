// Package api 封装对 TodoMaster 后端的 HTTP 调用：附加 Bearer token、
// 归一化错误分类，并在 401 时触发一次性登出回调。
// Package api wraps HTTP calls to the TodoMaster backend: it attaches the
// bearer token, normalizes error classification, and fires a one-shot
// auth-expired callback on 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"todomaster/internal/config"

	"go.uber.org/zap"
)

// TokenSource 返回当前持久化的 token，无则返回空串
// TokenSource returns the currently persisted token, or "" when absent
type TokenSource func() string

// Request 一次后端调用；IntentID 非空时作为 Idempotency-Key 发送，
// 保证同一用户意图的变更至多执行一次
// Request is one backend call; a non-empty IntentID is sent as the
// Idempotency-Key header so one user intent mutates at most once
type Request struct {
	Method   string
	Path     string
	Body     any
	IntentID string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger

	token         TokenSource
	onAuthExpired func()
}

func NewClient(cfg config.ServerConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
		logger: logger,
	}
}

// SetTokenSource 注入 token 来源（由 session 层持有）
// SetTokenSource injects the token source (owned by the session layer)
func (c *Client) SetTokenSource(fn TokenSource) { c.token = fn }

// OnAuthExpired 注册 401 回调；每个 401 响应恰好触发一次
// OnAuthExpired registers the 401 callback; it fires exactly once per
// 401 response
func (c *Client) OnAuthExpired(fn func()) { c.onAuthExpired = fn }

// Do 执行请求并将 JSON 响应解码到 out（可为 nil）。
// 失败时返回 *Error：传输失败为 KindNetwork，HTTP 错误按状态码分类。
// Do performs the request and decodes the JSON response into out (may be
// nil). Failures return *Error: transport failures are KindNetwork, HTTP
// errors are classified by status code.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	data, err := c.doRaw(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindServer, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	return nil
}

// DoList 同 Do，但将 null 或非数组负载矫正为空数组后再解码。
// /todos/recent 偶发返回非数组，统一在 API 边界兜底。
// DoList is Do, but coerces a null or non-array payload to an empty array
// before decoding. /todos/recent occasionally returns a non-array; the
// guard lives at the API boundary.
func (c *Client) DoList(ctx context.Context, req Request, out any) error {
	data, err := c.doRaw(ctx, req)
	if err != nil {
		return err
	}
	data = coerceArray(data)
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindServer, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path}, out)
}

func (c *Client) doRaw(ctx context.Context, req Request) ([]byte, error) {
	var bodyReader io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.token != nil {
		if tok := c.token(); tok != "" {
			httpReq.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	if req.IntentID != "" {
		httpReq.Header.Set("Idempotency-Key", req.IntentID)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.Error(err),
		)
		return nil, &Error{Kind: KindNetwork, Message: networkMessage(err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: networkMessage(err)}
	}

	c.logger.Debug("request done",
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}

	apiErr := &Error{
		Kind:    classify(resp.StatusCode),
		Status:  resp.StatusCode,
		Message: serverMessage(data, resp.StatusCode),
	}
	if apiErr.Kind == KindAuth && c.onAuthExpired != nil {
		c.onAuthExpired()
	}
	return nil, apiErr
}

// AsError 提取 *Error / AsError extracts an *Error from err
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// serverMessage 取服务端 {"message": ...}，缺失时回退到状态行
// serverMessage reads the server's {"message": ...} payload, falling back
// to the status line when absent
func serverMessage(data []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if strings.TrimSpace(payload.Message) != "" {
			return strings.TrimSpace(payload.Message)
		}
		if strings.TrimSpace(payload.Error) != "" {
			return strings.TrimSpace(payload.Error)
		}
	}
	return fmt.Sprintf("request failed with status %d", status)
}

func networkMessage(err error) string {
	if errors.Is(err, context.Canceled) {
		return "request canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "connection timed out"
	}
	return "connection failed: " + err.Error()
}

func coerceArray(data []byte) []byte {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || !bytes.HasPrefix(trimmed, []byte("[")) {
		return []byte("[]")
	}
	return trimmed
}
