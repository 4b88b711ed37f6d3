package api

import "fmt"

// Kind 错误分类，决定 UI 的呈现方式
// Kind classifies an API failure and decides how the UI presents it
type Kind int

const (
	// KindNetwork 传输层失败，未收到 HTTP 响应
	// KindNetwork is a transport failure with no HTTP response
	KindNetwork Kind = iota
	// KindValidation 请求被服务端拒绝（400/422），错误信息贴近表单字段展示
	// KindValidation is a rejected request (400/422), shown inline near the field
	KindValidation
	// KindAuth 401，强制登出并跳转登录
	// KindAuth is a 401, forcing logout and redirect to login
	KindAuth
	// KindNotFound 404
	KindNotFound
	// KindServer 其余 HTTP 错误 / KindServer covers remaining HTTP errors
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	}
	return "unknown"
}

// Error API 调用失败；Message 来自服务端负载，缺失时为通用回退文案
// Error is a failed API call; Message comes from the server payload,
// with a generic fallback when the server provides none
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api: %s (status=%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
}

// classify 将 HTTP 状态码映射到错误分类
// classify maps an HTTP status code to an error kind
func classify(status int) Kind {
	switch {
	case status == 401:
		return KindAuth
	case status == 404:
		return KindNotFound
	case status == 400 || status == 422:
		return KindValidation
	default:
		return KindServer
	}
}

// IsKind 判断 err 是否为指定分类的 API 错误
// IsKind reports whether err is an API error of the given kind
func IsKind(err error, kind Kind) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == kind
}
