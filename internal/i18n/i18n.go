// Package i18n 提供界面文案的双语目录：英文为回退，中文整体覆盖。
// Package i18n provides the bilingual UI catalog: English is the
// fallback, Chinese overlays it wholesale.
package i18n

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// I18n 一个已解析 locale 的消息目录；构造后只读
// I18n is a resolved-locale message catalog, read-only after New
type I18n struct {
	locale   string
	messages map[string]string
}

var (
	global     *I18n
	globalOnce sync.Once
)

// Global 返回全局 i18n 实例
// Global returns the global i18n instance
func Global() *I18n {
	globalOnce.Do(func() {
		if global == nil {
			global = New("")
		}
	})
	return global
}

// Init 初始化全局 i18n 实例
// Init initializes the global i18n instance
func Init(locale string) {
	global = New(locale)
}

// T 全局翻译快捷函数
// T is a global translation shortcut
func T(key string, args ...any) string {
	return Global().T(key, args...)
}

// New 创建 i18n 实例；locale 为空时从环境检测
// New creates an i18n instance, detecting the locale from the
// environment when empty
func New(locale string) *I18n {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = DetectLocale()
	}
	locale = normalizeLocale(locale)

	messages := make(map[string]string, len(EnMessages))
	for k, v := range EnMessages {
		messages[k] = v
	}
	if locale == "zh-CN" || locale == "zh" {
		for k, v := range ZhCNMessages {
			messages[k] = v
		}
	}

	return &I18n{locale: locale, messages: messages}
}

// T 翻译；未知键原样返回 / T translates; unknown keys pass through
func (i *I18n) T(key string, args ...any) string {
	tmpl, ok := i.messages[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// Locale 返回当前 locale
// Locale returns current locale
func (i *I18n) Locale() string {
	return i.locale
}

// DetectLocale 自动检测 locale
// DetectLocale auto-detects locale from environment
func DetectLocale() string {
	for _, env := range []string{"TODO_LANG", "LANG", "LC_ALL", "LC_MESSAGES"} {
		v := strings.TrimSpace(os.Getenv(env))
		if v == "" {
			continue
		}
		return normalizeLocale(v)
	}
	return "en"
}

func normalizeLocale(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "en"
	}
	// 去掉 .UTF-8 等后缀 / Remove .UTF-8 suffix
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		s = s[:idx]
	}
	s = strings.ReplaceAll(s, "_", "-")
	lower := strings.ToLower(s)

	if strings.HasPrefix(lower, "zh") {
		return "zh-CN"
	}
	if strings.HasPrefix(lower, "en") {
		return "en"
	}
	return s
}
