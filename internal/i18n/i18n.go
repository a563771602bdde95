// Package i18n holds the MeetingMind message catalogs. Both the TUI pages
// and plain mode render every label, toast and prompt through a Catalog
// lookup; text a page builds from server data is never translated.
package i18n

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
)

// DefaultLocale is the catalog used when nothing else matches. Every key
// must exist in it.
const DefaultLocale = "en"

// catalogs maps a supported locale to its messages.
var catalogs = map[string]map[string]string{
	"en":    EnMessages,
	"zh-CN": ZhCNMessages,
}

// I18n 一个已解析语言的消息表
// I18n is a resolved catalog: the chosen locale's messages with English
// behind them. It is read-only once built.
type I18n struct {
	locale   string
	messages map[string]string
}

var global atomic.Pointer[I18n]

// Global 返回进程级消息表，首次调用时按环境选择语言
// Global returns the process catalog, detecting the locale on first use
func Global() *I18n {
	if g := global.Load(); g != nil {
		return g
	}
	global.CompareAndSwap(nil, New(""))
	return global.Load()
}

// Init 用配置里的 ui.locale 替换进程级消息表
// Init replaces the process catalog with one for locale (ui.locale or
// MEETINGMIND_LOCALE); empty falls back to the environment.
func Init(locale string) {
	global.Store(New(locale))
}

func T(key string, args ...any) string {
	return Global().T(key, args...)
}

// New resolves locale to a supported catalog. Unsupported locales get
// English.
func New(locale string) *I18n {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = DetectLocale()
	}
	locale = normalizeLocale(locale)
	return &I18n{locale: locale, messages: catalogs[locale]}
}

// T 查表并格式化；缺失的键原样返回，便于发现漏翻
// T formats the message for key. A key missing from the locale falls back
// to English, and a key missing everywhere is returned as is.
func (i *I18n) T(key string, args ...any) string {
	tmpl, ok := i.lookup(key)
	if !ok {
		return key
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// Has reports whether key exists in the catalog.
func (i *I18n) Has(key string) bool {
	_, ok := i.lookup(key)
	return ok
}

func (i *I18n) lookup(key string) (string, bool) {
	if v, ok := i.messages[key]; ok {
		return v, true
	}
	v, ok := catalogs[DefaultLocale][key]
	return v, ok
}

// Locale returns the resolved catalog name, "en" or "zh-CN".
func (i *I18n) Locale() string {
	return i.locale
}

// DetectLocale 从 POSIX 语言变量推断界面语言
// DetectLocale picks a catalog from the POSIX locale variables in their
// usual precedence. MEETINGMIND_LOCALE is read by the config layer and
// reaches New through Init.
func DetectLocale() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return normalizeLocale(v)
		}
	}
	return DefaultLocale
}

// normalizeLocale maps a POSIX or BCP 47 name ("zh_CN.UTF-8", "zh-Hans",
// "en-GB") onto a catalog by its language part.
func normalizeLocale(s string) string {
	s, _, _ = strings.Cut(strings.TrimSpace(s), ".")
	s, _, _ = strings.Cut(s, "@")
	lang, _, _ := strings.Cut(strings.ReplaceAll(s, "_", "-"), "-")
	switch strings.ToLower(lang) {
	case "zh":
		return "zh-CN"
	default:
		return DefaultLocale
	}
}
