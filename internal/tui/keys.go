package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"meetingmind/internal/i18n"
)

// KeyMap 定义全局及各页面快捷键绑定
// KeyMap defines global and per-page keybindings
type KeyMap struct {
	NextPage key.Binding
	PrevPage key.Binding
	Quit     key.Binding

	// 上传页 / Upload page
	Submit    key.Binding
	Sample    key.Binding
	Clear     key.Binding
	Import    key.Binding
	NextField key.Binding
	PrevField key.Binding

	// 列表页 / List pages
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Toggle  key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Filter  key.Binding
	Reset   key.Binding
	Expand  key.Binding
	Search  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Save    key.Binding
}

// bind 用目录里的 "按键 说明" 文本生成帮助
// bind builds a binding whose help comes from a "keys description" catalog entry
func bind(locale *i18n.I18n, helpKey string, keys ...string) key.Binding {
	text := locale.T(helpKey)
	k, desc, _ := strings.Cut(text, " ")
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(k, desc))
}

// DefaultKeyMap 默认快捷键
// DefaultKeyMap returns default keybindings
func DefaultKeyMap(locale *i18n.I18n) KeyMap {
	return KeyMap{
		NextPage: bind(locale, "keys.tab", "tab"),
		PrevPage: key.NewBinding(key.WithKeys("shift+tab")),
		Quit:     bind(locale, "keys.quit", "ctrl+c"),

		Submit:    bind(locale, "keys.submit", "ctrl+s"),
		Sample:    bind(locale, "keys.sample", "ctrl+e"),
		Clear:     bind(locale, "keys.clear", "ctrl+r"),
		Import:    bind(locale, "keys.file", "ctrl+o"),
		NextField: bind(locale, "keys.field", "ctrl+n"),
		PrevField: key.NewBinding(key.WithKeys("ctrl+p")),

		Up:      bind(locale, "keys.move", "up", "k"),
		Down:    key.NewBinding(key.WithKeys("down", "j")),
		Left:    bind(locale, "keys.cycle", "left", "h"),
		Right:   key.NewBinding(key.WithKeys("right", "l")),
		Toggle:  bind(locale, "keys.toggle", " "),
		Edit:    bind(locale, "keys.edit", "e"),
		Delete:  bind(locale, "keys.delete", "d"),
		Filter:  bind(locale, "keys.filter", "o", "p", "s"),
		Reset:   bind(locale, "keys.reset", "x"),
		Expand:  bind(locale, "keys.expand", "enter"),
		Search:  bind(locale, "keys.search", "/"),
		Confirm: bind(locale, "keys.confirm", "y"),
		Cancel:  key.NewBinding(key.WithKeys("n", "esc")),
		Save:    bind(locale, "keys.save", "enter"),
	}
}

// pageHelp 实现 help.KeyMap，按页面返回提示
// pageHelp implements help.KeyMap for one page
type pageHelp []key.Binding

func (h pageHelp) ShortHelp() []key.Binding { return h }

func (h pageHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

func (k KeyMap) uploadHelp() pageHelp {
	return pageHelp{k.Submit, k.Sample, k.Clear, k.Import, k.NextField, k.NextPage, k.Quit}
}

func (k KeyMap) actionsHelp(confirming, editing bool) pageHelp {
	switch {
	case confirming:
		return pageHelp{k.Confirm}
	case editing:
		return pageHelp{k.Save, k.Left}
	}
	return pageHelp{k.Up, k.Toggle, k.Edit, k.Delete, k.Filter, k.Reset, k.NextPage, k.Quit}
}

func (k KeyMap) historyHelp() pageHelp {
	return pageHelp{k.Up, k.Expand, k.Search, k.NextPage, k.Quit}
}
