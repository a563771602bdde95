package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"meetingmind/internal/dashboard"
	"meetingmind/internal/history"
	"meetingmind/internal/i18n"
	"meetingmind/internal/notify"
	"meetingmind/internal/upload"
)

// PageID 页面标识
// PageID identifies a page
type PageID int

const (
	PageUpload PageID = iota
	PageActions
	PageHistory
)

const pageCount = 3

// ParsePage 解析 -page 参数
// ParsePage parses the -page flag value
func ParsePage(s string) (PageID, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "upload", "new":
		return PageUpload, true
	case "actions", "dashboard":
		return PageActions, true
	case "history", "meetings":
		return PageHistory, true
	}
	return PageUpload, false
}

// --- Tea Messages ---

// loadedMsg 页面数据加载完成
// loadedMsg reports that a page fetch finished
type loadedMsg struct {
	page PageID
	err  error
}

// mutationDoneMsg 行动项更新或删除完成
// mutationDoneMsg reports a finished action item update or delete
type mutationDoneMsg struct{ err error }

// submitDoneMsg 会议提交完成
// submitDoneMsg reports a settled submission
type submitDoneMsg struct {
	res upload.Result
	err error
}

// importDoneMsg 文件导入完成
// importDoneMsg reports a finished file import
type importDoneMsg struct{ err error }

// redirectMsg 跳转到历史页并高亮会议
// redirectMsg opens history with a meeting highlighted
type redirectMsg struct{ meetingID string }

// toastExpiredMsg 提示到期
// toastExpiredMsg fires when a toast's display time is over
type toastExpiredMsg struct {
	page PageID
	id   uint64
}

// draftSaveMsg 草稿自动保存
// draftSaveMsg triggers a debounced draft save
type draftSaveMsg struct{ seq int }

// Options 构造 App 所需的页面服务
// Options carries the page services the App drives
type Options struct {
	Upload  *upload.Flow
	Actions *dashboard.Board
	History *history.Page
	Locale  *i18n.I18n
	// Page is the page shown first.
	Page PageID
	// Highlight pre-expands a meeting on the history page.
	Highlight string
	// APIURL is shown in the status bar.
	APIURL  string
	Context context.Context
}

// App Bubble Tea 主 Model
// App is the main Bubble Tea model
type App struct {
	// 布局 / Layout
	width  int
	height int

	// 页面 / Pages
	active  PageID
	upload  uploadPage
	actions actionsPage
	history historyPage

	// 服务 / Services
	flow  *upload.Flow
	board *dashboard.Board
	page  *history.Page

	spin spinner.Model
	help help.Model

	// 配置 / Config
	ctx    context.Context
	apiURL string
	theme  Theme
	keys   KeyMap
	locale *i18n.I18n
}

// NewApp 创建 TUI 应用
// NewApp creates a new TUI application
func NewApp(opts Options) App {
	if opts.Locale == nil {
		opts.Locale = i18n.Global()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Highlight != "" {
		opts.History.Highlight(opts.Highlight)
		opts.Page = PageHistory
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	theme := DarkTheme()
	sp.Style = lipgloss.NewStyle().Foreground(theme.Secondary)

	app := App{
		active:  opts.Page,
		upload:  newUploadPage(opts.Locale),
		actions: newActionsPage(),
		history: newHistoryPage(opts.Locale),
		flow:    opts.Upload,
		board:   opts.Actions,
		page:    opts.History,
		spin:    sp,
		help:    help.New(),
		ctx:     opts.Context,
		apiURL:  opts.APIURL,
		theme:   theme,
		keys:    DefaultKeyMap(opts.Locale),
		locale:  opts.Locale,
	}
	if restored, _ := app.flow.RestoreDraft(); restored {
		app.upload.load(app.flow.Snapshot().Form)
	}
	return app
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, a.mount(a.active), a.toastCmd(PageUpload))
}

// mount 进入页面时加载数据
// mount loads a page's data when it is shown
func (a App) mount(p PageID) tea.Cmd {
	switch p {
	case PageActions:
		return a.reloadActions()
	case PageHistory:
		return a.reloadHistory()
	}
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.relayout()
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		if !a.capturesTab() {
			switch {
			case key.Matches(msg, a.keys.NextPage):
				return a.switchTo((a.active + 1) % pageCount)
			case key.Matches(msg, a.keys.PrevPage):
				return a.switchTo((a.active + pageCount - 1) % pageCount)
			}
		}
		switch a.active {
		case PageUpload:
			return a.updateUploadKeys(msg)
		case PageActions:
			return a.updateActionsKeys(msg)
		case PageHistory:
			return a.updateHistoryKeys(msg)
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case loadedMsg:
		if msg.page == PageActions {
			a.actions.clamp(len(a.board.Snapshot().Rows))
		} else {
			a.history.clamp(a.page.Snapshot().Count())
		}
		return a, a.toastCmd(msg.page)

	case mutationDoneMsg:
		a.actions.clamp(len(a.board.Snapshot().Rows))
		return a, a.toastCmd(PageActions)

	case importDoneMsg:
		a.upload.load(a.flow.Snapshot().Form)
		return a, tea.Batch(a.toastCmd(PageUpload), a.scheduleDraftSave())

	case submitDoneMsg:
		cmds := []tea.Cmd{a.toastCmd(PageUpload)}
		if msg.err == nil {
			id := msg.res.MeetingID
			cmds = append(cmds, tea.Tick(msg.res.RedirectAfter, func(time.Time) tea.Msg {
				return redirectMsg{meetingID: id}
			}))
		}
		return a, tea.Batch(cmds...)

	case redirectMsg:
		a.page.Highlight(msg.meetingID)
		a.flow.Reset()
		a.upload.draftSeq++
		if err := a.flow.SaveDraft(); err != nil {
			a.flow.Toasts().Error(err.Error())
		}
		a.upload.load(a.flow.Snapshot().Form)
		a.active = PageHistory
		return a, a.reloadHistory()

	case toastExpiredMsg:
		a.toasts(msg.page).Dismiss(msg.id)
		return a, nil

	case draftSaveMsg:
		phase := a.flow.Snapshot().Phase
		if msg.seq == a.upload.draftSeq && !phase.Busy() && !phase.Settled() {
			_ = a.flow.SaveDraft()
		}
		return a, nil
	}
	return a, nil
}

// capturesTab 输入模式下 tab 不切换页面
// capturesTab reports whether a page is in a mode that owns the tab key
func (a App) capturesTab() bool {
	switch a.active {
	case PageUpload:
		return a.upload.importing
	case PageActions:
		return a.actions.editingID != ""
	case PageHistory:
		return a.history.searching
	}
	return false
}

func (a App) switchTo(p PageID) (tea.Model, tea.Cmd) {
	a.active = p
	if p == PageHistory {
		a.page.ClearHighlight()
	}
	return a, a.mount(p)
}

func (a App) toasts(p PageID) *notify.Center {
	switch p {
	case PageActions:
		return a.board.Toasts()
	case PageHistory:
		return a.page.Toasts()
	}
	return a.flow.Toasts()
}

// toastCmd 为当前提示安排到期消息
// toastCmd schedules the expiry of the page's visible toast
func (a App) toastCmd(p PageID) tea.Cmd {
	t, ok := a.toasts(p).Current()
	if !ok {
		return nil
	}
	wait := time.Until(t.Expires)
	if wait < 0 {
		wait = 0
	}
	return tea.Tick(wait, func(time.Time) tea.Msg {
		return toastExpiredMsg{page: p, id: t.ID}
	})
}

func (a App) reloadActions() tea.Cmd {
	board, ctx := a.board, a.ctx
	return func() tea.Msg {
		return loadedMsg{page: PageActions, err: board.Reload(ctx)}
	}
}

func (a App) reloadHistory() tea.Cmd {
	page, ctx := a.page, a.ctx
	return func() tea.Msg {
		return loadedMsg{page: PageHistory, err: page.Reload(ctx)}
	}
}

func (a *App) relayout() {
	a.upload.resize(a.width)
	a.history.resize(a.width, a.bodyHeight())
	a.help.Width = a.width
}

func (a App) bodyHeight() int {
	h := a.height - 5
	if h < 3 {
		h = 3
	}
	return h
}

func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Initializing..."
	}

	var body string
	var keys pageHelp
	switch a.active {
	case PageUpload:
		body = a.viewUpload()
		keys = a.keys.uploadHelp()
	case PageActions:
		body = a.viewActions()
		snap := a.board.Snapshot()
		keys = a.keys.actionsHelp(snap.PendingDelete != "", a.actions.editingID != "")
	case PageHistory:
		body = a.viewHistory()
		keys = a.keys.historyHelp()
	}

	body = lipgloss.NewStyle().Width(a.width).Height(a.bodyHeight()).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderTabs(),
		body,
		a.renderToast(),
		a.help.View(keys),
		a.renderStatusBar(a.width),
	)
}

// --- 渲染方法 / Render methods ---

func (a App) renderTabs() string {
	tabs := []struct {
		id   PageID
		name string
	}{
		{PageUpload, a.locale.T("tab.upload")},
		{PageActions, a.locale.T("tab.actions")},
		{PageHistory, a.locale.T("tab.history")},
	}

	var parts []string
	for _, tab := range tabs {
		style := a.theme.InactiveTabStyle
		if tab.id == a.active {
			style = a.theme.ActiveTabStyle
		}
		parts = append(parts, style.Render(tab.name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a App) renderToast() string {
	t, ok := a.toasts(a.active).Current()
	if !ok {
		return ""
	}
	if t.Kind == notify.KindError {
		return a.theme.ErrorStyle.Render("✗ " + t.Text)
	}
	return a.theme.SuccessStyle.Render("✓ " + t.Text)
}

func (a App) busy() bool {
	switch a.active {
	case PageUpload:
		return a.flow.Snapshot().Phase.Busy()
	case PageActions:
		return a.board.Snapshot().Loading
	case PageHistory:
		return a.page.Snapshot().Loading
	}
	return false
}

func (a App) renderStatusBar(width int) string {
	status := a.locale.T("status.ready")
	if a.busy() {
		status = a.spin.View() + " " + a.locale.T("status.loading")
	}

	left := fmt.Sprintf(" MeetingMind · %s", status)
	right := fmt.Sprintf("%s %s  ", a.locale.T("status.api"), a.apiURL)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return a.theme.StatusBarStyle.Width(width).Render(bar)
}

// Run 启动 Bubble Tea TUI
// Run starts the Bubble Tea TUI application
func Run(opts Options) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(app.ctx))
	_, err := p.Run()
	return err
}
