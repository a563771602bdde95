package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"meetingmind/internal/history"
	"meetingmind/internal/i18n"
	"meetingmind/internal/meeting"
)

// historyPage 历史页的搜索框、光标与滚动视图
// historyPage holds the history search box, cursor and scroll view
type historyPage struct {
	search    textinput.Model
	searching bool
	cursor    int
	view      viewport.Model
	width     int

	// 摘要渲染缓存 / rendered summary cache
	rendered map[string]string
}

func newHistoryPage(locale *i18n.I18n) historyPage {
	search := textinput.New()
	search.Placeholder = locale.T("history.search")
	search.Prompt = "/ "
	return historyPage{
		search:   search,
		view:     viewport.New(80, 10),
		width:    80,
		rendered: map[string]string{},
	}
}

func (p *historyPage) resize(width, height int) {
	p.width = width
	p.search.Width = width - 4
	h := height - 4
	if h < 3 {
		h = 3
	}
	p.view.Width = width
	p.view.Height = h
	clear(p.rendered)
}

func (p *historyPage) clamp(n int) {
	if p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (a App) updateHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.history.searching {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			a.history.searching = false
			a.history.search.Blur()
			return a, nil
		}
		before := a.history.search.Value()
		var cmd tea.Cmd
		a.history.search, cmd = a.history.search.Update(msg)
		after := a.history.search.Value()
		if after == before {
			return a, cmd
		}
		a.history.cursor = 0
		page, ctx := a.page, a.ctx
		return a, tea.Batch(cmd, func() tea.Msg {
			return loadedMsg{page: PageHistory, err: page.SetSearch(ctx, after)}
		})
	}

	snap := a.page.Snapshot()
	switch {
	case key.Matches(msg, a.keys.Search):
		a.history.searching = true
		return a, a.history.search.Focus()
	case key.Matches(msg, a.keys.Up):
		a.history.cursor--
		a.history.clamp(snap.Count())
	case key.Matches(msg, a.keys.Down):
		a.history.cursor++
		a.history.clamp(snap.Count())
	case key.Matches(msg, a.keys.Expand):
		if a.history.cursor < snap.Count() {
			a.page.Toggle(snap.Cards[a.history.cursor].ID)
		}
	}
	return a, nil
}

func (a App) viewHistory() string {
	snap := a.page.Snapshot()
	t := a.theme

	header := []string{
		t.TitleStyle.Render(a.locale.T("history.heading")) + "  " + t.MutedStyle.Render(a.locale.T("history.count", snap.Count())),
		t.MutedStyle.Render(a.locale.T("history.subheading")),
		a.history.search.View(),
		"",
	}

	switch {
	case snap.Loading && !snap.Loaded:
		return strings.Join(append(header, a.spin.View()+" "+a.locale.T("status.loading")), "\n")
	case snap.Count() == 0:
		return strings.Join(append(header,
			t.MutedStyle.Render(a.locale.T("history.empty")),
			t.MutedStyle.Render(a.locale.T("history.empty_hint"))), "\n")
	}

	var lines []string
	cursorLine := 0
	for i, card := range snap.Cards {
		if i == a.history.cursor {
			cursorLine = len(lines)
		}
		lines = append(lines, a.renderCard(i, card)...)
	}

	view := a.history.view
	view.SetContent(strings.Join(lines, "\n"))
	if cursorLine < view.YOffset || cursorLine >= view.YOffset+view.Height {
		view.SetYOffset(cursorLine)
	}
	return strings.Join(append(header, view.View()), "\n")
}

func (a App) renderCard(i int, card history.Card) []string {
	t := a.theme
	m := card.Meeting

	title := m.Title
	if card.Highlighted {
		title = t.HighlightStyle.Render("★ " + title)
	}
	head := []string{title, t.MutedStyle.Render(string(m.MeetingType)), t.MutedStyle.Render(m.CreatedDate())}
	if m.IsPending() {
		head = append(head, t.Badge(a.locale.T("history.pending"), t.Warning))
	} else {
		head = append(head,
			t.Badge(string(m.Sentiment), t.SentimentColor(m.Sentiment)),
			t.MutedStyle.Render(a.locale.T("history.action_count", len(card.Actions))))
	}
	prefix := "  "
	if i == a.history.cursor {
		prefix = t.SelectedStyle.Render("› ")
	}
	lines := []string{prefix + strings.Join(head, " ")}

	if !card.Expanded || m.IsPending() {
		return lines
	}

	width := a.history.width - 6
	section := func(label, body string) {
		if strings.TrimSpace(body) == "" {
			return
		}
		lines = append(lines, "    "+t.TitleStyle.Render(label))
		for _, l := range strings.Split(body, "\n") {
			lines = append(lines, "    "+l)
		}
	}

	section(a.locale.T("history.participants"), strings.Join(m.Participants, ", "))
	section(a.locale.T("history.summary"), a.summary(m, width))
	section(a.locale.T("history.decisions"), RenderBullets(m.KeyDecisions, width))
	section(a.locale.T("history.topics"), strings.Join(m.TopicsDiscussed, " · "))

	lines = append(lines, "    "+t.TitleStyle.Render(a.locale.T("history.action_items")))
	if len(card.Actions) == 0 {
		lines = append(lines, "    "+t.MutedStyle.Render(a.locale.T("history.no_actions")))
	}
	for _, act := range card.Actions {
		lines = append(lines, "    "+RenderActionLine(act, t, a.locale.T("actions.unassigned")))
	}
	return lines
}

// summary 渲染并缓存 AI 摘要
// summary renders the AI summary, caching it per meeting
func (a App) summary(m meeting.Meeting, width int) string {
	k := fmt.Sprintf("%s:%d:%d", m.ID, width, len(m.AISummary))
	if s, ok := a.history.rendered[k]; ok {
		return s
	}
	s := RenderMarkdown(m.AISummary, width)
	a.history.rendered[k] = s
	return s
}
