// Package history holds the meetings page: server-side search, one expanded
// card at a time and each meeting's action items.
package history

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"meetingmind/internal/api"
	"meetingmind/internal/fetch"
	"meetingmind/internal/meeting"
	"meetingmind/internal/notify"
)

// Service is the part of the API the page calls.
type Service interface {
	ListMeetings(ctx context.Context, search string) ([]meeting.Meeting, error)
	ListActions(ctx context.Context, f meeting.ActionFilter) ([]meeting.ActionItem, error)
}

type Options struct {
	Service Service
	Toasts  *notify.Center
	Logger  zerolog.Logger
	Parent  context.Context
}

// Card is one meeting with the action items that belong to it.
type Card struct {
	meeting.Meeting
	Actions     []meeting.ActionItem
	Expanded    bool
	Highlighted bool
}

// Snapshot is a consistent copy of the page state for rendering.
type Snapshot struct {
	Search   string
	Cards    []Card
	Expanded string
	Loading  bool
	Loaded   bool
}

// Count is the number of meetings currently listed.
func (s Snapshot) Count() int {
	return len(s.Cards)
}

type result struct {
	meetings []meeting.Meeting
	actions  []meeting.ActionItem
}

// Page 会议历史页状态
// Page is the meeting history page state
type Page struct {
	mu     sync.Mutex
	opts   Options
	loader *fetch.Loader

	search    string
	meetings  []meeting.Meeting
	actions   []meeting.ActionItem
	expanded  string
	highlight string
	loading   bool
	loaded    bool
}

func New(opts Options) *Page {
	if opts.Toasts == nil {
		opts.Toasts = notify.NewCenter(notify.DefaultTTL)
	}
	return &Page{opts: opts, loader: fetch.NewLoader(opts.Parent)}
}

// Toasts returns the page's notification channel.
func (p *Page) Toasts() *notify.Center {
	return p.opts.Toasts
}

// Close cancels the fetch in flight.
func (p *Page) Close() {
	p.loader.Close()
}

// Highlight marks id as just created. After every load the highlighted
// meeting becomes the expanded one.
func (p *Page) Highlight(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.highlight = id
	if id != "" {
		p.expanded = id
	}
}

// ClearHighlight drops the highlighted meeting, collapsing it if it is the
// expanded one. Opening the page without a target calls it.
func (p *Page) ClearHighlight() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.highlight != "" && p.expanded == p.highlight {
		p.expanded = ""
	}
	p.highlight = ""
}

// Search returns the current search text.
func (p *Page) Search() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.search
}

// SetSearch changes the search text and reloads when it changed.
func (p *Page) SetSearch(ctx context.Context, search string) error {
	p.mu.Lock()
	changed := search != p.search
	p.search = search
	p.mu.Unlock()
	if !changed {
		return nil
	}
	return p.Reload(ctx)
}

// Reload fetches meetings and all action items concurrently. The page
// changes only when both succeed; a result overtaken by a newer reload is
// discarded.
func (p *Page) Reload(ctx context.Context) error {
	p.mu.Lock()
	search := p.search
	p.loading = true
	p.mu.Unlock()

	res, err := fetch.Do(ctx, p.loader, func(ctx context.Context) (result, error) {
		var r result
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			ms, err := p.opts.Service.ListMeetings(ctx, search)
			r.meetings = ms
			return err
		})
		g.Go(func() error {
			as, err := p.opts.Service.ListActions(ctx, meeting.ActionFilter{})
			r.actions = as
			return err
		})
		return r, g.Wait()
	})
	if fetch.IsSuperseded(err) {
		return nil
	}

	p.mu.Lock()
	p.loading = false
	if err == nil {
		p.meetings = res.meetings
		p.actions = res.actions
		p.loaded = true
		if p.highlight != "" {
			p.expanded = p.highlight
		}
	}
	p.mu.Unlock()

	if err != nil {
		p.opts.Logger.Warn().Err(err).Str("search", search).Msg("load meeting history")
		p.opts.Toasts.Error(api.Message(err))
		return err
	}
	return nil
}

// Toggle expands id, or collapses it when it is already expanded. At most
// one card is expanded.
func (p *Page) Toggle(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.expanded == id {
		p.expanded = ""
		return
	}
	p.expanded = id
}

func (p *Page) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	cards := make([]Card, 0, len(p.meetings))
	for _, m := range p.meetings {
		cards = append(cards, Card{
			Meeting:     m,
			Actions:     meeting.ActionsFor(m.ID, p.actions),
			Expanded:    m.ID == p.expanded,
			Highlighted: m.ID == p.highlight,
		})
	}
	return Snapshot{
		Search:   p.search,
		Cards:    cards,
		Expanded: p.expanded,
		Loading:  p.loading,
		Loaded:   p.loaded,
	}
}
