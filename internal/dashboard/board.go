// Package dashboard holds the action-items page: filters, statistics,
// inline edits, completion toggles and confirmed deletes.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"meetingmind/internal/api"
	"meetingmind/internal/fetch"
	"meetingmind/internal/i18n"
	"meetingmind/internal/meeting"
	"meetingmind/internal/notify"
)

// Service is the part of the API the dashboard calls.
type Service interface {
	ListActions(ctx context.Context, f meeting.ActionFilter) ([]meeting.ActionItem, error)
	UpdateAction(ctx context.Context, id string, patch meeting.ActionPatch) (meeting.ActionItem, error)
	DeleteAction(ctx context.Context, id string) error
}

type Options struct {
	Service Service
	Toasts  *notify.Center
	Locale  *i18n.I18n
	Logger  zerolog.Logger
	// Now defaults to time.Now; overdue is evaluated against it.
	Now func() time.Time
	// Parent bounds the lifetime of page fetches.
	Parent context.Context
}

// Row is one rendered action item.
type Row struct {
	meeting.ActionItem
	Overdue bool
	Editing bool
	Draft   meeting.Draft
}

// Snapshot is a consistent copy of the page state for rendering.
type Snapshot struct {
	Filter        meeting.ActionFilter
	Rows          []Row
	Stats         meeting.Stats
	Owners        []string
	Loading       bool
	Loaded        bool
	PendingDelete string
}

// Board 行动项看板状态
// Board is the action-items page state
type Board struct {
	mu     sync.Mutex
	opts   Options
	loader *fetch.Loader

	filter        meeting.ActionFilter
	items         []meeting.ActionItem
	loading       bool
	loaded        bool
	drafts        map[string]meeting.Draft
	pendingDelete string
}

func New(opts Options) *Board {
	if opts.Toasts == nil {
		opts.Toasts = notify.NewCenter(3 * time.Second)
	}
	if opts.Locale == nil {
		opts.Locale = i18n.New("en")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Board{
		opts:   opts,
		loader: fetch.NewLoader(opts.Parent),
		drafts: map[string]meeting.Draft{},
	}
}

// Toasts returns the page's notification channel.
func (b *Board) Toasts() *notify.Center {
	return b.opts.Toasts
}

// Close cancels the fetch in flight. Later results are dropped.
func (b *Board) Close() {
	b.loader.Close()
}

func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.opts.Now()
	rows := make([]Row, 0, len(b.items))
	for _, a := range b.items {
		d, editing := b.drafts[a.ID]
		rows = append(rows, Row{
			ActionItem: a,
			Overdue:    a.IsOverdue(now),
			Editing:    editing,
			Draft:      d,
		})
	}
	return Snapshot{
		Filter:        b.filter,
		Rows:          rows,
		Stats:         meeting.ComputeStats(b.items, now),
		Owners:        meeting.OwnerOptions(b.items),
		Loading:       b.loading,
		Loaded:        b.loaded,
		PendingDelete: b.pendingDelete,
	}
}

// Reload fetches the list for the current filter and replaces it. A result
// overtaken by a newer reload is discarded and reported as nil.
func (b *Board) Reload(ctx context.Context) error {
	b.mu.Lock()
	filter := b.filter
	b.loading = true
	b.mu.Unlock()

	items, err := fetch.Do(ctx, b.loader, func(ctx context.Context) ([]meeting.ActionItem, error) {
		return b.opts.Service.ListActions(ctx, filter)
	})
	if fetch.IsSuperseded(err) {
		return nil
	}

	b.mu.Lock()
	b.loading = false
	if err == nil {
		b.items = items
		b.loaded = true
		b.pruneLocked()
	}
	b.mu.Unlock()

	if err != nil {
		b.opts.Logger.Warn().Err(err).Msg("load action items")
		b.opts.Toasts.Error(api.Message(err))
		return err
	}
	return nil
}

// pruneLocked drops edit state for rows no longer listed.
func (b *Board) pruneLocked() {
	present := make(map[string]struct{}, len(b.items))
	for _, a := range b.items {
		present[a.ID] = struct{}{}
	}
	for id := range b.drafts {
		if _, ok := present[id]; !ok {
			delete(b.drafts, id)
		}
	}
	if _, ok := present[b.pendingDelete]; !ok {
		b.pendingDelete = ""
	}
}

// Filter returns the active filter set.
func (b *Board) Filter() meeting.ActionFilter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

// SetFilter replaces the filter set and reloads when it changed.
func (b *Board) SetFilter(ctx context.Context, f meeting.ActionFilter) error {
	b.mu.Lock()
	changed := f != b.filter
	b.filter = f
	b.mu.Unlock()
	if !changed {
		return nil
	}
	return b.Reload(ctx)
}

// ResetFilters clears every filter.
func (b *Board) ResetFilters(ctx context.Context) error {
	return b.SetFilter(ctx, meeting.ActionFilter{})
}

func (b *Board) item(id string) (meeting.ActionItem, bool) {
	for _, a := range b.items {
		if a.ID == id {
			return a, true
		}
	}
	return meeting.ActionItem{}, false
}

// BeginEdit opens edit mode for id, seeding the draft from the row.
func (b *Board) BeginEdit(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.item(id)
	if !ok {
		return false
	}
	b.drafts[id] = meeting.DraftFrom(a)
	return true
}

// EditDraft changes the draft of a row in edit mode.
func (b *Board) EditDraft(id string, fn func(*meeting.Draft)) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, ok := b.drafts[id]
	if !ok {
		return false
	}
	fn(&d)
	b.drafts[id] = d
	return true
}

// CancelEdit leaves edit mode without saving.
func (b *Board) CancelEdit(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.drafts, id)
}

// SaveEdit sends the draft's four fields, leaves edit mode and reloads the
// list. Nothing is merged locally.
func (b *Board) SaveEdit(ctx context.Context, id string) error {
	b.mu.Lock()
	d, ok := b.drafts[id]
	delete(b.drafts, id)
	b.mu.Unlock()
	if !ok {
		return nil
	}
	return b.update(ctx, id, d.Patch())
}

// ToggleDone flips the row between Done and Pending with a status-only
// update. Other rows keep their edit state.
func (b *Board) ToggleDone(ctx context.Context, id string) error {
	b.mu.Lock()
	a, ok := b.item(id)
	b.mu.Unlock()
	if !ok {
		return nil
	}
	return b.update(ctx, id, meeting.StatusPatch(a.Status.Toggled()))
}

func (b *Board) update(ctx context.Context, id string, patch meeting.ActionPatch) error {
	if _, err := b.opts.Service.UpdateAction(ctx, id, patch); err != nil {
		b.opts.Logger.Warn().Err(err).Str("action_id", id).Msg("update action item")
		b.opts.Toasts.Error(api.Message(err))
		return err
	}
	b.opts.Toasts.Success(b.opts.Locale.T("actions.updated"))
	return b.Reload(ctx)
}

// RequestDelete asks for confirmation before deleting id.
func (b *Board) RequestDelete(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.item(id); !ok {
		return false
	}
	b.pendingDelete = id
	return true
}

// CancelDelete drops a pending confirmation.
func (b *Board) CancelDelete() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pendingDelete = ""
}

// ConfirmDelete deletes the pending row. Only after the server agrees is the
// row removed locally; the list is not refetched.
func (b *Board) ConfirmDelete(ctx context.Context) error {
	b.mu.Lock()
	id := b.pendingDelete
	b.pendingDelete = ""
	b.mu.Unlock()
	if id == "" {
		return nil
	}

	if err := b.opts.Service.DeleteAction(ctx, id); err != nil {
		b.opts.Logger.Warn().Err(err).Str("action_id", id).Msg("delete action item")
		b.opts.Toasts.Error(api.Message(err))
		return err
	}

	b.mu.Lock()
	b.items = meeting.RemoveAction(b.items, id)
	delete(b.drafts, id)
	b.mu.Unlock()
	b.opts.Toasts.Success(b.opts.Locale.T("actions.deleted"))
	return nil
}
