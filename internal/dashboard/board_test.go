package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingmind/internal/api"
	"meetingmind/internal/i18n"
	"meetingmind/internal/meeting"
	"meetingmind/internal/notify"
)

type fakeService struct {
	mu        sync.Mutex
	items     []meeting.ActionItem
	lists     []meeting.ActionFilter
	patches   map[string][]meeting.ActionPatch
	deletes   []string
	listErr   error
	updateErr error
	deleteErr error
	// block, when set, holds ListActions until it is closed or ctx ends.
	block chan struct{}
}

func newFake(items ...meeting.ActionItem) *fakeService {
	return &fakeService{items: items, patches: map[string][]meeting.ActionPatch{}}
}

func (f *fakeService) ListActions(ctx context.Context, filter meeting.ActionFilter) ([]meeting.ActionItem, error) {
	f.mu.Lock()
	f.lists = append(f.lists, filter)
	block, err := f.block, f.listErr
	f.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []meeting.ActionItem
	for _, a := range f.items {
		if filter.Matches(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeService) UpdateAction(_ context.Context, id string, patch meeting.ActionPatch) (meeting.ActionItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches[id] = append(f.patches[id], patch)
	if f.updateErr != nil {
		return meeting.ActionItem{}, f.updateErr
	}
	for i, a := range f.items {
		if a.ID != id {
			continue
		}
		if patch.Owner != nil {
			a.Owner = *patch.Owner
		}
		if patch.DueDate != nil {
			a.DueDate = *patch.DueDate
		}
		if patch.Priority != nil {
			a.Priority = *patch.Priority
		}
		if patch.Status != nil {
			a.Status = *patch.Status
		}
		f.items[i] = a
		return a, nil
	}
	return meeting.ActionItem{}, &api.Error{Status: 404, Message: "Not found"}
}

func (f *fakeService) DeleteAction(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.items = meeting.RemoveAction(f.items, id)
	return nil
}

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func sampleItems() []meeting.ActionItem {
	return []meeting.ActionItem{
		{ID: "a1", MeetingID: "m1", Title: "Draft plan", Owner: "Alice", Priority: meeting.PriorityHigh, Status: meeting.ActionPending, DueDate: "2026-03-01"},
		{ID: "a2", MeetingID: "m1", Title: "Review PR", Owner: "Bob", Priority: meeting.PriorityHigh, Status: meeting.ActionInProgress},
		{ID: "a3", MeetingID: "m2", Title: "Book room", Owner: "Alice", Priority: meeting.PriorityLow, Status: meeting.ActionDone, DueDate: "2026-02-01"},
		{ID: "a4", MeetingID: "m2", Title: "Send notes", Priority: meeting.PriorityMedium, Status: meeting.ActionPending},
	}
}

func newBoard(svc Service) *Board {
	return New(Options{
		Service: svc,
		Toasts:  notify.NewCenter(3 * time.Second),
		Locale:  i18n.New("en"),
		Logger:  zerolog.Nop(),
		Now:     func() time.Time { return fixedNow },
	})
}

func ids(s Snapshot) []string {
	out := make([]string, 0, len(s.Rows))
	for _, r := range s.Rows {
		out = append(out, r.ID)
	}
	return out
}

func TestReloadComputesStats(t *testing.T) {
	b := newBoard(newFake(sampleItems()...))
	defer b.Close()
	require.NoError(t, b.Reload(context.Background()))

	s := b.Snapshot()
	assert.True(t, s.Loaded)
	assert.False(t, s.Loading)
	assert.Equal(t, meeting.Stats{Total: 4, Done: 1, HighOpen: 2, Overdue: 1}, s.Stats)
	assert.Equal(t, []string{"Alice", "Bob"}, s.Owners)
	assert.True(t, s.Rows[0].Overdue)
	assert.False(t, s.Rows[2].Overdue, "done items are never overdue")
}

func TestFiltersAreConjunctive(t *testing.T) {
	svc := newFake(sampleItems()...)
	b := newBoard(svc)
	defer b.Close()
	ctx := context.Background()

	require.NoError(t, b.SetFilter(ctx, meeting.ActionFilter{Owner: "Alice"}))
	assert.Equal(t, []string{"a1", "a3"}, ids(b.Snapshot()))

	require.NoError(t, b.SetFilter(ctx, meeting.ActionFilter{Owner: "Alice", Priority: meeting.PriorityHigh}))
	s := b.Snapshot()
	assert.Equal(t, []string{"a1"}, ids(s))
	assert.Equal(t, []string{"Alice"}, s.Owners)

	require.NoError(t, b.ResetFilters(ctx))
	assert.Len(t, b.Snapshot().Rows, 4)
	assert.True(t, b.Filter().IsZero())
	assert.Len(t, svc.lists, 3)
}

func TestSetFilterUnchangedSkipsReload(t *testing.T) {
	svc := newFake(sampleItems()...)
	b := newBoard(svc)
	defer b.Close()
	require.NoError(t, b.SetFilter(context.Background(), meeting.ActionFilter{}))
	assert.Empty(t, svc.lists)
}

func TestToggleTwiceRestoresPending(t *testing.T) {
	svc := newFake(sampleItems()...)
	b := newBoard(svc)
	defer b.Close()
	ctx := context.Background()
	require.NoError(t, b.Reload(ctx))

	require.NoError(t, b.ToggleDone(ctx, "a1"))
	assert.Equal(t, meeting.ActionDone, b.Snapshot().Rows[0].Status)
	toast, ok := b.Toasts().Current()
	require.True(t, ok)
	assert.Equal(t, "Updated", toast.Text)

	require.NoError(t, b.ToggleDone(ctx, "a1"))
	assert.Equal(t, meeting.ActionPending, b.Snapshot().Rows[0].Status)

	require.Len(t, svc.patches["a1"], 2)
	for _, p := range svc.patches["a1"] {
		assert.Nil(t, p.Owner)
		assert.Nil(t, p.Priority)
		require.NotNil(t, p.Status)
	}
}

func TestToggleInProgressBecomesDone(t *testing.T) {
	svc := newFake(sampleItems()...)
	b := newBoard(svc)
	defer b.Close()
	ctx := context.Background()
	require.NoError(t, b.Reload(ctx))
	require.NoError(t, b.ToggleDone(ctx, "a2"))
	assert.Equal(t, meeting.ActionDone, *svc.patches["a2"][0].Status)
}

func TestSaveEditSendsDraftAndLeavesEditMode(t *testing.T) {
	svc := newFake(sampleItems()...)
	b := newBoard(svc)
	defer b.Close()
	ctx := context.Background()
	require.NoError(t, b.Reload(ctx))

	require.True(t, b.BeginEdit("a2"))
	require.True(t, b.BeginEdit("a4"))
	require.True(t, b.EditDraft("a2", func(d *meeting.Draft) {
		d.Owner = "Carol"
		d.Priority = meeting.PriorityLow
	}))
	require.NoError(t, b.SaveEdit(ctx, "a2"))

	s := b.Snapshot()
	assert.False(t, s.Rows[1].Editing)
	assert.Equal(t, "Carol", s.Rows[1].Owner)
	assert.True(t, s.Rows[3].Editing, "other rows keep edit mode")

	p := svc.patches["a2"][0]
	require.NotNil(t, p.Owner)
	assert.Equal(t, "Carol", *p.Owner)
	assert.Equal(t, meeting.PriorityLow, *p.Priority)
	assert.Equal(t, meeting.ActionInProgress, *p.Status)
	assert.Equal(t, "", *p.DueDate)
}

func TestFailedUpdateKeepsList(t *testing.T) {
	svc := newFake(sampleItems()...)
	b := newBoard(svc)
	defer b.Close()
	ctx := context.Background()
	require.NoError(t, b.Reload(ctx))

	svc.updateErr = &api.Error{Status: 500, Message: "Request failed with status code 500"}
	require.True(t, b.BeginEdit("a1"))
	err := b.SaveEdit(ctx, "a1")
	require.Error(t, err)

	s := b.Snapshot()
	assert.Len(t, s.Rows, 4)
	assert.False(t, s.Rows[0].Editing, "edit mode closes after a failed save")
	assert.Equal(t, "Alice", s.Rows[0].Owner)
	toast, ok := b.Toasts().Current()
	require.True(t, ok)
	assert.Equal(t, notify.KindError, toast.Kind)
	assert.Equal(t, "Request failed with status code 500", toast.Text)
	assert.Len(t, svc.lists, 1, "no reload after failure")
}

func TestCancelEdit(t *testing.T) {
	b := newBoard(newFake(sampleItems()...))
	defer b.Close()
	require.NoError(t, b.Reload(context.Background()))
	require.True(t, b.BeginEdit("a1"))
	b.CancelEdit("a1")
	assert.False(t, b.Snapshot().Rows[0].Editing)
	assert.False(t, b.BeginEdit("missing"))
	assert.False(t, b.EditDraft("a1", func(*meeting.Draft) {}))
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	svc := newFake(sampleItems()...)
	b := newBoard(svc)
	defer b.Close()
	ctx := context.Background()
	require.NoError(t, b.Reload(ctx))

	require.True(t, b.RequestDelete("a2"))
	assert.Equal(t, "a2", b.Snapshot().PendingDelete)
	b.CancelDelete()
	require.NoError(t, b.ConfirmDelete(ctx))
	assert.Empty(t, svc.deletes)

	require.True(t, b.RequestDelete("a2"))
	require.NoError(t, b.ConfirmDelete(ctx))
	assert.Equal(t, []string{"a2"}, svc.deletes)
	assert.Equal(t, []string{"a1", "a3", "a4"}, ids(b.Snapshot()))
	assert.Len(t, svc.lists, 1, "delete does not refetch")
	toast, _ := b.Toasts().Current()
	assert.Equal(t, "Deleted", toast.Text)
}

func TestFailedDeleteKeepsRow(t *testing.T) {
	svc := newFake(sampleItems()...)
	svc.deleteErr = errors.New("network down")
	b := newBoard(svc)
	defer b.Close()
	ctx := context.Background()
	require.NoError(t, b.Reload(ctx))

	require.True(t, b.RequestDelete("a1"))
	require.Error(t, b.ConfirmDelete(ctx))
	assert.Len(t, b.Snapshot().Rows, 4)
	toast, _ := b.Toasts().Current()
	assert.Equal(t, "network down", toast.Text)
}

func TestFailedReloadKeepsPreviousItems(t *testing.T) {
	svc := newFake(sampleItems()...)
	b := newBoard(svc)
	defer b.Close()
	ctx := context.Background()
	require.NoError(t, b.Reload(ctx))

	svc.listErr = &api.Error{Message: "timeout of 60000ms exceeded"}
	require.Error(t, b.Reload(ctx))
	s := b.Snapshot()
	assert.Len(t, s.Rows, 4)
	assert.False(t, s.Loading)
	toast, _ := b.Toasts().Current()
	assert.Equal(t, "timeout of 60000ms exceeded", toast.Text)
}

func TestStaleReloadIsDropped(t *testing.T) {
	svc := newFake(sampleItems()...)
	svc.block = make(chan struct{})
	b := newBoard(svc)
	defer b.Close()
	ctx := context.Background()

	first := make(chan error, 1)
	go func() { first <- b.Reload(ctx) }()
	require.Eventually(t, func() bool {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		return len(svc.lists) == 1
	}, time.Second, time.Millisecond)

	svc.mu.Lock()
	svc.block = nil
	svc.mu.Unlock()
	require.NoError(t, b.SetFilter(ctx, meeting.ActionFilter{Owner: "Bob"}))
	require.NoError(t, <-first, "superseded reload reports nothing")

	assert.Equal(t, []string{"a2"}, ids(b.Snapshot()))
	_, ok := b.Toasts().Current()
	assert.False(t, ok)
}

func TestReloadPrunesDraftsForMissingRows(t *testing.T) {
	svc := newFake(sampleItems()...)
	b := newBoard(svc)
	defer b.Close()
	ctx := context.Background()
	require.NoError(t, b.Reload(ctx))
	require.True(t, b.BeginEdit("a1"))
	require.True(t, b.BeginEdit("a2"))

	require.NoError(t, b.SetFilter(ctx, meeting.ActionFilter{Owner: "Bob"}))
	require.NoError(t, b.ResetFilters(ctx))
	s := b.Snapshot()
	assert.False(t, s.Rows[0].Editing)
	assert.True(t, s.Rows[1].Editing)
}
