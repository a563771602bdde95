package history

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingmind/internal/meeting"
	"meetingmind/internal/notify"
)

type fakeService struct {
	mu         sync.Mutex
	meetings   []meeting.Meeting
	actions    []meeting.ActionItem
	searches   []string
	meetingErr error
	actionErr  error
	gate       chan struct{}
}

func (f *fakeService) ListMeetings(ctx context.Context, search string) ([]meeting.Meeting, error) {
	f.mu.Lock()
	f.searches = append(f.searches, search)
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.meetingErr != nil {
		return nil, f.meetingErr
	}
	if search == "" {
		return f.meetings, nil
	}
	var out []meeting.Meeting
	for _, m := range f.meetings {
		if m.Title == search {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeService) ListActions(_ context.Context, filter meeting.ActionFilter) ([]meeting.ActionItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !filter.IsZero() {
		return nil, errors.New("history must request every action item")
	}
	if f.actionErr != nil {
		return nil, f.actionErr
	}
	return f.actions, nil
}

func fixture() *fakeService {
	return &fakeService{
		meetings: []meeting.Meeting{
			{ID: "A", Title: "Planning", Status: meeting.StatusProcessed, AISummary: "We planned."},
			{ID: "B", Title: "Standup", Status: meeting.StatusProcessed},
			{ID: "C", Title: "Draft", Status: meeting.StatusPending},
		},
		actions: []meeting.ActionItem{
			{ID: "x1", MeetingID: "A", Title: "one"},
			{ID: "y1", MeetingID: "B", Title: "other"},
			{ID: "x2", MeetingID: "A", Title: "two"},
		},
	}
}

func newPage(svc Service) *Page {
	return New(Options{Service: svc, Toasts: notify.NewCenter(3 * time.Second), Logger: zerolog.Nop()})
}

func TestReloadJoinsActionsByMeeting(t *testing.T) {
	p := newPage(fixture())
	defer p.Close()
	require.NoError(t, p.Reload(context.Background()))

	s := p.Snapshot()
	require.Equal(t, 3, s.Count())
	assert.True(t, s.Loaded)
	require.Len(t, s.Cards[0].Actions, 2)
	assert.Equal(t, "x1", s.Cards[0].Actions[0].ID)
	assert.Equal(t, "x2", s.Cards[0].Actions[1].ID)
	assert.Len(t, s.Cards[1].Actions, 1)
	assert.Empty(t, s.Cards[2].Actions)
	assert.True(t, s.Cards[2].IsPending())
}

func TestToggleKeepsSingleExpansion(t *testing.T) {
	p := newPage(fixture())
	defer p.Close()
	require.NoError(t, p.Reload(context.Background()))

	p.Toggle("A")
	assert.Equal(t, "A", p.Snapshot().Expanded)
	p.Toggle("B")
	s := p.Snapshot()
	assert.Equal(t, "B", s.Expanded)
	assert.False(t, s.Cards[0].Expanded)
	assert.True(t, s.Cards[1].Expanded)
	p.Toggle("B")
	assert.Equal(t, "", p.Snapshot().Expanded)
}

func TestHighlightExpandsAfterEveryLoad(t *testing.T) {
	p := newPage(fixture())
	defer p.Close()
	ctx := context.Background()
	p.Highlight("B")
	require.NoError(t, p.Reload(ctx))
	s := p.Snapshot()
	assert.Equal(t, "B", s.Expanded)
	assert.True(t, s.Cards[1].Highlighted)

	p.Toggle("A")
	require.NoError(t, p.Reload(ctx))
	assert.Equal(t, "B", p.Snapshot().Expanded)
}

func TestClearHighlightStopsReexpanding(t *testing.T) {
	p := newPage(fixture())
	defer p.Close()
	ctx := context.Background()
	p.Highlight("B")
	require.NoError(t, p.Reload(ctx))

	p.ClearHighlight()
	require.NoError(t, p.Reload(ctx))
	s := p.Snapshot()
	assert.Equal(t, "", s.Expanded)
	assert.False(t, s.Cards[1].Highlighted)

	p.Toggle("A")
	p.ClearHighlight()
	assert.Equal(t, "A", p.Snapshot().Expanded, "a user expansion is kept")
}

func TestSearchIsSentToServer(t *testing.T) {
	svc := fixture()
	p := newPage(svc)
	defer p.Close()
	ctx := context.Background()
	require.NoError(t, p.Reload(ctx))
	require.NoError(t, p.SetSearch(ctx, "Standup"))
	require.NoError(t, p.SetSearch(ctx, "Standup"))

	assert.Equal(t, []string{"", "Standup"}, svc.searches)
	s := p.Snapshot()
	assert.Equal(t, "Standup", s.Search)
	require.Equal(t, 1, s.Count())
	assert.Equal(t, "B", s.Cards[0].ID)
}

func TestPartialFailureLeavesStateUnchanged(t *testing.T) {
	svc := fixture()
	p := newPage(svc)
	defer p.Close()
	ctx := context.Background()
	require.NoError(t, p.Reload(ctx))

	svc.actionErr = errors.New("Request failed with status code 500")
	svc.meetings = svc.meetings[:1]
	require.Error(t, p.Reload(ctx))

	s := p.Snapshot()
	assert.Equal(t, 3, s.Count())
	assert.False(t, s.Loading)
	toast, ok := p.Toasts().Current()
	require.True(t, ok)
	assert.Equal(t, notify.KindError, toast.Kind)
	assert.Equal(t, "Request failed with status code 500", toast.Text)
}

func TestStaleSearchIsDropped(t *testing.T) {
	svc := fixture()
	svc.gate = make(chan struct{})
	p := newPage(svc)
	defer p.Close()
	ctx := context.Background()

	first := make(chan error, 1)
	go func() { first <- p.SetSearch(ctx, "Planning") }()
	require.Eventually(t, func() bool {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		return len(svc.searches) == 1
	}, time.Second, time.Millisecond)

	svc.mu.Lock()
	svc.gate = nil
	svc.mu.Unlock()
	require.NoError(t, p.SetSearch(ctx, "Standup"))
	require.NoError(t, <-first)

	s := p.Snapshot()
	require.Equal(t, 1, s.Count())
	assert.Equal(t, "B", s.Cards[0].ID)
}
