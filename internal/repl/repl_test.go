package repl

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingmind/internal/dashboard"
	"meetingmind/internal/history"
	"meetingmind/internal/i18n"
	"meetingmind/internal/meeting"
	"meetingmind/internal/storage"
	"meetingmind/internal/upload"
)

type fakeAPI struct {
	mu        sync.Mutex
	meetings  []meeting.Meeting
	actions   []meeting.ActionItem
	created   []meeting.NewMeeting
	patches   map[string][]meeting.ActionPatch
	deleted   []string
	searches  []string
	deleteErr error
}

func (f *fakeAPI) CreateMeeting(_ context.Context, in meeting.NewMeeting) (meeting.Created, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	f.meetings = append(f.meetings, meeting.Meeting{ID: "m-new", Title: in.Title, Status: meeting.StatusProcessed, AISummary: "New summary"})
	return meeting.Created{MeetingID: "m-new", Title: in.Title}, nil
}

func (f *fakeAPI) ProcessMeeting(context.Context, string) (meeting.Processed, error) {
	return meeting.Processed{AISuccess: true}, nil
}

func (f *fakeAPI) ListMeetings(_ context.Context, search string) ([]meeting.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, search)
	var out []meeting.Meeting
	for _, m := range f.meetings {
		if search == "" || strings.Contains(strings.ToLower(m.Title), strings.ToLower(search)) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeAPI) ListActions(_ context.Context, filter meeting.ActionFilter) ([]meeting.ActionItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []meeting.ActionItem
	for _, a := range f.actions {
		if filter.Matches(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAPI) UpdateAction(_ context.Context, id string, p meeting.ActionPatch) (meeting.ActionItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches[id] = append(f.patches[id], p)
	for i, a := range f.actions {
		if a.ID != id {
			continue
		}
		if p.Status != nil {
			f.actions[i].Status = *p.Status
		}
		if p.Owner != nil {
			f.actions[i].Owner = *p.Owner
		}
		if p.Priority != nil {
			f.actions[i].Priority = *p.Priority
		}
		if p.DueDate != nil {
			f.actions[i].DueDate = *p.DueDate
		}
	}
	return meeting.ActionItem{ID: id}, nil
}

func (f *fakeAPI) DeleteAction(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	f.actions = meeting.RemoveAction(f.actions, id)
	return nil
}

type fakeSubmissions struct{ subs []storage.Submission }

func (f fakeSubmissions) ListSubmissions(limit int) ([]storage.Submission, error) {
	if len(f.subs) > limit {
		return f.subs[:limit], nil
	}
	return f.subs, nil
}

type harness struct {
	api     *fakeAPI
	session *Session
	out     *bytes.Buffer
	flow    *upload.Flow
	board   *dashboard.Board
	hist    *history.Page
	slept   []time.Duration
}

// newHarness builds a session whose input is the given script.
func newHarness(t *testing.T, script string) *harness {
	t.Helper()
	api := &fakeAPI{
		patches: map[string][]meeting.ActionPatch{},
		meetings: []meeting.Meeting{
			{ID: "m1", Title: "Planning", Status: meeting.StatusProcessed, AISummary: "We planned.", KeyDecisions: []string{"Ship Friday"}},
			{ID: "m2", Title: "Standup", Status: meeting.StatusPending},
		},
		actions: []meeting.ActionItem{
			{ID: "a1", MeetingID: "m1", Title: "Ship", Owner: "Bob", Priority: meeting.PriorityHigh, Status: meeting.ActionPending},
			{ID: "a2", MeetingID: "m1", Title: "Test", Owner: "Ann", Priority: meeting.PriorityLow, Status: meeting.ActionDone},
		},
	}
	locale := i18n.New("en")
	h := &harness{api: api, out: &bytes.Buffer{}}
	h.board = dashboard.New(dashboard.Options{Service: api, Locale: locale, Logger: zerolog.Nop()})
	h.hist = history.New(history.Options{Service: api, Logger: zerolog.Nop()})
	t.Cleanup(h.board.Close)
	t.Cleanup(h.hist.Close)
	h.flow = upload.New(upload.Options{
		Service:       api,
		Locale:        locale,
		RedirectDelay: time.Second,
		Logger:        zerolog.Nop(),
	})
	noColor := false
	h.session = New(Options{
		Upload:  h.flow,
		Actions: h.board,
		History: h.hist,
		Submissions: fakeSubmissions{subs: []storage.Submission{
			{MeetingID: "m9", Title: "Retro", AISuccess: false, CreatedAt: "2026-01-02T03:04:05Z"},
		}},
		Locale: locale,
		Logger: zerolog.Nop(),
		APIURL: "http://api.test",
		Input:  NewBasicInput(strings.NewReader(script), nil),
		Out:    h.out,
		Color:  &noColor,
		Sleep: func(_ context.Context, d time.Duration) error {
			h.slept = append(h.slept, d)
			return nil
		},
	})
	return h
}

func (h *harness) run(t *testing.T) string {
	t.Helper()
	require.NoError(t, h.session.Run(context.Background()))
	return h.out.String()
}

func TestRun_WelcomeAndQuit(t *testing.T) {
	h := newHarness(t, "/help\n/quit\n/sample\n")
	out := h.run(t)

	assert.Contains(t, out, "MeetingMind · http://api.test")
	assert.Contains(t, out, "Bye")
	assert.True(t, h.flow.Snapshot().Form.IsBlank(), "commands after /quit must not run")
}

func TestRun_EOFEndsSession(t *testing.T) {
	h := newHarness(t, "/sample")
	out := h.run(t)

	assert.Contains(t, out, "Sample transcript loaded")
	assert.Contains(t, out, "Bye")
}

func TestRun_UnknownCommand(t *testing.T) {
	h := newHarness(t, "/bogus\n")
	assert.Contains(t, h.run(t), "Unknown command: /bogus")
}

func TestExec_FormFields(t *testing.T) {
	h := newHarness(t, "/title Sprint sync\n/type retrospective\n/participants Ann, Bob\n/transcript\nline one\nline two\n.\n/show\n")
	out := h.run(t)

	f := h.flow.Snapshot().Form
	assert.Equal(t, "Sprint sync", f.Title)
	assert.Equal(t, meeting.TypeRetrospective, f.MeetingType)
	assert.Equal(t, "Ann, Bob", f.Participants)
	assert.Equal(t, "line one\nline two", f.Transcript)
	assert.Contains(t, out, "    line two")
}

func TestExec_TypeRejectsUnknown(t *testing.T) {
	h := newHarness(t, "/type Party\n")
	out := h.run(t)

	assert.Contains(t, out, "Usage: /type Standup|Planning")
	assert.Equal(t, meeting.TypeGeneral, h.flow.Snapshot().Form.MeetingType)
}

func TestExec_SubmitRedirectsToHistory(t *testing.T) {
	h := newHarness(t, "/sample\n/title Kickoff\n/submit\n")
	out := h.run(t)

	require.Len(t, h.api.created, 1)
	assert.Equal(t, "Kickoff", h.api.created[0].Title)
	assert.Equal(t, []time.Duration{time.Second}, h.slept)
	assert.Contains(t, out, "Meeting analyzed successfully!")
	assert.Contains(t, out, "Opening history for meeting m-new")
	assert.Contains(t, out, "New summary", "highlighted meeting is expanded")
	assert.True(t, h.flow.Snapshot().Form.IsBlank(), "form resets after redirect")
}

func TestExec_HistoryCommandDropsHighlight(t *testing.T) {
	h := newHarness(t, "/sample\n/submit\n/history\n")
	h.run(t)

	snap := h.hist.Snapshot()
	assert.Equal(t, "", snap.Expanded)
	for _, c := range snap.Cards {
		assert.False(t, c.Highlighted, c.ID)
	}
}

func TestExec_SubmitEmptyTranscriptFails(t *testing.T) {
	h := newHarness(t, "/submit\n")
	out := h.run(t)

	assert.Empty(t, h.api.created)
	assert.Contains(t, out, "Transcript is required")
	assert.Empty(t, h.slept)
}

func TestExec_ClearResetsForm(t *testing.T) {
	h := newHarness(t, "/sample\n/clear\n")
	out := h.run(t)

	assert.True(t, h.flow.Snapshot().Form.IsBlank())
	assert.Contains(t, out, "Form cleared")
}

func TestExec_ActionsListsStatsAndFilters(t *testing.T) {
	h := newHarness(t, "/actions\n/actions priority=high\n")
	out := h.run(t)

	assert.Contains(t, out, "Total Items 2 · Completed 1 · High Priority 1")
	assert.Equal(t, meeting.PriorityHigh, h.board.Filter().Priority)
	require.Len(t, h.board.Snapshot().Rows, 1)
	assert.Equal(t, "a1", h.board.Snapshot().Rows[0].ID)
}

func TestExec_ActionsRejectsUnknownPriority(t *testing.T) {
	h := newHarness(t, "/actions priority=urgent\n")
	out := h.run(t)

	assert.Contains(t, out, "Usage: priority=")
	assert.True(t, h.board.Filter().IsZero())
}

func TestExec_ResetClearsFilters(t *testing.T) {
	h := newHarness(t, "/actions owner=Ann status=done\n/reset\n")
	h.run(t)

	assert.True(t, h.board.Filter().IsZero())
	assert.Len(t, h.board.Snapshot().Rows, 2)
}

func TestExec_DoneTogglesStatus(t *testing.T) {
	h := newHarness(t, "/actions\n/done 1\n")
	out := h.run(t)

	require.Len(t, h.api.patches["a1"], 1)
	p := h.api.patches["a1"][0]
	require.NotNil(t, p.Status)
	assert.Equal(t, meeting.ActionDone, *p.Status)
	assert.Nil(t, p.Owner, "toggle sends only the status")
	assert.Contains(t, out, "Updated")
}

func TestExec_DoneBadIndex(t *testing.T) {
	h := newHarness(t, "/actions\n/done 7\n")
	assert.Contains(t, h.run(t), "No row 7")
	assert.Empty(t, h.api.patches)
}

func TestExec_EditSendsDraftFields(t *testing.T) {
	h := newHarness(t, "/actions\n/edit 1 owner=Carol Diaz status=in progress due=2026-03-01\n")
	h.run(t)

	require.Len(t, h.api.patches["a1"], 1)
	p := h.api.patches["a1"][0]
	assert.Equal(t, "Carol Diaz", *p.Owner)
	assert.Equal(t, meeting.ActionInProgress, *p.Status)
	assert.Equal(t, "2026-03-01", *p.DueDate)
	assert.Equal(t, meeting.PriorityHigh, *p.Priority)
}

func TestExec_EditInvalidFieldCancels(t *testing.T) {
	h := newHarness(t, "/actions\n/edit 1 priority=extreme\n")
	out := h.run(t)

	assert.Empty(t, h.api.patches)
	assert.Contains(t, out, "Usage: priority=")
	assert.False(t, h.board.Snapshot().Rows[0].Editing)
}

func TestExec_DeleteConfirmed(t *testing.T) {
	h := newHarness(t, "/actions\n/delete 2\ny\n")
	out := h.run(t)

	assert.Equal(t, []string{"a2"}, h.api.deleted)
	assert.Contains(t, out, "Deleted")
	assert.Len(t, h.board.Snapshot().Rows, 1)
}

func TestExec_DeleteDeclined(t *testing.T) {
	h := newHarness(t, "/actions\n/delete 2\nn\n")
	out := h.run(t)

	assert.Empty(t, h.api.deleted)
	assert.Contains(t, out, "Cancelled")
	assert.Empty(t, h.board.Snapshot().PendingDelete)
}

func TestExec_DeleteFailureKeepsRow(t *testing.T) {
	h := newHarness(t, "/actions\n/delete 1\nyes\n")
	h.api.deleteErr = errors.New("boom")
	h.run(t)

	assert.Len(t, h.board.Snapshot().Rows, 2)
}

func TestExec_HistorySearchAndOpen(t *testing.T) {
	h := newHarness(t, "/history\n/open 1\n/history plan\n")
	out := h.run(t)

	assert.Contains(t, out, "2 meeting(s)")
	assert.Contains(t, out, "Not Processed")
	assert.Contains(t, out, "Ship Friday", "opened card shows decisions")
	assert.Contains(t, out, "1 meeting(s)")
	assert.Equal(t, "plan", h.hist.Search())
	assert.Contains(t, h.api.searches, "plan")
}

func TestExec_OpenBadIndex(t *testing.T) {
	h := newHarness(t, "/history\n/open 9\n")
	assert.Contains(t, h.run(t), "No row 9")
}

func TestExec_Recent(t *testing.T) {
	h := newHarness(t, "/recent\n")
	out := h.run(t)

	assert.Contains(t, out, "m9")
	assert.Contains(t, out, "Retro (demo)")
}

func TestParseAssignments(t *testing.T) {
	got := parseAssignments("owner=Ann Lee status=In Progress  Due=2026-01-01 stray")
	assert.Equal(t, map[string]string{
		"owner":  "Ann Lee",
		"status": "In Progress",
		"due":    "2026-01-01 stray",
	}, got)
	assert.Empty(t, parseAssignments("no pairs here"))
}

func TestPaint(t *testing.T) {
	on := true
	s := New(Options{Locale: i18n.New("en"), Out: &bytes.Buffer{}, Color: &on})
	assert.Equal(t, ansiRed+"x"+ansiReset, s.paint(ansiRed, "x"))
	assert.Equal(t, "x", s.paint("", "x"))

	off := false
	s = New(Options{Locale: i18n.New("en"), Out: &bytes.Buffer{}, Color: &off})
	assert.Equal(t, "x", s.paint(ansiRed, "x"))
}

func TestUseColor_RespectsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, useColor())
}

func TestRun_HighlightOpensHistory(t *testing.T) {
	h := newHarness(t, "")
	h.session.opts.Highlight = "m1"
	out := h.run(t)

	assert.Contains(t, out, "We planned.")
	snap := h.hist.Snapshot()
	require.NotEmpty(t, snap.Cards)
	assert.Equal(t, "m1", snap.Expanded)
}
