package upload

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"meetingmind/internal/api"
	"meetingmind/internal/i18n"
	"meetingmind/internal/meeting"
	"meetingmind/internal/notify"
	"meetingmind/internal/storage"
	"meetingmind/internal/tokenizer"
)

// Phase 上传流程状态
// Phase is the submit state of the upload flow
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSaving
	PhaseProcessing
	PhaseSucceeded
	PhaseDegraded
)

func (p Phase) String() string {
	switch p {
	case PhaseSaving:
		return "saving"
	case PhaseProcessing:
		return "processing"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseDegraded:
		return "degraded"
	default:
		return "idle"
	}
}

// Busy reports whether a submission is in flight.
func (p Phase) Busy() bool {
	return p == PhaseSaving || p == PhaseProcessing
}

// Settled reports whether the last submission finished.
func (p Phase) Settled() bool {
	return p == PhaseSucceeded || p == PhaseDegraded
}

// Service is the part of the API the flow calls.
type Service interface {
	CreateMeeting(ctx context.Context, in meeting.NewMeeting) (meeting.Created, error)
	ProcessMeeting(ctx context.Context, id string) (meeting.Processed, error)
}

// DraftStore persists the unsubmitted form and completed submissions.
type DraftStore interface {
	SaveDraft(d storage.Draft) error
	LoadDraft(key string) (storage.Draft, bool, error)
	DeleteDraft(key string) error
	RecordSubmission(s storage.Submission) error
}

type Options struct {
	Service Service
	// Drafts is optional.
	Drafts DraftStore
	Toasts *notify.Center
	Locale *i18n.I18n
	// Tokenizer is optional; nil hides the token estimate.
	Tokenizer     *tokenizer.Tokenizer
	MaxFileBytes  int64
	RedirectDelay time.Duration
	Logger        zerolog.Logger
}

// Result describes a settled submission. The caller opens the history page
// for MeetingID after RedirectAfter.
type Result struct {
	MeetingID     string
	Title         string
	AISuccess     bool
	Notice        string
	ActionCount   int
	RedirectAfter time.Duration
}

// Snapshot is a consistent copy of the page state for rendering.
type Snapshot struct {
	Form   Form
	Phase  Phase
	Step   string
	Chars  int
	Tokens int
	Result *Result
}

// Flow 上传页面状态
// Flow is the upload page state
type Flow struct {
	mu     sync.Mutex
	opts   Options
	form   Form
	phase  Phase
	result *Result

	tokenText  string
	tokenCount int
}

func New(opts Options) *Flow {
	if opts.Toasts == nil {
		opts.Toasts = notify.NewCenter(3500 * time.Millisecond)
	}
	if opts.Locale == nil {
		opts.Locale = i18n.New("en")
	}
	if opts.MaxFileBytes <= 0 {
		opts.MaxFileBytes = DefaultMaxFileBytes
	}
	if opts.RedirectDelay <= 0 {
		opts.RedirectDelay = time.Second
	}
	return &Flow{opts: opts, form: DefaultForm()}
}

// Toasts returns the page's notification channel.
func (f *Flow) Toasts() *notify.Center {
	return f.opts.Toasts
}

func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := Snapshot{
		Form:  f.form,
		Phase: f.phase,
		Step:  f.stepLocked(),
		Chars: len([]rune(f.form.Transcript)),
	}
	if f.opts.Tokenizer != nil {
		if f.form.Transcript != f.tokenText {
			f.tokenText = f.form.Transcript
			f.tokenCount = f.opts.Tokenizer.Count(f.form.Transcript)
		}
		s.Tokens = f.tokenCount
	}
	if f.result != nil {
		r := *f.result
		s.Result = &r
	}
	return s
}

func (f *Flow) stepLocked() string {
	switch f.phase {
	case PhaseSaving:
		return f.opts.Locale.T("upload.step.saving")
	case PhaseProcessing, PhaseSucceeded, PhaseDegraded:
		return f.opts.Locale.T("upload.step.processing")
	}
	return ""
}

// Edit applies fn to the form. Typing stays possible while a submission
// runs; the in-flight request already holds its own copy.
func (f *Flow) Edit(fn func(*Form)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.form)
}

// LoadSample fills the form with the canned transcript.
func (f *Flow) LoadSample() error {
	if err := f.replace(SampleForm()); err != nil {
		return err
	}
	f.opts.Toasts.Success(f.opts.Locale.T("upload.sample_loaded"))
	return nil
}

// Clear resets the form to its defaults.
func (f *Flow) Clear() error {
	return f.replace(DefaultForm())
}

func (f *Flow) replace(form Form) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.phase.Busy() {
		return ErrBusy
	}
	f.form = form
	return nil
}

// ImportFile loads a local text file into the transcript field.
func (f *Flow) ImportFile(path string) error {
	text, err := ReadTranscriptFile(path, f.opts.MaxFileBytes)
	if err != nil {
		if errors.Is(err, ErrFileTooLarge) {
			f.opts.Toasts.Error(f.opts.Locale.T("upload.err.file_too_large", f.opts.MaxFileBytes/1000))
		} else {
			f.opts.Toasts.Error(f.opts.Locale.T("upload.err.file_read", err.Error()))
		}
		return err
	}
	f.Edit(func(form *Form) { form.Transcript = text })
	f.opts.Toasts.Success(f.opts.Locale.T("upload.file_loaded", filepath.Base(path)))
	return nil
}

// RestoreDraft loads the autosaved form, if any, into an untouched page.
func (f *Flow) RestoreDraft() (bool, error) {
	if f.opts.Drafts == nil {
		return false, nil
	}
	d, ok, err := f.opts.Drafts.LoadDraft(storage.DefaultDraftKey)
	if err != nil || !ok || d.IsBlank() {
		return false, err
	}
	f.mu.Lock()
	if f.phase.Busy() || !f.form.IsBlank() {
		f.mu.Unlock()
		return false, nil
	}
	f.form = formFromDraft(d)
	f.mu.Unlock()
	f.opts.Toasts.Success(f.opts.Locale.T("upload.draft_restored"))
	return true, nil
}

// SaveDraft persists the current form. A blank form removes the draft.
func (f *Flow) SaveDraft() error {
	if f.opts.Drafts == nil {
		return nil
	}
	f.mu.Lock()
	d := f.form.draft()
	f.mu.Unlock()
	return f.opts.Drafts.SaveDraft(d)
}

// Reset returns a settled flow to an empty idle form. The TUI calls it once
// it has navigated away.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.phase.Busy() {
		return
	}
	f.phase = PhaseIdle
	f.form = DefaultForm()
	f.result = nil
}

// Submit validates the form, creates the meeting and asks the backend to
// process it. A demo-mode processing result is not an error.
func (f *Flow) Submit(ctx context.Context) (Result, error) {
	f.mu.Lock()
	if f.phase.Busy() {
		f.mu.Unlock()
		return Result{}, ErrBusy
	}
	form := f.form
	if err := form.Validate(); err != nil {
		f.mu.Unlock()
		f.opts.Toasts.Error(f.validationMessage(err))
		return Result{}, err
	}
	f.phase = PhaseSaving
	f.result = nil
	f.mu.Unlock()

	log := f.opts.Logger
	created, err := f.opts.Service.CreateMeeting(ctx, form.Payload())
	if err != nil {
		f.fail(err)
		return Result{}, err
	}
	log.Info().Str("meeting_id", created.MeetingID).Msg("meeting created")
	if f.opts.Drafts != nil {
		if err := f.opts.Drafts.DeleteDraft(storage.DefaultDraftKey); err != nil {
			log.Warn().Err(err).Msg("delete draft")
		}
	}

	f.setPhase(PhaseProcessing)
	processed, err := f.opts.Service.ProcessMeeting(ctx, created.MeetingID)
	if err != nil {
		f.fail(err)
		return Result{}, err
	}

	res := Result{
		MeetingID:     created.MeetingID,
		Title:         created.Title,
		AISuccess:     processed.AISuccess,
		ActionCount:   len(processed.Data.ActionItems),
		RedirectAfter: f.opts.RedirectDelay,
	}
	phase := PhaseSucceeded
	if processed.AISuccess {
		f.opts.Toasts.Success(f.opts.Locale.T("upload.success"))
	} else {
		phase = PhaseDegraded
		res.Notice = processed.ErrorMessage
		f.opts.Toasts.Error(f.opts.Locale.T("upload.demo", processed.ErrorMessage))
	}
	log.Info().
		Str("meeting_id", res.MeetingID).
		Bool("ai_success", res.AISuccess).
		Int("action_items", res.ActionCount).
		Msg("meeting processed")

	if f.opts.Drafts != nil {
		sub := storage.Submission{MeetingID: res.MeetingID, Title: res.Title, AISuccess: res.AISuccess, Notice: res.Notice}
		if err := f.opts.Drafts.RecordSubmission(sub); err != nil {
			log.Warn().Err(err).Msg("record submission")
		}
	}

	f.mu.Lock()
	f.phase = phase
	f.result = &res
	f.mu.Unlock()
	return res, nil
}

func (f *Flow) setPhase(p Phase) {
	f.mu.Lock()
	f.phase = p
	f.mu.Unlock()
}

func (f *Flow) fail(err error) {
	f.setPhase(PhaseIdle)
	f.opts.Logger.Warn().Err(err).Msg("upload failed")
	f.opts.Toasts.Error(api.Message(err))
}

func (f *Flow) validationMessage(err error) string {
	switch {
	case errors.Is(err, ErrTranscriptRequired):
		return f.opts.Locale.T("upload.err.transcript_required")
	default:
		return api.Message(err)
	}
}
