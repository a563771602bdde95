package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"meetingmind/internal/i18n"
	"meetingmind/internal/meeting"
	"meetingmind/internal/upload"
)

// draftSaveDelay 停止输入后多久保存草稿
// draftSaveDelay is how long typing must pause before the draft is saved
const draftSaveDelay = time.Second

const (
	fieldTitle = iota
	fieldType
	fieldParticipants
	fieldTranscript
	uploadFieldCount
)

// uploadPage 上传页的输入控件
// uploadPage holds the upload page widgets
type uploadPage struct {
	title        textinput.Model
	participants textinput.Model
	transcript   textarea.Model
	filePath     textinput.Model

	focus     int
	typeIdx   int
	importing bool
	draftSeq  int
}

func newUploadPage(locale *i18n.I18n) uploadPage {
	title := textinput.New()
	title.Placeholder = locale.T("upload.placeholder.title")
	title.CharLimit = 200

	participants := textinput.New()
	participants.Placeholder = locale.T("upload.placeholder.participants")

	ta := textarea.New()
	ta.Placeholder = locale.T("upload.placeholder.transcript")
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(8)

	fp := textinput.New()
	fp.Prompt = locale.T("upload.file_prompt")

	p := uploadPage{
		title:        title,
		participants: participants,
		transcript:   ta,
		filePath:     fp,
	}
	p.load(upload.DefaultForm())
	p.setFocus(fieldTranscript)
	return p
}

// load 用表单内容覆盖控件
// load overwrites the widgets with form values
func (p *uploadPage) load(f upload.Form) {
	p.title.SetValue(f.Title)
	p.participants.SetValue(f.Participants)
	p.transcript.SetValue(f.Transcript)
	p.typeIdx = typeIndex(f.MeetingType)
}

func (p uploadPage) form() upload.Form {
	return upload.Form{
		Title:        p.title.Value(),
		Transcript:   p.transcript.Value(),
		MeetingType:  meeting.MeetingTypes[p.typeIdx],
		Participants: p.participants.Value(),
	}
}

func typeIndex(t meeting.MeetingType) int {
	for i, mt := range meeting.MeetingTypes {
		if mt == t {
			return i
		}
	}
	return len(meeting.MeetingTypes) - 1
}

func (p *uploadPage) setFocus(i int) {
	p.focus = (i + uploadFieldCount) % uploadFieldCount
	p.title.Blur()
	p.participants.Blur()
	p.transcript.Blur()
	switch p.focus {
	case fieldTitle:
		p.title.Focus()
	case fieldParticipants:
		p.participants.Focus()
	case fieldTranscript:
		p.transcript.Focus()
	}
}

func (p *uploadPage) resize(width int) {
	w := width - 4
	if w < 20 {
		w = 20
	}
	p.title.Width = w
	p.participants.Width = w
	p.filePath.Width = w
	p.transcript.SetWidth(w)
}

func (a App) scheduleDraftSave() tea.Cmd {
	seq := a.upload.draftSeq
	return tea.Tick(draftSaveDelay, func(time.Time) tea.Msg {
		return draftSaveMsg{seq: seq}
	})
}

func (a App) updateUploadKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.upload.importing {
		switch msg.Type {
		case tea.KeyEsc:
			a.upload.importing = false
			a.upload.filePath.Blur()
			return a, nil
		case tea.KeyEnter:
			a.upload.importing = false
			a.upload.filePath.Blur()
			flow, path := a.flow, strings.TrimSpace(a.upload.filePath.Value())
			a.upload.filePath.SetValue("")
			a.upload.draftSeq++
			return a, func() tea.Msg {
				return importDoneMsg{err: flow.ImportFile(path)}
			}
		}
		var cmd tea.Cmd
		a.upload.filePath, cmd = a.upload.filePath.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Submit):
		if a.flow.Snapshot().Phase.Busy() {
			return a, nil
		}
		// A pending autosave must not write the submitted form back.
		a.upload.draftSeq++
		flow, ctx := a.flow, a.ctx
		return a, func() tea.Msg {
			res, err := flow.Submit(ctx)
			return submitDoneMsg{res: res, err: err}
		}
	case key.Matches(msg, a.keys.Sample):
		if err := a.flow.LoadSample(); err != nil {
			return a, nil
		}
		a.upload.load(a.flow.Snapshot().Form)
		a.upload.draftSeq++
		return a, tea.Batch(a.toastCmd(PageUpload), a.scheduleDraftSave())
	case key.Matches(msg, a.keys.Clear):
		if err := a.flow.Clear(); err != nil {
			return a, nil
		}
		a.flow.Toasts().Success(a.locale.T("upload.cleared"))
		a.upload.load(a.flow.Snapshot().Form)
		a.upload.draftSeq++
		return a, tea.Batch(a.toastCmd(PageUpload), a.scheduleDraftSave())
	case key.Matches(msg, a.keys.Import):
		a.upload.importing = true
		return a, a.upload.filePath.Focus()
	case key.Matches(msg, a.keys.NextField):
		a.upload.setFocus(a.upload.focus + 1)
		return a, nil
	case key.Matches(msg, a.keys.PrevField):
		a.upload.setFocus(a.upload.focus - 1)
		return a, nil
	}

	var cmd tea.Cmd
	switch a.upload.focus {
	case fieldType:
		n := len(meeting.MeetingTypes)
		switch {
		case key.Matches(msg, a.keys.Left):
			a.upload.typeIdx = (a.upload.typeIdx + n - 1) % n
		case key.Matches(msg, a.keys.Right):
			a.upload.typeIdx = (a.upload.typeIdx + 1) % n
		default:
			return a, nil
		}
	case fieldTitle:
		a.upload.title, cmd = a.upload.title.Update(msg)
	case fieldParticipants:
		a.upload.participants, cmd = a.upload.participants.Update(msg)
	case fieldTranscript:
		a.upload.transcript, cmd = a.upload.transcript.Update(msg)
	}

	form := a.upload.form()
	a.flow.Edit(func(f *upload.Form) { *f = form })
	a.upload.draftSeq++
	return a, tea.Batch(cmd, a.scheduleDraftSave())
}

func (a App) viewUpload() string {
	snap := a.flow.Snapshot()
	t := a.theme

	label := func(field int, text string) string {
		if a.upload.focus == field && !a.upload.importing {
			return t.TitleStyle.Render("› " + text)
		}
		return t.MutedStyle.Render("  " + text)
	}

	types := make([]string, 0, len(meeting.MeetingTypes))
	for i, mt := range meeting.MeetingTypes {
		if i == a.upload.typeIdx {
			types = append(types, t.ActiveTabStyle.Render(string(mt)))
		} else {
			types = append(types, t.InactiveTabStyle.Render(string(mt)))
		}
	}

	parts := []string{
		t.TitleStyle.Render(a.locale.T("upload.heading")),
		t.MutedStyle.Render(a.locale.T("upload.subheading")),
		"",
		label(fieldTitle, a.locale.T("upload.field.title")),
		"  " + a.upload.title.View(),
		label(fieldType, a.locale.T("upload.field.type")),
		"  " + lipgloss.JoinHorizontal(lipgloss.Top, types...),
		label(fieldParticipants, a.locale.T("upload.field.participants")),
		"  " + a.upload.participants.View(),
		label(fieldTranscript, a.locale.T("upload.field.transcript")),
		a.upload.transcript.View(),
		t.MutedStyle.Render("  " + a.locale.T("upload.tokens", snap.Chars, snap.Tokens)),
	}
	if a.upload.importing {
		parts = append(parts, "", a.upload.filePath.View())
	}
	if snap.Phase.Busy() || snap.Phase.Settled() {
		parts = append(parts, "", a.spin.View()+" "+snap.Step)
	} else {
		parts = append(parts, "", t.MutedStyle.Render(fmt.Sprintf("[%s] %s", a.keys.Submit.Help().Key, a.locale.T("upload.analyze"))))
	}
	return strings.Join(parts, "\n")
}
