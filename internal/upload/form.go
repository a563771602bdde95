// Package upload holds the new-meeting form and its submit flow.
package upload

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"meetingmind/internal/meeting"
	"meetingmind/internal/storage"
)

var (
	ErrTranscriptRequired = errors.New("transcript is required")
	ErrInvalidMeetingType = errors.New("invalid meeting type")
	ErrFileTooLarge       = errors.New("file too large")
	ErrBusy               = errors.New("submission in progress")
)

// Form is the editable upload form. Participants is the raw comma-separated
// text as typed.
type Form struct {
	Title        string
	Transcript   string
	MeetingType  meeting.MeetingType
	Participants string
}

// DefaultForm is the empty form.
func DefaultForm() Form {
	return Form{MeetingType: meeting.TypeGeneral}
}

// IsBlank reports whether nothing has been typed.
func (f Form) IsBlank() bool {
	return f.Title == "" && f.Transcript == "" && f.Participants == ""
}

// ParseParticipants splits comma-separated names, trims them and drops
// blanks.
func ParseParticipants(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Payload converts the form into the create request. Title and transcript
// are sent as typed.
func (f Form) Payload() meeting.NewMeeting {
	mt := f.MeetingType
	if mt == "" {
		mt = meeting.TypeGeneral
	}
	return meeting.NewMeeting{
		Title:        f.Title,
		Transcript:   f.Transcript,
		MeetingType:  mt,
		Participants: ParseParticipants(f.Participants),
	}
}

type formRules struct {
	Transcript  string `validate:"required"`
	MeetingType string `validate:"oneof=Standup Planning Review Retrospective Kickoff General"`
}

var validate = validator.New()

// Validate checks the form before any network call.
func (f Form) Validate() error {
	p := f.Payload()
	err := validate.Struct(formRules{
		Transcript:  strings.TrimSpace(p.Transcript),
		MeetingType: string(p.MeetingType),
	})
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "Transcript":
			return ErrTranscriptRequired
		case "MeetingType":
			return ErrInvalidMeetingType
		}
	}
	return err
}

func (f Form) draft() storage.Draft {
	return storage.Draft{
		Key:          storage.DefaultDraftKey,
		Title:        f.Title,
		Transcript:   f.Transcript,
		MeetingType:  string(f.MeetingType),
		Participants: f.Participants,
	}
}

func formFromDraft(d storage.Draft) Form {
	f := Form{
		Title:        d.Title,
		Transcript:   d.Transcript,
		MeetingType:  meeting.MeetingType(d.MeetingType),
		Participants: d.Participants,
	}
	if f.MeetingType == "" {
		f.MeetingType = meeting.TypeGeneral
	}
	return f
}
