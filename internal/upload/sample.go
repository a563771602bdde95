package upload

import "meetingmind/internal/meeting"

const sampleTranscript = `Sprint Planning — Q2 Week 3

Alice: We have a critical auth bug — users are getting randomly logged out.
Bob: I can fix that. Should take about 3 hours. I'll do it today, high priority.
Alice: Perfect. Carol, can you finish the dashboard UI mockups by Wednesday?
Carol: Yes, I'll have them done by Wednesday noon and share in Figma.
David: I'll review Carol's mockups by Thursday EOD and leave comments in Figma.
Alice: Also David, please send beta invite emails by Thursday so users can confirm for Friday testing.
David: Got it. I'll also update the onboarding docs since signup flow changed — I'll finish that by next Friday.
Bob: One more thing — we need to migrate old DB records to the new schema. Estimated 3 days of work.
Alice: Start Monday. That's high priority, it blocks the Q2 release.

DECISIONS:
- Q2 release target confirmed for end of next week
- Daily standups at 9 AM starting Monday`

// SampleForm is the canned demonstration form.
func SampleForm() Form {
	return Form{
		Title:        "Q2 Sprint Planning",
		Transcript:   sampleTranscript,
		MeetingType:  meeting.TypePlanning,
		Participants: "Alice, Bob, Carol, David",
	}
}
