package repl

import (
	"fmt"
	"strings"

	"meetingmind/internal/meeting"
	"meetingmind/internal/storage"
)

func (s *Session) printForm() {
	snap := s.opts.Upload.Snapshot()
	f := snap.Form
	s.println(ansiBold, s.t("upload.heading"))
	fmt.Fprintf(s.out, "  %s: %s\n", s.t("upload.field.title"), f.Title)
	fmt.Fprintf(s.out, "  %s: %s\n", s.t("upload.field.type"), f.MeetingType)
	fmt.Fprintf(s.out, "  %s: %s\n", s.t("upload.field.participants"), f.Participants)
	fmt.Fprintf(s.out, "  %s:\n", s.t("upload.field.transcript"))
	for _, line := range strings.Split(f.Transcript, "\n") {
		fmt.Fprintf(s.out, "    %s\n", line)
	}
	s.println(ansiDim, "  "+s.t("upload.tokens", snap.Chars, snap.Tokens))
}

func (s *Session) printActions() {
	snap := s.opts.Actions.Snapshot()
	st := snap.Stats
	s.println(ansiBold, s.t("actions.heading"))
	fmt.Fprintf(s.out, "  %s %d · %s %d · %s %d · %s %d\n",
		s.t("actions.stat.total"), st.Total,
		s.t("actions.stat.done"), st.Done,
		s.t("actions.stat.high"), st.HighOpen,
		s.t("actions.stat.overdue"), st.Overdue,
	)
	f := snap.Filter
	s.println(ansiDim, fmt.Sprintf("  %s=%s %s=%s %s=%s",
		s.t("actions.filter.owner"), orAll(f.Owner, s.t("actions.filter.all_owners")),
		s.t("actions.filter.priority"), orAll(string(f.Priority), s.t("actions.filter.all")),
		s.t("actions.filter.status"), orAll(string(f.Status), s.t("actions.filter.all")),
	))
	if len(snap.Rows) == 0 {
		s.println(ansiDim, "  "+s.t("actions.empty"))
		return
	}
	for i, row := range snap.Rows {
		check := "[ ]"
		if row.IsDone() {
			check = "[x]"
		}
		owner := row.Owner
		if strings.TrimSpace(owner) == "" {
			owner = s.t("actions.unassigned")
		}
		line := fmt.Sprintf("%3d. %s %s · %s · %s · %s", i+1, check, row.Title, owner, row.Priority, row.Status)
		if row.DueDate != "" {
			line += " · " + s.t("actions.due", row.DueDate)
		}
		color := ""
		switch {
		case row.Overdue:
			line += " · " + s.t("actions.overdue")
			color = ansiRed
		case row.IsDone():
			color = ansiDim
		}
		s.println(color, line)
	}
}

func orAll(v, all string) string {
	if strings.TrimSpace(v) == "" {
		return all
	}
	return v
}

func (s *Session) printHistory() {
	snap := s.opts.History.Snapshot()
	s.println(ansiBold, s.t("history.heading"))
	s.println(ansiDim, "  "+s.t("history.count", snap.Count()))
	if snap.Count() == 0 {
		s.println(ansiDim, "  "+s.t("history.empty"))
		return
	}
	for i, card := range snap.Cards {
		header := fmt.Sprintf("%3d. %s · %s · %s", i+1, card.Title, card.MeetingType, card.CreatedDate())
		if card.IsPending() {
			s.println(ansiYellow, header+" · "+s.t("history.pending"))
			continue
		}
		header += " · " + s.t("history.action_count", len(card.Actions))
		color := ""
		if card.Highlighted {
			color = ansiCyan
		}
		s.println(color, header)
		if card.Expanded {
			s.printCard(card.Meeting, card.Actions)
		}
	}
}

func (s *Session) printCard(m meeting.Meeting, actions []meeting.ActionItem) {
	if len(m.Participants) > 0 {
		fmt.Fprintf(s.out, "     %s: %s\n", s.t("history.participants"), strings.Join(m.Participants, ", "))
	}
	if m.AISummary != "" {
		fmt.Fprintf(s.out, "     %s: %s\n", s.t("history.summary"), m.AISummary)
	}
	s.printList(s.t("history.decisions"), m.KeyDecisions)
	s.printList(s.t("history.topics"), m.TopicsDiscussed)
	fmt.Fprintf(s.out, "     %s:\n", s.t("history.action_items"))
	if len(actions) == 0 {
		fmt.Fprintf(s.out, "       %s\n", s.t("history.no_actions"))
		return
	}
	for _, a := range actions {
		check := "[ ]"
		if a.IsDone() {
			check = "[x]"
		}
		fmt.Fprintf(s.out, "       %s %s (%s, %s)\n", check, a.Title, a.OwnerLabel(), a.Priority)
	}
}

func (s *Session) printList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(s.out, "     %s:\n", title)
	for _, it := range items {
		fmt.Fprintf(s.out, "       - %s\n", it)
	}
}

func (s *Session) printRecent(subs []storage.Submission) {
	if len(subs) == 0 {
		s.println(ansiDim, s.t("repl.recent_empty"))
		return
	}
	for _, sub := range subs {
		line := fmt.Sprintf("  %s  %s  %s", sub.CreatedAt, sub.MeetingID, sub.Title)
		if !sub.AISuccess {
			line += " (" + s.t("repl.demo") + ")"
		}
		s.println("", line)
	}
}
