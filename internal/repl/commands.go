package repl

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"meetingmind/internal/meeting"
	"meetingmind/internal/upload"
)

var commandNames = []string{
	"/sample", "/title", "/type", "/participants", "/file", "/transcript",
	"/show", "/submit", "/clear",
	"/actions", "/reset", "/done", "/edit", "/delete",
	"/history", "/open", "/recent",
	"/help", "/quit", "/exit",
}

const recentLimit = 10

// Exec 执行一条命令；返回 true 表示退出
// Exec runs one command line and reports whether the session should end
func (s *Session) Exec(ctx context.Context, input string) bool {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(input), " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "/quit", "/exit":
		return true
	case "/help":
		s.println(ansiDim, s.t("repl.help"))

	// 上传 / Upload
	case "/sample":
		s.busyErr(s.opts.Upload.LoadSample())
	case "/clear":
		if s.busyErr(s.opts.Upload.Clear()) {
			s.opts.Upload.Toasts().Success(s.t("upload.cleared"))
		}
	case "/title":
		s.opts.Upload.Edit(func(f *upload.Form) { f.Title = rest })
	case "/participants":
		s.opts.Upload.Edit(func(f *upload.Form) { f.Participants = rest })
	case "/type":
		mt, ok := parseMeetingType(rest)
		if !ok {
			s.usage("/type " + joinTypes())
			break
		}
		s.opts.Upload.Edit(func(f *upload.Form) { f.MeetingType = mt })
	case "/file":
		if rest == "" {
			s.usage("/file <path>")
			break
		}
		_ = s.opts.Upload.ImportFile(rest)
	case "/transcript":
		s.readTranscript()
	case "/show":
		s.printForm()
	case "/submit":
		s.submit(ctx)

	// 行动项 / Actions
	case "/actions":
		s.actions(ctx, rest)
	case "/reset":
		_ = s.opts.Actions.ResetFilters(ctx)
		s.printActions()
	case "/done":
		if id, ok := s.actionAt(rest); ok {
			_ = s.opts.Actions.ToggleDone(ctx, id)
			s.printActions()
		}
	case "/edit":
		s.edit(ctx, rest)
	case "/delete":
		s.delete(ctx, rest)

	// 历史 / History
	case "/history":
		s.history(ctx, rest)
	case "/open":
		if id, ok := s.cardAt(rest); ok {
			s.opts.History.Toggle(id)
			s.printHistory()
		}
	case "/recent":
		s.recent()

	default:
		s.println(ansiYellow, s.t("repl.unknown", cmd))
	}
	s.flushToasts()
	return false
}

func (s *Session) usage(text string) {
	s.println(ansiYellow, s.t("repl.usage", text))
}

// busyErr reports whether err is nil; a running submission is reported.
func (s *Session) busyErr(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, upload.ErrBusy) {
		s.println(ansiYellow, err.Error())
	}
	return false
}

func (s *Session) readTranscript() {
	s.println(ansiDim, s.t("repl.transcript_end"))
	var lines []string
	for {
		line, err := s.opts.Input.ReadLine("… ")
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				return
			}
			if !errors.Is(err, io.EOF) {
				s.opts.Logger.Warn().Err(err).Msg("read transcript")
			}
			break
		}
		if strings.TrimSpace(line) == "." {
			break
		}
		lines = append(lines, line)
	}
	text := strings.Join(lines, "\n")
	s.opts.Upload.Edit(func(f *upload.Form) { f.Transcript = text })
	s.printForm()
}

func (s *Session) submit(ctx context.Context) {
	s.println(ansiDim, s.t("upload.step.saving"))
	res, err := s.opts.Upload.Submit(ctx)
	s.flushToasts()
	if err != nil {
		return
	}
	s.printf(ansiCyan, "%s\n", s.t("repl.redirect", res.MeetingID))
	if err := s.opts.Sleep(ctx, res.RedirectAfter); err != nil {
		return
	}
	s.opts.History.Highlight(res.MeetingID)
	s.opts.Upload.Reset()
	_ = s.opts.History.Reload(ctx)
	s.printHistory()
}

func (s *Session) actions(ctx context.Context, rest string) {
	if rest == "" {
		_ = s.opts.Actions.Reload(ctx)
		s.printActions()
		return
	}
	f := s.opts.Actions.Filter()
	for key, value := range parseAssignments(rest) {
		if strings.EqualFold(value, "all") {
			value = ""
		}
		switch key {
		case "owner":
			f.Owner = value
		case "priority":
			p, ok := parsePriority(value)
			if !ok {
				s.usage("priority=High|Medium|Low|all")
				return
			}
			f.Priority = p
		case "status":
			st, ok := parseStatus(value)
			if !ok {
				s.usage("status=Pending|In Progress|Done|all")
				return
			}
			f.Status = st
		default:
			s.usage("/actions [owner=..] [priority=..] [status=..]")
			return
		}
	}
	if err := s.opts.Actions.SetFilter(ctx, f); err == nil && !s.opts.Actions.Snapshot().Loaded {
		_ = s.opts.Actions.Reload(ctx)
	}
	s.printActions()
}

func (s *Session) edit(ctx context.Context, rest string) {
	idx, fields, _ := strings.Cut(rest, " ")
	id, ok := s.actionAt(idx)
	if !ok {
		return
	}
	changes := parseAssignments(fields)
	if len(changes) == 0 {
		s.usage("/edit <n> owner=.. due=.. priority=.. status=..")
		return
	}
	var bad string
	apply := func(d *meeting.Draft) {
		for key, value := range changes {
			switch key {
			case "owner":
				d.Owner = value
			case "due", "due_date":
				d.DueDate = value
			case "priority":
				if p, ok := parsePriority(value); ok && p != "" {
					d.Priority = p
				} else {
					bad = "priority=High|Medium|Low"
				}
			case "status":
				if st, ok := parseStatus(value); ok && st != "" {
					d.Status = st
				} else {
					bad = "status=Pending|In Progress|Done"
				}
			default:
				bad = "/edit <n> owner=.. due=.. priority=.. status=.."
			}
		}
	}
	if !s.opts.Actions.BeginEdit(id) {
		s.println(ansiYellow, s.t("repl.bad_index", idx))
		return
	}
	s.opts.Actions.EditDraft(id, apply)
	if bad != "" {
		s.opts.Actions.CancelEdit(id)
		s.usage(bad)
		return
	}
	_ = s.opts.Actions.SaveEdit(ctx, id)
	s.printActions()
}

func (s *Session) delete(ctx context.Context, rest string) {
	id, ok := s.actionAt(rest)
	if !ok || !s.opts.Actions.RequestDelete(id) {
		return
	}
	answer, err := s.opts.Input.ReadLine(s.t("repl.confirm_prompt", s.t("actions.confirm_delete")))
	if err != nil || !isYes(answer) {
		s.opts.Actions.CancelDelete()
		s.println(ansiDim, s.t("repl.cancelled"))
		return
	}
	_ = s.opts.Actions.ConfirmDelete(ctx)
	s.printActions()
}

func (s *Session) history(ctx context.Context, search string) {
	page := s.opts.History
	page.ClearHighlight()
	if search != page.Search() {
		_ = page.SetSearch(ctx, search)
	} else {
		_ = page.Reload(ctx)
	}
	s.printHistory()
}

func (s *Session) recent() {
	if s.opts.Submissions == nil {
		s.println(ansiDim, s.t("repl.recent_empty"))
		return
	}
	subs, err := s.opts.Submissions.ListSubmissions(recentLimit)
	if err != nil {
		s.println(ansiRed, err.Error())
		return
	}
	s.printRecent(subs)
}

// actionAt resolves a 1-based row number on the action list.
func (s *Session) actionAt(arg string) (string, bool) {
	rows := s.opts.Actions.Snapshot().Rows
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(rows) {
		if strings.TrimSpace(arg) == "" {
			s.usage("<n>")
		} else {
			s.println(ansiYellow, s.t("repl.bad_index", arg))
		}
		return "", false
	}
	return rows[n-1].ID, true
}

// cardAt resolves a 1-based meeting number on the history list.
func (s *Session) cardAt(arg string) (string, bool) {
	cards := s.opts.History.Snapshot().Cards
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(cards) {
		s.println(ansiYellow, s.t("repl.bad_index", arg))
		return "", false
	}
	return cards[n-1].ID, true
}

// parseAssignments splits "owner=Ann Lee status=In Progress" into pairs.
// A word without '=' continues the previous value.
func parseAssignments(text string) map[string]string {
	out := map[string]string{}
	var last string
	for _, word := range strings.Fields(text) {
		if k, v, ok := strings.Cut(word, "="); ok && k != "" {
			last = strings.ToLower(k)
			out[last] = v
			continue
		}
		if last != "" {
			out[last] = strings.TrimSpace(out[last] + " " + word)
		}
	}
	return out
}

func parseMeetingType(s string) (meeting.MeetingType, bool) {
	for _, mt := range meeting.MeetingTypes {
		if strings.EqualFold(string(mt), strings.TrimSpace(s)) {
			return mt, true
		}
	}
	return "", false
}

func joinTypes() string {
	names := make([]string, 0, len(meeting.MeetingTypes))
	for _, mt := range meeting.MeetingTypes {
		names = append(names, string(mt))
	}
	return strings.Join(names, "|")
}

// parsePriority accepts a known priority in any case; empty clears.
func parsePriority(s string) (meeting.Priority, bool) {
	if s == "" {
		return "", true
	}
	for _, p := range meeting.Priorities {
		if strings.EqualFold(string(p), s) {
			return p, true
		}
	}
	return "", false
}

// parseStatus accepts a known status in any case; empty clears.
func parseStatus(s string) (meeting.ActionStatus, bool) {
	if s == "" {
		return "", true
	}
	for _, st := range meeting.ActionStatuses {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}

func isYes(answer string) bool {
	a := strings.ToLower(strings.TrimSpace(answer))
	return a == "y" || a == "yes"
}
