// Package repl is the plain-text mode: the three pages driven by slash
// commands on a line-oriented terminal.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"

	"meetingmind/internal/dashboard"
	"meetingmind/internal/history"
	"meetingmind/internal/i18n"
	"meetingmind/internal/notify"
	"meetingmind/internal/storage"
	"meetingmind/internal/upload"
)

const (
	ansiReset  = "\x1b[0m"
	ansiDim    = "\x1b[90m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
)

// SubmissionLister 本地提交记录
// SubmissionLister lists meetings created from this machine
type SubmissionLister interface {
	ListSubmissions(limit int) ([]storage.Submission, error)
}

type Options struct {
	Upload  *upload.Flow
	Actions *dashboard.Board
	History *history.Page
	// Submissions is optional; nil disables /recent.
	Submissions SubmissionLister
	Locale      *i18n.I18n
	Logger      zerolog.Logger
	APIURL      string
	// Highlight opens history with this meeting expanded on start.
	Highlight string

	Input LineInput
	Out   io.Writer
	// Color forces ANSI output on or off; nil follows NO_COLOR and TERM.
	Color *bool
	// Sleep waits before the post-submit redirect. Tests replace it.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Session 纯文本模式会话
// Session is one plain-mode run
type Session struct {
	opts  Options
	out   io.Writer
	color bool
	// seen holds the last toast id printed per page.
	seen map[*notify.Center]uint64
}

func New(opts Options) *Session {
	if opts.Locale == nil {
		opts.Locale = i18n.Global()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = NewBasicInput(os.Stdin, opts.Out)
	}
	if opts.Sleep == nil {
		opts.Sleep = sleep
	}
	color := useColor()
	if opts.Color != nil {
		color = *opts.Color
	}
	return &Session{
		opts:  opts,
		out:   opts.Out,
		color: color,
		seen:  map[*notify.Center]uint64{},
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Run 读取命令直到 /quit 或输入结束
// Run reads commands until /quit, end of input or ctx is cancelled
func (s *Session) Run(ctx context.Context) error {
	s.printf(ansiBold, "%s\n", s.t("repl.welcome", s.opts.APIURL))
	s.println(ansiDim, s.t("repl.help"))
	if restored, err := s.opts.Upload.RestoreDraft(); err != nil {
		s.opts.Logger.Warn().Err(err).Msg("restore draft")
	} else if restored {
		s.flushToasts()
	}
	if s.opts.Highlight != "" {
		s.opts.History.Highlight(s.opts.Highlight)
		_ = s.opts.History.Reload(ctx)
		s.printHistory()
		s.flushToasts()
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := s.opts.Input.ReadLine("> ")
		if err != nil {
			switch {
			case errors.Is(err, readline.ErrInterrupt):
				fmt.Fprintln(s.out)
				continue
			case errors.Is(err, io.EOF):
				s.saveDraft()
				s.println(ansiDim, s.t("repl.bye"))
				return nil
			default:
				return fmt.Errorf("read input: %w", err)
			}
		}
		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if s.Exec(ctx, input) {
			s.saveDraft()
			s.println(ansiDim, s.t("repl.bye"))
			return nil
		}
	}
}

func (s *Session) saveDraft() {
	if err := s.opts.Upload.SaveDraft(); err != nil {
		s.opts.Logger.Warn().Err(err).Msg("save draft")
	}
}

// flushToasts prints toasts not shown yet on any page.
func (s *Session) flushToasts() {
	for _, c := range []*notify.Center{
		s.opts.Upload.Toasts(),
		s.opts.Actions.Toasts(),
		s.opts.History.Toasts(),
	} {
		t, ok := c.Current()
		if !ok || t.ID <= s.seen[c] {
			continue
		}
		s.seen[c] = t.ID
		if t.Kind == notify.KindError {
			s.printf(ansiRed, "✗ %s\n", t.Text)
		} else {
			s.printf(ansiGreen, "✓ %s\n", t.Text)
		}
	}
}

func (s *Session) t(key string, args ...any) string {
	return s.opts.Locale.T(key, args...)
}

func (s *Session) paint(color, text string) string {
	if !s.color || color == "" {
		return text
	}
	return color + text + ansiReset
}

func (s *Session) println(color, text string) {
	fmt.Fprintln(s.out, s.paint(color, text))
}

func (s *Session) printf(color, format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	trimmed := strings.TrimSuffix(text, "\n")
	fmt.Fprint(s.out, s.paint(color, trimmed))
	if len(trimmed) != len(text) {
		fmt.Fprintln(s.out)
	}
}

func useColor() bool {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}
	if strings.TrimSpace(os.Getenv("MEETINGMIND_NO_COLOR")) != "" {
		return false
	}
	return strings.ToLower(strings.TrimSpace(os.Getenv("TERM"))) != "dumb"
}
