package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chzyer/readline"

	"meetingmind/internal/bootstrap"
	"meetingmind/internal/config"
	"meetingmind/internal/repl"
	"meetingmind/internal/tui"
)

type cliOptions struct {
	configPath string
	plain      bool
	highlight  string
	page       tui.PageID
	initConfig bool
}

func parseArgs(args []string, stderr io.Writer) (cliOptions, error) {
	var (
		opts cliOptions
		page string
	)
	fs := flag.NewFlagSet("meetingmind", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Path to config JSON/JSONC")
	fs.BoolVar(&opts.plain, "plain", false, "Plain line mode instead of the full-screen UI")
	fs.StringVar(&opts.highlight, "highlight", "", "Open history with this meeting expanded")
	fs.StringVar(&page, "page", "upload", "First page: upload, actions or history")
	fs.BoolVar(&opts.initConfig, "init", false, "Write .meetingmind/config.json in the current directory and exit")
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}
	p, ok := tui.ParsePage(page)
	if !ok {
		return cliOptions{}, fmt.Errorf("unknown page %q", page)
	}
	opts.page = p
	opts.highlight = strings.TrimSpace(opts.highlight)
	return opts, nil
}

// usePlain picks the line mode when asked or when stdin is not a terminal.
func usePlain(opts cliOptions, isTerminal bool) bool {
	return opts.plain || !isTerminal
}

func main() {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	if opts.initConfig {
		path, err := config.InitProjectConfigScaffold("")
		if err != nil {
			fmt.Fprintf(os.Stderr, "init config failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("project config: %s\n", path)
		return
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}

	res, err := bootstrap.Build(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}
	defer res.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if usePlain(opts, readline.DefaultIsTerminal()) {
		err = runPlain(ctx, res, opts)
	} else {
		err = tui.Run(tui.Options{
			Upload:    res.Upload,
			Actions:   res.Actions,
			History:   res.History,
			Locale:    res.Locale,
			Page:      opts.page,
			Highlight: opts.highlight,
			APIURL:    res.Client.BaseURL(),
			Context:   ctx,
		})
	}
	if err != nil {
		res.Logger.Error().Err(err).Msg("exited with error")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		_ = res.Close()
		os.Exit(1)
	}
}

func runPlain(ctx context.Context, res *bootstrap.BuildResult, opts cliOptions) error {
	input, inputErr := repl.NewInput(res.Config.HistoryPath())
	if inputErr != nil {
		res.Logger.Warn().Err(inputErr).Msg("line editor unavailable, fallback to basic input")
	}
	defer input.Close()

	session := repl.New(repl.Options{
		Upload:      res.Upload,
		Actions:     res.Actions,
		History:     res.History,
		Submissions: res.Store,
		Locale:      res.Locale,
		Logger:      res.Logger.With().Str("mode", "plain").Logger(),
		APIURL:      res.Client.BaseURL(),
		Input:       input,
		Out:         os.Stdout,
		Highlight:   opts.highlight,
	})
	return session.Run(ctx)
}
