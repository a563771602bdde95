package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"meetingmind/internal/api"
	"meetingmind/internal/config"
	"meetingmind/internal/dashboard"
	"meetingmind/internal/history"
	"meetingmind/internal/i18n"
	"meetingmind/internal/logging"
	"meetingmind/internal/notify"
	"meetingmind/internal/storage"
	"meetingmind/internal/tokenizer"
	"meetingmind/internal/upload"
)

// BuildResult 与 UI 无关的构建结果，供 main 选择 TUI 或纯文本模式
// BuildResult is UI-agnostic; main hands it to the TUI or plain mode
type BuildResult struct {
	Config    config.Config
	Logger    zerolog.Logger
	Client    *api.Client
	Store     storage.Store
	Locale    *i18n.I18n
	Tokenizer *tokenizer.Tokenizer

	Upload  *upload.Flow
	Actions *dashboard.Board
	History *history.Page

	cancel  context.CancelFunc
	logFile *logging.Logger
}

// Build 按顺序初始化日志、存储、API 客户端和页面服务；调用方负责 defer Close()
// Build initializes logger, store, API client and page services in order; caller must defer Close()
func Build(cfg config.Config) (*BuildResult, error) {
	logFile, err := openLogger(cfg)
	if err != nil {
		return nil, err
	}
	log := logFile.Logger

	store, err := storage.NewSQLiteStore(cfg.DBPath())
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}

	locale := initLocale(cfg)
	tok := tokenizer.Default()
	tok.Warm()

	client := api.NewClient(api.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.Timeout(),
		Logger:  log.With().Str("component", "api").Logger(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	res := &BuildResult{
		Config:    cfg,
		Logger:    log,
		Client:    client,
		Store:     store,
		Locale:    locale,
		Tokenizer: tok,
		cancel:    cancel,
		logFile:   logFile,
	}
	res.Upload = upload.New(upload.Options{
		Service:       client,
		Drafts:        store,
		Toasts:        notify.NewCenter(cfg.UploadToastTTL()),
		Locale:        locale,
		Tokenizer:     tok,
		MaxFileBytes:  cfg.Upload.MaxFileBytes,
		RedirectDelay: cfg.RedirectDelay(),
		Logger:        log.With().Str("page", "upload").Logger(),
	})
	res.Actions = dashboard.New(dashboard.Options{
		Service: client,
		Toasts:  notify.NewCenter(cfg.ToastTTL()),
		Locale:  locale,
		Logger:  log.With().Str("page", "actions").Logger(),
		Parent:  ctx,
	})
	res.History = history.New(history.Options{
		Service: client,
		Toasts:  notify.NewCenter(cfg.ToastTTL()),
		Logger:  log.With().Str("page", "history").Logger(),
		Parent:  ctx,
	})

	log.Info().
		Str("api", client.BaseURL()).
		Str("db", cfg.DBPath()).
		Str("locale", locale.Locale()).
		Msg("meetingmind started")
	return res, nil
}

// Close cancels page fetches and releases the store and log file.
func (r *BuildResult) Close() error {
	if r == nil {
		return nil
	}
	if r.cancel != nil {
		r.cancel()
	}
	r.Actions.Close()
	r.History.Close()
	var errs []error
	if r.Store != nil {
		errs = append(errs, r.Store.Close())
	}
	errs = append(errs, r.logFile.Close())
	return errors.Join(errs...)
}
