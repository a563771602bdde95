package bootstrap

import (
	"fmt"

	"meetingmind/internal/config"
	"meetingmind/internal/i18n"
	"meetingmind/internal/logging"
)

func openLogger(cfg config.Config) (*logging.Logger, error) {
	l, err := logging.Open(logging.Options{
		Path:   cfg.LogPath(),
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		MaxMB:  cfg.Storage.LogMaxMB,
	})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	return l, nil
}

// initLocale 设置全局语言并返回实例；空值时从环境检测
// initLocale sets the global locale and returns it; empty means detect from env
func initLocale(cfg config.Config) *i18n.I18n {
	i18n.Init(cfg.UI.Locale)
	return i18n.Global()
}
