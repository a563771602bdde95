package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type APIConfig struct {
	BaseURL   string `json:"base_url"`
	TimeoutMS int    `json:"timeout_ms"`
}

type UIConfig struct {
	Locale          string `json:"locale"`
	ToastMS         int    `json:"toast_ms"`
	UploadToastMS   int    `json:"upload_toast_ms"`
	RedirectDelayMS int    `json:"redirect_delay_ms"`
}

type UploadConfig struct {
	MaxFileBytes int64 `json:"max_file_bytes"`
}

type StorageConfig struct {
	BaseDir  string `json:"base_dir"`
	LogMaxMB int    `json:"log_max_mb"`
}

type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

type Config struct {
	API     APIConfig     `json:"api"`
	UI      UIConfig      `json:"ui"`
	Upload  UploadConfig  `json:"upload"`
	Storage StorageConfig `json:"storage"`
	Log     LogConfig     `json:"log"`
}

type fileConfig struct {
	API     *APIConfig     `json:"api"`
	UI      *UIConfig      `json:"ui"`
	Upload  *UploadConfig  `json:"upload"`
	Storage *StorageConfig `json:"storage"`
	Log     *LogConfig     `json:"log"`
}

// envOverrides are read with prefix MEETINGMIND_.
type envOverrides struct {
	APIURL     string `envconfig:"API_URL"`
	TimeoutMS  int    `envconfig:"TIMEOUT_MS"`
	Locale     string `envconfig:"LOCALE"`
	LogLevel   string `envconfig:"LOG_LEVEL"`
	LogFormat  string `envconfig:"LOG_FORMAT"`
	StateDir   string `envconfig:"STATE_DIR"`
	ConfigPath string `envconfig:"CONFIG_PATH"`
}

func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:   DefaultAPIBaseURL,
			TimeoutMS: DefaultAPITimeoutMS,
		},
		UI: UIConfig{
			ToastMS:         DefaultToastMS,
			UploadToastMS:   DefaultUploadToastMS,
			RedirectDelayMS: DefaultRedirectDelayMS,
		},
		Upload: UploadConfig{
			MaxFileBytes: DefaultMaxFileBytes,
		},
		Storage: StorageConfig{
			BaseDir:  DefaultStorageBaseDir,
			LogMaxMB: DefaultLogMaxMB,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Timeout returns the API call timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutMS) * time.Millisecond
}

func (c Config) ToastTTL() time.Duration {
	return time.Duration(c.UI.ToastMS) * time.Millisecond
}

// UploadToastTTL is the toast duration on the upload page.
func (c Config) UploadToastTTL() time.Duration {
	return time.Duration(c.UI.UploadToastMS) * time.Millisecond
}

func (c Config) RedirectDelay() time.Duration {
	return time.Duration(c.UI.RedirectDelayMS) * time.Millisecond
}

// DBPath is the local SQLite file.
func (c Config) DBPath() string {
	return filepath.Join(c.Storage.BaseDir, "meetingmind.db")
}

// LogPath is the debug log file.
func (c Config) LogPath() string {
	return filepath.Join(c.Storage.BaseDir, "logs", "meetingmind.log")
}

// HistoryPath is the plain-mode readline history file.
func (c Config) HistoryPath() string {
	return filepath.Join(c.Storage.BaseDir, "repl_history")
}

// Load layers defaults, the global file, the project file, .env and the
// environment, in that order.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	for _, globalPath := range globalConfigPaths() {
		if err := mergeFromFile(&cfg, globalPath); err != nil {
			return Config{}, err
		}
	}

	resolvedPath := strings.TrimSpace(path)
	if envPath := strings.TrimSpace(env.ConfigPath); envPath != "" {
		resolvedPath = envPath
	}
	if resolvedPath == "" {
		resolvedPath = findProjectConfigPath()
	}
	if err := mergeFromFile(&cfg, resolvedPath); err != nil {
		return Config{}, err
	}

	applyEnv(&cfg, env)
	if err := normalize(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadDotEnv 读取 .env；已存在的环境变量不会被覆盖
// loadDotEnv reads .env without overriding variables already set
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func globalConfigPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(home, ".meetingmind", "config.json")}
}

func findProjectConfigPath() string {
	candidates := []string{
		"meetingmind.config.json",
		".meetingmind/config.json",
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

func mergeFromFile(cfg *Config, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	resolved, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("expand config path %q: %w", path, err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %q: %w", resolved, err)
	}

	cleaned := stripJSONComments(data)
	var fileCfg fileConfig
	if err := json.Unmarshal(cleaned, &fileCfg); err != nil {
		return fmt.Errorf("parse config %q: %w", resolved, err)
	}
	applyFileConfig(cfg, fileCfg)
	return nil
}

func applyFileConfig(cfg *Config, fc fileConfig) {
	if fc.API != nil {
		if strings.TrimSpace(fc.API.BaseURL) != "" {
			cfg.API.BaseURL = fc.API.BaseURL
		}
		if fc.API.TimeoutMS > 0 {
			cfg.API.TimeoutMS = fc.API.TimeoutMS
		}
	}
	if fc.UI != nil {
		if strings.TrimSpace(fc.UI.Locale) != "" {
			cfg.UI.Locale = fc.UI.Locale
		}
		if fc.UI.ToastMS > 0 {
			cfg.UI.ToastMS = fc.UI.ToastMS
		}
		if fc.UI.UploadToastMS > 0 {
			cfg.UI.UploadToastMS = fc.UI.UploadToastMS
		}
		if fc.UI.RedirectDelayMS > 0 {
			cfg.UI.RedirectDelayMS = fc.UI.RedirectDelayMS
		}
	}
	if fc.Upload != nil && fc.Upload.MaxFileBytes > 0 {
		cfg.Upload.MaxFileBytes = fc.Upload.MaxFileBytes
	}
	if fc.Storage != nil {
		if strings.TrimSpace(fc.Storage.BaseDir) != "" {
			cfg.Storage.BaseDir = fc.Storage.BaseDir
		}
		if fc.Storage.LogMaxMB > 0 {
			cfg.Storage.LogMaxMB = fc.Storage.LogMaxMB
		}
	}
	if fc.Log != nil {
		if strings.TrimSpace(fc.Log.Level) != "" {
			cfg.Log.Level = fc.Log.Level
		}
		if strings.TrimSpace(fc.Log.Format) != "" {
			cfg.Log.Format = fc.Log.Format
		}
	}
}

func applyEnv(cfg *Config, env envOverrides) {
	apiURL := strings.TrimSpace(env.APIURL)
	if apiURL == "" {
		// 兼容旧的前端部署变量 / legacy front-end deployment variable
		apiURL = strings.TrimSpace(os.Getenv("REACT_APP_API_URL"))
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if env.TimeoutMS > 0 {
		cfg.API.TimeoutMS = env.TimeoutMS
	}
	if v := strings.TrimSpace(env.Locale); v != "" {
		cfg.UI.Locale = v
	}
	if v := strings.TrimSpace(env.LogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(env.LogFormat); v != "" {
		cfg.Log.Format = v
	}
	if v := strings.TrimSpace(env.StateDir); v != "" {
		cfg.Storage.BaseDir = v
	}
}

func normalize(cfg *Config) error {
	def := Default()

	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = def.API.BaseURL
	}
	if cfg.API.TimeoutMS <= 0 {
		cfg.API.TimeoutMS = def.API.TimeoutMS
	}

	cfg.UI.Locale = strings.TrimSpace(cfg.UI.Locale)
	if cfg.UI.ToastMS <= 0 {
		cfg.UI.ToastMS = def.UI.ToastMS
	}
	if cfg.UI.UploadToastMS <= 0 {
		cfg.UI.UploadToastMS = def.UI.UploadToastMS
	}
	if cfg.UI.RedirectDelayMS <= 0 {
		cfg.UI.RedirectDelayMS = def.UI.RedirectDelayMS
	}
	if cfg.Upload.MaxFileBytes <= 0 {
		cfg.Upload.MaxFileBytes = def.Upload.MaxFileBytes
	}

	if strings.TrimSpace(cfg.Storage.BaseDir) == "" {
		cfg.Storage.BaseDir = def.Storage.BaseDir
	}
	storageDir, err := expandPath(cfg.Storage.BaseDir)
	if err != nil {
		return err
	}
	cfg.Storage.BaseDir = storageDir
	if cfg.Storage.LogMaxMB <= 0 {
		cfg.Storage.LogMaxMB = def.Storage.LogMaxMB
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error", "disabled":
	case "":
		cfg.Log.Level = def.Log.Level
	default:
		return fmt.Errorf("invalid log.level: %q", cfg.Log.Level)
	}
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	if cfg.Log.Format != "console" {
		cfg.Log.Format = def.Log.Format
	}
	return nil
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		if path == "~" {
			path = home
		} else {
			path = filepath.Join(home, strings.TrimPrefix(path, "~/"))
		}
	}
	return filepath.Abs(path)
}

func stripJSONComments(data []byte) []byte {
	const (
		stateNormal = iota
		stateString
		stateLineComment
		stateBlockComment
	)

	state := stateNormal
	escaped := false
	out := bytes.Buffer{}

	for i := 0; i < len(data); i++ {
		c := data[i]
		next := byte(0)
		if i+1 < len(data) {
			next = data[i+1]
		}

		switch state {
		case stateNormal:
			if c == '"' {
				state = stateString
				out.WriteByte(c)
				continue
			}
			if c == '/' && next == '/' {
				state = stateLineComment
				i++
				continue
			}
			if c == '/' && next == '*' {
				state = stateBlockComment
				i++
				continue
			}
			out.WriteByte(c)
		case stateString:
			out.WriteByte(c)
			if escaped {
				escaped = false
				continue
			}
			if c == '\\' {
				escaped = true
				continue
			}
			if c == '"' {
				state = stateNormal
			}
		case stateLineComment:
			if c == '\n' {
				state = stateNormal
				out.WriteByte(c)
			}
		case stateBlockComment:
			if c == '*' && next == '/' {
				state = stateNormal
				i++
			}
		}
	}

	return out.Bytes()
}
