package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIBaseURL = "http://127.0.0.1:8000"

	StoreSQLite = "sqlite"
	StoreFile   = "file"

	fileName = "config.yaml"
)

type Config struct {
	DataDir     string `yaml:"-"`
	DBPath      string `yaml:"-"`
	SessionPath string `yaml:"-"`

	APIBaseURL string `yaml:"api_base_url" env:"CAREERCOMPASS_API_URL"`
	// RequestTimeout of zero leaves requests bounded only by the transport.
	RequestTimeout time.Duration `yaml:"request_timeout" env:"CAREERCOMPASS_REQUEST_TIMEOUT"`
	SessionStore   string        `yaml:"session_store" env:"CAREERCOMPASS_SESSION_STORE"`
	Log            LogConfig     `yaml:"log" envPrefix:"CAREERCOMPASS_LOG_"`
}

type LogConfig struct {
	Level      string `yaml:"level" env:"LEVEL"`
	File       string `yaml:"file" env:"FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"MAX_SIZE_MB"`
	MaxBackups int    `yaml:"max_backups" env:"MAX_BACKUPS"`
	MaxAgeDays int    `yaml:"max_age_days" env:"MAX_AGE_DAYS"`
}

// Options carries command-line overrides. Empty fields are ignored.
type Options struct {
	DataDir    string
	EnvFile    string
	APIBaseURL string
}

// DefaultDataDir returns the per-user directory holding config, local storage and logs.
func DefaultDataDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "careercompass"), nil
}

// New layers defaults, <data-dir>/config.yaml, the optional env file, the
// process environment and finally opts.
func New(opts Options) (Config, error) {
	dataDir := opts.DataDir
	if dataDir == "" {
		var err error
		if dataDir, err = DefaultDataDir(); err != nil {
			return Config{}, err
		}
	}

	cfg := defaults(dataDir)
	if err := loadFile(filepath.Join(dataDir, fileName), &cfg); err != nil {
		return Config{}, err
	}
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", opts.EnvFile, err)
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if opts.APIBaseURL != "" {
		cfg.APIBaseURL = opts.APIBaseURL
	}
	return cfg.normalize()
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func defaults(dataDir string) Config {
	return Config{
		DataDir:      dataDir,
		DBPath:       filepath.Join(dataDir, "careercompass.db"),
		SessionPath:  filepath.Join(dataDir, "session.json"),
		APIBaseURL:   DefaultAPIBaseURL,
		SessionStore: StoreSQLite,
		Log: LogConfig{
			Level:      "info",
			File:       filepath.Join("logs", "careercompass.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func (c Config) normalize() (Config, error) {
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Config{}, fmt.Errorf("api base url %q must be an absolute http(s) url", c.APIBaseURL)
	}
	if c.RequestTimeout < 0 {
		return Config{}, fmt.Errorf("request timeout must be non-negative")
	}
	c.SessionStore = strings.ToLower(strings.TrimSpace(c.SessionStore))
	switch c.SessionStore {
	case StoreSQLite, StoreFile:
	default:
		return Config{}, fmt.Errorf("unknown session store %q (want %s|%s)", c.SessionStore, StoreSQLite, StoreFile)
	}
	if c.Log.File != "" && !filepath.IsAbs(c.Log.File) {
		c.Log.File = filepath.Join(c.DataDir, c.Log.File)
	}
	return c, nil
}
