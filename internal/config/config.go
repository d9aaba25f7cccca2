package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmatrios/ahorrape-front/internal/aggregate"
	"github.com/dmatrios/ahorrape-front/internal/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. AHORRA_API_BASE_URL.
const EnvPrefix = "AHORRA"

// Defaults.
const (
	DefaultBaseURL     = "http://localhost:8080/api"
	DefaultTimeout     = 10 * time.Second
	DefaultSessionPath = "~/.local/share/ahorra/session.db"
	DefaultCurrency    = "S/"
	DefaultGroupBy     = "name"
)

// Config is the resolved application configuration.
type Config struct {
	BaseURL      string
	SessionPath  string
	LogLevel     string
	LogFormat    string
	Currency     string
	ChartGroupBy string
	Theme        string
	ChartPalette []string
	Timeout      time.Duration
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", DefaultTimeout)
	v.SetDefault("session.path", DefaultSessionPath)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("display.currency", DefaultCurrency)
	v.SetDefault("chart.group_by", DefaultGroupBy)
	v.SetDefault("chart.palette", aggregate.DefaultPalette)
	v.SetDefault("ui.theme", "default")
}

// BindEnv makes AHORRA_* variables override dotted keys.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are skipped and set variables are never
// overwritten.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(ExpandPath(p)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load resolves and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		BaseURL:      strings.TrimSpace(v.GetString("api.base_url")),
		Timeout:      v.GetDuration("api.timeout"),
		SessionPath:  ExpandPath(v.GetString("session.path")),
		LogLevel:     v.GetString("logging.level"),
		LogFormat:    v.GetString("logging.format"),
		Currency:     v.GetString("display.currency"),
		ChartGroupBy: strings.ToLower(v.GetString("chart.group_by")),
		ChartPalette: v.GetStringSlice("chart.palette"),
		Theme:        v.GetString("ui.theme"),
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: api.base_url is empty", common.ErrMissingConfig)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("%w: api.timeout must be positive", common.ErrInvalidConfig)
	}
	if cfg.SessionPath == "" {
		return nil, fmt.Errorf("%w: session.path is empty", common.ErrMissingConfig)
	}
	if cfg.SessionPath != ":memory:" {
		cfg.SessionPath = filepath.Clean(cfg.SessionPath)
	}
	switch cfg.ChartGroupBy {
	case "name", "id":
	default:
		return nil, fmt.Errorf("%w: chart.group_by must be name or id, got %q", common.ErrInvalidConfig, cfg.ChartGroupBy)
	}
	if _, err := common.ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if len(cfg.ChartPalette) == 0 {
		cfg.ChartPalette = append([]string(nil), aggregate.DefaultPalette...)
	}
	return cfg, nil
}
