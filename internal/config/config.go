// Package config loads plangrid settings from defaults, an optional YAML
// file and PLANGRID_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Backend selects where the persisted state lives.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

// Config holds all application settings.
type Config struct {
	Backend    Backend        `mapstructure:"backend"`
	DBPath     string         `mapstructure:"db"`
	Redis      RedisConfig    `mapstructure:"redis"`
	StorageKey string         `mapstructure:"storage_key"`
	HTTP       HTTPConfig     `mapstructure:"http"`
	Log        LogConfig      `mapstructure:"log"`
	Timeline   TimelineConfig `mapstructure:"timeline"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type HTTPConfig struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Calls bool   `mapstructure:"calls"`
}

// TimelineConfig is the default grid given to new plannings, in file form.
type TimelineConfig struct {
	StartDate     string `mapstructure:"start_date"`
	EndDate       string `mapstructure:"end_date"`
	Granularity   string `mapstructure:"granularity"`
	Step          int    `mapstructure:"step"`
	CardSplitUnit string `mapstructure:"card_split_unit"`
	CardSplitSize int    `mapstructure:"card_split_size"`
	LabelFormat   string `mapstructure:"label_format"`
	SnapMode      string `mapstructure:"snap_mode"`
}

// DefaultConfig returns the settings used when nothing overrides them.
// State is kept in ~/.plangrid/plangrid.db.
func DefaultConfig() Config {
	def := domain.DefaultTimelineConfig()
	return Config{
		Backend:    BackendSQLite,
		DBPath:     filepath.Join(HomeDir(), "plangrid.db"),
		Redis:      RedisConfig{Addr: "localhost:6379"},
		StorageKey: "plangrid-state",
		HTTP:       HTTPConfig{Addr: ":8080", CORSOrigins: []string{"*"}},
		Log:        LogConfig{Level: "info"},
		Timeline: TimelineConfig{
			StartDate:     domain.FormatDate(def.StartDate),
			EndDate:       domain.FormatDate(def.EndDate),
			Granularity:   string(def.Granularity),
			Step:          def.Step,
			CardSplitUnit: string(def.CardSplitUnit),
			CardSplitSize: def.CardSplitSize,
			LabelFormat:   def.LabelFormat,
			SnapMode:      string(def.SnapMode),
		},
	}
}

// HomeDir returns the plangrid directory under the user's home, or the
// working directory when no home is known.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".plangrid"
	}
	return filepath.Join(home, ".plangrid")
}

// DefaultConfigPath returns the config file read when PLANGRID_CONFIG is unset.
func DefaultConfigPath() string {
	return filepath.Join(HomeDir(), "config.yaml")
}

// Load reads a .env file if present, then builds the config from defaults,
// the YAML config file and environment overrides. A missing default config
// file is not an error; a missing PLANGRID_CONFIG file is.
func Load() (Config, error) {
	// Ignore error: the .env file is optional.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	path, explicit := os.LookupEnv("PLANGRID_CONFIG")
	if !explicit || path == "" {
		path = DefaultConfigPath()
	}
	if err := loadFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}
	return v.Unmarshal(cfg)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PLANGRID_BACKEND"); v != "" {
		cfg.Backend = Backend(strings.ToLower(v))
	}
	if v := os.Getenv("PLANGRID_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PLANGRID_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("PLANGRID_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("PLANGRID_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Redis.DB = n
		}
	}
	if v := os.Getenv("PLANGRID_STORAGE_KEY"); v != "" {
		cfg.StorageKey = v
	}
	if v := os.Getenv("PLANGRID_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("PLANGRID_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("PLANGRID_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PLANGRID_LOG_CALLS"); v != "" {
		cfg.Log.Calls, _ = strconv.ParseBool(v)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("db path is required for the %s backend", c.Backend)
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis address is required for the %s backend", c.Backend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want sqlite, redis or memory)", c.Backend)
	}
	if c.StorageKey == "" {
		return fmt.Errorf("storage key is required")
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http address is required")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if _, err := c.Timeline.Domain(); err != nil {
		return fmt.Errorf("timeline: %w", err)
	}
	return nil
}

// LogLevel parses the configured log level.
func (c Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// Domain converts t into a validated timeline config.
func (t TimelineConfig) Domain() (domain.TimelineConfig, error) {
	start, err := domain.ParseDate(t.StartDate)
	if err != nil {
		return domain.TimelineConfig{}, fmt.Errorf("start_date: %w", err)
	}
	end, err := domain.ParseDate(t.EndDate)
	if err != nil {
		return domain.TimelineConfig{}, fmt.Errorf("end_date: %w", err)
	}

	cfg := domain.TimelineConfig{
		StartDate:     start,
		EndDate:       end,
		Granularity:   domain.Granularity(t.Granularity),
		Step:          t.Step,
		CardSplitUnit: domain.CardSplitUnit(t.CardSplitUnit),
		CardSplitSize: t.CardSplitSize,
		LabelFormat:   t.LabelFormat,
		SnapMode:      domain.SnapMode(t.SnapMode),
	}
	if err := cfg.Validate(); err != nil {
		return domain.TimelineConfig{}, err
	}
	return cfg, nil
}
