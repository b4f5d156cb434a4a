// Package config loads the settings of the unitdb command line tool from
// flags, UNITDB_* environment variables and an optional config file.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by [Load].
const EnvPrefix = "UNITDB"

// Keys understood by [Load]. Flags bound to a viper instance must use them.
const (
	KeyFile      = "file"
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
	KeyLimit     = "default-limit"
	KeyHistory   = "history"
)

// Config holds the command line settings.
type Config struct {
	// File is the JSON lines file loaded on start and written by .save.
	File string `mapstructure:"file"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `mapstructure:"log-level"`
	// LogFormat is either text or json.
	LogFormat string `mapstructure:"log-format"`
	// Limit is the default limit for queries without one. Zero keeps the
	// store default.
	Limit int64 `mapstructure:"default-limit"`
	// History is the file keeping the shell history. Empty disables it.
	History string `mapstructure:"history"`
}

// ErrLogFormat is returned by [Config.Logger] for unknown log formats.
type ErrLogFormat struct {
	Format string
}

// Error implements [error].
func (e ErrLogFormat) Error() string {
	return fmt.Sprintf("unknown log format %q", e.Format)
}

// SetDefaults registers the default value of every key in v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyFile, "")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyLimit, 0)
	v.SetDefault(KeyHistory, "")
}

// Load reads the configuration. Values are looked up in v, which may have
// flags bound to it, then in the environment, then in configFile when it is
// not empty, then in the defaults.
func Load(v *viper.Viper, configFile string) (Config, error) {
	var cfg Config

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// Logger returns a logger writing to w with the configured level and format.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(c.LogFormat) {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, ErrLogFormat{Format: c.LogFormat}
	}
	return slog.New(handler), nil
}
