// Package config reads the environment configuration used by the shared
// library builds, which have no command line of their own.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment variables recognised by FromEnv.
const (
	EnvLogLevel  = "PRIMITIVES_LOG_LEVEL"
	EnvLogFormat = "PRIMITIVES_LOG_FORMAT"
	EnvStrict    = "PRIMITIVES_STRICT"
)

// Log encodings.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config holds library-wide settings.
type Config struct {
	// LogLevel is only meaningful when Logging is set.
	LogLevel  zapcore.Level
	LogFormat string
	Logging   bool

	// Strict enables the ownership ledger on every heap the library owns.
	Strict bool
}

// Default returns a configuration with logging disabled and strict
// ownership checking off.
func Default() Config {
	return Config{
		LogLevel:  zapcore.InfoLevel,
		LogFormat: FormatJSON,
	}
}

// FromEnv reads the process environment.
func FromEnv() (Config, error) {
	return Parse(os.LookupEnv)
}

// Parse builds a Config from lookup, which has the signature of
// os.LookupEnv. Unset variables keep their defaults.
func Parse(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		level, err := zapcore.ParseLevel(strings.TrimSpace(v))
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = level
		cfg.Logging = true
	}

	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		switch f := strings.ToLower(strings.TrimSpace(v)); f {
		case FormatJSON, FormatConsole:
			cfg.LogFormat = f
		default:
			return cfg, fmt.Errorf("%s: unknown format %q (want %s or %s)", EnvLogFormat, v, FormatJSON, FormatConsole)
		}
	}

	if v, ok := lookup(EnvStrict); ok && v != "" {
		strict, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvStrict, err)
		}
		cfg.Strict = strict
	}

	return cfg, nil
}

// Logger builds the logger described by c. With logging disabled it
// returns a no-op logger.
func (c Config) Logger() (*zap.Logger, error) {
	if !c.Logging {
		return zap.NewNop(), nil
	}

	zc := zap.NewProductionConfig()
	if c.LogFormat == FormatConsole {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(c.LogLevel)
	zc.Encoding = c.LogFormat
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.Sampling = nil

	return zc.Build(zap.Fields(zap.String("component", "primitives")))
}
