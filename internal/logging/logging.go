package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const developmentEnvironment = "development"

// Options describes the logger to build. Level and Environment are free-form
// strings taken from the settings registry.
type Options struct {
	Level       string
	Environment string
	File        string
	MaxSizeMB   int
	MaxBackups  int
	MaxAgeDays  int
}

// Control adjusts a logger built by New after construction.
type Control struct {
	level zap.AtomicLevel
	file  io.Closer
}

// SetLevel switches the logger to the named level. Unknown names mean info.
func (c *Control) SetLevel(name string) {
	c.level.SetLevel(ParseLevel(name))
}

// Level reports the current minimum level.
func (c *Control) Level() zapcore.Level {
	return c.level.Level()
}

// Close releases the log file, if one was opened. Sync the logger first.
func (c *Control) Close() error {
	if c == nil || c.file == nil {
		return nil
	}
	return c.file.Close()
}

// New creates a structured logger configured for JSON output. Unknown levels
// fall back to info and unknown environments use the production preset.
func New(opts Options) (*zap.Logger, *Control, error) {
	cfg := zap.NewProductionConfig()
	if strings.EqualFold(strings.TrimSpace(opts.Environment), developmentEnvironment) {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Encoding = "json"
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(opts.Level))
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.StacktraceKey = "stacktrace"
	cfg.DisableStacktrace = false

	control := &Control{level: cfg.Level}

	var buildOpts []zap.Option
	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
		}
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(cfg.EncoderConfig),
			zapcore.AddSync(rotator),
			cfg.Level,
		)
		control.file = rotator
		buildOpts = append(buildOpts, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore)
		}))
	}

	logger, err := cfg.Build(buildOpts...)
	if err != nil {
		_ = control.Close()
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, control, nil
}

// ParseLevel maps a level name to a zap level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
