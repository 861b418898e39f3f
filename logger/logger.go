// Package logger builds the process logger from config.
package logger

import (
	"fmt"
	"os"

	"github.com/jannetahkola/webgpu-game/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type options struct {
	console zapcore.WriteSyncer
}

type Option func(*options)

// WithConsole redirects console output, which otherwise goes to stderr.
func WithConsole(ws zapcore.WriteSyncer) Option {
	return func(o *options) {
		if ws != nil {
			o.console = ws
		}
	}
}

// New returns a logger writing human readable lines to the console and, when
// cfg.File is set, JSON lines to a size rotated file. Callers should Sync on
// exit.
func New(cfg config.Log, opts ...Option) (*zap.Logger, error) {
	o := options{console: zapcore.Lock(os.Stderr)}
	for _, opt := range opts {
		opt(&o)
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	enabled := zap.NewAtomicLevelAt(level)

	consoleEncoder := zap.NewDevelopmentEncoderConfig()
	consoleEncoder.EncodeLevel = zapcore.CapitalLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoder), o.console, enabled),
	}

	if cfg.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotated),
			enabled,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}
