// Package logger provides structured logging using Zap.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Config selects the encoder and minimum level of the global logger.
type Config struct {
	Env   string
	Level string
}

// Init initializes the global logger. For "production", it uses a JSON
// encoder. For all other environments, it uses a human-readable console
// encoder. An unparsable level falls back to info.
func Init(cfg Config) {
	once.Do(func() {
		var zc zap.Config
		if cfg.Env == "production" {
			zc = zap.NewProductionConfig()
		} else {
			zc = zap.NewDevelopmentConfig()
		}

		if cfg.Level != "" {
			level, err := zapcore.ParseLevel(cfg.Level)
			if err != nil {
				level = zapcore.InfoLevel
			}
			zc.Level = zap.NewAtomicLevelAt(level)
		}

		base, err := zc.Build()
		if err != nil {
			// Fallback to nop logger if initialization fails.
			base = zap.NewNop()
		}

		sugar = base.Sugar()
	})
}

// Get returns the global sugared logger.
// If Init has not been called, it initializes a development logger.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init(Config{Env: "development"})
	}
	return sugar
}

// Named returns a child logger tagged with a component name.
func Named(component string) *zap.SugaredLogger {
	return Get().Named(component)
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
