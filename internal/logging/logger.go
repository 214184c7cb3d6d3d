// Package logging provides config-driven categorized file-based logging for studybuddy.
// Logs are written to a single file with one named zap logger per category;
// logging.categories switches individual categories off.
// Logging is controlled by debug_mode in the config - when false, no logs are written,
// so the chat terminal is never interleaved with diagnostics.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"studybuddy/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot       Category = "boot"       // Boot/initialization
	CategorySession    Category = "session"    // REPL loop, turn lifecycle
	CategoryPerception Category = "perception" // Normalization and intent classification
	CategoryDialogue   Category = "dialogue"   // Handler dispatch, slot filling
	CategoryMemory     Category = "memory"     // Memory load/persist
	CategoryCalc       Category = "calc"       // Expression evaluation
	CategoryInsights   Category = "insights"   // CSV loading and statistics
)

// ParseLevel maps a config level string onto a zap level. Unknown values mean info.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// New builds the root logger. With debug mode off it returns a no-op logger.
// verbose forces debug level regardless of the configured one.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	if !cfg.Enabled() {
		return zap.NewNop(), nil
	}

	if cfg.File == "" {
		return nil, fmt.Errorf("logging.file is required when debug_mode is on")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Format != "json" {
		zc = zap.NewDevelopmentConfig()
	}
	level := ParseLevel(cfg.Level)
	if verbose {
		level = zap.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{cfg.File}
	zc.ErrorOutputPaths = []string{cfg.File}

	logger, err := zc.Build(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return categoryCore{Core: core, cfg: cfg}
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// categoryCore drops entries whose category (the first segment of the logger
// name) is switched off in logging.categories.
type categoryCore struct {
	zapcore.Core
	cfg config.LoggingConfig
}

func (c categoryCore) With(fields []zapcore.Field) zapcore.Core {
	return categoryCore{Core: c.Core.With(fields), cfg: c.cfg}
}

func (c categoryCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	category, _, _ := strings.Cut(ent.LoggerName, ".")
	if category != "" && !c.cfg.IsCategoryEnabled(category) {
		return ce
	}
	return c.Core.Check(ent, ce)
}

// For returns a child logger for the given category. A nil parent yields a no-op logger.
func For(parent *zap.Logger, category Category) *zap.Logger {
	if parent == nil {
		return zap.NewNop()
	}
	return parent.Named(string(category))
}
