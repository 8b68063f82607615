// Package logging provides config-driven categorized file logging for mandi.
// Logs are written to .mandi/logs/ with one file per category per day.
// Logging is controlled by logging.debug_mode in .mandi/config.yaml; when it
// is false every logger is a no-op and nothing touches the disk.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, config
	CategoryCatalog Category = "catalog" // Fixture and file loading, reloads
	CategoryWizard  Category = "wizard"  // Bid wizard transitions
	CategoryPayment Category = "payment" // Placer calls
	CategoryContact Category = "contact" // WhatsApp links, opener
	CategoryUI      Category = "ui"      // TUI events
)

// Options mirrors config.LoggingConfig to avoid an import cycle.
type Options struct {
	DebugMode  bool
	Level      string
	JSONFormat bool
	Categories map[string]bool
}

// Logger writes to one category file.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
}

var (
	loggers   = make(map[Category]*Logger)
	files     []*os.File
	loggersMu sync.Mutex

	logsDir string
	opts    Options
	level   = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	optsMu  sync.RWMutex
)

// Initialize sets up the logging directory. It should be called once at
// startup with the workspace path; calling it again closes open files and
// applies the new options.
func Initialize(workspace string, o Options) error {
	if workspace == "" {
		return fmt.Errorf("workspace path required")
	}
	CloseAll()

	lvl, err := zapcore.ParseLevel(o.Level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	optsMu.Lock()
	opts = o
	logsDir = filepath.Join(workspace, ".mandi", "logs")
	level.SetLevel(lvl)
	optsMu.Unlock()

	if !o.DebugMode {
		return nil
	}
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	boot := Get(CategoryBoot)
	boot.Info("=== mandi logging initialized ===")
	boot.Info("Workspace: %s", workspace)
	boot.Info("Log level: %s", lvl)
	return nil
}

// IsDebugMode returns whether debug logging is enabled
func IsDebugMode() bool {
	optsMu.RLock()
	defer optsMu.RUnlock()
	return opts.DebugMode
}

// IsCategoryEnabled reports whether a category writes anything. Categories
// missing from the filter are enabled.
func IsCategoryEnabled(category Category) bool {
	optsMu.RLock()
	defer optsMu.RUnlock()

	if !opts.DebugMode || logsDir == "" {
		return false
	}
	enabled, ok := opts.Categories[string(category)]
	return !ok || enabled
}

// Get returns (or creates) the logger for a category. Disabled categories
// get a no-op logger.
func Get(category Category) *Logger {
	if !IsCategoryEnabled(category) {
		return &Logger{category: category, sugar: zap.NewNop().Sugar()}
	}

	loggersMu.Lock()
	defer loggersMu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}

	optsMu.RLock()
	dir, jsonFormat := logsDir, opts.JSONFormat
	optsMu.RUnlock()

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.log", time.Now().Format("2006-01-02"), category))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", path, err)
		return &Logger{category: category, sugar: zap.NewNop().Sugar()}
	}
	files = append(files, file)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if jsonFormat {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(file), level)

	l := &Logger{
		category: category,
		sugar:    zap.New(core).With(zap.String("category", string(category))).Sugar(),
	}
	loggers[category] = l
	return l
}

func (l *Logger) Debug(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.sugar.Infof(format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.sugar.Warnf(format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }

// With returns a logger that adds key/value pairs to every entry, e.g.
// With("listing", id, "epoch", n).
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{category: l.category, sugar: l.sugar.With(keysAndValues...)}
}

// CloseAll flushes and closes all open log files (call at shutdown).
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for _, l := range loggers {
		_ = l.sugar.Sync()
	}
	for _, f := range files {
		f.Close()
	}
	loggers = make(map[Category]*Logger)
	files = nil
}

// =============================================================================
// CONVENIENCE FUNCTIONS - Quick logging without getting a logger first
// These are no-ops if the category is disabled
// =============================================================================

func Boot(format string, args ...interface{})      { Get(CategoryBoot).Info(format, args...) }
func BootError(format string, args ...interface{}) { Get(CategoryBoot).Error(format, args...) }

func Catalog(format string, args ...interface{})     { Get(CategoryCatalog).Info(format, args...) }
func CatalogWarn(format string, args ...interface{}) { Get(CategoryCatalog).Warn(format, args...) }

func Wizard(format string, args ...interface{})      { Get(CategoryWizard).Info(format, args...) }
func WizardDebug(format string, args ...interface{}) { Get(CategoryWizard).Debug(format, args...) }

func Payment(format string, args ...interface{})     { Get(CategoryPayment).Info(format, args...) }
func PaymentWarn(format string, args ...interface{}) { Get(CategoryPayment).Warn(format, args...) }

func Contact(format string, args ...interface{})     { Get(CategoryContact).Info(format, args...) }
func ContactWarn(format string, args ...interface{}) { Get(CategoryContact).Warn(format, args...) }

func UI(format string, args ...interface{})      { Get(CategoryUI).Info(format, args...) }
func UIDebug(format string, args ...interface{}) { Get(CategoryUI).Debug(format, args...) }

// =============================================================================
// TIMING HELPERS
// =============================================================================

// Timer measures an operation and logs its duration.
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{category: category, op: operation, start: time.Now()}
}

// Stop ends the timer and logs the duration at debug level.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}

// StopWithThreshold logs a warning if the duration exceeds threshold.
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warn("%s took %v (threshold: %v)", t.op, elapsed, threshold)
	} else {
		Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	}
	return elapsed
}
