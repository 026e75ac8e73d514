package logs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Logger = zap.NewNop().Sugar()
	base   = zap.NewNop()
	mu     sync.Mutex
)

// FileName is the log file written inside the log directory.
const FileName = "tripcal.log"

// Initialize points the logger at <logDir>/tripcal.log. The terminal UI owns
// stdout, so logs always go to a file. An empty dir keeps the no-op logger.
func Initialize(logDir string, verbose bool) error {
	mu.Lock()
	defer mu.Unlock()

	if logDir == "" {
		return nil
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(logDir, FileName)}
	cfg.ErrorOutputPaths = []string{filepath.Join(logDir, FileName)}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	_ = base.Sync()
	base = l
	Logger = l.Sugar().Named("tripcal")
	Logger.Infow("logger initialized", "path", cfg.OutputPaths[0], "verbose", verbose)
	return nil
}

// Use swaps in a caller-built logger, e.g. zaptest or zap.NewNop in tests.
func Use(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
	Logger = l.Sugar()
}

// Base returns the underlying structured logger for components that take
// a *zap.Logger.
func Base() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return base
}

// Close flushes buffered entries.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return base.Sync()
}
