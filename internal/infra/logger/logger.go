package logger

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Debug bool
	// Path is an optional log file; empty logs to stderr.
	Path string
}

var (
	mu     sync.RWMutex
	global = zap.NewNop()
)

// Setup builds the process-wide logger and returns a cleanup that syncs it
// and restores the no-op logger.
func Setup(cfg Config) (func() error, error) {
	zc := zap.NewProductionConfig()
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Debug {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		zc.Development = true
	}

	path := ""
	if cfg.Path != "" {
		path = filepath.Clean(cfg.Path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			setNop()
			return nil, err
		}
		zc.OutputPaths = []string{path}
		zc.ErrorOutputPaths = []string{path}
	}

	l, err := zc.Build()
	if err != nil {
		setNop()
		return nil, err
	}

	mu.Lock()
	global = l
	mu.Unlock()

	l.Debug("logger.initialized", zap.String("path", path), zap.Bool("debug", cfg.Debug))

	cleanup := func() error {
		mu.Lock()
		defer mu.Unlock()

		err := global.Sync()
		// stderr cannot be synced on most terminals
		if path == "" {
			err = nil
		}
		global = zap.NewNop()
		return err
	}

	return cleanup, nil
}

func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func setNop() {
	mu.Lock()
	defer mu.Unlock()
	global = zap.NewNop()
}
