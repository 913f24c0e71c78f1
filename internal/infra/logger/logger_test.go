package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestSetup_WritesJSONToFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "logs", "mathfish.log")

	cleanup, err := Setup(Config{Path: p})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	if !L().Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected Setup to install a live logger")
	}

	L().Info("taxonomy.loaded", zap.Int("nodes", 3))
	L().Debug("hidden")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup error: %v", err)
	}

	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"msg":"taxonomy.loaded"`) || !strings.Contains(s, `"nodes":3`) {
		t.Fatalf("expected structured entry, got:\n%s", s)
	}
	if strings.Contains(s, "hidden") {
		t.Fatalf("debug entry logged at info level:\n%s", s)
	}
	if L().Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("expected cleanup to reset the logger")
	}
}

func TestSetup_DebugLevel(t *testing.T) {
	p := filepath.Join(t.TempDir(), "debug.log")

	cleanup, err := Setup(Config{Path: p, Debug: true})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	L().Debug("sampler.by_connections", zap.Int("pool", 4))
	_ = cleanup()

	b, _ := os.ReadFile(p)
	if !strings.Contains(string(b), "sampler.by_connections") {
		t.Fatalf("expected debug entry, got:\n%s", b)
	}
}

func TestL_DefaultsToNop(t *testing.T) {
	if L() == nil {
		t.Fatalf("expected a usable logger before Setup")
	}
	L().Info("dropped")
}
