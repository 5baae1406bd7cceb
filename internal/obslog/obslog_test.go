package obslog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARNING")
	t.Setenv("LOG_FORMAT", "xml")
	t.Setenv("LOG_TO_CONSOLE", "false")
	t.Setenv("LOG_TO_FILE", "false")
	t.Setenv("LOG_CALLER", "1")

	o := OptionsFromEnv()
	if o.Level != zapcore.WarnLevel {
		t.Fatalf("level=%v", o.Level)
	}
	if o.Format != "legacy" {
		t.Fatalf("unknown formats should fall back to legacy, got %q", o.Format)
	}
	if o.Console || o.File != "" || !o.Caller {
		t.Fatalf("unexpected options %+v", o)
	}
}

func TestOptionsFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"LOG_LEVEL", "LOG_FORMAT", "LOG_TO_CONSOLE", "LOG_TO_FILE", "LOG_FILE", "LOG_CALLER"} {
		t.Setenv(k, "")
	}
	o := OptionsFromEnv()
	if o.Level != zapcore.InfoLevel || !o.Console || o.File != DefaultLogFile {
		t.Fatalf("unexpected defaults %+v", o)
	}
}

func TestNewWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "replay.log")
	l, err := New(Options{Level: zapcore.InfoLevel, Format: "json", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Info("replay_failure", zap.Int("turn", 3))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"replay_failure"`) || !strings.Contains(string(data), `"turn":3`) {
		t.Fatalf("unexpected log output %s", data)
	}
}

func TestReplaceRestores(t *testing.T) {
	orig := L()
	l := zap.NewExample()
	restore := Replace(l)
	if L() != l {
		t.Fatalf("Replace did not install logger")
	}
	restore()
	if L() != orig {
		t.Fatalf("restore did not reinstate previous logger")
	}
	restore = Replace(nil)
	defer restore()
	if L() == nil {
		t.Fatalf("nil logger should become a no-op logger")
	}
}
