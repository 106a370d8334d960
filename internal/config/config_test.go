package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/rxview/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func code(err error) string {
	var coded *errors.CodedError
	if stderrors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Serve.Port != DefaultPort {
		t.Errorf("Serve.Port = %d, want %d", cfg.Serve.Port, DefaultPort)
	}
	if cfg.Serve.Host != DefaultHost {
		t.Errorf("Serve.Host = %q, want %q", cfg.Serve.Host, DefaultHost)
	}
	if cfg.Serve.ReadTimeout.Std() != 10*time.Second {
		t.Errorf("Serve.ReadTimeout = %v, want 10s", cfg.Serve.ReadTimeout.Std())
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Namespace != "rxview" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.Tracing.Name != "rxview" {
		t.Errorf("Tracing.Name = %q, want rxview", cfg.Tracing.Name)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, TOMLFileName, `
[serve]
port = 9000
read_timeout = "3s"
title = "Sliders"

[log]
level = "debug"
format = "json"

[metrics]
enabled = false

[engine]
debug = true
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}
	if cfg.Serve.Port != 9000 {
		t.Errorf("Serve.Port = %d, want 9000", cfg.Serve.Port)
	}
	if cfg.Serve.Host != DefaultHost {
		t.Errorf("Serve.Host = %q, want default", cfg.Serve.Host)
	}
	if cfg.Serve.ReadTimeout.Std() != 3*time.Second {
		t.Errorf("Serve.ReadTimeout = %v, want 3s", cfg.Serve.ReadTimeout.Std())
	}
	if cfg.Serve.WriteTimeout.Std() != 10*time.Second {
		t.Errorf("Serve.WriteTimeout = %v, want default 10s", cfg.Serve.WriteTimeout.Std())
	}
	if cfg.Serve.Title != "Sliders" {
		t.Errorf("Serve.Title = %q", cfg.Serve.Title)
	}
	if cfg.Log.Format != "json" || cfg.Log.Level != "debug" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = true, want false")
	}
	if !cfg.Engine.Debug {
		t.Error("Engine.Debug = false, want true")
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, JSONFileName, `{
  "serve": {"host": "0.0.0.0", "port": 3001, "writeTimeout": "1m"},
  "tracing": {"name": "custom"}
}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Addr() != "0.0.0.0:3001" {
		t.Errorf("Addr() = %q, want 0.0.0.0:3001", cfg.Addr())
	}
	if cfg.Serve.WriteTimeout.Std() != time.Minute {
		t.Errorf("Serve.WriteTimeout = %v, want 1m", cfg.Serve.WriteTimeout.Std())
	}
	if cfg.Tracing.Name != "custom" {
		t.Errorf("Tracing.Name = %q, want custom", cfg.Tracing.Name)
	}
}

func TestLoadPrefersTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, JSONFileName, `{"serve": {"port": 1}}`)
	writeFile(t, dir, TOMLFileName, "[serve]\nport = 2\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Serve.Port != 2 {
		t.Errorf("Serve.Port = %d, want 2 from TOML", cfg.Serve.Port)
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Path() != "" {
		t.Errorf("Path() = %q, want empty", cfg.Path())
	}
	if cfg.Serve.Port != DefaultPort {
		t.Errorf("Serve.Port = %d, want default", cfg.Serve.Port)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		file string
		body string
		code string
	}{
		{"bad toml", "a.toml", "[serve\n", errors.CodeConfigLoad},
		{"bad json", "b.json", "{", errors.CodeConfigLoad},
		{"bad duration", "c.toml", "[serve]\nread_timeout = \"soon\"\n", errors.CodeConfigLoad},
		{"unknown format", "d.yaml", "serve: {}", errors.CodeConfigLoad},
		{"invalid port", "e.toml", "[serve]\nport = 70000\n", errors.CodeConfigInvalid},
		{"invalid level", "f.json", `{"log": {"level": "loud"}}`, errors.CodeConfigInvalid},
		{"invalid format", "g.json", `{"log": {"format": "xml"}}`, errors.CodeConfigInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, dir, tt.file, tt.body))
			if got := code(err); got != tt.code {
				t.Errorf("LoadFile() error = %v, want code %s", err, tt.code)
			}
		})
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.toml")); code(err) != errors.CodeConfigLoad {
		t.Errorf("missing file error = %v, want C002", err)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := New()
	err := cfg.ApplyEnv(map[string]string{
		"RXVIEW_SERVE_PORT":          "7000",
		"RXVIEW_SERVE_WRITE_TIMEOUT": "2s",
		"RXVIEW_LOG_FORMAT":          "json",
		"RXVIEW_METRICS_ENABLED":     "false",
		"RXVIEW_ENGINE_DEBUG":        "true",
		"SERVE_PORT":                 "1",
	})
	if err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.Serve.Port != 7000 {
		t.Errorf("Serve.Port = %d, want 7000", cfg.Serve.Port)
	}
	if cfg.Serve.WriteTimeout.Std() != 2*time.Second {
		t.Errorf("Serve.WriteTimeout = %v, want 2s", cfg.Serve.WriteTimeout.Std())
	}
	if cfg.Serve.Host != DefaultHost {
		t.Errorf("Serve.Host = %q, want untouched default", cfg.Serve.Host)
	}
	if cfg.Log.Format != "json" || cfg.Metrics.Enabled || !cfg.Engine.Debug {
		t.Errorf("config = %+v", cfg)
	}

	if err := New().ApplyEnv(map[string]string{"RXVIEW_SERVE_PORT": "many"}); code(err) != errors.CodeConfigLoad {
		t.Errorf("ApplyEnv(bad) error = %v, want C002", err)
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		level string
		debug bool
		want  slog.Level
	}{
		{"debug", false, slog.LevelDebug},
		{"info", false, slog.LevelInfo},
		{"WARN", false, slog.LevelWarn},
		{"error", false, slog.LevelError},
		{"error", true, slog.LevelDebug},
	}
	for _, tt := range tests {
		cfg := New()
		cfg.Log.Level = tt.level
		cfg.Engine.Debug = tt.debug
		if got := cfg.Level(); got != tt.want {
			t.Errorf("Level(%q, debug=%v) = %v, want %v", tt.level, tt.debug, got, tt.want)
		}
	}
}

func TestLogger(t *testing.T) {
	var b strings.Builder
	cfg := New()
	cfg.Log.Format = "json"
	cfg.Logger(&b).Info("hello", "n", 1)
	if !strings.Contains(b.String(), `"msg":"hello"`) {
		t.Errorf("json log = %q", b.String())
	}

	b.Reset()
	cfg.Log.Format = "text"
	cfg.Logger(&b).Debug("hidden")
	cfg.Logger(&b).Info("shown")
	if strings.Contains(b.String(), "hidden") || !strings.Contains(b.String(), "msg=shown") {
		t.Errorf("text log = %q", b.String())
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1m30s")); err != nil {
		t.Fatal(err)
	}
	if d.Std() != 90*time.Second {
		t.Errorf("Duration = %v, want 1m30s", d.Std())
	}
	text, _ := d.MarshalText()
	if string(text) != "1m30s" {
		t.Errorf("MarshalText() = %q, want 1m30s", text)
	}
}
