package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":    zerolog.DebugLevel,
		" WARN ":   zerolog.WarnLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"off":      zerolog.Disabled,
		"trace":    zerolog.TraceLevel,
		"info":     zerolog.InfoLevel,
		"disabled": zerolog.Disabled,
	}
	for raw, want := range cases {
		got, ok := parseLevel(raw)
		if !ok || got != want {
			t.Fatalf("parseLevel(%q) = %v, %v; want %v", raw, got, ok, want)
		}
	}
	if _, ok := parseLevel("loud"); ok {
		t.Fatalf("expected unknown level to be rejected")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFile, "")
	t.Setenv(EnvLogNoColor, "true")

	cfg := defaultConfig(ProfileRuntime, filepath.Join("opt", "appxlauncher.exe"))
	if cfg.FilePath != filepath.Join("opt", FileName) {
		t.Fatalf("unexpected default file path %q", cfg.FilePath)
	}
	applyEnvOverrides(&cfg)
	if cfg.Level != zerolog.ErrorLevel {
		t.Fatalf("expected error level, got %v", cfg.Level)
	}
	if cfg.FilePath != "" {
		t.Fatalf("expected empty APPXLAUNCHER_LOG_FILE to disable the file sink, got %q", cfg.FilePath)
	}
	if !cfg.NoColor {
		t.Fatalf("expected NoColor override")
	}
}

func TestNewWritesConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), FileName)
	logger, closeLog := New(Config{Level: zerolog.InfoLevel, Console: &console, FilePath: path})
	t.Cleanup(func() { _ = closeLog() })

	logger.Debug().Msg("hidden")
	logger.Info().Str("component", "inject").Msg("resumed thread")

	if out := console.String(); !strings.Contains(out, "resumed thread") || strings.Contains(out, "hidden") {
		t.Fatalf("unexpected console output %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"component":"inject"`) {
		t.Fatalf("expected structured record in file, got %q", data)
	}
}

func TestNewWithoutSinks(t *testing.T) {
	logger, closeLog := New(Config{Level: zerolog.InfoLevel})
	if err := closeLog(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if logger.GetLevel() != zerolog.Disabled {
		t.Fatalf("expected a nop logger, got level %v", logger.GetLevel())
	}
}

func TestComponentTagsGlobalLogger(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf).Level(zerolog.InfoLevel)

	Component("inject").Info().Uint32("tid", 17).Msg("thread resumed")
	Component("inject").Debug().Msg("hidden")

	out := buf.String()
	if !strings.Contains(out, `"component":"inject"`) || !strings.Contains(out, `"tid":17`) {
		t.Fatalf("expected tagged record, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug record to be filtered, got %q", out)
	}
}
