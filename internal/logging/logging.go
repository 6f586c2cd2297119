package logging

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel   = "APPXLAUNCHER_LOG_LEVEL"
	EnvLogFile    = "APPXLAUNCHER_LOG_FILE"
	EnvLogNoColor = "APPXLAUNCHER_LOG_NOCOLOR"

	// FileName is the log written next to the executable. The injector
	// phase runs without a console, so the file is the only trace it leaves.
	FileName = "appxlauncher.log"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Config describes where and how verbosely to log.
type Config struct {
	Level    zerolog.Level
	Console  io.Writer
	FilePath string
	NoColor  bool
}

var configureOnce sync.Once

// ConfigureRuntime installs the process logger for a launcher run.
func ConfigureRuntime(exePath string) {
	Configure(ProfileRuntime, exePath)
}

func ConfigureTests() {
	Configure(ProfileTest, "")
}

// Configure installs the global logger once; later calls are ignored.
func Configure(profile Profile, exePath string) {
	configureOnce.Do(func() {
		cfg := defaultConfig(profile, exePath)
		applyEnvOverrides(&cfg)
		// The file stays open for the life of the process.
		log.Logger, _ = New(cfg)
	})
}

// Component returns a child of the global logger tagged with name.
func Component(name string) *zerolog.Logger {
	l := log.Logger.With().Str("component", name).Logger()
	return &l
}

// New builds a logger writing to the console and, when set, the log file.
// A log file that cannot be opened is skipped rather than failing the run.
// The returned func closes the log file, if one was opened.
func New(cfg Config) (zerolog.Logger, func() error) {
	closeFn := func() error { return nil }
	writers := make([]io.Writer, 0, 2)
	if cfg.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        cfg.Console,
			TimeFormat: time.RFC3339,
			NoColor:    cfg.NoColor || !isTerminal(cfg.Console),
		})
	}
	if cfg.FilePath != "" {
		if f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			writers = append(writers, f)
			closeFn = f.Close
		}
	}
	if len(writers) == 0 {
		return zerolog.Nop(), closeFn
	}
	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(cfg.Level).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()
	return logger, closeFn
}

func defaultConfig(profile Profile, exePath string) Config {
	switch profile {
	case ProfileTest:
		return Config{Level: zerolog.DebugLevel, Console: os.Stderr, NoColor: true}
	default:
		cfg := Config{Level: zerolog.InfoLevel, Console: os.Stderr}
		if exePath != "" {
			cfg.FilePath = filepath.Join(filepath.Dir(exePath), FileName)
		}
		return cfg
	}
}

func applyEnvOverrides(cfg *Config) {
	if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	if v, ok := os.LookupEnv(EnvLogFile); ok {
		// An empty value turns the file sink off.
		cfg.FilePath = strings.TrimSpace(v)
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		cfg.NoColor = v
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
