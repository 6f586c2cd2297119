package app

import (
	"appxlauncher/internal/config"
	"appxlauncher/internal/logging"
)

// Options configures the top-level controller.
type Options struct {
	// ExePath is the launcher's own resolved executable path. It becomes the
	// package debugger and anchors relative paths.
	ExePath string
	// ConfigPath overrides the config file location (optional).
	ConfigPath string
}

// App exposes the launcher operations the CLI dispatches to.
type App struct {
	exePath string
	cfgPath string
}

// New constructs the shared controller facade.
func New(opts Options) *App {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = config.Path(opts.ExePath)
	}
	return &App{
		exePath: opts.ExePath,
		cfgPath: cfgPath,
	}
}

// ExePath returns the executable path registered as package debugger.
func (a *App) ExePath() string {
	return a.exePath
}

func (a *App) loadConfig() (config.Config, error) {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		logging.Component("config").Error().Err(err).Str("path", a.cfgPath).Msg("config rejected")
		return cfg, err
	}
	return cfg, nil
}
