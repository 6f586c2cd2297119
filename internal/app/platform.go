package app

import (
	"fmt"

	"appxlauncher/internal/logging"
	"appxlauncher/internal/platform"
)

var openPlatform = platform.Open

func resetPlatformDeps() {
	openPlatform = platform.Open
}

func (a *App) withPlatform(fn func(platform.Platform) error) error {
	p, err := openPlatform()
	if err != nil {
		return fmt.Errorf("open platform: %w", err)
	}
	defer func() {
		if cerr := p.Close(); cerr != nil {
			logging.Component("platform").Warn().Err(cerr).Msg("close platform")
		}
	}()

	return fn(p)
}
