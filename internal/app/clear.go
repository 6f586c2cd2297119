package app

import (
	"context"
	"fmt"

	"appxlauncher/internal/logging"
	"appxlauncher/internal/platform"
)

// ClearResult reports which package registration was cleared.
type ClearResult struct {
	PackageFullName string
}

// ClearRegistration disables the package debugger registration, for
// recovering from a launcher run that died between enable and disable.
func (a *App) ClearRegistration(ctx context.Context) (ClearResult, error) {
	var result ClearResult

	cfg, err := a.loadConfig()
	if err != nil {
		return result, err
	}
	if err := cfg.RequirePackage(); err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	err = a.withPlatform(func(p platform.Platform) error {
		fullName, err := resolvePackage(p, cfg.PackageFamilyName)
		if err != nil {
			return err
		}
		result.PackageFullName = fullName
		if err := p.DisableDebugging(fullName); err != nil {
			return fmt.Errorf("%w: disable for %s: %w", ErrDebugRegistrationFailed, fullName, err)
		}
		logging.Component("clear").Info().Str("package", fullName).Msg("debugger registration cleared")
		return nil
	})
	return result, err
}
