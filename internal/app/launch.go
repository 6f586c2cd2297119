package app

import (
	"context"
	"errors"
	"fmt"

	"appxlauncher/internal/logging"
	"appxlauncher/internal/platform"
)

// PackageIdentity names a packaged application entry point.
type PackageIdentity struct {
	FamilyName string
	AppID      string
}

// AppUserModelID is the activation identifier "familyName!appId".
func (id PackageIdentity) AppUserModelID() string {
	return id.FamilyName + "!" + id.AppID
}

// LaunchResult describes one orchestrated activation.
type LaunchResult struct {
	Identity        PackageIdentity
	PackageFullName string
	AppUserModelID  string
	ProcessID       uint32
}

// Launch registers this executable as the package debugger, activates the
// application and clears the registration again. The registration never
// outlives the call, whatever happens during activation.
func (a *App) Launch(ctx context.Context) (LaunchResult, error) {
	var result LaunchResult
	logger := logging.Component("launch")

	cfg, err := a.loadConfig()
	if err != nil {
		return result, err
	}
	if err := cfg.RequirePackage(); err != nil {
		return result, err
	}
	result.Identity = PackageIdentity{FamilyName: cfg.PackageFamilyName, AppID: cfg.AppID}
	result.AppUserModelID = result.Identity.AppUserModelID()

	err = a.withPlatform(func(p platform.Platform) (err error) {
		fullName, err := resolvePackage(p, result.Identity.FamilyName)
		if err != nil {
			return err
		}
		result.PackageFullName = fullName

		if err := p.TerminateAllProcesses(fullName); err != nil {
			logger.Warn().Err(err).Str("package", fullName).Msg("terminate running instances")
		}
		if err := p.DisableDebugging(fullName); err != nil {
			logger.Warn().Err(err).Str("package", fullName).Msg("clear stale debugger registration")
		}

		reg, err := enableDebugging(p, fullName, debuggerCommandLine(a.exePath))
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, reg.Release())
		}()

		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Info().Str("aumid", result.AppUserModelID).Msg("activating")
		pid, err := p.ActivateApplication(result.AppUserModelID)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrActivationFailed, result.AppUserModelID, err)
		}
		result.ProcessID = pid
		logger.Info().Uint32("pid", pid).Str("aumid", result.AppUserModelID).Msg("activated")
		return nil
	})
	return result, err
}

func resolvePackage(p platform.Packages, familyName string) (string, error) {
	fullName, err := p.PackageFullName(familyName)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrPackageNotFound, familyName, err)
	}
	return fullName, nil
}
