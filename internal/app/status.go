package app

import (
	"context"
	"os"

	"appxlauncher/internal/config"
	"appxlauncher/internal/platform"
)

// StatusReport summarizes what a launch would do, without doing it.
type StatusReport struct {
	ConfigPath      string
	Config          config.Config
	Identity        PackageIdentity
	AppUserModelID  string
	PackageFullName string
	// PackageErr explains why PackageFullName is empty.
	PackageErr   error
	ModulePath   string
	ModuleExists bool
}

// Status reads the config and resolves the package and module path.
// Only an unusable config is an error; lookup problems land in the report.
func (a *App) Status(ctx context.Context) (StatusReport, error) {
	report := StatusReport{ConfigPath: a.cfgPath}

	cfg, err := a.loadConfig()
	if err != nil {
		return report, err
	}
	report.Config = cfg

	if modulePath, err := cfg.ModulePath(a.exePath); err == nil {
		report.ModulePath = modulePath
		if info, err := os.Stat(modulePath); err == nil && !info.IsDir() {
			report.ModuleExists = true
		}
	}

	if err := cfg.RequirePackage(); err != nil {
		report.PackageErr = err
		return report, nil
	}
	report.Identity = PackageIdentity{FamilyName: cfg.PackageFamilyName, AppID: cfg.AppID}
	report.AppUserModelID = report.Identity.AppUserModelID()

	if err := ctx.Err(); err != nil {
		return report, err
	}
	report.PackageErr = a.withPlatform(func(p platform.Platform) error {
		fullName, err := resolvePackage(p, report.Identity.FamilyName)
		if err != nil {
			return err
		}
		report.PackageFullName = fullName
		return nil
	})
	return report, nil
}
