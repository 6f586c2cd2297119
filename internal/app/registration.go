package app

import (
	"fmt"
	"strings"

	"appxlauncher/internal/logging"
	"appxlauncher/internal/platform"
)

// debugRegistration is an enabled package debugger registration. It must be
// released on every path out of the scope that enabled it.
type debugRegistration struct {
	settings platform.DebugSettings
	fullName string
	released bool
}

// enableDebugging registers debuggerCommandLine for fullName and returns the
// guard that disables it again. If enabling fails the registration is
// disabled anyway in case the OS applied part of it.
func enableDebugging(settings platform.DebugSettings, fullName, debuggerCommandLine string) (*debugRegistration, error) {
	logger := logging.Component("registration")
	if err := settings.EnableDebugging(fullName, debuggerCommandLine); err != nil {
		if derr := settings.DisableDebugging(fullName); derr != nil {
			logger.Warn().Err(derr).Str("package", fullName).Msg("disable after failed enable")
		}
		return nil, fmt.Errorf("%w: enable for %s: %w", ErrDebugRegistrationFailed, fullName, err)
	}
	logger.Debug().Str("package", fullName).Str("debugger", debuggerCommandLine).Msg("debugger registered")
	return &debugRegistration{settings: settings, fullName: fullName}, nil
}

// Release disables the registration. Only the first call does anything.
func (r *debugRegistration) Release() error {
	if r == nil || r.released {
		return nil
	}
	r.released = true
	if err := r.settings.DisableDebugging(r.fullName); err != nil {
		logging.Component("registration").Error().Err(err).Str("package", r.fullName).
			Msg("debugger registration left enabled")
		return fmt.Errorf("%w: disable for %s: %w", ErrDebugRegistrationFailed, r.fullName, err)
	}
	logging.Component("registration").Debug().Str("package", r.fullName).Msg("debugger registration cleared")
	return nil
}

// debuggerCommandLine quotes exePath when the OS would otherwise split it.
func debuggerCommandLine(exePath string) string {
	if strings.ContainsAny(exePath, " \t") && !strings.HasPrefix(exePath, `"`) {
		return `"` + exePath + `"`
	}
	return exePath
}
