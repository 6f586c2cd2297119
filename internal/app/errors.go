package app

import (
	"errors"

	"appxlauncher/internal/config"
)

// Failure kinds. Returned errors wrap exactly one of these next to the OS
// cause, so callers can use errors.Is on either.
var (
	ErrConfigMissingOrInvalid  = config.ErrInvalid
	ErrPackageNotFound         = errors.New("package not found")
	ErrDebugRegistrationFailed = errors.New("debug registration failed")
	ErrActivationFailed        = errors.New("activation failed")
	ErrProcessOpenFailed       = errors.New("open target process failed")
	ErrRemoteMemoryFailed      = errors.New("remote memory operation failed")
	ErrRemoteExecutionFailed   = errors.New("remote thread creation failed")
	ErrThreadResumeFailed      = errors.New("resume target thread failed")
)
