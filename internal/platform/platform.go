// Package platform wraps the OS services the launcher drives: package
// lookup, package debug settings, application activation and cross-process
// memory/thread primitives.
package platform

import (
	"errors"
	"time"
)

var (
	// ErrUnsupported is returned by Open on systems without packaged apps.
	ErrUnsupported = errors.New("packaged application activation is only supported on windows")
	// ErrNoPackage reports a family name with no package installed for the current user.
	ErrNoPackage = errors.New("no package installed for the current user")
)

// Packages resolves installed packages.
type Packages interface {
	// PackageFullName returns the full name of the first package installed
	// for the current user under familyName.
	PackageFullName(familyName string) (string, error)
}

// DebugSettings mutates the per-package debugger registration.
type DebugSettings interface {
	TerminateAllProcesses(fullName string) error
	DisableDebugging(fullName string) error
	// EnableDebugging makes debuggerCommandLine the debugger for the next
	// activation. The OS appends "-p <pid> -tid <tid>" when it runs it.
	EnableDebugging(fullName, debuggerCommandLine string) error
}

// Activator launches packaged applications.
type Activator interface {
	// ActivateApplication activates appUserModelID with foreground rights
	// and returns the pid reported by the activation service.
	ActivateApplication(appUserModelID string) (uint32, error)
}

// Processes opens other processes and threads by id.
type Processes interface {
	OpenProcess(pid uint32) (Process, error)
	OpenThread(tid uint32) (Thread, error)
	// LoadLibraryAddress returns the address of the loader entry point that
	// takes a single UTF-16 path argument.
	LoadLibraryAddress() (uintptr, error)
}

// Platform bundles everything the launcher needs for one run.
type Platform interface {
	Packages
	DebugSettings
	Activator
	Processes
	Close() error
}

// Process is an open handle to another process.
type Process interface {
	// Alloc commits size bytes of read/write memory in the process.
	Alloc(size uintptr) (uintptr, error)
	Free(addr uintptr) error
	Write(addr uintptr, data []byte) error
	// CreateThread starts a thread in the process at start with param as
	// its only argument.
	CreateThread(start, param uintptr) (Thread, error)
	Close() error
}

// Thread is an open handle to a thread.
type Thread interface {
	// Wait blocks until the thread exits or timeout elapses and reports
	// whether it exited.
	Wait(timeout time.Duration) (bool, error)
	// Resume decrements the suspend count and returns the previous one.
	Resume() (uint32, error)
	Close() error
}
