package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"appxlauncher/internal/config"
	"appxlauncher/internal/logging"
	"appxlauncher/internal/platform"
)

func init() {
	logging.ConfigureTests()
}

// fakePlatform records every platform call in order.
type fakePlatform struct {
	calls []string

	fullName      string
	packageErr    error
	terminateErr  error
	disableErr    error
	enableErr     error
	activateErr   error
	activatePanic bool
	activatePID   uint32

	openProcessErr  error
	allocErr        error
	writeErr        error
	freeErr         error
	loaderErr       error
	createThreadErr error
	waitFinished    bool
	waitErr         error
	openThreadErr   error
	resumeErr       error

	loaderAddr uintptr
	allocAddr  uintptr
	allocSize  uintptr
	written    []byte
	threadArg  uintptr
	threadFn   uintptr
	waitedFor  time.Duration
	closed     bool
}

func (f *fakePlatform) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakePlatform) PackageFullName(familyName string) (string, error) {
	f.record("package " + familyName)
	if f.packageErr != nil {
		return "", f.packageErr
	}
	return f.fullName, nil
}

func (f *fakePlatform) TerminateAllProcesses(fullName string) error {
	f.record("terminate " + fullName)
	return f.terminateErr
}

func (f *fakePlatform) DisableDebugging(fullName string) error {
	f.record("disable " + fullName)
	return f.disableErr
}

func (f *fakePlatform) EnableDebugging(fullName, debuggerCommandLine string) error {
	f.record("enable " + fullName + " " + debuggerCommandLine)
	return f.enableErr
}

func (f *fakePlatform) ActivateApplication(appUserModelID string) (uint32, error) {
	f.record("activate " + appUserModelID)
	if f.activatePanic {
		panic("activation exploded")
	}
	if f.activateErr != nil {
		return 0, f.activateErr
	}
	return f.activatePID, nil
}

func (f *fakePlatform) OpenProcess(pid uint32) (platform.Process, error) {
	f.record("open-process")
	if f.openProcessErr != nil {
		return nil, f.openProcessErr
	}
	return &fakeProcess{f: f}, nil
}

func (f *fakePlatform) OpenThread(tid uint32) (platform.Thread, error) {
	f.record("open-thread")
	if f.openThreadErr != nil {
		return nil, f.openThreadErr
	}
	return &fakeThread{f: f, name: "thread"}, nil
}

func (f *fakePlatform) LoadLibraryAddress() (uintptr, error) {
	if f.loaderErr != nil {
		return 0, f.loaderErr
	}
	return f.loaderAddr, nil
}

func (f *fakePlatform) Close() error {
	f.closed = true
	return nil
}

type fakeProcess struct {
	f *fakePlatform
}

func (p *fakeProcess) Alloc(size uintptr) (uintptr, error) {
	p.f.record("alloc")
	if p.f.allocErr != nil {
		return 0, p.f.allocErr
	}
	p.f.allocSize = size
	return p.f.allocAddr, nil
}

func (p *fakeProcess) Free(addr uintptr) error {
	p.f.record("free")
	return p.f.freeErr
}

func (p *fakeProcess) Write(addr uintptr, data []byte) error {
	p.f.record("write")
	if p.f.writeErr != nil {
		return p.f.writeErr
	}
	p.f.written = append([]byte(nil), data...)
	return nil
}

func (p *fakeProcess) CreateThread(start, param uintptr) (platform.Thread, error) {
	p.f.record("create-thread")
	if p.f.createThreadErr != nil {
		return nil, p.f.createThreadErr
	}
	p.f.threadFn = start
	p.f.threadArg = param
	return &fakeThread{f: p.f, name: "loader"}, nil
}

func (p *fakeProcess) Close() error {
	p.f.record("close-process")
	return nil
}

type fakeThread struct {
	f    *fakePlatform
	name string
}

func (t *fakeThread) Wait(timeout time.Duration) (bool, error) {
	t.f.record("wait")
	t.f.waitedFor = timeout
	return t.f.waitFinished, t.f.waitErr
}

func (t *fakeThread) Resume() (uint32, error) {
	t.f.record("resume")
	if t.f.resumeErr != nil {
		return 0, t.f.resumeErr
	}
	return 1, nil
}

func (t *fakeThread) Close() error {
	t.f.record("close-" + t.name)
	return nil
}

func stubPlatform(t *testing.T, fake *fakePlatform) {
	t.Helper()
	resetPlatformDeps()
	openPlatform = func() (platform.Platform, error) {
		if fake == nil {
			return nil, errors.New("platform not stubbed")
		}
		return fake, nil
	}
	t.Cleanup(resetPlatformDeps)
}

// newTestApp writes configJSON next to a fake executable in a temp dir.
// A nil configJSON leaves the config file absent.
func newTestApp(t *testing.T, configJSON []byte) (*App, string) {
	t.Helper()
	dir := t.TempDir()
	if configJSON != nil {
		if err := os.WriteFile(filepath.Join(dir, config.FileName), configJSON, 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}
	exe := filepath.Join(dir, "appxlauncher.exe")
	return New(Options{ExePath: exe, ConfigPath: filepath.Join(dir, config.FileName)}), dir
}

func indexOf(calls []string, call string) int {
	for i, c := range calls {
		if c == call {
			return i
		}
	}
	return -1
}

func lastIndexOf(calls []string, call string) int {
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i] == call {
			return i
		}
	}
	return -1
}
