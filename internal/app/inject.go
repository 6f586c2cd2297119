package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/text/encoding/unicode"

	"appxlauncher/internal/logging"
	"appxlauncher/internal/platform"
)

// DefaultLoadTimeout bounds the wait for the remote loader thread.
const DefaultLoadTimeout = 10 * time.Second

// InjectParams configures the debugger-callout phase.
type InjectParams struct {
	// Args are the raw arguments the OS passed to the debugger.
	Args    []string
	Timeout time.Duration
}

// InjectResult reports what the injector did.
type InjectResult struct {
	Request    InjectionRequest
	ModulePath string
	// Skipped is set when the arguments named no target.
	Skipped bool
	// Confirmed is set when the loader thread finished before the timeout.
	Confirmed bool
	Resumed   bool
}

// Inject loads the configured module into the suspended process named by
// "-p <pid> -tid <tid>" and then resumes its primary thread.
//
// A loader thread that outlives the timeout is not an error. With
// AlwaysResume set in the config the thread is resumed even when an earlier
// step fails; otherwise such failures leave it suspended.
func (a *App) Inject(ctx context.Context, params InjectParams) (InjectResult, error) {
	var result InjectResult
	logger := logging.Component("inject")

	req, ok := ParseInjectionArgs(params.Args)
	if !ok {
		logger.Info().Strs("args", params.Args).Msg("no target process in arguments, nothing to do")
		result.Skipped = true
		return result, nil
	}
	result.Request = req

	cfg, err := a.loadConfig()
	if err != nil {
		return result, err
	}
	modulePath, err := cfg.ModulePath(a.exePath)
	if err != nil {
		return result, err
	}
	result.ModulePath = modulePath
	if _, err := os.Stat(modulePath); err != nil {
		logger.Warn().Err(err).Str("module", modulePath).Msg("module not found locally, the target loader may still find it")
	}

	payload, err := encodeModulePath(modulePath)
	if err != nil {
		return result, fmt.Errorf("%w: encode module path: %w", ErrConfigMissingOrInvalid, err)
	}
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}

	err = a.withPlatform(func(p platform.Platform) (err error) {
		resumeAttempted := false
		if cfg.AlwaysResume {
			defer func() {
				if resumeAttempted {
					return
				}
				logger.Warn().Err(err).Uint32("tid", req.ThreadID).Msg("injection failed, resuming target anyway")
				if rerr := resumeThread(p, req.ThreadID); rerr != nil {
					err = errors.Join(err, rerr)
					return
				}
				result.Resumed = true
			}()
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		confirmed, err := loadModule(p, req.ProcessID, payload, timeout)
		if err != nil {
			return err
		}
		result.Confirmed = confirmed

		resumeAttempted = true
		if err := resumeThread(p, req.ThreadID); err != nil {
			return err
		}
		result.Resumed = true
		return nil
	})
	if err == nil {
		logger.Info().
			Uint32("pid", req.ProcessID).
			Uint32("tid", req.ThreadID).
			Str("module", modulePath).
			Bool("confirmed", result.Confirmed).
			Msg("target resumed")
	}
	return result, err
}

// loadModule makes pid load the module whose UTF-16 path is payload by
// running the loader entry point on a remote thread.
func loadModule(p platform.Platform, pid uint32, payload []byte, timeout time.Duration) (bool, error) {
	logger := logging.Component("inject")

	proc, err := p.OpenProcess(pid)
	if err != nil {
		return false, fmt.Errorf("%w: pid %d: %w", ErrProcessOpenFailed, pid, err)
	}
	defer proc.Close()

	addr, err := proc.Alloc(uintptr(len(payload)))
	if err != nil {
		return false, fmt.Errorf("%w: allocate %d bytes in pid %d: %w", ErrRemoteMemoryFailed, len(payload), pid, err)
	}
	defer func() {
		if ferr := proc.Free(addr); ferr != nil {
			logger.Warn().Err(ferr).Uint32("pid", pid).Msg("free remote module path")
		}
	}()

	if err := proc.Write(addr, payload); err != nil {
		return false, fmt.Errorf("%w: write module path into pid %d: %w", ErrRemoteMemoryFailed, pid, err)
	}

	entry, err := p.LoadLibraryAddress()
	if err != nil {
		return false, fmt.Errorf("%w: resolve loader entry point: %w", ErrRemoteExecutionFailed, err)
	}
	loader, err := proc.CreateThread(entry, addr)
	if err != nil {
		return false, fmt.Errorf("%w: pid %d: %w", ErrRemoteExecutionFailed, pid, err)
	}
	defer loader.Close()

	finished, err := loader.Wait(timeout)
	switch {
	case err != nil:
		logger.Warn().Err(err).Uint32("pid", pid).Msg("wait for loader thread failed, continuing")
	case !finished:
		logger.Warn().Dur("timeout", timeout).Uint32("pid", pid).Msg("loader thread still running, continuing")
	}
	return finished && err == nil, nil
}

func resumeThread(p platform.Processes, tid uint32) error {
	t, err := p.OpenThread(tid)
	if err != nil {
		return fmt.Errorf("%w: open tid %d: %w", ErrThreadResumeFailed, tid, err)
	}
	defer t.Close()

	prev, err := t.Resume()
	if err != nil {
		return fmt.Errorf("%w: tid %d: %w", ErrThreadResumeFailed, tid, err)
	}
	logging.Component("inject").Debug().Uint32("tid", tid).Uint32("suspend_count", prev).Msg("thread resumed")
	return nil
}

// encodeModulePath returns path as UTF-16LE followed by one zero unit.
func encodeModulePath(path string) ([]byte, error) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	return enc.Bytes([]byte(path + "\x00"))
}
