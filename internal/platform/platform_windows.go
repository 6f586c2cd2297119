//go:build windows

package platform

import (
	"errors"
	"fmt"
	"runtime"

	ole "github.com/go-ole/go-ole"
)

const hrSFalse = 0x1

var (
	coInitialize = func() error {
		return ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED)
	}
	coUninitialize = ole.CoUninitialize
)

type windowsPlatform struct {
	comReady bool
	debug    *packageDebugSettings
	activate *activationManager
}

// Open returns a session. COM is only initialized by the first call that
// needs it, so the injector path never enters an apartment.
func Open() (Platform, error) {
	return &windowsPlatform{}, nil
}

// initCOM enters a single-threaded apartment on the calling goroutine's OS
// thread. The thread stays locked until Close.
func (w *windowsPlatform) initCOM() error {
	if w.comReady {
		return nil
	}
	runtime.LockOSThread()
	if err := coInitialize(); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != hrSFalse {
			runtime.UnlockOSThread()
			return fmt.Errorf("initialize COM: %w", err)
		}
	}
	w.comReady = true
	return nil
}

func (w *windowsPlatform) Close() error {
	if w.debug != nil {
		w.debug.release()
		w.debug = nil
	}
	if w.activate != nil {
		w.activate.release()
		w.activate = nil
	}
	if w.comReady {
		coUninitialize()
		runtime.UnlockOSThread()
		w.comReady = false
	}
	return nil
}

func (w *windowsPlatform) debugSettings() (*packageDebugSettings, error) {
	if w.debug == nil {
		if err := w.initCOM(); err != nil {
			return nil, err
		}
		s, err := newPackageDebugSettings()
		if err != nil {
			return nil, err
		}
		w.debug = s
	}
	return w.debug, nil
}

func (w *windowsPlatform) TerminateAllProcesses(fullName string) error {
	s, err := w.debugSettings()
	if err != nil {
		return err
	}
	return s.terminateAllProcesses(fullName)
}

func (w *windowsPlatform) DisableDebugging(fullName string) error {
	s, err := w.debugSettings()
	if err != nil {
		return err
	}
	return s.disableDebugging(fullName)
}

func (w *windowsPlatform) EnableDebugging(fullName, debuggerCommandLine string) error {
	s, err := w.debugSettings()
	if err != nil {
		return err
	}
	return s.enableDebugging(fullName, debuggerCommandLine)
}

func (w *windowsPlatform) ActivateApplication(appUserModelID string) (uint32, error) {
	if w.activate == nil {
		if err := w.initCOM(); err != nil {
			return 0, err
		}
		m, err := newActivationManager()
		if err != nil {
			return 0, err
		}
		w.activate = m
	}
	return w.activate.activate(appUserModelID)
}
