//go:build windows

package platform

import (
	"fmt"
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"
)

var (
	clsidPackageDebugSettings = ole.NewGUID("{B1AEC16F-2383-4852-B0E9-8F0B1DC66B4D}")
	iidPackageDebugSettings   = ole.NewGUID("{F27C3930-8029-4AD1-94E3-3DBA417810C1}")

	clsidApplicationActivationManager = ole.NewGUID("{45BA127D-10A8-46EA-8AB7-56EA9078943C}")
	iidApplicationActivationManager   = ole.NewGUID("{2E941141-7F97-4756-BA1D-9DECDE894A3D}")

	ole32                          = windows.NewLazySystemDLL("ole32.dll")
	procCoAllowSetForegroundWindow = ole32.NewProc("CoAllowSetForegroundWindow")
)

// Vtable slots after the three IUnknown methods.
const (
	slotEnableDebugging       = 3
	slotDisableDebugging      = 4
	slotTerminateAllProcesses = 7

	slotActivateApplication = 3

	activateOptionsNone = 0
)

// comObject is a raw interface pointer whose methods are called by vtable slot.
type comObject struct {
	unk *ole.IUnknown
}

func createComObject(clsid, iid *ole.GUID) (comObject, error) {
	unk, err := ole.CreateInstance(clsid, iid)
	if err != nil {
		return comObject{}, err
	}
	return comObject{unk: unk}, nil
}

func (o comObject) call(slot int, args ...uintptr) error {
	vtbl := (*[16]uintptr)(unsafe.Pointer(o.unk.RawVTable))
	hr, _, _ := syscall.SyscallN(vtbl[slot], append([]uintptr{uintptr(unsafe.Pointer(o.unk))}, args...)...)
	if int32(hr) < 0 {
		return ole.NewError(hr)
	}
	return nil
}

func (o comObject) release() {
	if o.unk != nil {
		o.unk.Release()
	}
}

type packageDebugSettings struct {
	comObject
}

func newPackageDebugSettings() (*packageDebugSettings, error) {
	obj, err := createComObject(clsidPackageDebugSettings, iidPackageDebugSettings)
	if err != nil {
		return nil, fmt.Errorf("create package debug settings: %w", err)
	}
	return &packageDebugSettings{obj}, nil
}

func (s *packageDebugSettings) enableDebugging(fullName, debuggerCommandLine string) error {
	name, err := windows.UTF16PtrFromString(fullName)
	if err != nil {
		return err
	}
	debugger, err := windows.UTF16PtrFromString(debuggerCommandLine)
	if err != nil {
		return err
	}
	return s.call(slotEnableDebugging,
		uintptr(unsafe.Pointer(name)),
		uintptr(unsafe.Pointer(debugger)),
		0)
}

func (s *packageDebugSettings) disableDebugging(fullName string) error {
	name, err := windows.UTF16PtrFromString(fullName)
	if err != nil {
		return err
	}
	return s.call(slotDisableDebugging, uintptr(unsafe.Pointer(name)))
}

func (s *packageDebugSettings) terminateAllProcesses(fullName string) error {
	name, err := windows.UTF16PtrFromString(fullName)
	if err != nil {
		return err
	}
	return s.call(slotTerminateAllProcesses, uintptr(unsafe.Pointer(name)))
}

type activationManager struct {
	comObject
}

func newActivationManager() (*activationManager, error) {
	obj, err := createComObject(clsidApplicationActivationManager, iidApplicationActivationManager)
	if err != nil {
		return nil, fmt.Errorf("create application activation manager: %w", err)
	}
	return &activationManager{obj}, nil
}

func (m *activationManager) activate(appUserModelID string) (uint32, error) {
	hr, _, _ := procCoAllowSetForegroundWindow.Call(uintptr(unsafe.Pointer(m.unk)), 0)
	if int32(hr) < 0 {
		return 0, fmt.Errorf("allow foreground: %w", ole.NewError(hr))
	}

	id, err := windows.UTF16PtrFromString(appUserModelID)
	if err != nil {
		return 0, err
	}
	var pid uint32
	if err := m.call(slotActivateApplication,
		uintptr(unsafe.Pointer(id)),
		0,
		activateOptionsNone,
		uintptr(unsafe.Pointer(&pid))); err != nil {
		return 0, err
	}
	return pid, nil
}
