//go:build windows

package platform

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	procVirtualAllocEx     = kernel32.NewProc("VirtualAllocEx")
	procVirtualFreeEx      = kernel32.NewProc("VirtualFreeEx")
	procCreateRemoteThread = kernel32.NewProc("CreateRemoteThread")
	procLoadLibraryW       = kernel32.NewProc("LoadLibraryW")
)

const (
	waitObject0 = 0x00000000
	waitTimeout = 0x00000102
)

func (w *windowsPlatform) OpenProcess(pid uint32) (Process, error) {
	h, err := windows.OpenProcess(windows.PROCESS_ALL_ACCESS, false, pid)
	if err != nil {
		return nil, err
	}
	return &remoteProcess{handle: h}, nil
}

func (w *windowsPlatform) OpenThread(tid uint32) (Thread, error) {
	h, err := windows.OpenThread(windows.THREAD_SUSPEND_RESUME|windows.SYNCHRONIZE, false, tid)
	if err != nil {
		return nil, err
	}
	return &thread{handle: h}, nil
}

// LoadLibraryAddress returns LoadLibraryW in this process. kernel32 is
// mapped at the same base in every process of the session, so the address
// is valid in the target too.
func (w *windowsPlatform) LoadLibraryAddress() (uintptr, error) {
	if err := procLoadLibraryW.Find(); err != nil {
		return 0, err
	}
	return procLoadLibraryW.Addr(), nil
}

type remoteProcess struct {
	handle windows.Handle
}

func (p *remoteProcess) Alloc(size uintptr) (uintptr, error) {
	addr, _, err := procVirtualAllocEx.Call(
		uintptr(p.handle),
		0,
		size,
		windows.MEM_RESERVE|windows.MEM_COMMIT,
		windows.PAGE_READWRITE)
	if addr == 0 {
		return 0, err
	}
	return addr, nil
}

func (p *remoteProcess) Free(addr uintptr) error {
	ok, _, err := procVirtualFreeEx.Call(uintptr(p.handle), addr, 0, windows.MEM_RELEASE)
	if ok == 0 {
		return err
	}
	return nil
}

func (p *remoteProcess) Write(addr uintptr, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	var written uintptr
	if err := windows.WriteProcessMemory(p.handle, addr, &data[0], uintptr(len(data)), &written); err != nil {
		return err
	}
	if written != uintptr(len(data)) {
		return fmt.Errorf("short write: %d of %d bytes", written, len(data))
	}
	return nil
}

func (p *remoteProcess) CreateThread(start, param uintptr) (Thread, error) {
	var threadID uint32
	h, _, err := procCreateRemoteThread.Call(
		uintptr(p.handle),
		0,
		0,
		start,
		param,
		0,
		uintptr(unsafe.Pointer(&threadID)))
	if h == 0 {
		return nil, err
	}
	return &thread{handle: windows.Handle(h)}, nil
}

func (p *remoteProcess) Close() error {
	return windows.CloseHandle(p.handle)
}

type thread struct {
	handle windows.Handle
}

func (t *thread) Wait(timeout time.Duration) (bool, error) {
	event, err := windows.WaitForSingleObject(t.handle, waitMilliseconds(timeout))
	switch event {
	case waitObject0:
		return true, nil
	case waitTimeout:
		return false, nil
	default:
		return false, err
	}
}

func (t *thread) Resume() (uint32, error) {
	return windows.ResumeThread(t.handle)
}

func (t *thread) Close() error {
	return windows.CloseHandle(t.handle)
}
