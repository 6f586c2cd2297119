//go:build windows

package platform

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32                       = windows.NewLazySystemDLL("kernel32.dll")
	procGetPackagesByPackageFamily = kernel32.NewProc("GetPackagesByPackageFamily")
)

// PackageFullName asks the loader for packages in familyName for the current
// user; the first reported full name wins.
func (w *windowsPlatform) PackageFullName(familyName string) (string, error) {
	family, err := windows.UTF16PtrFromString(familyName)
	if err != nil {
		return "", err
	}

	var count, bufferLength uint32
	rc, _, _ := procGetPackagesByPackageFamily.Call(
		uintptr(unsafe.Pointer(family)),
		uintptr(unsafe.Pointer(&count)),
		0,
		uintptr(unsafe.Pointer(&bufferLength)),
		0)
	switch windows.Errno(rc) {
	case windows.ERROR_SUCCESS:
		return "", ErrNoPackage
	case windows.ERROR_INSUFFICIENT_BUFFER:
	default:
		return "", fmt.Errorf("query packages for %s: %w", familyName, windows.Errno(rc))
	}
	if count == 0 {
		return "", ErrNoPackage
	}

	names := make([]*uint16, count)
	buffer := make([]uint16, bufferLength)
	rc, _, _ = procGetPackagesByPackageFamily.Call(
		uintptr(unsafe.Pointer(family)),
		uintptr(unsafe.Pointer(&count)),
		uintptr(unsafe.Pointer(&names[0])),
		uintptr(unsafe.Pointer(&bufferLength)),
		uintptr(unsafe.Pointer(&buffer[0])))
	if rc != uintptr(windows.ERROR_SUCCESS) {
		return "", fmt.Errorf("query packages for %s: %w", familyName, windows.Errno(rc))
	}
	if count == 0 || names[0] == nil {
		return "", ErrNoPackage
	}
	return windows.UTF16PtrToString(names[0]), nil
}
