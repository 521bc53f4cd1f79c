// +build windows

package winapi

import (
	"syscall"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

var (
	newdevDLL = windows.NewLazySystemDLL("newdev.dll")

	procDiInstallDriverW   = newdevDLL.NewProc("DiInstallDriverW")
	procDiUninstallDriverW = newdevDLL.NewProc("DiUninstallDriverW")
)

// DiInstallDriverForceINF makes DiInstallDriver pick the driver described by
// the INF even when Windows considers an installed driver a better match.
const DiInstallDriverForceINF uint32 = 0x00000002 // DIIRFLAG_FORCE_INF

// DiInstallDriver preinstalls the driver package described by the INF file
// into the driver store and installs it on all matching present devices.
// It reports whether a reboot is required to complete the installation.
// https://docs.microsoft.com/en-us/windows/win32/api/newdev/nf-newdev-diinstalldriverw
func DiInstallDriver(infPath string, flags uint32) (needReboot bool, err error) {
	utf16Path, err := syscall.UTF16PtrFromString(infPath)
	if err != nil {
		return false, errors.Wrapf(err, "winapi: invalid inf path %q", infPath)
	}

	var reboot int32
	r0, _, e := procDiInstallDriverW.Call(
		0, // hwndParent
		uintptr(unsafe.Pointer(utf16Path)),
		uintptr(flags),
		uintptr(unsafe.Pointer(&reboot)))
	if r0 == 0 {
		return false, errors.Wrap(e, "winapi: DiInstallDriver")
	}
	return reboot != 0, nil
}

// DiUninstallDriver removes the driver package described by the INF file from
// all devices it is installed on and from the driver store. It reports
// whether a reboot is required to complete the removal.
// https://docs.microsoft.com/en-us/windows/win32/api/newdev/nf-newdev-diuninstalldriverw
func DiUninstallDriver(infPath string, flags uint32) (needReboot bool, err error) {
	utf16Path, err := syscall.UTF16PtrFromString(infPath)
	if err != nil {
		return false, errors.Wrapf(err, "winapi: invalid inf path %q", infPath)
	}

	var reboot int32
	r0, _, e := procDiUninstallDriverW.Call(
		0, // hwndParent
		uintptr(unsafe.Pointer(utf16Path)),
		uintptr(flags),
		uintptr(unsafe.Pointer(&reboot)))
	if r0 == 0 {
		return false, errors.Wrap(e, "winapi: DiUninstallDriver")
	}
	return reboot != 0, nil
}
