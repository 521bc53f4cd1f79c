// +build windows

package winapi

import (
	"syscall"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

var (
	setupapiDLL = windows.NewLazySystemDLL("setupapi.dll")

	procSetupCopyOEMInfW      = setupapiDLL.NewProc("SetupCopyOEMInfW")
	procSetupUninstallOEMInfW = setupapiDLL.NewProc("SetupUninstallOEMInfW")
)

const (
	// SPOST_PATH: the source media location is a filesystem path.
	setupOEMSourceMediaTypePath = 1

	// SetupCopyReplaceOnly (SP_COPY_REPLACEONLY) makes SetupCopyOEMInf
	// locate an already staged copy of the INF without copying anything.
	SetupCopyReplaceOnly uint32 = 0x0002
)

// SetupCopyOEMInf stages the given INF file into %windir%\Inf and returns
// the full path it was staged under (oem<n>.inf). With SetupCopyReplaceOnly
// it instead reports where an existing staged copy lives, failing if the INF
// was never staged.
// https://docs.microsoft.com/en-us/windows/win32/api/setupapi/nf-setupapi-setupcopyoeminfw
func SetupCopyOEMInf(sourceInfPath string, copyStyle uint32) (destInfPath string, err error) {
	utf16Source, err := syscall.UTF16PtrFromString(sourceInfPath)
	if err != nil {
		return "", errors.Wrapf(err, "winapi: invalid inf path %q", sourceInfPath)
	}

	var dest [windows.MAX_PATH]uint16
	var required uint32
	r0, _, e := procSetupCopyOEMInfW.Call(
		uintptr(unsafe.Pointer(utf16Source)),
		0, // OEMSourceMediaLocation
		uintptr(setupOEMSourceMediaTypePath),
		uintptr(copyStyle),
		uintptr(unsafe.Pointer(&dest[0])),
		uintptr(len(dest)),
		uintptr(unsafe.Pointer(&required)),
		0) // DestinationInfFileNameComponent
	if r0 == 0 {
		return "", errors.Wrap(e, "winapi: SetupCopyOEMInf")
	}
	return syscall.UTF16ToString(dest[:]), nil
}

// SetupUninstallOEMInf removes a staged INF from %windir%\Inf. infFileName
// must be the bare oem<n>.inf name, not a full path.
// https://docs.microsoft.com/en-us/windows/win32/api/setupapi/nf-setupapi-setupuninstalloeminfw
func SetupUninstallOEMInf(infFileName string, flags uint32) error {
	utf16Name, err := syscall.UTF16PtrFromString(infFileName)
	if err != nil {
		return errors.Wrapf(err, "winapi: invalid inf name %q", infFileName)
	}

	r0, _, e := procSetupUninstallOEMInfW.Call(
		uintptr(unsafe.Pointer(utf16Name)),
		uintptr(flags),
		0) // Reserved
	if r0 == 0 {
		return errors.Wrap(e, "winapi: SetupUninstallOEMInf")
	}
	return nil
}
