// +build windows

package winapi

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	msiDLL = windows.NewLazySystemDLL("msi.dll")

	procMsiCreateRecord     = msiDLL.NewProc("MsiCreateRecord")
	procMsiRecordSetStringW = msiDLL.NewProc("MsiRecordSetStringW")
	procMsiProcessMessage   = msiDLL.NewProc("MsiProcessMessage")
	procMsiGetPropertyW     = msiDLL.NewProc("MsiGetPropertyW")
	procMsiCloseHandle      = msiDLL.NewProc("MsiCloseHandle")
)

// MsiGetProperty requires a non-NULL buffer even when probing for the size.
var emptyUTF16 = []uint16{0}

// MsiCreateRecord creates a transient installer record with the given number
// of fields. It returns 0 when the record could not be created.
// https://docs.microsoft.com/en-us/windows/win32/api/msiquery/nf-msiquery-msicreaterecord
func MsiCreateRecord(fields uint32) uint32 {
	r0, _, _ := procMsiCreateRecord.Call(uintptr(fields))
	return uint32(r0)
}

// MsiRecordSetString writes value into the given record field and returns the
// Windows Installer status code.
func MsiRecordSetString(record uint32, field uint32, value string) uint32 {
	utf16Value, err := syscall.UTF16PtrFromString(value)
	if err != nil {
		return uint32(windows.ERROR_INVALID_PARAMETER)
	}

	r0, _, _ := procMsiRecordSetStringW.Call(
		uintptr(record),
		uintptr(field),
		uintptr(unsafe.Pointer(utf16Value)))
	return uint32(r0)
}

// MsiProcessMessage submits a record to the installation session identified
// by install for display in the setup UI and the installer log.
// https://docs.microsoft.com/en-us/windows/win32/api/msiquery/nf-msiquery-msiprocessmessage
func MsiProcessMessage(install uint32, messageType uint32, record uint32) int32 {
	r0, _, _ := procMsiProcessMessage.Call(
		uintptr(install),
		uintptr(messageType),
		uintptr(record))
	return int32(r0)
}

// MsiGetProperty copies the value of the named session property into value
// and returns the Windows Installer status code. size holds the buffer
// capacity in UTF-16 characters on input and the value length (without the
// terminator) on output. Probing with an empty value slice yields
// ErrorMoreData and the required size.
// https://docs.microsoft.com/en-us/windows/win32/api/msiquery/nf-msiquery-msigetpropertyw
func MsiGetProperty(install uint32, name string, value []uint16, size *uint32) uint32 {
	utf16Name, err := syscall.UTF16PtrFromString(name)
	if err != nil {
		return uint32(windows.ERROR_INVALID_PARAMETER)
	}

	buf := &emptyUTF16[0]
	if len(value) > 0 {
		buf = &value[0]
	}

	r0, _, _ := procMsiGetPropertyW.Call(
		uintptr(install),
		uintptr(unsafe.Pointer(utf16Name)),
		uintptr(unsafe.Pointer(buf)),
		uintptr(unsafe.Pointer(size)))
	return uint32(r0)
}

// MsiCloseHandle releases an installer handle (records included) and returns
// the Windows Installer status code.
func MsiCloseHandle(handle uint32) uint32 {
	r0, _, _ := procMsiCloseHandle.Call(uintptr(handle))
	return uint32(r0)
}
