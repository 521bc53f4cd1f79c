// +build windows

package winapi

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32DLL = windows.NewLazySystemDLL("kernel32.dll")

	procGlobalAddAtomW = kernel32DLL.NewProc("GlobalAddAtomW")
)

// GlobalAddAtom registers name in the system-wide atom table and returns the
// atom, or 0 on failure. The atom persists for the lifetime of the process
// that added it, which is how deferred custom actions leave markers for
// later steps of the same installation transaction.
// https://docs.microsoft.com/en-us/windows/win32/api/winbase/nf-winbase-globaladdatomw
func GlobalAddAtom(name string) uint16 {
	utf16Name, err := syscall.UTF16PtrFromString(name)
	if err != nil {
		return 0
	}

	r0, _, _ := procGlobalAddAtomW.Call(uintptr(unsafe.Pointer(utf16Name)))
	return uint16(r0)
}

// Preload forces resolution of every system DLL this package wraps and
// returns the first load error. Calling it early turns missing-DLL panics
// at call time into reportable errors; the custom actions run inside
// msiexec, where a panic would tear down the installer process.
func Preload() error {
	for _, d := range []*windows.LazyDLL{msiDLL, newdevDLL, setupapiDLL, kernel32DLL} {
		if err := d.Load(); err != nil {
			return err
		}
	}
	return nil
}
