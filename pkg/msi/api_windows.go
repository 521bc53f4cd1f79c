// +build windows

package msi

import (
	"github.com/usbipd-win/driversetup/pkg/winapi"
)

// systemAPI forwards the API surface to the real msi.dll and kernel32.dll
// wrappers.
type systemAPI struct{}

func (systemAPI) CreateRecord(fields uint32) Handle {
	return Handle(winapi.MsiCreateRecord(fields))
}

func (systemAPI) RecordSetString(record Handle, field uint32, value string) uint32 {
	return winapi.MsiRecordSetString(uint32(record), field, value)
}

func (systemAPI) ProcessMessage(install Handle, messageType uint32, record Handle) int32 {
	return winapi.MsiProcessMessage(uint32(install), messageType, uint32(record))
}

func (systemAPI) GetProperty(install Handle, name string, value []uint16, size *uint32) uint32 {
	return winapi.MsiGetProperty(uint32(install), name, value, size)
}

func (systemAPI) CloseHandle(h Handle) uint32 {
	return winapi.MsiCloseHandle(uint32(h))
}

func (systemAPI) AddAtom(name string) uint16 {
	return winapi.GlobalAddAtom(name)
}

// NewSystemSession wraps the session handle the installer engine passed to a
// custom action entry point.
func NewSystemSession(handle Handle) *Session {
	return NewSession(handle, systemAPI{})
}
