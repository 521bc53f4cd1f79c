package driverinstall

// The WMI query builder derives the WQL FROM clause from the struct type
// name. WQL matches class names case-insensitively, so the lowercase first
// letter keeps the type unexported while still naming Win32_SystemDriver;
// the underscore is significant and must stay.
// https://docs.microsoft.com/en-us/windows/desktop/cimwin32prov/win32-systemdriver
type win32_SystemDriver struct {
	Name  string
	State string
}
