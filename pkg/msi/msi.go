package msi

import (
	"fmt"
	"unicode/utf16"

	log "github.com/sirupsen/logrus"
)

// Handle identifies an object owned by the Windows Installer engine. The
// engine passes one to each custom action entry point; records created
// through the API get handles of their own.
type Handle uint32

const (
	// PropertyCustomActionData is the only property visible to a deferred
	// custom action. The install sequence stores the driver payload root
	// (terminated with a path separator) in it before the action runs.
	PropertyCustomActionData = "CustomActionData"

	// RebootRequiredAtom is the global atom WixCheckRebootRequired looks for
	// after InstallFinalize. The name is a cross-component contract and must
	// not change.
	RebootRequiredAtom = "WcaDeferredActionRequiresReboot"

	// logPrefix tags every message this component submits to the installer
	// log so it can be told apart from engine output.
	logPrefix = "CustomActions: "

	statusSuccess  uint32 = 0
	statusMoreData uint32 = 234 // ERROR_MORE_DATA

	installMessageInfo uint32 = 0x04000000 // INSTALLMESSAGE_INFO
)

// API is the narrow slice of installer and atom-table machinery a Session
// needs. The production implementation forwards to msi.dll and kernel32.dll;
// tests substitute a fake.
type API interface {
	// CreateRecord creates an installer record with the given number of
	// fields, returning 0 on failure.
	CreateRecord(fields uint32) Handle
	// RecordSetString writes value into a record field and returns the
	// Windows Installer status code.
	RecordSetString(record Handle, field uint32, value string) uint32
	// ProcessMessage submits a record to the installation session.
	ProcessMessage(install Handle, messageType uint32, record Handle) int32
	// GetProperty implements the MsiGetProperty size/fetch protocol over the
	// provided UTF-16 buffer.
	GetProperty(install Handle, name string, value []uint16, size *uint32) uint32
	// CloseHandle releases an installer handle.
	CloseHandle(h Handle) uint32
	// AddAtom registers a name in the system-wide atom table.
	AddAtom(name string) uint16
}

// Session wraps the handle of one installation session and gives the custom
// actions their view of the installer: logging, property access and the
// reboot-required signal. It holds no state besides the handle; the engine
// serializes custom actions, so a Session is never used concurrently.
type Session struct {
	handle Handle
	api    API
}

// NewSession wraps an installer session handle with the given API binding.
func NewSession(handle Handle, api API) *Session {
	return &Session{handle: handle, api: api}
}

// Logf formats a message, prefixes the component tag and submits it to the
// installer's message pipeline for the setup UI and log file. Logging is
// best effort: any failure is swallowed, since a lost log line must never
// abort the install. The message is mirrored to the diagnostic log.
func (s *Session) Logf(format string, args ...interface{}) {
	message := logPrefix + fmt.Sprintf(format, args...)
	log.Debug(message)

	record := s.api.CreateRecord(0)
	if record == 0 {
		return
	}
	defer s.api.CloseHandle(record)

	if s.api.RecordSetString(record, 0, message) != statusSuccess {
		return
	}
	s.api.ProcessMessage(s.handle, installMessageInfo, record)
}

// Property returns the value of the named session property, or "" when the
// property is unset or cannot be read. The empty-string fallback is
// deliberate: callers concatenate the value with fixed relative paths, and
// a missing payload root should produce a failing install path rather than
// an aborted action.
func (s *Session) Property(name string) string {
	var size uint32
	if s.api.GetProperty(s.handle, name, nil, &size) != statusMoreData {
		return ""
	}

	size++ // room for the terminator
	value := make([]uint16, size)
	if s.api.GetProperty(s.handle, name, value, &size) != statusSuccess {
		return ""
	}
	return string(utf16.Decode(value[:size]))
}

// RequireReboot registers the reboot-required marker for the downstream
// reboot check that runs after InstallFinalize. Fire and forget; call it at
// most once per action.
func (s *Session) RequireReboot() {
	s.Logf("Requesting reboot")
	s.api.AddAtom(RebootRequiredAtom)
}
