package msi

import (
	"fmt"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
)

const statusInvalidHandle uint32 = 6 // ERROR_INVALID_HANDLE

// fakeAPI mimics the msi.dll property protocol and records every call so
// tests can verify handle hygiene and submitted messages.
type fakeAPI struct {
	props map[string]string

	nextRecord    Handle
	recordFields  map[Handle]map[uint32]string
	closedRecords []Handle
	messages      []string
	atoms         []string

	failCreateRecord bool
	failSetString    bool
	failGetProperty  bool
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		props:        map[string]string{},
		nextRecord:   100,
		recordFields: map[Handle]map[uint32]string{},
	}
}

func (f *fakeAPI) CreateRecord(fields uint32) Handle {
	if f.failCreateRecord {
		return 0
	}
	f.nextRecord++
	f.recordFields[f.nextRecord] = map[uint32]string{}
	return f.nextRecord
}

func (f *fakeAPI) RecordSetString(record Handle, field uint32, value string) uint32 {
	if f.failSetString {
		return statusInvalidHandle
	}
	f.recordFields[record][field] = value
	return statusSuccess
}

func (f *fakeAPI) ProcessMessage(install Handle, messageType uint32, record Handle) int32 {
	f.messages = append(f.messages, f.recordFields[record][0])
	return 1 // IDOK
}

func (f *fakeAPI) GetProperty(install Handle, name string, value []uint16, size *uint32) uint32 {
	if f.failGetProperty {
		return statusInvalidHandle
	}
	// Unset properties read as empty strings, like the real engine.
	encoded := utf16.Encode([]rune(f.props[name]))
	if uint32(len(value)) < uint32(len(encoded))+1 {
		*size = uint32(len(encoded))
		return statusMoreData
	}
	copy(value, encoded)
	value[len(encoded)] = 0
	*size = uint32(len(encoded))
	return statusSuccess
}

func (f *fakeAPI) CloseHandle(h Handle) uint32 {
	f.closedRecords = append(f.closedRecords, h)
	return statusSuccess
}

func (f *fakeAPI) AddAtom(name string) uint16 {
	f.atoms = append(f.atoms, name)
	return uint16(len(f.atoms))
}

func TestPropertyUnsetReturnsEmpty(t *testing.T) {
	api := newFakeAPI()
	s := NewSession(1, api)

	assert.Equal(t, "", s.Property(PropertyCustomActionData))
}

func TestPropertyRoundTrip(t *testing.T) {
	values := []string{
		`C:\Program Files\usbipd-win\`,
		`D:\payload with spaces\Drivers\`,
		`C:\Установка\диски\`,
		`C:\ドライバー\✓\`,
	}

	for _, want := range values {
		api := newFakeAPI()
		api.props[PropertyCustomActionData] = want
		s := NewSession(1, api)

		assert.Equal(t, want, s.Property(PropertyCustomActionData), "value should round-trip unchanged")
	}
}

func TestPropertyRetrievalErrorReturnsEmpty(t *testing.T) {
	api := newFakeAPI()
	api.props[PropertyCustomActionData] = `C:\payload\`
	api.failGetProperty = true
	s := NewSession(1, api)

	assert.Equal(t, "", s.Property(PropertyCustomActionData))
}

func TestLogfPrefixesAndFormats(t *testing.T) {
	api := newFakeAPI()
	s := NewSession(1, api)

	s.Logf("Installing VBoxUSBMon")
	s.Logf("ERROR installing %s: 0x%08x", "VBoxUSB", 0x4d3)

	assert.Equal(t, []string{
		"CustomActions: Installing VBoxUSBMon",
		fmt.Sprintf("CustomActions: ERROR installing VBoxUSB: 0x%08x", 0x4d3),
	}, api.messages)
}

func TestLogfReleasesRecord(t *testing.T) {
	api := newFakeAPI()
	s := NewSession(1, api)

	s.Logf("first")
	assert.Len(t, api.closedRecords, 1)

	// The record must be released even when the message text cannot be set.
	api.failSetString = true
	s.Logf("second")
	assert.Len(t, api.closedRecords, 2)
	assert.Len(t, api.messages, 1)
}

func TestLogfSwallowsRecordCreationFailure(t *testing.T) {
	api := newFakeAPI()
	api.failCreateRecord = true
	s := NewSession(1, api)

	s.Logf("dropped")

	assert.Empty(t, api.messages)
	assert.Empty(t, api.closedRecords)
}

func TestRequireRebootRegistersMarkerAtom(t *testing.T) {
	api := newFakeAPI()
	s := NewSession(1, api)

	s.RequireReboot()

	assert.Equal(t, []string{"WcaDeferredActionRequiresReboot"}, api.atoms)
	assert.Equal(t, []string{"CustomActions: Requesting reboot"}, api.messages)
}
