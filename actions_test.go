package driversetup

import (
	"fmt"
	"syscall"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/usbipd-win/driversetup/pkg/driverinstall"
)

type fakeReporter struct {
	messages []string
	reboots  int
}

func (r *fakeReporter) Logf(format string, args ...interface{}) {
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
}

func (r *fakeReporter) RequireReboot() {
	r.reboots++
}

type fakeInstaller struct {
	installed   []string
	uninstalled []string
	failOn      map[string]error
	rebootOn    map[string]bool
	roots       []string
}

func (f *fakeInstaller) Install(payloadRoot string, d driverinstall.Driver) (bool, error) {
	f.roots = append(f.roots, payloadRoot)
	if err := f.failOn[d.Name]; err != nil {
		return false, err
	}
	f.installed = append(f.installed, d.Name)
	return f.rebootOn[d.Name], nil
}

func (f *fakeInstaller) Uninstall(payloadRoot string, d driverinstall.Driver) (bool, error) {
	f.roots = append(f.roots, payloadRoot)
	if err := f.failOn[d.Name]; err != nil {
		return false, err
	}
	f.uninstalled = append(f.uninstalled, d.Name)
	return f.rebootOn[d.Name], nil
}

const testRoot = `C:\Program Files\usbipd-win\`

func TestInstallDriversSuccessWithoutReboot(t *testing.T) {
	r := &fakeReporter{}
	inst := &fakeInstaller{}

	status := InstallDrivers(r, inst, testRoot, driverinstall.DefaultDrivers())

	assert.Equal(t, StatusSuccess, status)
	assert.Equal(t, []string{"VBoxUSBMon", "VBoxUSB"}, inst.installed)
	assert.Equal(t, 0, r.reboots, "reboot marker must not be raised when no step needs it")
	assert.Equal(t, []string{"Installing VBoxUSBMon", "Installing VBoxUSB"}, r.messages)
}

func TestInstallDriversRaisesRebootExactlyOnce(t *testing.T) {
	cases := []map[string]bool{
		{"VBoxUSBMon": true},
		{"VBoxUSB": true},
		{"VBoxUSBMon": true, "VBoxUSB": true},
	}

	for _, rebootOn := range cases {
		r := &fakeReporter{}
		inst := &fakeInstaller{rebootOn: rebootOn}

		status := InstallDrivers(r, inst, testRoot, driverinstall.DefaultDrivers())

		assert.Equal(t, StatusSuccess, status)
		assert.Equal(t, 1, r.reboots, "reboot marker must be raised exactly once for %v", rebootOn)
	}
}

func TestInstallDriversFailsFast(t *testing.T) {
	r := &fakeReporter{}
	inst := &fakeInstaller{
		failOn: map[string]error{
			"VBoxUSBMon": pkgerrors.Wrap(syscall.Errno(0x4d3), "install driver VBoxUSBMon"),
		},
	}

	status := InstallDrivers(r, inst, testRoot, driverinstall.DefaultDrivers())

	assert.Equal(t, StatusInstallFailure, status)
	assert.Empty(t, inst.installed, "second driver must not be attempted after the first fails")
	assert.Equal(t, []string{
		"Installing VBoxUSBMon",
		"ERROR installing VBoxUSBMon: 0x000004d3",
	}, r.messages)
	assert.Equal(t, 0, r.reboots)
}

func TestUninstallDriversRunsInReverseOrder(t *testing.T) {
	r := &fakeReporter{}
	inst := &fakeInstaller{}

	status := UninstallDrivers(r, inst, testRoot, driverinstall.DefaultDrivers())

	assert.Equal(t, StatusSuccess, status)
	assert.Equal(t, []string{"VBoxUSB", "VBoxUSBMon"}, inst.uninstalled)
}

func TestUninstallDriversIsBestEffort(t *testing.T) {
	r := &fakeReporter{}
	inst := &fakeInstaller{
		failOn: map[string]error{
			"VBoxUSB": syscall.Errno(0x2), // ERROR_FILE_NOT_FOUND
		},
	}

	status := UninstallDrivers(r, inst, testRoot, driverinstall.DefaultDrivers())

	assert.Equal(t, StatusSuccess, status, "uninstall must succeed even when steps fail")
	assert.Equal(t, []string{"VBoxUSBMon"}, inst.uninstalled, "remaining steps must still run")
	assert.Equal(t, []string{
		"Uninstalling VBoxUSB",
		"ERROR uninstalling VBoxUSB: 0x00000002",
		"Uninstalling VBoxUSBMon",
	}, r.messages)
}

func TestUninstallDriversAllFailingStillSucceeds(t *testing.T) {
	r := &fakeReporter{}
	inst := &fakeInstaller{
		failOn: map[string]error{
			"VBoxUSBMon": syscall.Errno(0x5), // ERROR_ACCESS_DENIED
			"VBoxUSB":    syscall.Errno(0x5),
		},
	}

	status := UninstallDrivers(r, inst, testRoot, driverinstall.DefaultDrivers())

	assert.Equal(t, StatusSuccess, status)
	assert.Empty(t, inst.uninstalled)
	assert.Equal(t, []string{
		"Uninstalling VBoxUSB",
		"ERROR uninstalling VBoxUSB: 0x00000005",
		"Uninstalling VBoxUSBMon",
		"ERROR uninstalling VBoxUSBMon: 0x00000005",
	}, r.messages)
}

func TestWinErrorCodeSurvivesWrapping(t *testing.T) {
	err := pkgerrors.Wrap(syscall.Errno(1603), "create service VBoxUSB")
	r := &fakeReporter{}
	inst := &fakeInstaller{failOn: map[string]error{"VBoxUSBMon": err}}

	InstallDrivers(r, inst, testRoot, driverinstall.DefaultDrivers())

	assert.Contains(t, r.messages, "ERROR installing VBoxUSBMon: 0x00000643")
}
