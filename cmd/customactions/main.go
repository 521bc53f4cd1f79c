// +build windows

// Package main builds the MSI custom action DLL:
//
//	go build -buildmode=c-shared -o CustomActions.dll github.com/usbipd-win/driversetup/cmd/customactions
//
// The installer package schedules the exported entry points as deferred
// custom actions between InstallFiles and InstallFinalize, with the driver
// payload root stored in CustomActionData by an earlier immediate action.
package main

import "C"

import (
	"github.com/usbipd-win/driversetup"
	"github.com/usbipd-win/driversetup/pkg/common"
	"github.com/usbipd-win/driversetup/pkg/msi"
	"github.com/usbipd-win/driversetup/pkg/winapi"
)

var (
	// set on build:
	// go build -ldflags="-X main.version=$(git describe --always --long --dirty --tag)" ...
	version string
)

//export InstallDrivers
func InstallDrivers(hInstall uint32) uint32 {
	session := msi.NewSystemSession(msi.Handle(hInstall))
	if err := winapi.Preload(); err != nil {
		session.Logf("ERROR loading system libraries: 0x%08x", common.WinErrorCode(err))
		return driversetup.StatusInstallFailure
	}

	ds := newDriverSetup(session)
	payloadRoot := session.Property(msi.PropertyCustomActionData)
	return ds.Install(payloadRoot, session)
}

//export UninstallDrivers
func UninstallDrivers(hInstall uint32) uint32 {
	session := msi.NewSystemSession(msi.Handle(hInstall))
	if err := winapi.Preload(); err != nil {
		// Uninstall never fails the action; without the driver APIs there is
		// simply nothing left to clean up.
		session.Logf("ERROR loading system libraries: 0x%08x", common.WinErrorCode(err))
		return driversetup.StatusSuccess
	}

	ds := newDriverSetup(session)
	payloadRoot := session.Property(msi.PropertyCustomActionData)
	return ds.Uninstall(payloadRoot, session)
}

func newDriverSetup(session *msi.Session) *driversetup.DriverSetup {
	cfg, err := driversetup.HandleAllConfigSetup(driversetup.DefaultCfgPath)
	if err != nil {
		session.Logf("Ignoring bad configuration, using defaults: %s", err.Error())
		cfg = driversetup.NewConfig()
	}

	ds := driversetup.New(cfg, driversetup.DefaultCfgPath, version)
	ds.ConfigureLogger(false)
	return ds
}

func main() {}
