package driversetup

import (
	"fmt"
	"runtime"

	log "github.com/sirupsen/logrus"

	"github.com/usbipd-win/driversetup/pkg/driverinstall"
)

// DriverSetup ties the active configuration to the install and uninstall
// actions. It holds no cross-invocation state; the installer engine
// serializes custom actions and the CLI takes a lock file.
type DriverSetup struct {
	Config         *Config
	ConfigLocation string

	version string
}

func New(cfg *Config, cfgPath string, version string) *DriverSetup {
	return &DriverSetup{
		Config:         cfg,
		ConfigLocation: cfgPath,
		version:        version,
	}
}

func (ds *DriverSetup) Version() string {
	if ds.version == "" {
		return "{undefined}"
	}
	return fmt.Sprintf("driversetup v%s %s %s", ds.version, runtime.GOOS, runtime.GOARCH)
}

// Install runs the install action with the configured strategy and driver
// set. payloadRoot must carry a trailing path separator.
func (ds *DriverSetup) Install(payloadRoot string, r Reporter) uint32 {
	inst, err := driverinstall.NewInstaller(ds.Config.Strategy)
	if err != nil {
		r.Logf("ERROR preparing driver installation: %s", err.Error())
		return StatusInstallFailure
	}
	return InstallDrivers(r, inst, payloadRoot, ds.Config.Drivers)
}

// Uninstall runs the uninstall action. Like every uninstall path it reports
// success even when nothing could be done, so product removal is never
// blocked.
func (ds *DriverSetup) Uninstall(payloadRoot string, r Reporter) uint32 {
	inst, err := driverinstall.NewInstaller(ds.Config.Strategy)
	if err != nil {
		r.Logf("ERROR preparing driver removal: %s", err.Error())
		log.WithError(err).Error("Skipping driver removal")
		return StatusSuccess
	}
	return UninstallDrivers(r, inst, payloadRoot, ds.Config.Drivers)
}
