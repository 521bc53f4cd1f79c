package driversetup

import (
	log "github.com/sirupsen/logrus"

	"github.com/usbipd-win/driversetup/pkg/common"
	"github.com/usbipd-win/driversetup/pkg/driverinstall"
)

// Action status codes returned to the installer engine, per the Windows
// Installer custom action return convention.
const (
	StatusSuccess        uint32 = 0    // ERROR_SUCCESS
	StatusInstallFailure uint32 = 1603 // ERROR_INSTALL_FAILURE
)

// Reporter is the feedback channel of a running action. *msi.Session
// implements it for installer-driven runs; the CLI substitutes a console
// reporter.
type Reporter interface {
	Logf(format string, args ...interface{})
	RequireReboot()
}

// InstallDrivers installs every driver package under payloadRoot in slice
// order, fail-fast: the first failing step is reported with its OS error
// code and aborts the action, leaving cleanup of already-installed drivers
// to the installer's rollback. When any step reported that a reboot is
// needed, the reboot signal is raised exactly once, after the last step.
func InstallDrivers(r Reporter, inst driverinstall.Installer, payloadRoot string, drivers []driverinstall.Driver) uint32 {
	var requestReboot bool
	for _, d := range drivers {
		r.Logf("Installing %s", d.Name)
		needReboot, err := inst.Install(payloadRoot, d)
		if err != nil {
			r.Logf("ERROR installing %s: 0x%08x", d.Name, common.WinErrorCode(err))
			log.WithError(err).Errorf("Failed to install %s", d.Name)
			return StatusInstallFailure
		}
		requestReboot = requestReboot || needReboot
	}

	if requestReboot {
		r.RequireReboot()
	}
	return StatusSuccess
}

// UninstallDrivers removes the driver packages in reverse install order,
// best effort: failures are reported with their OS error code and skipped,
// reboot need is deliberately ignored, and the status is always success so
// a stale driver registration can never block removal of the product.
func UninstallDrivers(r Reporter, inst driverinstall.Installer, payloadRoot string, drivers []driverinstall.Driver) uint32 {
	errs := common.ErrorCollector{}
	for i := len(drivers) - 1; i >= 0; i-- {
		d := drivers[i]
		r.Logf("Uninstalling %s", d.Name)
		if _, err := inst.Uninstall(payloadRoot, d); err != nil {
			r.Logf("ERROR uninstalling %s: 0x%08x", d.Name, common.WinErrorCode(err))
			errs.New(err)
		}
	}

	if errs.HasErrors() {
		log.Errorf("Uninstall completed with errors: %s", errs.String())
	}
	return StatusSuccess
}
