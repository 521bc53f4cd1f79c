// +build windows

package driverinstall

import (
	"github.com/pkg/errors"

	"github.com/usbipd-win/driversetup/pkg/winapi"
)

// infInstaller registers drivers straight from the payload INF files.
// DiInstallDriver stages the package into the driver store itself and
// reports whether activation needs a reboot.
type infInstaller struct{}

func (infInstaller) Install(payloadRoot string, d Driver) (bool, error) {
	// Force the payload INF even when Windows believes it already has a
	// better matching driver; the product requires its shipped version.
	needReboot, err := winapi.DiInstallDriver(d.InfPath(payloadRoot), winapi.DiInstallDriverForceINF)
	if err != nil {
		return false, errors.Wrapf(err, "install driver %s", d.Name)
	}
	return needReboot, nil
}

func (infInstaller) Uninstall(payloadRoot string, d Driver) (bool, error) {
	needReboot, err := winapi.DiUninstallDriver(d.InfPath(payloadRoot), 0)
	if err != nil {
		return false, errors.Wrapf(err, "uninstall driver %s", d.Name)
	}
	return needReboot, nil
}
