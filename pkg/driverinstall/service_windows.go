// +build windows

package driverinstall

import (
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"

	"github.com/usbipd-win/driversetup/pkg/winapi"
)

const serviceStopTimeout = 10 * time.Second

// serviceInstaller pre-stages the INF into the driver store and registers
// the driver binary as a demand-start kernel-mode service. This is the
// older packaging generation; the drivers are started on demand by the
// product, never by the installer.
type serviceInstaller struct{}

func (serviceInstaller) Install(payloadRoot string, d Driver) (bool, error) {
	if _, err := winapi.SetupCopyOEMInf(d.InfPath(payloadRoot), 0); err != nil {
		return false, errors.Wrapf(err, "stage inf for %s", d.Name)
	}

	m, err := mgr.Connect()
	if err != nil {
		return false, errors.Wrap(err, "connect to service manager")
	}
	defer m.Disconnect()

	if s, err := m.OpenService(d.Name); err == nil {
		// Already registered; file staging refreshed the binary in place.
		s.Close()
		return false, nil
	}

	s, err := m.CreateService(d.Name, d.SysPath(payloadRoot), mgr.Config{
		ServiceType:  windows.SERVICE_KERNEL_DRIVER,
		StartType:    mgr.StartManual,
		ErrorControl: mgr.ErrorNormal,
		DisplayName:  d.DisplayName,
	})
	if err != nil {
		return false, errors.Wrapf(err, "create service %s", d.Name)
	}
	s.Close()
	return false, nil
}

func (serviceInstaller) Uninstall(payloadRoot string, d Driver) (bool, error) {
	m, err := mgr.Connect()
	if err != nil {
		return false, errors.Wrap(err, "connect to service manager")
	}
	defer m.Disconnect()

	if s, err := m.OpenService(d.Name); err == nil {
		defer s.Close()
		stopService(s)
		if err := s.Delete(); err != nil {
			return false, errors.Wrapf(err, "delete service %s", d.Name)
		}
	}

	// Locating the staged copy: a replace-only SetupCopyOEMInf does not copy
	// anything and reports where the existing oem<n>.inf lives. It fails if
	// the INF was never staged, in which case there is nothing to remove.
	staged, err := winapi.SetupCopyOEMInf(d.InfPath(payloadRoot), winapi.SetupCopyReplaceOnly)
	if err != nil {
		return false, nil
	}
	if err := winapi.SetupUninstallOEMInf(filepath.Base(staged), 0); err != nil {
		return false, errors.Wrapf(err, "remove staged inf for %s", d.Name)
	}
	return false, nil
}

// stopService asks the service to stop and waits briefly for it to comply.
// Best effort: DeleteService marks a still-running service for deletion on
// reboot anyway.
func stopService(s *mgr.Service) {
	status, err := s.Query()
	if err != nil || status.State == svc.Stopped {
		return
	}

	status, err = s.Control(svc.Stop)
	deadline := time.Now().Add(serviceStopTimeout)
	for err == nil && status.State != svc.Stopped && time.Now().Before(deadline) {
		time.Sleep(300 * time.Millisecond)
		status, err = s.Query()
	}
}
