// +build windows

package driverinstall

import (
	"fmt"
	"time"

	"github.com/StackExchange/wmi"
	"github.com/gentlemanautomaton/windevice"
	"github.com/gentlemanautomaton/windevice/deviceclass"
	"github.com/pkg/errors"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"

	"github.com/usbipd-win/driversetup/pkg/common"
	wmiutil "github.com/usbipd-win/driversetup/pkg/wmi"
)

const wmiQueryTimeout = 10 * time.Second

// Status is the system's view of one driver registration.
type Status struct {
	Name       string
	Registered bool   // kernel service exists
	State      string // service state, empty when not registered
	InWMI      bool   // listed by Win32_SystemDriver
}

// Verify reports whether the driver's kernel service is registered and what
// WMI knows about it. It performs no changes.
func Verify(d Driver) (Status, error) {
	st := Status{Name: d.Name}

	m, err := mgr.Connect()
	if err != nil {
		return st, errors.Wrap(err, "connect to service manager")
	}
	defer m.Disconnect()

	if s, err := m.OpenService(d.Name); err == nil {
		st.Registered = true
		if status, err := s.Query(); err == nil {
			st.State = serviceStateString(status.State)
		}
		s.Close()
	}

	var dst []win32_SystemDriver
	q := wmi.CreateQuery(&dst, fmt.Sprintf("WHERE Name = '%s'", d.Name))
	if err := wmiutil.QueryWithTimeout(wmiQueryTimeout, q, &dst); err != nil {
		return st, errors.Wrap(err, "query Win32_SystemDriver")
	}
	st.InWMI = len(dst) > 0

	return st, nil
}

func serviceStateString(state svc.State) string {
	switch state {
	case svc.Stopped:
		return "stopped"
	case svc.StartPending:
		return "starting"
	case svc.StopPending:
		return "stopping"
	case svc.Running:
		return "running"
	case svc.ContinuePending:
		return "resuming"
	case svc.PausePending:
		return "pausing"
	case svc.Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// PresentUSBDevices lists the USB devices currently present, for diagnostic
// output around driver installation.
func PresentUSBDevices() ([]string, error) {
	query := windevice.DeviceQuery{
		Enumerator: "USB",
		Flags:      deviceclass.Present,
	}

	errs := common.ErrorCollector{}
	result := make([]string, 0)
	err := query.Each(func(device windevice.Device) {
		description, err := device.Description()
		if err != nil {
			errs.Addf("could not get USB device description %s", err.Error())
			return
		}
		instanceID, _ := device.DeviceInstanceID()
		if instanceID != "" {
			description = fmt.Sprintf("%s (%s)", description, instanceID)
		}
		result = append(result, description)
	})
	if err != nil {
		errs.New(err)
	}

	return result, errs.Combine()
}
