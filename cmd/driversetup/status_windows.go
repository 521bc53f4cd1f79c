// +build windows

package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/usbipd-win/driversetup"
	"github.com/usbipd-win/driversetup/pkg/driverinstall"
)

func printStatus(ds *driversetup.DriverSetup) error {
	for _, d := range ds.Config.Drivers {
		st, err := driverinstall.Verify(d)
		if err != nil {
			return err
		}

		switch {
		case !st.Registered:
			fmt.Printf("%-12s not installed\n", st.Name)
		case st.State == "":
			fmt.Printf("%-12s installed\n", st.Name)
		default:
			fmt.Printf("%-12s installed, %s\n", st.Name, st.State)
		}
		if st.Registered && !st.InWMI {
			log.Warnf("%s has a kernel service but is missing from Win32_SystemDriver", st.Name)
		}
	}

	devices, err := driverinstall.PresentUSBDevices()
	if err != nil {
		log.WithError(err).Debug("Incomplete USB device listing")
	}
	log.Debugf("%d USB devices present", len(devices))
	for _, dev := range devices {
		log.Debug(dev)
	}

	return nil
}
