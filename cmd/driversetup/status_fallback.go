// +build !windows

package main

import (
	"errors"

	"github.com/usbipd-win/driversetup"
)

func printStatus(ds *driversetup.DriverSetup) error {
	return errors.New("driver status is only available on windows")
}
