// +build !windows

package driverinstall

import (
	"github.com/pkg/errors"
)

// NewInstaller is only functional on Windows; driver registration has no
// meaning elsewhere.
func NewInstaller(s Strategy) (Installer, error) {
	if !s.IsValid() {
		return nil, errors.Errorf("driverinstall: unknown strategy %q", s)
	}
	return nil, errors.New("driverinstall: driver installation is only supported on windows")
}
