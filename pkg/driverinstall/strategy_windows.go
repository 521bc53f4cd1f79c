// +build windows

package driverinstall

import (
	"github.com/pkg/errors"
)

// NewInstaller returns the Installer implementing the given strategy.
func NewInstaller(s Strategy) (Installer, error) {
	switch s {
	case StrategyInf:
		return &infInstaller{}, nil
	case StrategyService:
		return &serviceInstaller{}, nil
	default:
		return nil, errors.Errorf("driverinstall: unknown strategy %q", s)
	}
}
