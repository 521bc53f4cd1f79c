// +build !windows

package driversetup

import (
	"os"
	"path/filepath"
)

// Non-Windows builds only run the CLI for config inspection and tests.
func init() {
	DefaultCfgPath = filepath.Join(os.TempDir(), "driversetup.conf")
	defaultLogPath = filepath.Join(os.TempDir(), "driversetup.log")
}
