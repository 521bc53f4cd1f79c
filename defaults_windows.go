// +build windows

package driversetup

import (
	"os"
	"path/filepath"
)

func init() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}

	exPath := filepath.Dir(ex)

	DefaultCfgPath = filepath.Join(exPath, "./driversetup.conf")
	defaultLogPath = filepath.Join(exPath, "./driversetup.log")
}
