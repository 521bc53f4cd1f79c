package driverinstall

// Driver describes one kernel-mode driver package inside the installer
// payload. Inf and Sys are relative to the payload root; the install
// sequence passes the root terminated with a path separator, so locations
// are built by plain concatenation.
type Driver struct {
	Name        string `toml:"name"`
	DisplayName string `toml:"display_name"`
	Inf         string `toml:"inf"`
	Sys         string `toml:"sys"`
}

// InfPath returns the location of the driver's INF file under root.
func (d Driver) InfPath(root string) string {
	return root + d.Inf
}

// SysPath returns the location of the driver's binary under root.
func (d Driver) SysPath(root string) string {
	return root + d.Sys
}

// Installer installs and removes driver packages. Implementations report
// whether a reboot is required to complete the operation.
type Installer interface {
	Install(payloadRoot string, d Driver) (needReboot bool, err error)
	Uninstall(payloadRoot string, d Driver) (needReboot bool, err error)
}

// Strategy selects how driver packages are registered with the system. The
// two strategies reflect the product's two driver-packaging generations and
// are mutually exclusive.
type Strategy string

const (
	// StrategyInf drives DiInstallDriver/DiUninstallDriver directly on the
	// payload INF files.
	StrategyInf Strategy = "inf"
	// StrategyService pre-stages the INF into the driver store and manages
	// the kernel-mode service through the service control manager.
	StrategyService Strategy = "service"
)

func (s Strategy) IsValid() bool {
	switch s {
	case StrategyInf, StrategyService:
		return true
	default:
		return false
	}
}

// DefaultDrivers returns the fixed payload layout of the product: the USB
// monitor filter driver first, then the USB device driver. Install order is
// the slice order; uninstall runs in reverse.
func DefaultDrivers() []Driver {
	return []Driver{
		{
			Name:        "VBoxUSBMon",
			DisplayName: "VirtualBox USB Monitor Driver",
			Inf:         `Drivers\VBoxUSBMon\VBoxUSBMon.inf`,
			Sys:         `Drivers\VBoxUSBMon\VBoxUSBMon.sys`,
		},
		{
			Name:        "VBoxUSB",
			DisplayName: "VirtualBox USB Driver",
			Inf:         `Drivers\VBoxUSB\VBoxUSB.inf`,
			Sys:         `Drivers\VBoxUSB\VBoxUSB.sys`,
		},
	}
}
