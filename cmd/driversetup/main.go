package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nightlyone/lockfile"
	"github.com/shirou/gopsutil/host"
	log "github.com/sirupsen/logrus"
	"github.com/troian/toml"

	"github.com/usbipd-win/driversetup"
)

var (
	// set on build:
	// go build -o driversetup -ldflags="-X main.version=$(git describe --always --long --dirty --tag)" github.com/usbipd-win/driversetup/cmd/driversetup
	version string
)

func main() {
	cfgPathPtr := flag.String("c", driversetup.DefaultCfgPath, "config file path")
	logLevelPtr := flag.String("v", "", "log level – overrides the level in config file (values \"error\",\"info\",\"debug\")")
	installRootPtr := flag.String("i", "", "install the driver packages found under the given payload `root`")
	uninstallRootPtr := flag.String("u", "", "uninstall the driver packages found under the given payload `root`")
	statusPtr := flag.Bool("s", false, "print the registration status of each configured driver")
	printConfigPtr := flag.Bool("p", false, "print the active config")
	versionPtr := flag.Bool("version", false, "show the driversetup version")

	flag.Parse()

	// version should be handled first to ensure it will be accessible in case of fatal errors before
	handleFlagVersion(*versionPtr)

	if *installRootPtr != "" && *uninstallRootPtr != "" {
		fmt.Println("Install(-i) flag can't be used together with uninstall(-u) flag")
		os.Exit(1)
	}

	cfg, err := driversetup.HandleAllConfigSetup(*cfgPathPtr)
	if err != nil {
		log.Fatalf("Failed to handle driversetup configuration: %s", err.Error())
	}

	ds := driversetup.New(cfg, *cfgPathPtr, version)

	handleFlagPrintConfig(*printConfigPtr, cfg)

	setDefaultLogFormatter()
	ds.ConfigureLogger(true)

	// log level set in flag has a precedence over the config file
	handleFlagLogLevel(ds, *logLevelPtr)

	switch {
	case *installRootPtr != "":
		os.Exit(runLocked(func() int {
			logHostInfo(ds)
			return int(ds.Install(normalizeRoot(*installRootPtr), &consoleReporter{}))
		}))
	case *uninstallRootPtr != "":
		os.Exit(runLocked(func() int {
			logHostInfo(ds)
			return int(ds.Uninstall(normalizeRoot(*uninstallRootPtr), &consoleReporter{}))
		}))
	case *statusPtr:
		if err := printStatus(ds); err != nil {
			log.Fatalf("Failed to query driver status: %s", err.Error())
		}
	default:
		flag.Usage()
		os.Exit(1)
	}
}

// consoleReporter is the CLI stand-in for the installer session: messages
// land in the console/file log and the reboot signal becomes a warning,
// since outside an installation transaction there is no reboot check to
// notify.
type consoleReporter struct{}

func (*consoleReporter) Logf(format string, args ...interface{}) {
	log.Infof(format, args...)
}

func (*consoleReporter) RequireReboot() {
	log.Warn("A reboot is required to complete driver activation")
}

// runLocked guards the SCM and driver store against a second concurrent
// driversetup run. The installer engine serializes its own custom actions;
// this lock only protects manual invocations.
func runLocked(action func() int) int {
	lockPath, err := filepath.Abs(filepath.Join(os.TempDir(), "driversetup.lock"))
	if err != nil {
		log.Fatalf("Failed to resolve lock file path: %s", err.Error())
	}

	lock, err := lockfile.New(lockPath)
	if err != nil {
		log.Fatalf("Failed to init lock file: %s", err.Error())
	}
	if err := lock.TryLock(); err != nil {
		log.Fatalf("Another driversetup instance seems to be running: %s", err.Error())
	}
	defer lock.Unlock()

	return action()
}

func normalizeRoot(root string) string {
	if !strings.HasSuffix(root, `\`) && !strings.HasSuffix(root, "/") {
		root += string(os.PathSeparator)
	}
	return root
}

func logHostInfo(ds *driversetup.DriverSetup) {
	log.Info(ds.Version())

	info, err := host.Info()
	if err != nil {
		log.WithError(err).Debug("Unable to read host info")
		return
	}
	log.Infof("Host: %s (%s %s)", info.Hostname, info.Platform, info.PlatformVersion)
}

func handleFlagVersion(versionFlag bool) {
	if versionFlag {
		fmt.Printf("driversetup v%s, driver setup tool for usbipd-win\n", version)
		os.Exit(0)
	}
}

func handleFlagPrintConfig(printConfig bool, cfg *driversetup.Config) {
	if printConfig {
		enc := toml.NewEncoder(os.Stdout)
		if err := enc.Encode(cfg); err != nil {
			log.Fatalf("Failed to print the config: %s", err.Error())
		}
		os.Exit(0)
	}
}

func handleFlagLogLevel(ds *driversetup.DriverSetup, logLevel string) {
	if logLevel == "" {
		return
	}
	lvl := driversetup.LogLevel(logLevel)
	if !lvl.IsValid() {
		log.Warnf("Invalid log level: %q. Keeping %q from the config", logLevel, ds.Config.LogLevel)
		return
	}
	ds.SetLogLevel(lvl)
}

func setDefaultLogFormatter() {
	tfmt := log.TextFormatter{FullTimestamp: true, DisableColors: true}
	log.SetFormatter(&tfmt)
}
