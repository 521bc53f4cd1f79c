package driversetup

import (
	"fmt"
	"os"

	"github.com/troian/toml"

	"github.com/usbipd-win/driversetup/pkg/driverinstall"
)

// DefaultCfgPath points next to the executable (or DLL) on Windows; set per
// platform in defaults_*.go.
var DefaultCfgPath string
var defaultLogPath string

// Config controls the setup actions. The file is optional: the shipped
// defaults describe the product's fixed driver payload, and a config file
// only exists when support needs to switch the registration strategy or
// raise log verbosity in the field. The reboot marker and property names
// are contracts with the installer package and are not configurable.
type Config struct {
	LogFile  string                 `toml:"log"`
	LogLevel LogLevel               `toml:"log_level"`
	Strategy driverinstall.Strategy `toml:"strategy"`
	Drivers  []driverinstall.Driver `toml:"drivers"`
}

func NewConfig() *Config {
	return &Config{
		LogFile:  defaultLogPath,
		LogLevel: LogLevelInfo,
		Strategy: driverinstall.StrategyInf,
		Drivers:  driverinstall.DefaultDrivers(),
	}
}

func (cfg *Config) validate() error {
	if !cfg.Strategy.IsValid() {
		return fmt.Errorf("config: unknown strategy %q", cfg.Strategy)
	}
	if !cfg.LogLevel.IsValid() {
		return fmt.Errorf("config: unknown log level %q", cfg.LogLevel)
	}
	if len(cfg.Drivers) == 0 {
		return fmt.Errorf("config: no drivers configured")
	}
	for _, d := range cfg.Drivers {
		if d.Name == "" || d.Inf == "" {
			return fmt.Errorf("config: driver entries need at least a name and an inf path")
		}
	}
	return nil
}

func (cfg *Config) applyEnv() {
	if strategy := os.Getenv("DRIVERSETUP_STRATEGY"); strategy != "" {
		cfg.Strategy = driverinstall.Strategy(strategy)
	}
	if lvl := os.Getenv("DRIVERSETUP_LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = LogLevel(lvl)
	}
}

// TryUpdateConfigFromFile overwrites cfg with whatever the file specifies,
// leaving unspecified fields at their current values.
func TryUpdateConfigFromFile(cfg *Config, configFilePath string) error {
	_, err := os.Stat(configFilePath)
	if err != nil {
		return err
	}

	_, err = toml.DecodeFile(configFilePath, cfg)
	return err
}

// HandleAllConfigSetup produces the active config: defaults, overlaid with
// the config file when one exists, overlaid with environment overrides. A
// missing config file is not an error; a malformed or invalid one is.
func HandleAllConfigSetup(configFilePath string) (*Config, error) {
	cfg := NewConfig()

	err := TryUpdateConfigFromFile(cfg, configFilePath)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
