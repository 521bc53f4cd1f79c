package driversetup

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelError LogLevel = "error"
)

func (lvl LogLevel) IsValid() bool {
	switch lvl {
	case LogLevelDebug:
		fallthrough
	case LogLevelInfo:
		fallthrough
	case LogLevelError:
		return true
	default:
		return false
	}
}

func (lvl LogLevel) LogrusLevel() logrus.Level {
	switch lvl {
	case LogLevelDebug:
		return logrus.DebugLevel
	case LogLevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

type logrusFileHook struct {
	file      *os.File
	formatter *logrus.TextFormatter
}

func addLogFileHook(file string, flag int, chmod os.FileMode) error {
	dir := filepath.Dir(file)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		logrus.WithError(err).Errorf("Failed to create the logs dir: '%s'", dir)
	}

	plainFormatter := &logrus.TextFormatter{FullTimestamp: true, DisableColors: true}
	logFile, err := os.OpenFile(file, flag, chmod)
	if err != nil {
		return fmt.Errorf("Unable to write log file: %s", err.Error())
	}

	logrus.AddHook(&logrusFileHook{logFile, plainFormatter})
	return nil
}

// Fire event
func (hook *logrusFileHook) Fire(entry *logrus.Entry) error {
	plainformat, err := hook.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = hook.file.WriteString(string(plainformat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to write log entry to file: %v", err)
		return err
	}
	return nil
}

func (hook *logrusFileHook) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
		logrus.WarnLevel,
		logrus.InfoLevel,
		logrus.DebugLevel,
	}
}

// Sets Log level and corresponding logrus level
func (ds *DriverSetup) SetLogLevel(lvl LogLevel) {
	ds.Config.LogLevel = lvl
	logrus.SetLevel(lvl.LogrusLevel())
}

// ConfigureLogger sets up the diagnostic logrus output. With console output
// disabled (the DLL inside msiexec has no useful stderr) everything goes to
// the configured log file only; the installer log remains the operator
// channel either way.
func (ds *DriverSetup) ConfigureLogger(console bool) {
	tfmt := logrus.TextFormatter{FullTimestamp: true, DisableColors: true}
	logrus.SetFormatter(&tfmt)

	ds.SetLogLevel(ds.Config.LogLevel)

	if ds.Config.LogFile != "" {
		err := addLogFileHook(ds.Config.LogFile, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
		if err != nil {
			logrus.Error("Can't write logs to file: ", err.Error())
		}
	}

	if !console {
		devNull, err := os.OpenFile(os.DevNull, os.O_APPEND|os.O_WRONLY, os.ModeAppend)
		if err == nil {
			logrus.SetOutput(devNull)
		}
	}
}
