package common

import (
	"errors"
	"fmt"
	"strings"
	"syscall"

	pkgerrors "github.com/pkg/errors"
)

// ErrorCollector accumulates failures of best-effort sequences, where a
// single failing step must not stop the remaining steps.
type ErrorCollector struct {
	errs []error
}

func (c *ErrorCollector) New(err error) {
	c.errs = append(c.errs, err)
}

func (c *ErrorCollector) Addf(format string, args ...interface{}) {
	c.New(fmt.Errorf(format, args...))
}

func (c *ErrorCollector) HasErrors() bool {
	return len(c.errs) > 0
}

// Combine flattens the collected errors into one, or nil when none occurred.
func (c *ErrorCollector) Combine() error {
	if !c.HasErrors() {
		return nil
	}
	return errors.New(c.String())
}

func (c *ErrorCollector) String() string {
	msgs := make([]string, 0, len(c.errs))
	for _, err := range c.errs {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// ErrorGenFailure is reported for errors that carry no Windows error code.
const ErrorGenFailure uint32 = 31 // ERROR_GEN_FAILURE

// WinErrorCode digs the numeric OS error out of a wrapped error chain, for
// the 0x%08x form the installer log uses.
func WinErrorCode(err error) uint32 {
	if err == nil {
		return 0
	}
	if errno, ok := pkgerrors.Cause(err).(syscall.Errno); ok {
		return uint32(errno)
	}
	return ErrorGenFailure
}
