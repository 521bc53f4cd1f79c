// +build windows

package wmiutil

import (
	"context"
	"time"

	"github.com/StackExchange/wmi"
)

// QueryWithTimeout runs a WMI query with an upper bound on how long it may
// take. WMI calls go through out-of-process COM and have been observed to
// hang on degraded systems; a stuck query must not stall an installation.
func QueryWithTimeout(timeout time.Duration, query string, dst interface{}, connectServerArgs ...interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- wmi.Query(query, dst, connectServerArgs...)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errChan:
		return err
	}
}
