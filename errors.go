package gglive

import (
	"errors"
	"fmt"

	"github.com/gogpu/gglive/bridge"
	"github.com/gogpu/gglive/store"
)

// Device errors. Each wraps the sentinel of the layer it comes from, so
// errors.Is matches either one.
var (
	// ErrNotFound is returned when a selector matches no page.
	ErrNotFound = fmt.Errorf("gglive: page not found: %w", store.ErrNotFound)

	// ErrInvalidState is returned by service calls on a device that is
	// closing or closed.
	ErrInvalidState = fmt.Errorf("gglive: device not running: %w", bridge.ErrClosed)

	// ErrResourceExhausted is returned by Start when the transport cannot
	// bind its address.
	ErrResourceExhausted = errors.New("gglive: resource exhausted")

	// ErrHostCallbackViolation is the panic value raised when host
	// callbacks are entered from two goroutines at once.
	ErrHostCallbackViolation = bridge.ErrHostCallbackViolation
)

// serviceError maps store and bridge errors to the device errors.
func serviceError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrClosed), errors.Is(err, bridge.ErrClosed):
		return ErrInvalidState
	}
	return err
}
