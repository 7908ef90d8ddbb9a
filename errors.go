package radio

import (
	"errors"
	"fmt"
)

// Sentinel error kinds (spec §7). InvalidParameter is deliberately not
// one of them: out-of-range mode parameters are clamped silently by the
// With*/New* constructors in mode.go and never produce an error.
var (
	// ErrDeviceError marks a tuner I/O failure, invalid handle, or
	// disconnected device. The controller stops the pipeline and awaits
	// re-open when it sees this.
	ErrDeviceError = errors.New("radio: device error")

	// ErrUnknownScheme marks a requested mode tag that has no registered
	// pipeline constructor.
	ErrUnknownScheme = errors.New("radio: unknown scheme")

	// ErrSinkError marks an audio sink that refused a block. It is
	// fatal for the current session: the controller stops the pipeline.
	ErrSinkError = errors.New("radio: sink error")
)

// DeviceError wraps a tuner-reported failure so ErrDeviceError can be
// matched with errors.Is while the causing error is preserved with
// errors.Unwrap.
func DeviceError(cause error) error {
	return fmt.Errorf("%w: %w", ErrDeviceError, cause)
}

// UnknownSchemeError wraps the offending scheme tag.
func UnknownSchemeError(scheme fmt.Stringer) error {
	return fmt.Errorf("%w: %s", ErrUnknownScheme, scheme)
}

// SinkErrorWrap wraps a sink-reported failure.
func SinkErrorWrap(cause error) error {
	return fmt.Errorf("%w: %w", ErrSinkError, cause)
}
