package wellspring

import (
	"errors"
	"fmt"
)

// ErrPropertyNotSupported reports that a provider has no setter for a
// property. The factory downgrades it to a listener warning; it never
// reaches callers of CreateConnection.
var ErrPropertyNotSupported = errors.New("property not supported")

// ErrNoDriver is returned when driver mode is selected without an explicit
// provider and no registered driver claims the configured URL.
var ErrNoDriver = errors.New("no registered driver for URL")

// ConfigurationError is fatal and only raised from New. A factory either
// constructs completely or not at all.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wellspring: configuration: %s: %v", e.Reason, e.Err)
	}
	return "wellspring: configuration: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ProtocolError is raised per call from CreateConnection: an XA connection
// without a transactional resource, or a provider failure passed through
// unchanged as the wrapped cause. The factory remains usable after it.
type ProtocolError struct {
	Op  string
	Err error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wellspring: %s: %v", e.Op, e.Err)
	}
	return "wellspring: " + e.Op
}

func (e *ProtocolError) Unwrap() error { return e.Err }

func configErrf(err error, format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...), Err: err}
}
