// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
)

var (
	// ErrScriptWrite is the sentinel wrapped by ScriptWriteError.
	ErrScriptWrite = errors.New("failed to write discovery script")
	// ErrDiscoverySpawn is returned when the discovery process could not be started.
	ErrDiscoverySpawn = errors.New("failed to run julia artifact lookup command")
	// ErrDiscoveryFailed is the sentinel wrapped by FailureError.
	ErrDiscoveryFailed = errors.New("julia init process did not run successfully")
	// ErrDiscoveryTimeout is returned when the optional discovery timeout expires.
	// It also matches ErrDiscoveryFailed.
	ErrDiscoveryTimeout = fmt.Errorf("%w: timed out", ErrDiscoveryFailed)
	// ErrConfigParse is the sentinel wrapped by ConfigParseError.
	ErrConfigParse = errors.New("failed to parse TOML payload")
)

type (
	// ScriptWriteError reports the path of a discovery script that could not be written.
	ScriptWriteError struct {
		Path string
		Err  error
	}

	// FailureError is returned when the discovery process exits unsuccessfully.
	// Stderr is the captured standard error, verbatim.
	FailureError struct {
		ExitCode int
		Signaled bool
		Stderr   string
	}

	// ConfigParseError is returned when the discovery stdout is not a valid payload.
	// Payload is the raw stdout so the failure can be diagnosed without re-running.
	ConfigParseError struct {
		Payload string
		Err     error
	}
)

// Error implements the error interface.
func (e *ScriptWriteError) Error() string {
	return fmt.Sprintf("failed to write temporary Julia script %s: %v", e.Path, e.Err)
}

// Unwrap returns ErrScriptWrite and the underlying I/O error.
func (e *ScriptWriteError) Unwrap() []error { return []error{ErrScriptWrite, e.Err} }

// Error implements the error interface.
func (e *FailureError) Error() string {
	status := fmt.Sprintf("exit status %d", e.ExitCode)
	if e.Signaled {
		status = "terminated by signal"
	}
	return fmt.Sprintf("%s (%s):\n%s", ErrDiscoveryFailed, status, e.Stderr)
}

// Unwrap returns ErrDiscoveryFailed so callers can use errors.Is for programmatic detection.
func (e *FailureError) Unwrap() error { return ErrDiscoveryFailed }

// Error implements the error interface.
func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("%s: %v:\n%s", ErrConfigParse, e.Err, e.Payload)
}

// Unwrap returns ErrConfigParse and the decoding error.
func (e *ConfigParseError) Unwrap() []error { return []error{ErrConfigParse, e.Err} }
