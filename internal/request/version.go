// SPDX-License-Identifier: MPL-2.0

package request

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

type (
	// RuntimeVersion is a strict MAJOR.MINOR.PATCH[-pre][+build] version of the
	// runtime to start. Shorthands such as "1.7" are rejected.
	RuntimeVersion string

	// InvalidVersionError is returned when a --julia value is not a semantic version.
	// It wraps ErrInvalidInput for errors.Is() compatibility.
	InvalidVersionError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid value %q for --julia: must be a Julia version number, e.g. 1.7.3", e.Value)
}

// Unwrap returns ErrInvalidInput so callers can use errors.Is for programmatic detection.
func (e *InvalidVersionError) Unwrap() error { return ErrInvalidInput }

// ParseVersion validates s as a runtime version.
func ParseVersion(s string) (RuntimeVersion, error) {
	if !isStrictSemver(s) {
		return "", &InvalidVersionError{Value: s}
	}
	return RuntimeVersion(s), nil
}

// IsValid returns whether the RuntimeVersion is a strict semantic version,
// and a list of validation errors if it is not.
func (v RuntimeVersion) IsValid() (bool, []error) {
	if !isStrictSemver(string(v)) {
		return false, []error{&InvalidVersionError{Value: string(v)}}
	}
	return true, nil
}

// Channel returns the juliaup channel selector for this version ("+1.7.3").
func (v RuntimeVersion) Channel() string { return "+" + string(v) }

// String returns the version text as supplied by the user.
func (v RuntimeVersion) String() string { return string(v) }

// isStrictSemver reports whether s is a full semantic version without a "v"
// prefix. The semver package accepts "v1.7" and "v1", so the core is also
// required to have exactly three components.
func isStrictSemver(s string) bool {
	if s == "" || strings.HasPrefix(s, "v") {
		return false
	}
	if !semver.IsValid("v" + s) {
		return false
	}
	core, _, _ := strings.Cut(s, "+")
	core, _, _ = strings.Cut(core, "-")
	return strings.Count(core, ".") == 2
}
