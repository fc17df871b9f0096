// SPDX-License-Identifier: MPL-2.0

package request

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidInput is the sentinel wrapped by every validation error in this package.
var ErrInvalidInput = errors.New("invalid input")

// identifierPattern is the ASCII subset of Julia identifiers accepted for
// package and image names.
var identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

type (
	// Identifier is a validated Julia ASCII identifier (package or image name).
	Identifier string

	// InvalidIdentifierError is returned when a flag value is not a Julia ASCII
	// identifier. It wraps ErrInvalidInput for errors.Is() compatibility.
	InvalidIdentifierError struct {
		// Flag is the CLI flag the value was supplied through, without dashes.
		// Empty when the value did not come from a flag.
		Flag  string
		Value string
	}
)

// Error implements the error interface.
func (e *InvalidIdentifierError) Error() string {
	if e.Flag == "" {
		return fmt.Sprintf("invalid identifier %q: must be a valid Julia ASCII identifier", e.Value)
	}
	return fmt.Sprintf("invalid value %q for --%s: must be a valid Julia ASCII identifier", e.Value, e.Flag)
}

// Unwrap returns ErrInvalidInput so callers can use errors.Is for programmatic detection.
func (e *InvalidIdentifierError) Unwrap() error { return ErrInvalidInput }

// ParseIdentifier validates s as the value of the given flag.
func ParseIdentifier(flag, s string) (Identifier, error) {
	id := Identifier(s)
	if !identifierPattern.MatchString(s) {
		return "", &InvalidIdentifierError{Flag: flag, Value: s}
	}
	return id, nil
}

// IsValid returns whether the Identifier matches the ASCII identifier rule,
// and a list of validation errors if it does not.
func (id Identifier) IsValid() (bool, []error) {
	if !identifierPattern.MatchString(string(id)) {
		return false, []error{&InvalidIdentifierError{Value: string(id)}}
	}
	return true, nil
}

// String returns the identifier text.
func (id Identifier) String() string { return string(id) }
