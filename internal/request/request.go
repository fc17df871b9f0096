// SPDX-License-Identifier: MPL-2.0

package request

import (
	"errors"
	"slices"
)

// Request is the validated invocation of a single launcher run.
// Fields are unexported so the value cannot change after New returns.
type Request struct {
	version     RuntimeVersion
	image       Identifier
	pkg         Identifier
	passthrough []string
}

// New validates the raw flag values and builds a Request.
// All invalid fields are reported together; the returned error matches
// ErrInvalidInput with errors.Is.
func New(version, image, pkg string, passthrough []string) (Request, error) {
	var errs []error

	v, err := ParseVersion(version)
	if err != nil {
		errs = append(errs, err)
	}
	img, err := ParseIdentifier("image", image)
	if err != nil {
		errs = append(errs, err)
	}
	p, err := ParseIdentifier("package", pkg)
	if err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return Request{}, errors.Join(errs...)
	}

	return Request{
		version:     v,
		image:       img,
		pkg:         p,
		passthrough: slices.Clone(passthrough),
	}, nil
}

// Version returns the runtime version selected with --julia.
func (r Request) Version() RuntimeVersion { return r.version }

// Image returns the system image name selected with --image.
func (r Request) Image() Identifier { return r.image }

// Package returns the package that provides the image artifacts.
func (r Request) Package() Identifier { return r.pkg }

// PassthroughArgs returns a copy of the arguments forwarded to the interactive runtime.
func (r Request) PassthroughArgs() []string { return slices.Clone(r.passthrough) }

// IsValid reports whether every field holds a validated value. The zero Request
// is invalid; a Request returned by New always is.
func (r Request) IsValid() (bool, []error) {
	var errs []error
	if ok, fieldErrs := r.version.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := r.image.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := r.pkg.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, errs
	}
	return true, nil
}
