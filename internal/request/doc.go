// SPDX-License-Identifier: MPL-2.0

// Package request validates the user-supplied launcher arguments and builds the
// immutable Request that drives a single run.
//
// Every value that ends up inside the generated discovery script passes through
// this package first, so no subprocess is ever started with an unvalidated
// package or image name.
package request
