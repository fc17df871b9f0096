// SPDX-License-Identifier: MPL-2.0

// Package discovery resolves where a package keeps the artifacts of a system
// image by asking the package itself.
//
// A small script is generated from the (already validated) package and image
// names and executed by the runtime in a fast-startup mode:
//
//	import Pkg; Pkg.SystemImageLoader.toml(Pkg.config(:Image))
//
// The package prints a TOML document on stdout with three required string keys
// (image, depot, load_path), which ParsePayload decodes into a Resolved value.
// Nothing is cached: every launch runs discovery again.
package discovery
