// SPDX-License-Identifier: MPL-2.0

// Package runtime models the Julia executable that the launcher starts twice:
// once as a captured discovery process and once as the interactive process
// that inherits the terminal.
//
// Runtime.Capture runs a process to completion and returns its exit code,
// stdout and stderr. Runtime.Start spawns a process whose I/O is wired to the
// caller's streams; Process.Wait blocks until it terminates. Environment
// overrides are layered on top of the launcher's own environment with Overlay,
// so the launcher process itself is never mutated.
package runtime
