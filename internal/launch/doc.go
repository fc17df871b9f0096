// SPDX-License-Identifier: MPL-2.0

// Package launch starts the interactive runtime with a resolved system image
// and waits for it.
//
// While the child runs, the launcher absorbs interrupts instead of dying on
// them: Ctrl-C at the terminal is delivered to the whole foreground process
// group, so the child still receives it and decides what to do, and the
// launcher stays alive to report the child's exit code.
package launch
