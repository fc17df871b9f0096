// SPDX-License-Identifier: MPL-2.0

// Package launcher sequences a complete run: discovery script, discovery
// process, payload parsing and the interactive launch. It owns the run's state
// machine and is the only place that knows the order of the phases.
package launcher
