// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable, user-facing errors for the launcher.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints. Each error may point at a troubleshooting entry of the
// Markdown catalog, rendered with glamour when --verbose is set.
package issue
