// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers shared by the launcher's tests: stub
// runtime executables that record how they were started, and file helpers.
package testutil
