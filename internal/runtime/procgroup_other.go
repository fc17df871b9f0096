// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package runtime

import "os/exec"

// isolateProcessGroup is a no-op where process groups are unavailable; only
// the direct child is killed on cancellation and WaitDelay bounds the wait.
func isolateProcessGroup(*exec.Cmd) {}
