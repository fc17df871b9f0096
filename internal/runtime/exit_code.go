// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"os"
	"strconv"
)

// SignalExitCode is reported for a process that was terminated by a signal
// instead of exiting normally.
const SignalExitCode ExitCode = 1

// ExitCode represents a process exit status code.
// The zero value (0) means success.
type ExitCode int

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// ExitCodeFromState maps a terminated process state to an ExitCode.
// Processes that did not exit normally map to SignalExitCode and signaled is true;
// state.String() still describes the terminating signal.
func ExitCodeFromState(state *os.ProcessState) (code ExitCode, signaled bool) {
	if state == nil {
		return SignalExitCode, true
	}
	if !state.Exited() {
		return SignalExitCode, true
	}
	return ExitCode(state.ExitCode()), false
}
