// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

const (
	// DefaultExecutable is the runtime looked up on PATH when none is configured.
	DefaultExecutable = "julia"
	// DefaultDepotVar names the variable that carries the resolved depot.
	DefaultDepotVar = "JULIA_DEPOT_PATH"
	// DefaultLoadPathVar names the variable that carries the resolved load path.
	DefaultLoadPathVar = "JULIA_LOAD_PATH"

	// captureWaitDelay bounds how long Capture waits for output pipes held
	// open by descendants once the process has exited or been killed.
	captureWaitDelay = 2 * time.Second
)

// ErrStart is the sentinel wrapped by StartError.
var ErrStart = errors.New("failed to start runtime process")

type (
	// Runtime is the executable used for both launcher phases.
	Runtime struct {
		// Executable is a program name resolved on PATH, or a path.
		Executable string
	}

	// Invocation describes a single process launch.
	Invocation struct {
		// Args are passed after the executable name.
		Args []string
		// Env holds variables that override the inherited environment for this
		// process only.
		Env map[string]string

		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Result is the outcome of a captured run.
	Result struct {
		// ExitCode is the process exit code; 1 when it was terminated by a signal.
		ExitCode ExitCode
		// Signaled is true when the process did not exit normally.
		Signaled bool
		Stdout   []byte
		Stderr   []byte
	}

	// Process is a spawned runtime process.
	Process struct {
		cmd *exec.Cmd
	}

	// StartError is returned when the executable could not be started
	// (not found, not executable, ...). It wraps ErrStart and the OS error.
	StartError struct {
		Executable string
		Err        error
	}
)

// Error implements the error interface.
func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Executable, e.Err)
}

// Unwrap returns both ErrStart and the underlying OS error.
func (e *StartError) Unwrap() []error { return []error{ErrStart, e.Err} }

// New creates a Runtime for executable; an empty name selects DefaultExecutable.
func New(executable string) *Runtime {
	if executable == "" {
		executable = DefaultExecutable
	}
	return &Runtime{Executable: executable}
}

// Command returns the full argv (executable first) for inv.
func (r *Runtime) Command(inv Invocation) []string {
	return append([]string{r.Executable}, inv.Args...)
}

// Capture runs inv to completion, buffering stdout and stderr. A non-zero exit
// is reported through Result, not as an error; the error is reserved for
// failures to start or reap the process. Cancelling ctx kills the process and
// everything it started.
func (r *Runtime) Capture(ctx context.Context, inv Invocation) (*Result, error) {
	cmd := r.command(ctx, inv)
	isolateProcessGroup(cmd)
	cmd.WaitDelay = captureWaitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, &StartError{Executable: r.Executable, Err: err}
	}

	if err := cmd.Wait(); err != nil {
		// ErrWaitDelay means the process was reaped but a descendant kept the
		// pipes open; the captured output up to that point stands.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) && !errors.Is(err, exec.ErrWaitDelay) {
			return nil, fmt.Errorf("failed to wait for %s: %w", r.Executable, err)
		}
	}

	code, signaled := ExitCodeFromState(cmd.ProcessState)
	return &Result{
		ExitCode: code,
		Signaled: signaled,
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
	}, nil
}

// Start spawns inv with its streams attached to the given readers and writers.
// The process is not bound to any context: only the process itself (or the
// user at the terminal) decides when it ends.
func (r *Runtime) Start(inv Invocation) (*Process, error) {
	cmd := r.command(context.Background(), inv)
	cmd.Stdin = inv.Stdin
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr

	if err := cmd.Start(); err != nil {
		return nil, &StartError{Executable: r.Executable, Err: err}
	}
	return &Process{cmd: cmd}, nil
}

// Pid returns the OS process id.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Wait blocks until the process terminates and returns its final state.
// A non-zero exit is not an error.
func (p *Process) Wait() (*os.ProcessState, error) {
	if err := p.cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, err
		}
	}
	return p.cmd.ProcessState, nil
}

func (r *Runtime) command(ctx context.Context, inv Invocation) *exec.Cmd {
	cmd := exec.CommandContext(ctx, r.Executable, inv.Args...)
	cmd.Env = Overlay(os.Environ(), inv.Env)
	return cmd
}
