// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/invowk/sysimage-loader/internal/discovery"
	"github.com/invowk/sysimage-loader/internal/request"
	"github.com/invowk/sysimage-loader/internal/runtime"
)

var (
	// ErrChildSpawn is returned when the interactive runtime could not be started.
	ErrChildSpawn = errors.New("failed to start main julia process")
	// ErrChildWait is returned when the child's termination status could not be collected.
	ErrChildWait = errors.New("failed to wait for main julia process to finish")
)

// Orchestrator launches the interactive runtime.
type Orchestrator struct {
	Runtime *runtime.Runtime
	// DepotVar and LoadPathVar name the exported variables; empty selects the defaults.
	DepotVar    string
	LoadPathVar string
	// Interrupts is installed right before the child is spawned; nil selects AbsorbInterrupts.
	Interrupts InterruptPolicy

	// Stdin, Stdout and Stderr are handed to the child; nil selects the launcher's own.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Logger *log.Logger

	// OnInterruptsAbsorbed and OnChildStarted, when set, observe launch progress.
	OnInterruptsAbsorbed func()
	OnChildStarted       func(pid int)
}

// Invocation returns the interactive invocation for req and resolved: the
// passthrough arguments first, then --sysimage, with the depot and load path
// overriding the inherited environment for the child only.
func (o *Orchestrator) Invocation(req request.Request, resolved *discovery.Resolved) runtime.Invocation {
	args := append(req.PassthroughArgs(), "--sysimage="+resolved.Image)
	return runtime.Invocation{
		Args: args,
		Env: map[string]string{
			o.depotVar():    resolved.Depot,
			o.loadPathVar(): resolved.LoadPath,
		},
		Stdin:  readerOr(o.Stdin, os.Stdin),
		Stdout: writerOr(o.Stdout, os.Stdout),
		Stderr: writerOr(o.Stderr, os.Stderr),
	}
}

// Launch installs the interrupt policy, spawns the interactive runtime and
// blocks until it terminates. The returned code is the child's exit code, or
// runtime.SignalExitCode when the child was killed by a signal.
func (o *Orchestrator) Launch(req request.Request, resolved *discovery.Resolved) (runtime.ExitCode, error) {
	logger := o.logger()

	policy := o.Interrupts
	if policy == nil {
		policy = AbsorbInterrupts()
	}
	release, err := policy.Absorb()
	if err != nil {
		return runtime.SignalExitCode, fmt.Errorf("%w: %w", ErrSignalHandler, err)
	}
	// The launcher exits right after Launch returns; releasing only matters
	// for callers that keep running.
	defer release()
	if o.OnInterruptsAbsorbed != nil {
		o.OnInterruptsAbsorbed()
	}

	inv := o.Invocation(req, resolved)
	logger.Debug("starting interactive runtime",
		"command", o.Runtime.Command(inv),
		o.depotVar(), resolved.Depot,
		o.loadPathVar(), resolved.LoadPath)

	proc, err := o.Runtime.Start(inv)
	if err != nil {
		return runtime.SignalExitCode, fmt.Errorf("%w: %w", ErrChildSpawn, err)
	}
	if o.OnChildStarted != nil {
		o.OnChildStarted(proc.Pid())
	}

	state, err := proc.Wait()
	if err != nil {
		return runtime.SignalExitCode, fmt.Errorf("%w: %w", ErrChildWait, err)
	}

	code, signaled := runtime.ExitCodeFromState(state)
	if signaled {
		logger.Warn("interactive runtime did not exit normally", "state", state.String(), "exit", code)
	} else {
		logger.Debug("interactive runtime exited", "exit", code)
	}
	return code, nil
}

func (o *Orchestrator) depotVar() string {
	if o.DepotVar != "" {
		return o.DepotVar
	}
	return runtime.DefaultDepotVar
}

func (o *Orchestrator) loadPathVar() string {
	if o.LoadPathVar != "" {
		return o.LoadPathVar
	}
	return runtime.DefaultLoadPathVar
}

func (o *Orchestrator) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

func readerOr(r, fallback io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return fallback
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
