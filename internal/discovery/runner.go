// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/invowk/sysimage-loader/internal/request"
	"github.com/invowk/sysimage-loader/internal/runtime"
)

// fastStartupArgs keep the discovery process as cheap as possible.
var fastStartupArgs = []string{"--startup-file=no", "--compile=min", "--color=no"}

// Runner executes the discovery script with the runtime.
type Runner struct {
	Runtime *runtime.Runtime
	// ScriptDir is where discovery scripts are written; empty means os.TempDir().
	ScriptDir string
	// KeepScript leaves the script on disk after discovery, for debugging.
	KeepScript bool
	// Timeout bounds the discovery process. Zero waits indefinitely: a hung
	// package hangs the launcher.
	Timeout time.Duration
	Logger  *log.Logger
}

// Args returns the runtime arguments for running scriptPath at version.
func (r *Runner) Args(version request.RuntimeVersion, scriptPath string) []string {
	args := make([]string, 0, len(fastStartupArgs)+2)
	args = append(args, version.Channel())
	args = append(args, fastStartupArgs...)
	return append(args, scriptPath)
}

// Run executes the discovery script at scriptPath and blocks until the process
// ends. On a zero exit it returns the captured stdout; otherwise the error is a
// *FailureError with the captured stderr, or wraps ErrDiscoverySpawn when the
// process could not be started.
func (r *Runner) Run(ctx context.Context, version request.RuntimeVersion, scriptPath string) ([]byte, error) {
	logger := r.logger()

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	inv := runtime.Invocation{Args: r.Args(version, scriptPath)}
	logger.Debug("running discovery", "command", r.Runtime.Command(inv))

	start := time.Now()
	res, err := r.Runtime.Capture(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiscoverySpawn, err)
	}
	logger.Debug("discovery finished", "exit", res.ExitCode, "elapsed", time.Since(start))

	if errors.Is(ctx.Err(), context.DeadlineExceeded) && !res.ExitCode.IsSuccess() {
		return nil, fmt.Errorf("%w after %s:\n%s", ErrDiscoveryTimeout, r.Timeout, res.Stderr)
	}
	if !res.ExitCode.IsSuccess() || res.Signaled {
		return nil, &FailureError{
			ExitCode: int(res.ExitCode),
			Signaled: res.Signaled,
			Stderr:   string(res.Stderr),
		}
	}
	if len(res.Stderr) > 0 {
		logger.Debug("discovery stderr", "stderr", string(res.Stderr))
	}

	return res.Stdout, nil
}

func (r *Runner) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.New(io.Discard)
}
