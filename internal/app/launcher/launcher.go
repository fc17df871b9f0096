// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/invowk/sysimage-loader/internal/discovery"
	"github.com/invowk/sysimage-loader/internal/launch"
	"github.com/invowk/sysimage-loader/internal/request"
	"github.com/invowk/sysimage-loader/internal/runtime"
)

// Launcher runs discovery and the interactive launch for one request.
type Launcher struct {
	Discovery    *discovery.Runner
	Orchestrator *launch.Orchestrator
	Logger       *log.Logger
	// OnStage, when set, is called on every state transition.
	OnStage func(Stage)

	stage Stage
}

// Run performs a complete launch and returns the interactive runtime's exit
// code. A non-nil error means the run failed before the child's exit code was
// known; the caller should exit non-zero.
func (l *Launcher) Run(ctx context.Context, req request.Request) (runtime.ExitCode, error) {
	resolved, err := l.Discover(ctx, req)
	if err != nil {
		return runtime.SignalExitCode, err
	}

	orch := *l.Orchestrator
	orch.OnInterruptsAbsorbed = func() { l.enter(StageSignalHandlerInstalled) }
	orch.OnChildStarted = func(pid int) {
		l.logger().Debug("interactive runtime started", "pid", pid)
		l.enter(StageChildRunning)
	}

	code, err := orch.Launch(req, resolved)
	if err != nil {
		return code, err
	}

	l.enter(StageDone)
	return code, nil
}

// Discover runs the discovery half of a launch and returns the resolved
// configuration. It ends in StageConfigParsed on success and in
// StageDiscoveryFailed otherwise.
func (l *Launcher) Discover(ctx context.Context, req request.Request) (*discovery.Resolved, error) {
	logger := l.logger()
	l.enter(StageStart)

	if ok, errs := req.IsValid(); !ok {
		return nil, errors.Join(errs...)
	}
	l.enter(StageValidated)

	scriptPath, err := discovery.NewScript(req.Package(), req.Image()).Write(l.Discovery.ScriptDir)
	if err != nil {
		return nil, err
	}
	if l.Discovery.KeepScript {
		logger.Info("keeping discovery script", "path", scriptPath)
	} else {
		defer removeScript(logger, scriptPath)
	}
	l.enter(StageScriptWritten)

	stdout, err := l.Discovery.Run(ctx, req.Version(), scriptPath)
	if err != nil {
		if !errors.Is(err, discovery.ErrDiscoverySpawn) {
			l.enter(StageDiscoveryRan)
		}
		l.enter(StageDiscoveryFailed)
		return nil, err
	}
	l.enter(StageDiscoveryRan)

	resolved, err := discovery.ParsePayload(stdout)
	if err != nil {
		l.enter(StageDiscoveryFailed)
		return nil, err
	}
	logger.Debug("resolved system image",
		"image", resolved.Image,
		"depot", resolved.Depot,
		"load_path", resolved.LoadPath)
	l.enter(StageConfigParsed)

	return resolved, nil
}

// enter records a transition. Only StageStart may follow a terminal stage.
func (l *Launcher) enter(s Stage) {
	if s != StageStart && l.stage.IsTerminal() {
		panic(fmt.Sprintf("launcher: transition from terminal stage %s to %s", l.stage, s))
	}
	l.stage = s
	l.logger().Debug("stage", "stage", s)
	if l.OnStage != nil {
		l.OnStage(s)
	}
}

func (l *Launcher) logger() *log.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return log.New(io.Discard)
}

// removeScript deletes a discovery script. Leaking it is harmless, so a
// failure is only logged.
func removeScript(logger *log.Logger, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Debug("failed to remove discovery script", "path", path, "err", err)
	}
}
