// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/invowk/sysimage-loader/internal/app/launcher"
	"github.com/invowk/sysimage-loader/internal/config"
	"github.com/invowk/sysimage-loader/internal/discovery"
	"github.com/invowk/sysimage-loader/internal/launch"
	"github.com/invowk/sysimage-loader/internal/runtime"
)

type (
	// App is the composition root of the CLI: the root command reads its
	// configuration through App and builds the launcher from it.
	App struct {
		Config     config.Provider
		Interrupts launch.InterruptPolicy
		stdin      io.Reader
		stdout     io.Writer
		stderr     io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		// Interrupts is the policy installed while the interactive runtime runs.
		Interrupts launch.InterruptPolicy
		Stdin      io.Reader
		Stdout     io.Writer
		Stderr     io.Writer
	}
)

// NewApp creates the CLI composition root.
func NewApp(deps Dependencies) *App {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Interrupts == nil {
		deps.Interrupts = launch.AbsorbInterrupts()
	}
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}

	return &App{
		Config:     deps.Config,
		Interrupts: deps.Interrupts,
		stdin:      deps.Stdin,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
	}
}

// newLogger creates the stderr logger. Verbose mode enables debug records.
func (a *App) newLogger(verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}

// newLauncher wires discovery and the interactive launch from cfg.
func (a *App) newLauncher(cfg *config.Config, logger *log.Logger) *launcher.Launcher {
	rt := runtime.New(cfg.Runtime.Executable.String())

	return &launcher.Launcher{
		Discovery: &discovery.Runner{
			Runtime:    rt,
			ScriptDir:  cfg.Discovery.ScriptDir,
			KeepScript: cfg.Discovery.KeepScript,
			Timeout:    cfg.Discovery.Timeout,
			Logger:     logger,
		},
		Orchestrator: &launch.Orchestrator{
			Runtime:     rt,
			DepotVar:    cfg.Environment.DepotVar.String(),
			LoadPathVar: cfg.Environment.LoadPathVar.String(),
			Interrupts:  a.Interrupts,
			Stdin:       a.stdin,
			Stdout:      a.stdout,
			Stderr:      a.stderr,
			Logger:      logger,
		},
		Logger: logger,
	}
}
