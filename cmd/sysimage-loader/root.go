// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/invowk/sysimage-loader/internal/config"
	"github.com/invowk/sysimage-loader/internal/issue"
	"github.com/invowk/sysimage-loader/internal/request"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootOptions holds the flag values of one invocation.
type rootOptions struct {
	julia       string
	image       string
	pkg         string
	configPath  string
	verbose     bool
	printConfig bool
	dryRun      bool
}

func newRootCommand(app *App) (*cobra.Command, *rootOptions) {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   config.AppName + " --julia <version> --image <name> --package <name> [flags] [--] [julia args...]",
		Short: "Start julia with a package-provided system image",
		Long: TitleStyle.Render(config.AppName) + SubtitleStyle.Render(" - start julia with a package-provided system image") + `

The package named by --package is asked, through a short-lived julia process
running the requested version, where the system image named by --image lives
together with its depot and load path. An interactive julia is then started
with that image. Ctrl-C is left to julia, and its exit code is returned.

` + SubtitleStyle.Render("Examples:") + `
  ` + CmdStyle.Render(config.AppName+" --julia 1.10.4 --image dev --package MyImages") + `
  ` + CmdStyle.Render(config.AppName+" --julia 1.10.4 --image dev --package MyImages -- --project=@. script.jl") + `
  ` + CmdStyle.Render(config.AppName+" --julia 1.10.4 --image dev --package MyImages --print-config"),
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd.Context(), opts, args)
		},
	}

	flags := cmd.Flags()
	// Arguments after the first positional belong to julia.
	flags.SetInterspersed(false)
	flags.StringVar(&opts.julia, "julia", "", "julia version to resolve the image with, e.g. 1.10.4")
	flags.StringVar(&opts.image, "image", "", "name of the system image to load")
	flags.StringVar(&opts.pkg, "package", "", "package that provides the system images")
	flags.StringVar(&opts.configPath, "config", "", "config file (default is $HOME/.config/"+config.AppName+"/config.cue)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging and detailed errors")
	flags.BoolVar(&opts.printConfig, "print-config", false, "print the resolved configuration as TOML and exit")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "print the julia command that would be run and exit")
	for _, name := range []string{"julia", "image", "package"} {
		_ = cmd.MarkFlagRequired(name) // the flags are defined above
	}
	cmd.MarkFlagsMutuallyExclusive("print-config", "dry-run")

	return cmd, opts
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the command line and exits with its code. It is called by main.main().
func Execute() {
	os.Exit(Main())
}

// Main runs the command line with os.Args and returns the process exit code.
func Main() int {
	return Run(context.Background(), NewApp(Dependencies{}), os.Args[1:])
}

// Run executes the root command with args and returns the process exit code:
// the interactive runtime's own code, or 1 when the launch itself failed.
//
// Interrupts are not bound to ctx on purpose: Ctrl-C belongs to julia.
func Run(ctx context.Context, app *App, args []string) int {
	cmd, opts := newRootCommand(app)
	cmd.SetArgs(args)
	cmd.SetIn(app.stdin)
	cmd.SetOut(app.stdout)
	cmd.SetErr(app.stderr)

	err := fang.Execute(
		ctx,
		cmd,
		fang.WithVersion(getVersionString()),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			printError(w, err, opts.verbose)
		}),
	)
	return exitCodeFor(err)
}

// run is the root command body.
func (a *App) run(ctx context.Context, opts *rootOptions, args []string) error {
	req, err := request.New(opts.julia, opts.image, opts.pkg, args)
	if err != nil {
		return classifyError(err, request.Request{}, nil)
	}

	loaded, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: opts.configPath})
	if err != nil {
		return err
	}
	cfg := loaded.Config
	if cfg.UI.Verbose {
		opts.verbose = true
	}

	logger := a.newLogger(opts.verbose)
	if loaded.Path != "" {
		logger.Debug("loaded configuration", "path", loaded.Path)
	}
	l := a.newLauncher(cfg, logger)

	switch {
	case opts.printConfig:
		resolved, err := l.Discover(ctx, req)
		if err != nil {
			return classifyError(err, req, cfg)
		}
		out, err := resolved.TOML()
		if err == nil {
			_, err = a.stdout.Write(out)
		}
		if err != nil {
			return issue.WrapWithOperation(err, "print configuration")
		}
		return nil

	case opts.dryRun:
		resolved, err := l.Discover(ctx, req)
		if err != nil {
			return classifyError(err, req, cfg)
		}
		if err := renderDryRun(a.stdout, l.Orchestrator, req, resolved); err != nil {
			return issue.WrapWithOperation(err, "print launch command")
		}
		return nil
	}

	code, err := l.Run(ctx, req)
	if err != nil {
		return classifyError(err, req, cfg)
	}
	if !code.IsSuccess() {
		return &ExitError{Code: code}
	}
	return nil
}
