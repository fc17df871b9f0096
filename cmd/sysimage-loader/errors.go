// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/invowk/sysimage-loader/internal/config"
	"github.com/invowk/sysimage-loader/internal/discovery"
	"github.com/invowk/sysimage-loader/internal/issue"
	"github.com/invowk/sysimage-loader/internal/launch"
	"github.com/invowk/sysimage-loader/internal/request"
)

// classifyError wraps a launch failure into an ActionableError that names the
// failed step and links the matching troubleshooting entry. cfg may be nil
// when the failure happened before configuration was loaded.
func classifyError(err error, req request.Request, cfg *config.Config) error {
	executable := config.DefaultExecutable.String()
	if cfg != nil {
		executable = cfg.Runtime.Executable.String()
	}
	image := fmt.Sprintf("%s/%s", req.Package(), req.Image())

	ec := issue.NewErrorContext().Wrap(err)

	switch {
	case errors.Is(err, request.ErrInvalidInput):
		ec.WithOperation("validate arguments").
			WithSuggestions(
				"Pass --julia as a full version such as 1.10.4",
				"Image and package names start with a letter and use only letters, digits and underscores",
			).
			WithIssue(issue.InvalidInputId)

	case errors.Is(err, discovery.ErrScriptWrite):
		ec.WithOperation("prepare discovery").
			WithSuggestion("Set discovery.script_dir to a writable directory").
			WithIssue(issue.ScriptWriteFailedId)

	case errors.Is(err, discovery.ErrDiscoverySpawn):
		ec.WithOperation("start discovery").
			WithResource(executable).
			WithIssue(issue.RuntimeNotFoundId)
		if errors.Is(err, exec.ErrNotFound) {
			ec.WithSuggestion("Install juliaup or set runtime.executable to the julia binary")
		}

	case errors.Is(err, discovery.ErrDiscoveryTimeout):
		ec.WithOperation("discover system image").
			WithResource(image).
			WithSuggestion("Raise discovery.timeout or set it to 0s to wait indefinitely").
			WithIssue(issue.DiscoveryFailedId)

	case errors.Is(err, discovery.ErrDiscoveryFailed):
		ec.WithOperation("discover system image").
			WithResource(image).
			WithSuggestions(
				fmt.Sprintf("Check that %s is installed for julia %s", req.Package(), req.Version()),
				"Run with --verbose for troubleshooting steps",
			).
			WithIssue(issue.DiscoveryFailedId)

	case errors.Is(err, discovery.ErrConfigParse):
		ec.WithOperation("read discovery output").
			WithResource(image).
			WithIssue(issue.PayloadParseFailedId)

	case errors.Is(err, launch.ErrSignalHandler):
		ec.WithOperation("launch julia").
			WithIssue(issue.SignalHandlerFailedId)

	case errors.Is(err, launch.ErrChildSpawn), errors.Is(err, launch.ErrChildWait):
		ec.WithOperation("launch julia").
			WithResource(executable).
			WithSuggestion("Use --dry-run to print the command").
			WithIssue(issue.LaunchFailedId)

	default:
		return err
	}

	return ec.BuildError()
}

// printError writes a failure to w. Exit codes passed through from the
// interactive runtime are not failures of the launcher and print nothing.
func printError(w io.Writer, err error, verbose bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	fmt.Fprintln(w, ErrorStyle.Render("Error:")+" "+formatErrorForDisplay(err, verbose))

	var ae *issue.ActionableError
	if !verbose || !errors.As(err, &ae) || ae.Issue == 0 {
		return
	}
	if entry := issue.Get(ae.Issue); entry != nil {
		if rendered, renderErr := entry.Render("dark"); renderErr == nil {
			fmt.Fprint(w, rendered)
		}
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
