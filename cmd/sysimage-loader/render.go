// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/invowk/sysimage-loader/internal/discovery"
	"github.com/invowk/sysimage-loader/internal/launch"
	"github.com/invowk/sysimage-loader/internal/request"
)

// renderDryRun prints the interactive command as a single shell line, with
// the environment overrides as leading assignments, so it can be pasted into
// bash to reproduce the launch.
func renderDryRun(w io.Writer, orch *launch.Orchestrator, req request.Request, resolved *discovery.Resolved) error {
	inv := orch.Invocation(req, resolved)

	words := make([]string, 0, len(inv.Env)+len(inv.Args)+1)
	for _, name := range slices.Sorted(maps.Keys(inv.Env)) {
		value, err := shellQuote(inv.Env[name])
		if err != nil {
			return err
		}
		words = append(words, name+"="+value)
	}
	for _, arg := range orch.Runtime.Command(inv) {
		quoted, err := shellQuote(arg)
		if err != nil {
			return err
		}
		words = append(words, quoted)
	}

	_, err := fmt.Fprintln(w, strings.Join(words, " "))
	return err
}

// shellQuote quotes s for bash. Arguments that cannot be represented, such
// as invalid UTF-8, are reported rather than mangled.
func shellQuote(s string) (string, error) {
	quoted, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return "", fmt.Errorf("cannot quote %q for the shell: %w", s, err)
	}
	return quoted, nil
}
