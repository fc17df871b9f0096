// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Default values emitted by StubJulia during discovery.
const (
	StubImage    = "/opt/images/dev.so"
	StubDepot    = "/opt/depot"
	StubLoadPath = "@:@stdlib"
)

// StubOptions configures a stub runtime created by StubJulia.
type StubOptions struct {
	// Payload is printed on stdout when invoked as a discovery process.
	// Defaults to a payload with StubImage, StubDepot and StubLoadPath.
	Payload string
	// DiscoveryStderr is printed on stderr by the discovery process.
	DiscoveryStderr string
	// DiscoveryExit is the discovery process exit code.
	DiscoveryExit int
	// ChildExit is the interactive process exit code.
	ChildExit int
}

// Stub is a fake runtime executable that records how it was invoked.
type Stub struct {
	// Path is the stub executable.
	Path string
	// Dir holds the recordings.
	Dir string
}

// SkipIfNoPOSIXShell skips tests that rely on /bin/sh stub executables.
func SkipIfNoPOSIXShell(t testing.TB) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub runtimes are POSIX shell scripts")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
}

// DefaultPayload is the discovery payload emitted when StubOptions.Payload is empty.
func DefaultPayload() string {
	return fmt.Sprintf("image = %q\ndepot = %q\nload_path = %q\n", StubImage, StubDepot, StubLoadPath)
}

// StubJulia writes a shell script that behaves like the runtime for both phases.
// Invoked with a "+<version>" first argument it acts as the discovery process:
// it records its arguments and the script it was given, then prints the payload.
// Otherwise it acts as the interactive process: it records its arguments and
// the JULIA_DEPOT_PATH/JULIA_LOAD_PATH it received, then exits with ChildExit.
func StubJulia(t testing.TB, opts StubOptions) *Stub {
	t.Helper()
	SkipIfNoPOSIXShell(t)

	dir := t.TempDir()
	payload := opts.Payload
	if payload == "" {
		payload = DefaultPayload()
	}

	var sb strings.Builder
	sb.WriteString("#!/bin/sh\n")
	sb.WriteString("case \"$1\" in\n")
	sb.WriteString("+*)\n")
	fmt.Fprintf(&sb, "  printf '%%s\\n' \"$@\" > %s\n", shellQuote(filepath.Join(dir, "discovery.args")))
	fmt.Fprintf(&sb, "  for last in \"$@\"; do :; done; cat \"$last\" > %s\n", shellQuote(filepath.Join(dir, "discovery.script")))
	fmt.Fprintf(&sb, "  echo run >> %s\n", shellQuote(filepath.Join(dir, "discovery.runs")))
	fmt.Fprintf(&sb, "  printf '%%s' %s\n", shellQuote(payload))
	if opts.DiscoveryStderr != "" {
		fmt.Fprintf(&sb, "  printf '%%s' %s >&2\n", shellQuote(opts.DiscoveryStderr))
	}
	fmt.Fprintf(&sb, "  exit %d\n", opts.DiscoveryExit)
	sb.WriteString("  ;;\n")
	sb.WriteString("esac\n")
	fmt.Fprintf(&sb, "printf '%%s\\n' \"$@\" > %s\n", shellQuote(filepath.Join(dir, "child.args")))
	fmt.Fprintf(&sb, "printf '%%s\\n%%s\\n' \"$JULIA_DEPOT_PATH\" \"$JULIA_LOAD_PATH\" > %s\n", shellQuote(filepath.Join(dir, "child.env")))
	fmt.Fprintf(&sb, "exit %d\n", opts.ChildExit)

	path := filepath.Join(dir, "julia")
	if err := os.WriteFile(path, []byte(sb.String()), 0o755); err != nil {
		t.Fatalf("failed to write stub runtime: %v", err)
	}
	return &Stub{Path: path, Dir: dir}
}

// DiscoveryArgs returns the arguments of the last discovery invocation.
func (s *Stub) DiscoveryArgs(t testing.TB) []string {
	t.Helper()
	return MustReadLines(t, filepath.Join(s.Dir, "discovery.args"))
}

// DiscoveryScript returns the script text the discovery process was given.
func (s *Stub) DiscoveryScript(t testing.TB) string {
	t.Helper()
	return MustReadFile(t, filepath.Join(s.Dir, "discovery.script"))
}

// DiscoveryRuns returns how many times the discovery process ran.
func (s *Stub) DiscoveryRuns(t testing.TB) int {
	t.Helper()
	path := filepath.Join(s.Dir, "discovery.runs")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return 0
	}
	return len(MustReadLines(t, path))
}

// ChildStarted reports whether the interactive process ever ran.
func (s *Stub) ChildStarted() bool {
	_, err := os.Stat(filepath.Join(s.Dir, "child.args"))
	return err == nil
}

// ChildArgs returns the arguments of the interactive invocation.
func (s *Stub) ChildArgs(t testing.TB) []string {
	t.Helper()
	return MustReadLines(t, filepath.Join(s.Dir, "child.args"))
}

// ChildEnv returns the depot and load path the interactive process received.
func (s *Stub) ChildEnv(t testing.TB) (depot, loadPath string) {
	t.Helper()
	lines := MustReadLines(t, filepath.Join(s.Dir, "child.env"))
	if len(lines) != 2 {
		t.Fatalf("child.env has %d lines, want 2: %q", len(lines), lines)
	}
	return lines[0], lines[1]
}

// shellQuote single-quotes s for /bin/sh. Payloads contain newlines, which
// syntax.Quote refuses to quote for the POSIX dialect.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// WriteExecutable writes an executable file named name with content into a
// fresh temporary directory and returns its path.
func WriteExecutable(t testing.TB, name, content string) string {
	t.Helper()
	SkipIfNoPOSIXShell(t)

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
