// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"bytes"
	"errors"
	"os"
	"slices"
	"testing"

	"github.com/invowk/sysimage-loader/internal/discovery"
	"github.com/invowk/sysimage-loader/internal/request"
	"github.com/invowk/sysimage-loader/internal/runtime"
	"github.com/invowk/sysimage-loader/internal/testutil"
)

// Orchestrator tests spawn stub runtimes and are not parallel.

type recordingPolicy struct {
	events   *[]string
	err      error
	released bool
}

func (p *recordingPolicy) Absorb() (func(), error) {
	*p.events = append(*p.events, "absorb")
	if p.err != nil {
		return nil, p.err
	}
	return func() { p.released = true }, nil
}

func mustRequest(t *testing.T, args ...string) request.Request {
	t.Helper()
	req, err := request.New("1.9.3", "Dev", "MyImages", args)
	if err != nil {
		t.Fatalf("request.New() unexpected error: %v", err)
	}
	return req
}

var resolved = &discovery.Resolved{Image: "/opt/images/dev.so", Depot: "/opt/depot", LoadPath: "@:@stdlib"}

func TestInvocation(t *testing.T) {
	o := &Orchestrator{Runtime: runtime.New("julia")}
	inv := o.Invocation(mustRequest(t, "--project=@.", "-e", "1+1"), resolved)

	wantArgs := []string{"--project=@.", "-e", "1+1", "--sysimage=/opt/images/dev.so"}
	if !slices.Equal(inv.Args, wantArgs) {
		t.Errorf("Args = %v, want %v", inv.Args, wantArgs)
	}
	if inv.Env[runtime.DefaultDepotVar] != "/opt/depot" || inv.Env[runtime.DefaultLoadPathVar] != "@:@stdlib" {
		t.Errorf("Env = %v", inv.Env)
	}
	if len(inv.Env) != 2 {
		t.Errorf("Env has %d entries, want 2", len(inv.Env))
	}
	if inv.Stdin != os.Stdin || inv.Stdout != os.Stdout || inv.Stderr != os.Stderr {
		t.Error("nil streams should default to the launcher's own")
	}
}

func TestInvocationCustomVarNames(t *testing.T) {
	o := &Orchestrator{Runtime: runtime.New("julia"), DepotVar: "MY_DEPOT", LoadPathVar: "MY_LOAD"}
	inv := o.Invocation(mustRequest(t), resolved)

	if inv.Env["MY_DEPOT"] != "/opt/depot" || inv.Env["MY_LOAD"] != "@:@stdlib" {
		t.Errorf("Env = %v", inv.Env)
	}
	if _, ok := inv.Env[runtime.DefaultDepotVar]; ok {
		t.Error("default depot variable should not be set when overridden")
	}
}

func TestLaunchPropagatesExitCode(t *testing.T) {
	stub := testutil.StubJulia(t, testutil.StubOptions{ChildExit: 42})

	var events []string
	policy := &recordingPolicy{events: &events}
	var pid int
	o := &Orchestrator{
		Runtime:              runtime.New(stub.Path),
		Interrupts:           policy,
		Stdout:               &bytes.Buffer{},
		Stderr:               &bytes.Buffer{},
		OnInterruptsAbsorbed: func() { events = append(events, "absorbed") },
		OnChildStarted: func(p int) {
			pid = p
			events = append(events, "started")
		},
	}

	code, err := o.Launch(mustRequest(t, "-q"), resolved)
	if err != nil {
		t.Fatalf("Launch() unexpected error: %v", err)
	}
	if code != 42 {
		t.Errorf("Launch() = %d, want 42", code)
	}

	if want := []string{"absorb", "absorbed", "started"}; !slices.Equal(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
	if pid <= 0 {
		t.Errorf("OnChildStarted pid = %d", pid)
	}
	if !policy.released {
		t.Error("interrupt policy was not released")
	}

	if got, want := stub.ChildArgs(t), []string{"-q", "--sysimage=/opt/images/dev.so"}; !slices.Equal(got, want) {
		t.Errorf("child args = %v, want %v", got, want)
	}
	depot, loadPath := stub.ChildEnv(t)
	if depot != resolved.Depot || loadPath != resolved.LoadPath {
		t.Errorf("child env = %q, %q; want %q, %q", depot, loadPath, resolved.Depot, resolved.LoadPath)
	}
}

func TestLaunchDoesNotMutateParentEnv(t *testing.T) {
	stub := testutil.StubJulia(t, testutil.StubOptions{})
	t.Setenv(runtime.DefaultDepotVar, "/parent/depot")

	o := &Orchestrator{Runtime: runtime.New(stub.Path), Interrupts: &recordingPolicy{events: new([]string)}}
	if _, err := o.Launch(mustRequest(t), resolved); err != nil {
		t.Fatalf("Launch() unexpected error: %v", err)
	}

	if got := os.Getenv(runtime.DefaultDepotVar); got != "/parent/depot" {
		t.Errorf("parent %s = %q, want unchanged", runtime.DefaultDepotVar, got)
	}
	if depot, _ := stub.ChildEnv(t); depot != resolved.Depot {
		t.Errorf("child depot = %q, want %q", depot, resolved.Depot)
	}
}

func TestLaunchPolicyFailurePreventsSpawn(t *testing.T) {
	stub := testutil.StubJulia(t, testutil.StubOptions{})
	policy := &recordingPolicy{events: new([]string), err: errors.New("no signals here")}

	o := &Orchestrator{Runtime: runtime.New(stub.Path), Interrupts: policy}
	code, err := o.Launch(mustRequest(t), resolved)
	if !errors.Is(err, ErrSignalHandler) {
		t.Fatalf("error does not wrap ErrSignalHandler: %v", err)
	}
	if code.IsSuccess() {
		t.Error("failure must not report a successful exit code")
	}
	if stub.ChildStarted() {
		t.Error("child was spawned although the interrupt policy failed")
	}
}

func TestLaunchSpawnError(t *testing.T) {
	o := &Orchestrator{
		Runtime:    runtime.New("sysimage-loader-definitely-missing-binary"),
		Interrupts: &recordingPolicy{events: new([]string)},
	}
	_, err := o.Launch(mustRequest(t), resolved)
	if !errors.Is(err, ErrChildSpawn) {
		t.Fatalf("error does not wrap ErrChildSpawn: %v", err)
	}
	if !errors.Is(err, runtime.ErrStart) {
		t.Errorf("error does not wrap runtime.ErrStart: %v", err)
	}
}

func TestLaunchSignaledChildMapsToOne(t *testing.T) {
	killer := testutil.WriteExecutable(t, "julia", "#!/bin/sh\nkill -KILL $$\n")

	o := &Orchestrator{Runtime: runtime.New(killer), Interrupts: &recordingPolicy{events: new([]string)}}
	code, err := o.Launch(mustRequest(t), resolved)
	if err != nil {
		t.Fatalf("Launch() unexpected error: %v", err)
	}
	if code != runtime.SignalExitCode {
		t.Errorf("Launch() = %d, want %d", code, runtime.SignalExitCode)
	}
}
