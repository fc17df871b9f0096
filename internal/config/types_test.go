// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
	"time"

	"github.com/invowk/sysimage-loader/internal/runtime"
)

func TestDefaultConfigMatchesRuntimeDefaults(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if got := cfg.Runtime.Executable.String(); got != runtime.DefaultExecutable {
		t.Errorf("Runtime.Executable = %q, want %q", got, runtime.DefaultExecutable)
	}
	if got := cfg.Environment.DepotVar.String(); got != runtime.DefaultDepotVar {
		t.Errorf("Environment.DepotVar = %q, want %q", got, runtime.DefaultDepotVar)
	}
	if got := cfg.Environment.LoadPathVar.String(); got != runtime.DefaultLoadPathVar {
		t.Errorf("Environment.LoadPathVar = %q, want %q", got, runtime.DefaultLoadPathVar)
	}
}

func TestEnvVarName_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  EnvVarName
		valid bool
	}{
		{"JULIA_DEPOT_PATH", true},
		{"_PRIVATE", true},
		{"depot2", true},
		{"", false},
		{"2DEPOT", false},
		{"MY-DEPOT", false},
		{"A B", false},
	}
	for _, tt := range tests {
		valid, errs := tt.name.IsValid()
		if valid != tt.valid {
			t.Errorf("EnvVarName(%q).IsValid() = %v, want %v", tt.name, valid, tt.valid)
		}
		if !valid && !errors.Is(errs[0], ErrInvalidEnvVarName) {
			t.Errorf("EnvVarName(%q) error does not wrap ErrInvalidEnvVarName", tt.name)
		}
	}
}

func TestExecutablePath_IsValid(t *testing.T) {
	t.Parallel()

	for _, p := range []ExecutablePath{"julia", "/opt/julia/bin/julia"} {
		if valid, errs := p.IsValid(); !valid {
			t.Errorf("ExecutablePath(%q) invalid: %v", p, errs)
		}
	}
	for _, p := range []ExecutablePath{"", "   ", "\t"} {
		valid, errs := p.IsValid()
		if valid {
			t.Errorf("ExecutablePath(%q) should be invalid", p)
			continue
		}
		if !errors.Is(errs[0], ErrInvalidExecutablePath) {
			t.Errorf("ExecutablePath(%q) error does not wrap ErrInvalidExecutablePath", p)
		}
	}
}

func TestConfig_IsValidCollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Runtime.Executable = " "
	cfg.Discovery.Timeout = -time.Second
	cfg.Environment.LoadPathVar = "BAD-NAME"

	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("expected the config to be invalid")
	}
	if len(errs) != 1 {
		t.Fatalf("expected a single InvalidConfigError, got %d errors", len(errs))
	}

	var cfgErr *InvalidConfigError
	if !errors.As(errs[0], &cfgErr) {
		t.Fatalf("expected *InvalidConfigError, got %T", errs[0])
	}
	if len(cfgErr.FieldErrors) != 3 {
		t.Errorf("FieldErrors = %v, want 3 entries", cfgErr.FieldErrors)
	}
	for _, sentinel := range []error{ErrInvalidConfig, ErrInvalidExecutablePath, ErrInvalidDiscoveryConfig, ErrInvalidEnvVarName} {
		if !errors.Is(errs[0], sentinel) {
			t.Errorf("error does not match %v", sentinel)
		}
	}
}

func TestEnvironmentConfig_RejectsSameName(t *testing.T) {
	t.Parallel()

	env := EnvironmentConfig{DepotVar: "X", LoadPathVar: "X"}
	if valid, _ := env.IsValid(); valid {
		t.Error("identical variable names should be invalid")
	}
}
