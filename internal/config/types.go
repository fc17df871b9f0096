// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/invowk/sysimage-loader/internal/runtime"
)

const (
	// DefaultExecutable is the runtime started when runtime.executable is unset.
	DefaultExecutable ExecutablePath = runtime.DefaultExecutable
	// DefaultDepotVar names the variable that carries the resolved depot.
	DefaultDepotVar EnvVarName = runtime.DefaultDepotVar
	// DefaultLoadPathVar names the variable that carries the resolved load path.
	DefaultLoadPathVar EnvVarName = runtime.DefaultLoadPathVar
)

var (
	// ErrInvalidExecutablePath is returned when an ExecutablePath is empty or whitespace-only.
	ErrInvalidExecutablePath = errors.New("invalid executable path")
	// ErrInvalidEnvVarName is the sentinel wrapped by InvalidEnvVarNameError.
	ErrInvalidEnvVarName = errors.New("invalid environment variable name")
	// ErrInvalidDiscoveryConfig is the sentinel wrapped by InvalidDiscoveryConfigError.
	ErrInvalidDiscoveryConfig = errors.New("invalid discovery config")
	// ErrInvalidEnvironmentConfig is the sentinel wrapped by InvalidEnvironmentConfigError.
	ErrInvalidEnvironmentConfig = errors.New("invalid environment config")
	// ErrInvalidConfig is the sentinel wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")

	envVarNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

type (
	// ExecutablePath is a runtime executable name or path.
	ExecutablePath string

	// InvalidExecutablePathError is returned when an ExecutablePath is blank.
	InvalidExecutablePathError struct {
		Value ExecutablePath
	}

	// EnvVarName is the name of an environment variable exported to the child.
	EnvVarName string

	// InvalidEnvVarNameError is returned when an EnvVarName is not a portable
	// variable name.
	InvalidEnvVarNameError struct {
		Value EnvVarName
	}

	// InvalidDiscoveryConfigError collects DiscoveryConfig field errors.
	InvalidDiscoveryConfigError struct {
		FieldErrors []error
	}

	// InvalidEnvironmentConfigError collects EnvironmentConfig field errors.
	InvalidEnvironmentConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError collects every field error of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the launcher configuration.
	Config struct {
		// Runtime selects the executable to start
		Runtime RuntimeConfig `json:"runtime" mapstructure:"runtime"`
		// Discovery configures the discovery process
		Discovery DiscoveryConfig `json:"discovery" mapstructure:"discovery"`
		// Environment names the variables exported to the interactive runtime
		Environment EnvironmentConfig `json:"environment" mapstructure:"environment"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// RuntimeConfig selects the runtime executable.
	RuntimeConfig struct {
		// Executable is looked up in PATH when it has no path separator.
		Executable ExecutablePath `json:"executable" mapstructure:"executable"`
	}

	// DiscoveryConfig configures the discovery process.
	DiscoveryConfig struct {
		// ScriptDir is where the discovery script is written; empty selects the OS temp dir.
		ScriptDir string `json:"script_dir" mapstructure:"script_dir"`
		// KeepScript leaves the discovery script on disk after the run.
		KeepScript bool `json:"keep_script" mapstructure:"keep_script"`
		// Timeout bounds the discovery process; zero waits indefinitely.
		Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
	}

	// EnvironmentConfig names the variables that carry the resolved paths.
	EnvironmentConfig struct {
		DepotVar    EnvVarName `json:"depot_var" mapstructure:"depot_var"`
		LoadPathVar EnvVarName `json:"load_path_var" mapstructure:"load_path_var"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables debug logging and rendered troubleshooting on failure
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// String returns the string representation of the ExecutablePath.
func (p ExecutablePath) String() string { return string(p) }

// IsValid returns whether the ExecutablePath is non-blank.
func (p ExecutablePath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidExecutablePathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidExecutablePathError) Error() string {
	return fmt.Sprintf("invalid executable path %q: must not be empty", e.Value)
}

// Unwrap returns ErrInvalidExecutablePath for errors.Is() compatibility.
func (e *InvalidExecutablePathError) Unwrap() error { return ErrInvalidExecutablePath }

// String returns the string representation of the EnvVarName.
func (n EnvVarName) String() string { return string(n) }

// IsValid returns whether the EnvVarName is a portable variable name.
func (n EnvVarName) IsValid() (bool, []error) {
	if !envVarNamePattern.MatchString(string(n)) {
		return false, []error{&InvalidEnvVarNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidEnvVarNameError) Error() string {
	return fmt.Sprintf("invalid environment variable name %q: must match %s", e.Value, envVarNamePattern)
}

// Unwrap returns ErrInvalidEnvVarName for errors.Is() compatibility.
func (e *InvalidEnvVarNameError) Unwrap() error { return ErrInvalidEnvVarName }

// IsValid returns whether the DiscoveryConfig has valid fields.
func (c DiscoveryConfig) IsValid() (bool, []error) {
	if c.Timeout < 0 {
		return false, []error{&InvalidDiscoveryConfigError{
			FieldErrors: []error{fmt.Errorf("timeout %s must not be negative", c.Timeout)},
		}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidDiscoveryConfigError) Error() string {
	return fmt.Sprintf("invalid discovery config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidDiscoveryConfig for errors.Is() compatibility.
func (e *InvalidDiscoveryConfigError) Unwrap() error { return ErrInvalidDiscoveryConfig }

// IsValid returns whether both names are valid and distinct.
func (c EnvironmentConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.DepotVar.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.LoadPathVar.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) == 0 && c.DepotVar == c.LoadPathVar {
		errs = append(errs, fmt.Errorf("depot_var and load_path_var are both %q", c.DepotVar))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidEnvironmentConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidEnvironmentConfigError) Error() string {
	return fmt.Sprintf("invalid environment config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns the sentinel and every field error.
func (e *InvalidEnvironmentConfigError) Unwrap() []error {
	return append([]error{ErrInvalidEnvironmentConfig}, e.FieldErrors...)
}

// IsValid returns whether the Config has valid fields.
// UI has only bool fields and needs no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Runtime.Executable.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Discovery.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Environment.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns the sentinel and every field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			Executable: DefaultExecutable,
		},
		Discovery: DiscoveryConfig{
			ScriptDir:  "", // os.TempDir()
			KeepScript: false,
			Timeout:    0,
		},
		Environment: EnvironmentConfig{
			DepotVar:    DefaultDepotVar,
			LoadPathVar: DefaultLoadPathVar,
		},
		UI: UIConfig{
			Verbose: false,
		},
	}
}
