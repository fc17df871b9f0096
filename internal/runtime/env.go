// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"maps"
	goruntime "runtime"
	"slices"
	"strings"
)

// Overlay returns a copy of environ in which every variable named in overrides
// is replaced by the override value. Variables not mentioned are kept in their
// original order; overrides are appended in sorted key order.
func Overlay(environ []string, overrides map[string]string) []string {
	result := make([]string, 0, len(environ)+len(overrides))
	for _, entry := range environ {
		idx := findEnvSeparator(entry)
		if idx != -1 && isOverridden(entry[:idx], overrides) {
			continue
		}
		result = append(result, entry)
	}
	return append(result, EnvToSlice(overrides)...)
}

// EnvToSlice converts an environment map to KEY=VALUE entries sorted by key.
func EnvToSlice(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for _, k := range slices.Sorted(maps.Keys(env)) {
		result = append(result, k+"="+env[k])
	}
	return result
}

// findEnvSeparator returns the index of the '=' separating name and value.
// A leading '=' belongs to the name (Windows per-drive variables such as "=C:").
func findEnvSeparator(entry string) int {
	if len(entry) < 2 {
		return -1
	}
	if idx := strings.IndexByte(entry[1:], '='); idx != -1 {
		return idx + 1
	}
	return -1
}

func isOverridden(name string, overrides map[string]string) bool {
	if goruntime.GOOS == "windows" {
		for k := range overrides {
			if strings.EqualFold(k, name) {
				return true
			}
		}
		return false
	}
	_, ok := overrides[name]
	return ok
}
