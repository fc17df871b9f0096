// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"strings"
	"testing"
)

// MustReadFile returns the contents of path, failing the test on error.
func MustReadFile(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// MustReadLines returns the newline-separated lines of path without the
// trailing empty element.
func MustReadLines(t testing.TB, path string) []string {
	t.Helper()
	content := strings.TrimSuffix(MustReadFile(t, path), "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

// MustNotExist fails the test if path exists.
func MustNotExist(t testing.TB, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Fatalf("expected %s not to exist", path)
	} else if !os.IsNotExist(err) {
		t.Fatalf("failed to stat %s: %v", path, err)
	}
}
