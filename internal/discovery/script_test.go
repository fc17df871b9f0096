// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScriptString(t *testing.T) {
	t.Parallel()

	got := NewScript("MyImages", "Dev").String()
	want := "import MyImages; MyImages.SystemImageLoader.toml(MyImages.config(:Dev))"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestScriptIsDeterministic(t *testing.T) {
	t.Parallel()

	a := NewScript("Pkg_1", "Image").String()
	b := NewScript("Pkg_1", "Image").String()
	if a != b {
		t.Errorf("script text differs between calls: %q vs %q", a, b)
	}
}

func TestScriptWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := NewScript("MyImages", "Dev")

	path, err := s.Write(dir)
	if err != nil {
		t.Fatalf("Write() unexpected error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("script written to %s, want directory %s", path, dir)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "system-image-loader-") || !strings.HasSuffix(base, ".jl") {
		t.Errorf("unexpected script name %q", base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read script: %v", err)
	}
	if string(data) != s.String() {
		t.Errorf("script content = %q, want %q", data, s.String())
	}
}

func TestScriptWriteUniqueNames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := NewScript("MyImages", "Dev")

	first, err := s.Write(dir)
	if err != nil {
		t.Fatalf("Write() unexpected error: %v", err)
	}
	second, err := s.Write(dir)
	if err != nil {
		t.Fatalf("Write() unexpected error: %v", err)
	}
	if first == second {
		t.Errorf("two writes returned the same path %s", first)
	}
}

func TestScriptWriteDefaultsToTempDir(t *testing.T) {
	t.Parallel()

	path, err := NewScript("MyImages", "Dev").Write("")
	if err != nil {
		t.Fatalf("Write(\"\") unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = os.Remove(path) })

	if filepath.Dir(path) != filepath.Clean(os.TempDir()) {
		t.Errorf("script written to %s, want os.TempDir()", path)
	}
}

func TestScriptWriteFailureReportsPath(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "does", "not", "exist")
	_, err := NewScript("MyImages", "Dev").Write(dir)
	if err == nil {
		t.Fatal("Write() = nil error, want failure")
	}
	if !errors.Is(err, ErrScriptWrite) {
		t.Errorf("error does not wrap ErrScriptWrite: %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error does not wrap the OS error: %v", err)
	}

	var writeErr *ScriptWriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("error is not *ScriptWriteError: %T", err)
	}
	if !strings.HasPrefix(writeErr.Path, dir) {
		t.Errorf("Path = %q, want it under %q", writeErr.Path, dir)
	}
	if !strings.Contains(err.Error(), dir) {
		t.Errorf("message %q does not name the failing path", err.Error())
	}
}
