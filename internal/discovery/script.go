// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/invowk/sysimage-loader/internal/request"
)

// scriptPattern is the os.CreateTemp pattern for discovery scripts.
const scriptPattern = "system-image-loader-*.jl"

// Script is the Julia source executed by the discovery process.
type Script struct {
	pkg   request.Identifier
	image request.Identifier
}

// NewScript builds the discovery script for image as provided by pkg.
// Both names must already be validated identifiers; they are interpolated as-is.
func NewScript(pkg, image request.Identifier) Script {
	return Script{pkg: pkg, image: image}
}

// String returns the script text.
func (s Script) String() string {
	return fmt.Sprintf("import %[1]s; %[1]s.SystemImageLoader.toml(%[1]s.config(:%[2]s))", s.pkg, s.image)
}

// Write stores the script in a new, uniquely named file in dir (os.TempDir()
// when empty) and returns its path. The caller owns the file.
func (s Script) Write(dir string) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	f, err := os.CreateTemp(dir, scriptPattern)
	if err != nil {
		return "", &ScriptWriteError{Path: filepath.Join(dir, scriptPattern), Err: err}
	}
	path := f.Name()

	if _, err := f.WriteString(s.String()); err != nil {
		_ = f.Close() // the write error is the one worth reporting
		return "", &ScriptWriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &ScriptWriteError{Path: path, Err: err}
	}

	return path, nil
}
