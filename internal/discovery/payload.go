// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type (
	// Resolved is the configuration reported by the discovery process.
	Resolved struct {
		// Image is the system image passed to the interactive runtime with --sysimage.
		Image string `toml:"image"`
		// Depot is exported to the interactive runtime as its depot path.
		Depot string `toml:"depot"`
		// LoadPath is exported to the interactive runtime as its load path.
		LoadPath string `toml:"load_path"`
	}

	// payload mirrors Resolved with pointers so missing keys can be told apart
	// from empty strings.
	payload struct {
		Image    *string `toml:"image"`
		Depot    *string `toml:"depot"`
		LoadPath *string `toml:"load_path"`
	}
)

// ParsePayload decodes the discovery stdout. All three keys are required and
// must be strings; unknown keys are ignored. There is no partial result: on
// any error the returned *ConfigParseError carries the raw payload.
func ParsePayload(data []byte) (*Resolved, error) {
	var p payload
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, &ConfigParseError{Payload: string(data), Err: err}
	}

	var missing []string
	if p.Image == nil {
		missing = append(missing, "image")
	}
	if p.Depot == nil {
		missing = append(missing, "depot")
	}
	if p.LoadPath == nil {
		missing = append(missing, "load_path")
	}
	if len(missing) > 0 {
		return nil, &ConfigParseError{
			Payload: string(data),
			Err:     fmt.Errorf("missing required key(s): %s", strings.Join(missing, ", ")),
		}
	}

	return &Resolved{
		Image:    *p.Image,
		Depot:    *p.Depot,
		LoadPath: *p.LoadPath,
	}, nil
}

// TOML encodes the configuration in the same format the discovery process emits.
func (r *Resolved) TOML() ([]byte, error) {
	return toml.Marshal(r)
}
