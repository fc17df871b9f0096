// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"strings"
	"testing"
)

func TestParsePayload(t *testing.T) {
	t.Parallel()

	got, err := ParsePayload([]byte("image = \"a\"\ndepot = \"b\"\nload_path = \"c\"\n"))
	if err != nil {
		t.Fatalf("ParsePayload() unexpected error: %v", err)
	}
	want := Resolved{Image: "a", Depot: "b", LoadPath: "c"}
	if *got != want {
		t.Errorf("ParsePayload() = %+v, want %+v", *got, want)
	}
}

func TestParsePayloadAcceptsExtrasAndEmptyValues(t *testing.T) {
	t.Parallel()

	data := "# emitted by SystemImageLoader\nimage = '/x/dev.so'\ndepot = ''\nload_path = \"@:@stdlib\"\nversion = 3\n"
	got, err := ParsePayload([]byte(data))
	if err != nil {
		t.Fatalf("ParsePayload() unexpected error: %v", err)
	}
	want := Resolved{Image: "/x/dev.so", Depot: "", LoadPath: "@:@stdlib"}
	if *got != want {
		t.Errorf("ParsePayload() = %+v, want %+v", *got, want)
	}
}

func TestParsePayloadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		payload  string
		contains string
	}{
		{
			name:     "missing depot",
			payload:  "image = \"a\"\nload_path = \"c\"\n",
			contains: "depot",
		},
		{
			name:     "missing everything",
			payload:  "",
			contains: "image, depot, load_path",
		},
		{
			name:     "mistyped image",
			payload:  "image = 3\ndepot = \"b\"\nload_path = \"c\"\n",
			contains: "",
		},
		{
			name:     "load_path as array",
			payload:  "image = \"a\"\ndepot = \"b\"\nload_path = [\"c\"]\n",
			contains: "",
		},
		{
			name:     "not toml",
			payload:  "ERROR: LoadError: ArgumentError: Package MyImages not found\n",
			contains: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePayload([]byte(tt.payload))
			if err == nil {
				t.Fatalf("ParsePayload() = %+v, want error", got)
			}
			if got != nil {
				t.Errorf("ParsePayload() returned a partial result %+v", got)
			}
			if !errors.Is(err, ErrConfigParse) {
				t.Errorf("error does not wrap ErrConfigParse: %v", err)
			}

			var parseErr *ConfigParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("error is not *ConfigParseError: %T", err)
			}
			if parseErr.Payload != tt.payload {
				t.Errorf("Payload = %q, want %q", parseErr.Payload, tt.payload)
			}
			if !strings.Contains(err.Error(), tt.payload) {
				t.Errorf("message does not include the raw payload: %q", err.Error())
			}
			if tt.contains != "" && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("message %q does not contain %q", err.Error(), tt.contains)
			}
		})
	}
}

func TestResolvedTOMLRoundTrip(t *testing.T) {
	t.Parallel()

	in := &Resolved{Image: "/x/dev.so", Depot: "/depot", LoadPath: "@:@stdlib"}
	data, err := in.TOML()
	if err != nil {
		t.Fatalf("TOML() unexpected error: %v", err)
	}

	out, err := ParsePayload(data)
	if err != nil {
		t.Fatalf("ParsePayload(TOML()) unexpected error: %v\n%s", err, data)
	}
	if *out != *in {
		t.Errorf("round trip = %+v, want %+v", *out, *in)
	}
}
