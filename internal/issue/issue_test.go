// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func allIds() []Id {
	return []Id{
		InvalidInputId,
		RuntimeNotFoundId,
		ScriptWriteFailedId,
		DiscoveryFailedId,
		PayloadParseFailedId,
		SignalHandlerFailedId,
		LaunchFailedId,
		ConfigLoadFailedId,
	}
}

func TestId_Constants(t *testing.T) {
	t.Parallel()

	seen := make(map[Id]bool)
	for _, id := range allIds() {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if InvalidInputId != 1 {
		t.Errorf("InvalidInputId = %d, want 1; the zero Id must mean no entry", InvalidInputId)
	}
}

func TestCatalogIsComplete(t *testing.T) {
	t.Parallel()

	for _, id := range allIds() {
		i := Get(id)
		if i == nil {
			t.Errorf("Get(%d) returned nil", id)
			continue
		}
		if i.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, i.Id())
		}
		if strings.TrimSpace(string(i.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty message", id)
		}
		if len(i.DocLinks()) == 0 {
			t.Errorf("issue %d has no doc links", id)
		}
	}

	if Get(0) != nil {
		t.Error("Get(0) should return nil")
	}
}

func TestIssue_DocLinksAreCloned(t *testing.T) {
	t.Parallel()

	i := Get(DiscoveryFailedId)
	links := i.DocLinks()
	links[0] = "https://example.invalid"

	if i.DocLinks()[0] == "https://example.invalid" {
		t.Error("DocLinks() exposed the internal slice")
	}
	if len(i.ExtLinks()) == 0 {
		t.Error("expected discovery failure to carry external links")
	}
}

func TestIssue_Markdown(t *testing.T) {
	t.Parallel()

	withLinks := &Issue{
		id:       DiscoveryFailedId,
		mdMsg:    "# Title",
		docLinks: []HttpLink{"https://docs.example.com"},
		extLinks: []HttpLink{"https://ext.example.com"},
	}
	md := withLinks.Markdown()
	for _, want := range []string{"# Title", "## See also", "- <https://docs.example.com>", "- <https://ext.example.com>"} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown() missing %q:\n%s", want, md)
		}
	}

	noLinks := &Issue{id: DiscoveryFailedId, mdMsg: "# Title"}
	if strings.Contains(noLinks.Markdown(), "See also") {
		t.Error("Markdown() without links should not have a See also section")
	}
}

//nolint:paralleltest // swaps the package-level render function
func TestIssue_RenderUsesStyle(t *testing.T) {
	originalRender := render
	t.Cleanup(func() { render = originalRender })

	var gotStyle, gotIn string
	render = func(in, stylePath string) (string, error) {
		gotIn, gotStyle = in, stylePath
		return "rendered", nil
	}

	out, err := Get(LaunchFailedId).Render("dark")
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if out != "rendered" || gotStyle != "dark" {
		t.Errorf("Render() = %q with style %q", out, gotStyle)
	}
	if !strings.Contains(gotIn, "See also") {
		t.Error("Render() should pass the links section to the renderer")
	}
}

//nolint:paralleltest // render must not be swapped by another test meanwhile
func TestIssue_RenderWithGlamour(t *testing.T) {
	out, err := Get(DiscoveryFailedId).Render("notty")
	if err != nil {
		t.Fatalf("Render(notty) unexpected error: %v", err)
	}
	if !strings.Contains(out, "discovery failed") {
		t.Errorf("rendered output does not contain the title:\n%s", out)
	}
}
