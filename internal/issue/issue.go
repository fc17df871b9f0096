// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Id identifies a troubleshooting entry. The zero Id means "no entry".
type Id int

const (
	InvalidInputId Id = iota + 1
	RuntimeNotFoundId
	ScriptWriteFailedId
	DiscoveryFailedId
	PayloadParseFailedId
	SignalHandlerFailedId
	LaunchFailedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Markdown returns the entry text followed by its links.
func (i *Issue) Markdown() string {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return sb.String()
}

// Render renders the entry for a terminal with the given glamour style
// ("dark", "light", "notty" or a JSON style path).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

var (
	render = glamour.Render

	invalidInputIssue = &Issue{
		id: InvalidInputId,
		mdMsg: `
# Invalid launcher arguments

The launcher needs three values before it can do anything:

- ` + "`--julia`" + ` a full version number such as ` + "`1.10.4`" + `
- ` + "`--image`" + ` the name of a system image known to the package
- ` + "`--package`" + ` the package that builds the system images

Image and package names must start with a letter and contain only letters,
digits and underscores.

## Things you can try
~~~
$ sysimage-loader --julia 1.10.4 --image dev --package MyImages
~~~`,
		docLinks: []HttpLink{"https://docs.julialang.org/en/v1/manual/command-line-interface/"},
	}

	runtimeNotFoundIssue = &Issue{
		id: RuntimeNotFoundId,
		mdMsg: `
# Julia executable not found

The launcher runs the Julia version multiplexer to resolve the system image,
but the configured executable could not be started.

## Things you can try
- Install juliaup and make sure ` + "`julia`" + ` is in your PATH
- Point the launcher at another executable:
~~~cue
runtime: executable: "/opt/julia/bin/julia"
~~~
- Or set ` + "`SYSIMAGE_LOADER_RUNTIME_EXECUTABLE`" + ` for a single run`,
		docLinks: []HttpLink{"https://github.com/JuliaLang/juliaup"},
	}

	scriptWriteFailedIssue = &Issue{
		id: ScriptWriteFailedId,
		mdMsg: `
# Cannot write the discovery script

Discovery writes a one-line Julia script to a temporary directory before
running it.

## Things you can try
- Check that the temporary directory exists and is writable
- Select another directory:
~~~cue
discovery: script_dir: "/var/tmp"
~~~`,
		docLinks: []HttpLink{"https://pkg.go.dev/os#TempDir"},
	}

	discoveryFailedIssue = &Issue{
		id: DiscoveryFailedId,
		mdMsg: `
# System image discovery failed

The package could not describe the requested system image. The Julia error
printed above is what the discovery process wrote to its standard error.

## Common causes
- The package is not installed in the default environment of that Julia version
- The package does not define a ` + "`SystemImageLoader`" + ` module or a ` + "`config`" + ` function
- The image name is not known to the package
- The requested Julia version is not installed (` + "`juliaup add <version>`" + `)

## Things you can try
- Keep the generated script and run it by hand:
~~~cue
discovery: keep_script: true
~~~`,
		docLinks: []HttpLink{"https://julialang.github.io/PackageCompiler.jl/dev/sysimages.html"},
		extLinks: []HttpLink{"https://github.com/JuliaLang/juliaup"},
	}

	payloadParseFailedIssue = &Issue{
		id: PayloadParseFailedId,
		mdMsg: `
# Unexpected discovery output

Discovery succeeded but its standard output is not a TOML table with the
string keys ` + "`image`" + `, ` + "`depot`" + ` and ` + "`load_path`" + `.

## Things you can try
- Make sure nothing else prints to stdout while the package loads
- Compare the printed payload with the expected shape:
~~~toml
image = "/path/to/dev.so"
depot = "/path/to/depot"
load_path = "@:@stdlib"
~~~`,
		docLinks: []HttpLink{"https://toml.io/en/v1.0.0"},
	}

	signalHandlerFailedIssue = &Issue{
		id: SignalHandlerFailedId,
		mdMsg: `
# Cannot install the interrupt handler

The launcher ignores Ctrl-C while Julia runs so that the REPL can handle it.
Installing that handler failed, so Julia was not started.`,
		docLinks: []HttpLink{"https://pkg.go.dev/os/signal"},
	}

	launchFailedIssue = &Issue{
		id: LaunchFailedId,
		mdMsg: `
# Julia could not be launched

Discovery resolved the system image, but the interactive process could not be
started or waited for.

## Things you can try
- Check that the system image printed by ` + "`--print-config`" + ` exists
- Use ` + "`--dry-run`" + ` to print the exact command and environment`,
		docLinks: []HttpLink{"https://docs.julialang.org/en/v1/manual/environment-variables/"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Launcher configuration is invalid

The configuration file could not be read or does not match the schema.

## Example configuration
~~~cue
runtime: executable: "julia"
discovery: {
	keep_script: false
	timeout:     "2m"
}
environment: {
	depot_var:     "JULIA_DEPOT_PATH"
	load_path_var: "JULIA_LOAD_PATH"
}
ui: verbose: false
~~~`,
		docLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	issues = map[Id]*Issue{
		invalidInputIssue.Id():        invalidInputIssue,
		runtimeNotFoundIssue.Id():     runtimeNotFoundIssue,
		scriptWriteFailedIssue.Id():   scriptWriteFailedIssue,
		discoveryFailedIssue.Id():     discoveryFailedIssue,
		payloadParseFailedIssue.Id():  payloadParseFailedIssue,
		signalHandlerFailedIssue.Id(): signalHandlerFailedIssue,
		launchFailedIssue.Id():        launchFailedIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
	}
)

// Get returns the entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
