// SPDX-License-Identifier: MPL-2.0

// Command sysimage-loader starts an interactive julia session with a system
// image provided by a julia package.
package main

import cmd "github.com/invowk/sysimage-loader/cmd/sysimage-loader"

func main() {
	cmd.Execute()
}
