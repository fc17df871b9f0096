// SPDX-License-Identifier: MPL-2.0

// Package cmd implements the sysimage-loader command line.
//
// The single root command validates its flags, loads the launcher
// configuration, resolves the system image through the discovery process and
// replaces itself, in effect, with an interactive julia session whose exit
// code it returns.
package cmd
