// SPDX-License-Identifier: MPL-2.0

// Package config loads the launcher configuration using Viper with CUE as the
// file format.
//
// The file is read from $XDG_CONFIG_HOME/sysimage-loader/config.cue (or
// ~/Library/Application Support/sysimage-loader/config.cue on macOS and
// %APPDATA%\sysimage-loader\config.cue on Windows), falling back to
// ./config.cue. Every key can be overridden with a SYSIMAGE_LOADER_<SECTION>_<KEY>
// environment variable. Files are validated against the embedded schema in
// config_schema.cue.
package config
