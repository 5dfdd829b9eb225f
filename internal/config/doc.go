// SPDX-License-Identifier: MPL-2.0

// Package config handles packager configuration using Viper with CUE as the file format.
//
// Configuration is loaded from the file given with --config, otherwise from
// $XDG_CONFIG_HOME/packager/config.cue (~/.config/packager/config.cue when
// unset), otherwise from ./config.cue. Without any file, defaults apply.
// Values may be overridden through PACKAGER_* environment variables
// (PACKAGER_STRICT_PROVIDERS, PACKAGER_UI_VERBOSE, ...).
//
// The file is validated against an embedded CUE schema (config_schema.cue)
// before it is merged into Viper.
package config
