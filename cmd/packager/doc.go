// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for packager.
//
// Every command builds a packager.Registry from the configured package roots
// and delegates to the Resolver, Validator or Assembler. Commands receive an
// App carrying the config provider, filesystem and output streams so tests
// can run them against an in-memory filesystem.
package cmd
