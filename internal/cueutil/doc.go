// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates documents against embedded CUE schemas.
//
// Two inputs are supported. ParseAndDecode compiles CUE source (the config
// file), unifies it with a schema definition and decodes the result.
// ValidateValue encodes an already decoded Go value (a YAML manifest) and
// checks it against a definition. Errors carry the offending field path:
//
//	package.yml: sources[1]: invalid value "" (out of bound !="")
package cueutil
