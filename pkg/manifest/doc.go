// SPDX-License-Identifier: MPL-2.0

// Package manifest decodes the two metadata documents a package carries.
//
// # Package Manifest
//
// Every package root holds a package.yml naming the package and listing its
// sources in build-declaration order:
//
//	name: core
//	sources:
//	  - src/core.js
//	  - src/array.js
//	license: MIT
//	authors: [alice, bob]
//
// The decoded document is checked against an embedded CUE schema before it is
// turned into a [Manifest].
//
// # File Descriptors
//
// Each source may open with a block comment carrying a YAML document between
// "---" and "---" (or "...") lines:
//
//	/*
//	---
//	name: Array
//	requires: [Core]
//	provides: [Array, Array.each]
//	...
//	*/
//
// [ParseDescriptor] extracts that document into a [Descriptor]. Sources
// without a leading comment or without a delimited document yield the zero
// Descriptor.
package manifest
