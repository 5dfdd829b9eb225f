// SPDX-License-Identifier: MPL-2.0

// Package packager orders the source files of one or more packages into a
// single dependency-correct build.
//
// Files do not depend on each other directly. Each file declares the
// components it provides and the components it requires; a requirement is
// satisfied by whichever file of the target package provides that component.
//
// # Registry
//
// [Registry] indexes packages loaded from their package.yml manifests.
// Component references are "package/component"; unqualified references in a
// file's requires are qualified with that file's own package at load time,
// while unqualified references passed to lookups resolve against the root
// package (the first one registered).
//
// # Resolution
//
// [Resolver] computes the depth-first closure of a file (its providers first,
// in declaration order, then the file itself) and merges closures of several
// files in request order with first-occurrence deduplication. Requirement
// cycles fail with a [CircularDependencyError].
//
// # Validation and Assembly
//
// [Validator] reports requirements nobody provides; such requirements are
// advisory and simply absent from builds. [Assembler] concatenates the
// sources of a resolved order, separated by a blank line.
package packager
