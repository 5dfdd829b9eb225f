// SPDX-License-Identifier: MPL-2.0

package packager

import "strings"

// FileID identifies a file by its package and file key.
type FileID struct {
	Package string
	Name    string
}

// String returns the "package/name" form.
func (id FileID) String() string {
	return id.Package + "/" + id.Name
}

// ParseRef splits a possibly-qualified reference into package and local name.
// A bare name, or one with an empty package segment ("/name"), belongs to
// defaultPackage. Only the first slash separates the package.
func ParseRef(defaultPackage, ref string) (pkg, name string) {
	pkg, name, found := strings.Cut(ref, "/")
	if !found {
		return defaultPackage, ref
	}
	if pkg == "" {
		pkg = defaultPackage
	}
	return pkg, name
}

// QualifyRef returns ref in "package/name" form using defaultPackage when
// ref carries no package of its own.
func QualifyRef(defaultPackage, ref string) string {
	pkg, name := ParseRef(defaultPackage, ref)
	return pkg + "/" + name
}
