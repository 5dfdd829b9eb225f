// SPDX-License-Identifier: MPL-2.0

package packager

import "slices"

type (
	// Package is a registered package and its files in manifest order.
	Package struct {
		name    string
		root    string
		license string
		authors []string
		files   []*File
		byKey   map[string]*File
	}

	// File is one source of a package together with its declared metadata.
	File struct {
		id       FileID
		path     string
		source   string
		provides []string
		requires []string
		license  string
		authors  []string
	}
)

// Name returns the package name.
func (p *Package) Name() string { return p.name }

// Root returns the directory the package was loaded from.
func (p *Package) Root() string { return p.root }

// License returns the package-level license, or "" when none is declared.
func (p *Package) License() string { return p.license }

// Authors returns the package-level authors.
func (p *Package) Authors() []string { return slices.Clone(p.authors) }

// Files returns the package's files in manifest declaration order.
func (p *Package) Files() []*File { return slices.Clone(p.files) }

// File returns the file registered under key.
func (p *Package) File(key string) (*File, bool) {
	f, ok := p.byKey[key]
	return f, ok
}

// provider returns the first file in declaration order providing component.
func (p *Package) provider(component string) *File {
	for _, f := range p.files {
		if slices.Contains(f.provides, component) {
			return f
		}
	}
	return nil
}

// ID returns the file's package-qualified identity.
func (f *File) ID() FileID { return f.id }

// Path returns the filesystem path the source was read from.
func (f *File) Path() string { return f.path }

// Source returns the file text after build stamping.
func (f *File) Source() string { return f.source }

// Provides returns the components this file offers.
func (f *File) Provides() []string { return slices.Clone(f.provides) }

// Requires returns the required components, each in "package/component" form.
func (f *File) Requires() []string { return slices.Clone(f.requires) }

// License returns the file license, falling back to the package license.
func (f *File) License() string { return f.license }

// Authors returns the file authors, falling back to the package authors.
func (f *File) Authors() []string { return slices.Clone(f.authors) }
