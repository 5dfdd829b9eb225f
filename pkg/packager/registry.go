// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

const (
	// ProviderFirstWins resolves a component to the first file declaring it
	// in manifest order. Later providers are ignored with a log warning.
	ProviderFirstWins ProviderPolicy = iota
	// ProviderStrict rejects a package in which two files provide the same component.
	ProviderStrict

	// DefaultBuildToken is the placeholder replaced by the build identifier.
	DefaultBuildToken = "%build%"
)

type (
	// ProviderPolicy decides how same-package provider collisions are handled.
	ProviderPolicy int

	// Registry indexes loaded packages by name and their files by key.
	// It is not safe for concurrent mutation.
	Registry struct {
		fs         afero.Fs
		logger     *log.Logger
		policy     ProviderPolicy
		buildID    BuildIdentifier
		buildToken string

		root     string
		packages []*Package
		byName   map[string]*Package
	}

	// Option configures a Registry.
	Option func(*Registry)
)

// String returns the policy name used in configuration.
func (p ProviderPolicy) String() string {
	switch p {
	case ProviderFirstWins:
		return "first-wins"
	case ProviderStrict:
		return "strict"
	default:
		return fmt.Sprintf("ProviderPolicy(%d)", int(p))
	}
}

// WithFs sets the filesystem manifests and sources are read from. The
// default GitBuildIdentifier still reads repository metadata from the OS
// filesystem; pair an in-memory Fs with WithBuildIdentifier to control stamping.
func WithFs(fsys afero.Fs) Option {
	return func(r *Registry) { r.fs = fsys }
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithProviderPolicy sets the duplicate-provider policy.
func WithProviderPolicy(policy ProviderPolicy) Option {
	return func(r *Registry) { r.policy = policy }
}

// WithBuildIdentifier sets the source of the build identifier stamped into
// sources. A nil identifier disables stamping.
func WithBuildIdentifier(id BuildIdentifier) Option {
	return func(r *Registry) { r.buildID = id }
}

// WithBuildToken sets the placeholder replaced by the build identifier.
func WithBuildToken(token string) Option {
	return func(r *Registry) { r.buildToken = token }
}

// New creates an empty Registry. By default it reads from the OS filesystem,
// stamps builds from Git metadata, and logs nothing below warn level. Git
// metadata always comes from the OS filesystem, whatever WithFs sets.
func New(opts ...Option) *Registry {
	r := &Registry{
		fs:         afero.NewOsFs(),
		buildID:    GitBuildIdentifier{},
		buildToken: DefaultBuildToken,
		byName:     make(map[string]*Package),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
	}
	return r
}

// Load creates a Registry and registers each package root in order.
// The first root becomes the root package.
func Load(roots []string, opts ...Option) (*Registry, error) {
	r := New(opts...)
	for _, root := range roots {
		if err := r.AddPackage(root); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Fs returns the filesystem the registry reads from.
func (r *Registry) Fs() afero.Fs { return r.fs }

// AddPackage loads the package at root. Registering a name that is already
// present is a no-op; remove it first to reload.
func (r *Registry) AddPackage(root string) error {
	l := &loader{
		fs:         r.fs,
		logger:     r.logger,
		policy:     r.policy,
		buildID:    r.buildID,
		buildToken: r.buildToken,
	}

	m, err := l.readManifest(root)
	if err != nil {
		return err
	}
	if _, exists := r.byName[m.Name]; exists {
		r.logger.Debug("package already registered", "package", m.Name, "root", root)
		return nil
	}

	pkg, err := l.load(m)
	if err != nil {
		return err
	}

	if r.root == "" {
		r.root = pkg.name
	}
	r.packages = append(r.packages, pkg)
	r.byName[pkg.name] = pkg
	r.logger.Debug("registered package", "package", pkg.name, "files", len(pkg.files))

	return nil
}

// RemovePackage drops a package and its files. Requirements other packages
// hold on it stay in place and surface through the Validator.
// It reports whether the package was registered.
func (r *Registry) RemovePackage(name string) bool {
	if _, ok := r.byName[name]; !ok {
		return false
	}
	delete(r.byName, name)
	r.packages = slices.DeleteFunc(r.packages, func(p *Package) bool { return p.name == name })
	return true
}

// Root returns the root package name: the first package ever registered.
func (r *Registry) Root() string { return r.root }

// Packages returns registered package names in registration order.
func (r *Registry) Packages() []string {
	names := make([]string, len(r.packages))
	for i, p := range r.packages {
		names[i] = p.name
	}
	return names
}

// Package returns the named package. An empty name selects the root package.
func (r *Registry) Package(name string) (*Package, bool) {
	if name == "" {
		name = r.root
	}
	p, ok := r.byName[name]
	return p, ok
}

// LookupFile resolves a file reference. Unqualified references resolve
// against the root package.
func (r *Registry) LookupFile(ref string) (*File, bool) {
	pkgName, key := ParseRef(r.root, ref)
	p, ok := r.byName[pkgName]
	if !ok {
		return nil, false
	}
	return p.File(key)
}

// LookupComponent returns the file providing a component. Unqualified
// references resolve against the root package. When several files provide
// the component, the first in manifest order wins.
func (r *Registry) LookupComponent(ref string) (*File, bool) {
	pkgName, component := ParseRef(r.root, ref)
	p, ok := r.byName[pkgName]
	if !ok {
		return nil, false
	}
	f := p.provider(component)
	return f, f != nil
}

// FileExists reports whether ref names a registered file.
func (r *Registry) FileExists(ref string) bool {
	_, ok := r.LookupFile(ref)
	return ok
}

// ComponentExists reports whether some file provides the referenced component.
func (r *Registry) ComponentExists(ref string) bool {
	_, ok := r.LookupComponent(ref)
	return ok
}

// RequireFiles fails with ErrFileNotFound on the first ref naming no file.
func (r *Registry) RequireFiles(refs ...string) error {
	for _, ref := range refs {
		if !r.FileExists(ref) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, QualifyRef(r.root, ref))
		}
	}
	return nil
}

// RequireComponents fails with ErrComponentNotFound on the first ref no file provides.
func (r *Registry) RequireComponents(refs ...string) error {
	for _, ref := range refs {
		if !r.ComponentExists(ref) {
			return fmt.Errorf("%w: %s", ErrComponentNotFound, QualifyRef(r.root, ref))
		}
	}
	return nil
}

// PackageLicense returns the license of the named package ("" selects root).
func (r *Registry) PackageLicense(name string) string {
	p, ok := r.Package(name)
	if !ok {
		return ""
	}
	return p.license
}

// PackageRoot returns the root directory of the named package ("" selects root).
func (r *Registry) PackageRoot(name string) string {
	p, ok := r.Package(name)
	if !ok {
		return ""
	}
	return p.root
}

// PackageAuthors returns the authors of the named package ("" selects root).
func (r *Registry) PackageAuthors(name string) []string {
	p, ok := r.Package(name)
	if !ok {
		return nil
	}
	return p.Authors()
}

// FileAuthors returns the authors of the referenced file.
func (r *Registry) FileAuthors(ref string) []string {
	f, ok := r.LookupFile(ref)
	if !ok {
		return nil
	}
	return f.Authors()
}

// FileLicense returns the license of the referenced file.
func (r *Registry) FileLicense(ref string) string {
	f, ok := r.LookupFile(ref)
	if !ok {
		return ""
	}
	return f.license
}

// files returns every registered file in package then declaration order.
func (r *Registry) files(ofPackage string) []*File {
	var out []*File
	for _, p := range r.packages {
		if ofPackage == "" || ofPackage == p.name {
			out = append(out, p.files...)
		}
	}
	return out
}
