// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"packager-cli/pkg/manifest"
)

// loader turns one package root into a Package.
type loader struct {
	fs         afero.Fs
	logger     *log.Logger
	policy     ProviderPolicy
	buildID    BuildIdentifier
	buildToken string
}

func (l *loader) readManifest(root string) (*manifest.Manifest, error) {
	return manifest.Load(l.fs, root)
}

// load reads every source listed in m and builds the package records.
func (l *loader) load(m *manifest.Manifest) (*Package, error) {
	pkg := &Package{
		name:    m.Name,
		root:    m.Root,
		license: m.License,
		authors: m.AuthorList(),
		byKey:   make(map[string]*File, len(m.Sources)),
	}

	stamp, err := l.stamp(m.Root)
	if err != nil {
		return nil, fmt.Errorf("package %s: %w", m.Name, err)
	}

	providers := make(map[string]FileID)
	for _, rel := range m.Sources {
		f, err := l.loadFile(pkg, filepath.Join(m.Root, rel), stamp)
		if err != nil {
			return nil, err
		}

		if existing, dup := pkg.byKey[f.id.Name]; dup {
			return nil, fmt.Errorf("%w: %s (%s and %s)", ErrDuplicateFile, f.id, existing.path, f.path)
		}

		for _, c := range f.provides {
			first, taken := providers[c]
			if !taken {
				providers[c] = f.id
				continue
			}
			if first == f.id {
				// Listed twice by the same file.
				continue
			}
			if l.policy == ProviderStrict {
				return nil, &DuplicateProviderError{Component: m.Name + "/" + c, First: first, Second: f.id}
			}
			l.logger.Warn("component provided more than once; keeping the first provider",
				"component", m.Name+"/"+c, "kept", first.String(), "ignored", f.id.String())
		}

		pkg.files = append(pkg.files, f)
		pkg.byKey[f.id.Name] = f
		l.logger.Debug("registered file", "file", f.id.String(), "provides", f.provides, "requires", f.requires)
	}

	return pkg, nil
}

func (l *loader) loadFile(pkg *Package, path string, stamp func(string) string) (*File, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("package %s: reading source: %w", pkg.name, err)
	}
	source := stamp(string(data))

	d, err := manifest.ParseDescriptor(source)
	if err != nil {
		return nil, fmt.Errorf("package %s: %s: %w", pkg.name, path, err)
	}

	key := d.Name
	if key == "" {
		base := filepath.Base(path)
		key = strings.TrimSuffix(base, filepath.Ext(base))
	}

	requires := make([]string, len(d.Requires))
	for i, ref := range d.Requires {
		requires[i] = QualifyRef(pkg.name, ref)
	}

	license := d.License
	if license == "" {
		license = pkg.license
	}
	authors := d.AuthorList()
	if len(authors) == 0 {
		authors = pkg.authors
	}

	return &File{
		id:       FileID{Package: pkg.name, Name: key},
		path:     path,
		source:   source,
		provides: []string(d.Provides),
		requires: requires,
		license:  license,
		authors:  authors,
	}, nil
}

// stamp returns the text substitution applied to every source of the package
// rooted at root.
func (l *loader) stamp(root string) (func(string) string, error) {
	identity := func(s string) string { return s }
	if l.buildID == nil || l.buildToken == "" {
		return identity, nil
	}

	id, err := l.buildID.BuildID(root)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return identity, nil
	}

	return func(s string) string { return strings.ReplaceAll(s, l.buildToken, id) }, nil
}
