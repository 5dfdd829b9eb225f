// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"packager-cli/internal/cueutil"
)

// FileName is the package descriptor looked up in every package root.
const FileName = "package.yml"

var (
	//go:embed manifest_schema.cue
	manifestSchema string

	// ErrManifestNotFound is returned when a package root has no package.yml.
	ErrManifestNotFound = errors.New("package.yml not found")
	// ErrInvalidManifest is returned when package.yml cannot be decoded or
	// does not satisfy the manifest schema.
	ErrInvalidManifest = errors.New("unable to parse manifest")
)

// Manifest is the decoded package.yml of one package.
type Manifest struct {
	// Name identifies the package. Required.
	Name string `yaml:"name"`
	// Sources lists source paths relative to the package root, in declaration order.
	Sources []string `yaml:"sources"`
	// License is the package-wide license, inherited by files that declare none.
	License string `yaml:"license"`

	Author  StringList `yaml:"author"`
	Authors StringList `yaml:"authors"`

	// Root is the directory the manifest was loaded from (not in YAML).
	Root string `yaml:"-"`
}

// AuthorList returns the package authors, preferring "authors" over "author".
func (m *Manifest) AuthorList() []string {
	return pickAuthors(m.Authors, m.Author)
}

// Load reads and decodes root/package.yml from fsys.
func Load(fsys afero.Fs, root string) (*Manifest, error) {
	path := filepath.Join(root, FileName)

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrManifestNotFound, root)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	m, err := Decode(data, path)
	if err != nil {
		return nil, err
	}
	m.Root = root

	return m, nil
}

// Decode parses manifest YAML and validates it against the manifest schema.
// The path is only used in error messages.
func Decode(data []byte, path string) (*Manifest, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrInvalidManifest, path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w %s: document is empty", ErrInvalidManifest, path)
	}

	if err := validateSchema(raw, path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrInvalidManifest, path, err)
	}

	return &m, nil
}

// validateSchema checks the raw YAML document against #Manifest.
func validateSchema(raw map[string]any, path string) error {
	return cueutil.ValidateValue(manifestSchema, "#Manifest", raw, cueutil.WithFilename(path))
}
