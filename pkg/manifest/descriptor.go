// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidDescriptor is returned when a source's front matter is not valid YAML.
	ErrInvalidDescriptor = errors.New("invalid file descriptor")

	leadingCommentPattern = regexp.MustCompile(`(?s)^\s*/\*\s*(.*?)\s*\*/`)
	frontMatterPattern    = regexp.MustCompile(`(?ms)^-{3}\s*$(.*?)^(?:-{3}|\.{3})\s*$`)
)

// Descriptor is the per-file metadata embedded in a source's leading comment.
// Every field is optional; the zero value means "nothing declared".
type Descriptor struct {
	// Name overrides the file key derived from the source filename.
	Name string `yaml:"name"`
	// Requires lists the components this file needs, possibly package-qualified.
	Requires StringList `yaml:"requires"`
	// Provides lists the components this file offers.
	Provides StringList `yaml:"provides"`
	// License overrides the package license for this file.
	License string `yaml:"license"`

	Author  StringList `yaml:"author"`
	Authors StringList `yaml:"authors"`
}

// AuthorList returns the file-level authors, preferring "authors" over "author".
func (d Descriptor) AuthorList() []string {
	return pickAuthors(d.Authors, d.Author)
}

// ParseDescriptor extracts the descriptor from the first block comment at the
// start of source.
func ParseDescriptor(source string) (Descriptor, error) {
	doc, ok := FrontMatter(source)
	if !ok {
		return Descriptor{}, nil
	}

	var d Descriptor
	if err := yaml.Unmarshal([]byte(doc), &d); err != nil {
		return Descriptor{}, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}
	return d, nil
}

// FrontMatter returns the raw YAML document of source's leading comment.
func FrontMatter(source string) (string, bool) {
	comment := leadingCommentPattern.FindStringSubmatch(source)
	if comment == nil {
		return "", false
	}

	doc := frontMatterPattern.FindStringSubmatch(comment[1])
	if doc == nil {
		return "", false
	}
	return doc[1], true
}
