// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// StringList is a YAML field that accepts either a single string or a list
// of strings. An empty scalar decodes to an empty list.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" || node.Value == "" {
			*l = nil
			return nil
		}
		*l = StringList{node.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		out := make(StringList, 0, len(items))
		for _, item := range items {
			if item != "" {
				out = append(out, item)
			}
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", node.Line)
	}
}

// pickAuthors applies the authors-over-author precedence shared by manifests
// and descriptors.
func pickAuthors(authors, author StringList) []string {
	if len(authors) > 0 {
		return []string(authors)
	}
	if len(author) > 0 {
		return []string(author)
	}
	return nil
}
