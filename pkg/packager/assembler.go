// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// sourceSeparator joins consecutive sources in a build.
const sourceSeparator = "\n\n"

type (
	// FileSelector picks the files of a build: every registered file or an
	// explicit list of references.
	FileSelector struct {
		all  bool
		refs []string
	}

	// ComponentSelector picks the files of a build by the components they provide.
	ComponentSelector struct {
		all  bool
		refs []string
	}

	// Assembler turns resolved file orders into build text.
	Assembler struct {
		reg      *Registry
		resolver *Resolver
	}
)

// AllFiles selects every registered file.
func AllFiles() FileSelector { return FileSelector{all: true} }

// Files selects the referenced files and their dependencies.
func Files(refs ...string) FileSelector { return FileSelector{refs: refs} }

// AllComponents selects every registered file.
func AllComponents() ComponentSelector { return ComponentSelector{all: true} }

// Components selects the providers of the referenced components and their dependencies.
func Components(refs ...string) ComponentSelector { return ComponentSelector{refs: refs} }

// IsEmpty reports whether the selector selects nothing.
func (s FileSelector) IsEmpty() bool { return !s.all && len(s.refs) == 0 }

// NewAssembler creates an Assembler over reg.
func NewAssembler(reg *Registry) *Assembler {
	return &Assembler{reg: reg, resolver: NewResolver(reg)}
}

// ResolveFiles returns the build order for sel.
func (a *Assembler) ResolveFiles(sel FileSelector) ([]FileID, error) {
	if sel.all {
		return a.resolver.AllFiles("")
	}
	return a.resolver.CompleteFiles(sel.refs)
}

// ResolveComponents returns the build order for sel.
func (a *Assembler) ResolveComponents(sel ComponentSelector) ([]FileID, error) {
	if sel.all {
		return a.resolver.AllFiles("")
	}
	return a.resolver.ComponentsToFiles(sel.refs)
}

// BuildFromFiles concatenates the sources of the resolved files, separated
// by a blank line. An empty selection builds to "".
func (a *Assembler) BuildFromFiles(sel FileSelector) (string, error) {
	if sel.IsEmpty() {
		return "", nil
	}
	order, err := a.ResolveFiles(sel)
	if err != nil {
		return "", err
	}
	return a.Concat(order), nil
}

// BuildFromComponents builds the files providing the selected components.
func (a *Assembler) BuildFromComponents(sel ComponentSelector) (string, error) {
	order, err := a.ResolveComponents(sel)
	if err != nil {
		return "", err
	}
	return a.Concat(order), nil
}

// Concat joins the sources of files in the given order.
func (a *Assembler) Concat(order []FileID) string {
	sources := make([]string, 0, len(order))
	for _, id := range order {
		if f, ok := a.reg.LookupFile(id.String()); ok {
			sources = append(sources, f.source)
		}
	}
	return strings.Join(sources, sourceSeparator)
}

// WriteFromFiles builds sel and writes the result to dest.
func (a *Assembler) WriteFromFiles(dest string, sel FileSelector) error {
	out, err := a.BuildFromFiles(sel)
	if err != nil {
		return err
	}
	return a.write(dest, out)
}

// WriteFromComponents builds sel and writes the result to dest.
func (a *Assembler) WriteFromComponents(dest string, sel ComponentSelector) error {
	out, err := a.BuildFromComponents(sel)
	if err != nil {
		return err
	}
	return a.write(dest, out)
}

func (a *Assembler) write(dest, content string) error {
	fsys := a.reg.Fs()
	if dir := filepath.Dir(dest); dir != "." {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := afero.WriteFile(fsys, dest, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}
