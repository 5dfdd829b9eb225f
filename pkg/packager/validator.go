// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"fmt"
	"io"

	"packager-cli/internal/dag"
)

type (
	// Warning records a requirement no registered file satisfies.
	Warning struct {
		// Component is the normalized "package/component" reference.
		Component string
		// File is the file declaring the requirement.
		File FileID
	}

	// Collision records two files of one package providing the same component.
	// Only First is used for resolution.
	Collision struct {
		Component string
		First     FileID
		Second    FileID
	}

	// Validator checks a Registry for unmet requirements, provider collisions
	// and requirement cycles. It never changes the registry.
	Validator struct {
		reg *Registry
		out io.Writer
	}
)

// String returns the diagnostic line for w, without trailing newline.
func (w Warning) String() string {
	return fmt.Sprintf("WARNING: The component %s, required by %s, has not been provided.", w.Component, w.File)
}

// NewValidator creates a Validator writing diagnostics to out. A nil out
// discards them.
func NewValidator(reg *Registry, out io.Writer) *Validator {
	if out == nil {
		out = io.Discard
	}
	return &Validator{reg: reg, out: out}
}

// Validate walks every file of every package and reports each required
// component that no file provides, one diagnostic line per miss.
func (v *Validator) Validate() []Warning {
	var warnings []Warning
	for _, f := range v.reg.files("") {
		for _, component := range f.requires {
			if v.reg.ComponentExists(component) {
				continue
			}
			w := Warning{Component: component, File: f.id}
			warnings = append(warnings, w)
			fmt.Fprintln(v.out, w.String())
		}
	}
	return warnings
}

// DuplicateProviders reports every component provided by more than one file
// of the same package, in declaration order.
func (v *Validator) DuplicateProviders() []Collision {
	var collisions []Collision
	for _, p := range v.reg.packages {
		first := make(map[string]FileID)
		for _, f := range p.files {
			for _, c := range f.provides {
				if id, seen := first[c]; seen {
					if id == f.id {
						continue
					}
					collisions = append(collisions, Collision{Component: p.name + "/" + c, First: id, Second: f.id})
					continue
				}
				first[c] = f.id
			}
		}
	}
	return collisions
}

// Cycles checks the whole registry for requirement cycles. It returns a
// *dag.CycleError naming the files of one cycle, or nil.
func (v *Validator) Cycles() error {
	_, err := v.Order()
	return err
}

// Order returns a topological order of every registered file in which each
// provider precedes the files requiring it. Files at the same depth keep
// registration order.
func (v *Validator) Order() ([]FileID, error) {
	g := dag.New()
	byName := make(map[string]FileID)

	for _, f := range v.reg.files("") {
		name := f.id.String()
		byName[name] = f.id
		g.AddNode(name)
	}
	for _, f := range v.reg.files("") {
		for _, component := range f.requires {
			if p, ok := v.reg.LookupComponent(component); ok {
				g.AddDependency(f.id.String(), p.id.String())
			}
		}
	}

	order, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}
	out := make([]FileID, len(order))
	for i, name := range order {
		out[i] = byName[name]
	}
	return out, nil
}
