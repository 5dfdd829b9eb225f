// SPDX-License-Identifier: MPL-2.0

package packager

import "slices"

type (
	// Resolver computes dependency-ordered, duplicate-free file lists from a
	// Registry. It holds no state between calls.
	Resolver struct {
		reg *Registry
	}

	// traversal carries the state of one resolution request.
	//
	// It uses a dual-map pattern for traversal control:
	//   - done: memoized closures of files already fully resolved.
	//   - inProgress: files on the current resolution path; meeting one of
	//     them again means the requirements form a cycle. path keeps the same
	//     files in visiting order so the cycle can be reported.
	traversal struct {
		reg        *Registry
		done       map[*File][]*File
		inProgress map[*File]bool
		path       []*File
	}
)

// NewResolver creates a Resolver reading reg.
func NewResolver(reg *Registry) *Resolver {
	return &Resolver{reg: reg}
}

func (r *Resolver) newTraversal() *traversal {
	return &traversal{
		reg:        r.reg,
		done:       make(map[*File][]*File),
		inProgress: make(map[*File]bool),
	}
}

// CompleteFile returns the closure of one file: every file it transitively
// requires, dependencies first in declaration order, ending with the file
// itself. An unknown reference yields an empty list.
func (r *Resolver) CompleteFile(ref string) ([]FileID, error) {
	f, ok := r.reg.LookupFile(ref)
	if !ok {
		return nil, nil
	}
	closure, err := r.newTraversal().complete(f)
	if err != nil {
		return nil, err
	}
	return ids(closure), nil
}

// CompleteFiles merges the closures of the requested files in request order,
// keeping each file at its first occurrence. Unknown references are skipped.
func (r *Resolver) CompleteFiles(refs []string) ([]FileID, error) {
	var files []*File
	for _, ref := range refs {
		if f, ok := r.reg.LookupFile(ref); ok {
			files = append(files, f)
		}
	}
	merged, err := r.newTraversal().merge(files)
	if err != nil {
		return nil, err
	}
	return ids(merged), nil
}

// ComponentToFile returns the identity of the file providing component.
func (r *Resolver) ComponentToFile(component string) (FileID, bool) {
	f, ok := r.reg.LookupComponent(component)
	if !ok {
		return FileID{}, false
	}
	return f.id, true
}

// ComponentsToFiles maps each component to its provider and resolves the
// providers like CompleteFiles. Components nobody provides are skipped.
func (r *Resolver) ComponentsToFiles(components []string) ([]FileID, error) {
	var providers []*File
	for _, c := range components {
		if f, ok := r.reg.LookupComponent(c); ok && !slices.Contains(providers, f) {
			providers = append(providers, f)
		}
	}
	merged, err := r.newTraversal().merge(providers)
	if err != nil {
		return nil, err
	}
	return ids(merged), nil
}

// FileDependencies returns the resolved providers of a file's requirements,
// without the file itself.
func (r *Resolver) FileDependencies(ref string) ([]FileID, error) {
	f, ok := r.reg.LookupFile(ref)
	if !ok {
		return nil, nil
	}
	t := r.newTraversal()
	t.enter(f)
	deps, err := t.dependencies(f)
	if err != nil {
		return nil, err
	}
	return ids(deps), nil
}

// AllFiles resolves every registered file, in package registration order and
// then declaration order. A non-empty ofPackage restricts the request to that
// package's files; their dependencies in other packages are still included.
func (r *Resolver) AllFiles(ofPackage string) ([]FileID, error) {
	merged, err := r.newTraversal().merge(r.reg.files(ofPackage))
	if err != nil {
		return nil, err
	}
	return ids(merged), nil
}

// merge appends each file's closure to the result, skipping files already present.
func (t *traversal) merge(files []*File) ([]*File, error) {
	var out []*File
	for _, f := range files {
		closure, err := t.complete(f)
		if err != nil {
			return nil, err
		}
		out = include(out, closure...)
	}
	return out, nil
}

func (t *traversal) complete(f *File) ([]*File, error) {
	if t.inProgress[f] {
		return nil, t.cycle(f)
	}
	if closure, ok := t.done[f]; ok {
		return closure, nil
	}

	t.enter(f)
	defer t.leave(f)

	closure, err := t.dependencies(f)
	if err != nil {
		return nil, err
	}
	closure = include(closure, f)

	t.done[f] = closure
	return closure, nil
}

// dependencies merges the closures of f's providers. f must be on the path.
func (t *traversal) dependencies(f *File) ([]*File, error) {
	var providers []*File
	for _, ref := range f.requires {
		p, ok := t.reg.LookupComponent(ref)
		if !ok || slices.Contains(providers, p) {
			continue
		}
		providers = append(providers, p)
	}
	return t.merge(providers)
}

func (t *traversal) enter(f *File) {
	t.inProgress[f] = true
	t.path = append(t.path, f)
}

func (t *traversal) leave(f *File) {
	delete(t.inProgress, f)
	t.path = t.path[:len(t.path)-1]
}

// cycle builds the error for revisiting f while it is still on the path.
func (t *traversal) cycle(f *File) error {
	start := slices.Index(t.path, f)
	cycle := make([]FileID, 0, len(t.path)-start+1)
	for _, p := range t.path[start:] {
		cycle = append(cycle, p.id)
	}
	cycle = append(cycle, f.id)
	return &CircularDependencyError{Cycle: cycle}
}

// include appends files not yet in list, preserving first occurrence.
func include(list []*File, files ...*File) []*File {
	for _, f := range files {
		if !slices.Contains(list, f) {
			list = append(list, f)
		}
	}
	return list
}

func ids(files []*File) []FileID {
	out := make([]FileID, len(files))
	for i, f := range files {
		out[i] = f.id
	}
	return out
}
