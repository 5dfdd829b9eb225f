// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/afero"

	"packager-cli/internal/dag"
)

func TestValidator_Validate(t *testing.T) {
	t.Parallel()

	reg := coreFixture(t)
	var out bytes.Buffer
	warnings := NewValidator(reg, &out).Validate()

	if len(warnings) != 1 {
		t.Fatalf("Validate() = %v, want exactly one warning", warnings)
	}
	w := warnings[0]
	if w.Component != "ext/Missing" || w.File.String() != "ext/more" {
		t.Errorf("warning = %+v, want ext/Missing required by ext/more", w)
	}

	want := "WARNING: The component ext/Missing, required by ext/more, has not been provided.\n"
	if out.String() != want {
		t.Errorf("diagnostics = %q, want %q", out.String(), want)
	}
}

func TestValidator_MissingDependencyDoesNotBlockBuild(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	writePackage(t, fsys, "/a", "a", [][2]string{
		{"x.js", source("requires: [y, Gone]", "x source")},
		{"z.js", source("provides: y", "z source")},
	})
	reg := mustLoad(t, fsys, []string{"/a"})

	warnings := NewValidator(reg, nil).Validate()
	if len(warnings) != 1 || warnings[0].Component != "a/Gone" {
		t.Fatalf("Validate() = %v, want one warning for a/Gone", warnings)
	}

	out, err := NewAssembler(reg).BuildFromFiles(Files("a/x"))
	if err != nil {
		t.Fatalf("BuildFromFiles() error = %v", err)
	}
	if want := joinSources(t, reg, "a/z", "a/x"); out != want {
		t.Errorf("BuildFromFiles() = %q, want %q", out, want)
	}
}

func TestValidator_RemovedPackageSurfacesAsWarnings(t *testing.T) {
	t.Parallel()

	reg := coreFixture(t)
	reg.RemovePackage("core")

	var out bytes.Buffer
	warnings := NewValidator(reg, &out).Validate()

	if len(warnings) != 2 {
		t.Fatalf("Validate() = %v, want 2 warnings", warnings)
	}
	if warnings[0].Component != "core/String" || warnings[1].Component != "ext/Missing" {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestValidator_DuplicateProviders(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	writePackage(t, fsys, "/lib", "lib", [][2]string{
		{"one.js", source("provides: [A, B]", "one")},
		{"two.js", source("provides: [B]", "two")},
		{"three.js", source("provides: [A]", "three")},
		{"twice.js", source("provides: [C, C]", "twice")},
	})
	writePackage(t, fsys, "/other", "other", [][2]string{
		{"four.js", source("provides: [A]", "four")},
	})
	reg := mustLoad(t, fsys, []string{"/lib", "/other"})

	got := NewValidator(reg, nil).DuplicateProviders()
	want := []Collision{
		{Component: "lib/B", First: FileID{"lib", "one"}, Second: FileID{"lib", "two"}},
		{Component: "lib/A", First: FileID{"lib", "one"}, Second: FileID{"lib", "three"}},
	}
	if len(got) != len(want) {
		t.Fatalf("DuplicateProviders() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("collision[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestValidator_Order(t *testing.T) {
	t.Parallel()

	v := NewValidator(coreFixture(t), nil)

	order, err := v.Order()
	if err != nil {
		t.Fatalf("Order() error = %v", err)
	}
	assertOrder(t, order, "core/core", "core/array", "core/String", "ext/more")

	if err := v.Cycles(); err != nil {
		t.Errorf("Cycles() = %v, want nil", err)
	}
}

func TestValidator_Cycles(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	writePackage(t, fsys, "/loop", "loop", [][2]string{
		{"free.js", source("provides: Free", "free")},
		{"a.js", source("requires: B\nprovides: A", "a")},
		{"b.js", source("requires: A\nprovides: B", "b")},
	})
	reg := mustLoad(t, fsys, []string{"/loop"})

	err := NewValidator(reg, nil).Cycles()
	if !errors.Is(err, dag.ErrCycle) {
		t.Fatalf("Cycles() = %v, want dag.ErrCycle", err)
	}
	var cycleErr *dag.CycleError
	if !errors.As(err, &cycleErr) || len(cycleErr.Cycle) != 3 {
		t.Errorf("Cycles() = %v, want a two-file cycle", err)
	}
}
