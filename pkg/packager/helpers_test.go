// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"slices"
	"testing"

	"github.com/spf13/afero"

	"packager-cli/internal/testutil"
)

var source = testutil.Source

// writePackage creates root/package.yml (license MIT, author pkg-author)
// listing files in the given order.
func writePackage(t *testing.T, fsys afero.Fs, root, name string, files [][2]string) {
	t.Helper()

	sources := make([]testutil.SourceFile, len(files))
	for i, f := range files {
		sources[i] = testutil.SourceFile{Path: f[0], Content: f[1]}
	}
	testutil.WritePackage(t, fsys, root, name, "license: MIT\nauthor: pkg-author", sources...)
}

// coreFixture registers:
//
//	core: core.js{provides Core}, array.js{requires Core; provides Array},
//	      string.js{name String; requires Core, Array; provides String}
//	ext:  more.js{requires core/String, Missing; provides More}
func coreFixture(t *testing.T, opts ...Option) *Registry {
	t.Helper()

	fsys := afero.NewMemMapFs()
	writePackage(t, fsys, "/pkgs/core", "core", [][2]string{
		{"src/core.js", source("provides: Core", "var Core = {};")},
		{"src/array.js", source("requires: Core\nprovides: [Array]", "Core.Array = {};")},
		{"src/string.js", source("name: String\nrequires: [Core, Array]\nprovides: String\nauthors: [alice]", "Core.String = {};")},
	})
	writePackage(t, fsys, "/pkgs/ext", "ext", [][2]string{
		{"more.js", source("requires: [core/String, Missing]\nprovides: More\nlicense: GPL", "var More = {};")},
	})

	return mustLoad(t, fsys, []string{"/pkgs/core", "/pkgs/ext"}, opts...)
}

func mustLoad(t *testing.T, fsys afero.Fs, roots []string, opts ...Option) *Registry {
	t.Helper()

	opts = append([]Option{WithFs(fsys), WithBuildIdentifier(nil)}, opts...)
	reg, err := Load(roots, opts...)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return reg
}

func names(ids []FileID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func assertOrder(t *testing.T, got []FileID, want ...string) {
	t.Helper()
	if !slices.Equal(names(got), want) {
		t.Errorf("order = %v, want %v", names(got), want)
	}
}
