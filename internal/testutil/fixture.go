// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// SourceFile is one source of a fixture package, relative to its root.
type SourceFile struct {
	Path    string
	Content string
}

// Source renders a source file whose leading comment carries descriptor as
// YAML front matter. An empty descriptor returns body unchanged.
func Source(descriptor, body string) string {
	if descriptor == "" {
		return body
	}
	return fmt.Sprintf("/*\n---\n%s\n...\n*/\n%s", strings.TrimSpace(descriptor), body)
}

// WriteFile writes content to path on fsys, creating parent directories.
func WriteFile(t testing.TB, fsys afero.Fs, path, content string) {
	t.Helper()
	path = filepath.FromSlash(path)
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// WritePackage writes root/package.yml and the given sources. The manifest's
// sources list follows files in order; header holds any other manifest keys.
func WritePackage(t testing.TB, fsys afero.Fs, root, name, header string, files ...SourceFile) {
	t.Helper()

	var manifest strings.Builder
	fmt.Fprintf(&manifest, "name: %s\n", name)
	if header != "" {
		manifest.WriteString(strings.TrimSpace(header) + "\n")
	}
	manifest.WriteString("sources:\n")
	for _, f := range files {
		fmt.Fprintf(&manifest, "  - %s\n", f.Path)
		WriteFile(t, fsys, filepath.Join(root, f.Path), f.Content)
	}
	WriteFile(t, fsys, filepath.Join(root, "package.yml"), manifest.String())
}
