// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"

	"packager-cli/internal/config"
	"packager-cli/internal/testutil"
	"packager-cli/pkg/packager"
)

// staticConfig is a ConfigProvider returning a fixed configuration.
type staticConfig struct {
	cfg *config.Config
	err error
}

func (s staticConfig) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if s.err != nil {
		return nil, s.err
	}
	cfg := *s.cfg
	return &cfg, nil
}

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes the command tree against fsys with cfg as configuration.
func runCLI(t *testing.T, fsys afero.Fs, cfg *config.Config, args ...string) cliResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config:  staticConfig{cfg: cfg},
		Fs:      fsys,
		BuildID: packager.StaticBuildIdentifier("abc123"),
		Stdout:  &stdout,
		Stderr:  &stderr,
	})
	root := newRootCommand(app, &rootOptions{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())

	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// fixture writes two packages:
//
//	core: core.js{provides Core; stamped}, array.js{requires Core; provides Array}
//	ext:  more.js{requires core/Array, Missing; provides More}
func fixture(t *testing.T) (afero.Fs, *config.Config) {
	t.Helper()

	fsys := afero.NewMemMapFs()
	testutil.WritePackage(t, fsys, "/pkgs/core", "core", "license: MIT\nauthors: [alice, bob]",
		testutil.SourceFile{Path: "core.js", Content: testutil.Source("provides: Core", "var Core = '%build%';")},
		testutil.SourceFile{Path: "array.js", Content: testutil.Source("requires: Core\nprovides: Array", "Core.Array = {};")},
	)
	testutil.WritePackage(t, fsys, "/pkgs/ext", "ext", "",
		testutil.SourceFile{Path: "more.js", Content: testutil.Source("requires: [core/Array, Missing]\nprovides: More", "var More = {};")},
	)

	cfg := config.DefaultConfig()
	cfg.Packages = []string{"/pkgs/core", "/pkgs/ext"}
	return fsys, cfg
}
