// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"packager-cli/internal/config"
	"packager-cli/internal/issue"
	"packager-cli/internal/testutil"
	"packager-cli/pkg/packager"
)

func TestBuild_FilesToStdout(t *testing.T) {
	t.Parallel()

	fsys, cfg := fixture(t)
	res := runCLI(t, fsys, cfg, "build", "array")
	if res.err != nil {
		t.Fatalf("build error = %v", res.err)
	}

	core := strings.Index(res.stdout, "var Core = 'abc123';")
	array := strings.Index(res.stdout, "Core.Array = {};")
	if core < 0 || array < 0 || core > array {
		t.Errorf("expected stamped core before array, got:\n%s", res.stdout)
	}
}

func TestBuild_Components(t *testing.T) {
	t.Parallel()

	fsys, cfg := fixture(t)
	res := runCLI(t, fsys, cfg, "build", "-c", "ext/More")
	if res.err != nil {
		t.Fatalf("build error = %v", res.err)
	}
	for _, want := range []string{"var Core", "Core.Array", "var More"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("expected %q in output:\n%s", want, res.stdout)
		}
	}
}

func TestBuild_AllToFile(t *testing.T) {
	t.Parallel()

	fsys, cfg := fixture(t)
	res := runCLI(t, fsys, cfg, "build", "--all", "-o", "/dist/all.js")
	if res.err != nil {
		t.Fatalf("build error = %v", res.err)
	}
	if res.stdout != "" {
		t.Errorf("expected nothing on stdout, got %q", res.stdout)
	}
	if !strings.Contains(res.stderr, "Wrote") {
		t.Errorf("expected a success line on stderr, got %q", res.stderr)
	}

	data, err := afero.ReadFile(fsys, "/dist/all.js")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.HasSuffix(string(data), "var More = {};") {
		t.Errorf("expected more.js last, got:\n%s", data)
	}
}

func TestBuild_OutputFromConfig(t *testing.T) {
	t.Parallel()

	fsys, cfg := fixture(t)
	cfg.Output = "/out/core.js"
	cfg.StampBuilds = false

	if res := runCLI(t, fsys, cfg, "build", "core"); res.err != nil {
		t.Fatalf("build error = %v", res.err)
	}
	data, err := afero.ReadFile(fsys, "/out/core.js")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "'%build%'") {
		t.Errorf("expected the token untouched with stamping off, got:\n%s", data)
	}
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
		issueID issue.Id
	}{
		{name: "no references", args: []string{"build"}, wantErr: errNothingToBuild},
		{name: "unknown file", args: []string{"build", "nope"}, wantErr: packager.ErrFileNotFound, issueID: issue.RefNotFoundId},
		{name: "unknown component", args: []string{"build", "-c", "ext/Missing"}, wantErr: packager.ErrComponentNotFound, issueID: issue.RefNotFoundId},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fsys, cfg := fixture(t)
			res := runCLI(t, fsys, cfg, tt.args...)
			if !errors.Is(res.err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, res.err)
			}
			var svcErr *ServiceError
			if tt.issueID != 0 && (!errors.As(res.err, &svcErr) || svcErr.IssueID != tt.issueID) {
				t.Errorf("expected issue %d, got %v", tt.issueID, res.err)
			}
		})
	}
}

func TestBuild_WriteFailure(t *testing.T) {
	t.Parallel()

	fsys, cfg := fixture(t)
	res := runCLI(t, afero.NewReadOnlyFs(fsys), cfg, "build", "core", "-o", "/dist/core.js")

	var svcErr *ServiceError
	if !errors.As(res.err, &svcErr) || svcErr.IssueID != issue.OutputWriteFailedId {
		t.Fatalf("expected output write issue, got %v", res.err)
	}
	var ae *issue.ActionableError
	if !errors.As(res.err, &ae) || ae.Resource != "/dist/core.js" {
		t.Fatalf("expected actionable error naming the destination, got %v", res.err)
	}
	if len(ae.Suggestions) != 2 {
		t.Errorf("expected two suggestions, got %v", ae.Suggestions)
	}
}

func TestBuild_WatchMissingRoot(t *testing.T) {
	t.Parallel()

	// The fixture lives in memory, so the watcher cannot find the roots on
	// disk. The initial build still runs.
	fsys, cfg := fixture(t)
	res := runCLI(t, fsys, cfg, "build", "--all", "--watch")
	var ae *issue.ActionableError
	if !errors.As(res.err, &ae) || ae.Operation != "watch package roots" {
		t.Fatalf("expected a watch error for roots missing on disk, got %v", res.err)
	}
	if ae.Resource != "/pkgs/core, /pkgs/ext" {
		t.Errorf("Resource = %q, want the configured roots", ae.Resource)
	}
	if !strings.Contains(res.stdout, "var Core") {
		t.Errorf("expected the initial build on stdout, got %q", res.stdout)
	}
}

func TestBuild_WatchRebuildsOnChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	root := filepath.Join(dir, "app")
	osFs := afero.NewOsFs()
	testutil.WritePackage(t, osFs, root, "app", "",
		testutil.SourceFile{Path: "main.js", Content: testutil.Source("provides: Main", "var v = 1;")},
	)

	cfg := config.DefaultConfig()
	cfg.Packages = []string{root}
	out := filepath.Join(dir, "dist.js")

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config:  staticConfig{cfg: cfg},
		Fs:      osFs,
		BuildID: packager.StaticBuildIdentifier("abc123"),
		Stdout:  &stdout,
		Stderr:  &stderr,
	})
	cmd := newRootCommand(app, &rootOptions{})
	cmd.SetArgs([]string{"build", "--all", "--watch", "--debounce", "50ms", "-o", out})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- cmd.ExecuteContext(ctx) }()

	waitFor := func(want string) {
		t.Helper()
		deadline := time.Now().Add(5 * time.Second)
		for time.Now().Before(deadline) {
			if data, err := os.ReadFile(out); err == nil && strings.Contains(string(data), want) {
				return
			}
			time.Sleep(20 * time.Millisecond)
		}
		t.Fatalf("timed out waiting for %q in %s", want, out)
	}

	waitFor("var v = 1;")
	// Give the watcher time to register the root before editing.
	time.Sleep(200 * time.Millisecond)
	testutil.WriteFile(t, osFs, filepath.Join(root, "main.js"), testutil.Source("provides: Main", "var v = 2;"))
	waitFor("var v = 2;")

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("watch returned %v after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
