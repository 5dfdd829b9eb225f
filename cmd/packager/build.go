// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"packager-cli/internal/issue"
	"packager-cli/internal/watch"
	"packager-cli/pkg/packager"
)

// buildRequest captures the inputs of one build invocation.
type buildRequest struct {
	refs       []string
	components bool
	all        bool
	output     string
	watch      bool
	debounce   time.Duration
}

// errNothingToBuild is returned when neither references nor --all are given.
var errNothingToBuild = errors.New("nothing to build: pass file references or --all")

// newBuildCommand creates the `packager build` command.
func newBuildCommand(app *App, opts *rootOptions) *cobra.Command {
	req := buildRequest{}

	cmd := &cobra.Command{
		Use:   "build [REF...]",
		Short: "Concatenate files and their dependencies in order",
		Long: `Concatenate the requested files, preceded by everything they require.

References are file keys ("array", "core/array") or, with --components,
component names ("Array", "core/Array"). Unqualified references belong to
the root package, the first one registered.

The result goes to stdout unless --output or the 'output' config key names a file.
With --watch the build reruns whenever a file under a package root changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.refs = args
			if len(req.refs) == 0 && !req.all {
				return errNothingToBuild
			}

			s, err := app.open(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if req.output == "" {
				req.output = s.cfg.Output
			}
			err = runBuild(cmd, s, req)
			if !req.watch {
				return err
			}
			if err != nil {
				reportRebuildError(cmd, s, err)
			}
			return watchBuild(cmd, app, opts, s, req)
		},
	}

	cmd.Flags().BoolVarP(&req.components, "components", "c", false, "treat references as component names")
	cmd.Flags().BoolVar(&req.all, "all", false, "build every registered file")
	cmd.Flags().StringVarP(&req.output, "output", "o", "", "write the build to this file instead of stdout")
	cmd.Flags().BoolVarP(&req.watch, "watch", "w", false, "rebuild whenever a package file changes")
	cmd.Flags().DurationVar(&req.debounce, "debounce", watch.DefaultDebounce, "quiet period before a rebuild in --watch mode")

	return cmd
}

func runBuild(cmd *cobra.Command, s *session, req buildRequest) error {
	asm := packager.NewAssembler(s.registry)

	if req.components {
		sel := packager.Components(req.refs...)
		if req.all {
			sel = packager.AllComponents()
		} else if err := s.registry.RequireComponents(req.refs...); err != nil {
			return classify(err)
		}
		if req.output != "" {
			return writeBuild(cmd, req.output, asm.WriteFromComponents(req.output, sel))
		}
		out, err := asm.BuildFromComponents(sel)
		if err != nil {
			return classify(err)
		}
		printBuild(cmd, out)
		return nil
	}

	sel := packager.Files(req.refs...)
	if req.all {
		sel = packager.AllFiles()
	} else if err := s.registry.RequireFiles(req.refs...); err != nil {
		return classify(err)
	}
	if req.output != "" {
		return writeBuild(cmd, req.output, asm.WriteFromFiles(req.output, sel))
	}
	out, err := asm.BuildFromFiles(sel)
	if err != nil {
		return classify(err)
	}
	printBuild(cmd, out)
	return nil
}

func printBuild(cmd *cobra.Command, out string) {
	if out == "" {
		return
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	if !strings.HasSuffix(out, "\n") {
		fmt.Fprintln(cmd.OutOrStdout())
	}
}

// writeBuild reports the outcome of writing the build to dest.
func writeBuild(cmd *cobra.Command, dest string, err error) error {
	if err != nil {
		if id := issueFor(err); id != 0 {
			return newServiceError(err, id)
		}
		return newServiceError(issue.NewErrorContext().
			WithOperation("write build").
			WithResource(dest).
			WithSuggestions(
				"Check that the output directory is writable",
				"Omit --output to print the build to stdout",
			).
			Wrap(err).
			BuildError(), issue.OutputWriteFailedId)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s Wrote %s\n", SuccessStyle.Render("✓"), RefStyle.Render(dest))
	return nil
}

// watchBuild rebuilds after every settled burst of changes under the package
// roots until the command context is canceled. The registry is reloaded on
// each change so edited manifests and headers take effect.
func watchBuild(cmd *cobra.Command, app *App, opts *rootOptions, s *session, req buildRequest) error {
	// The output may live inside a package root; writing it must not
	// trigger another rebuild.
	var ignore []string
	if req.output != "" {
		ignore = append(ignore, "**/"+filepath.Base(req.output))
	}

	w, err := watch.New(watch.Config{
		Roots:    s.cfg.Packages,
		Ignore:   ignore,
		Debounce: req.debounce,
		Logger:   s.logger,
		OnChange: func(ctx context.Context, changed []string) error {
			s.logger.Info("change detected", "files", len(changed))
			next, err := app.open(ctx, opts)
			if err != nil {
				reportRebuildError(cmd, s, err)
				return nil
			}
			if err := runBuild(cmd, next, req); err != nil {
				reportRebuildError(cmd, next, err)
			}
			return nil
		},
	})
	if err != nil {
		return issue.WrapWithContext(err, "watch package roots", strings.Join(s.cfg.Packages, ", "))
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s Watching %d package roots\n", SubtitleStyle.Render("»"), len(s.cfg.Packages))
	return w.Run(cmd.Context())
}

// reportRebuildError prints err without ending a watch session.
func reportRebuildError(cmd *cobra.Command, s *session, err error) {
	s.logger.Error("build failed", "err", err)
	fmt.Fprintln(cmd.ErrOrStderr(), WarningStyle.Render(formatErrorForDisplay(err, s.cfg.UI.Verbose)))
}
