// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"packager-cli/internal/issue"
	"packager-cli/pkg/packager"
	"packager-cli/pkg/types"
)

// newValidateCommand creates the `packager validate` command.
func newValidateCommand(app *App, opts *rootOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Report unmet requirements, duplicate providers and cycles",
		Long: `Check every registered file.

Each required component no package provides is reported on stderr as
  WARNING: The component <pkg/Component>, required by <pkg/file>, has not been provided.

Components provided twice within a package are reported too. A requirement
cycle always fails. With --strict any warning exits with status 2.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return runValidate(cmd, s, strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit with status 2 when warnings are found")

	return cmd
}

func runValidate(cmd *cobra.Command, s *session, strict bool) error {
	stderr := cmd.ErrOrStderr()
	v := packager.NewValidator(s.registry, stderr)

	warnings := v.Validate()
	collisions := v.DuplicateProviders()
	for _, c := range collisions {
		fmt.Fprintf(stderr, "%s %s is provided by both %s and %s; using %s\n",
			WarningStyle.Render("NOTICE:"), c.Component, c.First, c.Second, c.First)
	}

	if err := v.Cycles(); err != nil {
		return newServiceError(err, issue.CircularDependencyId)
	}

	files := 0
	for _, name := range s.registry.Packages() {
		if p, ok := s.registry.Package(name); ok {
			files += len(p.Files())
		}
	}

	problems := len(warnings) + len(collisions)
	mark := SuccessStyle.Render("✓")
	if problems > 0 {
		mark = WarningStyle.Render("!")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d packages, %d files, %d unmet requirements, %d duplicate providers\n",
		mark, len(s.registry.Packages()), files, len(warnings), len(collisions))

	if strict && problems > 0 {
		return &ExitError{
			Code: types.ExitWarnings,
			Err:  fmt.Errorf("validation found %d problems", problems),
		}
	}
	return nil
}
