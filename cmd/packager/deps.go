// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"packager-cli/pkg/packager"
)

// newDepsCommand creates the `packager deps` command.
func newDepsCommand(app *App, opts *rootOptions) *cobra.Command {
	var direct bool

	cmd := &cobra.Command{
		Use:   "deps REF",
		Short: "Print the build order of one file",
		Long: `Print, one per line, the files REF needs in build order, ending with REF itself.

With --direct the file itself is left out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if err := s.registry.RequireFiles(args[0]); err != nil {
				return classify(err)
			}

			resolver := packager.NewResolver(s.registry)
			var order []packager.FileID
			if direct {
				order, err = resolver.FileDependencies(args[0])
			} else {
				order, err = resolver.CompleteFile(args[0])
			}
			if err != nil {
				return classify(err)
			}

			for _, id := range order {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&direct, "direct", false, "omit the file itself")

	return cmd
}
