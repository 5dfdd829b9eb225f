// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"

	"packager-cli/pkg/packager"
)

// newListCommand creates the `packager list` command tree.
func newListCommand(app *App, opts *rootOptions) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered packages, files or components",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	listCmd.AddCommand(&cobra.Command{
		Use:   "packages",
		Short: "List packages in registration order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd.Context(), opts)
			if err != nil {
				return err
			}
			for _, name := range s.registry.Packages() {
				marker := ""
				if name == s.registry.Root() {
					marker = " " + SubtitleStyle.Render("(root)")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s%s\n", name, s.registry.PackageRoot(name), marker)
			}
			return nil
		},
	})

	var ordered bool
	filesCmd := &cobra.Command{
		Use:   "files [PKG]",
		Short: "List files, optionally of one package",
		Long: `List files in declaration order, optionally of one package.

With --ordered the files are listed in build order instead, including the
dependencies they pull in from other packages.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd.Context(), opts)
			if err != nil {
				return err
			}
			pkgName := ""
			if len(args) == 1 {
				pkgName = args[0]
				if _, ok := s.registry.Package(pkgName); !ok {
					return classify(fmt.Errorf("%w: %s", packager.ErrPackageNotFound, pkgName))
				}
			}
			return listFiles(cmd, s.registry, pkgName, ordered)
		},
	}
	filesCmd.Flags().BoolVar(&ordered, "ordered", false, "list in build order")
	listCmd.AddCommand(filesCmd)

	listCmd.AddCommand(&cobra.Command{
		Use:   "components",
		Short: "List provided components and their providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd.Context(), opts)
			if err != nil {
				return err
			}
			providers := componentProviders(s.registry)
			for _, c := range slices.Sorted(maps.Keys(providers)) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c, RefStyle.Render(providers[c].String()))
			}
			return nil
		},
	})

	return listCmd
}

func listFiles(cmd *cobra.Command, reg *packager.Registry, pkgName string, ordered bool) error {
	out := cmd.OutOrStdout()

	if ordered {
		order, err := packager.NewResolver(reg).AllFiles(pkgName)
		if err != nil {
			return classify(err)
		}
		for _, id := range order {
			fmt.Fprintln(out, id)
		}
		return nil
	}

	for _, name := range reg.Packages() {
		if pkgName != "" && name != pkgName {
			continue
		}
		p, _ := reg.Package(name)
		for _, f := range p.Files() {
			fmt.Fprintf(out, "%s\t%s\n", f.ID(), SubtitleStyle.Render(f.Path()))
		}
	}
	return nil
}

// componentProviders maps every qualified component to the file resolving it.
func componentProviders(reg *packager.Registry) map[string]packager.FileID {
	resolver := packager.NewResolver(reg)
	providers := make(map[string]packager.FileID)
	for _, name := range reg.Packages() {
		p, _ := reg.Package(name)
		for _, f := range p.Files() {
			for _, c := range f.Provides() {
				ref := name + "/" + c
				if _, seen := providers[ref]; seen {
					continue
				}
				if id, ok := resolver.ComponentToFile(ref); ok {
					providers[ref] = id
				}
			}
		}
	}
	return providers
}
