// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"packager-cli/pkg/packager"
)

// newInfoCommand creates the `packager info` command.
func newInfoCommand(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info [PKG]",
		Short: "Show a package card",
		Long:  `Show the license, authors and files of a package. Without PKG the root package is shown.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd.Context(), opts)
			if err != nil {
				return err
			}
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			p, ok := s.registry.Package(name)
			if !ok {
				return classify(fmt.Errorf("%w: %s", packager.ErrPackageNotFound, name))
			}

			rendered, err := glamour.Render(packageCard(p, p.Name() == s.registry.Root()), app.glamourStyle)
			if err != nil {
				return fmt.Errorf("rendering package card: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
}

// packageCard renders p as Markdown.
func packageCard(p *packager.Package, root bool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", p.Name())
	if root {
		sb.WriteString("_root package_\n\n")
	}
	fmt.Fprintf(&sb, "- **Root:** `%s`\n", p.Root())
	fmt.Fprintf(&sb, "- **License:** %s\n", orNone(p.License()))
	fmt.Fprintf(&sb, "- **Authors:** %s\n\n", orNone(strings.Join(p.Authors(), ", ")))

	sb.WriteString("## Files\n\n")
	sb.WriteString("| File | Provides | Requires | License | Authors |\n")
	sb.WriteString("|------|----------|----------|---------|---------|\n")
	for _, f := range p.Files() {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
			f.ID().Name,
			orNone(strings.Join(f.Provides(), ", ")),
			orNone(strings.Join(f.Requires(), ", ")),
			orNone(f.License()),
			orNone(strings.Join(f.Authors(), ", ")),
		)
	}

	return sb.String()
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
