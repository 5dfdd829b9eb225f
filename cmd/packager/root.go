// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"packager-cli/internal/issue"
	"packager-cli/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand builds the command tree bound to app and opts.
func newRootCommand(app *App, opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "packager",
		Short: "Dependency-ordered source concatenation",
		Long: TitleStyle.Render("packager") + SubtitleStyle.Render(" - dependency-ordered source concatenation") + `

packager registers packages described by a package.yml manifest. Each source
file declares, in a leading comment, the components it provides and the
components it requires. packager resolves those requirements and concatenates
sources so every provider precedes the files depending on it.

` + SubtitleStyle.Render("Examples:") + `
  packager build core/Array             Build one file and its dependencies
  packager build -c Array String        Build the providers of components
  packager build --all -o dist/app.js   Build every registered file
  packager validate                     Report unmet requirements
  packager -p lib -p vendor/more list components`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is $HOME/.config/packager/config.cue)")
	rootCmd.PersistentFlags().StringArrayVarP(&opts.packages, "package", "p", nil, "package root to register; repeatable, the first is the root package")

	rootCmd.AddCommand(newBuildCommand(app, opts))
	rootCmd.AddCommand(newValidateCommand(app, opts))
	rootCmd.AddCommand(newDepsCommand(app, opts))
	rootCmd.AddCommand(newListCommand(app, opts))
	rootCmd.AddCommand(newInfoCommand(app, opts))
	rootCmd.AddCommand(newConfigCommand(app, opts))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	opts := &rootOptions{}

	// fang overrides rootCmd.Version, so the version goes through fang.WithVersion.
	err := fang.Execute(
		context.Background(),
		newRootCommand(app, opts),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err == nil {
		return
	}

	renderError(app.stderr, err, opts.verbose, app.glamourStyle)

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Code.Validate() == nil {
			os.Exit(int(exitErr.Code))
		}
	}
	os.Exit(int(types.ExitFailure))
}

// renderError prints the extra help fang does not: suggestions of actionable
// errors (with the error chain in verbose mode) and the issue catalog entry.
func renderError(stderr io.Writer, err error, verbose bool, stylePath string) {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && (verbose || ae.HasSuggestions()) {
		fmt.Fprintln(stderr, VerboseStyle.Render(formatErrorForDisplay(ae, verbose)))
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		renderServiceError(stderr, svcErr, stylePath)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
