// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"packager-cli/internal/config"
	"packager-cli/internal/issue"
)

// newConfigCommand creates the `packager config` command tree.
func newConfigCommand(app *App, opts *rootOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage packager configuration",
		Long: `Manage packager configuration.

Configuration is stored in:
  - Linux: ~/.config/packager/config.cue
  - macOS: ~/Library/Application Support/packager/config.cue
  - Windows: %APPDATA%\packager\config.cue

A config.cue in the working directory is used when none exists there.
PACKAGER_* environment variables override file values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), opts)
			if err != nil {
				return err
			}
			path, err := config.ResolvePath(config.LoadOptions{ConfigFilePath: opts.configPath})
			if err != nil {
				return err
			}
			if path == "" {
				path = "(using defaults)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "// Source: %s\n", path)
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config directory: %s\n", cfgDir)
			fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n", configFilePath(cfgDir))
			return nil
		},
	})

	return cfgCmd
}

func initConfig(cmd *cobra.Command, force bool) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	path := configFilePath(cfgDir)

	// Save always targets the OS filesystem, so the existence check does too.
	exists, err := afero.Exists(afero.NewOsFs(), path)
	if err != nil {
		return err
	}
	if exists && !force {
		return issue.NewErrorContext().
			WithOperation("create config").
			WithResource(path).
			WithSuggestion("Pass --force to overwrite it").
			Wrap(errors.New("config file already exists")).
			BuildError()
	}

	if err := config.Save(config.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func configFilePath(cfgDir string) string {
	return filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
}
