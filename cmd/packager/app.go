// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"packager-cli/internal/config"
	"packager-cli/internal/issue"
	"packager-cli/pkg/packager"
)

type (
	// App wires CLI services and shared dependencies. Cobra handlers receive an
	// App reference and reach configuration, the filesystem and output through it.
	App struct {
		Config  ConfigProvider
		Fs      afero.Fs
		BuildID packager.BuildIdentifier
		stdout  io.Writer
		stderr  io.Writer
		// glamourStyle is derived from ui.color_scheme once config is loaded.
		glamourStyle string
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Fs     afero.Fs
		// BuildID overrides the Git build identifier.
		BuildID packager.BuildIdentifier
		Stdout  io.Writer
		Stderr  io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// rootOptions holds the persistent flag values shared by all subcommands.
	rootOptions struct {
		configPath string
		verbose    bool
		packages   []string
	}

	// session is the per-invocation state built from config and flags.
	session struct {
		cfg      *config.Config
		registry *packager.Registry
		logger   *log.Logger
	}
)

// NewApp creates an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:  deps.Config,
		Fs:      deps.Fs,
		BuildID: deps.BuildID,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,

		glamourStyle: "auto",
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.Fs == nil {
		app.Fs = afero.NewOsFs()
	}
	if app.BuildID == nil {
		app.BuildID = packager.GitBuildIdentifier{}
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// loadConfig reads the configuration and applies flag overrides.
func (a *App) loadConfig(ctx context.Context, opts *rootOptions) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: opts.configPath})
	if err != nil {
		return nil, newServiceError(err, issue.ConfigLoadFailedId)
	}
	if opts.verbose {
		cfg.UI.Verbose = true
	}
	if len(opts.packages) > 0 {
		cfg.Packages = opts.packages
	}
	a.glamourStyle = glamourStyleFor(cfg.UI.ColorScheme)
	return cfg, nil
}

// glamourStyleFor maps a color scheme to a glamour standard style. "auto"
// falls back to plain text when output is not a terminal.
func glamourStyleFor(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// newLogger returns the stderr logger, at debug level when verbose.
func (a *App) newLogger(verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: "packager",
		Level:  level,
	})
}

// registryOptions maps configuration onto registry options.
func (a *App) registryOptions(cfg *config.Config, logger *log.Logger) []packager.Option {
	opts := []packager.Option{
		packager.WithFs(a.Fs),
		packager.WithLogger(logger),
		packager.WithBuildToken(cfg.BuildToken),
		packager.WithBuildIdentifier(a.BuildID),
	}
	if !cfg.StampBuilds {
		opts = append(opts, packager.WithBuildIdentifier(nil))
	}
	if cfg.StrictProviders {
		opts = append(opts, packager.WithProviderPolicy(packager.ProviderStrict))
	}
	return opts
}

// open loads configuration and registers every configured package root.
func (a *App) open(ctx context.Context, opts *rootOptions) (*session, error) {
	cfg, err := a.loadConfig(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger := a.newLogger(cfg.UI.Verbose)
	logger.Debug("registering packages", "roots", cfg.Packages)

	reg, err := packager.Load(cfg.Packages, a.registryOptions(cfg, logger)...)
	if err != nil {
		return nil, classify(err)
	}
	return &session{cfg: cfg, registry: reg, logger: logger}, nil
}
