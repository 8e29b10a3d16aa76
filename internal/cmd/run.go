// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aibor/inject"
	"github.com/aibor/inject/internal/manifest"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const (
	name = "inject"

	defaultManifest = "inject.yaml"

	exitCodeError = 1
	exitCodeUsage = 2
)

// Set on build.
var version = "dev"

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

type options struct {
	fs afero.Fs

	manifest    string
	debug       bool
	timeout     time.Duration
	concurrency int
}

func (o *options) newPlugin() (*inject.Plugin, error) {
	files, err := manifest.NewLoader(o.fs).LoadFile(o.manifest)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}

	slog.Debug("Loaded manifest",
		slog.String("path", o.manifest),
		slog.Int("files", len(files)))

	plugin := inject.New(files,
		inject.WithLogger(slog.Default()),
		inject.WithTimeout(o.timeout),
		inject.WithConcurrency(o.concurrency),
	)

	return plugin, nil
}

func newRootCommand(cfg IO, opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:     name,
		Short:   "Inject generated files into build output and dev servers",
		Version: version,
		// Unknown commands end up here as arguments.
		Args: noArgs,
		RunE: func(*cobra.Command, []string) error {
			return &UsageError{err: ErrNoCommand}
		},
		PersistentPreRun: func(*cobra.Command, []string) {
			setupLogging(cfg.Stderr, opts.debug)
		},
		// Errors are handled by [Run].
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.SetIn(cfg.Stdin)
	root.SetOut(cfg.Stdout)
	root.SetErr(cfg.Stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{err: err}
	})

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.manifest, "manifest", "f", defaultManifest,
		"manifest file listing the virtual files")
	flags.BoolVar(&opts.debug, "debug", false,
		"enable debug output")
	flags.DurationVar(&opts.timeout, "timeout", 0,
		"maximum time a single file may take to build, 0 for no limit")

	root.AddCommand(
		newBuildCommand(opts),
		newServeCommand(opts),
	)

	return root
}

func noArgs(cmd *cobra.Command, args []string) error {
	err := cobra.NoArgs(cmd, args)
	if err != nil {
		return &UsageError{err: err}
	}

	return nil
}

func handleError(cfg IO, err error) int {
	if errors.Is(err, &UsageError{}) {
		fmt.Fprintf(cfg.Stderr, "Error: %v\nRun '%s --help' for usage.\n", err, name)
		return exitCodeUsage
	}

	// Logging might not be set up yet, so do not rely on the default logger.
	newLogger(cfg.Stderr, false).Error(err.Error())

	return exitCodeError
}

func run(ctx context.Context, args []string, cfg IO, fsys afero.Fs) int {
	opts := &options{fs: fsys}

	root := newRootCommand(cfg, opts)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		return handleError(cfg, err)
	}

	return 0
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	return run(ctx, args, cfg, afero.NewOsFs())
}
