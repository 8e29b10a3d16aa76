// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package esbuildinject registers an [inject.Plugin] with esbuild.
//
// The virtual files are emitted at the end of each build. They are added to
// the build result's output files and, if the build writes its output, they
// are written next to the other output files.
package esbuildinject

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aibor/inject"
	"github.com/aibor/inject/emit"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/spf13/afero"
)

// ErrNoOutputDir is returned if the build has neither an output directory nor
// an output file.
var ErrNoOutputDir = errors.New("no output directory set (use Outdir or Outfile)")

// Option configures the esbuild plugin.
type Option func(*config)

type config struct {
	fs afero.Fs
}

// WithFs sets the file system files are written to if the build writes its
// output. By default it is [afero.NewOsFs].
func WithFs(fsys afero.Fs) Option {
	return func(c *config) {
		c.fs = fsys
	}
}

// New returns an esbuild plugin for the given [inject.Plugin].
func New(plugin *inject.Plugin, opts ...Option) api.Plugin {
	cfg := config{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return api.Plugin{
		Name: plugin.Name(),
		Setup: func(build api.PluginBuild) {
			options := build.InitialOptions

			build.OnEnd(func(result *api.BuildResult) (api.OnEndResult, error) {
				// Nothing is emitted into failed builds.
				if len(result.Errors) > 0 {
					return api.OnEndResult{}, nil
				}

				err := emitAll(plugin, options, result, cfg.fs)
				if err != nil {
					return api.OnEndResult{
						Errors: []api.Message{{
							PluginName: plugin.Name(),
							Text:       err.Error(),
						}},
					}, nil
				}

				return api.OnEndResult{}, nil
			})
		},
	}
}

func emitAll(
	plugin *inject.Plugin,
	options *api.BuildOptions,
	result *api.BuildResult,
	fsys afero.Fs,
) error {
	outDir, err := outputDir(options)
	if err != nil {
		return err
	}

	emitter := &resultEmitter{
		result: result,
		outDir: outDir,
	}

	if options.Write {
		emitter.dir = emit.NewDir(fsys, outDir)
	}

	return plugin.BuildEnd(context.Background(), emitter)
}

func outputDir(options *api.BuildOptions) (string, error) {
	dir := options.Outdir
	if dir == "" {
		if options.Outfile == "" {
			return "", ErrNoOutputDir
		}

		dir = filepath.Dir(options.Outfile)
	}

	if filepath.IsAbs(dir) {
		return dir, nil
	}

	workDir := options.AbsWorkingDir
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	return filepath.Join(workDir, dir), nil
}

var _ inject.Emitter = (*resultEmitter)(nil)

type resultEmitter struct {
	mu     sync.Mutex
	result *api.BuildResult
	outDir string
	dir    *emit.Dir
}

func (e *resultEmitter) EmitFile(ctx context.Context, asset inject.Asset) error {
	if e.dir != nil {
		err := e.dir.EmitFile(ctx, asset)
		if err != nil {
			return err //nolint:wrapcheck
		}
	}

	path := filepath.Join(e.outDir, filepath.FromSlash(asset.FileName))

	e.mu.Lock()
	defer e.mu.Unlock()

	e.result.OutputFiles = append(e.result.OutputFiles, api.OutputFile{
		Path:     path,
		Contents: asset.Source,
	})

	return nil
}
