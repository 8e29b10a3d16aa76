// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package inject

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultName is the name a [Plugin] reports to its host.
	DefaultName = "inject"

	// DefaultMIME is the content type files are served with if they do not
	// have their own.
	DefaultMIME = "text/plain"
)

// ErrorHandlerFunc handles errors that occur while serving a file.
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)

// Option configures a [Plugin].
type Option func(*Plugin)

// WithName sets the name the plugin reports to its host.
func WithName(name string) Option {
	return func(p *Plugin) {
		p.name = name
	}
}

// WithLogger sets the logger. By default [slog.Default] is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Plugin) {
		p.logger = logger
	}
}

// WithTimeout limits the time a single file may take to build. Zero means no
// limit, which is the default.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Plugin) {
		p.timeout = timeout
	}
}

// WithConcurrency limits the number of files [Plugin.BuildEnd] builds at the
// same time. Zero or less means no limit, which is the default. Use 1 for
// producers that share state that is not safe for concurrent use.
func WithConcurrency(limit int) Option {
	return func(p *Plugin) {
		p.concurrency = limit
	}
}

// WithDefaultMIME sets the content type for files without their own. The
// default is [DefaultMIME].
func WithDefaultMIME(mime string) Option {
	return func(p *Plugin) {
		p.defaultMIME = mime
	}
}

// WithErrorHandler sets the handler for errors that occur while serving a
// file. By default the error is logged and answered with status 500.
func WithErrorHandler(fn ErrorHandlerFunc) Option {
	return func(p *Plugin) {
		p.errorHandler = fn
	}
}

// Plugin injects virtual files into the output of a build and serves them
// from a development server.
//
// Create a new instance with [New]. Hosts call [Plugin.BuildEnd] once per
// build and [Plugin.ConfigureServer] or [Plugin.Middleware] once per server.
type Plugin struct {
	name         string
	entries      []*Entry
	logger       *slog.Logger
	timeout      time.Duration
	concurrency  int
	defaultMIME  string
	errorHandler ErrorHandlerFunc
}

// New creates a new [Plugin] for the given files.
//
// The files are not validated here. Invalid files fail once they are built.
func New(files []*VirtualFile, opts ...Option) *Plugin {
	plugin := &Plugin{
		name:        DefaultName,
		logger:      slog.Default(),
		defaultMIME: DefaultMIME,
	}

	for _, opt := range opts {
		opt(plugin)
	}

	if plugin.errorHandler == nil {
		plugin.errorHandler = plugin.logError
	}

	plugin.entries = make([]*Entry, len(files))
	for idx, file := range files {
		plugin.entries[idx] = &Entry{
			index:   idx,
			file:    file,
			timeout: plugin.timeout,
			logger:  plugin.logger,
		}
	}

	return plugin
}

// Name returns the name the plugin reports to its host.
func (p *Plugin) Name() string {
	return p.name
}

// Entries returns the entries of all files in the order they were given.
func (p *Plugin) Entries() []*Entry {
	return append([]*Entry(nil), p.entries...)
}

// BuildEnd builds all files and emits them as assets with the given
// [Emitter]. Hosts call it once per build after all other build work is done.
//
// Files are built concurrently. It returns once all files are handled, even
// if some fail early. The first error is returned. Files already emitted are
// not withdrawn.
func (p *Plugin) BuildEnd(ctx context.Context, emitter Emitter) error {
	// No shared context: siblings of a failing file keep running.
	eg := errgroup.Group{}
	if p.concurrency > 0 {
		eg.SetLimit(p.concurrency)
	}

	for _, entry := range p.entries {
		eg.Go(func() error {
			return emit(ctx, entry, emitter)
		})
	}

	err := eg.Wait()
	if err != nil {
		return err //nolint:wrapcheck
	}

	p.logger.Debug("Emitted virtual files", slog.Int("count", len(p.entries)))

	return nil
}

func emit(ctx context.Context, entry *Entry, emitter Emitter) error {
	payload, err := entry.Build(ctx)
	if err != nil {
		return err
	}

	err = emitter.EmitFile(ctx, Asset{
		FileName: entry.file.Name,
		Source:   payload,
	})
	if err != nil {
		return fmt.Errorf("emit %s: %w", entry.file.Name, err)
	}

	return nil
}
