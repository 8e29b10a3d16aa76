// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aibor/inject"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

func newServeCommand(opts *options) *cobra.Command {
	var addr, rootDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve all virtual files from a development server",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plugin, err := opts.newPlugin()
			if err != nil {
				return err
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           newServeHandler(plugin, opts.fs, rootDir),
				ReadHeaderTimeout: readHeaderTimeout,
			}

			return serve(cmd.Context(), server)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&addr, "addr", "localhost:8080",
		"address to listen on")
	flags.StringVar(&rootDir, "root", "",
		"directory to serve all other paths from")

	return cmd
}

// newServeHandler creates the router. Virtual files take precedence over
// files in rootDir.
func newServeHandler(plugin *inject.Plugin, fsys afero.Fs, rootDir string) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(requestLogger)

	plugin.ConfigureServer(router)

	var fallback http.Handler = http.NotFoundHandler()
	if rootDir != "" {
		rootFS := afero.NewIOFS(afero.NewBasePathFs(fsys, rootDir))
		fallback = http.FileServerFS(rootFS)
	}

	router.Handle("/*", fallback)

	return router
}

func serve(ctx context.Context, server *http.Server) error {
	errCh := make(chan error, 1)

	go func() {
		slog.Info("Serving virtual files", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}

	return nil
}

type statusRecorder struct {
	http.ResponseWriter

	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}

	n, err := r.ResponseWriter.Write(p)
	r.bytes += n

	return n, err //nolint:wrapcheck
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}

		slog.Debug("Request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Int("bytes", rec.bytes),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
