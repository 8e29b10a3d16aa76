// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package inject

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
)

// MiddlewareUser is a server that middlewares can be registered with, like
// [github.com/go-chi/chi/v5.Router].
type MiddlewareUser interface {
	Use(middlewares ...func(http.Handler) http.Handler)
}

// Routes maps request paths to entries. It is immutable once created.
type Routes struct {
	entries     map[string]*Entry
	defaultMIME string
}

// Routes creates the route table for all entries. Each entry is routed at its
// name prefixed with "/", in its escaped form. If names are duplicated, the
// last entry wins. Nil files are not routed.
func (p *Plugin) Routes() *Routes {
	routes := &Routes{
		entries:     make(map[string]*Entry, len(p.entries)),
		defaultMIME: p.defaultMIME,
	}

	for _, entry := range p.entries {
		if entry.file == nil {
			continue
		}

		routes.entries[routePath(entry.file.Name)] = entry
	}

	return routes
}

// Match returns the entry the request is routed to. The request path must be
// equal to the route as sent, without decoding, and the request must not have
// a query. So "/a%2Etxt" does not match the route "/a.txt".
func (r *Routes) Match(req *http.Request) (*Entry, bool) {
	if req.URL == nil || req.URL.RawQuery != "" || req.URL.ForceQuery {
		return nil, false
	}

	entry, exists := r.entries[req.URL.EscapedPath()]

	return entry, exists
}

func routePath(name string) string {
	return (&url.URL{Path: "/" + name}).EscapedPath()
}

// ContentType returns the content type the given entry is served with.
func (r *Routes) ContentType(entry *Entry) string {
	if entry.file != nil && entry.file.MIME != "" {
		return entry.file.MIME
	}

	return r.defaultMIME
}

// Len returns the number of routes.
func (r *Routes) Len() int {
	return len(r.entries)
}

// Middleware returns a middleware that serves the files. Requests for any
// other path are passed to next.
//
// The route table is created once, when Middleware is called. Each request
// builds its file again. Errors are passed to the error handler set with
// [WithErrorHandler].
func (p *Plugin) Middleware(next http.Handler) http.Handler {
	routes := p.Routes()

	p.logger.Debug("Serving virtual files", slog.Int("routes", routes.Len()))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry, exists := routes.Match(r)
		if !exists {
			next.ServeHTTP(w, r)
			return
		}

		payload, err := entry.Build(r.Context())
		if err != nil {
			p.errorHandler(w, r, err)
			return
		}

		w.Header().Set("Content-Type", routes.ContentType(entry))
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		w.WriteHeader(http.StatusOK)

		_, err = w.Write(payload)
		if err != nil {
			p.logger.Warn("Failed to write virtual file response",
				slog.String("path", r.URL.Path),
				slog.Any("error", err),
			)
		}
	})
}

// ConfigureServer registers the middleware returned by [Plugin.Middleware]
// with the given server.
//
// A chi router runs its middlewares only once it has at least one route. A
// router that exists only to serve virtual files needs a catch-all route,
// like a [http.NotFoundHandler] mounted at "/*".
func (p *Plugin) ConfigureServer(server MiddlewareUser) {
	server.Use(p.Middleware)
}

func (p *Plugin) logError(w http.ResponseWriter, r *http.Request, err error) {
	p.logger.Error("Failed to build virtual file",
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)

	http.Error(w, err.Error(), http.StatusInternalServerError)
}
