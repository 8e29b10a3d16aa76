// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package echoinject serves the files of an [inject.Plugin] from an echo
// server.
package echoinject

import (
	"net/http"

	"github.com/aibor/inject"
	"github.com/labstack/echo/v4"
)

// Middleware returns an echo middleware that serves the files of the given
// plugin. Requests for any other path are passed to the next handler.
//
// Errors that occur while building a file are returned, so they are handled
// by the echo server's error handler.
func Middleware(plugin *inject.Plugin) echo.MiddlewareFunc {
	routes := plugin.Routes()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			entry, exists := routes.Match(c.Request())
			if !exists {
				return next(c)
			}

			payload, err := entry.Build(c.Request().Context())
			if err != nil {
				return err //nolint:wrapcheck
			}

			return c.Blob(http.StatusOK, routes.ContentType(entry), payload)
		}
	}
}
