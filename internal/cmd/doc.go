// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd provides the CLI command entry point for inject. It loads a
// manifest of virtual files and either builds them into a directory or
// archive, or serves them from a development server.
package cmd
