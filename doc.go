// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package inject provides a build tool plugin that injects generated files
// into the output of a build and serves them from a development server.
//
// Each [VirtualFile] has a name and a [Content], which is either a literal
// ([Text], [Bytes], [Lines]) or a [Producer] that computes the payload each
// time the file is built. Create a [Plugin] with [New] and hand it to the
// host:
//
//	plugin := inject.New([]*inject.VirtualFile{
//	    {Name: "version.txt", Content: inject.Text(version)},
//	    {Name: "build.json", Content: inject.Producer(buildInfo), MIME: "application/json"},
//	})
//
//	// Once per build.
//	err := plugin.BuildEnd(ctx, emitter)
//
//	// Once per development server.
//	router := chi.NewRouter()
//	plugin.ConfigureServer(router)
//	router.Handle("/*", staticFiles)
//
// Files are not cached. Every build and every request resolves the content
// again.
package inject
