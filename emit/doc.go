// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package emit provides [github.com/aibor/inject.Emitter] implementations
// for hosts that do not bring their own asset pipeline.
//
// [Memory] collects assets in memory and exposes them as [io/fs.FS]. [Dir]
// writes assets into a directory. [WriteArchive] writes any [io/fs.FS], like
// the one of [Memory], as CPIO archive.
package emit
