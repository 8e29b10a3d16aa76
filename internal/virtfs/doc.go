// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package virtfs provides an in-memory file tree for emitted build assets.
// It implements [io/fs.FS], [io/fs.ReadDirFS] and [io/fs.ReadFileFS], so the
// tree can be written to a directory or an archive afterwards.
//
// Regular files hold their payload directly. Parent directories are created
// as needed when files are written.
package virtfs
