// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: MIT

package archive

import (
	"io/fs"
)

// Writer defines the archive writer interface.
type Writer interface {
	WriteFile(path string, file fs.File) error
}

// WriteFS writes all files of the given [fs.FS] into the given [Writer] in
// lexical order, starting with the root directory ".".
func WriteFS(fsys fs.FS, writer Writer) error {
	return fs.WalkDir(fsys, ".", func(path string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		file, err := fsys.Open(path)
		if err != nil {
			return err //nolint:wrapcheck
		}
		defer file.Close()

		return writer.WriteFile(path, file)
	})
}
