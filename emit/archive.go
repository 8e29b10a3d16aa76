// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package emit

import (
	"fmt"
	"io"
	"io/fs"

	"github.com/aibor/inject/internal/archive"
	"github.com/spf13/afero"
)

// WriteArchive writes all files of the given [fs.FS] as CPIO archive in the
// "newc" format into the given writer.
func WriteArchive(fsys fs.FS, writer io.Writer) error {
	archiveWriter := archive.NewCPIOWriter(writer)

	err := archive.WriteFS(fsys, archiveWriter)
	if err != nil {
		return fmt.Errorf("write archive: %w", err)
	}

	err = archiveWriter.Close()
	if err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	return nil
}

// WriteArchiveFile writes all files of the given [fs.FS] as CPIO archive into
// the named file of the given [afero.Fs]. The file is removed if writing
// fails.
func WriteArchiveFile(fsys fs.FS, dest afero.Fs, name string) error {
	file, err := dest.Create(name)
	if err != nil {
		return fmt.Errorf("create archive file: %w", err)
	}
	defer file.Close()

	err = WriteArchive(fsys, file)
	if err != nil {
		_ = dest.Remove(name)
		return err
	}

	return nil
}
