// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package emit

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/aibor/inject"
	"github.com/spf13/afero"
)

const (
	fileMode = 0o644
	dirMode  = 0o755
)

var _ inject.Emitter = (*Dir)(nil)

// Dir is an [inject.Emitter] that writes assets into a directory of an
// [afero.Fs].
//
// Existing files are overwritten.
type Dir struct {
	fs   afero.Fs
	base string
}

// NewDir creates a new [Dir] that writes below base on the given [afero.Fs].
// Use [afero.NewOsFs] for the real file system.
func NewDir(fsys afero.Fs, base string) *Dir {
	return &Dir{
		fs:   fsys,
		base: base,
	}
}

// EmitFile writes the asset into the directory. Parent directories are
// created as needed. Names that would escape the directory are rejected with
// [fs.ErrInvalid].
func (d *Dir) EmitFile(_ context.Context, asset inject.Asset) error {
	path, err := d.path(asset.FileName)
	if err != nil {
		return err
	}

	err = d.fs.MkdirAll(filepath.Dir(path), dirMode)
	if err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	err = afero.WriteFile(d.fs, path, asset.Source, fileMode)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// CopyFS writes all regular files of the given [fs.FS] into the directory.
func (d *Dir) CopyFS(ctx context.Context, fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil || !entry.Type().IsRegular() {
			return err
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err //nolint:wrapcheck
		}

		return d.EmitFile(ctx, inject.Asset{FileName: path, Source: data})
	})
}

func (d *Dir) path(name string) (string, error) {
	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) || strings.HasSuffix(name, "/") {
		return "", &fs.PathError{Op: "emit", Path: name, Err: fs.ErrInvalid}
	}

	return filepath.Join(d.base, local), nil
}
