// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package virtfs

import (
	"io/fs"
	"path"
	"strings"
)

const (
	fileMode = 0o644
	dirMode  = 0o755
)

var (
	_ fs.FS         = (*FS)(nil)
	_ fs.ReadDirFS  = (*FS)(nil)
	_ fs.ReadFileFS = (*FS)(nil)
	_ fs.StatFS     = (*FS)(nil)
)

// FS represents a simple in-memory [fs.FS] of directories and regular files.
//
// Files are added with [FS.WriteFile]. It is not safe for concurrent use.
type FS struct {
	root directory
}

// New creates a new empty [FS].
func New() *FS {
	return &FS{
		root: make(directory),
	}
}

// Open opens the named file.
//
// It returns a [PathError] in case of errors.
func (fsys *FS) Open(name string) (fs.File, error) {
	dEntry, err := fsys.find(name)
	if err != nil {
		return nil, &PathError{Op: "open", Path: name, Err: err}
	}

	return dEntry.file.open(dEntry), nil
}

// Stat returns information about the named file.
//
// It returns a [PathError] in case of errors.
func (fsys *FS) Stat(name string) (fs.FileInfo, error) {
	dEntry, err := fsys.find(name)
	if err != nil {
		return nil, &PathError{Op: "stat", Path: name, Err: err}
	}

	return dEntry.info(), nil
}

// ReadFile returns the content of the named regular file.
//
// It returns a [PathError] in case of errors.
func (fsys *FS) ReadFile(name string) ([]byte, error) {
	dEntry, err := fsys.find(name)
	if err != nil {
		return nil, &PathError{Op: "readfile", Path: name, Err: err}
	}

	regular, isRegular := dEntry.file.(regularFile)
	if !isRegular {
		return nil, &PathError{Op: "readfile", Path: name, Err: ErrFileIsDir}
	}

	return append([]byte(nil), regular...), nil
}

// ReadDir returns the sorted entries of the named directory.
//
// It returns a [PathError] in case of errors.
func (fsys *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	dir, err := fsys.subDir(name)
	if err != nil {
		return nil, &PathError{Op: "readdir", Path: name, Err: err}
	}

	return dir.entries(), nil
}

// MkdirAll creates a directory with the given name along with all necessary
// parents.
//
// It returns a [PathError] in case of errors. If the directory exists already,
// it does nothing and returns nil.
func (fsys *FS) MkdirAll(name string) error {
	_, err := fsys.mkdirAll(clean(name))
	if err != nil {
		return &PathError{Op: "mkdir", Path: name, Err: err}
	}

	return nil
}

// WriteFile creates a new regular file with the given name and data. Missing
// parent directories are created.
//
// The data is copied. It returns a [PathError] in case of errors, with
// [ErrFileExist] if the file exists already.
func (fsys *FS) WriteFile(name string, data []byte) error {
	cleaned := clean(name)
	if cleaned == "." {
		return &PathError{Op: "write", Path: name, Err: ErrFileInvalid}
	}

	parent, err := fsys.mkdirAll(path.Dir(cleaned))
	if err != nil {
		return &PathError{Op: "write", Path: name, Err: err}
	}

	err = parent.add(path.Base(cleaned), regularFile(append([]byte(nil), data...)))
	if err != nil {
		return &PathError{Op: "write", Path: name, Err: err}
	}

	return nil
}

func (fsys *FS) mkdirAll(name string) (*directory, error) {
	dir := &fsys.root

	if name == "." {
		return dir, nil
	}

	if !fs.ValidPath(name) {
		return nil, ErrFileInvalid
	}

	for component := range strings.SplitSeq(name, "/") {
		next, exists := (*dir)[component]
		if !exists {
			next = &directory{}
			(*dir)[component] = next
		}

		subDir, isDir := next.(*directory)
		if !isDir {
			return nil, ErrFileNotDir
		}

		dir = subDir
	}

	return dir, nil
}

func (fsys *FS) subDir(name string) (*directory, error) {
	dEntry, err := fsys.find(name)
	if err != nil {
		return nil, err
	}

	dir, isDir := dEntry.file.(*directory)
	if !isDir {
		return nil, ErrFileNotDir
	}

	return dir, nil
}

func (fsys *FS) find(name string) (dirEntry, error) {
	dEntry := dirEntry{".", &fsys.root}

	if name == "." {
		return dEntry, nil
	}

	if !fs.ValidPath(name) {
		return dirEntry{}, ErrFileInvalid
	}

	for component := range strings.SplitSeq(name, "/") {
		dir, isDir := dEntry.file.(*directory)
		if !isDir {
			return dirEntry{}, ErrFileNotExist
		}

		next, exists := (*dir)[component]
		if !exists {
			return dirEntry{}, ErrFileNotExist
		}

		dEntry = dirEntry{component, next}
	}

	return dEntry, nil
}

// clean turns the given name into a valid [fs.FS] path. Leading slashes are
// removed.
func clean(name string) string {
	name = path.Clean("/" + name)
	if name == "/" {
		return "."
	}

	return strings.TrimPrefix(name, "/")
}
