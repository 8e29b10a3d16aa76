// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package virtfs

import (
	"bytes"
	"io"
	"io/fs"
	"maps"
	"path"
	"slices"
	"time"
)

type file interface {
	open(entry dirEntry) fs.File
	mode() fs.FileMode
	size() int64
}

var (
	_ fs.FileInfo = (*fileInfo)(nil)
	_ fs.DirEntry = (*fileInfo)(nil)
	_ fs.DirEntry = (*dirEntry)(nil)
)

type dirEntry struct {
	name string
	file file
}

func (e *dirEntry) Name() string      { return path.Base(e.name) }
func (e *dirEntry) Type() fs.FileMode { return e.file.mode().Type() }
func (e *dirEntry) IsDir() bool       { return e.file.mode().IsDir() }
func (e *dirEntry) String() string    { return fs.FormatDirEntry(e) }

func (e *dirEntry) Info() (fs.FileInfo, error) {
	return e.info(), nil
}

func (e *dirEntry) info() *fileInfo {
	return &fileInfo{dirEntry: *e}
}

type fileInfo struct {
	dirEntry
}

func (i *fileInfo) Size() int64       { return i.file.size() }
func (i *fileInfo) Mode() fs.FileMode { return i.file.mode() }
func (*fileInfo) ModTime() time.Time  { return time.Time{} }
func (i *fileInfo) Sys() any          { return nil }
func (i *fileInfo) String() string    { return fs.FormatFileInfo(i) }

var (
	_ fs.File        = (*openFile)(nil)
	_ fs.ReadDirFile = (*openFile)(nil)
)

type openFile struct {
	info    *fileInfo
	reader  io.Reader
	entries []fs.DirEntry
	offset  int
}

// Stat implements [fs.File].
func (f *openFile) Stat() (fs.FileInfo, error) {
	return f.info, nil
}

// Read implements [fs.File].
func (f *openFile) Read(b []byte) (int, error) {
	if f.reader == nil {
		return 0, &PathError{Op: "read", Path: f.info.name, Err: ErrFileIsDir}
	}

	return f.reader.Read(b) //nolint:wrapcheck
}

// Close implements [fs.File].
func (*openFile) Close() error {
	return nil
}

// ReadDir implements [fs.ReadDirFile].
func (f *openFile) ReadDir(count int) ([]fs.DirEntry, error) {
	if !f.info.IsDir() {
		return nil, &PathError{Op: "readdir", Path: f.info.name, Err: ErrFileNotDir}
	}

	start := f.offset
	end := len(f.entries)
	available := end - start

	if available == 0 && count > 0 {
		return nil, io.EOF
	}

	if count > 0 && available > count {
		end = start + count
	}

	f.offset = end

	return f.entries[start:end], nil
}

var _ file = regularFile(nil)

type regularFile []byte

func (regularFile) mode() fs.FileMode {
	return fileMode
}

func (f regularFile) size() int64 {
	return int64(len(f))
}

func (f regularFile) open(entry dirEntry) fs.File {
	return &openFile{
		info:   entry.info(),
		reader: bytes.NewReader(f),
	}
}

var _ file = (*directory)(nil)

type directory map[string]file

func (*directory) mode() fs.FileMode {
	return dirMode | fs.ModeDir
}

func (*directory) size() int64 {
	return 0
}

func (d *directory) open(entry dirEntry) fs.File {
	return &openFile{
		info:    entry.info(),
		entries: d.entries(),
	}
}

func (d *directory) entries() []fs.DirEntry {
	entries := make([]fs.DirEntry, 0, len(*d))

	for _, name := range slices.Sorted(maps.Keys(*d)) {
		entries = append(entries, &dirEntry{
			name: name,
			file: (*d)[name],
		})
	}

	return entries
}

func (d *directory) add(name string, file file) error {
	if name == "." || name == "" {
		return ErrFileInvalid
	}

	_, exists := (*d)[name]
	if exists {
		return ErrFileExist
	}

	(*d)[name] = file

	return nil
}
