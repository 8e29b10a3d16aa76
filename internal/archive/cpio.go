// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: MIT

package archive

import (
	"io"
	"io/fs"

	"github.com/cavaliergopher/cpio"
)

const numLinks = 2

var _ Writer = (*CPIOWriter)(nil)

// CPIOWriter implements [Writer] for [cpio.Writer].
type CPIOWriter struct {
	cpioWriter *cpio.Writer
}

// NewCPIOWriter creates a new archive writer.
func NewCPIOWriter(w io.Writer) *CPIOWriter {
	return &CPIOWriter{cpio.NewWriter(w)}
}

// Close writes the trailer and flushes the data to the underlying
// [io.Writer].
func (w *CPIOWriter) Close() error {
	err := w.cpioWriter.Close()
	if err != nil {
		return &Error{Op: "close", Err: err}
	}

	return nil
}

// WriteFile adds the given file at the given path to the archive. The root
// directory "." is skipped, as the archive is extracted into an existing
// directory.
func (w *CPIOWriter) WriteFile(path string, file fs.File) error {
	if path == "." {
		return nil
	}

	info, err := file.Stat()
	if err != nil {
		return &Error{Op: "stat", Path: path, Err: err}
	}

	switch info.Mode().Type() {
	case fs.ModeDir:
		return w.writeDirectory(path, info.Mode().Perm())
	case 0:
		return w.writeRegular(path, file, info)
	default:
		return &Error{Op: "write", Path: path, Err: ErrUnsupportedFileType}
	}
}

func (w *CPIOWriter) writeHeader(hdr *cpio.Header) error {
	err := w.cpioWriter.WriteHeader(hdr)
	if err != nil {
		return &Error{Op: "write header", Path: hdr.Name, Err: err}
	}

	return nil
}

func (w *CPIOWriter) writeDirectory(path string, perm fs.FileMode) error {
	header := &cpio.Header{
		Name:  path,
		Mode:  cpio.TypeDir | cpio.FileMode(perm),
		Links: numLinks,
	}

	return w.writeHeader(header)
}

func (w *CPIOWriter) writeRegular(path string, file fs.File, info fs.FileInfo) error {
	header := &cpio.Header{
		Name:  path,
		Mode:  cpio.TypeReg | cpio.FileMode(info.Mode().Perm()),
		Size:  info.Size(),
		Links: 1,
	}

	err := w.writeHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(w.cpioWriter, file)
	if err != nil {
		return &Error{Op: "write body", Path: path, Err: err}
	}

	return nil
}
