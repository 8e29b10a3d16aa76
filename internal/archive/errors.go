// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFileType is returned if a file is neither a directory nor a
// regular file.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// Error wraps errors that occur while writing an archive.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("archive %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Is(other error) bool {
	otherErr, ok := other.(*Error)
	if !ok {
		return false
	}

	return otherErr.Op == "" || otherErr.Op == e.Op
}

func (e *Error) Unwrap() error {
	return e.Err
}
