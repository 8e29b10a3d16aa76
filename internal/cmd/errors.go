// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCommand is returned if no subcommand is given.
	ErrNoCommand = errors.New("no command given")

	// ErrNoOutput is returned if the build command has nothing to write to.
	ErrNoOutput = errors.New("neither --out nor --archive given")
)

// UsageError wraps errors that are caused by wrong usage of the command.
type UsageError struct {
	err error
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage: %v", e.err)
}

func (*UsageError) Is(other error) bool {
	_, ok := other.(*UsageError)
	return ok
}

func (e *UsageError) Unwrap() error {
	return e.err
}
