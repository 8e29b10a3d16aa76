// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package inject

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingFile is the reason for a [ConfigurationError] if there is no
	// [VirtualFile] at an index.
	ErrMissingFile = errors.New("expected object")

	// ErrMissingField is the reason for a [ConfigurationError] if a
	// [VirtualFile] lacks its name or its content.
	ErrMissingField = errors.New(`expected "name" and "content" to be set`)
)

// ConfigurationError is returned if a [VirtualFile] is malformed.
type ConfigurationError struct {
	// Index is the position of the file in the list given to [New].
	Index int
	// Name is the name of the file, if any.
	Name string
	// Err is the reason.
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("virtual file #%d: %v", e.Index, e.Err)
	}

	return fmt.Sprintf("virtual file #%d (%s): %v", e.Index, e.Name, e.Err)
}

func (*ConfigurationError) Is(other error) bool {
	_, ok := other.(*ConfigurationError)
	return ok
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// UnsupportedContentTypeError is returned if the content of a [VirtualFile]
// resolves to a value that is neither text, nor bytes, nor text fragments.
type UnsupportedContentTypeError struct {
	// Name is the name of the file.
	Name string
	// Type is the Go type of the resolved value.
	Type string
}

func (e *UnsupportedContentTypeError) Error() string {
	return fmt.Sprintf(
		"unknown output type %s for injected file %q: need []string, string or []byte",
		e.Type,
		e.Name,
	)
}

func (*UnsupportedContentTypeError) Is(other error) bool {
	_, ok := other.(*UnsupportedContentTypeError)
	return ok
}

// ProducerError wraps errors returned by a [Producer].
type ProducerError struct {
	Index int
	Name  string
	Err   error
}

func (e *ProducerError) Error() string {
	return fmt.Sprintf("produce virtual file #%d (%s): %v", e.Index, e.Name, e.Err)
}

func (*ProducerError) Is(other error) bool {
	_, ok := other.(*ProducerError)
	return ok
}

func (e *ProducerError) Unwrap() error {
	return e.Err
}
