// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package inject

import (
	"context"
	"strings"
)

// VirtualFile describes a single file that is injected into the build output
// and served by the development server.
type VirtualFile struct {
	// Name is the output path relative to the output root. Prefixed with "/"
	// it is also the route the file is served at.
	Name string

	// Content is the source of the file's payload.
	Content Content

	// MIME overrides the default content type used when served over HTTP.
	MIME string
}

// Content is the source of a [VirtualFile] payload. It is one of [Text],
// [Bytes], [Lines] or [Producer].
type Content interface {
	// present reports whether the content counts as given.
	present() bool
}

var (
	_ Content = Text("")
	_ Content = Bytes(nil)
	_ Content = Lines(nil)
	_ Content = Producer(nil)
)

// Text is a literal text payload.
type Text string

func (t Text) present() bool { return t != "" }

// Bytes is a literal binary payload.
type Bytes []byte

func (Bytes) present() bool { return true }

// Lines is a list of text fragments. They are joined with newlines.
type Lines []string

func (Lines) present() bool { return true }

func (l Lines) String() string {
	return strings.Join(l, "\n")
}

// Producer computes the payload of a file lazily. It is called with the
// [VirtualFile] it belongs to each time the file is built.
//
// It must return one of string, []byte, []string, [Text], [Bytes] or [Lines].
// Any other type fails the build of the file with an
// [UnsupportedContentTypeError].
type Producer func(ctx context.Context, file *VirtualFile) (any, error)

func (p Producer) present() bool { return p != nil }
