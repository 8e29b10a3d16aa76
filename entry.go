// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package inject

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
)

// Entry is a [VirtualFile] attached to a [Plugin]. It builds the file's
// payload with the plugin's settings.
type Entry struct {
	index   int
	file    *VirtualFile
	timeout time.Duration
	logger  *slog.Logger
}

// Index returns the position of the file in the list given to [New].
func (e *Entry) Index() int {
	return e.index
}

// File returns the underlying [VirtualFile]. It may be nil.
func (e *Entry) File() *VirtualFile {
	return e.file
}

// Name returns the name of the file, or the empty string if there is no file.
func (e *Entry) Name() string {
	if e.file == nil {
		return ""
	}

	return e.file.Name
}

// Build resolves the payload of the file. See [Resolve].
//
// Nothing is cached. Each call resolves the content again. If the plugin has
// a timeout set, Build fails with a [ProducerError] wrapping
// [context.DeadlineExceeded] once it expires, whether or not the [Producer]
// observes its context.
func (e *Entry) Build(ctx context.Context) ([]byte, error) {
	start := time.Now()

	payload, err := e.resolve(ctx)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("Built virtual file",
		slog.String("name", e.file.Name),
		slog.String("size", humanize.Bytes(uint64(len(payload)))),
		slog.Duration("duration", time.Since(start)),
	)

	return payload, nil
}

type result struct {
	payload []byte
	err     error
}

func (e *Entry) resolve(ctx context.Context) ([]byte, error) {
	if e.timeout <= 0 {
		return Resolve(ctx, e.index, e.file)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	// Buffered, so an abandoned producer can still finish.
	done := make(chan result, 1)

	go func() {
		payload, err := Resolve(ctx, e.index, e.file)
		done <- result{payload: payload, err: err}
	}()

	select {
	case res := <-done:
		return res.payload, res.err
	case <-ctx.Done():
		return nil, &ProducerError{Index: e.index, Name: e.Name(), Err: ctx.Err()}
	}
}
