// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package inject

import "context"

// Asset is a single output file registered with an [Emitter].
type Asset struct {
	FileName string
	Source   []byte
}

// Emitter registers output files of a build.
//
// EmitFile is called concurrently by [Plugin.BuildEnd], so implementations
// must be safe for concurrent use.
type Emitter interface {
	EmitFile(ctx context.Context, asset Asset) error
}

// EmitterFunc is an adapter to allow the use of ordinary functions as
// [Emitter].
type EmitterFunc func(ctx context.Context, asset Asset) error

var _ Emitter = EmitterFunc(nil)

// EmitFile calls f(ctx, asset).
func (f EmitterFunc) EmitFile(ctx context.Context, asset Asset) error {
	return f(ctx, asset)
}
