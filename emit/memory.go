// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package emit

import (
	"context"
	"io/fs"
	"sync"

	"github.com/aibor/inject"
	"github.com/aibor/inject/internal/virtfs"
)

var _ inject.Emitter = (*Memory)(nil)

// Memory is an [inject.Emitter] that collects assets in memory.
//
// Use [Memory.FS] to access the emitted files. The zero value is ready to
// use.
type Memory struct {
	mu    sync.Mutex
	fsys  *virtfs.FS
	count int
	size  int64
}

// EmitFile adds the asset to the file tree. Parent directories are created as
// needed. It fails with [fs.ErrExist] if a file of the same name was emitted
// already.
func (m *Memory) EmitFile(_ context.Context, asset inject.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fsys == nil {
		m.fsys = virtfs.New()
	}

	err := m.fsys.WriteFile(asset.FileName, asset.Source)
	if err != nil {
		return err //nolint:wrapcheck
	}

	m.count++
	m.size += int64(len(asset.Source))

	return nil
}

// FS returns the emitted files. It must not be used while files are still
// emitted.
func (m *Memory) FS() fs.FS {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fsys == nil {
		m.fsys = virtfs.New()
	}

	return m.fsys
}

// Stats returns the number of emitted files and their total size in bytes.
func (m *Memory) Stats() (int, int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.count, m.size
}
