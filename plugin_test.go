// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package inject_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aibor/inject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEmitter struct {
	mu     sync.Mutex
	assets map[string]string
	err    error
}

func (e *recordingEmitter) EmitFile(_ context.Context, asset inject.Asset) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.err != nil {
		return e.err
	}

	if e.assets == nil {
		e.assets = make(map[string]string)
	}

	e.assets[asset.FileName] = string(asset.Source)

	return nil
}

func TestPluginBuildEnd(t *testing.T) {
	plugin := inject.New([]*inject.VirtualFile{
		{Name: "a.txt", Content: inject.Text("hello")},
		{Name: "b.js", Content: produce("var x=1;")},
		{Name: "c.txt", Content: inject.Lines{"line1", "line2"}},
		{Name: "dir/d.bin", Content: inject.Bytes{0x01}},
	})

	emitter := &recordingEmitter{}
	err := plugin.BuildEnd(t.Context(), emitter)
	require.NoError(t, err)

	expected := map[string]string{
		"a.txt":     "hello",
		"b.js":      "var x=1;",
		"c.txt":     "line1\nline2",
		"dir/d.bin": "\x01",
	}
	assert.Equal(t, expected, emitter.assets)
}

func TestPluginBuildEndEmpty(t *testing.T) {
	emitter := &recordingEmitter{}
	err := inject.New(nil).BuildEnd(t.Context(), emitter)
	require.NoError(t, err)
	assert.Empty(t, emitter.assets)
}

func TestPluginBuildEndFails(t *testing.T) {
	t.Run("invalid file", func(t *testing.T) {
		plugin := inject.New([]*inject.VirtualFile{
			{Name: "a.txt", Content: inject.Text("hello")},
			{Content: inject.Text("x")},
		})

		emitter := &recordingEmitter{}
		err := plugin.BuildEnd(t.Context(), emitter)
		require.ErrorIs(t, err, &inject.ConfigurationError{})
		assert.ErrorContains(t, err, "#1")

		// Valid siblings still settle.
		assert.Equal(t, map[string]string{"a.txt": "hello"}, emitter.assets)
	})

	t.Run("unsupported content", func(t *testing.T) {
		plugin := inject.New([]*inject.VirtualFile{
			{Name: "n.txt", Content: produce(1)},
		})

		err := plugin.BuildEnd(t.Context(), &recordingEmitter{})
		require.ErrorIs(t, err, &inject.UnsupportedContentTypeError{})
	})

	t.Run("emitter", func(t *testing.T) {
		plugin := inject.New([]*inject.VirtualFile{
			{Name: "a.txt", Content: inject.Text("hello")},
		})

		err := plugin.BuildEnd(t.Context(), &recordingEmitter{err: assert.AnError})
		require.ErrorIs(t, err, assert.AnError)
		assert.ErrorContains(t, err, "emit a.txt")
	})
}

func TestPluginBuildEndConcurrency(t *testing.T) {
	var running, peak atomic.Int32

	producer := inject.Producer(func(context.Context, *inject.VirtualFile) (any, error) {
		current := running.Add(1)
		defer running.Add(-1)

		for {
			old := peak.Load()
			if current <= old || peak.CompareAndSwap(old, current) {
				break
			}
		}

		time.Sleep(5 * time.Millisecond)

		return "x", nil
	})

	files := make([]*inject.VirtualFile, 0, 5)
	for _, name := range []string{"1", "2", "3", "4", "5"} {
		files = append(files, &inject.VirtualFile{Name: name, Content: producer})
	}

	emitter := &recordingEmitter{}
	err := inject.New(files, inject.WithConcurrency(1)).BuildEnd(t.Context(), emitter)
	require.NoError(t, err)

	assert.Len(t, emitter.assets, 5)
	assert.Equal(t, int32(1), peak.Load())
}

func TestPluginBuildEndTimeout(t *testing.T) {
	plugin := inject.New([]*inject.VirtualFile{
		{
			Name: "slow.txt",
			Content: inject.Producer(func(ctx context.Context, _ *inject.VirtualFile) (any, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			}),
		},
	}, inject.WithTimeout(10*time.Millisecond))

	err := plugin.BuildEnd(t.Context(), &recordingEmitter{})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.ErrorIs(t, err, &inject.ProducerError{})
}

func TestPluginBuildEndTimeoutIgnoredContext(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	plugin := inject.New([]*inject.VirtualFile{
		{
			Name: "stuck.txt",
			Content: inject.Producer(func(context.Context, *inject.VirtualFile) (any, error) {
				<-release
				return "late", nil
			}),
		},
	}, inject.WithTimeout(10*time.Millisecond))

	emitter := &recordingEmitter{}
	start := time.Now()

	err := plugin.BuildEnd(t.Context(), emitter)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.ErrorIs(t, err, &inject.ProducerError{})
	assert.ErrorContains(t, err, "produce virtual file #0 (stuck.txt)")
	assert.Less(t, time.Since(start), time.Second)
	assert.Empty(t, emitter.assets)
}

func TestPluginBuildsEveryTime(t *testing.T) {
	var calls atomic.Int32

	plugin := inject.New([]*inject.VirtualFile{
		{
			Name: "count.txt",
			Content: inject.Producer(func(context.Context, *inject.VirtualFile) (any, error) {
				calls.Add(1)
				return "x", nil
			}),
		},
	})

	for range 3 {
		require.NoError(t, plugin.BuildEnd(t.Context(), &recordingEmitter{}))
	}

	assert.Equal(t, int32(3), calls.Load())
}

func TestPluginEntries(t *testing.T) {
	files := []*inject.VirtualFile{
		{Name: "a.txt", Content: inject.Text("a")},
		nil,
		{Name: "b.txt", Content: inject.Text("b")},
	}

	plugin := inject.New(files, inject.WithName("custom"))
	assert.Equal(t, "custom", plugin.Name())

	entries := plugin.Entries()
	require.Len(t, entries, 3)

	for idx, entry := range entries {
		assert.Equal(t, idx, entry.Index())
		assert.Same(t, files[idx], entry.File())
	}

	assert.Equal(t, "a.txt", entries[0].Name())
	assert.Empty(t, entries[1].Name())

	_, err := entries[1].Build(t.Context())
	require.ErrorIs(t, err, inject.ErrMissingFile)

	payload, err := entries[2].Build(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "b", string(payload))
}

func TestPluginDefaultName(t *testing.T) {
	assert.Equal(t, inject.DefaultName, inject.New(nil).Name())
}
