// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package emit_test

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/aibor/inject"
	"github.com/aibor/inject/emit"
	"github.com/cavaliergopher/cpio"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlugin() *inject.Plugin {
	return inject.New([]*inject.VirtualFile{
		{Name: "a.txt", Content: inject.Text("hello")},
		{Name: "assets/b.js", Content: inject.Lines{"var x=1;", "var y=2;"}},
		{Name: "assets/img/c.bin", Content: inject.Bytes{0x00, 0x01, 0x02}},
	})
}

func TestMemory(t *testing.T) {
	var memory emit.Memory

	err := testPlugin().BuildEnd(t.Context(), &memory)
	require.NoError(t, err)

	expected := map[string]string{
		"a.txt":            "hello",
		"assets/b.js":      "var x=1;\nvar y=2;",
		"assets/img/c.bin": "\x00\x01\x02",
	}

	for name, content := range expected {
		actual, err := fs.ReadFile(memory.FS(), name)
		require.NoError(t, err, name)
		assert.Equal(t, content, string(actual), name)
	}

	count, size := memory.Stats()
	assert.Equal(t, 3, count)
	assert.Equal(t, int64(25), size)
}

func TestMemoryDuplicate(t *testing.T) {
	plugin := inject.New([]*inject.VirtualFile{
		{Name: "a.txt", Content: inject.Text("first")},
		{Name: "a.txt", Content: inject.Text("second")},
	}, inject.WithConcurrency(1))

	var memory emit.Memory

	err := plugin.BuildEnd(t.Context(), &memory)
	require.ErrorIs(t, err, fs.ErrExist)

	count, _ := memory.Stats()
	assert.Equal(t, 1, count)
}

func TestMemoryEmptyFS(t *testing.T) {
	var memory emit.Memory

	entries, err := fs.ReadDir(memory.FS(), ".")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dir := emit.NewDir(fsys, "dist")

	err := testPlugin().BuildEnd(t.Context(), dir)
	require.NoError(t, err)

	content, err := afero.ReadFile(fsys, filepath.Join("dist", "assets", "b.js"))
	require.NoError(t, err)
	assert.Equal(t, "var x=1;\nvar y=2;", string(content))

	info, err := fsys.Stat(filepath.Join("dist", "assets", "img"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDirOverwrites(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, filepath.Join("dist", "a.txt"), []byte("old"), 0o644))

	err := testPlugin().BuildEnd(t.Context(), emit.NewDir(fsys, "dist"))
	require.NoError(t, err)

	content, err := afero.ReadFile(fsys, filepath.Join("dist", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestDirRejectsEscapingNames(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"../outside.txt", "/abs.txt", "dir/"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			plugin := inject.New([]*inject.VirtualFile{
				{Name: name, Content: inject.Text("x")},
			})

			err := plugin.BuildEnd(t.Context(), emit.NewDir(afero.NewMemMapFs(), "dist"))
			require.ErrorIs(t, err, fs.ErrInvalid)
		})
	}
}

func TestDirCopyFS(t *testing.T) {
	var memory emit.Memory
	require.NoError(t, testPlugin().BuildEnd(t.Context(), &memory))

	fsys := afero.NewMemMapFs()
	err := emit.NewDir(fsys, "out").CopyFS(t.Context(), memory.FS())
	require.NoError(t, err)

	content, err := afero.ReadFile(fsys, filepath.Join("out", "assets", "img", "c.bin"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01, 0x02}, content)
}

func TestWriteArchive(t *testing.T) {
	var memory emit.Memory
	require.NoError(t, testPlugin().BuildEnd(t.Context(), &memory))

	var buf bytes.Buffer
	require.NoError(t, emit.WriteArchive(memory.FS(), &buf))

	type entry struct {
		name string
		typ  fs.FileMode
		body string
	}

	reader := cpio.NewReader(&buf)
	actual := []entry{}

	for {
		hdr, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		require.NoError(t, err)

		body, err := io.ReadAll(reader)
		require.NoError(t, err)

		actual = append(actual, entry{
			name: hdr.Name,
			typ:  hdr.FileInfo().Mode().Type(),
			body: string(body),
		})
	}

	expected := []entry{
		{"a.txt", 0, "hello"},
		{"assets", fs.ModeDir, ""},
		{"assets/b.js", 0, "var x=1;\nvar y=2;"},
		{"assets/img", fs.ModeDir, ""},
		{"assets/img/c.bin", 0, "\x00\x01\x02"},
	}

	assert.Equal(t, expected, actual)
}

func TestWriteArchiveFile(t *testing.T) {
	var memory emit.Memory
	require.NoError(t, testPlugin().BuildEnd(t.Context(), &memory))

	fsys := afero.NewMemMapFs()
	require.NoError(t, emit.WriteArchiveFile(memory.FS(), fsys, "assets.cpio"))

	info, err := fsys.Stat("assets.cpio")
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
