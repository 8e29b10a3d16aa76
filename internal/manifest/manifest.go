// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package manifest loads lists of virtual files from YAML documents.
//
// A manifest looks like this:
//
//	files:
//	  - name: version.txt
//	    text: v1.2.3
//	  - name: robots.txt
//	    lines: ["User-agent: *", "Disallow:"]
//	  - name: favicon.ico
//	    base64: AAABAAEAEBA...
//	    mime: image/x-icon
//	  - name: config.json
//	    file: ./config/prod.json
//	    mime: application/json
//	  - name: commit.txt
//	    command: [git, rev-parse, HEAD]
//
// Each file has exactly one content source. Sources "file" and "command" are
// read each time the file is built, relative to the manifest's directory.
package manifest

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"

	"github.com/aibor/inject"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalid is returned if the manifest does not validate.
	ErrInvalid = errors.New("invalid manifest")

	// ErrContentSource is returned if a file has no or more than one content
	// source.
	ErrContentSource = errors.New("exactly one of text, lines, base64, file or command required")
)

// Manifest is the document format.
type Manifest struct {
	Files []File `validate:"required,dive" yaml:"files"`
}

// File is a single virtual file of a [Manifest].
type File struct {
	Name    string   `validate:"required"                     yaml:"name"`
	MIME    string   `validate:"omitempty,contains=/"         yaml:"mime"`
	Text    string   `yaml:"text"`
	Lines   []string `yaml:"lines"`
	Base64  string   `validate:"omitempty,base64"             yaml:"base64"`
	File    string   `yaml:"file"`
	Command []string `validate:"omitempty,min=1,dive,required" yaml:"command"`
}

func (f *File) sources() int {
	var count int

	for _, set := range []bool{
		f.Text != "",
		f.Lines != nil,
		f.Base64 != "",
		f.File != "",
		len(f.Command) > 0,
	} {
		if set {
			count++
		}
	}

	return count
}

// Loader creates virtual files from manifests.
type Loader struct {
	// Fs is the file system manifests and "file" sources are read from.
	Fs afero.Fs

	validate *validator.Validate
}

// NewLoader creates a new [Loader] that reads from the given file system.
func NewLoader(fsys afero.Fs) *Loader {
	return &Loader{
		Fs:       fsys,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// LoadFile reads the manifest at the given path. Relative paths of "file" and
// "command" sources are resolved against the manifest's directory.
func (l *Loader) LoadFile(path string) ([]*inject.VirtualFile, error) {
	file, err := l.Fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer file.Close()

	return l.Load(file, filepath.Dir(path))
}

// Load decodes and validates a manifest from the given reader. Relative paths
// of "file" and "command" sources are resolved against baseDir.
func (l *Loader) Load(reader io.Reader, baseDir string) ([]*inject.VirtualFile, error) {
	var manifest Manifest

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	err := decoder.Decode(&manifest)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalid, err)
	}

	err = l.validate.Struct(&manifest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	files := make([]*inject.VirtualFile, 0, len(manifest.Files))

	for idx := range manifest.Files {
		file, err := l.virtualFile(&manifest.Files[idx], baseDir)
		if err != nil {
			return nil, fmt.Errorf("%w: file #%d (%s): %w",
				ErrInvalid, idx, manifest.Files[idx].Name, err)
		}

		files = append(files, file)
	}

	return files, nil
}

func (l *Loader) virtualFile(file *File, baseDir string) (*inject.VirtualFile, error) {
	if file.sources() != 1 {
		return nil, ErrContentSource
	}

	virtualFile := &inject.VirtualFile{
		Name: file.Name,
		MIME: file.MIME,
	}

	switch {
	case file.Text != "":
		virtualFile.Content = inject.Text(file.Text)
	case file.Lines != nil:
		virtualFile.Content = inject.Lines(file.Lines)
	case file.Base64 != "":
		data, err := base64.StdEncoding.DecodeString(file.Base64)
		if err != nil {
			return nil, fmt.Errorf("decode base64: %w", err)
		}

		virtualFile.Content = inject.Bytes(data)
	case file.File != "":
		virtualFile.Content = l.readFile(resolvePath(baseDir, file.File))
	default:
		virtualFile.Content = runCommand(baseDir, file.Command)
	}

	return virtualFile, nil
}

func (l *Loader) readFile(path string) inject.Producer {
	return func(context.Context, *inject.VirtualFile) (any, error) {
		data, err := afero.ReadFile(l.Fs, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		return data, nil
	}
}

func runCommand(dir string, args []string) inject.Producer {
	return func(ctx context.Context, _ *inject.VirtualFile) (any, error) {
		var stderr bytes.Buffer

		//nolint:gosec
		cmd := exec.CommandContext(ctx, args[0], args[1:]...)
		cmd.Dir = dir
		cmd.Stderr = &stderr

		output, err := cmd.Output()
		if err != nil {
			return nil, fmt.Errorf("run %s: %w: %s", args[0], err, bytes.TrimSpace(stderr.Bytes()))
		}

		return output, nil
	}
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(baseDir, path)
}
