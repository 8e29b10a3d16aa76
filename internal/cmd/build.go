// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/aibor/inject/emit"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newBuildCommand(opts *options) *cobra.Command {
	var outDir, archivePath string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build all virtual files into a directory and/or archive",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if outDir == "" && archivePath == "" {
				return &UsageError{err: ErrNoOutput}
			}

			plugin, err := opts.newPlugin()
			if err != nil {
				return err
			}

			var memory emit.Memory

			err = plugin.BuildEnd(cmd.Context(), &memory)
			if err != nil {
				return fmt.Errorf("build: %w", err)
			}

			if outDir != "" {
				err := emit.NewDir(opts.fs, outDir).CopyFS(cmd.Context(), memory.FS())
				if err != nil {
					return fmt.Errorf("write %s: %w", outDir, err)
				}
			}

			if archivePath != "" {
				err := emit.WriteArchiveFile(memory.FS(), opts.fs, archivePath)
				if err != nil {
					return fmt.Errorf("write %s: %w", archivePath, err)
				}
			}

			count, size := memory.Stats()

			slog.Info("Injected virtual files",
				slog.Int("count", count),
				slog.String("size", humanize.Bytes(uint64(size))),
				slog.String("out", outDir),
				slog.String("archive", archivePath),
			)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&outDir, "out", "o", "dist",
		"directory to write the files into, empty to skip")
	flags.StringVar(&archivePath, "archive", "",
		"CPIO archive file to write the files into")
	flags.IntVar(&opts.concurrency, "concurrency", 0,
		"maximum number of files built at the same time, 0 for no limit")

	return cmd
}
