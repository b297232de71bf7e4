// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

// Package output writes the Build Plan's result files: gzip-compressed
// line-oriented text files, plus the stats.tsv sidecar that summarizes
// them, all via a temp-file-then-rename so that a reader never
// observes a partially written file. It knows nothing about N-Triples
// or the plan package's fact types; callers render their own lines.
package output

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
)

// WriteLines gzip-compresses lines into dir/name, one per line with no
// trailing terminator expected in each entry. name must end in .gz.
func WriteLines(dir, name string, lines []string) error {
	return writeGzip(dir, name, func(w *bufio.Writer) error {
		for _, line := range lines {
			if _, err := w.WriteString(line); err != nil {
				return err
			}
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteLineFunc gzip-compresses the lines emit calls write with into
// dir/name, without first materializing them as a slice. name must
// end in .gz.
func WriteLineFunc(dir, name string, emit func(write func(string) error) error) error {
	return writeGzip(dir, name, func(w *bufio.Writer) error {
		return emit(func(line string) error {
			if _, err := w.WriteString(line); err != nil {
				return err
			}
			return w.WriteByte('\n')
		})
	})
}

// writeGzip creates dir/name.tmp, calls write with a buffered level-9
// gzip writer over it, syncs and closes, and renames it into place
// only once every byte has safely reached disk.
func writeGzip(dir, name string, write func(*bufio.Writer) error) error {
	if filepath.Ext(name) != ".gz" {
		return fmt.Errorf("output: %s does not end in .gz", name)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	path := filepath.Join(dir, name)
	tmpPath := path + ".tmp"

	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	defer tmpFile.Close()

	gz, err := gzip.NewWriterLevel(tmpFile, gzip.BestCompression)
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(gz, 1<<20)

	if err := write(bw); err != nil {
		gz.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
