// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
)

// Stats accumulates named counters from concurrently running build
// steps and serializes them as a TSV sidecar next to the files those
// steps produced.
type Stats struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewStats returns an empty Stats, ready for concurrent use.
func NewStats() *Stats {
	return &Stats{counts: make(map[string]int64)}
}

// Set records count for name, overwriting any previous value.
func (s *Stats) Set(name string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[name] = int64(count)
}

// Add increments name's counter by delta.
func (s *Stats) Add(name string, delta int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[name] += delta
}

// Write renders every counter, sorted by name, as "name\tcount" lines
// into dir/stats.tsv, with a trailing "*\ttotal" row summing them all.
func (s *Stats) Write(dir string) error {
	s.mu.Lock()
	names := make([]string, 0, len(s.counts))
	var total int64
	for name, count := range s.counts {
		names = append(names, name)
		total += count
	}
	counts := make(map[string]int64, len(s.counts))
	for k, v := range s.counts {
		counts[k] = v
	}
	s.mu.Unlock()

	sort.Strings(names)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	path := filepath.Join(dir, "stats.tsv")
	tmpPath := path + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, name := range names {
		if _, err := fmt.Fprintf(f, "%s\t%s\n", name, strconv.FormatInt(counts[name], 10)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(f, "*\t%s\n", strconv.FormatInt(total, 10)); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
