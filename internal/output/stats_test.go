// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

package output

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestStatsWrite(t *testing.T) {
	s := NewStats()
	s.Set("yago-wd-facts.nt.gz", 3)
	s.Set("yago-wd-class.nt.gz", 2)

	dir := t.TempDir()
	if err := s.Write(dir); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "stats.tsv"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	want := []string{
		"yago-wd-class.nt.gz\t2",
		"yago-wd-facts.nt.gz\t3",
		"*\t5",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestStatsAddIsConcurrencySafe(t *testing.T) {
	s := NewStats()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add("count", 1)
		}()
	}
	wg.Wait()

	dir := t.TempDir()
	if err := s.Write(dir); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "stats.tsv"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "count\t100\n") {
		t.Errorf("stats.tsv = %q, want it to contain count\\t100", data)
	}
}
