// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

package pts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yago-naga/yago4/internal/term"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func writeNTriples(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "dump.nt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestPTSRoundTrip(t *testing.T) {
	s := newTestStore(t)
	path := writeNTriples(t, "<http://foo> <http://bar> <http://baz> .\n")
	if err := s.LoadNTriples(path); err != nil {
		t.Fatalf("LoadNTriples failed: %v", err)
	}

	pairs := s.SubjectsObjectsForPredicate(term.NewIri("http://bar"))
	if len(pairs) != 1 {
		t.Fatalf("SubjectsObjectsForPredicate returned %d pairs, want 1", len(pairs))
	}
	if pairs[0].Subject != term.NewIri("http://foo") || pairs[0].Object != term.NewIri("http://baz") {
		t.Errorf("got pair %+v, want (foo, baz)", pairs[0])
	}
}

func TestPrefixScanSoundness(t *testing.T) {
	s := newTestStore(t)
	path := writeNTriples(t, ""+
		"<http://s1> <http://p1> <http://o1> .\n"+
		"<http://s1> <http://p2> <http://o2> .\n"+
		"<http://s2> <http://p1> <http://o3> .\n")
	if err := s.LoadNTriples(path); err != nil {
		t.Fatalf("LoadNTriples failed: %v", err)
	}

	p1 := term.NewIri("http://p1")
	pairs := s.SubjectsObjectsForPredicate(p1)
	if len(pairs) != 2 {
		t.Fatalf("SubjectsObjectsForPredicate(p1) returned %d pairs, want 2", len(pairs))
	}
	for _, p := range pairs {
		if p.Subject != term.NewIri("http://s1") && p.Subject != term.NewIri("http://s2") {
			t.Errorf("unexpected subject in p1 scan: %+v", p.Subject)
		}
	}

	objects := s.ObjectsForSubjectPredicate(term.NewIri("http://s1"), p1)
	if len(objects) != 1 || objects[0] != term.NewIri("http://o1") {
		t.Errorf("ObjectsForSubjectPredicate(s1,p1) = %+v, want [o1]", objects)
	}

	if !s.Contains(term.NewIri("http://s1"), p1, term.NewIri("http://o1")) {
		t.Errorf("Contains(s1,p1,o1) = false, want true")
	}
	if s.Contains(term.NewIri("http://s1"), p1, term.NewIri("http://o2")) {
		t.Errorf("Contains(s1,p1,o2) = true, want false")
	}
}

func TestLoadNTriplesSkipsMalformedLines(t *testing.T) {
	s := newTestStore(t)
	path := writeNTriples(t, ""+
		"this is not a valid triple\n"+
		"<http://s> <http://p> <http://o> .\n")
	if err := s.LoadNTriples(path); err != nil {
		t.Fatalf("LoadNTriples should not fail on malformed lines: %v", err)
	}
	pairs := s.SubjectsObjectsForPredicate(term.NewIri("http://p"))
	if len(pairs) != 1 {
		t.Errorf("expected the well-formed triple to still load, got %d pairs", len(pairs))
	}
}
