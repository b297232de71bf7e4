// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

// Package pts implements the partitioned statement store: a
// disk-backed (predicate, subject, object) index over the ingested
// Wikidata dump, built on an ordered key/value engine so that
// predicate- and (predicate,subject)-prefixed range scans answer the
// pattern queries the build plan needs.
package pts

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/zstd"
	"github.com/knakk/rdf"
	"github.com/ulikunitz/xz"

	"github.com/yago-naga/yago4/internal/term"
)

// Store is a partitioned statement store backed by Pebble.
type Store struct {
	db *pebble.DB
}

// Open creates path if missing and opens the store there.
func Open(path string) (*Store, error) {
	opts := &pebble.Options{
		MaxOpenFiles: 512,
	}
	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("pts: opening %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close flushes and closes the underlying engine.
func (s *Store) Close() error {
	return s.db.Close()
}

func encodeKey(p, s, o term.Term) []byte {
	buf := make([]byte, 0, 64)
	buf = term.Encode(p, buf)
	buf = term.Encode(s, buf)
	buf = term.Encode(o, buf)
	return buf
}

// Contains reports whether the exact triple (s,p,o) was loaded.
func (s *Store) Contains(subject, predicate, object term.Term) bool {
	key := encodeKey(predicate, subject, object)
	v, closer, err := s.db.Get(key)
	if err == pebble.ErrNotFound {
		return false
	}
	if err != nil {
		log.Fatalf("pts: Contains lookup failed: %v", err)
	}
	closer.Close()
	_ = v
	return true
}

// Pair is a (subject, object) result of a predicate-prefixed scan.
type Pair struct {
	Subject term.Term
	Object  term.Term
}

// SubjectsObjectsForPredicate returns every (S,O) pair stored under
// predicate p, via a prefix scan on encode(p).
func (s *Store) SubjectsObjectsForPredicate(p term.Term) []Pair {
	prefix := term.Encode(p, nil)
	var out []Pair
	it, err := s.db.NewIter(prefixIterOptions(prefix))
	if err != nil {
		log.Fatalf("pts: creating iterator failed: %v", err)
	}
	defer it.Close()
	for it.First(); it.Valid(); it.Next() {
		key := it.Key()
		subject, object := decodeSubjectObject(key, len(prefix))
		out = append(out, Pair{subject, object})
	}
	return out
}

// ObjectsForSubjectPredicate returns every O stored under (P,S), via a
// prefix scan on encode(p)||encode(s).
func (s *Store) ObjectsForSubjectPredicate(subject, predicate term.Term) []term.Term {
	var prefix []byte
	prefix = term.Encode(predicate, prefix)
	prefix = term.Encode(subject, prefix)
	var out []term.Term
	it, err := s.db.NewIter(prefixIterOptions(prefix))
	if err != nil {
		log.Fatalf("pts: creating iterator failed: %v", err)
	}
	defer it.Close()
	for it.First(); it.Valid(); it.Next() {
		key := it.Key()
		o, _ := term.Decode(key[len(prefix):])
		out = append(out, o)
	}
	return out
}

// ObjectForSubjectPredicate returns the first O for (P,S), if any.
func (s *Store) ObjectForSubjectPredicate(subject, predicate term.Term) (term.Term, bool) {
	objects := s.ObjectsForSubjectPredicate(subject, predicate)
	if len(objects) == 0 {
		return term.Term{}, false
	}
	return objects[0], true
}

func decodeSubjectObject(key []byte, predicateLen int) (term.Term, term.Term) {
	rest := key[predicateLen:]
	subject, n := term.Decode(rest)
	object, _ := term.Decode(rest[n:])
	return subject, object
}

func prefixIterOptions(prefix []byte) *pebble.IterOptions {
	upper := make([]byte, len(prefix))
	copy(upper, prefix)
	for i := len(upper) - 1; i >= 0; i-- {
		if upper[i] != 0xFF {
			upper[i]++
			upper = upper[:i+1]
			return &pebble.IterOptions{LowerBound: prefix, UpperBound: upper}
		}
	}
	return &pebble.IterOptions{LowerBound: prefix}
}

// LoadNTriples streams an N-Triples file into the store, optionally
// decompressed by filename suffix (.gz, .bz2, .xz, .zst). Triples are
// staged into batches of 10,000 and flushed without fsync; a final
// compaction is forced. Malformed triples are logged and skipped.
func (s *Store) LoadNTriples(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("pts: opening %s: %w", path, err)
	}
	defer f.Close()

	r, err := decompressingReader(path, f)
	if err != nil {
		return fmt.Errorf("pts: setting up decompression for %s: %w", path, err)
	}

	dec := rdf.NewTripleDecoder(bufio.NewReaderSize(r, 1<<20), rdf.NTriples)

	batch := s.db.NewBatch()
	count := 0
	start := time.Now()
	for {
		triple, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("pts: error while parsing N-Triples %s: %v", path, err)
			continue
		}

		p := term.FromParser(triple.Pred, "")
		subj := term.FromParser(triple.Subj, "")
		obj := term.FromParser(triple.Obj, "")
		key := encodeKey(p, subj, obj)
		if err := batch.Set(key, nil, nil); err != nil {
			return fmt.Errorf("pts: staging write failed: %w", err)
		}

		count++
		if count%10000 == 0 {
			if err := s.db.Apply(batch, pebble.NoSync); err != nil {
				return fmt.Errorf("pts: flushing batch failed: %w", err)
			}
			batch = s.db.NewBatch()
			if count%1000000 == 0 {
				elapsed := time.Since(start).Seconds()
				if elapsed > 0 {
					log.Printf("%dM triples loaded at %.0f triples/s", count/1000000, float64(count)/elapsed)
				}
			}
		}
	}
	if err := s.db.Apply(batch, pebble.NoSync); err != nil {
		return fmt.Errorf("pts: flushing final batch failed: %w", err)
	}
	log.Printf("%d triples loaded, starting compaction", count)
	if err := s.db.Compact(nil, nil, true); err != nil {
		return fmt.Errorf("pts: compaction failed: %w", err)
	}
	return nil
}

func decompressingReader(path string, f *os.File) (io.Reader, error) {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return gzip.NewReader(f)
	case strings.HasSuffix(path, ".bz2"):
		return bzip2.NewReader(f, nil)
	case strings.HasSuffix(path, ".xz"):
		return xz.NewReader(bufio.NewReader(f))
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	default:
		return f, nil
	}
}
