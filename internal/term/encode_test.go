// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

package term

import (
	"math"
	"testing"
	"time"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	now := time.Date(2020, 3, 4, 1, 2, 3, 4000, time.FixedZone("", 3600))
	terms := []Term{
		NewWikidataItem(42),
		NewWikidataProperty(31, 5),
		NewIri("http://example.org/x"),
		NewBlankNode("b0"),
		NewStringLiteral("hello"),
		NewIntegerLiteral(-7),
		NewDecimalLiteral("3.14"),
		NewDoubleLiteral(2.5),
		NewDoubleLiteral(math.NaN()),
		NewDateTimeLiteral(now),
		NewLanguageTaggedString("hello", "en"),
		NewTypedLiteral("abc", "http://example.org/dt"),
	}
	for _, term := range terms {
		buf := Encode(term, nil)
		got, n := Decode(buf)
		if n != len(buf) {
			t.Errorf("Decode(%+v) consumed %d bytes, want %d", term, n, len(buf))
		}
		if got != term {
			t.Errorf("Decode(Encode(%+v)) = %+v", term, got)
		}
	}
}

func TestEncodeConcatenatesForKeys(t *testing.T) {
	p := NewWikidataProperty(279, 0)
	s := NewWikidataItem(1)
	o := NewWikidataItem(2)
	var key []byte
	key = Encode(p, key)
	key = Encode(s, key)
	key = Encode(o, key)

	gotP, n1 := Decode(key)
	gotS, n2 := Decode(key[n1:])
	gotO, _ := Decode(key[n1+n2:])
	if gotP != p || gotS != s || gotO != o {
		t.Errorf("round trip of concatenated key failed: %+v %+v %+v", gotP, gotS, gotO)
	}
}

func TestDecodeUnexpectedTagPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Decode with unexpected tag byte should panic")
		}
	}()
	Decode([]byte{99, 0, 0, 0, 0})
}
