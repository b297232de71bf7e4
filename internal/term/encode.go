// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

package term

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Tag bytes are part of the PTS on-disk format and must never be
// renumbered.
const (
	tagWikidataItem          = 1
	tagWikidataProperty      = 2
	tagIri                   = 3
	tagBlankNode             = 4
	tagStringLiteral         = 5
	tagIntegerLiteral        = 6
	tagDecimalLiteral        = 7
	tagDoubleLiteral         = 8
	tagDateTimeLiteral       = 9
	tagLanguageTaggedString  = 10
	tagTypedLiteral          = 11
	tagEndOfString      byte = 0xFF
)

// Encode appends the byte encoding of t to buf and returns the result.
func Encode(t Term, buf []byte) []byte {
	switch t.Kind {
	case WikidataItem:
		buf = append(buf, tagWikidataItem)
		buf = appendUint32(buf, t.Num)
	case WikidataProperty:
		buf = append(buf, tagWikidataProperty)
		buf = appendUint32(buf, t.Num)
		buf = append(buf, t.PrefixIdx)
	case Iri:
		buf = append(buf, tagIri)
		buf = appendString(buf, t.Str)
	case BlankNode:
		buf = append(buf, tagBlankNode)
		buf = appendString(buf, t.Str)
	case StringLiteral:
		buf = append(buf, tagStringLiteral)
		buf = appendString(buf, t.Str)
	case IntegerLiteral:
		buf = append(buf, tagIntegerLiteral)
		buf = appendUint64(buf, uint64(t.Int))
	case DecimalLiteral:
		buf = append(buf, tagDecimalLiteral)
		buf = appendString(buf, t.Str)
	case DoubleLiteral:
		buf = append(buf, tagDoubleLiteral)
		buf = appendUint64(buf, t.DoubleBits)
	case DateTimeLiteral:
		buf = append(buf, tagDateTimeLiteral)
		buf = appendUint64(buf, uint64(t.UnixSeconds))
		buf = appendUint32(buf, t.Nanos)
		buf = appendUint32(buf, uint32(t.OffsetSecs))
	case LanguageTaggedString:
		buf = append(buf, tagLanguageTaggedString)
		buf = appendString(buf, t.Str)
		buf = appendString(buf, t.Str2)
	case TypedLiteral:
		buf = append(buf, tagTypedLiteral)
		buf = appendString(buf, t.Str)
		buf = appendString(buf, t.Str2)
	default:
		panic(fmt.Sprintf("term: unknown kind %d", t.Kind))
	}
	return buf
}

func appendUint32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.NativeEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func appendUint64(buf []byte, v uint64) []byte {
	var b [8]byte
	binary.NativeEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}

func appendString(buf []byte, s string) []byte {
	buf = append(buf, s...)
	return append(buf, tagEndOfString)
}

// Decode reads one term starting at buf[0], and returns the term and
// the number of bytes consumed. An unexpected tag byte is a
// programmer error: it panics, matching the original store's
// "decode of a scanned key must always succeed" invariant.
func Decode(buf []byte) (Term, int) {
	if len(buf) == 0 {
		panic("term: cannot decode from empty buffer")
	}
	tag := buf[0]
	rest := buf[1:]
	switch tag {
	case tagWikidataItem:
		v := binary.NativeEndian.Uint32(rest)
		return NewWikidataItem(v), 1 + 4
	case tagWikidataProperty:
		v := binary.NativeEndian.Uint32(rest)
		p := rest[4]
		return NewWikidataProperty(v, p), 1 + 4 + 1
	case tagIri:
		s, n := readString(rest)
		return NewIri(s), 1 + n
	case tagBlankNode:
		s, n := readString(rest)
		return NewBlankNode(s), 1 + n
	case tagStringLiteral:
		s, n := readString(rest)
		return NewStringLiteral(s), 1 + n
	case tagIntegerLiteral:
		v := binary.NativeEndian.Uint64(rest)
		return NewIntegerLiteral(int64(v)), 1 + 8
	case tagDecimalLiteral:
		s, n := readString(rest)
		return NewDecimalLiteral(s), 1 + n
	case tagDoubleLiteral:
		v := binary.NativeEndian.Uint64(rest)
		return Term{Kind: DoubleLiteral, DoubleBits: canonicalizeBits(v)}, 1 + 8
	case tagDateTimeLiteral:
		secs := int64(binary.NativeEndian.Uint64(rest))
		nanos := binary.NativeEndian.Uint32(rest[8:])
		offset := int32(binary.NativeEndian.Uint32(rest[12:]))
		return Term{Kind: DateTimeLiteral, UnixSeconds: secs, Nanos: nanos, OffsetSecs: offset}, 1 + 8 + 4 + 4
	case tagLanguageTaggedString:
		v, n1 := readString(rest)
		l, n2 := readString(rest[n1:])
		return NewLanguageTaggedString(v, l), 1 + n1 + n2
	case tagTypedLiteral:
		v, n1 := readString(rest)
		dt, n2 := readString(rest[n1:])
		return NewTypedLiteral(v, dt), 1 + n1 + n2
	default:
		panic(fmt.Sprintf("term: unexpected tag byte %d", tag))
	}
}

func canonicalizeBits(bits uint64) uint64 {
	f := math.Float64frombits(bits)
	if math.IsNaN(f) {
		return canonicalNaNBits
	}
	return bits
}

func readString(buf []byte) (string, int) {
	for i, b := range buf {
		if b == tagEndOfString {
			return string(buf[:i]), i + 1
		}
	}
	panic("term: unterminated string (missing sentinel byte)")
}
