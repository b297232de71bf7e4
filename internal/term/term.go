// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

// Package term implements the canonical, comparable, serializable
// representation of RDF terms used throughout the builder: Wikidata
// items and properties are recognized and tagged by IRI shape, every
// other term kind round-trips through its lexical form.
package term

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/knakk/rdf"
)

// Kind tags the variant held by a Term.
type Kind uint8

const (
	WikidataItem Kind = iota
	WikidataProperty
	Iri
	BlankNode
	StringLiteral
	IntegerLiteral
	DecimalLiteral
	DoubleLiteral
	DateTimeLiteral
	LanguageTaggedString
	TypedLiteral
)

// PropertyPrefixes is the fixed, on-disk-format-relevant list of
// Wikidata property IRI prefixes. Index into this table is persisted
// as the WikidataProperty prefixIdx byte in the PTS encoding; it must
// never be reordered or renumbered.
var PropertyPrefixes = [14]string{
	"http://www.wikidata.org/entity/P",
	"http://www.wikidata.org/prop/direct-normalized/P",
	"http://www.wikidata.org/prop/direct/P",
	"http://www.wikidata.org/prop/statement/value-normalized/P",
	"http://www.wikidata.org/prop/statement/value/P",
	"http://www.wikidata.org/prop/statement/P",
	"http://www.wikidata.org/prop/qualifier/value-normalized/P",
	"http://www.wikidata.org/prop/qualifier/value/P",
	"http://www.wikidata.org/prop/qualifier/P",
	"http://www.wikidata.org/prop/reference/value-normalized/P",
	"http://www.wikidata.org/prop/reference/value/P",
	"http://www.wikidata.org/prop/reference/P",
	"http://www.wikidata.org/prop/novalue/P",
	"http://www.wikidata.org/prop/P",
}

const wikidataItemPrefix = "http://www.wikidata.org/entity/Q"

// Term is a fully comparable representation of an RDF term: it can be
// used directly as a Go map key. Only one payload group is populated
// per Kind; DoubleBits holds the IEEE-754 bit pattern of a double
// literal with every NaN folded to the same bit pattern, so that two
// NaN-valued terms compare equal and hash identically without a
// custom Hash method.
type Term struct {
	Kind Kind

	// WikidataItem: QID. WikidataProperty: PID + PrefixIdx.
	Num       uint32
	PrefixIdx uint8

	// IntegerLiteral.
	Int int64

	// DoubleLiteral: canonicalized IEEE-754 bits (NaN folded to a
	// single bit pattern).
	DoubleBits uint64

	// DateTimeLiteral.
	UnixSeconds int64
	Nanos       uint32
	OffsetSecs  int32

	// String-bearing variants. LanguageTaggedString uses Str for the
	// value and Str2 for the language tag. TypedLiteral uses Str for
	// the value and Str2 for the datatype IRI.
	Str  string
	Str2 string
}

var canonicalNaNBits = math.Float64bits(math.NaN())

func doubleBits(f float64) uint64 {
	if math.IsNaN(f) {
		return canonicalNaNBits
	}
	return math.Float64bits(f)
}

// Double returns the float64 value of a DoubleLiteral term.
func (t Term) Double() float64 {
	return math.Float64frombits(t.DoubleBits)
}

// NewWikidataItem returns the tagged WikidataItem term for qid.
func NewWikidataItem(qid uint32) Term {
	return Term{Kind: WikidataItem, Num: qid}
}

// NewWikidataProperty returns the tagged WikidataProperty term.
func NewWikidataProperty(pid uint32, prefixIdx uint8) Term {
	return Term{Kind: WikidataProperty, Num: pid, PrefixIdx: prefixIdx}
}

// NewIri returns a plain Iri term without Wikidata normalization.
func NewIri(s string) Term {
	return Term{Kind: Iri, Str: s}
}

// NewBlankNode returns a BlankNode term.
func NewBlankNode(id string) Term {
	return Term{Kind: BlankNode, Str: id}
}

// NewStringLiteral returns an xsd:string term.
func NewStringLiteral(s string) Term {
	return Term{Kind: StringLiteral, Str: s}
}

// NewIntegerLiteral returns an xsd:integer term.
func NewIntegerLiteral(i int64) Term {
	return Term{Kind: IntegerLiteral, Int: i}
}

// NewDecimalLiteral returns an xsd:decimal term, stored by exact
// lexical text (no float conversion, to preserve precision).
func NewDecimalLiteral(s string) Term {
	return Term{Kind: DecimalLiteral, Str: s}
}

// NewDoubleLiteral returns an xsd:double term with NaN canonicalized.
func NewDoubleLiteral(f float64) Term {
	return Term{Kind: DoubleLiteral, DoubleBits: doubleBits(f)}
}

// NewDateTimeLiteral returns an xsd:dateTime term.
func NewDateTimeLiteral(t time.Time) Term {
	_, offset := t.Zone()
	return Term{
		Kind:        DateTimeLiteral,
		UnixSeconds: t.Unix(),
		Nanos:       uint32(t.Nanosecond()),
		OffsetSecs:  int32(offset),
	}
}

// Time reconstructs the time.Time value of a DateTimeLiteral term.
func (t Term) Time() time.Time {
	loc := time.FixedZone("", int(t.OffsetSecs))
	return time.Unix(t.UnixSeconds, int64(t.Nanos)).In(loc)
}

// NewLanguageTaggedString returns an rdf:langString term.
func NewLanguageTaggedString(value, lang string) Term {
	return Term{Kind: LanguageTaggedString, Str: value, Str2: lang}
}

// NewTypedLiteral returns a term for any other typed literal.
func NewTypedLiteral(value, datatypeIri string) Term {
	return Term{Kind: TypedLiteral, Str: value, Str2: datatypeIri}
}

// MakeIri returns the tagged variant for Wikidata item/property IRIs;
// any other IRI is wrapped as a plain Iri term.
func MakeIri(iri string) Term {
	if !strings.HasPrefix(iri, "http://www.wikidata.org/") {
		return NewIri(iri)
	}
	if strings.HasPrefix(iri, wikidataItemPrefix) {
		if v, err := strconv.ParseUint(iri[len(wikidataItemPrefix):], 10, 32); err == nil {
			return NewWikidataItem(uint32(v))
		}
		return NewIri(iri)
	}
	for i, prefix := range PropertyPrefixes {
		if strings.HasPrefix(iri, prefix) {
			if v, err := strconv.ParseUint(iri[len(prefix):], 10, 32); err == nil {
				return NewWikidataProperty(uint32(v), uint8(i))
			}
			return NewIri(iri)
		}
	}
	return NewIri(iri)
}

// FromParser converts a generic RDF-library term into a Term. Blank
// node identifiers are suffixed with seed so that blank nodes parsed
// from distinct documents never collide.
func FromParser(t rdf.Term, seed string) Term {
	switch v := t.(type) {
	case *rdf.URI:
		return MakeIri(v.URI)
	case *rdf.Blank:
		return NewBlankNode(v.ID + seed)
	case *rdf.Literal:
		value := literalValueString(v.Value)
		if v.Lang != "" {
			return NewLanguageTaggedString(value, v.Lang)
		}
		if v.DataType == nil {
			return NewStringLiteral(value)
		}
		switch v.DataType.URI {
		case "http://www.w3.org/2001/XMLSchema#string":
			return NewStringLiteral(value)
		case "http://www.w3.org/2001/XMLSchema#integer":
			if i, err := strconv.ParseInt(value, 10, 64); err == nil {
				return NewIntegerLiteral(i)
			}
			return NewTypedLiteral(value, xsdInteger)
		case "http://www.w3.org/2001/XMLSchema#decimal":
			return NewDecimalLiteral(value)
		case "http://www.w3.org/2001/XMLSchema#double":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				return NewDoubleLiteral(f)
			}
			return NewTypedLiteral(value, xsdDouble)
		case "http://www.w3.org/2001/XMLSchema#dateTime":
			if d, err := time.Parse(time.RFC3339, value); err == nil {
				return NewDateTimeLiteral(d)
			}
			return NewTypedLiteral(value, xsdDateTime)
		default:
			return NewTypedLiteral(value, v.DataType.URI)
		}
	default:
		return NewIri(t.String())
	}
}

func literalValueString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// xsd datatype IRI constants, used by Datatype below.
const (
	xsdString    = "http://www.w3.org/2001/XMLSchema#string"
	xsdInteger   = "http://www.w3.org/2001/XMLSchema#integer"
	xsdDecimal   = "http://www.w3.org/2001/XMLSchema#decimal"
	xsdDouble    = "http://www.w3.org/2001/XMLSchema#double"
	xsdDateTime  = "http://www.w3.org/2001/XMLSchema#dateTime"
	rdfLangStr   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"
)

// Datatype returns the datatype IRI of a literal term, or ok=false
// for IRIs/blanks.
func Datatype(t Term) (string, bool) {
	switch t.Kind {
	case WikidataItem, WikidataProperty, Iri, BlankNode:
		return "", false
	case StringLiteral:
		return xsdString, true
	case IntegerLiteral:
		return xsdInteger, true
	case DecimalLiteral:
		return xsdDecimal, true
	case DoubleLiteral:
		return xsdDouble, true
	case DateTimeLiteral:
		return xsdDateTime, true
	case LanguageTaggedString:
		return rdfLangStr, true
	case TypedLiteral:
		return t.Str2, true
	default:
		return "", false
	}
}

// Compare implements a total order: kind-major, then payload.
func Compare(a, b Term) int {
	if a.Kind != b.Kind {
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	}
	switch a.Kind {
	case WikidataItem:
		return cmpUint32(a.Num, b.Num)
	case WikidataProperty:
		if c := cmpUint32(a.Num, b.Num); c != 0 {
			return c
		}
		return cmpUint8(a.PrefixIdx, b.PrefixIdx)
	case IntegerLiteral:
		if a.Int < b.Int {
			return -1
		} else if a.Int > b.Int {
			return 1
		}
		return 0
	case DoubleLiteral:
		return cmpUint64(a.DoubleBits, b.DoubleBits)
	case DateTimeLiteral:
		if c := cmpInt64(a.UnixSeconds, b.UnixSeconds); c != 0 {
			return c
		}
		if c := cmpUint32(a.Nanos, b.Nanos); c != 0 {
			return c
		}
		return cmpInt32(a.OffsetSecs, b.OffsetSecs)
	case LanguageTaggedString, TypedLiteral:
		if c := strings.Compare(a.Str, b.Str); c != 0 {
			return c
		}
		return strings.Compare(a.Str2, b.Str2)
	default:
		return strings.Compare(a.Str, b.Str)
	}
}

func cmpUint32(a, b uint32) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

func cmpUint8(a, b uint8) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

func cmpUint64(a, b uint64) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

func cmpInt64(a, b int64) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

func cmpInt32(a, b int32) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// String returns the canonical N-Triples lexical form of t.
func (t Term) String() string {
	switch t.Kind {
	case WikidataItem:
		return fmt.Sprintf("<http://www.wikidata.org/entity/Q%d>", t.Num)
	case WikidataProperty:
		return fmt.Sprintf("<%s%d>", PropertyPrefixes[t.PrefixIdx], t.Num)
	case Iri:
		return fmt.Sprintf("<%s>", t.Str)
	case BlankNode:
		return "_:" + t.Str
	case StringLiteral:
		return quoteLiteral(t.Str)
	case IntegerLiteral:
		return fmt.Sprintf("%s^^<%s>", quoteLiteral(strconv.FormatInt(t.Int, 10)), xsdInteger)
	case DecimalLiteral:
		return fmt.Sprintf("%s^^<%s>", quoteLiteral(t.Str), xsdDecimal)
	case DoubleLiteral:
		return fmt.Sprintf("%s^^<%s>", quoteLiteral(formatDouble(t.Double())), xsdDouble)
	case DateTimeLiteral:
		return fmt.Sprintf("%s^^<%s>", quoteLiteral(t.Time().Format(time.RFC3339)), xsdDateTime)
	case LanguageTaggedString:
		return fmt.Sprintf("%s@%s", quoteLiteral(t.Str), t.Str2)
	case TypedLiteral:
		return fmt.Sprintf("%s^^<%s>", quoteLiteral(t.Str), t.Str2)
	default:
		return ""
	}
}

func formatDouble(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\"", `\"`,
	"\n", `\n`,
	"\r", `\r`,
)

func quoteLiteral(s string) string {
	return "\"" + literalEscaper.Replace(s) + "\""
}
