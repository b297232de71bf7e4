// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

package plan

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/yago-naga/yago4/internal/pts"
	"github.com/yago-naga/yago4/internal/schema"
	"github.com/yago-naga/yago4/internal/term"
	"github.com/yago-naga/yago4/internal/vocab"
)

const (
	yagoResourcePrefix = "http://yago-knowledge.org/resource/"
	yagoValuePrefix    = "http://yago-knowledge.org/value/"
	enWikipediaPrefix  = "https://en.wikipedia.org/wiki/"

	pPrefix   = "http://www.wikidata.org/prop/"
	psPrefix  = "http://www.wikidata.org/prop/statement/"
	psvPrefix = "http://www.wikidata.org/prop/statement/value/"
	pqPrefix  = "http://www.wikidata.org/prop/qualifier/"
	pqvPrefix = "http://www.wikidata.org/prop/qualifier/value/"
)

// encodeIRIPath percent-escapes path the way RFC 3987's ipchar
// production allows (section 2.2), with spaces rewritten to
// underscores, and appends the result to out.
func encodeIRIPath(path string, out *strings.Builder) {
	for _, r := range path {
		switch {
		case r == ' ':
			out.WriteByte('_')
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			out.WriteRune(r)
		case strings.ContainsRune("-._~:@!$&'()*+,;=", r):
			out.WriteRune(r)
		case (r >= 0xA0 && r <= 0xD7FF) ||
			(r >= 0xF900 && r <= 0xFDCF) ||
			(r >= 0xFDF0 && r <= 0xFFEF) ||
			(r >= 0x10000 && r <= 0xEFFFD):
			out.WriteRune(r)
		default:
			var buf [utf8.UTFMax]byte
			n := utf8.EncodeRune(buf[:], r)
			for _, b := range buf[:n] {
				fmt.Fprintf(out, "%%%X", b)
			}
		}
	}
}

// wikidataToEnWikipediaMapping maps each Wikidata item to the IRI of
// its English Wikipedia article, from schema:about edges.
func wikidataToEnWikipediaMapping(store *pts.Store) map[term.Term]string {
	out := make(map[term.Term]string)
	for _, pr := range store.SubjectsObjectsForPredicate(vocab.SchemaAbout) {
		if pr.Subject.Kind == term.Iri && strings.HasPrefix(pr.Subject.Str, enWikipediaPrefix) {
			out[pr.Object] = pr.Subject.Str
		}
	}
	return out
}

// Flavor selects which Wikidata items are kept when minting YAGO
// resource IRIs, trading dump size against coverage.
type Flavor int

const (
	// Full keeps every Wikidata item.
	Full Flavor = iota
	// AllWikipedias keeps every item with a sitelink to any Wikipedia.
	AllWikipedias
	// EnglishWikipedia keeps only items with an English Wikipedia article.
	EnglishWikipedia
)

// itemsToKeep computes the Kept set for flavor: the items a build of
// this size flavor mints a YAGO resource IRI for. Q6581097 (male) and
// Q6581072 (female) are always kept, regardless of flavor.
func itemsToKeep(flavor Flavor, store *pts.Store, wikidataToEnWikipedia map[term.Term]string) termSet {
	kept := newTermSet(vocab.WdQ6581097, vocab.WdQ6581072)
	switch flavor {
	case EnglishWikipedia:
		for wd := range wikidataToEnWikipedia {
			kept[wd] = struct{}{}
		}
	case AllWikipedias:
		for _, pr := range store.SubjectsObjectsForPredicate(vocab.SchemaAbout) {
			if pr.Subject.Kind == term.Iri && strings.Contains(pr.Subject.Str, ".wikipedia.org/wiki/") {
				kept[pr.Object] = struct{}{}
			}
		}
	default: // Full
		wikibaseItem := vocab.WikibaseItem
		for _, pr := range store.SubjectsObjectsForPredicate(vocab.RdfType) {
			if pr.Object == wikibaseItem {
				kept[pr.Subject] = struct{}{}
			}
		}
	}
	return kept
}

// wikidataToYagoURIsMapping implements the four-tier priority minting
// described in the build plan: schema mapping, then Wikipedia title,
// then English label, then QID fallback. Which items are minted at
// all is controlled by flavor.
func wikidataToYagoURIsMapping(flavor Flavor, sch *schema.Schema, store *pts.Store, wikidataToEnWikipedia map[term.Term]string) map[term.Term]term.Term {
	itemsToKeep := itemsToKeep(flavor, store, wikidataToEnWikipedia)

	fromSchema := make(map[term.Term]term.Term)
	for _, shape := range sch.NodeShapes() {
		for _, fromClass := range shape.FromClasses {
			fromSchema[fromClass] = shape.TargetClass
		}
	}

	fromWikipedia := make(map[term.Term]term.Term)
	for wd, wp := range wikidataToEnWikipedia {
		if !itemsToKeep.has(wd) {
			continue
		}
		if _, ok := fromSchema[wd]; ok {
			continue
		}
		title, err := url.PathUnescape(wp[len(enWikipediaPrefix):])
		if err != nil {
			title = wp[len(enWikipediaPrefix):]
		}
		var b strings.Builder
		b.WriteString(yagoResourcePrefix)
		encodeIRIPath(norm.NFC.String(title), &b)
		fromWikipedia[wd] = term.NewIri(b.String())
	}

	fromLabel := make(map[term.Term]term.Term)
	for _, pr := range store.SubjectsObjectsForPredicate(vocab.SkosPrefLabel) {
		if pr.Object.Kind != term.LanguageTaggedString || pr.Object.Str2 != "en" {
			continue
		}
		if !itemsToKeep.has(pr.Subject) {
			continue
		}
		if _, ok := fromSchema[pr.Subject]; ok {
			continue
		}
		if _, ok := fromWikipedia[pr.Subject]; ok {
			continue
		}
		if pr.Subject.Kind != term.WikidataItem {
			continue
		}
		var b strings.Builder
		b.WriteString(yagoResourcePrefix)
		encodeIRIPath(norm.NFC.String(pr.Object.Str), &b)
		fmt.Fprintf(&b, "_Q%d", pr.Subject.Num)
		fromLabel[pr.Subject] = term.NewIri(b.String())
	}

	wikibaseItem := vocab.WikibaseItem
	wikidataItemsSeen := newTermSet(vocab.WdQ6581097, vocab.WdQ6581072)
	wikidataItems := wikidataItemsSeen.slice()
	for _, pr := range store.SubjectsObjectsForPredicate(vocab.RdfType) {
		if pr.Object == wikibaseItem && !wikidataItemsSeen.has(pr.Subject) {
			wikidataItemsSeen[pr.Subject] = struct{}{}
			wikidataItems = append(wikidataItems, pr.Subject)
		}
	}

	out := make(map[term.Term]term.Term, len(fromSchema)+len(fromWikipedia)+len(fromLabel))
	for k, v := range fromSchema {
		out[k] = v
	}
	for k, v := range fromWikipedia {
		out[k] = v
	}
	for k, v := range fromLabel {
		out[k] = v
	}
	for _, item := range wikidataItems {
		if !itemsToKeep.has(item) {
			continue
		}
		if _, ok := fromSchema[item]; ok {
			continue
		}
		if _, ok := fromWikipedia[item]; ok {
			continue
		}
		if _, ok := fromLabel[item]; ok {
			continue
		}
		if item.Kind != term.WikidataItem {
			continue
		}
		if _, ok := out[item]; ok {
			continue
		}
		out[item] = term.NewIri(fmt.Sprintf("%s_Q%d", yagoResourcePrefix, item.Num))
	}
	return out
}

func mapToYago(input []term.Term, with map[term.Term]term.Term) []term.Term {
	out := make([]term.Term, 0, len(input))
	for _, i := range input {
		if v, ok := with[i]; ok {
			out = append(out, v)
		}
	}
	return out
}

func mapKeyToYago[V any](input []kvPairOf[V], with map[term.Term]term.Term) []kvPairOf[V] {
	out := make([]kvPairOf[V], 0, len(input))
	for _, p := range input {
		if v, ok := with[p.Key]; ok {
			out = append(out, kvPairOf[V]{v, p.Value})
		}
	}
	return out
}

// mapValueToYago rewrites the value half of a (key, term.Term) pair
// stream through the YAGO mint mapping, dropping pairs whose value has
// no mapping.
func mapValueToYago(input []kvPair, with map[term.Term]term.Term) []kvPair {
	out := make([]kvPair, 0, len(input))
	for _, p := range input {
		if v, ok := with[p.Value]; ok {
			out = append(out, kvPair{p.Key, v})
		}
	}
	return out
}
