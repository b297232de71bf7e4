// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

package plan

import (
	"regexp"
	"strings"

	"github.com/yago-naga/yago4/internal/pts"
	"github.com/yago-naga/yago4/internal/term"
	"github.com/yago-naga/yago4/internal/vocab"
)

// freebaseIDPattern matches a Freebase MID of the shape Wikidata's
// P646 statements carry, e.g. "/m/02mjmr".
var freebaseIDPattern = regexp.MustCompile(`^/m/0([0-9a-z_]{2,6}|1[0123][0-9a-z_]{5})$`)

// buildSameAs links every kept YAGO resource back to its Wikidata
// item, its DBpedia counterpart, its Freebase MID (when well-formed),
// and its Wikipedia article (as a schema:sameAs URL literal, since
// that predicate's range is a URL rather than a resource).
func buildSameAs(
	store *pts.Store,
	yagoThings termSet,
	wikidataToYago map[term.Term]term.Term,
	wikidataToEnWikipedia map[term.Term]string,
) []Fact {
	var out []Fact

	for wd, yago := range wikidataToYago {
		if !yagoThings.has(yago) {
			continue
		}
		out = append(out, Fact{Subject: yago, Predicate: vocab.OwlSameAs, Object: wd})
	}

	for wd, wp := range wikidataToEnWikipedia {
		yago, ok := wikidataToYago[wd]
		if !ok || !yagoThings.has(yago) {
			continue
		}
		dbpediaURL := strings.Replace(wp, enWikipediaPrefix, "http://dbpedia.org/resource/", 1)
		out = append(out, Fact{Subject: yago, Predicate: vocab.OwlSameAs, Object: term.NewIri(dbpediaURL)})
	}

	for _, pr := range store.SubjectsObjectsForPredicate(vocab.WdtP646) {
		yago, ok := wikidataToYago[pr.Subject]
		if !ok || !yagoThings.has(yago) {
			continue
		}
		if pr.Object.Kind != term.StringLiteral {
			continue
		}
		freebaseID := pr.Object.Str
		if !freebaseIDPattern.MatchString(freebaseID) {
			continue
		}
		iri := "http://rdf.freebase.com/ns/" + strings.ReplaceAll(freebaseID[1:], "/", ".")
		out = append(out, Fact{Subject: yago, Predicate: vocab.OwlSameAs, Object: term.NewIri(iri)})
	}

	for _, pr := range store.SubjectsObjectsForPredicate(vocab.SchemaAbout) {
		if pr.Subject.Kind != term.Iri || !strings.Contains(pr.Subject.Str, ".wikipedia.org/wiki/") {
			continue
		}
		yago, ok := wikidataToYago[pr.Object]
		if !ok || !yagoThings.has(yago) {
			continue
		}
		out = append(out, Fact{
			Subject:   yago,
			Predicate: vocab.SchemaSameAs,
			Object:    term.NewTypedLiteral(pr.Subject.Str, vocab.XsdAnyURI.Str),
		})
	}

	return out
}
