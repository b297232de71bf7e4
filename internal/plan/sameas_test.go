// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

package plan

import (
	"testing"

	"github.com/yago-naga/yago4/internal/term"
)

func TestFreebaseIDPattern(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"/m/02mjmr", true},
		{"/m/0101fb4t", true},
		{"not-a-freebase-id", false},
		{"/m/", false},
	}
	for _, tt := range tests {
		if got := freebaseIDPattern.MatchString(tt.id); got != tt.want {
			t.Errorf("freebaseIDPattern.MatchString(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestBuildSameAs(t *testing.T) {
	var ntriples string
	ntriples += "<http://www.wikidata.org/entity/Q5> <http://www.wikidata.org/prop/direct/P646> \"/m/02mjmr\" .\n"
	ntriples += "<https://en.wikipedia.org/wiki/Human> <http://schema.org/about> <http://www.wikidata.org/entity/Q5> .\n"
	store := newTestStore(t, ntriples)

	human := term.NewIri("http://schema.org/Person")
	wdHuman := wd(5)

	wikidataToYago := map[term.Term]term.Term{wdHuman: human}
	wikidataToEnWikipedia := map[term.Term]string{wdHuman: "https://en.wikipedia.org/wiki/Human"}
	yagoThings := newTermSet(human)

	facts := buildSameAs(store, yagoThings, wikidataToYago, wikidataToEnWikipedia)

	var hasWikidataLink, hasDBpediaLink, hasFreebaseLink, hasWikipediaSameAs bool
	for _, f := range facts {
		if f.Subject != human {
			t.Errorf("unexpected subject in sameAs fact: %+v", f)
			continue
		}
		switch {
		case f.Object == wdHuman:
			hasWikidataLink = true
		case f.Object.Kind == term.Iri && f.Object.Str == "http://dbpedia.org/resource/Human":
			hasDBpediaLink = true
		case f.Object.Kind == term.Iri && f.Object.Str == "http://rdf.freebase.com/ns/m.02mjmr":
			hasFreebaseLink = true
		case f.Object.Kind == term.TypedLiteral && f.Object.Str == "https://en.wikipedia.org/wiki/Human":
			hasWikipediaSameAs = true
		}
	}
	if !hasWikidataLink {
		t.Error("expected a sameAs link to the Wikidata item")
	}
	if !hasDBpediaLink {
		t.Error("expected a sameAs link to the DBpedia resource")
	}
	if !hasFreebaseLink {
		t.Error("expected a sameAs link to the Freebase MID")
	}
	if !hasWikipediaSameAs {
		t.Error("expected a schema:sameAs URL literal for the Wikipedia article")
	}
}

func TestBuildSameAsSkipsEntitiesNotInYagoThings(t *testing.T) {
	store := newTestStore(t, "")
	yago := term.NewIri("http://schema.org/Place")
	wikidataToYago := map[term.Term]term.Term{wd(2221906): yago}
	facts := buildSameAs(store, newTermSet(), wikidataToYago, nil)
	if len(facts) != 0 {
		t.Errorf("buildSameAs() = %+v, want no facts for an entity not kept in yagoThings", facts)
	}
}
