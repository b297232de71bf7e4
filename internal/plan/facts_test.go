// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

package plan

import (
	"testing"

	"github.com/yago-naga/yago4/internal/schema"
	"github.com/yago-naga/yago4/internal/term"
	"github.com/yago-naga/yago4/internal/vocab"
)

const factsTestSchema = `
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
@prefix ys: <http://yago-knowledge.org/schema#> .
@prefix schema: <http://schema.org/> .
@prefix wd: <http://www.wikidata.org/entity/> .

schema:Thing a rdfs:Class .

schema:Person a rdfs:Class, sh:NodeShape ;
    rdfs:subClassOf schema:Thing ;
    ys:fromClass wd:Q5 ;
    sh:targetClass schema:Person ;
    sh:property schema:BirthDateShape .

schema:BirthDateShape a sh:PropertyShape ;
    sh:path schema:birthDate ;
    sh:datatype xsd:date, xsd:dateTime, xsd:gYear, xsd:gYearMonth ;
    sh:maxCount 1 ;
    ys:fromProperty wd:P569 .
`

// buildBirthDateTriples wires up a (subject -p:P569-> statement ->
// psv:P569 -> value node) chain for a single birth-date statement,
// with the value node carrying the raw wikibase time triples that
// convertTime rewrites into an xsd:date literal.
func buildBirthDateTriples(subject, statement, value string, bestRank bool) string {
	out := ""
	out += "<" + subject + "> <http://www.wikidata.org/prop/P569> <" + statement + "> .\n"
	if bestRank {
		out += "<" + statement + "> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://wikiba.se/ontology#BestRank> .\n"
	}
	out += "<" + statement + "> <http://www.wikidata.org/prop/statement/value/P569> <" + value + "> .\n"
	out += "<" + value + "> <http://wikiba.se/ontology#timeValue> \"2021-05-17T00:00:00Z\"^^<http://www.w3.org/2001/XMLSchema#dateTime> .\n"
	out += "<" + value + "> <http://wikiba.se/ontology#timePrecision> \"11\"^^<http://www.w3.org/2001/XMLSchema#integer> .\n"
	out += "<" + value + "> <http://wikiba.se/ontology#timeCalendarModel> <http://www.wikidata.org/entity/Q1985727> .\n"
	return out
}

func TestBuildPropertiesFromWikidataAndSchemaBestRank(t *testing.T) {
	sch, err := schema.FromTurtle(factsTestSchema)
	if err != nil {
		t.Fatalf("schema.FromTurtle failed: %v", err)
	}

	ntriples := buildBirthDateTriples(
		"http://www.wikidata.org/entity/Q1", "http://www.wikidata.org/entity/statement/s1", "http://www.wikidata.org/value/v1", true)
	ntriples += buildBirthDateTriples(
		"http://www.wikidata.org/entity/Q2", "http://www.wikidata.org/entity/statement/s2", "http://www.wikidata.org/value/v2", false)
	store := newTestStore(t, ntriples)

	alice := term.NewIri("http://yago-knowledge.org/resource/alice_Q1")
	bob := term.NewIri("http://yago-knowledge.org/resource/bob_Q2")
	person := term.NewIri("http://schema.org/Person")

	wikidataToYago := map[term.Term]term.Term{
		wd(1): alice,
		wd(2): bob,
	}
	yagoShapeInstances := map[term.Term]termSet{
		person: newTermSet(alice, bob),
	}

	facts, _ := buildPropertiesFromWikidataAndSchema(sch, store, yagoShapeInstances, wikidataToYago, nil)

	var hasAliceBirthDate, hasBobBirthDate bool
	birthDate := term.NewIri("http://schema.org/birthDate")
	for _, f := range facts {
		if f.Predicate != birthDate {
			continue
		}
		if f.Subject == alice {
			hasAliceBirthDate = true
		}
		if f.Subject == bob {
			hasBobBirthDate = true
		}
	}
	if !hasAliceBirthDate {
		t.Error("expected alice's best-rank birth date statement to be emitted")
	}
	if hasBobBirthDate {
		t.Error("bob's non-best-rank birth date statement should have been dropped")
	}
}

func TestBuildPropertiesFromWikidataAndSchemaMaxCountDropsWholeGroup(t *testing.T) {
	sch, err := schema.FromTurtle(factsTestSchema)
	if err != nil {
		t.Fatalf("schema.FromTurtle failed: %v", err)
	}

	// Two distinct best-rank birth-date statements for the same
	// subject: sh:maxCount 1 must drop both, not keep one arbitrarily.
	ntriples := buildBirthDateTriples(
		"http://www.wikidata.org/entity/Q1", "http://www.wikidata.org/entity/statement/s1", "http://www.wikidata.org/value/v1", true)
	ntriples += buildBirthDateTriples(
		"http://www.wikidata.org/entity/Q1", "http://www.wikidata.org/entity/statement/s2", "http://www.wikidata.org/value/v2", true)
	store := newTestStore(t, ntriples)

	alice := term.NewIri("http://yago-knowledge.org/resource/alice_Q1")
	person := term.NewIri("http://schema.org/Person")

	wikidataToYago := map[term.Term]term.Term{wd(1): alice}
	yagoShapeInstances := map[term.Term]termSet{person: newTermSet(alice)}

	facts, _ := buildPropertiesFromWikidataAndSchema(sch, store, yagoShapeInstances, wikidataToYago, nil)

	birthDate := term.NewIri("http://schema.org/birthDate")
	for _, f := range facts {
		if f.Predicate == birthDate {
			t.Errorf("sh:maxCount=1 with two competing statements should drop the whole group, got %+v", f)
		}
	}
}

func TestBuildPropertiesFromWikidataAndSchemaSkipsExcludedProperties(t *testing.T) {
	sch, err := schema.FromTurtle(factsTestSchema)
	if err != nil {
		t.Fatalf("schema.FromTurtle failed: %v", err)
	}
	ntriples := buildBirthDateTriples(
		"http://www.wikidata.org/entity/Q1", "http://www.wikidata.org/entity/statement/s1", "http://www.wikidata.org/value/v1", true)
	store := newTestStore(t, ntriples)

	alice := term.NewIri("http://yago-knowledge.org/resource/alice_Q1")
	person := term.NewIri("http://schema.org/Person")
	wikidataToYago := map[term.Term]term.Term{wd(1): alice}
	yagoShapeInstances := map[term.Term]termSet{person: newTermSet(alice)}

	facts, _ := buildPropertiesFromWikidataAndSchema(sch, store, yagoShapeInstances, wikidataToYago,
		[]term.Term{term.NewIri("http://schema.org/birthDate")})
	if len(facts) != 0 {
		t.Errorf("excluded property schema:birthDate should not be emitted, got %+v", facts)
	}
}

func TestIsExactlyDatatypes(t *testing.T) {
	set := newTermSet(vocab.XsdDate, vocab.XsdDateTime)
	if !isExactlyDatatypes(set, vocab.XsdDate, vocab.XsdDateTime) {
		t.Error("isExactlyDatatypes() should match an identical member set regardless of argument order check")
	}
	if isExactlyDatatypes(set, vocab.XsdDate) {
		t.Error("isExactlyDatatypes() should reject a proper subset")
	}
	if isExactlyDatatypes(set, vocab.XsdDate, vocab.XsdDateTime, vocab.XsdGYear) {
		t.Error("isExactlyDatatypes() should reject a proper superset")
	}
}
