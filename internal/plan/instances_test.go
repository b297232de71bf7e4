// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

package plan

import (
	"testing"

	"github.com/yago-naga/yago4/internal/schema"
	"github.com/yago-naga/yago4/internal/term"
)

func TestYagoShapeInstances(t *testing.T) {
	sch, err := schema.FromTurtle(classesTestSchema)
	if err != nil {
		t.Fatalf("schema.FromTurtle failed: %v", err)
	}

	var ntriples string
	for i := 0; i < 5; i++ {
		ntriples += instanceTriple(i, 5) // instances of Q5 (human) -> Person
	}
	for i := 5; i < 8; i++ {
		ntriples += instanceTriple(i, 2221906) // instances of Q2221906 -> Place
	}
	store := newTestStore(t, ntriples)

	wikidataToYago := map[term.Term]term.Term{
		wd(5):       term.NewIri("http://schema.org/Person"),
		wd(2221906): term.NewIri("http://schema.org/Place"),
	}
	wikidataToEnWikipedia := map[term.Term]string{}
	classes := buildYagoClassesAndSuperClassOf(sch, store, wikidataToYago, wikidataToEnWikipedia)

	// Every instance resource must also get a wikidataToYago entry so
	// that mapToYago can resolve it.
	for i := 0; i < 8; i++ {
		qid := uint32(9000 + i)
		wikidataToYago[wd(qid)] = term.NewIri("http://yago-knowledge.org/resource/Q" + itoa(int(qid)))
	}

	shapeInstances := yagoShapeInstances(sch, store, classes.WikidataToYagoClassMapping,
		classes.YagoSuperClassOf, classes.YagoClasses, wikidataToYago)

	personIRI := term.NewIri("http://schema.org/Person")
	placeIRI := term.NewIri("http://schema.org/Place")

	if got := len(shapeInstances[personIRI]); got != 5 {
		t.Errorf("len(shapeInstances[Person]) = %d, want 5", got)
	}
	if got := len(shapeInstances[placeIRI]); got != 3 {
		t.Errorf("len(shapeInstances[Place]) = %d, want 3", got)
	}

	q9000 := term.NewIri("http://yago-knowledge.org/resource/Q9000")
	if !shapeInstances[personIRI].has(q9000) {
		t.Errorf("expected Q9000 to be a Person instance, got %+v", shapeInstances[personIRI])
	}
}

func TestYagoShapeInstancesPrunesDisjointIntersection(t *testing.T) {
	sch, err := schema.FromTurtle(classesTestSchema)
	if err != nil {
		t.Fatalf("schema.FromTurtle failed: %v", err)
	}

	var ntriples string
	ntriples += instanceTriple(0, 5)
	ntriples += instanceTriple(0, 2221906) // Q9000 is both a Person and a Place instance
	store := newTestStore(t, ntriples)

	wikidataToYago := map[term.Term]term.Term{
		wd(5):       term.NewIri("http://schema.org/Person"),
		wd(2221906): term.NewIri("http://schema.org/Place"),
		wd(9000):    term.NewIri("http://yago-knowledge.org/resource/Q9000"),
	}
	classes := buildYagoClassesAndSuperClassOf(sch, store, wikidataToYago, map[term.Term]string{})

	shapeInstances := yagoShapeInstances(sch, store, classes.WikidataToYagoClassMapping,
		classes.YagoSuperClassOf, classes.YagoClasses, wikidataToYago)

	q9000 := term.NewIri("http://yago-knowledge.org/resource/Q9000")
	if shapeInstances[term.NewIri("http://schema.org/Person")].has(q9000) {
		t.Error("expected Q9000 to be pruned from Person, being also a Place instance")
	}
	if shapeInstances[term.NewIri("http://schema.org/Place")].has(q9000) {
		t.Error("expected Q9000 to be pruned from Place, being also a Person instance")
	}
}
