// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

package plan

import (
	"testing"

	"github.com/yago-naga/yago4/internal/schema"
	"github.com/yago-naga/yago4/internal/term"
	"github.com/yago-naga/yago4/internal/vocab"
)

func TestCamlCaseToRegular(t *testing.T) {
	tests := []struct{ in, want string }{
		{"alternateName", "alternate name"},
		{"URL", "u r l"},
		{"givenName", "given name"},
		{"plain text", "plain text"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := camlCaseToRegular(tt.in); got != tt.want {
			t.Errorf("camlCaseToRegular(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTermCamlCaseToRegular(t *testing.T) {
	got := termCamlCaseToRegular(term.NewStringLiteral("alternateName"))
	if got.Str != "alternate name" {
		t.Errorf("termCamlCaseToRegular() = %q, want %q", got.Str, "alternate name")
	}

	langTagged := termCamlCaseToRegular(term.NewLanguageTaggedString("alternateName", "en"))
	if langTagged.Str != "alternate name" || langTagged.Str2 != "en" {
		t.Errorf("termCamlCaseToRegular() = %+v, want value=%q lang=en", langTagged, "alternate name")
	}

	iri := term.NewIri("http://schema.org/alternateName")
	if got := termCamlCaseToRegular(iri); got != iri {
		t.Errorf("termCamlCaseToRegular() should leave IRIs untouched, got %+v", got)
	}
}

func TestAbbreviateIRI(t *testing.T) {
	if got := abbreviateIRI("http://schema.org/Person"); got != "schema:Person" {
		t.Errorf("abbreviateIRI() = %q, want %q", got, "schema:Person")
	}
	if got := abbreviateIRI("http://example.com/unknown/path"); got == "http://example.com/unknown/path" {
		t.Errorf("abbreviateIRI() should strip delimiter characters from an unknown IRI")
	}
}

func TestAddUnionOfObjectSingleMember(t *testing.T) {
	var facts []Fact
	add := func(f Fact) { facts = append(facts, f) }
	subject := term.NewIri("http://schema.org/name")
	addUnionOfObject(add, subject, vocab.RdfsRange, []term.Term{vocab.SchemaThing}, vocab.OwlClass)
	if len(facts) != 1 {
		t.Fatalf("addUnionOfObject() with one member emitted %d facts, want 1", len(facts))
	}
	if facts[0].Object != vocab.SchemaThing {
		t.Errorf("addUnionOfObject() object = %v, want %v", facts[0].Object, vocab.SchemaThing)
	}
}

func TestAddUnionOfObjectMultipleMembers(t *testing.T) {
	var facts []Fact
	add := func(f Fact) { facts = append(facts, f) }
	subject := term.NewIri("http://schema.org/name")
	addUnionOfObject(add, subject, vocab.RdfsRange, []term.Term{vocab.SchemaThing, vocab.SchemaPlace}, vocab.OwlClass)

	var unionNode term.Term
	for _, f := range facts {
		if f.Subject == subject && f.Predicate == vocab.RdfsRange {
			unionNode = f.Object
		}
	}
	if unionNode == (term.Term{}) {
		t.Fatalf("expected a union node linked from the subject, facts = %+v", facts)
	}
	var typed bool
	for _, f := range facts {
		if f.Subject == unionNode && f.Predicate == vocab.RdfType && f.Object == vocab.OwlClass {
			typed = true
		}
	}
	if !typed {
		t.Errorf("expected the union node to be typed owl:Class, facts = %+v", facts)
	}
}

func TestBuildYagoSchemaIntangibleIsFoldedIntoThing(t *testing.T) {
	sch, err := schema.FromTurtle(classesTestSchema)
	if err != nil {
		t.Fatalf("schema.FromTurtle failed: %v", err)
	}
	facts := buildYagoSchema(sch)

	person := term.NewIri("http://schema.org/Person")
	thing := vocab.SchemaThing
	var foundPersonSubClassOfThing bool
	for _, f := range facts {
		if f.Subject == person && f.Predicate == vocab.RdfsSubClassOf && f.Object == thing {
			foundPersonSubClassOfThing = true
		}
	}
	if !foundPersonSubClassOfThing {
		t.Errorf("expected Person subClassOf Thing (folded from Intangible), facts = %+v", facts)
	}
}
