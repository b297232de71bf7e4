// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

package schema

import (
	"testing"

	"github.com/yago-naga/yago4/internal/term"
	"github.com/yago-naga/yago4/internal/vocab"
)

func mustOpen(t *testing.T) *Schema {
	t.Helper()
	s, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return s
}

// Fixture-only IRIs: these name classes, properties and shapes defined
// in the embedded illustrative Turtle documents under data/, not the
// structural vocabulary in internal/vocab.
var (
	schemaPerson                 = term.NewIri("http://schema.org/Person")
	schemaPlace                  = term.NewIri("http://schema.org/Place")
	schemaBirthPlace             = term.NewIri("http://schema.org/birthPlace")
	schemaBirthPlaceOf           = term.NewIri("http://schema.org/birthPlaceOf")
	schemaPersonShape            = term.NewIri("http://schema.org/PersonShape")
	schemaPersonShapeName        = term.NewIri("http://schema.org/PersonShape_name")
	schemaPersonShapeDescription = term.NewIri("http://schema.org/PersonShape_description")
	schemaPlaceShapeGeo          = term.NewIri("http://schema.org/PlaceShape_geo")
	schemaGeoCoordinatesShape    = term.NewIri("http://schema.org/GeoCoordinatesShape")
	bioschemaTaxonRank           = term.NewIri("http://bioschemas.org/taxonRank")
)

func TestLoadSchema(t *testing.T) {
	s := mustOpen(t)
	if len(s.Classes()) == 0 {
		t.Fatal("expected at least one class to be loaded")
	}
	if len(s.NodeShapes()) == 0 {
		t.Fatal("expected at least one node shape to be loaded")
	}
}

func TestClassHierarchyAndDisjointness(t *testing.T) {
	s := mustOpen(t)
	c, ok := s.Class(schemaPerson)
	if !ok {
		t.Fatal("schema:Person should be a Class")
	}
	if !containsTerm(c.SuperClasses, vocab.SchemaThing) {
		t.Errorf("schema:Person should be rdfs:subClassOf schema:Thing, got %+v", c.SuperClasses)
	}
	if !containsTerm(c.DisjointClasses, schemaPlace) {
		t.Errorf("schema:Person should be owl:disjointWith schema:Place, got %+v", c.DisjointClasses)
	}
	if !c.HasLabel || c.Label != term.NewLanguageTaggedString("Person", "en") {
		t.Errorf("schema:Person label = %+v, want Person@en", c.Label)
	}
}

func TestClassNotFound(t *testing.T) {
	s := mustOpen(t)
	if _, ok := s.Class(vocab.SchemaAbout); ok {
		t.Error("schema:about is a Property, not a Class")
	}
}

func TestPropertyInverse(t *testing.T) {
	s := mustOpen(t)
	p, ok := s.Property(schemaBirthPlace)
	if !ok {
		t.Fatal("schema:birthPlace should be a Property")
	}
	if !containsTerm(p.Inverse, schemaBirthPlaceOf) {
		t.Errorf("schema:birthPlace inverse = %+v, want [schema:birthPlaceOf]", p.Inverse)
	}
}

func TestNodeShapeProperties(t *testing.T) {
	s := mustOpen(t)
	ns := s.NodeShape(schemaPersonShape)
	if ns.TargetClass != schemaPerson {
		t.Errorf("PersonShape target class = %+v, want schema:Person", ns.TargetClass)
	}
	if len(ns.Properties) != 3 {
		t.Fatalf("PersonShape has %d property shapes, want 3", len(ns.Properties))
	}
	if !containsTerm(ns.FromClasses, schemaPerson) {
		t.Errorf("PersonShape ys:fromClass = %+v, want [schema:Person]", ns.FromClasses)
	}
}

func TestPropertyShapeConstraints(t *testing.T) {
	s := mustOpen(t)
	ps := s.PropertyShape(schemaPersonShapeName)
	if !ps.HasMaxCount || ps.MaxCount != 1 {
		t.Errorf("PersonShape_name maxCount = %v/%v, want true/1", ps.HasMaxCount, ps.MaxCount)
	}
	if !ps.HasPattern || ps.Pattern != "^.+$" {
		t.Errorf("PersonShape_name pattern = %v/%q", ps.HasPattern, ps.Pattern)
	}
	if !containsTerm(ps.Datatypes, vocab.XsdString) {
		t.Errorf("PersonShape_name datatypes = %+v, want [xsd:string]", ps.Datatypes)
	}

	desc := s.PropertyShape(schemaPersonShapeDescription)
	if !desc.IsUniqueLang {
		t.Error("PersonShape_description should be sh:uniqueLang true")
	}
}

func TestPropertyShapeOrResolvesListMembers(t *testing.T) {
	s := mustOpen(t)
	ps := s.PropertyShape(schemaPlaceShapeGeo)
	if !containsTerm(ps.Nodes, schemaGeoCoordinatesShape) {
		t.Errorf("PlaceShape_geo nodes via sh:or = %+v, want to include GeoCoordinatesShape", ps.Nodes)
	}
	if !containsTerm(ps.Datatypes, vocab.XsdString) {
		t.Errorf("PlaceShape_geo datatypes via sh:or = %+v, want to include xsd:string", ps.Datatypes)
	}
}

func TestAnnotationPropertyShapes(t *testing.T) {
	s := mustOpen(t)
	shapes := s.AnnotationPropertyShapes()
	if len(shapes) != 1 {
		t.Fatalf("got %d annotation property shapes, want 1", len(shapes))
	}
	if shapes[0].Path != vocab.SchemaAlternateName {
		t.Errorf("annotation property shape path = %+v, want schema:alternateName", shapes[0].Path)
	}
}

func TestPropertyShapesCoversBioShapes(t *testing.T) {
	s := mustOpen(t)
	found := false
	for _, ps := range s.PropertyShapes() {
		if ps.Path == bioschemaTaxonRank {
			found = true
		}
	}
	if !found {
		t.Error("expected bioschema:taxonRank property shape from shapes-bio.ttl to be present")
	}
}

func containsTerm(haystack []term.Term, needle term.Term) bool {
	for _, t := range haystack {
		if t == needle {
			return true
		}
	}
	return false
}
