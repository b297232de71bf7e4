// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

// Package schema loads the embedded ontology and SHACL shape
// documents into a small in-memory RDF graph and exposes a read-only,
// pattern-matching accessor over it: classes, properties, node
// shapes, and property shapes, including sh:or/RDF-list union
// resolution.
package schema

import (
	"bufio"
	"embed"
	"hash/fnv"
	"log"
	"strconv"
	"strings"

	"github.com/knakk/rdf"

	"github.com/yago-naga/yago4/internal/term"
	"github.com/yago-naga/yago4/internal/vocab"
)

//go:embed data/*.ttl
var schemaData embed.FS

var schemaFiles = []string{
	"data/schema.ttl",
	"data/shapes.ttl",
	"data/bioschemas.ttl",
	"data/shapes-bio.ttl",
}

// Class mirrors a schema.org-style rdfs:Class node.
type Class struct {
	ID              term.Term
	Label           term.Term
	HasLabel        bool
	Comment         term.Term
	HasComment      bool
	SuperClasses    []term.Term
	DisjointClasses []term.Term
}

// Property mirrors an rdf:Property/owl:ObjectProperty/owl:DatatypeProperty node.
type Property struct {
	ID              term.Term
	Label           term.Term
	HasLabel        bool
	Comment         term.Term
	HasComment      bool
	SuperProperties []term.Term
	Inverse         []term.Term
}

// NodeShape is a SHACL node shape extended with the YAGO ys:fromClass
// predicate.
type NodeShape struct {
	ID          term.Term
	TargetClass term.Term
	Properties  []PropertyShape
	FromClasses []term.Term
}

// PropertyShape is a SHACL property shape extended with ys:fromProperty.
type PropertyShape struct {
	ID             term.Term
	Path           term.Term
	ParentShape    term.Term
	HasParentShape bool
	Datatypes      []term.Term
	Nodes          []term.Term
	MaxCount       int
	HasMaxCount    bool
	IsUniqueLang   bool
	Pattern        string
	HasPattern     bool
	FromProperties []term.Term
}

// Schema is a read-only view over the embedded ontology/shape graph.
type Schema struct {
	graph *simpleGraph
}

// Open parses the embedded Turtle documents and builds the schema.
func Open() (*Schema, error) {
	g := newSimpleGraph()
	for _, name := range schemaFiles {
		data, err := schemaData.ReadFile(name)
		if err != nil {
			return nil, err
		}
		if err := g.loadTurtle(string(data)); err != nil {
			return nil, err
		}
	}
	return &Schema{graph: g}, nil
}

// FromTurtle builds a Schema from in-memory Turtle documents, for use
// by tests of packages that consume a Schema.
func FromTurtle(docs ...string) (*Schema, error) {
	g := newSimpleGraph()
	for _, doc := range docs {
		if err := g.loadTurtle(doc); err != nil {
			return nil, err
		}
	}
	return &Schema{graph: g}, nil
}

// Class returns the Class at id, if id bears rdf:type rdfs:Class.
func (s *Schema) Class(id term.Term) (Class, bool) {
	if !s.graph.contains(id, vocab.RdfType, vocab.RdfsClass) {
		return Class{}, false
	}
	c := Class{
		ID:              id,
		SuperClasses:    s.graph.objectsForSubjectPredicate(id, vocab.RdfsSubClassOf),
		DisjointClasses: s.graph.objectsForSubjectPredicate(id, vocab.OwlDisjointWith),
	}
	c.Label, c.HasLabel = s.graph.objectForSubjectPredicate(id, vocab.RdfsLabel)
	c.Comment, c.HasComment = s.graph.objectForSubjectPredicate(id, vocab.RdfsComment)
	return c, true
}

// Classes returns every Class in the schema.
func (s *Schema) Classes() []Class {
	var out []Class
	for _, id := range s.graph.subjectsForPredicateObject(vocab.RdfType, vocab.RdfsClass) {
		if c, ok := s.Class(id); ok {
			out = append(out, c)
		}
	}
	return out
}

// Property returns the Property at id, if id is typed as a property.
func (s *Schema) Property(id term.Term) (Property, bool) {
	isProperty := false
	for _, t := range vocab.PropertyTypes {
		if s.graph.contains(id, vocab.RdfType, t) {
			isProperty = true
			break
		}
	}
	if !isProperty {
		return Property{}, false
	}
	p := Property{
		ID:              id,
		SuperProperties: s.graph.objectsForSubjectPredicate(id, vocab.RdfsSubPropertyOf),
	}
	p.Label, p.HasLabel = s.graph.objectForSubjectPredicate(id, vocab.RdfsLabel)
	p.Comment, p.HasComment = s.graph.objectForSubjectPredicate(id, vocab.RdfsComment)
	p.Inverse = append(p.Inverse, s.graph.objectsForSubjectPredicate(id, vocab.OwlInverseOf)...)
	p.Inverse = append(p.Inverse, s.graph.objectsForSubjectPredicate(id, vocab.SchemaInverseOf)...)
	return p, true
}

// NodeShape returns the NodeShape at id.
func (s *Schema) NodeShape(id term.Term) NodeShape {
	targetClass, ok := s.graph.objectForSubjectPredicate(id, vocab.ShTargetClass)
	if !ok {
		targetClass = id
	}
	ns := NodeShape{
		ID:          id,
		TargetClass: targetClass,
		FromClasses: s.graph.objectsForSubjectPredicate(id, vocab.YsFromClass),
	}
	for _, pid := range s.graph.objectsForSubjectPredicate(id, vocab.ShProperty) {
		ns.Properties = append(ns.Properties, s.PropertyShape(pid))
	}
	return ns
}

// NodeShapes returns every NodeShape in the schema.
func (s *Schema) NodeShapes() []NodeShape {
	var out []NodeShape
	for _, id := range s.graph.subjectsForPredicateObject(vocab.RdfType, vocab.ShNodeShape) {
		out = append(out, s.NodeShape(id))
	}
	return out
}

// PropertyShape returns the PropertyShape at id. A missing sh:path is
// a schema-authoring error and is fatal, matching the original
// implementation's unconditional unwrap of that field.
func (s *Schema) PropertyShape(id term.Term) PropertyShape {
	path, ok := s.graph.objectForSubjectPredicate(id, vocab.ShPath)
	if !ok {
		log.Fatalf("schema: property shape %v has no sh:path", id)
	}
	ps := PropertyShape{
		ID:             id,
		Path:           path,
		FromProperties: s.graph.objectsForSubjectPredicate(id, vocab.YsFromProperty),
	}
	ps.ParentShape, ps.HasParentShape = s.graph.subjectForPredicateObject(vocab.ShProperty, id)

	roots := s.propertyShapeRoots(id)
	for _, cid := range roots {
		ps.Datatypes = append(ps.Datatypes, s.graph.objectsForSubjectPredicate(cid, vocab.ShDatatype)...)
		ps.Nodes = append(ps.Nodes, s.graph.objectsForSubjectPredicate(cid, vocab.ShNode)...)
	}

	if mc, ok := s.graph.objectForSubjectPredicate(id, vocab.ShMaxCount); ok && mc.Kind == term.IntegerLiteral {
		ps.MaxCount = int(mc.Int)
		ps.HasMaxCount = true
	}

	if ul, ok := s.graph.objectForSubjectPredicate(id, vocab.ShUniqueLang); ok && ul.Kind == term.TypedLiteral {
		ps.IsUniqueLang = ul.Str == "true" || ul.Str == "1"
	}

	if pat, ok := s.graph.objectForSubjectPredicate(id, vocab.ShPattern); ok && pat.Kind == term.StringLiteral {
		ps.Pattern = pat.Str
		ps.HasPattern = true
	}

	return ps
}

// PropertyShapes returns every PropertyShape in the schema (one per
// sh:property edge).
func (s *Schema) PropertyShapes() []PropertyShape {
	var out []PropertyShape
	for _, t := range s.graph.triplesForPredicate(vocab.ShProperty) {
		out = append(out, s.PropertyShape(t.object))
	}
	return out
}

// AnnotationPropertyShapes returns every shape typed
// ys:AnnotationPropertyShape.
func (s *Schema) AnnotationPropertyShapes() []PropertyShape {
	var out []PropertyShape
	for _, id := range s.graph.subjectsForPredicateObject(vocab.RdfType, vocab.YsAnnotationPropertyShape) {
		out = append(out, s.PropertyShape(id))
	}
	return out
}

// propertyShapeRoots returns mainRoot plus every member reached
// through sh:or followed by RDF-list traversal.
func (s *Schema) propertyShapeRoots(mainRoot term.Term) []term.Term {
	roots := []term.Term{mainRoot}
	for _, v := range s.graph.objectsForSubjectPredicate(mainRoot, vocab.ShOr) {
		roots = append(roots, s.listValues(v)...)
	}
	return roots
}

// listValues walks an RDF list via rdf:first/rdf:rest, stopping when
// no further rdf:rest edge is found (matching the original accessor:
// a well-formed list also ends in rdf:nil, but that is not required
// here).
func (s *Schema) listValues(root term.Term) []term.Term {
	var elements []term.Term
	for {
		next, ok := s.graph.objectForSubjectPredicate(root, vocab.RdfRest)
		if !ok {
			break
		}
		if e, ok := s.graph.objectForSubjectPredicate(root, vocab.RdfFirst); ok {
			elements = append(elements, e)
		}
		root = next
	}
	return elements
}

// triple is a flat (S,P,O) row of the in-memory schema graph.
type triple struct {
	subject, predicate, object term.Term
}

// simpleGraph is a flat triple set with pattern-match accessors, the
// same "RDF graph as a HashSet<Triple>" model as the original.
type simpleGraph struct {
	triples map[triple]struct{}
}

func newSimpleGraph() *simpleGraph {
	return &simpleGraph{triples: make(map[triple]struct{})}
}

// loadTurtle parses data as Turtle and inserts its triples, seeding
// blank-node identifiers with a hash of data so that blank nodes from
// different documents never collide.
func (g *simpleGraph) loadTurtle(data string) error {
	h := fnv.New64a()
	h.Write([]byte(data))
	seed := strconv.FormatUint(h.Sum64(), 36)

	dec := rdf.NewTripleDecoder(bufio.NewReader(strings.NewReader(data)), rdf.Turtle)
	for {
		t, err := dec.Decode()
		if err != nil {
			break
		}
		g.triples[triple{
			subject:   term.FromParser(t.Subj, seed),
			predicate: term.FromParser(t.Pred, seed),
			object:    term.FromParser(t.Obj, seed),
		}] = struct{}{}
	}
	return nil
}

func (g *simpleGraph) contains(s, p, o term.Term) bool {
	_, ok := g.triples[triple{s, p, o}]
	return ok
}

func (g *simpleGraph) objectsForSubjectPredicate(s, p term.Term) []term.Term {
	var out []term.Term
	for t := range g.triples {
		if t.subject == s && t.predicate == p {
			out = append(out, t.object)
		}
	}
	return out
}

func (g *simpleGraph) objectForSubjectPredicate(s, p term.Term) (term.Term, bool) {
	for t := range g.triples {
		if t.subject == s && t.predicate == p {
			return t.object, true
		}
	}
	return term.Term{}, false
}

func (g *simpleGraph) subjectsForPredicateObject(p, o term.Term) []term.Term {
	var out []term.Term
	for t := range g.triples {
		if t.predicate == p && t.object == o {
			out = append(out, t.subject)
		}
	}
	return out
}

func (g *simpleGraph) subjectForPredicateObject(p, o term.Term) (term.Term, bool) {
	for t := range g.triples {
		if t.predicate == p && t.object == o {
			return t.subject, true
		}
	}
	return term.Term{}, false
}

func (g *simpleGraph) triplesForPredicate(p term.Term) []triple {
	var out []triple
	for t := range g.triples {
		if t.predicate == p {
			out = append(out, t)
		}
	}
	return out
}
