// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

package plan

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"unicode"

	"github.com/yago-naga/yago4/internal/schema"
	"github.com/yago-naga/yago4/internal/term"
	"github.com/yago-naga/yago4/internal/vocab"
)

// buildYagoSchema re-emits the schema itself as RDF: every node
// shape's target class gets its typing, label/comment, subClassOf
// (with the Intangible/StructuredValue/Series rewrites) and
// disjointWith; every property shape's path gets its
// object/datatype-property typing, label/comment, subPropertyOf,
// inverseOf, functional typing when maxCount=1, and domain/range.
func buildYagoSchema(sch *schema.Schema) []Fact {
	seen := make(map[Fact]struct{})
	var out []Fact
	add := func(f Fact) {
		if _, ok := seen[f]; ok {
			return
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}

	for _, shape := range sch.NodeShapes() {
		class, ok := sch.Class(shape.TargetClass)
		if !ok {
			continue
		}
		add(Fact{Subject: class.ID, Predicate: vocab.RdfType, Object: vocab.OwlClass})
		if class.HasLabel {
			add(Fact{Subject: class.ID, Predicate: vocab.RdfsLabel, Object: termCamlCaseToRegular(class.Label)})
		}
		if class.HasComment {
			add(Fact{Subject: class.ID, Predicate: vocab.RdfsComment, Object: class.Comment})
		}
		for _, super := range class.SuperClasses {
			switch super {
			case vocab.SchemaIntangible, vocab.SchemaMedicalIntangible:
				add(Fact{Subject: class.ID, Predicate: vocab.RdfsSubClassOf, Object: vocab.SchemaThing})
			case vocab.SchemaStructuredValue, vocab.SchemaSeries:
				// dropped: modeling devices, not part of the type hierarchy
			default:
				add(Fact{Subject: class.ID, Predicate: vocab.RdfsSubClassOf, Object: super})
			}
		}
		for _, disjoint := range class.DisjointClasses {
			add(Fact{Subject: class.ID, Predicate: vocab.OwlDisjointWith, Object: disjoint})
		}
	}

	domains := make(map[term.Term]map[term.Term]struct{})
	objectRanges := make(map[term.Term]map[term.Term]struct{})
	datatypeRanges := make(map[term.Term]map[term.Term]struct{})
	addTo := func(m map[term.Term]map[term.Term]struct{}, k, v term.Term) {
		s, ok := m[k]
		if !ok {
			s = make(map[term.Term]struct{})
			m[k] = s
		}
		s[v] = struct{}{}
	}

	for _, shape := range sch.PropertyShapes() {
		property, ok := sch.Property(shape.Path)
		if !ok {
			continue
		}
		var kind term.Term
		switch {
		case len(shape.Nodes) > 0 && len(shape.Datatypes) == 0:
			kind = vocab.OwlObjectProperty
		case len(shape.Nodes) == 0 && len(shape.Datatypes) > 0:
			kind = vocab.OwlDatatypeProperty
		default:
			log.Printf("plan: property %v could not be both an object and a datatype property", property.ID)
			kind = vocab.RdfProperty
		}
		add(Fact{Subject: property.ID, Predicate: vocab.RdfType, Object: kind})

		if property.HasLabel {
			add(Fact{Subject: property.ID, Predicate: vocab.RdfsLabel, Object: termCamlCaseToRegular(property.Label)})
		}
		if property.HasComment {
			add(Fact{Subject: property.ID, Predicate: vocab.RdfsComment, Object: property.Comment})
		}
		for _, super := range property.SuperProperties {
			add(Fact{Subject: property.ID, Predicate: vocab.RdfsSubPropertyOf, Object: super})
		}
		for _, inverse := range property.Inverse {
			add(Fact{Subject: property.ID, Predicate: vocab.OwlInverseOf, Object: inverse})
		}
		if shape.HasMaxCount && shape.MaxCount == 1 {
			add(Fact{Subject: property.ID, Predicate: vocab.RdfType, Object: vocab.OwlFunctionalProperty})
		}

		if shape.HasParentShape {
			addTo(domains, shape.Path, sch.NodeShape(shape.ParentShape).TargetClass)
		}
		for _, node := range shape.Nodes {
			addTo(objectRanges, shape.Path, sch.NodeShape(node).TargetClass)
		}
		for _, dt := range shape.Datatypes {
			if dt == vocab.RdfLangString {
				// rdf:langString has no OWL 2 / RDF 1.0 equivalent.
				addTo(datatypeRanges, shape.Path, vocab.RdfPlainLiteral)
			} else {
				addTo(datatypeRanges, shape.Path, dt)
			}
		}
	}

	for property, domain := range domains {
		addUnionOfObject(add, property, vocab.RdfsDomain, sortedTerms(domain), vocab.OwlClass)
	}
	for property, objRange := range objectRanges {
		addUnionOfObject(add, property, vocab.RdfsRange, sortedTerms(objRange), vocab.OwlClass)
	}
	for property, dtRange := range datatypeRanges {
		addUnionOfObject(add, property, vocab.RdfsRange, sortedTerms(dtRange), vocab.RdfsDatatype)
	}

	return out
}

func sortedTerms(set map[term.Term]struct{}) []term.Term {
	out := make([]term.Term, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return stringName([]term.Term{out[i]}) < stringName([]term.Term{out[j]}) })
	return out
}

// addUnionOfObject emits subject-predicate-object directly when
// objects has a single member, or a fresh owl:unionOf node (with a
// deterministic name derived from its members) otherwise.
func addUnionOfObject(add func(Fact), subject, predicate term.Term, objects []term.Term, class term.Term) {
	if len(objects) == 1 {
		add(Fact{Subject: subject, Predicate: predicate, Object: objects[0]})
		return
	}
	union := term.NewIri(fmt.Sprintf("%sowl:unionOf-%s", yagoValuePrefix, stringName(objects)))
	add(Fact{Subject: subject, Predicate: predicate, Object: union})
	add(Fact{Subject: union, Predicate: vocab.RdfType, Object: class})
	addListObject(add, union, vocab.OwlUnionOf, objects)
}

// addListObject emits an RDF list node chain for objects, built
// tail-first so that every node's rdf:rest points at the previously
// built node (or rdf:nil for the last element), and links subject to
// the list's head via predicate.
func addListObject(add func(Fact), subject, predicate term.Term, objects []term.Term) {
	name := fmt.Sprintf("%slist-%s-", yagoValuePrefix, stringName(objects))

	current := vocab.RdfNil
	for i := len(objects) - 1; i >= 0; i-- {
		next := term.NewIri(fmt.Sprintf("%s%d", name, i+1))
		add(Fact{Subject: next, Predicate: vocab.RdfRest, Object: current})
		add(Fact{Subject: next, Predicate: vocab.RdfFirst, Object: objects[i]})
		current = next
	}
	add(Fact{Subject: subject, Predicate: predicate, Object: current})
}

// stringName builds a short, deterministic name fragment for a list
// of IRI terms, abbreviating any IRI under a known vocabulary prefix.
func stringName(terms []term.Term) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		if t.Kind != term.Iri {
			log.Printf("plan: not able to create a nice string name for: %v", t)
			parts = append(parts, fmt.Sprintf("term%d", t.Kind))
			continue
		}
		parts = append(parts, abbreviateIRI(t.Str))
	}
	return strings.Join(parts, "-")
}

func abbreviateIRI(iri string) string {
	for _, pair := range vocab.Prefixes {
		prefix, start := pair[0], pair[1]
		if strings.HasPrefix(iri, start) {
			return prefix + ":" + strings.TrimPrefix(iri, start)
		}
	}
	r := strings.NewReplacer("/", "", "?", "", "#", "")
	return r.Replace(iri)
}

// termCamlCaseToRegular applies camlCaseToRegular to a string or
// language-tagged literal, leaving every other term kind untouched.
func termCamlCaseToRegular(t term.Term) term.Term {
	switch t.Kind {
	case term.StringLiteral:
		return term.NewStringLiteral(camlCaseToRegular(t.Str))
	case term.LanguageTaggedString:
		return term.NewLanguageTaggedString(camlCaseToRegular(t.Str), t.Str2)
	default:
		return t
	}
}

// camlCaseToRegular rewrites camelCase text into space-separated words
// by inserting a space before every uppercase rune not already
// preceded by whitespace, then lowercasing that rune.
func camlCaseToRegular(txt string) string {
	var out strings.Builder
	out.Grow(len(txt))
	var lastRune rune
	hasLast := false
	for _, c := range txt {
		if unicode.IsUpper(c) {
			if hasLast && !unicode.IsSpace(lastRune) {
				out.WriteByte(' ')
			}
			out.WriteRune(unicode.ToLower(c))
		} else {
			out.WriteRune(c)
		}
		lastRune = c
		hasLast = true
	}
	return out.String()
}
