// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

package plan

import (
	"regexp"

	"github.com/yago-naga/yago4/internal/multimap"
	"github.com/yago-naga/yago4/internal/pts"
	"github.com/yago-naga/yago4/internal/schema"
	"github.com/yago-naga/yago4/internal/term"
	"github.com/yago-naga/yago4/internal/vocab"
)

// buildSimpleInstanceOf emits one rdf:type fact per (shape, instance)
// pair of yagoShapeInstances, with no further propagation up the
// class hierarchy.
func buildSimpleInstanceOf(yagoShapeInstances map[term.Term]termSet) []Fact {
	var out []Fact
	for class, instances := range yagoShapeInstances {
		for instance := range instances {
			out = append(out, Fact{Subject: instance, Predicate: vocab.RdfType, Object: class})
		}
	}
	return out
}

// buildFullInstanceOf emits one rdf:type fact for every (instance,
// class) pair reachable from yagoThings (normally the instances of
// schema:Thing) through the Wikidata-to-YAGO-class mapping, so that
// every class an instance belongs to - not just its most specific
// shape - is recorded.
func buildFullInstanceOf(
	yagoThings termSet,
	wikidataToYagoClassMapping *multimap.Multimap[term.Term, term.Term],
	store *pts.Store,
	wikidataToYago map[term.Term]term.Term,
) []Fact {
	var wikidataInstances []kvPair
	for _, pr := range store.SubjectsObjectsForPredicate(vocab.WdtP31) {
		wikidataInstances = append(wikidataInstances, kvPair{Key: pr.Object, Value: pr.Subject})
	}

	var filtered []kvPairOf[term.Term]
	for _, p := range mapValueToYago(wikidataInstances, wikidataToYago) {
		if !yagoThings.has(p.Value) {
			continue
		}
		filtered = append(filtered, kvPairOf[term.Term]{Key: p.Key, Value: p.Value})
	}

	var out []Fact
	for _, row := range joinPairs(filtered, wikidataToYagoClassMapping) {
		out = append(out, Fact{Subject: row.Left, Predicate: vocab.RdfType, Object: row.Right})
	}
	return out
}

// buildClassesDescription emits the owl:Class typing, rdfs:subClassOf
// edges, and rdfs:label/rdfs:comment facts describing each kept YAGO
// class.
func buildClassesDescription(
	yagoClasses termSet,
	yagoSuperClassOf *multimap.Multimap[term.Term, term.Term],
	store *pts.Store,
	wikidataToYago map[term.Term]term.Term,
) []Fact {
	var out []Fact
	for c := range yagoClasses {
		out = append(out, Fact{Subject: c, Predicate: vocab.RdfType, Object: vocab.OwlClass})
	}
	for _, p := range yagoSuperClassOf.IterFlat() {
		// p.Key is the super class, p.Value the sub class.
		out = append(out, Fact{Subject: p.Value, Predicate: vocab.RdfsSubClassOf, Object: p.Key})
	}

	var labelPairs []kvPairOf[term.Term]
	for _, pr := range store.SubjectsObjectsForPredicate(vocab.SkosPrefLabel) {
		labelPairs = append(labelPairs, kvPairOf[term.Term]{Key: pr.Subject, Value: pr.Object})
	}
	for _, p := range mapKeyToYago(labelPairs, wikidataToYago) {
		if !yagoClasses.has(p.Key) {
			continue
		}
		out = append(out, Fact{Subject: p.Key, Predicate: vocab.RdfsLabel, Object: p.Value})
	}

	var commentPairs []kvPairOf[term.Term]
	for _, pr := range store.SubjectsObjectsForPredicate(vocab.SchemaDescription) {
		commentPairs = append(commentPairs, kvPairOf[term.Term]{Key: pr.Subject, Value: pr.Object})
	}
	for _, p := range mapKeyToYago(commentPairs, wikidataToYago) {
		if !yagoClasses.has(p.Key) {
			continue
		}
		out = append(out, Fact{Subject: p.Key, Predicate: vocab.RdfsComment, Object: p.Value})
	}

	return out
}

// termDatatype returns the xsd/rdf datatype IRI term describing a
// literal's lexical representation, mirroring the classification a
// SHACL sh:datatype constraint is checked against. Non-literal terms
// have no datatype.
func termDatatype(t term.Term) (term.Term, bool) {
	switch t.Kind {
	case term.StringLiteral:
		return vocab.XsdString, true
	case term.IntegerLiteral:
		return vocab.XsdInteger, true
	case term.DecimalLiteral:
		return vocab.XsdDecimal, true
	case term.DoubleLiteral:
		return vocab.XsdDouble, true
	case term.DateTimeLiteral:
		return vocab.XsdDateTime, true
	case term.LanguageTaggedString:
		return vocab.RdfLangString, true
	case term.TypedLiteral:
		return term.NewIri(t.Str2), true
	default:
		return term.Term{}, false
	}
}

// filterDomain keeps only the (subject, object) pairs whose subject
// belongs to the instance set of shape's parent shape, i.e. enforces
// the property shape's domain. For a shape with no parent shape it
// returns nil, dropping every pair.
func filterDomain(pairs []kvPairOf[term.Term], yagoShapeInstances map[term.Term]termSet, shape schema.PropertyShape) []kvPairOf[term.Term] {
	if !shape.HasParentShape {
		return nil
	}
	allowed := yagoShapeInstances[shape.ParentShape]
	out := make([]kvPairOf[term.Term], 0, len(pairs))
	for _, p := range pairs {
		if allowed.has(p.Key) {
			out = append(out, p)
		}
	}
	return out
}

// filterObjectRange keeps only the (subject, object) pairs whose
// object belongs to at least one of expectedClasses' instance sets.
func filterObjectRange(pairs []kvPairOf[term.Term], yagoShapeInstances map[term.Term]termSet, expectedClasses []term.Term) []kvPairOf[term.Term] {
	out := make([]kvPairOf[term.Term], 0, len(pairs))
	for _, p := range pairs {
		for _, class := range expectedClasses {
			if yagoShapeInstances[class].has(p.Value) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// enforceMaxCount groups pairs by subject and drops every fact for a
// subject whose group size exceeds maxCount: the whole group is
// dropped, never truncated to the limit.
func enforceMaxCount(pairs []kvPairOf[term.Term], maxCount int) []kvPairOf[term.Term] {
	counts := make(map[term.Term]int, len(pairs))
	for _, p := range pairs {
		counts[p.Key]++
	}
	out := make([]kvPairOf[term.Term], 0, len(pairs))
	for _, p := range pairs {
		if counts[p.Key] <= maxCount {
			out = append(out, p)
		}
	}
	return out
}

// enforcePattern keeps only pairs whose object is a string literal
// matching pattern, compiled once per call. A malformed pattern drops
// every pair, matching the conservative failure mode of a schema
// authoring mistake.
func enforcePattern(pairs []kvPairOf[term.Term], pattern string) []kvPairOf[term.Term] {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	out := make([]kvPairOf[term.Term], 0, len(pairs))
	for _, p := range pairs {
		if p.Value.Kind == term.StringLiteral && re.MatchString(p.Value.Str) {
			out = append(out, p)
		}
	}
	return out
}

// buildSimplePropertiesFromSchema emits facts for the schema
// properties in properties whose values come straight from a
// datatype-typed Wikidata statement, applying each property shape's
// domain, sh:maxCount, and sh:pattern constraints.
func buildSimplePropertiesFromSchema(
	sch *schema.Schema,
	store *pts.Store,
	yagoShapeInstances map[term.Term]termSet,
	wikidataToYago map[term.Term]term.Term,
	properties []term.Term,
) []Fact {
	wanted := newTermSet(properties...)

	var out []Fact
	for _, shape := range sch.PropertyShapes() {
		if !wanted.has(shape.Path) {
			continue
		}
		if len(shape.Datatypes) == 0 || len(shape.Nodes) > 0 {
			continue
		}
		allowedDatatypes := newTermSet(shape.Datatypes...)

		var pairs []kvPairOf[term.Term]
		for _, fromProperty := range shape.FromProperties {
			for _, pr := range store.SubjectsObjectsForPredicate(fromProperty) {
				dt, ok := termDatatype(pr.Object)
				if !ok || !allowedDatatypes.has(dt) {
					continue
				}
				pairs = append(pairs, kvPairOf[term.Term]{Key: pr.Subject, Value: pr.Object})
			}
		}

		pairs = mapKeyToYago(pairs, wikidataToYago)
		pairs = filterDomain(pairs, yagoShapeInstances, shape)

		if shape.HasMaxCount {
			pairs = enforceMaxCount(pairs, shape.MaxCount)
		}
		if shape.HasPattern {
			pairs = enforcePattern(pairs, shape.Pattern)
		}

		for _, p := range pairs {
			out = append(out, Fact{Subject: p.Key, Predicate: shape.Path, Object: p.Value})
		}
	}
	return out
}
