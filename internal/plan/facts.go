// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

package plan

import (
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yago-naga/yago4/internal/multimap"
	"github.com/yago-naga/yago4/internal/pts"
	"github.com/yago-naga/yago4/internal/schema"
	"github.com/yago-naga/yago4/internal/term"
	"github.com/yago-naga/yago4/internal/vocab"
)

// valueRow is one (statement, object) row produced by
// mapWikidataPropertyValue, plus any extra facts the conversion that
// produced object needs emitted alongside it (e.g. the typing triples
// of a freshly minted geo coordinates node).
type valueRow struct {
	Statement   term.Term
	Object      term.Term
	Annotations []Fact
}

// complexValue is a cleaned-up Wikibase complex value (time, duration,
// quantity, globe coordinate) together with the extra facts describing
// the node it was turned into, keyed by the statement value node it
// was computed from.
type complexValue struct {
	Value       term.Term
	Annotations []Fact
}

// buildCleanValues precomputes the five complex-value conversions used
// throughout buildPropertiesFromWikidataAndSchema, running them
// concurrently since each only reads the store and never mutates
// shared state.
func buildCleanValues(store *pts.Store, wikidataToYago map[term.Term]term.Term) (
	times, durations, integers map[term.Term]term.Term,
	quantities, coordinates map[term.Term]complexValue,
) {
	var g errgroup.Group
	g.Go(func() error { times = buildCleanTimes(store); return nil })
	g.Go(func() error { coordinates = buildCleanCoordinates(store); return nil })
	g.Go(func() error { durations = buildCleanDurations(store); return nil })
	g.Go(func() error { integers = buildCleanIntegers(store); return nil })
	g.Go(func() error { quantities = buildCleanQuantities(store, wikidataToYago); return nil })
	_ = g.Wait()
	return
}

func buildCleanTimes(store *pts.Store) map[term.Term]term.Term {
	out := make(map[term.Term]term.Term)
	for _, pr := range store.SubjectsObjectsForPredicate(vocab.WikibaseTimeValue) {
		precision, ok := store.ObjectForSubjectPredicate(pr.Subject, vocab.WikibaseTimePrecision)
		if !ok {
			continue
		}
		calendar, ok := store.ObjectForSubjectPredicate(pr.Subject, vocab.WikibaseTimeCalendarModel)
		if !ok {
			continue
		}
		if t, ok := convertTime(pr.Object, precision, calendar); ok {
			out[pr.Subject] = t
		}
	}
	return out
}

func buildCleanCoordinates(store *pts.Store) map[term.Term]complexValue {
	out := make(map[term.Term]complexValue)
	for _, pr := range store.SubjectsObjectsForPredicate(vocab.WikibaseGeoLatitude) {
		longitude, ok := store.ObjectForSubjectPredicate(pr.Subject, vocab.WikibaseGeoLongitude)
		if !ok {
			continue
		}
		precision, ok := store.ObjectForSubjectPredicate(pr.Subject, vocab.WikibaseGeoPrecision)
		if !ok {
			continue
		}
		globe, ok := store.ObjectForSubjectPredicate(pr.Subject, vocab.WikibaseGeoGlobe)
		if !ok {
			continue
		}
		if iri, facts, ok := convertGlobeCoordinates(pr.Object, longitude, precision, globe); ok {
			out[pr.Subject] = complexValue{Value: iri, Annotations: facts}
		}
	}
	return out
}

func buildCleanDurations(store *pts.Store) map[term.Term]term.Term {
	out := make(map[term.Term]term.Term)
	for _, pr := range store.SubjectsObjectsForPredicate(vocab.WikibaseQuantityAmount) {
		unit, ok := store.ObjectForSubjectPredicate(pr.Subject, vocab.WikibaseQuantityUnit)
		if !ok {
			continue
		}
		if d, ok := convertDurationQuantity(pr.Object, unit); ok {
			out[pr.Subject] = d
		}
	}
	return out
}

func buildCleanIntegers(store *pts.Store) map[term.Term]term.Term {
	out := make(map[term.Term]term.Term)
	for _, pr := range store.SubjectsObjectsForPredicate(vocab.WikibaseQuantityAmount) {
		unit, ok := store.ObjectForSubjectPredicate(pr.Subject, vocab.WikibaseQuantityUnit)
		if !ok {
			continue
		}
		if n, ok := convertIntegerQuantity(pr.Object, unit); ok {
			out[pr.Subject] = n
		}
	}
	return out
}

func buildCleanQuantities(store *pts.Store, wikidataToYago map[term.Term]term.Term) map[term.Term]complexValue {
	var unitPairs []kvPair
	for _, pr := range store.SubjectsObjectsForPredicate(vocab.WikibaseQuantityUnit) {
		unitPairs = append(unitPairs, kvPair{Key: pr.Subject, Value: pr.Object})
	}
	unitPairs = mapValueToYago(unitPairs, wikidataToYago)

	out := make(map[term.Term]complexValue)
	for _, p := range unitPairs {
		amount, ok := store.ObjectForSubjectPredicate(p.Key, vocab.WikibaseQuantityAmount)
		if !ok {
			continue
		}
		lower, ok := store.ObjectForSubjectPredicate(p.Key, vocab.WikibaseQuantityLowerBound)
		if !ok {
			continue
		}
		upper, ok := store.ObjectForSubjectPredicate(p.Key, vocab.WikibaseQuantityUpperBound)
		if !ok {
			continue
		}
		if quantity, facts, ok := convertQuantity(p.Key, p.Value, amount, lower, upper); ok {
			out[p.Key] = complexValue{Value: quantity, Annotations: facts}
		}
	}
	return out
}

// getTriplesFromWikidataPropertyRelation reads, for every Wikidata
// property in fromProperties, the (subject, object) pairs of the
// triples whose predicate is prefix+"P"+id - e.g. with prefix set to
// the statement-value namespace, this reads a property's psv: edges.
func getTriplesFromWikidataPropertyRelation(store *pts.Store, fromProperties []term.Term, prefix string) []kvPair {
	var out []kvPair
	for _, p := range fromProperties {
		if p.Kind != term.WikidataProperty {
			log.Fatalf("plan: invalid wikidata property IRI: %v", p)
		}
		predicate := term.MakeIri(fmt.Sprintf("%sP%d", prefix, p.Num))
		for _, pr := range store.SubjectsObjectsForPredicate(predicate) {
			out = append(out, kvPair{Key: pr.Subject, Value: pr.Object})
		}
	}
	return out
}

// getSubjectStatement reads the (subject-item, statement-id) pairs of
// a property shape's Wikidata properties, through the bare p: namespace.
func getSubjectStatement(store *pts.Store, shape schema.PropertyShape) []kvPair {
	return getTriplesFromWikidataPropertyRelation(store, shape.FromProperties, pPrefix)
}

// getAndConvertStatementsComplexValue resolves each statement's value
// node through clean, dropping statements whose value node did not
// survive the corresponding cleanup pass.
func getAndConvertStatementsComplexValue(store *pts.Store, shape schema.PropertyShape, clean map[term.Term]term.Term, prefix string) []valueRow {
	var out []valueRow
	for _, p := range getTriplesFromWikidataPropertyRelation(store, shape.FromProperties, prefix) {
		if v, ok := clean[p.Value]; ok {
			out = append(out, valueRow{Statement: p.Key, Object: v})
		}
	}
	return out
}

// getAndConvertStatementsAnnotatedComplexValue is
// getAndConvertStatementsComplexValue for a cleanup pass that also
// produces extra facts describing the value node it minted.
func getAndConvertStatementsAnnotatedComplexValue(store *pts.Store, shape schema.PropertyShape, clean map[term.Term]complexValue, prefix string) []valueRow {
	var out []valueRow
	for _, p := range getTriplesFromWikidataPropertyRelation(store, shape.FromProperties, prefix) {
		if v, ok := clean[p.Value]; ok {
			out = append(out, valueRow{Statement: p.Key, Object: v.Value, Annotations: v.Annotations})
		}
	}
	return out
}

func isExactlyDatatypes(dts termSet, members ...term.Term) bool {
	if len(dts) != len(members) {
		return false
	}
	for _, m := range members {
		if !dts.has(m) {
			return false
		}
	}
	return true
}

func mapValuePairToYago(pairs []kvPairOf[term.Term], with map[term.Term]term.Term) []kvPairOf[term.Term] {
	out := make([]kvPairOf[term.Term], 0, len(pairs))
	for _, p := range pairs {
		if v, ok := with[p.Value]; ok {
			out = append(out, kvPairOf[term.Term]{Key: p.Key, Value: v})
		}
	}
	return out
}

// mapWikidataPropertyValue resolves a property shape's raw Wikidata
// values into the (statement, object) rows the rest of the facts
// pipeline joins against the statement's subject, dispatching on
// whether the shape's range is a datatype or a node shape and, in
// each case, on which conversion its declared range actually needs.
func mapWikidataPropertyValue(
	sch *schema.Schema,
	shape schema.PropertyShape,
	store *pts.Store,
	yagoShapeInstances map[term.Term]termSet,
	wikidataToYago map[term.Term]term.Term,
	cleanTimes, cleanDurations, cleanIntegers map[term.Term]term.Term,
	cleanQuantities, cleanCoordinates map[term.Term]complexValue,
	simpleValuePrefix, complexValuePrefix string,
) []valueRow {
	var rows []valueRow

	switch {
	case len(shape.Datatypes) > 0:
		if len(shape.Nodes) > 0 {
			log.Printf("plan: property %v could not have both a datatype domain and a node domain; ignoring it", shape.Path)
			return nil
		}
		dts := newTermSet(shape.Datatypes...)
		switch {
		case isExactlyDatatypes(dts, vocab.XsdAnyURI):
			for _, p := range getTriplesFromWikidataPropertyRelation(store, shape.FromProperties, simpleValuePrefix) {
				if p.Value.Kind != term.Iri {
					continue
				}
				u, err := url.Parse(p.Value.Str)
				if err != nil {
					continue
				}
				rows = append(rows, valueRow{Statement: p.Key, Object: term.NewTypedLiteral(u.String(), vocab.XsdAnyURI.Str)})
			}
		case isExactlyDatatypes(dts, vocab.XsdDate, vocab.XsdDateTime, vocab.XsdGYear, vocab.XsdGYearMonth):
			rows = getAndConvertStatementsComplexValue(store, shape, cleanTimes, complexValuePrefix)
		case isExactlyDatatypes(dts, vocab.XsdDuration):
			rows = getAndConvertStatementsComplexValue(store, shape, cleanDurations, complexValuePrefix)
		case isExactlyDatatypes(dts, vocab.XsdInteger):
			rows = getAndConvertStatementsComplexValue(store, shape, cleanIntegers, complexValuePrefix)
		default:
			for _, p := range getTriplesFromWikidataPropertyRelation(store, shape.FromProperties, simpleValuePrefix) {
				dt, ok := termDatatype(p.Value)
				if !ok || !dts.has(dt) {
					continue
				}
				rows = append(rows, valueRow{Statement: p.Key, Object: p.Value})
			}
		}

	case len(shape.Nodes) > 0:
		expectedClasses := make([]term.Term, 0, len(shape.Nodes))
		for _, n := range shape.Nodes {
			expectedClasses = append(expectedClasses, sch.NodeShape(n).TargetClass)
		}
		switch {
		case len(expectedClasses) == 1 && expectedClasses[0] == vocab.SchemaGeoCoordinates:
			rows = getAndConvertStatementsAnnotatedComplexValue(store, shape, cleanCoordinates, complexValuePrefix)
		case len(expectedClasses) == 1 && expectedClasses[0] == vocab.SchemaQuantitativeValue:
			rows = getAndConvertStatementsAnnotatedComplexValue(store, shape, cleanQuantities, complexValuePrefix)
		case len(expectedClasses) == 1 && expectedClasses[0] == vocab.SchemaImageObject:
			for _, p := range getTriplesFromWikidataPropertyRelation(store, shape.FromProperties, simpleValuePrefix) {
				if p.Value.Kind == term.Iri && strings.HasPrefix(p.Value.Str, "http://commons.wikimedia.org/wiki/Special:FilePath/") {
					rows = append(rows, valueRow{Statement: p.Key, Object: p.Value})
				}
			}
		default:
			var pairs []kvPairOf[term.Term]
			for _, p := range getTriplesFromWikidataPropertyRelation(store, shape.FromProperties, simpleValuePrefix) {
				pairs = append(pairs, kvPairOf[term.Term]{Key: p.Key, Value: p.Value})
			}
			pairs = mapValuePairToYago(pairs, wikidataToYago)
			pairs = filterObjectRange(pairs, yagoShapeInstances, expectedClasses)
			for _, p := range pairs {
				rows = append(rows, valueRow{Statement: p.Key, Object: p.Value})
			}
		}

	default:
		log.Printf("plan: no range constraint found for property shape %v; ignoring it", shape.ID)
		return nil
	}

	if shape.HasPattern {
		re, err := regexp.Compile(shape.Pattern)
		if err != nil {
			return nil
		}
		filtered := rows[:0]
		for _, r := range rows {
			if r.Object.Kind == term.StringLiteral && re.MatchString(r.Object.Str) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	return rows
}

// buildStatementAnnotations computes, for every qualifier declared by
// an ys:AnnotationPropertyShape, the (predicate, object) facts it
// contributes to each statement it qualifies, keyed by statement id.
// It also returns the plain triples describing any complex-value node
// a qualifier's own value was converted into (e.g. a qualifier that is
// itself a GeoCoordinates or QuantitativeValue) - those describe the
// freshly minted node, not the statement, so they are emitted directly
// rather than folded into the per-statement annotation.
func buildStatementAnnotations(
	sch *schema.Schema,
	store *pts.Store,
	yagoShapeInstances map[term.Term]termSet,
	wikidataToYago map[term.Term]term.Term,
	cleanTimes, cleanDurations, cleanIntegers map[term.Term]term.Term,
	cleanQuantities, cleanCoordinates map[term.Term]complexValue,
) (map[term.Term][]Fact, []Fact) {
	out := make(map[term.Term][]Fact)
	var extras []Fact
	for _, shape := range sch.AnnotationPropertyShapes() {
		rows := mapWikidataPropertyValue(sch, shape, store, yagoShapeInstances, wikidataToYago,
			cleanTimes, cleanDurations, cleanIntegers, cleanQuantities, cleanCoordinates,
			pqPrefix, pqvPrefix)
		for _, r := range rows {
			extras = append(extras, r.Annotations...)
			out[r.Statement] = append(out[r.Statement], Fact{Subject: r.Statement, Predicate: shape.Path, Object: r.Object})
		}
	}
	return out, extras
}

// statementBundle is one kept statement's main triples (its
// complex-value conversion's extra facts, followed by its own
// subject-predicate-object triple) plus the subject those triples
// describe, used to enforce sh:maxCount per subject.
type statementBundle struct {
	Subject term.Term
	Triples []Fact
}

// buildPropertiesFromWikidataAndSchema emits the general-purpose facts
// pipeline: every property shape not named in excludeProperties,
// joined from its Wikidata statements to its YAGO subject, filtered to
// best-rank statements, capped at sh:maxCount, with any qualifiers an
// ys:AnnotationPropertyShape declares for that statement carried along
// as a reified annotation rather than folded into the main file.
func buildPropertiesFromWikidataAndSchema(
	sch *schema.Schema,
	store *pts.Store,
	yagoShapeInstances map[term.Term]termSet,
	wikidataToYago map[term.Term]term.Term,
	excludeProperties []term.Term,
) ([]Fact, []AnnotatedFact) {
	cleanTimes, cleanDurations, cleanIntegers, cleanQuantities, cleanCoordinates := buildCleanValues(store, wikidataToYago)

	statementAnnotations, annotationExtras := buildStatementAnnotations(sch, store, yagoShapeInstances, wikidataToYago,
		cleanTimes, cleanDurations, cleanIntegers, cleanQuantities, cleanCoordinates)

	excluded := newTermSet(excludeProperties...)

	facts := append([]Fact(nil), annotationExtras...)
	var annotatedFacts []AnnotatedFact

	for _, shape := range sch.PropertyShapes() {
		if excluded.has(shape.Path) {
			continue
		}

		statementObject := mapWikidataPropertyValue(sch, shape, store, yagoShapeInstances, wikidataToYago,
			cleanTimes, cleanDurations, cleanIntegers, cleanQuantities, cleanCoordinates,
			psPrefix, psvPrefix)
		if len(statementObject) == 0 {
			continue
		}

		var subjectPairs []kvPairOf[term.Term]
		for _, p := range getSubjectStatement(store, shape) {
			subjectPairs = append(subjectPairs, kvPairOf[term.Term]{Key: p.Key, Value: p.Value})
		}
		subjectPairs = mapKeyToYago(subjectPairs, wikidataToYago)
		subjectPairs = filterDomain(subjectPairs, yagoShapeInstances, shape)

		statementSubject := multimap.New[term.Term, term.Term]()
		for _, p := range subjectPairs {
			statementSubject.Insert(p.Value, p.Key)
		}

		bundles := make(map[term.Term]statementBundle)
		for _, row := range statementObject {
			for _, subject := range statementSubject.Get(row.Statement) {
				triples := append(append([]Fact(nil), row.Annotations...),
					Fact{Subject: subject, Predicate: shape.Path, Object: row.Object})
				bundles[row.Statement] = statementBundle{Subject: subject, Triples: triples}
			}
		}
		if len(bundles) == 0 {
			continue
		}

		var kept []term.Term
		for statement := range bundles {
			if store.Contains(statement, vocab.RdfType, vocab.WikibaseBestRank) {
				kept = append(kept, statement)
			}
		}

		if shape.HasMaxCount {
			countBySubject := make(map[term.Term]int, len(kept))
			for _, statement := range kept {
				countBySubject[bundles[statement].Subject]++
			}
			filtered := kept[:0]
			for _, statement := range kept {
				if countBySubject[bundles[statement].Subject] <= shape.MaxCount {
					filtered = append(filtered, statement)
				}
			}
			kept = filtered
		}

		for _, statement := range kept {
			b := bundles[statement]
			facts = append(facts, b.Triples...)
			if annotations := statementAnnotations[statement]; len(annotations) > 0 {
				mainTriple := b.Triples[len(b.Triples)-1]
				annotatedFacts = append(annotatedFacts, AnnotatedFact{Fact: mainTriple, Annotations: annotations})
			}
		}
	}

	return facts, annotatedFacts
}
