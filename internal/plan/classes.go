// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

package plan

import (
	"github.com/yago-naga/yago4/internal/multimap"
	"github.com/yago-naga/yago4/internal/pts"
	"github.com/yago-naga/yago4/internal/schema"
	"github.com/yago-naga/yago4/internal/term"
	"github.com/yago-naga/yago4/internal/vocab"
)

// minNumberOfInstances is the minimum direct-instance count for a
// Wikidata class to be considered "popular" enough to keep.
const minNumberOfInstances = 10

// badClasses seeds the forward closure of classes to always discard:
// Wikimedia housekeeping categories, disambiguation and list
// articles, and similar non-knowledge subtrees.
var badClasses = []term.Term{
	term.NewWikidataItem(17379835), // Wikimedia page outside the main knowledge tree
	term.NewWikidataItem(17442446), // Wikimedia internal stuff
	term.NewWikidataItem(4167410),  // disambiguation page
	term.NewWikidataItem(13406463), // list article
	term.NewWikidataItem(17524420), // aspect of history
	term.NewWikidataItem(18340514), // article about events in a specific year or time period
}

// Classes bundles the outputs of class extraction: the kept YAGO
// classes, the Wikidata-to-YAGO class mapping, and the YAGO subClassOf
// hierarchy (stored inverted, as superClassOf).
type Classes struct {
	YagoClasses                termSet
	WikidataToYagoClassMapping *multimap.Multimap[term.Term, term.Term]
	YagoSuperClassOf           *multimap.Multimap[term.Term, term.Term]
}

// buildYagoClassesAndSuperClassOf runs the class-extraction algorithm:
// it prunes Wikidata's sprawling class graph down to a set of classes
// with enough instances to matter, an English Wikipedia article, and
// none of them disjoint with another kept class, then builds the YAGO
// subClassOf hierarchy from what survives plus the schema's own
// taxonomy.
func buildYagoClassesAndSuperClassOf(
	sch *schema.Schema,
	store *pts.Store,
	wikidataToYago map[term.Term]term.Term,
	wikidataToEnWikipedia map[term.Term]string,
) Classes {
	var yagoSchemaFromClasses []term.Term
	fromClassSet := make(termSet)
	for _, shape := range sch.NodeShapes() {
		for _, c := range shape.FromClasses {
			yagoSchemaFromClasses = append(yagoSchemaFromClasses, c)
			fromClassSet[c] = struct{}{}
		}
	}

	// Yago shape classes only have super classes which are shapes.
	wikidataSubClassOf := multimap.New[term.Term, term.Term]()
	for _, pr := range store.SubjectsObjectsForPredicate(vocab.WdtP279) {
		if fromClassSet.has(pr.Subject) {
			continue
		}
		wikidataSubClassOf.Insert(pr.Subject, pr.Object)
	}

	wikidataSuperClassOf := multimap.New[term.Term, term.Term]()
	for _, p := range wikidataSubClassOf.IterFlat() {
		wikidataSuperClassOf.Insert(p.Value, p.Key)
	}

	wikidataBadClasses := transitiveClosure(badClasses, wikidataSuperClassOf)

	instancesByClass := multimap.New[term.Term, term.Term]()
	for _, pr := range store.SubjectsObjectsForPredicate(vocab.WdtP31) {
		instancesByClass.Insert(pr.Object, pr.Subject)
	}
	popular := make(termSet)
	for _, g := range instancesByClass.IterGrouped() {
		if len(g.Values) >= minNumberOfInstances {
			popular[g.Key] = struct{}{}
		}
	}
	popularRecursively := transitiveClosure(popular.slice(), wikidataSubClassOf)

	yagoSubClasses := transitiveClosure(yagoSchemaFromClasses, wikidataSuperClassOf)

	subclassesOfDisjoint := make(termSet)
	for _, class1 := range sch.Classes() {
		shape1 := sch.NodeShape(class1.ID)
		for _, class2ID := range class1.DisjointClasses {
			shape2 := sch.NodeShape(class2ID)
			for _, wd1 := range shape1.FromClasses {
				c1 := transitiveClosure([]term.Term{wd1}, wikidataSuperClassOf)
				for _, wd2 := range shape2.FromClasses {
					c2 := transitiveClosure([]term.Term{wd2}, wikidataSuperClassOf)
					for t := range intersect(c1, c2) {
						subclassesOfDisjoint[t] = struct{}{}
					}
				}
			}
		}
	}

	classesToKeep := make(termSet)
	for c := range intersect(yagoSubClasses, popularRecursively) {
		if wikidataBadClasses.has(c) || subclassesOfDisjoint.has(c) {
			continue
		}
		classesToKeep[c] = struct{}{}
	}
	for _, c := range yagoSchemaFromClasses {
		classesToKeep[c] = struct{}{}
	}

	classesToKeepForYago := make(termSet)
	for c := range intersect(classesToKeep, popular) {
		if _, ok := wikidataToEnWikipedia[c]; !ok {
			continue
		}
		classesToKeepForYago[c] = struct{}{}
	}
	for _, c := range yagoSchemaFromClasses {
		classesToKeepForYago[c] = struct{}{}
	}

	yagoClasses := make(termSet)
	for c := range classesToKeepForYago {
		if y, ok := wikidataToYago[c]; ok {
			yagoClasses[y] = struct{}{}
		}
	}

	wikidataSubClassOfWithoutClassesToKeepForYago := multimap.New[term.Term, term.Term]()
	for _, p := range wikidataSubClassOf.IterFlat() {
		if classesToKeepForYago.has(p.Key) {
			continue
		}
		wikidataSubClassOfWithoutClassesToKeepForYago.Insert(p.Key, p.Value)
	}

	var classesToKeepSeeds []kvPair
	for c := range classesToKeep {
		classesToKeepSeeds = append(classesToKeepSeeds, kvPair{Key: c, Value: c})
	}
	classMappingPairs := transitiveClosurePair(classesToKeepSeeds, wikidataSubClassOfWithoutClassesToKeepForYago)
	wikidataToYagoClassMapping := multimap.New[term.Term, term.Term]()
	for _, p := range classMappingPairs.IterFlat() {
		if !classesToKeepForYago.has(p.Value) {
			continue
		}
		if y, ok := wikidataToYago[p.Value]; ok {
			wikidataToYagoClassMapping.Insert(p.Key, y)
		}
	}

	var subClassSeeds []kvPair
	for _, p := range wikidataSubClassOf.IterFlat() {
		if classesToKeepForYago.has(p.Key) {
			subClassSeeds = append(subClassSeeds, kvPair{Key: p.Key, Value: p.Value})
		}
	}
	subClassPairs := transitiveClosurePair(subClassSeeds, wikidataSubClassOfWithoutClassesToKeepForYago)

	yagoSuperClassOf := multimap.New[term.Term, term.Term]()
	for _, p := range subClassPairs.IterFlat() {
		if !classesToKeepForYago.has(p.Value) {
			continue
		}
		yk, ok := wikidataToYago[p.Key]
		if !ok {
			continue
		}
		yv, ok := wikidataToYago[p.Value]
		if !ok {
			continue
		}
		// (sub, super) remapped to YAGO, then swapped to superClassOf.
		yagoSuperClassOf.Insert(yv, yk)
	}
	for _, p := range subClassOfFromYagoSchema(sch) {
		yagoSuperClassOf.Insert(p.Value, p.Key)
	}

	yagoSuperClassOf = reduceRedundantSuperClassOf(yagoSuperClassOf)

	return Classes{
		YagoClasses:                yagoClasses,
		WikidataToYagoClassMapping: wikidataToYagoClassMapping,
		YagoSuperClassOf:           yagoSuperClassOf,
	}
}

// reduceRedundantSuperClassOf drops a parent->child edge when another
// of child's parents is itself a (transitive) sub class of that
// parent: if parent->child and q->child both hold and parent is an
// ancestor of q, the parent->child edge is implied by parent->...->q->child
// and gets dropped. Returns a fresh Multimap with the surviving edges.
func reduceRedundantSuperClassOf(superClassOf *multimap.Multimap[term.Term, term.Term]) *multimap.Multimap[term.Term, term.Term] {
	childToParents := multimap.New[term.Term, term.Term]()
	for _, p := range superClassOf.IterFlat() {
		childToParents.Insert(p.Value, p.Key) // child -> parent
	}

	type edge struct{ parent, child term.Term }
	removed := make(map[edge]struct{})
	for _, g := range childToParents.IterGrouped() {
		child := g.Key
		parents := g.Values
		for _, p := range parents {
			for _, q := range parents {
				if q == p {
					continue
				}
				if transitiveClosure([]term.Term{q}, childToParents).has(p) {
					removed[edge{p, child}] = struct{}{}
					break
				}
			}
		}
	}

	out := multimap.New[term.Term, term.Term]()
	for _, p := range superClassOf.IterFlat() {
		if _, ok := removed[edge{p.Key, p.Value}]; ok {
			continue
		}
		out.Insert(p.Key, p.Value)
	}
	return out
}

// subClassOfFromYagoSchema derives (subClass, superClass) pairs from
// the schema's own class hierarchy, for every class that is the
// target of a node shape. schema:Intangible and schema:MedicalIntangible
// are folded into schema:Thing; schema:StructuredValue and schema:Series
// super-class edges are dropped, since those are modeling devices, not
// part of the YAGO type hierarchy.
func subClassOfFromYagoSchema(sch *schema.Schema) []kvPair {
	var out []kvPair
	seen := make(map[kvPair]struct{})
	add := func(p kvPair) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, shape := range sch.NodeShapes() {
		class, ok := sch.Class(shape.TargetClass)
		if !ok {
			continue
		}
		for _, super := range class.SuperClasses {
			switch super {
			case vocab.SchemaIntangible, vocab.SchemaMedicalIntangible:
				add(kvPair{Key: class.ID, Value: vocab.SchemaThing})
			case vocab.SchemaStructuredValue, vocab.SchemaSeries:
				// dropped
			default:
				add(kvPair{Key: class.ID, Value: super})
			}
		}
	}
	return out
}
