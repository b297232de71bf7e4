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

// yagoShapeInstances computes, for each node shape's target class, the
// set of YAGO resources belonging to it: every Wikidata instance of
// that class or one of its YAGO sub classes, remapped to its YAGO IRI,
// with classes themselves excluded and any instance that would fall
// into two mutually disjoint shapes dropped from every shape it
// appears in.
func yagoShapeInstances(
	sch *schema.Schema,
	store *pts.Store,
	wikidataToYagoClassMapping *multimap.Multimap[term.Term, term.Term],
	yagoSuperClassOf *multimap.Multimap[term.Term, term.Term],
	yagoClasses termSet,
	wikidataToYago map[term.Term]term.Term,
) map[term.Term]termSet {
	var p31Pairs []kvPairOf[term.Term]
	for _, pr := range store.SubjectsObjectsForPredicate(vocab.WdtP31) {
		p31Pairs = append(p31Pairs, kvPairOf[term.Term]{Key: pr.Object, Value: pr.Subject})
	}
	wikidataInstancesForYagoClass := multimap.New[term.Term, term.Term]()
	for _, row := range joinPairs(p31Pairs, wikidataToYagoClassMapping) {
		wikidataInstancesForYagoClass.Insert(row.Right, row.Left)
	}

	withoutIntersectionRemoval := make(map[term.Term]termSet)
	for _, shape := range sch.NodeShapes() {
		fromYagoClasses := transitiveClosure([]term.Term{shape.TargetClass}, yagoSuperClassOf)
		var wdInstances []term.Term
		for class := range fromYagoClasses {
			wdInstances = append(wdInstances, wikidataInstancesForYagoClass.Get(class)...)
		}
		instances := make(termSet)
		for _, i := range mapToYago(wdInstances, wikidataToYago) {
			if yagoClasses.has(i) {
				continue
			}
			instances[i] = struct{}{}
		}
		withoutIntersectionRemoval[shape.TargetClass] = instances
	}

	instancesInDisjointIntersections := make(termSet)
	for _, class1 := range sch.Classes() {
		for _, class2 := range class1.DisjointClasses {
			for t := range intersect(withoutIntersectionRemoval[class1.ID], withoutIntersectionRemoval[class2]) {
				instancesInDisjointIntersections[t] = struct{}{}
			}
		}
	}

	out := make(map[term.Term]termSet, len(withoutIntersectionRemoval))
	for class, instances := range withoutIntersectionRemoval {
		pruned := make(termSet, len(instances))
		for i := range instances {
			if instancesInDisjointIntersections.has(i) {
				continue
			}
			pruned[i] = struct{}{}
		}
		out[class] = pruned
	}
	return out
}
