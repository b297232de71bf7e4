// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

// Package plan implements the build plan: the fixed DAG of
// set-algebra and relational operators that turns a partitioned
// Wikidata dump into the YAGO knowledge base. Every stage is built
// eagerly into an in-memory collection and consumed by later stages;
// the dataset is expected to fit in RAM for the chosen size flavor.
package plan

import "github.com/yago-naga/yago4/internal/term"

// Fact is one output triple, optionally carrying statement-level
// annotation qualifiers when emitted to the annotated-facts stream.
type Fact struct {
	Subject   term.Term
	Predicate term.Term
	Object    term.Term
}

// AnnotatedFact pairs a main Fact with the qualifier facts describing
// the Wikidata statement it was derived from.
type AnnotatedFact struct {
	Fact        Fact
	Annotations []Fact
}
