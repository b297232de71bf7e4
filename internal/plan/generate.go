// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

package plan

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yago-naga/yago4/internal/output"
	"github.com/yago-naga/yago4/internal/pts"
	"github.com/yago-naga/yago4/internal/schema"
	"github.com/yago-naga/yago4/internal/term"
	"github.com/yago-naga/yago4/internal/vocab"
)

// labelProperties are emitted through the simpler include-list
// pipeline rather than through buildPropertiesFromWikidataAndSchema's
// statement/best-rank/annotation machinery.
var labelProperties = []term.Term{vocab.RdfsLabel, vocab.RdfsComment, vocab.SchemaAlternateName}

// GenerateYago runs the whole build plan against store and writes its
// nine result files plus a stats.tsv sidecar into toDir.
func GenerateYago(store *pts.Store, toDir string, flavor Flavor) error {
	sch, err := schema.Open()
	if err != nil {
		return err
	}

	wikidataToEnWikipedia := wikidataToEnWikipediaMapping(store)
	wikidataToYago := wikidataToYagoURIsMapping(flavor, sch, store, wikidataToEnWikipedia)

	classes := buildYagoClassesAndSuperClassOf(sch, store, wikidataToYago, wikidataToEnWikipedia)
	shapeInstances := yagoShapeInstances(sch, store, classes.WikidataToYagoClassMapping,
		classes.YagoSuperClassOf, classes.YagoClasses, wikidataToYago)
	yagoThings := shapeInstances[vocab.SchemaThing]

	stats := output.NewStats()

	var g errgroup.Group

	g.Go(func() error {
		facts := buildClassesDescription(classes.YagoClasses, classes.YagoSuperClassOf, store, wikidataToYago)
		stats.Set("yago-wd-class.nt.gz", len(facts))
		return output.WriteLines(toDir, "yago-wd-class.nt.gz", factLines(facts))
	})

	g.Go(func() error {
		facts := buildSimpleInstanceOf(shapeInstances)
		stats.Set("yago-wd-simple-types.nt.gz", len(facts))
		return output.WriteLines(toDir, "yago-wd-simple-types.nt.gz", factLines(facts))
	})

	g.Go(func() error {
		facts := buildFullInstanceOf(yagoThings, classes.WikidataToYagoClassMapping, store, wikidataToYago)
		stats.Set("yago-wd-full-types.nt.gz", len(facts))
		return output.WriteLines(toDir, "yago-wd-full-types.nt.gz", factLines(facts))
	})

	g.Go(func() error {
		facts := buildSimplePropertiesFromSchema(sch, store, shapeInstances, wikidataToYago, labelProperties)
		stats.Set("yago-wd-labels.nt.gz", len(facts))
		return output.WriteLines(toDir, "yago-wd-labels.nt.gz", factLines(facts))
	})

	g.Go(func() error {
		facts, annotated := buildPropertiesFromWikidataAndSchema(sch, store, shapeInstances, wikidataToYago, labelProperties)
		stats.Set("yago-wd-facts.nt.gz", len(facts))
		stats.Set("yago-wd-annotated-facts.ntx.gz", len(annotated))
		if err := output.WriteLines(toDir, "yago-wd-facts.nt.gz", factLines(facts)); err != nil {
			return err
		}
		return output.WriteLines(toDir, "yago-wd-annotated-facts.ntx.gz", annotatedFactLines(annotated))
	})

	g.Go(func() error {
		facts := buildSameAs(store, yagoThings, wikidataToYago, wikidataToEnWikipedia)
		stats.Set("yago-wd-sameAs.nt.gz", len(facts))
		return output.WriteLines(toDir, "yago-wd-sameAs.nt.gz", factLines(facts))
	})

	g.Go(func() error {
		facts := buildYagoSchema(sch)
		stats.Set("yago-wd-schema.nt.gz", len(facts))
		return output.WriteLines(toDir, "yago-wd-schema.nt.gz", factLines(facts))
	})

	g.Go(func() error {
		facts := buildYagoShapes(sch)
		stats.Set("yago-wd-shapes.nt.gz", len(facts))
		return output.WriteLines(toDir, "yago-wd-shapes.nt.gz", factLines(facts))
	})

	if err := g.Wait(); err != nil {
		return err
	}

	return stats.Write(toDir)
}

func factLines(facts []Fact) []string {
	lines := make([]string, len(facts))
	for i, f := range facts {
		lines[i] = fmt.Sprintf("%s %s %s .", f.Subject, f.Predicate, f.Object)
	}
	return lines
}

func annotatedFactLines(facts []AnnotatedFact) []string {
	var lines []string
	for _, f := range facts {
		for _, a := range f.Annotations {
			lines = append(lines, fmt.Sprintf("<<%s %s %s>> %s %s .",
				f.Fact.Subject, f.Fact.Predicate, f.Fact.Object, a.Predicate, a.Object))
		}
	}
	return lines
}
