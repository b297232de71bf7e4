// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

package plan

import (
	"github.com/yago-naga/yago4/internal/schema"
	"github.com/yago-naga/yago4/internal/term"
	"github.com/yago-naga/yago4/internal/vocab"
)

// buildYagoShapes re-emits the schema's SHACL shapes themselves, so
// that a consumer of the build's output can validate it against the
// same constraints the build applied: one sh:NodeShape per node shape
// that declares at least one property, and one sh:PropertyShape per
// property, nested via sh:property.
func buildYagoShapes(sch *schema.Schema) []Fact {
	var out []Fact

	for _, shape := range sch.NodeShapes() {
		if len(shape.Properties) == 0 {
			continue
		}
		out = append(out, Fact{Subject: shape.ID, Predicate: vocab.RdfType, Object: vocab.ShNodeShape})
		out = append(out, Fact{Subject: shape.ID, Predicate: vocab.ShTargetClass, Object: shape.TargetClass})

		for _, prop := range shape.Properties {
			out = append(out, Fact{Subject: shape.ID, Predicate: vocab.ShProperty, Object: prop.ID})
			out = append(out, buildPropertyShapeFacts(prop)...)
		}
	}

	return out
}

func buildPropertyShapeFacts(shape schema.PropertyShape) []Fact {
	out := []Fact{
		{Subject: shape.ID, Predicate: vocab.RdfType, Object: vocab.ShPropertyShape},
		{Subject: shape.ID, Predicate: vocab.ShPath, Object: shape.Path},
	}

	add := func(f Fact) { out = append(out, f) }

	switch len(shape.Datatypes) {
	case 0:
	case 1:
		add(Fact{Subject: shape.ID, Predicate: vocab.ShDatatype, Object: shape.Datatypes[0]})
	default:
		addListObject(add, shape.ID, vocab.ShOr, shape.Datatypes)
	}

	switch len(shape.Nodes) {
	case 0:
	case 1:
		add(Fact{Subject: shape.ID, Predicate: vocab.ShNode, Object: shape.Nodes[0]})
	default:
		addListObject(add, shape.ID, vocab.ShOr, shape.Nodes)
	}

	if shape.IsUniqueLang {
		out = append(out, Fact{
			Subject:   shape.ID,
			Predicate: vocab.ShUniqueLang,
			Object:    term.NewTypedLiteral("true", vocab.XsdBoolean.Str),
		})
	}
	if shape.HasMaxCount {
		out = append(out, Fact{Subject: shape.ID, Predicate: vocab.ShMaxCount, Object: term.NewIntegerLiteral(int64(shape.MaxCount))})
	}
	if shape.HasPattern {
		out = append(out, Fact{Subject: shape.ID, Predicate: vocab.ShPattern, Object: term.NewStringLiteral(shape.Pattern)})
	}

	return out
}
