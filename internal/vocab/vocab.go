// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

package vocab

import "github.com/yago-naga/yago4/internal/term"

// Prefixes is the abbreviation table used when synthesizing
// deterministic blank-node names for RDF lists (§4.5.7).
var Prefixes = [8][2]string{
	{"bioschema", "http://bioschemas.org/"},
	{"owl", "http://www.w3.org/2002/07/owl#"},
	{"rdf", "http://www.w3.org/1999/02/22-rdf-syntax-ns#"},
	{"rdfs", "http://www.w3.org/2000/01/rdf-schema#"},
	{"schema", "http://schema.org/"},
	{"xsd", "http://www.w3.org/2001/XMLSchema#"},
	{"yago", "http://yago-knowledge.org/resource/"},
	{"yagov", "http://yago-knowledge.org/value/"},
}

func iri(s string) term.Term { return term.NewIri(s) }

var (
	WikibaseItem               = iri("http://wikiba.se/ontology#Item")
	WikibaseBestRank           = iri("http://wikiba.se/ontology#BestRank")
	WikibaseTimeValue          = iri("http://wikiba.se/ontology#timeValue")
	WikibaseTimePrecision      = iri("http://wikiba.se/ontology#timePrecision")
	WikibaseTimeCalendarModel  = iri("http://wikiba.se/ontology#timeCalendarModel")
	WikibaseGeoLatitude        = iri("http://wikiba.se/ontology#geoLatitude")
	WikibaseGeoLongitude       = iri("http://wikiba.se/ontology#geoLongitude")
	WikibaseGeoPrecision       = iri("http://wikiba.se/ontology#geoPrecision")
	WikibaseGeoGlobe           = iri("http://wikiba.se/ontology#geoGlobe")
	WikibaseQuantityAmount     = iri("http://wikiba.se/ontology#quantityAmount")
	WikibaseQuantityUpperBound = iri("http://wikiba.se/ontology#quantityUpperBound")
	WikibaseQuantityLowerBound = iri("http://wikiba.se/ontology#quantityLowerBound")
	WikibaseQuantityUnit       = iri("http://wikiba.se/ontology#quantityUnit")

	WdtP31  = term.MakeIri("http://www.wikidata.org/prop/direct/P31")
	WdtP279 = term.MakeIri("http://www.wikidata.org/prop/direct/P279")
	WdtP646 = term.MakeIri("http://www.wikidata.org/prop/direct/P646")

	WdQ7727     = term.NewWikidataItem(7727)
	WdQ11574    = term.NewWikidataItem(11574)
	WdQ25235    = term.NewWikidataItem(25235)
	WdQ573      = term.NewWikidataItem(573)
	WdQ199      = term.NewWikidataItem(199)
	WdQ2        = term.NewWikidataItem(2)
	WdQ1985727  = term.NewWikidataItem(1985727)

	// WdQ6581097 and WdQ6581072 are "male"/"female", mandatory seeds for
	// the Kept set regardless of which dump size flavor is being built.
	WdQ6581097 = term.NewWikidataItem(6581097)
	WdQ6581072 = term.NewWikidataItem(6581072)

	SchemaThing             = iri("http://schema.org/Thing")
	SchemaEnumeration       = iri("http://schema.org/Enumeration")
	SchemaMedicalEnumeration = iri("http://schema.org/MedicalEnumeration")
	SchemaIntangible        = iri("http://schema.org/Intangible")
	SchemaMedicalIntangible = iri("http://schema.org/MedicalIntangible")
	SchemaMedicalEntity     = iri("http://schema.org/MedicalEntity")
	SchemaSeries            = iri("http://schema.org/Series")
	SchemaStructuredValue   = iri("http://schema.org/StructuredValue")
	SchemaGeoCoordinates    = iri("http://schema.org/GeoCoordinates")
	SchemaQuantitativeValue = iri("http://schema.org/QuantitativeValue")
	SchemaImageObject       = iri("http://schema.org/ImageObject")
	SchemaAbout             = iri("http://schema.org/about")
	SchemaAlternateName     = iri("http://schema.org/alternateName")
	SchemaDescription       = iri("http://schema.org/description")
	SchemaInverseOf         = iri("http://schema.org/inverseOf")
	SchemaSameAs            = iri("http://schema.org/sameAs")
	SchemaMaxValue          = iri("http://schema.org/maxValue")
	SchemaMinValue          = iri("http://schema.org/minValue")
	SchemaUnitCode          = iri("http://schema.org/unitCode")
	SchemaLatitude          = iri("http://schema.org/latitude")
	SchemaLongitude         = iri("http://schema.org/longitude")
	SchemaValue             = iri("http://schema.org/value")

	SkosPrefLabel = iri("http://www.w3.org/2004/02/skos/core#prefLabel")

	XsdAnyURI      = iri("http://www.w3.org/2001/XMLSchema#anyURI")
	XsdBoolean     = iri("http://www.w3.org/2001/XMLSchema#boolean")
	XsdDate        = iri("http://www.w3.org/2001/XMLSchema#date")
	XsdDateTime    = iri("http://www.w3.org/2001/XMLSchema#dateTime")
	XsdDecimal     = iri("http://www.w3.org/2001/XMLSchema#decimal")
	XsdDouble      = iri("http://www.w3.org/2001/XMLSchema#double")
	XsdDuration    = iri("http://www.w3.org/2001/XMLSchema#duration")
	XsdInteger     = iri("http://www.w3.org/2001/XMLSchema#integer")
	XsdGYear       = iri("http://www.w3.org/2001/XMLSchema#gYear")
	XsdGYearMonth  = iri("http://www.w3.org/2001/XMLSchema#gYearMonth")
	XsdString      = iri("http://www.w3.org/2001/XMLSchema#string")

	RdfFirst       = iri("http://www.w3.org/1999/02/22-rdf-syntax-ns#first")
	RdfLangString  = iri("http://www.w3.org/1999/02/22-rdf-syntax-ns#langString")
	RdfNil         = iri("http://www.w3.org/1999/02/22-rdf-syntax-ns#nil")
	RdfPlainLiteral = iri("http://www.w3.org/1999/02/22-rdf-syntax-ns#PlainLiteral")
	RdfProperty    = iri("http://www.w3.org/1999/02/22-rdf-syntax-ns#Property")
	RdfRest        = iri("http://www.w3.org/1999/02/22-rdf-syntax-ns#rest")
	RdfType        = iri("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")

	RdfsClass       = iri("http://www.w3.org/2000/01/rdf-schema#Class")
	RdfsComment     = iri("http://www.w3.org/2000/01/rdf-schema#comment")
	RdfsDatatype    = iri("http://www.w3.org/2000/01/rdf-schema#Datatype")
	RdfsDomain      = iri("http://www.w3.org/2000/01/rdf-schema#domain")
	RdfsLabel       = iri("http://www.w3.org/2000/01/rdf-schema#label")
	RdfsRange       = iri("http://www.w3.org/2000/01/rdf-schema#range")
	RdfsSubClassOf  = iri("http://www.w3.org/2000/01/rdf-schema#subClassOf")
	RdfsSubPropertyOf = iri("http://www.w3.org/2000/01/rdf-schema#subPropertyOf")

	OwlClass             = iri("http://www.w3.org/2002/07/owl#Class")
	OwlDatatypeProperty   = iri("http://www.w3.org/2002/07/owl#DatatypeProperty")
	OwlDisjointWith       = iri("http://www.w3.org/2002/07/owl#disjointWith")
	OwlFunctionalProperty = iri("http://www.w3.org/2002/07/owl#FunctionalProperty")
	OwlInverseOf          = iri("http://www.w3.org/2002/07/owl#inverseOf")
	OwlObjectProperty     = iri("http://www.w3.org/2002/07/owl#ObjectProperty")
	OwlSameAs             = iri("http://www.w3.org/2002/07/owl#sameAs")
	OwlUnionOf            = iri("http://www.w3.org/2002/07/owl#unionOf")

	ShDatatype     = iri("http://www.w3.org/ns/shacl#datatype")
	ShMaxCount     = iri("http://www.w3.org/ns/shacl#maxCount")
	ShNode         = iri("http://www.w3.org/ns/shacl#node")
	ShNodeShape    = iri("http://www.w3.org/ns/shacl#NodeShape")
	ShOr           = iri("http://www.w3.org/ns/shacl#or")
	ShPattern      = iri("http://www.w3.org/ns/shacl#pattern")
	ShPath         = iri("http://www.w3.org/ns/shacl#path")
	ShProperty     = iri("http://www.w3.org/ns/shacl#property")
	ShPropertyShape = iri("http://www.w3.org/ns/shacl#PropertyShape")
	ShTargetClass  = iri("http://www.w3.org/ns/shacl#targetClass")
	ShUniqueLang   = iri("http://www.w3.org/ns/shacl#uniqueLang")

	YsFromClass               = iri("http://yago-knowledge.org/schema#fromClass")
	YsFromProperty             = iri("http://yago-knowledge.org/schema#fromProperty")
	YsAnnotationPropertyShape = iri("http://yago-knowledge.org/schema#AnnotationPropertyShape")
)

// PropertyTypes lists the three rdf:type values that make a schema
// node a Property.
var PropertyTypes = [3]term.Term{RdfProperty, OwlDatatypeProperty, OwlObjectProperty}
