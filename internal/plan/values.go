// SPDX-FileCopyrightText: 2022 Sascha Brawer <sascha@brawer.ch>
// SPDX-License-Identifier: MIT

package plan

import (
	"math"
	"strconv"
	"strings"

	"github.com/yago-naga/yago4/internal/term"
	"github.com/yago-naga/yago4/internal/vocab"
)

// convertTime rewrites a wikibase:timeValue/timePrecision/
// timeCalendarModel triple into a single cleaned literal, choosing the
// xsd type that matches the statement's precision. Only the Gregorian
// calendar is understood; anything else (in practice, Julian-calendar
// dates before 1582) is dropped.
func convertTime(value, precision, calendarModel term.Term) (term.Term, bool) {
	if calendarModel != vocab.WdQ1985727 {
		return term.Term{}, false
	}
	if value.Kind != term.DateTimeLiteral || precision.Kind != term.IntegerLiteral {
		return term.Term{}, false
	}
	t := value.Time()
	switch precision.Int {
	case 9:
		return term.NewTypedLiteral(t.Format("2006"), vocab.XsdGYear.Str), true
	case 10:
		return term.NewTypedLiteral(t.Format("2006-01"), vocab.XsdGYearMonth.Str), true
	case 11:
		return term.NewTypedLiteral(t.Format("2006-01-02"), vocab.XsdDate.Str), true
	case 14:
		return value, true
	default:
		return term.Term{}, false
	}
}

// convertGlobeCoordinates rewrites a wikibase:geoLatitude/geoLongitude/
// geoPrecision/geoGlobe statement (earth only) into a geo: URI node
// plus the facts describing it.
func convertGlobeCoordinates(latitude, longitude, precision, globe term.Term) (term.Term, []Fact, bool) {
	if globe != vocab.WdQ2 {
		return term.Term{}, nil, false
	}
	if latitude.Kind != term.DoubleLiteral || longitude.Kind != term.DoubleLiteral || precision.Kind != term.DoubleLiteral {
		return term.Term{}, nil, false
	}
	roundedLat := roundDegrees(latitude.Double(), precision.Double())
	roundedLong := roundDegrees(longitude.Double(), precision.Double())
	iri := term.NewIri("geo:" + formatDegrees(roundedLat) + "," + formatDegrees(roundedLong))

	facts := []Fact{
		{Subject: iri, Predicate: vocab.RdfType, Object: vocab.SchemaGeoCoordinates},
		{Subject: iri, Predicate: vocab.SchemaLatitude, Object: term.NewDoubleLiteral(roundedLat)},
		{Subject: iri, Predicate: vocab.SchemaLongitude, Object: term.NewDoubleLiteral(roundedLong)},
	}
	return iri, facts, true
}

// roundDegrees rounds degrees to the nearest multiple of precision,
// following the algorithm of Wikidata's own LatLongFormatter.
func roundDegrees(degrees, precision float64) float64 {
	reduced := math.Round(math.Abs(degrees) / precision)
	expanded := reduced * precision
	if degrees < 0 {
		return -expanded
	}
	return expanded
}

func formatDegrees(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// convertDurationQuantity rewrites a wikibase:quantityAmount/
// quantityUnit pair into an xsd:duration literal, for the handful of
// time units Wikidata statements commonly use.
func convertDurationQuantity(amount, unit term.Term) (term.Term, bool) {
	if amount.Kind != term.DecimalLiteral {
		return term.Term{}, false
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(amount.Str, "+"), 10, 64)
	if err != nil {
		return term.Term{}, false
	}
	var suffix string
	switch unit {
	case vocab.WdQ11574: // second
		suffix = "S"
	case vocab.WdQ7727: // minute
		suffix = "M"
	case vocab.WdQ25235: // hour
		suffix = "H"
	case vocab.WdQ573: // day
		return term.NewTypedLiteral(durationLiteral("P", n, "D"), vocab.XsdDuration.Str), true
	default:
		return term.Term{}, false
	}
	return term.NewTypedLiteral(durationLiteral("PT", n, suffix), vocab.XsdDuration.Str), true
}

func durationLiteral(prefix string, n int64, suffix string) string {
	if n < 0 {
		return "-" + prefix + strconv.FormatInt(-n, 10) + suffix
	}
	return prefix + strconv.FormatInt(n, 10) + suffix
}

// convertIntegerQuantity rewrites a dimensionless (unit "1", Q199)
// wikibase:quantityAmount into a plain xsd:integer literal.
func convertIntegerQuantity(amount, unit term.Term) (term.Term, bool) {
	if unit != vocab.WdQ199 {
		return term.Term{}, false
	}
	if amount.Kind != term.DecimalLiteral {
		return term.Term{}, false
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(amount.Str, "+"), 10, 64)
	if err != nil {
		return term.Term{}, false
	}
	return term.NewIntegerLiteral(n), true
}

// convertQuantity builds a schema:QuantitativeValue node for a
// wikibase:quantityAmount statement that carries upper/lower bounds,
// one per PSV node: the node's IRI is subject's IRI with its
// http://www.wikidata.org/prop/ prefix, if present, replaced by the
// YAGO value namespace; an IRI without that prefix is used unchanged.
func convertQuantity(subject, unit, amount, lowerBound, upperBound term.Term) (term.Term, []Fact, bool) {
	if subject.Kind != term.Iri {
		return term.Term{}, nil, false
	}
	quantity := term.NewIri(strings.Replace(subject.Str, pPrefix, yagoValuePrefix, 1))
	facts := []Fact{
		{Subject: quantity, Predicate: vocab.RdfType, Object: vocab.SchemaQuantitativeValue},
		{Subject: quantity, Predicate: vocab.SchemaValue, Object: amount},
		{Subject: quantity, Predicate: vocab.SchemaMinValue, Object: lowerBound},
		{Subject: quantity, Predicate: vocab.SchemaMaxValue, Object: upperBound},
		{Subject: quantity, Predicate: vocab.SchemaUnitCode, Object: unit},
	}
	return quantity, facts, true
}
