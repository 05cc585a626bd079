/*
conversion.go - Cross-kind conversion index

PURPOSE:
  Answers "what is this reporting period in that unit?" across kinds, using
  only what a list of UnitKindAssociations says, directly or through
  granularity expansion. No transitive inference across associations.

BUILD:
  For every association (P1, P2):
    1. expand P1 and P2 with ToAllGranularities(true)
    2. for every pair (p1, p2) of the expansions register
         (p1, unit(p2)) -> p2   and   (p2, unit(p1)) -> p1
    3. a key already mapped to an equal period is a no-op; mapped to a
       different period it is a ConsistencyError

  Example, FY2021Q1|FY2021Q1 <-> 2021-01|2021-03:
    (FY2021Q1|FY2021Q1, calendar-month)   -> 2021-01|2021-03
    (FY2021Q1|FY2021Q1, calendar-quarter) -> 2021Q1|2021Q1
    (2021-01|2021-03,   fiscal-quarter)   -> FY2021Q1|FY2021Q1
    (2021Q1|2021Q1,     fiscal-quarter)   -> FY2021Q1|FY2021Q1

QUERY:
  One map probe. Build everything up front so queries never fail for
  consistency reasons.

CONCURRENCY:
  Build from a single goroutine. A built index is never mutated and is safe
  for concurrent TryConvert calls; publish it behind an atomic pointer or
  any other immutable reference (see Catalog).
*/
package accounting

import (
	"fmt"
	"sort"
)

type conversionKey struct {
	period ReportingPeriod[UnitOfTime]
	unit   Unit
}

// UnitKindConversionIndex is build-once, read-many.
type UnitKindConversionIndex struct {
	edges        map[conversionKey]ReportingPeriod[UnitOfTime]
	units        map[ReportingPeriod[UnitOfTime]][]Unit
	associations []UnitKindAssociation
}

// NewUnitKindConversionIndex builds the index or fails on the first
// contradictory association.
func NewUnitKindConversionIndex(associations []UnitKindAssociation) (*UnitKindConversionIndex, error) {
	idx := &UnitKindConversionIndex{
		edges:        make(map[conversionKey]ReportingPeriod[UnitOfTime]),
		units:        make(map[ReportingPeriod[UnitOfTime]][]Unit),
		associations: make([]UnitKindAssociation, 0, len(associations)),
	}

	for i, a := range associations {
		if a.IsZero() {
			return nil, missingArgument(fmt.Sprintf("associations[%d]", i))
		}
		firsts := a.first.ToAllGranularities(true)
		seconds := a.second.ToAllGranularities(true)
		for _, p1 := range firsts {
			for _, p2 := range seconds {
				if err := idx.register(p1, p2, a.id); err != nil {
					return nil, err
				}
				if err := idx.register(p2, p1, a.id); err != nil {
					return nil, err
				}
			}
		}
		idx.associations = append(idx.associations, a)
	}

	for _, units := range idx.units {
		sort.Slice(units, func(i, j int) bool {
			if units[i].Kind != units[j].Kind {
				return units[i].Kind < units[j].Kind
			}
			return units[i].Granularity < units[j].Granularity
		})
	}
	return idx, nil
}

func (x *UnitKindConversionIndex) register(from, to ReportingPeriod[UnitOfTime], associationID string) error {
	unit, err := to.GetUnit()
	if err != nil {
		return err
	}
	key := conversionKey{period: from, unit: unit}
	if existing, ok := x.edges[key]; ok {
		if existing == to {
			return nil
		}
		return &ConsistencyError{
			Period:        from,
			Unit:          unit,
			Existing:      existing,
			Conflicting:   to,
			AssociationID: associationID,
		}
	}
	x.edges[key] = to
	x.units[from] = append(x.units[from], unit)
	return nil
}

// TryConvert returns the equivalent of period in unit. Not knowing an answer
// is (zero, false, nil); a bad request is an error wrapping ErrInvalidArgument.
func (x *UnitKindConversionIndex) TryConvert(period ReportingPeriod[UnitOfTime], unit Unit) (ReportingPeriod[UnitOfTime], bool, error) {
	if period.IsZero() {
		return ReportingPeriod[UnitOfTime]{}, false, missingArgument("reporting period")
	}
	if period.HasComponentWithUnboundedGranularity() {
		return ReportingPeriod[UnitOfTime]{}, false, invalidArgument("reporting period", period, "must not have an unbounded component")
	}
	if err := unit.Validate(); err != nil {
		return ReportingPeriod[UnitOfTime]{}, false, err
	}
	if unit.Granularity == GranularityUnbounded {
		return ReportingPeriod[UnitOfTime]{}, false, invalidArgument("unit", unit, "cannot convert to an unbounded granularity")
	}
	if unit.Kind == period.Kind() {
		return ReportingPeriod[UnitOfTime]{}, false, invalidArgument("unit", unit, "must differ in kind from the reporting period")
	}

	converted, ok := x.edges[conversionKey{period: period, unit: unit}]
	return converted, ok, nil
}

// ConvertTo is TryConvert with static types on both sides.
func ConvertTo[T, S UnitOfTime](x *UnitKindConversionIndex, period ReportingPeriod[S], unit Unit) (ReportingPeriod[T], bool, error) {
	converted, ok, err := x.TryConvert(period.Widen(), unit)
	if err != nil || !ok {
		return ReportingPeriod[T]{}, ok, err
	}
	narrowed, err := Narrow[T](converted)
	if err != nil {
		return ReportingPeriod[T]{}, false, err
	}
	return narrowed, true, nil
}

// Units lists the units period can be converted to, ordered by kind then granularity.
func (x *UnitKindConversionIndex) Units(period ReportingPeriod[UnitOfTime]) []Unit {
	units := x.units[period]
	out := make([]Unit, len(units))
	copy(out, units)
	return out
}

// Len is the number of directed (period, unit) entries.
func (x *UnitKindConversionIndex) Len() int { return len(x.edges) }

// Associations returns the associations the index was built from.
func (x *UnitKindConversionIndex) Associations() []UnitKindAssociation {
	out := make([]UnitKindAssociation, len(x.associations))
	copy(out, x.associations)
	return out
}
