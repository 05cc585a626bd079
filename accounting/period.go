/*
period.go - Reporting periods: inclusive ranges of units of time

PURPOSE:
  A ReportingPeriod is an inclusive [start, end] range whose components share
  a kind. The type parameter pins the component type at compile time:

    ReportingPeriod[CalendarMonth]        both ends are calendar months
    ReportingPeriod[FiscalUnitOfTime]     any fiscal leaf, e.g. FY2020Q1 to FiscalUnbounded
    ReportingPeriod[UnitOfTime]           any kind, checked at construction

INVARIANTS:
  - start and end have the same kind
  - when both are bounded they have the same granularity and start <= end
  - optional BoundsConstraint / SpanConstraint values passed at construction

GRANULARITY EXPANSION:
  ToAllGranularities re-expresses a period at every coarser granularity its
  bounds align to:

    2020-01|2020-03  ->  2020Q1|2020Q1
    2020-01|2020-12  ->  2020Q1|2020Q4, 2020|2020
    2020-01|2020-02  ->  (nothing coarser; February does not end a quarter)

SEE ALSO:
  - constraint.go: Bounds and span constraints
  - conversion.go: Uses expansion to build the conversion index
*/
package accounting

import (
	"fmt"
	"math"
	"strings"
)

// ReportingPeriod is immutable; build it with NewReportingPeriod.
type ReportingPeriod[T UnitOfTime] struct {
	start T
	end   T
}

// NewReportingPeriod validates start and end, then applies each constraint in order.
func NewReportingPeriod[T UnitOfTime](start, end T, constraints ...PeriodConstraint) (ReportingPeriod[T], error) {
	if err := validatePeriod(start, end); err != nil {
		return ReportingPeriod[T]{}, err
	}
	for _, c := range constraints {
		if c == nil {
			continue
		}
		if err := c.Check(start, end); err != nil {
			return ReportingPeriod[T]{}, err
		}
	}
	return ReportingPeriod[T]{start: start, end: end}, nil
}

// MustReportingPeriod is NewReportingPeriod for literals in tests and fixtures.
func MustReportingPeriod[T UnitOfTime](start, end T, constraints ...PeriodConstraint) ReportingPeriod[T] {
	p, err := NewReportingPeriod(start, end, constraints...)
	if err != nil {
		panic(err)
	}
	return p
}

func validatePeriod(start, end UnitOfTime) error {
	if err := checkUnitOfTime("start", start); err != nil {
		return err
	}
	if err := checkUnitOfTime("end", end); err != nil {
		return err
	}
	if start.Kind() != end.Kind() {
		return invalidArgument("end", end, fmt.Sprintf("must be of the %s kind like start", start.Kind()))
	}
	if !start.IsBounded() || !end.IsBounded() {
		return nil
	}
	if start.Granularity() != end.Granularity() {
		return invalidArgument("end", end, fmt.Sprintf("must be a %s like start", start.Granularity()))
	}
	ok, err := lessOrEqual(start, end)
	if err != nil {
		return err
	}
	if !ok {
		return invalidArgument("start", start, fmt.Sprintf("must not follow end %s", end))
	}
	return nil
}

func (p ReportingPeriod[T]) Start() T { return p.start }
func (p ReportingPeriod[T]) End() T   { return p.end }

// IsZero reports whether p was never constructed.
func (p ReportingPeriod[T]) IsZero() bool {
	return absent(p.start) || absent(p.end)
}

// absent is true for nil, for anything that is not a value leaf and for the
// zero value of a bounded leaf, which no constructor can produce.
func absent(u UnitOfTime) bool {
	if u == nil || !isLeaf(u) {
		return true
	}
	if y, ok := u.(interface{ Year() int }); ok {
		return y.Year() == 0
	}
	return false
}

func (p ReportingPeriod[T]) Kind() Kind {
	if p.IsZero() {
		return KindInvalid
	}
	return p.start.Kind()
}

func (p ReportingPeriod[T]) HasComponentWithUnboundedGranularity() bool {
	if p.IsZero() {
		return false
	}
	return !p.start.IsBounded() || !p.end.IsBounded()
}

// GetUnit returns the shared unit of start and end. Periods that pair a
// bounded component with an unbounded one have no single unit.
func (p ReportingPeriod[T]) GetUnit() (Unit, error) {
	if p.IsZero() {
		return Unit{}, missingArgument("period")
	}
	if p.start.Granularity() != p.end.Granularity() {
		return Unit{}, fmt.Errorf("%w: %s", ErrMixedGranularity, p)
	}
	return p.start.Unit(), nil
}

// Widen drops the static component type.
func (p ReportingPeriod[T]) Widen() ReportingPeriod[UnitOfTime] {
	if p.IsZero() {
		return ReportingPeriod[UnitOfTime]{}
	}
	return ReportingPeriod[UnitOfTime]{start: p.start, end: p.end}
}

// Narrow recovers a statically typed period from a widened one.
func Narrow[T UnitOfTime](p ReportingPeriod[UnitOfTime]) (ReportingPeriod[T], error) {
	start, ok := p.start.(T)
	if !ok {
		return ReportingPeriod[T]{}, invalidArgument("start", p.start, fmt.Sprintf("is not a %s", typeName[T]()))
	}
	end, ok := p.end.(T)
	if !ok {
		return ReportingPeriod[T]{}, invalidArgument("end", p.end, fmt.Sprintf("is not a %s", typeName[T]()))
	}
	return ReportingPeriod[T]{start: start, end: end}, nil
}

func (p ReportingPeriod[T]) Equal(other ReportingPeriod[T]) bool {
	return any(p.start) == any(other.start) && any(p.end) == any(other.end)
}

// String joins the canonical forms: "2020-01|2020-03".
func (p ReportingPeriod[T]) String() string {
	if p.IsZero() {
		return "<zero>"
	}
	return p.start.String() + periodSeparator + p.end.String()
}

// SortableString joins the sortable forms: "c:2:2020-01|c:2:2020-03".
func (p ReportingPeriod[T]) SortableString() string {
	if p.IsZero() {
		return ""
	}
	return p.start.SortableString() + periodSeparator + p.end.SortableString()
}

func (p ReportingPeriod[T]) MarshalText() ([]byte, error) {
	if p.IsZero() {
		return nil, missingArgument("period")
	}
	return []byte(p.SortableString()), nil
}

func (p *ReportingPeriod[T]) UnmarshalText(text []byte) error {
	parsed, err := parseReportingPeriod[T](string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// =============================================================================
// GRANULARITY EXPANSION
// =============================================================================

// ToAllGranularities lists p re-expressed at each coarser granularity whose
// boundaries its start and end sit on, finest first. Unbounded components stay
// unbounded. Misaligned granularities are skipped, never approximated.
func (p ReportingPeriod[T]) ToAllGranularities(includeSelf bool) []ReportingPeriod[UnitOfTime] {
	if p.IsZero() {
		return nil
	}
	self := p.Widen()

	var result []ReportingPeriod[UnitOfTime]
	if includeSelf {
		result = append(result, self)
	}

	from := boundedGranularity(self.start, self.end)
	if !from.IsBounded() {
		return result
	}
	for g := from + 1; g <= GranularityYear; g++ {
		if expanded, ok := coarsenPeriod(self.start, self.end, g); ok {
			result = append(result, expanded)
		}
	}
	return result
}

func boundedGranularity(start, end UnitOfTime) Granularity {
	if start.IsBounded() {
		return start.Granularity()
	}
	return end.Granularity()
}

func coarsenPeriod(start, end UnitOfTime, g Granularity) (ReportingPeriod[UnitOfTime], bool) {
	s, e := start, end
	if start.IsBounded() {
		container, first, _ := coarsen(start, g)
		if container == nil || !first {
			return ReportingPeriod[UnitOfTime]{}, false
		}
		s = container
	}
	if end.IsBounded() {
		container, _, last := coarsen(end, g)
		if container == nil || !last {
			return ReportingPeriod[UnitOfTime]{}, false
		}
		e = container
	}
	return ReportingPeriod[UnitOfTime]{start: s, end: e}, true
}

// =============================================================================
// COMPARISON IGNORING GRANULARITY
// =============================================================================

// ReportingPeriodComparison selects how CompareReportingPeriods relates two periods.
type ReportingPeriodComparison int

const (
	ComparisonInvalid ReportingPeriodComparison = iota
	// IsEqualToIgnoringGranularity: both periods cover exactly the same span.
	IsEqualToIgnoringGranularity
	// Contains: the first period covers all of the second.
	Contains
)

func (c ReportingPeriodComparison) String() string {
	switch c {
	case IsEqualToIgnoringGranularity:
		return "is-equal-to-ignoring-granularity"
	case Contains:
		return "contains"
	default:
		return "invalid"
	}
}

// CompareReportingPeriods evaluates comparison on two periods of the same kind.
// Unbounded starts reach back indefinitely and unbounded ends forward.
func CompareReportingPeriods[A, B UnitOfTime](a ReportingPeriod[A], b ReportingPeriod[B], comparison ReportingPeriodComparison) (bool, error) {
	if a.IsZero() {
		return false, missingArgument("first period")
	}
	if b.IsZero() {
		return false, missingArgument("second period")
	}
	if a.Kind() != b.Kind() {
		return false, invalidArgument("second period", b, fmt.Sprintf("must be of the %s kind", a.Kind()))
	}

	aLo, aHi := spanOrdinals(a.start, a.end)
	bLo, bHi := spanOrdinals(b.start, b.end)

	switch comparison {
	case IsEqualToIgnoringGranularity:
		return aLo == bLo && aHi == bHi, nil
	case Contains:
		return aLo <= bLo && bHi <= aHi, nil
	default:
		return false, outOfRange("comparison", comparison, "unsupported reporting period comparison")
	}
}

func (p ReportingPeriod[T]) IsEqualToIgnoringGranularity(other ReportingPeriod[UnitOfTime]) (bool, error) {
	return CompareReportingPeriods(p, other, IsEqualToIgnoringGranularity)
}

func (p ReportingPeriod[T]) Contains(other ReportingPeriod[UnitOfTime]) (bool, error) {
	return CompareReportingPeriods(p, other, Contains)
}

func spanOrdinals(start, end UnitOfTime) (int, int) {
	lo, hi := math.MinInt, math.MaxInt
	if start.IsBounded() {
		lo = finest(start, false).ordinal()
	}
	if end.IsBounded() {
		hi = finest(end, true).ordinal()
	}
	return lo, hi
}

// finest descends to the finest granularity of u's kind: days for the
// calendar, months otherwise. atEnd picks the last unit instead of the first.
func finest(u UnitOfTime, atEnd bool) UnitOfTime {
	pick := func(first, last UnitOfTime) UnitOfTime {
		if atEnd {
			return finest(last, atEnd)
		}
		return finest(first, atEnd)
	}
	switch v := u.(type) {
	case CalendarMonth:
		if atEnd {
			return v.LastDay()
		}
		return v.FirstDay()
	case CalendarQuarter:
		return pick(v.FirstMonth(), v.LastMonth())
	case CalendarYear:
		return pick(v.FirstMonth(), v.LastMonth())
	case FiscalQuarter:
		return pick(v.FirstMonth(), v.LastMonth())
	case FiscalYear:
		return pick(v.FirstMonth(), v.LastMonth())
	case GenericQuarter:
		return pick(v.FirstMonth(), v.LastMonth())
	case GenericYear:
		return pick(v.FirstMonth(), v.LastMonth())
	default:
		return u
	}
}

// =============================================================================
// TEXT FORM
// =============================================================================

const periodSeparator = "|"

func parseReportingPeriod[T UnitOfTime](s string) (ReportingPeriod[T], error) {
	startText, endText, ok := strings.Cut(s, periodSeparator)
	if !ok {
		return ReportingPeriod[T]{}, invalidArgument("reporting period", s, "expected <start>|<end>")
	}
	start, err := parseAs[T](startText)
	if err != nil {
		return ReportingPeriod[T]{}, err
	}
	end, err := parseAs[T](endText)
	if err != nil {
		return ReportingPeriod[T]{}, err
	}
	return NewReportingPeriod(start, end)
}
