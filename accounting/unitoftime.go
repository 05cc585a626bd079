/*
unitoftime.go - The closed unit-of-time taxonomy

PURPOSE:
  A UnitOfTime is a concrete, immutable unit of accounting time. The set of
  concrete types is closed: its kind and granularity determine which leaf a
  value is.

              Day           Month          Quarter          Year          Unbounded
  Calendar    CalendarDay   CalendarMonth  CalendarQuarter  CalendarYear  CalendarUnbounded
  Fiscal      -             FiscalMonth    FiscalQuarter    FiscalYear    FiscalUnbounded
  Generic     -             GenericMonth   GenericQuarter   GenericYear   GenericUnbounded

ORDERING:
  Values order chronologically inside a leaf type. Unbounded values of a kind
  are all at the same position, after every bounded value of that kind.
  Nothing orders across kinds or across two bounded granularities.

STRING FORMS:
  String()          canonical, human-oriented ("2017-01", "FY2017Q1")
  SortableString()  fixed width, lexicographic order == semantic order
                    ("c:2:2017-01", "f:3:2017-1")

SEE ALSO:
  - calendar.go, fiscal.go, generic.go: Leaf types
  - codec.go: Parsing both string forms
  - period.go: Ranges of units of time
*/
package accounting

import (
	"fmt"
	"reflect"
	"time"
)

const (
	MinYear = 1
	MaxYear = 9999
)

// UnitOfTime is implemented only by the leaf types of this package.
type UnitOfTime interface {
	Kind() Kind
	Granularity() Granularity
	Unit() Unit
	IsBounded() bool

	// String returns the canonical form.
	String() string

	// SortableString returns a fixed-width form whose lexicographic order
	// matches CompareToForRelativeSortOrder.
	SortableString() string

	// CompareToForRelativeSortOrder positions the receiver relative to other.
	// A nil other always yields Follows.
	CompareToForRelativeSortOrder(other UnitOfTime) (RelativeSortOrder, error)

	MarshalText() ([]byte, error)

	// ordinal is a monotonic position within the leaf type.
	ordinal() int

	// parent returns the unit one granularity coarser that contains this one,
	// and whether this unit is the first and/or last unit inside it.
	parent() (container UnitOfTime, first, last, ok bool)
}

// CalendarUnitOfTime is satisfied by the calendar leaves only.
type CalendarUnitOfTime interface {
	UnitOfTime
	calendarUnitOfTime()
}

// FiscalUnitOfTime is satisfied by the fiscal leaves only.
type FiscalUnitOfTime interface {
	UnitOfTime
	fiscalUnitOfTime()
}

// GenericUnitOfTime is satisfied by the generic (context-free) leaves only.
type GenericUnitOfTime interface {
	UnitOfTime
	genericUnitOfTime()
}

// isLeaf reports whether u holds one of the value leaf types. Pointers to
// leaves satisfy UnitOfTime but are not members of the taxonomy.
func isLeaf(u UnitOfTime) bool {
	switch u.(type) {
	case CalendarDay, CalendarMonth, CalendarQuarter, CalendarYear, CalendarUnbounded,
		FiscalMonth, FiscalQuarter, FiscalYear, FiscalUnbounded,
		GenericMonth, GenericQuarter, GenericYear, GenericUnbounded:
		return true
	}
	return false
}

// checkUnitOfTime fails with ErrMissingArgument for nil and zero leaves and
// with an UnsupportedTypeError for anything outside the value leaves.
func checkUnitOfTime(name string, u UnitOfTime) error {
	if u == nil {
		return missingArgument(name)
	}
	if !isLeaf(u) {
		return &UnsupportedTypeError{Type: reflect.TypeOf(u)}
	}
	if absent(u) {
		return missingArgument(name)
	}
	return nil
}

// =============================================================================
// RELATIVE SORT ORDER
// =============================================================================

type RelativeSortOrder int

const (
	RelativeSortOrderInvalid RelativeSortOrder = iota
	Precedes
	SamePosition
	Follows
)

func (o RelativeSortOrder) String() string {
	switch o {
	case Precedes:
		return "precedes"
	case SamePosition:
		return "same-position"
	case Follows:
		return "follows"
	default:
		return "invalid"
	}
}

func compareUnitsOfTime(a, b UnitOfTime) (RelativeSortOrder, error) {
	if b == nil {
		return Follows, nil
	}
	if !isLeaf(b) {
		return RelativeSortOrderInvalid, &UnsupportedTypeError{Type: reflect.TypeOf(b)}
	}
	if a.Kind() != b.Kind() {
		return RelativeSortOrderInvalid, fmt.Errorf("%w: %s is %s, %s is %s", ErrIncomparable, a, a.Kind(), b, b.Kind())
	}

	switch ab, bb := a.IsBounded(), b.IsBounded(); {
	case !ab && !bb:
		return SamePosition, nil
	case !ab:
		return Follows, nil
	case !bb:
		return Precedes, nil
	}

	if a.Granularity() != b.Granularity() {
		return RelativeSortOrderInvalid, fmt.Errorf("%w: %s is a %s, %s is a %s",
			ErrIncomparable, a, a.Granularity(), b, b.Granularity())
	}

	switch x, y := a.ordinal(), b.ordinal(); {
	case x < y:
		return Precedes, nil
	case x > y:
		return Follows, nil
	default:
		return SamePosition, nil
	}
}

// lessOrEqual reports a <= b for two comparable units of time.
func lessOrEqual(a, b UnitOfTime) (bool, error) {
	order, err := compareUnitsOfTime(a, b)
	if err != nil {
		return false, err
	}
	return order != Follows, nil
}

// =============================================================================
// MONTH / QUARTER / DAY OF
// =============================================================================

type MonthOfYear int

const (
	MonthInvalid MonthOfYear = iota
	January
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

func (m MonthOfYear) IsValid() bool { return m >= January && m <= December }

func (m MonthOfYear) String() string {
	if !m.IsValid() {
		return "invalid"
	}
	return time.Month(m).String()
}

// Quarter returns the quarter containing m.
func (m MonthOfYear) Quarter() QuarterOfYear {
	return QuarterOfYear((int(m)-1)/3 + 1)
}

type QuarterOfYear int

const (
	QuarterInvalid QuarterOfYear = iota
	Q1
	Q2
	Q3
	Q4
)

func (q QuarterOfYear) IsValid() bool { return q >= Q1 && q <= Q4 }

func (q QuarterOfYear) String() string {
	if !q.IsValid() {
		return "invalid"
	}
	return fmt.Sprintf("Q%d", int(q))
}

func (q QuarterOfYear) FirstMonth() MonthOfYear { return MonthOfYear(int(q)*3 - 2) }
func (q QuarterOfYear) LastMonth() MonthOfYear  { return MonthOfYear(int(q) * 3) }

// DaysInMonth returns the Gregorian number of days in month, leap years included.
func DaysInMonth(year int, month MonthOfYear) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func validateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return outOfRange("year", year, fmt.Sprintf("must be in [%d, %d]", MinYear, MaxYear))
	}
	return nil
}

func validateMonth(month MonthOfYear) error {
	if month == MonthInvalid {
		return invalidArgument("month", month, "invalid month sentinel")
	}
	if !month.IsValid() {
		return outOfRange("month", int(month), "must be in [1, 12]")
	}
	return nil
}

func validateQuarter(quarter QuarterOfYear) error {
	if quarter == QuarterInvalid {
		return invalidArgument("quarter", quarter, "invalid quarter sentinel")
	}
	if !quarter.IsValid() {
		return outOfRange("quarter", int(quarter), "must be in [1, 4]")
	}
	return nil
}

// =============================================================================
// FACTORIES BY KIND - exhaustive over the taxonomy
// =============================================================================

func monthOf(kind Kind, year int, month MonthOfYear) UnitOfTime {
	switch kind {
	case KindCalendar:
		return CalendarMonth{year: year, month: month}
	case KindFiscal:
		return FiscalMonth{year: year, month: month}
	case KindGeneric:
		return GenericMonth{year: year, month: month}
	}
	return nil
}

func quarterOf(kind Kind, year int, quarter QuarterOfYear) UnitOfTime {
	switch kind {
	case KindCalendar:
		return CalendarQuarter{year: year, quarter: quarter}
	case KindFiscal:
		return FiscalQuarter{year: year, quarter: quarter}
	case KindGeneric:
		return GenericQuarter{year: year, quarter: quarter}
	}
	return nil
}

func yearOf(kind Kind, year int) UnitOfTime {
	switch kind {
	case KindCalendar:
		return CalendarYear{year: year}
	case KindFiscal:
		return FiscalYear{year: year}
	case KindGeneric:
		return GenericYear{year: year}
	}
	return nil
}

// Unbounded returns the unbounded unit of time for kind, or nil for an invalid kind.
func Unbounded(kind Kind) UnitOfTime {
	switch kind {
	case KindCalendar:
		return CalendarUnbounded{}
	case KindFiscal:
		return FiscalUnbounded{}
	case KindGeneric:
		return GenericUnbounded{}
	}
	return nil
}

// coarsen walks up from u to granularity g. first/last report whether u sits
// at the very start/end of the returned container.
func coarsen(u UnitOfTime, g Granularity) (container UnitOfTime, first, last bool) {
	container, first, last = u, true, true
	for container.Granularity() < g {
		next, f, l, ok := container.parent()
		if !ok {
			return nil, false, false
		}
		container, first, last = next, first && f, last && l
	}
	return container, first, last
}

// =============================================================================
// SHARED PARTS - year/month/quarter payloads reused by the three kinds
// =============================================================================

func monthParent(kind Kind, year int, month MonthOfYear) (UnitOfTime, bool, bool, bool) {
	q := month.Quarter()
	return quarterOf(kind, year, q), month == q.FirstMonth(), month == q.LastMonth(), true
}

func quarterParent(kind Kind, year int, quarter QuarterOfYear) (UnitOfTime, bool, bool, bool) {
	return yearOf(kind, year), quarter == Q1, quarter == Q4, true
}

func monthOrdinal(year int, month MonthOfYear) int       { return year*12 + int(month) - 1 }
func quarterOrdinal(year int, quarter QuarterOfYear) int { return year*4 + int(quarter) - 1 }

func formatMonth(prefix string, year int, month MonthOfYear) string {
	return fmt.Sprintf("%s%04d-%02d", prefix, year, int(month))
}

func formatQuarter(prefix string, year int, quarter QuarterOfYear) string {
	return fmt.Sprintf("%s%04dQ%d", prefix, year, int(quarter))
}

func formatYear(prefix string, year int) string {
	return fmt.Sprintf("%s%04d", prefix, year)
}

func sortableMonth(kindCode byte, year int, month MonthOfYear) string {
	return fmt.Sprintf("%c:2:%04d-%02d", kindCode, year, int(month))
}

func sortableQuarter(kindCode byte, year int, quarter QuarterOfYear) string {
	return fmt.Sprintf("%c:3:%04d-%d", kindCode, year, int(quarter))
}

func sortableYear(kindCode byte, year int) string {
	return fmt.Sprintf("%c:4:%04d", kindCode, year)
}

func sortableUnbounded(kindCode byte) string {
	return fmt.Sprintf("%c:9:unbounded", kindCode)
}
