package accounting

// Generic units of time carry no calendar context at all ("year 1 of a plan",
// "quarter 3 of a contract"). They relate to other kinds only through
// UnitKindAssociation.

const genericCode = 'g'

// =============================================================================
// GENERIC MONTH
// =============================================================================

type GenericMonth struct {
	year  int
	month MonthOfYear
}

func NewGenericMonth(year int, month MonthOfYear) (GenericMonth, error) {
	if err := validateYear(year); err != nil {
		return GenericMonth{}, err
	}
	if err := validateMonth(month); err != nil {
		return GenericMonth{}, err
	}
	return GenericMonth{year: year, month: month}, nil
}

func (m GenericMonth) Year() int                { return m.year }
func (m GenericMonth) Month() MonthOfYear       { return m.month }
func (m GenericMonth) Kind() Kind               { return KindGeneric }
func (m GenericMonth) Granularity() Granularity { return GranularityMonth }
func (m GenericMonth) Unit() Unit               { return Unit{Kind: KindGeneric, Granularity: GranularityMonth} }
func (m GenericMonth) IsBounded() bool          { return true }

func (m GenericMonth) String() string         { return formatMonth("GY", m.year, m.month) }
func (m GenericMonth) SortableString() string { return sortableMonth(genericCode, m.year, m.month) }

func (m GenericMonth) CompareToForRelativeSortOrder(other UnitOfTime) (RelativeSortOrder, error) {
	return compareUnitsOfTime(m, other)
}

func (m GenericMonth) MarshalText() ([]byte, error)     { return []byte(m.SortableString()), nil }
func (m *GenericMonth) UnmarshalText(text []byte) error { return unmarshalInto(m, text) }

func (m GenericMonth) ordinal() int { return monthOrdinal(m.year, m.month) }
func (m GenericMonth) parent() (UnitOfTime, bool, bool, bool) {
	return monthParent(KindGeneric, m.year, m.month)
}

func (GenericMonth) genericUnitOfTime() {}

// =============================================================================
// GENERIC QUARTER
// =============================================================================

type GenericQuarter struct {
	year    int
	quarter QuarterOfYear
}

func NewGenericQuarter(year int, quarter QuarterOfYear) (GenericQuarter, error) {
	if err := validateYear(year); err != nil {
		return GenericQuarter{}, err
	}
	if err := validateQuarter(quarter); err != nil {
		return GenericQuarter{}, err
	}
	return GenericQuarter{year: year, quarter: quarter}, nil
}

func (q GenericQuarter) Year() int                { return q.year }
func (q GenericQuarter) Quarter() QuarterOfYear   { return q.quarter }
func (q GenericQuarter) Kind() Kind               { return KindGeneric }
func (q GenericQuarter) Granularity() Granularity { return GranularityQuarter }
func (q GenericQuarter) Unit() Unit               { return Unit{Kind: KindGeneric, Granularity: GranularityQuarter} }
func (q GenericQuarter) IsBounded() bool          { return true }

func (q GenericQuarter) FirstMonth() GenericMonth {
	return GenericMonth{year: q.year, month: q.quarter.FirstMonth()}
}

func (q GenericQuarter) LastMonth() GenericMonth {
	return GenericMonth{year: q.year, month: q.quarter.LastMonth()}
}

func (q GenericQuarter) String() string { return formatQuarter("GY", q.year, q.quarter) }
func (q GenericQuarter) SortableString() string {
	return sortableQuarter(genericCode, q.year, q.quarter)
}

func (q GenericQuarter) CompareToForRelativeSortOrder(other UnitOfTime) (RelativeSortOrder, error) {
	return compareUnitsOfTime(q, other)
}

func (q GenericQuarter) MarshalText() ([]byte, error)     { return []byte(q.SortableString()), nil }
func (q *GenericQuarter) UnmarshalText(text []byte) error { return unmarshalInto(q, text) }

func (q GenericQuarter) ordinal() int { return quarterOrdinal(q.year, q.quarter) }
func (q GenericQuarter) parent() (UnitOfTime, bool, bool, bool) {
	return quarterParent(KindGeneric, q.year, q.quarter)
}

func (GenericQuarter) genericUnitOfTime() {}

// =============================================================================
// GENERIC YEAR
// =============================================================================

type GenericYear struct {
	year int
}

func NewGenericYear(year int) (GenericYear, error) {
	if err := validateYear(year); err != nil {
		return GenericYear{}, err
	}
	return GenericYear{year: year}, nil
}

func (y GenericYear) Year() int                { return y.year }
func (y GenericYear) Kind() Kind               { return KindGeneric }
func (y GenericYear) Granularity() Granularity { return GranularityYear }
func (y GenericYear) Unit() Unit               { return Unit{Kind: KindGeneric, Granularity: GranularityYear} }
func (y GenericYear) IsBounded() bool          { return true }

func (y GenericYear) FirstMonth() GenericMonth { return GenericMonth{year: y.year, month: January} }
func (y GenericYear) LastMonth() GenericMonth  { return GenericMonth{year: y.year, month: December} }

func (y GenericYear) String() string         { return formatYear("GY", y.year) }
func (y GenericYear) SortableString() string { return sortableYear(genericCode, y.year) }

func (y GenericYear) CompareToForRelativeSortOrder(other UnitOfTime) (RelativeSortOrder, error) {
	return compareUnitsOfTime(y, other)
}

func (y GenericYear) MarshalText() ([]byte, error)     { return []byte(y.SortableString()), nil }
func (y *GenericYear) UnmarshalText(text []byte) error { return unmarshalInto(y, text) }

func (y GenericYear) ordinal() int                           { return y.year }
func (y GenericYear) parent() (UnitOfTime, bool, bool, bool) { return nil, false, false, false }

func (GenericYear) genericUnitOfTime() {}

// =============================================================================
// GENERIC UNBOUNDED
// =============================================================================

type GenericUnbounded struct{}

func (GenericUnbounded) Kind() Kind               { return KindGeneric }
func (GenericUnbounded) Granularity() Granularity { return GranularityUnbounded }
func (GenericUnbounded) Unit() Unit               { return Unit{Kind: KindGeneric, Granularity: GranularityUnbounded} }
func (GenericUnbounded) IsBounded() bool          { return false }
func (GenericUnbounded) String() string           { return "GenericUnbounded" }
func (GenericUnbounded) SortableString() string   { return sortableUnbounded(genericCode) }

func (u GenericUnbounded) CompareToForRelativeSortOrder(other UnitOfTime) (RelativeSortOrder, error) {
	return compareUnitsOfTime(u, other)
}

func (u GenericUnbounded) MarshalText() ([]byte, error)     { return []byte(u.SortableString()), nil }
func (u *GenericUnbounded) UnmarshalText(text []byte) error { return unmarshalInto(u, text) }

func (GenericUnbounded) ordinal() int                           { return 0 }
func (GenericUnbounded) parent() (UnitOfTime, bool, bool, bool) { return nil, false, false, false }

func (GenericUnbounded) genericUnitOfTime() {}
