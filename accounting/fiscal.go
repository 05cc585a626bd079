package accounting

// Fiscal units of time are relative to an organization's fiscal year. How a
// fiscal year maps onto the calendar is not known here; UnitKindAssociation
// supplies that mapping.

const fiscalCode = 'f'

// =============================================================================
// FISCAL MONTH
// =============================================================================

type FiscalMonth struct {
	year  int
	month MonthOfYear
}

// NewFiscalMonth takes the month number within the fiscal year (1 = first fiscal month).
func NewFiscalMonth(year int, month MonthOfYear) (FiscalMonth, error) {
	if err := validateYear(year); err != nil {
		return FiscalMonth{}, err
	}
	if err := validateMonth(month); err != nil {
		return FiscalMonth{}, err
	}
	return FiscalMonth{year: year, month: month}, nil
}

func (m FiscalMonth) Year() int                { return m.year }
func (m FiscalMonth) Month() MonthOfYear       { return m.month }
func (m FiscalMonth) Kind() Kind               { return KindFiscal }
func (m FiscalMonth) Granularity() Granularity { return GranularityMonth }
func (m FiscalMonth) Unit() Unit               { return Unit{Kind: KindFiscal, Granularity: GranularityMonth} }
func (m FiscalMonth) IsBounded() bool          { return true }

func (m FiscalMonth) String() string         { return formatMonth("FY", m.year, m.month) }
func (m FiscalMonth) SortableString() string { return sortableMonth(fiscalCode, m.year, m.month) }

func (m FiscalMonth) CompareToForRelativeSortOrder(other UnitOfTime) (RelativeSortOrder, error) {
	return compareUnitsOfTime(m, other)
}

func (m FiscalMonth) MarshalText() ([]byte, error)     { return []byte(m.SortableString()), nil }
func (m *FiscalMonth) UnmarshalText(text []byte) error { return unmarshalInto(m, text) }

func (m FiscalMonth) ordinal() int { return monthOrdinal(m.year, m.month) }
func (m FiscalMonth) parent() (UnitOfTime, bool, bool, bool) {
	return monthParent(KindFiscal, m.year, m.month)
}

func (FiscalMonth) fiscalUnitOfTime() {}

// =============================================================================
// FISCAL QUARTER
// =============================================================================

type FiscalQuarter struct {
	year    int
	quarter QuarterOfYear
}

func NewFiscalQuarter(year int, quarter QuarterOfYear) (FiscalQuarter, error) {
	if err := validateYear(year); err != nil {
		return FiscalQuarter{}, err
	}
	if err := validateQuarter(quarter); err != nil {
		return FiscalQuarter{}, err
	}
	return FiscalQuarter{year: year, quarter: quarter}, nil
}

func (q FiscalQuarter) Year() int                { return q.year }
func (q FiscalQuarter) Quarter() QuarterOfYear   { return q.quarter }
func (q FiscalQuarter) Kind() Kind               { return KindFiscal }
func (q FiscalQuarter) Granularity() Granularity { return GranularityQuarter }
func (q FiscalQuarter) Unit() Unit               { return Unit{Kind: KindFiscal, Granularity: GranularityQuarter} }
func (q FiscalQuarter) IsBounded() bool          { return true }

func (q FiscalQuarter) FirstMonth() FiscalMonth {
	return FiscalMonth{year: q.year, month: q.quarter.FirstMonth()}
}

func (q FiscalQuarter) LastMonth() FiscalMonth {
	return FiscalMonth{year: q.year, month: q.quarter.LastMonth()}
}

func (q FiscalQuarter) String() string { return formatQuarter("FY", q.year, q.quarter) }
func (q FiscalQuarter) SortableString() string {
	return sortableQuarter(fiscalCode, q.year, q.quarter)
}

func (q FiscalQuarter) CompareToForRelativeSortOrder(other UnitOfTime) (RelativeSortOrder, error) {
	return compareUnitsOfTime(q, other)
}

func (q FiscalQuarter) MarshalText() ([]byte, error)     { return []byte(q.SortableString()), nil }
func (q *FiscalQuarter) UnmarshalText(text []byte) error { return unmarshalInto(q, text) }

func (q FiscalQuarter) ordinal() int { return quarterOrdinal(q.year, q.quarter) }
func (q FiscalQuarter) parent() (UnitOfTime, bool, bool, bool) {
	return quarterParent(KindFiscal, q.year, q.quarter)
}

func (FiscalQuarter) fiscalUnitOfTime() {}

// =============================================================================
// FISCAL YEAR
// =============================================================================

type FiscalYear struct {
	year int
}

func NewFiscalYear(year int) (FiscalYear, error) {
	if err := validateYear(year); err != nil {
		return FiscalYear{}, err
	}
	return FiscalYear{year: year}, nil
}

func (y FiscalYear) Year() int                { return y.year }
func (y FiscalYear) Kind() Kind               { return KindFiscal }
func (y FiscalYear) Granularity() Granularity { return GranularityYear }
func (y FiscalYear) Unit() Unit               { return Unit{Kind: KindFiscal, Granularity: GranularityYear} }
func (y FiscalYear) IsBounded() bool          { return true }

func (y FiscalYear) FirstMonth() FiscalMonth { return FiscalMonth{year: y.year, month: January} }
func (y FiscalYear) LastMonth() FiscalMonth  { return FiscalMonth{year: y.year, month: December} }

func (y FiscalYear) String() string         { return formatYear("FY", y.year) }
func (y FiscalYear) SortableString() string { return sortableYear(fiscalCode, y.year) }

func (y FiscalYear) CompareToForRelativeSortOrder(other UnitOfTime) (RelativeSortOrder, error) {
	return compareUnitsOfTime(y, other)
}

func (y FiscalYear) MarshalText() ([]byte, error)     { return []byte(y.SortableString()), nil }
func (y *FiscalYear) UnmarshalText(text []byte) error { return unmarshalInto(y, text) }

func (y FiscalYear) ordinal() int                           { return y.year }
func (y FiscalYear) parent() (UnitOfTime, bool, bool, bool) { return nil, false, false, false }

func (FiscalYear) fiscalUnitOfTime() {}

// =============================================================================
// FISCAL UNBOUNDED
// =============================================================================

type FiscalUnbounded struct{}

func (FiscalUnbounded) Kind() Kind               { return KindFiscal }
func (FiscalUnbounded) Granularity() Granularity { return GranularityUnbounded }
func (FiscalUnbounded) Unit() Unit               { return Unit{Kind: KindFiscal, Granularity: GranularityUnbounded} }
func (FiscalUnbounded) IsBounded() bool          { return false }
func (FiscalUnbounded) String() string           { return "FiscalUnbounded" }
func (FiscalUnbounded) SortableString() string   { return sortableUnbounded(fiscalCode) }

func (u FiscalUnbounded) CompareToForRelativeSortOrder(other UnitOfTime) (RelativeSortOrder, error) {
	return compareUnitsOfTime(u, other)
}

func (u FiscalUnbounded) MarshalText() ([]byte, error)     { return []byte(u.SortableString()), nil }
func (u *FiscalUnbounded) UnmarshalText(text []byte) error { return unmarshalInto(u, text) }

func (FiscalUnbounded) ordinal() int                           { return 0 }
func (FiscalUnbounded) parent() (UnitOfTime, bool, bool, bool) { return nil, false, false, false }

func (FiscalUnbounded) fiscalUnitOfTime() {}
