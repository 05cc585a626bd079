package accounting

import (
	"fmt"
	"time"
)

// Calendar units of time follow the Gregorian calendar. Only the calendar
// kind has a day granularity.

const calendarCode = 'c'

// =============================================================================
// CALENDAR DAY
// =============================================================================

type CalendarDay struct {
	year  int
	month MonthOfYear
	day   int
}

// NewCalendarDay fails when day does not exist in month of year; it never clamps.
func NewCalendarDay(year int, month MonthOfYear, day int) (CalendarDay, error) {
	if err := validateYear(year); err != nil {
		return CalendarDay{}, err
	}
	if err := validateMonth(month); err != nil {
		return CalendarDay{}, err
	}
	if n := DaysInMonth(year, month); day < 1 || day > n {
		return CalendarDay{}, outOfRange("day", day, fmt.Sprintf("%s %04d has %d days", month, year, n))
	}
	return CalendarDay{year: year, month: month, day: day}, nil
}

// CalendarDayOf truncates t (in its own location) to a calendar day.
func CalendarDayOf(t time.Time) (CalendarDay, error) {
	return NewCalendarDay(t.Year(), MonthOfYear(t.Month()), t.Day())
}

func (d CalendarDay) Year() int                { return d.year }
func (d CalendarDay) Month() MonthOfYear       { return d.month }
func (d CalendarDay) Day() int                 { return d.day }
func (d CalendarDay) Kind() Kind               { return KindCalendar }
func (d CalendarDay) Granularity() Granularity { return GranularityDay }
func (d CalendarDay) Unit() Unit               { return Unit{Kind: KindCalendar, Granularity: GranularityDay} }
func (d CalendarDay) IsBounded() bool          { return true }

// Time returns midnight UTC of the day.
func (d CalendarDay) Time() time.Time {
	return time.Date(d.year, time.Month(d.month), d.day, 0, 0, 0, 0, time.UTC)
}

func (d CalendarDay) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

func (d CalendarDay) SortableString() string {
	return fmt.Sprintf("%c:1:%04d-%02d-%02d", calendarCode, d.year, int(d.month), d.day)
}

func (d CalendarDay) CompareToForRelativeSortOrder(other UnitOfTime) (RelativeSortOrder, error) {
	return compareUnitsOfTime(d, other)
}

func (d CalendarDay) MarshalText() ([]byte, error)     { return []byte(d.SortableString()), nil }
func (d *CalendarDay) UnmarshalText(text []byte) error { return unmarshalInto(d, text) }

func (d CalendarDay) ordinal() int { return d.year*10000 + int(d.month)*100 + d.day }

func (d CalendarDay) parent() (UnitOfTime, bool, bool, bool) {
	return CalendarMonth{year: d.year, month: d.month}, d.day == 1, d.day == DaysInMonth(d.year, d.month), true
}

func (CalendarDay) calendarUnitOfTime() {}

// =============================================================================
// CALENDAR MONTH
// =============================================================================

type CalendarMonth struct {
	year  int
	month MonthOfYear
}

func NewCalendarMonth(year int, month MonthOfYear) (CalendarMonth, error) {
	if err := validateYear(year); err != nil {
		return CalendarMonth{}, err
	}
	if err := validateMonth(month); err != nil {
		return CalendarMonth{}, err
	}
	return CalendarMonth{year: year, month: month}, nil
}

func (m CalendarMonth) Year() int                { return m.year }
func (m CalendarMonth) Month() MonthOfYear       { return m.month }
func (m CalendarMonth) Kind() Kind               { return KindCalendar }
func (m CalendarMonth) Granularity() Granularity { return GranularityMonth }
func (m CalendarMonth) Unit() Unit               { return Unit{Kind: KindCalendar, Granularity: GranularityMonth} }
func (m CalendarMonth) IsBounded() bool          { return true }

// FirstDay and LastDay bound the month.
func (m CalendarMonth) FirstDay() CalendarDay {
	return CalendarDay{year: m.year, month: m.month, day: 1}
}
func (m CalendarMonth) LastDay() CalendarDay {
	return CalendarDay{year: m.year, month: m.month, day: DaysInMonth(m.year, m.month)}
}

func (m CalendarMonth) String() string         { return formatMonth("", m.year, m.month) }
func (m CalendarMonth) SortableString() string { return sortableMonth(calendarCode, m.year, m.month) }

func (m CalendarMonth) CompareToForRelativeSortOrder(other UnitOfTime) (RelativeSortOrder, error) {
	return compareUnitsOfTime(m, other)
}

func (m CalendarMonth) MarshalText() ([]byte, error)     { return []byte(m.SortableString()), nil }
func (m *CalendarMonth) UnmarshalText(text []byte) error { return unmarshalInto(m, text) }

func (m CalendarMonth) ordinal() int { return monthOrdinal(m.year, m.month) }
func (m CalendarMonth) parent() (UnitOfTime, bool, bool, bool) {
	return monthParent(KindCalendar, m.year, m.month)
}

func (CalendarMonth) calendarUnitOfTime() {}

// =============================================================================
// CALENDAR QUARTER
// =============================================================================

type CalendarQuarter struct {
	year    int
	quarter QuarterOfYear
}

func NewCalendarQuarter(year int, quarter QuarterOfYear) (CalendarQuarter, error) {
	if err := validateYear(year); err != nil {
		return CalendarQuarter{}, err
	}
	if err := validateQuarter(quarter); err != nil {
		return CalendarQuarter{}, err
	}
	return CalendarQuarter{year: year, quarter: quarter}, nil
}

func (q CalendarQuarter) Year() int                { return q.year }
func (q CalendarQuarter) Quarter() QuarterOfYear   { return q.quarter }
func (q CalendarQuarter) Kind() Kind               { return KindCalendar }
func (q CalendarQuarter) Granularity() Granularity { return GranularityQuarter }
func (q CalendarQuarter) Unit() Unit               { return Unit{Kind: KindCalendar, Granularity: GranularityQuarter} }
func (q CalendarQuarter) IsBounded() bool          { return true }

func (q CalendarQuarter) FirstMonth() CalendarMonth {
	return CalendarMonth{year: q.year, month: q.quarter.FirstMonth()}
}

func (q CalendarQuarter) LastMonth() CalendarMonth {
	return CalendarMonth{year: q.year, month: q.quarter.LastMonth()}
}

func (q CalendarQuarter) String() string { return formatQuarter("", q.year, q.quarter) }
func (q CalendarQuarter) SortableString() string {
	return sortableQuarter(calendarCode, q.year, q.quarter)
}

func (q CalendarQuarter) CompareToForRelativeSortOrder(other UnitOfTime) (RelativeSortOrder, error) {
	return compareUnitsOfTime(q, other)
}

func (q CalendarQuarter) MarshalText() ([]byte, error)     { return []byte(q.SortableString()), nil }
func (q *CalendarQuarter) UnmarshalText(text []byte) error { return unmarshalInto(q, text) }

func (q CalendarQuarter) ordinal() int { return quarterOrdinal(q.year, q.quarter) }
func (q CalendarQuarter) parent() (UnitOfTime, bool, bool, bool) {
	return quarterParent(KindCalendar, q.year, q.quarter)
}

func (CalendarQuarter) calendarUnitOfTime() {}

// =============================================================================
// CALENDAR YEAR
// =============================================================================

type CalendarYear struct {
	year int
}

func NewCalendarYear(year int) (CalendarYear, error) {
	if err := validateYear(year); err != nil {
		return CalendarYear{}, err
	}
	return CalendarYear{year: year}, nil
}

func (y CalendarYear) Year() int                { return y.year }
func (y CalendarYear) Kind() Kind               { return KindCalendar }
func (y CalendarYear) Granularity() Granularity { return GranularityYear }
func (y CalendarYear) Unit() Unit               { return Unit{Kind: KindCalendar, Granularity: GranularityYear} }
func (y CalendarYear) IsBounded() bool          { return true }

func (y CalendarYear) FirstMonth() CalendarMonth { return CalendarMonth{year: y.year, month: January} }
func (y CalendarYear) LastMonth() CalendarMonth  { return CalendarMonth{year: y.year, month: December} }

func (y CalendarYear) String() string         { return formatYear("", y.year) }
func (y CalendarYear) SortableString() string { return sortableYear(calendarCode, y.year) }

func (y CalendarYear) CompareToForRelativeSortOrder(other UnitOfTime) (RelativeSortOrder, error) {
	return compareUnitsOfTime(y, other)
}

func (y CalendarYear) MarshalText() ([]byte, error)     { return []byte(y.SortableString()), nil }
func (y *CalendarYear) UnmarshalText(text []byte) error { return unmarshalInto(y, text) }

func (y CalendarYear) ordinal() int                           { return y.year }
func (y CalendarYear) parent() (UnitOfTime, bool, bool, bool) { return nil, false, false, false }

func (CalendarYear) calendarUnitOfTime() {}

// =============================================================================
// CALENDAR UNBOUNDED
// =============================================================================

// CalendarUnbounded is open-ended calendar time. All values are equal.
type CalendarUnbounded struct{}

func (CalendarUnbounded) Kind() Kind               { return KindCalendar }
func (CalendarUnbounded) Granularity() Granularity { return GranularityUnbounded }
func (CalendarUnbounded) Unit() Unit {
	return Unit{Kind: KindCalendar, Granularity: GranularityUnbounded}
}
func (CalendarUnbounded) IsBounded() bool        { return false }
func (CalendarUnbounded) String() string         { return "CalendarUnbounded" }
func (CalendarUnbounded) SortableString() string { return sortableUnbounded(calendarCode) }

func (u CalendarUnbounded) CompareToForRelativeSortOrder(other UnitOfTime) (RelativeSortOrder, error) {
	return compareUnitsOfTime(u, other)
}

func (u CalendarUnbounded) MarshalText() ([]byte, error)     { return []byte(u.SortableString()), nil }
func (u *CalendarUnbounded) UnmarshalText(text []byte) error { return unmarshalInto(u, text) }

func (CalendarUnbounded) ordinal() int                           { return 0 }
func (CalendarUnbounded) parent() (UnitOfTime, bool, bool, bool) { return nil, false, false, false }

func (CalendarUnbounded) calendarUnitOfTime() {}
