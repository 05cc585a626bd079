package accounting_test

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/accounting-time/accounting"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func mustDay(year int, month accounting.MonthOfYear, day int) accounting.CalendarDay {
	d, err := accounting.NewCalendarDay(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

func mustMonth(year int, month accounting.MonthOfYear) accounting.CalendarMonth {
	m, err := accounting.NewCalendarMonth(year, month)
	if err != nil {
		panic(err)
	}
	return m
}

func mustQuarter(year int, quarter accounting.QuarterOfYear) accounting.CalendarQuarter {
	q, err := accounting.NewCalendarQuarter(year, quarter)
	if err != nil {
		panic(err)
	}
	return q
}

func mustYear(year int) accounting.CalendarYear {
	y, err := accounting.NewCalendarYear(year)
	if err != nil {
		panic(err)
	}
	return y
}

func mustFiscalQuarter(year int, quarter accounting.QuarterOfYear) accounting.FiscalQuarter {
	q, err := accounting.NewFiscalQuarter(year, quarter)
	if err != nil {
		panic(err)
	}
	return q
}

// mustPeriod parses "<start>|<end>" in either string form.
func mustPeriod(s string) accounting.ReportingPeriod[accounting.UnitOfTime] {
	p, err := accounting.ParseReportingPeriod(s)
	if err != nil {
		panic(err)
	}
	return p
}

func periodStrings(periods []accounting.ReportingPeriod[accounting.UnitOfTime]) []string {
	out := make([]string, 0, len(periods))
	for _, p := range periods {
		out = append(out, p.String())
	}
	return out
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

func TestNewCalendarDay_LeapYears(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		day     int
		wantErr bool
	}{
		{"leap year", 2020, 29, false},
		{"divisible by 400", 2000, 29, false},
		{"common year", 2019, 29, true},
		{"divisible by 100 only", 1900, 29, true},
		{"february 28 always exists", 2019, 28, false},
		{"day zero", 2020, 0, true},
		{"february 30", 2020, 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := accounting.NewCalendarDay(tt.year, accounting.February, tt.day)
			if tt.wantErr {
				assert.ErrorIs(t, err, accounting.ErrOutOfRange)
				assert.True(t, accounting.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.day, d.Day())
		})
	}
}

func TestNewCalendarDay_NeverClamps(t *testing.T) {
	_, err := accounting.NewCalendarDay(2021, accounting.April, 31)
	assert.ErrorIs(t, err, accounting.ErrOutOfRange)

	var argErr *accounting.ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "day", argErr.Name)
	assert.Equal(t, 31, argErr.Value)
}

func TestConstructors_RejectInvalidComponents(t *testing.T) {
	_, err := accounting.NewCalendarMonth(2020, accounting.MonthInvalid)
	assert.ErrorIs(t, err, accounting.ErrInvalidArgument, "sentinel month is invalid, not out of range")

	_, err = accounting.NewCalendarMonth(2020, 13)
	assert.ErrorIs(t, err, accounting.ErrOutOfRange)

	_, err = accounting.NewFiscalQuarter(2020, accounting.QuarterInvalid)
	assert.ErrorIs(t, err, accounting.ErrInvalidArgument)

	_, err = accounting.NewGenericQuarter(2020, 5)
	assert.ErrorIs(t, err, accounting.ErrOutOfRange)

	_, err = accounting.NewCalendarYear(accounting.MinYear - 1)
	assert.ErrorIs(t, err, accounting.ErrOutOfRange)

	_, err = accounting.NewFiscalYear(accounting.MaxYear + 1)
	assert.ErrorIs(t, err, accounting.ErrOutOfRange)

	_, err = accounting.NewGenericMonth(accounting.MaxYear, accounting.December)
	assert.NoError(t, err)
}

func TestCalendarDayOf(t *testing.T) {
	d, err := accounting.CalendarDayOf(time.Date(2024, time.February, 29, 23, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), d.Time())
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, accounting.DaysInMonth(2021, accounting.January))
	assert.Equal(t, 28, accounting.DaysInMonth(2021, accounting.February))
	assert.Equal(t, 29, accounting.DaysInMonth(2024, accounting.February))
	assert.Equal(t, 30, accounting.DaysInMonth(2021, accounting.November))
	assert.Equal(t, 31, accounting.DaysInMonth(2021, accounting.December))
}

func TestMonthAndQuarterOfYear(t *testing.T) {
	assert.Equal(t, accounting.Q1, accounting.March.Quarter())
	assert.Equal(t, accounting.Q2, accounting.April.Quarter())
	assert.Equal(t, accounting.Q4, accounting.December.Quarter())
	assert.Equal(t, accounting.October, accounting.Q4.FirstMonth())
	assert.Equal(t, accounting.June, accounting.Q2.LastMonth())
	assert.Equal(t, "Q3", accounting.Q3.String())
	assert.Equal(t, "March", accounting.March.String())
}

// =============================================================================
// STRING FORMS
// =============================================================================

func TestUnitOfTime_StringForms(t *testing.T) {
	fiscalMonth, _ := accounting.NewFiscalMonth(2017, accounting.January)
	fiscalYear, _ := accounting.NewFiscalYear(2017)
	genericQuarter, _ := accounting.NewGenericQuarter(2017, accounting.Q1)
	genericMonth, _ := accounting.NewGenericMonth(2017, accounting.November)

	tests := []struct {
		unit      accounting.UnitOfTime
		canonical string
		sortable  string
	}{
		{mustDay(2017, accounting.January, 28), "2017-01-28", "c:1:2017-01-28"},
		{mustMonth(2017, accounting.January), "2017-01", "c:2:2017-01"},
		{mustQuarter(2017, accounting.Q1), "2017Q1", "c:3:2017-1"},
		{mustYear(2017), "2017", "c:4:2017"},
		{accounting.CalendarUnbounded{}, "CalendarUnbounded", "c:9:unbounded"},
		{fiscalMonth, "FY2017-01", "f:2:2017-01"},
		{mustFiscalQuarter(2017, accounting.Q4), "FY2017Q4", "f:3:2017-4"},
		{fiscalYear, "FY2017", "f:4:2017"},
		{accounting.FiscalUnbounded{}, "FiscalUnbounded", "f:9:unbounded"},
		{genericMonth, "GY2017-11", "g:2:2017-11"},
		{genericQuarter, "GY2017Q1", "g:3:2017-1"},
		{accounting.GenericUnbounded{}, "GenericUnbounded", "g:9:unbounded"},
	}

	for _, tt := range tests {
		t.Run(tt.canonical, func(t *testing.T) {
			assert.Equal(t, tt.canonical, tt.unit.String())
			assert.Equal(t, tt.sortable, tt.unit.SortableString())

			text, err := tt.unit.MarshalText()
			require.NoError(t, err)
			assert.Equal(t, tt.sortable, string(text))
		})
	}
}

func TestUnitOfTime_KindAndGranularity(t *testing.T) {
	var u accounting.UnitOfTime = mustFiscalQuarter(2020, accounting.Q2)
	assert.Equal(t, accounting.KindFiscal, u.Kind())
	assert.Equal(t, accounting.GranularityQuarter, u.Granularity())
	assert.Equal(t, accounting.Unit{Kind: accounting.KindFiscal, Granularity: accounting.GranularityQuarter}, u.Unit())
	assert.True(t, u.IsBounded())

	_, isFiscal := u.(accounting.FiscalUnitOfTime)
	_, isCalendar := u.(accounting.CalendarUnitOfTime)
	assert.True(t, isFiscal)
	assert.False(t, isCalendar)

	assert.False(t, accounting.GenericUnbounded{}.IsBounded())
	assert.Equal(t, accounting.GenericUnbounded{}, accounting.Unbounded(accounting.KindGeneric))
	assert.Nil(t, accounting.Unbounded(accounting.KindInvalid))
}

// =============================================================================
// RELATIVE SORT ORDER
// =============================================================================

func TestCompareToForRelativeSortOrder(t *testing.T) {
	jan := mustMonth(2020, accounting.January)
	feb := mustMonth(2020, accounting.February)
	decPrev := mustMonth(2019, accounting.December)
	fiscalJan, _ := accounting.NewFiscalMonth(2020, accounting.January)

	tests := []struct {
		name    string
		a, b    accounting.UnitOfTime
		want    accounting.RelativeSortOrder
		wantErr error
	}{
		{"earlier month precedes", jan, feb, accounting.Precedes, nil},
		{"later month follows", jan, decPrev, accounting.Follows, nil},
		{"same month", jan, mustMonth(2020, accounting.January), accounting.SamePosition, nil},
		{"nil always follows", jan, nil, accounting.Follows, nil},
		{"bounded precedes unbounded", jan, accounting.CalendarUnbounded{}, accounting.Precedes, nil},
		{"unbounded follows bounded", accounting.CalendarUnbounded{}, mustDay(9999, accounting.December, 31), accounting.Follows, nil},
		{"unbounded equals unbounded", accounting.CalendarUnbounded{}, accounting.CalendarUnbounded{}, accounting.SamePosition, nil},
		{"different kinds", jan, fiscalJan, accounting.RelativeSortOrderInvalid, accounting.ErrIncomparable},
		{"unbounded of different kinds", accounting.CalendarUnbounded{}, accounting.FiscalUnbounded{}, accounting.RelativeSortOrderInvalid, accounting.ErrIncomparable},
		{"different granularities", jan, mustQuarter(2020, accounting.Q1), accounting.RelativeSortOrderInvalid, accounting.ErrIncomparable},
		{"pointer leaf", jan, &feb, accounting.RelativeSortOrderInvalid, accounting.ErrUnsupportedType},
		{"typed nil", jan, (*accounting.CalendarMonth)(nil), accounting.RelativeSortOrderInvalid, accounting.ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.CompareToForRelativeSortOrder(tt.b)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortableString_OrdersLikeRelativeSortOrder(t *testing.T) {
	// GIVEN: calendar months scattered across years plus the unbounded unit
	units := []accounting.UnitOfTime{
		mustMonth(2021, accounting.March),
		accounting.CalendarUnbounded{},
		mustMonth(2019, accounting.December),
		mustMonth(2021, accounting.January),
		mustMonth(2020, accounting.October),
		mustMonth(999, accounting.May),
		mustMonth(2020, accounting.February),
	}

	// WHEN: sorting by the sortable string
	bySortable := append([]accounting.UnitOfTime(nil), units...)
	sort.Slice(bySortable, func(i, j int) bool {
		return bySortable[i].SortableString() < bySortable[j].SortableString()
	})

	// THEN: the order is the chronological order
	for i := 1; i < len(bySortable); i++ {
		order, err := bySortable[i-1].CompareToForRelativeSortOrder(bySortable[i])
		require.NoError(t, err)
		assert.Equal(t, accounting.Precedes, order, "%s before %s", bySortable[i-1], bySortable[i])
	}
	assert.Equal(t, accounting.CalendarUnbounded{}, bySortable[len(bySortable)-1])
}

func TestSortableString_QuartersAcrossYears(t *testing.T) {
	q4 := mustQuarter(2017, accounting.Q4)
	q1 := mustQuarter(2018, accounting.Q1)
	assert.Less(t, q4.SortableString(), q1.SortableString())
	assert.Less(t, q1.SortableString(), accounting.CalendarUnbounded{}.SortableString())
}

func TestArgumentError_Message(t *testing.T) {
	_, err := accounting.NewCalendarYear(0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, accounting.ErrOutOfRange))
	assert.Contains(t, err.Error(), "year")
}
