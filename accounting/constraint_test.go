package accounting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/accounting-time/accounting"
)

func TestBoundsConstraint_IsSatisfiedBy(t *testing.T) {
	bounded := accounting.UnitOfTime(mustMonth(2020, accounting.June))
	unbounded := accounting.UnitOfTime(accounting.CalendarUnbounded{})

	// Columns: (bounded, bounded), (bounded, unbounded), (unbounded, bounded), (unbounded, unbounded)
	tests := []struct {
		constraint accounting.BoundsConstraint
		want       [4]bool
	}{
		{accounting.BoundsNone, [4]bool{true, true, true, true}},
		{accounting.BoundsStartBoundedEndBounded, [4]bool{true, false, false, false}},
		{accounting.BoundsStartBoundedEndUnbounded, [4]bool{false, true, false, false}},
		{accounting.BoundsStartBoundedEndAny, [4]bool{true, true, false, false}},
		{accounting.BoundsStartUnboundedEndBounded, [4]bool{false, false, true, false}},
		{accounting.BoundsStartUnboundedEndUnbounded, [4]bool{false, false, false, true}},
		{accounting.BoundsStartUnboundedEndAny, [4]bool{false, false, true, true}},
		{accounting.BoundsStartAnyEndBounded, [4]bool{true, false, true, false}},
		{accounting.BoundsStartAnyEndUnbounded, [4]bool{false, true, false, true}},
		{accounting.BoundsInvalid, [4]bool{false, false, false, false}},
	}

	pairs := [4][2]accounting.UnitOfTime{
		{bounded, bounded},
		{bounded, unbounded},
		{unbounded, bounded},
		{unbounded, unbounded},
	}

	for _, tt := range tests {
		t.Run(tt.constraint.String(), func(t *testing.T) {
			for i, pair := range pairs {
				assert.Equal(t, tt.want[i], tt.constraint.IsSatisfiedBy(pair[0], pair[1]), "%s|%s", pair[0], pair[1])
			}
		})
	}
}

func TestBoundsConstraint_AtConstruction(t *testing.T) {
	jan := mustMonth(2020, accounting.January)

	_, err := accounting.NewReportingPeriod[accounting.UnitOfTime](jan, accounting.CalendarUnbounded{}, accounting.BoundsStartBoundedEndUnbounded)
	assert.NoError(t, err)

	_, err = accounting.NewReportingPeriod[accounting.UnitOfTime](jan, jan, accounting.BoundsStartBoundedEndUnbounded)
	assert.ErrorIs(t, err, accounting.ErrInvalidArgument)

	_, err = accounting.NewReportingPeriod(jan, jan, accounting.BoundsInvalid)
	assert.ErrorIs(t, err, accounting.ErrOutOfRange)
}

func TestSpanConstraint(t *testing.T) {
	jan, mar := mustMonth(2020, accounting.January), mustMonth(2020, accounting.March)

	_, err := accounting.NewReportingPeriod(jan, jan, accounting.SpanSingleUnit)
	assert.NoError(t, err)

	_, err = accounting.NewReportingPeriod(jan, mar, accounting.SpanSingleUnit)
	assert.ErrorIs(t, err, accounting.ErrInvalidArgument)

	_, err = accounting.NewReportingPeriod(jan, jan, accounting.SpanMultipleUnits)
	assert.ErrorIs(t, err, accounting.ErrInvalidArgument)

	_, err = accounting.NewReportingPeriod(jan, mar, accounting.SpanMultipleUnits, accounting.BoundsStartBoundedEndBounded)
	assert.NoError(t, err)

	_, err = accounting.NewReportingPeriod(jan, mar, accounting.SpanInvalid)
	assert.ErrorIs(t, err, accounting.ErrOutOfRange)

	_, err = accounting.NewReportingPeriod[accounting.UnitOfTime](accounting.FiscalUnbounded{}, accounting.FiscalUnbounded{}, accounting.SpanSingleUnit)
	assert.NoError(t, err, "unbounded values are all equal")
}

func TestSatisfiesConstraints(t *testing.T) {
	p := mustPeriod("2020-01|CalendarUnbounded")

	assert.True(t, accounting.SatisfiesConstraints(p))
	assert.True(t, accounting.SatisfiesConstraints(p, accounting.BoundsStartAnyEndUnbounded, accounting.SpanMultipleUnits))
	assert.False(t, accounting.SatisfiesConstraints(p, accounting.BoundsStartBoundedEndBounded))
	assert.False(t, accounting.SatisfiesConstraints(accounting.ReportingPeriod[accounting.UnitOfTime]{}))
}

func TestConstraints_RefusePointerLeaves(t *testing.T) {
	jan := mustMonth(2020, accounting.January)

	assert.True(t, accounting.SpanSingleUnit.IsSatisfiedBy(jan, jan))
	assert.False(t, accounting.SpanSingleUnit.IsSatisfiedBy(&jan, &jan))
	assert.False(t, accounting.BoundsNone.IsSatisfiedBy(jan, (*accounting.CalendarMonth)(nil)))
}
