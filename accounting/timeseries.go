package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DATAPOINT - A value reported for a reporting period
// =============================================================================

type Datapoint struct {
	Period ReportingPeriod[UnitOfTime]
	Value  decimal.Decimal
}

func NewDatapoint[T UnitOfTime](period ReportingPeriod[T], value decimal.Decimal) (Datapoint, error) {
	if period.IsZero() {
		return Datapoint{}, missingArgument("reporting period")
	}
	return Datapoint{Period: period.Widen(), Value: value}, nil
}

func (d Datapoint) Capabilities() Capability { return CapabilityDatapoint }

func (d Datapoint) String() string {
	return fmt.Sprintf("%s=%s", d.Period, d.Value)
}

// =============================================================================
// TIMESERIES - Datapoints sharing one unit
// =============================================================================

type Timeseries struct {
	name       string
	unit       Unit
	datapoints []Datapoint
}

// NewTimeseries requires every datapoint to use the same single unit and no
// period to repeat. Datapoints keep the order given.
func NewTimeseries(name string, datapoints []Datapoint) (Timeseries, error) {
	ts := Timeseries{name: name, datapoints: make([]Datapoint, 0, len(datapoints))}
	seen := make(map[ReportingPeriod[UnitOfTime]]bool, len(datapoints))

	for i, d := range datapoints {
		unit, err := d.Period.GetUnit()
		if err != nil {
			return Timeseries{}, fmt.Errorf("datapoint %d: %w", i, err)
		}
		if i == 0 {
			ts.unit = unit
		} else if unit != ts.unit {
			return Timeseries{}, invalidArgument(fmt.Sprintf("datapoints[%d]", i), d.Period,
				fmt.Sprintf("must be in %s like the rest of the series", ts.unit))
		}
		if seen[d.Period] {
			return Timeseries{}, invalidArgument(fmt.Sprintf("datapoints[%d]", i), d.Period, "period repeats")
		}
		seen[d.Period] = true
		ts.datapoints = append(ts.datapoints, d)
	}
	return ts, nil
}

func (t Timeseries) Name() string             { return t.name }
func (t Timeseries) Unit() Unit               { return t.unit }
func (t Timeseries) Len() int                 { return len(t.datapoints) }
func (t Timeseries) Capabilities() Capability { return CapabilityTimeseries }

func (t Timeseries) Datapoints() []Datapoint {
	out := make([]Datapoint, len(t.datapoints))
	copy(out, t.datapoints)
	return out
}

func (t Timeseries) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, d := range t.datapoints {
		sum = sum.Add(d.Value)
	}
	return sum
}

// Total sums the datapoints whose period lies inside within. within must be
// of the series' kind.
func (t Timeseries) Total(within ReportingPeriod[UnitOfTime]) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, d := range t.datapoints {
		ok, err := within.Contains(d.Period)
		if err != nil {
			return decimal.Zero, err
		}
		if ok {
			sum = sum.Add(d.Value)
		}
	}
	return sum, nil
}

// Convert re-expresses every period in unit through index. Values are
// carried over unchanged; the first period the index cannot convert fails
// the whole series.
func (t Timeseries) Convert(index *UnitKindConversionIndex, unit Unit) (Timeseries, error) {
	converted := make([]Datapoint, 0, len(t.datapoints))
	for _, d := range t.datapoints {
		p, ok, err := index.TryConvert(d.Period, unit)
		if err != nil {
			return Timeseries{}, err
		}
		if !ok {
			return Timeseries{}, invalidArgument("datapoint", d.Period, "has no known equivalent in "+unit.String())
		}
		converted = append(converted, Datapoint{Period: p, Value: d.Value})
	}
	return NewTimeseries(t.name, converted)
}
