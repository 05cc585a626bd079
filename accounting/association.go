package accounting

import "fmt"

// UnitKindAssociation asserts that two reporting periods of different kinds
// cover the same real span, e.g. FY2021Q1|FY2021Q1 and 2021-02|2021-04.
type UnitKindAssociation struct {
	id     string
	first  ReportingPeriod[UnitOfTime]
	second ReportingPeriod[UnitOfTime]
}

// NewUnitKindAssociation rejects unbounded components and same-kind pairs.
// id is optional and only used to name the association in errors and storage.
func NewUnitKindAssociation[A, B UnitOfTime](first ReportingPeriod[A], second ReportingPeriod[B], id string) (UnitKindAssociation, error) {
	if first.IsZero() {
		return UnitKindAssociation{}, missingArgument("first reporting period")
	}
	if second.IsZero() {
		return UnitKindAssociation{}, missingArgument("second reporting period")
	}
	if first.HasComponentWithUnboundedGranularity() {
		return UnitKindAssociation{}, invalidArgument("first reporting period", first, "must not have an unbounded component")
	}
	if second.HasComponentWithUnboundedGranularity() {
		return UnitKindAssociation{}, invalidArgument("second reporting period", second, "must not have an unbounded component")
	}
	if first.Kind() == second.Kind() {
		return UnitKindAssociation{}, invalidArgument("second reporting period", second,
			fmt.Sprintf("must not share the %s kind of the first reporting period", first.Kind()))
	}
	return UnitKindAssociation{id: id, first: first.Widen(), second: second.Widen()}, nil
}

func (a UnitKindAssociation) ID() string                          { return a.id }
func (a UnitKindAssociation) First() ReportingPeriod[UnitOfTime]  { return a.first }
func (a UnitKindAssociation) Second() ReportingPeriod[UnitOfTime] { return a.second }
func (a UnitKindAssociation) IsZero() bool                        { return a.first.IsZero() || a.second.IsZero() }

// WithID returns a copy carrying id.
func (a UnitKindAssociation) WithID(id string) UnitKindAssociation {
	a.id = id
	return a
}

func (a UnitKindAssociation) String() string {
	if a.id == "" {
		return fmt.Sprintf("%s <-> %s", a.first, a.second)
	}
	return fmt.Sprintf("%s: %s <-> %s", a.id, a.first, a.second)
}
