package accounting

import "fmt"

// PeriodConstraint is an extra rule a caller can require of a reporting
// period at construction. Passing no constraint means no restriction.
type PeriodConstraint interface {
	Check(start, end UnitOfTime) error
}

// =============================================================================
// BOUNDS CONSTRAINT
// =============================================================================

// BoundsConstraint states whether start and end must each be bounded,
// unbounded, or either.
type BoundsConstraint int

const (
	BoundsInvalid BoundsConstraint = iota
	BoundsNone
	BoundsStartBoundedEndBounded
	BoundsStartBoundedEndUnbounded
	BoundsStartBoundedEndAny
	BoundsStartUnboundedEndBounded
	BoundsStartUnboundedEndUnbounded
	BoundsStartUnboundedEndAny
	BoundsStartAnyEndBounded
	BoundsStartAnyEndUnbounded
)

type boundedness int

const (
	requireAny boundedness = iota
	requireBounded
	requireUnbounded
)

func (b boundedness) allows(u UnitOfTime) bool {
	switch b {
	case requireBounded:
		return u.IsBounded()
	case requireUnbounded:
		return !u.IsBounded()
	default:
		return true
	}
}

func (c BoundsConstraint) sides() (start, end boundedness, ok bool) {
	switch c {
	case BoundsNone:
		return requireAny, requireAny, true
	case BoundsStartBoundedEndBounded:
		return requireBounded, requireBounded, true
	case BoundsStartBoundedEndUnbounded:
		return requireBounded, requireUnbounded, true
	case BoundsStartBoundedEndAny:
		return requireBounded, requireAny, true
	case BoundsStartUnboundedEndBounded:
		return requireUnbounded, requireBounded, true
	case BoundsStartUnboundedEndUnbounded:
		return requireUnbounded, requireUnbounded, true
	case BoundsStartUnboundedEndAny:
		return requireUnbounded, requireAny, true
	case BoundsStartAnyEndBounded:
		return requireAny, requireBounded, true
	case BoundsStartAnyEndUnbounded:
		return requireAny, requireUnbounded, true
	}
	return requireAny, requireAny, false
}

func (c BoundsConstraint) String() string {
	switch c {
	case BoundsNone:
		return "none"
	case BoundsStartBoundedEndBounded:
		return "start-bounded-end-bounded"
	case BoundsStartBoundedEndUnbounded:
		return "start-bounded-end-unbounded"
	case BoundsStartBoundedEndAny:
		return "start-bounded-end-any"
	case BoundsStartUnboundedEndBounded:
		return "start-unbounded-end-bounded"
	case BoundsStartUnboundedEndUnbounded:
		return "start-unbounded-end-unbounded"
	case BoundsStartUnboundedEndAny:
		return "start-unbounded-end-any"
	case BoundsStartAnyEndBounded:
		return "start-any-end-bounded"
	case BoundsStartAnyEndUnbounded:
		return "start-any-end-unbounded"
	default:
		return "invalid"
	}
}

func (c BoundsConstraint) IsSatisfiedBy(start, end UnitOfTime) bool {
	s, e, ok := c.sides()
	if !ok || !isLeaf(start) || !isLeaf(end) {
		return false
	}
	return s.allows(start) && e.allows(end)
}

func (c BoundsConstraint) Check(start, end UnitOfTime) error {
	if _, _, ok := c.sides(); !ok {
		return outOfRange("bounds constraint", int(c), "unknown bounds constraint")
	}
	if !c.IsSatisfiedBy(start, end) {
		return invalidArgument("reporting period", fmt.Sprintf("%s|%s", start, end), "violates bounds constraint "+c.String())
	}
	return nil
}

// =============================================================================
// SPAN CONSTRAINT
// =============================================================================

type SpanConstraint int

const (
	SpanInvalid SpanConstraint = iota
	SpanNone
	// SpanSingleUnit requires start == end.
	SpanSingleUnit
	// SpanMultipleUnits requires start != end.
	SpanMultipleUnits
)

func (c SpanConstraint) String() string {
	switch c {
	case SpanNone:
		return "none"
	case SpanSingleUnit:
		return "single-unit"
	case SpanMultipleUnits:
		return "multiple-units"
	default:
		return "invalid"
	}
}

func (c SpanConstraint) IsSatisfiedBy(start, end UnitOfTime) bool {
	if !isLeaf(start) || !isLeaf(end) {
		return false
	}
	switch c {
	case SpanNone:
		return true
	case SpanSingleUnit:
		return start == end
	case SpanMultipleUnits:
		return start != end
	default:
		return false
	}
}

func (c SpanConstraint) Check(start, end UnitOfTime) error {
	if c < SpanNone || c > SpanMultipleUnits {
		return outOfRange("span constraint", int(c), "unknown span constraint")
	}
	if !c.IsSatisfiedBy(start, end) {
		return invalidArgument("reporting period", fmt.Sprintf("%s|%s", start, end), "violates span constraint "+c.String())
	}
	return nil
}

// SatisfiesConstraints reports whether p meets every constraint given.
func SatisfiesConstraints[T UnitOfTime](p ReportingPeriod[T], constraints ...PeriodConstraint) bool {
	if p.IsZero() {
		return false
	}
	for _, c := range constraints {
		if c != nil && c.Check(p.start, p.end) != nil {
			return false
		}
	}
	return true
}
