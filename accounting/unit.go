package accounting

import (
	"fmt"
	"strings"
)

// =============================================================================
// KIND - Which calendar a unit of time is expressed in
// =============================================================================

type Kind int

const (
	KindInvalid Kind = iota
	KindCalendar
	KindFiscal
	KindGeneric
)

func (k Kind) String() string {
	switch k {
	case KindCalendar:
		return "calendar"
	case KindFiscal:
		return "fiscal"
	case KindGeneric:
		return "generic"
	default:
		return "invalid"
	}
}

// IsValid reports whether k is one of the live kinds.
func (k Kind) IsValid() bool {
	return k == KindCalendar || k == KindFiscal || k == KindGeneric
}

// ParseKind accepts the String() form, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "calendar":
		return KindCalendar, nil
	case "fiscal":
		return KindFiscal, nil
	case "generic":
		return KindGeneric, nil
	default:
		return KindInvalid, invalidArgument("kind", s, "unknown kind")
	}
}

// =============================================================================
// GRANULARITY - Resolution of a unit of time
// =============================================================================

// Granularity values are declared fine to coarse. Only granularity expansion
// relies on that order.
type Granularity int

const (
	GranularityInvalid Granularity = iota
	GranularityDay
	GranularityMonth
	GranularityQuarter
	GranularityYear
	GranularityUnbounded
)

func (g Granularity) String() string {
	switch g {
	case GranularityDay:
		return "day"
	case GranularityMonth:
		return "month"
	case GranularityQuarter:
		return "quarter"
	case GranularityYear:
		return "year"
	case GranularityUnbounded:
		return "unbounded"
	default:
		return "invalid"
	}
}

func (g Granularity) IsValid() bool {
	return g >= GranularityDay && g <= GranularityUnbounded
}

func (g Granularity) IsBounded() bool {
	return g >= GranularityDay && g <= GranularityYear
}

// ParseGranularity accepts the String() form, case-insensitively.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day":
		return GranularityDay, nil
	case "month":
		return GranularityMonth, nil
	case "quarter":
		return GranularityQuarter, nil
	case "year":
		return GranularityYear, nil
	case "unbounded":
		return GranularityUnbounded, nil
	default:
		return GranularityInvalid, invalidArgument("granularity", s, "unknown granularity")
	}
}

// =============================================================================
// UNIT - (kind, granularity) independent of any concrete instant
// =============================================================================

type Unit struct {
	Kind        Kind
	Granularity Granularity
}

// NewUnit validates the pair. Day granularity only exists for the calendar kind.
func NewUnit(kind Kind, granularity Granularity) (Unit, error) {
	u := Unit{Kind: kind, Granularity: granularity}
	if err := u.Validate(); err != nil {
		return Unit{}, err
	}
	return u, nil
}

// MustUnit is NewUnit for package-level literals; it panics on an invalid pair.
func MustUnit(kind Kind, granularity Granularity) Unit {
	u, err := NewUnit(kind, granularity)
	if err != nil {
		panic(err)
	}
	return u
}

func (u Unit) Validate() error {
	if !u.Kind.IsValid() {
		return invalidArgument("kind", u.Kind, "must be calendar, fiscal or generic")
	}
	if !u.Granularity.IsValid() {
		return invalidArgument("granularity", u.Granularity, "must be a valid granularity")
	}
	if u.Granularity == GranularityDay && u.Kind != KindCalendar {
		return invalidArgument("granularity", u.Granularity, "day granularity requires the calendar kind")
	}
	return nil
}

func (u Unit) String() string {
	return u.Kind.String() + "-" + u.Granularity.String()
}

// ParseUnit parses the String() form, e.g. "fiscal-quarter".
func ParseUnit(s string) (Unit, error) {
	kind, granularity, ok := strings.Cut(s, "-")
	if !ok {
		return Unit{}, invalidArgument("unit", s, "expected <kind>-<granularity>")
	}
	k, err := ParseKind(kind)
	if err != nil {
		return Unit{}, err
	}
	g, err := ParseGranularity(granularity)
	if err != nil {
		return Unit{}, err
	}
	return NewUnit(k, g)
}

// =============================================================================
// DURATION - Quantity of a unit, for relative offsets
// =============================================================================

type Duration struct {
	Quantity int
	Unit     Unit
}

// NewDuration fails when the unit is invalid or unbounded.
func NewDuration(quantity int, unit Unit) (Duration, error) {
	if err := unit.Validate(); err != nil {
		return Duration{}, err
	}
	if unit.Granularity == GranularityUnbounded {
		return Duration{}, invalidArgument("unit", unit, "a duration cannot be measured in unbounded units")
	}
	return Duration{Quantity: quantity, Unit: unit}, nil
}

func (d Duration) IsZero() bool { return d == Duration{} }

func (d Duration) String() string {
	return fmt.Sprintf("%d %s", d.Quantity, d.Unit)
}
