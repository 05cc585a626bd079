/*
codec.go - Canonical and sortable string forms

PURPOSE:
  The boundary contract for persistence and transport adapters. Adapters
  put these strings into JSON fields, database columns or property bags;
  this package only produces and consumes the strings.

FORMS:
  Leaf               Canonical            Sortable
  CalendarDay        2017-01-28           c:1:2017-01-28
  CalendarMonth      2017-01              c:2:2017-01
  CalendarQuarter    2017Q1               c:3:2017-1
  CalendarYear       2017                 c:4:2017
  CalendarUnbounded  CalendarUnbounded    c:9:unbounded
  FiscalMonth        FY2017-01            f:2:2017-01
  GenericQuarter     GY2017Q1             g:3:2017-1
  ...

  Reporting periods join their components with "|" in either form.

PARSING:
  ParseUnitOfTime and Deserialize accept both forms.
*/
package accounting

import (
	"encoding"
	"reflect"
	"strconv"
	"strings"
)

// reportingPeriodValue is implemented by every ReportingPeriod instantiation.
type reportingPeriodValue interface {
	String() string
	SortableString() string
	IsZero() bool
	reportingPeriod()
}

func (ReportingPeriod[T]) reportingPeriod() {}

// SerializeToString returns the canonical form of a unit of time or reporting period.
func SerializeToString(v any) (string, error) {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
		return "", &UnsupportedTypeError{Type: rv.Type()}
	}
	switch t := v.(type) {
	case UnitOfTime:
		if err := checkUnitOfTime("unit of time", t); err != nil {
			return "", err
		}
		return t.String(), nil
	case reportingPeriodValue:
		if t.IsZero() {
			return "", missingArgument("reporting period")
		}
		return t.String(), nil
	default:
		return "", &UnsupportedTypeError{Type: reflect.TypeOf(v)}
	}
}

// SerializeToSortableString returns the sortable form of a unit of time or reporting period.
func SerializeToSortableString(v any) (string, error) {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
		return "", &UnsupportedTypeError{Type: rv.Type()}
	}
	switch t := v.(type) {
	case UnitOfTime:
		if err := checkUnitOfTime("unit of time", t); err != nil {
			return "", err
		}
		return t.SortableString(), nil
	case reportingPeriodValue:
		if t.IsZero() {
			return "", missingArgument("reporting period")
		}
		return t.SortableString(), nil
	default:
		return "", &UnsupportedTypeError{Type: reflect.TypeOf(v)}
	}
}

// Deserialize parses s into T. T must be a leaf type, one of the kind
// interfaces, UnitOfTime itself, or a ReportingPeriod of any of those.
func Deserialize[T any](s string) (T, error) {
	var out T
	var err error
	switch target := any(&out).(type) {
	case *UnitOfTime:
		*target, err = ParseUnitOfTime(s)
	case *CalendarUnitOfTime:
		*target, err = parseAs[CalendarUnitOfTime](s)
	case *FiscalUnitOfTime:
		*target, err = parseAs[FiscalUnitOfTime](s)
	case *GenericUnitOfTime:
		*target, err = parseAs[GenericUnitOfTime](s)
	case interface {
		encoding.TextUnmarshaler
		UnitOfTime
	}:
		err = target.UnmarshalText([]byte(s))
	case interface {
		encoding.TextUnmarshaler
		reportingPeriodValue
	}:
		err = target.UnmarshalText([]byte(s))
	default:
		return out, &UnsupportedTypeError{Type: reflect.TypeFor[T]()}
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// ParseReportingPeriod parses "<start>|<end>" in either string form.
func ParseReportingPeriod(s string) (ReportingPeriod[UnitOfTime], error) {
	return parseReportingPeriod[UnitOfTime](s)
}

// ParseUnitOfTime parses the canonical or the sortable form.
func ParseUnitOfTime(s string) (UnitOfTime, error) {
	s = strings.TrimSpace(s)
	if len(s) > 2 && s[1] == ':' {
		return parseSortable(s)
	}
	return parseCanonical(s)
}

func parseAs[T UnitOfTime](s string) (T, error) {
	var zero T
	u, err := ParseUnitOfTime(s)
	if err != nil {
		return zero, err
	}
	v, ok := u.(T)
	if !ok {
		return zero, invalidArgument("unit of time", s, "is not a "+typeName[T]())
	}
	return v, nil
}

func unmarshalInto[T UnitOfTime](dst *T, text []byte) error {
	v, err := parseAs[T](string(text))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

// =============================================================================
// CANONICAL FORM
// =============================================================================

func parseCanonical(s string) (UnitOfTime, error) {
	switch s {
	case CalendarUnbounded{}.String():
		return CalendarUnbounded{}, nil
	case FiscalUnbounded{}.String():
		return FiscalUnbounded{}, nil
	case GenericUnbounded{}.String():
		return GenericUnbounded{}, nil
	}

	kind, rest := KindCalendar, s
	switch {
	case strings.HasPrefix(s, "FY"):
		kind, rest = KindFiscal, s[2:]
	case strings.HasPrefix(s, "GY"):
		kind, rest = KindGeneric, s[2:]
	}

	bad := invalidArgument("unit of time", s, "unrecognized canonical form")
	year, ok := digits(rest, 0, 4)
	if !ok {
		return nil, bad
	}
	switch {
	case len(rest) == 4:
		return newYear(kind, year)
	case len(rest) == 6 && rest[4] == 'Q':
		q, ok := digits(rest, 5, 1)
		if !ok {
			return nil, bad
		}
		return newQuarter(kind, year, QuarterOfYear(q))
	case len(rest) == 7 && rest[4] == '-':
		m, ok := digits(rest, 5, 2)
		if !ok {
			return nil, bad
		}
		return newMonth(kind, year, MonthOfYear(m))
	case len(rest) == 10 && rest[4] == '-' && rest[7] == '-' && kind == KindCalendar:
		m, ok1 := digits(rest, 5, 2)
		d, ok2 := digits(rest, 8, 2)
		if !ok1 || !ok2 {
			return nil, bad
		}
		return leaf[CalendarDay](NewCalendarDay(year, MonthOfYear(m), d))
	}
	return nil, bad
}

// =============================================================================
// SORTABLE FORM
// =============================================================================

func parseSortable(s string) (UnitOfTime, error) {
	bad := invalidArgument("unit of time", s, "unrecognized sortable form")
	if len(s) < 4 || s[3] != ':' {
		return nil, bad
	}

	var kind Kind
	switch s[0] {
	case calendarCode:
		kind = KindCalendar
	case fiscalCode:
		kind = KindFiscal
	case genericCode:
		kind = KindGeneric
	default:
		return nil, bad
	}

	payload := s[4:]
	if s[2] == '9' {
		if payload != "unbounded" {
			return nil, bad
		}
		return Unbounded(kind), nil
	}

	year, ok := digits(payload, 0, 4)
	if !ok {
		return nil, bad
	}
	switch {
	case s[2] == '4' && len(payload) == 4:
		return newYear(kind, year)
	case s[2] == '3' && len(payload) == 6 && payload[4] == '-':
		q, ok := digits(payload, 5, 1)
		if !ok {
			return nil, bad
		}
		return newQuarter(kind, year, QuarterOfYear(q))
	case s[2] == '2' && len(payload) == 7 && payload[4] == '-':
		m, ok := digits(payload, 5, 2)
		if !ok {
			return nil, bad
		}
		return newMonth(kind, year, MonthOfYear(m))
	case s[2] == '1' && kind == KindCalendar && len(payload) == 10 && payload[4] == '-' && payload[7] == '-':
		m, ok1 := digits(payload, 5, 2)
		d, ok2 := digits(payload, 8, 2)
		if !ok1 || !ok2 {
			return nil, bad
		}
		return leaf[CalendarDay](NewCalendarDay(year, MonthOfYear(m), d))
	}
	return nil, bad
}

// digits reads s[at:at+width] as an unsigned decimal number.
func digits(s string, at, width int) (int, bool) {
	if at+width > len(s) {
		return 0, false
	}
	part := s[at : at+width]
	for i := 0; i < len(part); i++ {
		if part[i] < '0' || part[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(part)
	return n, err == nil
}

// =============================================================================
// VALIDATING CONSTRUCTORS BY KIND
// =============================================================================

// leaf drops the zero leaf a failed constructor returns, so callers see a nil
// UnitOfTime next to the error.
func leaf[T UnitOfTime](v T, err error) (UnitOfTime, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

func newMonth(kind Kind, year int, month MonthOfYear) (UnitOfTime, error) {
	switch kind {
	case KindCalendar:
		return leaf[CalendarMonth](NewCalendarMonth(year, month))
	case KindFiscal:
		return leaf[FiscalMonth](NewFiscalMonth(year, month))
	case KindGeneric:
		return leaf[GenericMonth](NewGenericMonth(year, month))
	}
	return nil, invalidArgument("kind", kind, "must be calendar, fiscal or generic")
}

func newQuarter(kind Kind, year int, quarter QuarterOfYear) (UnitOfTime, error) {
	switch kind {
	case KindCalendar:
		return leaf[CalendarQuarter](NewCalendarQuarter(year, quarter))
	case KindFiscal:
		return leaf[FiscalQuarter](NewFiscalQuarter(year, quarter))
	case KindGeneric:
		return leaf[GenericQuarter](NewGenericQuarter(year, quarter))
	}
	return nil, invalidArgument("kind", kind, "must be calendar, fiscal or generic")
}

func newYear(kind Kind, year int) (UnitOfTime, error) {
	switch kind {
	case KindCalendar:
		return leaf[CalendarYear](NewCalendarYear(year))
	case KindFiscal:
		return leaf[FiscalYear](NewFiscalYear(year))
	case KindGeneric:
		return leaf[GenericYear](NewGenericYear(year))
	}
	return nil, invalidArgument("kind", kind, "must be calendar, fiscal or generic")
}
