package accounting

import "fmt"

// =============================================================================
// CAPABILITY TAGS
// =============================================================================

// Capability groups values by what they can stand for. Tags carry no behavior.
type Capability uint8

const (
	CapabilityCutoff Capability = 1 << iota
	CapabilityDatapoint
	CapabilityTimeseries
)

func (c Capability) Has(other Capability) bool { return other != 0 && c&other == other }

func (c Capability) String() string {
	var names []string
	if c.Has(CapabilityCutoff) {
		names = append(names, "cutoff")
	}
	if c.Has(CapabilityDatapoint) {
		names = append(names, "datapoint")
	}
	if c.Has(CapabilityTimeseries) {
		names = append(names, "timeseries")
	}
	if len(names) == 0 {
		return "none"
	}
	return fmt.Sprint(names)
}

// Tagged is implemented by values that advertise capabilities.
type Tagged interface {
	Capabilities() Capability
}

// =============================================================================
// CUTOFF - A point-in-time marker, fixed or relative to a period boundary
// =============================================================================

// Cutoff is either a FixedCutoff or a RelativeCutoff.
type Cutoff interface {
	Tagged
	String() string
	cutoff()
}

type StartOrEnd int

const (
	StartOrEndInvalid StartOrEnd = iota
	Start
	End
)

func (s StartOrEnd) String() string {
	switch s {
	case Start:
		return "start"
	case End:
		return "end"
	default:
		return "invalid"
	}
}

// FixedCutoff marks a specific unit of time.
type FixedCutoff struct {
	unitOfTime UnitOfTime
}

func NewFixedCutoff(unitOfTime UnitOfTime) (FixedCutoff, error) {
	if err := checkUnitOfTime("unit of time", unitOfTime); err != nil {
		return FixedCutoff{}, err
	}
	return FixedCutoff{unitOfTime: unitOfTime}, nil
}

func (c FixedCutoff) UnitOfTime() UnitOfTime   { return c.unitOfTime }
func (c FixedCutoff) Capabilities() Capability { return CapabilityCutoff }
func (c FixedCutoff) String() string           { return "fixed " + c.unitOfTime.String() }
func (FixedCutoff) cutoff()                    {}

// RelativeCutoff marks an offset from the start or end of whatever reporting
// period a consumer applies it to.
type RelativeCutoff struct {
	duration   Duration
	startOrEnd StartOrEnd
}

func NewRelativeCutoff(duration Duration, startOrEnd StartOrEnd) (RelativeCutoff, error) {
	if duration.IsZero() {
		return RelativeCutoff{}, missingArgument("duration")
	}
	if _, err := NewDuration(duration.Quantity, duration.Unit); err != nil {
		return RelativeCutoff{}, err
	}
	if startOrEnd != Start && startOrEnd != End {
		return RelativeCutoff{}, outOfRange("startOrEnd", int(startOrEnd), "must be start or end")
	}
	return RelativeCutoff{duration: duration, startOrEnd: startOrEnd}, nil
}

func (c RelativeCutoff) Duration() Duration       { return c.duration }
func (c RelativeCutoff) StartOrEnd() StartOrEnd   { return c.startOrEnd }
func (c RelativeCutoff) Capabilities() Capability { return CapabilityCutoff }
func (RelativeCutoff) cutoff()                    {}

func (c RelativeCutoff) String() string {
	return fmt.Sprintf("%s relative to %s", c.duration, c.startOrEnd)
}
