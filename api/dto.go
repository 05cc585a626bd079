/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Requests carry units
  of time and reporting periods as strings in either the canonical or the
  sortable form; responses return both forms.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

VALIDATION:
  Validation is done in handlers by the accounting constructors. DTOs are
  pure data carriers.
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/accounting-time/accounting"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// UnitOfTimeDTO represents a unit of time in API responses.
type UnitOfTimeDTO struct {
	Kind        string `json:"kind"`
	Granularity string `json:"granularity"`
	Canonical   string `json:"canonical"`
	Sortable    string `json:"sortable"`
	Bounded     bool   `json:"bounded"`
}

// ReportingPeriodDTO represents a reporting period in API responses.
type ReportingPeriodDTO struct {
	Start     UnitOfTimeDTO `json:"start"`
	End       UnitOfTimeDTO `json:"end"`
	Canonical string        `json:"canonical"`
	Sortable  string        `json:"sortable"`
}

// ExpandRequest asks for every granularity a period can be re-expressed in.
type ExpandRequest struct {
	Period      string `json:"period"`
	IncludeSelf bool   `json:"include_self"`
}

type ExpandResponse struct {
	Periods []ReportingPeriodDTO `json:"periods"`
}

// CompareRequest relates two periods of the same kind.
type CompareRequest struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

type CompareResponse struct {
	EqualIgnoringGranularity bool `json:"equal_ignoring_granularity"`
	Contains                 bool `json:"contains"`
}

// ConvertRequest asks for the equivalent of Period in Kind/Granularity.
type ConvertRequest struct {
	Period      string `json:"period"`
	Kind        string `json:"kind"`
	Granularity string `json:"granularity"`
}

type ConvertResponse struct {
	Found  bool                `json:"found"`
	Period *ReportingPeriodDTO `json:"period,omitempty"`
}

// AssociationDTO represents a stored association.
type AssociationDTO struct {
	ID     string             `json:"id"`
	First  ReportingPeriodDTO `json:"first"`
	Second ReportingPeriodDTO `json:"second"`
}

// CreateAssociationRequest is one association to add; ID is optional.
type CreateAssociationRequest struct {
	ID     string `json:"id,omitempty"`
	First  string `json:"first"`
	Second string `json:"second"`
}

type CreateAssociationsRequest struct {
	Associations []CreateAssociationRequest `json:"associations"`
}

// DatapointRequest is one value for one period.
type DatapointRequest struct {
	Period string          `json:"period"`
	Value  decimal.Decimal `json:"value"`
}

// ConvertTimeseriesRequest re-expresses every datapoint in Kind/Granularity.
type ConvertTimeseriesRequest struct {
	Name        string             `json:"name"`
	Datapoints  []DatapointRequest `json:"datapoints"`
	Kind        string             `json:"kind"`
	Granularity string             `json:"granularity"`
}

type DatapointDTO struct {
	Period ReportingPeriodDTO `json:"period"`
	Value  decimal.Decimal    `json:"value"`
}

type TimeseriesDTO struct {
	Name       string          `json:"name"`
	Unit       string          `json:"unit"`
	Datapoints []DatapointDTO  `json:"datapoints"`
	Sum        decimal.Decimal `json:"sum"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toUnitOfTimeDTO(u accounting.UnitOfTime) UnitOfTimeDTO {
	return UnitOfTimeDTO{
		Kind:        u.Kind().String(),
		Granularity: u.Granularity().String(),
		Canonical:   u.String(),
		Sortable:    u.SortableString(),
		Bounded:     u.IsBounded(),
	}
}

func toReportingPeriodDTO(p accounting.ReportingPeriod[accounting.UnitOfTime]) ReportingPeriodDTO {
	return ReportingPeriodDTO{
		Start:     toUnitOfTimeDTO(p.Start()),
		End:       toUnitOfTimeDTO(p.End()),
		Canonical: p.String(),
		Sortable:  p.SortableString(),
	}
}

func toAssociationDTO(a accounting.UnitKindAssociation) AssociationDTO {
	return AssociationDTO{
		ID:     a.ID(),
		First:  toReportingPeriodDTO(a.First()),
		Second: toReportingPeriodDTO(a.Second()),
	}
}

func toTimeseriesDTO(ts accounting.Timeseries) TimeseriesDTO {
	dto := TimeseriesDTO{
		Name:       ts.Name(),
		Unit:       ts.Unit().String(),
		Datapoints: make([]DatapointDTO, 0, ts.Len()),
		Sum:        ts.Sum(),
	}
	for _, d := range ts.Datapoints() {
		dto.Datapoints = append(dto.Datapoints, DatapointDTO{Period: toReportingPeriodDTO(d.Period), Value: d.Value})
	}
	return dto
}
