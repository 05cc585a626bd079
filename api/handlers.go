/*
handlers.go - HTTP API handlers for accounting time

PURPOSE:
  Exposes parsing, granularity expansion, period comparison, cross-kind
  conversion and association management over REST. Handlers parse JSON,
  delegate to the accounting package and serialize the result.

ENDPOINTS:
  GET    /api/health                          Liveness
  GET    /api/units-of-time/{value}           Parse a unit of time
  POST   /api/reporting-periods/expand        ToAllGranularities
  POST   /api/reporting-periods/compare       Equal ignoring granularity / contains
  POST   /api/conversions                     TryConvert against the published index
  POST   /api/timeseries/convert              Convert every datapoint of a series
  GET    /api/associations                    List associations
  POST   /api/associations                    Add associations (rejects conflicts)
  GET    /api/associations/{id}               Get one association
  DELETE /api/associations/{id}               Remove an association
  POST   /api/associations/reload             Rebuild the index from the store

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, conversion preconditions
  - 404: Association not found
  - 409: Inconsistent or duplicate associations
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/warp/accounting-time/accounting"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Catalog *accounting.Catalog
}

// NewHandler creates a handler serving the catalog's published index.
func NewHandler(catalog *accounting.Catalog) *Handler {
	return &Handler{Catalog: catalog}
}

// =============================================================================
// UNITS OF TIME & REPORTING PERIODS
// =============================================================================

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"entries": h.Catalog.Index().Len(),
	})
}

// ParseUnitOfTime handles GET /api/units-of-time/{value}.
func (h *Handler) ParseUnitOfTime(w http.ResponseWriter, r *http.Request) {
	u, err := accounting.ParseUnitOfTime(chi.URLParam(r, "value"))
	if err != nil {
		writeDomainError(w, r, "invalid unit of time", err)
		return
	}
	writeJSON(w, http.StatusOK, toUnitOfTimeDTO(u))
}

// ExpandReportingPeriod handles POST /api/reporting-periods/expand.
func (h *Handler) ExpandReportingPeriod(w http.ResponseWriter, r *http.Request) {
	var req ExpandRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	period, err := accounting.ParseReportingPeriod(req.Period)
	if err != nil {
		writeDomainError(w, r, "invalid reporting period", err)
		return
	}

	expanded := period.ToAllGranularities(req.IncludeSelf)
	resp := ExpandResponse{Periods: make([]ReportingPeriodDTO, 0, len(expanded))}
	for _, p := range expanded {
		resp.Periods = append(resp.Periods, toReportingPeriodDTO(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

// CompareReportingPeriods handles POST /api/reporting-periods/compare.
func (h *Handler) CompareReportingPeriods(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	first, err := accounting.ParseReportingPeriod(req.First)
	if err != nil {
		writeDomainError(w, r, "invalid first reporting period", err)
		return
	}
	second, err := accounting.ParseReportingPeriod(req.Second)
	if err != nil {
		writeDomainError(w, r, "invalid second reporting period", err)
		return
	}

	equal, err := first.IsEqualToIgnoringGranularity(second)
	if err != nil {
		writeDomainError(w, r, "cannot compare reporting periods", err)
		return
	}
	contains, err := first.Contains(second)
	if err != nil {
		writeDomainError(w, r, "cannot compare reporting periods", err)
		return
	}
	writeJSON(w, http.StatusOK, CompareResponse{EqualIgnoringGranularity: equal, Contains: contains})
}

// =============================================================================
// CONVERSIONS
// =============================================================================

// Convert handles POST /api/conversions.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	period, err := accounting.ParseReportingPeriod(req.Period)
	if err != nil {
		writeDomainError(w, r, "invalid reporting period", err)
		return
	}
	unit, err := parseUnit(req.Kind, req.Granularity)
	if err != nil {
		writeDomainError(w, r, "invalid unit", err)
		return
	}

	converted, ok, err := h.Catalog.Index().TryConvert(period, unit)
	if err != nil {
		writeDomainError(w, r, "conversion precondition failed", err)
		return
	}
	resp := ConvertResponse{Found: ok}
	if ok {
		dto := toReportingPeriodDTO(converted)
		resp.Period = &dto
	}
	writeJSON(w, http.StatusOK, resp)
}

// ConvertTimeseries handles POST /api/timeseries/convert.
func (h *Handler) ConvertTimeseries(w http.ResponseWriter, r *http.Request) {
	var req ConvertTimeseriesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	unit, err := parseUnit(req.Kind, req.Granularity)
	if err != nil {
		writeDomainError(w, r, "invalid unit", err)
		return
	}

	datapoints := make([]accounting.Datapoint, 0, len(req.Datapoints))
	for _, d := range req.Datapoints {
		period, err := accounting.ParseReportingPeriod(d.Period)
		if err != nil {
			writeDomainError(w, r, "invalid datapoint period", err)
			return
		}
		dp, err := accounting.NewDatapoint(period, d.Value)
		if err != nil {
			writeDomainError(w, r, "invalid datapoint", err)
			return
		}
		datapoints = append(datapoints, dp)
	}

	series, err := accounting.NewTimeseries(req.Name, datapoints)
	if err != nil {
		writeDomainError(w, r, "invalid timeseries", err)
		return
	}
	converted, err := series.Convert(h.Catalog.Index(), unit)
	if err != nil {
		writeDomainError(w, r, "cannot convert timeseries", err)
		return
	}
	writeJSON(w, http.StatusOK, toTimeseriesDTO(converted))
}

// =============================================================================
// ASSOCIATIONS
// =============================================================================

func (h *Handler) ListAssociations(w http.ResponseWriter, r *http.Request) {
	associations, err := h.Catalog.List(r.Context())
	if err != nil {
		writeDomainError(w, r, "failed to list associations", err)
		return
	}
	resp := make([]AssociationDTO, 0, len(associations))
	for _, a := range associations {
		resp = append(resp, toAssociationDTO(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateAssociations(w http.ResponseWriter, r *http.Request) {
	var req CreateAssociationsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	associations := make([]accounting.UnitKindAssociation, 0, len(req.Associations))
	for _, a := range req.Associations {
		first, err := accounting.ParseReportingPeriod(a.First)
		if err != nil {
			writeDomainError(w, r, "invalid first reporting period", err)
			return
		}
		second, err := accounting.ParseReportingPeriod(a.Second)
		if err != nil {
			writeDomainError(w, r, "invalid second reporting period", err)
			return
		}
		assoc, err := accounting.NewUnitKindAssociation(first, second, a.ID)
		if err != nil {
			writeDomainError(w, r, "invalid association", err)
			return
		}
		associations = append(associations, assoc)
	}

	added, err := h.Catalog.Add(r.Context(), associations...)
	if err != nil {
		writeDomainError(w, r, "associations rejected", err)
		return
	}
	resp := make([]AssociationDTO, 0, len(added))
	for _, a := range added {
		resp = append(resp, toAssociationDTO(a))
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) GetAssociation(w http.ResponseWriter, r *http.Request) {
	a, err := h.Catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "association not found", err)
		return
	}
	writeJSON(w, http.StatusOK, toAssociationDTO(a))
}

func (h *Handler) DeleteAssociation(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, "failed to delete association", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ReloadAssociations(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.Reload(r.Context()); err != nil {
		writeDomainError(w, r, "failed to reload associations", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": h.Catalog.Index().Len()})
}

// =============================================================================
// HELPERS
// =============================================================================

func parseUnit(kind, granularity string) (accounting.Unit, error) {
	k, err := accounting.ParseKind(kind)
	if err != nil {
		return accounting.Unit{}, err
	}
	g, err := accounting.ParseGranularity(granularity)
	if err != nil {
		return accounting.Unit{}, err
	}
	return accounting.NewUnit(k, g)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps accounting errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, r *http.Request, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case accounting.IsNotFound(err):
		status = http.StatusNotFound
	case accounting.IsConsistencyError(err):
		status = http.StatusConflict
	case accounting.IsValidationError(err):
		status = http.StatusBadRequest
	}

	event := zerolog.Ctx(r.Context()).Warn()
	if status == http.StatusInternalServerError {
		event = zerolog.Ctx(r.Context()).Error()
	}
	event.Err(err).Int("status", status).Msg(message)

	writeError(w, status, message, err)
}
