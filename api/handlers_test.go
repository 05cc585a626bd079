/*
handlers_test.go - Unit tests for API handlers

Tests for:
- Parsing units of time and reporting periods
- Expansion and comparison endpoints
- Conversions against the published index
- Association management and error status mapping
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/accounting-time/accounting"
	"github.com/warp/accounting-time/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) (http.Handler, *accounting.Catalog) {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	catalog := accounting.NewCatalog(store)
	router := NewRouter(NewHandler(catalog), Options{
		Logger:         zerolog.Nop(),
		AllowedOrigins: []string{"http://localhost:5173"},
	})
	return router, catalog
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out), rec.Body.String())
	return out
}

func seedAssociation(t *testing.T, catalog *accounting.Catalog, id, first, second string) {
	t.Helper()
	p1, err := accounting.ParseReportingPeriod(first)
	require.NoError(t, err)
	p2, err := accounting.ParseReportingPeriod(second)
	require.NoError(t, err)
	a, err := accounting.NewUnitKindAssociation(p1, p2, id)
	require.NoError(t, err)
	_, err = catalog.Add(context.Background(), a)
	require.NoError(t, err)
}

// =============================================================================
// UNITS OF TIME & REPORTING PERIODS
// =============================================================================

func TestHealth(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","entries":0}`, rec.Body.String())
}

func TestParseUnitOfTime(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/units-of-time/FY2021Q3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[UnitOfTimeDTO](t, rec)
	assert.Equal(t, UnitOfTimeDTO{
		Kind:        "fiscal",
		Granularity: "quarter",
		Canonical:   "FY2021Q3",
		Sortable:    "f:3:2021-3",
		Bounded:     true,
	}, got)

	rec = do(t, h, http.MethodGet, "/api/units-of-time/2019-02-29", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid unit of time", decode[ErrorResponse](t, rec).Error)
}

func TestExpandReportingPeriod(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/reporting-periods/expand", ExpandRequest{Period: "2020-01|2020-12"})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[ExpandResponse](t, rec)
	require.Len(t, resp.Periods, 2)
	assert.Equal(t, "2020Q1|2020Q4", resp.Periods[0].Canonical)
	assert.Equal(t, "c:4:2020|c:4:2020", resp.Periods[1].Sortable)

	rec = do(t, h, http.MethodPost, "/api/reporting-periods/expand", ExpandRequest{Period: "2020-01|2020-02", IncludeSelf: true})
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[ExpandResponse](t, rec)
	require.Len(t, resp.Periods, 1)
	assert.Equal(t, "2020-01|2020-02", resp.Periods[0].Canonical)
}

func TestCompareReportingPeriods(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/reporting-periods/compare", CompareRequest{First: "2020|2020", Second: "2020-02|2020-04"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, CompareResponse{EqualIgnoringGranularity: false, Contains: true}, decode[CompareResponse](t, rec))

	rec = do(t, h, http.MethodPost, "/api/reporting-periods/compare", CompareRequest{First: "2020Q1|2020Q1", Second: "2020-01-01|2020-03-31"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, CompareResponse{EqualIgnoringGranularity: true, Contains: true}, decode[CompareResponse](t, rec))

	rec = do(t, h, http.MethodPost, "/api/reporting-periods/compare", CompareRequest{First: "2020|2020", Second: "FY2020|FY2020"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func TestConvert(t *testing.T) {
	h, catalog := newTestServer(t)
	seedAssociation(t, catalog, "fy21-q1", "FY2021Q1|FY2021Q1", "2021-02|2021-04")

	rec := do(t, h, http.MethodPost, "/api/conversions", ConvertRequest{Period: "FY2021Q1|FY2021Q1", Kind: "calendar", Granularity: "month"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[ConvertResponse](t, rec)
	assert.True(t, resp.Found)
	require.NotNil(t, resp.Period)
	assert.Equal(t, "2021-02|2021-04", resp.Period.Canonical)

	rec = do(t, h, http.MethodPost, "/api/conversions", ConvertRequest{Period: "FY2021Q1|FY2021Q1", Kind: "calendar", Granularity: "quarter"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"found":false}`, rec.Body.String())
}

func TestConvert_Preconditions(t *testing.T) {
	h, _ := newTestServer(t)

	tests := []struct {
		name string
		req  ConvertRequest
	}{
		{"same kind", ConvertRequest{Period: "FY2021Q1|FY2021Q1", Kind: "fiscal", Granularity: "month"}},
		{"unbounded target", ConvertRequest{Period: "FY2021Q1|FY2021Q1", Kind: "calendar", Granularity: "unbounded"}},
		{"unbounded component", ConvertRequest{Period: "FY2021Q1|FiscalUnbounded", Kind: "calendar", Granularity: "month"}},
		{"unknown kind", ConvertRequest{Period: "FY2021Q1|FY2021Q1", Kind: "lunar", Granularity: "month"}},
		{"day outside calendar", ConvertRequest{Period: "2021-01|2021-03", Kind: "fiscal", Granularity: "day"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/conversions", tt.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestConvertTimeseries(t *testing.T) {
	h, catalog := newTestServer(t)
	seedAssociation(t, catalog, "m1", "FY2021-01|FY2021-01", "2021-02|2021-02")
	seedAssociation(t, catalog, "m2", "FY2021-02|FY2021-02", "2021-03|2021-03")

	body := []byte(`{
		"name": "bookings",
		"kind": "fiscal",
		"granularity": "month",
		"datapoints": [
			{"period": "2021-02|2021-02", "value": "10.50"},
			{"period": "2021-03|2021-03", "value": 4}
		]
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/timeseries/convert", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[TimeseriesDTO](t, rec)
	assert.Equal(t, "fiscal-month", resp.Unit)
	require.Len(t, resp.Datapoints, 2)
	assert.Equal(t, "FY2021-01|FY2021-01", resp.Datapoints[0].Period.Canonical)
	assert.Equal(t, "14.5", resp.Sum.String())
}

// =============================================================================
// ASSOCIATIONS
// =============================================================================

func TestAssociations_Lifecycle(t *testing.T) {
	h, _ := newTestServer(t)

	// Create
	rec := do(t, h, http.MethodPost, "/api/associations", CreateAssociationsRequest{
		Associations: []CreateAssociationRequest{
			{ID: "fy21-q1", First: "FY2021Q1|FY2021Q1", Second: "2021-01|2021-03"},
			{First: "FY2021Q2|FY2021Q2", Second: "2021-04|2021-06"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[[]AssociationDTO](t, rec)
	require.Len(t, created, 2)
	assert.Equal(t, "fy21-q1", created[0].ID)
	assert.NotEmpty(t, created[1].ID)

	// List
	rec = do(t, h, http.MethodGet, "/api/associations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]AssociationDTO](t, rec), 2)

	// Get
	rec = do(t, h, http.MethodGet, "/api/associations/fy21-q1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2021-01|2021-03", decode[AssociationDTO](t, rec).Second.Canonical)

	// Conflict
	rec = do(t, h, http.MethodPost, "/api/associations", CreateAssociationsRequest{
		Associations: []CreateAssociationRequest{{First: "FY2021Q1|FY2021Q1", Second: "2021-02|2021-04"}},
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Duplicate id
	rec = do(t, h, http.MethodPost, "/api/associations", CreateAssociationsRequest{
		Associations: []CreateAssociationRequest{{ID: "fy21-q1", First: "FY2021Q3|FY2021Q3", Second: "2021-07|2021-09"}},
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Delete
	rec = do(t, h, http.MethodDelete, "/api/associations/fy21-q1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/associations/fy21-q1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/associations/fy21-q1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Reload
	rec = do(t, h, http.MethodPost, "/api/associations/reload", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"entries":4}`, rec.Body.String())
}

func TestCreateAssociations_Rejects(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/associations", CreateAssociationsRequest{
		Associations: []CreateAssociationRequest{{First: "2021-01|2021-03", Second: "2021Q1|2021Q1"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "same kind")

	req := httptest.NewRequest(http.MethodPost, "/api/associations", bytes.NewBufferString("{not json"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", decode[ErrorResponse](t, rec).Error)
}
