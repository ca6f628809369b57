/*
handlers.go - HTTP API handlers for the shift classification service

PURPOSE:
  Exposes the shift engine via REST API. Handles HTTP request/response,
  JSON serialization, form-level validation, and delegates classification
  to the shift package and aggregation to payroll.

ENDPOINTS:
  Shifts:
    POST   /api/shifts             Submit a shift (classify + persist)
    POST   /api/shifts/preview     Classify without committing

  Records:
    GET    /api/records            Aggregated rows (person/week filters)
    GET    /api/summary            Filtered totals, optional ?rate= pricing
    GET    /api/filters            Person and week dropdown values

  Admin:
    GET    /api/policy             Active classification policy
    POST   /api/reset              Clear records AND the week ledger

  Scenarios:
    GET    /api/scenarios          List demo scenarios
    POST   /api/scenarios/load     Load a demo scenario

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Form validation and engine input errors
  - 404: Unknown scenario
  - 500: Store failures

  User-facing validation messages stay in Spanish, matching the entry
  form this service backs.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/turno/shift-engine/payroll"
	"github.com/turno/shift-engine/shift"
)

// formTimeLayout matches <input type="datetime-local"> values.
const formTimeLayout = "2006-01-02T15:04"

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine  *shift.Engine
	Records payroll.RecordStore

	// RestPreset is applied when a submission declares rest minutes with
	// mode "auto" and no explicit parameters.
	RestPreset shift.RestSpec
}

// NewHandler creates a handler around an engine and a record store.
func NewHandler(engine *shift.Engine, records payroll.RecordStore) *Handler {
	return &Handler{
		Engine:     engine,
		Records:    records,
		RestPreset: shift.AutoRest(480, 60),
	}
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// SubmitShift classifies a shift and persists the resulting record.
func (h *Handler) SubmitShift(w http.ResponseWriter, r *http.Request) {
	input, person, ok := h.parseSubmission(w, r)
	if !ok {
		return
	}

	result, err := h.Engine.Calculate(input)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	rec := payroll.NewRecord(person, result)
	if err := h.Records.Save(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save record", err)
		return
	}

	writeJSON(w, http.StatusCreated, toShiftResultDTO(person, result))
}

// PreviewShift classifies a shift without consuming weekly allowance or
// persisting anything.
func (h *Handler) PreviewShift(w http.ResponseWriter, r *http.Request) {
	input, person, ok := h.parseSubmission(w, r)
	if !ok {
		return
	}

	result, err := h.Engine.Preview(input)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toShiftResultDTO(person, result))
}

// parseSubmission validates the form-level fields and builds the engine
// input. Returns ok=false after writing the error response.
func (h *Handler) parseSubmission(w http.ResponseWriter, r *http.Request) (shift.Input, string, bool) {
	var req SubmitShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return shift.Input{}, "", false
	}

	person := strings.TrimSpace(req.Person)
	if person == "" {
		writeError(w, http.StatusBadRequest, "Debe indicar la persona asociada a la jornada.", nil)
		return shift.Input{}, "", false
	}
	if req.Start == "" || req.End == "" {
		writeError(w, http.StatusBadRequest, "Debe indicar las fechas de inicio y fin de la jornada.", nil)
		return shift.Input{}, "", false
	}

	start, err1 := parseFormTime(req.Start)
	end, err2 := parseFormTime(req.End)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "Las fechas proporcionadas no son válidas.", nil)
		return shift.Input{}, "", false
	}

	rest, err := h.parseRest(req, start, end)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rest specification", err)
		return shift.Input{}, "", false
	}

	dayType := shift.OverrideAuto
	if req.DayType != "" {
		dayType = shift.DayTypeOverride(req.DayType)
	}

	return shift.Input{
		Start:           start,
		End:             end,
		DayType:         dayType,
		Rest:            rest,
		WeekKeyOverride: req.WeekKey,
	}, person, true
}

func (h *Handler) parseRest(req SubmitShiftRequest, start, end time.Time) (shift.RestSpec, error) {
	switch req.RestMode {
	case "", "countdown":
		if req.RestMinutes <= 0 {
			return shift.NoRest(), nil
		}
		return shift.RestSpec{Mode: shift.RestCountdown, Minutes: req.RestMinutes}, nil

	case "window":
		if req.RestStart == "" || req.RestEnd == "" {
			// The engine reports this as ErrMissingRestTiming.
			return shift.RestSpec{Mode: shift.RestWindow, Minutes: req.RestMinutes}, nil
		}
		ws, err := parseFormTime(req.RestStart)
		if err != nil {
			return shift.RestSpec{}, err
		}
		we, err := parseFormTime(req.RestEnd)
		if err != nil {
			return shift.RestSpec{}, err
		}
		return shift.WindowRest(shift.Interval{Start: ws, End: we}, req.RestMinutes), nil

	case "auto":
		return h.RestPreset, nil

	default:
		return shift.RestSpec{}, &shift.RestSpecError{Reason: "unknown rest mode " + req.RestMode}
	}
}

// =============================================================================
// RECORD HANDLERS
// =============================================================================

// ListRecords returns the aggregated person/week/day rows.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.Records.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list records", err)
		return
	}

	rows := payroll.Project(records, filterFromQuery(r))
	dtos := make([]DayRowDTO, len(rows))
	for i, row := range rows {
		dtos[i] = toDayRowDTO(row)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetSummary returns the filtered totals, priced when ?rate= is given.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	records, err := h.Records.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list records", err)
		return
	}

	totals := payroll.Summarize(records, filterFromQuery(r))
	summary := SummaryDTO{Totals: toBucketsDTO(totals)}

	if rateStr := r.URL.Query().Get("rate"); rateStr != "" {
		rate, err := decimal.NewFromString(rateStr)
		if err != nil || rate.IsNegative() {
			writeError(w, http.StatusBadRequest, "Invalid hourly rate", err)
			return
		}
		v := payroll.Value(totals, rate)
		byCategory := make(map[string]string, len(v.ByCategory))
		for c, amount := range v.ByCategory {
			byCategory[string(c)] = amount.StringFixed(2)
		}
		summary.Valuation = &ValuationDTO{
			HourlyRate: rate.String(),
			ByCategory: byCategory,
			Total:      v.Total.StringFixed(2),
		}
	}

	writeJSON(w, http.StatusOK, summary)
}

// GetFilters returns the distinct persons and weeks for the dropdowns.
func (h *Handler) GetFilters(w http.ResponseWriter, r *http.Request) {
	records, err := h.Records.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list records", err)
		return
	}

	weeks := payroll.Weeks(records)
	weekStrs := make([]string, len(weeks))
	for i, wk := range weeks {
		weekStrs[i] = string(wk)
	}
	writeJSON(w, http.StatusOK, FiltersDTO{
		Persons: payroll.Persons(records),
		Weeks:   weekStrs,
	})
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// GetPolicy returns the active classification policy.
func (h *Handler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	p := h.Engine.Policy()
	writeJSON(w, http.StatusOK, PolicyDTO{
		DailyOrdinaryMinutes:        p.DailyOrdinary,
		WeeklyOrdinaryMinutes:       p.WeeklyOrdinary,
		HolidayDiurnalUsesDayBudget: p.HolidayDiurnalUsesDayBudget,
		HolidayNocturnal:            string(p.HolidayNocturnal),
		MaxRestMinutes:              p.MaxRestMinutes,
	})
}

// Reset clears all records and the week ledger. The full-form reset.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.Records.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset records", err)
		return
	}
	h.Engine.Reset()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// HELPERS
// =============================================================================

func filterFromQuery(r *http.Request) payroll.Filter {
	return payroll.Filter{
		Person: r.URL.Query().Get("person"),
		Week:   shift.WeekKey(r.URL.Query().Get("week")),
	}
}

func readJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func parseFormTime(value string) (time.Time, error) {
	if t, err := time.Parse(formTimeLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func writeEngineError(w http.ResponseWriter, err error) {
	if shift.IsClientError(err) {
		writeError(w, http.StatusBadRequest, "Invalid shift input", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "Classification failed", err)
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
