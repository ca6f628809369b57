/*
scenarios.go - Demo scenario loaders

PURPOSE:
  Seeds the service with canonical shift patterns so the behavior of the
  classifier can be inspected without typing dates into the form. The
  scenarios mirror the manual test cases shipped with the original
  calculator: an overnight Sunday shift, a Friday-to-Saturday shift, and
  a week that exhausts the 44-hour ordinary allowance.

LOADING:
  Loading a scenario resets records and the week ledger first, then
  submits its shifts through the normal engine path so the ledger state
  afterwards is exactly what real submissions would have produced.
*/
package api

import (
	"net/http"
	"time"

	"github.com/turno/shift-engine/payroll"
	"github.com/turno/shift-engine/shift"
)

type scenarioShift struct {
	Person  string
	Start   time.Time
	End     time.Time
	DayType shift.DayTypeOverride
	Rest    shift.RestSpec
}

type scenario struct {
	ID          string
	Name        string
	Description string
	Shifts      []scenarioShift
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

// scenarios are keyed off March 2025: the 9th is a Sunday.
var scenarios = []scenario{
	{
		ID:          "overnight-sunday",
		Name:        "Overnight Sunday shift",
		Description: "Sunday 19:00 to Monday 05:00, no rest. Monday's early hours count as ordinary night surcharge, not Sunday overtime.",
		Shifts: []scenarioShift{
			{Person: "Laura", Start: at(2025, time.March, 9, 19, 0), End: at(2025, time.March, 10, 5, 0), DayType: shift.OverrideAuto, Rest: shift.NoRest()},
		},
	},
	{
		ID:          "friday-overnight",
		Name:        "Friday into Saturday",
		Description: "Friday 18:00 to Saturday 05:00 with a 60-minute countdown rest. Exercises ordinary, RN, and HEN in one shift.",
		Shifts: []scenarioShift{
			{Person: "Andrés", Start: at(2025, time.March, 14, 18, 0), End: at(2025, time.March, 15, 5, 0), DayType: shift.OverrideAuto, Rest: shift.CountdownRest(60)},
		},
	},
	{
		ID:          "weekly-cap",
		Name:        "Weekly allowance exhausted",
		Description: "Five 8-hour diurnal shifts plus a 4-hour one consume the full 2640-minute week; a nocturnal shift after that spills into night overtime.",
		Shifts: []scenarioShift{
			{Person: "Marta", Start: at(2025, time.March, 10, 8, 0), End: at(2025, time.March, 10, 16, 0), DayType: shift.OverrideAuto, Rest: shift.NoRest()},
			{Person: "Marta", Start: at(2025, time.March, 11, 8, 0), End: at(2025, time.March, 11, 16, 0), DayType: shift.OverrideAuto, Rest: shift.NoRest()},
			{Person: "Marta", Start: at(2025, time.March, 12, 8, 0), End: at(2025, time.March, 12, 16, 0), DayType: shift.OverrideAuto, Rest: shift.NoRest()},
			{Person: "Marta", Start: at(2025, time.March, 13, 8, 0), End: at(2025, time.March, 13, 16, 0), DayType: shift.OverrideAuto, Rest: shift.NoRest()},
			{Person: "Marta", Start: at(2025, time.March, 14, 8, 0), End: at(2025, time.March, 14, 16, 0), DayType: shift.OverrideAuto, Rest: shift.NoRest()},
			{Person: "Marta", Start: at(2025, time.March, 15, 8, 0), End: at(2025, time.March, 15, 12, 0), DayType: shift.OverrideAuto, Rest: shift.NoRest()},
			{Person: "Marta", Start: at(2025, time.March, 15, 21, 0), End: at(2025, time.March, 16, 0, 0), DayType: shift.DayTypeOverride(shift.DayOrdinary), Rest: shift.NoRest()},
		},
	},
}

// ListScenarios returns the available demo scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, len(scenarios))
	for i, s := range scenarios {
		dtos[i] = ScenarioDTO{ID: s.ID, Name: s.Name, Description: s.Description}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// LoadScenario resets the service and submits the scenario's shifts.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var selected *scenario
	for i := range scenarios {
		if scenarios[i].ID == req.ID {
			selected = &scenarios[i]
			break
		}
	}
	if selected == nil {
		writeError(w, http.StatusNotFound, "Unknown scenario", nil)
		return
	}

	if err := h.Records.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset records", err)
		return
	}
	h.Engine.Reset()

	for _, s := range selected.Shifts {
		result, err := h.Engine.Calculate(shift.Input{
			Start:   s.Start,
			End:     s.End,
			DayType: s.DayType,
			Rest:    s.Rest,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Scenario shift rejected", err)
			return
		}
		if err := h.Records.Save(r.Context(), payroll.NewRecord(s.Person, result)); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save scenario record", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": selected.ID})
}
