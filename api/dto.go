/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Form-level validation (missing person, unparsable dates) is done in
  handlers; engine-level validation lives in the shift package. DTOs are
  pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - shift/engine.go: Input/Result being transported
*/
package api

import (
	"time"

	"github.com/turno/shift-engine/payroll"
	"github.com/turno/shift-engine/shift"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// SubmitShiftRequest is the submission contract, mirroring the entry form.
// Times use the datetime-local format (2006-01-02T15:04).
type SubmitShiftRequest struct {
	Person  string `json:"person"`
	Start   string `json:"start"`
	End     string `json:"end"`
	DayType string `json:"day_type,omitempty"` // auto | ordinario | dominical | festivo

	// Rest. Mode defaults to countdown when minutes are declared.
	RestMinutes float64 `json:"rest_minutes,omitempty"`
	RestMode    string  `json:"rest_mode,omitempty"` // countdown | window | auto
	RestStart   string  `json:"rest_start,omitempty"`
	RestEnd     string  `json:"rest_end,omitempty"`

	WeekKey string `json:"week_key,omitempty"`
}

// BucketsDTO carries category minutes plus their display hours.
type BucketsDTO struct {
	Ordinary int `json:"ordinary"`
	RN       int `json:"rn"`
	HED      int `json:"hed"`
	HEDF     int `json:"hedf"`
	HEN      int `json:"hen"`

	TotalMinutes int     `json:"total_minutes"`
	TotalHours   float64 `json:"total_hours"`
}

// ShiftResultDTO is the classification of one submitted shift.
type ShiftResultDTO struct {
	Person  string                `json:"person,omitempty"`
	Start   string                `json:"start"`
	End     string                `json:"end"`
	DayType string                `json:"day_type"`
	PerDay  map[string]BucketsDTO `json:"per_day"`
	Totals  BucketsDTO            `json:"totals"`
}

// DayRowDTO is one aggregated row of the results table.
type DayRowDTO struct {
	Person     string  `json:"person"`
	Week       string  `json:"week"`
	Day        string  `json:"day"`
	RNHours    float64 `json:"rn_hours"`
	HEDHours   float64 `json:"hed_hours"`
	HEDFHours  float64 `json:"hedf_hours"`
	HENHours   float64 `json:"hen_hours"`
	TotalHours float64 `json:"total_hours"`
}

// SummaryDTO is the filtered grand-total view, optionally priced.
type SummaryDTO struct {
	Totals    BucketsDTO    `json:"totals"`
	Valuation *ValuationDTO `json:"valuation,omitempty"`
}

// ValuationDTO is the monetary value of the summarized minutes.
type ValuationDTO struct {
	HourlyRate string            `json:"hourly_rate"`
	ByCategory map[string]string `json:"by_category"`
	Total      string            `json:"total"`
}

// FiltersDTO feeds the person and week filter dropdowns.
type FiltersDTO struct {
	Persons []string `json:"persons"`
	Weeks   []string `json:"weeks"`
}

// PolicyDTO describes the active classification policy.
type PolicyDTO struct {
	DailyOrdinaryMinutes        int    `json:"daily_ordinary_minutes"`
	WeeklyOrdinaryMinutes       int    `json:"weekly_ordinary_minutes"`
	HolidayDiurnalUsesDayBudget bool   `json:"holiday_diurnal_uses_day_budget"`
	HolidayNocturnal            string `json:"holiday_nocturnal"`
	MaxRestMinutes              int    `json:"max_rest_minutes"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ID string `json:"id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toBucketsDTO(b shift.Buckets) BucketsDTO {
	return BucketsDTO{
		Ordinary:     b.Ordinary,
		RN:           b.RN,
		HED:          b.HED,
		HEDF:         b.HEDF,
		HEN:          b.HEN,
		TotalMinutes: b.Total(),
		TotalHours:   payroll.Hours(b.Total()),
	}
}

func toShiftResultDTO(person string, result *shift.Result) ShiftResultDTO {
	perDay := make(map[string]BucketsDTO, len(result.PerDay))
	for day, b := range result.PerDay {
		perDay[string(day)] = toBucketsDTO(b)
	}
	return ShiftResultDTO{
		Person:  person,
		Start:   result.Start.Format(time.RFC3339),
		End:     result.End.Format(time.RFC3339),
		DayType: string(result.DayType),
		PerDay:  perDay,
		Totals:  toBucketsDTO(result.Totals),
	}
}

func toDayRowDTO(row payroll.DayRow) DayRowDTO {
	return DayRowDTO{
		Person:     row.Person,
		Week:       string(row.Week),
		Day:        string(row.Day),
		RNHours:    payroll.Hours(row.Values.RN),
		HEDHours:   payroll.Hours(row.Values.HED),
		HEDFHours:  payroll.Hours(row.Values.HEDF),
		HENHours:   payroll.Hours(row.Values.HEN),
		TotalHours: payroll.Hours(row.Values.Total()),
	}
}
