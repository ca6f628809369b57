/*
Package factory provides JSON to Go policy conversion.

PURPOSE:
  Converts JSON policy definitions into shift.Policy values and rest
  presets. This enables policy configuration without code changes:
  payroll administrators define the classification variant in JSON and
  the factory creates the proper Go structs.

JSON SCHEMA:
  {
    "name": "reference",
    "daily_ordinary_minutes": 480,
    "weekly_ordinary_minutes": 2640,
    "holiday_diurnal_uses_day_budget": false,
    "holiday_nocturnal": "hen",
    "max_rest_minutes": 240,
    "rest_preset": "long-shift"
  }

REST PRESETS:
  "hourly":     auto rest for shifts of 60+ minutes, 60-minute window
  "long-shift": auto rest for shifts of 480+ minutes, 60-minute window

USAGE:
  f := factory.NewPolicyFactory()
  policy, rest, err := f.ParsePolicy(jsonStr)

SEE ALSO:
  - shift/types.go: Policy definition
  - config: Server-level YAML configuration referencing these presets
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/turno/shift-engine/shift"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// PolicyJSON is the JSON representation of a classification policy.
type PolicyJSON struct {
	Name                        string `json:"name"`
	DailyOrdinaryMinutes        int    `json:"daily_ordinary_minutes,omitempty"`
	WeeklyOrdinaryMinutes       int    `json:"weekly_ordinary_minutes,omitempty"`
	HolidayDiurnalUsesDayBudget bool   `json:"holiday_diurnal_uses_day_budget,omitempty"`
	HolidayNocturnal            string `json:"holiday_nocturnal,omitempty"` // "hen" or "rn"
	MaxRestMinutes              *int   `json:"max_rest_minutes,omitempty"`
	RestPreset                  string `json:"rest_preset,omitempty"`
}

// =============================================================================
// REST PRESETS
// =============================================================================

// RestPresets are the two auto-rest configurations observed in practice.
var RestPresets = map[string]shift.RestSpec{
	// Shifts of an hour or more get an hour of midpoint rest.
	"hourly": shift.AutoRest(60, 60),

	// Full 8-hour shifts get an hour of midpoint rest.
	"long-shift": shift.AutoRest(480, 60),
}

// =============================================================================
// POLICY FACTORY
// =============================================================================

// PolicyFactory converts JSON policies to Go structs.
type PolicyFactory struct{}

// NewPolicyFactory creates a new policy factory.
func NewPolicyFactory() *PolicyFactory {
	return &PolicyFactory{}
}

// ParsePolicy parses a JSON string into a Policy and its rest preset.
// The rest spec is NoRest when no preset is named.
func (f *PolicyFactory) ParsePolicy(jsonStr string) (shift.Policy, shift.RestSpec, error) {
	var pj PolicyJSON
	if err := json.Unmarshal([]byte(jsonStr), &pj); err != nil {
		return shift.Policy{}, shift.RestSpec{}, fmt.Errorf("failed to parse policy JSON: %w", err)
	}
	return f.FromJSON(pj)
}

// FromJSON converts PolicyJSON to a Policy and rest preset, applying the
// reference defaults for omitted fields.
func (f *PolicyFactory) FromJSON(pj PolicyJSON) (shift.Policy, shift.RestSpec, error) {
	policy := shift.DefaultPolicy()

	if pj.DailyOrdinaryMinutes > 0 {
		policy.DailyOrdinary = pj.DailyOrdinaryMinutes
	}
	if pj.WeeklyOrdinaryMinutes > 0 {
		policy.WeeklyOrdinary = pj.WeeklyOrdinaryMinutes
	}
	policy.HolidayDiurnalUsesDayBudget = pj.HolidayDiurnalUsesDayBudget

	switch pj.HolidayNocturnal {
	case "":
		// Keep the default.
	case string(shift.CategoryNightOvertime):
		policy.HolidayNocturnal = shift.CategoryNightOvertime
	case string(shift.CategoryNightSurcharge):
		policy.HolidayNocturnal = shift.CategoryNightSurcharge
	default:
		return shift.Policy{}, shift.RestSpec{}, fmt.Errorf("holiday_nocturnal must be %q or %q, got %q",
			shift.CategoryNightOvertime, shift.CategoryNightSurcharge, pj.HolidayNocturnal)
	}

	if pj.MaxRestMinutes != nil {
		if *pj.MaxRestMinutes < 0 {
			return shift.Policy{}, shift.RestSpec{}, fmt.Errorf("max_rest_minutes must not be negative")
		}
		policy.MaxRestMinutes = *pj.MaxRestMinutes
	}

	rest := shift.NoRest()
	if pj.RestPreset != "" {
		preset, ok := RestPresets[pj.RestPreset]
		if !ok {
			return shift.Policy{}, shift.RestSpec{}, fmt.Errorf("unknown rest preset %q", pj.RestPreset)
		}
		rest = preset
	}

	return policy, rest, nil
}
