/*
valuation.go - Currency valuation of classified minutes

PURPOSE:
  Turns category minutes into pay: rate x hours x category multiplier.
  A pure post-processing step over engine output, kept out of the engine
  on purpose. Uses decimal arithmetic so payroll amounts never pick up
  floating-point drift.

MULTIPLIERS (statutory):
  ordinary 1.00, RN 1.35, HED 1.25, HEDF 2.00, HEN 1.75
*/
package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/turno/shift-engine/shift"
)

// Multipliers are the statutory wage multipliers per category.
var Multipliers = map[shift.Category]decimal.Decimal{
	shift.CategoryOrdinary:        decimal.NewFromFloat(1.00),
	shift.CategoryNightSurcharge:  decimal.NewFromFloat(1.35),
	shift.CategoryDayOvertime:     decimal.NewFromFloat(1.25),
	shift.CategoryHolidayOvertime: decimal.NewFromFloat(2.00),
	shift.CategoryNightOvertime:   decimal.NewFromFloat(1.75),
}

var sixty = decimal.NewFromInt(60)

// Valuation is the monetary value of a set of classified minutes.
type Valuation struct {
	ByCategory map[shift.Category]decimal.Decimal
	Total      decimal.Decimal
}

// Value prices category minutes at an hourly rate. Amounts are rounded
// to two decimals per category before totaling, matching pay-stub lines.
func Value(totals shift.Buckets, hourlyRate decimal.Decimal) Valuation {
	v := Valuation{
		ByCategory: make(map[shift.Category]decimal.Decimal, len(shift.Categories)),
		Total:      decimal.Zero,
	}
	for _, c := range shift.Categories {
		hours := decimal.NewFromInt(int64(totals.Get(c))).Div(sixty)
		amount := hourlyRate.Mul(hours).Mul(Multipliers[c]).Round(2)
		v.ByCategory[c] = amount
		v.Total = v.Total.Add(amount)
	}
	return v
}
