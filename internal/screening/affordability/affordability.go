// Package affordability implements the 3x rent rule. It is a pure function
// kept in its own package for testability and reuse.
package affordability

import "math"

// RentMultiplier is the affordability heuristic: net monthly income must be
// at least three times the monthly rent.
const RentMultiplier = 3.0

// Result captures one affordability evaluation.
type Result struct {
	RequiredIncome float64
	Meets          bool
	Ratio          float64 // income / rent, rounded to 2 decimals
}

// Evaluate applies the rent rule. Deterministic, no side effects. The
// boundary case income == 3*rent meets the rule.
func Evaluate(totalMonthlyIncome, monthlyRent float64) Result {
	required := monthlyRent * RentMultiplier
	ratio := 0.0
	if monthlyRent > 0 {
		ratio = math.Round(totalMonthlyIncome/monthlyRent*100) / 100
	}
	return Result{
		RequiredIncome: required,
		Meets:          totalMonthlyIncome >= required,
		Ratio:          ratio,
	}
}
