// Package risk implements the weighted employment risk model. The model is
// additive over a baseline and records every factor it applies, so decisions
// stay explainable.
package risk

import (
	"time"

	"sichrplace/internal/screening/models"
)

const (
	baseScore = 100
	minScore  = 0
	maxScore  = 150
)

// Level thresholds over the clamped score.
const (
	veryLowThreshold = 120
	lowThreshold     = 100
	mediumThreshold  = 80
)

// Assessment is the scored employment risk with its factor trail.
type Assessment struct {
	Score   int
	Level   models.RiskLevel
	Factors []models.RiskFactor
}

// Score evaluates employment attributes against the weighted model. The
// income ratio uses the raw (unrounded) income/rent quotient.
func Score(data models.EmploymentData, monthlyRent float64, now time.Time) Assessment {
	score := baseScore
	var factors []models.RiskFactor

	apply := func(name string, points int) {
		impact := models.ImpactPositive
		if points < 0 {
			impact = models.ImpactNegative
		}
		score += points
		factors = append(factors, models.RiskFactor{Factor: name, Impact: impact, Points: points})
	}

	switch data.EmploymentType {
	case models.EmploymentPermanent:
		apply("Permanent employment", 20)
	case models.EmploymentTemporary:
		apply("Temporary employment", -10)
	case models.EmploymentFreelance:
		apply("Freelance work", -20)
	case models.EmploymentSelfEmployed:
		apply("Self-employed", -15)
	}

	switch data.ContractType {
	case models.ContractUnlimited:
		apply("Unlimited contract", 15)
	case models.ContractLimited:
		apply("Limited contract", -5)
	}

	if !data.EmploymentStartDate.IsZero() {
		months := monthsEmployed(data.EmploymentStartDate, now)
		switch {
		case months >= 24:
			apply("2+ years employment", 10)
		case months >= 12:
			apply("1+ year employment", 5)
		case months < 6:
			apply("Less than 6 months employment", -10)
		}
	}

	ratio := 0.0
	if monthlyRent > 0 {
		ratio = data.TotalMonthlyIncome() / monthlyRent
	}
	switch {
	case ratio >= 4:
		apply("4x+ rent income ratio", 20)
	case ratio >= 3:
		apply("Meets 3x rent rule", 10)
	case ratio >= 2.5:
		apply("Below 3x rent rule", -10)
	default:
		apply("Significantly below 3x rent rule", -30)
	}

	if data.HasCompleteDocuments() {
		apply("Complete documentation", 10)
	} else {
		apply("Missing documentation", -15)
	}

	clamped := clamp(score)
	return Assessment{
		Score:   clamped,
		Level:   levelFor(clamped),
		Factors: factors,
	}
}

func monthsEmployed(start, now time.Time) float64 {
	return now.Sub(start).Hours() / (24 * 30)
}

func clamp(score int) int {
	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

func levelFor(score int) models.RiskLevel {
	switch {
	case score >= veryLowThreshold:
		return models.RiskVeryLow
	case score >= lowThreshold:
		return models.RiskLow
	case score >= mediumThreshold:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}
