package service

import (
	"fmt"
	"strings"

	"sichrplace/internal/screening/models"
)

// buildNotes renders the human-readable decision summary shown to operators
// reviewing an application.
func buildNotes(verification models.EmploymentVerification, credit *models.CreditCheckResult, meetsRentRule, approved bool) string {
	var notes []string

	if approved {
		notes = append(notes,
			"All screening checks passed",
			fmt.Sprintf("Income ratio: %.2fx rent", verification.IncomeRatio),
			fmt.Sprintf("Employment risk: %s", verification.RiskLevel),
			fmt.Sprintf("Credit risk: %s", credit.RiskCategory),
		)
		return strings.Join(notes, "\n")
	}

	notes = append(notes, "Screening requires manual review")
	if !meetsRentRule {
		notes = append(notes, fmt.Sprintf("Does not meet 3x rent rule (%.2fx)", verification.IncomeRatio))
	}
	if !verification.EmployerConfirmed {
		notes = append(notes, "Employer confirmation failed")
	}
	if !verification.DocumentVerified {
		notes = append(notes, "Documentation incomplete or unverified")
	}
	if !verification.RiskLevel.IsAcceptable() {
		notes = append(notes, fmt.Sprintf("Elevated employment risk: %s", verification.RiskLevel))
	}
	if !credit.RiskCategory.IsAcceptable() {
		notes = append(notes, fmt.Sprintf("Elevated credit risk: %s", credit.RiskCategory))
	}
	return strings.Join(notes, "\n")
}
