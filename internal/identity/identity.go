// Package identity provides format validators for applicant-supplied
// identity fields. Validation happens before any provider contact so no
// malformed data ever leaves the system.
package identity

import (
	"regexp"
	"time"
)

// German postal codes are exactly five digits.
var postalCodePattern = regexp.MustCompile(`^\d{5}$`)

// ValidPostalCode reports whether the postal code matches the German format.
func ValidPostalCode(code string) bool {
	return postalCodePattern.MatchString(code)
}

// ValidDate reports whether raw is an ISO calendar date (2006-01-02).
func ValidDate(raw string) bool {
	_, err := time.Parse("2006-01-02", raw)
	return err == nil
}

// ValidBirthDate reports whether raw is an ISO date in the past.
func ValidBirthDate(raw string, now time.Time) bool {
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return false
	}
	return parsed.Before(now)
}
