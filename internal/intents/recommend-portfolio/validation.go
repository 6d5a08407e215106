// internal/intents/recommend-portfolio/validation.go
package recommendportfolio

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"robo-advisor/internal/lex"
)

const (
	MinAge            = 0  // exclusive
	RetirementAge     = 65 // exclusive upper bound
	MinimumInvestment = 5000
)

const (
	msgInvalidFirstName = "Please type your first name again. This should only consists of letters, and it cannot include numbers and/or special characters."
	msgInvalidAge       = "Your age is invalid. Please provide a different age."
	msgRetirementAge    = "You do not qualify to use this service because you are at the retirement age. Please provide a different age."
	msgInvestmentAmount = "The amount you entered did not qualify for this service. We require a minimum of $5,000 investment. Please enter a new investment amount."
	msgInvalidRiskLevel = "Invalid input. Please choose your risk level from None, Low, Medium or High (all are case insensitive)."
)

// Validate checks the collected slots in a fixed order and reports the first
// violation. Absent slots are skipped so validation can run while Lex is
// still collecting.
func Validate(slots Slots) lex.ValidationResult {
	if slots.FirstName != nil && !isAlpha(*slots.FirstName) {
		return lex.NewValidationResult(false, SlotFirstName, msgInvalidFirstName)
	}

	if slots.Age != nil {
		age, ok := parseInt(*slots.Age)
		switch {
		case !ok || age <= MinAge:
			return lex.NewValidationResult(false, SlotAge, msgInvalidAge)
		case age >= RetirementAge:
			return lex.NewValidationResult(false, SlotAge, msgRetirementAge)
		}
	}

	if slots.InvestmentAmount != nil {
		amount, ok := parseInt(*slots.InvestmentAmount)
		if !ok || amount < MinimumInvestment {
			return lex.NewValidationResult(false, SlotInvestmentAmount, msgInvestmentAmount)
		}
	}

	if slots.RiskLevel != nil {
		if _, ok := ParseRiskLevel(*slots.RiskLevel); !ok {
			return lex.NewValidationResult(false, SlotRiskLevel, msgInvalidRiskLevel)
		}
	}

	return lex.NewValidationResult(true, "", "")
}

// isAlpha reports whether s is non-empty and made only of letters.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// parseInt reports ok=false for anything that is not a base-10 integer.
// Integers beyond the int range clamp to math.MaxInt or math.MinInt so they
// still compare as very large or very small.
func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err == nil {
		return n, true
	}
	if errors.Is(err, strconv.ErrRange) {
		return n, true
	}
	return 0, false
}
