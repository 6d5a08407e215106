// internal/intents/recommend-portfolio/recommendation.go
package recommendportfolio

var allocations = map[RiskLevel]string{
	RiskNone:   "100% bonds (AGG), 0% equities (SPY)",
	RiskLow:    "60% bonds (AGG), 40% equities (SPY)",
	RiskMedium: "40% bonds (AGG), 60% equities (SPY)",
	RiskHigh:   "20% bonds (AGG), 80% equities (SPY)",
}

// Allocation returns the portfolio split for the level, or "" for a level
// outside the table.
func (r RiskLevel) Allocation() string {
	return allocations[r]
}

// Recommend looks up the allocation for raw user input. Unrecognized input
// yields "" rather than an error; the dialog hook has already rejected it.
func Recommend(riskLevel string) string {
	level, ok := ParseRiskLevel(riskLevel)
	if !ok {
		return ""
	}
	return level.Allocation()
}
