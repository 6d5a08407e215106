// internal/intents/recommend-portfolio/models.go
package recommendportfolio

import (
	"context"
	"strings"

	"robo-advisor/internal/common/logger"
	"robo-advisor/internal/common/metrics"
	"robo-advisor/internal/models"
)

// IntentName is the Lex intent this package serves.
const IntentName = "recommendPortfolio"

const (
	SlotFirstName        = "firstName"
	SlotAge              = "age"
	SlotInvestmentAmount = "investmentAmount"
	SlotRiskLevel        = "riskLevel"
)

// Slots is the typed view of the intent's slot map. A nil field means the
// slot has not been collected yet.
type Slots struct {
	FirstName        *string
	Age              *string
	InvestmentAmount *string
	RiskLevel        *string
}

// SlotsFromMap reads the four recognized slots; unknown keys are ignored and
// missing keys read as absent.
func SlotsFromMap(m map[string]*string) Slots {
	return Slots{
		FirstName:        m[SlotFirstName],
		Age:              m[SlotAge],
		InvestmentAmount: m[SlotInvestmentAmount],
		RiskLevel:        m[SlotRiskLevel],
	}
}

// ToMap renders all four slots, absent ones as nil.
func (s Slots) ToMap() map[string]*string {
	return map[string]*string{
		SlotFirstName:        s.FirstName,
		SlotAge:              s.Age,
		SlotInvestmentAmount: s.InvestmentAmount,
		SlotRiskLevel:        s.RiskLevel,
	}
}

// RiskLevel is one of the four accepted risk categories.
type RiskLevel string

const (
	RiskNone   RiskLevel = "none"
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ParseRiskLevel normalizes user input case-insensitively.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	switch level := RiskLevel(strings.ToLower(s)); level {
	case RiskNone, RiskLow, RiskMedium, RiskHigh:
		return level, true
	default:
		return "", false
	}
}

// Publisher delivers fulfilled recommendations to downstream consumers.
type Publisher interface {
	PublishRecommendation(ctx context.Context, n models.RecommendationNotification) error
}

type Dependencies struct {
	Logger    logger.Logger
	Metrics   *metrics.Recorder
	Publisher Publisher
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
