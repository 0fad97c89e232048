package risk

import "github.com/seenimoa/riskscanner/pkg/models"

// Zone boundaries. Each boundary value belongs to the upper tier.
const (
	DistressThreshold = 1.81
	SafeThreshold     = 2.99
)

// Classify maps a Z-Score to its risk tier. An absent score yields
// models.RiskInsufficientData.
func Classify(z models.Optional) models.RiskClass {
	score, ok := z.Get()
	switch {
	case !ok:
		return models.RiskInsufficientData
	case score < DistressThreshold:
		return models.RiskHigh
	case score < SafeThreshold:
		return models.RiskModerate
	default:
		return models.RiskLow
	}
}
