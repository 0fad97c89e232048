package models

import "time"

// RatioSet holds every ratio computed for one input set. A field is absent
// when its denominator was zero.
type RatioSet struct {
	// Liquidity
	CurrentRatio Optional `json:"current_ratio"`
	QuickRatio   Optional `json:"quick_ratio"`
	CashRatio    Optional `json:"cash_ratio"`

	// Solvency
	DebtRatio     Optional `json:"debt_ratio"`
	LeverageRatio Optional `json:"leverage_ratio"`

	// Profitability
	NetMargin      Optional `json:"net_margin"`
	ReturnOnEquity Optional `json:"return_on_equity"`
	ReturnOnAssets Optional `json:"return_on_assets"`

	// Efficiency
	AssetTurnover       Optional `json:"asset_turnover"`
	InventoryTurnover   Optional `json:"inventory_turnover"`
	DaysInventory       Optional `json:"days_inventory"`
	DaysReceivable      Optional `json:"days_receivable"`
	DaysPayable         Optional `json:"days_payable"`
	CashConversionCycle Optional `json:"cash_conversion_cycle"`
}

// RiskClass is the discrete bankruptcy-risk tier derived from a Z-Score.
type RiskClass string

const (
	RiskInsufficientData RiskClass = "insufficient data"
	RiskHigh             RiskClass = "high risk (possible bankruptcy)"
	RiskModerate         RiskClass = "moderate risk (grey zone)"
	RiskLow              RiskClass = "low risk (healthy)"
)

// Zone returns the short Altman zone name for the class.
func (r RiskClass) Zone() string {
	switch r {
	case RiskHigh:
		return "distress"
	case RiskModerate:
		return "grey"
	case RiskLow:
		return "safe"
	default:
		return "unknown"
	}
}

// Assessment is the complete output for one company.
type Assessment struct {
	Company    string     `json:"company"`
	Period     string     `json:"period,omitempty"`
	Currency   string     `json:"currency,omitempty"`
	Inputs     Financials `json:"inputs"`
	Estimated  []string   `json:"estimated,omitempty"` // figures filled by default estimation
	Ratios     RatioSet   `json:"ratios"`
	ZScore     Optional   `json:"z_score"`
	Risk       RiskClass  `json:"risk"`
	AssessedAt time.Time  `json:"assessed_at"`
}
