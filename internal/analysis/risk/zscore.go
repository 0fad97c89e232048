// Package risk computes the Altman Z-Score and maps it to a bankruptcy-risk
// tier. Like the ratio calculator it is pure and stateless.
package risk

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/seenimoa/riskscanner/pkg/models"
)

// Altman Z-Score weights (original public manufacturing model).
const (
	WeightWorkingCapital   = 1.2
	WeightRetainedEarnings = 1.4
	WeightEBIT             = 3.3
	WeightMarketEquity     = 0.6
	WeightSales            = 1.0

	// ScorePrecision is the number of decimal places the final score keeps.
	ScorePrecision = 3
)

// ZScoreInputs are the seven aggregates the Z-Score is built from.
type ZScoreInputs struct {
	WorkingCapital    float64 `json:"working_capital"`
	RetainedEarnings  float64 `json:"retained_earnings"`
	EBIT              float64 `json:"ebit"`
	MarketValueEquity float64 `json:"market_value_equity"`
	TotalLiabilities  float64 `json:"total_liabilities"`
	Sales             float64 `json:"sales"`
	TotalAssets       float64 `json:"total_assets"`
}

// InputsFrom picks the Z-Score aggregates out of a resolved input set.
func InputsFrom(f models.Financials) ZScoreInputs {
	return ZScoreInputs{
		WorkingCapital:    f.WorkingCapital,
		RetainedEarnings:  f.RetainedEarnings,
		EBIT:              f.EBIT,
		MarketValueEquity: f.MarketValueEquity,
		TotalLiabilities:  f.TotalLiabilities,
		Sales:             f.Sales,
		TotalAssets:       f.TotalAssets,
	}
}

// Components holds the five weighted, unrounded terms of the score.
type Components struct {
	WorkingCapital   float64 `json:"working_capital"`   // 1.2 * WC/TA
	RetainedEarnings float64 `json:"retained_earnings"` // 1.4 * RE/TA
	EBIT             float64 `json:"ebit"`              // 3.3 * EBIT/TA
	MarketEquity     float64 `json:"market_equity"`     // 0.6 * MVE/TL
	Sales            float64 `json:"sales"`             // 1.0 * Sales/TA
}

// Sum adds the five terms without rounding.
func (c Components) Sum() float64 {
	return c.WorkingCapital + c.RetainedEarnings + c.EBIT + c.MarketEquity + c.Sales
}

// Components returns the weighted terms, or false when total assets or total
// liabilities is zero.
func (in ZScoreInputs) Components() (Components, bool) {
	if in.TotalAssets == 0 || in.TotalLiabilities == 0 {
		return Components{}, false
	}
	return Components{
		WorkingCapital:   WeightWorkingCapital * (in.WorkingCapital / in.TotalAssets),
		RetainedEarnings: WeightRetainedEarnings * (in.RetainedEarnings / in.TotalAssets),
		EBIT:             WeightEBIT * (in.EBIT / in.TotalAssets),
		MarketEquity:     WeightMarketEquity * (in.MarketValueEquity / in.TotalLiabilities),
		Sales:            WeightSales * (in.Sales / in.TotalAssets),
	}, true
}

// Score returns the Z-Score rounded to three decimals, or None when total
// assets or total liabilities is zero.
func (in ZScoreInputs) Score() models.Optional {
	c, ok := in.Components()
	if !ok {
		return models.None()
	}
	return models.Some(roundScore(c.Sum()))
}

// AltmanZScore computes
//
//	Z = 1.2·(WC/TA) + 1.4·(RE/TA) + 3.3·(EBIT/TA) + 0.6·(MVE/TL) + 1.0·(Sales/TA)
//
// rounded to three decimals. Negative inputs flow through unchanged.
func AltmanZScore(workingCapital, retainedEarnings, ebit, marketValueEquity, totalLiabilities, sales, totalAssets float64) models.Optional {
	return ZScoreInputs{
		WorkingCapital:    workingCapital,
		RetainedEarnings:  retainedEarnings,
		EBIT:              ebit,
		MarketValueEquity: marketValueEquity,
		TotalLiabilities:  totalLiabilities,
		Sales:             sales,
		TotalAssets:       totalAssets,
	}.Score()
}

// roundScore rounds the exact binary value of z to ScorePrecision places,
// ties to even. 2.0625 becomes 2.062 and 1.0005, stored just below the tie,
// becomes 1.
func roundScore(z float64) float64 {
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return z
	}
	return decimal.RequireFromString(strconv.FormatFloat(z, 'f', ScorePrecision, 64)).InexactFloat64()
}
