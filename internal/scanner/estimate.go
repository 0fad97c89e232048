package scanner

import (
	"fmt"

	"github.com/seenimoa/riskscanner/internal/validate"
	"github.com/seenimoa/riskscanner/pkg/models"
)

// Default estimation shares.
const (
	DefaultInventoryShare   = 0.30 // of current assets
	DefaultCostOfSalesShare = 0.60 // of sales
)

// Estimates controls how missing optional figures are derived.
type Estimates struct {
	InventoryShare   float64
	CostOfSalesShare float64
}

// DefaultEstimates returns the standard 30% / 60% shares.
func DefaultEstimates() Estimates {
	return Estimates{
		InventoryShare:   DefaultInventoryShare,
		CostOfSalesShare: DefaultCostOfSalesShare,
	}
}

// Resolve turns a validated statement into a complete input set.
//
// With estimate enabled, missing optional figures are derived in this order:
//
//	inventories         = InventoryShare · current assets
//	average inventory   = inventories
//	cost of sales       = CostOfSalesShare · sales
//	working capital     = current assets − current liabilities
//	market value equity = equity
//	retained earnings   = 0
//	credit sales        = sales
//	credit purchases    = cost of sales
//	cash, short-term investments, receivables, payables = 0
//
// The names of the derived figures are returned in the order above. With
// estimate disabled every missing figure is reported as validate.ErrRequired.
func Resolve(st models.Statement, est Estimates, estimate bool) (models.Financials, []string, error) {
	if err := validate.Statement(&st); err != nil {
		return models.Financials{}, nil, err
	}

	f := models.Financials{
		CurrentAssets:      *st.CurrentAssets,
		CurrentLiabilities: *st.CurrentLiabilities,
		TotalAssets:        *st.TotalAssets,
		TotalLiabilities:   *st.TotalLiabilities,
		Equity:             *st.Equity,
		Sales:              *st.Sales,
		NetIncome:          *st.NetIncome,
		EBIT:               *st.EBIT,
	}

	r := resolver{estimate: estimate}
	f.Inventories = r.fill("inventories", st.Inventories, est.InventoryShare*f.CurrentAssets)
	f.AverageInventory = r.fill("average_inventory", st.AverageInventory, f.Inventories)
	f.CostOfSales = r.fill("cost_of_sales", st.CostOfSales, est.CostOfSalesShare*f.Sales)
	f.WorkingCapital = r.fill("working_capital", st.WorkingCapital, f.CurrentAssets-f.CurrentLiabilities)
	f.MarketValueEquity = r.fill("market_value_equity", st.MarketValueEquity, f.Equity)
	f.RetainedEarnings = r.fill("retained_earnings", st.RetainedEarnings, 0)
	f.CreditSales = r.fill("credit_sales", st.CreditSales, f.Sales)
	f.CreditPurchases = r.fill("credit_purchases", st.CreditPurchases, f.CostOfSales)
	f.Cash = r.fill("cash", st.Cash, 0)
	f.ShortTermInvestments = r.fill("short_term_investments", st.ShortTermInvestments, 0)
	f.Receivables = r.fill("receivables", st.Receivables, 0)
	f.Payables = r.fill("payables", st.Payables, 0)

	if len(r.missing) > 0 {
		return models.Financials{}, nil, fmt.Errorf("estimation disabled: %w", r.missing)
	}
	return f, r.estimated, nil
}

type resolver struct {
	estimate  bool
	estimated []string
	missing   validate.Errors
}

func (r *resolver) fill(name string, given *float64, derived float64) float64 {
	if given != nil {
		return *given
	}
	if !r.estimate {
		r.missing = append(r.missing, &validate.FieldError{Field: name, Err: validate.ErrRequired})
		return 0
	}
	r.estimated = append(r.estimated, name)
	return derived
}
