package fundamental

import "github.com/seenimoa/riskscanner/pkg/models"

// ComputeRatios calculates every ratio for a resolved input set.
func ComputeRatios(f models.Financials) models.RatioSet {
	dio := DaysInventory(f.CostOfSales, f.AverageInventory)
	dso := DaysReceivable(f.Receivables, f.CreditSales)
	dpo := DaysPayable(f.Payables, f.CreditPurchases)

	return models.RatioSet{
		CurrentRatio: CurrentRatio(f.CurrentAssets, f.CurrentLiabilities),
		QuickRatio:   QuickRatio(f.CurrentAssets, f.Inventories, f.CurrentLiabilities),
		CashRatio:    CashRatio(f.Cash, f.ShortTermInvestments, f.CurrentLiabilities),

		DebtRatio:     DebtRatio(f.TotalLiabilities, f.TotalAssets),
		LeverageRatio: LeverageRatio(f.TotalAssets, f.Equity),

		NetMargin:      NetMargin(f.NetIncome, f.Sales),
		ReturnOnEquity: ReturnOnEquity(f.NetIncome, f.Equity),
		ReturnOnAssets: ReturnOnAssets(f.NetIncome, f.TotalAssets),

		AssetTurnover:       AssetTurnover(f.Sales, f.TotalAssets),
		InventoryTurnover:   InventoryTurnover(f.CostOfSales, f.AverageInventory),
		DaysInventory:       dio,
		DaysReceivable:      dso,
		DaysPayable:         dpo,
		CashConversionCycle: CashConversionCycle(dio, dso, dpo),
	}
}
