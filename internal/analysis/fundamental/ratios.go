// Package fundamental computes liquidity, solvency, profitability and
// efficiency ratios from balance-sheet and income-statement figures.
//
// Every function is pure. A zero denominator yields models.None(); nothing
// here panics, returns Inf, or rounds.
package fundamental

import "github.com/seenimoa/riskscanner/pkg/models"

// DaysPerYear is the day count used by the days-based efficiency ratios.
const DaysPerYear = 365

// div is the single guarded division every ratio goes through.
func div(numerator, denominator float64) models.Optional {
	if denominator == 0 {
		return models.None()
	}
	return models.Some(numerator / denominator)
}

// --- Liquidity ---

// CurrentRatio = Current Assets / Current Liabilities.
func CurrentRatio(currentAssets, currentLiabilities float64) models.Optional {
	return div(currentAssets, currentLiabilities)
}

// QuickRatio = (Current Assets - Inventories) / Current Liabilities.
// Inventories are excluded as the least liquid current asset.
func QuickRatio(currentAssets, inventories, currentLiabilities float64) models.Optional {
	return div(currentAssets-inventories, currentLiabilities)
}

// CashRatio = (Cash + Short-term Investments) / Current Liabilities.
func CashRatio(cash, shortTermInvestments, currentLiabilities float64) models.Optional {
	return div(cash+shortTermInvestments, currentLiabilities)
}

// --- Solvency ---

// DebtRatio = Total Liabilities / Total Assets.
func DebtRatio(totalLiabilities, totalAssets float64) models.Optional {
	return div(totalLiabilities, totalAssets)
}

// LeverageRatio = Total Assets / Equity.
func LeverageRatio(totalAssets, equity float64) models.Optional {
	return div(totalAssets, equity)
}

// --- Profitability ---

// NetMargin = Net Income / Sales. A net loss gives a negative margin.
func NetMargin(netIncome, sales float64) models.Optional {
	return div(netIncome, sales)
}

// ReturnOnEquity = Net Income / Equity.
func ReturnOnEquity(netIncome, equity float64) models.Optional {
	return div(netIncome, equity)
}

// ReturnOnAssets = Net Income / Total Assets.
func ReturnOnAssets(netIncome, totalAssets float64) models.Optional {
	return div(netIncome, totalAssets)
}

// --- Efficiency ---

// AssetTurnover = Sales / Total Assets.
func AssetTurnover(sales, totalAssets float64) models.Optional {
	return div(sales, totalAssets)
}

// InventoryTurnover = Cost of Sales / Average Inventory.
func InventoryTurnover(costOfSales, averageInventory float64) models.Optional {
	return div(costOfSales, averageInventory)
}

// DaysInventory = 365 * Average Inventory / Cost of Sales.
func DaysInventory(costOfSales, averageInventory float64) models.Optional {
	return div(DaysPerYear*averageInventory, costOfSales)
}

// DaysReceivable = 365 * Receivables / Credit Sales.
func DaysReceivable(receivables, creditSales float64) models.Optional {
	return div(DaysPerYear*receivables, creditSales)
}

// DaysPayable = 365 * Payables / Credit Purchases.
func DaysPayable(payables, creditPurchases float64) models.Optional {
	return div(DaysPerYear*payables, creditPurchases)
}

// CashConversionCycle = Days Inventory + Days Receivable - Days Payable.
// Absent if any component is absent.
func CashConversionCycle(daysInventory, daysReceivable, daysPayable models.Optional) models.Optional {
	dio, ok := daysInventory.Get()
	if !ok {
		return models.None()
	}
	dso, ok := daysReceivable.Get()
	if !ok {
		return models.None()
	}
	dpo, ok := daysPayable.Get()
	if !ok {
		return models.None()
	}
	return models.Some(dio + dso - dpo)
}
