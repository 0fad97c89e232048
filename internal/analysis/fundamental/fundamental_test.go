package fundamental

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenimoa/riskscanner/pkg/models"
)

// ratioCase adapts every ratio to an (a, b, denominator) shape so the
// division properties can be checked in one table.
type ratioCase struct {
	name string
	// fn receives a, b, and the denominator d.
	fn func(a, b, d float64) models.Optional
	// want is the reference computation for a non-zero denominator.
	want func(a, b, d float64) float64
}

func ratioCases() []ratioCase {
	return []ratioCase{
		{"CurrentRatio", func(a, _, d float64) models.Optional { return CurrentRatio(a, d) },
			func(a, _, d float64) float64 { return a / d }},
		{"QuickRatio", func(a, b, d float64) models.Optional { return QuickRatio(a, b, d) },
			func(a, b, d float64) float64 { return (a - b) / d }},
		{"CashRatio", func(a, b, d float64) models.Optional { return CashRatio(a, b, d) },
			func(a, b, d float64) float64 { return (a + b) / d }},
		{"DebtRatio", func(a, _, d float64) models.Optional { return DebtRatio(a, d) },
			func(a, _, d float64) float64 { return a / d }},
		{"LeverageRatio", func(a, _, d float64) models.Optional { return LeverageRatio(a, d) },
			func(a, _, d float64) float64 { return a / d }},
		{"NetMargin", func(a, _, d float64) models.Optional { return NetMargin(a, d) },
			func(a, _, d float64) float64 { return a / d }},
		{"ReturnOnEquity", func(a, _, d float64) models.Optional { return ReturnOnEquity(a, d) },
			func(a, _, d float64) float64 { return a / d }},
		{"ReturnOnAssets", func(a, _, d float64) models.Optional { return ReturnOnAssets(a, d) },
			func(a, _, d float64) float64 { return a / d }},
		{"AssetTurnover", func(a, _, d float64) models.Optional { return AssetTurnover(a, d) },
			func(a, _, d float64) float64 { return a / d }},
		{"InventoryTurnover", func(a, _, d float64) models.Optional { return InventoryTurnover(a, d) },
			func(a, _, d float64) float64 { return a / d }},
		{"DaysInventory", func(a, _, d float64) models.Optional { return DaysInventory(d, a) },
			func(a, _, d float64) float64 { return 365 * a / d }},
		{"DaysReceivable", func(a, _, d float64) models.Optional { return DaysReceivable(a, d) },
			func(a, _, d float64) float64 { return 365 * a / d }},
		{"DaysPayable", func(a, _, d float64) models.Optional { return DaysPayable(a, d) },
			func(a, _, d float64) float64 { return 365 * a / d }},
	}
}

// inputGrid covers positive, negative, fractional and large figures.
var inputGrid = []float64{-1_250_000, -50_000, -3.75, -0.001, 0, 0.5, 1, 7.25, 365, 80_000, 1_000_000, 2.5e9}

func TestRatios_ZeroDenominatorIsAbsent(t *testing.T) {
	for _, rc := range ratioCases() {
		t.Run(rc.name, func(t *testing.T) {
			for _, a := range inputGrid {
				got := rc.fn(a, 1000, 0)
				assert.False(t, got.IsDefined(), "%s(%v, 0) should be absent", rc.name, a)
				assert.Equal(t, models.None(), got)
			}
		})
	}
}

func TestRatios_MatchReferenceDivision(t *testing.T) {
	for _, rc := range ratioCases() {
		t.Run(rc.name, func(t *testing.T) {
			for _, a := range inputGrid {
				for _, b := range inputGrid {
					for _, d := range inputGrid {
						if d == 0 {
							continue
						}
						got, ok := rc.fn(a, b, d).Get()
						require.True(t, ok, "%s(%v, %v, %v) should be defined", rc.name, a, b, d)
						assert.Equal(t, rc.want(a, b, d), got, "%s(%v, %v, %v)", rc.name, a, b, d)
					}
				}
			}
		})
	}
}

func TestRatios_Idempotent(t *testing.T) {
	for _, rc := range ratioCases() {
		t.Run(rc.name, func(t *testing.T) {
			for _, d := range inputGrid {
				first := rc.fn(123_456.78, 9_876.5, d)
				second := rc.fn(123_456.78, 9_876.5, d)
				assert.Equal(t, first, second)
			}
		})
	}
}

func TestRatios_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		got  models.Optional
		want float64
	}{
		{"current ratio", CurrentRatio(100000, 50000), 2.0},
		{"current ratio below one", CurrentRatio(75000, 100000), 0.75},
		{"quick ratio", QuickRatio(100000, 30000, 50000), 1.4},
		{"quick ratio even", QuickRatio(80000, 20000, 60000), 1.0},
		{"cash ratio", CashRatio(50000, 30000, 100000), 0.8},
		{"cash ratio above one", CashRatio(60000, 40000, 80000), 1.25},
		{"debt ratio", DebtRatio(400000, 1000000), 0.4},
		{"leverage ratio", LeverageRatio(1000000, 600000), 1000000.0 / 600000.0},
		{"net margin", NetMargin(75000, 1000000), 0.075},
		{"return on equity", ReturnOnEquity(120000, 600000), 0.2},
		{"return on assets", ReturnOnAssets(50000, 800000), 0.0625},
		{"asset turnover", AssetTurnover(2000000, 1000000), 2.0},
		{"inventory turnover", InventoryTurnover(480000, 120000), 4.0},
		{"days inventory", DaysInventory(365000, 100000), 100.0},
		{"days inventory halved", DaysInventory(730000, 100000), 50.0},
		{"days receivable", DaysReceivable(150000, 1095000), 50.0},
		{"days payable", DaysPayable(120000, 876000), 50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.got.Get()
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRatios_LossPropagatesAsNegative(t *testing.T) {
	margin, ok := NetMargin(-50000, 500000).Get()
	require.True(t, ok)
	assert.Equal(t, -0.1, margin)

	roe, ok := ReturnOnEquity(-50000, 200000).Get()
	require.True(t, ok)
	assert.Equal(t, -0.25, roe)

	roa, ok := ReturnOnAssets(-50000, 1000000).Get()
	require.True(t, ok)
	assert.Equal(t, -0.05, roa)
}

func TestRatios_ZeroNumeratorIsDefinedZero(t *testing.T) {
	got := NetMargin(0, 500000)
	assert.True(t, got.IsDefined())
	assert.Equal(t, models.Some(0), got)
	assert.NotEqual(t, models.None(), got)
}

func TestCashConversionCycle(t *testing.T) {
	got, ok := CashConversionCycle(models.Some(60), models.Some(45), models.Some(30)).Get()
	require.True(t, ok)
	assert.Equal(t, 75.0, got)

	negative, ok := CashConversionCycle(models.Some(10), models.Some(15), models.Some(50)).Get()
	require.True(t, ok)
	assert.Equal(t, -25.0, negative)
}

func TestCashConversionCycle_AbsentComponent(t *testing.T) {
	tests := []struct {
		name          string
		dio, dso, dpo models.Optional
	}{
		{"days inventory absent", models.None(), models.Some(45), models.Some(30)},
		{"days receivable absent", models.Some(60), models.None(), models.Some(30)},
		{"days payable absent", models.Some(60), models.Some(45), models.None()},
		{"all absent", models.None(), models.None(), models.None()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, CashConversionCycle(tt.dio, tt.dso, tt.dpo).IsDefined())
		})
	}
}

func sampleFinancials() models.Financials {
	return models.Financials{
		CurrentAssets:        400000,
		CurrentLiabilities:   200000,
		Cash:                 50000,
		ShortTermInvestments: 30000,
		Inventories:          120000,
		AverageInventory:     100000,
		Receivables:          150000,
		Payables:             120000,
		TotalAssets:          1000000,
		TotalLiabilities:     400000,
		Equity:               600000,
		MarketValueEquity:    650000,
		Sales:                2000000,
		CreditSales:          1095000,
		CreditPurchases:      876000,
		CostOfSales:          1200000,
		NetIncome:            150000,
		EBIT:                 250000,
		WorkingCapital:       200000,
		RetainedEarnings:     300000,
	}
}

func TestComputeRatios(t *testing.T) {
	f := sampleFinancials()
	r := ComputeRatios(f)

	assert.Equal(t, models.Some(2.0), r.CurrentRatio)
	assert.Equal(t, models.Some(1.4), r.QuickRatio)
	assert.Equal(t, models.Some(0.4), r.CashRatio)
	assert.Equal(t, models.Some(0.4), r.DebtRatio)
	assert.Equal(t, models.Some(1000000.0/600000.0), r.LeverageRatio)
	assert.Equal(t, models.Some(0.075), r.NetMargin)
	assert.Equal(t, models.Some(0.25), r.ReturnOnEquity)
	assert.Equal(t, models.Some(0.15), r.ReturnOnAssets)
	assert.Equal(t, models.Some(2.0), r.AssetTurnover)
	assert.Equal(t, models.Some(12.0), r.InventoryTurnover)
	assert.Equal(t, DaysInventory(f.CostOfSales, f.AverageInventory), r.DaysInventory)
	assert.Equal(t, models.Some(50.0), r.DaysReceivable)
	assert.Equal(t, models.Some(50.0), r.DaysPayable)

	dio, _ := r.DaysInventory.Get()
	assert.Equal(t, models.Some(dio+50-50), r.CashConversionCycle)
}

func TestComputeRatios_ZeroFiguresLeaveRatiosAbsent(t *testing.T) {
	r := ComputeRatios(models.Financials{NetIncome: -10000, Sales: 50000})

	assert.False(t, r.CurrentRatio.IsDefined())
	assert.False(t, r.QuickRatio.IsDefined())
	assert.False(t, r.CashRatio.IsDefined())
	assert.False(t, r.DebtRatio.IsDefined())
	assert.False(t, r.LeverageRatio.IsDefined())
	assert.False(t, r.ReturnOnEquity.IsDefined())
	assert.False(t, r.ReturnOnAssets.IsDefined())
	assert.False(t, r.AssetTurnover.IsDefined())
	assert.False(t, r.InventoryTurnover.IsDefined())
	assert.False(t, r.DaysInventory.IsDefined())
	assert.False(t, r.DaysReceivable.IsDefined())
	assert.False(t, r.DaysPayable.IsDefined())
	assert.False(t, r.CashConversionCycle.IsDefined())

	assert.Equal(t, models.Some(-0.2), r.NetMargin)
}
