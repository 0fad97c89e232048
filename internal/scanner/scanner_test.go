package scanner

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenimoa/riskscanner/internal/infra"
	"github.com/seenimoa/riskscanner/internal/validate"
	"github.com/seenimoa/riskscanner/pkg/models"
)

// requiredOnly carries just the always-required figures.
func requiredOnly() models.Statement {
	return models.Statement{
		CurrentAssets:      models.Float(400000),
		CurrentLiabilities: models.Float(200000),
		TotalAssets:        models.Float(1000000),
		TotalLiabilities:   models.Float(400000),
		Equity:             models.Float(600000),
		Sales:              models.Float(2000000),
		NetIncome:          models.Float(150000),
		EBIT:               models.Float(250000),
	}
}

func healthy() models.Company {
	st := requiredOnly()
	st.WorkingCapital = models.Float(200000)
	st.RetainedEarnings = models.Float(300000)
	st.MarketValueEquity = models.Float(650000)
	st.Inventories = models.Float(120000)
	st.AverageInventory = models.Float(100000)
	st.CostOfSales = models.Float(1200000)
	return models.Company{Name: "Healthy Co", Period: "FY2024", Currency: "USD", Figures: st}
}

func distressed() models.Company {
	return models.Company{
		Name:     "Distressed Co",
		Period:   "FY2024",
		Currency: "USD",
		Figures: models.Statement{
			CurrentAssets:      models.Float(250000),
			CurrentLiabilities: models.Float(240000),
			TotalAssets:        models.Float(1000000),
			TotalLiabilities:   models.Float(800000),
			Equity:             models.Float(200000),
			Sales:              models.Float(800000),
			NetIncome:          models.Float(-50000),
			EBIT:               models.Float(30000),
			WorkingCapital:     models.Float(10000),
			RetainedEarnings:   models.Float(50000),
			MarketValueEquity:  models.Float(220000),
			Inventories:        models.Float(100000),
			AverageInventory:   models.Float(95000),
			CostOfSales:        models.Float(500000),
		},
	}
}

// ---------------------------------------------------------------------------
// Resolve
// ---------------------------------------------------------------------------

func TestResolve_EstimatesMissingFigures(t *testing.T) {
	f, estimated, err := Resolve(requiredOnly(), DefaultEstimates(), true)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"inventories", "average_inventory", "cost_of_sales", "working_capital",
		"market_value_equity", "retained_earnings", "credit_sales", "credit_purchases",
		"cash", "short_term_investments", "receivables", "payables",
	}, estimated)

	assert.InDelta(t, 120000, f.Inventories, 1e-6)
	assert.Equal(t, f.Inventories, f.AverageInventory)
	assert.InDelta(t, 1200000, f.CostOfSales, 1e-6)
	assert.Equal(t, 200000.0, f.WorkingCapital)
	assert.Equal(t, 600000.0, f.MarketValueEquity)
	assert.Equal(t, 0.0, f.RetainedEarnings)
	assert.Equal(t, 2000000.0, f.CreditSales)
	assert.Equal(t, f.CostOfSales, f.CreditPurchases)
	assert.Zero(t, f.Cash)
	assert.Zero(t, f.Receivables)
}

func TestResolve_GivenFiguresWin(t *testing.T) {
	c := healthy()
	f, estimated, err := Resolve(c.Figures, DefaultEstimates(), true)
	require.NoError(t, err)

	assert.Equal(t, 120000.0, f.Inventories)
	assert.Equal(t, 100000.0, f.AverageInventory)
	assert.Equal(t, 1200000.0, f.CostOfSales)
	assert.Equal(t, 650000.0, f.MarketValueEquity)
	assert.NotContains(t, estimated, "inventories")
	assert.NotContains(t, estimated, "working_capital")
	assert.Contains(t, estimated, "credit_sales")
}

func TestResolve_CustomShares(t *testing.T) {
	f, _, err := Resolve(requiredOnly(), Estimates{InventoryShare: 0.5, CostOfSalesShare: 0.25}, true)
	require.NoError(t, err)
	assert.Equal(t, 200000.0, f.Inventories)
	assert.Equal(t, 500000.0, f.CostOfSales)
}

func TestResolve_EstimationDisabled(t *testing.T) {
	_, _, err := Resolve(requiredOnly(), DefaultEstimates(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, validate.ErrRequired)

	var errs validate.Errors
	require.True(t, errors.As(err, &errs))
	assert.Len(t, errs, 12)
	assert.Equal(t, "inventories", errs[0].Field)
}

func TestResolve_EstimationDisabledCompleteStatement(t *testing.T) {
	st := healthy().Figures
	st.Cash = models.Float(50000)
	st.ShortTermInvestments = models.Float(30000)
	st.Receivables = models.Float(150000)
	st.Payables = models.Float(120000)
	st.CreditSales = models.Float(1095000)
	st.CreditPurchases = models.Float(876000)

	f, estimated, err := Resolve(st, DefaultEstimates(), false)
	require.NoError(t, err)
	assert.Empty(t, estimated)
	assert.Equal(t, 1095000.0, f.CreditSales)
}

func TestResolve_RejectsInvalid(t *testing.T) {
	st := requiredOnly()
	st.Sales = models.Float(-1)
	st.EBIT = nil

	_, _, err := Resolve(st, DefaultEstimates(), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, validate.ErrNegative)
	assert.ErrorIs(t, err, validate.ErrRequired)
}

// ---------------------------------------------------------------------------
// Analyze / Assess
// ---------------------------------------------------------------------------

func TestAnalyze(t *testing.T) {
	f, _, err := Resolve(healthy().Figures, DefaultEstimates(), true)
	require.NoError(t, err)

	a := Analyze(f)
	assert.Equal(t, models.Some(4.46), a.ZScore)
	assert.Equal(t, models.RiskLow, a.Risk)
	assert.Equal(t, models.Some(2.0), a.Ratios.CurrentRatio)
	assert.Equal(t, f, a.Inputs)
	assert.Empty(t, a.Company)
}

func TestAnalyze_ZeroTotalsAreInsufficientData(t *testing.T) {
	a := Analyze(models.Financials{Sales: 1000, NetIncome: 10})
	assert.False(t, a.ZScore.IsDefined())
	assert.Equal(t, models.RiskInsufficientData, a.Risk)
}

func fixedNow() time.Time { return time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC) }

func TestAssess(t *testing.T) {
	s := New()
	s.now = fixedNow

	a, err := s.Assess(context.Background(), distressed())
	require.NoError(t, err)

	assert.Equal(t, "Distressed Co", a.Company)
	assert.Equal(t, "FY2024", a.Period)
	assert.Equal(t, "USD", a.Currency)
	assert.Equal(t, fixedNow(), a.AssessedAt)
	assert.Equal(t, models.Some(1.146), a.ZScore)
	assert.Equal(t, models.RiskHigh, a.Risk)
	assert.Equal(t, models.Some(-0.0625), a.Ratios.NetMargin)
}

func TestAssess_UsesCache(t *testing.T) {
	cache := infra.NewCache[models.Assessment](time.Minute)
	s := New(WithCache(cache))

	first, err := s.Assess(context.Background(), healthy())
	require.NoError(t, err)

	renamed := healthy()
	renamed.Name = "Same Figures Inc"
	second, err := s.Assess(context.Background(), renamed)
	require.NoError(t, err)

	assert.Equal(t, "Same Figures Inc", second.Company)
	assert.Equal(t, first.ZScore, second.ZScore)
	assert.Equal(t, first.Ratios, second.Ratios)
	assert.Equal(t, infra.CacheStats{Entries: 1, Hits: 1, Misses: 1}, s.CacheStats())
}

func TestAssess_CacheDisabled(t *testing.T) {
	s := New(WithCache(nil))
	_, err := s.Assess(context.Background(), healthy())
	require.NoError(t, err)
	assert.Equal(t, infra.CacheStats{}, s.CacheStats())
}

func TestAssess_EstimationDisabled(t *testing.T) {
	s := New(WithEstimation(false))
	_, err := s.Assess(context.Background(), healthy())
	require.Error(t, err)
	assert.ErrorIs(t, err, validate.ErrRequired)
	assert.Contains(t, err.Error(), "Healthy Co")
}

func TestAssess_CustomEstimates(t *testing.T) {
	c := healthy()
	c.Figures.Inventories = nil
	c.Figures.AverageInventory = nil

	s := New(WithEstimates(Estimates{InventoryShare: 0.5, CostOfSalesShare: 0.6}))
	a, err := s.Assess(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, 200000.0, a.Inputs.Inventories)
	assert.Equal(t, []string{"inventories", "average_inventory", "credit_sales", "credit_purchases",
		"cash", "short_term_investments", "receivables", "payables"}, a.Estimated)
}

func TestAssess_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Assess(ctx, healthy())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFingerprint(t *testing.T) {
	a, _, _ := Resolve(healthy().Figures, DefaultEstimates(), true)
	b := a
	assert.Equal(t, Fingerprint(a), Fingerprint(b))

	b.NetIncome = -b.NetIncome
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

// ---------------------------------------------------------------------------
// Batch
// ---------------------------------------------------------------------------

func TestBatch_KeepsOrderAndRecordsErrors(t *testing.T) {
	broken := healthy()
	broken.Name = "Broken Co"
	broken.Figures.TotalAssets = nil

	companies := []models.Company{healthy(), broken, distressed()}
	results, err := New().Batch(context.Background(), companies, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "Healthy Co", results[0].Source)
	require.True(t, results[0].OK())
	assert.Equal(t, models.RiskLow, results[0].Assessment.Risk)

	assert.Equal(t, "Broken Co", results[1].Source)
	assert.False(t, results[1].OK())
	assert.Nil(t, results[1].Assessment)
	assert.ErrorIs(t, results[1].Err, validate.ErrRequired)

	assert.Equal(t, "Distressed Co", results[2].Source)
	require.True(t, results[2].OK())
	assert.Equal(t, models.RiskHigh, results[2].Assessment.Risk)
}

func TestBatch_MatchesSequential(t *testing.T) {
	var companies []models.Company
	for i := 0; i < 25; i++ {
		c := healthy()
		c.Name = fmt.Sprintf("Company %02d", i)
		c.Figures.NetIncome = models.Float(float64(i*10000 - 100000))
		c.Figures.EBIT = models.Float(float64(i * 15000))
		companies = append(companies, c)
	}

	s := New(WithCache(nil))
	results, err := s.Batch(context.Background(), companies, 8)
	require.NoError(t, err)

	for i, c := range companies {
		want, err := s.Assess(context.Background(), c)
		require.NoError(t, err)
		require.True(t, results[i].OK())
		assert.Equal(t, c.Name, results[i].Assessment.Company)
		assert.Equal(t, want.ZScore, results[i].Assessment.ZScore)
		assert.Equal(t, want.Ratios, results[i].Assessment.Ratios)
	}
}

func TestBatch_ZeroConcurrencyRunsSerially(t *testing.T) {
	results, err := New().Batch(context.Background(), []models.Company{healthy()}, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].OK())
}

func TestBatch_Empty(t *testing.T) {
	results, err := New().Batch(context.Background(), nil, 4)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBatch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Batch(ctx, []models.Company{healthy(), distressed()}, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatchSources(t *testing.T) {
	catalog := map[string]models.Company{
		"healthy.yaml":    healthy(),
		"distressed.yaml": distressed(),
	}
	load := func(source string) (*models.Company, error) {
		c, ok := catalog[source]
		if !ok {
			return nil, errors.New("no such file")
		}
		return &c, nil
	}

	results, err := New().BatchSources(context.Background(),
		[]string{"distressed.yaml", "missing.yaml", "healthy.yaml"}, load, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "distressed.yaml", results[0].Source)
	assert.Equal(t, models.RiskHigh, results[0].Assessment.Risk)

	assert.Equal(t, "missing.yaml", results[1].Source)
	require.Error(t, results[1].Err)
	assert.Contains(t, results[1].Err.Error(), "load missing.yaml")

	assert.Equal(t, "healthy.yaml", results[2].Source)
	assert.Equal(t, models.RiskLow, results[2].Assessment.Risk)
}
