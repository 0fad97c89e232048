package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenimoa/riskscanner/pkg/models"
)

func TestAltmanZScore(t *testing.T) {
	tests := []struct {
		name                             string
		wc, re, ebit, mve, tl, sales, ta float64
		want                             float64
	}{
		{
			// 0.24 + 0.21 + 0.396 + 1.0 + 0.8
			name: "grey zone company",
			wc:   200000, re: 150000, ebit: 120000, mve: 500000, tl: 300000, sales: 800000, ta: 1000000,
			want: 2.646,
		},
		{
			// 0.12 + 0.07 + 0.099 + 0.24 + 0.1
			name: "small distressed company",
			wc:   10000, re: 5000, ebit: 3000, mve: 20000, tl: 50000, sales: 10000, ta: 100000,
			want: 0.629,
		},
		{
			// 0.24 + 0.42 + 0.825 + 0.975 + 2.0
			name: "healthy sample",
			wc:   200000, re: 300000, ebit: 250000, mve: 650000, tl: 400000, sales: 2000000, ta: 1000000,
			want: 4.46,
		},
		{
			// 0.012 + 0.07 + 0.099 + 0.165 + 0.8
			name: "distressed sample",
			wc:   10000, re: 50000, ebit: 30000, mve: 220000, tl: 800000, sales: 800000, ta: 1000000,
			want: 1.146,
		},
		{
			// -0.16 - 0.4667 - 0.22 + 1.0 + 0.1333
			name: "negative aggregates propagate",
			wc:   -20000, re: -50000, ebit: -10000, mve: 50000, tl: 30000, sales: 20000, ta: 150000,
			want: 0.287,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AltmanZScore(tt.wc, tt.re, tt.ebit, tt.mve, tt.tl, tt.sales, tt.ta).Get()
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAltmanZScore_ZeroDenominators(t *testing.T) {
	t.Run("zero total assets", func(t *testing.T) {
		z := AltmanZScore(10000, 5000, 3000, 20000, 50000, 10000, 0)
		assert.False(t, z.IsDefined())
	})

	t.Run("zero total liabilities", func(t *testing.T) {
		z := AltmanZScore(200000, 150000, 120000, 500000, 0, 800000, 1000000)
		assert.False(t, z.IsDefined())
	})

	t.Run("both zero", func(t *testing.T) {
		z := AltmanZScore(1, 1, 1, 1, 0, 1, 0)
		assert.Equal(t, models.None(), z)
	})

	t.Run("regardless of other inputs", func(t *testing.T) {
		for _, v := range []float64{-1e6, -1, 0, 0.5, 1e9} {
			assert.False(t, AltmanZScore(v, v, v, v, 0, v, 1000).IsDefined())
			assert.False(t, AltmanZScore(v, v, v, v, 1000, v, 0).IsDefined())
		}
	})
}

func TestAltmanZScore_RoundsOnlyTheSum(t *testing.T) {
	// Terms rounded one by one would be 0.375 + 0.438 + 1.031 + 0.188 + 0.313 = 2.345.
	in := ZScoreInputs{
		WorkingCapital:    5,
		RetainedEarnings:  5,
		EBIT:              5,
		MarketValueEquity: 5,
		TotalLiabilities:  16,
		Sales:             5,
		TotalAssets:       16,
	}

	c, ok := in.Components()
	require.True(t, ok)
	assert.Equal(t, 2.34375, c.Sum())

	z, ok := in.Score().Get()
	require.True(t, ok)
	assert.Equal(t, 2.344, z)
}

func TestAltmanZScore_ThreeDecimals(t *testing.T) {
	in := ZScoreInputs{
		WorkingCapital:    123457,
		RetainedEarnings:  98765,
		EBIT:              54321,
		MarketValueEquity: 777777,
		TotalLiabilities:  333333,
		Sales:             1234567,
		TotalAssets:       999999,
	}

	c, _ := in.Components()
	z, ok := in.Score().Get()
	require.True(t, ok)
	assert.InDelta(t, c.Sum(), z, 0.0005)
	assert.Equal(t, z, roundScore(z))
}

func TestAltmanZScore_HalfwayValues(t *testing.T) {
	// Only sales/TA contributes, so Z equals sales.
	tests := []struct {
		sales float64
		want  float64
	}{
		{2.0625, 2.062},   // exact tie, rounds to even
		{2.0635, 2.063},   // stored below the tie
		{4.0625, 4.062},   // exact tie
		{-2.0625, -2.062}, // exact tie, negative
		{1.0005, 1.0},     // stored below the tie
		{0.0125, 0.013},   // stored above the tie
		{2.6459999999999995, 2.646},
	}
	for _, tt := range tests {
		got := AltmanZScore(0, 0, 0, 0, 1, tt.sales, 1)
		assert.Equal(t, models.Some(tt.want), got, "sales=%v", tt.sales)
	}
}

func TestAltmanZScore_Deterministic(t *testing.T) {
	first := AltmanZScore(200000, 150000, 120000, 500000, 300000, 800000, 1000000)
	second := AltmanZScore(200000, 150000, 120000, 500000, 300000, 800000, 1000000)
	assert.Equal(t, first, second)
}

func TestInputsFrom(t *testing.T) {
	f := models.Financials{
		WorkingCapital:    200000,
		RetainedEarnings:  150000,
		EBIT:              120000,
		MarketValueEquity: 500000,
		TotalLiabilities:  300000,
		Sales:             800000,
		TotalAssets:       1000000,
		CurrentAssets:     999, // ignored
	}
	assert.Equal(t, models.Some(2.646), InputsFrom(f).Score())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		z    models.Optional
		want models.RiskClass
	}{
		{"absent score", models.None(), models.RiskInsufficientData},
		{"high risk", models.Some(1.5), models.RiskHigh},
		{"negative score", models.Some(-2.3), models.RiskHigh},
		{"just below distress boundary", models.Some(1.809), models.RiskHigh},
		{"distress boundary is moderate", models.Some(1.81), models.RiskModerate},
		{"moderate risk", models.Some(2.5), models.RiskModerate},
		{"just below safe boundary", models.Some(2.989), models.RiskModerate},
		{"safe boundary is low", models.Some(2.99), models.RiskLow},
		{"low risk", models.Some(3.2), models.RiskLow},
		{"zero score", models.Some(0), models.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.z))
		})
	}
}

func TestClassify_Labels(t *testing.T) {
	assert.Equal(t, "insufficient data", string(Classify(models.None())))
	assert.Equal(t, "high risk (possible bankruptcy)", string(Classify(models.Some(1.5))))
	assert.Equal(t, "moderate risk (grey zone)", string(Classify(models.Some(2.5))))
	assert.Equal(t, "low risk (healthy)", string(Classify(models.Some(3.2))))
}

func TestClassify_ZScorePipeline(t *testing.T) {
	assert.Equal(t, models.RiskModerate, Classify(AltmanZScore(200000, 150000, 120000, 500000, 300000, 800000, 1000000)))
	assert.Equal(t, models.RiskHigh, Classify(AltmanZScore(10000, 5000, 3000, 20000, 50000, 10000, 100000)))
	assert.Equal(t, models.RiskInsufficientData, Classify(AltmanZScore(10000, 5000, 3000, 20000, 50000, 10000, 0)))
}
