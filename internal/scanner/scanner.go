// Package scanner runs the risk assessment pipeline for one or many
// companies: validate, resolve missing figures, compute ratios and the
// Z-Score, classify. Results are memoized by input fingerprint.
package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/seenimoa/riskscanner/internal/analysis/fundamental"
	"github.com/seenimoa/riskscanner/internal/analysis/risk"
	"github.com/seenimoa/riskscanner/internal/infra"
	"github.com/seenimoa/riskscanner/pkg/models"
)

// Analyze computes the ratios, Z-Score and risk class for a resolved input
// set. It is pure: the returned assessment carries no company metadata or
// timestamp.
func Analyze(f models.Financials) models.Assessment {
	z := risk.InputsFrom(f).Score()
	return models.Assessment{
		Inputs: f,
		Ratios: fundamental.ComputeRatios(f),
		ZScore: z,
		Risk:   risk.Classify(z),
	}
}

// Scanner assesses companies with a shared cache and estimation policy.
// It is safe for concurrent use.
type Scanner struct {
	logger    zerolog.Logger
	cache     *infra.Cache[models.Assessment]
	estimates Estimates
	estimate  bool
	now       func() time.Time
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Scanner) { s.logger = l.With().Str("component", "scanner").Logger() }
}

// WithCache sets the memoization cache. Pass nil to disable caching.
func WithCache(c *infra.Cache[models.Assessment]) Option {
	return func(s *Scanner) { s.cache = c }
}

// WithEstimates sets the shares used to derive missing figures.
func WithEstimates(e Estimates) Option {
	return func(s *Scanner) { s.estimates = e }
}

// WithEstimation turns derivation of missing figures on or off.
func WithEstimation(enabled bool) Option {
	return func(s *Scanner) { s.estimate = enabled }
}

// New creates a Scanner. By default it estimates missing figures with
// DefaultEstimates and caches results for five minutes.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		logger:    zerolog.Nop(),
		cache:     infra.NewCache[models.Assessment](5 * time.Minute),
		estimates: DefaultEstimates(),
		estimate:  true,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CacheStats reports memoization usage. It is zero when caching is disabled.
func (s *Scanner) CacheStats() infra.CacheStats {
	if s.cache == nil {
		return infra.CacheStats{}
	}
	return s.cache.Stats()
}

// Assess validates and scores one company.
func (s *Scanner) Assess(ctx context.Context, c models.Company) (*models.Assessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := s.logger.With().Str("company", c.Name).Str("period", c.Period).Logger()

	f, estimated, err := Resolve(c.Figures, s.estimates, s.estimate)
	if err != nil {
		log.Warn().Err(err).Msg("rejected statement")
		return nil, fmt.Errorf("assess %q: %w", c.Name, err)
	}
	if len(estimated) > 0 {
		log.Info().Strs("fields", estimated).Msg("estimated missing figures")
	}

	a, hit := s.analyze(f)
	a.Company = c.Name
	a.Period = c.Period
	a.Currency = c.Currency
	a.Estimated = estimated
	a.AssessedAt = s.now().UTC()

	log.Debug().
		Bool("cache_hit", hit).
		Str("z_score", a.ZScore.String()).
		Str("risk", string(a.Risk)).
		Msg("assessed")

	return &a, nil
}

func (s *Scanner) analyze(f models.Financials) (models.Assessment, bool) {
	if s.cache == nil {
		return Analyze(f), false
	}
	return s.cache.GetOrCompute(Fingerprint(f), func() models.Assessment { return Analyze(f) })
}

// Fingerprint returns the cache key for a resolved input set.
func Fingerprint(f models.Financials) string {
	fp := infra.NewFingerprint()
	for _, v := range figures(f) {
		fp.Float(v)
	}
	return fp.Key()
}

func figures(f models.Financials) []float64 {
	return []float64{
		f.CurrentAssets, f.CurrentLiabilities, f.Cash, f.ShortTermInvestments,
		f.Inventories, f.AverageInventory, f.Receivables, f.Payables,
		f.TotalAssets, f.TotalLiabilities, f.Equity, f.MarketValueEquity,
		f.Sales, f.CreditSales, f.CreditPurchases, f.CostOfSales,
		f.NetIncome, f.EBIT, f.WorkingCapital, f.RetainedEarnings,
	}
}
