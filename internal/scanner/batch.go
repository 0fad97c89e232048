package scanner

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/riskscanner/pkg/models"
)

// BatchResult is the outcome for one input of a batch run. Exactly one of
// Assessment and Err is set.
type BatchResult struct {
	Source     string             `json:"source"`
	Assessment *models.Assessment `json:"assessment,omitempty"`
	Err        error              `json:"-"`
}

// OK reports whether the input was assessed.
func (r BatchResult) OK() bool { return r.Err == nil }

// LoadFunc reads one company from a source such as a file path.
type LoadFunc func(source string) (*models.Company, error)

// Batch assesses companies concurrently with at most concurrency workers.
// Results keep the input order. A failing company does not stop the others:
// its error is recorded in its result. The returned error is non-nil only
// when ctx is cancelled.
func (s *Scanner) Batch(ctx context.Context, companies []models.Company, concurrency int) ([]BatchResult, error) {
	return s.run(ctx, len(companies), concurrency, func(i int) (string, *models.Company, error) {
		c := companies[i]
		return c.Name, &c, nil
	})
}

// BatchSources loads and assesses every source concurrently. Load failures
// are recorded like assessment failures.
func (s *Scanner) BatchSources(ctx context.Context, sources []string, load LoadFunc, concurrency int) ([]BatchResult, error) {
	return s.run(ctx, len(sources), concurrency, func(i int) (string, *models.Company, error) {
		c, err := load(sources[i])
		if err != nil {
			return sources[i], nil, fmt.Errorf("load %s: %w", sources[i], err)
		}
		return sources[i], c, nil
	})
}

func (s *Scanner) run(ctx context.Context, n, concurrency int, input func(i int) (string, *models.Company, error)) ([]BatchResult, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]BatchResult, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			source, c, err := input(i)
			results[i].Source = source
			if err != nil {
				results[i].Err = err
				return nil // non-fatal
			}
			a, err := s.Assess(gctx, *c)
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Assessment = a
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	s.logger.Info().Int("companies", n).Int("failed", failed).Int("concurrency", concurrency).Msg("batch complete")
	return results, nil
}
