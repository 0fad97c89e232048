package datasource

import (
	"fmt"
	"sort"

	"github.com/seenimoa/riskscanner/pkg/models"
)

// ErrUnknownSample is returned by Sample for a name it does not know.
var ErrUnknownSample = fmt.Errorf("unknown sample company")

// samples are built-in demonstration companies. The distressed one reports a
// net loss.
var samples = map[string]func() models.Company{
	"healthy": func() models.Company {
		return models.Company{
			Name:     "Healthy Manufacturing Co.",
			Period:   "FY2024",
			Currency: "USD",
			Figures: models.Statement{
				CurrentAssets:      models.Float(400000),
				CurrentLiabilities: models.Float(200000),
				TotalLiabilities:   models.Float(400000),
				Equity:             models.Float(600000),
				Sales:              models.Float(2000000),
				NetIncome:          models.Float(150000),
				EBIT:               models.Float(250000),
				TotalAssets:        models.Float(1000000),
				WorkingCapital:     models.Float(200000),
				RetainedEarnings:   models.Float(300000),
				MarketValueEquity:  models.Float(650000),
				Inventories:        models.Float(120000),
				AverageInventory:   models.Float(100000),
				CostOfSales:        models.Float(1200000),
			},
		}
	},
	"distressed": func() models.Company {
		return models.Company{
			Name:     "Distressed Retail Co.",
			Period:   "FY2024",
			Currency: "USD",
			Figures: models.Statement{
				CurrentAssets:      models.Float(250000),
				CurrentLiabilities: models.Float(240000),
				TotalLiabilities:   models.Float(800000),
				Equity:             models.Float(200000),
				Sales:              models.Float(800000),
				NetIncome:          models.Float(-50000),
				EBIT:               models.Float(30000),
				TotalAssets:        models.Float(1000000),
				WorkingCapital:     models.Float(10000),
				RetainedEarnings:   models.Float(50000),
				MarketValueEquity:  models.Float(220000),
				Inventories:        models.Float(100000),
				AverageInventory:   models.Float(95000),
				CostOfSales:        models.Float(500000),
			},
		}
	},
}

// Sample returns a fresh copy of a built-in company.
func Sample(name string) (*models.Company, error) {
	build, ok := samples[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownSample, name, SampleNames())
	}
	c := build()
	return &c, nil
}

// SampleNames lists the built-in companies, sorted.
func SampleNames() []string {
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
