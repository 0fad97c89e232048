package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// SettingSource represents where an effective setting comes from.
type SettingSource string

const (
	SourceEnv     SettingSource = "env"
	SourceConfig  SettingSource = "config"
	SourceDefault SettingSource = "default"
)

// Setting describes one effective configuration value.
type Setting struct {
	Key    string        `json:"key"`
	Value  string        `json:"value"`
	Source SettingSource `json:"source"`
	EnvVar string        `json:"env_var"`
}

var accessors = map[string]func(*Config) any{
	"analysis.estimate_missing":    func(c *Config) any { return c.Analysis.EstimateMissing },
	"analysis.inventory_share":     func(c *Config) any { return c.Analysis.InventoryShare },
	"analysis.cost_of_sales_share": func(c *Config) any { return c.Analysis.CostOfSalesShare },
	"analysis.cache_ttl":           func(c *Config) any { return c.Analysis.CacheTTL },
	"batch.concurrency":            func(c *Config) any { return c.Batch.Concurrency },
	"report.format":                func(c *Config) any { return c.Report.Format },
	"report.author":                func(c *Config) any { return c.Report.Author },
	"report.output_dir":            func(c *Config) any { return c.Report.OutputDir },
	"report.currency_symbol":       func(c *Config) any { return c.Report.CurrencySymbol },
	"logging.level":                func(c *Config) any { return c.Logging.Level },
	"logging.format":               func(c *Config) any { return c.Logging.Format },
}

// Settings lists every setting with its effective value and source, sorted
// by key.
func Settings(cfg *Config) []Setting {
	keys := make([]string, 0, len(accessors))
	for k := range accessors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Setting, 0, len(keys))
	for _, k := range keys {
		out = append(out, checkSetting(k, accessors[k](cfg), defaults[k]))
	}
	return out
}

// EnvVar returns the environment variable that overrides key.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// checkSetting works out whether a value came from the environment, a config
// file, or the built-in default.
func checkSetting(key string, value, def any) Setting {
	s := Setting{
		Key:    key,
		Value:  fmt.Sprint(value),
		EnvVar: EnvVar(key),
	}

	switch {
	case os.Getenv(s.EnvVar) != "":
		s.Source = SourceEnv
	case s.Value != fmt.Sprint(def):
		s.Source = SourceConfig
	default:
		s.Source = SourceDefault
	}
	return s
}
