// Package config handles configuration loading for riskscan.
// It supports YAML config files with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// RISKSCAN_BATCH_CONCURRENCY.
const EnvPrefix = "RISKSCAN"

// Config represents the complete application configuration.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	Batch    BatchConfig    `mapstructure:"batch"    yaml:"batch"`
	Report   ReportConfig   `mapstructure:"report"   yaml:"report"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// AnalysisConfig holds input resolution and caching settings.
type AnalysisConfig struct {
	EstimateMissing  bool    `mapstructure:"estimate_missing"    yaml:"estimate_missing"`
	InventoryShare   float64 `mapstructure:"inventory_share"     yaml:"inventory_share"`     // of current assets
	CostOfSalesShare float64 `mapstructure:"cost_of_sales_share" yaml:"cost_of_sales_share"` // of sales
	CacheTTL         int     `mapstructure:"cache_ttl"           yaml:"cache_ttl"`           // seconds, 0 = no expiry
}

// CacheDuration returns CacheTTL as a time.Duration.
func (a AnalysisConfig) CacheDuration() time.Duration {
	return time.Duration(a.CacheTTL) * time.Second
}

// BatchConfig holds multi-company run settings.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// ReportConfig holds report rendering settings.
type ReportConfig struct {
	Format         string `mapstructure:"format"          yaml:"format"` // "text", "json", "csv", "markdown", "html", "pdf"
	Author         string `mapstructure:"author"          yaml:"author"`
	OutputDir      string `mapstructure:"output_dir"      yaml:"output_dir"`
	CurrencySymbol string `mapstructure:"currency_symbol" yaml:"currency_symbol"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// ReportFormats lists the accepted report.format values. md and txt are
// aliases of markdown and text, and an empty value means text.
var ReportFormats = []string{"text", "json", "csv", "markdown", "html", "pdf", "md", "txt"}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.riskscanner/config.yaml (home directory)
//  3. /etc/riskscanner/config.yaml (system)
//
// A .env file in the working directory is loaded first, if present.
// Environment variables override config file values.
// Format: RISKSCAN_<SECTION>_<KEY>, e.g., RISKSCAN_REPORT_FORMAT
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".riskscanner"))
	v.AddConfigPath("/etc/riskscanner")

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

var defaults = map[string]any{
	// Analysis defaults
	"analysis.estimate_missing":    true,
	"analysis.inventory_share":     0.30,
	"analysis.cost_of_sales_share": 0.60,
	"analysis.cache_ttl":           300, // 5 minutes

	// Batch defaults
	"batch.concurrency": 4,

	// Report defaults
	"report.format":          "text",
	"report.author":          "",
	"report.output_dir":      ".",
	"report.currency_symbol": "$",

	// Logging defaults
	"logging.level":  "info",
	"logging.format": "text",
}

// Validate rejects settings the scanner cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Analysis.InventoryShare < 0 || c.Analysis.InventoryShare > 1 {
		errs = append(errs, fmt.Errorf("analysis.inventory_share must be within [0, 1], got %v", c.Analysis.InventoryShare))
	}
	if c.Analysis.CostOfSalesShare < 0 || c.Analysis.CostOfSalesShare > 1 {
		errs = append(errs, fmt.Errorf("analysis.cost_of_sales_share must be within [0, 1], got %v", c.Analysis.CostOfSalesShare))
	}
	if c.Analysis.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("analysis.cache_ttl must not be negative, got %d", c.Analysis.CacheTTL))
	}
	if c.Batch.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("batch.concurrency must be at least 1, got %d", c.Batch.Concurrency))
	}
	if !isReportFormat(c.Report.Format) {
		errs = append(errs, fmt.Errorf("report.format %q is not one of %s", c.Report.Format, strings.Join(ReportFormats, ", ")))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q is not text or json", c.Logging.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func isReportFormat(f string) bool {
	f = strings.TrimSpace(f)
	if f == "" {
		return true
	}
	for _, known := range ReportFormats {
		if strings.EqualFold(f, known) {
			return true
		}
	}
	return false
}

// loadDotEnv loads ./.env into the process environment. Existing variables
// win and a missing file is not an error.
func loadDotEnv() error {
	err := godotenv.Load(".env")
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("error reading .env: %w", err)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
