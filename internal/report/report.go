// Package report renders a risk assessment for people and for tooling: a
// plain-text summary for the terminal, CSV and JSON for spreadsheets and
// scripts, and Markdown, HTML and PDF documents.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/seenimoa/riskscanner/internal/analysis/risk"
	"github.com/seenimoa/riskscanner/pkg/models"
	"github.com/seenimoa/riskscanner/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// Formats & configuration
// ════════════════════════════════════════════════════════════════════

// Format specifies the output format.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
)

// Formats returns every supported format in display order.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatCSV, FormatMarkdown, FormatHTML, FormatPDF}
}

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = fmt.Errorf("unknown report format")

// ErrNilAssessment is returned when there is nothing to render.
var ErrNilAssessment = fmt.Errorf("assessment is nil")

// ParseFormat resolves a format name, case-insensitively. "md" and "txt"
// are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "md":
		return FormatMarkdown, nil
	case "txt", "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatCSV, FormatMarkdown, FormatHTML, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Extension returns the conventional file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatText:
		return ".txt"
	default:
		return "." + string(f)
	}
}

// Binary reports whether the format should not be written to a terminal.
func (f Format) Binary() bool { return f == FormatPDF }

// Config controls report generation behaviour.
type Config struct {
	Format         Format           // output format (default: text)
	Title          string           // custom report title (optional)
	Author         string           // author name (optional)
	CurrencySymbol string           // used when the company has no currency code
	Now            func() time.Time // clock (default: time.Now)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Format:         FormatText,
		CurrencySymbol: "$",
		Now:            time.Now,
	}
}

// ════════════════════════════════════════════════════════════════════
// Report data, flattened for rendering
// ════════════════════════════════════════════════════════════════════

// Report is the render model shared by every format.
type Report struct {
	ID          string
	Title       string
	Author      string
	GeneratedAt time.Time

	Company  string
	Period   string
	Currency string
	Symbol   string

	Groups     []RatioGroup
	Inputs     []InputRow
	Components []ComponentRow

	ZScore     models.Optional
	Risk       models.RiskClass
	Zone       string
	Estimated  []string
	AssessedAt time.Time

	Assessment *models.Assessment
}

// RatioGroup is one block of related ratios.
type RatioGroup struct {
	Name string
	Rows []RatioRow
}

// RatioRow is one formatted ratio.
type RatioRow struct {
	Key   string
	Label string
	Value string // formatted, "n/a" when absent
	Raw   models.Optional
}

// InputRow is one input figure.
type InputRow struct {
	Key       string
	Label     string
	Value     string
	Estimated bool
}

// ComponentRow is one weighted Z-Score term.
type ComponentRow struct {
	Label  string
	Weight float64
	Value  float64
}

// ZScoreText formats the score with three decimals, or "n/a".
func (r *Report) ZScoreText() string {
	z, ok := r.ZScore.Get()
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", z)
}

// HasEstimates reports whether any input figure was estimated.
func (r *Report) HasEstimates() bool { return len(r.Estimated) > 0 }

// Build flattens an assessment into the render model. Every call gets a new
// report ID.
func Build(a *models.Assessment, cfg Config) (*Report, error) {
	if a == nil {
		return nil, ErrNilAssessment
	}
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}
	fallback := cfg.CurrencySymbol
	if fallback == "" {
		fallback = "$"
	}

	r := &Report{
		ID:          uuid.NewString(),
		Title:       cfg.Title,
		Author:      cfg.Author,
		GeneratedAt: now().UTC(),
		Company:     a.Company,
		Period:      a.Period,
		Currency:    a.Currency,
		Symbol:      utils.CurrencySymbol(a.Currency, fallback),
		ZScore:      a.ZScore,
		Risk:        a.Risk,
		Zone:        a.Risk.Zone(),
		Estimated:   a.Estimated,
		AssessedAt:  a.AssessedAt,
		Assessment:  a,
	}
	if r.Title == "" {
		r.Title = "Risk Assessment: " + a.Company
	}

	r.Groups = buildGroups(a.Ratios)
	r.Inputs = buildInputs(a.Inputs, a.Estimated, r.Symbol)
	r.Components = buildComponents(a.Inputs)
	return r, nil
}

// ════════════════════════════════════════════════════════════════════
// Generate
// ════════════════════════════════════════════════════════════════════

// Render writes an assessment in cfg.Format to w.
func Render(w io.Writer, a *models.Assessment, cfg Config) error {
	r, err := Build(a, cfg)
	if err != nil {
		return err
	}
	return r.Write(w, cfg.Format)
}

// Generate renders an assessment in cfg.Format and returns the bytes.
func Generate(a *models.Assessment, cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, a, cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders the report in format f.
func (r *Report) Write(w io.Writer, f Format) error {
	switch f {
	case FormatText, "":
		_, err := io.WriteString(w, r.Text())
		return err
	case FormatJSON:
		return r.WriteJSON(w)
	case FormatCSV:
		return r.WriteCSV(w)
	case FormatMarkdown:
		_, err := io.WriteString(w, r.Markdown())
		return err
	case FormatHTML:
		return r.WriteHTML(w)
	case FormatPDF:
		return r.WritePDF(w)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// ════════════════════════════════════════════════════════════════════
// Internal: build rows
// ════════════════════════════════════════════════════════════════════

type valueKind int

const (
	kindRatio valueKind = iota
	kindPercent
	kindDays
)

type ratioDef struct {
	key   string
	label string
	kind  valueKind
	get   func(models.RatioSet) models.Optional
}

var ratioGroups = []struct {
	name string
	defs []ratioDef
}{
	{"Liquidity", []ratioDef{
		{"current_ratio", "Current ratio", kindRatio, func(r models.RatioSet) models.Optional { return r.CurrentRatio }},
		{"quick_ratio", "Quick ratio", kindRatio, func(r models.RatioSet) models.Optional { return r.QuickRatio }},
		{"cash_ratio", "Cash ratio", kindRatio, func(r models.RatioSet) models.Optional { return r.CashRatio }},
	}},
	{"Solvency", []ratioDef{
		{"debt_ratio", "Debt ratio", kindRatio, func(r models.RatioSet) models.Optional { return r.DebtRatio }},
		{"leverage_ratio", "Leverage ratio", kindRatio, func(r models.RatioSet) models.Optional { return r.LeverageRatio }},
	}},
	{"Profitability", []ratioDef{
		{"net_margin", "Net margin", kindPercent, func(r models.RatioSet) models.Optional { return r.NetMargin }},
		{"return_on_equity", "Return on equity", kindPercent, func(r models.RatioSet) models.Optional { return r.ReturnOnEquity }},
		{"return_on_assets", "Return on assets", kindPercent, func(r models.RatioSet) models.Optional { return r.ReturnOnAssets }},
	}},
	{"Efficiency", []ratioDef{
		{"asset_turnover", "Asset turnover", kindRatio, func(r models.RatioSet) models.Optional { return r.AssetTurnover }},
		{"inventory_turnover", "Inventory turnover", kindRatio, func(r models.RatioSet) models.Optional { return r.InventoryTurnover }},
		{"days_inventory", "Days inventory outstanding", kindDays, func(r models.RatioSet) models.Optional { return r.DaysInventory }},
		{"days_receivable", "Days sales outstanding", kindDays, func(r models.RatioSet) models.Optional { return r.DaysReceivable }},
		{"days_payable", "Days payable outstanding", kindDays, func(r models.RatioSet) models.Optional { return r.DaysPayable }},
		{"cash_conversion_cycle", "Cash conversion cycle", kindDays, func(r models.RatioSet) models.Optional { return r.CashConversionCycle }},
	}},
}

func buildGroups(rs models.RatioSet) []RatioGroup {
	groups := make([]RatioGroup, len(ratioGroups))
	for i, g := range ratioGroups {
		rows := make([]RatioRow, len(g.defs))
		for j, d := range g.defs {
			v := d.get(rs)
			rows[j] = RatioRow{Key: d.key, Label: d.label, Value: formatValue(v, d.kind), Raw: v}
		}
		groups[i] = RatioGroup{Name: g.name, Rows: rows}
	}
	return groups
}

func formatValue(v models.Optional, kind valueKind) string {
	x, ok := v.Get()
	if !ok {
		return "n/a"
	}
	switch kind {
	case kindPercent:
		return utils.FormatPercent(x)
	case kindDays:
		return utils.FormatDays(x)
	default:
		return utils.FormatRatio(x)
	}
}

var inputDefs = []struct {
	key   string
	label string
	get   func(models.Financials) float64
}{
	{"current_assets", "Current assets", func(f models.Financials) float64 { return f.CurrentAssets }},
	{"current_liabilities", "Current liabilities", func(f models.Financials) float64 { return f.CurrentLiabilities }},
	{"cash", "Cash", func(f models.Financials) float64 { return f.Cash }},
	{"short_term_investments", "Short-term investments", func(f models.Financials) float64 { return f.ShortTermInvestments }},
	{"inventories", "Inventories", func(f models.Financials) float64 { return f.Inventories }},
	{"average_inventory", "Average inventory", func(f models.Financials) float64 { return f.AverageInventory }},
	{"receivables", "Receivables", func(f models.Financials) float64 { return f.Receivables }},
	{"payables", "Payables", func(f models.Financials) float64 { return f.Payables }},
	{"total_assets", "Total assets", func(f models.Financials) float64 { return f.TotalAssets }},
	{"total_liabilities", "Total liabilities", func(f models.Financials) float64 { return f.TotalLiabilities }},
	{"equity", "Equity", func(f models.Financials) float64 { return f.Equity }},
	{"market_value_equity", "Market value of equity", func(f models.Financials) float64 { return f.MarketValueEquity }},
	{"sales", "Sales", func(f models.Financials) float64 { return f.Sales }},
	{"credit_sales", "Credit sales", func(f models.Financials) float64 { return f.CreditSales }},
	{"credit_purchases", "Credit purchases", func(f models.Financials) float64 { return f.CreditPurchases }},
	{"cost_of_sales", "Cost of sales", func(f models.Financials) float64 { return f.CostOfSales }},
	{"net_income", "Net income", func(f models.Financials) float64 { return f.NetIncome }},
	{"ebit", "EBIT", func(f models.Financials) float64 { return f.EBIT }},
	{"working_capital", "Working capital", func(f models.Financials) float64 { return f.WorkingCapital }},
	{"retained_earnings", "Retained earnings", func(f models.Financials) float64 { return f.RetainedEarnings }},
}

func buildInputs(f models.Financials, estimated []string, symbol string) []InputRow {
	est := make(map[string]bool, len(estimated))
	for _, name := range estimated {
		est[name] = true
	}
	rows := make([]InputRow, len(inputDefs))
	for i, d := range inputDefs {
		rows[i] = InputRow{
			Key:       d.key,
			Label:     d.label,
			Value:     utils.FormatAmount(d.get(f), symbol),
			Estimated: est[d.key],
		}
	}
	return rows
}

func buildComponents(f models.Financials) []ComponentRow {
	c, ok := risk.InputsFrom(f).Components()
	if !ok {
		return nil
	}
	return []ComponentRow{
		{Label: "Working capital / total assets", Weight: risk.WeightWorkingCapital, Value: c.WorkingCapital},
		{Label: "Retained earnings / total assets", Weight: risk.WeightRetainedEarnings, Value: c.RetainedEarnings},
		{Label: "EBIT / total assets", Weight: risk.WeightEBIT, Value: c.EBIT},
		{Label: "Market equity / total liabilities", Weight: risk.WeightMarketEquity, Value: c.MarketEquity},
		{Label: "Sales / total assets", Weight: risk.WeightSales, Value: c.Sales},
	}
}

// ════════════════════════════════════════════════════════════════════
// Plain-text renderer
// ════════════════════════════════════════════════════════════════════

// Text renders the terminal report.
func (r *Report) Text() string {
	var sb strings.Builder
	line := strings.Repeat("═", 60)
	thinLine := strings.Repeat("─", 60)

	sb.WriteString("\n" + line + "\n")
	fmt.Fprintf(&sb, "  %s\n", r.Title)
	fmt.Fprintf(&sb, "  %s\n", r.headerLine())
	fmt.Fprintf(&sb, "  Generated: %s | Report: %s\n", r.GeneratedAt.Format("2006-01-02 15:04 MST"), r.ID)
	if r.Author != "" {
		fmt.Fprintf(&sb, "  Author: %s\n", r.Author)
	}
	sb.WriteString(line + "\n")

	for _, g := range r.Groups {
		fmt.Fprintf(&sb, "\n  ■ %s\n", strings.ToUpper(g.Name))
		for _, row := range g.Rows {
			fmt.Fprintf(&sb, "    %-28s %s\n", row.Label, row.Value)
		}
	}
	sb.WriteString(thinLine + "\n")

	sb.WriteString("\n  ■ ALTMAN Z-SCORE\n")
	for _, c := range r.Components {
		fmt.Fprintf(&sb, "    %-34s %7.3f  (x%.1f)\n", c.Label, c.Value, c.Weight)
	}
	fmt.Fprintf(&sb, "    %-34s %7s\n", "Z-Score", r.ZScoreText())
	fmt.Fprintf(&sb, "    Classification: %s\n", r.Risk)
	sb.WriteString(thinLine + "\n")

	sb.WriteString("\n  ■ INPUTS\n")
	for _, in := range r.Inputs {
		mark := ""
		if in.Estimated {
			mark = " *"
		}
		fmt.Fprintf(&sb, "    %-28s %18s%s\n", in.Label, in.Value, mark)
	}
	if r.HasEstimates() {
		sb.WriteString("    * estimated from default assumptions\n")
	}

	sb.WriteString("\n" + line + "\n")
	sb.WriteString("  Zones: distress < 1.81 <= grey < 2.99 <= safe\n")
	sb.WriteString(line + "\n")
	return sb.String()
}

func (r *Report) headerLine() string {
	parts := []string{r.Company}
	if r.Period != "" {
		parts = append(parts, "Period: "+r.Period)
	}
	if r.Currency != "" {
		parts = append(parts, "Currency: "+r.Currency)
	}
	return strings.Join(parts, " | ")
}
