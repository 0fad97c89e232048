package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/seenimoa/riskscanner/internal/config"
	"github.com/seenimoa/riskscanner/internal/datasource"
	"github.com/seenimoa/riskscanner/internal/report"
	"github.com/seenimoa/riskscanner/internal/validate"
	"github.com/seenimoa/riskscanner/pkg/models"
)

// --- Analyze Command ---

func (a *app) analyzeCmd() *cobra.Command {
	var (
		out        reportFlags
		sets       []string
		noEstimate bool
		meta       models.Company
	)

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Assess one company from a statement file or --set figures",
		Example: `  riskscan analyze acme.yaml
  riskscan analyze acme.html --format pdf --out acme.pdf
  riskscan analyze --name Acme --set current_assets=400K --set current_liabilities=200K \
    --set total_assets=1M --set total_liabilities=400K --set equity=600K \
    --set sales=2M --set net_income=150K --set ebit=250K`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := parseSets(sets)
			if err != nil {
				return err
			}

			var c *models.Company
			switch {
			case len(args) == 1:
				c, err = datasource.NewLoader(a.logger).Load(args[0])
				if err != nil {
					return err
				}
				if err := applySets(&c.Figures, overrides); err != nil {
					return err
				}
			case len(overrides) > 0:
				st, err := validate.FieldSet(overrides)
				if err != nil {
					return err
				}
				c = &models.Company{Name: "Unnamed company", Figures: *st}
			default:
				return fmt.Errorf("provide a statement file or --set label=value figures")
			}
			mergeMeta(c, meta)

			assessment, err := a.scanner(noEstimate).Assess(cmd.Context(), *c)
			if err != nil {
				return err
			}
			return a.writeReport(cmd, assessment, out)
		},
	}

	out.register(cmd)
	cmd.Flags().StringArrayVar(&sets, "set", nil, "figure as label=value (repeatable), e.g. --set ventas=2M")
	cmd.Flags().BoolVar(&noEstimate, "no-estimate", false, "fail instead of estimating missing figures")
	cmd.Flags().StringVar(&meta.Name, "name", "", "company name")
	cmd.Flags().StringVar(&meta.Period, "period", "", "reporting period, e.g. FY2024")
	cmd.Flags().StringVar(&meta.Currency, "currency", "", "ISO currency code, e.g. USD")
	return cmd
}

// parseSets splits label=value pairs. Later pairs win.
func parseSets(sets []string) (map[string]string, error) {
	if len(sets) == 0 {
		return nil, nil
	}
	m := make(map[string]string, len(sets))
	for _, s := range sets {
		label, value, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(label) == "" {
			return nil, fmt.Errorf("invalid --set %q: want label=value", s)
		}
		m[strings.TrimSpace(label)] = value
	}
	return m, nil
}

// applySets overlays command-line figures on a loaded statement.
func applySets(st *models.Statement, overrides map[string]string) error {
	labels := make([]string, 0, len(overrides))
	for label := range overrides {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var errs validate.Errors
	for _, label := range labels {
		name, ok := validate.LineItem(label)
		if !ok {
			errs = append(errs, &validate.FieldError{Field: label, Err: validate.ErrUnknownField})
			continue
		}
		v, err := validate.ParseNumber(overrides[label])
		if err != nil {
			errs = append(errs, &validate.FieldError{Field: name, Err: err})
			continue
		}
		validate.Set(st, name, v)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func mergeMeta(c *models.Company, meta models.Company) {
	if meta.Name != "" {
		c.Name = meta.Name
	}
	if meta.Period != "" {
		c.Period = meta.Period
	}
	if meta.Currency != "" {
		c.Currency = meta.Currency
	}
}

// --- Sample Command ---

func (a *app) sampleCmd() *cobra.Command {
	var (
		out        reportFlags
		noEstimate bool
		export     string
	)

	cmd := &cobra.Command{
		Use:       "sample <" + strings.Join(datasource.SampleNames(), "|") + ">",
		Short:     "Assess a built-in sample company",
		Args:      cobra.ExactArgs(1),
		ValidArgs: datasource.SampleNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := datasource.Sample(args[0])
			if err != nil {
				return err
			}
			if export != "" {
				if err := datasource.Save(export, c); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Sample written to %s\n", export)
			}

			assessment, err := a.scanner(noEstimate).Assess(cmd.Context(), *c)
			if err != nil {
				return err
			}
			return a.writeReport(cmd, assessment, out)
		},
	}

	out.register(cmd)
	cmd.Flags().BoolVar(&noEstimate, "no-estimate", false, "fail instead of estimating missing figures")
	cmd.Flags().StringVar(&export, "export", "", "also save the sample statement to this file (.json, .yaml, .toml, .hjson)")
	return cmd
}

// --- Batch Command ---

func (a *app) batchCmd() *cobra.Command {
	var (
		format      string
		concurrency int
		noEstimate  bool
	)

	cmd := &cobra.Command{
		Use:   "batch <files...>",
		Short: "Assess many statement files concurrently, one line per company",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if concurrency <= 0 {
				concurrency = a.cfg.Batch.Concurrency
			}
			loader := datasource.NewLoader(a.logger)
			results, err := a.scanner(noEstimate).BatchSources(cmd.Context(), args, loader.Load, concurrency)
			if err != nil {
				return err
			}

			rows := make([]report.SummaryRow, len(results))
			failed := 0
			for i, r := range results {
				rows[i] = report.SummaryRow{Source: r.Source, Assessment: r.Assessment, Err: r.Err}
				if !r.OK() {
					failed++
				}
			}

			w := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "text", "":
				err = report.WriteSummaryText(w, rows)
			case "csv":
				err = report.WriteSummaryCSV(w, rows)
			case "json":
				err = report.WriteSummaryJSON(w, rows)
			default:
				return fmt.Errorf("%w: %q (batch supports text, csv, json)", report.ErrUnknownFormat, format)
			}
			if err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d companies failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "summary format: text, csv, json")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "parallel assessments (default: batch.concurrency)")
	cmd.Flags().BoolVar(&noEstimate, "no-estimate", false, "fail instead of estimating missing figures")
	return cmd
}

// --- Status Command ---

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show effective configuration and supported formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			line := strings.Repeat("═", 60)

			fmt.Fprintln(out, line)
			fmt.Fprintln(out, "  riskscan: status")
			fmt.Fprintln(out, line)
			fmt.Fprintf(out, "  Version:       %s (%s)\n", version, commit)
			fmt.Fprintf(out, "  Time (UTC):    %s\n", time.Now().UTC().Format(time.RFC3339))
			fmt.Fprintln(out)

			fmt.Fprintln(out, "  Configuration:")
			for _, s := range config.Settings(a.cfg) {
				fmt.Fprintf(out, "    %-30s %-10v (%s, %s)\n", s.Key+":", s.Value, s.Source, s.EnvVar)
			}
			fmt.Fprintln(out)

			formats := make([]string, 0, len(report.Formats()))
			for _, f := range report.Formats() {
				formats = append(formats, string(f))
			}
			fmt.Fprintf(out, "  Input files:   %s\n", strings.Join(datasource.Extensions(), " "))
			fmt.Fprintf(out, "  Reports:       %s\n", strings.Join(formats, " "))
			fmt.Fprintf(out, "  Samples:       %s\n", strings.Join(datasource.SampleNames(), " "))

			fmt.Fprintf(out, "  Cache:         in memory, per process, ttl %s\n", a.cfg.Analysis.CacheDuration())
			fmt.Fprintln(out, line)
			return nil
		},
	}
}

// --- Report output ---

// reportFlags are the output flags shared by analyze and sample.
type reportFlags struct {
	format string
	out    string
	title  string
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "report format: text, json, csv, markdown, html, pdf (default: report.format)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "write the report to this file (default: stdout; pdf goes to report.output_dir)")
	cmd.Flags().StringVar(&f.title, "title", "", "custom report title")
}

// writeReport renders an assessment to stdout or a file. Binary formats are
// never written to the terminal.
func (a *app) writeReport(cmd *cobra.Command, assessment *models.Assessment, flags reportFlags) error {
	name := flags.format
	if name == "" {
		name = a.cfg.Report.Format
	}
	format, err := report.ParseFormat(name)
	if err != nil {
		return err
	}

	cfg := report.DefaultConfig()
	cfg.Format = format
	cfg.Title = flags.title
	cfg.Author = a.cfg.Report.Author
	if a.cfg.Report.CurrencySymbol != "" {
		cfg.CurrencySymbol = a.cfg.Report.CurrencySymbol
	}

	path := flags.out
	if path == "" && format.Binary() {
		path = filepath.Join(a.cfg.Report.OutputDir, slug(assessment.Company)+format.Extension())
	}
	if path == "" {
		return report.Render(cmd.OutOrStdout(), assessment, cfg)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	if err := report.Render(f, assessment, cfg); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing report file: %w", err)
	}

	a.logger.Info().Str("file", path).Str("format", string(format)).Msg("report written")
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
	return nil
}

// slug makes a file name from a company name.
func slug(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			dash = false
		case !dash && sb.Len() > 0:
			sb.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(sb.String(), "-")
	if s == "" {
		return "report"
	}
	return s
}
