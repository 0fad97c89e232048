package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/seenimoa/riskscanner/pkg/models"
	"github.com/seenimoa/riskscanner/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// Machine-readable renderers
// ════════════════════════════════════════════════════════════════════

type jsonComponent struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
	Value  float64 `json:"value"`
}

type jsonReport struct {
	ID          string             `json:"report_id"`
	Title       string             `json:"title"`
	Author      string             `json:"author,omitempty"`
	GeneratedAt time.Time          `json:"generated_at"`
	Zone        string             `json:"zone"`
	Components  []jsonComponent    `json:"z_score_components,omitempty"`
	Assessment  *models.Assessment `json:"assessment"`
}

// WriteJSON writes the assessment wrapped with report metadata. Absent ratios
// are null.
func (r *Report) WriteJSON(w io.Writer) error {
	doc := jsonReport{
		ID:          r.ID,
		Title:       r.Title,
		Author:      r.Author,
		GeneratedAt: r.GeneratedAt,
		Zone:        r.Zone,
		Assessment:  r.Assessment,
	}
	for _, c := range r.Components {
		doc.Components = append(doc.Components, jsonComponent{Term: c.Label, Weight: c.Weight, Value: c.Value})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteCSV writes one ratio,value row per ratio followed by the z_score,
// classification and zone rows. Absent values are empty cells.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	records := [][]string{{"ratio", "value"}}
	for _, g := range r.Groups {
		for _, row := range g.Rows {
			records = append(records, []string{row.Key, csvValue(row.Raw)})
		}
	}
	records = append(records,
		[]string{"z_score", csvValue(r.ZScore)},
		[]string{"classification", string(r.Risk)},
		[]string{"zone", r.Zone},
	)
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}

func csvValue(o models.Optional) string {
	v, ok := o.Get()
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ════════════════════════════════════════════════════════════════════
// Batch summary
// ════════════════════════════════════════════════════════════════════

// SummaryRow is one company in a batch summary.
type SummaryRow struct {
	Source     string
	Assessment *models.Assessment
	Err        error
}

var summaryHeader = []string{"source", "company", "period", "z_score", "zone", "classification", "current_ratio", "debt_ratio", "net_margin", "error"}

// WriteSummaryCSV writes one line per company. Failed rows carry only the
// source and the error.
func WriteSummaryCSV(w io.Writer, rows []SummaryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(summaryHeader); err != nil {
		return err
	}
	for _, row := range rows {
		rec := make([]string, len(summaryHeader))
		rec[0] = row.Source
		if row.Err != nil || row.Assessment == nil {
			if row.Err != nil {
				rec[len(rec)-1] = row.Err.Error()
			}
		} else {
			a := row.Assessment
			rec[1] = a.Company
			rec[2] = a.Period
			rec[3] = csvValue(a.ZScore)
			rec[4] = a.Risk.Zone()
			rec[5] = string(a.Risk)
			rec[6] = csvValue(a.Ratios.CurrentRatio)
			rec[7] = csvValue(a.Ratios.DebtRatio)
			rec[8] = csvValue(a.Ratios.NetMargin)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type summaryJSON struct {
	Source     string             `json:"source"`
	Assessment *models.Assessment `json:"assessment,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// WriteSummaryJSON writes the batch as a JSON array in input order.
func WriteSummaryJSON(w io.Writer, rows []SummaryRow) error {
	out := make([]summaryJSON, len(rows))
	for i, row := range rows {
		out[i] = summaryJSON{Source: row.Source, Assessment: row.Assessment}
		if row.Err != nil {
			out[i].Assessment = nil
			out[i].Error = row.Err.Error()
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteSummaryText writes an aligned table for the terminal. Amounts are
// abbreviated in each company's own currency.
func WriteSummaryText(w io.Writer, rows []SummaryRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tCOMPANY\tSALES\tASSETS\tZ-SCORE\tZONE\tCLASSIFICATION")
	for _, row := range rows {
		if row.Err != nil || row.Assessment == nil {
			msg := "no result"
			if row.Err != nil {
				msg = row.Err.Error()
			}
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t-\terror: %s\n", row.Source, msg)
			continue
		}
		a := row.Assessment
		z := "n/a"
		if v, ok := a.ZScore.Get(); ok {
			z = fmt.Sprintf("%.3f", v)
		}
		symbol := utils.CurrencySymbol(a.Currency, "")
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", row.Source, a.Company,
			utils.FormatCompact(a.Inputs.Sales, symbol),
			utils.FormatCompact(a.Inputs.TotalAssets, symbol),
			z, a.Risk.Zone(), a.Risk)
	}
	return tw.Flush()
}
