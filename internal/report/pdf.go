package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// ════════════════════════════════════════════════════════════════════
// PDF renderer (core fonts, no external engine)
// ════════════════════════════════════════════════════════════════════

// PDFConfig holds page settings for PDF output.
type PDFConfig struct {
	PageSize    string  // default: "A4"
	Orientation string  // "P" (default) or "L"
	Margin      float64 // mm, all sides (default: 15)
}

// DefaultPDFConfig returns sensible defaults for PDF generation.
func DefaultPDFConfig() PDFConfig {
	return PDFConfig{PageSize: "A4", Orientation: "P", Margin: 15}
}

// rupee has no glyph in the core fonts' code page.
var pdfReplacer = strings.NewReplacer("₹", "Rs ")

// WritePDF renders the report with default page settings.
func (r *Report) WritePDF(w io.Writer) error {
	return r.WritePDFWith(w, DefaultPDFConfig())
}

// WritePDFWith renders the report as a PDF document.
func (r *Report) WritePDFWith(w io.Writer, cfg PDFConfig) error {
	if cfg.PageSize == "" {
		cfg.PageSize = "A4"
	}
	if cfg.Orientation == "" {
		cfg.Orientation = "P"
	}
	if cfg.Margin <= 0 {
		cfg.Margin = 15
	}

	pdf := fpdf.New(cfg.Orientation, "mm", cfg.PageSize, "")
	pdf.SetMargins(cfg.Margin, cfg.Margin, cfg.Margin)
	pdf.SetAutoPageBreak(true, cfg.Margin)
	pdf.SetTitle(r.Title, true)
	pdf.SetSubject("Report "+r.ID, true)
	pdf.SetCreator("riskscan", true)
	if r.Author != "" {
		pdf.SetAuthor(r.Author, true)
	}
	pdf.SetCreationDate(r.GeneratedAt)

	cp := pdf.UnicodeTranslatorFromDescriptor("")
	tr := func(s string) string { return cp(pdfReplacer.Replace(s)) }

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*cfg.Margin

	pdf.SetFooterFunc(func() {
		pdf.SetY(-cfg.Margin + 5)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("Report %s | page %d", r.ID, pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(37, 99, 235)
	pdf.MultiCell(contentW, 8, tr(r.Title), "", "L", false)
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(contentW, 5, tr(r.headerLine()), "", 1, "L", false, 0, "")
	generated := "Generated " + r.GeneratedAt.Format("2006-01-02 15:04 MST")
	if r.Author != "" {
		generated += " by " + r.Author
	}
	pdf.CellFormat(contentW, 5, tr(generated), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Risk box
	red, green, blue := zoneRGB(r.Zone)
	pdf.SetFillColor(red, green, blue)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(contentW, 10, tr(fmt.Sprintf("Z-Score %s: %s", r.ZScoreText(), r.Risk)), "", 1, "C", true, 0, "")
	pdf.SetTextColor(26, 26, 46)
	pdf.Ln(3)

	labelW := contentW * 0.65
	valueW := contentW - labelW

	section := func(title string) {
		pdf.Ln(3)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(contentW, 7, tr(title), "B", 1, "L", false, 0, "")
		pdf.Ln(1)
		pdf.SetFont("Arial", "", 10)
	}
	row := func(label, value string, fill bool) {
		if fill {
			pdf.SetFillColor(248, 250, 252)
		}
		pdf.CellFormat(labelW, 6, tr(label), "", 0, "L", fill, 0, "")
		pdf.CellFormat(valueW, 6, tr(value), "", 1, "R", fill, 0, "")
	}

	if len(r.Components) > 0 {
		section("Altman Z-Score components")
		for i, c := range r.Components {
			row(fmt.Sprintf("%s (x%.1f)", c.Label, c.Weight), fmt.Sprintf("%.3f", c.Value), i%2 == 1)
		}
	}

	for _, g := range r.Groups {
		section(g.Name)
		for i, rr := range g.Rows {
			row(rr.Label, rr.Value, i%2 == 1)
		}
	}

	section("Inputs")
	for i, in := range r.Inputs {
		label := in.Label
		if in.Estimated {
			label += " (estimated)"
		}
		row(label, in.Value, i%2 == 1)
	}

	return pdf.Output(w)
}

// zoneRGB returns the fill color for a zone's banner.
func zoneRGB(zone string) (int, int, int) {
	switch zone {
	case "safe":
		return 22, 163, 74
	case "grey":
		return 234, 88, 12
	case "distress":
		return 220, 38, 38
	default:
		return 107, 114, 128
	}
}
