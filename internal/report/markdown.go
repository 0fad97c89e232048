package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ════════════════════════════════════════════════════════════════════
// Markdown renderer
// ════════════════════════════════════════════════════════════════════

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"|", `\|`,
	"#", `\#`,
)

func mdEscape(s string) string { return mdEscaper.Replace(s) }

// Markdown renders the report as a GitHub-flavoured Markdown document.
func (r *Report) Markdown() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", mdEscape(r.Title))
	meta := []string{"**Company:** " + mdEscape(r.Company)}
	if r.Period != "" {
		meta = append(meta, "**Period:** "+mdEscape(r.Period))
	}
	if r.Currency != "" {
		meta = append(meta, "**Currency:** "+mdEscape(r.Currency))
	}
	sb.WriteString(strings.Join(meta, " | ") + "\n\n")
	fmt.Fprintf(&sb, "Report `%s`, generated %s", r.ID, r.GeneratedAt.Format("2006-01-02 15:04 MST"))
	if r.Author != "" {
		fmt.Fprintf(&sb, " by %s", mdEscape(r.Author))
	}
	sb.WriteString(".\n\n")

	sb.WriteString("## Altman Z-Score\n\n")
	fmt.Fprintf(&sb, "**Z-Score:** %s (%s zone)\n\n", r.ZScoreText(), r.Zone)
	fmt.Fprintf(&sb, "**Classification:** %s\n\n", r.Risk)
	if len(r.Components) > 0 {
		sb.WriteString("| Term | Weight | Value |\n|---|---:|---:|\n")
		for _, c := range r.Components {
			fmt.Fprintf(&sb, "| %s | %.1f | %.3f |\n", c.Label, c.Weight, c.Value)
		}
		sb.WriteString("\n")
	}

	for _, g := range r.Groups {
		fmt.Fprintf(&sb, "## %s\n\n", g.Name)
		sb.WriteString("| Ratio | Value |\n|---|---:|\n")
		for _, row := range g.Rows {
			fmt.Fprintf(&sb, "| %s | %s |\n", row.Label, mdEscape(row.Value))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Inputs\n\n")
	sb.WriteString("| Figure | Value | Source |\n|---|---:|---|\n")
	for _, in := range r.Inputs {
		source := "reported"
		if in.Estimated {
			source = "estimated"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", in.Label, mdEscape(in.Value), source)
	}
	sb.WriteString("\n")
	if r.HasEstimates() {
		sb.WriteString("> Estimated figures were filled from default assumptions.\n\n")
	}
	return sb.String()
}

// ════════════════════════════════════════════════════════════════════
// HTML renderer
// ════════════════════════════════════════════════════════════════════

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	page     = template.Must(template.New("report").Parse(pageTemplate))
)

type pageData struct {
	ID          string
	Title       string
	Author      string
	GeneratedAt string
	Zone        string
	Risk        string
	ZScore      string
	Gauge       template.HTML
	Chart       template.HTML
	Body        template.HTML
}

// WriteHTML converts the Markdown report to HTML and wraps it in a styled
// page with the Z-Score gauge and component chart.
func (r *Report) WriteHTML(w io.Writer) error {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(r.Markdown()), &body); err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}

	data := pageData{
		ID:          r.ID,
		Title:       r.Title,
		Author:      r.Author,
		GeneratedAt: r.GeneratedAt.Format("2006-01-02 15:04 MST"),
		Zone:        r.Zone,
		Risk:        string(r.Risk),
		ZScore:      r.ZScoreText(),
		Gauge:       template.HTML(ZScoreGauge(r.ZScore, 220)),
		Body:        template.HTML(body.String()),
	}
	if len(r.Components) > 0 {
		data.Chart = template.HTML(ComponentChart(r.Components))
	}

	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	return nil
}
