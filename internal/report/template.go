package report

// pageTemplate wraps the rendered Markdown body and the charts in a
// standalone HTML page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<meta name="generator" content="riskscan">
<meta name="report-id" content="{{.ID}}">
<title>{{.Title}}</title>
<style>
  :root { --ink: #1f2937; --faint: #9ca3af; --rule: #d1d5db; --brand: #1e40af; --panel: #f3f4f6; }
  html { font-size: 15px; }
  body { font: 1rem/1.55 system-ui, 'Helvetica Neue', Arial, sans-serif; color: var(--ink); width: min(920px, 100%); margin: 0 auto; padding: 24px 16px; }
  h1 { font-size: 1.6rem; color: var(--brand); margin: 0 0 2px; }
  h2 { font-size: 1.15rem; margin: 28px 0 10px; border-bottom: 1px solid var(--rule); }
  blockquote { margin: 10px 0; padding-left: 10px; border-left: 3px solid var(--rule); color: var(--faint); }
  table { border-collapse: collapse; width: 100%; margin-bottom: 14px; }
  th, td { padding: 6px 10px; text-align: left; }
  th { background: var(--panel); }
  tr:nth-child(even) td { background: #fafafa; }
  td:nth-child(2) { font-variant-numeric: tabular-nums; }
  .risk-box { display: grid; grid-template-columns: auto 1fr; gap: 18px; align-items: center; padding: 14px 18px; border-radius: 6px; background: var(--panel); }
  .risk-box.safe { border-left: 6px solid #4caf50; }
  .risk-box.grey { border-left: 6px solid #ff9800; }
  .risk-box.distress { border-left: 6px solid #ef5350; }
  .risk-label { font-size: 1.25rem; font-weight: bold; }
  .chart-container svg { width: 100%; height: auto; }
  .footer { margin-top: 32px; font-size: 0.8rem; color: var(--faint); text-align: right; }
  @media print { body { padding: 0; } .risk-box { break-inside: avoid; } }
</style>
</head>
<body>

<div class="risk-box {{.Zone}}">
  <div>{{.Gauge}}</div>
  <div>
    <div class="risk-label">{{.Risk}}</div>
    <div>Z-Score {{.ZScore}}</div>
  </div>
</div>

{{.Body}}

{{if .Chart}}
<div class="chart-container">{{.Chart}}</div>
{{end}}

<div class="footer">Report {{.ID}} &middot; generated {{.GeneratedAt}}{{if .Author}} &middot; {{.Author}}{{end}}</div>
</body>
</html>
`
