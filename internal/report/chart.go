package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/seenimoa/riskscanner/internal/analysis/risk"
	"github.com/seenimoa/riskscanner/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// SVG charts embedded in the HTML report
// ════════════════════════════════════════════════════════════════════

// ChartConfig holds rendering parameters for SVG charts.
type ChartConfig struct {
	Width        int    // SVG width in pixels (default: 640)
	Height       int    // SVG height in pixels (default: 240)
	MarginTop    int    // top margin (default: 40)
	MarginRight  int    // right margin (default: 60)
	MarginBottom int    // bottom margin (default: 20)
	MarginLeft   int    // left margin (default: 230)
	BgColor      string // background color (default: "#ffffff")
	TextColor    string // label color (default: "#333333")
	FontSize     int    // label font size (default: 11)
	Title        string // chart title
}

// DefaultChartConfig returns sensible defaults for chart rendering.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:        640,
		Height:       240,
		MarginTop:    40,
		MarginRight:  60,
		MarginBottom: 20,
		MarginLeft:   230,
		BgColor:      "#ffffff",
		TextColor:    "#333333",
		FontSize:     11,
	}
}

// plotArea returns the usable drawing area dimensions.
func (c ChartConfig) plotArea() (x, y, w, h int) {
	return c.MarginLeft, c.MarginTop,
		c.Width - c.MarginLeft - c.MarginRight,
		c.Height - c.MarginTop - c.MarginBottom
}

// ════════════════════════════════════════════════════════════════════
// Bar Chart (Horizontal)
// ════════════════════════════════════════════════════════════════════

// BarItem represents a single bar in a horizontal bar chart.
type BarItem struct {
	Label string
	Value float64
	Color string // optional
}

// HorizontalBarChart generates an SVG horizontal bar chart. Negative values
// extend left of a zero line.
func HorizontalBarChart(items []BarItem, cfg ChartConfig) string {
	if cfg.Width == 0 {
		title := cfg.Title
		cfg = DefaultChartConfig()
		cfg.Title = title
	}
	if len(items) == 0 {
		return emptySVG(cfg, "No data")
	}

	px, py, pw, ph := cfg.plotArea()

	maxVal := 0.0
	minVal := 0.0
	for _, item := range items {
		maxVal = math.Max(maxVal, item.Value)
		minVal = math.Min(minVal, item.Value)
	}
	valRange := maxVal - minVal
	if valRange < 0.001 {
		valRange = 1
	}

	barH := float64(ph) / float64(len(items)) * 0.7
	if barH > 30 {
		barH = 30
	}
	gap := (float64(ph) - barH*float64(len(items))) / float64(len(items)+1)

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))
	fmt.Fprintf(&sb, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`,
		cfg.Width, cfg.Height, cfg.BgColor)
	if cfg.Title != "" {
		fmt.Fprintf(&sb, `<text x="%d" y="20" font-size="14" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`,
			cfg.Width/2, cfg.TextColor, escapeXML(cfg.Title))
	}

	zeroX := float64(px) + (-minVal/valRange)*float64(pw)
	if minVal < 0 {
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%d" x2="%.1f" y2="%d" stroke="#999" stroke-width="1"/>`,
			zeroX, py, zeroX, py+ph)
	}

	for i, item := range items {
		by := float64(py) + gap + float64(i)*(barH+gap)
		color := item.Color
		if color == "" {
			color = "#4caf50"
			if item.Value < 0 {
				color = "#ef5350"
			}
		}

		bw := math.Abs(item.Value) / valRange * float64(pw)
		bx := zeroX
		if item.Value < 0 {
			bx = zeroX - bw
		}
		fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" rx="2"/>`,
			bx, by, bw, barH, color)

		// Label
		fmt.Fprintf(&sb, `<text x="%d" y="%.1f" font-size="%d" fill="%s" text-anchor="end">%s</text>`,
			px-5, by+barH/2+4, cfg.FontSize, cfg.TextColor, escapeXML(item.Label))

		// Value
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" font-size="%d" fill="%s">%.3f</text>`,
			math.Max(bx+bw, zeroX)+5, by+barH/2+4, cfg.FontSize, cfg.TextColor, item.Value)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ComponentChart plots the weighted Z-Score terms.
func ComponentChart(rows []ComponentRow) string {
	items := make([]BarItem, len(rows))
	for i, c := range rows {
		items[i] = BarItem{Label: fmt.Sprintf("%s (x%.1f)", c.Label, c.Weight), Value: c.Value}
	}
	cfg := DefaultChartConfig()
	cfg.Title = "Z-Score components"
	return HorizontalBarChart(items, cfg)
}

// ════════════════════════════════════════════════════════════════════
// Gauge / Dial Chart (for the Z-Score)
// ════════════════════════════════════════════════════════════════════

// GaugeMax is the Z-Score at the right end of the gauge. Larger scores pin
// the needle.
const GaugeMax = 4.0

// zoneColor picks the zone color for a score.
func zoneColor(z float64) string {
	switch {
	case z < risk.DistressThreshold:
		return "#ef5350" // red
	case z < risk.SafeThreshold:
		return "#ff9800" // orange
	default:
		return "#4caf50" // green
	}
}

// ZScoreGauge generates an SVG semicircular gauge spanning 0 to GaugeMax
// with the distress, grey and safe zones drawn as colored bands.
func ZScoreGauge(score models.Optional, width int) string {
	if width == 0 {
		width = 220
	}
	height := width/2 + 30

	cx := float64(width) / 2
	cy := float64(width)/2 - 10
	radius := float64(width)/2 - 20

	// point maps a score to a point on the arc: 0 → 180°, GaugeMax → 0°.
	point := func(v float64, rad float64) (float64, float64) {
		v = math.Max(0, math.Min(GaugeMax, v))
		angle := math.Pi - (v/GaugeMax)*math.Pi
		return cx + rad*math.Cos(angle), cy - rad*math.Sin(angle)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`, width, height, width, height)
	fmt.Fprintf(&sb, `<rect width="%d" height="%d" fill="white"/>`, width, height)

	// Zone bands
	bands := []struct {
		from, to float64
		color    string
	}{
		{0, risk.DistressThreshold, "#ef5350"},
		{risk.DistressThreshold, risk.SafeThreshold, "#ff9800"},
		{risk.SafeThreshold, GaugeMax, "#4caf50"},
	}
	for _, b := range bands {
		x1, y1 := point(b.from, radius)
		x2, y2 := point(b.to, radius)
		fmt.Fprintf(&sb, `<path d="M%.1f,%.1f A%.1f,%.1f 0 0,1 %.1f,%.1f" fill="none" stroke="%s" stroke-width="12" stroke-opacity="0.35"/>`,
			x1, y1, radius, radius, x2, y2, b.color)
	}

	z, ok := score.Get()
	label := "n/a"
	color := "#999999"
	if ok {
		label = fmt.Sprintf("%.2f", z)
		color = zoneColor(z)

		// Needle
		nx, ny := point(z, radius*0.85)
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333" stroke-width="2"/>`,
			cx, cy, nx, ny)
	}
	fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="5" fill="#333"/>`, cx, cy)

	// Value text
	fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" font-size="22" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`,
		cx, cy+25, color, label)

	// Label
	fmt.Fprintf(&sb, `<text x="%.1f" y="%d" font-size="11" fill="#666" text-anchor="middle">Altman Z-Score</text>`,
		cx, height-5)

	sb.WriteString("</svg>")
	return sb.String()
}

// ════════════════════════════════════════════════════════════════════
// SVG Helpers
// ════════════════════════════════════════════════════════════════════

func svgHeader(cfg ChartConfig) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height)
}

func emptySVG(cfg ChartConfig, msg string) string {
	if cfg.Width == 0 {
		cfg.Width = 400
	}
	if cfg.Height == 0 {
		cfg.Height = 200
	}
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"><rect width="%d" height="%d" fill="#f5f5f5"/><text x="%d" y="%d" text-anchor="middle" fill="#999" font-size="14">%s</text></svg>`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height, cfg.Width/2, cfg.Height/2, escapeXML(msg))
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}
