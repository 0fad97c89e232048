package datasource

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/seenimoa/riskscanner/internal/validate"
	"github.com/seenimoa/riskscanner/pkg/models"
)

// htmlSource reads statements published as HTML tables. Every table row whose
// first cell is a known line-item label contributes the value in its second
// cell. Rows labelled company/period/currency (or empresa/periodo/moneda) set
// the metadata; any other row is ignored, so whole exported pages work.
type htmlSource struct{}

func (htmlSource) Name() string         { return "html" }
func (htmlSource) Extensions() []string { return []string{".html", ".htm"} }

func (htmlSource) Decode(data []byte) (*models.Company, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	c := &models.Company{}
	st := &models.Statement{}
	var errs validate.Errors
	found := 0

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		if cells.Length() < 2 {
			return
		}
		label := cleanText(cells.Eq(0).Text())
		value := cleanText(cells.Eq(1).Text())

		if meta, ok := metaKeys[strings.ToLower(strings.TrimSuffix(label, ":"))]; ok {
			switch meta {
			case "name":
				c.Name = value
			case "period":
				c.Period = value
			case "currency":
				c.Currency = value
			}
			return
		}

		name, ok := validate.LineItem(label)
		if !ok || value == "" {
			return
		}
		v, err := validate.ParseNumber(value)
		if err != nil {
			errs = append(errs, &validate.FieldError{Field: name, Err: validate.ErrNotNumeric})
			return
		}
		validate.Set(st, name, v)
		found++
	})

	if len(errs) > 0 {
		return nil, errs
	}
	if found == 0 {
		return nil, ErrNoFigures
	}

	if c.Name == "" {
		c.Name = cleanText(doc.Find("caption").First().Text())
	}
	if c.Name == "" {
		c.Name = cleanText(doc.Find("title").First().Text())
	}
	c.Figures = *st
	return c, nil
}

// cleanText collapses whitespace runs, including non-breaking spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
