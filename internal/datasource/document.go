package datasource

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/hjson/hjson-go/v4"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/seenimoa/riskscanner/internal/validate"
	"github.com/seenimoa/riskscanner/pkg/models"
)

// Structured documents are decoded into a generic map first, so every format
// accepts the same layouts: figures nested under "figures" or listed at the
// top level, keyed by canonical name or any alias validate.LineItem knows,
// with numeric or string values ("1.2M", "(50,000)").

type jsonSource struct{}

func (jsonSource) Name() string         { return "json" }
func (jsonSource) Extensions() []string { return []string{".json"} }

func (jsonSource) Decode(data []byte) (*models.Company, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return companyFromMap(doc)
}

func (jsonSource) Encode(c *models.Company) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

type yamlSource struct{}

func (yamlSource) Name() string         { return "yaml" }
func (yamlSource) Extensions() []string { return []string{".yaml", ".yml"} }

func (yamlSource) Decode(data []byte) (*models.Company, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return companyFromMap(doc)
}

func (yamlSource) Encode(c *models.Company) ([]byte, error) {
	return yaml.Marshal(c)
}

type tomlSource struct{}

func (tomlSource) Name() string         { return "toml" }
func (tomlSource) Extensions() []string { return []string{".toml"} }

func (tomlSource) Decode(data []byte) (*models.Company, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return companyFromMap(doc)
}

func (tomlSource) Encode(c *models.Company) ([]byte, error) {
	return toml.Marshal(c)
}

type hjsonSource struct{}

func (hjsonSource) Name() string         { return "hjson" }
func (hjsonSource) Extensions() []string { return []string{".hjson"} }

// Decode converts the document to plain JSON first so nested objects come
// back as ordinary maps.
func (hjsonSource) Decode(data []byte) (*models.Company, error) {
	var raw any
	if err := hjson.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	js, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return jsonSource{}.Decode(js)
}

func (hjsonSource) Encode(c *models.Company) ([]byte, error) {
	return hjson.Marshal(c)
}

// metadata keys, English and Spanish.
var metaKeys = map[string]string{
	"name":     "name",
	"company":  "name",
	"empresa":  "name",
	"period":   "period",
	"periodo":  "period",
	"currency": "currency",
	"moneda":   "currency",
}

// companyFromMap builds a company from a decoded document. Unknown keys and
// unparseable values are all reported together.
func companyFromMap(doc map[string]any) (*models.Company, error) {
	c := &models.Company{}
	figures := map[string]any{}

	for key, v := range doc {
		k := strings.ToLower(strings.TrimSpace(key))
		if k == "figures" || k == "cifras" {
			nested, ok := v.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%q must be a table of figures, got %T", key, v)
			}
			for fk, fv := range nested {
				figures[fk] = fv
			}
			continue
		}
		if meta, ok := metaKeys[k]; ok {
			if v == nil {
				continue
			}
			s := fmt.Sprint(v)
			switch meta {
			case "name":
				c.Name = s
			case "period":
				c.Period = s
			case "currency":
				c.Currency = s
			}
			continue
		}
		figures[key] = v
	}

	st, err := statementFromMap(figures)
	if err != nil {
		return nil, err
	}
	c.Figures = *st
	return c, nil
}

func statementFromMap(figures map[string]any) (*models.Statement, error) {
	labels := make([]string, 0, len(figures))
	for label := range figures {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	st := &models.Statement{}
	var errs validate.Errors
	found := 0
	for _, label := range labels {
		name, ok := validate.LineItem(label)
		if !ok {
			errs = append(errs, &validate.FieldError{Field: label, Err: validate.ErrUnknownField})
			continue
		}
		v, present, err := toFloat(figures[label])
		if err != nil {
			errs = append(errs, &validate.FieldError{Field: name, Err: err})
			continue
		}
		if !present {
			continue
		}
		validate.Set(st, name, v)
		found++
	}
	if len(errs) > 0 {
		return nil, errs
	}
	if found == 0 {
		return nil, ErrNoFigures
	}
	return st, nil
}

// toFloat converts a decoded scalar. A null or blank value is not present.
func toFloat(v any) (float64, bool, error) {
	switch x := v.(type) {
	case nil:
		return 0, false, nil
	case float64:
		return x, true, nil
	case float32:
		return float64(x), true, nil
	case int:
		return float64(x), true, nil
	case int64:
		return float64(x), true, nil
	case uint64:
		return float64(x), true, nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false, validate.ErrNotNumeric
		}
		return f, true, nil
	case string:
		if strings.TrimSpace(x) == "" {
			return 0, false, nil
		}
		f, err := validate.ParseNumber(x)
		if err != nil {
			return 0, false, validate.ErrNotNumeric
		}
		return f, true, nil
	default:
		return 0, false, validate.ErrNotNumeric
	}
}
