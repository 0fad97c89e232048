// Package validate checks caller-supplied financial figures before they reach
// the ratio and Z-Score engine. The engine itself assumes its inputs are
// well-formed; everything that can be wrong with user input is reported here.
package validate

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/seenimoa/riskscanner/pkg/models"
)

// Sentinel errors. Check with errors.Is; FieldError and Errors both unwrap to them.
var (
	ErrRequired     = errors.New("value is required")
	ErrNotNumeric   = errors.New("value must be numeric")
	ErrNegative     = errors.New("value must not be negative")
	ErrUnknownField = errors.New("unknown line item")
)

// FieldError ties a validation failure to the line item it concerns.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }
func (e *FieldError) Unwrap() error { return e.Err }

// Errors lists every violation found in one statement.
type Errors []*FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes each field error to errors.Is and errors.As.
func (e Errors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, fe := range e {
		errs[i] = fe
	}
	return errs
}

// Fields returns the names of the offending line items in order.
func (e Errors) Fields() []string {
	names := make([]string, len(e))
	for i, fe := range e {
		names[i] = fe.Field
	}
	return names
}

// ---------------------------------------------------------------------------
// Number parsing
// ---------------------------------------------------------------------------

var numberCleaner = strings.NewReplacer(
	",", "", "_", "", " ", "", "\u00a0", "",
	"$", "", "€", "", "£", "", "¥", "", "₹", "",
)

// Compact magnitude suffixes. Longer spellings are tried first.
var magnitudes = []struct {
	suffix string
	factor float64
}{
	{"crores", 1e7},
	{"crore", 1e7},
	{"lakhs", 1e5},
	{"lakh", 1e5},
	{"cr.", 1e7},
	{"cr", 1e7},
	{"bn", 1e9},
	{"k", 1e3},
	{"m", 1e6},
	{"l", 1e5},
}

// ParseNumber converts a user-entered amount to a float64. It accepts
// surrounding whitespace, thousands separators, common currency symbols,
// accounting negatives such as "(1,234)" and the compact suffixes K, M, Bn,
// L/Lakh and Cr/Crore.
//
// An empty string yields ErrRequired; anything else that is not a finite
// number yields ErrNotNumeric.
func ParseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrRequired
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = strings.ToLower(numberCleaner.Replace(s))
	factor := 1.0
	for _, m := range magnitudes {
		if strings.HasSuffix(s, m.suffix) {
			factor = m.factor
			s = strings.TrimSuffix(s, m.suffix)
			break
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q: %w", raw, ErrNotNumeric)
	}

	v *= factor
	if math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q: %w", raw, ErrNotNumeric)
	}
	if negative {
		v = -v
	}
	return v, nil
}

// NonNegative returns a *FieldError wrapping ErrNegative when v < 0.
func NonNegative(name string, v float64) error {
	if v < 0 {
		return &FieldError{Field: name, Err: ErrNegative}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Struct validation
// ---------------------------------------------------------------------------

var (
	structValidator *validator.Validate
	validatorOnce   sync.Once
)

func engine() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		structValidator = v
	})
	return structValidator
}

// Statement checks that every always-required figure is present and that
// magnitude items are not negative. Net income, EBIT, working capital and
// retained earnings may be negative. The returned error is an Errors value.
func Statement(s *models.Statement) error {
	if s == nil {
		return Errors{{Field: "figures", Err: ErrRequired}}
	}

	err := engine().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating statement: %w", err)
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, &FieldError{Field: fe.Field(), Err: tagError(fe)})
	}
	return out
}

func tagError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return ErrRequired
	case "gte":
		return ErrNegative
	default:
		return fmt.Errorf("failed %q check", fe.Tag())
	}
}

// ---------------------------------------------------------------------------
// Form input
// ---------------------------------------------------------------------------

// FieldSet builds a Statement from label/value pairs as typed into a form or
// scraped from a document. Labels are resolved with LineItem, so both the
// canonical names and their aliases are accepted. Blank values leave the
// figure unset, and magnitude items are checked with NonNegative as they are
// read. All problems are reported together as Errors.
func FieldSet(raw map[string]string) (*models.Statement, error) {
	labels := make([]string, 0, len(raw))
	for label := range raw {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	st := &models.Statement{}
	var errs Errors
	for _, label := range labels {
		value := raw[label]
		field, ok := LineItem(label)
		if !ok {
			errs = append(errs, &FieldError{Field: label, Err: ErrUnknownField})
			continue
		}
		if strings.TrimSpace(value) == "" {
			continue
		}
		v, err := ParseNumber(value)
		if err != nil {
			errs = append(errs, &FieldError{Field: field, Err: ErrNotNumeric})
			continue
		}
		if !signedItems[field] {
			if err := NonNegative(field, v); err != nil {
				errs = append(errs, err.(*FieldError))
				continue
			}
		}
		Set(st, field, v)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	if err := Statement(st); err != nil {
		return nil, err
	}
	return st, nil
}
