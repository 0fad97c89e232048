package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Optional is a float64 that may be absent. The zero value is absent.
//
// Absent is a result, not an error: a ratio whose denominator is zero is
// reported as None rather than as 0, NaN or Inf.
type Optional struct {
	value   float64
	defined bool
}

// Some wraps a computed value.
func Some(v float64) Optional {
	return Optional{value: v, defined: true}
}

// None returns the absent value.
func None() Optional {
	return Optional{}
}

// Get returns the value and whether it is defined.
func (o Optional) Get() (float64, bool) {
	return o.value, o.defined
}

// IsDefined reports whether a value is present.
func (o Optional) IsDefined() bool { return o.defined }

// Or returns the value, or fallback when absent.
func (o Optional) Or(fallback float64) float64 {
	if !o.defined {
		return fallback
	}
	return o.value
}

// String renders the value with full precision, or "n/a" when absent.
func (o Optional) String() string {
	if !o.defined {
		return "n/a"
	}
	return strconv.FormatFloat(o.value, 'f', -1, 64)
}

// MarshalJSON encodes an absent value as null.
func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.defined {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as absent.
func (o *Optional) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = None()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("optional value: %w", err)
	}
	*o = Some(v)
	return nil
}
