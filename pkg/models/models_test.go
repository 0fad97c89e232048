package models

import (
	"encoding/json"
	"testing"
)

// ── Optional Tests ──

func TestOptional(t *testing.T) {
	if v, ok := None().Get(); ok || v != 0 {
		t.Errorf("None().Get(): got (%v, %v), want (0, false)", v, ok)
	}
	var zero Optional
	if zero.IsDefined() {
		t.Error("zero Optional should be absent")
	}

	o := Some(0)
	if !o.IsDefined() {
		t.Error("Some(0) should be defined")
	}
	if got := o.Or(7); got != 0 {
		t.Errorf("Some(0).Or(7): got %v, want 0", got)
	}
	if got := None().Or(7); got != 7 {
		t.Errorf("None().Or(7): got %v, want 7", got)
	}
}

func TestOptionalString(t *testing.T) {
	tests := []struct {
		in   Optional
		want string
	}{
		{None(), "n/a"},
		{Some(1.5), "1.5"},
		{Some(-0.0625), "-0.0625"},
		{Some(4.46), "4.46"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("String(): got %q, want %q", got, tt.want)
		}
	}
}

func TestOptionalJSON(t *testing.T) {
	rs := RatioSet{CurrentRatio: Some(2), DebtRatio: Some(0.4)}
	data, err := json.Marshal(rs)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal raw: %v", err)
	}
	if raw["current_ratio"] != 2.0 {
		t.Errorf("current_ratio: got %v, want 2", raw["current_ratio"])
	}
	if v, ok := raw["quick_ratio"]; !ok || v != nil {
		t.Errorf("quick_ratio: got %v (present %v), want null", v, ok)
	}

	var decoded RatioSet
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != rs {
		t.Errorf("decoded: got %+v, want %+v", decoded, rs)
	}
}

func TestOptionalJSON_Invalid(t *testing.T) {
	var o Optional
	if err := json.Unmarshal([]byte(`"abc"`), &o); err == nil {
		t.Error("expected error for a string value")
	}
}

// ── RiskClass Tests ──

func TestRiskClassZone(t *testing.T) {
	tests := map[RiskClass]string{
		RiskHigh:             "distress",
		RiskModerate:         "grey",
		RiskLow:              "safe",
		RiskInsufficientData: "unknown",
		"":                   "unknown",
	}
	for class, want := range tests {
		if got := class.Zone(); got != want {
			t.Errorf("%q.Zone(): got %q, want %q", class, got, want)
		}
	}
}

func TestFloat(t *testing.T) {
	p := Float(3)
	q := Float(3)
	if p == q {
		t.Error("Float should return distinct pointers")
	}
	if *p != 3 {
		t.Errorf("Float(3): got %v", *p)
	}
}
