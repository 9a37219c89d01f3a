package bmi

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestToFloat_Strings(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.8", 1.8},
		{"  70\n", 70},
		{"+3", 3},
		{"-.5", -0.5},
		{"5.", 5},
		{"1e3", 1000},
		{"2.5E-1", 0.25},
		{"1_000", 1000},
		{"1_0.2_5", 10.25},
		{"1e400", math.Inf(1)},
		{"1e-400", 0},
	}
	for _, tt := range tests {
		got, err := ToFloat(tt.in)
		if err != nil {
			t.Errorf("ToFloat(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ToFloat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToFloat_Specials(t *testing.T) {
	for _, in := range []string{"inf", "INF", "+Infinity", " infinity "} {
		got, err := ToFloat(in)
		if err != nil || !math.IsInf(got, 1) {
			t.Errorf("ToFloat(%q) = %v, %v; want +Inf", in, got, err)
		}
	}
	if got, err := ToFloat("-inf"); err != nil || !math.IsInf(got, -1) {
		t.Errorf("ToFloat(\"-inf\") = %v, %v; want -Inf", got, err)
	}
	for _, in := range []string{"nan", "NaN", "-nan", "+NAN"} {
		got, err := ToFloat(in)
		if err != nil || !math.IsNaN(got) {
			t.Errorf("ToFloat(%q) = %v, %v; want NaN", in, got, err)
		}
	}
}

func TestToFloat_RejectedStrings(t *testing.T) {
	tests := []struct {
		in      string
		wantMsg string
	}{
		{"abc", "could not convert string to float: 'abc'"},
		{"", "could not convert string to float: ''"},
		{" 1.8m ", "could not convert string to float: ' 1.8m '"},
		{"0x10", "could not convert string to float: '0x10'"},
		{"1__0", "could not convert string to float: '1__0'"},
		{"_1", "could not convert string to float: '_1'"},
		{"1_", "could not convert string to float: '1_'"},
		{"1,8", "could not convert string to float: '1,8'"},
		{"infinit", "could not convert string to float: 'infinit'"},
		{"it's", `could not convert string to float: "it's"`},
		{"a\tb", `could not convert string to float: 'a\tb'`},
	}
	for _, tt := range tests {
		_, err := ToFloat(tt.in)
		var convErr *ConversionError
		if !errors.As(err, &convErr) {
			t.Errorf("ToFloat(%q) err = %v, want *ConversionError", tt.in, err)
			continue
		}
		if err.Error() != tt.wantMsg {
			t.Errorf("ToFloat(%q) err = %q, want %q", tt.in, err.Error(), tt.wantMsg)
		}
	}
}

func TestToFloat_NonScalar(t *testing.T) {
	tests := []struct {
		in   any
		kind string
	}{
		{nil, "NoneType"},
		{[]any{1.0}, "list"},
		{map[string]any{}, "dict"},
	}
	for _, tt := range tests {
		_, err := ToFloat(tt.in)
		var typeErr *TypeError
		if !errors.As(err, &typeErr) {
			t.Errorf("ToFloat(%v) err = %v, want *TypeError", tt.in, err)
			continue
		}
		if typeErr.Kind != tt.kind {
			t.Errorf("ToFloat(%v) kind = %q, want %q", tt.in, typeErr.Kind, tt.kind)
		}
	}
}

func TestToFloat_JSONNumbers(t *testing.T) {
	got, err := ToFloat(json.Number("1e400"))
	if err != nil || !math.IsInf(got, 1) {
		t.Errorf("ToFloat(1e400) = %v, %v; want +Inf", got, err)
	}

	huge := json.Number("1" + strings.Repeat("0", 400))
	if _, err := ToFloat(huge); !errors.Is(err, errIntOverflow) {
		t.Errorf("ToFloat(10**400) err = %v, want errIntOverflow", err)
	}

	got, err = ToFloat(json.Number("-12.5"))
	if err != nil || got != -12.5 {
		t.Errorf("ToFloat(-12.5) = %v, %v; want -12.5", got, err)
	}

	got, err = ToFloat(json.Number("-0"))
	if err != nil || got != 0 || math.Signbit(got) {
		t.Errorf("ToFloat(-0) = %v, %v; want +0", got, err)
	}

	got, err = ToFloat(json.Number("-0.0"))
	if err != nil || got != 0 || !math.Signbit(got) {
		t.Errorf("ToFloat(-0.0) = %v, %v; want -0", got, err)
	}
}
