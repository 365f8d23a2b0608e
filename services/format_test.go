package services

import (
	"math"
	"testing"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"float", 1200.0, "₹1,200.00"},
		{"lakh", 123456.5, "₹1,23,456.50"},
		{"crore", 10000000, "₹1,00,00,000.00"},
		{"int below grouping", 999, "₹999.00"},
		{"numeric string", "45210.75", "₹45,210.75"},
		{"negative", -250000.5, "-₹2,50,000.50"},
		{"nil", nil, ""},
		{"text", "n/a", ""},
		{"nan", math.NaN(), ""},
		{"infinity", math.Inf(1), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatINR(tt.in); got != tt.want {
				t.Errorf("FormatINR(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGroupIndian(t *testing.T) {
	for in, want := range map[string]string{
		"7":          "7",
		"1000":       "1,000",
		"98765":      "98,765",
		"123456":     "1,23,456",
		"1234567890": "1,23,45,67,890",
	} {
		if got := groupIndian(in); got != want {
			t.Errorf("groupIndian(%q) = %q, want %q", in, got, want)
		}
	}
}
