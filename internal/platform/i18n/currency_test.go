package i18n

import (
	"strings"
	"testing"
)

func TestCurrencyFormatter_FormatSalary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		lang       string
		code       string
		amount     float64
		wantPrefix string
		wantDigits string
	}{
		{name: "us dollars", lang: "en-US", code: "USD", amount: 85000, wantPrefix: "$", wantDigits: "85,000.00"},
		{name: "fractional amount", lang: "en-US", code: "USD", amount: 162500.5, wantPrefix: "$", wantDigits: "162,500.50"},
		{name: "zero", lang: "en-US", code: "USD", amount: 0, wantPrefix: "$", wantDigits: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := NewCurrencyFormatter(tt.lang, tt.code)
			if err != nil {
				t.Fatalf("NewCurrencyFormatter returned error: %v", err)
			}

			got := f.FormatSalary(tt.amount)
			if !strings.HasPrefix(got, tt.wantPrefix) {
				t.Fatalf("expected prefix %q, got %q", tt.wantPrefix, got)
			}
			if !strings.Contains(got, tt.wantDigits) {
				t.Fatalf("expected %q in %q", tt.wantDigits, got)
			}
		})
	}
}

func TestNewCurrencyFormatter_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := NewCurrencyFormatter("en-US", "DOLLARS"); err == nil {
		t.Fatal("expected error for invalid currency code")
	}
	if _, err := NewCurrencyFormatter("not a tag!", "USD"); err == nil {
		t.Fatal("expected error for invalid language tag")
	}
}
