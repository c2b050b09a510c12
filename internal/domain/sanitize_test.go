package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSanitize(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name    string
		raw     any
		kind    NumericKind
		want    string
		wantErr error
	}{
		{name: "plain decimal string", raw: "1500.50", kind: KindDecimal, want: "1500.5"},
		{name: "nil decimal", raw: nil, kind: KindDecimal, want: "0"},
		{name: "nil integer", raw: nil, kind: KindInteger, want: "0"},
		{name: "nil string pointer", raw: (*string)(nil), kind: KindDecimal, want: "0"},
		{name: "string pointer", raw: str("42"), kind: KindDecimal, want: "42"},
		{name: "empty string", raw: "  ", kind: KindDecimal, want: "0"},
		{name: "bytes", raw: []byte("12.25"), kind: KindDecimal, want: "12.25"},
		{name: "negative decimal keeps sign", raw: "-250", kind: KindDecimal, want: "-250"},
		{name: "garbage", raw: "abc", kind: KindDecimal, want: "0", wantErr: ErrNotNumeric},
		{name: "NaN float", raw: math.NaN(), kind: KindDecimal, want: "0", wantErr: ErrNotNumeric},
		{name: "infinite float", raw: math.Inf(1), kind: KindDecimal, want: "0", wantErr: ErrNotNumeric},
		{name: "repeated pair", raw: "232323", kind: KindDecimal, want: "0", wantErr: ErrRepeatedDigits},
		{name: "repeated pair with zero fraction", raw: "232323.00", kind: KindDecimal, want: "0", wantErr: ErrRepeatedDigits},
		{name: "repeated single digit", raw: int64(111111), kind: KindDecimal, want: "0", wantErr: ErrRepeatedDigits},
		{name: "repeated triple", raw: "450450450", kind: KindDecimal, want: "0", wantErr: ErrRepeatedDigits},
		{name: "short repeat allowed", raw: "11111", kind: KindDecimal, want: "11111"},
		{name: "fractional repeat allowed", raw: "111111.5", kind: KindDecimal, want: "111111.5"},
		{name: "decimal above ceiling", raw: "1000000001", kind: KindDecimal, want: "0", wantErr: ErrOutOfRange},
		{name: "decimal at ceiling", raw: "1000000000", kind: KindDecimal, want: "1000000000"},
		{name: "negative below ceiling", raw: "-2000000000", kind: KindDecimal, want: "0", wantErr: ErrOutOfRange},
		{name: "integer truncated", raw: "12.9", kind: KindInteger, want: "12"},
		{name: "integer negative clamped", raw: int64(-3), kind: KindInteger, want: "0"},
		{name: "integer above ceiling", raw: int64(10001), kind: KindInteger, want: "0", wantErr: ErrOutOfRange},
		{name: "decimal value", raw: decimal.NewFromInt(750), kind: KindDecimal, want: "750"},
		{name: "null decimal invalid", raw: decimal.NullDecimal{}, kind: KindDecimal, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sanitize(tt.raw, tt.kind)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestClean(t *testing.T) {
	if got := Clean("232323", KindDecimal); !got.IsZero() {
		t.Fatalf("expected 0, got %s", got)
	}
	if got := Clean("99.99", KindDecimal); !got.Equal(decimal.RequireFromString("99.99")) {
		t.Fatalf("expected 99.99, got %s", got)
	}
}

func TestRejectionReason(t *testing.T) {
	_, err := Sanitize("777777", KindDecimal)
	if got := RejectionReason(err); got != "repeated_digits" {
		t.Fatalf("expected repeated_digits, got %q", got)
	}

	_, err = Sanitize("x", KindDecimal)
	if got := RejectionReason(err); got != "not_numeric" {
		t.Fatalf("expected not_numeric, got %q", got)
	}

	_, err = Sanitize("5000000000", KindDecimal)
	if got := RejectionReason(err); got != "out_of_range" {
		t.Fatalf("expected out_of_range, got %q", got)
	}

	if got := RejectionReason(nil); got != "" {
		t.Fatalf("expected empty reason, got %q", got)
	}
}
