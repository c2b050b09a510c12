package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func TestDecimalNumericRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1500.5", "-250.75", "999999999.99"} {
		d := decimal.RequireFromString(s)
		if got := numericToDecimal(decimalToNumeric(d)); !got.Equal(d) {
			t.Fatalf("round trip %s: got %s", s, got)
		}
	}
}

func TestNumericToDecimalNonFinite(t *testing.T) {
	if got := numericToDecimal(pgtype.Numeric{}); !got.IsZero() {
		t.Fatalf("NULL should map to zero, got %s", got)
	}
	if got := numericToDecimal(pgtype.Numeric{NaN: true, Valid: true}); !got.IsZero() {
		t.Fatalf("NaN should map to zero, got %s", got)
	}
}

func TestDateParams(t *testing.T) {
	if p := dateParam(nil); p.Valid {
		t.Fatalf("nil bound should be NULL")
	}
	if p := textDateParam(nil); p.Valid {
		t.Fatalf("nil bound should be NULL")
	}

	d := time.Date(2024, 1, 2, 18, 45, 0, 0, time.UTC)
	if p := textDateParam(&d); !p.Valid || p.String != "2024-01-02" {
		t.Fatalf("unexpected text param %+v", p)
	}
	if p := dateParam(&d); !p.Valid || p.Time.Hour() != 0 || p.Time.Day() != 2 {
		t.Fatalf("unexpected date param %+v", p)
	}
}
