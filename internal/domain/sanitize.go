package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// NumericKind tells the sanitizer how to interpret a raw value.
type NumericKind int

const (
	// KindDecimal is a signed monetary amount.
	KindDecimal NumericKind = iota
	// KindInteger is a non-negative count (rows, workers, days).
	KindInteger
)

// Sanity ceilings for values read from storage.
const (
	MaxAggregateAmount = 1_000_000_000
	MaxCount           = 10_000

	// repeatedDigitsMinLength is the shortest digit string checked for
	// repeated-group artifacts; shorter values are plausible amounts.
	repeatedDigitsMinLength = 6
)

var (
	maxAggregateAmount = decimal.NewFromInt(MaxAggregateAmount)
	maxCount           = decimal.NewFromInt(MaxCount)
)

// Clean is Sanitize with the rejection reason dropped.
func Clean(raw any, kind NumericKind) decimal.Decimal {
	v, _ := Sanitize(raw, kind)
	return v
}

// Sanitize converts a raw stored value into a decimal. It never fails the
// caller: a rejected value comes back as zero together with the reason.
func Sanitize(raw any, kind NumericKind) (decimal.Decimal, error) {
	s, ok := rawString(raw)
	if !ok {
		return decimal.Zero, nil
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}

	if IsRepeatedDigitArtifact(d) {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrRepeatedDigits, d.String())
	}

	if kind == KindInteger {
		d = d.Truncate(0)
		if d.IsNegative() {
			return decimal.Zero, nil
		}
		if d.GreaterThan(maxCount) {
			return decimal.Zero, fmt.Errorf("%w: %s > %d", ErrOutOfRange, d.String(), MaxCount)
		}
		return d, nil
	}

	if d.Abs().GreaterThan(maxAggregateAmount) {
		return decimal.Zero, fmt.Errorf("%w: %s > %d", ErrOutOfRange, d.String(), MaxAggregateAmount)
	}

	return d, nil
}

// IsRepeatedDigitArtifact reports whether an integral value is a run of one
// 1-3 digit group repeated at least three times (232323, 111111, 450450450).
// Such values come from a known data-entry/display bug. Legitimate amounts
// with that shape are rejected too; the check only looks at integral values
// of six digits or more to keep that window small.
func IsRepeatedDigitArtifact(d decimal.Decimal) bool {
	if !d.Equal(d.Truncate(0)) {
		return false
	}

	digits := d.Abs().String()
	if len(digits) < repeatedDigitsMinLength {
		return false
	}

	for size := 1; size <= 3; size++ {
		if len(digits)%size != 0 || len(digits)/size < 3 {
			continue
		}
		if strings.Repeat(digits[:size], len(digits)/size) == digits {
			return true
		}
	}

	return false
}

func rawString(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	case []byte:
		return string(v), true
	case decimal.Decimal:
		return v.String(), true
	case *decimal.Decimal:
		if v == nil {
			return "", false
		}
		return v.String(), true
	case decimal.NullDecimal:
		if !v.Valid {
			return "", false
		}
		return v.Decimal.String(), true
	case int:
		return strconv.Itoa(v), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "NaN", true
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return fmt.Sprint(v), true
	}
}

// RejectionReason returns a short label for a sanitizer error, used as a
// metric label.
func RejectionReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRepeatedDigits):
		return "repeated_digits"
	case errors.Is(err, ErrOutOfRange):
		return "out_of_range"
	default:
		return "not_numeric"
	}
}
