package pricing

import (
	"encoding/json"
	"math"
	"strings"

	"food-delivery/checkout-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// NormalizePrice turns a numeric or textual price into a number. Anything that
// cannot be read as a finite number becomes 0. Negative numbers are returned
// as-is; use NonNegativePrice where a price feeds a charge.
func NormalizePrice(value any) float64 {
	return toFloat(normalizeDecimal(value))
}

// NonNegativePrice is NormalizePrice clamped at zero.
func NonNegativePrice(value any) float64 {
	return toFloat(nonNegative(normalizeDecimal(value)))
}

// toFloat converts a result for the outside world. A value too large for a
// float64 becomes 0 rather than ±Inf.
func toFloat(d decimal.Decimal) float64 {
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// normalizeDecimal only yields values that fit a float64; "1e400" parses as
// a decimal but is treated like any other unreadable price.
func normalizeDecimal(value any) decimal.Decimal {
	d := parseDecimal(value)
	if toFloat(d) == 0 {
		return decimal.Zero
	}
	return d
}

func parseDecimal(value any) decimal.Decimal {
	switch v := value.(type) {
	case nil:
		return decimal.Zero
	case domain.PriceValue:
		return parseDecimal(v.Raw())
	case *domain.PriceValue:
		if v == nil {
			return decimal.Zero
		}
		return parseDecimal(v.Raw())
	case decimal.Decimal:
		return v
	case float64:
		return fromFloat(v)
	case float32:
		return fromFloat(float64(v))
	case int:
		return decimal.NewFromInt(int64(v))
	case int8:
		return decimal.NewFromInt(int64(v))
	case int16:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint8:
		return decimal.NewFromUint64(uint64(v))
	case uint16:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	case json.Number:
		return fromString(string(v))
	case string:
		return fromString(v)
	case *float64:
		if v == nil {
			return decimal.Zero
		}
		return fromFloat(*v)
	case *string:
		if v == nil {
			return decimal.Zero
		}
		return fromString(*v)
	default:
		return decimal.Zero
	}
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func fromString(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
