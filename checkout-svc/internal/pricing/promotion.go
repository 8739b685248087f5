package pricing

import "math"

// Promotion yields the discount for an item subtotal. Coupon lookup lives
// elsewhere; the calculator only applies a resolved promotion.
type Promotion interface {
	Discount(itemSubtotal float64) float64
}

type FlatPromotion struct {
	Amount      float64
	MinSubtotal float64
}

func (p FlatPromotion) Discount(itemSubtotal float64) float64 {
	if itemSubtotal < p.MinSubtotal || p.Amount <= 0 {
		return 0
	}
	return p.Amount
}

// PercentPromotion takes a percentage off the item subtotal, capped at
// MaxDiscount when it is set.
type PercentPromotion struct {
	Percent     float64
	MaxDiscount float64
}

func (p PercentPromotion) Discount(itemSubtotal float64) float64 {
	if p.Percent <= 0 || itemSubtotal <= 0 {
		return 0
	}
	discount := math.Round(itemSubtotal*math.Min(p.Percent, 100)) / 100
	if p.MaxDiscount > 0 && discount > p.MaxDiscount {
		return p.MaxDiscount
	}
	return discount
}

// NewPromotion builds the store-wide promotion from its settings. A positive
// flat amount wins over a percentage; with neither set there is no promotion
// and the result is a nil interface.
func NewPromotion(flatAmount, minSubtotal, percent, maxDiscount float64) Promotion {
	switch {
	case flatAmount > 0:
		return FlatPromotion{Amount: flatAmount, MinSubtotal: minSubtotal}
	case percent > 0:
		return PercentPromotion{Percent: percent, MaxDiscount: maxDiscount}
	default:
		return nil
	}
}
