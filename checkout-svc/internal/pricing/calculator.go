package pricing

import (
	"math"

	"food-delivery/checkout-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const earthRadiusKm = 6371.0

var hundred = decimal.NewFromInt(100)

// EffectiveUnitPrice returns the discount price when it is a real discount:
// positive and strictly below the base price. Otherwise the base price.
func EffectiveUnitPrice(basePrice, discountPrice any) float64 {
	return toFloat(effectiveUnitPrice(basePrice, discountPrice))
}

func effectiveUnitPrice(basePrice, discountPrice any) decimal.Decimal {
	base := nonNegative(normalizeDecimal(basePrice))
	discount := normalizeDecimal(discountPrice)
	if discount.IsPositive() && discount.LessThan(base) {
		return discount
	}
	return base
}

// LineItemTotal prices one cart line. Quantity is trusted; the cart layer
// rejects non-positive quantities before calling this.
func LineItemTotal(item domain.MenuItem, quantity int, customizations []domain.SelectedCustomization) float64 {
	unit := effectiveUnitPrice(item.Price, item.DiscountPrice)
	for _, customization := range customizations {
		for _, option := range customization.Options {
			unit = unit.Add(nonNegative(normalizeDecimal(option.Price)))
		}
	}
	return toFloat(unit.Mul(decimal.NewFromInt(int64(quantity))))
}

// HaversineDistanceKm is the great-circle distance rounded to one decimal.
// A missing point yields 0.
func HaversineDistanceKm(a, b *domain.GeoPoint) float64 {
	if a == nil || b == nil {
		return 0
	}

	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return math.Round(earthRadiusKm*c*10) / 10
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// ComputeDeliveryFee applies, in order: the long-distance flat fee, the
// minimum-order waiver, the standard per-order fee. A waived fee still pays
// the agent their commission on the standard fee.
func ComputeDeliveryFee(itemSubtotal, distanceKm float64, settings domain.DeliverySettings) domain.DeliveryFee {
	commission := decimal.NewFromFloat(settings.AgentCommissionPercentage).Div(hundred)
	standardFee := decimal.NewFromFloat(settings.DeliveryFeePerOrder)

	var customerFee, agentFee decimal.Decimal
	switch {
	case distanceKm > settings.LongDistanceThresholdKm:
		customerFee = decimal.NewFromFloat(settings.LongDistanceDeliveryFee)
		agentFee = customerFee.Mul(commission)
	case itemSubtotal >= settings.MinimumOrderValue:
		customerFee = decimal.Zero
		agentFee = standardFee.Mul(commission)
	default:
		customerFee = standardFee
		agentFee = customerFee.Mul(commission)
	}

	return domain.DeliveryFee{
		CustomerFee: toFloat(customerFee),
		AgentFee:    toFloat(agentFee),
	}
}

// ComputeBreakdown prices a cart with no promotion applied.
func ComputeBreakdown(lineItems []domain.CartLineItem, deliveryPoint, restaurantPoint *domain.GeoPoint, settings domain.DeliverySettings) domain.PricingBreakdown {
	return ComputeBreakdownWithPromotion(lineItems, deliveryPoint, restaurantPoint, settings, nil)
}

// ComputeBreakdownWithPromotion reuses each line's stored total rather than
// repricing it. The grand total never goes below zero.
func ComputeBreakdownWithPromotion(lineItems []domain.CartLineItem, deliveryPoint, restaurantPoint *domain.GeoPoint, settings domain.DeliverySettings, promotion Promotion) domain.PricingBreakdown {
	subtotal := decimal.Zero
	for _, line := range lineItems {
		subtotal = subtotal.Add(decimal.NewFromFloat(line.TotalPrice))
	}
	subtotalValue := toFloat(subtotal)

	var distanceKm float64
	if deliveryPoint != nil && restaurantPoint != nil {
		distanceKm = HaversineDistanceKm(restaurantPoint, deliveryPoint)
	}

	fee := ComputeDeliveryFee(subtotalValue, distanceKm, settings)

	tax := subtotal.Mul(decimal.NewFromFloat(settings.TaxPercentage)).Div(hundred).Round(0)

	discount := decimal.Zero
	if promotion != nil {
		discount = nonNegative(decimal.NewFromFloat(promotion.Discount(subtotalValue)))
	}

	total := subtotal.Add(decimal.NewFromFloat(fee.CustomerFee)).Add(tax).Sub(discount)
	total = nonNegative(total)

	return domain.PricingBreakdown{
		ItemSubtotal: subtotalValue,
		DeliveryFee:  fee.CustomerFee,
		AgentFee:     fee.AgentFee,
		Tax:          toFloat(tax),
		Discount:     toFloat(discount),
		Total:        toFloat(total),
		DistanceKm:   distanceKm,
	}
}

// ComputeSettlement splits the money collected for an order. The platform's
// share is what remains after tax, the restaurant payout and the agent fee,
// and is negative when a waived delivery fee is subsidised.
func ComputeSettlement(breakdown domain.PricingBreakdown, settings domain.DeliverySettings) domain.Settlement {
	subtotal := decimal.NewFromFloat(breakdown.ItemSubtotal)
	commission := subtotal.Mul(decimal.NewFromFloat(settings.RestaurantCommissionPercentage)).Div(hundred).Round(2)
	restaurantPayout := subtotal.Sub(commission).Round(2)
	agentPayout := decimal.NewFromFloat(breakdown.AgentFee).Round(2)

	platform := decimal.NewFromFloat(breakdown.Total).
		Sub(decimal.NewFromFloat(breakdown.Tax)).
		Sub(restaurantPayout).
		Sub(agentPayout).
		Round(2)

	return domain.Settlement{
		AgentPayout:          toFloat(agentPayout),
		RestaurantCommission: toFloat(commission),
		RestaurantPayout:     toFloat(restaurantPayout),
		PlatformEarning:      toFloat(platform),
	}
}
