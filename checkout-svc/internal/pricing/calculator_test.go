package pricing

import (
	"encoding/json"
	"math"
	"testing"

	"food-delivery/checkout-svc/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() domain.DeliverySettings {
	return domain.DeliverySettings{
		DeliveryFeePerOrder:       40,
		DeliveryRadiusKm:          10,
		LongDistanceThresholdKm:   7,
		LongDistanceDeliveryFee:   60,
		MinimumOrderValue:         199,
		TaxPercentage:             5,
		AgentCommissionPercentage: 80,
	}
}

// One degree of latitude is roughly 111.19 km on a 6371 km sphere.
func pointNorthOf(origin domain.GeoPoint, km float64) *domain.GeoPoint {
	return &domain.GeoPoint{Lat: origin.Lat + km/111.19492664455873, Lng: origin.Lng}
}

func TestNormalizePrice(t *testing.T) {
	var nilString *string
	text := " 42.75 "

	tests := []struct {
		name  string
		input any
		want  float64
	}{
		{name: "nil", input: nil, want: 0},
		{name: "empty string", input: "", want: 0},
		{name: "whitespace string", input: "   ", want: 0},
		{name: "numeric string", input: "12.5", want: 12.5},
		{name: "padded numeric string", input: " 80 ", want: 80},
		{name: "garbage string", input: "abc", want: 0},
		{name: "currency prefixed string", input: "Rs 120", want: 0},
		{name: "not a number literal", input: "NaN", want: 0},
		{name: "exponent beyond float range", input: "1e400", want: 0},
		{name: "negative exponent beyond float range", input: "-1e400", want: 0},
		{name: "price value beyond float range", input: domain.Price("1e400"), want: 0},
		{name: "float", input: 99.9, want: 99.9},
		{name: "NaN float", input: math.NaN(), want: 0},
		{name: "infinite float", input: math.Inf(1), want: 0},
		{name: "int", input: 150, want: 150},
		{name: "negative passes through", input: -5, want: -5},
		{name: "json number", input: json.Number("17.25"), want: 17.25},
		{name: "price value", input: domain.Price("30"), want: 30},
		{name: "nil string pointer", input: nilString, want: 0},
		{name: "string pointer", input: &text, want: 42.75},
		{name: "unsupported kind", input: []int{1}, want: 0},
		{name: "boolean", input: true, want: 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, NormalizePrice(testCase.input))
		})
	}
}

func TestOutOfRangePricesDegradeToZero(t *testing.T) {
	assert.Equal(t, 0.0, EffectiveUnitPrice("1e400", nil))
	assert.Equal(t, 80.0, EffectiveUnitPrice(80, "1e400"))

	item := domain.MenuItem{ID: 1, RestaurantID: 10, Price: domain.Price(100), Available: true}
	huge := []domain.SelectedCustomization{{GroupID: "extras", Options: []domain.CustomizationOption{{Name: "Gold leaf", Price: domain.Price("1e400")}}}}
	total := LineItemTotal(item, 2, huge)

	assert.Equal(t, 200.0, total)
	assert.False(t, math.IsInf(total, 0))
}

func TestNonNegativePrice(t *testing.T) {
	assert.Equal(t, 0.0, NonNegativePrice(-5))
	assert.Equal(t, 0.0, NonNegativePrice("-12"))
	assert.Equal(t, 7.5, NonNegativePrice("7.5"))
}

func TestEffectiveUnitPrice(t *testing.T) {
	tests := []struct {
		name     string
		base     any
		discount any
		want     float64
	}{
		{name: "real discount", base: 100, discount: 80, want: 80},
		{name: "discount above base", base: 100, discount: 120, want: 100},
		{name: "discount equal to base", base: 100, discount: 100, want: 100},
		{name: "zero discount", base: 100, discount: 0, want: 100},
		{name: "negative discount", base: 100, discount: -10, want: 100},
		{name: "unparseable discount", base: 100, discount: "abc", want: 100},
		{name: "missing discount", base: "100", discount: nil, want: 100},
		{name: "textual prices", base: "250", discount: "199.5", want: 199.5},
		{name: "unparseable base", base: "n/a", discount: 50, want: 0},
		{name: "negative base", base: -20, discount: nil, want: 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, EffectiveUnitPrice(testCase.base, testCase.discount))
		})
	}
}

func TestLineItemTotal(t *testing.T) {
	item := domain.MenuItem{ID: 1, Name: "Paneer Tikka", Price: domain.Price("120.5"), DiscountPrice: domain.Price("99.99")}
	customizations := []domain.SelectedCustomization{
		{GroupID: "size", Options: []domain.CustomizationOption{{Name: "Large", Price: domain.Price(15.25)}}},
		{GroupID: "extras", Options: []domain.CustomizationOption{
			{Name: "Cheese", Price: domain.Price("10")},
			{Name: "Broken", Price: domain.Price("??")},
			{Name: "Refund", Price: domain.Price(-30)},
		}},
	}

	assert.InDelta(t, 125.24, LineItemTotal(item, 1, customizations), 1e-9)
	assert.InDelta(t, 375.72, LineItemTotal(item, 3, customizations), 1e-9)

	t.Run("scales linearly with quantity", func(t *testing.T) {
		for q := 1; q <= 12; q++ {
			single := LineItemTotal(item, q, customizations)
			double := LineItemTotal(item, 2*q, customizations)
			assert.InDelta(t, 2*single, double, 1e-9, "quantity %d", q)
			assert.GreaterOrEqual(t, single, 0.0)
		}
	})

	t.Run("no customizations", func(t *testing.T) {
		plain := domain.MenuItem{Price: domain.Price(220)}
		assert.Equal(t, 440.0, LineItemTotal(plain, 2, nil))
	})

	t.Run("malformed item price", func(t *testing.T) {
		broken := domain.MenuItem{Price: domain.Price("")}
		assert.Equal(t, 0.0, LineItemTotal(broken, 4, nil))
	})
}

func TestHaversineDistanceKm(t *testing.T) {
	origin := domain.GeoPoint{Lat: 19.0760, Lng: 72.8777}

	t.Run("same point", func(t *testing.T) {
		points := []domain.GeoPoint{origin, {Lat: 0, Lng: 0}, {Lat: -33.86, Lng: 151.2}, {Lat: 89.9, Lng: -179.9}}
		for _, p := range points {
			p := p
			assert.Equal(t, 0.0, HaversineDistanceKm(&p, &p))
		}
	})

	t.Run("missing point", func(t *testing.T) {
		assert.Equal(t, 0.0, HaversineDistanceKm(nil, &origin))
		assert.Equal(t, 0.0, HaversineDistanceKm(&origin, nil))
		assert.Equal(t, 0.0, HaversineDistanceKm(nil, nil))
	})

	t.Run("rounded to one decimal", func(t *testing.T) {
		assert.Equal(t, 3.0, HaversineDistanceKm(&origin, pointNorthOf(origin, 3)))
		assert.Equal(t, 9.0, HaversineDistanceKm(&origin, pointNorthOf(origin, 9)))
	})

	t.Run("symmetric", func(t *testing.T) {
		other := &domain.GeoPoint{Lat: 18.5204, Lng: 73.8567}
		assert.Equal(t, HaversineDistanceKm(&origin, other), HaversineDistanceKm(other, &origin))
		assert.InDelta(t, 120, HaversineDistanceKm(&origin, other), 5)
	})
}

func TestComputeDeliveryFee(t *testing.T) {
	settings := testSettings()

	tests := []struct {
		name         string
		subtotal     float64
		distance     float64
		wantCustomer float64
		wantAgent    float64
	}{
		{name: "minimum order waives fee", subtotal: 250, distance: 2, wantCustomer: 0, wantAgent: 32},
		{name: "minimum order boundary", subtotal: 199, distance: 2, wantCustomer: 0, wantAgent: 32},
		{name: "small order pays standard fee", subtotal: 100, distance: 2, wantCustomer: 40, wantAgent: 32},
		{name: "long distance overrides small order", subtotal: 100, distance: 10, wantCustomer: 60, wantAgent: 48},
		{name: "long distance overrides waiver", subtotal: 500, distance: 7.1, wantCustomer: 60, wantAgent: 48},
		{name: "threshold distance is not long", subtotal: 500, distance: 7, wantCustomer: 0, wantAgent: 32},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			fee := ComputeDeliveryFee(testCase.subtotal, testCase.distance, settings)
			assert.Equal(t, testCase.wantCustomer, fee.CustomerFee)
			assert.Equal(t, testCase.wantAgent, fee.AgentFee)
		})
	}

	t.Run("zero commission", func(t *testing.T) {
		s := testSettings()
		s.AgentCommissionPercentage = 0
		fee := ComputeDeliveryFee(100, 1, s)
		assert.Equal(t, 40.0, fee.CustomerFee)
		assert.Equal(t, 0.0, fee.AgentFee)
	})
}

func line(total float64) domain.CartLineItem {
	return domain.CartLineItem{ID: "line", Quantity: 1, TotalPrice: total}
}

func TestComputeBreakdown(t *testing.T) {
	settings := testSettings()
	restaurant := domain.GeoPoint{Lat: 12.9716, Lng: 77.5946}

	t.Run("nearby order above minimum", func(t *testing.T) {
		item := domain.MenuItem{ID: 7, Price: domain.Price(220)}
		lines := []domain.CartLineItem{{ID: "a", Item: item, Quantity: 1, TotalPrice: LineItemTotal(item, 1, nil)}}

		breakdown := ComputeBreakdown(lines, pointNorthOf(restaurant, 3), &restaurant, settings)

		assert.Equal(t, 220.0, breakdown.ItemSubtotal)
		assert.Equal(t, 0.0, breakdown.DeliveryFee)
		assert.Equal(t, 11.0, breakdown.Tax)
		assert.Equal(t, 0.0, breakdown.Discount)
		assert.Equal(t, 231.0, breakdown.Total)
		assert.Equal(t, 3.0, breakdown.DistanceKm)
		assert.Equal(t, 32.0, breakdown.AgentFee)
	})

	t.Run("far order pays long-distance fee", func(t *testing.T) {
		lines := []domain.CartLineItem{line(220)}

		breakdown := ComputeBreakdown(lines, pointNorthOf(restaurant, 9), &restaurant, settings)

		assert.Equal(t, 60.0, breakdown.DeliveryFee)
		assert.Equal(t, 11.0, breakdown.Tax)
		assert.Equal(t, 291.0, breakdown.Total)
		assert.Equal(t, 9.0, breakdown.DistanceKm)
	})

	t.Run("missing delivery point means zero distance", func(t *testing.T) {
		breakdown := ComputeBreakdown([]domain.CartLineItem{line(150)}, nil, &restaurant, settings)

		assert.Equal(t, 0.0, breakdown.DistanceKm)
		assert.Equal(t, 40.0, breakdown.DeliveryFee)
		assert.Equal(t, 8.0, breakdown.Tax)
		assert.Equal(t, 198.0, breakdown.Total)
	})

	t.Run("stored line totals are reused", func(t *testing.T) {
		item := domain.MenuItem{Price: domain.Price(500)}
		stale := domain.CartLineItem{Item: item, Quantity: 2, TotalPrice: 300}

		breakdown := ComputeBreakdown([]domain.CartLineItem{stale}, nil, nil, settings)

		assert.Equal(t, 300.0, breakdown.ItemSubtotal)
	})

	t.Run("tax rounds to whole units", func(t *testing.T) {
		breakdown := ComputeBreakdown([]domain.CartLineItem{line(109.9), line(0.1)}, nil, nil, settings)

		assert.InDelta(t, 110.0, breakdown.ItemSubtotal, 1e-9)
		assert.Equal(t, 6.0, breakdown.Tax)
	})

	t.Run("empty cart", func(t *testing.T) {
		breakdown := ComputeBreakdown(nil, nil, nil, settings)

		assert.Equal(t, 0.0, breakdown.ItemSubtotal)
		assert.Equal(t, 40.0, breakdown.DeliveryFee)
		assert.Equal(t, 40.0, breakdown.Total)
	})

	t.Run("total never negative", func(t *testing.T) {
		promo := FlatPromotion{Amount: 10000}

		breakdown := ComputeBreakdownWithPromotion([]domain.CartLineItem{line(220)}, nil, nil, settings, promo)

		assert.Equal(t, 10000.0, breakdown.Discount)
		assert.Equal(t, 0.0, breakdown.Total)
	})

	t.Run("percentage promotion", func(t *testing.T) {
		promo := PercentPromotion{Percent: 10, MaxDiscount: 50}

		breakdown := ComputeBreakdownWithPromotion([]domain.CartLineItem{line(220)}, nil, nil, settings, promo)

		assert.Equal(t, 22.0, breakdown.Discount)
		assert.Equal(t, 209.0, breakdown.Total)
	})
}

func TestComputeBreakdown_TotalIdentity(t *testing.T) {
	settings := testSettings()
	restaurant := domain.GeoPoint{Lat: 28.6139, Lng: 77.2090}

	for _, subtotal := range []float64{0, 49.5, 198.99, 199, 560.25} {
		for _, km := range []float64{0, 2, 6.9, 7.5, 15} {
			breakdown := ComputeBreakdown([]domain.CartLineItem{line(subtotal)}, pointNorthOf(restaurant, km), &restaurant, settings)
			expected := math.Max(0, breakdown.ItemSubtotal+breakdown.DeliveryFee+breakdown.Tax-breakdown.Discount)
			require.InDelta(t, expected, breakdown.Total, 1e-9, "subtotal %v distance %v", subtotal, km)
			require.GreaterOrEqual(t, breakdown.Total, 0.0)
		}
	}
}

func TestComputeSettlement(t *testing.T) {
	settings := testSettings()
	settings.RestaurantCommissionPercentage = 20

	t.Run("paid delivery", func(t *testing.T) {
		breakdown := domain.PricingBreakdown{ItemSubtotal: 150, DeliveryFee: 40, AgentFee: 32, Tax: 8, Total: 198}

		settlement := ComputeSettlement(breakdown, settings)

		assert.Equal(t, 32.0, settlement.AgentPayout)
		assert.Equal(t, 30.0, settlement.RestaurantCommission)
		assert.Equal(t, 120.0, settlement.RestaurantPayout)
		assert.Equal(t, 38.0, settlement.PlatformEarning)
	})

	t.Run("waived delivery is subsidised", func(t *testing.T) {
		settings.RestaurantCommissionPercentage = 0
		breakdown := domain.PricingBreakdown{ItemSubtotal: 220, DeliveryFee: 0, AgentFee: 32, Tax: 11, Total: 231}

		settlement := ComputeSettlement(breakdown, settings)

		assert.Equal(t, 220.0, settlement.RestaurantPayout)
		assert.Equal(t, -32.0, settlement.PlatformEarning)
	})
}

func TestNewPromotion(t *testing.T) {
	tests := []struct {
		name                                    string
		flat, minSubtotal, percent, maxDiscount float64
		want                                    Promotion
	}{
		{name: "nothing configured", want: nil},
		{name: "flat", flat: 50, minSubtotal: 300, want: FlatPromotion{Amount: 50, MinSubtotal: 300}},
		{name: "percent", percent: 10, maxDiscount: 40, want: PercentPromotion{Percent: 10, MaxDiscount: 40}},
		{name: "flat wins over percent", flat: 25, percent: 10, want: FlatPromotion{Amount: 25}},
		{name: "negative values ignored", flat: -5, percent: -10, want: nil},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got := NewPromotion(testCase.flat, testCase.minSubtotal, testCase.percent, testCase.maxDiscount)
			if testCase.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestPromotions(t *testing.T) {
	assert.Equal(t, 0.0, FlatPromotion{Amount: 50, MinSubtotal: 300}.Discount(250))
	assert.Equal(t, 50.0, FlatPromotion{Amount: 50, MinSubtotal: 300}.Discount(300))
	assert.Equal(t, 0.0, FlatPromotion{Amount: -5}.Discount(300))
	assert.Equal(t, 25.0, PercentPromotion{Percent: 50, MaxDiscount: 25}.Discount(100))
	assert.Equal(t, 12.35, PercentPromotion{Percent: 5}.Discount(247))
	assert.Equal(t, 0.0, PercentPromotion{Percent: 10}.Discount(0))
}
