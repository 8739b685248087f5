package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidSettings = errors.New("invalid delivery settings")

// DefaultDeliverySettings is used when neither a fresh fetch nor a previously
// cached record is available.
func DefaultDeliverySettings() DeliverySettings {
	return DeliverySettings{
		DeliveryFeePerOrder:            40,
		DeliveryRadiusKm:               10,
		LongDistanceThresholdKm:        7,
		LongDistanceDeliveryFee:        60,
		MinimumOrderValue:              199,
		TaxPercentage:                  5,
		AgentCommissionPercentage:      80,
		PlatformCommissionPercentage:   0,
		RestaurantCommissionPercentage: 0,
	}
}

type settingsField struct {
	name  string
	value float64
}

// Validate reports the first offending field, percentages first, in the
// order they appear on the settings record.
func (s DeliverySettings) Validate() error {
	percentages := []settingsField{
		{"tax_percentage", s.TaxPercentage},
		{"agent_commission_percentage", s.AgentCommissionPercentage},
		{"platform_commission_percentage", s.PlatformCommissionPercentage},
		{"restaurant_commission_percentage", s.RestaurantCommissionPercentage},
	}
	for _, field := range percentages {
		if field.value < 0 || field.value > 100 {
			return fmt.Errorf("%w: %s must be within [0,100], got %v", ErrInvalidSettings, field.name, field.value)
		}
	}

	amounts := []settingsField{
		{"delivery_fee_per_order", s.DeliveryFeePerOrder},
		{"delivery_radius_km", s.DeliveryRadiusKm},
		{"long_distance_threshold_km", s.LongDistanceThresholdKm},
		{"long_distance_delivery_fee", s.LongDistanceDeliveryFee},
		{"minimum_order_value", s.MinimumOrderValue},
	}
	for _, field := range amounts {
		if field.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidSettings, field.name, field.value)
		}
	}

	return nil
}
