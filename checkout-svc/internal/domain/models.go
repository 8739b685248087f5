package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

type FoodType string

const (
	FoodTypeVeg    FoodType = "veg"
	FoodTypeNonVeg FoodType = "non-veg"
	FoodTypeEgg    FoodType = "egg"
)

func (t FoodType) Valid() bool {
	switch t {
	case FoodTypeVeg, FoodTypeNonVeg, FoodTypeEgg:
		return true
	}
	return false
}

// PriceValue keeps a price the way upstream records sent it: a number, a
// string or null. It is normalized only when arithmetic needs it.
type PriceValue struct {
	raw any
}

func Price(v any) PriceValue {
	return PriceValue{raw: v}
}

func (p PriceValue) Raw() any {
	return p.raw
}

func (p PriceValue) IsZero() bool {
	return p.raw == nil
}

// UnmarshalJSON never fails: anything that is not a usable price is kept as
// raw data and later normalizes to zero.
func (p *PriceValue) UnmarshalJSON(data []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		p.raw = nil
		return nil
	}
	p.raw = v
	return nil
}

func (p PriceValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.raw)
}

type Restaurant struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description,omitempty"`
	Location    *GeoPoint `json:"location,omitempty"`
}

type MenuItem struct {
	ID            int        `json:"id"`
	RestaurantID  int        `json:"restaurant_id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Price         PriceValue `json:"price"`
	DiscountPrice PriceValue `json:"discount_price"`
	FoodType      FoodType   `json:"food_type"`
	Available     bool       `json:"available"`
}

type CustomizationOption struct {
	Name  string     `json:"name"`
	Price PriceValue `json:"price"`
}

type SelectedCustomization struct {
	GroupID   string                `json:"group_id"`
	GroupName string                `json:"group_name"`
	Options   []CustomizationOption `json:"options"`
}

type CartLineItem struct {
	ID             string                  `json:"id"`
	Item           MenuItem                `json:"item"`
	Quantity       int                     `json:"quantity"`
	Customizations []SelectedCustomization `json:"customizations"`
	Instructions   string                  `json:"instructions,omitempty"`
	TotalPrice     float64                 `json:"total_price"`
}

type Cart struct {
	ID           string         `json:"id"`
	RestaurantID int            `json:"restaurant_id"`
	Items        []CartLineItem `json:"items"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type DeliverySettings struct {
	DeliveryFeePerOrder            float64   `json:"delivery_fee_per_order"`
	DeliveryRadiusKm               float64   `json:"delivery_radius_km"`
	LongDistanceThresholdKm        float64   `json:"long_distance_threshold_km"`
	LongDistanceDeliveryFee        float64   `json:"long_distance_delivery_fee"`
	MinimumOrderValue              float64   `json:"minimum_order_value"`
	TaxPercentage                  float64   `json:"tax_percentage"`
	AgentCommissionPercentage      float64   `json:"agent_commission_percentage"`
	PlatformCommissionPercentage   float64   `json:"platform_commission_percentage"`
	RestaurantCommissionPercentage float64   `json:"restaurant_commission_percentage"`
	UpdatedAt                      time.Time `json:"updated_at"`
}

type DeliveryFee struct {
	CustomerFee float64 `json:"customer_fee"`
	AgentFee    float64 `json:"agent_fee"`
}

type PricingBreakdown struct {
	ItemSubtotal float64 `json:"item_subtotal"`
	DeliveryFee  float64 `json:"delivery_fee"`
	AgentFee     float64 `json:"agent_fee"`
	Tax          float64 `json:"tax"`
	Discount     float64 `json:"discount"`
	Total        float64 `json:"total"`
	DistanceKm   float64 `json:"distance_km"`
}

type Settlement struct {
	AgentPayout          float64 `json:"agent_payout"`
	RestaurantCommission float64 `json:"restaurant_commission"`
	RestaurantPayout     float64 `json:"restaurant_payout"`
	PlatformEarning      float64 `json:"platform_earning"`
}

type Quote struct {
	CartID         string           `json:"cart_id,omitempty"`
	RestaurantID   int              `json:"restaurant_id"`
	Breakdown      PricingBreakdown `json:"breakdown"`
	Deliverable    bool             `json:"deliverable"`
	SettingsSource string           `json:"settings_source"`
}

type Order struct {
	ID            int              `json:"id"`
	Reference     string           `json:"reference"`
	CartID        string           `json:"cart_id"`
	RestaurantID  int              `json:"restaurant_id"`
	Status        string           `json:"status"`
	DeliveryPoint *GeoPoint        `json:"delivery_point,omitempty"`
	Breakdown     PricingBreakdown `json:"breakdown"`
	Settlement    Settlement       `json:"settlement"`
	QRCode        string           `json:"qr_code,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	Items         []OrderItem      `json:"items"`
}

type OrderItem struct {
	MenuItemID   int     `json:"menu_item_id"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	TotalPrice   float64 `json:"total_price"`
	Instructions string  `json:"instructions,omitempty"`
}

type OrderEvent struct {
	Type         string           `json:"type"`
	OrderID      int              `json:"order_id"`
	Reference    string           `json:"reference"`
	RestaurantID int              `json:"restaurant_id"`
	Breakdown    PricingBreakdown `json:"breakdown"`
	Settlement   Settlement       `json:"settlement"`
	Timestamp    time.Time        `json:"timestamp"`
}
