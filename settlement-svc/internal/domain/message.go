package domain

import "time"

const EventOrderPlaced = "order_placed"

type Breakdown struct {
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

// OrderEvent is the message checkout publishes on the orders topic.
type OrderEvent struct {
	Type         string     `json:"type"`
	OrderID      int        `json:"order_id"`
	Reference    string     `json:"reference"`
	RestaurantID int        `json:"restaurant_id"`
	Breakdown    Breakdown  `json:"breakdown"`
	Settlement   Settlement `json:"settlement"`
	Timestamp    time.Time  `json:"timestamp"`
}

// Day is the settlement day an order is booked on, in UTC.
func (e OrderEvent) Day() string {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return ts.UTC().Format("2006-01-02")
}

type DailySettlement struct {
	Date             string  `json:"date"`
	RestaurantID     int     `json:"restaurant_id"`
	Orders           int64   `json:"orders"`
	Gross            float64 `json:"gross"`
	Tax              float64 `json:"tax"`
	AgentPayout      float64 `json:"agent_payout"`
	RestaurantPayout float64 `json:"restaurant_payout"`
	PlatformEarning  float64 `json:"platform_earning"`
}
