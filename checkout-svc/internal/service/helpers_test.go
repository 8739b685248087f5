package service_test

import (
	"food-delivery/checkout-svc/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

const kmPerDegreeLat = 111.19492664455873

var restaurantPoint = domain.GeoPoint{Lat: 12.9716, Lng: 77.5946}

func quietLogger() *logrus.Entry {
	logger, _ := test.NewNullLogger()
	return logrus.NewEntry(logger)
}

func pointNorthOf(origin domain.GeoPoint, km float64) *domain.GeoPoint {
	return &domain.GeoPoint{Lat: origin.Lat + km/kmPerDegreeLat, Lng: origin.Lng}
}

func spiceRoute() *domain.Restaurant {
	loc := restaurantPoint
	return &domain.Restaurant{ID: 10, Name: "Spice Route", Location: &loc}
}

func biryani() *domain.MenuItem {
	return &domain.MenuItem{ID: 1, RestaurantID: 10, Name: "Veg Biryani", Price: domain.Price("180"), DiscountPrice: domain.Price(150), Available: true}
}

func lassi() *domain.MenuItem {
	return &domain.MenuItem{ID: 2, RestaurantID: 10, Name: "Sweet Lassi", Price: domain.Price(70), Available: true}
}

// storedCart is a cart with an item subtotal of 220.
func storedCart() *domain.Cart {
	return &domain.Cart{
		ID:           "c1",
		RestaurantID: 10,
		Items: []domain.CartLineItem{
			{ID: "l1", Item: *biryani(), Quantity: 1, TotalPrice: 150, Instructions: "less spicy"},
			{ID: "l2", Item: *lassi(), Quantity: 1, TotalPrice: 70},
		},
	}
}
