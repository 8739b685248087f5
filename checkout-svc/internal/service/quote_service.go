package service

import (
	"context"
	"database/sql"
	"errors"

	"food-delivery/checkout-svc/internal/cart"
	"food-delivery/checkout-svc/internal/domain"
	"food-delivery/checkout-svc/internal/pricing"
	"food-delivery/checkout-svc/internal/settings"

	"github.com/sirupsen/logrus"
)

type QuoteService struct {
	carts       CartStore
	menu        MenuRepository
	restaurants RestaurantRepository
	settings    SettingsResolver
	promotion   pricing.Promotion
	log         *logrus.Entry
}

// NewQuoteService applies promotion, when non-nil, to every quote and order.
func NewQuoteService(carts CartStore, menu MenuRepository, restaurants RestaurantRepository, resolver SettingsResolver, promotion pricing.Promotion, log *logrus.Entry) *QuoteService {
	return &QuoteService{
		carts:       carts,
		menu:        menu,
		restaurants: restaurants,
		settings:    resolver,
		promotion:   promotion,
		log:         log,
	}
}

func (s *QuoteService) Quote(ctx context.Context, cartID string, deliveryPoint *domain.GeoPoint) (*domain.Quote, error) {
	c, ok, err := s.carts.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCartNotFound
	}
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	quote, _, err := s.price(ctx, c.RestaurantID, c.Items, deliveryPoint)
	if err != nil {
		return nil, err
	}
	quote.CartID = cartID
	return quote, nil
}

// QuoteLines prices items that were never put in a stored cart. Lines go
// through the same validation and merging as a real cart.
func (s *QuoteService) QuoteLines(ctx context.Context, restaurantID int, lines []AddItemRequest, deliveryPoint *domain.GeoPoint) (*domain.Quote, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	scratch := &domain.Cart{RestaurantID: restaurantID}
	for _, line := range lines {
		item, err := s.menu.GetMenuItem(ctx, line.MenuItemID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		if err != nil {
			return nil, err
		}
		if scratch.RestaurantID != 0 && item.RestaurantID != scratch.RestaurantID {
			return nil, ErrMixedRestaurants
		}
		if _, _, err := cart.AddItem(scratch, *item, line.Quantity, line.Customizations, line.Instructions); err != nil {
			return nil, err
		}
	}

	quote, _, err := s.price(ctx, scratch.RestaurantID, scratch.Items, deliveryPoint)
	return quote, err
}

func (s *QuoteService) price(ctx context.Context, restaurantID int, lines []domain.CartLineItem, deliveryPoint *domain.GeoPoint) (*domain.Quote, domain.DeliverySettings, error) {
	restaurant, err := s.restaurants.GetRestaurant(ctx, restaurantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.DeliverySettings{}, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, domain.DeliverySettings{}, err
	}

	resolved, source := s.settings.Resolve(ctx)
	if source != settings.SourceCache {
		s.log.WithField("source", source).Debug("Delivery settings resolved")
	}

	breakdown := pricing.ComputeBreakdownWithPromotion(lines, deliveryPoint, restaurant.Location, resolved, s.promotion)

	return &domain.Quote{
		RestaurantID:   restaurantID,
		Breakdown:      breakdown,
		Deliverable:    withinRadius(breakdown.DistanceKm, resolved),
		SettingsSource: string(source),
	}, resolved, nil
}

// withinRadius treats a zero radius as unlimited.
func withinRadius(distanceKm float64, s domain.DeliverySettings) bool {
	return s.DeliveryRadiusKm <= 0 || distanceKm <= s.DeliveryRadiusKm
}

var _ QuoteServiceInterface = (*QuoteService)(nil)
