package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"food-delivery/checkout-svc/internal/domain"
	"food-delivery/checkout-svc/internal/pricing"

	"github.com/sirupsen/logrus"
)

// CatalogService keeps the restaurants and menu items that carts and quotes
// read from.
type CatalogService struct {
	repo CatalogRepository
	log  *logrus.Entry
}

func NewCatalogService(repo CatalogRepository, log *logrus.Entry) *CatalogService {
	return &CatalogService{repo: repo, log: log}
}

func (s *CatalogService) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	rest.Name = strings.TrimSpace(rest.Name)
	if rest.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRestaurant)
	}
	if loc := rest.Location; loc != nil && (loc.Lat < -90 || loc.Lat > 90 || loc.Lng < -180 || loc.Lng > 180) {
		return fmt.Errorf("%w: location %.6f,%.6f is out of range", ErrInvalidRestaurant, loc.Lat, loc.Lng)
	}

	if err := s.repo.CreateRestaurant(ctx, rest); err != nil {
		return fmt.Errorf("create restaurant: %w", err)
	}
	s.log.WithFields(logrus.Fields{
		"restaurant_id": rest.ID,
		"has_location":  rest.Location != nil,
	}).Info("Restaurant created")
	return nil
}

func (s *CatalogService) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	rest, err := s.repo.GetRestaurant(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, err
	}
	return rest, nil
}

// AddMenuItem stores prices as plain numbers. A discount must be positive and
// below the regular price.
func (s *CatalogService) AddMenuItem(ctx context.Context, restaurantID int, item *domain.MenuItem) error {
	if _, err := s.GetRestaurant(ctx, restaurantID); err != nil {
		return err
	}

	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidMenuItem)
	}
	price := pricing.NormalizePrice(item.Price.Raw())
	if price <= 0 {
		return fmt.Errorf("%w: price must be a positive number", ErrInvalidMenuItem)
	}
	item.Price = domain.Price(price)
	if !item.DiscountPrice.IsZero() {
		discount := pricing.NormalizePrice(item.DiscountPrice.Raw())
		if discount <= 0 || discount >= price {
			return fmt.Errorf("%w: discount price must be positive and below %.2f", ErrInvalidMenuItem, price)
		}
		item.DiscountPrice = domain.Price(discount)
	}
	if item.FoodType != "" && !item.FoodType.Valid() {
		return fmt.Errorf("%w: unknown food type %q", ErrInvalidMenuItem, item.FoodType)
	}
	item.RestaurantID = restaurantID

	if err := s.repo.CreateMenuItem(ctx, item); err != nil {
		return fmt.Errorf("create menu item: %w", err)
	}
	s.log.WithFields(logrus.Fields{
		"restaurant_id": restaurantID,
		"menu_item_id":  item.ID,
	}).Info("Menu item added")
	return nil
}

func (s *CatalogService) ListMenu(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	if _, err := s.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	return s.repo.ListMenuItems(ctx, restaurantID)
}

func (s *CatalogService) SetAvailability(ctx context.Context, itemID int, available bool) error {
	changed, err := s.repo.SetMenuItemAvailability(ctx, itemID, available)
	if err != nil {
		return err
	}
	if changed == 0 {
		return ErrMenuItemNotFound
	}
	s.log.WithFields(logrus.Fields{
		"menu_item_id": itemID,
		"available":    available,
	}).Info("Menu item availability changed")
	return nil
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
