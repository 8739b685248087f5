package service

import (
	"context"
	"database/sql"
	"errors"

	"food-delivery/checkout-svc/internal/cart"
	"food-delivery/checkout-svc/internal/domain"

	"github.com/sirupsen/logrus"
)

type CartService struct {
	store CartStore
	menu  MenuRepository
	log   *logrus.Entry
}

func NewCartService(store CartStore, menu MenuRepository, log *logrus.Entry) *CartService {
	return &CartService{store: store, menu: menu, log: log}
}

// Get returns an empty cart for an id that has nothing stored yet.
func (s *CartService) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	c, ok, err := s.store.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &domain.Cart{ID: cartID, Items: []domain.CartLineItem{}}, nil
	}
	return c, nil
}

func (s *CartService) AddItem(ctx context.Context, cartID string, req AddItemRequest) (*domain.Cart, bool, error) {
	item, err := s.lookupItem(ctx, req.MenuItemID)
	if err != nil {
		return nil, false, err
	}

	var cleared bool
	c, err := s.store.UpdateCart(ctx, cartID, func(c *domain.Cart, _ bool) error {
		var err error
		_, cleared, err = cart.AddItem(c, *item, req.Quantity, req.Customizations, req.Instructions)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	if cleared {
		s.log.WithFields(logrus.Fields{
			"cart_id":       cartID,
			"restaurant_id": item.RestaurantID,
		}).Info("Cart switched restaurant, previous items dropped")
	}
	return c, cleared, nil
}

func (s *CartService) UpdateLine(ctx context.Context, cartID, lineID string, req UpdateLineRequest) (*domain.Cart, error) {
	return s.store.UpdateCart(ctx, cartID, func(c *domain.Cart, exists bool) error {
		if !exists {
			return ErrCartNotFound
		}
		if req.Customizations != nil {
			if err := cart.UpdateCustomizations(c, lineID, *req.Customizations); err != nil {
				return err
			}
		}
		if req.Quantity != nil {
			return cart.UpdateQuantity(c, lineID, *req.Quantity)
		}
		return nil
	})
}

func (s *CartService) RemoveLine(ctx context.Context, cartID, lineID string) (*domain.Cart, error) {
	return s.store.UpdateCart(ctx, cartID, func(c *domain.Cart, exists bool) error {
		if !exists {
			return ErrCartNotFound
		}
		return cart.RemoveLine(c, lineID)
	})
}

func (s *CartService) Clear(ctx context.Context, cartID string) error {
	return s.store.DeleteCart(ctx, cartID)
}

func (s *CartService) lookupItem(ctx context.Context, itemID int) (*domain.MenuItem, error) {
	item, err := s.menu.GetMenuItem(ctx, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMenuItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

var _ CartServiceInterface = (*CartService)(nil)

