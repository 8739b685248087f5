package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"food-delivery/checkout-svc/internal/domain"
	"food-delivery/checkout-svc/internal/pricing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	OrderStatusPlaced = "placed"
	EventOrderPlaced  = "order_placed"
)

type OrderService struct {
	carts     CartStore
	quotes    *QuoteService
	repo      OrderRepository
	publisher OrderPublisher
	qrEncoder QRGenerator
	log       *logrus.Entry
}

func NewOrderService(carts CartStore, quotes *QuoteService, repo OrderRepository, publisher OrderPublisher, qr QRGenerator, log *logrus.Entry) *OrderService {
	return &OrderService{
		carts:     carts,
		quotes:    quotes,
		repo:      repo,
		publisher: publisher,
		qrEncoder: qr,
		log:       log,
	}
}

// PlaceOrder prices the cart once more with current settings and persists the
// result. Once the order row is committed, QR, event and cart cleanup
// failures are logged and do not fail the order.
func (s *OrderService) PlaceOrder(ctx context.Context, cartID string, deliveryPoint *domain.GeoPoint) (*domain.Order, error) {
	if deliveryPoint == nil {
		return nil, ErrMissingDeliveryPoint
	}

	// The claim keeps a second checkout and any cart edit out until this one
	// has deleted the cart.
	reference := uuid.NewString()
	claimed, err := s.carts.ClaimCheckout(ctx, cartID, reference)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrCheckoutInProgress
	}
	defer func() {
		if err := s.carts.ReleaseCheckout(context.WithoutCancel(ctx), cartID, reference); err != nil {
			s.log.WithError(err).WithField("cart_id", cartID).Warn("Failed to release checkout claim")
		}
	}()

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

	quote, resolved, err := s.quotes.price(ctx, c.RestaurantID, c.Items, deliveryPoint)
	if err != nil {
		return nil, err
	}
	if !quote.Deliverable {
		return nil, fmt.Errorf("%w: %.1f km exceeds %.1f km", ErrOutsideDeliveryRadius, quote.Breakdown.DistanceKm, resolved.DeliveryRadiusKm)
	}

	order := &domain.Order{
		Reference:     reference,
		CartID:        cartID,
		RestaurantID:  c.RestaurantID,
		Status:        OrderStatusPlaced,
		DeliveryPoint: deliveryPoint,
		Breakdown:     quote.Breakdown,
		Settlement:    pricing.ComputeSettlement(quote.Breakdown, resolved),
		Items:         make([]domain.OrderItem, 0, len(c.Items)),
	}
	for _, line := range c.Items {
		order.Items = append(order.Items, domain.OrderItem{
			MenuItemID:   line.Item.ID,
			Name:         line.Item.Name,
			Quantity:     line.Quantity,
			TotalPrice:   line.TotalPrice,
			Instructions: line.Instructions,
		})
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	logger := s.log.WithFields(logrus.Fields{
		"order_id":      order.ID,
		"reference":     order.Reference,
		"restaurant_id": order.RestaurantID,
	})

	if s.qrEncoder != nil {
		if qr, err := s.qrEncoder.Generate(order.ID); err != nil {
			logger.WithError(err).Warn("Failed to generate QR code")
		} else if err := s.repo.SaveQRCode(ctx, order.ID, qr); err != nil {
			logger.WithError(err).Warn("Failed to store QR code")
		}
	}
	order.QRCode = QRLink(order.ID)

	event := domain.OrderEvent{
		Type:         EventOrderPlaced,
		OrderID:      order.ID,
		Reference:    order.Reference,
		RestaurantID: order.RestaurantID,
		Breakdown:    order.Breakdown,
		Settlement:   order.Settlement,
		Timestamp:    time.Now().UTC(),
	}
	if err := s.publisher.PublishOrder(ctx, event); err != nil {
		logger.WithError(err).Error("Failed to publish order event")
	}

	if err := s.carts.DeleteCart(ctx, cartID); err != nil {
		logger.WithError(err).Warn("Failed to clear cart after checkout")
	}

	logger.WithField("total", order.Breakdown.Total).Info("Order placed")
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, orderID int) (*domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	order.QRCode = QRLink(order.ID)
	return order, nil
}

// GetQRCode regenerates and stores the code when the order has none yet.
func (s *OrderService) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	qr, err := s.repo.GetQRCode(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		regenerated, err := s.qrEncoder.Generate(orderID)
		if err != nil {
			return nil, err
		}
		if err := s.repo.SaveQRCode(ctx, orderID, regenerated); err != nil {
			s.log.WithError(err).WithField("order_id", orderID).Warn("Failed to cache regenerated QR code")
		}
		return regenerated, nil
	}
	return qr, nil
}

func QRLink(orderID int) string {
	return fmt.Sprintf("/api/orders/%d/qrcode", orderID)
}

var _ OrderServiceInterface = (*OrderService)(nil)
