package service

import (
	"context"
	"errors"

	"food-delivery/checkout-svc/internal/domain"
	"food-delivery/checkout-svc/internal/settings"
	"food-delivery/checkout-svc/internal/storage"
)

var (
	ErrCartNotFound          = errors.New("cart not found")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrMenuItemNotFound      = errors.New("menu item not found")
	ErrRestaurantNotFound    = errors.New("restaurant not found")
	ErrOrderNotFound         = errors.New("order not found")
	ErrOutsideDeliveryRadius = errors.New("delivery point is outside the delivery radius")
	ErrMissingDeliveryPoint  = errors.New("delivery point is required")
	ErrMixedRestaurants      = errors.New("items belong to different restaurants")
	ErrInvalidRestaurant     = errors.New("invalid restaurant")
	ErrInvalidMenuItem       = errors.New("invalid menu item")

	ErrCheckoutInProgress = storage.ErrCheckoutInProgress
	ErrCartContended      = storage.ErrCartContended
)

type CartStore interface {
	GetCart(ctx context.Context, cartID string) (*domain.Cart, bool, error)
	UpdateCart(ctx context.Context, cartID string, fn func(c *domain.Cart, exists bool) error) (*domain.Cart, error)
	DeleteCart(ctx context.Context, cartID string) error
	ClaimCheckout(ctx context.Context, cartID, token string) (bool, error)
	ReleaseCheckout(ctx context.Context, cartID, token string) error
}

type MenuRepository interface {
	GetMenuItem(ctx context.Context, itemID int) (*domain.MenuItem, error)
}

type RestaurantRepository interface {
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
}

// CatalogRepository is the write side of the restaurant and menu tables.
type CatalogRepository interface {
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	ListMenuItems(ctx context.Context, restaurantID int) ([]domain.MenuItem, error)
	SetMenuItemAvailability(ctx context.Context, itemID int, available bool) (int64, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	SaveQRCode(ctx context.Context, orderID int, qr []byte) error
	GetOrder(ctx context.Context, orderID int) (*domain.Order, error)
	GetQRCode(ctx context.Context, orderID int) ([]byte, error)
}

type SettingsRepository interface {
	GetDeliverySettings(ctx context.Context) (domain.DeliverySettings, error)
	UpdateDeliverySettings(ctx context.Context, s *domain.DeliverySettings) error
}

type OrderPublisher interface {
	PublishOrder(ctx context.Context, event domain.OrderEvent) error
}

type SettingsResolver interface {
	Resolve(ctx context.Context) (domain.DeliverySettings, settings.Source)
	Invalidate()
}

// SharedSettings is the settings copy shared by all replicas.
type SharedSettings interface {
	Publish(ctx context.Context, s domain.DeliverySettings) error
	Invalidate(ctx context.Context) error
}

type AddItemRequest struct {
	MenuItemID     int                            `json:"menu_item_id"`
	Quantity       int                            `json:"quantity"`
	Customizations []domain.SelectedCustomization `json:"customizations"`
	Instructions   string                         `json:"instructions"`
}

// UpdateLineRequest changes only the fields that are set.
type UpdateLineRequest struct {
	Quantity       *int                            `json:"quantity"`
	Customizations *[]domain.SelectedCustomization `json:"customizations"`
}

type CartServiceInterface interface {
	Get(ctx context.Context, cartID string) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID string, req AddItemRequest) (*domain.Cart, bool, error)
	UpdateLine(ctx context.Context, cartID, lineID string, req UpdateLineRequest) (*domain.Cart, error)
	RemoveLine(ctx context.Context, cartID, lineID string) (*domain.Cart, error)
	Clear(ctx context.Context, cartID string) error
}

type QuoteServiceInterface interface {
	Quote(ctx context.Context, cartID string, deliveryPoint *domain.GeoPoint) (*domain.Quote, error)
	QuoteLines(ctx context.Context, restaurantID int, lines []AddItemRequest, deliveryPoint *domain.GeoPoint) (*domain.Quote, error)
}

type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, cartID string, deliveryPoint *domain.GeoPoint) (*domain.Order, error)
	Get(ctx context.Context, orderID int) (*domain.Order, error)
	GetQRCode(ctx context.Context, orderID int) ([]byte, error)
}

type CatalogServiceInterface interface {
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	AddMenuItem(ctx context.Context, restaurantID int, item *domain.MenuItem) error
	ListMenu(ctx context.Context, restaurantID int) ([]domain.MenuItem, error)
	SetAvailability(ctx context.Context, itemID int, available bool) error
}

type SettingsServiceInterface interface {
	Get(ctx context.Context) (domain.DeliverySettings, settings.Source)
	Update(ctx context.Context, s *domain.DeliverySettings) error
	Refresh(ctx context.Context) (domain.DeliverySettings, settings.Source)
}

var (
	_ CartStore            = (*storage.RedisCartStore)(nil)
	_ MenuRepository       = (*storage.PostgresRepository)(nil)
	_ RestaurantRepository = (*storage.PostgresRepository)(nil)
	_ CatalogRepository    = (*storage.PostgresRepository)(nil)
	_ OrderRepository      = (*storage.PostgresRepository)(nil)
	_ SettingsRepository   = (*storage.PostgresRepository)(nil)
	_ OrderPublisher       = (*storage.KafkaPublisher)(nil)
	_ SettingsResolver     = (*settings.Resolver)(nil)
	_ SharedSettings       = (*settings.LayeredProvider)(nil)
)
