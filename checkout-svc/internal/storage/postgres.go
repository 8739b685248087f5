package storage

import (
	"context"
	"database/sql"
	"fmt"

	"food-delivery/checkout-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) GetDeliverySettings(ctx context.Context) (domain.DeliverySettings, error) {
	var s domain.DeliverySettings
	err := r.DB.QueryRowContext(ctx, `
		SELECT delivery_fee_per_order, delivery_radius_km, long_distance_threshold_km, long_distance_delivery_fee,
		       minimum_order_value, tax_percentage, agent_commission_percentage,
		       platform_commission_percentage, restaurant_commission_percentage, updated_at
		FROM delivery_settings
		WHERE id = 1`).
		Scan(&s.DeliveryFeePerOrder, &s.DeliveryRadiusKm, &s.LongDistanceThresholdKm, &s.LongDistanceDeliveryFee,
			&s.MinimumOrderValue, &s.TaxPercentage, &s.AgentCommissionPercentage,
			&s.PlatformCommissionPercentage, &s.RestaurantCommissionPercentage, &s.UpdatedAt)
	if err != nil {
		return domain.DeliverySettings{}, err
	}
	return s, nil
}

func (r *PostgresRepository) UpdateDeliverySettings(ctx context.Context, s *domain.DeliverySettings) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO delivery_settings (id, delivery_fee_per_order, delivery_radius_km, long_distance_threshold_km,
			long_distance_delivery_fee, minimum_order_value, tax_percentage, agent_commission_percentage,
			platform_commission_percentage, restaurant_commission_percentage, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			delivery_fee_per_order = EXCLUDED.delivery_fee_per_order,
			delivery_radius_km = EXCLUDED.delivery_radius_km,
			long_distance_threshold_km = EXCLUDED.long_distance_threshold_km,
			long_distance_delivery_fee = EXCLUDED.long_distance_delivery_fee,
			minimum_order_value = EXCLUDED.minimum_order_value,
			tax_percentage = EXCLUDED.tax_percentage,
			agent_commission_percentage = EXCLUDED.agent_commission_percentage,
			platform_commission_percentage = EXCLUDED.platform_commission_percentage,
			restaurant_commission_percentage = EXCLUDED.restaurant_commission_percentage,
			updated_at = CURRENT_TIMESTAMP
		RETURNING updated_at`,
		s.DeliveryFeePerOrder, s.DeliveryRadiusKm, s.LongDistanceThresholdKm, s.LongDistanceDeliveryFee,
		s.MinimumOrderValue, s.TaxPercentage, s.AgentCommissionPercentage,
		s.PlatformCommissionPercentage, s.RestaurantCommissionPercentage).
		Scan(&s.UpdatedAt)
}

const menuItemColumns = `id, restaurant_id, name, COALESCE(description, ''), price::text, discount_price::text,
		COALESCE(food_type, ''), is_available`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanMenuItem reads prices as text so that whatever the catalogue stored
// reaches the pricing code unchanged.
func scanMenuItem(row rowScanner) (*domain.MenuItem, error) {
	var (
		item          domain.MenuItem
		price         sql.NullString
		discountPrice sql.NullString
		foodType      string
	)
	if err := row.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description, &price, &discountPrice, &foodType, &item.Available); err != nil {
		return nil, err
	}

	item.FoodType = domain.FoodType(foodType)
	if price.Valid {
		item.Price = domain.Price(price.String)
	}
	if discountPrice.Valid {
		item.DiscountPrice = domain.Price(discountPrice.String)
	}
	return &item, nil
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, itemID int) (*domain.MenuItem, error) {
	return scanMenuItem(r.DB.QueryRowContext(ctx, `
		SELECT `+menuItemColumns+`
		FROM menu_items
		WHERE id = $1`, itemID))
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+menuItemColumns+`
		FROM menu_items
		WHERE restaurant_id = $1
		ORDER BY id`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// CreateMenuItem expects prices already normalized to numbers; a zero
// DiscountPrice is stored as NULL.
func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO menu_items (restaurant_id, name, description, price, discount_price, food_type, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		item.RestaurantID, item.Name, item.Description, item.Price.Raw(), item.DiscountPrice.Raw(),
		string(item.FoodType), item.Available).
		Scan(&item.ID)
}

// SetMenuItemAvailability reports how many rows changed; zero means no such item.
func (r *PostgresRepository) SetMenuItemAvailability(ctx context.Context, itemID int, available bool) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "UPDATE menu_items SET is_available = $1 WHERE id = $2", available, itemID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	var lat, lng sql.NullFloat64
	if rest.Location != nil {
		lat = sql.NullFloat64{Float64: rest.Location.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: rest.Location.Lng, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO restaurants (name, address, description, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		rest.Name, rest.Address, rest.Description, lat, lng).
		Scan(&rest.ID)
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	var (
		rest     domain.Restaurant
		lat, lng sql.NullFloat64
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(address, ''), COALESCE(description, ''), latitude, longitude
		FROM restaurants
		WHERE id = $1`, id).
		Scan(&rest.ID, &rest.Name, &rest.Address, &rest.Description, &lat, &lng)
	if err != nil {
		return nil, err
	}

	if lat.Valid && lng.Valid {
		rest.Location = &domain.GeoPoint{Lat: lat.Float64, Lng: lng.Float64}
	}
	return &rest, nil
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var lat, lng sql.NullFloat64
	if order.DeliveryPoint != nil {
		lat = sql.NullFloat64{Float64: order.DeliveryPoint.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: order.DeliveryPoint.Lng, Valid: true}
	}

	b, s := order.Breakdown, order.Settlement
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (reference, cart_id, restaurant_id, status, delivery_lat, delivery_lng,
			item_subtotal, delivery_fee, agent_fee, tax, discount, total_amount, distance_km,
			agent_payout, restaurant_commission, restaurant_payout, platform_earning, qr_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NULL)
		RETURNING id, created_at`,
		order.Reference, order.CartID, order.RestaurantID, order.Status, lat, lng,
		b.ItemSubtotal, b.DeliveryFee, b.AgentFee, b.Tax, b.Discount, b.Total, b.DistanceKm,
		s.AgentPayout, s.RestaurantCommission, s.RestaurantPayout, s.PlatformEarning).
		Scan(&order.ID, &order.CreatedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, name, quantity, total_price, instructions)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			order.ID, item.MenuItemID, item.Name, item.Quantity, item.TotalPrice, item.Instructions); err != nil {
			return fmt.Errorf("insert order item %d: %w", item.MenuItemID, err)
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) SaveQRCode(ctx context.Context, orderID int, qr []byte) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE orders SET qr_code = $1 WHERE id = $2`, qr, orderID)
	return err
}

func (r *PostgresRepository) GetOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	var (
		order    domain.Order
		lat, lng sql.NullFloat64
	)
	b, s := &order.Breakdown, &order.Settlement
	if err := r.DB.QueryRowContext(ctx, `
		SELECT id, reference, cart_id, restaurant_id, status, delivery_lat, delivery_lng,
		       item_subtotal, delivery_fee, agent_fee, tax, discount, total_amount, distance_km,
		       agent_payout, restaurant_commission, restaurant_payout, platform_earning, created_at
		FROM orders WHERE id = $1`, orderID).
		Scan(&order.ID, &order.Reference, &order.CartID, &order.RestaurantID, &order.Status, &lat, &lng,
			&b.ItemSubtotal, &b.DeliveryFee, &b.AgentFee, &b.Tax, &b.Discount, &b.Total, &b.DistanceKm,
			&s.AgentPayout, &s.RestaurantCommission, &s.RestaurantPayout, &s.PlatformEarning, &order.CreatedAt); err != nil {
		return nil, err
	}
	if lat.Valid && lng.Valid {
		order.DeliveryPoint = &domain.GeoPoint{Lat: lat.Float64, Lng: lng.Float64}
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT menu_item_id, name, quantity, total_price, COALESCE(instructions, '')
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	order.Items = []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.MenuItemID, &item.Name, &item.Quantity, &item.TotalPrice, &item.Instructions); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	return &order, rows.Err()
}

func (r *PostgresRepository) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	var qrCode []byte
	if err := r.DB.QueryRowContext(ctx, "SELECT qr_code FROM orders WHERE id = $1", orderID).Scan(&qrCode); err != nil {
		return nil, err
	}
	return qrCode, nil
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS delivery_settings (
			id INTEGER PRIMARY KEY,
			delivery_fee_per_order NUMERIC(10,2) NOT NULL,
			delivery_radius_km NUMERIC(10,2) NOT NULL,
			long_distance_threshold_km NUMERIC(10,2) NOT NULL,
			long_distance_delivery_fee NUMERIC(10,2) NOT NULL,
			minimum_order_value NUMERIC(10,2) NOT NULL,
			tax_percentage NUMERIC(5,2) NOT NULL,
			agent_commission_percentage NUMERIC(5,2) NOT NULL,
			platform_commission_percentage NUMERIC(5,2) NOT NULL DEFAULT 0,
			restaurant_commission_percentage NUMERIC(5,2) NOT NULL DEFAULT 0,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS restaurants (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT,
			description TEXT,
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		// Restaurant tables created before these columns existed.
		"ALTER TABLE restaurants ADD COLUMN IF NOT EXISTS description TEXT",
		"ALTER TABLE restaurants ADD COLUMN IF NOT EXISTS latitude DOUBLE PRECISION",
		"ALTER TABLE restaurants ADD COLUMN IF NOT EXISTS longitude DOUBLE PRECISION",
		`CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			restaurant_id INTEGER NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT,
			price NUMERIC(10,2),
			discount_price NUMERIC(10,2),
			food_type TEXT,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		"CREATE INDEX IF NOT EXISTS menu_items_restaurant_id_idx ON menu_items (restaurant_id)",
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			reference TEXT NOT NULL UNIQUE,
			cart_id TEXT NOT NULL,
			restaurant_id INTEGER NOT NULL,
			status TEXT NOT NULL,
			delivery_lat DOUBLE PRECISION,
			delivery_lng DOUBLE PRECISION,
			item_subtotal NUMERIC(10,2) NOT NULL,
			delivery_fee NUMERIC(10,2) NOT NULL,
			agent_fee NUMERIC(10,2) NOT NULL,
			tax NUMERIC(10,2) NOT NULL,
			discount NUMERIC(10,2) NOT NULL DEFAULT 0,
			total_amount NUMERIC(10,2) NOT NULL,
			distance_km NUMERIC(10,1) NOT NULL DEFAULT 0,
			agent_payout NUMERIC(10,2) NOT NULL DEFAULT 0,
			restaurant_commission NUMERIC(10,2) NOT NULL DEFAULT 0,
			restaurant_payout NUMERIC(10,2) NOT NULL DEFAULT 0,
			platform_earning NUMERIC(10,2) NOT NULL DEFAULT 0,
			qr_code BYTEA,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			menu_item_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			total_price NUMERIC(10,2) NOT NULL,
			instructions TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}
