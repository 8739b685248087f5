package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"food-delivery/checkout-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultCartTTL     = 24 * time.Hour
	DefaultCheckoutTTL = time.Minute

	settingsKey = "settings:delivery"

	maxWatchRetries = 5
)

var (
	// ErrCheckoutInProgress is returned while a cart is claimed by a checkout.
	ErrCheckoutInProgress = errors.New("cart checkout in progress")
	// ErrCartContended is returned when an update lost every optimistic retry.
	ErrCartContended = errors.New("cart is being modified concurrently")
)

type RedisCartStore struct {
	Client      *redis.Client
	TTL         time.Duration
	CheckoutTTL time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	return &RedisCartStore{Client: client, TTL: ttl, CheckoutTTL: DefaultCheckoutTTL}
}

func (s *RedisCartStore) CartKey(cartID string) string {
	return "cart:" + cartID
}

func (s *RedisCartStore) CheckoutKey(cartID string) string {
	return "checkout:" + cartID
}

// GetCart reports ok=false when the cart does not exist or has expired.
func (s *RedisCartStore) GetCart(ctx context.Context, cartID string) (*domain.Cart, bool, error) {
	return decodeCart(s.Client.Get(ctx, s.CartKey(cartID)).Bytes())
}

// UpdateCart runs fn on the stored cart and writes the result back, refreshing
// its expiry. When nothing is stored fn gets an empty cart and exists=false.
// The write is dropped and fn run again if the cart or its checkout claim
// changed in between, so fn must not have side effects outside the cart. An
// error from fn aborts the update and is returned as is.
func (s *RedisCartStore) UpdateCart(ctx context.Context, cartID string, fn func(c *domain.Cart, exists bool) error) (*domain.Cart, error) {
	key := s.CartKey(cartID)
	claim := s.CheckoutKey(cartID)

	var updated *domain.Cart
	update := func(tx *redis.Tx) error {
		claimed, err := tx.Exists(ctx, claim).Result()
		if err != nil {
			return err
		}
		if claimed > 0 {
			return ErrCheckoutInProgress
		}

		c, exists, err := decodeCart(tx.Get(ctx, key).Bytes())
		if err != nil {
			return err
		}
		if !exists {
			c = &domain.Cart{ID: cartID, Items: []domain.CartLineItem{}}
		}
		if err := fn(c, exists); err != nil {
			return err
		}

		payload, err := json.Marshal(c)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.TTL)
			return nil
		})
		if err == nil {
			updated = c
		}
		return err
	}

	for i := 0; i < maxWatchRetries; i++ {
		err := s.Client.Watch(ctx, update, key, claim)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, ErrCartContended
}

func (s *RedisCartStore) DeleteCart(ctx context.Context, cartID string) error {
	return s.Client.Del(ctx, s.CartKey(cartID)).Err()
}

// ClaimCheckout marks the cart as being checked out by token. It reports
// false when another checkout holds the claim. The claim expires on its own
// after CheckoutTTL.
func (s *RedisCartStore) ClaimCheckout(ctx context.Context, cartID, token string) (bool, error) {
	return s.Client.SetNX(ctx, s.CheckoutKey(cartID), token, s.CheckoutTTL).Result()
}

// ReleaseCheckout drops the claim if token still holds it.
func (s *RedisCartStore) ReleaseCheckout(ctx context.Context, cartID, token string) error {
	key := s.CheckoutKey(cartID)
	err := s.Client.Watch(ctx, func(tx *redis.Tx) error {
		owner, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		if owner != token {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func decodeCart(payload []byte, err error) (*domain.Cart, bool, error) {
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var c domain.Cart
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, false, err
	}
	return &c, true, nil
}

// RedisSettingsCache holds the delivery settings shared by all replicas.
type RedisSettingsCache struct {
	Client *redis.Client
}

func NewRedisSettingsCache(client *redis.Client) *RedisSettingsCache {
	return &RedisSettingsCache{Client: client}
}

func (c *RedisSettingsCache) Load(ctx context.Context) (domain.DeliverySettings, bool, error) {
	payload, err := c.Client.Get(ctx, settingsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.DeliverySettings{}, false, nil
	}
	if err != nil {
		return domain.DeliverySettings{}, false, err
	}

	var s domain.DeliverySettings
	if err := json.Unmarshal(payload, &s); err != nil {
		return domain.DeliverySettings{}, false, err
	}
	return s, true, nil
}

// Store never replaces a copy saved later than s, so a slow reader cannot
// put back settings that were updated while it was reading.
func (c *RedisSettingsCache) Store(ctx context.Context, s domain.DeliverySettings, ttl time.Duration) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}

	write := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, settingsKey).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil {
			var existing domain.DeliverySettings
			if json.Unmarshal(current, &existing) == nil && existing.UpdatedAt.After(s.UpdatedAt) {
				return nil
			}
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, settingsKey, payload, ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxWatchRetries; attempt++ {
		err = c.Client.Watch(ctx, write, settingsKey)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return err
}

func (c *RedisSettingsCache) Delete(ctx context.Context) error {
	return c.Client.Del(ctx, settingsKey).Err()
}
