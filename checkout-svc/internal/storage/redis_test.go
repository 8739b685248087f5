package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"food-delivery/checkout-svc/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func putLine(line domain.CartLineItem) func(*domain.Cart, bool) error {
	return func(c *domain.Cart, exists bool) error {
		c.RestaurantID = line.Item.RestaurantID
		c.Items = append(c.Items, line)
		return nil
	}
}

func TestRedisCartStore(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	store := NewRedisCartStore(client, time.Hour)

	_, ok, err := store.GetCart(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, ok)

	line := domain.CartLineItem{ID: "l1", Item: domain.MenuItem{ID: 1, RestaurantID: 3, Price: domain.Price("180.50")}, Quantity: 2, TotalPrice: 361}
	var sawExisting bool
	_, err = store.UpdateCart(ctx, "c1", func(c *domain.Cart, exists bool) error {
		sawExisting = exists
		assert.Equal(t, "c1", c.ID)
		return putLine(line)(c, exists)
	})
	require.NoError(t, err)
	assert.False(t, sawExisting)
	assert.Equal(t, time.Hour, mr.TTL("cart:c1"))

	got, ok, err := store.GetCart(ctx, "c1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, got.RestaurantID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 361.0, got.Items[0].TotalPrice)
	assert.Equal(t, "180.50", got.Items[0].Item.Price.Raw())

	mr.FastForward(2 * time.Hour)
	_, ok, err = store.GetCart(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, ok, "cart should expire")

	_, err = store.UpdateCart(ctx, "c1", putLine(line))
	require.NoError(t, err)
	require.NoError(t, store.DeleteCart(ctx, "c1"))
	assert.False(t, mr.Exists("cart:c1"))
}

func TestRedisCartStore_UpdateErrorLeavesCartUntouched(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	store := NewRedisCartStore(client, time.Hour)
	boom := errors.New("line not found")

	_, err := store.UpdateCart(ctx, "c1", func(c *domain.Cart, exists bool) error {
		c.Items = append(c.Items, domain.CartLineItem{ID: "l1"})
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("cart:c1"))
}

func TestRedisCartStore_ConcurrentUpdatesKeepEveryLine(t *testing.T) {
	ctx := context.Background()
	_, client := setupTestRedis(t)
	store := NewRedisCartStore(client, time.Hour)

	// Few writers so that each stays within the retry budget.
	const writers = 4
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			line := domain.CartLineItem{ID: fmt.Sprintf("l%d", i), Item: domain.MenuItem{ID: i, RestaurantID: 3}, Quantity: 1}
			_, err := store.UpdateCart(ctx, "c1", putLine(line))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, ok, err := store.GetCart(ctx, "c1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, got.Items, writers)
}

func TestRedisCartStore_CheckoutClaim(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	store := NewRedisCartStore(client, time.Hour)
	line := domain.CartLineItem{ID: "l1", Item: domain.MenuItem{ID: 1, RestaurantID: 3}, Quantity: 1}

	claimed, err := store.ClaimCheckout(ctx, "c1", "ref-a")
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Equal(t, DefaultCheckoutTTL, mr.TTL("checkout:c1"))

	claimed, err = store.ClaimCheckout(ctx, "c1", "ref-b")
	require.NoError(t, err)
	assert.False(t, claimed, "a second checkout must not claim the same cart")

	_, err = store.UpdateCart(ctx, "c1", putLine(line))
	assert.ErrorIs(t, err, ErrCheckoutInProgress)

	require.NoError(t, store.ReleaseCheckout(ctx, "c1", "ref-b"))
	assert.True(t, mr.Exists("checkout:c1"), "only the holder may release the claim")

	require.NoError(t, store.ReleaseCheckout(ctx, "c1", "ref-a"))
	assert.False(t, mr.Exists("checkout:c1"))

	_, err = store.UpdateCart(ctx, "c1", putLine(line))
	assert.NoError(t, err)
	require.NoError(t, store.ReleaseCheckout(ctx, "c1", "ref-a"))
}

func TestRedisCartStore_CorruptPayload(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisCartStore(client, 0)
	require.NoError(t, mr.Set("cart:bad", "{not json"))

	_, _, err := store.GetCart(context.Background(), "bad")

	assert.Error(t, err)
	assert.Equal(t, DefaultCartTTL, store.TTL)
}

func TestRedisSettingsCache(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	cache := NewRedisSettingsCache(client)

	_, ok, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	s := domain.DefaultDeliverySettings()
	s.TaxPercentage = 18
	require.NoError(t, cache.Store(ctx, s, 5*time.Minute))
	assert.Equal(t, 5*time.Minute, mr.TTL(settingsKey))

	got, ok, err := cache.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 18.0, got.TaxPercentage)

	require.NoError(t, cache.Delete(ctx))
	_, ok, err = cache.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisSettingsCache_KeepsNewerCopy(t *testing.T) {
	ctx := context.Background()
	_, client := setupTestRedis(t)
	cache := NewRedisSettingsCache(client)

	saved := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	updated := domain.DefaultDeliverySettings()
	updated.DeliveryFeePerOrder = 99
	updated.UpdatedAt = saved
	require.NoError(t, cache.Store(ctx, updated, time.Minute))

	// A read that started before the update finishes afterwards.
	stale := domain.DefaultDeliverySettings()
	stale.UpdatedAt = saved.Add(-time.Hour)
	require.NoError(t, cache.Store(ctx, stale, time.Minute))

	got, ok, err := cache.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 99.0, got.DeliveryFeePerOrder)

	newer := updated
	newer.DeliveryFeePerOrder = 55
	newer.UpdatedAt = saved.Add(time.Minute)
	require.NoError(t, cache.Store(ctx, newer, time.Minute))

	got, _, err = cache.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 55.0, got.DeliveryFeePerOrder)
}

func TestRedisSettingsCache_ServerDown(t *testing.T) {
	mr, client := setupTestRedis(t)
	cache := NewRedisSettingsCache(client)
	mr.Close()

	_, ok, err := cache.Load(context.Background())

	assert.Error(t, err)
	assert.False(t, ok)
}
