package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"food-delivery/settlement-svc/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	DefaultRetention = 30 * 24 * time.Hour

	processedTTL    = 7 * 24 * time.Hour
	maxWatchRetries = 5
)

// Store books settlements into Redis hashes. Money is kept in paise so that
// HINCRBY stays exact.
type Store struct {
	rdb       *redis.Client
	retention time.Duration
}

func NewStore(rdb *redis.Client, retention time.Duration) *Store {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Store{rdb: rdb, retention: retention}
}

func DailyKey(date string, restaurantID int) string {
	return fmt.Sprintf("settlement:daily:%s:%d", date, restaurantID)
}

func AgentPayoutKey(date string) string {
	return "settlement:agent_payouts:" + date
}

func processedKey(reference string) string {
	return "settlement:processed:" + reference
}

// BookOrder writes the processed marker of an order together with its
// restaurant and agent bookings in one MULTI, so an order is either fully
// booked or not booked at all. It reports false when the order was already
// booked.
func (s *Store) BookOrder(ctx context.Context, event domain.OrderEvent) (bool, error) {
	marker := processedKey(event.Reference)
	daily := DailyKey(event.Day(), event.RestaurantID)
	agents := AgentPayoutKey(event.Day())

	var booked bool
	book := func(tx *redis.Tx) error {
		booked = false
		seen, err := tx.Exists(ctx, marker).Result()
		if err != nil {
			return err
		}
		if seen > 0 {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, marker, "1", processedTTL)
			pipe.HIncrBy(ctx, daily, "orders", 1)
			pipe.HIncrBy(ctx, daily, "gross", toPaise(event.Breakdown.Total))
			pipe.HIncrBy(ctx, daily, "tax", toPaise(event.Breakdown.Tax))
			pipe.HIncrBy(ctx, daily, "agent_payout", toPaise(event.Settlement.AgentPayout))
			pipe.HIncrBy(ctx, daily, "restaurant_payout", toPaise(event.Settlement.RestaurantPayout))
			pipe.HIncrBy(ctx, daily, "platform_earning", toPaise(event.Settlement.PlatformEarning))
			pipe.Expire(ctx, daily, s.retention)
			pipe.IncrBy(ctx, agents, toPaise(event.Settlement.AgentPayout))
			pipe.Expire(ctx, agents, s.retention)
			return nil
		})
		booked = err == nil
		return err
	}

	for i := 0; i < maxWatchRetries; i++ {
		err := s.rdb.Watch(ctx, book, marker)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return false, err
		}
		return booked, nil
	}
	return false, fmt.Errorf("book order %s: %w", event.Reference, redis.TxFailedErr)
}

func (s *Store) DailySettlement(ctx context.Context, date string, restaurantID int) (*domain.DailySettlement, error) {
	fields, err := s.rdb.HGetAll(ctx, DailyKey(date, restaurantID)).Result()
	if err != nil {
		return nil, err
	}

	summary := &domain.DailySettlement{Date: date, RestaurantID: restaurantID}
	if len(fields) == 0 {
		return summary, nil
	}

	summary.Orders, _ = strconv.ParseInt(fields["orders"], 10, 64)
	summary.Gross = fromPaise(fields["gross"])
	summary.Tax = fromPaise(fields["tax"])
	summary.AgentPayout = fromPaise(fields["agent_payout"])
	summary.RestaurantPayout = fromPaise(fields["restaurant_payout"])
	summary.PlatformEarning = fromPaise(fields["platform_earning"])
	return summary, nil
}

func (s *Store) AgentPayoutTotal(ctx context.Context, date string) (float64, error) {
	value, err := s.rdb.Get(ctx, AgentPayoutKey(date)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return fromPaise(value), nil
}

func toPaise(amount float64) int64 {
	return decimal.NewFromFloat(amount).Shift(2).Round(0).IntPart()
}

func fromPaise(value string) float64 {
	paise, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return decimal.New(paise, -2).InexactFloat64()
}
