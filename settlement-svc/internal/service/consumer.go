package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"food-delivery/settlement-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const (
	DefaultRetryDelay    = 500 * time.Millisecond
	DefaultMaxRetryDelay = 30 * time.Second
)

// ErrInvalidEvent marks events that can never be booked. They are skipped
// instead of retried.
var ErrInvalidEvent = errors.New("invalid order event")

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	Log    *logrus.Entry

	RetryDelay    time.Duration
	MaxRetryDelay time.Duration
}

func NewConsumer(reader MessageReader, store StoreInterface, log *logrus.Entry) *Consumer {
	return &Consumer{
		Reader:        reader,
		Store:         store,
		Log:           log,
		RetryDelay:    DefaultRetryDelay,
		MaxRetryDelay: DefaultMaxRetryDelay,
	}
}

// Start consumes until ctx is cancelled. An offset is committed only once its
// event is booked or known to be unbookable, so a restart redelivers whatever
// was in flight.
func (c *Consumer) Start(ctx context.Context) {
	c.Log.Info("Starting Settlement Service consumer")
	for {
		message, err := c.Reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				c.Log.Info("Settlement Service consumer stopped")
				return
			}
			c.Log.WithError(err).Error("Error reading message")
			continue
		}

		if err := c.handle(ctx, message); err != nil {
			c.Log.WithField("offset", message.Offset).Info("Settlement Service consumer stopped before booking")
			return
		}

		if err := c.Reader.CommitMessages(ctx, message); err != nil {
			if ctx.Err() != nil {
				return
			}
			c.Log.WithError(err).WithField("offset", message.Offset).Error("Error committing offset")
		}
	}
}

// handle retries a failed booking with exponential backoff until it succeeds
// or ctx is cancelled, in which case it returns ctx's error.
func (c *Consumer) handle(ctx context.Context, message kafka.Message) error {
	var event domain.OrderEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		c.Log.WithError(err).WithField("offset", message.Offset).Warn("Skipping malformed order event")
		return nil
	}

	delay := c.RetryDelay
	for attempt := 1; ; attempt++ {
		err := c.ProcessOrder(ctx, event)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrInvalidEvent) {
			c.Log.WithError(err).WithField("offset", message.Offset).Warn("Skipping order event")
			return nil
		}

		c.Log.WithError(err).WithFields(logrus.Fields{
			"reference": event.Reference,
			"attempt":   attempt,
			"delay":     delay.String(),
		}).Warn("Retrying settlement booking")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
		if c.MaxRetryDelay > 0 && delay > c.MaxRetryDelay {
			delay = c.MaxRetryDelay
		}
	}
}

// ProcessOrder books an order_placed event. Other event types are ignored.
func (c *Consumer) ProcessOrder(ctx context.Context, event domain.OrderEvent) error {
	if event.Type != domain.EventOrderPlaced {
		return nil
	}
	if strings.TrimSpace(event.Reference) == "" {
		return fmt.Errorf("%w: order %d has no reference", ErrInvalidEvent, event.OrderID)
	}
	logger := c.Log.WithFields(logrus.Fields{
		"order_id":      event.OrderID,
		"reference":     event.Reference,
		"restaurant_id": event.RestaurantID,
	})

	booked, err := c.Store.BookOrder(ctx, event)
	if err != nil {
		logger.WithError(err).Error("Error booking settlement")
		return fmt.Errorf("book order %s: %w", event.Reference, err)
	}
	if !booked {
		logger.Info("Order already settled, skipping")
		return nil
	}

	logger.WithField("platform_earning", event.Settlement.PlatformEarning).Info("Order settled")
	return nil
}
