package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"food-delivery/checkout-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func TestKafkaPublisher_PublishOrder(t *testing.T) {
	writer := &recordingWriter{}
	publisher := NewKafkaPublisher(writer)
	event := domain.OrderEvent{
		Type:         "order_placed",
		OrderID:      42,
		Reference:    "ord-1",
		RestaurantID: 3,
		Breakdown:    domain.PricingBreakdown{Total: 355},
		Timestamp:    time.Date(2026, 3, 3, 19, 30, 0, 0, time.UTC),
	}

	require.NoError(t, publisher.PublishOrder(context.Background(), event))

	require.Len(t, writer.messages, 1)
	assert.Equal(t, "3", string(writer.messages[0].Key))
	var decoded domain.OrderEvent
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &decoded))
	assert.Equal(t, event, decoded)
}

func TestKafkaPublisher_WriterError(t *testing.T) {
	publisher := NewKafkaPublisher(&recordingWriter{err: errors.New("broker unavailable")})

	err := publisher.PublishOrder(context.Background(), domain.OrderEvent{Type: "order_placed"})

	assert.EqualError(t, err, "broker unavailable")
}
