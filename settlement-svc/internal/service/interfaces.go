package service

import (
	"context"

	"food-delivery/settlement-svc/internal/domain"
	"food-delivery/settlement-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	BookOrder(ctx context.Context, event domain.OrderEvent) (bool, error)
}

// ReportInterface is the read side of the settlement store.
type ReportInterface interface {
	DailySettlement(ctx context.Context, date string, restaurantID int) (*domain.DailySettlement, error)
	AgentPayoutTotal(ctx context.Context, date string) (float64, error)
}

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessOrder(ctx context.Context, event domain.OrderEvent) error
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ ReportInterface   = (*storage.Store)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
