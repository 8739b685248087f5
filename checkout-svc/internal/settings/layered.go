package settings

import (
	"context"
	"sync/atomic"
	"time"

	"food-delivery/checkout-svc/internal/domain"

	"github.com/sirupsen/logrus"
)

// SharedCache is a settings cache visible to every checkout replica.
type SharedCache interface {
	Load(ctx context.Context) (domain.DeliverySettings, bool, error)
	Store(ctx context.Context, s domain.DeliverySettings, ttl time.Duration) error
	Delete(ctx context.Context) error
}

// LayeredProvider reads through a shared cache before hitting the origin.
// Shared cache failures are logged and never fail the fetch. An origin read
// that overlaps Invalidate or Publish is not written back.
type LayeredProvider struct {
	Shared SharedCache
	Origin Provider
	TTL    time.Duration
	Log    *logrus.Entry

	generation atomic.Uint64
}

func NewLayeredProvider(shared SharedCache, origin Provider, ttl time.Duration, log *logrus.Entry) *LayeredProvider {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &LayeredProvider{Shared: shared, Origin: origin, TTL: ttl, Log: log}
}

func (p *LayeredProvider) GetDeliverySettings(ctx context.Context) (domain.DeliverySettings, error) {
	generation := p.generation.Load()

	s, ok, err := p.Shared.Load(ctx)
	if err != nil {
		p.Log.WithError(err).Warn("Shared settings cache read failed")
	} else if ok {
		return s, nil
	}

	s, err = p.Origin.GetDeliverySettings(ctx)
	if err != nil {
		return domain.DeliverySettings{}, err
	}

	if p.generation.Load() != generation {
		return s, nil
	}
	if err := p.Shared.Store(ctx, s, p.TTL); err != nil {
		p.Log.WithError(err).Warn("Shared settings cache write failed")
	}
	return s, nil
}

func (p *LayeredProvider) Invalidate(ctx context.Context) error {
	p.generation.Add(1)
	return p.Shared.Delete(ctx)
}

// Publish replaces the shared copy with freshly saved settings so that other
// replicas pick them up on their next miss.
func (p *LayeredProvider) Publish(ctx context.Context, s domain.DeliverySettings) error {
	p.generation.Add(1)
	return p.Shared.Store(ctx, s, p.TTL)
}
