package settings

import (
	"context"
	"fmt"
	"time"

	"food-delivery/checkout-svc/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const DefaultFetchTimeout = 3 * time.Second

type Source string

const (
	SourceCache     Source = "cache"
	SourceProvider  Source = "provider"
	SourceLastKnown Source = "last_known"
	SourceDefault   Source = "default"
)

type Provider interface {
	GetDeliverySettings(ctx context.Context) (domain.DeliverySettings, error)
}

// Resolver composes the settings cache with a provider. Resolve always
// produces usable settings: fresh cache, then a bounded fetch, then the last
// known value, then the built-in defaults.
type Resolver struct {
	cache    *Cache
	provider Provider
	timeout  time.Duration
	group    singleflight.Group
	log      *logrus.Entry
}

func NewResolver(cache *Cache, provider Provider, timeout time.Duration, log *logrus.Entry) *Resolver {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Resolver{
		cache:    cache,
		provider: provider,
		timeout:  timeout,
		log:      log,
	}
}

func (r *Resolver) Resolve(ctx context.Context) (domain.DeliverySettings, Source) {
	if s, ok := r.cache.Get(); ok {
		return s, SourceCache
	}

	// The fetch is shared by every caller waiting on it, so it must not die
	// with the first caller's context. Callers arriving after an Invalidate
	// get a new generation and so a new fetch.
	generation := r.cache.Generation()
	fetchCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(fmt.Sprintf("delivery-settings:%d", generation), func() (interface{}, error) {
		if s, ok := r.cache.Get(); ok {
			return s, nil
		}
		return r.fetch(fetchCtx, generation)
	})

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if res.Err == nil {
			return res.Val.(domain.DeliverySettings), SourceProvider
		}
		r.log.WithError(res.Err).Warn("Delivery settings fetch failed, falling back")
	case <-timer.C:
		r.log.WithField("timeout", r.timeout.String()).Warn("Delivery settings provider did not answer in time, falling back")
	case <-ctx.Done():
		r.log.WithError(ctx.Err()).Warn("Gave up waiting for delivery settings, falling back")
	}

	return r.fallback()
}

func (r *Resolver) fetch(ctx context.Context, generation uint64) (domain.DeliverySettings, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	s, err := r.provider.GetDeliverySettings(ctx)
	if err != nil {
		return domain.DeliverySettings{}, fmt.Errorf("fetch delivery settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return domain.DeliverySettings{}, err
	}

	if !r.cache.SetIfGeneration(s, generation) {
		r.log.Debug("Settings changed while fetching, not caching the result")
	}
	return s, nil
}

func (r *Resolver) fallback() (domain.DeliverySettings, Source) {
	if s, ok := r.cache.LastKnown(); ok {
		return s, SourceLastKnown
	}
	return domain.DefaultDeliverySettings(), SourceDefault
}

func (r *Resolver) Invalidate() {
	r.cache.Invalidate()
}
