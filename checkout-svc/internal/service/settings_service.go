package service

import (
	"context"

	"food-delivery/checkout-svc/internal/domain"
	"food-delivery/checkout-svc/internal/settings"

	"github.com/sirupsen/logrus"
)

type SettingsService struct {
	repo     SettingsRepository
	resolver SettingsResolver
	shared   SharedSettings
	log      *logrus.Entry
}

// NewSettingsService accepts a nil shared cache for single-replica setups.
func NewSettingsService(repo SettingsRepository, resolver SettingsResolver, shared SharedSettings, log *logrus.Entry) *SettingsService {
	return &SettingsService{repo: repo, resolver: resolver, shared: shared, log: log}
}

func (s *SettingsService) Get(ctx context.Context) (domain.DeliverySettings, settings.Source) {
	return s.resolver.Resolve(ctx)
}

func (s *SettingsService) Update(ctx context.Context, updated *domain.DeliverySettings) error {
	if err := updated.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateDeliverySettings(ctx, updated); err != nil {
		return err
	}

	s.publish(ctx, *updated)
	s.resolver.Invalidate()
	s.log.WithFields(logrus.Fields{
		"delivery_fee_per_order": updated.DeliveryFeePerOrder,
		"tax_percentage":         updated.TaxPercentage,
	}).Info("Delivery settings updated")
	return nil
}

// Refresh drops every cached copy and resolves again.
func (s *SettingsService) Refresh(ctx context.Context) (domain.DeliverySettings, settings.Source) {
	s.invalidate(ctx)
	return s.resolver.Resolve(ctx)
}

// publish pushes saved settings to the shared copy, dropping it instead when
// the write fails so that no replica keeps serving the old value.
func (s *SettingsService) publish(ctx context.Context, saved domain.DeliverySettings) {
	if s.shared == nil {
		return
	}
	if err := s.shared.Publish(ctx, saved); err != nil {
		s.log.WithError(err).Warn("Failed to publish settings to shared cache")
		if err := s.shared.Invalidate(ctx); err != nil {
			s.log.WithError(err).Warn("Failed to invalidate shared settings cache")
		}
	}
}

func (s *SettingsService) invalidate(ctx context.Context) {
	if s.shared != nil {
		if err := s.shared.Invalidate(ctx); err != nil {
			s.log.WithError(err).Warn("Failed to invalidate shared settings cache")
		}
	}
	s.resolver.Invalidate()
}

var _ SettingsServiceInterface = (*SettingsService)(nil)
