package service

import (
	"context"

	"github.com/beatvault/beatvault/internal/backend"
	"github.com/beatvault/beatvault/internal/cache"
	"github.com/beatvault/beatvault/internal/model"
)

type SubscriptionService struct {
	api   *backend.Client
	cache *cache.StateCache
}

func NewSubscriptionService(api *backend.Client, stateCache *cache.StateCache) *SubscriptionService {
	return &SubscriptionService{api: api, cache: stateCache}
}

func (s *SubscriptionService) Subscription(ctx context.Context, userID string) (*model.Subscription, error) {
	key := cache.SubscriptionKey(userID)
	if cached, ok := s.cache.Get(key); ok {
		if sub, ok := cached.(*model.Subscription); ok {
			return sub, nil
		}
	}
	sub, err := s.api.Subscription(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, sub)
	return sub, nil
}

func (s *SubscriptionService) DownloadStats(ctx context.Context, userID string) (*model.DownloadStats, error) {
	key := cache.DownloadStatsKey(userID)
	if cached, ok := s.cache.Get(key); ok {
		if stats, ok := cached.(*model.DownloadStats); ok {
			return stats, nil
		}
	}
	stats, err := s.api.DownloadStats(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, stats)
	return stats, nil
}

func (s *SubscriptionService) Cancel(ctx context.Context, userID string) error {
	if err := s.api.CancelSubscription(ctx); err != nil {
		return err
	}
	s.cache.InvalidatePrefix(cache.SubscriptionPrefix(userID))
	return nil
}

func (s *SubscriptionService) Reactivate(ctx context.Context, userID string) error {
	if err := s.api.ReactivateSubscription(ctx); err != nil {
		return err
	}
	s.cache.InvalidatePrefix(cache.SubscriptionPrefix(userID))
	return nil
}

func (s *SubscriptionService) UpdateTier(ctx context.Context, userID string, tier model.SubscriptionTier) error {
	if err := s.api.UpdateSubscriptionTier(ctx, tier); err != nil {
		return err
	}
	s.cache.InvalidatePrefix(cache.SubscriptionPrefix(userID))
	return nil
}
