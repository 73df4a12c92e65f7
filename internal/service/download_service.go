package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/beatvault/beatvault/internal/backend"
	"github.com/beatvault/beatvault/internal/cache"
	"github.com/beatvault/beatvault/internal/entitlement"
	"github.com/beatvault/beatvault/internal/model"
)

// Caller identifies the requesting user as asserted by the verified token.
type Caller struct {
	UserID        string
	Role          model.UserRole
	Authenticated bool
}

// DownloadResult pairs the gate decision with the download URL the backend
// granted (set only when the decision allowed the action).
type DownloadResult struct {
	Decision    entitlement.Decision `json:"decision"`
	DownloadURL string               `json:"downloadUrl,omitempty"`
}

type DownloadService struct {
	api           *backend.Client
	cache         *cache.StateCache
	subscriptions *SubscriptionService
}

func NewDownloadService(api *backend.Client, stateCache *cache.StateCache, subscriptions *SubscriptionService) *DownloadService {
	return &DownloadService{api: api, cache: stateCache, subscriptions: subscriptions}
}

func (s *DownloadService) History(ctx context.Context, userID string) ([]model.DownloadLog, error) {
	key := cache.DownloadHistoryKey(userID)
	if cached, ok := s.cache.Get(key); ok {
		if history, ok := cached.([]model.DownloadLog); ok {
			return history, nil
		}
	}
	history, err := s.api.DownloadHistory(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, history)
	return history, nil
}

// GateCheck evaluates the entitlement gate without performing the download.
// Subscription and quota reads hit the cache first; the gate denies before
// touching the backend when the caller is anonymous.
func (s *DownloadService) GateCheck(ctx context.Context, caller Caller) (entitlement.Decision, error) {
	input, err := s.gateInput(ctx, caller)
	if err != nil {
		return entitlement.Decision{}, err
	}
	return entitlement.Evaluate(input), nil
}

// Download runs the gated download: the backend call happens only when the
// gate allows it, otherwise the deny decision is returned untouched. A
// granted download invalidates the quota and history caches.
func (s *DownloadService) Download(ctx context.Context, caller Caller, beatID string) (*DownloadResult, error) {
	input, err := s.gateInput(ctx, caller)
	if err != nil {
		return nil, err
	}
	result := &DownloadResult{}
	decision, err := entitlement.Do(input, func() error {
		url, err := s.api.DownloadBeat(ctx, beatID)
		if err != nil {
			return err
		}
		result.DownloadURL = url
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Decision = decision
	if decision.Allowed {
		s.cache.InvalidatePrefix(cache.DownloadPrefix(caller.UserID))
		s.cache.Invalidate(cache.DownloadStatsKey(caller.UserID))
		logutil.GetLogger(ctx).Info("download granted",
			zap.String("user_id", caller.UserID),
			zap.String("beat_id", beatID),
		)
	}
	return result, nil
}

func (s *DownloadService) gateInput(ctx context.Context, caller Caller) (entitlement.Input, error) {
	input := entitlement.Input{
		Authenticated: caller.Authenticated,
		Role:          caller.Role,
	}
	if !caller.Authenticated || caller.Role != model.RoleArtist {
		return input, nil
	}
	sub, err := s.subscriptions.Subscription(ctx, caller.UserID)
	if err != nil {
		return input, err
	}
	input.Subscription = sub
	if sub.Status != model.SubscriptionActive {
		return input, nil
	}
	stats, err := s.subscriptions.DownloadStats(ctx, caller.UserID)
	if err != nil {
		return input, err
	}
	input.Stats = stats
	return input, nil
}
