package service

import (
	"bytes"
	"context"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/beatvault/beatvault/internal/backend"
	"github.com/beatvault/beatvault/internal/cache"
	"github.com/beatvault/beatvault/internal/model"
)

// BeatDetail is a beat plus its description rendered for the storefront.
type BeatDetail struct {
	model.Beat
	DescriptionHTML string `json:"descriptionHtml,omitempty"`
}

type BeatService struct {
	api   *backend.Client
	cache *cache.StateCache
	md    goldmark.Markdown
}

func NewBeatService(api *backend.Client, stateCache *cache.StateCache) *BeatService {
	return &BeatService{
		api:   api,
		cache: stateCache,
		md:    goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (s *BeatService) List(ctx context.Context, filters model.BeatFilters) ([]model.Beat, error) {
	key := cache.BeatListKey(filters)
	if cached, ok := s.cache.Get(key); ok {
		if beats, ok := cached.([]model.Beat); ok {
			return beats, nil
		}
	}
	beats, err := s.api.ListBeats(ctx, filters)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, beats)
	return beats, nil
}

func (s *BeatService) Get(ctx context.Context, beatID string) (*BeatDetail, error) {
	key := cache.BeatDetailKey(beatID)
	if cached, ok := s.cache.Get(key); ok {
		if detail, ok := cached.(*BeatDetail); ok {
			return detail, nil
		}
	}
	beat, err := s.api.GetBeat(ctx, beatID)
	if err != nil {
		return nil, err
	}
	detail := &BeatDetail{Beat: *beat}
	if beat.Description != "" {
		var out bytes.Buffer
		if err := s.md.Convert([]byte(beat.Description), &out); err == nil {
			detail.DescriptionHTML = out.String()
		}
	}
	s.cache.Set(key, detail)
	return detail, nil
}

func (s *BeatService) Create(ctx context.Context, input backend.BeatInput) (string, error) {
	beatID, err := s.api.CreateBeat(ctx, input)
	if err != nil {
		return "", err
	}
	s.cache.InvalidatePrefix(cache.BeatListPrefix)
	return beatID, nil
}

func (s *BeatService) Update(ctx context.Context, beatID string, input backend.BeatInput) (*model.Beat, error) {
	beat, err := s.api.UpdateBeat(ctx, beatID, input)
	if err != nil {
		return nil, err
	}
	s.invalidateBeat(beatID)
	return beat, nil
}

// Publish invalidates the beat's detail and every cached listing: any of
// them could now contain the newly published beat.
func (s *BeatService) Publish(ctx context.Context, beatID string) (*model.Beat, error) {
	beat, err := s.api.PublishBeat(ctx, beatID)
	if err != nil {
		return nil, err
	}
	s.invalidateBeat(beatID)
	return beat, nil
}

func (s *BeatService) Delete(ctx context.Context, beatID string) error {
	if err := s.api.DeleteBeat(ctx, beatID); err != nil {
		return err
	}
	s.invalidateBeat(beatID)
	return nil
}

func (s *BeatService) RemoveAsset(ctx context.Context, beatID, assetID string) error {
	if err := s.api.DeleteAsset(ctx, beatID, assetID); err != nil {
		return err
	}
	s.cache.Invalidate(cache.BeatDetailKey(beatID))
	return nil
}

// InvalidateDetail is hooked into the upload orchestrator so a freshly
// processed asset shows up on the next detail read.
func (s *BeatService) InvalidateDetail(beatID string) {
	s.cache.Invalidate(cache.BeatDetailKey(beatID))
}

func (s *BeatService) invalidateBeat(beatID string) {
	s.cache.Invalidate(cache.BeatDetailKey(beatID))
	s.cache.InvalidatePrefix(cache.BeatListPrefix)
}
