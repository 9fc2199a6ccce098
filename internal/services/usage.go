package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
	"go.uber.org/zap"

	"github.com/ai-quota-dash-go/internal/models"
	"github.com/ai-quota-dash-go/internal/storage"
)

// Fetcher produces normalized usage records; implemented by providers.Client.
type Fetcher interface {
	Fetch(ctx context.Context, svc models.Service) models.ServiceUsage
	FetchAll(ctx context.Context) []models.ServiceUsage
}

// UsageService fronts the provider fetcher with a two-tier snapshot cache:
// a local bigcache and the shared store. The fetcher itself stays
// cache-free; all staleness policy lives here.
type UsageService struct {
	fetcher    Fetcher
	store      storage.Store
	localCache *bigcache.BigCache
	cacheTTL   time.Duration
	log        *zap.SugaredLogger
}

func NewUsageService(fetcher Fetcher, store storage.Store, cacheTTL time.Duration, log *zap.SugaredLogger) *UsageService {
	cacheConfig := bigcache.DefaultConfig(cacheTTL)
	cacheConfig.Shards = 16
	cacheConfig.MaxEntrySize = 4096
	cacheConfig.Verbose = false

	cache, _ := bigcache.New(context.Background(), cacheConfig)

	return &UsageService{
		fetcher:    fetcher,
		store:      store,
		localCache: cache,
		cacheTTL:   cacheTTL,
		log:        log,
	}
}

const allSnapshotKey = "usage:all"

func snapshotKey(svc models.Service) string {
	return fmt.Sprintf("usage:%s", svc)
}

func (s *UsageService) cachedSnapshot(ctx context.Context, key string) []byte {
	if data, err := s.localCache.Get(key); err == nil {
		return data
	}
	data, err := s.store.GetSnapshot(ctx, key)
	if err != nil {
		s.log.Warnw("snapshot store read failed", "key", key, "error", err)
		return nil
	}
	return data
}

func (s *UsageService) saveSnapshot(ctx context.Context, key string, data []byte) {
	_ = s.localCache.Set(key, data)
	if err := s.store.SaveSnapshot(ctx, key, data, s.cacheTTL); err != nil {
		s.log.Warnw("snapshot store write failed", "key", key, "error", err)
	}
}

// GetAll returns the usage records for all providers, serving a cached
// snapshot when one is fresh. refresh forces a live fetch.
func (s *UsageService) GetAll(ctx context.Context, refresh bool) []models.ServiceUsage {
	if !refresh {
		if data := s.cachedSnapshot(ctx, allSnapshotKey); data != nil {
			var cached []models.ServiceUsage
			if err := json.Unmarshal(data, &cached); err == nil && len(cached) == len(models.Services) {
				return cached
			}
		}
	}

	results := s.fetcher.FetchAll(ctx)
	if data, err := json.Marshal(results); err == nil {
		s.saveSnapshot(ctx, allSnapshotKey, data)
	}
	return results
}

// GetService returns the usage record for a single provider with the same
// caching policy as GetAll.
func (s *UsageService) GetService(ctx context.Context, svc models.Service, refresh bool) models.ServiceUsage {
	key := snapshotKey(svc)
	if !refresh {
		if data := s.cachedSnapshot(ctx, key); data != nil {
			var cached models.ServiceUsage
			if err := json.Unmarshal(data, &cached); err == nil && cached.Service == svc {
				return cached
			}
		}
	}

	result := s.fetcher.Fetch(ctx, svc)
	if data, err := json.Marshal(result); err == nil {
		s.saveSnapshot(ctx, key, data)
	}
	return result
}
