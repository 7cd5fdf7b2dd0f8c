package legal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/legalcurrent/core/internal/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Cache stores the serialized aggregate between requests.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Service aggregates the configured sources.
type Service struct {
	fetchers []Fetcher
	cache    Cache
	ttl      time.Duration
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewService creates the aggregator. cache may be nil.
func NewService(fetchers []Fetcher, cache Cache, ttl time.Duration, logger *zap.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{fetchers: fetchers, cache: cache, ttl: ttl, logger: logger.Named("legal"), metrics: m}
}

// Latest returns up to each source's limit of items, in source order. A
// failing source is logged and contributes nothing.
func (s *Service) Latest(ctx context.Context) []Item {
	if items, ok := s.cached(ctx); ok {
		return items
	}

	results := make([][]Item, len(s.fetchers))
	succeeded := make([]bool, len(s.fetchers))

	var g errgroup.Group
	for i, f := range s.fetchers {
		g.Go(func() error {
			items, err := f.Fetch(ctx)
			s.metrics.RecordLegalFetch(f.Name(), err == nil)
			if err != nil {
				s.logger.Warn("legal source failed", zap.String("source", f.Name()), zap.Error(err))
				return nil
			}
			results[i] = items
			succeeded[i] = true
			return nil
		})
	}
	_ = g.Wait()

	out := make([]Item, 0)
	anyOK := false
	for i := range results {
		out = append(out, results[i]...)
		anyOK = anyOK || succeeded[i]
	}

	if anyOK {
		s.store(ctx, out)
	}
	return out
}

func (s *Service) cached(ctx context.Context) ([]Item, bool) {
	if s.cache == nil || s.ttl <= 0 {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		s.logger.Warn("legal cache read failed", zap.Error(err))
		return nil, false
	}
	if raw == "" {
		return nil, false
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.Warn("legal cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return items, true
}

func (s *Service) store(ctx context.Context, items []Item) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		s.logger.Warn("legal cache encode failed", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, cacheKey, raw, s.ttl); err != nil {
		s.logger.Warn("legal cache write failed", zap.Error(err))
	}
}
