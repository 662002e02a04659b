package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"ayurveda-backend/internal/domains/review/model"
	"ayurveda-backend/internal/domains/review/repository"
	"ayurveda-backend/pkg/cache"
)

// =====================================================
// AGGREGATOR
// =====================================================

// Aggregator computes ReviewStatistics for a scope. Results may be cached
// per scope under a generation counter; every review write bumps the
// generation of the affected scopes before it returns, so a snapshot
// computed before the write can never be served after it.
// Cache failures fall back to recomputation.
type Aggregator struct {
	repo  repository.ReviewRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewAggregator: c có thể nil (không cache)
func NewAggregator(repo repository.ReviewRepository, c cache.Cache, ttl time.Duration) *Aggregator {
	return &Aggregator{repo: repo, cache: c, ttl: ttl}
}

func (a *Aggregator) cacheEnabled() bool {
	return a.cache != nil && a.ttl > 0
}

// generation đọc counter hiện tại của scope, chưa có key = 0
func (a *Aggregator) generation(ctx context.Context, scope model.Scope) (int64, error) {
	var gen int64
	if _, err := a.cache.Get(ctx, scope.GenerationKey(), &gen); err != nil {
		return 0, err
	}
	return gen, nil
}

func (a *Aggregator) ComputeStatistics(ctx context.Context, scope model.Scope) (model.ReviewStatistics, error) {
	// Step 1: Cache lookup tại generation hiện tại.
	// Generation phải được đọc trước khi query store.
	key := ""
	if a.cacheEnabled() {
		gen, err := a.generation(ctx, scope)
		if err != nil {
			reviewStatsCacheTotal.WithLabelValues("error").Inc()
			log.Warn().Err(err).Str("key", scope.GenerationKey()).Msg("[REVIEW] statistics generation read failed")
		} else {
			key = scope.SnapshotKey(gen)
		}
	}

	if key != "" {
		var cached model.ReviewStatistics
		found, err := a.cache.Get(ctx, key, &cached)
		switch {
		case err != nil:
			reviewStatsCacheTotal.WithLabelValues("error").Inc()
			log.Warn().Err(err).Str("key", key).Msg("[REVIEW] statistics cache read failed")
		case found:
			reviewStatsCacheTotal.WithLabelValues("hit").Inc()
			cached.Normalize()
			return cached, nil
		default:
			reviewStatsCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	// Step 2: Recompute từ store
	buckets, err := a.repo.RatingBuckets(ctx, scope)
	if err != nil {
		return model.ReviewStatistics{}, fmt.Errorf("failed to compute statistics: %w", err)
	}
	stats := model.Aggregate(buckets)

	// Step 3: Populate cache. Nếu có write chen vào giữa, generation đã tăng
	// và snapshot này nằm ở key cũ, không còn ai đọc.
	if key != "" {
		if err := a.cache.Set(ctx, key, stats, a.ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("[REVIEW] statistics cache write failed")
		}
	}

	return stats, nil
}

// Invalidate tăng generation của doctor scope và global scope,
// sau đó xoá snapshot của generation trước
func (a *Aggregator) Invalidate(ctx context.Context, doctorID int64) {
	if a.cache == nil {
		return
	}

	var stale []string
	for _, scope := range []model.Scope{model.DoctorScope(doctorID), model.GlobalScope()} {
		gen, err := a.cache.Incr(ctx, scope.GenerationKey())
		if err != nil {
			log.Warn().Err(err).Str("key", scope.GenerationKey()).Msg("[REVIEW] statistics cache invalidation failed")
			continue
		}
		stale = append(stale, scope.SnapshotKey(gen-1))
	}

	if len(stale) == 0 {
		return
	}
	if err := a.cache.Delete(ctx, stale...); err != nil {
		log.Warn().Err(err).Strs("keys", stale).Msg("[REVIEW] stale statistics cleanup failed")
	}
}
