package services

import (
	"context"
	"time"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/metrics"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/rs/zerolog/log"
)

const (
	FeedCacheTag        = "feed"
	DefaultFeedCacheTTL = 20 * time.Second
)

// PageCache keeps rendered feed pages until they expire, writes to posts never invalidate it.
type PageCache struct {
	marshal *marshaler.Marshaler
	ttl     time.Duration
}

func NewPageCache(s store.StoreInterface, ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = DefaultFeedCacheTTL
	}
	return &PageCache{
		marshal: marshaler.New(cache.New[any](s)),
		ttl:     ttl,
	}
}

func (v *PageCache) Get(ctx context.Context, key string, out any) bool {
	if _, err := v.marshal.Get(ctx, key, out); err != nil {
		metrics.FeedCacheLookups.WithLabelValues("miss").Inc()
		return false
	}
	metrics.FeedCacheLookups.WithLabelValues("hit").Inc()
	return true
}

func (v *PageCache) Set(ctx context.Context, key string, value any) {
	if err := v.marshal.Set(
		ctx,
		key,
		value,
		store.WithExpiration(v.ttl),
		store.WithTags([]string{FeedCacheTag}),
	); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("An error occurred when caching feed page...")
	}
}

func (v *PageCache) Purge(ctx context.Context) error {
	return v.marshal.Invalidate(ctx, store.WithInvalidateTags([]string{FeedCacheTag}))
}
