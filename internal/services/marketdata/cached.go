package marketdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"StockCast/internal/domain/models"
	"StockCast/internal/domain/repository"
	"StockCast/pkg/cache"
	"StockCast/pkg/logger"
	"StockCast/pkg/util"
)

// CachedSource wraps a PriceSource with a TTL cache keyed by symbol and
// date range. Cache failures degrade to a direct fetch, never an error.
type CachedSource struct {
	source repository.PriceSource
	cache  cache.Service
	ttl    time.Duration
	log    *logger.Logger
}

// NewCachedSource decorates source with the given cache.
func NewCachedSource(source repository.PriceSource, c cache.Service, ttl time.Duration, log *logger.Logger) *CachedSource {
	return &CachedSource{
		source: source,
		cache:  c,
		ttl:    ttl,
		log:    log.With(logger.String("component", "marketdata_cache")),
	}
}

func seriesKey(symbol string, start, end time.Time) string {
	return fmt.Sprintf("prices:%s:%s:%s", symbol, util.FormatDate(start), util.FormatDate(end))
}

func (c *CachedSource) FetchDaily(ctx context.Context, symbol string, start, end time.Time) (*models.PriceSeries, error) {
	key := seriesKey(symbol, start, end)

	var cached models.PriceSeries
	err := c.cache.Get(ctx, key, &cached)
	if err == nil && len(cached.Points) > 0 {
		return &cached, nil
	}
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		c.log.Warn("price cache read failed", logger.String("key", key), logger.Error(err))
	}

	series, err := c.source.FetchDaily(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, series, c.ttl); err != nil {
		c.log.Warn("price cache write failed", logger.String("key", key), logger.Error(err))
	}
	return series, nil
}
