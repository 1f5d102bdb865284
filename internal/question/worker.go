package question

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CacheWarmer keeps the category cache populated so listing requests do not
// fall through to the store after a TTL expiry.
type CacheWarmer struct {
	service  *Service
	logger   zerolog.Logger
	interval time.Duration
	timeout  time.Duration
}

func NewCacheWarmer(service *Service, interval, timeout time.Duration, logger zerolog.Logger) *CacheWarmer {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	return &CacheWarmer{
		service:  service,
		logger:   logger.With().Str("component", "category_cache_warmer").Logger(),
		interval: interval,
		timeout:  timeout,
	}
}

// Run blocks until context cancellation.
func (w *CacheWarmer) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// run immediately
	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("category cache warmer stopping")
			return ctx.Err()
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *CacheWarmer) tick(ctx context.Context) {
	tickCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	n, err := w.service.RefreshCategories(tickCtx)
	if err != nil {
		w.logger.Warn().Err(err).Msg("category refresh failed")
		return
	}
	w.logger.Debug().Int("categories", n).Msg("category cache refreshed")
}
