package catalog

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultReloadInterval is how often the catalog file is re-read.
const DefaultReloadInterval = 5 * time.Minute

// Reload re-reads the backing file and swaps in the new snapshot. On error
// the previous snapshot stays in place.
func (c *Catalog) Reload() (ParseStats, error) {
	snap, stats, err := LoadFile(c.path)
	if err != nil {
		return stats, err
	}
	c.Store(snap)
	return stats, nil
}

// ReloadAndLog reloads the catalog and logs the outcome. It reports whether
// the reload succeeded.
func ReloadAndLog(c *Catalog, log zerolog.Logger) bool {
	stats, err := c.Reload()
	if err != nil {
		log.Error().Err(err).Str("path", c.path).Int("characters", c.Len()).Msg("catalog reload failed, keeping previous snapshot")
		return false
	}

	log.Info().
		Str("path", c.path).
		Int("characters", c.Len()).
		Int("hidden", stats.Hidden).
		Int("invalid", stats.Invalid).
		Msg("catalog loaded")
	return true
}

// StartReloader periodically reloads the catalog from disk.
// It blocks until the context is cancelled.
func StartReloader(ctx context.Context, c *Catalog, interval time.Duration, log zerolog.Logger) {
	if interval <= 0 {
		interval = DefaultReloadInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ReloadAndLog(c, log)
		}
	}
}
