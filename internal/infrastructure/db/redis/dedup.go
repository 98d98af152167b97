package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/9rib/marketplace-api/internal/api/metrics"
)

const defaultViewWindow = time.Hour

// ViewDedup counts each viewer once per artisan and window.
// Key format: views:<artisan_id>:<viewer_key>
type ViewDedup struct {
	client *redis.Client
	window time.Duration
}

// NewViewDedup creates a ViewDedup wrapping the given Redis client.
// If window <= 0, defaultViewWindow is used.
func NewViewDedup(client *redis.Client, window time.Duration) *ViewDedup {
	if window <= 0 {
		window = defaultViewWindow
	}
	return &ViewDedup{client: client, window: window}
}

// MarkFirstView sets the view marker if absent and reports whether it was set.
func (d *ViewDedup) MarkFirstView(ctx context.Context, artisanID, viewerKey string) (bool, error) {
	ok, err := d.client.SetNX(ctx, viewKey(artisanID, viewerKey), "1", d.window).Result()
	if err != nil {
		return false, fmt.Errorf("view dedup: %w", err)
	}
	if ok {
		metrics.ArtisanViewsTotal.WithLabelValues("counted").Inc()
	} else {
		metrics.ArtisanViewsTotal.WithLabelValues("duplicate").Inc()
	}
	return ok, nil
}

func viewKey(artisanID, viewerKey string) string {
	return fmt.Sprintf("views:%s:%s", artisanID, viewerKey)
}
