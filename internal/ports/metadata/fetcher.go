package metadata

import (
	"context"
	"time"

	"agora/internal/core/metadata"
)

// Fetcher پورت دریافت متادیتای یک صفحه‌ی وب
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*metadata.SiteMetadata, error)
}

// Cache stores fetched metadata by URL. A miss returns (nil, nil).
type Cache interface {
	Get(ctx context.Context, url string) (*metadata.SiteMetadata, error)
	Set(ctx context.Context, url string, md *metadata.SiteMetadata, ttl time.Duration) error
}
