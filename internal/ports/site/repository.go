package site

import (
	"context"

	"agora/internal/core/site"
)

type SiteRepository interface {
	// ReadLocalSite returns the local site row, or a zero-config site when none exists yet.
	ReadLocalSite(ctx context.Context) (*site.LocalSite, error)
}
